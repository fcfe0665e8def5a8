package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskmanager/internal/repository"
	"taskmanager/internal/taskrule"
)

type DashboardHandler struct {
	tasks  repository.TaskRepositoryInterface
	logger *zap.Logger
}

func NewDashboardHandler(tasks repository.TaskRepositoryInterface, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{tasks: tasks, logger: logger}
}

// Summary returns aggregate task counts for the dashboard
// @Summary  Dashboard counts
// @Tags     Dashboard
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} taskrule.Summary
// @Router   /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list tasks", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve summary"})
		return
	}

	c.JSON(http.StatusOK, taskrule.Summarize(tasks, time.Now()))
}
