package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskmanager/internal/middleware"
	"taskmanager/internal/model"
	"taskmanager/internal/repository"
	"taskmanager/internal/taskrule"
)

type TaskHandler struct {
	tasks  repository.TaskRepositoryInterface
	users  repository.UserRepositoryInterface
	logger *zap.Logger
}

func NewTaskHandler(
	tasks repository.TaskRepositoryInterface,
	users repository.UserRepositoryInterface,
	logger *zap.Logger,
) *TaskHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskHandler{tasks: tasks, users: users, logger: logger}
}

// UserRef identifies a user embedded in a task response.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TaskResponse is the task shape returned by every task endpoint.
type TaskResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Status       string   `json:"status"`
	Priority     string   `json:"priority"`
	DueDate      *string  `json:"dueDate,omitempty"`
	CreatedByID  string   `json:"createdById"`
	AssignedToID *string  `json:"assignedToId,omitempty"`
	CreatedAt    string   `json:"createdAt"`
	CreatedBy    *UserRef `json:"createdBy,omitempty"`
}

func taskResponse(task *model.Task) TaskResponse {
	response := TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		CreatedByID: task.CreatedBy.String(),
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
	}
	if task.DueDate != nil {
		dueDate := task.DueDate.Format(time.RFC3339)
		response.DueDate = &dueDate
	}
	if task.AssignedTo != nil {
		assignedTo := task.AssignedTo.String()
		response.AssignedToID = &assignedTo
	}
	if task.Creator.ID != uuid.Nil {
		response.CreatedBy = &UserRef{
			ID:    task.Creator.ID.String(),
			Name:  task.Creator.Name,
			Email: task.Creator.Email,
		}
	}
	return response
}

// assigneeExists checks that a referenced assignee is a real user.
func (h *TaskHandler) assigneeExists(c *gin.Context, id uuid.UUID) (bool, error) {
	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// Create creates a new task owned by the authenticated user
// @Summary  Create a task
// @Tags     Tasks
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    request body taskrule.CreateInput true "Task payload"
// @Success  201 {object} TaskResponse
// @Router   /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	identity, exists := middleware.IdentityFrom(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req taskrule.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, verr := taskrule.ValidateCreate(req)
	if verr != nil {
		writeAppError(c, verr)
		return
	}

	if task.AssignedTo != nil {
		ok, err := h.assigneeExists(c, *task.AssignedTo)
		if err != nil {
			h.logger.Error("failed to look up assignee", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
			return
		}
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid input",
				"details": gin.H{"assignedToId": []string{"assignedToId must reference an existing user"}},
			})
			return
		}
	}

	task.ID = uuid.New()
	task.CreatedBy = identity.ID

	if err := h.tasks.Create(c.Request.Context(), task); err != nil {
		h.logger.Error("failed to create task", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	creator, err := h.users.GetByID(c.Request.Context(), identity.ID)
	if err == nil && creator != nil {
		task.Creator = *creator
	}

	c.JSON(http.StatusCreated, taskResponse(task))
}

// List returns the tasks visible to the caller, filtered and sorted
// @Summary  List tasks
// @Tags     Tasks
// @Produce  json
// @Security BearerAuth
// @Param    search   query string false "Substring match on title and description"
// @Param    status   query string false "TODO, IN_PROGRESS, DONE or ALL"
// @Param    priority query string false "LOW, MEDIUM, HIGH, URGENT or ALL"
// @Param    sort     query string false "recent, priority-high or dueDate"
// @Success  200 {array} TaskResponse
// @Router   /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	query := taskrule.Query{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Sort:     c.Query("sort"),
	}
	if verr := query.Validate(); verr != nil {
		writeAppError(c, verr)
		return
	}

	tasks, err := h.tasks.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list tasks", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	filtered := query.Apply(tasks)
	response := make([]TaskResponse, len(filtered))
	for i := range filtered {
		response[i] = taskResponse(&filtered[i])
	}
	c.JSON(http.StatusOK, response)
}

// GetByID returns a single task
// @Summary  Get a task
// @Tags     Tasks
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Task ID"
// @Success  200 {object} TaskResponse
// @Router   /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.tasks.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			h.logger.Error("failed to retrieve task", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	c.JSON(http.StatusOK, taskResponse(task))
}

// Update partially updates a task. Only the creator or an admin may
// modify a task; omitted fields keep their previous values.
// @Summary  Update a task
// @Tags     Tasks
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Task ID"
// @Param    request body taskrule.UpdateInput true "Fields to change"
// @Success  200 {object} TaskResponse
// @Router   /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	identity, exists := middleware.IdentityFrom(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.tasks.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			h.logger.Error("failed to retrieve task", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	if !taskrule.CanModify(identity, task) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to update this task"})
		return
	}

	var req taskrule.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if verr := taskrule.ApplyUpdate(task, req); verr != nil {
		writeAppError(c, verr)
		return
	}

	if req.AssignedTo != nil && task.AssignedTo != nil {
		ok, err := h.assigneeExists(c, *task.AssignedTo)
		if err != nil {
			h.logger.Error("failed to look up assignee", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
			return
		}
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid input",
				"details": gin.H{"assignedToId": []string{"assignedToId must reference an existing user"}},
			})
			return
		}
	}

	if err := h.tasks.Update(c.Request.Context(), task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		h.logger.Error("failed to update task", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(http.StatusOK, taskResponse(task))
}

// Delete removes a task. Only the creator or an admin may delete it.
// @Summary  Delete a task
// @Tags     Tasks
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Task ID"
// @Success  200 {object} map[string]bool
// @Router   /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	identity, exists := middleware.IdentityFrom(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.tasks.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			h.logger.Error("failed to retrieve task", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	if !taskrule.CanModify(identity, task) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to delete this task"})
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), taskID); err != nil {
		h.logger.Error("failed to delete task", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
