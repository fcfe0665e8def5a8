package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskmanager/internal/auth"
	"taskmanager/internal/handler"
	"taskmanager/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupDashboardTest() (*gin.Engine, *MockTaskRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mockTasks := new(MockTaskRepository)
	dashboardHandler := handler.NewDashboardHandler(mockTasks, nil)

	identity := auth.Identity{ID: uuid.New(), Role: model.RoleUser}
	authorized := r.Group("/")
	authorized.Use(withIdentity(identity))
	authorized.GET("/dashboard/summary", dashboardHandler.Summary)

	return r, mockTasks
}

func TestDashboardSummary(t *testing.T) {
	router, mockTasks := setupDashboardTest()

	yesterday := time.Now().AddDate(0, 0, -1)
	nextWeek := time.Now().AddDate(0, 0, 7)
	mockTasks.On("List", mock.Anything).Return([]model.Task{
		{ID: uuid.New(), Status: model.StatusTodo, Priority: model.PriorityHigh, DueDate: &yesterday},
		{ID: uuid.New(), Status: model.StatusDone, Priority: model.PriorityHigh, DueDate: &yesterday},
		{ID: uuid.New(), Status: model.StatusInProgress, Priority: model.PriorityMedium, DueDate: &nextWeek},
		{ID: uuid.New(), Status: model.StatusTodo, Priority: model.PriorityLow},
	}, nil)

	req, _ := http.NewRequest("GET", "/dashboard/summary", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var response struct {
		Total      int            `json:"total"`
		ByStatus   map[string]int `json:"byStatus"`
		ByPriority map[string]int `json:"byPriority"`
		Overdue    int            `json:"overdue"`
	}
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, 4, response.Total)
	assert.Equal(t, 2, response.ByStatus["TODO"])
	assert.Equal(t, 1, response.ByStatus["IN_PROGRESS"])
	assert.Equal(t, 1, response.ByStatus["DONE"])
	assert.Equal(t, 2, response.ByPriority["HIGH"])
	assert.Equal(t, 1, response.ByPriority["MEDIUM"])
	assert.Equal(t, 1, response.ByPriority["LOW"])
	assert.Equal(t, 0, response.ByPriority["URGENT"])
	// The done task is past due but doesn't count as overdue.
	assert.Equal(t, 1, response.Overdue)

	mockTasks.AssertExpectations(t)
}

func TestDashboardSummary_Empty(t *testing.T) {
	router, mockTasks := setupDashboardTest()

	mockTasks.On("List", mock.Anything).Return([]model.Task{}, nil)

	req, _ := http.NewRequest("GET", "/dashboard/summary", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var response struct {
		Total    int            `json:"total"`
		ByStatus map[string]int `json:"byStatus"`
		Overdue  int            `json:"overdue"`
	}
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, 0, response.Total)
	// Every status key is present even with no tasks.
	assert.Len(t, response.ByStatus, 3)
	assert.Equal(t, 0, response.Overdue)

	mockTasks.AssertExpectations(t)
}
