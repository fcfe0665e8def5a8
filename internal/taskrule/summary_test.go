package taskrule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskmanager/internal/model"
	"taskmanager/internal/taskrule"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	past := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	future := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	tasks := []model.Task{
		{Status: model.StatusTodo, Priority: model.PriorityHigh, DueDate: &past},
		{Status: model.StatusInProgress, Priority: model.PriorityMedium, DueDate: &future},
		{Status: model.StatusDone, Priority: model.PriorityLow, DueDate: &past},
		{Status: model.StatusTodo, Priority: model.PriorityUrgent},
		{Status: model.StatusTodo, Priority: model.PriorityHigh, DueDate: &today},
	}

	s := taskrule.Summarize(tasks, now)

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 3, s.ByStatus[model.StatusTodo])
	assert.Equal(t, 1, s.ByStatus[model.StatusInProgress])
	assert.Equal(t, 1, s.ByStatus[model.StatusDone])
	assert.Equal(t, 2, s.ByPriority[model.PriorityHigh])
	assert.Equal(t, 1, s.ByPriority[model.PriorityUrgent])
	// Past due but DONE doesn't count; due today doesn't count.
	assert.Equal(t, 1, s.Overdue)
}

func TestSummarize_Empty(t *testing.T) {
	s := taskrule.Summarize(nil, time.Now())

	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0, s.Overdue)
	// Zero counts are still present for every enum value.
	assert.Len(t, s.ByStatus, 3)
	assert.Len(t, s.ByPriority, 4)
}
