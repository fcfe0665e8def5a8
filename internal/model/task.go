package model

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityUrgent TaskPriority = "URGENT"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Rank orders priorities for sorting, most urgent first.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

type Task struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Title       string       `gorm:"not null"`
	Description string
	Status      TaskStatus   `gorm:"not null;default:'TODO'"`
	Priority    TaskPriority `gorm:"not null;default:'MEDIUM'"`
	DueDate     *time.Time
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null;index"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`

	Creator  User `gorm:"foreignKey:CreatedBy"`
	Assignee User `gorm:"foreignKey:AssignedTo"`
}
