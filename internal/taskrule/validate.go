package taskrule

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"taskmanager/internal/apperr"
	"taskmanager/internal/model"
)

const maxTitleLen = 200

// Accepted textual due date layouts. Date-only is what the UI sends,
// RFC3339 is what API clients tend to send back unmodified.
var dueDateLayouts = []string{"2006-01-02", time.RFC3339}

// CreateInput is the raw task creation payload.
type CreateInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
	AssignedTo  *string `json:"assignedToId"`
}

// UpdateInput is the raw partial-update payload. Nil fields are left
// unchanged; an empty assignedToId clears the assignment.
type UpdateInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
	AssignedTo  *string `json:"assignedToId"`
}

type fieldErrors map[string][]string

func (fe fieldErrors) add(field, reason string) {
	fe[field] = append(fe[field], reason)
}

func (fe fieldErrors) err() *apperr.Error {
	if len(fe) == 0 {
		return nil
	}
	return apperr.Validation(fe)
}

// ValidateCreate checks a creation payload and produces a defaulted task
// draft. All field errors are collected and returned together.
func ValidateCreate(in CreateInput) (*model.Task, *apperr.Error) {
	fe := fieldErrors{}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		fe.add("title", "title is required")
	} else if utf8.RuneCountInString(title) > maxTitleLen {
		fe.add("title", "title must be at most 200 characters")
	}

	task := &model.Task{
		Title:    title,
		Status:   model.StatusTodo,
		Priority: model.PriorityMedium,
	}

	if in.Description != nil {
		task.Description = *in.Description
	}

	if in.Priority != nil {
		p := model.TaskPriority(*in.Priority)
		if !p.Valid() {
			fe.add("priority", "priority must be one of LOW, MEDIUM, HIGH, URGENT")
		} else {
			task.Priority = p
		}
	}

	if in.DueDate != nil && *in.DueDate != "" {
		due, ok := parseDueDate(*in.DueDate)
		if !ok {
			fe.add("dueDate", "dueDate must be a valid date")
		} else {
			task.DueDate = due
		}
	}

	if in.AssignedTo != nil && *in.AssignedTo != "" {
		id, err := uuid.Parse(*in.AssignedTo)
		if err != nil {
			fe.add("assignedToId", "assignedToId must be a valid user ID")
		} else {
			task.AssignedTo = &id
		}
	}

	if err := fe.err(); err != nil {
		return nil, err
	}
	return task, nil
}

// ApplyUpdate applies a partial update to a task in place. Omitted fields
// keep their previous values. CreatedBy and CreatedAt never change.
func ApplyUpdate(task *model.Task, in UpdateInput) *apperr.Error {
	fe := fieldErrors{}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			fe.add("title", "title must not be empty")
		} else if utf8.RuneCountInString(title) > maxTitleLen {
			fe.add("title", "title must be at most 200 characters")
		} else {
			task.Title = title
		}
	}

	if in.Description != nil {
		task.Description = *in.Description
	}

	if in.Status != nil {
		s := model.TaskStatus(*in.Status)
		if !s.Valid() {
			fe.add("status", "status must be one of TODO, IN_PROGRESS, DONE")
		} else {
			task.Status = s
		}
	}

	if in.Priority != nil {
		p := model.TaskPriority(*in.Priority)
		if !p.Valid() {
			fe.add("priority", "priority must be one of LOW, MEDIUM, HIGH, URGENT")
		} else {
			task.Priority = p
		}
	}

	if in.DueDate != nil {
		if *in.DueDate == "" {
			task.DueDate = nil
		} else if due, ok := parseDueDate(*in.DueDate); ok {
			task.DueDate = due
		} else {
			fe.add("dueDate", "dueDate must be a valid date")
		}
	}

	if in.AssignedTo != nil {
		if *in.AssignedTo == "" {
			task.AssignedTo = nil
		} else if id, err := uuid.Parse(*in.AssignedTo); err == nil {
			task.AssignedTo = &id
		} else {
			fe.add("assignedToId", "assignedToId must be a valid user ID")
		}
	}

	return fe.err()
}

func parseDueDate(s string) (*time.Time, bool) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, true
		}
	}
	return nil, false
}
