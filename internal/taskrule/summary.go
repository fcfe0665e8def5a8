package taskrule

import (
	"time"

	"taskmanager/internal/model"
)

// Summary aggregates task counts for the dashboard.
type Summary struct {
	Total      int                        `json:"total"`
	ByStatus   map[model.TaskStatus]int   `json:"byStatus"`
	ByPriority map[model.TaskPriority]int `json:"byPriority"`
	Overdue    int                        `json:"overdue"`
}

// Summarize counts tasks by status and priority. A task is overdue when
// its due date falls before today (now's calendar day) and it is not done.
func Summarize(tasks []model.Task, now time.Time) Summary {
	s := Summary{
		Total:      len(tasks),
		ByStatus:   map[model.TaskStatus]int{model.StatusTodo: 0, model.StatusInProgress: 0, model.StatusDone: 0},
		ByPriority: map[model.TaskPriority]int{model.PriorityLow: 0, model.PriorityMedium: 0, model.PriorityHigh: 0, model.PriorityUrgent: 0},
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, t := range tasks {
		s.ByStatus[t.Status]++
		s.ByPriority[t.Priority]++
		if t.DueDate != nil && t.Status != model.StatusDone && t.DueDate.Before(today) {
			s.Overdue++
		}
	}
	return s
}
