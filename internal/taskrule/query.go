package taskrule

import (
	"sort"
	"strings"

	"taskmanager/internal/apperr"
	"taskmanager/internal/model"
)

// Sort keys accepted by task listings.
const (
	SortRecent       = "recent"
	SortPriorityHigh = "priority-high"
	SortDueDate      = "dueDate"
)

// FilterAll disables an enum filter.
const FilterAll = "ALL"

// Query is a filter/sort specification for a task listing.
type Query struct {
	Search   string
	Status   string
	Priority string
	Sort     string
}

// Validate checks the enum filters and sort key. Empty values and
// FilterAll are treated as "no filter".
func (q Query) Validate() *apperr.Error {
	fe := fieldErrors{}
	if q.Status != "" && q.Status != FilterAll && !model.TaskStatus(q.Status).Valid() {
		fe.add("status", "status must be one of TODO, IN_PROGRESS, DONE or ALL")
	}
	if q.Priority != "" && q.Priority != FilterAll && !model.TaskPriority(q.Priority).Valid() {
		fe.add("priority", "priority must be one of LOW, MEDIUM, HIGH, URGENT or ALL")
	}
	switch q.Sort {
	case "", SortRecent, SortPriorityHigh, SortDueDate:
	default:
		fe.add("sort", "sort must be one of recent, priority-high, dueDate")
	}
	return fe.err()
}

// Apply filters and sorts tasks. Filters are conjunctive, sorting is
// stable, and the input slice is not modified. Deterministic for
// identical inputs.
func (q Query) Apply(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, t := range tasks {
		if !matchSearch(t, search) {
			continue
		}
		if q.Status != "" && q.Status != FilterAll && t.Status != model.TaskStatus(q.Status) {
			continue
		}
		if q.Priority != "" && q.Priority != FilterAll && t.Priority != model.TaskPriority(q.Priority) {
			continue
		}
		out = append(out, t)
	}

	switch q.Sort {
	case SortPriorityHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		})
	case SortDueDate:
		// Undated tasks always sort after dated ones; two undated
		// tasks keep their relative order.
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].DueDate, out[j].DueDate
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.Before(*b)
		})
	default: // SortRecent
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}

	return out
}

func matchSearch(t model.Task, search string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Title), search) {
		return true
	}
	return t.Description != "" && strings.Contains(strings.ToLower(t.Description), search)
}
