package taskrule

import (
	"taskmanager/internal/auth"
	"taskmanager/internal/model"
)

// CanModify reports whether the acting identity may update or delete
// the task: the task's creator or an admin. Reads require only an
// authenticated identity.
func CanModify(identity auth.Identity, task *model.Task) bool {
	return identity.ID == task.CreatedBy || identity.Role == model.RoleAdmin
}
