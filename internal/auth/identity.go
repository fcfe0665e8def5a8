package auth

import (
	"github.com/google/uuid"

	"taskmanager/internal/model"
)

// Identity is the verified representation of the acting user.
// It never carries the password hash.
type Identity struct {
	ID    uuid.UUID  `json:"id"`
	Email string     `json:"email"`
	Name  string     `json:"name"`
	Role  model.Role `json:"role"`
}

func IdentityOf(user *model.User) Identity {
	return Identity{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
}
