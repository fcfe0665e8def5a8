package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskmanager/internal/auth"
	"taskmanager/internal/middleware"
	"taskmanager/internal/model"
	"taskmanager/internal/repository"
)

type UserHandler struct {
	users     repository.UserRepositoryInterface
	tasks     repository.TaskRepositoryInterface
	jwtSecret string
	jwtExpiry time.Duration
	logger    *zap.Logger
}

func NewUserHandler(
	users repository.UserRepositoryInterface,
	tasks repository.TaskRepositoryInterface,
	jwtSecret string,
	jwtExpiry time.Duration,
	logger *zap.Logger,
) *UserHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserHandler{
		users:     users,
		tasks:     tasks,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		logger:    logger,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=6,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func userResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:    u.ID.String(),
		Email: u.Email,
		Name:  u.Name,
		Role:  string(u.Role),
	}
}

// Register creates a new account
// @Summary  Register a new user
// @Tags     Auth
// @Accept   json
// @Produce  json
// @Param    request body RegisterRequest true "Registration payload"
// @Success  201 {object} UserResponse
// @Router   /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if fields := bindingFieldErrors(err); fields != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": fields})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	req.Email = strings.ToLower(req.Email)

	existing, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("failed to look up email", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	user := &model.User{
		ID:             uuid.New(),
		Email:          req.Email,
		Name:           req.Name,
		HashedPassword: hash,
		Role:           model.RoleUser,
	}

	if err := h.users.Create(c.Request.Context(), user); err != nil {
		h.logger.Error("failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, userResponse(user))
}

// Login authenticates a user and issues a token
// @Summary  Log in
// @Tags     Auth
// @Accept   json
// @Produce  json
// @Param    request body LoginRequest true "Credentials"
// @Success  200 {object} AuthResponse
// @Router   /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	req.Email = strings.ToLower(req.Email)

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("failed to look up email", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	// Unknown email and wrong password answer identically so the
	// response never reveals which one it was.
	if user == nil || !auth.CheckPassword(user.HashedPassword, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, h.jwtExpiry, auth.IdentityOf(user))
	if err != nil {
		h.logger.Error("failed to sign token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  userResponse(user),
	})
}

// List returns every user without password hashes
// @Summary  List users
// @Tags     Users
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} UserResponse
// @Router   /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	response := make([]UserResponse, len(users))
	for i := range users {
		response[i] = userResponse(&users[i])
	}
	c.JSON(http.StatusOK, response)
}

// Delete removes a user. Admin only, and refused while the user still
// owns tasks.
// @Summary  Delete a user
// @Tags     Users
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "User ID"
// @Success  200 {object} map[string]bool
// @Router   /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	identity, exists := middleware.IdentityFrom(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	if identity.Role != model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can delete users"})
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	owned, err := h.tasks.CountByCreator(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to count owned tasks", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	if owned > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "User still owns tasks"})
		return
	}

	if err := h.users.Delete(c.Request.Context(), userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("failed to delete user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
