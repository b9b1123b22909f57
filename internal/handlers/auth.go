package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/todoapp/todo-api/internal/constants"
	"github.com/todoapp/todo-api/internal/dto"
	apierrors "github.com/todoapp/todo-api/internal/errors"
	"github.com/todoapp/todo-api/internal/middleware"
	"github.com/todoapp/todo-api/internal/models"
	"github.com/todoapp/todo-api/internal/security"
	"github.com/todoapp/todo-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	userService *services.UserService
	hasher      security.PasswordHasher
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService *services.UserService, hasher security.PasswordHasher) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		hasher:      hasher,
	}
}

// Signup registers a new user. The role is always USER; only an admin can
// promote an account afterwards.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.UserSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Save(c.Request.Context(), &models.User{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Role:     models.RoleUser,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(*user))
}

// Login verifies credentials and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if apierrors.IsNotFound(err) {
			apierrors.Unauthorized(c, "Invalid username or password")
			return
		}
		apierrors.Respond(c, err)
		return
	}

	if err := h.hasher.Compare(user.Password, req.Password); err != nil {
		apierrors.Unauthorized(c, "Invalid username or password")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	session.Set(constants.ContextKeyUserRole, string(user.Role))
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(*user))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.userService.FindByID(c.Request.Context(), userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(*user))
}
