package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/todoapp/todo-api/internal/dto"
	apierrors "github.com/todoapp/todo-api/internal/errors"
	"github.com/todoapp/todo-api/internal/middleware"
	"github.com/todoapp/todo-api/internal/models"
	"github.com/todoapp/todo-api/internal/services"
	"github.com/todoapp/todo-api/internal/utils"
)

// UserHandler coordinates user CRUD HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers returns a page of users. Admin only, enforced by the router.
func (h *UserHandler) ListUsers(c *gin.Context) {
	page := utils.GetPaginationParams(c)

	users, err := h.userService.FindAll(c.Request.Context(), page)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users, page))
}

// GetUser returns a user with the derived task list.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.userService.FindByID(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserWithTasksResponse(*user))
}

// UpdateUser partially updates a user: omitted fields keep their stored values.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	// Only admins may change roles; the other fields stay self-service.
	if req.Role != nil {
		if role, ok := middleware.GetUserRole(c); !ok || role != models.RoleAdmin {
			apierrors.Forbidden(c, "Only admins can change roles")
			return
		}
	}

	user, err := h.userService.Update(c.Request.Context(), id, req.ToModel())
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(*user))
}

// DeleteUser removes a user along with every task the user owns.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteByID(c.Request.Context(), id); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}
