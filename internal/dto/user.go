package dto

import (
	"github.com/todoapp/todo-api/internal/models"
	"github.com/todoapp/todo-api/internal/utils"
)

// UserResponse represents a user in API responses. The password hash never
// leaves the service boundary.
type UserResponse struct {
	ID       uint64          `json:"id"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Role     models.RoleType `json:"role"`
}

// UserWithTasksResponse is UserResponse plus the derived task list.
type UserWithTasksResponse struct {
	UserResponse
	Tasks []TaskResponse `json:"tasks"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users      []UserResponse           `json:"users"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// UserSaveRequest is the payload for creating a user.
type UserSaveRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
	Email    string `json:"email" binding:"required,email"`
}

// UserUpdateRequest is the partial-update payload: a nil field keeps the
// stored value.
type UserUpdateRequest struct {
	Username *string          `json:"username" binding:"omitempty,min=3,max=50"`
	Password *string          `json:"password" binding:"omitempty,min=8"`
	Email    *string          `json:"email" binding:"omitempty,email"`
	Role     *models.RoleType `json:"role" binding:"omitempty,oneof=ADMIN USER"`
}

// ToModel converts the partial request into the service's merge input, where
// a zero value means "unset".
func (r UserUpdateRequest) ToModel() *models.User {
	user := &models.User{}
	if r.Username != nil {
		user.Username = *r.Username
	}
	if r.Password != nil {
		user.Password = *r.Password
	}
	if r.Email != nil {
		user.Email = *r.Email
	}
	if r.Role != nil {
		user.Role = *r.Role
	}
	return user
}

// ToUserResponse maps a user model to its API shape.
func ToUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
}

// ToUserWithTasksResponse maps a user model plus its derived task list.
func ToUserWithTasksResponse(user models.User) UserWithTasksResponse {
	tasks := make([]TaskResponse, 0, len(user.Tasks))
	for _, task := range user.Tasks {
		tasks = append(tasks, ToTaskResponse(task))
	}
	return UserWithTasksResponse{
		UserResponse: ToUserResponse(user),
		Tasks:        tasks,
	}
}

// ToUserListResponse maps a page of users to the list shape.
func ToUserListResponse(users []models.User, page utils.PageInfo) UserListResponse {
	items := make([]UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, ToUserResponse(user))
	}
	return UserListResponse{
		Users: items,
		Pagination: utils.PaginationResponse{
			Page:  page.PageNumber,
			Limit: page.PageSize,
			Total: int64(len(items)),
		},
	}
}
