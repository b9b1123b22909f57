package dto

import (
	"time"

	"github.com/todoapp/todo-api/internal/models"
	"github.com/todoapp/todo-api/internal/utils"
)

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID          uint64            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	AuthorID    uint64            `json:"author_id"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskResponse           `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// TaskSaveRequest is the payload for creating a task. The author is always
// the authenticated caller, never part of the payload.
type TaskSaveRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status" binding:"omitempty,oneof=TODO DONE"`
}

// ToModel converts the request into the service's enrich input.
func (r TaskSaveRequest) ToModel() *models.Task {
	return &models.Task{
		Name:        r.Name,
		Description: r.Description,
		Status:      r.Status,
	}
}

// TaskUpdateRequest is the partial-update payload: a nil field keeps the
// stored value.
type TaskUpdateRequest struct {
	Name        *string            `json:"name" binding:"omitempty,min=1"`
	Description *string            `json:"description"`
	Status      *models.TaskStatus `json:"status" binding:"omitempty,oneof=TODO DONE"`
}

// ToModel converts the partial request into the service's merge input, where
// a zero value means "unset".
func (r TaskUpdateRequest) ToModel() *models.Task {
	task := &models.Task{}
	if r.Name != nil {
		task.Name = *r.Name
	}
	if r.Description != nil {
		task.Description = *r.Description
	}
	if r.Status != nil {
		task.Status = *r.Status
	}
	return task
}

// ToTaskResponse maps a task model to its API shape.
func ToTaskResponse(task models.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		AuthorID:    task.AuthorID,
	}
}

// ToTaskListResponse maps a page of tasks to the list shape.
func ToTaskListResponse(tasks []models.Task, page utils.PageInfo) TaskListResponse {
	items := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskResponse(task))
	}
	return TaskListResponse{
		Tasks: items,
		Pagination: utils.PaginationResponse{
			Page:  page.PageNumber,
			Limit: page.PageSize,
			Total: int64(len(items)),
		},
	}
}
