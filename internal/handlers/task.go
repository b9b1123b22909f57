package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/todoapp/todo-api/internal/dto"
	apierrors "github.com/todoapp/todo-api/internal/errors"
	"github.com/todoapp/todo-api/internal/services"
	"github.com/todoapp/todo-api/internal/utils"
)

// TaskHandler coordinates task CRUD HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns a page of tasks. Admin only, enforced by the router.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	page := utils.GetPaginationParams(c)

	tasks, err := h.taskService.FindAll(c.Request.Context(), page)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, page))
}

// GetTask returns a task by id.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.taskService.FindByID(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*task))
}

// CreateTask creates a task owned by the authenticated caller.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.TaskSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Save(c.Request.Context(), req.ToModel())
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskResponse(*task))
}

// UpdateTask partially updates a task: omitted fields keep their stored values.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), id, req.ToModel())
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*task))
}

// DeleteTask removes a task by id.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteByID(c.Request.Context(), id); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteAllTasks truncates the task table. Admin only, enforced by the router.
func (h *TaskHandler) DeleteAllTasks(c *gin.Context) {
	if err := h.taskService.DeleteAll(c.Request.Context()); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
