package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/dto"
	apierrors "taskmanager/internal/errors"
	"taskmanager/internal/middleware"
	"taskmanager/internal/models"
	"taskmanager/internal/services"
)

// TaskHandler handles task endpoints nested under a user
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks returns the target user's tasks, optionally narrowed by
// categories and states. Absent filter parameters mean no restriction.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var query dto.TaskListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	states := make([]models.TaskState, 0, len(query.States))
	for _, state := range query.States {
		states = append(states, models.TaskState(state))
	}

	tasks, err := h.taskService.ListForUser(caller, userID, services.TaskFilters{
		Categories: query.Categories,
		States:     states,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// GetTask returns a task by id
func (h *TaskHandler) GetTask(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	task, err := h.taskService.GetByID(caller, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// CreateTask creates a task for the target user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	subtasks := make([]services.CreateSubtaskInput, 0, len(req.Subtasks))
	for _, sub := range req.Subtasks {
		subtasks = append(subtasks, services.CreateSubtaskInput{Name: sub.Name})
	}

	task, err := h.taskService.Create(caller, userID, services.CreateTaskInput{
		Name:     req.Name,
		Deadline: req.Deadline,
		Category: req.Category,
		Subtasks: subtasks,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask overwrites a task's name, state and deadline
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	task, err := h.taskService.Update(caller, taskID, services.UpdateTaskInput{
		Name:     req.Name,
		State:    req.State,
		Deadline: req.Deadline,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task together with its subtasks
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	if err := h.taskService.Delete(caller, taskID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
