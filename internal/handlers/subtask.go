package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/dto"
	apierrors "taskmanager/internal/errors"
	"taskmanager/internal/middleware"
	"taskmanager/internal/services"
)

// SubtaskHandler handles subtask endpoints nested under a task
type SubtaskHandler struct {
	subtaskService *services.SubtaskService
}

// NewSubtaskHandler creates a new SubtaskHandler
func NewSubtaskHandler(subtaskService *services.SubtaskService) *SubtaskHandler {
	return &SubtaskHandler{subtaskService: subtaskService}
}

// ListSubtasks returns the subtasks of a task
func (h *SubtaskHandler) ListSubtasks(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	subtasks, err := h.subtaskService.ListForTask(caller, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subtasks)
}

// GetSubtask returns a subtask by id
func (h *SubtaskHandler) GetSubtask(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	subtaskID, ok := pathID(c, "subtask_id")
	if !ok {
		return
	}

	subtask, err := h.subtaskService.GetByID(caller, subtaskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subtask)
}

// CreateSubtask adds a subtask to a task
func (h *SubtaskHandler) CreateSubtask(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	var req dto.CreateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	subtask, err := h.subtaskService.Add(caller, taskID, services.CreateSubtaskInput{Name: req.Name})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, subtask)
}

// UpdateSubtask overwrites a subtask's name and state
func (h *SubtaskHandler) UpdateSubtask(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	subtaskID, ok := pathID(c, "subtask_id")
	if !ok {
		return
	}

	var req dto.UpdateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	subtask, err := h.subtaskService.Update(caller, subtaskID, services.UpdateSubtaskInput{
		Name:  req.Name,
		State: req.State,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subtask)
}

// DeleteSubtask removes a subtask
func (h *SubtaskHandler) DeleteSubtask(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	subtaskID, ok := pathID(c, "subtask_id")
	if !ok {
		return
	}

	if err := h.subtaskService.Delete(caller, subtaskID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
