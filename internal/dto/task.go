package dto

import (
	"time"

	"taskmanager/internal/models"
)

// CreateSubtaskRequest is the contract for creating a subtask
type CreateSubtaskRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateTaskRequest is the contract for creating a task. The initial state is
// always pending and cannot be supplied.
type CreateTaskRequest struct {
	Name     string                 `json:"name" binding:"required"`
	Deadline *time.Time             `json:"deadline"`
	Category string                 `json:"category"`
	Subtasks []CreateSubtaskRequest `json:"subtasks"`
}

// UpdateTaskRequest is the contract for updating a task. All mutable fields
// are replaced; omitting the deadline clears it.
type UpdateTaskRequest struct {
	Name     string           `json:"name" binding:"required"`
	State    models.TaskState `json:"state"`
	Deadline *time.Time       `json:"deadline"`
}

// UpdateSubtaskRequest is the contract for updating a subtask
type UpdateSubtaskRequest struct {
	Name  string           `json:"name" binding:"required"`
	State models.TaskState `json:"state"`
}

// TaskListQuery carries the optional listing filters. Repeated query
// parameters; an absent parameter means no restriction on that dimension.
type TaskListQuery struct {
	Categories []string `form:"categories"`
	States     []string `form:"states"`
}
