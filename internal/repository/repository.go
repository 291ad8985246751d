package repository

import (
	"taskmanager/internal/models"
	"taskmanager/internal/specification"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create persists a new task together with its subtasks
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// Match retrieves the tasks satisfying all given specifications
	Match(specs ...specification.Specification) ([]models.Task, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete removes a task and its subtasks
	Delete(id uint64) error
}

// SubtaskRepository defines the interface for subtask data access
type SubtaskRepository interface {
	// Create persists a new subtask
	Create(subtask *models.Subtask) error

	// FindByID finds a subtask by ID
	FindByID(id uint64) (*models.Subtask, error)

	// ListByTaskID retrieves all subtasks of a task
	ListByTaskID(taskID uint64) ([]models.Subtask, error)

	// Update persists changes to a subtask
	Update(subtask *models.Subtask) error

	// Delete removes a subtask
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// ListActive retrieves all users that have not been deactivated
	ListActive() ([]models.User, error)

	// ActiveEmailExists reports whether an active user holds the given email
	ActiveEmailExists(email string) (bool, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// Delete removes a user row. Only the compensating path of registration
	// uses this; deactivation keeps the row and flips its state.
	Delete(user *models.User) error
}
