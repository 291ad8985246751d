package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskmanager/internal/auth"
	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/models"
	"taskmanager/internal/repository"
	"taskmanager/internal/specification"
)

// TaskService handles task business logic. Every operation takes the caller
// identity and consults the access policy before touching the store.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// TaskFilters narrows a task listing. An empty slice means no restriction on
// that dimension, not "match nothing".
type TaskFilters struct {
	Categories []string
	States     []models.TaskState
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Name     string
	Deadline *time.Time
	Category string
	Subtasks []CreateSubtaskInput
}

// UpdateTaskInput represents input for updating a task. Updates are a full
// replace of the mutable fields, not a partial merge.
type UpdateTaskInput struct {
	Name     string
	State    models.TaskState
	Deadline *time.Time
}

// ListForUser returns the tasks owned by targetUserID, narrowed by filters.
// The target user id is named explicitly by the caller, so a mismatch is
// answered with Forbidden rather than NotFound.
func (s *TaskService) ListForUser(caller auth.Caller, targetUserID uint64, filters TaskFilters) ([]models.Task, error) {
	if !caller.CanAccess(targetUserID) {
		return nil, apperrors.ErrForbidden
	}

	specs := []specification.Specification{
		specification.BelongsToUser(targetUserID),
	}
	if len(filters.Categories) != 0 {
		specs = append(specs, specification.CategoryIn(filters.Categories))
	}
	if len(filters.States) != 0 {
		specs = append(specs, specification.StateIn(filters.States))
	}

	tasks, err := s.taskRepo.Match(specs...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// GetByID returns a task by id. A task owned by someone else is reported as
// absent, so a caller probing ids cannot learn that another user's task
// exists.
func (s *TaskService) GetByID(caller auth.Caller, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Subtasks")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Task", taskID)
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !caller.CanAccess(task.UserID) {
		return nil, apperrors.NewNotFound("Task", taskID)
	}

	return task, nil
}

// Create creates a task for targetUserID. The task and any supplied subtasks
// start out pending regardless of what the contract carries.
func (s *TaskService) Create(caller auth.Caller, targetUserID uint64, input CreateTaskInput) (*models.Task, error) {
	if !caller.CanAccess(targetUserID) {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.userRepo.FindByID(targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("User", targetUserID)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.State == models.UserStateDeleted {
		return nil, apperrors.NewNotFound("User", targetUserID)
	}

	var deadline *time.Time
	if input.Deadline != nil {
		utc := input.Deadline.UTC()
		deadline = &utc
	}

	subtasks := make([]models.Subtask, 0, len(input.Subtasks))
	for _, sub := range input.Subtasks {
		subtasks = append(subtasks, models.Subtask{
			Name:  sub.Name,
			State: models.TaskStatePending,
		})
	}

	task := &models.Task{
		Name:     input.Name,
		State:    models.TaskStatePending,
		Deadline: deadline,
		Category: input.Category,
		UserID:   user.ID,
		Subtasks: subtasks,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Update overwrites a task's name, state and deadline. The owning user never
// changes.
func (s *TaskService) Update(caller auth.Caller, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Task", taskID)
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !caller.CanAccess(task.UserID) {
		return nil, apperrors.ErrForbidden
	}

	task.Name = input.Name
	task.State = input.State
	task.Deadline = input.Deadline

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Delete removes a task together with its subtasks.
func (s *TaskService) Delete(caller auth.Caller, taskID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("Task", taskID)
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if !caller.CanAccess(task.UserID) {
		return apperrors.ErrForbidden
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
