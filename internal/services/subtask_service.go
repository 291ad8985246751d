package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"taskmanager/internal/auth"
	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/models"
	"taskmanager/internal/repository"
)

// SubtaskService handles subtask business logic. A subtask has no owner of
// its own; access is decided against the parent task's owner. Both absence
// and an ownership mismatch are answered with NotFound so that one user can
// never learn about another user's resources through an error-kind
// difference.
type SubtaskService struct {
	taskRepo    repository.TaskRepository
	subtaskRepo repository.SubtaskRepository
}

// NewSubtaskService creates a new SubtaskService
func NewSubtaskService(taskRepo repository.TaskRepository, subtaskRepo repository.SubtaskRepository) *SubtaskService {
	return &SubtaskService{
		taskRepo:    taskRepo,
		subtaskRepo: subtaskRepo,
	}
}

// CreateSubtaskInput represents input for creating a subtask
type CreateSubtaskInput struct {
	Name string
}

// UpdateSubtaskInput represents input for updating a subtask. Full replace of
// the mutable fields.
type UpdateSubtaskInput struct {
	Name  string
	State models.TaskState
}

// ListForTask returns the subtasks of a task visible to the caller.
func (s *SubtaskService) ListForTask(caller auth.Caller, taskID uint64) ([]models.Subtask, error) {
	if _, err := s.visibleTask(caller, taskID); err != nil {
		return nil, err
	}

	subtasks, err := s.subtaskRepo.ListByTaskID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subtasks: %w", err)
	}

	return subtasks, nil
}

// GetByID returns a subtask by id, hiding subtasks of other users' tasks.
func (s *SubtaskService) GetByID(caller auth.Caller, subtaskID uint64) (*models.Subtask, error) {
	return s.visibleSubtask(caller, subtaskID)
}

// Add creates a subtask under a task visible to the caller. The subtask
// starts out pending.
func (s *SubtaskService) Add(caller auth.Caller, taskID uint64, input CreateSubtaskInput) (*models.Subtask, error) {
	task, err := s.visibleTask(caller, taskID)
	if err != nil {
		return nil, err
	}

	subtask := &models.Subtask{
		Name:   input.Name,
		State:  models.TaskStatePending,
		TaskID: task.ID,
	}

	if err := s.subtaskRepo.Create(subtask); err != nil {
		return nil, fmt.Errorf("failed to create subtask: %w", err)
	}

	return subtask, nil
}

// Update overwrites a subtask's name and state.
func (s *SubtaskService) Update(caller auth.Caller, subtaskID uint64, input UpdateSubtaskInput) (*models.Subtask, error) {
	subtask, err := s.visibleSubtask(caller, subtaskID)
	if err != nil {
		return nil, err
	}

	subtask.Name = input.Name
	subtask.State = input.State

	if err := s.subtaskRepo.Update(subtask); err != nil {
		return nil, fmt.Errorf("failed to update subtask: %w", err)
	}

	return subtask, nil
}

// Delete removes a subtask visible to the caller.
func (s *SubtaskService) Delete(caller auth.Caller, subtaskID uint64) error {
	subtask, err := s.visibleSubtask(caller, subtaskID)
	if err != nil {
		return err
	}

	if err := s.subtaskRepo.Delete(subtask.ID); err != nil {
		return fmt.Errorf("failed to delete subtask: %w", err)
	}

	return nil
}

// visibleTask loads a task and reports NotFound both when it is absent and
// when the caller may not see it.
func (s *SubtaskService) visibleTask(caller auth.Caller, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
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

// visibleSubtask loads a subtask, resolves ownership through its parent task
// and reports NotFound for absence and mismatch alike.
func (s *SubtaskService) visibleSubtask(caller auth.Caller, subtaskID uint64) (*models.Subtask, error) {
	subtask, err := s.subtaskRepo.FindByID(subtaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Subtask", subtaskID)
		}
		return nil, fmt.Errorf("failed to find subtask: %w", err)
	}

	task, err := s.taskRepo.FindByID(subtask.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to find parent task: %w", err)
	}

	if !caller.CanAccess(task.UserID) {
		return nil, apperrors.NewNotFound("Subtask", subtaskID)
	}

	return subtask, nil
}
