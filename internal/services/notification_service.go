package services

import (
	"fmt"
	"time"

	"taskmanager/internal/auth"
	"taskmanager/internal/clock"
	"taskmanager/internal/constants"
	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/repository"
	"taskmanager/internal/specification"
)

// Notification is an expiry alert derived from task state. It is computed
// fresh on every call and never persisted.
type Notification struct {
	UserID    uint64        `json:"user_id"`
	TaskID    uint64        `json:"task_id"`
	ExpiresIn time.Duration `json:"expires_in"`
	Message   string        `json:"message"`
}

// NotificationService derives deadline notifications from tasks. The clock is
// injected so the derivation is a pure function of store contents and the
// current instant.
type NotificationService struct {
	taskRepo repository.TaskRepository
	clock    clock.Clock
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(taskRepo repository.TaskRepository, clk clock.Clock) *NotificationService {
	return &NotificationService{
		taskRepo: taskRepo,
		clock:    clk,
	}
}

// GetNotifications returns one notification per task of targetUserID whose
// deadline falls within the next 24 hours. Both interval ends are inclusive:
// a task due exactly now or exactly 24 hours from now is reported.
func (s *NotificationService) GetNotifications(caller auth.Caller, targetUserID uint64) ([]Notification, error) {
	if !caller.CanAccess(targetUserID) {
		return nil, apperrors.ErrForbidden
	}

	now := s.clock.Now()

	tasks, err := s.taskRepo.Match(
		specification.BelongsToUser(targetUserID),
		specification.DeadlineBetween(now, now.Add(constants.NotificationWindow)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}

	notifications := make([]Notification, 0, len(tasks))
	for _, task := range tasks {
		expiresIn := task.Deadline.Sub(now)
		notifications = append(notifications, Notification{
			UserID:    task.UserID,
			TaskID:    task.ID,
			ExpiresIn: expiresIn,
			Message:   fmt.Sprintf("This task expires in %s", expiresIn),
		})
	}

	return notifications, nil
}
