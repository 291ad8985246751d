package dto

import "taskmanager/internal/services"

// NotificationResponse represents a deadline notification in API responses.
// ExpiresIn is rendered as a duration string rather than raw nanoseconds.
type NotificationResponse struct {
	UserID    uint64 `json:"user_id"`
	TaskID    uint64 `json:"task_id"`
	ExpiresIn string `json:"expires_in"`
	Message   string `json:"message"`
}

// FromNotification converts a derived notification to its response form
func FromNotification(n services.Notification) NotificationResponse {
	return NotificationResponse{
		UserID:    n.UserID,
		TaskID:    n.TaskID,
		ExpiresIn: n.ExpiresIn.String(),
		Message:   n.Message,
	}
}
