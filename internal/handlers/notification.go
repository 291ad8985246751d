package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/dto"
	apierrors "taskmanager/internal/errors"
	"taskmanager/internal/middleware"
	"taskmanager/internal/services"
)

// NotificationHandler handles derived deadline notifications
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GetNotifications returns the target user's upcoming deadline alerts
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	notifications, err := h.notificationService.GetNotifications(caller, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, dto.FromNotification(n))
	}

	c.JSON(http.StatusOK, responses)
}
