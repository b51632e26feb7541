package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/middleware"
	"hospital-management-server/internal/notify"
	"hospital-management-server/internal/utils"
)

// NotificationHandler exposes a user's notification inbox.
type NotificationHandler struct {
	Recorder *notify.Recorder
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(recorder *notify.Recorder) *NotificationHandler {
	return &NotificationHandler{Recorder: recorder}
}

// GetNotifications lists the caller's notifications, newest first.
// ?unread=true limits the listing to unread entries.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	unreadOnly := c.Query("unread") == "true"
	notifications, err := h.Recorder.ForUser(userID, unreadOnly)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch notifications: "+err.Error())
		return
	}
	utils.Success(c, "Notifications fetched successfully", notifications)
}

// MarkNotificationRead flags one of the caller's notifications as read.
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	err := h.Recorder.MarkRead(c.Param("id"), userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.NotFound(c, "Notification not found")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "Failed to mark notification as read: "+err.Error())
		return
	}
	utils.Success(c, "Notification marked as read", nil)
}
