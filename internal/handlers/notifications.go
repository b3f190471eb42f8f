package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook/internal/middleware"
	"medibook/internal/models"
	"medibook/internal/utils"
)

// NotificationHandler serves a user's in-app notifications.
type NotificationHandler struct {
	DB *gorm.DB
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{DB: db}
}

// GetNotifications lists the caller's notifications, newest first.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	notifications := make([]models.Notification, 0)
	err := h.DB.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch notifications", err)
		return
	}
	utils.Success(c, notifications)
}

// MarkNotificationRead flags one of the caller's notifications as read.
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	notificationID, err := middleware.ParseID(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid notification ID format")
		return
	}

	db := h.DB.WithContext(c.Request.Context())
	var notification models.Notification
	if err := db.First(&notification, notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Notification not found")
		} else {
			utils.InternalServerError(c, "Failed to update notification", err)
		}
		return
	}
	if notification.UserID != userID {
		utils.Forbidden(c, "Unauthorized")
		return
	}

	if !notification.IsRead {
		err := db.Model(&models.Notification{}).
			Where("id = ? AND user_id = ?", notification.ID, userID).
			Update("is_read", true).Error
		if err != nil {
			utils.InternalServerError(c, "Failed to update notification", err)
			return
		}
	}

	utils.Message(c, "Notification marked as read")
}
