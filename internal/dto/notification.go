package dto

import (
	"time"

	"tasktracker/internal/models"
)

// NotificationDTO represents a notification in API responses
type NotificationDTO struct {
	ID        uint64                      `json:"id"`
	UserID    string                      `json:"user_id"`
	TaskID    *string                     `json:"task_id"`
	Type      string                      `json:"type"`
	Title     string                      `json:"title"`
	Message   string                      `json:"message"`
	Severity  models.NotificationSeverity `json:"severity"`
	CreatedAt time.Time                   `json:"created_at"`
	ReadAt    *time.Time                  `json:"read_at"`
}

// NotificationListResponse bundles a user's notifications with the unread count
type NotificationListResponse struct {
	Notifications []NotificationDTO `json:"notifications"`
	Unread        int64             `json:"unread"`
}

// ToNotificationDTO converts a Notification model to its DTO
func ToNotificationDTO(n models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID,
		UserID:    n.UserID,
		TaskID:    n.TaskID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Severity:  n.Severity,
		CreatedAt: n.CreatedAt,
		ReadAt:    n.ReadAt,
	}
}

// ToNotificationListResponse converts notifications plus unread count
func ToNotificationListResponse(items []models.Notification, unread int64) NotificationListResponse {
	dtos := make([]NotificationDTO, len(items))
	for i, n := range items {
		dtos[i] = ToNotificationDTO(n)
	}
	return NotificationListResponse{
		Notifications: dtos,
		Unread:        unread,
	}
}
