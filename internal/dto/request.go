package dto

import (
	"time"

	"tasktracker/internal/models"
)

// StatusChangeRequestDTO represents a status-change request in API responses
type StatusChangeRequestDTO struct {
	ID              uint64              `json:"id"`
	TaskID          string              `json:"task_id"`
	TaskTitle       string              `json:"task_title,omitempty"`
	UserID          string              `json:"user_id"`
	Username        string              `json:"user_name,omitempty"`
	CurrentStatus   models.TaskStatus   `json:"current_status"`
	RequestedStatus models.TaskStatus   `json:"requested_status"`
	RequestReason   string              `json:"request_reason"`
	ReviewStatus    models.ReviewStatus `json:"review_status"`
	AdminResponse   string              `json:"admin_response,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ToStatusChangeRequestDTO converts a StatusChangeRequest model to its DTO
func ToStatusChangeRequestDTO(req models.StatusChangeRequest) StatusChangeRequestDTO {
	dto := StatusChangeRequestDTO{
		ID:              req.ID,
		TaskID:          req.TaskID,
		UserID:          req.UserID,
		CurrentStatus:   req.CurrentStatus,
		RequestedStatus: req.RequestedStatus,
		RequestReason:   req.RequestReason,
		ReviewStatus:    req.ReviewStatus,
		AdminResponse:   req.AdminResponse,
		CreatedAt:       req.CreatedAt,
		UpdatedAt:       req.UpdatedAt,
	}

	if req.Task.TaskID != "" {
		dto.TaskTitle = req.Task.Title
	}
	if req.User.UserID != "" {
		dto.Username = req.User.Username
	}

	return dto
}

// ToStatusChangeRequestDTOs converts a slice of requests
func ToStatusChangeRequestDTOs(requests []models.StatusChangeRequest) []StatusChangeRequestDTO {
	items := make([]StatusChangeRequestDTO, len(requests))
	for i, req := range requests {
		items[i] = ToStatusChangeRequestDTO(req)
	}
	return items
}
