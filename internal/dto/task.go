package dto

import (
	"time"

	"tasktracker/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	UserID   string            `json:"user_id"`
	Username string            `json:"username"`
	Role     models.UserRole   `json:"role,omitempty"`
	Status   models.UserStatus `json:"status,omitempty"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	TaskID      string              `json:"task_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	CreatorID   string              `json:"creator_id"`
	Deadline    string              `json:"deadline"`
	Priority    models.TaskPriority `json:"priority"`
	Status      models.TaskStatus   `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Assignees   []UserDTO           `json:"assignees,omitempty"`
	AssigneeIDs []string            `json:"assignee_ids"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks []TaskDTO `json:"tasks"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Total int64     `json:"total"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		UserID:   user.UserID,
		Username: user.Username,
		Role:     user.Role,
		Status:   user.Status,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		TaskID:      task.TaskID,
		Title:       task.Title,
		Description: task.Description,
		CreatorID:   task.CreatorID,
		Deadline:    task.Deadline.UTC().Format("2006-01-02"),
		Priority:    task.Priority,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		AssigneeIDs: make([]string, 0, len(task.Assignments)),
	}

	for _, assignment := range task.Assignments {
		dto.AssigneeIDs = append(dto.AssigneeIDs, assignment.UserID)
		if assignment.User.UserID != "" {
			dto.Assignees = append(dto.Assignees, ToUserDTO(assignment.User))
		}
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, limit int, total int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks: items,
		Page:  page,
		Limit: limit,
		Total: total,
	}
}
