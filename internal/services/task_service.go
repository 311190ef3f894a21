package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"tasktracker/internal/models"
	"tasktracker/internal/repository"
	"tasktracker/internal/utils"
)

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrNoAssignees      = errors.New("at least one assignee is required")
	ErrInvalidAssignee  = errors.New("one or more assignees do not exist or are inactive")
	ErrDeadlinePast     = errors.New("deadline cannot be in the past")
	ErrInvalidPriority  = errors.New("invalid task priority")
	ErrInvalidStatus    = errors.New("invalid task status")
	ErrTaskNotFound     = errors.New("task not found")
	ErrTitleEmpty       = errors.New("title cannot be empty")
	ErrTaskIDsExhausted = errors.New("task identifiers for this year are exhausted")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	audit    *AuditLogger
	clock    func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, audit *AuditLogger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		audit:    audit,
		clock:    time.Now,
	}
}

// SetClock overrides the service's time source (used for testing)
func (s *TaskService) SetClock(clock func() time.Time) {
	s.clock = clock
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	AssigneeIDs []string
	Deadline    time.Time
	Priority    models.TaskPriority
	Status      models.TaskStatus
	CreatorID   string
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	CreatorID  *string
	AssigneeID *string
	Page       int
	PageSize   int
}

// UpdateTaskInput represents input for updating a task directly (admin edit)
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Deadline    *time.Time
	Priority    *models.TaskPriority
	Status      *models.TaskStatus
}

// CreateTask validates the input, then allocates an identifier and inserts the
// task with all its assignment rows as one atomic unit. On any failure nothing
// persists: no task, no assignments, no counter increment.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	assigneeIDs := uniqueStrings(input.AssigneeIDs)
	if len(assigneeIDs) == 0 {
		return nil, ErrNoAssignees
	}

	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	now := s.clock().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	deadline := input.Deadline.UTC()
	deadlineDay := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 0, 0, 0, 0, time.UTC)
	if deadlineDay.Before(today) {
		return nil, ErrDeadlinePast
	}

	count, err := s.userRepo.CountActiveByIDs(assigneeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to verify assignees: %w", err)
	}
	if int(count) != len(assigneeIDs) {
		return nil, ErrInvalidAssignee
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		CreatorID:   input.CreatorID,
		Deadline:    deadlineDay,
		Priority:    input.Priority,
		Status:      input.Status,
	}

	if err := s.taskRepo.CreateWithAssignments(task, assigneeIDs, utils.YearKey(now)); err != nil {
		if errors.Is(err, repository.ErrSequenceExhausted) {
			return nil, ErrTaskIDsExhausted
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.audit.Append(input.CreatorID, fmt.Sprintf(
		"Created task '%s' (%s) assigned to %d user(s)", task.Title, task.TaskID, len(assigneeIDs)))

	return s.taskRepo.FindByTaskID(task.TaskID, "Assignments", "Assignments.User")
}

// GetTask returns a task with its assignees
func (s *TaskService) GetTask(taskID string) (*models.Task, error) {
	task, err := s.taskRepo.FindByTaskID(taskID, "Assignments", "Assignments.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// ListTasks returns tasks matching the provided filters
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		Status:     input.Status,
		Priority:   input.Priority,
		CreatorID:  input.CreatorID,
		AssigneeID: input.AssigneeID,
		Page:       input.Page,
		PageSize:   input.PageSize,
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// UpdateTask applies a direct admin edit to a task. This bypasses the
// status-change workflow; members go through WorkflowService instead.
func (s *TaskService) UpdateTask(taskID string, input UpdateTaskInput, actorID string) (*models.Task, error) {
	task, err := s.taskRepo.FindByTaskID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Deadline != nil {
		d := input.Deadline.UTC()
		task.Deadline = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.audit.Append(actorID, fmt.Sprintf("Updated task '%s' (%s)", task.Title, task.TaskID))

	return s.taskRepo.FindByTaskID(task.TaskID, "Assignments", "Assignments.User")
}

// DeleteTask removes a task and its assignments
func (s *TaskService) DeleteTask(taskID, actorID string) error {
	task, err := s.taskRepo.FindByTaskID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.audit.Append(actorID, fmt.Sprintf("Deleted task '%s' (%s)", task.Title, task.TaskID))

	return nil
}

// uniqueStrings removes duplicate and empty values while preserving order
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		if v == "" {
			continue
		}
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
