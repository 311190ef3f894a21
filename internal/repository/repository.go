package repository

import (
	"time"

	"tasktracker/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateWithAssignments allocates a task ID and inserts the task together
	// with one assignment row per assignee, all in a single transaction.
	CreateWithAssignments(task *models.Task, assigneeIDs []string, yearKey string) error

	// FindByTaskID finds a task by its business identifier with optional preloading
	FindByTaskID(taskID string, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task and its assignments
	Delete(taskID string) error

	// ListActiveWithAssignees returns every todo/inProgress task with its
	// assignments preloaded. This is the deadline scheduler's feed.
	ListActiveWithAssignees() ([]models.Task, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	CreatorID  *string
	AssigneeID *string
	Page       int
	PageSize   int
}

// RequestRepository defines the interface for status-change request data access
type RequestRepository interface {
	// CreatePending inserts a new pending request. A pending request already
	// existing for the same (task, user) pair surfaces as gorm.ErrDuplicatedKey.
	CreatePending(req *models.StatusChangeRequest) error

	// FindByID finds a request by ID
	FindByID(id uint64) (*models.StatusChangeRequest, error)

	// ListPending lists pending requests, optionally restricted to one user
	ListPending(userID *string) ([]models.StatusChangeRequest, error)

	// Resolve moves a pending request to approved or rejected exactly once and,
	// on approval, updates the task's status in the same transaction. A request
	// that does not exist or is no longer pending yields gorm.ErrRecordNotFound.
	Resolve(id uint64, status models.ReviewStatus, adminResponse string) (*models.StatusChangeRequest, error)
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// InsertIfAbsent inserts the notification unless one with the same
	// (user, task, type) key already exists. Returns whether a row was written.
	InsertIfAbsent(n *models.Notification) (bool, error)

	// ListByUser returns the newest notifications for a user plus the unread count
	ListByUser(userID string, limit int) ([]models.Notification, int64, error)

	// MarkRead stamps a single notification as read
	MarkRead(id uint64, at time.Time) error

	// MarkAllRead stamps every unread notification of a user as read
	MarkAllRead(userID string, at time.Time) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create allocates a user ID and inserts the user in one transaction
	Create(user *models.User, yearKey string) error

	// FindByUserID finds a user by business identifier
	FindByUserID(userID string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// CountActiveByIDs counts how many of the given user IDs refer to active users
	CountActiveByIDs(userIDs []string) (int64, error)

	// ExistsActive reports whether the user exists and is active
	ExistsActive(userID string) (bool, error)

	// Username resolves a user ID to its display name
	Username(userID string) (string, error)
}

// ActivityLogRepository defines the interface for the append-only audit trail
type ActivityLogRepository interface {
	// Append inserts a single audit entry
	Append(entry *models.ActivityLog) error
}
