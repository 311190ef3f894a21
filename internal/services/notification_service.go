package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"tasktracker/internal/models"
	"tasktracker/internal/repository"
)

var ErrNotificationNotFound = errors.New("notification not found")

// DeadlineThreshold is one lead-time boundary before a deadline at which a
// warning fires once per (user, task).
type DeadlineThreshold struct {
	Window   time.Duration
	Label    string
	Severity models.NotificationSeverity
}

// FireWindow is the tolerance around a threshold crossing within which the
// scan still considers the crossing "just happened". The scan must run at an
// interval no coarser than this window or crossings can be missed entirely;
// the cron cadence and this constant move together.
const FireWindow = 5 * time.Minute

// deadlineThresholds is evaluated in order for every (task, assignee) pair.
var deadlineThresholds = []DeadlineThreshold{
	{7 * 24 * time.Hour, "7d", models.SeverityInfo},
	{24 * time.Hour, "1d", models.SeverityWarning},
	{12 * time.Hour, "12h", models.SeverityWarning},
	{6 * time.Hour, "6h", models.SeverityWarning},
	{3 * time.Hour, "3h", models.SeverityWarning},
	{1 * time.Hour, "1h", models.SeverityDanger},
}

// NotificationService owns the deadline scan and the notification read APIs.
type NotificationService struct {
	taskRepo  repository.TaskRepository
	notifRepo repository.NotificationRepository
	clock     func() time.Time
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(taskRepo repository.TaskRepository, notifRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{
		taskRepo:  taskRepo,
		notifRepo: notifRepo,
		clock:     time.Now,
	}
}

// SetClock overrides the service's time source (used for testing)
func (s *NotificationService) SetClock(clock func() time.Time) {
	s.clock = clock
}

// RunDeadlineScan evaluates every active task against the threshold table at
// the given instant and inserts one notification per newly crossed
// (user, task, threshold). Duplicate fires no-op on the storage key, so
// overlapping or repeated runs are safe. A failure for one pair is logged and
// the scan continues; only a failure to fetch the task set aborts the run.
// Returns the number of notifications actually written.
func (s *NotificationService) RunDeadlineScan(now time.Time) (int, error) {
	tasks, err := s.taskRepo.ListActiveWithAssignees()
	if err != nil {
		return 0, fmt.Errorf("failed to fetch active tasks: %w", err)
	}

	now = now.UTC()
	created := 0

	for i := range tasks {
		task := &tasks[i]
		delta := task.DeadlineInstant().Sub(now)

		for _, a := range task.Assignments {
			n, err := s.evaluatePair(task, a.UserID, delta)
			if err != nil {
				log.Printf("deadline scan: task %s user %s: %v", task.TaskID, a.UserID, err)
				continue
			}
			created += n
		}
	}

	return created, nil
}

// evaluatePair fires every threshold whose boundary was crossed within the
// fire window, plus the one-shot overdue notification.
func (s *NotificationService) evaluatePair(task *models.Task, userID string, delta time.Duration) (int, error) {
	created := 0

	for _, th := range deadlineThresholds {
		if delta <= th.Window && delta > th.Window-FireWindow {
			ok, err := s.notifRepo.InsertIfAbsent(&models.Notification{
				UserID:   userID,
				TaskID:   &task.TaskID,
				Type:     "deadline_" + th.Label,
				Title:    "Upcoming Deadline",
				Message:  fmt.Sprintf("Task '%s' deadline in %s", task.Title, th.Label),
				Severity: th.Severity,
			})
			if err != nil {
				return created, err
			}
			if ok {
				created++
			}
		}
	}

	if delta <= 0 && delta > -FireWindow {
		ok, err := s.notifRepo.InsertIfAbsent(&models.Notification{
			UserID:   userID,
			TaskID:   &task.TaskID,
			Type:     "deadline_overdue",
			Title:    "Task Overdue",
			Message:  fmt.Sprintf("Task '%s' is now overdue", task.Title),
			Severity: models.SeverityDanger,
		})
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}

	return created, nil
}

// ListNotifications returns a user's newest notifications and the unread count
func (s *NotificationService) ListNotifications(userID string, limit int) ([]models.Notification, int64, error) {
	items, unread, err := s.notifRepo.ListByUser(userID, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return items, unread, nil
}

// MarkRead stamps one notification as read
func (s *NotificationService) MarkRead(id uint64) error {
	if err := s.notifRepo.MarkRead(id, s.clock().UTC()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead stamps every unread notification of a user as read
func (s *NotificationService) MarkAllRead(userID string) error {
	if err := s.notifRepo.MarkAllRead(userID, s.clock().UTC()); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
