package models

import "time"

type NotificationSeverity string

const (
	SeverityInfo    NotificationSeverity = "info"
	SeverityWarning NotificationSeverity = "warning"
	SeverityDanger  NotificationSeverity = "danger"
)

// Notification is a message delivered to a single user, optionally tied to a
// task. The unique index on (user_id, task_id, type) is what makes deadline
// notifications idempotent: the same threshold can never fire twice for the
// same user and task.
type Notification struct {
	ID        uint64               `gorm:"primarykey" json:"id"`
	UserID    string               `gorm:"type:varchar(10);not null;uniqueIndex:uniq_user_task_type;index" json:"user_id"`
	TaskID    *string              `gorm:"type:varchar(10);uniqueIndex:uniq_user_task_type" json:"task_id"`
	Type      string               `gorm:"type:varchar(50);not null;uniqueIndex:uniq_user_task_type" json:"type"`
	Title     string               `gorm:"type:varchar(255);not null" json:"title"`
	Message   string               `gorm:"type:text;not null" json:"message"`
	Severity  NotificationSeverity `gorm:"type:varchar(10);not null;default:'info'" json:"severity"`
	CreatedAt time.Time            `gorm:"index" json:"created_at"`
	ReadAt    *time.Time           `json:"read_at"`
}

// Read reports whether the notification has been marked read.
func (n *Notification) Read() bool {
	return n.ReadAt != nil
}
