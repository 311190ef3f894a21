package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "inProgress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether the status is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Valid reports whether the priority is one of the known task priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work assigned to one or more users. TaskID is the
// human-readable business identifier (T<yy><seq>) and is immutable once
// allocated; relations reference it rather than the surrogate primary key.
type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	TaskID      string         `gorm:"type:varchar(10);uniqueIndex;not null" json:"task_id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	CreatorID   string         `gorm:"type:varchar(100);not null;index" json:"creator_id"`
	Deadline    time.Time      `gorm:"not null;index" json:"deadline"`
	Priority    TaskPriority   `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Status      TaskStatus     `gorm:"type:varchar(20);not null;default:'todo';index" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID;references:TaskID" json:"assignments,omitempty"`
}

// DeadlineInstant returns the moment the task becomes due: the end of the
// deadline's calendar day in UTC.
func (t *Task) DeadlineInstant() time.Time {
	d := t.Deadline.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
}
