package models

import "time"

// TaskAssignment links a task to one of the users responsible for it.
// The composite unique index makes the pair unique at the storage layer.
type TaskAssignment struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	TaskID     string    `gorm:"type:varchar(10);not null;uniqueIndex:uniq_task_user" json:"task_id"`
	UserID     string    `gorm:"type:varchar(10);not null;uniqueIndex:uniq_task_user;index" json:"user_id"`
	AssignedAt time.Time `gorm:"autoCreateTime" json:"assigned_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID;references:TaskID" json:"task,omitempty"`
	User User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}
