package models

import "time"

// ActivityLog is an append-only audit trail entry. Entries are written
// fire-and-forget; a failed append never rolls back the operation that
// produced it.
type ActivityLog struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    string    `gorm:"type:varchar(10);not null;index" json:"user_id"`
	Action    string    `gorm:"type:text;not null" json:"action"`
	CreatedAt time.Time `json:"created_at"`
}
