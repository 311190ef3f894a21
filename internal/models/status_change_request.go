package models

import "time"

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// CanTransition reports whether a request may move from its current review
// status to the given one. The only legal transitions are
// pending -> approved and pending -> rejected; requests are never re-opened.
func (s ReviewStatus) CanTransition(to ReviewStatus) bool {
	return s == ReviewStatusPending &&
		(to == ReviewStatusApproved || to == ReviewStatusRejected)
}

// StatusChangeRequest is a member's request to move a task to a new status,
// resolved exactly once by an admin.
//
// PendingKey is "<task_id>/<user_id>" while the request is pending and NULL
// once reviewed. The unique index on it enforces "at most one pending request
// per (task, user)" at the storage layer; NULLs do not collide, so any number
// of resolved requests may exist for the same pair.
type StatusChangeRequest struct {
	ID              uint64       `gorm:"primarykey" json:"id"`
	TaskID          string       `gorm:"type:varchar(10);not null;index" json:"task_id"`
	UserID          string       `gorm:"type:varchar(10);not null;index" json:"user_id"`
	CurrentStatus   TaskStatus   `gorm:"type:varchar(20);not null" json:"current_status"`
	RequestedStatus TaskStatus   `gorm:"type:varchar(20);not null" json:"requested_status"`
	RequestReason   string       `gorm:"type:text" json:"request_reason"`
	ReviewStatus    ReviewStatus `gorm:"type:varchar(10);not null;default:'pending';index" json:"review_status"`
	AdminResponse   string       `gorm:"type:text" json:"admin_response"`
	PendingKey      *string      `gorm:"type:varchar(25);uniqueIndex" json:"-"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID;references:TaskID" json:"task,omitempty"`
	User User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}
