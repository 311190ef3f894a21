package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "Active"
	UserStatusInactive UserStatus = "Inactive"
)

// User is a member of the tracker. UserID is the business identifier
// (U<yy><seq>) allocated from the same per-year counter mechanism as tasks.
type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	UserID       string         `gorm:"type:varchar(10);uniqueIndex;not null" json:"user_id"`
	Username     string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole       `gorm:"type:varchar(10);not null;default:'member'" json:"role"`
	Status       UserStatus     `gorm:"type:varchar(10);not null;default:'Active'" json:"status"`
	Contact      string         `gorm:"type:varchar(100)" json:"contact"`
	Department   string         `gorm:"type:varchar(100)" json:"department"`
	Location     string         `gorm:"type:varchar(100)" json:"location"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Assignments []TaskAssignment `gorm:"foreignKey:UserID;references:UserID" json:"-"`
}
