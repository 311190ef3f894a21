package repository

import (
	"gorm.io/gorm"

	"tasktracker/internal/models"
)

// GormActivityLogRepository is a GORM implementation of ActivityLogRepository
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Append inserts a single audit entry
func (r *GormActivityLogRepository) Append(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}
