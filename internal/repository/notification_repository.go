package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tasktracker/internal/models"
)

// GormNotificationRepository is a GORM implementation of NotificationRepository
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

// InsertIfAbsent writes the notification unless the (user, task, type) key
// already exists. A duplicate silently no-ops, which is what makes overlapping
// scheduler runs safe.
func (r *GormNotificationRepository) InsertIfAbsent(n *models.Notification) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(n)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListByUser returns the newest notifications plus the unread count
func (r *GormNotificationRepository) ListByUser(userID string, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification

	if err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	var unread int64
	if err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&unread).Error; err != nil {
		return nil, 0, err
	}

	return notifications, unread, nil
}

// MarkRead stamps a single notification as read
func (r *GormNotificationRepository) MarkRead(id uint64, at time.Time) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ?", id).
		Update("read_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkAllRead stamps every unread notification of a user as read
func (r *GormNotificationRepository) MarkAllRead(userID string, at time.Time) error {
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", at).Error
}
