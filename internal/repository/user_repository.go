package repository

import (
	"errors"

	"gorm.io/gorm"

	"tasktracker/internal/models"
	"tasktracker/internal/utils"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create allocates the next user ID for the year and inserts the user. The
// allocation shares the insert's transaction, so a failed insert rolls the
// counter increment back.
func (r *GormUserRepository) Create(user *models.User, yearKey string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		seq, err := nextSequence(tx, models.EntityKindUser, yearKey)
		if err != nil {
			return err
		}
		user.UserID = utils.FormatUserID(yearKey, seq)

		return tx.Create(user).Error
	})
}

// FindByUserID finds a user by business identifier
func (r *GormUserRepository) FindByUserID(userID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CountActiveByIDs counts how many of the given user IDs refer to active users
func (r *GormUserRepository) CountActiveByIDs(userIDs []string) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("user_id IN ? AND status = ?", userIDs, models.UserStatusActive).
		Count(&count).Error
	return count, err
}

// ExistsActive reports whether the user exists and is active
func (r *GormUserRepository) ExistsActive(userID string) (bool, error) {
	count, err := r.CountActiveByIDs([]string{userID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Username resolves a user ID to its display name
func (r *GormUserRepository) Username(userID string) (string, error) {
	user, err := r.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "Unknown", nil
		}
		return "", err
	}
	return user.Username, nil
}
