package repository

import (
	"fmt"

	"gorm.io/gorm"

	"tasktracker/internal/models"
)

// GormRequestRepository is a GORM implementation of RequestRepository
type GormRequestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new RequestRepository
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &GormRequestRepository{db: db}
}

// PendingKey builds the value held in a request's pending_key column while it
// awaits review. The unique index on the column is what closes the race
// between two simultaneous submissions for the same pair.
func PendingKey(taskID, userID string) string {
	return taskID + "/" + userID
}

// CreatePending inserts a new pending request
func (r *GormRequestRepository) CreatePending(req *models.StatusChangeRequest) error {
	key := PendingKey(req.TaskID, req.UserID)
	req.ReviewStatus = models.ReviewStatusPending
	req.PendingKey = &key
	return r.db.Create(req).Error
}

// FindByID finds a request by ID
func (r *GormRequestRepository) FindByID(id uint64) (*models.StatusChangeRequest, error) {
	var req models.StatusChangeRequest
	if err := r.db.Preload("Task").Preload("User").First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// ListPending lists pending requests newest first, optionally for one user
func (r *GormRequestRepository) ListPending(userID *string) ([]models.StatusChangeRequest, error) {
	var requests []models.StatusChangeRequest

	query := r.db.
		Preload("Task").
		Preload("User").
		Where("review_status = ?", models.ReviewStatusPending)

	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}

// Resolve applies the single terminal transition of the request state machine.
// The UPDATE is guarded by review_status = 'pending' and checked through
// RowsAffected, so of two concurrent reviews exactly one wins; the other sees
// gorm.ErrRecordNotFound. On approval the task's status moves to the requested
// status inside the same transaction.
func (r *GormRequestRepository) Resolve(id uint64, status models.ReviewStatus, adminResponse string) (*models.StatusChangeRequest, error) {
	if !models.ReviewStatusPending.CanTransition(status) {
		return nil, fmt.Errorf("invalid review transition to %q", status)
	}

	var resolved models.StatusChangeRequest

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var req models.StatusChangeRequest
		if err := tx.First(&req, id).Error; err != nil {
			return err
		}

		res := tx.Model(&models.StatusChangeRequest{}).
			Where("id = ? AND review_status = ?", id, models.ReviewStatusPending).
			Updates(map[string]interface{}{
				"review_status":  status,
				"admin_response": adminResponse,
				"pending_key":    nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if status == models.ReviewStatusApproved {
			if err := tx.Model(&models.Task{}).
				Where("task_id = ?", req.TaskID).
				Update("status", req.RequestedStatus).Error; err != nil {
				return err
			}
		}

		if err := tx.First(&resolved, id).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &resolved, nil
}
