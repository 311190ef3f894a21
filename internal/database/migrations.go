package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"tasktracker/internal/models"
)

// AddIndexes creates composite indexes that the model tags don't declare.
// Each index is checked for existence first so the call stays idempotent.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		table   string
		name    string
		columns string
	}{
		// Notification bell query: newest first per user.
		{&models.Notification{}, "notifications", "idx_notifications_user_created", "user_id, created_at"},

		// Pending-request listings filtered by task, user and review status.
		{&models.StatusChangeRequest{}, "status_change_requests", "idx_requests_task_user_review", "task_id, user_id, review_status"},

		// Scheduler feed: active tasks ordered by deadline.
		{&models.Task{}, "tasks", "idx_tasks_status_deadline", "status, deadline"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
