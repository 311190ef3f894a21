package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tasktracker/internal/models"
)

// testNow is the fixed instant the service clocks are pinned to in tests.
var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.IDCounter{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.StatusChangeRequest{},
		&models.Notification{},
		&models.ActivityLog{},
	))

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// seedUser inserts a user row directly, bypassing the identifier allocator so
// tests control the business IDs they reference.
func seedUser(t *testing.T, db *gorm.DB, userID, username string, role models.UserRole, status models.UserStatus) *models.User {
	t.Helper()

	user := &models.User{
		UserID:       userID,
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "x",
		Role:         role,
		Status:       status,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
