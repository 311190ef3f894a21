package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tasktracker/internal/models"
)

// newTestDB opens an in-memory SQLite database with the same error
// translation the real store uses. The pool is pinned to one connection so
// every transaction sees the same in-memory database.
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
