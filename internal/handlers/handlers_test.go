package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tasktracker/internal/constants"
	"tasktracker/internal/models"
	"tasktracker/internal/repository"
	"tasktracker/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testNow is the fixed instant the service clocks are pinned to in tests.
var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// testEnv wires real services over an in-memory database so handler tests
// cover the full request path below the router.
type testEnv struct {
	db                  *gorm.DB
	taskService         *services.TaskService
	workflowService     *services.WorkflowService
	notificationService *services.NotificationService
	authService         *services.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
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

	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	audit := services.NewAuditLogger(repository.NewActivityLogRepository(db))

	clock := func() time.Time { return testNow }

	taskService := services.NewTaskService(taskRepo, userRepo, audit)
	taskService.SetClock(clock)
	notificationService := services.NewNotificationService(taskRepo, notificationRepo)
	notificationService.SetClock(clock)
	authService := services.NewAuthService(userRepo, audit)
	authService.SetClock(clock)

	return &testEnv{
		db:                  db,
		taskService:         taskService,
		workflowService:     services.NewWorkflowService(requestRepo, taskRepo, userRepo, audit),
		notificationService: notificationService,
		authService:         authService,
	}
}

func (e *testEnv) seedUser(t *testing.T, userID, username string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		UserID:       userID,
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "x",
		Role:         role,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

// invoke runs a single handler with an authenticated test context, the way
// the router would after the auth middleware populated it.
func invoke(t *testing.T, handler gin.HandlerFunc, method string, body interface{}, userID string, role models.UserRole, params gin.Params) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, "/", reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = params

	if userID != "" {
		c.Set(constants.ContextKeyUserID, userID)
	}
	if role != "" {
		c.Set(constants.ContextKeyUserRole, string(role))
	}

	handler(c)
	return w
}

// httpGetWithQuery runs a GET handler with a raw query string.
func httpGetWithQuery(t *testing.T, handler gin.HandlerFunc, query, userID string, role models.UserRole) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req, err := http.NewRequest(http.MethodGet, "/?"+query, nil)
	require.NoError(t, err)
	c.Request = req

	if userID != "" {
		c.Set(constants.ContextKeyUserID, userID)
	}
	if role != "" {
		c.Set(constants.ContextKeyUserRole, string(role))
	}

	handler(c)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
