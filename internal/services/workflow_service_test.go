package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"tasktracker/internal/models"
	"tasktracker/internal/repository"
)

type WorkflowServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	taskRepo repository.TaskRepository
	svc      *WorkflowService
}

func (s *WorkflowServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())

	s.taskRepo = repository.NewTaskRepository(s.db)
	userRepo := repository.NewUserRepository(s.db)
	requestRepo := repository.NewRequestRepository(s.db)
	audit := NewAuditLogger(repository.NewActivityLogRepository(s.db))

	s.svc = NewWorkflowService(requestRepo, s.taskRepo, userRepo, audit)

	seedUser(s.T(), s.db, "U250001", "admin", models.RoleAdmin, models.UserStatusActive)
	seedUser(s.T(), s.db, "U250002", "alice", models.RoleMember, models.UserStatusActive)
	seedUser(s.T(), s.db, "U250003", "bob", models.RoleMember, models.UserStatusInactive)
}

func (s *WorkflowServiceTestSuite) createTask(status models.TaskStatus) *models.Task {
	task := &models.Task{
		Title:     "Quarterly report",
		CreatorID: "U250001",
		Deadline:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Priority:  models.TaskPriorityMedium,
		Status:    status,
	}
	s.Require().NoError(s.taskRepo.CreateWithAssignments(task, []string{"U250002"}, "25"))
	return task
}

func (s *WorkflowServiceTestSuite) submitInput(task *models.Task) SubmitInput {
	return SubmitInput{
		TaskID:          task.TaskID,
		UserID:          "U250002",
		CurrentStatus:   models.TaskStatusTodo,
		RequestedStatus: models.TaskStatusInProgress,
		Reason:          "Starting work",
	}
}

func (s *WorkflowServiceTestSuite) TestSubmitAndApproveFlow() {
	task := s.createTask(models.TaskStatusTodo)

	req, err := s.svc.Submit(s.submitInput(task))
	s.Require().NoError(err)
	s.Equal(models.ReviewStatusPending, req.ReviewStatus)
	s.Require().NotNil(req.PendingKey)

	pending, err := s.svc.ListPending(nil)
	s.Require().NoError(err)
	s.Len(pending, 1)

	reviewed, err := s.svc.Review(ReviewInput{
		RequestID:     req.ID,
		Action:        ActionApprove,
		AdminResponse: "Go ahead",
		ReviewerID:    "U250001",
	})
	s.Require().NoError(err)
	s.Equal(models.ReviewStatusApproved, reviewed.ReviewStatus)
	s.Equal("Go ahead", reviewed.AdminResponse)
	s.Nil(reviewed.PendingKey)

	// The approval moved the task.
	updated, err := s.taskRepo.FindByTaskID(task.TaskID)
	s.Require().NoError(err)
	s.Equal(models.TaskStatusInProgress, updated.Status)

	pending, err = s.svc.ListPending(nil)
	s.Require().NoError(err)
	s.Empty(pending)

	var entries []models.ActivityLog
	s.Require().NoError(s.db.Find(&entries).Error)
	s.Len(entries, 2)
}

func (s *WorkflowServiceTestSuite) TestSubmitRejectsStaleCurrentStatus() {
	task := s.createTask(models.TaskStatusInProgress)

	input := s.submitInput(task)
	input.CurrentStatus = models.TaskStatusTodo
	_, err := s.svc.Submit(input)
	s.ErrorIs(err, ErrStatusMismatch)
}

func (s *WorkflowServiceTestSuite) TestSubmitValidation() {
	task := s.createTask(models.TaskStatusTodo)

	input := s.submitInput(task)
	input.RequestedStatus = "done"
	_, err := s.svc.Submit(input)
	s.ErrorIs(err, ErrInvalidStatus)

	input = s.submitInput(task)
	input.RequestedStatus = input.CurrentStatus
	_, err = s.svc.Submit(input)
	s.ErrorIs(err, ErrSameStatus)

	input = s.submitInput(task)
	input.TaskID = "T259999"
	_, err = s.svc.Submit(input)
	s.ErrorIs(err, ErrTaskNotFound)

	input = s.submitInput(task)
	input.UserID = "U250003" // inactive
	_, err = s.svc.Submit(input)
	s.ErrorIs(err, ErrRequesterUnknown)

	input = s.submitInput(task)
	input.UserID = "U259999"
	_, err = s.svc.Submit(input)
	s.ErrorIs(err, ErrRequesterUnknown)
}

func (s *WorkflowServiceTestSuite) TestSubmitRejectsDuplicatePending() {
	task := s.createTask(models.TaskStatusTodo)

	_, err := s.svc.Submit(s.submitInput(task))
	s.Require().NoError(err)

	input := s.submitInput(task)
	input.RequestedStatus = models.TaskStatusCompleted
	_, err = s.svc.Submit(input)
	s.ErrorIs(err, ErrDuplicateRequest)
}

func (s *WorkflowServiceTestSuite) TestReviewAppliesExactlyOnce() {
	task := s.createTask(models.TaskStatusTodo)

	req, err := s.svc.Submit(s.submitInput(task))
	s.Require().NoError(err)

	_, err = s.svc.Review(ReviewInput{RequestID: req.ID, Action: ActionApprove, ReviewerID: "U250001"})
	s.Require().NoError(err)

	// A second decision on the same request must not land.
	_, err = s.svc.Review(ReviewInput{RequestID: req.ID, Action: ActionReject, ReviewerID: "U250001"})
	s.ErrorIs(err, ErrRequestNotFound)

	updated, err := s.taskRepo.FindByTaskID(task.TaskID)
	s.Require().NoError(err)
	s.Equal(models.TaskStatusInProgress, updated.Status)
}

func (s *WorkflowServiceTestSuite) TestReviewRejectKeepsTaskAndAllowsResubmit() {
	task := s.createTask(models.TaskStatusTodo)

	req, err := s.svc.Submit(s.submitInput(task))
	s.Require().NoError(err)

	reviewed, err := s.svc.Review(ReviewInput{
		RequestID:     req.ID,
		Action:        ActionReject,
		AdminResponse: "Not yet",
		ReviewerID:    "U250001",
	})
	s.Require().NoError(err)
	s.Equal(models.ReviewStatusRejected, reviewed.ReviewStatus)

	updated, err := s.taskRepo.FindByTaskID(task.TaskID)
	s.Require().NoError(err)
	s.Equal(models.TaskStatusTodo, updated.Status)

	// The slot freed up; the member may try again.
	_, err = s.svc.Submit(s.submitInput(task))
	s.NoError(err)
}

func (s *WorkflowServiceTestSuite) TestReviewRejectsInvalidInput() {
	task := s.createTask(models.TaskStatusTodo)
	req, err := s.svc.Submit(s.submitInput(task))
	s.Require().NoError(err)

	_, err = s.svc.Review(ReviewInput{RequestID: req.ID, Action: "defer", ReviewerID: "U250001"})
	s.ErrorIs(err, ErrInvalidAction)

	_, err = s.svc.Review(ReviewInput{RequestID: 99999, Action: ActionApprove, ReviewerID: "U250001"})
	s.ErrorIs(err, ErrRequestNotFound)
}

func (s *WorkflowServiceTestSuite) TestGetRequest() {
	task := s.createTask(models.TaskStatusTodo)

	req, err := s.svc.Submit(s.submitInput(task))
	s.Require().NoError(err)

	found, err := s.svc.GetRequest(req.ID)
	s.Require().NoError(err)
	s.Equal(req.ID, found.ID)
	s.Equal("Quarterly report", found.Task.Title)
	s.Equal("alice", found.User.Username)

	// Resolved requests remain readable.
	_, err = s.svc.Review(ReviewInput{RequestID: req.ID, Action: ActionReject, ReviewerID: "U250001"})
	s.Require().NoError(err)
	found, err = s.svc.GetRequest(req.ID)
	s.Require().NoError(err)
	s.Equal(models.ReviewStatusRejected, found.ReviewStatus)

	_, err = s.svc.GetRequest(99999)
	s.ErrorIs(err, ErrRequestNotFound)
}

func (s *WorkflowServiceTestSuite) TestListPendingForOneUser() {
	task := s.createTask(models.TaskStatusTodo)

	_, err := s.svc.Submit(s.submitInput(task))
	s.Require().NoError(err)

	userID := "U250002"
	mine, err := s.svc.ListPending(&userID)
	s.Require().NoError(err)
	s.Len(mine, 1)

	other := "U250001"
	theirs, err := s.svc.ListPending(&other)
	s.Require().NoError(err)
	s.Empty(theirs)
}

func TestWorkflowServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowServiceTestSuite))
}
