package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tasktracker/internal/models"
	"tasktracker/internal/repository"
)

var (
	ErrStatusMismatch   = errors.New("current task status mismatch")
	ErrDuplicateRequest = errors.New("a pending request already exists for this task")
	ErrRequestNotFound  = errors.New("request not found or already processed")
	ErrInvalidAction    = errors.New("action must be approve or reject")
	ErrSameStatus       = errors.New("requested status equals the current status")
	ErrRequesterUnknown = errors.New("requester does not exist or is inactive")
)

// Review actions accepted by WorkflowService.Review.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// WorkflowService implements the status-change request state machine: members
// submit requests, admins resolve each one exactly once, and a task's status
// only moves through this workflow when a request is approved.
type WorkflowService struct {
	requestRepo repository.RequestRepository
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
	audit       *AuditLogger
}

// NewWorkflowService creates a new WorkflowService
func NewWorkflowService(requestRepo repository.RequestRepository, taskRepo repository.TaskRepository, userRepo repository.UserRepository, audit *AuditLogger) *WorkflowService {
	return &WorkflowService{
		requestRepo: requestRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		audit:       audit,
	}
}

// SubmitInput represents a member's status-change request
type SubmitInput struct {
	TaskID          string
	UserID          string
	CurrentStatus   models.TaskStatus
	RequestedStatus models.TaskStatus
	Reason          string
}

// Submit creates a pending request. The caller-asserted current status must
// match the task's live status (stale clients are told to refresh), and the
// storage layer rejects a second pending request for the same (task, user)
// pair even when two submissions race.
func (s *WorkflowService) Submit(input SubmitInput) (*models.StatusChangeRequest, error) {
	if !input.CurrentStatus.Valid() || !input.RequestedStatus.Valid() {
		return nil, ErrInvalidStatus
	}
	if input.RequestedStatus == input.CurrentStatus {
		return nil, ErrSameStatus
	}

	active, err := s.userRepo.ExistsActive(input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify requester: %w", err)
	}
	if !active {
		return nil, ErrRequesterUnknown
	}

	task, err := s.taskRepo.FindByTaskID(input.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.Status != input.CurrentStatus {
		return nil, ErrStatusMismatch
	}

	req := &models.StatusChangeRequest{
		TaskID:          input.TaskID,
		UserID:          input.UserID,
		CurrentStatus:   input.CurrentStatus,
		RequestedStatus: input.RequestedStatus,
		RequestReason:   input.Reason,
	}

	if err := s.requestRepo.CreatePending(req); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateRequest
		}
		return nil, fmt.Errorf("failed to submit request: %w", err)
	}

	username, _ := s.userRepo.Username(input.UserID)
	s.audit.Append(input.UserID, fmt.Sprintf(
		"User %s requested status change for task '%s' from %s to %s",
		username, task.Title, input.CurrentStatus, input.RequestedStatus))

	return req, nil
}

// ReviewInput represents an admin's decision on a pending request
type ReviewInput struct {
	RequestID     uint64
	Action        string
	AdminResponse string
	ReviewerID    string
}

// Review applies the single terminal transition: pending -> approved or
// pending -> rejected. Approval also moves the task to the requested status in
// the same transaction. A request that was already resolved (or never existed)
// yields ErrRequestNotFound, so a second review can never re-apply the change.
func (s *WorkflowService) Review(input ReviewInput) (*models.StatusChangeRequest, error) {
	var status models.ReviewStatus
	switch input.Action {
	case ActionApprove:
		status = models.ReviewStatusApproved
	case ActionReject:
		status = models.ReviewStatusRejected
	default:
		return nil, ErrInvalidAction
	}

	req, err := s.requestRepo.Resolve(input.RequestID, status, input.AdminResponse)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to review request: %w", err)
	}

	requester, _ := s.userRepo.Username(req.UserID)
	verb := "rejected"
	if status == models.ReviewStatusApproved {
		verb = "approved"
	}
	s.audit.Append(input.ReviewerID, fmt.Sprintf(
		"Admin %s status change request for task %s from %s to %s by %s",
		verb, req.TaskID, req.CurrentStatus, req.RequestedStatus, requester))

	return req, nil
}

// GetRequest returns one request with its task and requester preloaded.
// Resolved requests stay readable; only an unknown ID is a miss.
func (s *WorkflowService) GetRequest(id uint64) (*models.StatusChangeRequest, error) {
	req, err := s.requestRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to find request: %w", err)
	}
	return req, nil
}

// ListPending returns pending requests, either all of them (admins) or those
// submitted by one user.
func (s *WorkflowService) ListPending(userID *string) ([]models.StatusChangeRequest, error) {
	requests, err := s.requestRepo.ListPending(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	return requests, nil
}
