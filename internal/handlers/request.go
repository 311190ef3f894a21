package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/dto"
	apierrors "tasktracker/internal/errors"
	"tasktracker/internal/middleware"
	"tasktracker/internal/models"
	"tasktracker/internal/services"
)

// RequestHandler coordinates status-change request HTTP handlers.
type RequestHandler struct {
	workflowService *services.WorkflowService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(workflowService *services.WorkflowService) *RequestHandler {
	return &RequestHandler{
		workflowService: workflowService,
	}
}

// SubmitRequest files a status-change request for the authenticated member.
func (h *RequestHandler) SubmitRequest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SubmitRequestBody struct {
		TaskID          string `json:"task_id" binding:"required"`
		CurrentStatus   string `json:"current_status" binding:"required"`
		RequestedStatus string `json:"requested_status" binding:"required"`
		RequestReason   string `json:"request_reason"`
	}

	var req SubmitRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	request, err := h.workflowService.Submit(services.SubmitInput{
		TaskID:          req.TaskID,
		UserID:          userID,
		CurrentStatus:   models.TaskStatus(req.CurrentStatus),
		RequestedStatus: models.TaskStatus(req.RequestedStatus),
		Reason:          req.RequestReason,
	})
	if err != nil {
		respondRequestError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToStatusChangeRequestDTO(*request))
}

// GetRequest returns a single status-change request. Admins can read any
// request; members only their own.
func (h *RequestHandler) GetRequest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid request ID")
		return
	}

	request, err := h.workflowService.GetRequest(requestID)
	if err != nil {
		respondRequestError(c, err)
		return
	}

	// Another member's request reads as absent rather than forbidden.
	if role, ok := middleware.GetUserRole(c); (!ok || role != models.RoleAdmin) && request.UserID != userID {
		apierrors.NotFound(c, services.ErrRequestNotFound.Error())
		return
	}

	c.JSON(http.StatusOK, dto.ToStatusChangeRequestDTO(*request))
}

// ListPendingRequests returns pending requests. Admins see every pending
// request; members only their own.
func (h *RequestHandler) ListPendingRequests(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var filter *string
	if role, ok := middleware.GetUserRole(c); !ok || role != models.RoleAdmin {
		filter = &userID
	}

	requests, err := h.workflowService.ListPending(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch requests")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": dto.ToStatusChangeRequestDTOs(requests),
		"count":    len(requests),
	})
}

// ReviewRequest approves or rejects a pending request. Admin only.
func (h *RequestHandler) ReviewRequest(c *gin.Context) {
	reviewerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid request ID")
		return
	}

	type ReviewRequestBody struct {
		Action        string `json:"action" binding:"required"`
		AdminResponse string `json:"admin_response"`
	}

	var req ReviewRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	request, err := h.workflowService.Review(services.ReviewInput{
		RequestID:     requestID,
		Action:        req.Action,
		AdminResponse: req.AdminResponse,
		ReviewerID:    reviewerID,
	})
	if err != nil {
		respondRequestError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatusChangeRequestDTO(*request))
}

func respondRequestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrSameStatus),
		errors.Is(err, services.ErrInvalidAction),
		errors.Is(err, services.ErrRequesterUnknown):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrStatusMismatch),
		errors.Is(err, services.ErrDuplicateRequest):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrRequestNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
