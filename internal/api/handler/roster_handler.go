package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/service"
	"fets-live/backend/pkg/response"
)

// RosterHandler shifts, leave and shift-swap requests
type RosterHandler struct {
	rosterSvc service.RosterService
}

// NewRosterHandler creates a RosterHandler
func NewRosterHandler(rosterSvc service.RosterService) *RosterHandler {
	return &RosterHandler{rosterSvc: rosterSvc}
}

// ListShifts
// GET /api/v1/roster?from=2026-03-01&to=2026-03-31
func (h *RosterHandler) ListShifts(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}

	var req dto.RosterListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	shifts, err := h.rosterSvc.ListShifts(c.Request.Context(), scope, &req)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}
	response.OK(c, gin.H{"list": shifts})
}

// UpsertShift admin-only
// PUT /api/v1/roster
func (h *RosterHandler) UpsertShift(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpsertShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	shift, err := h.rosterSvc.UpsertShift(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}
	response.OK(c, shift)
}

// CreateRequest leave or shift swap
// POST /api/v1/leave-requests
func (h *RosterHandler) CreateRequest(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	leave, err := h.rosterSvc.CreateRequest(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}
	response.Created(c, leave)
}

// ListRequests own requests; admins may pass all=true
// GET /api/v1/leave-requests
func (h *RosterHandler) ListRequests(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.LeaveListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, total, err := h.rosterSvc.ListRequests(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// ApproveRequest admin-only; a swap exchanges both roster rows atomically
// POST /api/v1/leave-requests/:id/approve
func (h *RosterHandler) ApproveRequest(c *gin.Context) {
	h.review(c, h.rosterSvc.Approve)
}

// RejectRequest admin-only
// POST /api/v1/leave-requests/:id/reject
func (h *RosterHandler) RejectRequest(c *gin.Context) {
	h.review(c, h.rosterSvc.Reject)
}

type reviewFunc func(ctx context.Context, requestID string, caller service.Caller, note string) (*dto.LeaveResponse, error)

func (h *RosterHandler) review(c *gin.Context, decide reviewFunc) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.ReviewRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	leave, err := decide(c.Request.Context(), c.Param("id"), caller, req.Note)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}
	response.OK(c, leave)
}

// ListAudit
// GET /api/v1/audit
func (h *RosterHandler) ListAudit(c *gin.Context) {
	var req dto.AuditListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, total, err := h.rosterSvc.ListAudit(c.Request.Context(), &req)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

func (h *RosterHandler) handleRosterError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLeaveRequestNotFound):
		response.NotFound(c, 17001, "request not found")
	case errors.Is(err, service.ErrSwapNotPending):
		response.Conflict(c, 17002, "request has already been decided")
	case errors.Is(err, service.ErrSwapPartnerRequired):
		response.BadRequest(c, 17003, "shift swap needs a partner other than the requester")
	case errors.Is(err, service.ErrSwapRosterMissing):
		response.Conflict(c, 17004, "both staff must be rostered on the swap date")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 17005, "date range is invalid")
	case errors.Is(err, service.ErrDateRangeTooLong):
		response.BadRequest(c, 17006, "date range may span at most 62 days")
	case errors.Is(err, service.ErrProfileNotFound):
		response.NotFound(c, 12101, "staff profile not found")
	default:
		if !handleCommonError(c, err) {
			response.InternalError(c)
		}
	}
}
