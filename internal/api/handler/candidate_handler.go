package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/service"
	"fets-live/backend/pkg/response"
)

// CandidateHandler candidate register
type CandidateHandler struct {
	candidateSvc service.CandidateService
}

// NewCandidateHandler creates a CandidateHandler
func NewCandidateHandler(candidateSvc service.CandidateService) *CandidateHandler {
	return &CandidateHandler{candidateSvc: candidateSvc}
}

// ListCandidates
// GET /api/v1/candidates
func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}

	var req dto.CandidateListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, total, err := h.candidateSvc.List(c.Request.Context(), scope, &req)
	if err != nil {
		h.handleCandidateError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetCandidate
// GET /api/v1/candidates/:id
func (h *CandidateHandler) GetCandidate(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}

	candidate, err := h.candidateSvc.Get(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		h.handleCandidateError(c, err)
		return
	}
	response.OK(c, candidate)
}

// CreateCandidate
// POST /api/v1/candidates
func (h *CandidateHandler) CreateCandidate(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	candidate, err := h.candidateSvc.Create(c.Request.Context(), scope, &req, callerID)
	if err != nil {
		h.handleCandidateError(c, err)
		return
	}
	response.Created(c, candidate)
}

// UpdateCandidate
// PUT /api/v1/candidates/:id
func (h *CandidateHandler) UpdateCandidate(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	candidate, err := h.candidateSvc.Update(c.Request.Context(), scope, c.Param("id"), &req, callerID)
	if err != nil {
		h.handleCandidateError(c, err)
		return
	}
	response.OK(c, candidate)
}

// UpdateStatus
// PATCH /api/v1/candidates/:id/status
func (h *CandidateHandler) UpdateStatus(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	candidate, err := h.candidateSvc.UpdateStatus(c.Request.Context(), scope, c.Param("id"), req.Status, callerID)
	if err != nil {
		h.handleCandidateError(c, err)
		return
	}
	response.OK(c, candidate)
}

// DeleteCandidate
// DELETE /api/v1/candidates/:id
func (h *CandidateHandler) DeleteCandidate(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.candidateSvc.Delete(c.Request.Context(), scope, c.Param("id"), callerID); err != nil {
		h.handleCandidateError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *CandidateHandler) handleCandidateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCandidateNotFound):
		response.NotFound(c, 13001, "candidate not found")
	case errors.Is(err, service.ErrCandidateNameRequired):
		response.BadRequest(c, 13002, "candidate full name is required")
	case errors.Is(err, service.ErrCandidateClientMissing):
		response.BadRequest(c, 13003, "select a client")
	case errors.Is(err, service.ErrInvalidCandidateStatus):
		response.BadRequest(c, 13004, "invalid candidate status")
	default:
		if !handleCommonError(c, err) {
			response.InternalError(c)
		}
	}
}
