package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/service"
	"fets-live/backend/pkg/response"
)

// IncidentHandler incidents and their comments
type IncidentHandler struct {
	incidentSvc service.IncidentService
}

// NewIncidentHandler creates an IncidentHandler
func NewIncidentHandler(incidentSvc service.IncidentService) *IncidentHandler {
	return &IncidentHandler{incidentSvc: incidentSvc}
}

// ListCategories categories with their follow-up questions
// GET /api/v1/incidents/categories
func (h *IncidentHandler) ListCategories(c *gin.Context) {
	response.OK(c, gin.H{"list": h.incidentSvc.Categories()})
}

// ListIncidents
// GET /api/v1/incidents
func (h *IncidentHandler) ListIncidents(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}

	var req dto.IncidentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, total, err := h.incidentSvc.List(c.Request.Context(), scope, &req)
	if err != nil {
		h.handleIncidentError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetStats counts per status
// GET /api/v1/incidents/stats
func (h *IncidentHandler) GetStats(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}

	stats, err := h.incidentSvc.Stats(c.Request.Context(), scope)
	if err != nil {
		h.handleIncidentError(c, err)
		return
	}
	response.OK(c, stats)
}

// GetIncident
// GET /api/v1/incidents/:id
func (h *IncidentHandler) GetIncident(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}

	incident, err := h.incidentSvc.Get(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		h.handleIncidentError(c, err)
		return
	}
	response.OK(c, incident)
}

// CreateIncident
// POST /api/v1/incidents
func (h *IncidentHandler) CreateIncident(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	incident, err := h.incidentSvc.Create(c.Request.Context(), scope, caller, &req)
	if err != nil {
		h.handleIncidentError(c, err)
		return
	}
	response.Created(c, incident)
}

// UpdateIncident
// PUT /api/v1/incidents/:id
func (h *IncidentHandler) UpdateIncident(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	incident, err := h.incidentSvc.Update(c.Request.Context(), scope, c.Param("id"), &req, callerID)
	if err != nil {
		h.handleIncidentError(c, err)
		return
	}
	response.OK(c, incident)
}

// UpdateStatus
// PATCH /api/v1/incidents/:id/status
func (h *IncidentHandler) UpdateStatus(c *gin.Context) {
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

	incident, err := h.incidentSvc.UpdateStatus(c.Request.Context(), scope, c.Param("id"), req.Status, callerID)
	if err != nil {
		h.handleIncidentError(c, err)
		return
	}
	response.OK(c, incident)
}

// DeleteIncident
// DELETE /api/v1/incidents/:id
func (h *IncidentHandler) DeleteIncident(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.incidentSvc.Delete(c.Request.Context(), scope, c.Param("id"), callerID); err != nil {
		h.handleIncidentError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListComments
// GET /api/v1/incidents/:id/comments
func (h *IncidentHandler) ListComments(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}

	comments, err := h.incidentSvc.ListComments(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		h.handleIncidentError(c, err)
		return
	}
	response.OK(c, gin.H{"list": comments})
}

// AddComment
// POST /api/v1/incidents/:id/comments
func (h *IncidentHandler) AddComment(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	comment, err := h.incidentSvc.AddComment(c.Request.Context(), scope, c.Param("id"), callerID, &req)
	if err != nil {
		h.handleIncidentError(c, err)
		return
	}
	response.Created(c, comment)
}

func (h *IncidentHandler) handleIncidentError(c *gin.Context, err error) {
	var missing *service.MissingAnswersError
	switch {
	case errors.As(err, &missing):
		response.ErrorWithDetails(c, http.StatusBadRequest, 16005, "follow-up answers missing", strings.Join(missing.Keys, ","))
	case errors.Is(err, service.ErrIncidentNotFound):
		response.NotFound(c, 16001, "incident not found")
	case errors.Is(err, service.ErrInvalidIncidentCategory):
		response.BadRequest(c, 16002, "invalid incident category")
	case errors.Is(err, service.ErrInvalidIncidentSeverity):
		response.BadRequest(c, 16003, "invalid incident severity")
	case errors.Is(err, service.ErrInvalidIncidentStatus):
		response.BadRequest(c, 16004, "invalid incident status")
	case errors.Is(err, service.ErrIncidentConflict):
		response.Conflict(c, 16006, "incident was modified, reload and retry")
	default:
		if !handleCommonError(c, err) {
			response.InternalError(c)
		}
	}
}
