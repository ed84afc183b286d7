package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/service"
	"fets-live/backend/pkg/response"
)

// CalendarHandler exam sessions
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler creates a CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// ListSessions sessions of one month, current month by default
// GET /api/v1/calendar/sessions?month=2026-03
func (h *CalendarHandler) ListSessions(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}

	var req dto.MonthRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	sessions, err := h.calendarSvc.ListMonth(c.Request.Context(), scope, req.Month)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, gin.H{"list": sessions})
}

// GetSession
// GET /api/v1/calendar/sessions/:id
func (h *CalendarHandler) GetSession(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}

	session, err := h.calendarSvc.Get(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, session)
}

// CreateSession
// POST /api/v1/calendar/sessions
func (h *CalendarHandler) CreateSession(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	session, err := h.calendarSvc.Create(c.Request.Context(), scope, &req, callerID)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.Created(c, session)
}

// UpdateSession
// PUT /api/v1/calendar/sessions/:id
func (h *CalendarHandler) UpdateSession(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	session, err := h.calendarSvc.Update(c.Request.Context(), scope, c.Param("id"), &req, callerID)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, session)
}

// DeleteSession
// DELETE /api/v1/calendar/sessions/:id
func (h *CalendarHandler) DeleteSession(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}

	if err := h.calendarSvc.Delete(c.Request.Context(), scope, c.Param("id")); err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *CalendarHandler) handleCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 14101, "calendar session not found")
	case errors.Is(err, service.ErrSessionTimeOrder):
		response.BadRequest(c, 14102, "end time must be after start time")
	default:
		if !handleCommonError(c, err) {
			response.InternalError(c)
		}
	}
}
