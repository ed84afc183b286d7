package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/service"
	"fets-live/backend/pkg/response"
)

// ExportHandler file downloads
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportCandidates
// GET /api/v1/export/candidates?format=csv|xlsx|pdf
func (h *ExportHandler) ExportCandidates(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}

	var req dto.CandidateListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	file, err := h.exportSvc.ExportCandidates(c.Request.Context(), scope, &req, c.DefaultQuery("format", service.FormatCSV))
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	response.File(c, file.Filename, file.ContentType, file.Body)
}

// ExportReconciliation
// GET /api/v1/export/reconciliation?month=2026-03&format=txt|csv|xlsx
func (h *ExportHandler) ExportReconciliation(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}

	var req dto.MonthRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	file, err := h.exportSvc.ExportReconciliation(c.Request.Context(), scope, req.Month, c.DefaultQuery("format", service.FormatTXT))
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	response.File(c, file.Filename, file.ContentType, file.Body)
}

// ExportCalendar iCalendar feed of one month
// GET /api/v1/export/calendar?month=2026-03
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}

	var req dto.MonthRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	file, err := h.exportSvc.ExportCalendar(c.Request.Context(), scope, req.Month)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	response.File(c, file.Filename, file.ContentType, file.Body)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportFormat):
		response.BadRequest(c, 15101, "unsupported export format")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		if !handleCommonError(c, err) {
			response.InternalError(c)
		}
	}
}
