package handler

import (
	"github.com/gin-gonic/gin"

	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/service"
	"fets-live/backend/pkg/response"
)

// ReconciliationHandler register vs calendar report
type ReconciliationHandler struct {
	reconciliationSvc service.ReconciliationService
}

// NewReconciliationHandler creates a ReconciliationHandler
func NewReconciliationHandler(reconciliationSvc service.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliationSvc: reconciliationSvc}
}

// GetReport discrepancies of one month
// GET /api/v1/reconciliation?month=2026-03
func (h *ReconciliationHandler) GetReport(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}

	var req dto.MonthRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	report, err := h.reconciliationSvc.Report(c.Request.Context(), scope, req.Month)
	if err != nil {
		if !handleCommonError(c, err) {
			response.InternalError(c)
		}
		return
	}
	response.OK(c, report)
}
