package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/service"
	"fets-live/backend/pkg/response"
)

// ChecklistHandler templates and submissions
type ChecklistHandler struct {
	checklistSvc service.ChecklistService
}

// NewChecklistHandler creates a ChecklistHandler
func NewChecklistHandler(checklistSvc service.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{checklistSvc: checklistSvc}
}

// ListTemplates
// GET /api/v1/checklists/templates
func (h *ChecklistHandler) ListTemplates(c *gin.Context) {
	var req dto.TemplateListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, err := h.checklistSvc.ListTemplates(c.Request.Context(), &req)
	if err != nil {
		h.handleChecklistError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// CreateTemplate admin-only
// POST /api/v1/checklists/templates
func (h *ChecklistHandler) CreateTemplate(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	tpl, err := h.checklistSvc.CreateTemplate(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleChecklistError(c, err)
		return
	}
	response.Created(c, tpl)
}

// DeactivateTemplate admin-only
// DELETE /api/v1/checklists/templates/:id
func (h *ChecklistHandler) DeactivateTemplate(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.checklistSvc.DeactivateTemplate(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handleChecklistError(c, err)
		return
	}
	response.OK(c, nil)
}

// ResolveTemplate template of one type for the active branch
// GET /api/v1/checklists/resolve/:type
func (h *ChecklistHandler) ResolveTemplate(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}

	tpl, err := h.checklistSvc.Resolve(c.Request.Context(), c.Param("type"), scope.Branch())
	if err != nil {
		h.handleChecklistError(c, err)
		return
	}
	response.OK(c, tpl)
}

// Submit
// POST /api/v1/checklists/submissions
func (h *ChecklistHandler) Submit(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	sub, err := h.checklistSvc.Submit(c.Request.Context(), scope, &req, callerID)
	if err != nil {
		h.handleChecklistError(c, err)
		return
	}
	response.Created(c, sub)
}

// ListSubmissions
// GET /api/v1/checklists/submissions
func (h *ChecklistHandler) ListSubmissions(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}

	var req dto.SubmissionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, total, err := h.checklistSvc.ListSubmissions(c.Request.Context(), scope, &req)
	if err != nil {
		h.handleChecklistError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

func (h *ChecklistHandler) handleChecklistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrChecklistTemplateNotFound):
		response.NotFound(c, 18001, "no checklist template available")
	case errors.Is(err, service.ErrInvalidChecklistType):
		response.BadRequest(c, 18002, "invalid checklist type")
	case errors.Is(err, service.ErrChecklistTemplateInactive):
		response.BadRequest(c, 18003, "checklist template is inactive")
	default:
		if !handleCommonError(c, err) {
			response.InternalError(c)
		}
	}
}
