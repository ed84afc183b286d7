package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/service"
	"fets-live/backend/pkg/response"
)

// ProfileHandler staff profiles and branch context
type ProfileHandler struct {
	profileSvc service.ProfileService
}

// NewProfileHandler creates a ProfileHandler
func NewProfileHandler(profileSvc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

// GetMyProfile
// GET /api/v1/profiles/me
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileSvc.GetByUser(c.Request.Context(), userID)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}
	response.OK(c, profile)
}

// GetProfile
// GET /api/v1/profiles/:id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleProfileError(c, err)
		return
	}
	response.OK(c, profile)
}

// ListProfiles staff directory for the active branch
// GET /api/v1/profiles
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}

	var req dto.ProfileListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, total, err := h.profileSvc.List(c.Request.Context(), scope, &req)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// UpdateProfile owner or admin
// PUT /api/v1/profiles/:id
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	profile, err := h.profileSvc.Update(c.Request.Context(), caller, c.Param("id"), &req)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}
	response.OK(c, profile)
}

// GetBranchContext active branch, accessible branches, switch permission
// GET /api/v1/branch
func (h *ProfileHandler) GetBranchContext(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	ctx, err := h.profileSvc.GetBranchContext(c.Request.Context(), caller)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}
	response.OK(c, ctx)
}

// SwitchBranch
// PUT /api/v1/branch
func (h *ProfileHandler) SwitchBranch(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.SwitchBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx, err := h.profileSvc.SwitchBranch(c.Request.Context(), caller, req.Branch)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}
	response.OK(c, ctx)
}

func (h *ProfileHandler) handleProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		response.NotFound(c, 12101, "staff profile not found")
	case errors.Is(err, service.ErrProfileForbidden):
		response.Forbidden(c, 12102, "only the owner or an admin can edit this profile")
	case errors.Is(err, service.ErrProfileConflict):
		response.Conflict(c, 12103, "profile was modified, reload and retry")
	default:
		if !handleCommonError(c, err) {
			response.InternalError(c)
		}
	}
}
