package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/service"
	"fets-live/backend/pkg/response"
)

// SocialHandler staff feed
type SocialHandler struct {
	socialSvc service.SocialService
}

// NewSocialHandler creates a SocialHandler
func NewSocialHandler(socialSvc service.SocialService) *SocialHandler {
	return &SocialHandler{socialSvc: socialSvc}
}

// ListPosts
// GET /api/v1/posts
func (h *SocialHandler) ListPosts(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, total, err := h.socialSvc.ListPosts(c.Request.Context(), &req)
	if err != nil {
		h.handleSocialError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// CreatePost
// POST /api/v1/posts
func (h *SocialHandler) CreatePost(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	post, err := h.socialSvc.CreatePost(c.Request.Context(), callerID, &req)
	if err != nil {
		h.handleSocialError(c, err)
		return
	}
	response.Created(c, post)
}

// LikePost
// POST /api/v1/posts/:id/like
func (h *SocialHandler) LikePost(c *gin.Context) {
	like, err := h.socialSvc.Like(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleSocialError(c, err)
		return
	}
	response.OK(c, like)
}

// ListComments
// GET /api/v1/posts/:id/comments
func (h *SocialHandler) ListComments(c *gin.Context) {
	comments, err := h.socialSvc.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleSocialError(c, err)
		return
	}
	response.OK(c, gin.H{"list": comments})
}

// AddComment
// POST /api/v1/posts/:id/comments
func (h *SocialHandler) AddComment(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePostCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	comment, err := h.socialSvc.Comment(c.Request.Context(), c.Param("id"), callerID, &req)
	if err != nil {
		h.handleSocialError(c, err)
		return
	}
	response.Created(c, comment)
}

// DeletePost author or admin
// DELETE /api/v1/posts/:id
func (h *SocialHandler) DeletePost(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.socialSvc.DeletePost(c.Request.Context(), c.Param("id"), caller); err != nil {
		h.handleSocialError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *SocialHandler) handleSocialError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		response.NotFound(c, 19001, "post not found")
	case errors.Is(err, service.ErrPostEmpty):
		response.BadRequest(c, 19002, "post content must not be empty")
	case errors.Is(err, service.ErrPostNotOwned):
		response.Forbidden(c, 19003, "only the author or an admin can delete this post")
	case errors.Is(err, service.ErrCommentBodyEmpty):
		response.BadRequest(c, 19004, "comment must not be empty")
	default:
		response.InternalError(c)
	}
}
