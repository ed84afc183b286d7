package handler

import (
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/service"
	"fets-live/backend/pkg/response"
)

const sseHeartbeat = 25 * time.Second

// BranchStatusHandler branch status board and its live stream
type BranchStatusHandler struct {
	statusSvc service.BranchStatusService
	realtime  bool
}

// NewBranchStatusHandler creates a BranchStatusHandler. With realtime off
// the stream endpoint answers 503 and clients fall back to polling.
func NewBranchStatusHandler(statusSvc service.BranchStatusService, realtime bool) *BranchStatusHandler {
	return &BranchStatusHandler{statusSvc: statusSvc, realtime: realtime}
}

// ListStatuses
// GET /api/v1/branch-status
func (h *BranchStatusHandler) ListStatuses(c *gin.Context) {
	list, err := h.statusSvc.List(c.Request.Context())
	if err != nil {
		h.handleStatusError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// GetStatus
// GET /api/v1/branch-status/:branch
func (h *BranchStatusHandler) GetStatus(c *gin.Context) {
	status, err := h.statusSvc.Get(c.Request.Context(), c.Param("branch"))
	if err != nil {
		h.handleStatusError(c, err)
		return
	}
	response.OK(c, status)
}

// UpdateStatus admin-only; also pushes the change to stream subscribers
// PUT /api/v1/branch-status/:branch
func (h *BranchStatusHandler) UpdateStatus(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBranchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	status, err := h.statusSvc.Update(c.Request.Context(), c.Param("branch"), &req, callerID)
	if err != nil {
		h.handleStatusError(c, err)
		return
	}
	response.OK(c, status)
}

// Stream server-sent events: one "snapshot", then a "branch_status" event
// per change, "ping" every sseHeartbeat.
// GET /api/v1/branch-status/stream
func (h *BranchStatusHandler) Stream(c *gin.Context) {
	if !h.realtime {
		response.ServiceUnavailable(c, 20001, "realtime updates are disabled")
		return
	}

	ctx := c.Request.Context()
	events, unsubscribe, err := h.statusSvc.Subscribe(ctx)
	if err != nil {
		h.handleStatusError(c, err)
		return
	}
	defer unsubscribe()

	snapshot, err := h.statusSvc.List(ctx)
	if err != nil {
		h.handleStatusError(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("snapshot", snapshot)
	c.Writer.Flush()

	heartbeat := time.NewTicker(sseHeartbeat)
	defer heartbeat.Stop()

	c.Stream(func(_ io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case msg, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(service.BranchStatusChannel, msg)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", "keepalive")
			return true
		}
	})
}

func (h *BranchStatusHandler) handleStatusError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrBranchStatusNotFound) {
		response.NotFound(c, 20002, "no status recorded for this branch")
		return
	}
	if !handleCommonError(c, err) {
		response.InternalError(c)
	}
}
