package handler

import (
	"github.com/gin-gonic/gin"

	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/service"
	"fets-live/backend/pkg/response"
)

// DeviceHandler native capability calls. Results are always 200 with
// ok | unavailable | denied; callers never need to branch on HTTP errors.
type DeviceHandler struct {
	deviceSvc service.DeviceService
}

// NewDeviceHandler creates a DeviceHandler
func NewDeviceHandler(deviceSvc service.DeviceService) *DeviceHandler {
	return &DeviceHandler{deviceSvc: deviceSvc}
}

// RegisterPush
// POST /api/v1/device/push
func (h *DeviceHandler) RegisterPush(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RegisterPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.deviceSvc.RegisterPush(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// StatusBar
// POST /api/v1/device/status-bar
func (h *DeviceHandler) StatusBar(c *gin.Context) {
	var req dto.CapabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	response.OK(c, h.deviceSvc.StatusBar(c.Request.Context(), &req))
}

// Haptics
// POST /api/v1/device/haptics
func (h *DeviceHandler) Haptics(c *gin.Context) {
	var req dto.CapabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	response.OK(c, h.deviceSvc.Haptics(c.Request.Context(), &req))
}
