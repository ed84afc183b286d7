package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/service"
	"fets-live/backend/pkg/response"
)

// VaultHandler shared vault items
type VaultHandler struct {
	vaultSvc service.VaultService
}

// NewVaultHandler creates a VaultHandler
func NewVaultHandler(vaultSvc service.VaultService) *VaultHandler {
	return &VaultHandler{vaultSvc: vaultSvc}
}

// ListItems
// GET /api/v1/vault
func (h *VaultHandler) ListItems(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}

	var req dto.VaultListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, total, err := h.vaultSvc.List(c.Request.Context(), scope, &req)
	if err != nil {
		h.handleVaultError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetItem
// GET /api/v1/vault/:id
func (h *VaultHandler) GetItem(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}

	item, err := h.vaultSvc.Get(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		h.handleVaultError(c, err)
		return
	}
	response.OK(c, item)
}

// CreateItem
// POST /api/v1/vault
func (h *VaultHandler) CreateItem(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateVaultItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	item, err := h.vaultSvc.Create(c.Request.Context(), scope, &req, callerID)
	if err != nil {
		h.handleVaultError(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateItem
// PUT /api/v1/vault/:id
func (h *VaultHandler) UpdateItem(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateVaultItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	item, err := h.vaultSvc.Update(c.Request.Context(), scope, c.Param("id"), &req, callerID)
	if err != nil {
		h.handleVaultError(c, err)
		return
	}
	response.OK(c, item)
}

// DeleteItem
// DELETE /api/v1/vault/:id
func (h *VaultHandler) DeleteItem(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.vaultSvc.Delete(c.Request.Context(), scope, c.Param("id"), callerID); err != nil {
		h.handleVaultError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *VaultHandler) handleVaultError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrVaultItemNotFound) {
		response.NotFound(c, 19101, "vault item not found")
		return
	}
	if !handleCommonError(c, err) {
		response.InternalError(c)
	}
}
