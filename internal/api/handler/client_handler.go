package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/service"
	"fets-live/backend/pkg/response"
)

// ClientHandler clients and client exams
type ClientHandler struct {
	clientSvc service.ClientService
}

// NewClientHandler creates a ClientHandler
func NewClientHandler(clientSvc service.ClientService) *ClientHandler {
	return &ClientHandler{clientSvc: clientSvc}
}

// ListClients
// GET /api/v1/clients
func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.clientSvc.List(c.Request.Context())
	if err != nil {
		h.handleClientError(c, err)
		return
	}
	response.OK(c, gin.H{"list": clients})
}

// CreateClient
// POST /api/v1/clients
func (h *ClientHandler) CreateClient(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	client, err := h.clientSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleClientError(c, err)
		return
	}
	response.Created(c, client)
}

// CreateExam
// POST /api/v1/clients/:id/exams
func (h *ClientHandler) CreateExam(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateClientExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	exam, err := h.clientSvc.CreateExam(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleClientError(c, err)
		return
	}
	response.Created(c, exam)
}

// DeleteExam
// DELETE /api/v1/client-exams/:id
func (h *ClientHandler) DeleteExam(c *gin.Context) {
	if err := h.clientSvc.DeleteExam(c.Request.Context(), c.Param("id")); err != nil {
		h.handleClientError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *ClientHandler) handleClientError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClientNotFound):
		response.NotFound(c, 14001, "client not found")
	case errors.Is(err, service.ErrClientNameExists):
		response.Conflict(c, 14002, "client name already exists")
	case errors.Is(err, service.ErrClientExamNotFound):
		response.NotFound(c, 14003, "client exam not found")
	default:
		response.InternalError(c)
	}
}
