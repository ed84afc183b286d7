package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/service"
	"fets-live/backend/pkg/response"
)

// AssistantHandler staff chat helper
type AssistantHandler struct {
	assistantSvc service.AssistantService
}

// NewAssistantHandler creates an AssistantHandler
func NewAssistantHandler(assistantSvc service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantSvc: assistantSvc}
}

// Chat
// POST /api/v1/assistant/chat
func (h *AssistantHandler) Chat(c *gin.Context) {
	scope, ok := MustGetScope(c)
	if !ok {
		return
	}

	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	reply, err := h.assistantSvc.Chat(c.Request.Context(), scope.Branch(), &req)
	if err != nil {
		response.Error(c, http.StatusBadGateway, 20301, "assistant did not answer, try again")
		return
	}
	response.OK(c, reply)
}
