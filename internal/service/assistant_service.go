package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"fets-live/backend/config"
	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/dto"
)

// AssistantStubReply is returned when no model is configured.
const AssistantStubReply = "The assistant is not available right now. Please check the vault or ask your branch admin."

const assistantSystemPrompt = `You are the FETS.LIVE operations assistant for exam-centre staff.
The active branch is %s. Answer briefly and practically about exam-day operations,
candidate handling, incidents, rosters and checklists. If you do not know, say so.`

// AssistantService staff chat helper
type AssistantService interface {
	Chat(ctx context.Context, active branch.Branch, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type assistantService struct {
	model   ChatModel
	enabled bool
	timeout time.Duration
	logger  *zap.Logger
}

// NewAssistantService creates an AssistantService; model may be nil.
func NewAssistantService(cfg *config.Config, model ChatModel, logger *zap.Logger) AssistantService {
	timeout := cfg.AI.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &assistantService{
		model:   model,
		enabled: cfg.Feature.AssistantEnabled,
		timeout: timeout,
		logger:  logger,
	}
}

func (s *assistantService) Chat(ctx context.Context, active branch.Branch, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if !s.enabled || s.model == nil {
		return &dto.ChatResponse{Reply: AssistantStubReply, Available: false, Branch: active.String()}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	system := fmt.Sprintf(assistantSystemPrompt, active.DisplayName())
	reply, err := s.model.Generate(ctx, system, strings.TrimSpace(req.Message))
	if err != nil {
		s.logger.Warn("assistant generation failed", zap.String("branch", active.String()), zap.Error(err))
		return nil, err
	}
	return &dto.ChatResponse{Reply: strings.TrimSpace(reply), Available: true, Branch: active.String()}, nil
}
