package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/model"
	"fets-live/backend/internal/repository"
)

var (
	ErrClientNotFound     = errors.New("client not found")
	ErrClientNameExists   = errors.New("client name already exists")
	ErrClientExamNotFound = errors.New("client exam not found")
)

// ClientService exam vendors and their exams
type ClientService interface {
	List(ctx context.Context) ([]dto.ClientResponse, error)
	Create(ctx context.Context, req *dto.CreateClientRequest, callerID string) (*dto.ClientResponse, error)
	CreateExam(ctx context.Context, clientID string, req *dto.CreateClientExamRequest, callerID string) (*dto.ClientExamResponse, error)
	DeleteExam(ctx context.Context, examID string) error
}

type clientService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClientService creates a ClientService
func NewClientService(repo *repository.Repository, logger *zap.Logger) ClientService {
	return &clientService{repo: repo, logger: logger}
}

func (s *clientService) List(ctx context.Context) ([]dto.ClientResponse, error) {
	clients, err := s.repo.Client.List(ctx, true)
	if err != nil {
		s.logger.Error("list clients failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		result = append(result, toClientResponse(&clients[i]))
	}
	return result, nil
}

func (s *clientService) Create(ctx context.Context, req *dto.CreateClientRequest, callerID string) (*dto.ClientResponse, error) {
	name := strings.TrimSpace(req.Name)
	existing, err := s.repo.Client.GetByName(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("check client name failed", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrClientNameExists
	}

	c := &model.Client{Name: name, IsActive: true}
	c.CreatedBy = &callerID
	c.UpdatedBy = &callerID
	if err := s.repo.Client.Create(ctx, c); err != nil {
		s.logger.Error("create client failed", zap.Error(err))
		return nil, err
	}

	resp := toClientResponse(c)
	return &resp, nil
}

func (s *clientService) CreateExam(ctx context.Context, clientID string, req *dto.CreateClientExamRequest, callerID string) (*dto.ClientExamResponse, error) {
	if _, err := s.repo.Client.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		s.logger.Error("load client failed", zap.Error(err))
		return nil, err
	}

	exam := &model.ClientExam{
		ClientID: clientID,
		Name:     strings.TrimSpace(req.Name),
		Code:     strings.TrimSpace(req.Code),
	}
	exam.CreatedBy = &callerID
	exam.UpdatedBy = &callerID
	if err := s.repo.Client.CreateExam(ctx, exam); err != nil {
		s.logger.Error("create client exam failed", zap.Error(err))
		return nil, err
	}

	resp := toClientExamResponse(exam)
	return &resp, nil
}

func (s *clientService) DeleteExam(ctx context.Context, examID string) error {
	if err := s.repo.Client.DeleteExam(ctx, examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClientExamNotFound
		}
		s.logger.Error("delete client exam failed", zap.Error(err))
		return err
	}
	return nil
}

// ── converters ──

func toClientResponse(c *model.Client) dto.ClientResponse {
	exams := make([]dto.ClientExamResponse, 0, len(c.Exams))
	for i := range c.Exams {
		exams = append(exams, toClientExamResponse(&c.Exams[i]))
	}
	return dto.ClientResponse{
		ID:       c.ClientID,
		Name:     c.Name,
		IsActive: c.IsActive,
		Exams:    exams,
	}
}

func toClientExamResponse(e *model.ClientExam) dto.ClientExamResponse {
	return dto.ClientExamResponse{ID: e.ExamID, Name: e.Name, Code: e.Code}
}
