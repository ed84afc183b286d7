package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/model"
	"fets-live/backend/internal/repository"
)

var (
	ErrCandidateNotFound      = errors.New("candidate not found")
	ErrCandidateNameRequired  = errors.New("candidate full name is required")
	ErrCandidateClientMissing = errors.New("client selection is required")
	ErrInvalidCandidateStatus = errors.New("invalid candidate status")
	ErrBranchRequired         = errors.New("a physical branch is required")
)

// CandidateService candidate register
type CandidateService interface {
	Create(ctx context.Context, scope branch.Scope, req *dto.CreateCandidateRequest, callerID string) (*dto.CandidateResponse, error)
	Get(ctx context.Context, scope branch.Scope, id string) (*dto.CandidateResponse, error)
	List(ctx context.Context, scope branch.Scope, req *dto.CandidateListRequest) ([]dto.CandidateResponse, int64, error)
	// ListAll returns every match of the filter, for exports.
	ListAll(ctx context.Context, scope branch.Scope, req *dto.CandidateListRequest) ([]dto.CandidateResponse, error)
	Update(ctx context.Context, scope branch.Scope, id string, req *dto.UpdateCandidateRequest, callerID string) (*dto.CandidateResponse, error)
	UpdateStatus(ctx context.Context, scope branch.Scope, id, status, callerID string) (*dto.CandidateResponse, error)
	Delete(ctx context.Context, scope branch.Scope, id, callerID string) error
}

type candidateService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewCandidateService creates a CandidateService
func NewCandidateService(repo *repository.Repository, logger *zap.Logger) CandidateService {
	return &candidateService{repo: repo, logger: logger, now: time.Now}
}

const exportRowLimit = 10000

// ────────────────────── Create ──────────────────────

func (s *candidateService) Create(ctx context.Context, scope branch.Scope, req *dto.CreateCandidateRequest, callerID string) (*dto.CandidateResponse, error) {
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		return nil, ErrCandidateNameRequired
	}
	if req.RequireClient && strings.TrimSpace(req.ClientName) == "" {
		return nil, ErrCandidateClientMissing
	}

	loc, err := writeBranch(scope, req.BranchLocation)
	if err != nil {
		return nil, err
	}

	examDate, err := parseOptionalDate(req.ExamDate)
	if err != nil {
		return nil, err
	}

	clientName := strings.TrimSpace(req.ClientName)
	if clientName == "" {
		clientName = DeriveClientName(req.ExamName)
	}

	c := &model.Candidate{
		FullName:           name,
		Address:            strings.TrimSpace(req.Address),
		Phone:              strings.TrimSpace(req.Phone),
		ExamDate:           examDate,
		ExamName:           strings.TrimSpace(req.ExamName),
		ClientName:         clientName,
		Status:             model.CandidateRegistered,
		ConfirmationNumber: GenerateConfirmationNumber(s.now()),
		BranchLocation:     loc,
		Notes:              req.Notes,
	}
	c.CreatedBy = &callerID
	c.UpdatedBy = &callerID

	if err := s.repo.Candidate.Create(ctx, c); err != nil {
		s.logger.Error("create candidate failed", zap.Error(err))
		return nil, err
	}

	resp := toCandidateResponse(c)
	return &resp, nil
}

// ────────────────────── Read ──────────────────────

func (s *candidateService) Get(ctx context.Context, scope branch.Scope, id string) (*dto.CandidateResponse, error) {
	c, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	resp := toCandidateResponse(c)
	return &resp, nil
}

func (s *candidateService) List(ctx context.Context, scope branch.Scope, req *dto.CandidateListRequest) ([]dto.CandidateResponse, int64, error) {
	filter, err := candidateFilter(req)
	if err != nil {
		return nil, 0, err
	}
	candidates, total, err := s.repo.Candidate.List(ctx, scope, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list candidates failed", zap.Error(err))
		return nil, 0, err
	}
	return toCandidateResponses(candidates), total, nil
}

func (s *candidateService) ListAll(ctx context.Context, scope branch.Scope, req *dto.CandidateListRequest) ([]dto.CandidateResponse, error) {
	filter, err := candidateFilter(req)
	if err != nil {
		return nil, err
	}
	candidates, _, err := s.repo.Candidate.List(ctx, scope, filter, 0, exportRowLimit)
	if err != nil {
		s.logger.Error("list candidates for export failed", zap.Error(err))
		return nil, err
	}
	return toCandidateResponses(candidates), nil
}

// ────────────────────── Update ──────────────────────

func (s *candidateService) Update(ctx context.Context, scope branch.Scope, id string, req *dto.UpdateCandidateRequest, callerID string) (*dto.CandidateResponse, error) {
	c, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, ErrCandidateNameRequired
		}
		c.FullName = name
	}
	if req.Address != nil {
		c.Address = strings.TrimSpace(*req.Address)
	}
	if req.Phone != nil {
		c.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.ExamDate != nil {
		d, err := parseOptionalDate(*req.ExamDate)
		if err != nil {
			return nil, err
		}
		c.ExamDate = d
	}
	if req.ExamName != nil {
		c.ExamName = strings.TrimSpace(*req.ExamName)
	}
	if req.ClientName != nil {
		c.ClientName = strings.TrimSpace(*req.ClientName)
	}
	if req.Status != nil {
		if !validCandidateStatus(*req.Status) {
			return nil, ErrInvalidCandidateStatus
		}
		c.Status = *req.Status
	}
	if req.BranchLocation != nil {
		loc, err := writeBranch(scope, *req.BranchLocation)
		if err != nil {
			return nil, err
		}
		c.BranchLocation = loc
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	c.UpdatedBy = &callerID

	if err := s.repo.Candidate.Update(ctx, c); err != nil {
		s.logger.Error("update candidate failed", zap.Error(err))
		return nil, err
	}

	resp := toCandidateResponse(c)
	return &resp, nil
}

func (s *candidateService) UpdateStatus(ctx context.Context, scope branch.Scope, id, status, callerID string) (*dto.CandidateResponse, error) {
	if !validCandidateStatus(status) {
		return nil, ErrInvalidCandidateStatus
	}
	c, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Candidate.UpdateStatus(ctx, id, status, callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		s.logger.Error("update candidate status failed", zap.Error(err))
		return nil, err
	}
	c.Status = status

	resp := toCandidateResponse(c)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *candidateService) Delete(ctx context.Context, scope branch.Scope, id, callerID string) error {
	if _, err := s.load(ctx, scope, id); err != nil {
		return err
	}
	if err := s.repo.Candidate.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("delete candidate failed", zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func (s *candidateService) load(ctx context.Context, scope branch.Scope, id string) (*model.Candidate, error) {
	c, err := s.repo.Candidate.GetByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		s.logger.Error("load candidate failed", zap.Error(err))
		return nil, err
	}
	return c, nil
}

func candidateFilter(req *dto.CandidateListRequest) (repository.CandidateFilter, error) {
	from, err := parseOptionalDate(req.From)
	if err != nil {
		return repository.CandidateFilter{}, err
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		return repository.CandidateFilter{}, err
	}
	if to != nil {
		next := to.AddDate(0, 0, 1)
		to = &next
	}
	if req.Status != "" && !validCandidateStatus(req.Status) {
		return repository.CandidateFilter{}, ErrInvalidCandidateStatus
	}
	return repository.CandidateFilter{
		Status:     req.Status,
		ClientName: strings.TrimSpace(req.Client),
		ExamFrom:   from,
		ExamTo:     to,
		Search:     strings.TrimSpace(req.Search),
		SortBy:     req.SortBy,
		SortDesc:   req.SortDesc,
	}, nil
}

// writeBranch picks the branch a new row is stored at. A physical scope
// wins; the global view needs an explicit physical branch.
func writeBranch(scope branch.Scope, requested string) (string, error) {
	if !scope.IsGlobal() {
		if requested != "" {
			b, err := branch.Parse(requested)
			if err != nil {
				return "", ErrInvalidBranch
			}
			if b != scope.Branch() {
				return "", ErrBranchForbidden
			}
		}
		return scope.Branch().String(), nil
	}
	b, err := branch.Parse(requested)
	if err != nil || b.IsGlobal() {
		return "", ErrBranchRequired
	}
	return b.String(), nil
}

func validCandidateStatus(status string) bool {
	for _, s := range model.CandidateStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func toCandidateResponse(c *model.Candidate) dto.CandidateResponse {
	return dto.CandidateResponse{
		ID:                 c.CandidateID,
		FullName:           c.FullName,
		Address:            c.Address,
		Phone:              c.Phone,
		ExamDate:           formatOptionalDate(c.ExamDate),
		ExamName:           c.ExamName,
		ClientName:         c.ClientName,
		DisplayClient:      DisplayClientName(c.ClientName, c.ExamName),
		Status:             c.Status,
		ConfirmationNumber: c.ConfirmationNumber,
		BranchLocation:     c.BranchLocation,
		Notes:              c.Notes,
		CreatedAt:          formatTimestamp(c.CreatedAt),
	}
}

func toCandidateResponses(candidates []model.Candidate) []dto.CandidateResponse {
	result := make([]dto.CandidateResponse, 0, len(candidates))
	for i := range candidates {
		result = append(result, toCandidateResponse(&candidates[i]))
	}
	return result
}
