package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/model"
	"fets-live/backend/internal/repository"
	pkgerrors "fets-live/backend/pkg/errors"
)

var (
	ErrIncidentNotFound        = errors.New("incident not found")
	ErrInvalidIncidentCategory = errors.New("invalid incident category")
	ErrInvalidIncidentSeverity = errors.New("invalid incident severity")
	ErrInvalidIncidentStatus   = errors.New("invalid incident status")
	ErrIncidentConflict        = errors.New("incident was modified concurrently")
)

// MissingAnswersError required follow-up answers are absent
type MissingAnswersError struct {
	Keys []string
}

func (e *MissingAnswersError) Error() string {
	return fmt.Sprintf("missing follow-up answers: %s", strings.Join(e.Keys, ", "))
}

// IncidentService incident and case tracking
type IncidentService interface {
	Categories() []dto.CategoryResponse
	Create(ctx context.Context, scope branch.Scope, caller Caller, req *dto.CreateIncidentRequest) (*dto.IncidentResponse, error)
	Get(ctx context.Context, scope branch.Scope, id string) (*dto.IncidentResponse, error)
	List(ctx context.Context, scope branch.Scope, req *dto.IncidentListRequest) ([]dto.IncidentResponse, int64, error)
	Update(ctx context.Context, scope branch.Scope, id string, req *dto.UpdateIncidentRequest, callerID string) (*dto.IncidentResponse, error)
	// UpdateStatus stamps resolved_at on resolved/closed and audits the change.
	UpdateStatus(ctx context.Context, scope branch.Scope, id, status, callerID string) (*dto.IncidentResponse, error)
	Delete(ctx context.Context, scope branch.Scope, id, callerID string) error
	Stats(ctx context.Context, scope branch.Scope) (*dto.IncidentStatsResponse, error)

	AddComment(ctx context.Context, scope branch.Scope, id, callerID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, scope branch.Scope, id string) ([]dto.CommentResponse, error)
}

type incidentService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewIncidentService creates an IncidentService
func NewIncidentService(repo *repository.Repository, logger *zap.Logger) IncidentService {
	return &incidentService{repo: repo, logger: logger, now: time.Now}
}

func (s *incidentService) Categories() []dto.CategoryResponse {
	return incidentCategories
}

// ────────────────────── Create ──────────────────────

func (s *incidentService) Create(ctx context.Context, scope branch.Scope, caller Caller, req *dto.CreateIncidentRequest) (*dto.IncidentResponse, error) {
	if _, ok := incidentCategoryIndex[req.Category]; !ok {
		return nil, ErrInvalidIncidentCategory
	}
	severity := req.Severity
	if severity == "" {
		severity = "medium"
	}
	if !incidentSeverities[severity] {
		return nil, ErrInvalidIncidentSeverity
	}
	if missing := missingAnswers(req.Category, req.Answers); len(missing) > 0 {
		return nil, &MissingAnswersError{Keys: missing}
	}

	loc, err := writeBranch(scope, req.BranchLocation)
	if err != nil {
		return nil, err
	}

	meta, err := encodeIncidentMetadata(dto.IncidentMetadata{Answers: req.Answers, Vendor: req.Vendor})
	if err != nil {
		return nil, err
	}

	reporterName := ""
	if p, err := s.repo.Profile.GetByUserID(ctx, caller.UserID); err == nil {
		reporterName = p.FullName
	}

	inc := &model.Incident{
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Category:       req.Category,
		Status:         model.IncidentOpen,
		Severity:       severity,
		ReporterID:     caller.UserID,
		ReporterName:   reporterName,
		BranchLocation: loc,
		Metadata:       meta,
	}
	inc.CreatedBy = &caller.UserID
	inc.UpdatedBy = &caller.UserID

	if err := s.repo.Incident.Create(ctx, inc); err != nil {
		s.logger.Error("create incident failed", zap.Error(err))
		return nil, err
	}
	return toIncidentResponse(inc), nil
}

// ────────────────────── Read ──────────────────────

func (s *incidentService) Get(ctx context.Context, scope branch.Scope, id string) (*dto.IncidentResponse, error) {
	inc, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return toIncidentResponse(inc), nil
}

func (s *incidentService) List(ctx context.Context, scope branch.Scope, req *dto.IncidentListRequest) ([]dto.IncidentResponse, int64, error) {
	if req.Status != "" && !incidentStatuses[req.Status] {
		return nil, 0, ErrInvalidIncidentStatus
	}
	if req.Category != "" {
		if _, ok := incidentCategoryIndex[req.Category]; !ok {
			return nil, 0, ErrInvalidIncidentCategory
		}
	}
	filter := repository.IncidentFilter{
		Status:   req.Status,
		Category: req.Category,
		Severity: req.Severity,
		Keyword:  strings.TrimSpace(req.Keyword),
	}
	incidents, total, err := s.repo.Incident.List(ctx, scope, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list incidents failed", zap.Error(err))
		return nil, 0, err
	}
	result := make([]dto.IncidentResponse, 0, len(incidents))
	for i := range incidents {
		result = append(result, *toIncidentResponse(&incidents[i]))
	}
	return result, total, nil
}

func (s *incidentService) Stats(ctx context.Context, scope branch.Scope) (*dto.IncidentStatsResponse, error) {
	counts, err := s.repo.Incident.CountByStatus(ctx, scope)
	if err != nil {
		s.logger.Error("count incidents failed", zap.Error(err))
		return nil, err
	}
	var stats dto.IncidentStatsResponse
	for _, c := range counts {
		switch c.Status {
		case model.IncidentOpen:
			stats.Open = c.Count
		case model.IncidentInProgress:
			stats.InProgress = c.Count
		case model.IncidentResolved:
			stats.Resolved = c.Count
		case model.IncidentClosed:
			stats.Closed = c.Count
		}
		stats.Total += c.Count
	}
	return &stats, nil
}

// ────────────────────── Update ──────────────────────

func (s *incidentService) Update(ctx context.Context, scope branch.Scope, id string, req *dto.UpdateIncidentRequest, callerID string) (*dto.IncidentResponse, error) {
	inc, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		inc.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		inc.Description = *req.Description
	}
	if req.Category != nil {
		if _, ok := incidentCategoryIndex[*req.Category]; !ok {
			return nil, ErrInvalidIncidentCategory
		}
		inc.Category = *req.Category
	}
	if req.Severity != nil {
		if !incidentSeverities[*req.Severity] {
			return nil, ErrInvalidIncidentSeverity
		}
		inc.Severity = *req.Severity
	}
	if req.Answers != nil || req.Vendor != nil {
		meta := decodeIncidentMetadata(inc.Metadata)
		if req.Answers != nil {
			meta.Answers = req.Answers
		}
		if req.Vendor != nil {
			meta.Vendor = req.Vendor
		}
		raw, err := encodeIncidentMetadata(meta)
		if err != nil {
			return nil, err
		}
		inc.Metadata = raw
	}
	inc.Version = req.Version
	inc.UpdatedBy = &callerID

	if err := s.save(ctx, inc); err != nil {
		return nil, err
	}
	return toIncidentResponse(inc), nil
}

func (s *incidentService) UpdateStatus(ctx context.Context, scope branch.Scope, id, status, callerID string) (*dto.IncidentResponse, error) {
	if !incidentStatuses[status] {
		return nil, ErrInvalidIncidentStatus
	}
	inc, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if inc.Status == status {
		return toIncidentResponse(inc), nil
	}

	from := inc.Status
	inc.Status = status
	switch status {
	case model.IncidentResolved, model.IncidentClosed:
		if inc.ResolvedAt == nil {
			now := s.now()
			inc.ResolvedAt = &now
		}
	default:
		inc.ResolvedAt = nil
	}
	inc.UpdatedBy = &callerID

	if err := s.save(ctx, inc); err != nil {
		return nil, err
	}

	entry := &model.AuditLog{
		Action:     "status_change",
		EntityType: "incident",
		EntityID:   inc.IncidentID,
		ActorID:    callerID,
		Details:    fmt.Sprintf("incident %q: %s -> %s", inc.Title, from, status),
		Metadata:   datatypes.JSON(fmt.Sprintf(`{"from":%q,"to":%q}`, from, status)),
	}
	if err := s.repo.Audit.Create(ctx, entry); err != nil {
		s.logger.Warn("write incident audit failed", zap.String("incident_id", inc.IncidentID), zap.Error(err))
	}
	return toIncidentResponse(inc), nil
}

func (s *incidentService) Delete(ctx context.Context, scope branch.Scope, id, callerID string) error {
	if _, err := s.load(ctx, scope, id); err != nil {
		return err
	}
	if err := s.repo.Incident.Delete(ctx, id, callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIncidentNotFound
		}
		s.logger.Error("delete incident failed", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── comments ──────────────────────

func (s *incidentService) AddComment(ctx context.Context, scope branch.Scope, id, callerID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if _, err := s.load(ctx, scope, id); err != nil {
		return nil, err
	}
	c := &model.IncidentComment{
		IncidentID: id,
		AuthorID:   callerID,
		Body:       strings.TrimSpace(req.Body),
		CreatedAt:  s.now(),
	}
	if err := s.repo.Incident.CreateComment(ctx, c); err != nil {
		s.logger.Error("create incident comment failed", zap.Error(err))
		return nil, err
	}
	resp := toCommentResponse(c)
	return &resp, nil
}

func (s *incidentService) ListComments(ctx context.Context, scope branch.Scope, id string) ([]dto.CommentResponse, error) {
	if _, err := s.load(ctx, scope, id); err != nil {
		return nil, err
	}
	comments, err := s.repo.Incident.ListComments(ctx, id)
	if err != nil {
		s.logger.Error("list incident comments failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		result = append(result, toCommentResponse(&comments[i]))
	}
	return result, nil
}

// ── helpers ──

func (s *incidentService) load(ctx context.Context, scope branch.Scope, id string) (*model.Incident, error) {
	inc, err := s.repo.Incident.GetByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIncidentNotFound
		}
		s.logger.Error("load incident failed", zap.Error(err))
		return nil, err
	}
	return inc, nil
}

func (s *incidentService) save(ctx context.Context, inc *model.Incident) error {
	if err := s.repo.Incident.Update(ctx, inc); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return ErrIncidentConflict
		}
		s.logger.Error("update incident failed", zap.Error(err))
		return err
	}
	return nil
}

func encodeIncidentMetadata(meta dto.IncidentMetadata) (datatypes.JSON, error) {
	raw, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func decodeIncidentMetadata(raw datatypes.JSON) dto.IncidentMetadata {
	var meta dto.IncidentMetadata
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &meta)
	}
	return meta
}

func toIncidentResponse(inc *model.Incident) *dto.IncidentResponse {
	return &dto.IncidentResponse{
		ID:             inc.IncidentID,
		Title:          inc.Title,
		Description:    inc.Description,
		Category:       inc.Category,
		Status:         inc.Status,
		Severity:       inc.Severity,
		ReporterID:     inc.ReporterID,
		ReporterName:   inc.ReporterName,
		BranchLocation: inc.BranchLocation,
		Metadata:       decodeIncidentMetadata(inc.Metadata),
		ResolvedAt:     formatOptionalTimestamp(inc.ResolvedAt),
		CreatedAt:      formatTimestamp(inc.CreatedAt),
		Version:        inc.Version,
	}
}

func toCommentResponse(c *model.IncidentComment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        c.CommentID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		CreatedAt: formatTimestamp(c.CreatedAt),
	}
}
