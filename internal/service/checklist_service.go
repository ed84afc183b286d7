package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/model"
	"fets-live/backend/internal/repository"
)

var (
	ErrChecklistTemplateNotFound = errors.New("no checklist template available")
	ErrInvalidChecklistType      = errors.New("invalid checklist type")
	ErrChecklistTemplateInactive = errors.New("checklist template is inactive")
)

var checklistTypes = map[string]bool{
	model.ChecklistPreExam:  true,
	model.ChecklistPostExam: true,
	model.ChecklistCustom:   true,
}

// SelectTemplate picks from newest-first templates: a branch match, then
// a global or unassigned template, then the first one. ok is false when
// the list is empty.
func SelectTemplate(templates []model.ChecklistTemplate, active branch.Branch) (model.ChecklistTemplate, bool) {
	if len(templates) == 0 {
		return model.ChecklistTemplate{}, false
	}
	for _, t := range templates {
		if t.BranchLocation != nil && *t.BranchLocation == active.String() && !active.IsGlobal() {
			return t, true
		}
	}
	for _, t := range templates {
		if t.BranchLocation == nil || *t.BranchLocation == "" || *t.BranchLocation == branch.Global.String() {
			return t, true
		}
	}
	return templates[0], true
}

// ChecklistService checklist templates and submissions
type ChecklistService interface {
	CreateTemplate(ctx context.Context, req *dto.CreateTemplateRequest, callerID string) (*dto.TemplateResponse, error)
	ListTemplates(ctx context.Context, req *dto.TemplateListRequest) ([]dto.TemplateResponse, error)
	DeactivateTemplate(ctx context.Context, id, callerID string) error
	// Resolve selects the template of typ for the active branch.
	Resolve(ctx context.Context, typ string, active branch.Branch) (*dto.TemplateResponse, error)
	Submit(ctx context.Context, scope branch.Scope, req *dto.SubmitChecklistRequest, callerID string) (*dto.SubmissionResponse, error)
	ListSubmissions(ctx context.Context, scope branch.Scope, req *dto.SubmissionListRequest) ([]dto.SubmissionResponse, int64, error)
}

type checklistService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewChecklistService creates a ChecklistService
func NewChecklistService(repo *repository.Repository, logger *zap.Logger) ChecklistService {
	return &checklistService{repo: repo, logger: logger}
}

func (s *checklistService) CreateTemplate(ctx context.Context, req *dto.CreateTemplateRequest, callerID string) (*dto.TemplateResponse, error) {
	if !checklistTypes[req.Type] {
		return nil, ErrInvalidChecklistType
	}

	var loc *string
	if strings.TrimSpace(req.BranchLocation) != "" {
		b, err := branch.Parse(req.BranchLocation)
		if err != nil {
			return nil, ErrInvalidBranch
		}
		loc = strPtr(b.String())
	}

	items, err := json.Marshal(req.Items)
	if err != nil {
		return nil, err
	}

	tpl := &model.ChecklistTemplate{
		Name:           strings.TrimSpace(req.Name),
		Type:           req.Type,
		BranchLocation: loc,
		Items:          datatypes.JSON(items),
		IsActive:       true,
	}
	tpl.CreatedBy = &callerID
	tpl.UpdatedBy = &callerID

	if err := s.repo.Checklist.CreateTemplate(ctx, tpl); err != nil {
		s.logger.Error("create checklist template failed", zap.Error(err))
		return nil, err
	}
	resp := toTemplateResponse(tpl)
	return &resp, nil
}

func (s *checklistService) ListTemplates(ctx context.Context, req *dto.TemplateListRequest) ([]dto.TemplateResponse, error) {
	tpls, err := s.repo.Checklist.ListTemplates(ctx, req.Type, !req.IncludeInactive)
	if err != nil {
		s.logger.Error("list checklist templates failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.TemplateResponse, 0, len(tpls))
	for i := range tpls {
		result = append(result, toTemplateResponse(&tpls[i]))
	}
	return result, nil
}

func (s *checklistService) DeactivateTemplate(ctx context.Context, id, callerID string) error {
	if err := s.repo.Checklist.Deactivate(ctx, id, callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChecklistTemplateNotFound
		}
		s.logger.Error("deactivate checklist template failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *checklistService) Resolve(ctx context.Context, typ string, active branch.Branch) (*dto.TemplateResponse, error) {
	if !checklistTypes[typ] {
		return nil, ErrInvalidChecklistType
	}
	tpls, err := s.repo.Checklist.ListTemplates(ctx, typ, true)
	if err != nil {
		s.logger.Error("list checklist templates failed", zap.Error(err))
		return nil, err
	}
	tpl, ok := SelectTemplate(tpls, active)
	if !ok {
		return nil, ErrChecklistTemplateNotFound
	}
	resp := toTemplateResponse(&tpl)
	return &resp, nil
}

func (s *checklistService) Submit(ctx context.Context, scope branch.Scope, req *dto.SubmitChecklistRequest, callerID string) (*dto.SubmissionResponse, error) {
	tpl, err := s.repo.Checklist.GetTemplate(ctx, req.TemplateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChecklistTemplateNotFound
		}
		s.logger.Error("load checklist template failed", zap.Error(err))
		return nil, err
	}
	if !tpl.IsActive {
		return nil, ErrChecklistTemplateInactive
	}

	loc, err := writeBranch(scope, req.BranchLocation)
	if err != nil {
		return nil, err
	}
	examDate, err := parseOptionalDate(req.ExamDate)
	if err != nil {
		return nil, err
	}

	sub := &model.ChecklistSubmission{
		TemplateID:     tpl.TemplateID,
		BranchLocation: loc,
		SubmittedBy:    callerID,
		ExamDate:       examDate,
		Answers:        datatypes.JSON(req.Answers),
	}
	if err := s.repo.Checklist.CreateSubmission(ctx, sub); err != nil {
		s.logger.Error("create checklist submission failed", zap.Error(err))
		return nil, err
	}
	resp := toSubmissionResponse(sub)
	return &resp, nil
}

func (s *checklistService) ListSubmissions(ctx context.Context, scope branch.Scope, req *dto.SubmissionListRequest) ([]dto.SubmissionResponse, int64, error) {
	subs, total, err := s.repo.Checklist.ListSubmissions(ctx, scope, req.TemplateID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list checklist submissions failed", zap.Error(err))
		return nil, 0, err
	}
	result := make([]dto.SubmissionResponse, 0, len(subs))
	for i := range subs {
		result = append(result, toSubmissionResponse(&subs[i]))
	}
	return result, total, nil
}

// ── converters ──

func toTemplateResponse(t *model.ChecklistTemplate) dto.TemplateResponse {
	var items []dto.ChecklistItem
	if len(t.Items) > 0 {
		_ = json.Unmarshal(t.Items, &items)
	}
	if items == nil {
		items = []dto.ChecklistItem{}
	}
	resp := dto.TemplateResponse{
		ID:        t.TemplateID,
		Name:      t.Name,
		Type:      t.Type,
		Items:     items,
		IsActive:  t.IsActive,
		CreatedAt: formatTimestamp(t.CreatedAt),
	}
	if t.BranchLocation != nil {
		resp.BranchLocation = *t.BranchLocation
	}
	return resp
}

func toSubmissionResponse(sub *model.ChecklistSubmission) dto.SubmissionResponse {
	return dto.SubmissionResponse{
		ID:             sub.SubmissionID,
		TemplateID:     sub.TemplateID,
		BranchLocation: sub.BranchLocation,
		SubmittedBy:    sub.SubmittedBy,
		ExamDate:       formatOptionalDate(sub.ExamDate),
		Answers:        json.RawMessage(sub.Answers),
		CreatedAt:      formatTimestamp(sub.CreatedAt),
	}
}
