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
	ErrSessionNotFound  = errors.New("calendar session not found")
	ErrSessionTimeOrder = errors.New("session end time must be after start time")
)

// CalendarService exam session calendar
type CalendarService interface {
	Create(ctx context.Context, scope branch.Scope, req *dto.CreateSessionRequest, callerID string) (*dto.SessionResponse, error)
	Get(ctx context.Context, scope branch.Scope, id string) (*dto.SessionResponse, error)
	ListMonth(ctx context.Context, scope branch.Scope, month string) ([]dto.SessionResponse, error)
	Update(ctx context.Context, scope branch.Scope, id string, req *dto.UpdateSessionRequest, callerID string) (*dto.SessionResponse, error)
	Delete(ctx context.Context, scope branch.Scope, id string) error
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewCalendarService creates a CalendarService
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger, now: time.Now}
}

func (s *calendarService) Create(ctx context.Context, scope branch.Scope, req *dto.CreateSessionRequest, callerID string) (*dto.SessionResponse, error) {
	loc, err := writeBranch(scope, req.BranchLocation)
	if err != nil {
		return nil, err
	}
	d, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if req.EndTime <= req.StartTime {
		return nil, ErrSessionTimeOrder
	}

	sess := &model.CalendarSession{
		ClientName:     strings.TrimSpace(req.ClientName),
		ExamName:       strings.TrimSpace(req.ExamName),
		Date:           d,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		CandidateCount: req.CandidateCount,
		BranchLocation: loc,
		Notes:          req.Notes,
	}
	sess.CreatedBy = &callerID
	sess.UpdatedBy = &callerID

	if err := s.repo.Calendar.Create(ctx, sess); err != nil {
		s.logger.Error("create session failed", zap.Error(err))
		return nil, err
	}
	resp := toSessionResponse(sess)
	return &resp, nil
}

func (s *calendarService) Get(ctx context.Context, scope branch.Scope, id string) (*dto.SessionResponse, error) {
	sess, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	resp := toSessionResponse(sess)
	return &resp, nil
}

func (s *calendarService) ListMonth(ctx context.Context, scope branch.Scope, month string) ([]dto.SessionResponse, error) {
	_, from, to, err := monthRange(month, s.now())
	if err != nil {
		return nil, err
	}
	sessions, err := s.repo.Calendar.ListByDate(ctx, scope, from, to)
	if err != nil {
		s.logger.Error("list sessions failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, toSessionResponse(&sessions[i]))
	}
	return result, nil
}

func (s *calendarService) Update(ctx context.Context, scope branch.Scope, id string, req *dto.UpdateSessionRequest, callerID string) (*dto.SessionResponse, error) {
	sess, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if req.ClientName != nil {
		sess.ClientName = strings.TrimSpace(*req.ClientName)
	}
	if req.ExamName != nil {
		sess.ExamName = strings.TrimSpace(*req.ExamName)
	}
	if req.Date != nil {
		d, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		sess.Date = d
	}
	if req.StartTime != nil {
		sess.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		sess.EndTime = *req.EndTime
	}
	if sess.EndTime <= sess.StartTime {
		return nil, ErrSessionTimeOrder
	}
	if req.CandidateCount != nil {
		sess.CandidateCount = *req.CandidateCount
	}
	if req.BranchLocation != nil {
		loc, err := writeBranch(scope, *req.BranchLocation)
		if err != nil {
			return nil, err
		}
		sess.BranchLocation = loc
	}
	if req.Notes != nil {
		sess.Notes = *req.Notes
	}
	sess.UpdatedBy = &callerID

	if err := s.repo.Calendar.Update(ctx, sess); err != nil {
		s.logger.Error("update session failed", zap.Error(err))
		return nil, err
	}
	resp := toSessionResponse(sess)
	return &resp, nil
}

func (s *calendarService) Delete(ctx context.Context, scope branch.Scope, id string) error {
	if _, err := s.load(ctx, scope, id); err != nil {
		return err
	}
	if err := s.repo.Calendar.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		s.logger.Error("delete session failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *calendarService) load(ctx context.Context, scope branch.Scope, id string) (*model.CalendarSession, error) {
	sess, err := s.repo.Calendar.GetByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("load session failed", zap.Error(err))
		return nil, err
	}
	return sess, nil
}

func toSessionResponse(s *model.CalendarSession) dto.SessionResponse {
	return dto.SessionResponse{
		ID:             s.SessionID,
		ClientName:     s.ClientName,
		ExamName:       s.ExamName,
		Date:           formatDate(s.Date),
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
		CandidateCount: s.CandidateCount,
		BranchLocation: s.BranchLocation,
		Notes:          s.Notes,
	}
}
