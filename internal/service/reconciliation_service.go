package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/model"
	"fets-live/backend/internal/repository"
)

// ReconciliationService register/calendar discrepancy report
type ReconciliationService interface {
	// Report builds the month report. A failed calendar read degrades to
	// an empty calendar; a failed candidate read aborts.
	Report(ctx context.Context, scope branch.Scope, month string) (*dto.ReconciliationReport, error)
}

type reconciliationService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewReconciliationService creates a ReconciliationService
func NewReconciliationService(repo *repository.Repository, logger *zap.Logger) ReconciliationService {
	return &reconciliationService{repo: repo, logger: logger, now: time.Now}
}

func (s *reconciliationService) Report(ctx context.Context, scope branch.Scope, month string) (*dto.ReconciliationReport, error) {
	month, from, to, err := monthRange(month, s.now())
	if err != nil {
		return nil, err
	}

	calendarUnavailable := false
	sessions, err := s.repo.Calendar.ListByDate(ctx, scope, from, to)
	if err != nil {
		s.logger.Warn("calendar unavailable, reconciling without sessions",
			zap.String("month", month), zap.String("branch", scope.Branch().String()), zap.Error(err))
		sessions = []model.CalendarSession{}
		calendarUnavailable = true
	}

	candidates, err := s.repo.Candidate.ListByExamDate(ctx, scope, from, to)
	if err != nil {
		s.logger.Error("list candidates for reconciliation failed", zap.Error(err))
		return nil, err
	}

	rows, summary := Reconcile(sessions, candidates)
	return &dto.ReconciliationReport{
		Month:               month,
		Branch:              scope.Branch().String(),
		Rows:                rows,
		Summary:             summary,
		CalendarUnavailable: calendarUnavailable,
		GeneratedAt:         formatTimestamp(s.now()),
	}, nil
}
