package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/model"
)

// CalendarRepository exam session data access
type CalendarRepository interface {
	Create(ctx context.Context, session *model.CalendarSession) error
	GetByID(ctx context.Context, scope branch.Scope, id string) (*model.CalendarSession, error)
	// ListByDate returns sessions dated in [from, to), earliest first.
	ListByDate(ctx context.Context, scope branch.Scope, from, to time.Time) ([]model.CalendarSession, error)
	Update(ctx context.Context, session *model.CalendarSession) error
	Delete(ctx context.Context, id string) error
}

type calendarRepo struct {
	db *gorm.DB
}

// NewCalendarRepo creates a CalendarRepository
func NewCalendarRepo(db *gorm.DB) CalendarRepository {
	return &calendarRepo{db: db}
}

func (r *calendarRepo) Create(ctx context.Context, session *model.CalendarSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *calendarRepo) GetByID(ctx context.Context, scope branch.Scope, id string) (*model.CalendarSession, error) {
	var s model.CalendarSession
	db := applyScope(r.db.WithContext(ctx), scope, "branch_location")
	if err := db.Where("session_id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *calendarRepo) ListByDate(ctx context.Context, scope branch.Scope, from, to time.Time) ([]model.CalendarSession, error) {
	var sessions []model.CalendarSession
	err := applyScope(r.db.WithContext(ctx), scope, "branch_location").
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC, start_time ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *calendarRepo) Update(ctx context.Context, session *model.CalendarSession) error {
	return r.db.WithContext(ctx).
		Model(session).
		Where("session_id = ?", session.SessionID).
		Updates(map[string]interface{}{
			"client_name":     session.ClientName,
			"exam_name":       session.ExamName,
			"date":            session.Date,
			"start_time":      session.StartTime,
			"end_time":        session.EndTime,
			"candidate_count": session.CandidateCount,
			"branch_location": session.BranchLocation,
			"notes":           session.Notes,
			"updated_by":      session.UpdatedBy,
		}).Error
}

func (r *calendarRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("session_id = ?", id).Delete(&model.CalendarSession{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
