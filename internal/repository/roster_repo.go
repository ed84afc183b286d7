package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/model"
)

// RosterRepository roster schedule data access
type RosterRepository interface {
	// ListByDate returns shifts dated in [from, to) for profiles in scope.
	ListByDate(ctx context.Context, scope branch.Scope, from, to time.Time) ([]model.RosterSchedule, error)
	GetByProfileAndDate(ctx context.Context, profileID string, date time.Time) (*model.RosterSchedule, error)
	// Upsert writes one shift keyed by (profile_id, date).
	Upsert(ctx context.Context, schedule *model.RosterSchedule) error
}

type rosterRepo struct {
	db *gorm.DB
}

// NewRosterRepo creates a RosterRepository
func NewRosterRepo(db *gorm.DB) RosterRepository {
	return &rosterRepo{db: db}
}

func (r *rosterRepo) ListByDate(ctx context.Context, scope branch.Scope, from, to time.Time) ([]model.RosterSchedule, error) {
	var rows []model.RosterSchedule
	db := r.db.WithContext(ctx).
		Joins("JOIN staff_profiles sp ON sp.profile_id = roster_schedules.profile_id AND sp.deleted_at IS NULL")
	db = applyScope(db, scope, "sp.branch_assigned")
	err := db.Preload("Profile").
		Where("roster_schedules.date >= ? AND roster_schedules.date < ?", from, to).
		Order("roster_schedules.date ASC, sp.full_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *rosterRepo) GetByProfileAndDate(ctx context.Context, profileID string, date time.Time) (*model.RosterSchedule, error) {
	var row model.RosterSchedule
	err := r.db.WithContext(ctx).
		Where("profile_id = ? AND date = ?", profileID, date).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *rosterRepo) Upsert(ctx context.Context, schedule *model.RosterSchedule) error {
	return r.db.WithContext(ctx).
		Omit("Profile").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"shift_code", "overtime_hours", "status", "updated_by", "updated_at"}),
		}).
		Create(schedule).Error
}
