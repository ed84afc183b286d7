package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fets-live/backend/internal/model"
)

// BranchStatusRepository live board data access
type BranchStatusRepository interface {
	List(ctx context.Context) ([]model.BranchStatus, error)
	Get(ctx context.Context, branchLocation string) (*model.BranchStatus, error)
	Upsert(ctx context.Context, status *model.BranchStatus) error
}

type branchStatusRepo struct {
	db *gorm.DB
}

// NewBranchStatusRepo creates a BranchStatusRepository
func NewBranchStatusRepo(db *gorm.DB) BranchStatusRepository {
	return &branchStatusRepo{db: db}
}

func (r *branchStatusRepo) List(ctx context.Context) ([]model.BranchStatus, error) {
	var rows []model.BranchStatus
	err := r.db.WithContext(ctx).Order("branch_location ASC").Find(&rows).Error
	return rows, err
}

func (r *branchStatusRepo) Get(ctx context.Context, branchLocation string) (*model.BranchStatus, error) {
	var row model.BranchStatus
	if err := r.db.WithContext(ctx).Where("branch_location = ?", branchLocation).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *branchStatusRepo) Upsert(ctx context.Context, status *model.BranchStatus) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "branch_location"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "message", "updated_by", "updated_at"}),
		}).
		Create(status).Error
}
