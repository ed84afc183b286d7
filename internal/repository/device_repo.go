package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fets-live/backend/internal/model"
)

// DeviceRepository push registration data access
type DeviceRepository interface {
	Upsert(ctx context.Context, reg *model.DeviceRegistration) error
	ListByUser(ctx context.Context, userID string) ([]model.DeviceRegistration, error)
}

type deviceRepo struct {
	db *gorm.DB
}

// NewDeviceRepo creates a DeviceRepository
func NewDeviceRepo(db *gorm.DB) DeviceRepository {
	return &deviceRepo{db: db}
}

func (r *deviceRepo) Upsert(ctx context.Context, reg *model.DeviceRegistration) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"platform", "updated_at"}),
		}).
		Create(reg).Error
}

func (r *deviceRepo) ListByUser(ctx context.Context, userID string) ([]model.DeviceRegistration, error) {
	var regs []model.DeviceRegistration
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&regs).Error
	return regs, err
}
