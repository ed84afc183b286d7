package repository

import (
	"context"

	"gorm.io/gorm"

	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/model"
	pkgerrors "fets-live/backend/pkg/errors"
)

// ProfileFilter list filters for staff profiles
type ProfileFilter struct {
	Role       string
	Department string
	Keyword    string
}

// ProfileRepository staff profile data access
type ProfileRepository interface {
	GetByID(ctx context.Context, profileID string) (*model.StaffProfile, error)
	GetByUserID(ctx context.Context, userID string) (*model.StaffProfile, error)
	List(ctx context.Context, scope branch.Scope, filter ProfileFilter, offset, limit int) ([]model.StaffProfile, int64, error)
	Update(ctx context.Context, profile *model.StaffProfile) error
	// UpdateBranch writes branch_assigned without touching the version.
	UpdateBranch(ctx context.Context, userID, branchLocation string) error
}

type profileRepo struct {
	db *gorm.DB
}

// NewProfileRepo creates a ProfileRepository
func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetByID(ctx context.Context, profileID string) (*model.StaffProfile, error) {
	var p model.StaffProfile
	if err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*model.StaffProfile, error) {
	var p model.StaffProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) List(ctx context.Context, scope branch.Scope, filter ProfileFilter, offset, limit int) ([]model.StaffProfile, int64, error) {
	var profiles []model.StaffProfile
	var total int64

	db := applyScope(r.db.WithContext(ctx).Model(&model.StaffProfile{}), scope, "branch_assigned")
	if filter.Role != "" {
		db = db.Where("role = ?", filter.Role)
	}
	if filter.Department != "" {
		db = db.Where("department = ?", filter.Department)
	}
	if filter.Keyword != "" {
		db = db.Where("full_name ILIKE ?", "%"+escapeLike(filter.Keyword)+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("full_name ASC").Offset(offset).Limit(limit).Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *profileRepo) Update(ctx context.Context, profile *model.StaffProfile) error {
	oldVersion := profile.Version
	result := r.db.WithContext(ctx).
		Model(profile).
		Where("profile_id = ? AND version = ?", profile.ProfileID, oldVersion).
		Updates(map[string]interface{}{
			"full_name":       profile.FullName,
			"role":            profile.Role,
			"department":      profile.Department,
			"branch_assigned": profile.BranchAssigned,
			"avatar_url":      profile.AvatarURL,
			"bio":             profile.Bio,
			"updated_by":      profile.UpdatedBy,
			"version":         oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	profile.Version = oldVersion + 1
	return nil
}

func (r *profileRepo) UpdateBranch(ctx context.Context, userID, branchLocation string) error {
	return r.db.WithContext(ctx).
		Model(&model.StaffProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"branch_assigned": branchLocation,
			"updated_by":      userID,
		}).Error
}
