package repository

import (
	"context"

	"gorm.io/gorm"

	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/model"
)

// ChecklistRepository checklist template and submission data access
type ChecklistRepository interface {
	CreateTemplate(ctx context.Context, tpl *model.ChecklistTemplate) error
	GetTemplate(ctx context.Context, id string) (*model.ChecklistTemplate, error)
	// ListTemplates returns templates newest first; empty typ means every type.
	ListTemplates(ctx context.Context, typ string, activeOnly bool) ([]model.ChecklistTemplate, error)
	Deactivate(ctx context.Context, id, updatedBy string) error

	CreateSubmission(ctx context.Context, sub *model.ChecklistSubmission) error
	ListSubmissions(ctx context.Context, scope branch.Scope, templateID string, offset, limit int) ([]model.ChecklistSubmission, int64, error)
}

type checklistRepo struct {
	db *gorm.DB
}

// NewChecklistRepo creates a ChecklistRepository
func NewChecklistRepo(db *gorm.DB) ChecklistRepository {
	return &checklistRepo{db: db}
}

func (r *checklistRepo) CreateTemplate(ctx context.Context, tpl *model.ChecklistTemplate) error {
	return r.db.WithContext(ctx).Create(tpl).Error
}

func (r *checklistRepo) GetTemplate(ctx context.Context, id string) (*model.ChecklistTemplate, error) {
	var tpl model.ChecklistTemplate
	if err := r.db.WithContext(ctx).Where("template_id = ?", id).First(&tpl).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *checklistRepo) ListTemplates(ctx context.Context, typ string, activeOnly bool) ([]model.ChecklistTemplate, error) {
	var tpls []model.ChecklistTemplate
	db := r.db.WithContext(ctx)
	if typ != "" {
		db = db.Where("type = ?", typ)
	}
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("created_at DESC").Find(&tpls).Error
	return tpls, err
}

func (r *checklistRepo) Deactivate(ctx context.Context, id, updatedBy string) error {
	result := r.db.WithContext(ctx).
		Model(&model.ChecklistTemplate{}).
		Where("template_id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": updatedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *checklistRepo) CreateSubmission(ctx context.Context, sub *model.ChecklistSubmission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *checklistRepo) ListSubmissions(ctx context.Context, scope branch.Scope, templateID string, offset, limit int) ([]model.ChecklistSubmission, int64, error) {
	var subs []model.ChecklistSubmission
	var total int64

	db := applyScope(r.db.WithContext(ctx).Model(&model.ChecklistSubmission{}), scope, "branch_location")
	if templateID != "" {
		db = db.Where("template_id = ?", templateID)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&subs).Error; err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}
