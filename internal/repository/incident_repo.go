package repository

import (
	"context"

	"gorm.io/gorm"

	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/model"
	pkgerrors "fets-live/backend/pkg/errors"
)

// IncidentFilter list filters for incidents
type IncidentFilter struct {
	Status   string
	Category string
	Severity string
	Keyword  string
}

// StatusCount one row of a GROUP BY status
type StatusCount struct {
	Status string
	Count  int64
}

// IncidentRepository incident and comment data access
type IncidentRepository interface {
	Create(ctx context.Context, incident *model.Incident) error
	GetByID(ctx context.Context, scope branch.Scope, id string) (*model.Incident, error)
	List(ctx context.Context, scope branch.Scope, filter IncidentFilter, offset, limit int) ([]model.Incident, int64, error)
	Update(ctx context.Context, incident *model.Incident) error
	Delete(ctx context.Context, id, deletedBy string) error
	CountByStatus(ctx context.Context, scope branch.Scope) ([]StatusCount, error)

	CreateComment(ctx context.Context, comment *model.IncidentComment) error
	ListComments(ctx context.Context, incidentID string) ([]model.IncidentComment, error)
}

type incidentRepo struct {
	db *gorm.DB
}

// NewIncidentRepo creates an IncidentRepository
func NewIncidentRepo(db *gorm.DB) IncidentRepository {
	return &incidentRepo{db: db}
}

func (r *incidentRepo) Create(ctx context.Context, incident *model.Incident) error {
	return r.db.WithContext(ctx).Create(incident).Error
}

func (r *incidentRepo) GetByID(ctx context.Context, scope branch.Scope, id string) (*model.Incident, error) {
	var inc model.Incident
	db := applyScope(r.db.WithContext(ctx), scope, "branch_location")
	if err := db.Where("incident_id = ?", id).First(&inc).Error; err != nil {
		return nil, err
	}
	return &inc, nil
}

func (r *incidentRepo) List(ctx context.Context, scope branch.Scope, filter IncidentFilter, offset, limit int) ([]model.Incident, int64, error) {
	var incidents []model.Incident
	var total int64

	db := applyScope(r.db.WithContext(ctx).Model(&model.Incident{}), scope, "branch_location")
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.Severity != "" {
		db = db.Where("severity = ?", filter.Severity)
	}
	if filter.Keyword != "" {
		like := "%" + escapeLike(filter.Keyword) + "%"
		db = db.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&incidents).Error; err != nil {
		return nil, 0, err
	}
	return incidents, total, nil
}

func (r *incidentRepo) Update(ctx context.Context, incident *model.Incident) error {
	oldVersion := incident.Version
	result := r.db.WithContext(ctx).
		Model(incident).
		Where("incident_id = ? AND version = ?", incident.IncidentID, oldVersion).
		Updates(map[string]interface{}{
			"title":       incident.Title,
			"description": incident.Description,
			"category":    incident.Category,
			"status":      incident.Status,
			"severity":    incident.Severity,
			"metadata":    incident.Metadata,
			"resolved_at": incident.ResolvedAt,
			"updated_by":  incident.UpdatedBy,
			"version":     oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	incident.Version = oldVersion + 1
	return nil
}

func (r *incidentRepo) Delete(ctx context.Context, id, deletedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Incident{}).
			Where("incident_id = ?", id).
			Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		result := tx.Where("incident_id = ?", id).Delete(&model.Incident{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *incidentRepo) CountByStatus(ctx context.Context, scope branch.Scope) ([]StatusCount, error) {
	var rows []StatusCount
	err := applyScope(r.db.WithContext(ctx).Model(&model.Incident{}), scope, "branch_location").
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *incidentRepo) CreateComment(ctx context.Context, comment *model.IncidentComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *incidentRepo) ListComments(ctx context.Context, incidentID string) ([]model.IncidentComment, error) {
	var comments []model.IncidentComment
	err := r.db.WithContext(ctx).
		Where("incident_id = ?", incidentID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}
