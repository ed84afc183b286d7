package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/model"
)

// CandidateFilter list filters for the candidate register
type CandidateFilter struct {
	Status     string
	ClientName string
	ExamFrom   *time.Time // inclusive
	ExamTo     *time.Time // exclusive
	Search     string     // name, confirmation number or phone
	SortBy     string     // exam_date | created_at | full_name
	SortDesc   bool
}

var candidateSortColumns = map[string]string{
	"exam_date":  "exam_date",
	"created_at": "created_at",
	"full_name":  "full_name",
}

// CandidateRepository candidate register data access
type CandidateRepository interface {
	Create(ctx context.Context, candidate *model.Candidate) error
	GetByID(ctx context.Context, scope branch.Scope, id string) (*model.Candidate, error)
	List(ctx context.Context, scope branch.Scope, filter CandidateFilter, offset, limit int) ([]model.Candidate, int64, error)
	// ListByExamDate returns every candidate with exam_date in [from, to).
	ListByExamDate(ctx context.Context, scope branch.Scope, from, to time.Time) ([]model.Candidate, error)
	Update(ctx context.Context, candidate *model.Candidate) error
	UpdateStatus(ctx context.Context, id, status, updatedBy string) error
	Delete(ctx context.Context, id, deletedBy string) error
}

type candidateRepo struct {
	db *gorm.DB
}

// NewCandidateRepo creates a CandidateRepository
func NewCandidateRepo(db *gorm.DB) CandidateRepository {
	return &candidateRepo{db: db}
}

func (r *candidateRepo) Create(ctx context.Context, candidate *model.Candidate) error {
	return r.db.WithContext(ctx).Create(candidate).Error
}

func (r *candidateRepo) GetByID(ctx context.Context, scope branch.Scope, id string) (*model.Candidate, error) {
	var c model.Candidate
	db := applyScope(r.db.WithContext(ctx), scope, "branch_location")
	if err := db.Where("candidate_id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *candidateRepo) List(ctx context.Context, scope branch.Scope, filter CandidateFilter, offset, limit int) ([]model.Candidate, int64, error) {
	var candidates []model.Candidate
	var total int64

	db := applyScope(r.db.WithContext(ctx).Model(&model.Candidate{}), scope, "branch_location")
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.ClientName != "" {
		db = db.Where("client_name ILIKE ?", "%"+escapeLike(filter.ClientName)+"%")
	}
	if filter.ExamFrom != nil {
		db = db.Where("exam_date >= ?", *filter.ExamFrom)
	}
	if filter.ExamTo != nil {
		db = db.Where("exam_date < ?", *filter.ExamTo)
	}
	if filter.Search != "" {
		like := "%" + escapeLike(filter.Search) + "%"
		db = db.Where("full_name ILIKE ? OR confirmation_number ILIKE ? OR phone ILIKE ?", like, like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	col, ok := candidateSortColumns[filter.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := " ASC"
	if filter.SortDesc {
		dir = " DESC"
	}

	if err := db.Order(col + dir).Order("candidate_id").
		Offset(offset).Limit(limit).
		Find(&candidates).Error; err != nil {
		return nil, 0, err
	}
	return candidates, total, nil
}

func (r *candidateRepo) ListByExamDate(ctx context.Context, scope branch.Scope, from, to time.Time) ([]model.Candidate, error) {
	var candidates []model.Candidate
	err := applyScope(r.db.WithContext(ctx), scope, "branch_location").
		Where("exam_date >= ? AND exam_date < ?", from, to).
		Order("exam_date ASC").
		Find(&candidates).Error
	return candidates, err
}

func (r *candidateRepo) Update(ctx context.Context, candidate *model.Candidate) error {
	return r.db.WithContext(ctx).
		Model(candidate).
		Where("candidate_id = ?", candidate.CandidateID).
		Updates(map[string]interface{}{
			"full_name":       candidate.FullName,
			"address":         candidate.Address,
			"phone":           candidate.Phone,
			"exam_date":       candidate.ExamDate,
			"exam_name":       candidate.ExamName,
			"client_name":     candidate.ClientName,
			"status":          candidate.Status,
			"branch_location": candidate.BranchLocation,
			"notes":           candidate.Notes,
			"updated_by":      candidate.UpdatedBy,
		}).Error
}

func (r *candidateRepo) UpdateStatus(ctx context.Context, id, status, updatedBy string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Candidate{}).
		Where("candidate_id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
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

func (r *candidateRepo) Delete(ctx context.Context, id, deletedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Candidate{}).
			Where("candidate_id = ?", id).
			Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		return tx.Where("candidate_id = ?", id).Delete(&model.Candidate{}).Error
	})
}
