package repository

import (
	"context"

	"gorm.io/gorm"

	"fets-live/backend/internal/model"
)

// ClientRepository client and client exam data access
type ClientRepository interface {
	List(ctx context.Context, activeOnly bool) ([]model.Client, error)
	GetByID(ctx context.Context, id string) (*model.Client, error)
	GetByName(ctx context.Context, name string) (*model.Client, error)
	Create(ctx context.Context, client *model.Client) error
	CreateExam(ctx context.Context, exam *model.ClientExam) error
	DeleteExam(ctx context.Context, examID string) error
}

type clientRepo struct {
	db *gorm.DB
}

// NewClientRepo creates a ClientRepository
func NewClientRepo(db *gorm.DB) ClientRepository {
	return &clientRepo{db: db}
}

func (r *clientRepo) List(ctx context.Context, activeOnly bool) ([]model.Client, error) {
	var clients []model.Client
	db := r.db.WithContext(ctx).
		Preload("Exams", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") })
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("name ASC").Find(&clients).Error
	return clients, err
}

func (r *clientRepo) GetByID(ctx context.Context, id string) (*model.Client, error) {
	var c model.Client
	if err := r.db.WithContext(ctx).Preload("Exams").Where("client_id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepo) GetByName(ctx context.Context, name string) (*model.Client, error) {
	var c model.Client
	if err := r.db.WithContext(ctx).Where("lower(name) = lower(?)", name).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepo) Create(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Omit("Exams").Create(client).Error
}

func (r *clientRepo) CreateExam(ctx context.Context, exam *model.ClientExam) error {
	return r.db.WithContext(ctx).Create(exam).Error
}

func (r *clientRepo) DeleteExam(ctx context.Context, examID string) error {
	result := r.db.WithContext(ctx).Where("exam_id = ?", examID).Delete(&model.ClientExam{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
