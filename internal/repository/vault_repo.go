package repository

import (
	"context"

	"gorm.io/gorm"

	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/model"
)

// VaultFilter list filters for vault items
type VaultFilter struct {
	Category string
	Tag      string
	Keyword  string
}

// VaultRepository vault item data access
type VaultRepository interface {
	Create(ctx context.Context, item *model.VaultItem) error
	GetByID(ctx context.Context, scope branch.Scope, id string) (*model.VaultItem, error)
	List(ctx context.Context, scope branch.Scope, filter VaultFilter, offset, limit int) ([]model.VaultItem, int64, error)
	Update(ctx context.Context, item *model.VaultItem) error
	Delete(ctx context.Context, id, deletedBy string) error
}

type vaultRepo struct {
	db *gorm.DB
}

// NewVaultRepo creates a VaultRepository
func NewVaultRepo(db *gorm.DB) VaultRepository {
	return &vaultRepo{db: db}
}

func (r *vaultRepo) Create(ctx context.Context, item *model.VaultItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *vaultRepo) GetByID(ctx context.Context, scope branch.Scope, id string) (*model.VaultItem, error) {
	var item model.VaultItem
	db := applyScope(r.db.WithContext(ctx), scope, "branch_location")
	if err := db.Where("item_id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *vaultRepo) List(ctx context.Context, scope branch.Scope, filter VaultFilter, offset, limit int) ([]model.VaultItem, int64, error) {
	var items []model.VaultItem
	var total int64

	db := applyScope(r.db.WithContext(ctx).Model(&model.VaultItem{}), scope, "branch_location")
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.Tag != "" {
		db = db.Where("? = ANY(tags)", filter.Tag)
	}
	if filter.Keyword != "" {
		like := "%" + escapeLike(filter.Keyword) + "%"
		db = db.Where("title ILIKE ? OR content ILIKE ?", like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("title ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *vaultRepo) Update(ctx context.Context, item *model.VaultItem) error {
	return r.db.WithContext(ctx).
		Model(item).
		Where("item_id = ?", item.ItemID).
		Updates(map[string]interface{}{
			"title":           item.Title,
			"category":        item.Category,
			"content":         item.Content,
			"tags":            item.Tags,
			"branch_location": item.BranchLocation,
			"updated_by":      item.UpdatedBy,
		}).Error
}

func (r *vaultRepo) Delete(ctx context.Context, id, deletedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.VaultItem{}).
			Where("item_id = ?", id).
			Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		return tx.Where("item_id = ?", id).Delete(&model.VaultItem{}).Error
	})
}
