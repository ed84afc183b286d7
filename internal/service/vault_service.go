package service

import (
	"context"
	"errors"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/model"
	"fets-live/backend/internal/repository"
)

// ErrVaultItemNotFound vault entry missing or outside the scope
var ErrVaultItemNotFound = errors.New("vault item not found")

// VaultService shared reference entries
type VaultService interface {
	Create(ctx context.Context, scope branch.Scope, req *dto.CreateVaultItemRequest, callerID string) (*dto.VaultItemResponse, error)
	Get(ctx context.Context, scope branch.Scope, id string) (*dto.VaultItemResponse, error)
	List(ctx context.Context, scope branch.Scope, req *dto.VaultListRequest) ([]dto.VaultItemResponse, int64, error)
	Update(ctx context.Context, scope branch.Scope, id string, req *dto.UpdateVaultItemRequest, callerID string) (*dto.VaultItemResponse, error)
	Delete(ctx context.Context, scope branch.Scope, id, callerID string) error
}

type vaultService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewVaultService creates a VaultService
func NewVaultService(repo *repository.Repository, logger *zap.Logger) VaultService {
	return &vaultService{repo: repo, logger: logger}
}

func (s *vaultService) Create(ctx context.Context, scope branch.Scope, req *dto.CreateVaultItemRequest, callerID string) (*dto.VaultItemResponse, error) {
	loc, err := writeBranch(scope, req.BranchLocation)
	if err != nil {
		return nil, err
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = "general"
	}
	item := &model.VaultItem{
		Title:          strings.TrimSpace(req.Title),
		Category:       category,
		Content:        req.Content,
		Tags:           normalizeTags(req.Tags),
		BranchLocation: loc,
	}
	item.CreatedBy = &callerID
	item.UpdatedBy = &callerID

	if err := s.repo.Vault.Create(ctx, item); err != nil {
		s.logger.Error("create vault item failed", zap.Error(err))
		return nil, err
	}
	resp := toVaultItemResponse(item)
	return &resp, nil
}

func (s *vaultService) Get(ctx context.Context, scope branch.Scope, id string) (*dto.VaultItemResponse, error) {
	item, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	resp := toVaultItemResponse(item)
	return &resp, nil
}

func (s *vaultService) List(ctx context.Context, scope branch.Scope, req *dto.VaultListRequest) ([]dto.VaultItemResponse, int64, error) {
	filter := repository.VaultFilter{
		Category: strings.TrimSpace(req.Category),
		Tag:      strings.ToLower(strings.TrimSpace(req.Tag)),
		Keyword:  strings.TrimSpace(req.Keyword),
	}
	items, total, err := s.repo.Vault.List(ctx, scope, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list vault items failed", zap.Error(err))
		return nil, 0, err
	}
	result := make([]dto.VaultItemResponse, 0, len(items))
	for i := range items {
		result = append(result, toVaultItemResponse(&items[i]))
	}
	return result, total, nil
}

func (s *vaultService) Update(ctx context.Context, scope branch.Scope, id string, req *dto.UpdateVaultItemRequest, callerID string) (*dto.VaultItemResponse, error) {
	item, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		item.Title = strings.TrimSpace(*req.Title)
	}
	if req.Category != nil {
		item.Category = strings.TrimSpace(*req.Category)
	}
	if req.Content != nil {
		item.Content = *req.Content
	}
	if req.Tags != nil {
		item.Tags = normalizeTags(req.Tags)
	}
	item.UpdatedBy = &callerID

	if err := s.repo.Vault.Update(ctx, item); err != nil {
		s.logger.Error("update vault item failed", zap.Error(err))
		return nil, err
	}
	resp := toVaultItemResponse(item)
	return &resp, nil
}

func (s *vaultService) Delete(ctx context.Context, scope branch.Scope, id, callerID string) error {
	if _, err := s.load(ctx, scope, id); err != nil {
		return err
	}
	if err := s.repo.Vault.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("delete vault item failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *vaultService) load(ctx context.Context, scope branch.Scope, id string) (*model.VaultItem, error) {
	item, err := s.repo.Vault.GetByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVaultItemNotFound
		}
		s.logger.Error("load vault item failed", zap.Error(err))
		return nil, err
	}
	return item, nil
}

// normalizeTags lower-cases, trims and de-duplicates tags.
func normalizeTags(tags []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func toVaultItemResponse(item *model.VaultItem) dto.VaultItemResponse {
	tags := []string(item.Tags)
	if tags == nil {
		tags = []string{}
	}
	return dto.VaultItemResponse{
		ID:             item.ItemID,
		Title:          item.Title,
		Category:       item.Category,
		Content:        item.Content,
		Tags:           tags,
		BranchLocation: item.BranchLocation,
		UpdatedAt:      formatTimestamp(item.UpdatedAt),
	}
}
