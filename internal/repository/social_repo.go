package repository

import (
	"context"

	"gorm.io/gorm"

	"fets-live/backend/internal/model"
)

// SocialRepository MyDesk feed data access
type SocialRepository interface {
	ListPosts(ctx context.Context, offset, limit int) ([]model.SocialPost, int64, error)
	GetPost(ctx context.Context, id string) (*model.SocialPost, error)
	CreatePost(ctx context.Context, post *model.SocialPost) error
	DeletePost(ctx context.Context, id, deletedBy string) error
	// IncrementLikes bumps the counter in SQL and returns the new value.
	IncrementLikes(ctx context.Context, id string) (int, error)
	// AddComment inserts the comment and bumps comments_count together.
	AddComment(ctx context.Context, comment *model.SocialComment) error
	ListComments(ctx context.Context, postID string) ([]model.SocialComment, error)
}

type socialRepo struct {
	db *gorm.DB
}

// NewSocialRepo creates a SocialRepository
func NewSocialRepo(db *gorm.DB) SocialRepository {
	return &socialRepo{db: db}
}

func (r *socialRepo) ListPosts(ctx context.Context, offset, limit int) ([]model.SocialPost, int64, error) {
	var posts []model.SocialPost
	var total int64

	db := r.db.WithContext(ctx).Model(&model.SocialPost{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Preload("Author").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *socialRepo) GetPost(ctx context.Context, id string) (*model.SocialPost, error) {
	var post model.SocialPost
	if err := r.db.WithContext(ctx).Preload("Author").Where("post_id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *socialRepo) CreatePost(ctx context.Context, post *model.SocialPost) error {
	return r.db.WithContext(ctx).Omit("Author").Create(post).Error
}

func (r *socialRepo) DeletePost(ctx context.Context, id, deletedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.SocialPost{}).
			Where("post_id = ?", id).
			Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		return tx.Where("post_id = ?", id).Delete(&model.SocialPost{}).Error
	})
}

func (r *socialRepo) IncrementLikes(ctx context.Context, id string) (int, error) {
	var post model.SocialPost
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.SocialPost{}).
			Where("post_id = ?", id).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Select("likes_count").Where("post_id = ?", id).First(&post).Error
	})
	if err != nil {
		return 0, err
	}
	return post.LikesCount, nil
}

func (r *socialRepo) AddComment(ctx context.Context, comment *model.SocialComment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.SocialPost{}).
			Where("post_id = ?", comment.PostID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(comment).Error
	})
}

func (r *socialRepo) ListComments(ctx context.Context, postID string) ([]model.SocialComment, error) {
	var comments []model.SocialComment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}
