package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/model"
	"fets-live/backend/internal/repository"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrPostEmpty        = errors.New("post content must not be empty")
	ErrPostNotOwned     = errors.New("only the author or an admin can delete this post")
	ErrCommentBodyEmpty = errors.New("comment must not be empty")
)

// SocialService MyDesk feed
type SocialService interface {
	ListPosts(ctx context.Context, req *dto.PaginationRequest) ([]dto.PostResponse, int64, error)
	CreatePost(ctx context.Context, callerID string, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	Like(ctx context.Context, postID string) (*dto.LikeResponse, error)
	Comment(ctx context.Context, postID, callerID string, req *dto.CreatePostCommentRequest) (*dto.PostCommentResponse, error)
	ListComments(ctx context.Context, postID string) ([]dto.PostCommentResponse, error)
	DeletePost(ctx context.Context, postID string, caller Caller) error
}

type socialService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSocialService creates a SocialService
func NewSocialService(repo *repository.Repository, logger *zap.Logger) SocialService {
	return &socialService{repo: repo, logger: logger}
}

func (s *socialService) ListPosts(ctx context.Context, req *dto.PaginationRequest) ([]dto.PostResponse, int64, error) {
	posts, total, err := s.repo.Social.ListPosts(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list posts failed", zap.Error(err))
		return nil, 0, err
	}
	result := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		result = append(result, toPostResponse(&posts[i]))
	}
	return result, total, nil
}

func (s *socialService) CreatePost(ctx context.Context, callerID string, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrPostEmpty
	}
	post := &model.SocialPost{AuthorID: callerID, Content: content}
	post.CreatedBy = &callerID
	post.UpdatedBy = &callerID

	if err := s.repo.Social.CreatePost(ctx, post); err != nil {
		s.logger.Error("create post failed", zap.Error(err))
		return nil, err
	}
	if p, err := s.repo.Profile.GetByUserID(ctx, callerID); err == nil {
		post.Author = p
	}
	resp := toPostResponse(post)
	return &resp, nil
}

func (s *socialService) Like(ctx context.Context, postID string) (*dto.LikeResponse, error) {
	n, err := s.repo.Social.IncrementLikes(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		s.logger.Error("like post failed", zap.Error(err))
		return nil, err
	}
	return &dto.LikeResponse{LikesCount: n}, nil
}

func (s *socialService) Comment(ctx context.Context, postID, callerID string, req *dto.CreatePostCommentRequest) (*dto.PostCommentResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrCommentBodyEmpty
	}
	c := &model.SocialComment{PostID: postID, AuthorID: callerID, Content: content}
	if err := s.repo.Social.AddComment(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		s.logger.Error("comment on post failed", zap.Error(err))
		return nil, err
	}
	resp := toPostCommentResponse(c)
	return &resp, nil
}

func (s *socialService) ListComments(ctx context.Context, postID string) ([]dto.PostCommentResponse, error) {
	if _, err := s.loadPost(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.repo.Social.ListComments(ctx, postID)
	if err != nil {
		s.logger.Error("list post comments failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.PostCommentResponse, 0, len(comments))
	for i := range comments {
		result = append(result, toPostCommentResponse(&comments[i]))
	}
	return result, nil
}

func (s *socialService) DeletePost(ctx context.Context, postID string, caller Caller) error {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != caller.UserID && !model.IsAdmin(caller.Role) {
		return ErrPostNotOwned
	}
	if err := s.repo.Social.DeletePost(ctx, postID, caller.UserID); err != nil {
		s.logger.Error("delete post failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *socialService) loadPost(ctx context.Context, id string) (*model.SocialPost, error) {
	post, err := s.repo.Social.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		s.logger.Error("load post failed", zap.Error(err))
		return nil, err
	}
	return post, nil
}

func toPostResponse(p *model.SocialPost) dto.PostResponse {
	resp := dto.PostResponse{
		ID:            p.PostID,
		AuthorID:      p.AuthorID,
		Content:       p.Content,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		CreatedAt:     formatTimestamp(p.CreatedAt),
	}
	if p.Author != nil {
		resp.AuthorName = p.Author.FullName
		resp.AuthorAvatar = p.Author.AvatarURL
	}
	return resp
}

func toPostCommentResponse(c *model.SocialComment) dto.PostCommentResponse {
	return dto.PostCommentResponse{
		ID:        c.CommentID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
		CreatedAt: formatTimestamp(c.CreatedAt),
	}
}
