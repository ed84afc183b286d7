package dto

// ── MyDesk feed ──

// CreatePostRequest new post
type CreatePostRequest struct {
	Content string `json:"content" binding:"max=5000"`
}

// CreatePostCommentRequest new comment
type CreatePostCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// PostResponse feed post
type PostResponse struct {
	ID            string `json:"id"`
	AuthorID      string `json:"author_id"`
	AuthorName    string `json:"author_name,omitempty"`
	AuthorAvatar  string `json:"author_avatar,omitempty"`
	Content       string `json:"content"`
	LikesCount    int    `json:"likes_count"`
	CommentsCount int    `json:"comments_count"`
	CreatedAt     string `json:"created_at"`
}

// LikeResponse new like count
type LikeResponse struct {
	LikesCount int `json:"likes_count"`
}

// PostCommentResponse comment row
type PostCommentResponse struct {
	ID        string `json:"id"`
	AuthorID  string `json:"author_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}
