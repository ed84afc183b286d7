package model

import "time"

// SocialPost MyDesk feed post (social_posts)
// LikesCount and CommentsCount are denormalised counters.
type SocialPost struct {
	PostID        string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"post_id"`
	AuthorID      string `gorm:"type:uuid;not null;index"                       json:"author_id"`
	Content       string `gorm:"type:text;not null"                             json:"content"`
	LikesCount    int    `gorm:"not null;default:0"                             json:"likes_count"`
	CommentsCount int    `gorm:"not null;default:0"                             json:"comments_count"`
	SoftDeleteModel

	Author *StaffProfile `gorm:"foreignKey:AuthorID;references:UserID" json:"author,omitempty"`
}

func (SocialPost) TableName() string { return "social_posts" }

// SocialComment comment on a post (social_comments)
type SocialComment struct {
	CommentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"comment_id"`
	PostID    string    `gorm:"type:uuid;not null;index"                       json:"post_id"`
	AuthorID  string    `gorm:"type:uuid;not null"                             json:"author_id"`
	Content   string    `gorm:"type:text;not null"                             json:"content"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

func (SocialComment) TableName() string { return "social_comments" }
