package types

import "time"

type CommentDto struct {
	ID           int64          `json:"id"`
	PostID       int64          `json:"post_id"`
	Body         string         `json:"body"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    *time.Time     `json:"updated_at"`
	User         *UserDto       `json:"user"`
	Likes        []*ReactionDto `json:"likes"`
	Dislikes     []*ReactionDto `json:"dislikes"`
	LikeCount    int            `json:"like_count"`
	DislikeCount int            `json:"dislike_count"`
}

// CommentView 管理员视角的评论
type CommentView struct {
	ID        int64          `json:"id"`
	PostID    int64          `json:"post_id"`
	UserID    int64          `json:"user_id"`
	Body      string         `json:"body"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt *time.Time     `json:"updated_at"`
	Likes     []*ReactionDto `json:"likes"`
	Dislikes  []*ReactionDto `json:"dislikes"`
}
