package types

import "time"

type BodyRequest struct {
	Body string `json:"body" form:"body"`
}

// ReactionDto 点赞/点踩记录, post_id 与 comment_id 只会出现一个
type ReactionDto struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	PostID    *int64    `json:"post_id,omitempty"`
	CommentID *int64    `json:"comment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type PostDto struct {
	ID               int64          `json:"id"`
	Body             string         `json:"body"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        *time.Time     `json:"updated_at"`
	Username         string         `json:"username"`
	ProfilePicture   string         `json:"profile_picture"`
	NumberOfComments int            `json:"number_of_comments"`
	Likes            []*ReactionDto `json:"likes"`
	Dislikes         []*ReactionDto `json:"dislikes"`
	LikeCount        int            `json:"like_count"`
	DislikeCount     int            `json:"dislike_count"`
}

// PostWithComments 管理员视角, 带全部评论
type PostWithComments struct {
	ID               int64          `json:"id"`
	Body             string         `json:"body"`
	UserID           int64          `json:"user_id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        *time.Time     `json:"updated_at"`
	NumberOfComments int            `json:"number_of_comments"`
	Likes            []*ReactionDto `json:"likes"`
	Dislikes         []*ReactionDto `json:"dislikes"`
	Comments         []*CommentView `json:"comments"`
}

type CountResponse struct {
	ID    int64 `json:"id"`
	Count int64 `json:"count"`
}
