package models

import "time"

// Post 帖子表, NumberOfComments 与 comments 表中 post_id 相同的行数保持一致
type Post struct {
	ID               int64      `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Body             string     `gorm:"column:body;type:text;not null" json:"body"`
	UserID           int64      `gorm:"column:user_id;not null;index:idx_posts_user_id" json:"user_id"`
	NumberOfComments int        `gorm:"column:number_of_comments;not null;default:0" json:"number_of_comments"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime:false;index:idx_posts_created_at" json:"created_at"`
	UpdatedAt        *time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}
