package models

import "time"

// Comment 评论表
type Comment struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Body      string     `gorm:"column:body;type:text;not null" json:"body"`
	PostID    int64      `gorm:"column:post_id;not null;index:idx_comments_post_id" json:"post_id"`
	UserID    int64      `gorm:"column:user_id;not null;index:idx_comments_user_id" json:"user_id"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime:false;index:idx_comments_created_at" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}
