package dao

import (
	"Social/models"
	"context"
	"strings"

	"gorm.io/gorm"
)

type PostDAO struct {
	Repo[models.Post]
}

func NewPostDAO(db *gorm.DB) *PostDAO {
	return &PostDAO{Repo: NewRepo[models.Post](db)}
}

func (d *PostDAO) WithTx(tx *gorm.DB) *PostDAO {
	return NewPostDAO(tx)
}

// FindByUserID 查询用户发布的全部帖子
func (d *PostDAO) FindByUserID(ctx context.Context, userID int64) ([]*models.Post, error) {
	return d.FindAll(ctx, "user_id = ?", userID)
}

// SearchByBody 正文包含关键字(不区分大小写)
func (d *PostDAO) SearchByBody(ctx context.Context, keyword string) ([]*models.Post, error) {
	return d.FindAll(ctx, "LOWER(body) LIKE ? ESCAPE '!'", containing(strings.ToLower(keyword)))
}

// IncrCommentCount 评论数增减, 帖子不存在时返回 gorm.ErrRecordNotFound
func (d *PostDAO) IncrCommentCount(ctx context.Context, postID int64, delta int) error {
	res := d.Db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("number_of_comments", gorm.Expr("number_of_comments + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
