package dao

import (
	"Social/models"
	"context"
	"strings"

	"gorm.io/gorm"
)

type Comment struct {
	Repo[models.Comment]
}

func NewComment(db *gorm.DB) *Comment {
	return &Comment{
		Repo: NewRepo[models.Comment](db),
	}
}

func (d *Comment) WithTx(tx *gorm.DB) *Comment {
	return NewComment(tx)
}

// FindByPostID 获取帖子下的全部评论(按时间正序)
func (d *Comment) FindByPostID(ctx context.Context, postID int64) ([]*models.Comment, error) {
	comments := make([]*models.Comment, 0)
	err := d.Db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

// FindByPostIDs 批量获取多个帖子的评论, 返回 post_id -> comments
func (d *Comment) FindByPostIDs(ctx context.Context, postIDs []int64) (map[int64][]*models.Comment, error) {
	result := make(map[int64][]*models.Comment, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}
	var comments []*models.Comment
	err := d.Db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("post_id, created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	for _, comment := range comments {
		result[comment.PostID] = append(result[comment.PostID], comment)
	}
	return result, nil
}

// FindByUserID 查询用户发表的全部评论
func (d *Comment) FindByUserID(ctx context.Context, userID int64) ([]*models.Comment, error) {
	return d.FindAll(ctx, "user_id = ?", userID)
}

// SearchByBody 正文包含关键字(不区分大小写)
func (d *Comment) SearchByBody(ctx context.Context, keyword string) ([]*models.Comment, error) {
	return d.FindAll(ctx, "LOWER(body) LIKE ? ESCAPE '!'", containing(strings.ToLower(keyword)))
}

// CountByPostID 帖子下的实际评论数
func (d *Comment) CountByPostID(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := d.Db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

// DeleteByPostID 删除帖子下的全部评论
func (d *Comment) DeleteByPostID(ctx context.Context, postID int64) (int64, error) {
	res := d.Db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Comment{})
	return res.RowsAffected, res.Error
}
