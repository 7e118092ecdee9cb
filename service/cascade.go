package service

import (
	"Social/dao"
	"Social/models"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// 以下函数只在事务内调用, tx 由调用方开启

// deletePostTx 删除帖子: 评论的反应 -> 评论 -> 帖子的反应 -> 帖子
func deletePostTx(ctx context.Context, tx *gorm.DB, postID int64) error {
	comments, err := dao.NewComment(tx).FindByPostID(ctx, postID)
	if err != nil {
		return fmt.Errorf("load comments of post %d: %w", postID, err)
	}
	commentIDs := make([]int64, 0, len(comments))
	for _, c := range comments {
		commentIDs = append(commentIDs, c.ID)
	}

	reactions := dao.NewReaction(tx)
	if err := reactions.DeleteByTargets(ctx, models.TargetComment, commentIDs...); err != nil {
		return fmt.Errorf("delete comment reactions of post %d: %w", postID, err)
	}
	if _, err := dao.NewComment(tx).DeleteByPostID(ctx, postID); err != nil {
		return fmt.Errorf("delete comments of post %d: %w", postID, err)
	}
	if err := reactions.DeleteByTargets(ctx, models.TargetPost, postID); err != nil {
		return fmt.Errorf("delete reactions of post %d: %w", postID, err)
	}
	affected, err := dao.NewPostDAO(tx).DeleteById(ctx, postID)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", postID, err)
	}
	if affected == 0 {
		return notFound("post", postID)
	}
	return nil
}

// deleteCommentTx 删除评论及其反应, 所属帖子评论数减一
func deleteCommentTx(ctx context.Context, tx *gorm.DB, comment *models.Comment) error {
	if err := dao.NewReaction(tx).DeleteByTargets(ctx, models.TargetComment, comment.ID); err != nil {
		return fmt.Errorf("delete reactions of comment %d: %w", comment.ID, err)
	}
	affected, err := dao.NewComment(tx).DeleteById(ctx, comment.ID)
	if err != nil {
		return fmt.Errorf("delete comment %d: %w", comment.ID, err)
	}
	if affected == 0 {
		return notFound("comment", comment.ID)
	}
	if err := dao.NewPostDAO(tx).IncrCommentCount(ctx, comment.PostID, -1); err != nil {
		return lookupErr(err, "post", comment.PostID)
	}
	return nil
}
