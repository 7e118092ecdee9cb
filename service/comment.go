package service

import (
	"Social/dao"
	"Social/dao/cache"
	"Social/models"
	"Social/pkg/log"
	"Social/pkg/mq"
	"Social/pkg/snowflake"
	"Social/types"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ ICommentService = (*CommentService)(nil)

type ICommentService interface {
	CreateComment(ctx context.Context, actor *models.User, postID int64, body string) (*types.CommentDto, error)
	EditComment(ctx context.Context, actor *models.User, commentID int64, body string) (*types.CommentDto, error)
	DeleteComment(ctx context.Context, actor *models.User, commentID, postID int64) error
	GetComment(ctx context.Context, commentID int64) (*types.CommentView, error)
	GetCommentDto(ctx context.Context, commentID int64) (*types.CommentDto, error)
	ListComments(ctx context.Context, q types.PageQuery) ([]*types.CommentView, error)
	ListCommentDtos(ctx context.Context, q types.PageQuery) ([]*types.CommentDto, error)
	ListByPost(ctx context.Context, postID int64) ([]*types.CommentDto, error)
	SearchComments(ctx context.Context, keyword string) ([]*types.CommentView, error)
	SearchCommentDtos(ctx context.Context, keyword string) ([]*types.CommentDto, error)
	AddLike(ctx context.Context, actor *models.User, commentID int64) (*types.CommentDto, error)
	AddDislike(ctx context.Context, actor *models.User, commentID int64) (*types.CommentDto, error)
}

type CommentService struct {
	DB         *gorm.DB
	CommentDAO *dao.Comment
	PostDAO    *dao.PostDAO
	UserDAO    *dao.Users
	Reactions  IReactionService
	Mapper     *Mapper
	Cache      cache.Store
	Publisher  mq.Publisher
}

// CreateComment 写评论和帖子评论数 +1 在同一事务
func (s *CommentService) CreateComment(ctx context.Context, actor *models.User, postID int64, body string) (*types.CommentDto, error) {
	if _, err := s.PostDAO.FindById(ctx, postID); err != nil {
		return nil, lookupErr(err, "post", postID)
	}
	if isBlank(body) {
		return nil, fmt.Errorf("%w: comment body", ErrEmptyBody)
	}

	comment := &models.Comment{
		ID:        snowflake.GenID(),
		Body:      body,
		PostID:    postID,
		UserID:    actor.ID,
		CreatedAt: time.Now(),
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.CommentDAO.WithTx(tx).Create(ctx, comment); err != nil {
			return err
		}
		return s.PostDAO.WithTx(tx).IncrCommentCount(ctx, postID, 1)
	})
	if err != nil {
		log.L.Error("create comment failed", zap.Int64("post_id", postID), zap.Error(err))
		return nil, lookupErr(err, "post", postID)
	}

	mq.Emit(ctx, s.Publisher, mq.EventCommentCreated, map[string]any{
		"comment_id": comment.ID,
		"post_id":    postID,
		"user_id":    actor.ID,
	})
	return commentDto(comment, actor, nil), nil
}

func (s *CommentService) EditComment(ctx context.Context, actor *models.User, commentID int64, body string) (*types.CommentDto, error) {
	comment, author, err := s.loadWithAuthor(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, author, "edit comment", commentID); err != nil {
		log.L.Warn("edit comment forbidden", zap.String("username", actor.Username), zap.Int64("comment_id", commentID))
		return nil, err
	}
	if isBlank(body) {
		return nil, fmt.Errorf("%w: comment body", ErrEmptyBody)
	}

	now := time.Now()
	affected, err := s.CommentDAO.UpdateById(ctx, commentID, map[string]any{
		"body":       body,
		"updated_at": now,
	})
	if err != nil {
		return nil, fmt.Errorf("update comment %d: %w", commentID, err)
	}
	if affected == 0 {
		return nil, notFound("comment", commentID)
	}
	comment.Body = body
	comment.UpdatedAt = &now

	return s.Mapper.CommentDto(ctx, comment)
}

// DeleteComment postID 必须是评论所属帖子, 否则按不存在处理
func (s *CommentService) DeleteComment(ctx context.Context, actor *models.User, commentID, postID int64) error {
	comment, author, err := s.loadWithAuthor(ctx, commentID)
	if err != nil {
		return err
	}
	if err := Authorize(actor, author, "delete comment", commentID); err != nil {
		log.L.Warn("delete comment forbidden", zap.String("username", actor.Username), zap.Int64("comment_id", commentID))
		return err
	}
	if comment.PostID != postID {
		return fmt.Errorf("%w: comment %d does not belong to post %d", ErrNotFound, commentID, postID)
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteCommentTx(ctx, tx, comment)
	})
	if err != nil {
		log.L.Error("delete comment failed", zap.Int64("comment_id", commentID), zap.Error(err))
		return err
	}

	mq.Emit(ctx, s.Publisher, mq.EventCommentDeleted, map[string]any{
		"comment_id": commentID,
		"post_id":    postID,
		"by":         actor.Username,
	})
	return nil
}

func (s *CommentService) GetComment(ctx context.Context, commentID int64) (*types.CommentView, error) {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	list, err := s.Mapper.CommentViews(ctx, []*models.Comment{comment})
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

func (s *CommentService) GetCommentDto(ctx context.Context, commentID int64) (*types.CommentDto, error) {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return s.Mapper.CommentDto(ctx, comment)
}

func (s *CommentService) ListComments(ctx context.Context, q types.PageQuery) ([]*types.CommentView, error) {
	return cache.Remember(ctx, s.Cache, cache.AllComments, q.Key(), func(ctx context.Context) ([]*types.CommentView, error) {
		comments, err := s.CommentDAO.Page(ctx, q.Offset(), q.Size, q.Desc())
		if err != nil {
			return nil, err
		}
		return s.Mapper.CommentViews(ctx, comments)
	})
}

func (s *CommentService) ListCommentDtos(ctx context.Context, q types.PageQuery) ([]*types.CommentDto, error) {
	return cache.Remember(ctx, s.Cache, cache.AllCommentsDto, q.Key(), func(ctx context.Context) ([]*types.CommentDto, error) {
		comments, err := s.CommentDAO.Page(ctx, q.Offset(), q.Size, q.Desc())
		if err != nil {
			return nil, err
		}
		return s.Mapper.CommentDtos(ctx, comments)
	})
}

func (s *CommentService) ListByPost(ctx context.Context, postID int64) ([]*types.CommentDto, error) {
	if _, err := s.PostDAO.FindById(ctx, postID); err != nil {
		return nil, lookupErr(err, "post", postID)
	}
	comments, err := s.CommentDAO.FindByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.Mapper.CommentDtos(ctx, comments)
}

// SearchComments 管理员搜索, 没有匹配时返回 ErrNotFound
func (s *CommentService) SearchComments(ctx context.Context, keyword string) ([]*types.CommentView, error) {
	comments, err := s.CommentDAO.SearchByBody(ctx, keyword)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return nil, fmt.Errorf("%w: no comment contains '%s'", ErrNotFound, keyword)
	}
	return s.Mapper.CommentViews(ctx, comments)
}

// SearchCommentDtos 没有匹配时返回空列表
func (s *CommentService) SearchCommentDtos(ctx context.Context, keyword string) ([]*types.CommentDto, error) {
	comments, err := s.CommentDAO.SearchByBody(ctx, keyword)
	if err != nil {
		return nil, err
	}
	return s.Mapper.CommentDtos(ctx, comments)
}

func (s *CommentService) AddLike(ctx context.Context, actor *models.User, commentID int64) (*types.CommentDto, error) {
	reactions, err := s.Reactions.AddLike(ctx, actor, CommentTarget(commentID))
	if err != nil {
		return nil, err
	}
	return s.withReactions(ctx, commentID, reactions)
}

func (s *CommentService) AddDislike(ctx context.Context, actor *models.User, commentID int64) (*types.CommentDto, error) {
	reactions, err := s.Reactions.AddDislike(ctx, actor, CommentTarget(commentID))
	if err != nil {
		return nil, err
	}
	return s.withReactions(ctx, commentID, reactions)
}

func (s *CommentService) withReactions(ctx context.Context, commentID int64, r *Reactions) (*types.CommentDto, error) {
	comment, author, err := s.loadWithAuthor(ctx, commentID)
	if err != nil {
		return nil, err
	}
	all := make([]*models.Reaction, 0, len(r.Likes)+len(r.Dislikes))
	all = append(all, r.Likes...)
	all = append(all, r.Dislikes...)
	return commentDto(comment, author, all), nil
}

func (s *CommentService) findComment(ctx context.Context, commentID int64) (*models.Comment, error) {
	comment, err := s.CommentDAO.FindById(ctx, commentID)
	if err != nil {
		return nil, lookupErr(err, "comment", commentID)
	}
	return comment, nil
}

func (s *CommentService) loadWithAuthor(ctx context.Context, commentID int64) (*models.Comment, *models.User, error) {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return nil, nil, err
	}
	author, err := s.UserDAO.FindById(ctx, comment.UserID)
	if err != nil {
		return nil, nil, lookupErr(err, "user", comment.UserID)
	}
	return comment, author, nil
}
