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

var _ IPostService = (*PostService)(nil)

type IPostService interface {
	CreatePost(ctx context.Context, actor *models.User, body string) (*types.PostDto, error)
	EditPost(ctx context.Context, actor *models.User, postID int64, body string) (*types.PostDto, error)
	DeletePost(ctx context.Context, actor *models.User, postID int64) error
	// GetPost 管理员查看, 带评论
	GetPost(ctx context.Context, postID int64) (*types.PostWithComments, error)
	GetPostDto(ctx context.Context, postID int64) (*types.PostDto, error)
	ListPostsWithComments(ctx context.Context, q types.PageQuery) ([]*types.PostWithComments, error)
	ListPostDtos(ctx context.Context, q types.PageQuery) ([]*types.PostDto, error)
	SearchPosts(ctx context.Context, keyword string) ([]*types.PostDto, error)
	AddLike(ctx context.Context, actor *models.User, postID int64) (*types.PostDto, error)
	AddDislike(ctx context.Context, actor *models.User, postID int64) (*types.PostDto, error)
	CountLikes(ctx context.Context, postID int64) (int64, error)
	CountDislikes(ctx context.Context, postID int64) (int64, error)
}

type PostService struct {
	DB        *gorm.DB
	PostDAO   *dao.PostDAO
	UserDAO   *dao.Users
	Reactions IReactionService
	Mapper    *Mapper
	Cache     cache.Store
	Publisher mq.Publisher
}

func (s *PostService) CreatePost(ctx context.Context, actor *models.User, body string) (*types.PostDto, error) {
	if isBlank(body) {
		return nil, fmt.Errorf("%w: post body", ErrEmptyBody)
	}

	post := &models.Post{
		ID:        snowflake.GenID(),
		Body:      body,
		UserID:    actor.ID,
		CreatedAt: time.Now(),
	}
	if err := s.PostDAO.Create(ctx, post); err != nil {
		log.L.Error("create post failed", zap.Int64("user_id", actor.ID), zap.Error(err))
		return nil, err
	}

	mq.Emit(ctx, s.Publisher, mq.EventPostCreated, map[string]any{
		"post_id": post.ID,
		"user_id": actor.ID,
	})
	return postDto(post, actor, nil), nil
}

func (s *PostService) EditPost(ctx context.Context, actor *models.User, postID int64, body string) (*types.PostDto, error) {
	post, author, err := s.loadWithAuthor(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, author, "edit post", postID); err != nil {
		log.L.Warn("edit post forbidden", zap.String("username", actor.Username), zap.Int64("post_id", postID))
		return nil, err
	}
	if isBlank(body) {
		return nil, fmt.Errorf("%w: post body", ErrEmptyBody)
	}

	now := time.Now()
	if err := s.updateBody(ctx, postID, body, now); err != nil {
		return nil, err
	}
	post.Body = body
	post.UpdatedAt = &now

	return s.Mapper.PostDto(ctx, post)
}

func (s *PostService) updateBody(ctx context.Context, postID int64, body string, now time.Time) error {
	affected, err := s.PostDAO.UpdateById(ctx, postID, map[string]any{
		"body":       body,
		"updated_at": now,
	})
	if err != nil {
		return fmt.Errorf("update post %d: %w", postID, err)
	}
	if affected == 0 {
		return notFound("post", postID)
	}
	return nil
}

func (s *PostService) DeletePost(ctx context.Context, actor *models.User, postID int64) error {
	_, author, err := s.loadWithAuthor(ctx, postID)
	if err != nil {
		return err
	}
	if err := Authorize(actor, author, "delete post", postID); err != nil {
		log.L.Warn("delete post forbidden", zap.String("username", actor.Username), zap.Int64("post_id", postID))
		return err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deletePostTx(ctx, tx, postID)
	})
	if err != nil {
		log.L.Error("delete post failed", zap.Int64("post_id", postID), zap.Error(err))
		return err
	}

	mq.Emit(ctx, s.Publisher, mq.EventPostDeleted, map[string]any{
		"post_id": postID,
		"by":      actor.Username,
	})
	return nil
}

func (s *PostService) GetPost(ctx context.Context, postID int64) (*types.PostWithComments, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	list, err := s.Mapper.PostsWithComments(ctx, []*models.Post{post})
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

func (s *PostService) GetPostDto(ctx context.Context, postID int64) (*types.PostDto, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.Mapper.PostDto(ctx, post)
}

func (s *PostService) ListPostsWithComments(ctx context.Context, q types.PageQuery) ([]*types.PostWithComments, error) {
	return cache.Remember(ctx, s.Cache, cache.PostsWithComments, q.Key(), func(ctx context.Context) ([]*types.PostWithComments, error) {
		posts, err := s.PostDAO.Page(ctx, q.Offset(), q.Size, q.Desc())
		if err != nil {
			return nil, err
		}
		return s.Mapper.PostsWithComments(ctx, posts)
	})
}

func (s *PostService) ListPostDtos(ctx context.Context, q types.PageQuery) ([]*types.PostDto, error) {
	return cache.Remember(ctx, s.Cache, cache.AllPostsDto, q.Key(), func(ctx context.Context) ([]*types.PostDto, error) {
		posts, err := s.PostDAO.Page(ctx, q.Offset(), q.Size, q.Desc())
		if err != nil {
			return nil, err
		}
		return s.Mapper.PostDtos(ctx, posts)
	})
}

// SearchPosts 没有匹配时返回 ErrNotFound
func (s *PostService) SearchPosts(ctx context.Context, keyword string) ([]*types.PostDto, error) {
	posts, err := s.PostDAO.SearchByBody(ctx, keyword)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, fmt.Errorf("%w: no post contains keyword '%s'", ErrNotFound, keyword)
	}
	return s.Mapper.PostDtos(ctx, posts)
}

func (s *PostService) AddLike(ctx context.Context, actor *models.User, postID int64) (*types.PostDto, error) {
	reactions, err := s.Reactions.AddLike(ctx, actor, PostTarget(postID))
	if err != nil {
		return nil, err
	}
	return s.withReactions(ctx, postID, reactions)
}

func (s *PostService) AddDislike(ctx context.Context, actor *models.User, postID int64) (*types.PostDto, error) {
	reactions, err := s.Reactions.AddDislike(ctx, actor, PostTarget(postID))
	if err != nil {
		return nil, err
	}
	return s.withReactions(ctx, postID, reactions)
}

func (s *PostService) CountLikes(ctx context.Context, postID int64) (int64, error) {
	return s.Reactions.CountLikes(ctx, PostTarget(postID))
}

func (s *PostService) CountDislikes(ctx context.Context, postID int64) (int64, error) {
	return s.Reactions.CountDislikes(ctx, PostTarget(postID))
}

// withReactions 用刚重新加载的反应组装返回值
func (s *PostService) withReactions(ctx context.Context, postID int64, r *Reactions) (*types.PostDto, error) {
	post, author, err := s.loadWithAuthor(ctx, postID)
	if err != nil {
		return nil, err
	}
	all := make([]*models.Reaction, 0, len(r.Likes)+len(r.Dislikes))
	all = append(all, r.Likes...)
	all = append(all, r.Dislikes...)
	return postDto(post, author, all), nil
}

func (s *PostService) findPost(ctx context.Context, postID int64) (*models.Post, error) {
	post, err := s.PostDAO.FindById(ctx, postID)
	if err != nil {
		return nil, lookupErr(err, "post", postID)
	}
	return post, nil
}

func (s *PostService) loadWithAuthor(ctx context.Context, postID int64) (*models.Post, *models.User, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	author, err := s.UserDAO.FindById(ctx, post.UserID)
	if err != nil {
		return nil, nil, lookupErr(err, "user", post.UserID)
	}
	return post, author, nil
}
