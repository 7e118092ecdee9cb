package service

import (
	"Social/dao"
	"Social/models"
	"Social/pkg/log"
	"Social/pkg/mq"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ IReactionService = (*ReactionService)(nil)

// Target 反应作用的帖子或评论
type Target struct {
	Type models.TargetType
	ID   int64
}

func PostTarget(id int64) Target {
	return Target{Type: models.TargetPost, ID: id}
}

func CommentTarget(id int64) Target {
	return Target{Type: models.TargetComment, ID: id}
}

// Reactions 写入后从库里重新加载的反应列表
type Reactions struct {
	Target   Target
	Likes    []*models.Reaction
	Dislikes []*models.Reaction
}

type IReactionService interface {
	AddLike(ctx context.Context, actor *models.User, target Target) (*Reactions, error)
	AddDislike(ctx context.Context, actor *models.User, target Target) (*Reactions, error)
	CountLikes(ctx context.Context, target Target) (int64, error)
	CountDislikes(ctx context.Context, target Target) (int64, error)
}

// ReactionService 点赞/点踩是唯一写入方
// 同一用户对同一目标最多一个赞和一个踩, 赞和踩之间不互斥
type ReactionService struct {
	DB          *gorm.DB
	PostDAO     *dao.PostDAO
	CommentDAO  *dao.Comment
	ReactionDAO *dao.Reaction
	Publisher   mq.Publisher
}

func (s *ReactionService) AddLike(ctx context.Context, actor *models.User, target Target) (*Reactions, error) {
	return s.add(ctx, actor, target, models.KindLike)
}

func (s *ReactionService) AddDislike(ctx context.Context, actor *models.User, target Target) (*Reactions, error) {
	return s.add(ctx, actor, target, models.KindDislike)
}

func (s *ReactionService) CountLikes(ctx context.Context, target Target) (int64, error) {
	return s.count(ctx, target, models.KindLike)
}

func (s *ReactionService) CountDislikes(ctx context.Context, target Target) (int64, error) {
	return s.count(ctx, target, models.KindDislike)
}

func (s *ReactionService) add(ctx context.Context, actor *models.User, target Target, kind models.ReactionKind) (*Reactions, error) {
	if err := s.ensureTarget(ctx, target); err != nil {
		return nil, err
	}

	existing, err := s.ReactionDAO.FindByTarget(ctx, kind, target.Type, target.ID)
	if err != nil {
		return nil, fmt.Errorf("load %ss of %s %d: %w", kind, target.Type, target.ID, err)
	}
	for _, r := range existing {
		if r.UserID == actor.ID {
			return nil, duplicateReaction(kind, target)
		}
	}

	reaction := &models.Reaction{
		UserID:     actor.ID,
		Kind:       kind,
		TargetType: target.Type,
		TargetID:   target.ID,
		Username:   actor.Username,
		CreatedAt:  time.Now(),
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.ReactionDAO.WithTx(tx).Create(ctx, reaction)
	})
	if err != nil {
		// 并发请求越过了上面的检查, 由唯一索引兜底
		if isDuplicateKey(err) {
			return nil, duplicateReaction(kind, target)
		}
		log.L.Error("save reaction failed",
			zap.String("kind", string(kind)),
			zap.String("target_type", string(target.Type)),
			zap.Int64("target_id", target.ID),
			zap.Error(err),
		)
		return nil, err
	}

	mq.Emit(ctx, s.Publisher, mq.EventReactionAdded, map[string]any{
		"kind":        kind,
		"target_type": target.Type,
		"target_id":   target.ID,
		"user_id":     actor.ID,
	})

	return s.load(ctx, target)
}

// load 计数以表中实际行数为准
func (s *ReactionService) load(ctx context.Context, target Target) (*Reactions, error) {
	likes, err := s.ReactionDAO.FindByTarget(ctx, models.KindLike, target.Type, target.ID)
	if err != nil {
		return nil, err
	}
	dislikes, err := s.ReactionDAO.FindByTarget(ctx, models.KindDislike, target.Type, target.ID)
	if err != nil {
		return nil, err
	}
	return &Reactions{Target: target, Likes: likes, Dislikes: dislikes}, nil
}

func (s *ReactionService) count(ctx context.Context, target Target, kind models.ReactionKind) (int64, error) {
	if err := s.ensureTarget(ctx, target); err != nil {
		return 0, err
	}
	return s.ReactionDAO.CountByTarget(ctx, kind, target.Type, target.ID)
}

func (s *ReactionService) ensureTarget(ctx context.Context, target Target) error {
	var err error
	switch target.Type {
	case models.TargetPost:
		_, err = s.PostDAO.FindById(ctx, target.ID)
	case models.TargetComment:
		_, err = s.CommentDAO.FindById(ctx, target.ID)
	default:
		return fmt.Errorf("unknown reaction target %q", target.Type)
	}
	if err != nil {
		return lookupErr(err, string(target.Type), target.ID)
	}
	return nil
}

func duplicateReaction(kind models.ReactionKind, target Target) error {
	return fmt.Errorf("%w: user can add only one %s to %s %d", ErrDuplicateReaction, kind, target.Type, target.ID)
}
