package dao

import (
	"Social/models"
	"context"

	"gorm.io/gorm"
)

type Reaction struct {
	Repo[models.Reaction]
}

func NewReaction(db *gorm.DB) *Reaction {
	return &Reaction{Repo: NewRepo[models.Reaction](db)}
}

func (d *Reaction) WithTx(tx *gorm.DB) *Reaction {
	return NewReaction(tx)
}

// FindByTarget 某个目标上指定类型的全部反应, 按写入顺序
func (d *Reaction) FindByTarget(ctx context.Context, kind models.ReactionKind, targetType models.TargetType, targetID int64) ([]*models.Reaction, error) {
	return d.FindAll(ctx, "kind = ? AND target_type = ? AND target_id = ?", kind, targetType, targetID)
}

// FindByTargets 批量获取多个目标的反应, 返回 target_id -> reactions
func (d *Reaction) FindByTargets(ctx context.Context, targetType models.TargetType, targetIDs []int64) (map[int64][]*models.Reaction, error) {
	result := make(map[int64][]*models.Reaction, len(targetIDs))
	if len(targetIDs) == 0 {
		return result, nil
	}
	var reactions []*models.Reaction
	err := d.Db.WithContext(ctx).
		Where("target_type = ? AND target_id IN ?", targetType, targetIDs).
		Order("id ASC").
		Find(&reactions).Error
	if err != nil {
		return nil, err
	}
	for _, r := range reactions {
		result[r.TargetID] = append(result[r.TargetID], r)
	}
	return result, nil
}

// CountByTarget 实时统计反应数
func (d *Reaction) CountByTarget(ctx context.Context, kind models.ReactionKind, targetType models.TargetType, targetID int64) (int64, error) {
	var count int64
	err := d.Db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("kind = ? AND target_type = ? AND target_id = ?", kind, targetType, targetID).
		Count(&count).Error
	return count, err
}

// DeleteByTargets 删除目标上的全部反应, 级联删除帖子/评论时使用
func (d *Reaction) DeleteByTargets(ctx context.Context, targetType models.TargetType, targetIDs ...int64) error {
	if len(targetIDs) == 0 {
		return nil
	}
	return d.Db.WithContext(ctx).
		Where("target_type = ? AND target_id IN ?", targetType, targetIDs).
		Delete(&models.Reaction{}).Error
}
