package models

import "time"

type ReactionKind string

const (
	KindLike    ReactionKind = "like"
	KindDislike ReactionKind = "dislike"
)

type TargetType string

const (
	TargetPost    TargetType = "post"
	TargetComment TargetType = "comment"
)

// Reaction 点赞/点踩记录
// 唯一键: user_id + kind + target_type + target_id, 同一用户对同一目标每种反应最多一条
type Reaction struct {
	ID         int64        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID     int64        `gorm:"column:user_id;not null;uniqueIndex:uk_reactions_user_target,priority:1" json:"user_id"`
	Kind       ReactionKind `gorm:"column:kind;type:varchar(16);not null;uniqueIndex:uk_reactions_user_target,priority:2;index:idx_reactions_target,priority:1" json:"kind"`
	TargetType TargetType   `gorm:"column:target_type;type:varchar(16);not null;uniqueIndex:uk_reactions_user_target,priority:3;index:idx_reactions_target,priority:2" json:"target_type"`
	TargetID   int64        `gorm:"column:target_id;not null;uniqueIndex:uk_reactions_user_target,priority:4;index:idx_reactions_target,priority:3" json:"target_id"`
	Username   string       `gorm:"column:username;type:varchar(45)" json:"username"`
	CreatedAt  time.Time    `gorm:"column:created_at" json:"created_at"`
}

func (Reaction) TableName() string {
	return "reactions"
}
