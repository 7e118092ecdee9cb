package dao

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// Repo 通用单表仓储, 业务 DAO 内嵌它再补充各自的查询
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

func (r Repo[T]) Create(ctx context.Context, item *T) error {
	return r.Db.WithContext(ctx).Create(item).Error
}

// FindById 记录不存在时返回 gorm.ErrRecordNotFound
func (r Repo[T]) FindById(ctx context.Context, id int64) (*T, error) {
	var item T
	if err := r.Db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r Repo[T]) FindByWhere(ctx context.Context, where string, args ...any) (*T, error) {
	var item T
	if err := r.Db.WithContext(ctx).Where(where, args...).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r Repo[T]) FindAll(ctx context.Context, where string, args ...any) ([]*T, error) {
	items := make([]*T, 0)
	err := r.Db.WithContext(ctx).Where(where, args...).Order("id ASC").Find(&items).Error
	return items, err
}

func (r Repo[T]) IsExist(ctx context.Context, where string, args ...any) (bool, error) {
	var count int64
	err := r.Db.WithContext(ctx).Model(new(T)).Where(where, args...).Count(&count).Error
	return count > 0, err
}

// UpdateById 返回受影响行数, 调用方据此判断记录是否存在
func (r Repo[T]) UpdateById(ctx context.Context, id int64, data map[string]any) (int64, error) {
	res := r.Db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(data)
	return res.RowsAffected, res.Error
}

func (r Repo[T]) DeleteById(ctx context.Context, id int64) (int64, error) {
	res := r.Db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	return res.RowsAffected, res.Error
}

// Page 按创建时间排序分页
func (r Repo[T]) Page(ctx context.Context, offset, limit int, desc bool) ([]*T, error) {
	order := "created_at ASC, id ASC"
	if desc {
		order = "created_at DESC, id DESC"
	}
	items := make([]*T, 0, limit)
	err := r.Db.WithContext(ctx).
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	return items, err
}

// likeEscape 与查询中的 ESCAPE '!' 对应, 反斜杠在 mysql 字面量里有歧义所以不用
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// containing 构造子串匹配参数, 关键字中的 % 和 _ 按字面匹配
func containing(keyword string) string {
	return "%" + likeReplacer.Replace(keyword) + "%"
}
