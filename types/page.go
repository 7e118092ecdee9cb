package types

import (
	"errors"
	"fmt"
	"strings"
)

const (
	SortAsc  = "ASC"
	SortDesc = "DESC"

	DefaultPageSize = 10
	MaxPageSize     = 100
)

var ErrInvalidSort = errors.New("sort must be ASC or DESC")

// PageQuery 列表分页参数, 按创建时间排序
type PageQuery struct {
	Page int    `form:"page"`
	Size int    `form:"size"`
	Sort string `form:"sort"`
}

// Normalize 补齐默认值, 非法排序方向返回 ErrInvalidSort
func (q *PageQuery) Normalize() error {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size <= 0 {
		q.Size = DefaultPageSize
	}
	if q.Size > MaxPageSize {
		q.Size = MaxPageSize
	}
	switch strings.ToUpper(strings.TrimSpace(q.Sort)) {
	case "":
		q.Sort = SortDesc
	case SortAsc:
		q.Sort = SortAsc
	case SortDesc:
		q.Sort = SortDesc
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSort, q.Sort)
	}
	return nil
}

func (q PageQuery) Offset() int {
	return q.Page * q.Size
}

func (q PageQuery) Desc() bool {
	return q.Sort != SortAsc
}

// Key 命名缓存中的键
func (q PageQuery) Key() string {
	return fmt.Sprintf("%d:%d:%s", q.Page, q.Size, q.Sort)
}
