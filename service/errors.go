package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrEmptyBody         = errors.New("body can not be empty")
	ErrForbidden         = errors.New("forbidden")
	ErrDuplicateReaction = errors.New("duplicate reaction")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrPasswordMismatch  = errors.New("new passwords are not the same")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrPasswordSyntax    = errors.New("password must contain 6 to 64 characters with at least one digit, one lowercase letter, one uppercase letter and one special character")
	ErrInvalidUsername   = errors.New("username must contain 3 to 45 characters")
	ErrUserDisabled      = errors.New("user is disabled")
	ErrInvalidImage      = errors.New("invalid image")
)

// ForbiddenError 越权操作, 记录操作人和目标方便排查
type ForbiddenError struct {
	Username string
	TargetID int64
	Action   string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("user '%s' has no permission to %s %d", e.Username, e.Action, e.TargetID)
}

func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}

func notFound(entity string, id int64) error {
	return fmt.Errorf("%w: %s with id %d", ErrNotFound, entity, id)
}

// lookupErr 把 gorm 的记录不存在转换为 ErrNotFound
func lookupErr(err error, entity string, id int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity, id)
	}
	return fmt.Errorf("load %s %d: %w", entity, id, err)
}

// isDuplicateKey 唯一索引冲突, 兼容未开启 TranslateError 的驱动
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
