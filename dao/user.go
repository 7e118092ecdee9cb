package dao

import (
	"Social/models"
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type Users struct {
	Repo[models.User]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Repo: NewRepo[models.User](db),
	}
}

// WithTx 在事务内复用同一套查询
func (u *Users) WithTx(tx *gorm.DB) *Users {
	return NewUsers(tx)
}

// FindByUsername 用户名查询
func (u *Users) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return u.Repo.FindByWhere(ctx, "username = ?", username)
}

// IsUsernameExist 判断用户名是否存在
func (u *Users) IsUsernameExist(ctx context.Context, username string) (bool, error) {
	return u.Repo.IsExist(ctx, "username = ?", username)
}

// SearchByUsername 用户名包含关键字(不区分大小写)
func (u *Users) SearchByUsername(ctx context.Context, keyword string) ([]*models.User, error) {
	return u.Repo.FindAll(ctx, "LOWER(username) LIKE ? ESCAPE '!'", containing(strings.ToLower(keyword)))
}

func (u *Users) FindAllUsers(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0)
	err := u.Db.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

// FindByPostID 查询帖子作者
func (u *Users) FindByPostID(ctx context.Context, postID int64) (*models.User, error) {
	var user models.User
	err := u.Db.WithContext(ctx).
		Joins("JOIN posts ON posts.user_id = users.id").
		Where("posts.id = ?", postID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDs 批量查询用户, 返回 id -> user
func (u *Users) FindByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error) {
	result := make(map[int64]*models.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var users []*models.User
	if err := u.Db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, user := range users {
		result[user.ID] = user
	}
	return result, nil
}

func (u *Users) Update(ctx context.Context, userID int64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	affected, err := u.UpdateById(ctx, userID, updates)
	if err != nil {
		return fmt.Errorf("dao.Users.Update error: %w", err)
	}
	if affected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
