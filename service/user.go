package service

import (
	"Social/config"
	"Social/dao"
	"Social/models"
	"Social/pkg/encrypt"
	"Social/pkg/jwt"
	"Social/pkg/log"
	"Social/pkg/mq"
	"Social/pkg/snowflake"
	"Social/types"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 45
	passwordMinLen = 6
	passwordMaxLen = 64
	// bcrypt 只接受 72 字节以内
	passwordMaxBytes = 72

	passwordSpecials = "!@#&()–[{}]:;',?/*~$^+=<>."
)

var _ IUserService = (*UserService)(nil)

type IUserService interface {
	// Register actor 为管理员时新用户也是管理员, 未登录传 nil
	Register(ctx context.Context, actor *models.User, req *types.RegisterRequest) (*types.UserDto, error)
	Login(ctx context.Context, username, password string) (*types.LoginResponse, error)
	// Authenticate HTTP Basic 认证
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	// ResolveToken Bearer token 认证
	ResolveToken(ctx context.Context, token string) (*models.User, error)
	ChangePassword(ctx context.Context, actor *models.User, userID int64, req *types.PasswordRequest) error
	UpdatePicture(ctx context.Context, actor *models.User, userID int64, url string) (*types.UserDto, error)
	SetEnabled(ctx context.Context, userID int64, enabled bool) (*types.UserView, error)
	DeleteUser(ctx context.Context, actor *models.User, userID int64) error
	GetUser(ctx context.Context, userID int64) (*types.UserView, error)
	ListUsers(ctx context.Context) ([]*types.UserView, error)
	SearchByUsername(ctx context.Context, keyword string) ([]*types.UserDto, error)
	GetPostAuthor(ctx context.Context, postID int64) (*types.UserView, error)
}

type UserService struct {
	DB        *gorm.DB
	UserDAO   *dao.Users
	PostDAO   *dao.PostDAO
	Comment   *dao.Comment
	JwtConfig *config.Jwt
	Publisher mq.Publisher
}

func (s *UserService) Register(ctx context.Context, actor *models.User, req *types.RegisterRequest) (*types.UserDto, error) {
	username := strings.TrimSpace(req.Username)
	if n := utf8.RuneCountInString(username); n < usernameMinLen || n > usernameMaxLen {
		return nil, ErrInvalidUsername
	}

	exist, err := s.UserDAO.IsUsernameExist(ctx, username)
	if err != nil {
		return nil, err
	}
	if exist {
		log.L.Warn("username already exists", zap.String("username", username))
		return nil, fmt.Errorf("%w: '%s', please choose another username", ErrDuplicateUsername, username)
	}

	if err := CheckPasswordSyntax(req.Password); err != nil {
		return nil, err
	}
	hash, err := encrypt.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := models.RoleUser
	if actor.IsAdmin() {
		role = models.RoleAdmin
	}
	log.L.Info("register user", zap.String("username", username), zap.String("role", string(role)))

	user := &models.User{
		ID:             snowflake.GenID(),
		Username:       username,
		Password:       hash,
		Role:           role,
		Enabled:        true,
		ProfilePicture: req.ProfilePicture,
		CreatedAt:      time.Now(),
	}
	if err := s.UserDAO.Create(ctx, user); err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: '%s'", ErrDuplicateUsername, username)
		}
		return nil, err
	}
	return ToUserDto(user), nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*types.LoginResponse, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken([]byte(s.JwtConfig.Secret), user.ID, user.Username, jwt.TokenTypeAccess, s.JwtConfig.ExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &types.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.JwtConfig.ExpiresIn.Seconds()),
		User:      ToUserDto(user),
	}, nil
}

func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.UserDAO.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user with username '%s'", ErrNotFound, username)
		}
		return nil, err
	}
	if !encrypt.VerifyPassword(user.Password, password) {
		return nil, ErrIncorrectPassword
	}
	if !user.Enabled {
		return nil, ErrUserDisabled
	}
	return user, nil
}

func (s *UserService) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := jwt.ParseToken([]byte(s.JwtConfig.Secret), jwt.TokenTypeAccess, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncorrectPassword, err)
	}
	user, err := s.UserDAO.FindById(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user of token no longer exists", ErrIncorrectPassword)
		}
		return nil, err
	}
	if !user.Enabled {
		return nil, ErrUserDisabled
	}
	return user, nil
}

// ChangePassword 依次校验: 旧密码, 新密码格式, 两次新密码一致
func (s *UserService) ChangePassword(ctx context.Context, actor *models.User, userID int64, req *types.PasswordRequest) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := AuthorizeOwner(actor, user, "change password of user", userID); err != nil {
		return err
	}
	if !encrypt.VerifyPassword(user.Password, req.OldPassword) {
		log.L.Warn("incorrect old password", zap.Int64("user_id", userID))
		return fmt.Errorf("%w: old password", ErrIncorrectPassword)
	}
	if err := CheckPasswordSyntax(req.NewPassword1); err != nil {
		return err
	}
	if req.NewPassword1 != req.NewPassword2 {
		return ErrPasswordMismatch
	}

	hash, err := encrypt.HashPassword(req.NewPassword1)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.UserDAO.Update(ctx, userID, map[string]any{
		"password":   hash,
		"updated_at": time.Now(),
	})
}

func (s *UserService) UpdatePicture(ctx context.Context, actor *models.User, userID int64, url string) (*types.UserDto, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeOwner(actor, user, "change profile picture of user", userID); err != nil {
		log.L.Warn("change profile picture forbidden", zap.String("username", actor.Username), zap.Int64("user_id", userID))
		return nil, err
	}

	now := time.Now()
	if err := s.UserDAO.Update(ctx, userID, map[string]any{
		"profile_picture": url,
		"updated_at":      now,
	}); err != nil {
		return nil, lookupErr(err, "user", userID)
	}
	user.ProfilePicture = url
	user.UpdatedAt = &now
	return ToUserDto(user), nil
}

func (s *UserService) SetEnabled(ctx context.Context, userID int64, enabled bool) (*types.UserView, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.UserDAO.Update(ctx, userID, map[string]any{
		"enabled":    enabled,
		"updated_at": now,
	}); err != nil {
		return nil, lookupErr(err, "user", userID)
	}
	user.Enabled = enabled
	user.UpdatedAt = &now
	log.L.Info("user enabled changed", zap.String("username", user.Username), zap.Bool("enabled", enabled))
	return ToUserView(user), nil
}

// DeleteUser 级联删除: 用户的评论(所属帖子评论数减一) -> 用户的帖子(连同帖子下评论) -> 用户
// 用户在他人内容上留下的赞/踩保留
func (s *UserService) DeleteUser(ctx context.Context, actor *models.User, userID int64) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := Authorize(actor, user, "delete user", userID); err != nil {
		return err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comments, err := s.Comment.WithTx(tx).FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		for _, c := range comments {
			if err := deleteCommentTx(ctx, tx, c); err != nil {
				return err
			}
		}

		posts, err := s.PostDAO.WithTx(tx).FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		for _, p := range posts {
			if err := deletePostTx(ctx, tx, p.ID); err != nil {
				return err
			}
		}

		affected, err := s.UserDAO.WithTx(tx).DeleteById(ctx, userID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return notFound("user", userID)
		}
		return nil
	})
	if err != nil {
		log.L.Error("delete user failed", zap.Int64("user_id", userID), zap.Error(err))
		return err
	}

	mq.Emit(ctx, s.Publisher, mq.EventUserDeleted, map[string]any{
		"user_id": userID,
		"by":      actor.Username,
	})
	return nil
}

func (s *UserService) GetUser(ctx context.Context, userID int64) (*types.UserView, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserView(user), nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*types.UserView, error) {
	users, err := s.UserDAO.FindAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]*types.UserView, 0, len(users))
	for _, u := range users {
		list = append(list, ToUserView(u))
	}
	return list, nil
}

// SearchByUsername 没有匹配时返回空列表
func (s *UserService) SearchByUsername(ctx context.Context, keyword string) ([]*types.UserDto, error) {
	users, err := s.UserDAO.SearchByUsername(ctx, keyword)
	if err != nil {
		return nil, err
	}
	list := make([]*types.UserDto, 0, len(users))
	for _, u := range users {
		list = append(list, ToUserDto(u))
	}
	return list, nil
}

func (s *UserService) GetPostAuthor(ctx context.Context, postID int64) (*types.UserView, error) {
	user, err := s.UserDAO.FindByPostID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: author of post %d", ErrNotFound, postID)
		}
		return nil, err
	}
	return ToUserView(user), nil
}

func (s *UserService) findUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.UserDAO.FindById(ctx, userID)
	if err != nil {
		return nil, lookupErr(err, "user", userID)
	}
	return user, nil
}

// CheckPasswordSyntax 6-64 位且不超过 72 字节, 至少包含 ASCII 数字、小写字母、大写字母和特殊字符各一个
func CheckPasswordSyntax(password string) error {
	n := utf8.RuneCountInString(password)
	if isBlank(password) || n < passwordMinLen || n > passwordMaxLen || len(password) > passwordMaxBytes {
		return ErrPasswordSyntax
	}
	var digit, lower, upper, special bool
	for _, r := range password {
		switch {
		case '0' <= r && r <= '9':
			digit = true
		case 'a' <= r && r <= 'z':
			lower = true
		case 'A' <= r && r <= 'Z':
			upper = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	if !digit || !lower || !upper || !special {
		return ErrPasswordSyntax
	}
	return nil
}
