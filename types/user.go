package types

import "time"

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username       string `json:"username" form:"username" binding:"required"`
	Password       string `json:"password" form:"password" binding:"required"`
	ProfilePicture string `json:"profilePicture" form:"profilePicture"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string   `json:"token"`
	TokenType string   `json:"token_type"`
	ExpiresIn int64    `json:"expires_in"` // 秒
	User      *UserDto `json:"user"`
}

// PasswordRequest 修改密码, 需要旧密码和两次一致的新密码
type PasswordRequest struct {
	NewPassword1 string `json:"newPassword1" form:"newPassword1" binding:"required"`
	NewPassword2 string `json:"newPassword2" form:"newPassword2" binding:"required"`
	OldPassword  string `json:"oldPassword" form:"oldPassword" binding:"required"`
}

type PictureRequest struct {
	ProfilePictureUrl string `json:"profilePictureUrl" form:"profilePictureUrl" binding:"required"`
}

type EnableRequest struct {
	Enabled *bool `json:"enabled" form:"enabled" binding:"required"`
}

// UserDto 对外展示的用户信息
type UserDto struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	ProfilePicture string     `json:"profile_picture"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}

// UserView 管理员视角, 额外包含角色和启用状态
type UserView struct {
	UserDto
	Role    string `json:"role"`
	Enabled bool   `json:"enabled"`
}
