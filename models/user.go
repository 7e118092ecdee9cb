package models

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User 用户表
type User struct {
	ID             int64      `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Username       string     `gorm:"column:username;type:varchar(45);not null;uniqueIndex:uk_users_username" json:"username"`
	Password       string     `gorm:"column:password;type:varchar(100);not null" json:"-"`
	Role           Role       `gorm:"column:role;type:varchar(16);not null" json:"role"`
	Enabled        bool       `gorm:"column:enabled;not null" json:"enabled"`
	ProfilePicture string     `gorm:"column:profile_picture;type:varchar(512)" json:"profile_picture"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	UpdatedAt      *time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
