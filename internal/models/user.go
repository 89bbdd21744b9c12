package models

import (
	"time"

	"gorm.io/gorm"
)

// 用户状态常量
const (
	UserStatusEnabled  = 1 // 启用
	UserStatusDisabled = 0 // 禁用
)

// User 对应于数据库中的 users 表
type User struct {
	ID           int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string         `json:"username" gorm:"column:username;unique;not null;size:64"`
	PasswordHash string         `json:"-" gorm:"column:password_hash;not null;size:255"` // 密码哈希不通过JSON暴露
	Email        string         `json:"email" gorm:"column:email;unique;not null;size:128"`
	Phone        *string        `json:"phone,omitempty" gorm:"column:phone;size:20"`
	RealName     string         `json:"realName" gorm:"column:real_name;size:64"`
	Gender       *string        `json:"gender,omitempty" gorm:"column:gender;size:10"` // 'M' / 'F'
	Avatar       *string        `json:"avatar,omitempty" gorm:"column:avatar;size:255"`
	Status       int            `json:"status" gorm:"column:status;not null;default:1"` // 1=启用, 其他=禁用
	LastLoginAt  *time.Time     `json:"lastLoginAt,omitempty" gorm:"column:last_login_at"`
	CreatedAt    time.Time      `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt    time.Time      `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`

	Roles []Role `json:"roles,omitempty" gorm:"many2many:user_roles;"`
}

// TableName 指定 User 结构体对应的数据库表名
func (User) TableName() string {
	return "users"
}

// IsEnabled 判断账号是否处于启用状态
func (u *User) IsEnabled() bool {
	return u.Status == UserStatusEnabled
}

// UserInfo 是对外暴露的用户信息投影，永远不包含密码哈希
type UserInfo struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Phone       *string    `json:"phone,omitempty"`
	RealName    string     `json:"realName"`
	Gender      *string    `json:"gender,omitempty"`
	Avatar      *string    `json:"avatar,omitempty"`
	Status      int        `json:"status"`
	Roles       []string   `json:"roles"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ToUserInfo 将 User 转换为安全的对外投影
func (u *User) ToUserInfo(roleKeys []string) UserInfo {
	if roleKeys == nil {
		roleKeys = []string{}
	}
	return UserInfo{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Phone:       u.Phone,
		RealName:    u.RealName,
		Gender:      u.Gender,
		Avatar:      u.Avatar,
		Status:      u.Status,
		Roles:       roleKeys,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
