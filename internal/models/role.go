package models

import (
	"time"

	"gorm.io/gorm"
)

// 角色状态常量
const (
	RoleStatusEnabled  = 1
	RoleStatusDisabled = 0
)

// 系统内置角色键
const (
	RoleKeyAdmin         = "ADMIN"
	RoleKeySystemAdmin   = "SYSTEM_ADMIN"
	RoleKeyAcademicAdmin = "ACADEMIC_ADMIN"
	RoleKeyFinance       = "FINANCE"
	RoleKeyTeacher       = "TEACHER"
	RoleKeyStudent       = "STUDENT"
)

// Role 对应于数据库中的 roles 表
type Role struct {
	ID        int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	RoleKey   string         `json:"roleKey" gorm:"column:role_key;unique;not null;size:64"`   // 角色机器名，例如 ADMIN
	RoleName  string         `json:"roleName" gorm:"column:role_name;unique;not null;size:64"` // 角色显示名
	Status    int            `json:"status" gorm:"column:status;not null;default:1"`           // 1=启用, 其他=禁用
	Remark    *string        `json:"remark,omitempty" gorm:"column:remark;size:255"`
	CreatedAt time.Time      `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`

	Users []User `json:"-" gorm:"many2many:user_roles;"`
}

// TableName 指定 Role 结构体对应的数据库表名
func (Role) TableName() string {
	return "roles"
}
