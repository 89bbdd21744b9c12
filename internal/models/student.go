package models

import (
	"time"

	"gorm.io/gorm"
)

// 学籍状态常量
const (
	StudentStatusEnrolled  = "Enrolled"  // 在读
	StudentStatusSuspended = "Suspended" // 休学
	StudentStatusGraduated = "Graduated" // 毕业
)

// Student 对应于数据库中的 students 表
type Student struct {
	ID         int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	StudentNo  string         `json:"studentNo" gorm:"column:student_no;unique;not null;size:32"` // 学号
	Name       string         `json:"name" gorm:"column:name;not null;size:64"`
	Gender     *string        `json:"gender,omitempty" gorm:"column:gender;size:10"`
	Grade      string         `json:"grade" gorm:"column:grade;not null;size:32"`     // 年级，例如 "2024"
	ClassName  *string        `json:"className,omitempty" gorm:"column:class_name;size:64"` // 行政班级
	Phone      *string        `json:"phone,omitempty" gorm:"column:phone;size:20"`
	Email      *string        `json:"email,omitempty" gorm:"column:email;size:128"`
	Address    *string        `json:"address,omitempty" gorm:"column:address;size:255"`
	EnrolledAt *time.Time     `json:"enrolledAt,omitempty" gorm:"column:enrolled_at;type:date"` // 入学日期
	Status     string         `json:"status" gorm:"column:status;not null;default:'Enrolled';size:32"`
	CreatedAt  time.Time      `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt  time.Time      `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// TableName 指定 Student 结构体对应的数据库表名
func (Student) TableName() string {
	return "students"
}

// UpdateStudentPayload 定义了更新学生时允许修改的字段，nil 表示不更新
type UpdateStudentPayload struct {
	Name      *string `json:"name,omitempty" binding:"omitempty,max=64"`
	Gender    *string `json:"gender,omitempty" binding:"omitempty,oneof=M F"`
	Grade     *string `json:"grade,omitempty" binding:"omitempty,max=32"`
	ClassName *string `json:"className,omitempty" binding:"omitempty,max=64"`
	Phone     *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Address   *string `json:"address,omitempty" binding:"omitempty,max=255"`
	Status    *string `json:"status,omitempty" binding:"omitempty,oneof=Enrolled Suspended Graduated"`
}
