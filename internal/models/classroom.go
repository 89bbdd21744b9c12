package models

import (
	"time"

	"gorm.io/gorm"
)

// 教室状态常量
const (
	ClassroomStatusAvailable   = "Available"   // 可用
	ClassroomStatusMaintenance = "Maintenance" // 维修中
	ClassroomStatusDisabled    = "Disabled"    // 停用
)

// Classroom 对应于数据库中的 classrooms 表
type Classroom struct {
	ID        int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	RoomNo    string         `json:"roomNo" gorm:"column:room_no;unique;not null;size:32"` // 教室编号，例如 "A-301"
	Building  string         `json:"building" gorm:"column:building;not null;size:64"`     // 所在楼栋
	Floor     int            `json:"floor" gorm:"column:floor;not null"`
	Capacity  int            `json:"capacity" gorm:"column:capacity;not null"`                  // 容纳人数
	RoomType  string         `json:"roomType" gorm:"column:room_type;not null;size:32"`         // 教室类型，例如 普通/多媒体/实验室
	Status    string         `json:"status" gorm:"column:status;not null;default:'Available';size:32"`
	CreatedAt time.Time      `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// TableName 指定 Classroom 结构体对应的数据库表名
func (Classroom) TableName() string {
	return "classrooms"
}

// ClassroomBooking 对应于数据库中的 classroom_bookings 表，
// 记录某教室在某时间段的占用，用于按时间段查询可用教室。
type ClassroomBooking struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ClassroomID int64     `json:"classroomId" gorm:"column:classroom_id;not null;index"`
	Purpose     string    `json:"purpose" gorm:"column:purpose;not null;size:255"` // 用途，例如 课程/考试/会议
	BookedBy    string    `json:"bookedBy" gorm:"column:booked_by;not null;size:64"`
	StartTime   time.Time `json:"startTime" gorm:"column:start_time;not null;index"`
	EndTime     time.Time `json:"endTime" gorm:"column:end_time;not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName 指定 ClassroomBooking 结构体对应的数据库表名
func (ClassroomBooking) TableName() string {
	return "classroom_bookings"
}
