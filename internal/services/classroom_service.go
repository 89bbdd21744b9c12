package services

import (
	"errors"
	"time"

	"github.com/campus_management/internal/models"
	"github.com/campus_management/internal/repositories"
)

// ErrClassroomNotFound 表示教室未找到
var ErrClassroomNotFound = errors.New("教室未找到")

// ErrRoomNoTaken 表示教室编号已被占用
var ErrRoomNoTaken = errors.New("教室编号已存在")

// ErrTimeSlotConflict 表示目标时间段与已有占用冲突
var ErrTimeSlotConflict = errors.New("该时间段与已有占用冲突")

// ErrInvalidTimeSlot 表示时间段不合法（结束不晚于开始）
var ErrInvalidTimeSlot = errors.New("无效的时间段，结束时间必须晚于开始时间")

// ErrClassroomUnavailable 表示教室当前状态不可预订
var ErrClassroomUnavailable = errors.New("教室当前状态不可预订")

// UpdateClassroomPayload 定义了更新教室时允许修改的字段
type UpdateClassroomPayload struct {
	Building *string `json:"building,omitempty" binding:"omitempty,max=64"`
	Floor    *int    `json:"floor,omitempty"`
	Capacity *int    `json:"capacity,omitempty" binding:"omitempty,min=1"`
	RoomType *string `json:"roomType,omitempty" binding:"omitempty,max=32"`
	Status   *string `json:"status,omitempty" binding:"omitempty,oneof=Available Maintenance Disabled"`
}

// BookingRequest 是预订教室的业务参数
type BookingRequest struct {
	Purpose   string
	BookedBy  string
	StartTime time.Time
	EndTime   time.Time
}

// ClassroomService 定义了教室服务的接口
type ClassroomService interface {
	CreateClassroom(classroom *models.Classroom) (*models.Classroom, error)
	GetClassroomByID(id int64) (*models.Classroom, error)
	GetClassrooms(page, limit int, building, roomType, status string) ([]models.Classroom, int64, error)
	UpdateClassroom(id int64, payload UpdateClassroomPayload) (*models.Classroom, error)
	DeleteClassroom(id int64) error
	FindAvailable(start, end time.Time, minCapacity int) ([]models.Classroom, error)
	BookClassroom(classroomID int64, req BookingRequest) (*models.ClassroomBooking, error)
	GetBookings(classroomID int64) ([]models.ClassroomBooking, error)
}

// classroomService 是 ClassroomService 的实现
type classroomService struct {
	repo repositories.ClassroomRepository
}

// NewClassroomService 创建一个新的 classroomService 实例
func NewClassroomService(repo repositories.ClassroomRepository) ClassroomService {
	return &classroomService{repo: repo}
}

// CreateClassroom 处理创建教室的业务逻辑
func (s *classroomService) CreateClassroom(classroom *models.Classroom) (*models.Classroom, error) {
	if classroom.Status == "" {
		classroom.Status = models.ClassroomStatusAvailable
	}
	created, err := s.repo.Create(classroom)
	if err != nil {
		if errors.Is(err, repositories.ErrRoomNoExists) {
			return nil, ErrRoomNoTaken
		}
		return nil, err
	}
	return created, nil
}

// GetClassroomByID 根据主键获取教室
func (s *classroomService) GetClassroomByID(id int64) (*models.Classroom, error) {
	classroom, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrClassroomNotFound
		}
		return nil, err
	}
	return classroom, nil
}

// GetClassrooms 分页获取教室列表
func (s *classroomService) GetClassrooms(page, limit int, building, roomType, status string) ([]models.Classroom, int64, error) {
	return s.repo.List(page, limit, building, roomType, status)
}

// UpdateClassroom 处理更新教室的业务逻辑
func (s *classroomService) UpdateClassroom(id int64, payload UpdateClassroomPayload) (*models.Classroom, error) {
	updates := make(map[string]interface{})
	if payload.Building != nil {
		updates["building"] = *payload.Building
	}
	if payload.Floor != nil {
		updates["floor"] = *payload.Floor
	}
	if payload.Capacity != nil {
		updates["capacity"] = *payload.Capacity
	}
	if payload.RoomType != nil {
		updates["room_type"] = *payload.RoomType
	}
	if payload.Status != nil {
		updates["status"] = *payload.Status
	}

	if len(updates) == 0 {
		return nil, ErrNoUpdatableFields
	}

	updated, err := s.repo.Update(id, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrClassroomNotFound
		}
		if errors.Is(err, repositories.ErrRoomNoExists) {
			return nil, ErrRoomNoTaken
		}
		return nil, err
	}
	return updated, nil
}

// DeleteClassroom 删除一个教室，不存在时返回 ErrClassroomNotFound
func (s *classroomService) DeleteClassroom(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrClassroomNotFound
		}
		return err
	}
	return nil
}

// FindAvailable 查询指定时间段内可用且容量满足要求的教室
func (s *classroomService) FindAvailable(start, end time.Time, minCapacity int) ([]models.Classroom, error) {
	if !end.After(start) {
		return nil, ErrInvalidTimeSlot
	}
	return s.repo.FindAvailable(start, end, minCapacity)
}

// BookClassroom 预订教室：教室必须可用，且时间段与已有占用不冲突。
// 并发下的最终一致性由持久层的事务约束保证，这里只做一次先检后写。
func (s *classroomService) BookClassroom(classroomID int64, req BookingRequest) (*models.ClassroomBooking, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidTimeSlot
	}

	classroom, err := s.GetClassroomByID(classroomID)
	if err != nil {
		return nil, err
	}
	if classroom.Status != models.ClassroomStatusAvailable {
		return nil, ErrClassroomUnavailable
	}

	overlaps, err := s.repo.CountOverlappingBookings(classroomID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if overlaps > 0 {
		return nil, ErrTimeSlotConflict
	}

	booking := &models.ClassroomBooking{
		ClassroomID: classroomID,
		Purpose:     req.Purpose,
		BookedBy:    req.BookedBy,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	return s.repo.CreateBooking(booking)
}

// GetBookings 获取某教室的全部占用记录，教室不存在时返回 ErrClassroomNotFound
func (s *classroomService) GetBookings(classroomID int64) ([]models.ClassroomBooking, error) {
	if _, err := s.GetClassroomByID(classroomID); err != nil {
		return nil, err
	}
	return s.repo.ListBookings(classroomID)
}
