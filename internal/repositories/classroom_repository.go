package repositories

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/campus_management/internal/models"
)

// ErrRoomNoExists 表示教室编号已存在
var ErrRoomNoExists = errors.New("教室编号已存在")

// ClassroomRepository 定义了教室数据仓库的接口
type ClassroomRepository interface {
	Create(classroom *models.Classroom) (*models.Classroom, error)
	GetByID(id int64) (*models.Classroom, error)
	List(page, limit int, building, roomType, status string) ([]models.Classroom, int64, error)
	Update(id int64, updates map[string]interface{}) (*models.Classroom, error)
	Delete(id int64) error
	FindAvailable(start, end time.Time, minCapacity int) ([]models.Classroom, error)
	CountOverlappingBookings(classroomID int64, start, end time.Time) (int64, error)
	CreateBooking(booking *models.ClassroomBooking) (*models.ClassroomBooking, error)
	ListBookings(classroomID int64) ([]models.ClassroomBooking, error)
}

// gormClassroomRepository 是 ClassroomRepository 的 GORM 实现
type gormClassroomRepository struct {
	db *gorm.DB
}

// NewGormClassroomRepository 创建一个新的 gormClassroomRepository 实例
func NewGormClassroomRepository(db *gorm.DB) ClassroomRepository {
	return &gormClassroomRepository{db: db}
}

// Create 在数据库中创建一个新的教室记录
func (r *gormClassroomRepository) Create(classroom *models.Classroom) (*models.Classroom, error) {
	if err := r.db.Create(classroom).Error; err != nil {
		lower := strings.ToLower(err.Error())
		if strings.Contains(lower, "unique constraint") || strings.Contains(lower, "duplicate key") {
			return nil, ErrRoomNoExists
		}
		return nil, err
	}
	return classroom, nil
}

// GetByID 根据主键查询教室
func (r *gormClassroomRepository) GetByID(id int64) (*models.Classroom, error) {
	var classroom models.Classroom
	if err := r.db.First(&classroom, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &classroom, nil
}

// List 分页查询教室，支持按楼栋、教室类型、状态筛选
func (r *gormClassroomRepository) List(page, limit int, building, roomType, status string) ([]models.Classroom, int64, error) {
	query := r.db.Model(&models.Classroom{})

	if building != "" {
		query = query.Where("building = ?", building)
	}
	if roomType != "" {
		query = query.Where("room_type = ?", roomType)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var classrooms []models.Classroom
	offset := (page - 1) * limit
	if err := query.Order("room_no ASC").Offset(offset).Limit(limit).Find(&classrooms).Error; err != nil {
		return nil, 0, err
	}
	return classrooms, total, nil
}

// Update 按字段更新教室并返回最新记录
func (r *gormClassroomRepository) Update(id int64, updates map[string]interface{}) (*models.Classroom, error) {
	result := r.db.Model(&models.Classroom{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		lower := strings.ToLower(result.Error.Error())
		if strings.Contains(lower, "unique constraint") || strings.Contains(lower, "duplicate key") {
			return nil, ErrRoomNoExists
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 软删除一个教室
func (r *gormClassroomRepository) Delete(id int64) error {
	result := r.db.Delete(&models.Classroom{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// FindAvailable 查询在 [start, end) 时间段内没有任何占用、状态可用且容量不小于
// minCapacity 的教室。两个时间段相交的条件是 start < b.end_time AND end > b.start_time。
func (r *gormClassroomRepository) FindAvailable(start, end time.Time, minCapacity int) ([]models.Classroom, error) {
	subQuery := r.db.Model(&models.ClassroomBooking{}).
		Select("classroom_id").
		Where("start_time < ? AND end_time > ?", end, start)

	var classrooms []models.Classroom
	err := r.db.Model(&models.Classroom{}).
		Where("status = ?", models.ClassroomStatusAvailable).
		Where("capacity >= ?", minCapacity).
		Where("id NOT IN (?)", subQuery).
		Order("room_no ASC").
		Find(&classrooms).Error
	if err != nil {
		return nil, err
	}
	return classrooms, nil
}

// CountOverlappingBookings 统计某教室在给定时间段内已有的占用数量
func (r *gormClassroomRepository) CountOverlappingBookings(classroomID int64, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.ClassroomBooking{}).
		Where("classroom_id = ?", classroomID).
		Where("start_time < ? AND end_time > ?", end, start).
		Count(&count).Error
	return count, err
}

// CreateBooking 创建一条教室占用记录
func (r *gormClassroomRepository) CreateBooking(booking *models.ClassroomBooking) (*models.ClassroomBooking, error) {
	if err := r.db.Create(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

// ListBookings 查询某教室的全部占用记录，按开始时间排序
func (r *gormClassroomRepository) ListBookings(classroomID int64) ([]models.ClassroomBooking, error) {
	var bookings []models.ClassroomBooking
	err := r.db.Where("classroom_id = ?", classroomID).
		Order("start_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
