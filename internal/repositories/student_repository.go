package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/campus_management/internal/models"
)

// ErrStudentNoExists 表示学号已存在
var ErrStudentNoExists = errors.New("学号已存在")

// StudentRepository 定义了学生数据仓库的接口
type StudentRepository interface {
	Create(student *models.Student) (*models.Student, error)
	GetByID(id int64) (*models.Student, error)
	GetByStudentNo(studentNo string) (*models.Student, error)
	List(page, limit int, keyword, grade, status string) ([]models.Student, int64, error)
	Update(id int64, updates map[string]interface{}) (*models.Student, error)
	Delete(id int64) (int64, error)
}

// gormStudentRepository 是 StudentRepository 的 GORM 实现
type gormStudentRepository struct {
	db *gorm.DB
}

// NewGormStudentRepository 创建一个新的 gormStudentRepository 实例
func NewGormStudentRepository(db *gorm.DB) StudentRepository {
	return &gormStudentRepository{db: db}
}

// Create 在数据库中创建一个新的学生记录
func (r *gormStudentRepository) Create(student *models.Student) (*models.Student, error) {
	// 预先检查学号是否已存在（包含软删除记录，防止恢复时冲突）
	var existing models.Student
	if err := r.db.Unscoped().Where("student_no = ?", student.StudentNo).First(&existing).Error; err == nil {
		return nil, ErrStudentNoExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.Create(student).Error; err != nil {
		lower := strings.ToLower(err.Error())
		if strings.Contains(lower, "unique constraint") || strings.Contains(lower, "duplicate key") {
			return nil, ErrStudentNoExists
		}
		return nil, err
	}
	return student, nil
}

// GetByID 根据主键查询学生
func (r *gormStudentRepository) GetByID(id int64) (*models.Student, error) {
	var student models.Student
	if err := r.db.First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &student, nil
}

// GetByStudentNo 根据学号查询学生
func (r *gormStudentRepository) GetByStudentNo(studentNo string) (*models.Student, error) {
	var student models.Student
	if err := r.db.Where("student_no = ?", studentNo).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &student, nil
}

// List 分页查询学生，支持按关键词（匹配姓名/学号）、年级、学籍状态筛选
func (r *gormStudentRepository) List(page, limit int, keyword, grade, status string) ([]models.Student, int64, error) {
	query := r.db.Model(&models.Student{})

	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("name LIKE ? OR student_no LIKE ?", pattern, pattern)
	}
	if grade != "" {
		query = query.Where("grade = ?", grade)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var students []models.Student
	offset := (page - 1) * limit
	if err := query.Order("student_no ASC").Offset(offset).Limit(limit).Find(&students).Error; err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

// Update 按字段更新学生并返回最新记录
func (r *gormStudentRepository) Update(id int64, updates map[string]interface{}) (*models.Student, error) {
	result := r.db.Model(&models.Student{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 软删除一个学生，返回受影响行数。
// 删除不存在的记录不视为错误，由服务层决定如何呈现。
func (r *gormStudentRepository) Delete(id int64) (int64, error) {
	result := r.db.Delete(&models.Student{}, id)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
