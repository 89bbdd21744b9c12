package services

import (
	"errors"

	"github.com/campus_management/internal/models"
	"github.com/campus_management/internal/repositories"
	"github.com/campus_management/pkg/utils"
)

// ErrNoUpdatableFields 表示更新请求中没有任何可更新的字段，各资源服务共用
var ErrNoUpdatableFields = errors.New("没有提供任何有效的更新字段")

// ErrStudentNotFound 表示学生未找到
var ErrStudentNotFound = errors.New("学生未找到")

// ErrStudentNoTaken 表示学号已被占用
var ErrStudentNoTaken = errors.New("学号已存在")

// StudentFormOptions 是学生表单元数据：前端下拉框可选值
type StudentFormOptions struct {
	Genders  []string `json:"genders"`
	Grades   []string `json:"grades"`
	Statuses []string `json:"statuses"`
}

// StudentService 定义了学生服务的接口
type StudentService interface {
	CreateStudent(student *models.Student) (*models.Student, error)
	GetStudentByID(id int64) (*models.Student, error)
	GetStudents(page, limit int, keyword, grade, status string) ([]models.Student, int64, error)
	UpdateStudent(id int64, payload models.UpdateStudentPayload) (*models.Student, error)
	// DeleteStudent 是幂等的：删除不存在的学生返回 (false, nil)
	DeleteStudent(id int64) (bool, error)
	FormOptions() StudentFormOptions
}

// studentService 是 StudentService 的实现
type studentService struct {
	repo repositories.StudentRepository
}

// NewStudentService 创建一个新的 studentService 实例
func NewStudentService(repo repositories.StudentRepository) StudentService {
	return &studentService{repo: repo}
}

// CreateStudent 处理创建学生的业务逻辑
func (s *studentService) CreateStudent(student *models.Student) (*models.Student, error) {
	if student.Email != nil && !utils.ValidateEmailFormat(*student.Email) {
		return nil, utils.ErrInvalidEmailFormat
	}
	if student.Status == "" {
		student.Status = models.StudentStatusEnrolled
	}

	created, err := s.repo.Create(student)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNoExists) {
			return nil, ErrStudentNoTaken
		}
		return nil, err
	}
	return created, nil
}

// GetStudentByID 根据主键获取学生
func (s *studentService) GetStudentByID(id int64) (*models.Student, error) {
	student, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

// GetStudents 分页获取学生列表，关键词先做归一化再查询
func (s *studentService) GetStudents(page, limit int, keyword, grade, status string) ([]models.Student, int64, error) {
	return s.repo.List(page, limit, utils.NormalizeKeyword(keyword), grade, status)
}

// UpdateStudent 处理更新学生的业务逻辑
func (s *studentService) UpdateStudent(id int64, payload models.UpdateStudentPayload) (*models.Student, error) {
	updates := make(map[string]interface{})
	if payload.Name != nil {
		updates["name"] = utils.NormalizeKeyword(*payload.Name)
	}
	if payload.Gender != nil {
		updates["gender"] = *payload.Gender
	}
	if payload.Grade != nil {
		updates["grade"] = *payload.Grade
	}
	if payload.ClassName != nil {
		updates["class_name"] = *payload.ClassName
	}
	if payload.Phone != nil {
		updates["phone"] = *payload.Phone
	}
	if payload.Email != nil {
		if !utils.ValidateEmailFormat(*payload.Email) {
			return nil, utils.ErrInvalidEmailFormat
		}
		updates["email"] = *payload.Email
	}
	if payload.Address != nil {
		updates["address"] = *payload.Address
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
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return updated, nil
}

// DeleteStudent 删除学生。记录不存在时返回 (false, nil)，
// 由接口层以成功响应告知"已删除或不存在"。
func (s *studentService) DeleteStudent(id int64) (bool, error) {
	affected, err := s.repo.Delete(id)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// FormOptions 返回学生表单的可选值元数据
func (s *studentService) FormOptions() StudentFormOptions {
	return StudentFormOptions{
		Genders: []string{"M", "F"},
		Grades:  []string{"2022", "2023", "2024", "2025"},
		Statuses: []string{
			models.StudentStatusEnrolled,
			models.StudentStatusSuspended,
			models.StudentStatusGraduated,
		},
	}
}
