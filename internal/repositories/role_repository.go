package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/campus_management/internal/models"
)

// ErrRoleKeyExists 表示角色键已存在
var ErrRoleKeyExists = errors.New("角色键已存在")

// ErrRoleNameExists 表示角色名已存在
var ErrRoleNameExists = errors.New("角色名已存在")

// RoleRepository 定义了角色数据仓库的接口
type RoleRepository interface {
	Create(role *models.Role) (*models.Role, error)
	GetByID(id int64) (*models.Role, error)
	GetByKey(roleKey string) (*models.Role, error)
	GetByName(roleName string) (*models.Role, error)
	List(page, limit int, keyword string, status *int) ([]models.Role, int64, error)
	Update(id int64, updates map[string]interface{}) (*models.Role, error)
	Delete(id int64) error
}

// gormRoleRepository 是 RoleRepository 的 GORM 实现
type gormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository 创建一个新的 gormRoleRepository 实例
func NewGormRoleRepository(db *gorm.DB) RoleRepository {
	return &gormRoleRepository{db: db}
}

// Create 在数据库中创建一个新的角色记录
func (r *gormRoleRepository) Create(role *models.Role) (*models.Role, error) {
	if err := r.db.Create(role).Error; err != nil {
		// GORM 通常会将数据库的唯一约束违例错误包装起来
		// 对于 SQLite，错误信息可能包含 "UNIQUE constraint failed"
		lower := strings.ToLower(err.Error())
		if strings.Contains(lower, "unique constraint") || strings.Contains(lower, "duplicate key") {
			if strings.Contains(err.Error(), "roles.role_key") {
				return nil, ErrRoleKeyExists
			}
			if strings.Contains(err.Error(), "roles.role_name") {
				return nil, ErrRoleNameExists
			}
		}
		return nil, err
	}
	return role, nil
}

// GetByID 根据主键查询角色
func (r *gormRoleRepository) GetByID(id int64) (*models.Role, error) {
	var role models.Role
	if err := r.db.First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &role, nil
}

// GetByKey 根据角色键查询角色
func (r *gormRoleRepository) GetByKey(roleKey string) (*models.Role, error) {
	var role models.Role
	if err := r.db.Where("role_key = ?", roleKey).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &role, nil
}

// GetByName 根据角色显示名查询角色
func (r *gormRoleRepository) GetByName(roleName string) (*models.Role, error) {
	var role models.Role
	if err := r.db.Where("role_name = ?", roleName).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &role, nil
}

// List 分页查询角色，支持按关键词（匹配角色键/角色名）和状态筛选
func (r *gormRoleRepository) List(page, limit int, keyword string, status *int) ([]models.Role, int64, error) {
	query := r.db.Model(&models.Role{})

	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("role_key LIKE ? OR role_name LIKE ?", pattern, pattern)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var roles []models.Role
	offset := (page - 1) * limit
	if err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&roles).Error; err != nil {
		return nil, 0, err
	}
	return roles, total, nil
}

// Update 按字段更新角色并返回最新记录
func (r *gormRoleRepository) Update(id int64, updates map[string]interface{}) (*models.Role, error) {
	result := r.db.Model(&models.Role{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		lower := strings.ToLower(result.Error.Error())
		if strings.Contains(lower, "unique constraint") || strings.Contains(lower, "duplicate key") {
			if strings.Contains(result.Error.Error(), "roles.role_key") {
				return nil, ErrRoleKeyExists
			}
			if strings.Contains(result.Error.Error(), "roles.role_name") {
				return nil, ErrRoleNameExists
			}
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 软删除一个角色
func (r *gormRoleRepository) Delete(id int64) error {
	result := r.db.Delete(&models.Role{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
