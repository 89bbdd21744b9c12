package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/campus_management/internal/models"
)

// ErrRecordNotFound 表示记录未找到，各仓库共用
var ErrRecordNotFound = errors.New("记录未找到")

// UserRepository 定义了用户数据仓库的接口
type UserRepository interface {
	Create(user *models.User) (*models.User, error)
	GetByID(id int64) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdatePasswordHash(userID int64, passwordHash string) error
	UpdateLastLoginAt(userID int64, loginAt time.Time) error
	UpdateStatus(userID int64, status int) error
	GetRoleKeys(userID int64) ([]string, error)
	AssignRole(userID, roleID int64) error
	RemoveRole(userID, roleID int64) error
}

// gormUserRepository 是 UserRepository 的 GORM 实现
type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository 创建一个新的 gormUserRepository 实例
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// Create 在数据库中创建一个新的用户记录
func (r *gormUserRepository) Create(user *models.User) (*models.User, error) {
	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID 根据主键查询用户
func (r *gormUserRepository) GetByID(id int64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername 根据用户名查询用户
func (r *gormUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail 根据邮箱查询用户
func (r *gormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdatePasswordHash 更新用户的密码哈希
func (r *gormUserRepository) UpdatePasswordHash(userID int64, passwordHash string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("password_hash", passwordHash).Error
}

// UpdateLastLoginAt 更新最近登录时间
func (r *gormUserRepository) UpdateLastLoginAt(userID int64, loginAt time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("last_login_at", loginAt).Error
}

// UpdateStatus 更新账号状态（启用/禁用）
func (r *gormUserRepository) UpdateStatus(userID int64, status int) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("status", status).Error
}

// GetRoleKeys 查询用户关联的全部启用角色的角色键
func (r *gormUserRepository) GetRoleKeys(userID int64) ([]string, error) {
	var keys []string
	err := r.db.Model(&models.Role{}).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ? AND roles.status = ?", userID, models.RoleStatusEnabled).
		Order("roles.role_key").
		Pluck("roles.role_key", &keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// AssignRole 为用户追加一个角色关联
func (r *gormUserRepository) AssignRole(userID, roleID int64) error {
	user := models.User{ID: userID}
	role := models.Role{ID: roleID}
	return r.db.Model(&user).Association("Roles").Append(&role)
}

// RemoveRole 解除用户的一个角色关联，只删除关联行，不触碰角色本身
func (r *gormUserRepository) RemoveRole(userID, roleID int64) error {
	user := models.User{ID: userID}
	role := models.Role{ID: roleID}
	return r.db.Model(&user).Association("Roles").Delete(&role)
}
