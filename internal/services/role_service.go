package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/campus_management/internal/models"
	"github.com/campus_management/internal/repositories"
	"github.com/campus_management/pkg/utils"
)

// ErrRoleNotFound 表示角色未找到
var ErrRoleNotFound = errors.New("角色未找到")

// ErrRoleKeyTaken 表示角色键与现有角色冲突
var ErrRoleKeyTaken = errors.New("角色键已存在")

// ErrRoleNameTaken 表示角色名与现有角色冲突
var ErrRoleNameTaken = errors.New("角色名已存在")

// UpdateRolePayload 定义了更新角色时允许修改的字段
type UpdateRolePayload struct {
	RoleKey  *string `json:"roleKey,omitempty" binding:"omitempty,max=64"`
	RoleName *string `json:"roleName,omitempty" binding:"omitempty,max=64"`
	Remark   *string `json:"remark,omitempty" binding:"omitempty,max=255"`
}

// RoleService 定义了角色服务的接口
type RoleService interface {
	CreateRole(role *models.Role) (*models.Role, error)
	GetRoleByID(id int64) (*models.Role, error)
	GetRoles(page, limit int, keyword string, status *int) ([]models.Role, int64, error)
	UpdateRole(id int64, payload UpdateRolePayload) (*models.Role, error)
	DeleteRole(id int64) error
	ToggleRoleStatus(id int64) (*models.Role, error)
	SyncUserRoles(userID int64, roleKeys []string) ([]string, error)
}

// roleService 是 RoleService 的实现
type roleService struct {
	repo  repositories.RoleRepository
	users repositories.UserRepository
}

// NewRoleService 创建一个新的 roleService 实例
func NewRoleService(repo repositories.RoleRepository, users repositories.UserRepository) RoleService {
	return &roleService{repo: repo, users: users}
}

// CreateRole 处理创建角色的业务逻辑，角色键统一转为大写
func (s *roleService) CreateRole(role *models.Role) (*models.Role, error) {
	role.RoleKey = strings.ToUpper(strings.TrimSpace(role.RoleKey))
	role.RoleName = strings.TrimSpace(role.RoleName)

	// 唯一性校验
	if _, err := s.repo.GetByKey(role.RoleKey); err == nil {
		return nil, ErrRoleKeyTaken
	} else if !errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.repo.GetByName(role.RoleName); err == nil {
		return nil, ErrRoleNameTaken
	} else if !errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, err
	}

	created, err := s.repo.Create(role)
	if err != nil {
		if errors.Is(err, repositories.ErrRoleKeyExists) {
			return nil, ErrRoleKeyTaken
		}
		if errors.Is(err, repositories.ErrRoleNameExists) {
			return nil, ErrRoleNameTaken
		}
		return nil, err
	}
	return created, nil
}

// GetRoleByID 根据主键获取角色
func (s *roleService) GetRoleByID(id int64) (*models.Role, error) {
	role, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return role, nil
}

// GetRoles 分页获取角色列表，关键词先做归一化再查询
func (s *roleService) GetRoles(page, limit int, keyword string, status *int) ([]models.Role, int64, error) {
	return s.repo.List(page, limit, utils.NormalizeKeyword(keyword), status)
}

// UpdateRole 处理更新角色的业务逻辑
func (s *roleService) UpdateRole(id int64, payload UpdateRolePayload) (*models.Role, error) {
	existing, err := s.GetRoleByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if payload.RoleKey != nil {
		newKey := strings.ToUpper(strings.TrimSpace(*payload.RoleKey))
		if newKey != existing.RoleKey {
			if _, err := s.repo.GetByKey(newKey); err == nil {
				return nil, ErrRoleKeyTaken
			} else if !errors.Is(err, repositories.ErrRecordNotFound) {
				return nil, err
			}
			updates["role_key"] = newKey
		}
	}
	if payload.RoleName != nil {
		newName := strings.TrimSpace(*payload.RoleName)
		if newName != existing.RoleName {
			if _, err := s.repo.GetByName(newName); err == nil {
				return nil, ErrRoleNameTaken
			} else if !errors.Is(err, repositories.ErrRecordNotFound) {
				return nil, err
			}
			updates["role_name"] = newName
		}
	}
	if payload.Remark != nil {
		updates["remark"] = *payload.Remark
	}

	if len(updates) == 0 {
		return existing, nil
	}

	updated, err := s.repo.Update(id, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		if errors.Is(err, repositories.ErrRoleKeyExists) {
			return nil, ErrRoleKeyTaken
		}
		if errors.Is(err, repositories.ErrRoleNameExists) {
			return nil, ErrRoleNameTaken
		}
		return nil, err
	}
	return updated, nil
}

// DeleteRole 删除一个角色
func (s *roleService) DeleteRole(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return err
	}
	return nil
}

// ToggleRoleStatus 在启用/禁用之间切换角色状态，不删除记录
func (s *roleService) ToggleRoleStatus(id int64) (*models.Role, error) {
	role, err := s.GetRoleByID(id)
	if err != nil {
		return nil, err
	}

	newStatus := models.RoleStatusDisabled
	if role.Status != models.RoleStatusEnabled {
		newStatus = models.RoleStatusEnabled
	}

	updated, err := s.repo.Update(id, map[string]interface{}{"status": newStatus})
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return updated, nil
}

// SyncUserRoles 把用户的角色关联同步为给定的角色键集合。
// 角色键统一转大写并去重；与当前集合完全一致时不做任何写入。
// 返回同步后的角色键列表，按字典序排列。
func (s *roleService) SyncUserRoles(userID int64, roleKeys []string) ([]string, error) {
	if _, err := s.users.GetByID(userID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	desiredSet := make(map[string]struct{}, len(roleKeys))
	for _, key := range roleKeys {
		key = strings.ToUpper(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		desiredSet[key] = struct{}{}
	}
	desired := make([]string, 0, len(desiredSet))
	for key := range desiredSet {
		desired = append(desired, key)
	}
	sort.Strings(desired)

	current, err := s.users.GetRoleKeys(userID)
	if err != nil {
		return nil, err
	}
	sort.Strings(current)
	if utils.CompareStringSlices(current, desired) {
		return current, nil
	}

	currentSet := make(map[string]struct{}, len(current))
	for _, key := range current {
		currentSet[key] = struct{}{}
	}

	for _, key := range desired {
		if _, has := currentSet[key]; has {
			continue
		}
		role, err := s.repo.GetByKey(key)
		if err != nil {
			if errors.Is(err, repositories.ErrRecordNotFound) {
				return nil, ErrRoleNotFound
			}
			return nil, err
		}
		if err := s.users.AssignRole(userID, role.ID); err != nil {
			return nil, err
		}
	}
	for _, key := range current {
		if _, keep := desiredSet[key]; keep {
			continue
		}
		role, err := s.repo.GetByKey(key)
		if err != nil {
			if errors.Is(err, repositories.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		if err := s.users.RemoveRole(userID, role.ID); err != nil {
			return nil, err
		}
	}
	return desired, nil
}
