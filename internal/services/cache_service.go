package services

import (
	"fmt"
	"log"

	"github.com/campus_management/internal/models"
	"github.com/campus_management/internal/repositories"
	"github.com/campus_management/pkg/cache"
)

// 缓存键前缀
const (
	CacheKeyRoles      = "roles:all"
	CacheKeyClassrooms = "classrooms:all"
)

// CacheInfo 是缓存管理接口返回的概览信息
type CacheInfo struct {
	Backend string   `json:"backend"`
	Keys    []string `json:"keys"`
	Entries int      `json:"entries"`
}

// CacheHealth 是缓存健康检查的结果
type CacheHealth struct {
	Healthy bool   `json:"healthy"`
	Detail  string `json:"detail"`
}

// CacheService 定义了缓存管理服务的接口。
// 缓存只通过这里的显式预热/清空操作写入，业务读写路径不会隐式使用它；
// 预热过程中到达的读请求可能看到部分填充的缓存。
type CacheService interface {
	Info() CacheInfo
	Stats() cache.Stats
	Health() CacheHealth
	Clear(prefix string) int
	Warm() (int, error)
}

// cacheService 是 CacheService 的实现
type cacheService struct {
	store      *cache.Store
	roles      repositories.RoleRepository
	classrooms repositories.ClassroomRepository
}

// NewCacheService 创建一个新的 cacheService 实例
func NewCacheService(store *cache.Store, roles repositories.RoleRepository, classrooms repositories.ClassroomRepository) CacheService {
	return &cacheService{store: store, roles: roles, classrooms: classrooms}
}

// Info 返回缓存概览
func (s *cacheService) Info() CacheInfo {
	keys := s.store.Keys()
	return CacheInfo{
		Backend: "in-memory",
		Keys:    keys,
		Entries: len(keys),
	}
}

// Stats 返回命中率等统计
func (s *cacheService) Stats() cache.Stats {
	return s.store.Snapshot()
}

// Health 做一次写后读的自检
func (s *cacheService) Health() CacheHealth {
	const probeKey = "health:probe"
	s.store.Set(probeKey, "ok")
	if _, found := s.store.Get(probeKey); !found {
		return CacheHealth{Healthy: false, Detail: "写入后立即读取失败"}
	}
	s.store.ClearPrefix(probeKey)
	return CacheHealth{Healthy: true, Detail: "读写正常"}
}

// Clear 清空缓存。prefix 为空时清空全部，否则只清指定前缀。
func (s *cacheService) Clear(prefix string) int {
	if prefix == "" {
		return s.store.Clear()
	}
	return s.store.ClearPrefix(prefix)
}

// Warm 预热缓存：加载全部启用角色和全部教室。
// 每个键独立写入，预热不是原子的。
func (s *cacheService) Warm() (int, error) {
	warmed := 0

	enabled := models.RoleStatusEnabled
	roles, _, err := s.roles.List(1, 1000, "", &enabled)
	if err != nil {
		return warmed, fmt.Errorf("预热角色缓存失败: %w", err)
	}
	s.store.Set(CacheKeyRoles, roles)
	warmed++

	classrooms, _, err := s.classrooms.List(1, 1000, "", "", "")
	if err != nil {
		return warmed, fmt.Errorf("预热教室缓存失败: %w", err)
	}
	s.store.Set(CacheKeyClassrooms, classrooms)
	warmed++

	s.store.MarkWarmed()
	log.Printf("缓存预热完成: %d 个键 (%d 角色, %d 教室)", warmed, len(roles), len(classrooms))
	return warmed, nil
}
