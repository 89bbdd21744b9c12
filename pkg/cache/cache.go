package cache

import (
	"strings"
	"sync"
	"time"
)

// entry 是缓存中的一条记录及其过期时间点
type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Stats 是缓存的计数快照
type Stats struct {
	Entries   int     `json:"entries"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	HitRate   float64 `json:"hitRate"`
	WarmedAt  *time.Time `json:"warmedAt,omitempty"`  // 最近一次预热时间
	ClearedAt *time.Time `json:"clearedAt,omitempty"` // 最近一次清空时间
}

// Store 是一个进程内的 TTL 缓存。
// 注意: 数据仅存于内存，服务重启会丢失；仅由缓存管理接口显式写入，
// 业务读写路径不会隐式经过它。
type Store struct {
	mu        sync.RWMutex
	entries   map[string]entry
	ttl       time.Duration
	hits      int64
	misses    int64
	warmedAt  *time.Time
	clearedAt *time.Time
}

// NewStore 创建一个缓存实例，ttl 为条目的统一存活时间
func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

// Set 写入一个条目并重置其过期时间
func (s *Store) Set(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, expiresAt: time.Now().Add(s.ttl)}
}

// Get 读取一个条目，过期或不存在都计为未命中
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, found := s.entries[key]
	if !found {
		s.misses++
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, key)
		s.misses++
		return nil, false
	}
	s.hits++
	return e.value, true
}

// Keys 返回当前未过期的全部键
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	keys := make([]string, 0, len(s.entries))
	for k, e := range s.entries {
		if now.Before(e.expiresAt) {
			keys = append(keys, k)
		}
	}
	return keys
}

// Clear 删除全部条目，返回删除数量
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.entries)
	s.entries = make(map[string]entry)
	now := time.Now()
	s.clearedAt = &now
	return removed
}

// ClearPrefix 删除指定前缀的条目，返回删除数量
func (s *Store) ClearPrefix(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k := range s.entries {
		if strings.HasPrefix(k, prefix) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

// MarkWarmed 记录一次预热完成的时间点
func (s *Store) MarkWarmed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.warmedAt = &now
}

// Snapshot 返回当前的统计快照
func (s *Store) Snapshot() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := s.hits + s.misses
	rate := 0.0
	if total > 0 {
		rate = float64(s.hits) / float64(total)
	}
	return Stats{
		Entries:   len(s.entries),
		Hits:      s.hits,
		Misses:    s.misses,
		HitRate:   rate,
		WarmedAt:  s.warmedAt,
		ClearedAt: s.clearedAt,
	}
}
