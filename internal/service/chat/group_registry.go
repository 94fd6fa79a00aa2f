package chat

import (
	"context"
	"sync"
)

// GroupRegistry 记录每个频道组中有哪些 websocket 连接
// 开发环境使用进程内实现，生产环境使用 Redis 实现以便多实例共享
type GroupRegistry interface {
	Remember(ctx context.Context, group, channel string) error
	Forget(ctx context.Context, group, channel string) error
	Exists(ctx context.Context, group string) (bool, error)
}

// memoryGroupRegistry 进程内的频道组记录
type memoryGroupRegistry struct {
	mutex  sync.RWMutex
	groups map[string]map[string]struct{}
}

// NewMemoryGroupRegistry 创建进程内的频道组记录
func NewMemoryGroupRegistry() GroupRegistry {
	return &memoryGroupRegistry{groups: make(map[string]map[string]struct{})}
}

func (m *memoryGroupRegistry) Remember(_ context.Context, group, channel string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	members, ok := m.groups[group]
	if !ok {
		members = make(map[string]struct{})
		m.groups[group] = members
	}
	members[channel] = struct{}{}
	return nil
}

func (m *memoryGroupRegistry) Forget(_ context.Context, group, channel string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if members, ok := m.groups[group]; ok {
		delete(members, channel)
		if len(members) == 0 {
			delete(m.groups, group)
		}
	}
	return nil
}

func (m *memoryGroupRegistry) Exists(_ context.Context, group string) (bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	_, ok := m.groups[group]
	return ok, nil
}
