package testutil

import (
	"context"
	"sort"
	"sync"
)

// MockRedisClient keeps sets in memory. A non-nil Err is returned by every
// call.
type MockRedisClient struct {
	Err error

	mu   sync.Mutex
	sets map[string]map[string]struct{}
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{sets: map[string]map[string]struct{}{}}
}

func (m *MockRedisClient) SAdd(_ context.Context, key string, members ...string) error {
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.sets[key]
	if !ok {
		set = map[string]struct{}{}
		m.sets[key] = set
	}
	for _, member := range members {
		set[member] = struct{}{}
	}
	return nil
}

func (m *MockRedisClient) SMembers(_ context.Context, key string) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.members(key), nil
}

func (m *MockRedisClient) SRem(_ context.Context, key string, members ...string) error {
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, member := range members {
		delete(m.sets[key], member)
	}
	if len(m.sets[key]) == 0 {
		delete(m.sets, key)
	}
	return nil
}

func (m *MockRedisClient) SDrain(_ context.Context, key string) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	members := m.members(key)
	delete(m.sets, key)
	return members, nil
}

func (m *MockRedisClient) members(key string) []string {
	result := []string{}
	for member := range m.sets[key] {
		result = append(result, member)
	}
	sort.Strings(result)
	return result
}

func (m *MockRedisClient) Close() error {
	return nil
}
