package cache

import (
	"context"
	"strconv"
	"sync"
	"time"
)

type memoryEntry struct {
	value    string
	expireAt time.Time
}

type memoryStore struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
}

// NewMemoryStore 进程内缓存实现，供单测与单机部署使用
func NewMemoryStore() Store {
	return &memoryStore{data: make(map[string]memoryEntry)}
}

func (s *memoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.data[key]
	if !ok {
		return "", nil
	}
	if !entry.expireAt.IsZero() && time.Now().After(entry.expireAt) {
		return "", nil
	}
	return entry.value, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value string, expiration time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := memoryEntry{value: value}
	if expiration > 0 {
		entry.expireAt = time.Now().Add(expiration)
	}
	s.data[key] = entry
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *memoryStore) Incr(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, _ := strconv.ParseInt(s.data[key].value, 10, 64)
	cur++
	s.data[key] = memoryEntry{value: strconv.FormatInt(cur, 10)}
	return cur, nil
}
