package cache

import (
	"Amoria/internal/pkg/redis"
	"context"
	"time"
)

type redisStore struct{}

// NewRedisStore 基于全局 Redis 连接的缓存实现
func NewRedisStore() Store {
	return &redisStore{}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	return redis.GetValue(ctx, key)
}

func (s *redisStore) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return redis.SetWithExpiration(ctx, key, value, expiration)
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return redis.DeleteKey(ctx, key)
}

func (s *redisStore) Incr(ctx context.Context, key string) (int64, error) {
	return redis.Incr(ctx, key)
}
