package cache

import (
	"context"
	"time"
)

// Store 缓存端口。业务层只依赖该接口做读写与失效，
// 不直接触碰全局 Redis 句柄，便于替换实现与测试
type Store interface {
	// Get 未命中时返回空串且 err == nil
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	// Incr 自增计数器并返回新值，用于搜索结果的版本号失效
	Incr(ctx context.Context, key string) (int64, error)
}
