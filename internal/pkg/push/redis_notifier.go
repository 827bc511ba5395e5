package push

import (
	"Amoria/internal/api/dto"
	"Amoria/internal/pkg/consts"
	"Amoria/internal/pkg/redis"
	"context"
	log "log/slog"
	"strconv"

	"github.com/goccy/go-json"
)

// RedisNotifier 通过 Redis 发布订阅做在线推送
// 每个在线用户的 WS 连接订阅自己的频道，推送失败不影响业务主流程
type RedisNotifier struct{}

func NewRedisNotifier() *RedisNotifier {
	return &RedisNotifier{}
}

func (s *RedisNotifier) Push(ctx context.Context, userID uint64, event *dto.WSPushDTO) {
	data, err := json.Marshal(event)
	if err != nil {
		log.ErrorContext(ctx, "marshal push event failed", "err", err)
		return
	}
	channel := consts.IMUserKey + strconv.FormatUint(userID, 10)
	if err = redis.Publish(ctx, channel, string(data)); err != nil {
		log.WarnContext(ctx, "push event publish failed", "uid", userID, "err", err)
	}
}
