package job

import (
	"Amoria/internal/pkg/logger"
	"Amoria/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// limitIdleDays 限流记录超过该天数无活动即清理
const limitIdleDays = 30

// MessageLimitCleanJob 定时清理长期无活动的限流记录
type MessageLimitCleanJob struct {
	limitRepo repository.MessageLimitRepo
}

func NewMessageLimitCleanJob(limitRepo repository.MessageLimitRepo) *MessageLimitCleanJob {
	return &MessageLimitCleanJob{limitRepo: limitRepo}
}

func (s *MessageLimitCleanJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	idleSince := time.Now().AddDate(0, 0, -limitIdleDays)
	deleted, err := s.limitRepo.DeleteIdle(ctx, idleSince)
	if err != nil {
		log.ErrorContext(ctx, "clean message limits error", "err", err)
		return
	}
	log.InfoContext(ctx, "clean message limits success", "deleted", deleted)
}
