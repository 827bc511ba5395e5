package job

import (
	"Amoria/internal/pkg/logger"
	"Amoria/internal/pkg/mongo"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// ModerationDigestJob 每日汇总过去 24 小时的审核事件
// 输出结构化日志供运营侧的日志管道消费
type ModerationDigestJob struct {
	eventRepo mongo.ModerationEventRepo
}

func NewModerationDigestJob(eventRepo mongo.ModerationEventRepo) *ModerationDigestJob {
	return &ModerationDigestJob{eventRepo: eventRepo}
}

func (s *ModerationDigestJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	since := time.Now().Add(-24 * time.Hour)
	counts, err := s.eventRepo.CountSince(ctx, since)
	if err != nil {
		log.ErrorContext(ctx, "moderation digest error", "err", err)
		return
	}

	log.InfoContext(ctx, "moderation digest",
		"since", since.Format(time.RFC3339),
		"report_created", counts[mongo.EventReportCreated],
		"content_blocked", counts[mongo.EventContentBlocked],
	)
}
