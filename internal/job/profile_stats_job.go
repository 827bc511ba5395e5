package job

import (
	"Amoria/internal/pkg/logger"
	"Amoria/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// ProfileStatsJob 定时重算资料统计并回填缓存
type ProfileStatsJob struct {
	profileSvc service.ProfileService
}

func NewProfileStatsJob(profileSvc service.ProfileService) *ProfileStatsJob {
	return &ProfileStatsJob{profileSvc: profileSvc}
}

func (s *ProfileStatsJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	if err := s.profileSvc.RefreshStats(ctx); err != nil {
		log.ErrorContext(ctx, "refresh profile stats error", "err", err)
		return
	}
	log.InfoContext(ctx, "refresh profile stats success")
}
