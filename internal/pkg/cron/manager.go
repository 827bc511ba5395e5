package cron

import (
	"Amoria/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine               *cron.Cron
	profileStatsJob      *job.ProfileStatsJob
	messageLimitCleanJob *job.MessageLimitCleanJob
	moderationDigestJob  *job.ModerationDigestJob
}

func NewCronManager(
	profileStatsJob *job.ProfileStatsJob,
	messageLimitCleanJob *job.MessageLimitCleanJob,
	moderationDigestJob *job.ModerationDigestJob,
) *Manager {
	return &Manager{
		engine:               cron.New(cron.WithSeconds()),
		profileStatsJob:      profileStatsJob,
		messageLimitCleanJob: messageLimitCleanJob,
		moderationDigestJob:  moderationDigestJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("@hourly", s.profileStatsJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@daily", s.messageLimitCleanJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@daily", s.moderationDigestJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
