package service

import (
	"Amoria/internal/api/dto"
	"Amoria/internal/model"
	"Amoria/internal/pkg/kafka"
	"Amoria/internal/pkg/mongo"
	"Amoria/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"
)

type ReportService interface {
	CreateReport(ctx context.Context, reporterID uint64, req *dto.CreateReportDTO) (*dto.ReportDTO, error)
	ListReportsAgainst(ctx context.Context, reportedUserID uint64) ([]*dto.ReportDTO, error)
	ResolveReport(ctx context.Context, reportID uint64) error
}

type ReportServiceImpl struct {
	reportRepo repository.ReportRepo
	userRepo   repository.UserRepo
	producer   kafka.EventProducer
}

func NewReportService(reportRepo repository.ReportRepo, userRepo repository.UserRepo, producer kafka.EventProducer) ReportService {
	return &ReportServiceImpl{
		reportRepo: reportRepo,
		userRepo:   userRepo,
		producer:   producer,
	}
}

// CreateReport 举报用户，同一用户对仅允许一条
func (s *ReportServiceImpl) CreateReport(ctx context.Context, reporterID uint64, req *dto.CreateReportDTO) (*dto.ReportDTO, error) {
	if reporterID == req.ReportedUserID {
		return nil, ErrReportSelf
	}
	if !model.ValidReportReason(req.Reason) {
		return nil, ErrReportReasonInvalid
	}

	target, err := s.userRepo.GetUserById(ctx, req.ReportedUserID)
	if err != nil {
		return nil, err
	}
	if target == nil || target.IsDelete {
		return nil, ErrTargetUserInvalid
	}

	report := &model.Report{
		ReporterID:     reporterID,
		ReportedUserID: req.ReportedUserID,
		Reason:         req.Reason,
		Description:    req.Description,
	}
	if err = s.reportRepo.Create(ctx, report); err != nil {
		if errors.Is(err, repository.ErrReportExists) {
			return nil, ErrReportDuplicate
		}
		return nil, err
	}

	s.emitReportCreated(ctx, report)
	return toReportDTO(report), nil
}

func (s *ReportServiceImpl) ListReportsAgainst(ctx context.Context, reportedUserID uint64) ([]*dto.ReportDTO, error) {
	reports, err := s.reportRepo.ListByReported(ctx, reportedUserID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ReportDTO, 0, len(reports))
	for _, report := range reports {
		result = append(result, toReportDTO(report))
	}
	return result, nil
}

func (s *ReportServiceImpl) ResolveReport(ctx context.Context, reportID uint64) error {
	return s.reportRepo.Resolve(ctx, reportID)
}

func (s *ReportServiceImpl) emitReportCreated(ctx context.Context, report *model.Report) {
	if s.producer == nil {
		return
	}

	event := &mongo.ModerationEvent{
		EventType:  mongo.EventReportCreated,
		ActorID:    report.ReporterID,
		TargetID:   report.ReportedUserID,
		Reason:     report.Reason,
		Content:    report.Description,
		OccurredAt: time.Now(),
	}
	if err := s.producer.SendModerationEvent(ctx, event); err != nil {
		log.ErrorContext(ctx, "emit report created event failed", "err", err)
	}
}

func toReportDTO(report *model.Report) *dto.ReportDTO {
	return &dto.ReportDTO{
		ID:             report.ID,
		ReporterID:     report.ReporterID,
		ReportedUserID: report.ReportedUserID,
		Reason:         report.Reason,
		Description:    report.Description,
		IsResolved:     report.IsResolved,
		CreatedAt:      report.CreatedAt,
	}
}
