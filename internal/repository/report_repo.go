package repository

import (
	"Amoria/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ReportRepo interface {
	Create(ctx context.Context, report *model.Report) error
	Exists(ctx context.Context, reporterID, reportedUserID uint64) (bool, error)
	ListByReported(ctx context.Context, reportedUserID uint64) ([]*model.Report, error)
	CountByReported(ctx context.Context, reportedUserID uint64) (int64, error)
	Resolve(ctx context.Context, reportID uint64) error
}

type reportRepoImpl struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepo {
	return &reportRepoImpl{db: db}
}

// ErrReportExists 同一用户对的重复举报，由唯一索引兜底
var ErrReportExists = errors.New("report already exists")

func (s *reportRepoImpl) Create(ctx context.Context, report *model.Report) error {
	err := s.db.WithContext(ctx).Create(report).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrReportExists
	}
	return err
}

func (s *reportRepoImpl) Exists(ctx context.Context, reporterID, reportedUserID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Report{}).
		Where("reporter_id = ? AND reported_user_id = ?", reporterID, reportedUserID).
		Count(&count).Error
	return count > 0, err
}

func (s *reportRepoImpl) ListByReported(ctx context.Context, reportedUserID uint64) ([]*model.Report, error) {
	reports := make([]*model.Report, 0)
	err := s.db.WithContext(ctx).
		Where("reported_user_id = ?", reportedUserID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (s *reportRepoImpl) CountByReported(ctx context.Context, reportedUserID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Report{}).
		Where("reported_user_id = ?", reportedUserID).
		Count(&count).Error
	return count, err
}

func (s *reportRepoImpl) Resolve(ctx context.Context, reportID uint64) error {
	result := s.db.WithContext(ctx).Model(&model.Report{}).
		Where("id = ?", reportID).
		Update("is_resolved", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
