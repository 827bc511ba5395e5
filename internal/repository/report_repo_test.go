package repository

import (
	"Amoria/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestReportCreateAndDuplicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewReportRepo(db)
	ctx := context.Background()

	report := &model.Report{
		ReporterID:     1,
		ReportedUserID: 2,
		Reason:         model.ReportReasonSpam,
		Description:    "рассылает рекламу",
	}
	require.NoError(t, repo.Create(ctx, report))
	assert.NotZero(t, report.ID)

	exists, err := repo.Exists(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, exists)

	// 同一用户对的二次举报被唯一索引拒绝
	dup := &model.Report{ReporterID: 1, ReportedUserID: 2, Reason: model.ReportReasonOther}
	err = repo.Create(ctx, dup)
	assert.ErrorIs(t, err, ErrReportExists)

	// 反向举报是另一条记录
	reverse := &model.Report{ReporterID: 2, ReportedUserID: 1, Reason: model.ReportReasonHarassment}
	require.NoError(t, repo.Create(ctx, reverse))
}

func TestReportListAndCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewReportRepo(db)
	ctx := context.Background()

	for _, reporterID := range []uint64{1, 2, 3} {
		require.NoError(t, repo.Create(ctx, &model.Report{
			ReporterID:     reporterID,
			ReportedUserID: 9,
			Reason:         model.ReportReasonFakeProfile,
		}))
	}
	require.NoError(t, repo.Create(ctx, &model.Report{ReporterID: 1, ReportedUserID: 5, Reason: model.ReportReasonSpam}))

	reports, err := repo.ListByReported(ctx, 9)
	require.NoError(t, err)
	assert.Len(t, reports, 3)

	count, err := repo.CountByReported(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestReportResolve(t *testing.T) {
	db := newTestDB(t)
	repo := NewReportRepo(db)
	ctx := context.Background()

	report := &model.Report{ReporterID: 1, ReportedUserID: 2, Reason: model.ReportReasonSpam}
	require.NoError(t, repo.Create(ctx, report))

	require.NoError(t, repo.Resolve(ctx, report.ID))

	reports, err := repo.ListByReported(ctx, 2)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.True(t, reports[0].IsResolved)

	err = repo.Resolve(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
