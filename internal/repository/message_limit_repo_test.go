package repository

import (
	"Amoria/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageLimitGetOrCreate(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageLimitRepo(db)
	ctx := context.Background()

	missing, err := repo.Get(ctx, 1, 2)
	require.NoError(t, err)
	assert.Nil(t, missing)

	limit, err := repo.GetOrCreate(ctx, 1, 2)
	require.NoError(t, err)
	require.NotNil(t, limit)
	assert.Equal(t, 0, limit.UnansweredCount)
	assert.False(t, limit.HourResetAt.IsZero())

	again, err := repo.GetOrCreate(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, limit.ID, again.ID)

	// 方向相反是另一条独立记录
	reverse, err := repo.GetOrCreate(ctx, 2, 1)
	require.NoError(t, err)
	assert.NotEqual(t, limit.ID, reverse.ID)
}

func TestMessageLimitResetUnanswered(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageLimitRepo(db)
	ctx := context.Background()

	limit, err := repo.GetOrCreate(ctx, 1, 2)
	require.NoError(t, err)

	err = db.Model(&model.MessageLimit{}).
		Where("id = ?", limit.ID).
		Update("unanswered_count", 7).Error
	require.NoError(t, err)

	require.NoError(t, repo.ResetUnanswered(ctx, 1, 2))

	got, err := repo.Get(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, got.UnansweredCount)
}

func TestMessageLimitDeleteIdle(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageLimitRepo(db)
	ctx := context.Background()

	stale, err := repo.GetOrCreate(ctx, 1, 2)
	require.NoError(t, err)
	_, err = repo.GetOrCreate(ctx, 3, 4)
	require.NoError(t, err)

	err = db.Model(&model.MessageLimit{}).
		Where("id = ?", stale.ID).
		Update("last_message_at", time.Now().AddDate(0, 0, -40)).Error
	require.NoError(t, err)

	deleted, err := repo.DeleteIdle(ctx, time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	gone, err := repo.Get(ctx, 1, 2)
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := repo.Get(ctx, 3, 4)
	require.NoError(t, err)
	assert.NotNil(t, kept)
}
