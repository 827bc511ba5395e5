package repository

import (
	"Amoria/internal/model"
	"Amoria/internal/pkg/util"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedProfiles(t *testing.T, db *gorm.DB) {
	t.Helper()
	now := time.Now()
	profiles := []*model.Profile{
		{UserID: 1, Nickname: "Анна", Age: 25, Height: 165, Weight: 55, Gender: "female", City: "Москва",
			MaritalStatus: "single", Education: "higher", Smoking: "no", Alcohol: "rarely",
			HasChildren: false, IsActive: true, LastOnline: now},
		{UserID: 2, Nickname: "Игорь", Age: 32, Height: 182, Weight: 80, Gender: "male", City: "Москва",
			MaritalStatus: "divorced", Education: "secondary", Smoking: "yes", Alcohol: "moderate",
			HasChildren: true, IsActive: true, LastOnline: now.Add(-2 * time.Hour)},
		{UserID: 3, Nickname: "Ольга", Age: 41, Height: 170, Weight: 62, Gender: "female", City: "Казань",
			MaritalStatus: "widowed", Education: "higher", Smoking: "no", Alcohol: "no",
			HasChildren: true, IsActive: true, LastOnline: now.AddDate(0, 0, -10)},
		{UserID: 4, Nickname: "Сергей", Age: 28, Height: 175, Weight: 72, Gender: "male", City: "Казань",
			MaritalStatus: "single", Education: "specialized", Smoking: "quit", Alcohol: "rarely",
			HasChildren: false, IsActive: false, LastOnline: now},
	}
	for _, p := range profiles {
		require.NoError(t, db.Create(p).Error)
	}
	// 只有 Анна 有照片
	require.NoError(t, db.Create(&model.Photo{ProfileID: profiles[0].ID, ObjectName: "photos/1/a.jpg", IsPrimary: true}).Error)

	// Create 必须原样落库 is_active=false，防止标签默认值吞掉布尔零值
	var inactive model.Profile
	require.NoError(t, db.Where("user_id = ?", 4).First(&inactive).Error)
	require.False(t, inactive.IsActive)
}

func TestProfileSearchFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepo(db)
	ctx := context.Background()
	seedProfiles(t, db)

	// 未激活资料永远不出现在检索结果中
	all, total, err := repo.Search(ctx, &ProfileSearchParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 3)

	byGender, total, err := repo.Search(ctx, &ProfileSearchParams{Gender: "female"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, p := range byGender {
		assert.Equal(t, "female", p.Gender)
	}

	_, total, err = repo.Search(ctx, &ProfileSearchParams{City: "Москва", Gender: "male"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = repo.Search(ctx, &ProfileSearchParams{AgeMin: 30, AgeMax: 45})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = repo.Search(ctx, &ProfileSearchParams{HeightMin: 180})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = repo.Search(ctx, &ProfileSearchParams{HasChildren: util.PtrBool(false)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	withPhoto, total, err := repo.Search(ctx, &ProfileSearchParams{WithPhoto: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, withPhoto, 1)
	assert.Equal(t, "Анна", withPhoto[0].Nickname)
	require.Len(t, withPhoto[0].Photos, 1)

	_, total, err = repo.Search(ctx, &ProfileSearchParams{OnlineSince: time.Now().AddDate(0, 0, -7)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestProfileSearchOrderAndPaging(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepo(db)
	ctx := context.Background()
	seedProfiles(t, db)

	page1, total, err := repo.Search(ctx, &ProfileSearchParams{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page1, 2)
	// 按最近上线倒序
	assert.Equal(t, "Анна", page1[0].Nickname)
	assert.Equal(t, "Игорь", page1[1].Nickname)

	page2, _, err := repo.Search(ctx, &ProfileSearchParams{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "Ольга", page2[0].Nickname)
}

func TestProfileGetByUserID(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepo(db)
	ctx := context.Background()
	seedProfiles(t, db)

	profile, err := repo.GetByUserID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Анна", profile.Nickname)
	assert.Len(t, profile.Photos, 1)

	missing, err := repo.GetByUserID(ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProfileUniquePerUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepo(db)
	ctx := context.Background()

	first := &model.Profile{UserID: 1, Nickname: "Анна", Age: 25, Height: 165, Weight: 55, Gender: "female", City: "Москва", IsActive: true}
	require.NoError(t, repo.Create(ctx, first))

	dup := &model.Profile{UserID: 1, Nickname: "Другая", Age: 30, Height: 170, Weight: 60, Gender: "female", City: "Казань", IsActive: true}
	err := repo.Create(ctx, dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestProfileSetActiveAndTouch(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepo(db)
	ctx := context.Background()
	seedProfiles(t, db)

	require.NoError(t, repo.SetActive(ctx, 1, false))
	_, total, err := repo.Search(ctx, &ProfileSearchParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	before, err := repo.GetByUserID(ctx, 3)
	require.NoError(t, err)
	require.NoError(t, repo.TouchLastOnline(ctx, 3))
	after, err := repo.GetByUserID(ctx, 3)
	require.NoError(t, err)
	assert.True(t, after.LastOnline.After(before.LastOnline))
}

func TestCountByGender(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepo(db)
	ctx := context.Background()
	seedProfiles(t, db)

	stats, err := repo.CountByGender(ctx)
	require.NoError(t, err)

	byGender := make(map[string]int64, len(stats))
	for _, s := range stats {
		byGender[s.Gender] = s.Count
	}
	// 未激活的 Сергей 不参与统计
	assert.Equal(t, int64(2), byGender["female"])
	assert.Equal(t, int64(1), byGender["male"])
}

func TestListRecent(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepo(db)
	ctx := context.Background()
	seedProfiles(t, db)

	recent, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Анна", recent[0].Nickname)
	assert.Equal(t, "Игорь", recent[1].Nickname)
}
