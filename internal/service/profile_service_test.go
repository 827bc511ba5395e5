package service

import (
	"Amoria/internal/api/dto"
	"Amoria/internal/model"
	"Amoria/internal/pkg/cache"
	"Amoria/internal/pkg/util"
	"Amoria/internal/repository"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProfileTestEnv(t *testing.T) (*gorm.DB, ProfileService) {
	t.Helper()
	db := newTestDB(t)
	svc := NewProfileService(repository.NewProfileRepo(db), cache.NewMemoryStore())
	return db, svc
}

func newBareUser(t *testing.T, db *gorm.DB, username string) uint64 {
	t.Helper()
	user := &model.User{Username: util.PtrString(username)}
	require.NoError(t, db.Create(user).Error)
	return user.ID
}

func validCreateProfileDTO(nickname string) *dto.CreateProfileDTO {
	return &dto.CreateProfileDTO{
		Nickname:      nickname,
		Age:           27,
		Height:        168,
		Weight:        58,
		Gender:        "female",
		City:          "Москва",
		MaritalStatus: "single",
		Education:     "higher",
		Smoking:       "no",
		Alcohol:       "rarely",
		Goal:          "серьёзные отношения",
	}
}

func TestCreateProfile(t *testing.T) {
	db, svc := newProfileTestEnv(t)
	ctx := context.Background()
	uid := newBareUser(t, db, "anna")

	profile, err := svc.CreateProfile(ctx, uid, validCreateProfileDTO("Анна"))
	require.NoError(t, err)
	assert.Equal(t, uid, profile.UserID)
	assert.Equal(t, "Анна", profile.Nickname)
	assert.Equal(t, 27, profile.Age)
	assert.Equal(t, "Москва", profile.City)
	assert.True(t, profile.IsActive)
	assert.False(t, profile.LastOnline.IsZero())

	// 每个用户只允许一份资料
	_, err = svc.CreateProfile(ctx, uid, validCreateProfileDTO("Другая"))
	assert.ErrorIs(t, err, ErrProfileExist)
}

func TestGetProfile(t *testing.T) {
	db, svc := newProfileTestEnv(t)
	ctx := context.Background()
	uid := newBareUser(t, db, "anna")

	// 无资料走负缓存，两次都报不存在
	_, err := svc.GetProfile(ctx, uid)
	assert.ErrorIs(t, err, ErrProfileNotFound)
	_, err = svc.GetProfile(ctx, uid)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	// 创建后缓存被清掉，立即可见
	_, err = svc.CreateProfile(ctx, uid, validCreateProfileDTO("Анна"))
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "Анна", profile.Nickname)

	// 第二次命中缓存，内容一致
	cached, err := svc.GetProfile(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, cached.ID)
	assert.Equal(t, profile.Nickname, cached.Nickname)
}

func TestUpdateProfile(t *testing.T) {
	db, svc := newProfileTestEnv(t)
	ctx := context.Background()
	uid := newBareUser(t, db, "anna")

	_, err := svc.CreateProfile(ctx, uid, validCreateProfileDTO("Анна"))
	require.NoError(t, err)

	err = svc.UpdateProfile(ctx, uid, &dto.UpdateProfileDTO{
		City:     util.PtrString("Казань"),
		Age:      util.PtrInt(28),
		IsActive: util.PtrBool(false),
	})
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "Казань", profile.City)
	assert.Equal(t, 28, profile.Age)
	assert.False(t, profile.IsActive)
	// 未传的字段保持原值
	assert.Equal(t, "Анна", profile.Nickname)

	err = svc.UpdateProfile(ctx, 9999, &dto.UpdateProfileDTO{City: util.PtrString("Сочи")})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestSearchCacheInvalidation(t *testing.T) {
	db, svc := newProfileTestEnv(t)
	ctx := context.Background()
	uid := newBareUser(t, db, "anna")

	_, err := svc.CreateProfile(ctx, uid, validCreateProfileDTO("Анна"))
	require.NoError(t, err)

	result, err := svc.Search(ctx, &dto.SearchProfileDTO{City: "Москва"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)

	// 资料变更递增搜索版本号，旧缓存整体失效
	err = svc.UpdateProfile(ctx, uid, &dto.UpdateProfileDTO{City: util.PtrString("Казань")})
	require.NoError(t, err)

	result, err = svc.Search(ctx, &dto.SearchProfileDTO{City: "Москва"})
	require.NoError(t, err)
	assert.Zero(t, result.Total)

	result, err = svc.Search(ctx, &dto.SearchProfileDTO{City: "Казань"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
}

func TestProfileStats(t *testing.T) {
	db, svc := newProfileTestEnv(t)
	ctx := context.Background()

	for i, gender := range []string{"female", "female", "male"} {
		uid := newBareUser(t, db, fmt.Sprintf("user%d", i))
		createDTO := validCreateProfileDTO("Пользователь")
		createDTO.Gender = gender
		_, err := svc.CreateProfile(ctx, uid, createDTO)
		require.NoError(t, err)
	}

	require.NoError(t, svc.RefreshStats(ctx))

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.ByGender["female"])
	assert.Equal(t, int64(1), stats.ByGender["male"])
}

func TestListRecentProfiles(t *testing.T) {
	db, svc := newProfileTestEnv(t)
	ctx := context.Background()

	first := newBareUser(t, db, "first")
	_, err := svc.CreateProfile(ctx, first, validCreateProfileDTO("Первая"))
	require.NoError(t, err)
	second := newBareUser(t, db, "second")
	_, err = svc.CreateProfile(ctx, second, validCreateProfileDTO("Вторая"))
	require.NoError(t, err)

	recent, err := svc.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}
