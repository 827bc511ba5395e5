package repository

import (
	"Amoria/internal/model"
	"Amoria/internal/pkg/util"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	user := &model.User{
		Username: util.PtrString("ivan_petrov"),
		Phone:    util.PtrString("79991234567"),
		Password: util.PtrString("hashed"),
	}
	require.NoError(t, repo.CreateUser(ctx, user))
	require.NotZero(t, user.ID)

	got, err := repo.GetUserByUsername(ctx, "ivan_petrov")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)

	got, err = repo.GetUserByPhone(ctx, "79991234567")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)

	missing, err := repo.GetUserByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserGetByIdPreloadsProfile(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	user := &model.User{Username: util.PtrString("anna")}
	require.NoError(t, repo.CreateUser(ctx, user))
	require.NoError(t, db.Create(&model.Profile{
		UserID: user.ID, Nickname: "Анна", Age: 25, Height: 165, Weight: 55,
		Gender: "female", City: "Москва", IsActive: true,
	}).Error)

	got, err := repo.GetUserById(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.Profile)
	assert.Equal(t, "Анна", got.Profile.Nickname)
}

func TestUserDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	user := &model.User{
		Username: util.PtrString("ivan_petrov"),
		Phone:    util.PtrString("79991234567"),
		Password: util.PtrString("hashed"),
	}
	require.NoError(t, repo.CreateUser(ctx, user))
	require.NoError(t, db.Create(&model.Profile{
		UserID: user.ID, Nickname: "Иван", Age: 30, Height: 180, Weight: 75,
		Gender: "male", City: "Москва", IsActive: true,
	}).Error)

	require.NoError(t, repo.DeleteUser(ctx, user.ID))

	// 记录保留但凭据被抹除，资料同步停用
	got, err := repo.GetUserById(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsDelete)
	assert.Nil(t, got.Phone)
	assert.Nil(t, got.Password)
	require.NotNil(t, got.Username)
	assert.True(t, strings.HasPrefix(*got.Username, "deleted_"))
	require.NotNil(t, got.Profile)
	assert.False(t, got.Profile.IsActive)
}
