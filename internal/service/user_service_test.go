package service

import (
	"Amoria/internal/api/dto"
	"Amoria/internal/model"
	"Amoria/internal/pkg/security"
	"Amoria/internal/pkg/util"
	"Amoria/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserTestEnv(t *testing.T) (*gorm.DB, UserService) {
	t.Helper()
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepo(db), nil)
	return db, svc
}

func TestRegisterByPassword(t *testing.T) {
	db, svc := newUserTestEnv(t)
	ctx := context.Background()

	err := svc.Register(ctx, &dto.RegisterDTO{
		Username: util.PtrString("ivan_petrov"),
		Password: util.PtrString("secret123"),
	})
	require.NoError(t, err)

	// 密码以 bcrypt 哈希落库
	var user model.User
	require.NoError(t, db.Where("username = ?", "ivan_petrov").First(&user).Error)
	require.NotNil(t, user.Password)
	assert.NotEqual(t, "secret123", *user.Password)
	assert.NoError(t, security.CheckPasswordHash("secret123", *user.Password))

	err = svc.Register(ctx, &dto.RegisterDTO{
		Username: util.PtrString("ivan_petrov"),
		Password: util.PtrString("another"),
	})
	assert.ErrorIs(t, err, ErrUserExist)
}

func TestLoginByPassword(t *testing.T) {
	_, svc := newUserTestEnv(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, &dto.RegisterDTO{
		Username: util.PtrString("ivan_petrov"),
		Password: util.PtrString("secret123"),
	}))

	token, err := svc.Login(ctx, &dto.CredentialDTO{
		Username: util.PtrString("ivan_petrov"),
		Password: util.PtrString("secret123"),
	}, true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := security.ValidateToken(token)
	require.NoError(t, err)
	assert.NotZero(t, claims.UserID)

	_, err = svc.Login(ctx, &dto.CredentialDTO{
		Username: util.PtrString("ivan_petrov"),
		Password: util.PtrString("wrong"),
	}, true)
	assert.ErrorIs(t, err, ErrPasswordIncorrect)

	_, err = svc.Login(ctx, &dto.CredentialDTO{
		Username: util.PtrString("nobody"),
		Password: util.PtrString("secret123"),
	}, true)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Login(ctx, &dto.CredentialDTO{}, true)
	assert.ErrorIs(t, err, ErrMissingLoginCredentials)
}

func TestLoginDeletedUser(t *testing.T) {
	db, svc := newUserTestEnv(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, &dto.RegisterDTO{
		Username: util.PtrString("ivan_petrov"),
		Password: util.PtrString("secret123"),
	}))
	require.NoError(t, db.Model(&model.User{}).
		Where("username = ?", "ivan_petrov").
		Update("is_delete", true).Error)

	_, err := svc.Login(ctx, &dto.CredentialDTO{
		Username: util.PtrString("ivan_petrov"),
		Password: util.PtrString("secret123"),
	}, true)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserInfo(t *testing.T) {
	_, svc := newUserTestEnv(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, &dto.RegisterDTO{
		Username: util.PtrString("ivan_petrov"),
		Password: util.PtrString("secret123"),
	}))

	token, err := svc.Login(ctx, &dto.CredentialDTO{
		Username: util.PtrString("ivan_petrov"),
		Password: util.PtrString("secret123"),
	}, true)
	require.NoError(t, err)
	claims, err := security.ValidateToken(token)
	require.NoError(t, err)

	info, err := svc.GetUserInfo(ctx, claims.UserID)
	require.NoError(t, err)
	require.NotNil(t, info.Username)
	assert.Equal(t, "ivan_petrov", *info.Username)

	_, err = svc.GetUserInfo(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdatePasswordFromOld(t *testing.T) {
	_, svc := newUserTestEnv(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, &dto.RegisterDTO{
		Username: util.PtrString("ivan_petrov"),
		Password: util.PtrString("secret123"),
	}))
	token, err := svc.Login(ctx, &dto.CredentialDTO{
		Username: util.PtrString("ivan_petrov"),
		Password: util.PtrString("secret123"),
	}, true)
	require.NoError(t, err)
	claims, err := security.ValidateToken(token)
	require.NoError(t, err)

	err = svc.UpdatePasswordFromOld(ctx, claims.UserID, &dto.ChangePasswordDTO{
		OldPassword: util.PtrString("wrong"),
		NewPassword: util.PtrString("newsecret"),
	})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)

	err = svc.UpdatePasswordFromOld(ctx, claims.UserID, &dto.ChangePasswordDTO{
		OldPassword: util.PtrString("secret123"),
		NewPassword: util.PtrString("newsecret"),
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.CredentialDTO{
		Username: util.PtrString("ivan_petrov"),
		Password: util.PtrString("newsecret"),
	}, true)
	assert.NoError(t, err)
}

func TestUpdateUsername(t *testing.T) {
	_, svc := newUserTestEnv(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, &dto.RegisterDTO{
		Username: util.PtrString("ivan_petrov"),
		Password: util.PtrString("secret123"),
	}))
	require.NoError(t, svc.Register(ctx, &dto.RegisterDTO{
		Username: util.PtrString("anna_k"),
		Password: util.PtrString("secret456"),
	}))

	token, err := svc.Login(ctx, &dto.CredentialDTO{
		Username: util.PtrString("ivan_petrov"),
		Password: util.PtrString("secret123"),
	}, true)
	require.NoError(t, err)
	claims, err := security.ValidateToken(token)
	require.NoError(t, err)

	// 已被占用的用户名
	err = svc.UpdateUsername(ctx, claims.UserID, &dto.ChangeUsernameDTO{
		Username: util.PtrString("anna_k"),
	})
	assert.ErrorIs(t, err, ErrUserUsernameExist)

	err = svc.UpdateUsername(ctx, claims.UserID, &dto.ChangeUsernameDTO{
		Username: util.PtrString("ivan_new"),
	})
	require.NoError(t, err)

	info, err := svc.GetUserInfo(ctx, claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "ivan_new", *info.Username)
}
