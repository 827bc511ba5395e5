package service

import (
	"Amoria/internal/pkg/cache"
	"Amoria/internal/pkg/consts"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPhone = "79161234567"

func newSmsTestService() (*SmsServiceImpl, *[]string) {
	sent := &[]string{}
	svc := &SmsServiceImpl{
		store: cache.NewMemoryStore(),
		send: func(_ string, code string) error {
			*sent = append(*sent, code)
			return nil
		},
	}
	return svc, sent
}

func TestSendCode(t *testing.T) {
	svc, sent := newSmsTestService()
	ctx := context.Background()

	assert.ErrorIs(t, svc.SendCode(ctx, "123"), ErrParamInvalid)

	require.NoError(t, svc.SendCode(ctx, testPhone))
	require.Len(t, *sent, 1)
	assert.Len(t, (*sent)[0], smsCodeLength)

	// 一分钟内重复请求被限频
	assert.ErrorIs(t, svc.SendCode(ctx, testPhone), ErrSmsTooOften)
}

func TestVerifyCode(t *testing.T) {
	svc, sent := newSmsTestService()
	ctx := context.Background()

	// 未下发过验证码
	_, err := svc.VerifyCode(ctx, testPhone, "000000")
	assert.ErrorIs(t, err, ErrCodeIncorrect)

	require.NoError(t, svc.SendCode(ctx, testPhone))
	code := (*sent)[0]

	token, err := svc.VerifyCode(ctx, testPhone, code)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// 验证码一次性，二次核对失败
	_, err = svc.VerifyCode(ctx, testPhone, code)
	assert.ErrorIs(t, err, ErrCodeIncorrect)

	// 注册完成后令牌被回收
	stored, err := svc.store.Get(ctx, consts.SmsCheckTokenKey+testPhone)
	require.NoError(t, err)
	assert.Equal(t, token, stored)
	require.NoError(t, svc.DropRegToken(ctx, testPhone))
	stored, err = svc.store.Get(ctx, consts.SmsCheckTokenKey+testPhone)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestVerifyCodeAttemptCap(t *testing.T) {
	svc, sent := newSmsTestService()
	ctx := context.Background()

	require.NoError(t, svc.SendCode(ctx, testPhone))
	code := (*sent)[0]
	wrong := "000000"
	if wrong == code {
		wrong = "111111"
	}

	// 连续输错耗尽次数后验证码作废，正确的码也不再可用
	for i := 0; i < smsMaxAttempts; i++ {
		_, err := svc.VerifyCode(ctx, testPhone, wrong)
		assert.ErrorIs(t, err, ErrCodeIncorrect)
	}
	_, err := svc.VerifyCode(ctx, testPhone, code)
	assert.ErrorIs(t, err, ErrCodeIncorrect)
}
