package service

import (
	"Amoria/internal/pkg/cache"
	"Amoria/internal/pkg/consts"
	"Amoria/internal/pkg/util"
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	smsCodeLength     = 6
	smsCodeTTL        = 10 * time.Minute
	smsResendInterval = time.Minute
	smsMaxAttempts    = 5
	smsRegTokenTTL    = time.Hour
)

// SmsService 注册、登录与换绑手机号的短信验证流程
type SmsService interface {
	SendCode(ctx context.Context, phone string) error
	VerifyCode(ctx context.Context, phone string, code string) (string, error)
	DropRegToken(ctx context.Context, phone string) error
}

type SmsServiceImpl struct {
	store cache.Store
	send  func(phone string, code string) error
}

func NewSmsService(store cache.Store) SmsService {
	return &SmsServiceImpl{store: store, send: util.SendSms}
}

// SendCode 下发验证码，同一手机号一分钟内只发一次
func (s *SmsServiceImpl) SendCode(ctx context.Context, phone string) error {
	if !util.ValidatePhone(phone) {
		return ErrParamInvalid
	}

	lockKey := consts.SmsResendLockKey + phone
	locked, err := s.store.Get(ctx, lockKey)
	if err != nil {
		return err
	}
	if locked != "" {
		return ErrSmsTooOften
	}

	code := util.GenerateCode(smsCodeLength)
	if err = s.store.Set(ctx, consts.SmsKey+phone, code, smsCodeTTL); err != nil {
		return err
	}
	// 新验证码重置错误次数
	_ = s.store.Delete(ctx, consts.SmsAttemptKey+phone)
	if err = s.store.Set(ctx, lockKey, "1", smsResendInterval); err != nil {
		return err
	}
	return s.send(phone, code)
}

// VerifyCode 核对验证码，成功后验证码作废并换发一次性注册 token
// 连续输错超过上限时验证码直接作废，防止遍历
func (s *SmsServiceImpl) VerifyCode(ctx context.Context, phone string, code string) (string, error) {
	stored, err := s.store.Get(ctx, consts.SmsKey+phone)
	if err != nil {
		return "", err
	}
	if stored == "" {
		return "", ErrCodeIncorrect
	}

	if stored != code {
		attempts, err := s.store.Incr(ctx, consts.SmsAttemptKey+phone)
		if err != nil {
			return "", err
		}
		if attempts >= smsMaxAttempts {
			_ = s.store.Delete(ctx, consts.SmsKey+phone)
			_ = s.store.Delete(ctx, consts.SmsAttemptKey+phone)
		}
		return "", ErrCodeIncorrect
	}

	_ = s.store.Delete(ctx, consts.SmsKey+phone)
	_ = s.store.Delete(ctx, consts.SmsAttemptKey+phone)

	regToken := strconv.Itoa(int(uuid.New().ID()))
	if err = s.store.Set(ctx, consts.SmsCheckTokenKey+phone, regToken, smsRegTokenTTL); err != nil {
		return "", err
	}
	return regToken, nil
}

// DropRegToken 注册完成后回收一次性 token
func (s *SmsServiceImpl) DropRegToken(ctx context.Context, phone string) error {
	return s.store.Delete(ctx, consts.SmsCheckTokenKey+phone)
}
