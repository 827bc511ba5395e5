package service

import (
	"Amoria/internal/api/dto"
	"Amoria/internal/model"
	"Amoria/internal/pkg/consts"
	"Amoria/internal/pkg/redis"
	"Amoria/internal/pkg/security"
	"Amoria/internal/repository"
	"context"
	"time"
)

type UserService interface {
	Register(ctx context.Context, dto *dto.RegisterDTO) error
	Login(ctx context.Context, dto *dto.CredentialDTO, isByPassword bool) (string, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
	UpdatePasswordFromToken(ctx context.Context, dto *dto.ForgetPasswordDTO) error
	UpdatePasswordFromOld(ctx context.Context, id uint64, dto *dto.ChangePasswordDTO) error
	UpdatePhone(ctx context.Context, id uint64, dto *dto.ChangePhoneDTO) error
	UpdateUsername(ctx context.Context, id uint64, dto *dto.ChangeUsernameDTO) error
	CancelUser(ctx context.Context, id uint64) error
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
	smsSvc   SmsService
}

func NewUserService(userRepo repository.UserRepo, smsSvc SmsService) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		smsSvc:   smsSvc,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) error {
	credentialDTO := &dto.CredentialDTO{
		Username: regDTO.Username,
		Phone:    regDTO.Phone,
	}
	findUser, err := s.findUserByLoginCredentials(ctx, credentialDTO)
	if err != nil {
		return err
	}
	if findUser != nil {
		return ErrUserExist
	}

	user := &model.User{
		Username: regDTO.Username,
		Phone:    regDTO.Phone,
	}

	// username & password 形式注册
	if regDTO.Password != nil {
		passwordHash, err := security.HashPassword(*regDTO.Password)
		if err != nil {
			return err
		}
		user.Password = &passwordHash
	}

	// 手机号形式注册，校验短信临时令牌
	if regDTO.Phone != nil {
		key := consts.SmsCheckTokenKey + *regDTO.Phone
		value, err := redis.GetValue(ctx, key)
		if err != nil {
			return err
		}
		if regDTO.PhoneToken == nil || value != *regDTO.PhoneToken {
			return ErrSmsRegTokenIncorrect
		}
		_ = redis.DeleteKey(ctx, key)
	}

	return s.userRepo.CreateUser(ctx, user)
}

func (s *UserServiceImpl) Login(ctx context.Context, credDTO *dto.CredentialDTO, isByPassword bool) (string, error) {
	user, err := s.findUserByLoginCredentials(ctx, credDTO)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	if user.IsDelete {
		return "", ErrUserNotFound
	}

	if isByPassword {
		if credDTO.Password == nil || user.Password == nil {
			return "", ErrPasswordIncorrect
		}
		err = security.CheckPasswordHash(*credDTO.Password, *user.Password)
		if err != nil {
			return "", ErrPasswordIncorrect
		}
	} else {
		if credDTO.Phone == nil || credDTO.SmsCode == nil {
			return "", ErrMissingLoginCredentials
		}
		if _, err = s.smsSvc.VerifyCode(ctx, *credDTO.Phone, *credDTO.SmsCode); err != nil {
			return "", err
		}
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Logout 将 token 签名加入黑名单，有效期对齐 token 生命周期
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, signature, true, time.Hour*24)
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return &dto.UserDTO{
		UserID:    &user.ID,
		Username:  user.Username,
		Phone:     user.Phone,
		CreatedAt: &user.CreatedAt,
	}, nil
}

func (s *UserServiceImpl) UpdatePasswordFromToken(ctx context.Context, fpDTO *dto.ForgetPasswordDTO) error {
	user, err := s.userRepo.GetUserByPhone(ctx, *fpDTO.Phone)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserPhoneNotFound
	}

	if _, err = s.smsSvc.VerifyCode(ctx, *fpDTO.Phone, *fpDTO.SmsCode); err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(*fpDTO.NewPassword)
	if err != nil {
		return err
	}
	user.Password = &passwordHash
	return s.userRepo.UpdateUser(ctx, user)
}

func (s *UserServiceImpl) UpdatePasswordFromOld(ctx context.Context, id uint64, cpDTO *dto.ChangePasswordDTO) error {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.Password == nil {
		return ErrPasswordIncorrect
	}
	if err = security.CheckPasswordHash(*cpDTO.OldPassword, *user.Password); err != nil {
		return ErrPasswordIncorrect
	}

	passwordHash, err := security.HashPassword(*cpDTO.NewPassword)
	if err != nil {
		return err
	}
	user.Password = &passwordHash
	return s.userRepo.UpdateUser(ctx, user)
}

func (s *UserServiceImpl) UpdatePhone(ctx context.Context, id uint64, cpDTO *dto.ChangePhoneDTO) error {
	existing, err := s.userRepo.GetUserByPhone(ctx, *cpDTO.NewPhone)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUserPhoneExist
	}

	// 校验新手机号的短信临时令牌
	key := consts.SmsCheckTokenKey + *cpDTO.NewPhone
	value, err := redis.GetValue(ctx, key)
	if err != nil {
		return err
	}
	if value != *cpDTO.Token {
		return ErrSmsRegTokenIncorrect
	}
	_ = redis.DeleteKey(ctx, key)

	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	user.Phone = cpDTO.NewPhone
	return s.userRepo.UpdateUser(ctx, user)
}

func (s *UserServiceImpl) UpdateUsername(ctx context.Context, id uint64, cuDTO *dto.ChangeUsernameDTO) error {
	existing, err := s.userRepo.GetUserByUsername(ctx, *cuDTO.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUserUsernameExist
	}

	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	user.Username = cuDTO.Username
	return s.userRepo.UpdateUser(ctx, user)
}

func (s *UserServiceImpl) CancelUser(ctx context.Context, id uint64) error {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err = s.userRepo.DeleteUser(ctx, id); err != nil {
		return err
	}
	_ = redis.DeleteKey(ctx, consts.ProfileKey+formatUint(id))
	return nil
}

func (s *UserServiceImpl) findUserByLoginCredentials(ctx context.Context, credDTO *dto.CredentialDTO) (*model.User, error) {
	if credDTO.Username != nil {
		return s.userRepo.GetUserByUsername(ctx, *credDTO.Username)
	}
	if credDTO.Phone != nil {
		return s.userRepo.GetUserByPhone(ctx, *credDTO.Phone)
	}
	return nil, ErrMissingLoginCredentials
}
