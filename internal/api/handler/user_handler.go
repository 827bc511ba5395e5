package handler

import (
	"Amoria/internal/api/dto"
	"Amoria/internal/pkg/response"
	"Amoria/internal/pkg/util"
	"Amoria/internal/service"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
	smsSvc  service.SmsService
}

func NewUserHandler(userSvc service.UserService, smsSvc service.SmsService) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
		smsSvc:  smsSvc,
	}
}

func (s *UserHandler) Register(c *gin.Context) {
	var registerDTO dto.RegisterDTO
	if err := c.ShouldBind(&registerDTO); err != nil {
		response.Error(c, err)
		return
	}
	if !validRegisterDTO(&registerDTO) {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	if err := s.userSvc.Register(c.Request.Context(), &registerDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) SendSmsCode(c *gin.Context) {
	var req dto.PhoneDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	if !util.ValidatePhone(req.Phone) {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	if err := s.smsSvc.SendCode(c.Request.Context(), req.Phone); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) Login(c *gin.Context) {
	var loginDTO dto.CredentialDTO
	if err := c.ShouldBind(&loginDTO); err != nil {
		response.Error(c, err)
		return
	}
	if loginDTO.Username == nil || loginDTO.Password == nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	token, err := s.userSvc.Login(c.Request.Context(), &loginDTO, true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]string{
		"token": token,
	})
}

// LoginByPhone 手机号验证码登录，未注册的手机号返回临时注册令牌
func (s *UserHandler) LoginByPhone(c *gin.Context) {
	var req dto.PhoneLoginDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}

	token, err := s.smsSvc.VerifyCode(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}

	loginDTO := dto.CredentialDTO{Phone: &req.Phone}
	loginToken, err := s.userSvc.Login(c.Request.Context(), &loginDTO, false)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// 未注册，返回注册令牌让前端走注册流程
			response.Success(c, map[string]interface{}{
				"registered": false,
				"token":      token,
			})
			return
		}
		response.Error(c, err)
		return
	}

	_ = s.smsSvc.DropRegToken(c.Request.Context(), req.Phone)
	response.Success(c, map[string]interface{}{
		"registered": true,
		"token":      loginToken,
	})
}

func (s *UserHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if err := s.userSvc.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) GetUserInfo(c *gin.Context) {
	userID := c.GetUint64("user_id")
	info, err := s.userSvc.GetUserInfo(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

func (s *UserHandler) ForgetPassword(c *gin.Context) {
	var fpDTO dto.ForgetPasswordDTO
	if err := c.ShouldBind(&fpDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&fpDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.userSvc.UpdatePasswordFromToken(c.Request.Context(), &fpDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) ChangePassword(c *gin.Context) {
	var cpDTO dto.ChangePasswordDTO
	if err := c.ShouldBind(&cpDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&cpDTO); err != nil {
		response.Error(c, err)
		return
	}
	userID := c.GetUint64("user_id")
	if err := s.userSvc.UpdatePasswordFromOld(c.Request.Context(), userID, &cpDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) ChangeUsername(c *gin.Context) {
	var cuDTO dto.ChangeUsernameDTO
	if err := c.ShouldBind(&cuDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&cuDTO); err != nil {
		response.Error(c, err)
		return
	}
	userID := c.GetUint64("user_id")
	if err := s.userSvc.UpdateUsername(c.Request.Context(), userID, &cuDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) ChangePhone(c *gin.Context) {
	var cpDTO dto.ChangePhoneDTO
	if err := c.ShouldBind(&cpDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&cpDTO); err != nil {
		response.Error(c, err)
		return
	}
	userID := c.GetUint64("user_id")
	if err := s.userSvc.UpdatePhone(c.Request.Context(), userID, &cpDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) CancelUser(c *gin.Context) {
	userID := c.GetUint64("user_id")
	if err := s.userSvc.CancelUser(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func validRegisterDTO(regDTO *dto.RegisterDTO) bool {
	if regDTO.Username != nil && regDTO.Password != nil {
		if len(*regDTO.Username) < 6 || len(*regDTO.Password) < 6 {
			return false
		}
		if len(*regDTO.Username) > 20 || len(*regDTO.Password) > 20 {
			return false
		}
		return true
	}
	if regDTO.Phone != nil {
		return util.ValidatePhone(*regDTO.Phone) && regDTO.PhoneToken != nil
	}
	return false
}
