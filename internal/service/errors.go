package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	TooManyRequests     = 429
	InternalServerError = 500
)

var (
	ErrParamInvalid            = errors.New("参数错误")
	ErrUserNotFound            = errors.New("用户不存在")
	ErrUserExist               = errors.New("用户已存在")
	ErrUserPhoneNotFound       = errors.New("手机号未注册")
	ErrUserPhoneExist          = errors.New("手机号已注册")
	ErrUserUsernameExist       = errors.New("用户名已存在")
	ErrPasswordIncorrect       = errors.New("密码错误")
	ErrCodeIncorrect           = errors.New("验证码错误")
	ErrSmsTooOften             = errors.New("验证码发送过于频繁，请稍后再试")
	ErrMissingLoginCredentials = errors.New("缺少登录凭据")
	ErrSmsRegTokenIncorrect    = errors.New("短信注册token错误")
	ErrProfileNotFound         = errors.New("资料不存在")
	ErrProfileExist            = errors.New("资料已创建")
	ErrProfileInactive         = errors.New("对方资料已停用")
	ErrFileNotSupported        = errors.New("不支持的文件类型")
	ErrPhotoNotFound           = errors.New("照片不存在")
	ErrPhotoLimit              = errors.New("照片数量超过限制")
	ErrPhotoTooSmall           = errors.New("照片尺寸过小")
	ErrConversation            = errors.New("会话异常")
	ErrConversationNotFound    = errors.New("会话不存在")
	ErrMessageSelf             = errors.New("不能给自己发消息")
	ErrMessageTooShort         = errors.New("消息内容过短")
	ErrMessageTooLong          = errors.New("消息内容过长")
	ErrMessageBlocked          = errors.New("消息包含禁止内容")
	ErrMessageRepetitive       = errors.New("消息内容无意义")
	ErrMessageLimit            = errors.New("未回复消息过多，请稍后再试")
	ErrReportSelf              = errors.New("不能举报自己")
	ErrReportDuplicate         = errors.New("已举报过该用户")
	ErrReportReasonInvalid     = errors.New("举报原因无效")
	ErrTargetUserInvalid       = errors.New("目标用户无效")
	UnauthorizedError          = errors.New("权限不足")
	UnExpectedError            = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:            BadRequest,
	ErrUserNotFound:            NotFound,
	ErrUserExist:               BadRequest,
	ErrUserPhoneNotFound:       NotFound,
	ErrUserPhoneExist:          BadRequest,
	ErrUserUsernameExist:       BadRequest,
	ErrPasswordIncorrect:       Unauthorized,
	ErrCodeIncorrect:           Unauthorized,
	ErrSmsTooOften:             TooManyRequests,
	ErrMissingLoginCredentials: Unauthorized,
	ErrSmsRegTokenIncorrect:    Unauthorized,
	ErrProfileNotFound:         NotFound,
	ErrProfileExist:            BadRequest,
	ErrProfileInactive:         BadRequest,
	ErrFileNotSupported:        BadRequest,
	ErrPhotoNotFound:           NotFound,
	ErrPhotoLimit:              BadRequest,
	ErrPhotoTooSmall:           BadRequest,
	ErrConversation:            BadRequest,
	ErrConversationNotFound:    NotFound,
	ErrMessageSelf:             BadRequest,
	ErrMessageTooShort:         BadRequest,
	ErrMessageTooLong:          BadRequest,
	ErrMessageBlocked:          BadRequest,
	ErrMessageRepetitive:       BadRequest,
	ErrMessageLimit:            TooManyRequests,
	ErrReportSelf:              BadRequest,
	ErrReportDuplicate:         BadRequest,
	ErrReportReasonInvalid:     BadRequest,
	ErrTargetUserInvalid:       BadRequest,
	UnauthorizedError:          Unauthorized,
	UnExpectedError:            InternalServerError,
}
