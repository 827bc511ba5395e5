package dto

import "time"

// UserDTO 用户
type UserDTO struct {
	UserID    *uint64    `json:"user_id,omitempty"`
	Username  *string    `json:"username,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// PhoneDTO 发送短信验证码
type PhoneDTO struct {
	Phone string `json:"phone" binding:"required"`
}

// PhoneLoginDTO 手机号验证码登录
type PhoneLoginDTO struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// RegisterDTO 注册
type RegisterDTO struct {
	// 方式一 使用 用户名&密码
	Username *string `json:"username"`
	Password *string `json:"password"`

	// 方式二 使用 手机号&临时签发令牌
	Phone      *string `json:"phone"`
	PhoneToken *string `json:"phone_token"`
}

// CredentialDTO 登录凭证
type CredentialDTO struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	SmsCode  *string `json:"sms_code,omitempty"`
}

// ForgetPasswordDTO 忘记密码
type ForgetPasswordDTO struct {
	Phone       *string `json:"phone" binding:"required" validate:"min=11,max=11"`
	SmsCode     *string `json:"sms_code" binding:"required" validate:"min=6,max=6"`
	NewPassword *string `json:"new_password" binding:"required" validate:"min=6,max=20"`
}

// ChangeUsernameDTO 修改用户名
type ChangeUsernameDTO struct {
	Username *string `json:"username" binding:"required" validate:"min=3,max=20"`
}

// ChangePhoneDTO 修改手机号
type ChangePhoneDTO struct {
	Token    *string `json:"token" binding:"required" validate:"required"`
	NewPhone *string `json:"new_phone" binding:"required" validate:"required,min=11,max=11"`
}

// ChangePasswordDTO 修改密码
type ChangePasswordDTO struct {
	OldPassword *string `json:"old_password" binding:"required" validate:"min=6,max=20"`
	NewPassword *string `json:"new_password" binding:"required" validate:"min=6,max=20"`
}
