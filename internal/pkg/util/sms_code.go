package util

import (
	"Amoria/internal/api/config"
	"fmt"
	log "log/slog"
	"math/rand"
	"time"

	"github.com/go-resty/resty/v2"
)

const SuccessResp = "0"
const digits = "0123456789"

var smsClient = resty.New().SetTimeout(10 * time.Second)

func SendSms(phone string, code string) error {
	smsCfg := config.Cfg.SMS
	content := fmt.Sprintf("【Amoria】您的验证码为 %s 。", code)

	log.Info(fmt.Sprintf("发送给 %s 的验证码为 %s", phone, code))

	resp, err := smsClient.R().
		SetQueryParams(map[string]string{
			"u": smsCfg.Username,
			"p": smsCfg.ApiKey,
			"m": phone,
			"c": content,
		}).
		Get(smsCfg.URL)
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("sms send failed: %s", resp.Status())
	}
	if resp.String() != SuccessResp {
		return fmt.Errorf("sms send failed: response code %s", resp.String())
	}
	log.Info(fmt.Sprintf("短信接口响应: %s", resp.String()))
	return nil
}

func GenerateCode(length int) string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	code := make([]byte, length)
	for i := range code {
		code[i] = digits[r.Intn(len(digits))]
	}
	return string(code)
}
