package model

import "time"

// 举报原因枚举
const (
	ReportReasonSpam          = "spam"
	ReportReasonInappropriate = "inappropriate"
	ReportReasonFakeProfile   = "fake_profile"
	ReportReasonHarassment    = "harassment"
	ReportReasonOther         = "other"
)

// Report 用户举报，每对 (举报人, 被举报人) 仅允许一条
type Report struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ReporterID     uint64    `gorm:"not null;uniqueIndex:idx_report_pair,priority:1" json:"reporterId"`
	ReportedUserID uint64    `gorm:"not null;uniqueIndex:idx_report_pair,priority:2" json:"reportedUserId"`
	Reason         string    `gorm:"type:varchar(20);not null" json:"reason"`
	Description    string    `gorm:"type:varchar(500)" json:"description"`
	IsResolved     bool      `gorm:"type:tinyint(1);default:0" json:"isResolved"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (Report) TableName() string { return "reports" }

// ValidReportReason 校验举报原因是否在枚举范围内
func ValidReportReason(reason string) bool {
	switch reason {
	case ReportReasonSpam, ReportReasonInappropriate, ReportReasonFakeProfile,
		ReportReasonHarassment, ReportReasonOther:
		return true
	}
	return false
}
