package dto

import "time"

// CreateReportDTO 举报用户
type CreateReportDTO struct {
	ReportedUserID uint64 `json:"reported_user_id" binding:"required"`
	Reason         string `json:"reason" binding:"required" validate:"oneof=spam inappropriate fake_profile harassment other"`
	Description    string `json:"description" validate:"omitempty,max=500"`
}

// ReportDTO 举报响应
type ReportDTO struct {
	ID             uint64    `json:"id"`
	ReporterID     uint64    `json:"reporter_id"`
	ReportedUserID uint64    `json:"reported_user_id"`
	Reason         string    `json:"reason"`
	Description    string    `json:"description,omitempty"`
	IsResolved     bool      `json:"is_resolved"`
	CreatedAt      time.Time `json:"created_at"`
}
