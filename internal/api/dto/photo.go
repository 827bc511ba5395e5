package dto

import "time"

// PhotoDTO 照片响应
type PhotoDTO struct {
	ID         uint64    `json:"id"`
	URL        string    `json:"url"`
	IsPrimary  bool      `json:"is_primary"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}
