package model

import "time"

// Photo 资料照片，存储 MinIO 对象名而非完整 URL
type Photo struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID  uint64    `gorm:"index;not null" json:"profileId"`
	ObjectName string    `gorm:"type:varchar(512);not null" json:"objectName"`
	IsPrimary  bool      `gorm:"type:tinyint(1);default:0" json:"isPrimary"`
	IsVerified bool      `gorm:"type:tinyint(1);default:0" json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Photo) TableName() string { return "photos" }
