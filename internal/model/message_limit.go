package model

import "time"

// MessageLimit 有向用户对的反垃圾计数，记录未被回复的消息数
// sender -> receiver 与 receiver -> sender 是两条独立记录
type MessageLimit struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID        uint64    `gorm:"not null;uniqueIndex:idx_limit_pair,priority:1" json:"senderId"`
	ReceiverID      uint64    `gorm:"not null;uniqueIndex:idx_limit_pair,priority:2" json:"receiverId"`
	UnansweredCount int       `gorm:"not null;default:0" json:"unansweredCount"`
	LastMessageAt   time.Time `json:"lastMessageAt"`
	// HourResetAt 上次小时窗口的起点，懒惰过期：仅在下次发送时检查
	HourResetAt time.Time `json:"hourResetAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (MessageLimit) TableName() string { return "message_limits" }
