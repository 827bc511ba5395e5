package model

import "time"

// Message 会话内消息，只追加不删除
type Message struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID uint64 `gorm:"not null;index:idx_conv_sent,priority:1" json:"conversationId"`
	SenderID       uint64 `gorm:"not null" json:"senderId"`
	ReceiverID     uint64 `gorm:"not null;index:idx_receiver_unread" json:"receiverId"`
	Content        string `gorm:"type:varchar(1000);not null" json:"content"`
	// SentAt 排序键；时间戳相同时以自增 ID 兜底保证全序
	SentAt time.Time  `gorm:"not null;index:idx_conv_sent,priority:2" json:"sentAt"`
	IsRead bool       `gorm:"type:tinyint(1);default:0;index:idx_receiver_unread" json:"isRead"`
	ReadAt *time.Time `json:"readAt"`
}

func (Message) TableName() string { return "messages" }
