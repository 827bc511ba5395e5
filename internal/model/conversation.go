package model

import (
	"fmt"
	"time"
)

// Conversation 会话主表，两个用户之间有且仅有一条
type Conversation struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ParticipantA uint64 `gorm:"not null;index" json:"participantA"` // 发起方
	ParticipantB uint64 `gorm:"not null;index" json:"participantB"`
	// PairKey = "小ID_大ID"，唯一索引保证无序用户对的会话唯一性
	PairKey       string    `gorm:"uniqueIndex;type:varchar(64)" json:"pairKey"`
	LastMessageAt time.Time `gorm:"index" json:"lastMessageAt"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (Conversation) TableName() string { return "conversations" }

// ConversationPairKey 生成无序用户对的唯一会话标识
func ConversationPairKey(userID, targetID uint64) string {
	if userID < targetID {
		return fmt.Sprintf("%d_%d", userID, targetID)
	}
	return fmt.Sprintf("%d_%d", targetID, userID)
}

// HasParticipant 判断用户是否为会话成员
func (c *Conversation) HasParticipant(userID uint64) bool {
	return c.ParticipantA == userID || c.ParticipantB == userID
}

// OtherParticipant 获取会话中的对手方
func (c *Conversation) OtherParticipant(userID uint64) uint64 {
	if c.ParticipantA == userID {
		return c.ParticipantB
	}
	return c.ParticipantA
}
