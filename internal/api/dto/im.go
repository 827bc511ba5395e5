package dto

import "time"

// StartConversationReq 向目标用户发起会话
// Content 可选：带内容即同时发送首条消息，不带只定位会话
type StartConversationReq struct {
	TargetUserID uint64 `json:"target_user_id" binding:"required"`
	Content      string `json:"content"`
}

// StartConversationDTO 发起会话响应
// 未发送首条消息时 Message 为空
type StartConversationDTO struct {
	ConversationID uint64      `json:"conversation_id"`
	Message        *MessageDTO `json:"message,omitempty"`
}

// SendMessageReq 在既有会话中发送消息
type SendMessageReq struct {
	ConversationID uint64 `json:"conversation_id" binding:"required"`
	Content        string `json:"content" binding:"required"`
}

// MarkAsReadReq 标记单条消息为已读
type MarkAsReadReq struct {
	MessageID uint64 `json:"message_id" binding:"required"`
}

// MessageDTO 消息明细响应
type MessageDTO struct {
	ID             uint64     `json:"id"`
	ConversationID uint64     `json:"conversation_id"`
	SenderID       uint64     `json:"sender_id"`
	ReceiverID     uint64     `json:"receiver_id"`
	Content        string     `json:"content"`
	SentAt         time.Time  `json:"sent_at"`
	IsRead         bool       `json:"is_read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
}

// ConversationDTO 会话列表项响应
type ConversationDTO struct {
	ConversationID uint64    `json:"conversation_id"`
	PeerID         uint64    `json:"peer_id"` // 对手方 UID
	PeerNickname   string    `json:"peer_nickname,omitempty"`
	LastMsgContent string    `json:"last_msg_content,omitempty"`
	LastSenderID   uint64    `json:"last_sender_id,omitempty"`
	LastMessageAt  time.Time `json:"last_message_at"`
	UnreadCount    int64     `json:"unread_count"`
}

// ConversationPageDTO 会话列表分页响应
type ConversationPageDTO struct {
	Total         int64              `json:"total"`
	Page          int                `json:"page"`
	Conversations []*ConversationDTO `json:"conversations"`
}

// MessagePageDTO 会话消息分页响应
type MessagePageDTO struct {
	ConversationID uint64        `json:"conversation_id"`
	PeerID         uint64        `json:"peer_id"`
	Total          int64         `json:"total"`
	Page           int           `json:"page"`
	Messages       []*MessageDTO `json:"messages"`
}

// UnreadCountDTO 全局未读数响应
type UnreadCountDTO struct {
	Total int64 `json:"total"`
}

// WSPushDTO 通过 WebSocket 推送给在线用户的事件
type WSPushDTO struct {
	Type           string     `json:"type"` // message / read_receipt
	ConversationID uint64     `json:"conversation_id"`
	Message        *MessageDTO `json:"message,omitempty"`
	ReaderID       uint64     `json:"reader_id,omitempty"`
}
