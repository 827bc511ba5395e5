package repository

import (
	"Amoria/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type MessageRepo interface {
	CreateInConversation(ctx context.Context, conv *model.Conversation, msg *model.Message) (bool, error)
	ListByConversation(ctx context.Context, convID uint64, page, pageSize int) ([]*model.Message, int64, error)
	GetByID(ctx context.Context, msgID uint64) (*model.Message, error)
	MarkRead(ctx context.Context, msgID uint64, receiverID uint64) (bool, error)
	MarkConversationRead(ctx context.Context, convID uint64, receiverID uint64) (int64, error)
	CountUnread(ctx context.Context, convID uint64, receiverID uint64) (int64, error)
	CountTotalUnread(ctx context.Context, receiverID uint64) (int64, error)
	GetLastMessage(ctx context.Context, convID uint64) (*model.Message, error)
}

type messageRepoImpl struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) MessageRepo {
	return &messageRepoImpl{db: db}
}

// CreateInConversation 发送消息的核心事务
// 限流检查、消息写入、会话时间刷新、反向计数清零必须原子完成，
// 任一步失败则整体回滚。返回 false 表示触发限流，消息未写入。
func (s *messageRepoImpl) CreateInConversation(ctx context.Context, conv *model.Conversation, msg *model.Message) (bool, error) {
	allowed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		ok, err := consumeLimitTx(tx, msg.SenderID, msg.ReceiverID, now)
		if err != nil {
			return err
		}
		if !ok {
			// 懒惰重置已提交无妨，计数与消息均未变更
			return nil
		}

		msg.ConversationID = conv.ID
		msg.SentAt = now
		msg.IsRead = false
		msg.ReadAt = nil
		if err := tx.Create(msg).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Conversation{}).
			Where("id = ?", conv.ID).
			Update("last_message_at", now).Error; err != nil {
			return err
		}

		// 本次发送即是对对方消息的回复，清零反向未回复计数
		if err := tx.Model(&model.MessageLimit{}).
			Where("sender_id = ? AND receiver_id = ?", msg.ReceiverID, msg.SenderID).
			Update("unanswered_count", 0).Error; err != nil {
			return err
		}

		allowed = true
		return nil
	})
	return allowed, err
}

// ListByConversation 会话内消息，按发送时间升序，时间相同按 ID 升序
func (s *messageRepoImpl) ListByConversation(ctx context.Context, convID uint64, page, pageSize int) ([]*model.Message, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Message{}).
		Where("conversation_id = ?", convID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	messages := make([]*model.Message, 0)
	err := query.
		Order("sent_at ASC, id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

func (s *messageRepoImpl) GetByID(ctx context.Context, msgID uint64) (*model.Message, error) {
	msg := &model.Message{}
	result := s.db.WithContext(ctx).First(msg, msgID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return msg, nil
}

// MarkRead 已读回执，条件更新保证幂等：已读消息重复标记不产生任何变更
func (s *messageRepoImpl) MarkRead(ctx context.Context, msgID uint64, receiverID uint64) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.Message{}).
		Where("id = ? AND receiver_id = ? AND is_read = ?", msgID, receiverID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkConversationRead 打开会话时批量标记收到的消息为已读
func (s *messageRepoImpl) MarkConversationRead(ctx context.Context, convID uint64, receiverID uint64) (int64, error) {
	result := s.db.WithContext(ctx).Model(&model.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = ?", convID, receiverID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (s *messageRepoImpl) CountUnread(ctx context.Context, convID uint64, receiverID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = ?", convID, receiverID, false).
		Count(&count).Error
	return count, err
}

func (s *messageRepoImpl) CountTotalUnread(ctx context.Context, receiverID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Message{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	return count, err
}

func (s *messageRepoImpl) GetLastMessage(ctx context.Context, convID uint64) (*model.Message, error) {
	msg := &model.Message{}
	result := s.db.WithContext(ctx).
		Where("conversation_id = ?", convID).
		Order("sent_at DESC, id DESC").
		First(msg)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return msg, nil
}
