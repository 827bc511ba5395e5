package repository

import (
	"Amoria/internal/model"
	"Amoria/internal/pkg/consts"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type MessageLimitRepo interface {
	Get(ctx context.Context, senderID, receiverID uint64) (*model.MessageLimit, error)
	GetOrCreate(ctx context.Context, senderID, receiverID uint64) (*model.MessageLimit, error)
	ResetUnanswered(ctx context.Context, senderID, receiverID uint64) error
	DeleteIdle(ctx context.Context, idleSince time.Time) (int64, error)
}

type messageLimitRepoImpl struct {
	db *gorm.DB
}

func NewMessageLimitRepo(db *gorm.DB) MessageLimitRepo {
	return &messageLimitRepoImpl{db: db}
}

func (s *messageLimitRepoImpl) Get(ctx context.Context, senderID, receiverID uint64) (*model.MessageLimit, error) {
	limit := &model.MessageLimit{}
	result := s.db.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		First(limit)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return limit, nil
}

func (s *messageLimitRepoImpl) GetOrCreate(ctx context.Context, senderID, receiverID uint64) (*model.MessageLimit, error) {
	return getOrCreateLimitTx(s.db.WithContext(ctx), senderID, receiverID)
}

// ResetUnanswered 清零单方向的未回复计数，收到回复时调用
func (s *messageLimitRepoImpl) ResetUnanswered(ctx context.Context, senderID, receiverID uint64) error {
	return s.db.WithContext(ctx).Model(&model.MessageLimit{}).
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		Update("unanswered_count", 0).Error
}

// DeleteIdle 清理长期无活动的限流记录，由定时任务调用
func (s *messageLimitRepoImpl) DeleteIdle(ctx context.Context, idleSince time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("last_message_at < ?", idleSince).
		Delete(&model.MessageLimit{})
	return result.RowsAffected, result.Error
}

// getOrCreateLimitTx 获取或创建限流记录，可在事务内复用
// 并发创建撞到唯一索引时重读既有记录
func getOrCreateLimitTx(tx *gorm.DB, senderID, receiverID uint64) (*model.MessageLimit, error) {
	var limit model.MessageLimit
	err := tx.Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).First(&limit).Error
	if err == nil {
		return &limit, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	limit = model.MessageLimit{
		SenderID:      senderID,
		ReceiverID:    receiverID,
		LastMessageAt: now,
		HourResetAt:   now,
	}
	err = tx.Create(&limit).Error
	if err == nil {
		return &limit, nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = tx.Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).First(&limit).Error
		return &limit, err
	}
	return nil, err
}

// consumeLimitTx 限流核心逻辑，必须在发送消息的事务内执行
// 1. 小时窗口懒惰过期：距上次窗口起点超过一小时则清零计数
// 2. 条件自增：只有计数未达上限的行才会被更新，RowsAffected 为 0 即触发限流
func consumeLimitTx(tx *gorm.DB, senderID, receiverID uint64, now time.Time) (bool, error) {
	limit, err := getOrCreateLimitTx(tx, senderID, receiverID)
	if err != nil {
		return false, err
	}

	if now.Sub(limit.HourResetAt) >= time.Hour {
		err = tx.Model(&model.MessageLimit{}).
			Where("id = ?", limit.ID).
			Updates(map[string]interface{}{
				"unanswered_count": 0,
				"hour_reset_at":    now,
			}).Error
		if err != nil {
			return false, err
		}
	}

	result := tx.Model(&model.MessageLimit{}).
		Where("id = ? AND unanswered_count < ?", limit.ID, consts.MaxUnansweredMessages).
		Updates(map[string]interface{}{
			"unanswered_count": gorm.Expr("unanswered_count + 1"),
			"last_message_at":  now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
