package repository

import (
	"Amoria/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type ConversationRepo interface {
	GetOrCreate(ctx context.Context, userID, targetID uint64) (*model.Conversation, bool, error)
	GetByID(ctx context.Context, convID uint64) (*model.Conversation, error)
	GetByPairKey(ctx context.Context, pairKey string) (*model.Conversation, error)
	ListForUser(ctx context.Context, userID uint64, page, pageSize int) ([]*model.Conversation, int64, error)
	Touch(ctx context.Context, convID uint64, at time.Time) error
}

type conversationRepoImpl struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepo {
	return &conversationRepoImpl{db: db}
}

// GetOrCreate 按无序用户对获取或创建会话
// pair_key 上的唯一索引兜底并发创建：撞到重复键说明对方先建成，重读即可
func (s *conversationRepoImpl) GetOrCreate(ctx context.Context, userID, targetID uint64) (*model.Conversation, bool, error) {
	pairKey := model.ConversationPairKey(userID, targetID)

	var conv model.Conversation
	err := s.db.WithContext(ctx).Where("pair_key = ?", pairKey).First(&conv).Error
	if err == nil {
		return &conv, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	conv = model.Conversation{
		ParticipantA:  userID,
		ParticipantB:  targetID,
		PairKey:       pairKey,
		LastMessageAt: time.Now(),
	}
	err = s.db.WithContext(ctx).Create(&conv).Error
	if err == nil {
		return &conv, true, nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = s.db.WithContext(ctx).Where("pair_key = ?", pairKey).First(&conv).Error
		return &conv, false, err
	}
	return nil, false, err
}

func (s *conversationRepoImpl) GetByID(ctx context.Context, convID uint64) (*model.Conversation, error) {
	conv := &model.Conversation{}
	result := s.db.WithContext(ctx).First(conv, convID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return conv, nil
}

func (s *conversationRepoImpl) GetByPairKey(ctx context.Context, pairKey string) (*model.Conversation, error) {
	conv := &model.Conversation{}
	result := s.db.WithContext(ctx).Where("pair_key = ?", pairKey).First(conv)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return conv, nil
}

// ListForUser 用户的会话列表，按最近消息时间倒序
func (s *conversationRepoImpl) ListForUser(ctx context.Context, userID uint64, page, pageSize int) ([]*model.Conversation, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("participant_a = ? OR participant_b = ?", userID, userID)

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

	convs := make([]*model.Conversation, 0)
	err := query.
		Order("last_message_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&convs).Error
	if err != nil {
		return nil, 0, err
	}

	return convs, total, nil
}

func (s *conversationRepoImpl) Touch(ctx context.Context, convID uint64, at time.Time) error {
	return s.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", convID).
		Update("last_message_at", at).Error
}
