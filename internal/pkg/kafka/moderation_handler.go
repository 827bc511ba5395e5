package kafka

import (
	"Amoria/internal/pkg/mongo"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// ModerationHandler 消费审核事件并落库到 MongoDB
type ModerationHandler struct {
	eventRepo mongo.ModerationEventRepo
}

func NewModerationHandler(eventRepo mongo.ModerationEventRepo) *ModerationHandler {
	return &ModerationHandler{
		eventRepo: eventRepo,
	}
}

func (s *ModerationHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("moderation consumer setup")
	return nil
}

func (s *ModerationHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("moderation consumer cleanup")
	return nil
}

func (s *ModerationHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-moderation consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("process batch error", "err", err)
		return err
	}
	log.Info("topic-moderation consume claim end")
	return nil
}

func (s *ModerationHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var event mongo.ModerationEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		// 无法解析的消息直接丢弃，避免卡死整个分区
		log.Error("unmarshal moderation event error", "err", err)
		return nil
	}

	// 入库时重置 ID，由 MongoDB 生成
	event.ID = ""
	return s.eventRepo.SaveEvent(ctx, &event)
}
