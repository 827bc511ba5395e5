package kafka

import (
	"Amoria/internal/api/config"
	"Amoria/internal/pkg/mongo"
	"context"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// EventProducer 审核事件生产者
// 业务侧只负责投递事件，落库由消费端异步完成
type EventProducer interface {
	SendModerationEvent(ctx context.Context, event *mongo.ModerationEvent) error
	Close() error
}

type eventProducerImpl struct {
	producer sarama.SyncProducer
	topic    string
}

// NewEventProducer 构造函数
func NewEventProducer(cfg *config.Config) (EventProducer, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &eventProducerImpl{
		producer: producer,
		topic:    cfg.KafkaModerate.Topic,
	}, nil
}

// SendModerationEvent 将审核事件发送到 Kafka
// 以触发者 UID 作为 Key，保证同一用户的事件有序
func (s *eventProducerImpl) SendModerationEvent(_ context.Context, event *mongo.ModerationEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(event.ActorID, 10)),
		Value: sarama.ByteEncoder(value),
	}

	partition, offset, err := s.producer.SendMessage(msg)
	if err != nil {
		log.Error("send moderation event error", "err", err, "type", event.EventType)
		return err
	}

	log.Debug("moderation event sent", "type", event.EventType, "partition", partition, "offset", offset)
	return nil
}

func (s *eventProducerImpl) Close() error {
	return s.producer.Close()
}
