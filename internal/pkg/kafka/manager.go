package kafka

import (
	"Amoria/internal/api/config"
	"Amoria/internal/pkg/mongo"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	moderationConsumer sarama.ConsumerGroup
	moderationHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	eventRepo mongo.ModerationEventRepo,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	moderationConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaModerate.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	moderationHandler := NewModerationHandler(eventRepo)

	return &ConsumerManager{
		moderationConsumer: moderationConsumer,
		moderationHandler:  moderationHandler,
	}, nil
}

// Start 启动所有消费者
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	// 启动 Moderation Consumer
	go func() {
		topic := cfg.KafkaModerate.Topic
		log.Info("Moderation consumer started", "topic", topic)
		for {
			if err := m.moderationConsumer.Consume(ctx, []string{topic}, m.moderationHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	err := m.moderationConsumer.Close()
	if err != nil {
		log.Error("Failed to close moderation consumer", "err", err)
	}

	return nil
}
