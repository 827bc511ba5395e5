package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ModerationEventRepo interface {
	SaveEvent(ctx context.Context, event *ModerationEvent) error
	ListSince(ctx context.Context, since time.Time, limit int) ([]*ModerationEvent, error)
	CountSince(ctx context.Context, since time.Time) (map[string]int64, error)
}

type moderationEventRepoImpl struct {
	col *mongo.Collection
}

func NewModerationEventRepo(db *mongo.Database) ModerationEventRepo {
	return &moderationEventRepoImpl{
		col: db.Collection("moderation_events"),
	}
}

// SaveEvent 将审核事件存入 MongoDB
func (s *moderationEventRepoImpl) SaveEvent(ctx context.Context, event *ModerationEvent) error {
	if event.RegisteredAt.IsZero() {
		event.RegisteredAt = time.Now()
	}
	_, err := s.col.InsertOne(ctx, event)
	return err
}

// ListSince 按时间线拉取指定时间之后的事件，最旧的在前
func (s *moderationEventRepoImpl) ListSince(ctx context.Context, since time.Time, limit int) ([]*ModerationEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	filter := bson.M{"occurred_at": bson.M{"$gte": since}}

	findOptions := options.Find().
		SetSort(bson.D{
			{Key: "occurred_at", Value: 1},
			{Key: "_id", Value: 1},
		}).
		SetLimit(int64(limit))

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	events := make([]*ModerationEvent, 0)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}

	return events, nil
}

// CountSince 按事件类型统计指定时间之后的事件数量，供每日摘要任务使用
func (s *moderationEventRepoImpl) CountSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	matchStage := bson.D{{Key: "$match", Value: bson.M{"occurred_at": bson.M{"$gte": since}}}}
	groupStage := bson.D{{Key: "$group", Value: bson.M{
		"_id":   "$event_type",
		"count": bson.M{"$sum": 1},
	}}}

	cursor, err := s.col.Aggregate(ctx, mongo.Pipeline{matchStage, groupStage})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var rows []struct {
		EventType string `bson:"_id"`
		Count     int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.EventType] = row.Count
	}
	return counts, nil
}
