package service

import (
	"Amoria/internal/api/config"
	"Amoria/internal/api/dto"
	"Amoria/internal/model"
	"Amoria/internal/pkg/mongo"
	"Amoria/internal/pkg/util"
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// 照片 URL 拼装读取全局配置，测试里给个空实例兜底
	if config.Cfg == nil {
		config.Cfg = &config.Config{}
	}

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Photo{},
		&model.Conversation{},
		&model.Message{},
		&model.MessageLimit{},
		&model.Report{},
	)
	require.NoError(t, err)

	return db
}

// createTestUser 创建用户及激活的资料，返回 UID
func createTestUser(t *testing.T, db *gorm.DB, username, nickname string) uint64 {
	t.Helper()

	user := &model.User{Username: util.PtrString(username)}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&model.Profile{
		UserID:   user.ID,
		Nickname: nickname,
		Age:      25,
		Height:   170,
		Weight:   60,
		Gender:   "female",
		City:     "Москва",
		IsActive: true,
	}).Error)
	return user.ID
}

// captureNotifier 收集推送事件，替代 Redis 通道
type captureNotifier struct {
	userIDs []uint64
	events  []*dto.WSPushDTO
}

func (n *captureNotifier) Push(_ context.Context, userID uint64, event *dto.WSPushDTO) {
	n.userIDs = append(n.userIDs, userID)
	n.events = append(n.events, event)
}

// reset 两个切片一起清，接收者与事件按下标一一对应
func (n *captureNotifier) reset() {
	n.userIDs = nil
	n.events = nil
}

// captureProducer 收集审核事件，替代 Kafka 通道
type captureProducer struct {
	events []*mongo.ModerationEvent
}

func (p *captureProducer) SendModerationEvent(_ context.Context, event *mongo.ModerationEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *captureProducer) Close() error { return nil }
