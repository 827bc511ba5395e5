package repository

import (
	"Amoria/internal/model"
	"Amoria/internal/pkg/consts"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendTestMessage(t *testing.T, repo MessageRepo, conv *model.Conversation, senderID, receiverID uint64, content string) (*model.Message, bool) {
	t.Helper()
	msg := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	allowed, err := repo.CreateInConversation(context.Background(), conv, msg)
	require.NoError(t, err)
	return msg, allowed
}

func TestCreateInConversation(t *testing.T) {
	db := newTestDB(t)
	convRepo := NewConversationRepo(db)
	msgRepo := NewMessageRepo(db)
	limitRepo := NewMessageLimitRepo(db)
	ctx := context.Background()

	conv, _, err := convRepo.GetOrCreate(ctx, 1, 2)
	require.NoError(t, err)

	msg, allowed := sendTestMessage(t, msgRepo, conv, 1, 2, "привет, как дела?")
	require.True(t, allowed)
	assert.NotZero(t, msg.ID)
	assert.Equal(t, conv.ID, msg.ConversationID)
	assert.False(t, msg.IsRead)
	assert.Nil(t, msg.ReadAt)
	assert.False(t, msg.SentAt.IsZero())

	// 会话时间与限流计数随消息一起落库
	got, err := convRepo.GetByID(ctx, conv.ID)
	require.NoError(t, err)
	assert.False(t, got.LastMessageAt.Before(msg.SentAt))

	limit, err := limitRepo.Get(ctx, 1, 2)
	require.NoError(t, err)
	require.NotNil(t, limit)
	assert.Equal(t, 1, limit.UnansweredCount)
}

func TestUnansweredCap(t *testing.T) {
	db := newTestDB(t)
	convRepo := NewConversationRepo(db)
	msgRepo := NewMessageRepo(db)
	ctx := context.Background()

	conv, _, err := convRepo.GetOrCreate(ctx, 1, 2)
	require.NoError(t, err)

	for i := 0; i < consts.MaxUnansweredMessages; i++ {
		_, allowed := sendTestMessage(t, msgRepo, conv, 1, 2, fmt.Sprintf("сообщение без ответа %d", i))
		require.True(t, allowed, "message %d should pass", i)
	}

	// 第 11 条触发限流，消息不落库
	_, allowed := sendTestMessage(t, msgRepo, conv, 1, 2, "одно сообщение сверх лимита")
	assert.False(t, allowed)

	_, total, err := msgRepo.ListByConversation(ctx, conv.ID, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(consts.MaxUnansweredMessages), total)
}

func TestReplyResetsCounter(t *testing.T) {
	db := newTestDB(t)
	convRepo := NewConversationRepo(db)
	msgRepo := NewMessageRepo(db)
	limitRepo := NewMessageLimitRepo(db)
	ctx := context.Background()

	conv, _, err := convRepo.GetOrCreate(ctx, 1, 2)
	require.NoError(t, err)

	for i := 0; i < consts.MaxUnansweredMessages; i++ {
		_, allowed := sendTestMessage(t, msgRepo, conv, 1, 2, "сообщение ожидает ответа")
		require.True(t, allowed)
	}
	_, allowed := sendTestMessage(t, msgRepo, conv, 1, 2, "лимит уже исчерпан")
	require.False(t, allowed)

	// 对方回复，正向计数清零
	_, allowed = sendTestMessage(t, msgRepo, conv, 2, 1, "отвечаю на сообщение")
	require.True(t, allowed)

	limit, err := limitRepo.Get(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, limit.UnansweredCount)

	reverse, err := limitRepo.Get(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, reverse.UnansweredCount)

	_, allowed = sendTestMessage(t, msgRepo, conv, 1, 2, "снова можно писать")
	assert.True(t, allowed)
}

func TestHourWindowLazyReset(t *testing.T) {
	db := newTestDB(t)
	convRepo := NewConversationRepo(db)
	msgRepo := NewMessageRepo(db)
	limitRepo := NewMessageLimitRepo(db)
	ctx := context.Background()

	conv, _, err := convRepo.GetOrCreate(ctx, 1, 2)
	require.NoError(t, err)

	for i := 0; i < consts.MaxUnansweredMessages; i++ {
		_, allowed := sendTestMessage(t, msgRepo, conv, 1, 2, "исчерпываем лимит сообщений")
		require.True(t, allowed)
	}
	_, allowed := sendTestMessage(t, msgRepo, conv, 1, 2, "лимит уже исчерпан")
	require.False(t, allowed)

	// 模拟小时窗口过期
	limit, err := limitRepo.Get(ctx, 1, 2)
	require.NoError(t, err)
	err = db.Model(&model.MessageLimit{}).
		Where("id = ?", limit.ID).
		Update("hour_reset_at", time.Now().Add(-2*time.Hour)).Error
	require.NoError(t, err)

	_, allowed = sendTestMessage(t, msgRepo, conv, 1, 2, "после паузы снова можно")
	require.True(t, allowed)

	limit, err = limitRepo.Get(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, limit.UnansweredCount)
	assert.WithinDuration(t, time.Now(), limit.HourResetAt, time.Minute)
}

func TestListByConversationOrder(t *testing.T) {
	db := newTestDB(t)
	convRepo := NewConversationRepo(db)
	msgRepo := NewMessageRepo(db)
	ctx := context.Background()

	conv, _, err := convRepo.GetOrCreate(ctx, 1, 2)
	require.NoError(t, err)

	first, _ := sendTestMessage(t, msgRepo, conv, 1, 2, "первое сообщение диалога")
	second, _ := sendTestMessage(t, msgRepo, conv, 2, 1, "второе сообщение диалога")
	third, _ := sendTestMessage(t, msgRepo, conv, 1, 2, "третье сообщение диалога")

	messages, total, err := msgRepo.ListByConversation(ctx, conv.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, messages, 3)
	assert.Equal(t, first.ID, messages[0].ID)
	assert.Equal(t, second.ID, messages[1].ID)
	assert.Equal(t, third.ID, messages[2].ID)

	last, err := msgRepo.GetLastMessage(ctx, conv.ID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, third.ID, last.ID)
}

func TestMarkReadIdempotent(t *testing.T) {
	db := newTestDB(t)
	convRepo := NewConversationRepo(db)
	msgRepo := NewMessageRepo(db)
	ctx := context.Background()

	conv, _, err := convRepo.GetOrCreate(ctx, 1, 2)
	require.NoError(t, err)
	msg, _ := sendTestMessage(t, msgRepo, conv, 1, 2, "сообщение для прочтения")

	// 发送方不能标记自己发出的消息
	changed, err := msgRepo.MarkRead(ctx, msg.ID, 1)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = msgRepo.MarkRead(ctx, msg.ID, 2)
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := msgRepo.GetByID(ctx, msg.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRead)
	require.NotNil(t, got.ReadAt)

	// 重复标记无变更
	changed, err = msgRepo.MarkRead(ctx, msg.ID, 2)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestMarkConversationRead(t *testing.T) {
	db := newTestDB(t)
	convRepo := NewConversationRepo(db)
	msgRepo := NewMessageRepo(db)
	ctx := context.Background()

	conv, _, err := convRepo.GetOrCreate(ctx, 1, 2)
	require.NoError(t, err)
	other, _, err := convRepo.GetOrCreate(ctx, 3, 2)
	require.NoError(t, err)

	sendTestMessage(t, msgRepo, conv, 1, 2, "первое непрочитанное")
	sendTestMessage(t, msgRepo, conv, 1, 2, "второе непрочитанное")
	sendTestMessage(t, msgRepo, conv, 2, 1, "встречное сообщение")
	sendTestMessage(t, msgRepo, other, 3, 2, "из другого диалога")

	unread, err := msgRepo.CountUnread(ctx, conv.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	total, err := msgRepo.CountTotalUnread(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	marked, err := msgRepo.MarkConversationRead(ctx, conv.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), marked)

	unread, err = msgRepo.CountUnread(ctx, conv.ID, 2)
	require.NoError(t, err)
	assert.Zero(t, unread)

	// 用户 1 收到的消息与其它会话不受影响
	unread, err = msgRepo.CountUnread(ctx, conv.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	total, err = msgRepo.CountTotalUnread(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestMessageGetByIDMissing(t *testing.T) {
	db := newTestDB(t)
	msgRepo := NewMessageRepo(db)

	msg, err := msgRepo.GetByID(context.Background(), 123)
	require.NoError(t, err)
	assert.Nil(t, msg)

	last, err := msgRepo.GetLastMessage(context.Background(), 123)
	require.NoError(t, err)
	assert.Nil(t, last)
}
