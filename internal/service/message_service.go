package service

import (
	"Amoria/internal/api/dto"
	"Amoria/internal/model"
	"Amoria/internal/pkg/cache"
	"Amoria/internal/pkg/consts"
	"Amoria/internal/pkg/kafka"
	"Amoria/internal/pkg/mongo"
	"Amoria/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const (
	conversationCacheTTL = 3 * time.Minute
	unreadCacheTTL       = 1 * time.Minute
)

// blockedWords 消息内容黑名单，命中即拦截
// 面向俄语市场的站点，保留俄语联系方式关键词
var blockedWords = []string{
	"telegram", "whatsapp", "viber", "skype",
	"www.", "http", ".com", ".ru", ".net",
	"phone", "телефон", "номер", "звони", "звоните",
}

// Notifier 在线推送端口，消息服务不关心推送通道的实现
type Notifier interface {
	Push(ctx context.Context, userID uint64, event *dto.WSPushDTO)
}

type MessageService interface {
	StartConversation(ctx context.Context, userID uint64, req *dto.StartConversationReq) (*dto.StartConversationDTO, error)
	SendMessage(ctx context.Context, userID uint64, req *dto.SendMessageReq) (*dto.MessageDTO, error)
	OpenConversation(ctx context.Context, userID uint64, convID uint64, page int) (*dto.MessagePageDTO, error)
	MarkMessageRead(ctx context.Context, userID uint64, msgID uint64) error
	GetConversationList(ctx context.Context, userID uint64, page int) (*dto.ConversationPageDTO, error)
	GetUnreadCount(ctx context.Context, userID uint64) (*dto.UnreadCountDTO, error)
}

type MessageServiceImpl struct {
	convRepo    repository.ConversationRepo
	msgRepo     repository.MessageRepo
	limitRepo   repository.MessageLimitRepo
	userRepo    repository.UserRepo
	profileRepo repository.ProfileRepo
	store       cache.Store
	producer    kafka.EventProducer
	notifier    Notifier
}

func NewMessageService(
	convRepo repository.ConversationRepo,
	msgRepo repository.MessageRepo,
	limitRepo repository.MessageLimitRepo,
	userRepo repository.UserRepo,
	profileRepo repository.ProfileRepo,
	store cache.Store,
	producer kafka.EventProducer,
	notifier Notifier,
) MessageService {
	return &MessageServiceImpl{
		convRepo:    convRepo,
		msgRepo:     msgRepo,
		limitRepo:   limitRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		store:       store,
		producer:    producer,
		notifier:    notifier,
	}
}

// StartConversation 向目标用户发起会话，可顺带发送首条消息
// 会话不存在则创建，已存在则直接复用
func (s *MessageServiceImpl) StartConversation(ctx context.Context, userID uint64, req *dto.StartConversationReq) (*dto.StartConversationDTO, error) {
	if userID == req.TargetUserID {
		return nil, ErrMessageSelf
	}

	target, err := s.userRepo.GetUserById(ctx, req.TargetUserID)
	if err != nil {
		return nil, err
	}
	if target == nil || target.IsDelete || target.IsBan {
		return nil, ErrTargetUserInvalid
	}
	if target.Profile == nil {
		return nil, ErrProfileNotFound
	}
	if !target.Profile.IsActive {
		return nil, ErrProfileInactive
	}

	// 不带内容只定位会话，先确认限流额度再开
	if strings.TrimSpace(req.Content) == "" {
		if err = s.checkLimit(ctx, userID, req.TargetUserID); err != nil {
			return nil, err
		}
		conv, _, err := s.convRepo.GetOrCreate(ctx, userID, req.TargetUserID)
		if err != nil {
			return nil, err
		}
		return &dto.StartConversationDTO{ConversationID: conv.ID}, nil
	}

	content, err := s.validateContent(ctx, userID, req.TargetUserID, req.Content)
	if err != nil {
		return nil, err
	}

	conv, _, err := s.convRepo.GetOrCreate(ctx, userID, req.TargetUserID)
	if err != nil {
		return nil, err
	}

	msg, err := s.deliver(ctx, conv, userID, req.TargetUserID, content)
	if err != nil {
		return nil, err
	}
	return &dto.StartConversationDTO{ConversationID: conv.ID, Message: msg}, nil
}

// checkLimit 只读预检发送方向的限流额度，不消耗计数
// 计数已满但小时窗口已过期时视为可发，真正清零发生在发送事务里
func (s *MessageServiceImpl) checkLimit(ctx context.Context, senderID, receiverID uint64) error {
	limit, err := s.limitRepo.Get(ctx, senderID, receiverID)
	if err != nil {
		return err
	}
	if limit == nil {
		return nil
	}
	if limit.UnansweredCount >= consts.MaxUnansweredMessages &&
		time.Since(limit.HourResetAt) < time.Hour {
		return ErrMessageLimit
	}
	return nil
}

// SendMessage 在既有会话中发送消息
func (s *MessageServiceImpl) SendMessage(ctx context.Context, userID uint64, req *dto.SendMessageReq) (*dto.MessageDTO, error) {
	conv, err := s.convRepo.GetByID(ctx, req.ConversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}
	if !conv.HasParticipant(userID) {
		return nil, UnauthorizedError
	}

	receiverID := conv.OtherParticipant(userID)
	content, err := s.validateContent(ctx, userID, receiverID, req.Content)
	if err != nil {
		return nil, err
	}

	return s.deliver(ctx, conv, userID, receiverID, content)
}

// OpenConversation 打开会话：拉取消息并将收到的消息标记为已读
func (s *MessageServiceImpl) OpenConversation(ctx context.Context, userID uint64, convID uint64, page int) (*dto.MessagePageDTO, error) {
	conv, err := s.convRepo.GetByID(ctx, convID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}
	if !conv.HasParticipant(userID) {
		return nil, UnauthorizedError
	}

	// 先标记后拉取，返回的消息自带真实的已读时间
	marked, err := s.msgRepo.MarkConversationRead(ctx, convID, userID)
	if err != nil {
		return nil, err
	}
	if marked > 0 {
		s.invalidateUnread(ctx, userID)
		s.notify(ctx, conv.OtherParticipant(userID), &dto.WSPushDTO{
			Type:           "read_receipt",
			ConversationID: convID,
			ReaderID:       userID,
		})
	}

	messages, total, err := s.msgRepo.ListByConversation(ctx, convID, page, consts.MessagePageSize)
	if err != nil {
		return nil, err
	}

	result := &dto.MessagePageDTO{
		ConversationID: convID,
		PeerID:         conv.OtherParticipant(userID),
		Total:          total,
		Page:           maxInt(page, 1),
		Messages:       toMessageDTOs(messages),
	}
	return result, nil
}

// MarkMessageRead 标记单条消息为已读，幂等
func (s *MessageServiceImpl) MarkMessageRead(ctx context.Context, userID uint64, msgID uint64) error {
	msg, err := s.msgRepo.GetByID(ctx, msgID)
	if err != nil {
		return err
	}
	if msg == nil {
		return ErrParamInvalid
	}
	if msg.ReceiverID != userID {
		return UnauthorizedError
	}

	changed, err := s.msgRepo.MarkRead(ctx, msgID, userID)
	if err != nil {
		return err
	}
	if changed {
		s.invalidateUnread(ctx, userID)
		s.notify(ctx, msg.SenderID, &dto.WSPushDTO{
			Type:           "read_receipt",
			ConversationID: msg.ConversationID,
			ReaderID:       userID,
		})
	}
	return nil
}

// GetConversationList 会话列表，首页短时缓存
func (s *MessageServiceImpl) GetConversationList(ctx context.Context, userID uint64, page int) (*dto.ConversationPageDTO, error) {
	cacheKey := ""
	if page <= 1 {
		cacheKey = consts.ConversationListKey + formatUint(userID)
		if cached, err := s.store.Get(ctx, cacheKey); err == nil && cached != "" {
			result := &dto.ConversationPageDTO{}
			if err = json.Unmarshal([]byte(cached), result); err == nil {
				return result, nil
			}
		}
	}

	convs, total, err := s.convRepo.ListForUser(ctx, userID, page, consts.MessagePageSize)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ConversationDTO, 0, len(convs))
	for _, conv := range convs {
		peerID := conv.OtherParticipant(userID)

		// 对手方资料已删除的会话不进列表
		peer, err := s.profileRepo.GetByUserID(ctx, peerID)
		if err != nil {
			return nil, err
		}
		if peer == nil {
			continue
		}

		item := &dto.ConversationDTO{
			ConversationID: conv.ID,
			PeerID:         peerID,
			PeerNickname:   peer.Nickname,
			LastMessageAt:  conv.LastMessageAt,
		}

		lastMsg, err := s.msgRepo.GetLastMessage(ctx, conv.ID)
		if err != nil {
			return nil, err
		}
		if lastMsg != nil {
			item.LastMsgContent = lastMsg.Content
			item.LastSenderID = lastMsg.SenderID
		}

		item.UnreadCount, err = s.msgRepo.CountUnread(ctx, conv.ID, userID)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	result := &dto.ConversationPageDTO{
		Total:         total,
		Page:          maxInt(page, 1),
		Conversations: items,
	}

	if cacheKey != "" {
		if data, err := json.Marshal(result); err == nil {
			_ = s.store.Set(ctx, cacheKey, string(data), conversationCacheTTL)
		}
	}
	return result, nil
}

func (s *MessageServiceImpl) GetUnreadCount(ctx context.Context, userID uint64) (*dto.UnreadCountDTO, error) {
	key := consts.UnreadCountKey + formatUint(userID)
	if cached, err := s.store.Get(ctx, key); err == nil && cached != "" {
		result := &dto.UnreadCountDTO{}
		if err = json.Unmarshal([]byte(cached), result); err == nil {
			return result, nil
		}
	}

	total, err := s.msgRepo.CountTotalUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &dto.UnreadCountDTO{Total: total}
	if data, err := json.Marshal(result); err == nil {
		_ = s.store.Set(ctx, key, string(data), unreadCacheTTL)
	}
	return result, nil
}

// deliver 落库并做缓存失效与在线推送
func (s *MessageServiceImpl) deliver(ctx context.Context, conv *model.Conversation, senderID, receiverID uint64, content string) (*dto.MessageDTO, error) {
	msg := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}

	allowed, err := s.msgRepo.CreateInConversation(ctx, conv, msg)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrMessageLimit
	}

	s.invalidateConversationList(ctx, senderID)
	s.invalidateConversationList(ctx, receiverID)
	s.invalidateUnread(ctx, receiverID)

	msgDTO := toMessageDTO(msg)
	s.notify(ctx, receiverID, &dto.WSPushDTO{
		Type:           "message",
		ConversationID: conv.ID,
		Message:        msgDTO,
	})
	return msgDTO, nil
}

// validateContent 消息内容校验：长度、黑名单、重复度
func (s *MessageServiceImpl) validateContent(ctx context.Context, senderID, receiverID uint64, content string) (string, error) {
	content = strings.TrimSpace(content)

	runes := []rune(content)
	if len(runes) < consts.MessageMinLength {
		return "", ErrMessageTooShort
	}
	if len(runes) > consts.MessageMaxLength {
		return "", ErrMessageTooLong
	}

	lower := strings.ToLower(content)
	for _, word := range blockedWords {
		if strings.Contains(lower, word) {
			s.emitBlocked(ctx, senderID, receiverID, word, content)
			return "", ErrMessageBlocked
		}
	}

	// 去重字符占比过低视为灌水内容
	distinct := make(map[rune]struct{}, len(runes))
	for _, r := range runes {
		distinct[r] = struct{}{}
	}
	if float64(len(distinct))/float64(len(runes)) < 0.3 {
		return "", ErrMessageRepetitive
	}

	return content, nil
}

// emitBlocked 投递内容拦截事件，失败只记日志不影响主流程
func (s *MessageServiceImpl) emitBlocked(ctx context.Context, senderID, receiverID uint64, rule, content string) {
	if s.producer == nil {
		return
	}

	// 按字符截断，俄语内容按字节切会产生坏的 UTF-8
	if runes := []rune(content); len(runes) > 200 {
		content = string(runes[:200])
	}
	event := &mongo.ModerationEvent{
		EventType:  mongo.EventContentBlocked,
		ActorID:    senderID,
		TargetID:   receiverID,
		Reason:     rule,
		Content:    content,
		OccurredAt: time.Now(),
	}
	if err := s.producer.SendModerationEvent(ctx, event); err != nil {
		log.ErrorContext(ctx, "emit content blocked event failed", "err", err)
	}
}

func (s *MessageServiceImpl) notify(ctx context.Context, userID uint64, event *dto.WSPushDTO) {
	if s.notifier == nil {
		return
	}
	s.notifier.Push(ctx, userID, event)
}

func (s *MessageServiceImpl) invalidateConversationList(ctx context.Context, userID uint64) {
	_ = s.store.Delete(ctx, consts.ConversationListKey+formatUint(userID))
}

func (s *MessageServiceImpl) invalidateUnread(ctx context.Context, userID uint64) {
	_ = s.store.Delete(ctx, consts.UnreadCountKey+formatUint(userID))
}

func toMessageDTO(msg *model.Message) *dto.MessageDTO {
	return &dto.MessageDTO{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		ReceiverID:     msg.ReceiverID,
		Content:        msg.Content,
		SentAt:         msg.SentAt,
		IsRead:         msg.IsRead,
		ReadAt:         msg.ReadAt,
	}
}

func toMessageDTOs(messages []*model.Message) []*dto.MessageDTO {
	result := make([]*dto.MessageDTO, 0, len(messages))
	for _, msg := range messages {
		result = append(result, toMessageDTO(msg))
	}
	return result
}
