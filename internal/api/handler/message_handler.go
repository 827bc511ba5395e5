package handler

import (
	"Amoria/internal/api/dto"
	"Amoria/internal/pkg/response"
	"Amoria/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageSvc service.MessageService
	profileSvc service.ProfileService
}

func NewMessageHandler(messageSvc service.MessageService, profileSvc service.ProfileService) *MessageHandler {
	return &MessageHandler{
		messageSvc: messageSvc,
		profileSvc: profileSvc,
	}
}

// StartConversation 向目标用户发起会话，带内容时同时发送首条消息
func (s *MessageHandler) StartConversation(c *gin.Context) {
	var req dto.StartConversationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")
	result, err := s.messageSvc.StartConversation(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	s.profileSvc.TouchLastOnline(c.Request.Context(), userID)
	response.Success(c, result)
}

// SendMessage 在既有会话中发送消息
func (s *MessageHandler) SendMessage(c *gin.Context) {
	var req dto.SendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")
	msg, err := s.messageSvc.SendMessage(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	s.profileSvc.TouchLastOnline(c.Request.Context(), userID)
	response.Success(c, msg)
}

// OpenConversation 打开会话，拉取消息并标记已读
func (s *MessageHandler) OpenConversation(c *gin.Context) {
	convID, err := strconv.ParseUint(c.Param("conversation_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	userID := c.GetUint64("user_id")
	result, err := s.messageSvc.OpenConversation(c.Request.Context(), userID, convID, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// MarkAsRead 标记单条消息为已读
func (s *MessageHandler) MarkAsRead(c *gin.Context) {
	var req dto.MarkAsReadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")
	if err := s.messageSvc.MarkMessageRead(c.Request.Context(), userID, req.MessageID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetConversationList 获取会话列表
func (s *MessageHandler) GetConversationList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	userID := c.GetUint64("user_id")

	result, err := s.messageSvc.GetConversationList(c.Request.Context(), userID, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetUnreadCount 获取全局未读数
func (s *MessageHandler) GetUnreadCount(c *gin.Context) {
	userID := c.GetUint64("user_id")
	result, err := s.messageSvc.GetUnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
