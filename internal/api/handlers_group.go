package api

import "Amoria/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler    *handler.UserHandler
	ProfileHandler *handler.ProfileHandler
	PhotoHandler   *handler.PhotoHandler
	MessageHandler *handler.MessageHandler
	ReportHandler  *handler.ReportHandler
	WSHandler      *handler.WsHandler
}
