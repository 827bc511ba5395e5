package api

import (
	"Amoria/internal/api/middleware"
	"Amoria/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.POST("/login/phone", group.UserHandler.LoginByPhone)
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/sms/send", group.UserHandler.SendSmsCode)
			userGroup.PUT("/password/forget", group.UserHandler.ForgetPassword)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
				authGroup.PUT("/password", group.UserHandler.ChangePassword)
				authGroup.PUT("/username", group.UserHandler.ChangeUsername)
				authGroup.PUT("/phone", group.UserHandler.ChangePhone)
				authGroup.POST("/cancel", group.UserHandler.CancelUser)
			}
		}

		profileGroup := apiGroup.Group("/profiles")
		{
			authOptGroup := profileGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/search", group.ProfileHandler.Search)
				authOptGroup.GET("/recent", group.ProfileHandler.Recent)
				authOptGroup.GET("/stats", group.ProfileHandler.Stats)
				authOptGroup.GET("/:user_id", group.ProfileHandler.GetByUserID)
			}

			authGroup := profileGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.ProfileHandler.Create)
				authGroup.GET("", group.ProfileHandler.GetSelf)
				authGroup.PUT("", group.ProfileHandler.Update)
			}
		}

		photoGroup := apiGroup.Group("/photos")
		photoGroup.Use(middleware.AuthMiddleware())
		{
			photoGroup.POST("", group.PhotoHandler.Upload)
			photoGroup.GET("", group.PhotoHandler.List)
			photoGroup.PUT("/:photo_id/primary", group.PhotoHandler.SetPrimary)
			photoGroup.DELETE("/:photo_id", group.PhotoHandler.Delete)
		}

		imGroup := apiGroup.Group("/im")
		{
			imGroup.GET("", group.WSHandler.Connect)
			authGroup := imGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/conversations", group.MessageHandler.StartConversation)
				authGroup.GET("/conversations", group.MessageHandler.GetConversationList)
				authGroup.GET("/conversations/:conversation_id", group.MessageHandler.OpenConversation)
				authGroup.POST("/send", group.MessageHandler.SendMessage)
				authGroup.POST("/read", group.MessageHandler.MarkAsRead)
				authGroup.GET("/unread", group.MessageHandler.GetUnreadCount)
			}
		}

		reportGroup := apiGroup.Group("/reports")
		reportGroup.Use(middleware.AuthMiddleware())
		{
			reportGroup.POST("", group.ReportHandler.Create)
			reportGroup.GET("/against/:user_id", group.ReportHandler.ListAgainst)
			reportGroup.PUT("/:report_id/resolve", group.ReportHandler.Resolve)
		}
	}

	return r
}
