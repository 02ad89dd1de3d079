package router

import (
	"time"

	"tmadmin/internal/database"
	"tmadmin/internal/handlers"
	"tmadmin/internal/middleware"
	"tmadmin/internal/services"
	"tmadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

// SetupRouter 设置路由
func SetupRouter(webhookService *services.WebhookService) *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS())

	registerRoutes(router, webhookService)
	return router
}

// 注册所有路由
func registerRoutes(router *gin.Engine, webhookService *services.WebhookService) {
	db := database.GetDB()
	auth := middleware.NewAuthMiddleware(db)

	userService := services.NewUserService(db)

	// 对外Webhook接收端点（腾讯会议回调，不走登录认证）
	webhookHandler := handlers.NewWebhookHandler(webhookService)
	router.POST("/webhook/:appId", webhookHandler.Ingest)

	// API路由组
	api := router.Group("/api/v1")
	{
		// 健康检查接口
		api.GET("/health", healthCheck)
		api.GET("/ping", ping)

		// JWT认证路由（无需认证）
		authHandler := handlers.NewAuthHandler(userService)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.RefreshToken)
			authGroup.GET("/me", auth.RequireLogin(), authHandler.GetProfile)
		}

		// WebSocket事件推送（token走查询参数）
		wsHandler := handlers.NewWebSocketHandler()
		api.GET("/ws/webhook-events", wsHandler.EventStream)

		// 租户配置（仅管理员）
		configHandler := handlers.NewConfigHandler(services.NewConfigService(db))
		configs := api.Group("/configs", auth.RequireLogin(), auth.RequireAdmin())
		{
			configs.POST("", configHandler.Create)
			configs.GET("", configHandler.List)
			configs.GET("/stats", configHandler.GetStats)
			configs.GET("/:id", configHandler.GetByID)
			configs.PUT("/:id", configHandler.Update)
			configs.DELETE("/:id", configHandler.Delete)
			configs.POST("/:id/enable", configHandler.Enable)
			configs.POST("/:id/disable", configHandler.Disable)
			configs.POST("/:id/test-connection", configHandler.TestConnection)
		}

		// Webhook事件管理
		events := api.Group("/webhook-events", auth.RequireLogin())
		{
			events.GET("", webhookHandler.List)
			events.GET("/stats", webhookHandler.GetStats)
			events.GET("/:id", webhookHandler.GetByID)
			events.GET("/:id/payload", webhookHandler.GetPayload)
			events.POST("/:id/retry", webhookHandler.Retry)
		}

		// 会议
		meetingHandler := handlers.NewMeetingHandler(services.NewMeetingService(db))
		meetings := api.Group("/meetings", auth.RequireLogin())
		{
			meetings.POST("", meetingHandler.Create)
			meetings.GET("", meetingHandler.List)
			meetings.GET("/stats", meetingHandler.GetStats)
			meetings.GET("/:id", meetingHandler.GetByID)
			meetings.PUT("/:id", meetingHandler.Update)
			meetings.DELETE("/:id", meetingHandler.Delete)

			// 状态流转
			meetings.POST("/:id/start", meetingHandler.Start)
			meetings.POST("/:id/end", meetingHandler.End)
			meetings.POST("/:id/cancel", meetingHandler.Cancel)

			// 参会人与访客
			meetings.POST("/:id/attendees", meetingHandler.AddAttendee)
			meetings.DELETE("/:id/attendees/:attendeeId", meetingHandler.RemoveAttendee)
			meetings.POST("/:id/guests", meetingHandler.AddGuest)
			meetings.DELETE("/:id/guests/:guestId", meetingHandler.RemoveGuest)

			// 角色分配
			meetings.POST("/:id/roles", meetingHandler.AssignRole)
			meetings.POST("/:id/roles/:assignmentId/revoke", meetingHandler.RevokeRole)

			// 布局与背景
			meetings.POST("/:id/layout", meetingHandler.ApplyLayout)
			meetings.POST("/:id/background", meetingHandler.ApplyBackground)

			// 投票与文档
			meetings.POST("/:id/votes", meetingHandler.CreateVote)
			meetings.POST("/:id/documents", meetingHandler.CreateDocument)
		}

		// 部门
		departmentHandler := handlers.NewDepartmentHandler(services.NewDepartmentService(db))
		departments := api.Group("/departments", auth.RequireLogin())
		{
			departments.POST("", departmentHandler.Create)
			departments.GET("", departmentHandler.List)
			departments.GET("/tree", departmentHandler.GetTree)
			departments.GET("/:id", departmentHandler.GetByID)
			departments.PUT("/:id", departmentHandler.Update)
			departments.POST("/:id/move", departmentHandler.Move)
			departments.DELETE("/:id", departmentHandler.Delete)
		}

		// 用户
		userHandler := handlers.NewUserHandler(userService)
		users := api.Group("/users", auth.RequireLogin())
		{
			users.POST("", auth.RequireAdmin(), userHandler.Create)
			users.GET("", userHandler.List)
			users.GET("/:id", userHandler.GetByID)
			users.PUT("/:id", userHandler.Update)
			users.DELETE("/:id", auth.RequireAdmin(), userHandler.Delete)
			users.POST("/:id/change-password", userHandler.ChangePassword)
			users.POST("/:id/activate", auth.RequireAdmin(), userHandler.Activate)
			users.POST("/:id/deactivate", auth.RequireAdmin(), userHandler.Deactivate)
			users.POST("/:id/disable", auth.RequireAdmin(), userHandler.Disable)

			// 角色分配
			users.GET("/:id/roles", userHandler.GetRoles)
			users.POST("/:id/roles", auth.RequireAdmin(), userHandler.AssignRole)
			users.POST("/:id/roles/:assignmentId/revoke", auth.RequireAdmin(), userHandler.RevokeRole)
		}

		// 会议室（旧版目录）
		roomHandler := handlers.NewRoomHandler(services.NewRoomService(db))
		rooms := api.Group("/rooms", auth.RequireLogin())
		{
			rooms.POST("", roomHandler.Create)
			rooms.GET("", roomHandler.List)
			rooms.GET("/:id", roomHandler.GetByID)
			rooms.PUT("/:id", roomHandler.Update)
			rooms.DELETE("/:id", roomHandler.Delete)
		}

		// 会议室（新版目录，含设备管理）
		meetingRoomHandler := handlers.NewMeetingRoomHandler(services.NewMeetingRoomService(db))
		meetingRooms := api.Group("/meeting-rooms", auth.RequireLogin())
		{
			meetingRooms.POST("", meetingRoomHandler.Create)
			meetingRooms.GET("", meetingRoomHandler.List)
			meetingRooms.GET("/:id", meetingRoomHandler.GetByID)
			meetingRooms.PUT("/:id", meetingRoomHandler.Update)
			meetingRooms.DELETE("/:id", meetingRoomHandler.Delete)
			meetingRooms.POST("/:id/devices/:deviceId", meetingRoomHandler.AssignDevice)
			meetingRooms.DELETE("/:id/devices/:deviceId", meetingRoomHandler.UnassignDevice)
		}

		// 设备
		deviceHandler := handlers.NewDeviceHandler(services.NewDeviceService(db))
		devices := api.Group("/devices", auth.RequireLogin())
		{
			devices.POST("", deviceHandler.Create)
			devices.GET("", deviceHandler.List)
			devices.GET("/:id", deviceHandler.GetByID)
			devices.PUT("/:id", deviceHandler.Update)
			devices.PUT("/:id/status", deviceHandler.UpdateStatus)
			devices.DELETE("/:id", deviceHandler.Delete)
		}

		// 录制文件
		recordingHandler := handlers.NewRecordingHandler(services.NewRecordingService(db))
		recordings := api.Group("/recordings", auth.RequireLogin())
		{
			recordings.POST("", recordingHandler.Create)
			recordings.GET("", recordingHandler.List)
			recordings.GET("/:id", recordingHandler.GetByID)
			recordings.PUT("/:id/share-status", recordingHandler.UpdateShareStatus)
			recordings.POST("/:id/view", recordingHandler.MarkViewed)
			recordings.POST("/:id/download", recordingHandler.MarkDownloaded)
			recordings.DELETE("/:id", recordingHandler.Delete)
		}

		// 角色（仅管理员）
		roleHandler := handlers.NewRoleHandler(services.NewRoleService(db))
		roles := api.Group("/roles", auth.RequireLogin(), auth.RequireAdmin())
		{
			roles.POST("", roleHandler.Create)
			roles.GET("", roleHandler.List)
			roles.GET("/:id", roleHandler.GetByID)
			roles.PUT("/:id", roleHandler.Update)
			roles.DELETE("/:id", roleHandler.Delete)
		}

		// 权限（仅管理员）
		permissionHandler := handlers.NewPermissionHandler(services.NewPermissionService(db))
		permissions := api.Group("/permissions", auth.RequireLogin(), auth.RequireAdmin())
		{
			permissions.POST("", permissionHandler.Create)
			permissions.GET("", permissionHandler.List)
			permissions.GET("/:id", permissionHandler.GetByID)
			permissions.PUT("/:id", permissionHandler.Update)
			permissions.DELETE("/:id", permissionHandler.Delete)
		}

		// 布局目录
		layoutHandler := handlers.NewLayoutHandler(services.NewLayoutService(db))
		layouts := api.Group("/layouts", auth.RequireLogin())
		{
			layouts.POST("", layoutHandler.Create)
			layouts.GET("", layoutHandler.List)
			layouts.GET("/:id", layoutHandler.GetByID)
			layouts.PUT("/:id", layoutHandler.Update)
			layouts.POST("/:id/set-default", layoutHandler.SetDefault)
			layouts.DELETE("/:id", layoutHandler.Delete)
		}

		// 背景目录
		backgroundHandler := handlers.NewBackgroundHandler(services.NewBackgroundService(db))
		backgrounds := api.Group("/backgrounds", auth.RequireLogin())
		{
			backgrounds.POST("", backgroundHandler.Create)
			backgrounds.GET("", backgroundHandler.List)
			backgrounds.GET("/:id", backgroundHandler.GetByID)
			backgrounds.PUT("/:id", backgroundHandler.Update)
			backgrounds.POST("/:id/set-default", backgroundHandler.SetDefault)
			backgrounds.DELETE("/:id", backgroundHandler.Delete)
		}
	}
}

func healthCheck(c *gin.Context) {
	data := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now(),
		"service":   "TMADMIN",
		"version":   "1.0.0",
	}
	response.Success(c, data)
}

func ping(c *gin.Context) {
	response.SuccessWithMessage(c, "pong", nil)
}
