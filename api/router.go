package api

import (
	"github.com/SlpAus/clone-pool-backend/internal/account"
	"github.com/SlpAus/clone-pool-backend/internal/auth"
	"github.com/SlpAus/clone-pool-backend/internal/clonereg"
	"github.com/SlpAus/clone-pool-backend/internal/livesession"
	"github.com/SlpAus/clone-pool-backend/internal/realtime"
	"github.com/SlpAus/clone-pool-backend/internal/revenue"
	"github.com/gin-gonic/gin"
)

// Dependencies 聚合路由需要的全部处理器。
// 依赖在main中装配并显式传入，路由层不持有任何单例。
type Dependencies struct {
	AuthHandler    *auth.Handler
	AccountHandler *account.Handler
	ArchiveHandler *account.Handler
	Hub            *realtime.Hub
}

// registerPoolRoutes 为一个账号池注册全部路由。
// 主池和存档池共享同一套处理器代码，只是绑定的池不同。
func registerPoolRoutes(g *gin.RouterGroup, h *account.Handler) {
	g.GET("", h.List)
	g.GET("/stats", h.GetStats)
	g.GET("/export", h.Export)

	g.POST("/import/text", h.ImportText)
	g.POST("/import/file", h.ImportFile)
	g.POST("/import/list", h.ImportList)

	g.PUT("/status", h.UpdateStatusBatch)
	g.PUT("/status/all", h.UpdateStatusAll)
	g.PUT("/:id/status", h.UpdateStatus)
	g.PUT("/:id/tag", h.UpdateTag)

	g.DELETE("", h.DeleteBatch)
	g.DELETE("/:id", h.Delete)
}

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	router.POST("/api/auth/login", deps.AuthHandler.Login)

	// WebSocket升级请求通过 ?token= 携带令牌
	router.GET("/ws", auth.RequireAuth(), deps.Hub.ServeWS)

	api := router.Group("/api", auth.RequireAuth())
	{
		registerPoolRoutes(api.Group("/accounts"), deps.AccountHandler)
		registerPoolRoutes(api.Group("/acclogs"), deps.ArchiveHandler)

		registry := api.Group("/clonereg")
		{
			registry.GET("", clonereg.List)
			registry.POST("", clonereg.Create)
			registry.PUT("/:id", clonereg.Update)
			registry.DELETE("/:id", clonereg.Delete)
		}

		sessions := api.Group("/sessions")
		{
			sessions.GET("", livesession.List)
			sessions.GET("/active", livesession.Active)
			sessions.POST("", livesession.Create)
		}

		revenueRoutes := api.Group("/revenue")
		{
			revenueRoutes.GET("", revenue.List)
			revenueRoutes.GET("/summary", revenue.Summary)
		}
	}
}
