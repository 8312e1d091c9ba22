package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/niteen-codes/go-eventhub/config"
	"github.com/niteen-codes/go-eventhub/middleware"
	"github.com/niteen-codes/go-eventhub/realtime"
)

// RegisterRoutes wires the REST surface and the websocket endpoint onto the
// router. All event mutations require a bearer token; listing additionally
// respects cfg.RequireAuthForList.
func RegisterRoutes(router *gin.Engine, cfg config.Config, auth *AuthController, events *EventController, hub *realtime.Hub) {
	router.GET("/ws", hub.ServeWS)

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", auth.Register)
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/guest-login", auth.GuestLogin)
		authGroup.POST("/forgot-password", auth.ForgotPassword)
		authGroup.POST("/reset-password", auth.ResetPassword)
	}

	bearer := middleware.Auth(cfg.JWTSecret)

	eventGroup := api.Group("/events")
	{
		if cfg.RequireAuthForList {
			eventGroup.GET("", bearer, events.List)
			eventGroup.GET("/:id", bearer, events.Get)
		} else {
			eventGroup.GET("", events.List)
			eventGroup.GET("/:id", events.Get)
		}

		eventGroup.POST("", bearer, middleware.RequireUser(), events.Create)
		eventGroup.PUT("/:id", bearer, events.Update)
		eventGroup.DELETE("/:id", bearer, events.Delete)
		eventGroup.POST("/:id/cancel", bearer, events.Cancel)
		eventGroup.POST("/:id/attend", bearer, events.Attend)
		eventGroup.POST("/:id/leave", bearer, events.Leave)
	}
}
