package router

import (
	"deepti.app/relay/internal/http/handler"
	"deepti.app/relay/internal/service"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, services *service.Services) {
	chatHandler := handler.NewChatHandler(services.Relay())

	router.GET("/health", chatHandler.Health)

	ChatRouter(router.Group("/api"), chatHandler)
}
