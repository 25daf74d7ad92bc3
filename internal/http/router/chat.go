package router

import (
	"github.com/gin-gonic/gin"

	"pageforge.app/planner/internal/http/handler"
)

func ChatRouter(router *gin.RouterGroup, handler *handler.ChatHandler) {
	router.POST("/send", handler.Send)
	router.GET("/history/:session_id", handler.History)
}
