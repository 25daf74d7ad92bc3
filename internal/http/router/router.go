package router

import (
	"github.com/gin-gonic/gin"

	"pageforge.app/planner/common/llm"
	"pageforge.app/planner/internal/http/handler"
	"pageforge.app/planner/internal/service"
)

func SetupRoutes(router *gin.Engine, services *service.Services, gateway llm.Gateway) {
	healthHandler := handler.NewHealthHandler(gateway)
	router.GET("/health", healthHandler.Check)
	router.GET("/healthz", healthHandler.Check)

	invocationHandler := handler.NewInvocationHandler(services.Plans())
	router.POST("/invocations", invocationHandler.Create)

	chatHandler := handler.NewChatHandler(services.Chat())
	ChatRouter(router.Group("/chat"), chatHandler)

	codegenHandler := handler.NewCodegenHandler(services.Codegen())
	router.POST("/code/generate", codegenHandler.Generate)

	previewHandler := handler.NewPreviewHandler(services.Previews())
	router.GET("/preview", previewHandler.Preview)
	router.GET("/page", previewHandler.Page)
}
