package http

import (
	"github.com/gin-gonic/gin"

	"vmap-rag/internal/bootstrap"
	"vmap-rag/internal/transport/http/handler"
	"vmap-rag/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.MaxMultipartMemory = int64(app.Config.Upload.MaxSizeMB) << 20

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	ragHandler := handler.NewRAGHandler(
		app.AnswerCache,
		app.Publisher,
		app.Config.Upload.Dir,
		app.Config.Upload.MaxSizeMB,
	)

	api := router.Group("/api")
	api.Use(middleware.Session(app.Sessions, app.TokenSigner))
	api.POST("/upload", ragHandler.Upload)
	api.POST("/chat", ragHandler.Chat)
	api.GET("/status", ragHandler.Status)
	api.POST("/reset", ragHandler.Reset)

	return router
}
