package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lvxn0va/legal-ease-ai/internal/handler"
	"github.com/lvxn0va/legal-ease-ai/internal/middleware"
)

func RegisterRoutes(
	router *gin.RouterGroup,
	authHandlers *handler.AuthHandler,
	documentHandlers *handler.DocumentHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	auth := router.Group("/auth")
	{
		// Public routes - no authentication required
		auth.POST("/register", authHandlers.Register)
		auth.POST("/login", authHandlers.Login)
	}

	// Protected routes - authentication required
	protectedAuth := router.Group("/auth")
	protectedAuth.Use(authMiddleware.RequireAuth())
	{
		protectedAuth.GET("/me", authHandlers.Me)
	}

	documents := router.Group("/documents")
	documents.Use(authMiddleware.RequireAuth())
	{
		documents.POST("/upload-url", documentHandlers.GetUploadUrl)
		documents.POST("", documentHandlers.CreateDocument)
		documents.GET("", documentHandlers.ListDocuments)
		documents.GET("/:id", documentHandlers.GetDocument)
		documents.GET("/:id/download", documentHandlers.GetDownloadUrl)
		documents.POST("/:id/reprocess", documentHandlers.Reprocess)
		documents.DELETE("/:id", documentHandlers.DeleteDocument)
	}
}
