package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lvxn0va/legal-ease-ai/internal/handler"
	"github.com/lvxn0va/legal-ease-ai/internal/middleware"
	"github.com/lvxn0va/legal-ease-ai/internal/routes"
)

func NewServer(
	authHandlers *handler.AuthHandler,
	documentHandlers *handler.DocumentHandler,
	healthHandlers *handler.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	g := gin.Default()

	g.GET("/health", healthHandlers.Health)
	g.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := g.Group("/api/v1")
	routes.RegisterRoutes(api, authHandlers, documentHandlers, authMiddleware)

	return g
}
