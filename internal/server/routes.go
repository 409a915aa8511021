package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dcastano/partnerscope/internal/config"
	"github.com/dcastano/partnerscope/internal/handler"
	"github.com/dcastano/partnerscope/internal/middleware"
	"github.com/dcastano/partnerscope/internal/service"
	"github.com/dcastano/partnerscope/internal/storage"
)

// Deps holds everything the routes need. Dependencies are passed
// explicitly — each handler gets exactly what it uses.
type Deps struct {
	Finder   *service.PartnerFinder
	Checker  *service.TradingChecker
	Metrics  *service.MetricsReporter
	Analyzer *service.Analyzer
	Registry *service.Registry
	Calls    storage.CallRepository
}

// RegisterRoutes sets up all HTTP routes on the Gin engine.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Deps, logger *zap.Logger) {
	healthHandler := handler.NewHealthHandler()
	toolHandler := handler.NewToolHandler(deps.Finder, deps.Checker, deps.Metrics, deps.Analyzer, deps.Registry, logger)
	adminHandler := handler.NewAdminHandler(deps.Calls, logger)

	// Public, no auth.
	r.GET("/healthz", healthHandler.Healthz)

	api := r.Group("/api/v1")
	api.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	authed := api.Group("")
	authed.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
	authed.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	{
		authed.POST("/partners", toolHandler.Partners)
		authed.POST("/trading-status", toolHandler.TradingStatus)
		authed.POST("/metrics", toolHandler.Metrics)
		authed.POST("/analyze", toolHandler.Analyze)
		authed.GET("/tools", toolHandler.ListTools)
		authed.POST("/tools/:name", toolHandler.DispatchTool)
	}

	// Admin endpoints use separate keys.
	admin := api.Group("/admin")
	admin.Use(middleware.AdminKeyAuth(cfg.Auth.AdminKeys))
	{
		admin.GET("/stats", adminHandler.Stats)
		admin.GET("/calls", adminHandler.RecentCalls)
	}
}
