package api

import (
	"time"

	"github.com/freyasheth/foodbuddy/internal/api/handlers/analyze"
	"github.com/freyasheth/foodbuddy/internal/api/handlers/health"
	"github.com/freyasheth/foodbuddy/internal/api/middleware"
	"github.com/freyasheth/foodbuddy/internal/core/analysis"
	"github.com/freyasheth/foodbuddy/internal/core/cache"
	"github.com/freyasheth/foodbuddy/internal/infrastructure/config"
	"github.com/freyasheth/foodbuddy/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 限流與去重狀態的清理間隔
const pruneInterval = 10 * time.Minute

// SetupRouter 設置路由。stop 關閉時結束背景清理協程
func SetupRouter(cfg *config.Config, svc *analysis.Service, store cache.Store, stop <-chan struct{}) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.String("provider", svc.ProviderName()),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	// CORS 設置，前端為瀏覽器應用
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID", middleware.ClientIDHeader},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	router.Use(middleware.RequestContext(cfg.Server.RequestTimeout, cfg.App.Debug))

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg, svc.ProviderName(), store)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	// API 路由組
	analyzeHandler := analyze.NewHandler(svc)
	v1 := router.Group("/api/v1")
	{
		v1.GET("/categories", analyzeHandler.HandleCategories)
		v1.GET("/examples", analyzeHandler.HandleExamples)

		guarded := []gin.HandlerFunc{middleware.BodySizeLimit(cfg.BodyLimitBytes)}
		if cfg.RateLimit.Enabled {
			limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
			limiter.StartPruning(pruneInterval, stop)
			guarded = append(guarded, middleware.RateLimit(limiter))
		}
		if cfg.DedupWindow > 0 {
			dedup := middleware.NewDeduplicator(cfg.DedupWindow)
			dedup.StartPruning(pruneInterval, stop)
			guarded = append(guarded, middleware.Deduplication(dedup))
		}
		v1.POST("/analyze", append(guarded, analyzeHandler.HandleAnalyze)...)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("cache_enabled", store != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.BodyLimitBytes),
	)

	return router
}
