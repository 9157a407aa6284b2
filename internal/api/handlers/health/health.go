package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/freyasheth/foodbuddy/internal/core/cache"
	"github.com/freyasheth/foodbuddy/internal/infrastructure/config"
	"github.com/freyasheth/foodbuddy/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// pinger 可檢查連線的快取
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Provider  string                 `json:"provider"`
	Runtime   map[string]interface{} `json:"runtime"`
	Cache     *CacheStatus           `json:"cache,omitempty"`
}

// CacheStatus 快取狀態
type CacheStatus struct {
	Driver string       `json:"driver"`
	Stats  *cache.Stats `json:"stats,omitempty"`
}

// Handler 健康檢查處理器
type Handler struct {
	config   *config.Config
	provider string
	store    cache.Store
}

// NewHandler 創建健康檢查處理器，store 可為 nil
func NewHandler(cfg *config.Config, provider string, store cache.Store) *Handler {
	return &Handler{config: cfg, provider: provider, store: store}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.config.App.Version,
		Provider:  h.provider,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if h.store != nil {
		status := &CacheStatus{Driver: h.config.Cache.Driver}
		if mgr, ok := h.store.(*cache.CacheManager); ok {
			stats := mgr.GetStats()
			status.Stats = &stats
		}
		response.Cache = status
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器，Redis 快取無法連線時回傳 503
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if p, ok := h.store.(pinger); ok {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			common.LogWarn("Readiness check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"reason": "cache unreachable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"provider": h.provider,
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
