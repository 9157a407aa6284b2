package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freyasheth/foodbuddy/internal/api"
	"github.com/freyasheth/foodbuddy/internal/core/analysis"
	"github.com/freyasheth/foodbuddy/internal/core/cache"
	"github.com/freyasheth/foodbuddy/internal/core/provider"
	"github.com/freyasheth/foodbuddy/internal/infrastructure/config"
	"github.com/freyasheth/foodbuddy/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含選用的 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("provider_mode", cfg.Provider.Mode),
		zap.String("openrouter_model", cfg.OpenRouter.Model),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("cache_driver", cfg.Cache.Driver),
	)

	// 初始化快取
	store, err := cache.New(cfg)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}

	// 初始化分析服務
	p, err := provider.New(cfg)
	if err != nil {
		common.LogFatal("Failed to initialize provider", zap.Error(err))
	}

	svc := analysis.NewService(p, store)
	defer func() {
		if err := svc.Close(); err != nil {
			common.LogWarn("Failed to close analysis service", zap.Error(err))
		}
	}()

	stop := make(chan struct{})
	defer close(stop)

	// 設置路由
	router := api.SetupRouter(cfg, svc, store, stop)

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		common.LogError("Failed to start server", zap.Error(err))
		return
	}

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}
