// Package provider 定義分析服務介面，並依設定建立對應的實作。
package provider

import (
	"context"
	"fmt"

	"github.com/freyasheth/foodbuddy/internal/core/label"
	"github.com/freyasheth/foodbuddy/internal/core/provider/local"
	"github.com/freyasheth/foodbuddy/internal/core/provider/openrouter"
	"github.com/freyasheth/foodbuddy/internal/core/provider/remote"
	"github.com/freyasheth/foodbuddy/internal/infrastructure/config"
)

// Provider 定義分析服務介面
type Provider interface {
	// Analyze 分析正規化後的成分文字；ctx 取消時應盡快返回 ctx.Err()
	Analyze(ctx context.Context, ingredients string) (*label.AnalysisResponse, error)

	// Name 分析服務名稱，也作為快取鍵的一部分
	Name() string

	// Close 關閉提供者連接
	Close() error
}

// New 依 provider.mode 建立分析服務
func New(cfg *config.Config) (Provider, error) {
	switch cfg.Provider.Mode {
	case config.ProviderLocal:
		book := local.DefaultRuleBook()
		if cfg.Provider.RulesFile != "" {
			loaded, err := local.LoadRuleBook(cfg.Provider.RulesFile)
			if err != nil {
				return nil, fmt.Errorf("load rules file: %w", err)
			}
			book = loaded
		}
		return local.New(book), nil
	case config.ProviderRemote:
		return remote.New(cfg), nil
	case config.ProviderOpenRouter:
		return openrouter.New(cfg), nil
	default:
		return nil, fmt.Errorf("unknown provider mode %q", cfg.Provider.Mode)
	}
}
