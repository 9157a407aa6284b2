// Package cache 快取分析服務的原始回應。
//
// 只快取上游回應，卡片與風險評估每次都由 label 套件重新計算。
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/freyasheth/foodbuddy/internal/core/label"
	"github.com/freyasheth/foodbuddy/internal/infrastructure/config"
	"github.com/freyasheth/foodbuddy/internal/pkg/common"
)

// Store 分析回應快取
type Store interface {
	// Get 取得快取，未命中時回傳 common.ErrCacheMiss
	Get(ctx context.Context, key string) (*label.AnalysisResponse, error)
	// Set 寫入快取
	Set(ctx context.Context, key string, resp *label.AnalysisResponse) error
	// Close 釋放資源
	Close() error
}

// Key 以分析服務名稱與正規化後的成分文字產生快取鍵
func Key(provider, ingredients string) string {
	hash := sha256.Sum256([]byte(provider + "\x00" + ingredients))
	return fmt.Sprintf("analysis:%s:%s", provider, hex.EncodeToString(hash[:]))
}

// New 依設定建立快取；快取關閉時回傳 nil
func New(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}

	switch cfg.Cache.Driver {
	case config.CacheDriverRedis:
		store, err := NewRedisStore(cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.CacheDriverMemory:
		return NewManager(cfg), nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}
