// Package analysis 串接正規化、快取、分析服務與 label 套件，產生給使用者的分析結果。
package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/freyasheth/foodbuddy/internal/core/cache"
	"github.com/freyasheth/foodbuddy/internal/core/label"
	"github.com/freyasheth/foodbuddy/internal/core/provider"
	"github.com/freyasheth/foodbuddy/internal/pkg/common"

	"go.uber.org/zap"
)

// Result 單次分析結果
type Result struct {
	ID          string                 `json:"id"`
	Ingredients string                 `json:"ingredients"`
	Analysis    string                 `json:"analysis"`
	Cards       []label.IngredientCard `json:"cards"`
	Risk        label.RiskAssessment   `json:"risk"`
	ScoreText   string                 `json:"score_text,omitempty"`
	Summary     string                 `json:"summary"`
	Provider    string                 `json:"provider"`
	CacheHit    bool                   `json:"cache_hit"`
}

// Service 分析服務
type Service struct {
	provider provider.Provider
	cache    cache.Store
	sessions *Sessions
}

// NewService 創建分析服務，store 可為 nil（不快取）
func NewService(p provider.Provider, store cache.Store) *Service {
	return &Service{
		provider: p,
		cache:    store,
		sessions: NewSessions(),
	}
}

// ProviderName 目前使用的分析服務
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

// Submit 以 clientID 分析成分，同一用戶端較早且尚未完成的請求會被取消並回傳 ErrSuperseded。
// clientID 為空時不做取代。
func (s *Service) Submit(ctx context.Context, clientID, raw string) (*Result, error) {
	return s.sessions.Run(ctx, clientID, func(ctx context.Context) (*Result, error) {
		return s.Analyze(ctx, raw)
	})
}

// Analyze 分析一段成分文字
func (s *Service) Analyze(ctx context.Context, raw string) (*Result, error) {
	ingredients := label.Normalize(raw)
	if ingredients == "" {
		return nil, common.ErrNothingToAnalyze
	}

	resp, hit, err := s.fetch(ctx, ingredients)
	if err != nil {
		return nil, err
	}

	risk := label.Assess(resp)
	return &Result{
		ID:          common.GenerateUUID(),
		Ingredients: ingredients,
		Analysis:    resp.Analysis,
		Cards:       label.BuildCards(resp),
		Risk:        risk,
		ScoreText:   risk.ScoreText(),
		Summary:     risk.Level.Summary(),
		Provider:    s.provider.Name(),
		CacheHit:    hit,
	}, nil
}

// fetch 先查快取，未命中才呼叫分析服務
func (s *Service) fetch(ctx context.Context, ingredients string) (*label.AnalysisResponse, bool, error) {
	requestID := common.RequestIDFromContext(ctx)
	name := s.provider.Name()
	key := cache.Key(name, ingredients)

	if s.cache != nil {
		resp, err := s.cache.Get(ctx, key)
		if err == nil {
			return resp, true, nil
		}
		if !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("讀取快取失敗", zap.Error(err), zap.String("request_id", requestID))
		}
	}

	start := time.Now()
	resp, err := s.provider.Analyze(ctx, ingredients)
	common.LogProviderCall(name, time.Since(start), err, requestID)
	if err != nil {
		return nil, false, err
	}
	if resp == nil {
		return nil, false, common.ErrProviderError.Wrap(errors.New("empty response"))
	}

	if s.cache != nil {
		// 請求被取消後仍保留已取得的回應
		if err := s.cache.Set(context.WithoutCancel(ctx), key, resp); err != nil {
			common.LogWarn("寫入快取失敗", zap.Error(err), zap.String("request_id", requestID))
		}
	}

	return resp, false, nil
}

// Close 關閉分析服務與快取
func (s *Service) Close() error {
	var errs []error
	if err := s.provider.Close(); err != nil {
		errs = append(errs, err)
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
