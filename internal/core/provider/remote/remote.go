// Package remote 將成分文字轉送到外部 FoodBuddy 後端分析。
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/freyasheth/foodbuddy/internal/core/label"
	"github.com/freyasheth/foodbuddy/internal/infrastructure/config"
	"github.com/freyasheth/foodbuddy/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// analyzeRequest 後端請求格式
type analyzeRequest struct {
	Ingredients string `json:"ingredients"`
}

// errorBody 後端錯誤格式，detail 可能是字串或物件
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// Provider 遠端分析服務
type Provider struct {
	client *resty.Client
}

// New 創建遠端分析服務
func New(cfg *config.Config) *Provider {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Provider.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Provider.Timeout)

	return &Provider{client: client}
}

// Name 實現 provider.Provider
func (p *Provider) Name() string {
	return "remote"
}

// Close 實現 provider.Provider
func (p *Provider) Close() error {
	return nil
}

// Analyze 呼叫 POST /analyze
func (p *Provider) Analyze(ctx context.Context, ingredients string) (*label.AnalysisResponse, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(analyzeRequest{Ingredients: ingredients}).
		Post("/analyze")

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		common.LogWarn("Remote provider unreachable", zap.Error(err))
		return nil, common.ErrProviderUnreachable.Wrap(err)
	}

	if resp.IsError() {
		return nil, common.ErrProviderError.Wrap(errors.New(upstreamMessage(resp)))
	}

	var result label.AnalysisResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, common.ErrProviderError.Wrap(fmt.Errorf("decode response: %w", err))
	}
	return &result, nil
}

// upstreamMessage 取出後端錯誤訊息，沒有 detail 時回傳狀態碼
func upstreamMessage(resp *resty.Response) string {
	var body errorBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		if msg := common.DetailMessage(body.Detail); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("Error %d", resp.StatusCode())
}
