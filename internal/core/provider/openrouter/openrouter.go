// Package openrouter 透過 OpenRouter 的 chat completions API 以大型語言模型分析成分。
package openrouter

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/freyasheth/foodbuddy/internal/core/label"
	"github.com/freyasheth/foodbuddy/internal/infrastructure/config"
	"github.com/freyasheth/foodbuddy/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	scorePrefix   = "RISK_SCORE:"
	factorsPrefix = "RISK_FACTORS:"
)

const promptTemplate = `You are FoodBuddy, a nutrition assistant that explains packaged food labels.
For each ingredient in the list below write exactly one line in the form
"• <ingredient>: <one or two sentence plain-language explanation>".
After the ingredient lines write one line "RISK_SCORE: <number between 0 and 1>"
where 0 means safe to consume and 1 means highly unsafe,
then one line "RISK_FACTORS: <comma separated short factors>".
Do not add any other text.

Ingredients: %s`

// Message 消息結構
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request chat completions 請求
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

// Response chat completions 響應
type Response struct {
	ID      string `json:"id"`
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// apiError OpenRouter 錯誤格式
type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Provider OpenRouter 分析服務
type Provider struct {
	config *config.Config
	client *resty.Client
}

// New 創建 OpenRouter 分析服務
func New(cfg *config.Config) *Provider {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.OpenRouter.BaseURL, "/")).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouter.APIKey)).
		SetHeader("HTTP-Referer", "https://foodbuddy.app").
		SetHeader("X-Title", "FoodBuddy").
		SetTimeout(cfg.OpenRouter.Timeout)

	return &Provider{
		config: cfg,
		client: client,
	}
}

// Name 實現 provider.Provider
func (p *Provider) Name() string {
	return "openrouter"
}

// Close 實現 provider.Provider
func (p *Provider) Close() error {
	return nil
}

// Analyze 請模型逐項說明成分並給出風險分數
func (p *Provider) Analyze(ctx context.Context, ingredients string) (*label.AnalysisResponse, error) {
	req := Request{
		Model: p.config.OpenRouter.Model,
		Messages: []Message{
			{Role: "user", Content: fmt.Sprintf(promptTemplate, ingredients)},
		},
		MaxTokens:   p.config.OpenRouter.MaxTokens,
		Temperature: 0.2,
	}

	var result Response
	var apiErr apiError
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&apiErr).
		Post("/chat/completions")

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, common.ErrProviderUnreachable.Wrap(err)
	}

	if resp.StatusCode() != http.StatusOK {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = fmt.Sprintf("Error %d", resp.StatusCode())
		}
		common.LogWarn("OpenRouter returned error",
			zap.Int("status", resp.StatusCode()),
			zap.String("message", common.Preview(msg, 200)),
		)
		return nil, common.ErrProviderError.Wrap(errors.New(msg))
	}

	if len(result.Choices) == 0 {
		return nil, common.ErrProviderError.Wrap(errors.New("no choices in OpenRouter response"))
	}

	common.LogDebug("OpenRouter reply received",
		zap.String("id", result.ID),
		zap.String("preview", common.Preview(result.Choices[0].Message.Content, 120)),
	)
	return ParseReply(result.Choices[0].Message.Content), nil
}

// ParseReply 拆出模型回覆中的 RISK_SCORE / RISK_FACTORS 行，其餘文字作為 analysis
func ParseReply(content string) *label.AnalysisResponse {
	out := &label.AnalysisResponse{}
	kept := make([]string, 0)

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case hasPrefixFold(trimmed, scorePrefix):
			value := strings.TrimSpace(trimmed[len(scorePrefix):])
			if score, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(score) && !math.IsInf(score, 0) {
				out.RiskScore = &score
			}
		case hasPrefixFold(trimmed, factorsPrefix):
			for _, f := range strings.Split(trimmed[len(factorsPrefix):], ",") {
				if f = strings.TrimSpace(f); f != "" {
					out.RiskFactors = append(out.RiskFactors, f)
				}
			}
		default:
			kept = append(kept, line)
		}
	}

	out.Analysis = strings.TrimSpace(strings.Join(kept, "\n"))
	return out
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
