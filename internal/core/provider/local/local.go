// Package local 以內建關鍵字規則在本機產生分析結果，不需要外部服務。
package local

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/freyasheth/foodbuddy/internal/core/label"
)

// 本地規則自己的分級門檻；label.Classify 會以分數重新分級
const (
	mediumCutoff = 0.33
	highCutoff   = 0.66
)

const closingNote = "\nThis explanation and risk score are generated by a lightweight, " +
	"rule-based model inside FoodBuddy. It highlights patterns (sugar, " +
	"sodium, additives, whole grains, fibre) instead of using a full " +
	"scientific database."

// Provider 本地規則分析服務
type Provider struct {
	rules *RuleBook
}

// New 創建本地分析服務，rules 為 nil 時使用內建規則
func New(rules *RuleBook) *Provider {
	if rules == nil {
		rules = DefaultRuleBook()
	}
	return &Provider{rules: rules}
}

// Name 實現 provider.Provider
func (p *Provider) Name() string {
	return "local"
}

// Close 實現 provider.Provider
func (p *Provider) Close() error {
	return nil
}

// Analyze 將逗號分隔的成分逐項說明並計算風險分數
func (p *Provider) Analyze(ctx context.Context, ingredients string) (*label.AnalysisResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := splitItems(ingredients)
	if len(items) == 0 {
		zero := 0.0
		return &label.AnalysisResponse{
			Analysis:    "No ingredients provided.",
			RiskScore:   &zero,
			RiskLevel:   string(label.RiskLow),
			RiskFactors: []string{"No data"},
		}, nil
	}

	lines := make([]string, 0, len(items)+3)
	lines = append(lines, "Ingredient analysis (rule-based demo):\n")
	lines = append(lines, fmt.Sprintf("You entered %d ingredient(s): %s\n", len(items), strings.Join(items, ", ")))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("• %s: %s", item, p.Explain(item)))
	}
	lines = append(lines, closingNote)

	score, factors := p.Score(items)
	return &label.AnalysisResponse{
		Analysis:    strings.Join(lines, "\n"),
		RiskScore:   &score,
		RiskLevel:   string(levelFor(score)),
		RiskFactors: factors,
	}, nil
}

// Explain 回傳單一成分的說明
func (p *Provider) Explain(name string) string {
	lower := strings.TrimSpace(strings.ToLower(name))

	if len([]rune(lower)) <= 1 {
		return p.rules.TooShort
	}

	for _, rule := range p.rules.Explanations {
		if expl, ok := rule.match(lower); ok {
			return expl
		}
	}

	for _, r := range lower {
		if unicode.IsLetter(r) {
			return p.rules.Generic
		}
	}
	return p.rules.Unknown
}

// Score 依整份清單計算 0~1 的風險分數與影響因素
func (p *Provider) Score(items []string) (float64, []string) {
	joined := strings.ToLower(strings.Join(items, " "))

	score := 0.0
	factors := make([]string, 0, len(p.rules.Scores))
	for _, rule := range p.rules.Scores {
		hits := 0
		for _, kw := range rule.Keywords {
			if strings.Contains(joined, kw) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		if rule.PerKeyword {
			score += rule.Weight * float64(hits)
		} else {
			score += rule.Weight
		}
		factors = append(factors, rule.Factor)
	}

	score = math.Max(0, math.Min(1, score))

	if len(factors) == 0 && p.rules.NoSignals != "" {
		factors = append(factors, p.rules.NoSignals)
	}
	return score, factors
}

func levelFor(score float64) label.RiskLevel {
	switch {
	case score < mediumCutoff:
		return label.RiskLow
	case score < highCutoff:
		return label.RiskMedium
	default:
		return label.RiskHigh
	}
}

func splitItems(ingredients string) []string {
	var items []string
	for _, part := range strings.Split(ingredients, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
