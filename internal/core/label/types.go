// Package label 將成分標示文字與分析服務的回應整理成食材卡片與整體風險評估。
//
// 本套件只包含純函式，不持有任何狀態，可在多個 goroutine 中同時呼叫。
package label

import (
	"encoding/json"
	"strconv"
)

// Category 食材分類
type Category string

// 分類固定集合
const (
	CategorySugar        Category = "Sugar"
	CategorySodium       Category = "Sodium"
	CategoryFats         Category = "Fats / oils"
	CategoryPreservative Category = "Preservative"
	CategoryCarbohydrate Category = "Carbohydrate"
	CategoryProtein      Category = "Protein"
	CategoryWholeGrains  Category = "Whole grains / fiber"
	CategoryNeutral      Category = "Neutral"
)

// IngredientCard 對使用者呈現的單一食材卡片
type IngredientCard struct {
	Name        string   `json:"name"`
	Explanation string   `json:"explanation"`
	Category    Category `json:"category"`
	Icon        string   `json:"icon"`
}

// ProviderCard 分析服務回傳的結構化卡片，所有欄位都可能缺漏
type ProviderCard struct {
	Name        string `json:"name,omitempty"`
	Explanation string `json:"explanation,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Category    string `json:"category,omitempty"`
}

// AnalysisResponse 分析服務的回應，每次請求各自獨立
type AnalysisResponse struct {
	Analysis    string         `json:"analysis"`
	Cards       []ProviderCard `json:"cards,omitempty"`
	RiskScore   *float64       `json:"risk_score,omitempty"`
	RiskFactors []string       `json:"risk_factors,omitempty"`
	RiskLevel   string         `json:"risk_level,omitempty"`
}

// UnmarshalJSON 寬鬆解析上游回應：型別不符的欄位視為缺漏，不讓整份回應失敗
func (r *AnalysisResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Analysis    looseString     `json:"analysis"`
		Cards       json.RawMessage `json:"cards"`
		RiskScore   json.RawMessage `json:"risk_score"`
		RiskFactors json.RawMessage `json:"risk_factors"`
		RiskLevel   looseString     `json:"risk_level"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = AnalysisResponse{
		Analysis:  string(raw.Analysis),
		RiskLevel: string(raw.RiskLevel),
	}

	// null 與非數字一樣視為沒有分數
	var score *float64
	if len(raw.RiskScore) > 0 && json.Unmarshal(raw.RiskScore, &score) == nil && score != nil {
		r.RiskScore = score
	}

	var cards []json.RawMessage
	if len(raw.Cards) > 0 && json.Unmarshal(raw.Cards, &cards) == nil {
		r.Cards = make([]ProviderCard, 0, len(cards))
		for _, item := range cards {
			var c struct {
				Name        looseString `json:"name"`
				Explanation looseString `json:"explanation"`
				Summary     looseString `json:"summary"`
				Icon        looseString `json:"icon"`
				Category    looseString `json:"category"`
			}
			// 非物件的項目仍保留位置，之後以預設名稱呈現
			_ = json.Unmarshal(item, &c)
			r.Cards = append(r.Cards, ProviderCard{
				Name:        string(c.Name),
				Explanation: string(c.Explanation),
				Summary:     string(c.Summary),
				Icon:        string(c.Icon),
				Category:    string(c.Category),
			})
		}
	}

	// 每個項目都保留，去重留給 Assess
	var factors []interface{}
	if len(raw.RiskFactors) > 0 && json.Unmarshal(raw.RiskFactors, &factors) == nil {
		r.RiskFactors = make([]string, 0, len(factors))
		for _, f := range factors {
			r.RiskFactors = append(r.RiskFactors, factorText(f))
		}
	}

	return nil
}

// looseString 接受字串、數字與布林值，其餘型別視為空字串
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		*s = ""
		return nil
	}
	switch x := v.(type) {
	case string:
		*s = looseString(x)
	case float64:
		if x == 0 {
			*s = ""
		} else {
			*s = looseString(strconv.FormatFloat(x, 'f', -1, 64))
		}
	case bool:
		if x {
			*s = "true"
		} else {
			*s = ""
		}
	default:
		*s = ""
	}
	return nil
}

// factorText 風險標籤的顯示文字：字串原樣、數字轉文字，其餘顯示為空
func factorText(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}
