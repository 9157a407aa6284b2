package label

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RiskLevel 風險等級，RiskNone 序列化為 null
type RiskLevel string

const (
	RiskNone   RiskLevel = ""
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// 分級門檻，剛好落在門檻上的分數屬於較高的一級
const (
	mediumThreshold = 0.33
	highThreshold   = 0.67
)

// MarshalJSON 實現 json.Marshaler
func (l RiskLevel) MarshalJSON() ([]byte, error) {
	if l == RiskNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(l))
}

// UnmarshalJSON 實現 json.Unmarshaler
func (l *RiskLevel) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = RiskNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = RiskLevel(s)
	return nil
}

// Summary 給使用者看的整體結論
func (l RiskLevel) Summary() string {
	switch l {
	case RiskLow:
		return "Overall: safe to consume"
	case RiskMedium:
		return "Overall: some ingredients need to be paid attention to"
	case RiskHigh:
		return "Overall: highly unsafe for consumption"
	default:
		return "Overall:"
	}
}

// RiskAssessment 整體風險評估
type RiskAssessment struct {
	Level   RiskLevel `json:"level"`
	Score   *float64  `json:"score"`
	Factors []string  `json:"factors"`
}

// ScoreText 兩位小數的分數，沒有分數時為空字串
func (a RiskAssessment) ScoreText() string {
	if a.Score == nil {
		return ""
	}
	return strconv.FormatFloat(*a.Score, 'f', 2, 64)
}

// Classify 將 0~1 的風險分數分級，分數越高越危險。
// 沒有分數或分數不是有限數值時回傳 RiskNone。
func Classify(score *float64) RiskLevel {
	if score == nil || math.IsNaN(*score) || math.IsInf(*score, 0) {
		return RiskNone
	}
	switch s := *score; {
	case s < mediumThreshold:
		return RiskLow
	case s < highThreshold:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// Assess 由回應建立風險評估。
// 有數值分數時一律以分數重新分級，覆蓋上游提供的 risk_level；
// 上游的等級只在完全沒有分數時才採用。
func Assess(resp *AnalysisResponse) RiskAssessment {
	assessment := RiskAssessment{Factors: make([]string, 0)}
	if resp == nil {
		return assessment
	}

	if level := Classify(resp.RiskScore); level != RiskNone {
		score := math.Max(0, math.Min(1, *resp.RiskScore))
		assessment.Score = &score
		assessment.Level = level
	} else {
		assessment.Level = RiskLevel(strings.TrimSpace(resp.RiskLevel))
	}

	seen := make(map[string]struct{}, len(resp.RiskFactors))
	for _, f := range resp.RiskFactors {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		assessment.Factors = append(assessment.Factors, f)
	}

	return assessment
}
