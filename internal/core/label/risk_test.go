package label

import (
	"encoding/json"
	"math"
	"testing"
)

func ptr(f float64) *float64 { return &f }

func TestClassify(t *testing.T) {
	tests := []struct {
		score *float64
		want  RiskLevel
	}{
		{nil, RiskNone},
		{ptr(math.NaN()), RiskNone},
		{ptr(math.Inf(1)), RiskNone},
		{ptr(0), RiskLow},
		{ptr(0.10), RiskLow},
		{ptr(0.3299), RiskLow},
		{ptr(0.33), RiskMedium},
		{ptr(0.66), RiskMedium},
		{ptr(0.67), RiskHigh},
		{ptr(1), RiskHigh},
		{ptr(-0.5), RiskLow},
		{ptr(3), RiskHigh},
	}

	for _, tt := range tests {
		got := Classify(tt.score)
		if got != tt.want {
			if tt.score == nil {
				t.Errorf("Classify(nil) = %q, want %q", got, tt.want)
			} else {
				t.Errorf("Classify(%v) = %q, want %q", *tt.score, got, tt.want)
			}
		}
	}
}

func TestAssessScoreOverridesLabel(t *testing.T) {
	a := Assess(&AnalysisResponse{RiskScore: ptr(0.8), RiskLevel: "low"})
	if a.Level != RiskHigh {
		t.Errorf("level = %q, want high", a.Level)
	}
	if a.Score == nil || *a.Score != 0.8 {
		t.Errorf("score = %v, want 0.8", a.Score)
	}

	// 上游以 0.66 為界，0.66 會被標成 high；以分數重新分級為 medium
	a = Assess(&AnalysisResponse{RiskScore: ptr(0.66), RiskLevel: "high"})
	if a.Level != RiskMedium {
		t.Errorf("level = %q, want medium", a.Level)
	}
}

func TestAssessFallsBackToLabel(t *testing.T) {
	a := Assess(&AnalysisResponse{RiskLevel: "medium"})
	if a.Level != RiskMedium || a.Score != nil {
		t.Errorf("assessment = %+v, want medium without score", a)
	}

	a = Assess(&AnalysisResponse{})
	if a.Level != RiskNone {
		t.Errorf("level = %q, want none", a.Level)
	}

	a = Assess(nil)
	if a.Level != RiskNone || a.Factors == nil {
		t.Errorf("Assess(nil) = %+v", a)
	}
}

func TestAssessClampsScore(t *testing.T) {
	a := Assess(&AnalysisResponse{RiskScore: ptr(1.4)})
	if a.Level != RiskHigh || *a.Score != 1 {
		t.Errorf("assessment = %v/%v, want high/1", a.Level, *a.Score)
	}
	if got := a.ScoreText(); got != "1.00" {
		t.Errorf("ScoreText() = %q, want 1.00", got)
	}
}

func TestAssessDedupesFactors(t *testing.T) {
	a := Assess(&AnalysisResponse{
		RiskFactors: []string{"Added sugars", "High sodium / salt", "Added sugars", "Whole grains"},
	})
	want := []string{"Added sugars", "High sodium / salt", "Whole grains"}
	if len(a.Factors) != len(want) {
		t.Fatalf("factors = %v, want %v", a.Factors, want)
	}
	for i := range want {
		if a.Factors[i] != want[i] {
			t.Errorf("factor %d = %q, want %q", i, a.Factors[i], want[i])
		}
	}
}

func TestRiskAssessmentJSON(t *testing.T) {
	data, err := json.Marshal(RiskAssessment{Factors: []string{}})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"level":null,"score":null,"factors":[]}` {
		t.Errorf("json = %s", data)
	}

	data, err = json.Marshal(RiskAssessment{Level: RiskHigh, Score: ptr(0.8), Factors: []string{"x"}})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"level":"high","score":0.8,"factors":["x"]}` {
		t.Errorf("json = %s", data)
	}
}

func TestRiskLevelSummary(t *testing.T) {
	if RiskHigh.Summary() != "Overall: highly unsafe for consumption" {
		t.Errorf("high summary = %q", RiskHigh.Summary())
	}
	if RiskNone.Summary() != "Overall:" {
		t.Errorf("none summary = %q", RiskNone.Summary())
	}
}
