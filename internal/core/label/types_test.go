package label

import (
	"encoding/json"
	"testing"
)

func TestAnalysisResponseUnmarshal(t *testing.T) {
	raw := `{
		"analysis": "• Salt: seasoning",
		"cards": [{"name": "Salt", "explanation": "seasons food"}, "bogus", {"name": 42, "summary": null}],
		"risk_score": 0.8,
		"risk_factors": ["High sodium / salt", 7, null, ""],
		"risk_level": "low",
		"extra": true
	}`

	var resp AnalysisResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp.Analysis != "• Salt: seasoning" {
		t.Errorf("analysis = %q", resp.Analysis)
	}
	if len(resp.Cards) != 3 {
		t.Fatalf("cards = %+v", resp.Cards)
	}
	if resp.Cards[0].Name != "Salt" || resp.Cards[0].Explanation != "seasons food" {
		t.Errorf("card 0 = %+v", resp.Cards[0])
	}
	if resp.Cards[1] != (ProviderCard{}) {
		t.Errorf("card 1 = %+v, want empty", resp.Cards[1])
	}
	if resp.Cards[2].Name != "42" {
		t.Errorf("card 2 name = %q, want 42", resp.Cards[2].Name)
	}
	if resp.RiskScore == nil || *resp.RiskScore != 0.8 {
		t.Errorf("risk score = %v", resp.RiskScore)
	}
	wantFactors := []string{"High sodium / salt", "7", "", ""}
	if len(resp.RiskFactors) != len(wantFactors) {
		t.Fatalf("risk factors = %q, want %q", resp.RiskFactors, wantFactors)
	}
	for i, want := range wantFactors {
		if resp.RiskFactors[i] != want {
			t.Errorf("risk factor %d = %q, want %q", i, resp.RiskFactors[i], want)
		}
	}
	if resp.RiskLevel != "low" {
		t.Errorf("risk level = %q", resp.RiskLevel)
	}
}

func TestAnalysisResponseUnmarshalLoose(t *testing.T) {
	raw := `{"analysis": null, "cards": {"not": "a list"}, "risk_score": "0.9", "risk_factors": "nope"}`

	var resp AnalysisResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Analysis != "" || resp.Cards != nil || resp.RiskScore != nil || resp.RiskFactors != nil {
		t.Errorf("resp = %+v, want all fields absent", resp)
	}

	if err := json.Unmarshal([]byte(`[1,2]`), &resp); err == nil {
		t.Error("expected error for non-object response")
	}
}

func TestAnalysisResponseNullFields(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantLevel   RiskLevel
		wantScore   bool
		wantCards   int
		wantFactors []string
	}{
		{
			name:      "null score falls back to provider label",
			raw:       `{"analysis": "", "risk_score": null, "risk_level": "high"}`,
			wantLevel: RiskHigh,
		},
		{
			name:      "null level without score",
			raw:       `{"analysis": "", "risk_score": null, "risk_level": null}`,
			wantLevel: RiskNone,
		},
		{
			name:      "null level with score",
			raw:       `{"analysis": "", "risk_score": 0.5, "risk_level": null}`,
			wantLevel: RiskMedium,
			wantScore: true,
		},
		{
			name:      "null cards use parsed analysis",
			raw:       `{"analysis": "• Salt: seasoning\n• Sugar: sweetener", "cards": null}`,
			wantLevel: RiskNone,
			wantCards: 2,
		},
		{
			name:        "null factors and null entries",
			raw:         `{"analysis": "", "risk_factors": ["0", 0, false, null, "0"]}`,
			wantLevel:   RiskNone,
			wantFactors: []string{"0", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp AnalysisResponse
			if err := json.Unmarshal([]byte(tt.raw), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if resp.Cards != nil {
				t.Errorf("cards = %+v, want nil", resp.Cards)
			}

			a := Assess(&resp)
			if a.Level != tt.wantLevel {
				t.Errorf("level = %q, want %q", a.Level, tt.wantLevel)
			}
			if (a.Score != nil) != tt.wantScore {
				t.Errorf("score = %v, want present=%v", a.Score, tt.wantScore)
			}
			if len(a.Factors) != len(tt.wantFactors) {
				t.Fatalf("factors = %q, want %q", a.Factors, tt.wantFactors)
			}
			for i, want := range tt.wantFactors {
				if a.Factors[i] != want {
					t.Errorf("factor %d = %q, want %q", i, a.Factors[i], want)
				}
			}

			if cards := BuildCards(&resp); len(cards) != tt.wantCards {
				t.Errorf("cards = %+v, want %d", cards, tt.wantCards)
			}
		})
	}
}

func TestEndToEndStructuredResponse(t *testing.T) {
	raw := `{"analysis": "", "cards": [{"name": "Salt", "explanation": "seasons food"}], "risk_score": 0.8, "risk_level": "low"}`

	var resp AnalysisResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	cards := BuildCards(&resp)
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	if cards[0].Name != "Salt" || cards[0].Explanation != "seasons food" || cards[0].Category != CategorySodium {
		t.Errorf("card = %+v", cards[0])
	}

	if level := Assess(&resp).Level; level != RiskHigh {
		t.Errorf("level = %q, want high", level)
	}
}
