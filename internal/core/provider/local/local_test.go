package local

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/freyasheth/foodbuddy/internal/core/label"
)

func TestExplain(t *testing.T) {
	p := New(nil)
	book := DefaultRuleBook()

	tests := []struct {
		name       string
		wantPrefix string
	}{
		{"x", "This does not look like a real ingredient name."},
		{"cane sugar", "Simple sugar or sweetener."},
		{"sucralose", "Intense (low-calorie) sweetener."},
		{"sea salt", "Source of sodium."},
		{"monosodium glutamate", "Source of sodium."},
		{"flavor enhancer", "Flavour enhancer (often MSG)."},
		{"olive oil", "Vegetable oil."},
		{"palm kernel oil", "Palm-based fat."},
		{"partially hydrogenated soybean oil", "Hydrogenated fat."},
		{"butter fat", "Added oil or fat."},
		{"wheat flour", "Refined flour or starch."},
		{"whole wheat flour", "Whole-grain flour or starch."},
		{"whey protein concentrate", "Concentrated protein ingredient."},
		{"inulin", "Added dietary fibre."},
		{"citric acid", "Food acid used for flavour and preservation."},
		{"soy lecithin", "Emulsifier or stabiliser."},
		{"e150d", "Food colour."},
		{"caramel color", "Food colour."},
		{"e202", "Preservative."},
		{"vitamin c", "Added vitamin or mineral."},
		{"cocoa powder", "Common food ingredient or blend."},
		{"1234", "Unusual term"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Explain(tt.name)
			if !strings.HasPrefix(got, tt.wantPrefix) {
				t.Errorf("Explain(%q) = %q, want prefix %q", tt.name, got, tt.wantPrefix)
			}
		})
	}

	if p.Explain("  X  ") != book.TooShort {
		t.Error("single letter after trimming should be treated as too short")
	}
}

func TestScore(t *testing.T) {
	p := New(nil)

	tests := []struct {
		name        string
		items       []string
		wantScore   float64
		wantFactors []string
	}{
		{
			name:        "no signals",
			items:       []string{"water", "cocoa"},
			wantScore:   0,
			wantFactors: []string{"No strong positive or negative signals detected"},
		},
		{
			name:        "sugar keywords counted once each",
			items:       []string{"sugar", "sugar", "glucose syrup"},
			wantScore:   0.75,
			wantFactors: []string{"Added sugars"},
		},
		{
			name:        "instant noodles",
			items:       []string{"wheat flour", "palm oil", "salt", "monosodium glutamate", "flavor enhancer", "dehydrated vegetables"},
			wantScore:   1,
			wantFactors: []string{"High sodium / salt", "Saturated / hydrogenated fats", "Preservatives / flavour enhancers"},
		},
		{
			name:        "whole grains lower the score",
			items:       []string{"corn flour", "sugar", "whole grain oats", "salt", "malt extract", "artificial flavor"},
			wantScore:   0.35,
			wantFactors: []string{"Added sugars", "High sodium / salt", "Whole grains"},
		},
		{
			name:        "clamped at zero",
			items:       []string{"whole grain oats", "inulin"},
			wantScore:   0,
			wantFactors: []string{"Whole grains", "Added fibre"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, factors := p.Score(tt.items)
			if math.Abs(score-tt.wantScore) > 1e-9 {
				t.Errorf("score = %v, want %v", score, tt.wantScore)
			}
			if strings.Join(factors, "|") != strings.Join(tt.wantFactors, "|") {
				t.Errorf("factors = %v, want %v", factors, tt.wantFactors)
			}
		})
	}
}

func TestAnalyze(t *testing.T) {
	p := New(nil)

	resp, err := p.Analyze(context.Background(), "sugar, salt, , palm oil")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if !strings.HasPrefix(resp.Analysis, "Ingredient analysis (rule-based demo):\n") {
		t.Errorf("analysis header missing: %q", resp.Analysis)
	}
	if !strings.Contains(resp.Analysis, "You entered 3 ingredient(s): sugar, salt, palm oil") {
		t.Errorf("analysis count line missing: %q", resp.Analysis)
	}

	cards := label.ParseToCards(resp.Analysis)
	if len(cards) != 3 {
		t.Fatalf("parsed %d cards, want 3: %+v", len(cards), cards)
	}
	if cards[2].Name != "palm oil" || !strings.HasPrefix(cards[2].Explanation, "Palm-based fat.") {
		t.Errorf("card 2 = %+v", cards[2])
	}

	if resp.RiskScore == nil || *resp.RiskScore != 0.75 {
		t.Errorf("risk score = %v, want 0.75", resp.RiskScore)
	}
	if resp.RiskLevel != "high" {
		t.Errorf("risk level = %q, want high", resp.RiskLevel)
	}
}

func TestAnalyzeOwnCutoffDiffersFromClassifier(t *testing.T) {
	p := New(&RuleBook{
		TooShort: "short", Generic: "generic", Unknown: "unknown",
		Scores: []ScoreRule{{Factor: "test", Keywords: []string{"a"}, Weight: 0.665}},
	})

	resp, err := p.Analyze(context.Background(), "abc")
	if err != nil {
		t.Fatal(err)
	}
	if resp.RiskLevel != "high" {
		t.Errorf("provider level = %q, want high", resp.RiskLevel)
	}
	if got := label.Assess(resp).Level; got != label.RiskMedium {
		t.Errorf("assessed level = %q, want medium", got)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	resp, err := New(nil).Analyze(context.Background(), " , ,")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Analysis != "No ingredients provided." || resp.RiskLevel != "low" {
		t.Errorf("resp = %+v", resp)
	}
	if len(resp.RiskFactors) != 1 || resp.RiskFactors[0] != "No data" {
		t.Errorf("factors = %v", resp.RiskFactors)
	}
}

func TestAnalyzeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(nil).Analyze(ctx, "sugar"); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestLoadRuleBook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `
explanations:
  - name: cocoa
    any: [cocoa]
    explanation: Cocoa solids.
scores:
  - factor: Chocolate
    keywords: [cocoa]
    weight: 0.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	book, err := LoadRuleBook(path)
	if err != nil {
		t.Fatalf("LoadRuleBook: %v", err)
	}
	if len(book.Explanations) != 1 || len(book.Scores) != 1 {
		t.Fatalf("book = %+v", book)
	}
	if book.Generic != DefaultRuleBook().Generic {
		t.Error("missing sections should keep defaults")
	}

	p := New(book)
	if got := p.Explain("cocoa powder"); got != "Cocoa solids." {
		t.Errorf("Explain = %q", got)
	}
	if got := p.Explain("sugar"); got != book.Generic {
		t.Errorf("replaced explanations should drop built-in sugar rule, got %q", got)
	}
	score, factors := p.Score([]string{"cocoa powder"})
	if score != 0.5 || len(factors) != 1 || factors[0] != "Chocolate" {
		t.Errorf("score = %v factors = %v", score, factors)
	}
}

func TestLoadRuleBookErrors(t *testing.T) {
	if _, err := LoadRuleBook("/nonexistent/rules.yaml"); err == nil {
		t.Error("expected error for missing file")
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("explanations:\n  - name: empty\n    explanation: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRuleBook(bad); err == nil || !strings.Contains(err.Error(), "no keywords") {
		t.Errorf("err = %v, want keyword validation error", err)
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("scores: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRuleBook(broken); err == nil {
		t.Error("expected parse error")
	}
}
