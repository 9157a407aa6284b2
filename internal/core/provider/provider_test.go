package provider

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/freyasheth/foodbuddy/internal/infrastructure/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*config.Config)
		wantName string
		wantErr  bool
	}{
		{"local", func(*config.Config) {}, "local", false},
		{"remote", func(c *config.Config) { c.Provider.Mode = config.ProviderRemote }, "remote", false},
		{"openrouter", func(c *config.Config) {
			c.Provider.Mode = config.ProviderOpenRouter
			c.OpenRouter.APIKey = "sk-test"
		}, "openrouter", false},
		{"unknown", func(c *config.Config) { c.Provider.Mode = "magic" }, "", true},
		{"missing rules file", func(c *config.Config) { c.Provider.RulesFile = "/nonexistent/rules.yaml" }, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)

			p, err := New(cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			defer p.Close()
			if p.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.wantName)
			}
		})
	}
}

func TestNewLocalWithRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	rules := "explanations:\n  - name: water\n    any: [water]\n    explanation: Just water.\n"
	if err := os.WriteFile(path, []byte(rules), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Provider.RulesFile = path

	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	resp, err := p.Analyze(context.Background(), "water")
	if err != nil {
		t.Fatal(err)
	}
	if want := "• water: Just water."; !containsLine(resp.Analysis, want) {
		t.Errorf("analysis %q missing line %q", resp.Analysis, want)
	}
}

func containsLine(text, line string) bool {
	for _, l := range strings.Split(text, "\n") {
		if l == line {
			return true
		}
	}
	return false
}
