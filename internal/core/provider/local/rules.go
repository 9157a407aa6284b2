package local

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ExplanationRule 成分說明規則，命中 Any 任一子字串或 Prefixes 任一前綴即成立。
// Variants 在規則成立後依序細分，第一個命中的變體優先。
type ExplanationRule struct {
	Name        string            `yaml:"name"`
	Any         []string          `yaml:"any"`
	Prefixes    []string          `yaml:"prefixes"`
	Explanation string            `yaml:"explanation"`
	Variants    []ExplanationRule `yaml:"variants"`
}

// match 回傳命中的說明
func (r ExplanationRule) match(lower string) (string, bool) {
	if !r.hits(lower) {
		return "", false
	}
	for _, v := range r.Variants {
		if expl, ok := v.match(lower); ok {
			return expl, true
		}
	}
	return r.Explanation, true
}

func (r ExplanationRule) hits(lower string) bool {
	for _, kw := range r.Any {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, p := range r.Prefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// ScoreRule 風險分數規則。PerKeyword 為 true 時每個命中的關鍵字各加一次權重。
type ScoreRule struct {
	Factor     string   `yaml:"factor"`
	Keywords   []string `yaml:"keywords"`
	Weight     float64  `yaml:"weight"`
	PerKeyword bool     `yaml:"per_keyword"`
}

// RuleBook 本地分析規則
type RuleBook struct {
	TooShort     string            `yaml:"too_short"`
	Generic      string            `yaml:"generic"`
	Unknown      string            `yaml:"unknown"`
	Explanations []ExplanationRule `yaml:"explanations"`
	Scores       []ScoreRule       `yaml:"scores"`
	NoSignals    string            `yaml:"no_signals"`
}

// LoadRuleBook 從 YAML 載入規則，檔案中沒有的段落沿用預設規則
func LoadRuleBook(path string) (*RuleBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	book := DefaultRuleBook()
	if err := yaml.Unmarshal(data, book); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}
	if err := book.Validate(); err != nil {
		return nil, fmt.Errorf("rules %s: %w", path, err)
	}
	return book, nil
}

// Validate 檢查規則是否可用
func (b *RuleBook) Validate() error {
	if b.TooShort == "" || b.Generic == "" || b.Unknown == "" {
		return fmt.Errorf("fallback explanations must not be empty")
	}
	for i, r := range b.Explanations {
		if err := validateExplanation(r); err != nil {
			return fmt.Errorf("explanation rule %d: %w", i, err)
		}
	}
	for i, r := range b.Scores {
		if r.Factor == "" || len(r.Keywords) == 0 {
			return fmt.Errorf("score rule %d: factor and keywords are required", i)
		}
	}
	return nil
}

func validateExplanation(r ExplanationRule) error {
	if len(r.Any) == 0 && len(r.Prefixes) == 0 {
		return fmt.Errorf("rule %q has no keywords", r.Name)
	}
	if r.Explanation == "" {
		return fmt.Errorf("rule %q has no explanation", r.Name)
	}
	for _, v := range r.Variants {
		if err := validateExplanation(v); err != nil {
			return err
		}
	}
	return nil
}

// DefaultRuleBook 內建規則
func DefaultRuleBook() *RuleBook {
	return &RuleBook{
		TooShort: "This does not look like a real ingredient name. " +
			"FoodBuddy is treating it as a placeholder or typo.",
		Generic: "Common food ingredient or blend. Health impact depends on portion size " +
			"and the rest of the recipe; usually not a major concern on its own.",
		Unknown: "Unusual term that FoodBuddy does not recognise as a standard ingredient. " +
			"It may be a code, typo, or highly technical name; you may want to cross-check " +
			"it if it appears often in your diet.",
		NoSignals: "No strong positive or negative signals detected",
		Explanations: []ExplanationRule{
			{
				Name: "sugar",
				Any:  []string{"sugar", "glucose", "fructose", "sucrose", "syrup", "dextrose", "maltose", "honey", "corn syrup"},
				Explanation: "Simple sugar or sweetener. Provides quick energy but can spike blood sugar " +
					"if eaten in large amounts, especially in drinks or snacks.",
			},
			{
				Name: "intense sweetener",
				Any:  []string{"aspartame", "acesulfame", "sucralose", "stevia", "saccharin", "acesulfame k"},
				Explanation: "Intense (low-calorie) sweetener. Reduces calories compared with sugar, but " +
					"some people prefer to limit frequent use and watch for individual tolerance.",
			},
			{
				Name: "sodium",
				Any:  []string{"salt", "sodium", "nacl", "monosodium"},
				Explanation: "Source of sodium. Necessary in small amounts, but high intake is linked to " +
					"raised blood pressure. People with hypertension should especially moderate it.",
			},
			{
				Name: "flavour enhancer",
				Any:  []string{"monosodium glutamate", "msg", "flavour enhancer", "flavor enhancer", "e621"},
				Explanation: "Flavour enhancer (often MSG). Generally regarded as safe for most people, " +
					"but some report sensitivity such as headaches after very large amounts.",
			},
			{
				Name: "oil",
				Any:  []string{"oil", "fat", "shortening"},
				Explanation: "Added oil or fat. Concentrated source of calories; health impact depends " +
					"on the type of fat and how often it is eaten.",
				Variants: []ExplanationRule{
					{
						Name: "vegetable oil",
						Any:  []string{"olive", "canola", "sunflower"},
						Explanation: "Vegetable oil. Primarily a source of fats and calories. When not " +
							"overused and minimally processed, can fit into a balanced diet.",
					},
					{
						Name: "palm",
						Any:  []string{"palm", "palm kernel"},
						Explanation: "Palm-based fat. Often used in processed foods for texture and shelf " +
							"life. Tends to be higher in saturated fat; best kept in moderation.",
					},
					{
						Name: "hydrogenated",
						Any:  []string{"hydrogenated", "partially hydrogenated"},
						Explanation: "Hydrogenated fat. May contain trans fats, which are strongly linked to " +
							"heart-disease risk. Many guidelines recommend avoiding these where possible.",
					},
				},
			},
			{
				Name: "flour",
				Any:  []string{"flour", "starch", "semolina"},
				Explanation: "Refined flour or starch. Main source of carbohydrates but relatively low " +
					"in fibre and micronutrients compared with whole-grain options.",
				Variants: []ExplanationRule{
					{
						Name: "whole grain",
						Any:  []string{"whole", "wholegrain", "whole grain"},
						Explanation: "Whole-grain flour or starch. Provides carbohydrates plus fibre and " +
							"micronutrients; generally a better choice than refined flour.",
					},
				},
			},
			{
				Name: "protein",
				Any:  []string{"whey protein", "casein", "soy protein", "pea protein", "protein isolate"},
				Explanation: "Concentrated protein ingredient. Helps increase protein content, useful " +
					"for satiety and muscle maintenance when part of a balanced diet.",
			},
			{
				Name: "fibre",
				Any:  []string{"fibre", "fiber", "inulin", "psyllium"},
				Explanation: "Added dietary fibre. Supports digestion and can help with fullness. " +
					"May cause bloating in sensitive individuals if consumed in large amounts.",
			},
			{
				Name: "acid",
				Any:  []string{"citric acid", "ascorbic acid", "acetic acid"},
				Explanation: "Food acid used for flavour and preservation. Common and generally regarded " +
					"as safe at typical food levels.",
			},
			{
				Name: "emulsifier",
				Any: []string{"emulsifier", "stabiliser", "stabilizer", "thickener", "lecithin",
					"mono- and diglycerides", "xanthan gum", "guar gum", "carrageenan"},
				Explanation: "Emulsifier or stabiliser. Helps keep texture smooth and ingredients mixed. " +
					"Usually eaten in small quantities; some people prefer to limit frequent use.",
			},
			{
				Name:     "colour",
				Any:      []string{"colour", "color"},
				Prefixes: []string{"e1"},
				Explanation: "Food colour. Used purely for appearance. Most approved colours are safe " +
					"for the general population, though a few individuals may be sensitive.",
			},
			{
				Name:     "preservative",
				Any:      []string{"preservative"},
				Prefixes: []string{"e2"},
				Explanation: "Preservative. Extends shelf life and prevents spoilage. Acceptable within " +
					"regulatory limits, but frequent heavy reliance on highly preserved foods " +
					"often coincides with more processed diets overall.",
			},
			{
				Name: "micronutrient",
				Any:  []string{"vitamin", "iron", "zinc", "calcium", "magnesium", "folic acid", "niacin", "riboflavin"},
				Explanation: "Added vitamin or mineral. Used to fortify the food so it contributes more " +
					"micronutrients. Generally a positive addition when not over-supplemented.",
			},
		},
		Scores: []ScoreRule{
			{Factor: "Added sugars", Keywords: []string{"sugar", "glucose", "fructose", "syrup", "dextrose", "maltose"}, Weight: 0.25, PerKeyword: true},
			{Factor: "High sodium / salt", Keywords: []string{"salt", "sodium", "monosodium"}, Weight: 0.25, PerKeyword: true},
			{Factor: "Saturated / hydrogenated fats", Keywords: []string{"palm oil", "palm kernel", "hydrogenated"}, Weight: 0.25},
			{Factor: "Preservatives / flavour enhancers", Keywords: []string{"preservative", "flavour enhancer", "flavor enhancer", "e2"}, Weight: 0.15},
			{Factor: "Whole grains", Keywords: []string{"whole grain", "wholegrain"}, Weight: -0.15},
			{Factor: "Added fibre", Keywords: []string{"fibre", "fiber", "inulin", "psyllium"}, Weight: -0.1},
		},
	}
}
