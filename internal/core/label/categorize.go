package label

import "strings"

// categoryRule 依序比對的關鍵字規則
type categoryRule struct {
	keywords []string
	category Category
	icon     string
}

// categoryRules 順序即優先序：同時命中多組時取第一組
var categoryRules = []categoryRule{
	{keywords: []string{"sugar", "syrup", "glucose", "fructose", "dextrose", "maltodextrin"}, category: CategorySugar, icon: "🍬"},
	{keywords: []string{"salt", "sodium"}, category: CategorySodium, icon: "🧂"},
	{keywords: []string{"oil", "fat", "kernel", "shortening"}, category: CategoryFats, icon: "🧈"},
	{keywords: []string{"nitrate", "nitrite"}, category: CategoryPreservative, icon: "🧪"},
	{keywords: []string{"flour", "starch"}, category: CategoryCarbohydrate, icon: "🌾"},
	{keywords: []string{"protein", "whey", "casein"}, category: CategoryProtein, icon: "💪"},
	{keywords: []string{"fiber", "oats", "whole grain"}, category: CategoryWholeGrains, icon: "🌿"},
}

const neutralIcon = "🥦"

// Categorize 依名稱中的關鍵字推斷圖示與分類，沒有命中時為 Neutral
func Categorize(name string) (icon string, category Category) {
	lower := strings.ToLower(name)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.icon, rule.category
			}
		}
	}
	return neutralIcon, CategoryNeutral
}

// CategoryInfo 分類與其圖示
type CategoryInfo struct {
	Category Category `json:"category"`
	Icon     string   `json:"icon"`
	Keywords []string `json:"keywords"`
}

// Categories 依比對順序列出所有分類，最後為 Neutral
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, 0, len(categoryRules)+1)
	for _, rule := range categoryRules {
		out = append(out, CategoryInfo{
			Category: rule.category,
			Icon:     rule.icon,
			Keywords: append([]string(nil), rule.keywords...),
		})
	}
	out = append(out, CategoryInfo{Category: CategoryNeutral, Icon: neutralIcon, Keywords: []string{}})
	return out
}
