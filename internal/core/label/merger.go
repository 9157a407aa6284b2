package label

import "strings"

const (
	// UnnamedIngredient 結構化卡片缺少名稱時的預設名稱
	UnnamedIngredient = "Unnamed ingredient"
	// MissingExplanation 結構化卡片缺少說明與摘要時的預設說明
	MissingExplanation = "—"
)

// BuildCards 產生最終的卡片列表。
// 回應帶有非空的結構化卡片時只使用它們，否則改為解析 Analysis 文字，兩者不混用。
func BuildCards(resp *AnalysisResponse) []IngredientCard {
	if resp == nil {
		return make([]IngredientCard, 0)
	}
	if len(resp.Cards) == 0 {
		return ParseToCards(resp.Analysis)
	}

	cards := make([]IngredientCard, 0, len(resp.Cards))
	for _, c := range resp.Cards {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			name = UnnamedIngredient
		}

		explanation := strings.TrimSpace(c.Explanation)
		if explanation == "" {
			explanation = strings.TrimSpace(c.Summary)
		}
		if explanation == "" {
			explanation = MissingExplanation
		}

		icon, category := Categorize(name)
		if c.Icon != "" {
			icon = c.Icon
		}
		if c.Category != "" {
			category = Category(c.Category)
		}

		cards = append(cards, IngredientCard{
			Name:        name,
			Explanation: explanation,
			Category:    category,
			Icon:        icon,
		})
	}
	return cards
}
