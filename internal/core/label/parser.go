package label

import (
	"regexp"
	"strings"
)

// PlaceholderExplanation 解析文字時找不到說明所使用的文字
const PlaceholderExplanation = "No explanation was returned for this ingredient. (Tip: update the backend to return structured cards.)"

var bulletPrefix = regexp.MustCompile(`^[\s\p{Z}\x{FEFF}]*(?:•|-)[\s\p{Z}\x{FEFF}]+`)

// ParseToCards 將分析服務的自由文字轉為食材卡片。
//
// 有項目符號（"•" 或 "-" 加空白）的行存在時只採用這些行，否則每個非空行都視為一項食材。
// 每行以第一個冒號切分名稱與說明；名稱為空的行略過。
// 名稱以不分大小寫去重，保留第一次出現的順序。
func ParseToCards(analysisText string) []IngredientCard {
	cards := make([]IngredientCard, 0)
	if analysisText == "" {
		return cards
	}

	var lines, bullets []string
	for _, l := range strings.Split(analysisText, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
		if bulletPrefix.MatchString(l) {
			bullets = append(bullets, l)
		}
	}

	source := lines
	if len(bullets) > 0 {
		source = bullets
	}

	seen := make(map[string]struct{}, len(source))
	for _, line := range source {
		body := strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))

		name, explanation := body, ""
		if idx := strings.Index(body, ":"); idx >= 0 {
			name, explanation = body[:idx], body[idx+1:]
		}
		name = strings.TrimSpace(name)
		explanation = strings.TrimSpace(explanation)
		if name == "" {
			continue
		}

		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if explanation == "" {
			explanation = PlaceholderExplanation
		}
		icon, category := Categorize(name)
		cards = append(cards, IngredientCard{
			Name:        name,
			Explanation: explanation,
			Category:    category,
			Icon:        icon,
		})
	}

	return cards
}
