package analysis

// Example 範例標籤
type Example struct {
	Label       string `json:"label"`
	Ingredients string `json:"ingredients"`
}

var examples = []Example{
	{
		Label:       "Breakfast cereal",
		Ingredients: "corn flour, sugar, whole grain oats, salt, malt extract, artificial flavor",
	},
	{
		Label:       "Instant noodles",
		Ingredients: "wheat flour, palm oil, salt, monosodium glutamate, flavor enhancer, dehydrated vegetables",
	},
	{
		Label:       "Protein bar",
		Ingredients: "whey protein concentrate, soy protein isolate, sugar, cocoa powder, palm kernel oil, emulsifier, flavoring",
	},
}

// Examples 回傳範例標籤的副本
func Examples() []Example {
	out := make([]Example, len(examples))
	copy(out, examples)
	return out
}
