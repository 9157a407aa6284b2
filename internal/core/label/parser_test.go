package label

import "testing"

func TestParseToCardsBulletsWithDuplicates(t *testing.T) {
	cards := ParseToCards("• Sugar: sweetener\n• Sugar: duplicate\n- Salt: seasoning")

	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2: %+v", len(cards), cards)
	}
	if cards[0].Name != "Sugar" || cards[0].Explanation != "sweetener" {
		t.Errorf("first card = %+v, want Sugar/sweetener", cards[0])
	}
	if cards[0].Category != CategorySugar || cards[0].Icon != "🍬" {
		t.Errorf("first card category = %q icon = %q", cards[0].Category, cards[0].Icon)
	}
	if cards[1].Name != "Salt" || cards[1].Explanation != "seasoning" {
		t.Errorf("second card = %+v, want Salt/seasoning", cards[1])
	}
	if cards[1].Category != CategorySodium {
		t.Errorf("second card category = %q, want Sodium", cards[1].Category)
	}
}

func TestParseToCardsWithoutBullets(t *testing.T) {
	cards := ParseToCards("Wheat Flour\nPalm Oil")

	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}
	wantNames := []string{"Wheat Flour", "Palm Oil"}
	for i, want := range wantNames {
		if cards[i].Name != want {
			t.Errorf("card %d name = %q, want %q", i, cards[i].Name, want)
		}
		if cards[i].Explanation != PlaceholderExplanation {
			t.Errorf("card %d explanation = %q, want placeholder", i, cards[i].Explanation)
		}
	}
	if cards[0].Category != CategoryCarbohydrate || cards[1].Category != CategoryFats {
		t.Errorf("categories = %q, %q", cards[0].Category, cards[1].Category)
	}
}

func TestParseToCardsBulletsPreferred(t *testing.T) {
	text := "Ingredient analysis (rule-based demo):\n\n" +
		"You entered 2 ingredient(s): sugar, salt\n\n" +
		"• sugar: Simple sugar or sweetener.\n" +
		"• salt: Source of sodium.\n\n" +
		"This explanation and risk score are generated by a lightweight model."

	cards := ParseToCards(text)
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2: %+v", len(cards), cards)
	}
	if cards[0].Name != "sugar" || cards[1].Name != "salt" {
		t.Errorf("names = %q, %q", cards[0].Name, cards[1].Name)
	}
}

func TestParseToCardsEdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantNames []string
		wantExpl  []string
	}{
		{
			name:      "empty text",
			text:      "",
			wantNames: nil,
		},
		{
			name:      "blank lines only",
			text:      "\n  \n\t\n",
			wantNames: nil,
		},
		{
			name:      "empty name dropped",
			text:      "• : orphan explanation\n• Oats: fibre",
			wantNames: []string{"Oats"},
			wantExpl:  []string{"fibre"},
		},
		{
			name:      "split on first colon only",
			text:      "- Note: ratio 1:2",
			wantNames: []string{"Note"},
			wantExpl:  []string{"ratio 1:2"},
		},
		{
			name:      "case-insensitive dedupe keeps first",
			text:      "sugar: first\nSUGAR: second\nSugar",
			wantNames: []string{"sugar"},
			wantExpl:  []string{"first"},
		},
		{
			name:      "dash without space is not a bullet",
			text:      "-Sugar: a\nSalt: b",
			wantNames: []string{"-Sugar", "Salt"},
			wantExpl:  []string{"a", "b"},
		},
		{
			name:      "indented bullet",
			text:      "   •   Whey :  milk protein  ",
			wantNames: []string{"Whey"},
			wantExpl:  []string{"milk protein"},
		},
		{
			name:      "bullet with empty explanation",
			text:      "• Palm oil:",
			wantNames: []string{"Palm oil"},
			wantExpl:  []string{PlaceholderExplanation},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := ParseToCards(tt.text)
			if cards == nil {
				t.Fatal("ParseToCards returned nil slice")
			}
			if len(cards) != len(tt.wantNames) {
				t.Fatalf("got %d cards %+v, want %d", len(cards), cards, len(tt.wantNames))
			}
			for i := range cards {
				if cards[i].Name != tt.wantNames[i] {
					t.Errorf("card %d name = %q, want %q", i, cards[i].Name, tt.wantNames[i])
				}
				if tt.wantExpl != nil && cards[i].Explanation != tt.wantExpl[i] {
					t.Errorf("card %d explanation = %q, want %q", i, cards[i].Explanation, tt.wantExpl[i])
				}
			}
		})
	}
}
