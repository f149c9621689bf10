package category

import "strings"

type keywordRule struct {
	category Category
	words    []string
}

// Rules are checked top to bottom; the first rule with any hit wins.
var keywordRules = []keywordRule{
	{Food, []string{"restaurant", "food", "dinner", "lunch", "breakfast", "coffee"}},
	{Transportation, []string{"uber", "taxi", "bus", "train", "gas", "car"}},
	{Housing, []string{"rent", "mortgage", "home"}},
	{Utilities, []string{"electricity", "water", "bill", "internet", "phone"}},
	{Entertainment, []string{"movie", "netflix", "spotify", "concert", "game"}},
	{Shopping, []string{"amazon", "mall", "store", "buy", "purchase"}},
	{Health, []string{"doctor", "medicine", "hospital", "health"}},
	{Education, []string{"course", "book", "tuition", "class", "school"}},
	{Travel, []string{"hotel", "flight", "vacation", "trip", "travel"}},
}

// Guess classifies a description locally by keyword. It never calls out and
// is used only when the remote classifier is unavailable.
func Guess(description string) Category {
	desc := strings.ToLower(description)
	for _, rule := range keywordRules {
		for _, w := range rule.words {
			if strings.Contains(desc, w) {
				return rule.category
			}
		}
	}
	return Other
}
