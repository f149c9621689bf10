// Package category holds the closed set of expense categories and the rules
// for turning free text into one of them.
package category

import (
	"fmt"
	"strings"
)

// Category is one of the fixed expense labels.
type Category string

const (
	Food           Category = "food"
	Transportation Category = "transportation"
	Housing        Category = "housing"
	Utilities      Category = "utilities"
	Entertainment  Category = "entertainment"
	Shopping       Category = "shopping"
	Travel         Category = "travel"
	Health         Category = "health"
	Education      Category = "education"
	Other          Category = "other"
)

// all is ordered; Match depends on this order for tie-breaks.
var all = []Category{
	Food,
	Transportation,
	Housing,
	Utilities,
	Entertainment,
	Shopping,
	Travel,
	Health,
	Education,
	Other,
}

var messages = map[Category]string{
	Food:           "This looks like a food expense.",
	Transportation: "This is categorized as transportation.",
	Housing:        "This is a housing-related expense.",
	Utilities:      "This falls under utilities.",
	Entertainment:  "This is categorized as entertainment.",
	Shopping:       "This appears to be a shopping expense.",
	Travel:         "This is a travel expense.",
	Health:         "This is a health-related expense.",
	Education:      "This is an education expense.",
	Other:          "This doesn't fit our standard categories.",
}

// All returns the categories in their fixed order.
func All() []Category {
	out := make([]Category, len(all))
	copy(out, all)
	return out
}

// Names returns the category names joined for use in prompts.
func Names() string {
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Valid reports whether c is a member of the fixed set.
func (c Category) Valid() bool {
	for _, known := range all {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string { return string(c) }

// Message returns the friendly sentence shown next to a category.
func (c Category) Message() string {
	if msg, ok := messages[c]; ok {
		return msg
	}
	return fmt.Sprintf("Categorized as %s.", c)
}

// Match normalizes a model reply into a category. The reply is lowercased
// and trimmed, then the first category in fixed order whose name is a
// substring wins. Anything else is Other.
func Match(reply string) Category {
	cleaned := strings.ToLower(strings.TrimSpace(reply))
	if cleaned == "" {
		return Other
	}
	for _, c := range all {
		if strings.Contains(cleaned, string(c)) {
			return c
		}
	}
	return Other
}
