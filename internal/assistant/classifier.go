package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"smartspend/internal/category"
	"smartspend/internal/llm"
)

const (
	classifyTemperature = 0.2
	classifyMaxTokens   = 10
)

var classifySystemPrompt = fmt.Sprintf(
	"You are an assistant that categorizes expense descriptions. "+
		"Classify the expense into exactly one of these categories: %s. "+
		"Respond with only the category name in lowercase, nothing else.",
	category.Names(),
)

// Classification is the outcome of one classify call. Degraded is set when
// the remote call failed and the category came from a fallback.
type Classification struct {
	Category category.Category
	Degraded bool
}

// Classifier maps an expense description to a category via the LLM.
type Classifier struct {
	llm           llm.Client
	log           *slog.Logger
	localFallback bool
}

// NewClassifier returns a classifier. With localFallback set, a failed remote
// call is answered by keyword matching instead of category.Other.
func NewClassifier(client llm.Client, log *slog.Logger, localFallback bool) *Classifier {
	return &Classifier{llm: client, log: log, localFallback: localFallback}
}

// Classify never fails: the returned category is always a member of the fixed set.
func (c *Classifier) Classify(ctx context.Context, description string) Classification {
	reply, err := c.llm.Complete(ctx, llm.Prompt{
		System:      classifySystemPrompt,
		User:        fmt.Sprintf("Expense description: %q", description),
		Temperature: classifyTemperature,
		MaxTokens:   classifyMaxTokens,
	})
	if err != nil {
		fallback := category.Other
		if c.localFallback {
			fallback = category.Guess(description)
		}
		c.log.Warn("remote categorization failed", "err", err, "fallback", fallback)
		return Classification{Category: fallback, Degraded: true}
	}
	cat := category.Match(reply)
	c.log.Debug("categorized expense", "reply", reply, "category", cat)
	return Classification{Category: cat}
}
