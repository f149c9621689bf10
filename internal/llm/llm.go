package llm

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when the endpoint answers without any usable text.
var ErrEmptyCompletion = errors.New("llm: no choices returned")

// Prompt is a single system+user exchange.
type Prompt struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int64
}

// Client is a minimal chat-completion interface to allow pluggable providers.
type Client interface {
	Complete(ctx context.Context, p Prompt) (string, error)
}
