package assistant

import (
	"context"
	"log/slog"
	"strings"

	"smartspend/internal/llm"
)

// FallbackAnswer is returned whenever the remote endpoint cannot be reached.
const FallbackAnswer = "I'm having trouble connecting to my knowledge base. Please try again later."

const (
	answerTemperature = 0.7
	answerMaxTokens   = 300

	answerSystemPrompt = "You are an AI assistant for personal finance. " +
		"You can answer questions about expense categories, provide tips for financial management, " +
		"and give advice on budgeting. Provide a helpful, concise response that directly addresses " +
		"the query. Limit your response to 3 paragraphs maximum."
)

// Answer is the outcome of one query.
type Answer struct {
	Text     string
	Degraded bool
}

// Responder answers free-text finance questions.
type Responder struct {
	llm llm.Client
	log *slog.Logger
}

func NewResponder(client llm.Client, log *slog.Logger) *Responder {
	return &Responder{llm: client, log: log}
}

// Answer passes the model's reply through trimmed; on failure it returns FallbackAnswer.
func (r *Responder) Answer(ctx context.Context, query string) Answer {
	reply, err := r.llm.Complete(ctx, llm.Prompt{
		System:      answerSystemPrompt,
		User:        query,
		Temperature: answerTemperature,
		MaxTokens:   answerMaxTokens,
	})
	if err != nil {
		r.log.Warn("remote query failed", "err", err)
		return Answer{Text: FallbackAnswer, Degraded: true}
	}
	return Answer{Text: strings.TrimSpace(reply)}
}
