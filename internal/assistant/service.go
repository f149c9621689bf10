// Package assistant validates expense and finance-question requests and
// dispatches them to the remote model.
package assistant

import (
	"context"
	"log/slog"

	"smartspend/internal/category"
	"smartspend/internal/events"
	"smartspend/internal/llm"
)

// CategorizationResult is returned for a categorize call.
type CategorizationResult struct {
	Category category.Category `json:"category"`
	Message  string            `json:"message"`
	Degraded bool              `json:"-"`
}

// QueryResult is returned for a finance question.
type QueryResult struct {
	Response string `json:"response"`
	Degraded bool   `json:"-"`
}

// Service is the request handler core shared by every transport.
type Service struct {
	classifier *Classifier
	responder  *Responder
	events     events.Publisher
	log        *slog.Logger
}

// Options tunes a Service.
type Options struct {
	LocalFallback bool
	Events        events.Publisher
}

func NewService(client llm.Client, log *slog.Logger, opts Options) *Service {
	pub := opts.Events
	if pub == nil {
		pub = events.Noop{}
	}
	return &Service{
		classifier: NewClassifier(client, log, opts.LocalFallback),
		responder:  NewResponder(client, log),
		events:     pub,
		log:        log,
	}
}

// Categorize validates req and classifies its description. Only validation
// errors are returned; remote failures degrade to a fallback category.
func (s *Service) Categorize(ctx context.Context, req ExpenseRequest) (CategorizationResult, error) {
	if err := req.Validate(); err != nil {
		return CategorizationResult{}, err
	}
	c := s.classifier.Classify(ctx, req.text())

	ev := events.New(events.TypeCategorized)
	ev.Category = c.Category.String()
	ev.Degraded = c.Degraded
	s.publish(ctx, ev)

	return CategorizationResult{
		Category: c.Category,
		Message:  c.Category.Message(),
		Degraded: c.Degraded,
	}, nil
}

// Query validates req and answers it. Only validation errors are returned;
// remote failures degrade to FallbackAnswer.
func (s *Service) Query(ctx context.Context, req QueryRequest) (QueryResult, error) {
	if err := req.Validate(); err != nil {
		return QueryResult{}, err
	}
	a := s.responder.Answer(ctx, req.text())

	ev := events.New(events.TypeAnswered)
	ev.Degraded = a.Degraded
	s.publish(ctx, ev)

	return QueryResult{Response: a.Text, Degraded: a.Degraded}, nil
}

func (s *Service) publish(ctx context.Context, ev events.Event) {
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn("failed to publish event", "type", ev.Type, "id", ev.ID, "err", err)
	}
}
