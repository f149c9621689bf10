package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	DefaultBaseURL = "https://api.mistral.ai/v1/"
	DefaultModel   = "mistral-tiny"
	DefaultTimeout = 10 * time.Second
)

// Options configures an OpenAIClient. Zero values fall back to the defaults above.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAIClient calls an OpenAI-compatible Chat Completions API. Mistral's
// endpoint speaks the same protocol, so only the base URL differs.
type OpenAIClient struct {
	model   openai.ChatModel
	timeout time.Duration
	client  *openai.Client
}

// NewOpenAIClient builds a client that makes exactly one attempt per call.
func NewOpenAIClient(opts Options) (*OpenAIClient, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(opts.BaseURL, "/") {
		opts.BaseURL += "/"
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	cli := openai.NewClient(
		option.WithAPIKey(opts.APIKey),
		option.WithBaseURL(opts.BaseURL),
		option.WithMaxRetries(0),
	)
	return &OpenAIClient{
		model:   openai.ChatModel(opts.Model),
		timeout: opts.Timeout,
		client:  &cli,
	}, nil
}

// Complete sends p and returns the first choice's text.
func (c *OpenAIClient) Complete(ctx context.Context, p Prompt) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("nil openai client")
	}
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    buildMessages(p.System, p.User),
		Temperature: openai.Float(p.Temperature),
	}
	if p.MaxTokens > 0 {
		params.MaxTokens = openai.Int(p.MaxTokens)
	}
	resp, err := c.client.Chat.Completions.New(reqCtx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

func buildMessages(system, user string) []openai.ChatCompletionMessageParamUnion {
	return []openai.ChatCompletionMessageParamUnion{
		{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(system),
				},
			},
		},
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfString: openai.String(user),
				},
			},
		},
	}
}
