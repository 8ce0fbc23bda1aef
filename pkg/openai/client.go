package openai

import (
	"context"
	"errors"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/config"
)

var errAPIKeyRequired = errors.New("openai api key is required")

// Completer is the narrow surface the insight and suggestion services need.
// Tests swap in a stub; production wires *Client.
type Completer interface {
	Complete(ctx context.Context, model, system, user string) (string, error)
}

// Client wraps the chat-completion API used to turn metric bundles into
// human-readable insights.
type Client struct {
	api           openai.Client
	fastModel     string
	advancedModel string
	timeout       time.Duration
}

// New builds the LLM client. A missing API key returns an error so callers
// can fall back to the rule path explicitly.
func New(cfg config.OpenAIConfig) (*Client, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, errAPIKeyRequired
	}

	opts := []option.RequestOption{option.WithAPIKey(key)}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 25 * time.Second
	}

	return &Client{
		api:           openai.NewClient(opts...),
		fastModel:     cfg.FastModel,
		advancedModel: cfg.AdvancedModel,
		timeout:       timeout,
	}, nil
}

// FastModel is the default model for page-level insight batches.
func (c *Client) FastModel() string {
	return c.fastModel
}

// AdvancedModel is used for the per-item explainer.
func (c *Client) AdvancedModel() string {
	return c.advancedModel
}

// Complete sends one system+user exchange and returns the raw assistant
// text. The call carries an absolute wall-clock timeout; on expiry the
// context error propagates and callers fall back to rule-based output.
func (c *Client) Complete(ctx context.Context, model, system, user string) (string, error) {
	if c == nil {
		return "", errors.New("openai client not configured")
	}
	if model == "" {
		model = c.fastModel
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	}

	completion, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
