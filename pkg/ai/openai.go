package ai

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/docbrief/docbrief/pkg/config"
)

// OpenAIClient implements Completer using the official openai-go SDK
// (chat completions). A custom base URL lets it point at any
// OpenAI-compatible endpoint.
type OpenAIClient struct {
	model string
	opts  []option.RequestOption
}

// NewOpenAIClient creates a client from the LLM configuration
func NewOpenAIClient(cfg *config.LLMConfig) (*OpenAIClient, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("llm api key missing; provide LLM_API_KEY")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	return &OpenAIClient{model: cfg.Model, opts: opts}, nil
}

// Complete sends a single-user-message chat completion and returns the
// assistant content.
func (o *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	client := openai.NewClient(o.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
