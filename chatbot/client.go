package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Model produces a reply for a single user message
type Model interface {
	Reply(ctx context.Context, text string) (string, error)
}

// EchoModel replies with the user's text. It needs no model endpoint.
type EchoModel struct{}

// Reply returns text unchanged
func (EchoModel) Reply(ctx context.Context, text string) (string, error) {
	return text, nil
}

// AIClient is a Model backed by an OpenAI-compatible chat completions API
type AIClient struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewAIClient creates a new AI client. An empty endpoint uses the OpenAI API.
func NewAIClient(endpoint, apiKey, model string, maxTokens int) *AIClient {
	cfg := openai.DefaultConfig(apiKey)
	if endpoint != "" {
		cfg.BaseURL = strings.TrimSuffix(endpoint, "/")
	}

	return &AIClient{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: maxTokens,
	}
}

// Reply makes a single-turn, non-streaming chat request
func (c *AIClient) Reply(ctx context.Context, text string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response from AI")
	}

	return resp.Choices[0].Message.Content, nil
}
