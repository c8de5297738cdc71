package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEngine calls any OpenAI-compatible chat completion endpoint.
type OpenAIEngine struct {
	api       *openai.Client
	modelName string
}

// NewOpenAIEngine creates an engine for the given endpoint. An empty baseURL
// uses the default OpenAI API.
func NewOpenAIEngine(baseURL, apiKey, modelName string) *OpenAIEngine {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIEngine{
		api:       openai.NewClientWithConfig(config),
		modelName: modelName,
	}
}

// Name identifies the engine in logs.
func (e *OpenAIEngine) Name() string { return "openai" }

// GenerateAssessment sends the brief as a single user message and returns the
// raw response text.
func (e *OpenAIEngine) GenerateAssessment(ctx context.Context, prompt string) (string, error) {
	resp, err := e.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("reasoning API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("reasoning service returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
