package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiEngine calls the Gemini API, asking for a JSON response directly.
// The underlying client is built on first use and reused for every
// assessment of the run.
type GeminiEngine struct {
	apiKey    string
	modelName string

	once    sync.Once
	client  *genai.Client
	initErr error
}

// NewGeminiEngine creates a Gemini engine.
func NewGeminiEngine(apiKey, modelName string) *GeminiEngine {
	return &GeminiEngine{
		apiKey:    strings.TrimSpace(apiKey),
		modelName: strings.TrimSpace(modelName),
	}
}

// Name identifies the engine in logs.
func (e *GeminiEngine) Name() string { return "gemini" }

func (e *GeminiEngine) generativeClient(ctx context.Context) (*genai.Client, error) {
	e.once.Do(func() {
		e.client, e.initErr = genai.NewClient(ctx, option.WithAPIKey(e.apiKey))
	})
	return e.client, e.initErr
}

// GenerateAssessment sends the brief and returns the first text part of the
// first candidate.
func (e *GeminiEngine) GenerateAssessment(ctx context.Context, prompt string) (string, error) {
	if e.apiKey == "" {
		return "", errors.New("gemini: API key is empty")
	}
	cl, err := e.generativeClient(ctx)
	if err != nil {
		return "", fmt.Errorf("gemini: create client: %w", err)
	}

	m := cl.GenerativeModel(e.modelName)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0.3),
		ResponseMIMEType: "application/json",
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	txt := firstText(resp)
	if txt == "" {
		return "", errors.New("gemini: empty response")
	}
	return txt, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
