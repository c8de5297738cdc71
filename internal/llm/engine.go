// Package llm turns student records into structured assessments by calling a
// pluggable reasoning engine, with bounded retry and a deterministic fallback
// for every failure path.
package llm

import (
	"context"
	"fmt"
	"strings"
)

// Engine is the reasoning capability boundary: one natural-language brief in,
// raw response text out. The response is expected to be a JSON assessment,
// possibly wrapped in a fenced code block.
type Engine interface {
	Name() string
	GenerateAssessment(ctx context.Context, prompt string) (string, error)
}

// NewEngine selects an engine implementation by name.
func NewEngine(name, baseURL, apiKey, modelName string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "openai", "gpt":
		return NewOpenAIEngine(baseURL, apiKey, modelName), nil
	case "gemini":
		return NewGeminiEngine(apiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unknown engine %q: use openai or gemini", name)
	}
}

// stripCodeFences removes a leading ```json (or bare ```) fence and the
// trailing ``` so the payload can be parsed as JSON.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
