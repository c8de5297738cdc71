package llm

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestGeminiEngineRequiresAPIKey(t *testing.T) {
	e := NewGeminiEngine("   ", "gemini-2.0-flash")

	if _, err := e.GenerateAssessment(context.Background(), "brief"); err == nil {
		t.Error("GenerateAssessment() accepted an empty API key")
	}
}

func TestFirstText(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{"nil response", nil, ""},
		{"no candidates", &genai.GenerateContentResponse{}, ""},
		{
			"nil content skipped",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: nil},
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("hello")}}},
			}},
			"hello",
		},
		{
			"first text part wins",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("one"), genai.Text("two")}}},
			}},
			"one",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstText(tt.resp); got != tt.want {
				t.Errorf("firstText() = %q, want %q", got, tt.want)
			}
		})
	}
}
