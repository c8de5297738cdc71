package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pavelanni/sahayak/internal/model"
)

// fakeEngine scripts responses for the requester without any network.
type fakeEngine struct {
	response string
	err      error
	calls    int
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) GenerateAssessment(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

var testRecord = model.StudentRecord{
	Name:     "Arjun",
	Grade:    "Class 4",
	Subject:  "Mathematics",
	Remark:   "struggles with word problems",
	ExamDate: "2024-12-15",
}

func fastRequester(e Engine) *Requester {
	return NewRequester(e, WithBackoff(time.Millisecond, time.Millisecond, 10*time.Millisecond))
}

func validResponse(t *testing.T) string {
	t.Helper()
	a := FallbackAssessment(testRecord)
	a.AcademicPerformance.SubjectMastery = 9
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestAssessParsesValidResponse(t *testing.T) {
	engine := &fakeEngine{response: validResponse(t)}

	a := fastRequester(engine).Assess(context.Background(), testRecord)

	if a.AcademicPerformance == nil || a.AcademicPerformance.SubjectMastery != 9 {
		t.Errorf("Assess() did not return the engine's assessment: %+v", a.AcademicPerformance)
	}
}

func TestAssessParsesFencedResponse(t *testing.T) {
	engine := &fakeEngine{response: "```json\n" + validResponse(t) + "\n```"}

	a := fastRequester(engine).Assess(context.Background(), testRecord)

	if a.AcademicPerformance == nil || a.AcademicPerformance.SubjectMastery != 9 {
		t.Error("fenced JSON response was not parsed")
	}
}

func TestAssessFallsBack(t *testing.T) {
	tests := []struct {
		name   string
		engine *fakeEngine
	}{
		{"engine error", &fakeEngine{err: errors.New("boom")}},
		{"malformed json", &fakeEngine{response: "not json at all"}},
		{"empty response", &fakeEngine{response: "```json\n```"}},
		{"out of range score", &fakeEngine{response: `{"academic_performance": {"subject_mastery": 15, "comprehension_level": 6, "application_skills": 6, "problem_solving": 6, "retention_rate": 6}}`}},
	}
	want := FallbackAssessment(testRecord)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fastRequester(tt.engine).Assess(context.Background(), testRecord)
			if !reflect.DeepEqual(got, want) {
				t.Error("Assess() did not resolve to the fallback assessment")
			}
		})
	}
}

func TestAssessDoesNotRetryPermanentErrors(t *testing.T) {
	engine := &fakeEngine{err: errors.New("invalid api key")}

	fastRequester(engine).Assess(context.Background(), testRecord)

	if engine.calls != 1 {
		t.Errorf("engine called %d times, want 1 for a permanent error", engine.calls)
	}
}

func TestAssessRetriesTransientErrors(t *testing.T) {
	engine := &fakeEngine{err: &openai.APIError{HTTPStatusCode: http.StatusInternalServerError}}

	fastRequester(engine).Assess(context.Background(), testRecord)

	if engine.calls < 2 {
		t.Errorf("engine called %d times, want at least 2 for a transient error", engine.calls)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limit", &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}, true},
		{"server error", &openai.APIError{HTTPStatusCode: http.StatusBadGateway}, true},
		{"auth error", &openai.APIError{HTTPStatusCode: http.StatusUnauthorized}, false},
		{"deadline", context.DeadlineExceeded, true},
		{"plain error", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTransient(tt.err); got != tt.want {
				t.Errorf("isTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}  ", `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFences(tt.in); got != tt.want {
				t.Errorf("stripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
