package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/pavelanni/sahayak/internal/model"
)

// Retry bounds for one assessment call. Transient failures back off
// exponentially from the initial interval, capped per attempt, until the
// overall deadline runs out.
const (
	defaultInitialInterval = 1 * time.Second
	defaultMaxInterval     = 60 * time.Second
	defaultDeadline        = 120 * time.Second
)

// Requester resolves one record into one assessment. Every failure path ends
// in the fallback assessment; Assess never reports an error to its caller.
type Requester struct {
	engine          Engine
	initialInterval time.Duration
	maxInterval     time.Duration
	deadline        time.Duration
}

// Option adjusts a Requester.
type Option func(*Requester)

// WithBackoff overrides the retry bounds. Used by tests to avoid real waits.
func WithBackoff(initial, max, deadline time.Duration) Option {
	return func(r *Requester) {
		r.initialInterval = initial
		r.maxInterval = max
		r.deadline = deadline
	}
}

// NewRequester creates a requester around the given engine.
func NewRequester(engine Engine, opts ...Option) *Requester {
	r := &Requester{
		engine:          engine,
		initialInterval: defaultInitialInterval,
		maxInterval:     defaultMaxInterval,
		deadline:        defaultDeadline,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Assess builds the brief for one record, invokes the reasoning engine with
// bounded retry, and parses and validates the response. Any service error,
// parse failure, or shape violation resolves to the fallback assessment for
// this record; a partially valid response is never propagated.
func (r *Requester) Assess(ctx context.Context, rec model.StudentRecord) model.Assessment {
	prompt := BuildAssessmentPrompt(rec)

	raw, err := backoff.RetryWithData(func() (string, error) {
		out, err := r.engine.GenerateAssessment(ctx, prompt)
		if err != nil {
			if isTransient(err) {
				return "", err
			}
			return "", backoff.Permanent(err)
		}
		return out, nil
	}, r.newBackOff(ctx))
	if err != nil {
		slog.Warn("reasoning service failed, using fallback",
			"student", rec.Name, "engine", r.engine.Name(), "error", err)
		return FallbackAssessment(rec)
	}

	a, err := ParseAssessment(raw)
	if err != nil {
		slog.Warn("unusable reasoning response, using fallback",
			"student", rec.Name, "engine", r.engine.Name(), "error", err)
		return FallbackAssessment(rec)
	}
	return a
}

func (r *Requester) newBackOff(ctx context.Context) backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.initialInterval
	bo.Multiplier = 2
	bo.MaxInterval = r.maxInterval
	bo.MaxElapsedTime = r.deadline
	return backoff.WithContext(bo, ctx)
}

// ParseAssessment unwraps any code fence, parses the payload as JSON, and
// checks the shape invariants.
func ParseAssessment(raw string) (model.Assessment, error) {
	payload := stripCodeFences(raw)
	if payload == "" {
		return model.Assessment{}, fmt.Errorf("empty response payload")
	}

	var a model.Assessment
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		return model.Assessment{}, fmt.Errorf("parse assessment: %w", err)
	}
	if err := a.Validate(); err != nil {
		return model.Assessment{}, err
	}
	return a, nil
}
