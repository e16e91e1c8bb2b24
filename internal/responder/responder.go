package responder

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// TokenMethodAPI marks token counts reported by the provider API.
const TokenMethodAPI = "API"

// TokenMethodApproximate marks token counts estimated locally.
const TokenMethodApproximate = "APPROXIMATE"

// Message is one turn of the conversation sent to a responder.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Reply is a responder's answer to one prompt, with usage accounting
// when the provider reports it.
type Reply struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
	TokenMethod      string
	Cost             float64
	UpstreamCost     float64
}

// TotalTokens returns the combined token count for a reply.
func (r Reply) TotalTokens() int {
	return r.PromptTokens + r.CompletionTokens
}

// Responder produces a guess given the conversation so far. Implementations
// are a remote model call or a scripted stand-in; failures are classified
// through CallError.
type Responder interface {
	Propose(ctx context.Context, messages []Message) (Reply, error)
}

// ErrorKind classifies a responder failure.
type ErrorKind string

const (
	// KindTransient marks retryable failures: network errors, rate
	// limits, and provider 5xx responses.
	KindTransient ErrorKind = "transient"
	// KindPermanent marks non-retryable failures that end the trial as
	// an infrastructure failure.
	KindPermanent ErrorKind = "permanent"
	// KindMalformed marks a response that carried no usable answer; it
	// counts as an invalid guess, not an infrastructure failure.
	KindMalformed ErrorKind = "malformed"
)

// CallError is a classified responder failure. Retry logic is a plain loop
// over these typed outcomes.
type CallError struct {
	Kind       ErrorKind
	Status     int
	RetryAfter time.Duration
	Err        error
}

// Error renders the classified failure.
func (e *CallError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("responder call failed (%s, status %d): %v", e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("responder call failed (%s): %v", e.Kind, e.Err)
}

// Unwrap exposes the underlying error.
func (e *CallError) Unwrap() error {
	return e.Err
}

// Transient wraps an error as a retryable failure.
func Transient(err error) *CallError {
	return &CallError{Kind: KindTransient, Err: err}
}

// Permanent wraps an error as a non-retryable failure.
func Permanent(err error) *CallError {
	return &CallError{Kind: KindPermanent, Err: err}
}

// Malformed wraps an error as an unusable-response failure.
func Malformed(err error) *CallError {
	return &CallError{Kind: KindMalformed, Err: err}
}

// KindOf returns the classification of an error, defaulting unclassified
// errors to permanent so they are never silently retried.
func KindOf(err error) ErrorKind {
	var callErr *CallError
	if errors.As(err, &callErr) {
		return callErr.Kind
	}
	return KindPermanent
}
