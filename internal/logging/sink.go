package logging

import "github.com/google/uuid"

// ExchangeRecord captures one responder call for the exchange log.
type ExchangeRecord struct {
	RunID            string  `json:"run_id"`
	ExchangeID       string  `json:"exchange_id"`
	Model            string  `json:"model"`
	PuzzleID         int     `json:"puzzle_id"`
	Trial            int     `json:"trial"`
	GuessIndex       int     `json:"guess_index"`
	Request          string  `json:"request"`
	Response         string  `json:"response"`
	Thinking         string  `json:"thinking,omitempty"`
	Guess            string  `json:"guess,omitempty"`
	Confidence       string  `json:"confidence,omitempty"`
	LatencyMS        int64   `json:"latency_ms"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	Cost             float64 `json:"cost,omitempty"`
	UpstreamCost     float64 `json:"upstream_cost,omitempty"`
	Result           string  `json:"result"`
}

// Sink accepts exchange and summary records as a fire-and-forget stream.
// Implementations must never fail the caller; trial correctness does not
// depend on the sink.
type Sink interface {
	Exchange(record ExchangeRecord)
	Summary(record any)
}

// NewExchangeID returns a fresh exchange identifier.
func NewExchangeID() string {
	return uuid.NewString()
}

// Nop discards all records.
type Nop struct{}

// Exchange discards the record.
func (Nop) Exchange(ExchangeRecord) {}

// Summary discards the record.
func (Nop) Summary(any) {}

// Multi fans records out to several sinks.
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

type multiSink []Sink

func (m multiSink) Exchange(record ExchangeRecord) {
	for _, sink := range m {
		sink.Exchange(record)
	}
}

func (m multiSink) Summary(record any) {
	for _, sink := range m {
		sink.Summary(record)
	}
}
