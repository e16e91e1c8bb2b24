package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// JSONL writes exchange and summary records as JSON lines. Writes are
// serialized with a mutex so concurrent trials can share one sink; write
// failures are swallowed because the sink must never fail a trial.
type JSONL struct {
	mu     sync.Mutex
	writer io.Writer
	closer io.Closer
	now    func() time.Time
}

// NewJSONLFile creates a JSONL sink backed by a log file under dir.
func NewJSONLFile(dir, runID string) (*JSONL, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("connections_eval_%s.jsonl", runID))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &JSONL{writer: file, closer: file, now: time.Now}, nil
}

// NewJSONL creates a JSONL sink over an arbitrary writer.
func NewJSONL(w io.Writer) *JSONL {
	return &JSONL{writer: w, now: time.Now}
}

// Exchange writes one exchange record line.
func (l *JSONL) Exchange(record ExchangeRecord) {
	l.write("Exchange logged", record)
}

// Summary writes one summary record line.
func (l *JSONL) Summary(record any) {
	l.write("Run summary", record)
}

// Close flushes and closes the underlying file, if any.
func (l *JSONL) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

type line struct {
	Timestamp string          `json:"timestamp"`
	Level     string          `json:"level"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

func (l *JSONL) write(message string, record any) {
	data, err := json.Marshal(record)
	if err != nil {
		return
	}
	payload, err := json.Marshal(line{
		Timestamp: l.now().UTC().Format(time.RFC3339),
		Level:     "INFO",
		Message:   message,
		Data:      data,
	})
	if err != nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.writer.Write(append(payload, '\n'))
}
