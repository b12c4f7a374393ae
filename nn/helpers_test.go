package nn

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// recordedLog is a slog.Handler that captures warning messages so
// tests can assert on warning conditions.
type recordedLog struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordedLog) Enabled(context.Context, slog.Level) bool { return true }

func (r *recordedLog) Handle(_ context.Context, rec slog.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, rec.Message)
	return nil
}

func (r *recordedLog) WithAttrs([]slog.Attr) slog.Handler { return r }
func (r *recordedLog) WithGroup(string) slog.Handler      { return r }

func (r *recordedLog) contains(sub string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if strings.Contains(m, sub) {
			return true
		}
	}
	return false
}

func (r *recordedLog) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

// newTestChain builds a chain whose warnings are captured.
func newTestChain() (*Chain, *recordedLog) {
	rec := &recordedLog{}
	return NewChain(WithLogger(slog.New(rec))), rec
}
