package juicebottler

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// captureEntry is one recorded log record.
type captureEntry struct {
	message string
	level   slog.Level
}

// captureStore is a shared, thread-safe store for log records. Handlers
// derived via WithAttrs write to the same store.
type captureStore struct {
	mu      sync.Mutex
	entries []captureEntry
}

func (s *captureStore) append(e captureEntry) {
	s.mu.Lock()
	s.entries = append(s.entries, e)
	s.mu.Unlock()
}

func (s *captureStore) all() []captureEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]captureEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// captureHandler is a slog.Handler that records log messages and levels for
// test assertions.
type captureHandler struct {
	store *captureStore
}

func newCaptureHandler() *captureHandler {
	return &captureHandler{store: &captureStore{}}
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.store.append(captureEntry{message: r.Message, level: r.Level})
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *captureHandler) WithGroup(string) slog.Handler { return h }

// messages returns just the recorded message strings.
func (h *captureHandler) messages() []string {
	entries := h.store.all()
	msgs := make([]string, len(entries))
	for i, e := range entries {
		msgs[i] = e.message
	}
	return msgs
}

// findByMessage returns the entries whose message starts with prefix.
func (h *captureHandler) findByMessage(prefix string) []captureEntry {
	var out []captureEntry
	for _, e := range h.store.all() {
		if strings.HasPrefix(e.message, prefix) {
			out = append(out, e)
		}
	}
	return out
}
