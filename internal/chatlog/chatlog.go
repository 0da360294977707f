// Package chatlog stores the ordered, append-only conversation transcript.
// The in-memory log is the default; a Redis-backed log with a session TTL is
// available for running the demo behind a stateless frontend.
package chatlog

import (
	"context"
	"sync"

	"blinkbot/pkg"
)

// Log is an append-only ordered message store. Implementations never mutate
// or drop messages within a session; Clear is only used when switching
// persona, which starts a fresh conversation.
type Log interface {
	Append(ctx context.Context, msg pkg.Message) error
	Messages(ctx context.Context) ([]pkg.Message, error)
	Clear(ctx context.Context) error
}

// MemoryLog keeps the transcript in process memory.
type MemoryLog struct {
	mu   sync.RWMutex
	msgs []pkg.Message
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

func (l *MemoryLog) Append(_ context.Context, msg pkg.Message) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, msg)
	return nil
}

func (l *MemoryLog) Messages(_ context.Context) ([]pkg.Message, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]pkg.Message, len(l.msgs))
	copy(out, l.msgs)
	return out, nil
}

func (l *MemoryLog) Clear(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = nil
	return nil
}
