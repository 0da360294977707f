package session

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"blinkbot/internal/chatlog"
	"blinkbot/internal/config"
	"blinkbot/pkg"
)

// Manager owns the single active session and handles persona resets. The
// prototype serves one conversation at a time; switching persona discards the
// transcript and starts over.
type Manager struct {
	mu      sync.Mutex
	current *Session

	log       chatlog.Log
	assistant config.AssistantConfig
	logger    zerolog.Logger
	newRand   func() *rand.Rand
}

// ManagerOptions configures a Manager. A nil NewRand seeds each session from
// the wall clock.
type ManagerOptions struct {
	Log       chatlog.Log
	Assistant config.AssistantConfig
	Logger    zerolog.Logger
	NewRand   func() *rand.Rand
}

// NewManager creates a manager with a session already started for persona.
func NewManager(ctx context.Context, persona Persona, opts ManagerOptions) (*Manager, error) {
	if opts.Log == nil {
		opts.Log = chatlog.NewMemoryLog()
	}
	if opts.NewRand == nil {
		opts.NewRand = func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		}
	}

	m := &Manager{
		log:       opts.Log,
		assistant: opts.Assistant,
		logger:    opts.Logger,
		newRand:   opts.NewRand,
	}
	if _, err := m.Reset(ctx, persona); err != nil {
		return nil, err
	}
	return m, nil
}

// Session returns the active session.
func (m *Manager) Session() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Reset clears the transcript and starts a fresh session for persona,
// returning its welcome messages.
func (m *Manager) Reset(ctx context.Context, persona Persona) ([]pkg.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.log.Clear(ctx); err != nil {
		return nil, err
	}

	m.logger.Info().Str("persona", string(persona)).Msg("session reset")
	m.current = New(persona, Options{
		Log:       m.log,
		Rand:      m.newRand(),
		Assistant: m.assistant,
		Logger:    m.logger,
	})
	return m.current.Start(ctx)
}
