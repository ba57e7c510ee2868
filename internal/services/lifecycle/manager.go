package lifecycle

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
)

// StopFunc tears down one component.
type StopFunc func(ctx context.Context) error

type entry struct {
	name string
	stop StopFunc
}

// Manager unwinds the startup sequence. Components push a stop hook as they
// come up and Shutdown walks the stack in reverse, so the HTTP server stops
// before the stores it writes to.
type Manager struct {
	grace  time.Duration
	logger *zap.Logger

	mu    sync.Mutex
	stack []entry
	done  bool
}

func New(grace time.Duration, logger *zap.Logger) *Manager {
	if grace <= 0 {
		grace = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{grace: grace, logger: logger}
}

// Register pushes a stop hook onto the shutdown stack.
func (m *Manager) Register(name string, stop StopFunc) {
	if stop == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stack = append(m.stack, entry{name: name, stop: stop})
}

// RegisterCloser registers a component that only needs Close called.
func (m *Manager) RegisterCloser(name string, c io.Closer) {
	if c == nil {
		return
	}
	m.Register(name, func(context.Context) error { return c.Close() })
}

// Shutdown stops every registered component in reverse registration order
// within the grace period. It runs at most once; later calls are no-ops.
func (m *Manager) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, m.grace)
	defer cancel()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done {
		return nil
	}
	m.done = true

	started := time.Now()
	var errs []error
	for i := len(m.stack) - 1; i >= 0; i-- {
		e := m.stack[i]
		if err := e.stop(ctx); err != nil {
			m.logger.Error("component stop failed",
				zap.String("component", e.name),
				zap.Error(err))
			errs = append(errs, err)
			continue
		}
		m.logger.Debug("component stopped", zap.String("component", e.name))
	}

	m.logger.Info("shutdown complete",
		zap.Int("components", len(m.stack)),
		zap.Duration("elapsed", time.Since(started)))
	return errors.Join(errs...)
}
