package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Syncer keeps the user profile in step with the tokens: it fetches once on
// start and again after every TokensChanged event. It is the only caller that
// re-runs FetchProfile after a silent refresh.
type Syncer struct {
	Manager *Manager
	Logger  *slog.Logger
	Timeout time.Duration

	events <-chan Event
	detach func()
	// ctx bounds every fetch; Stop cancels it so an in-flight request does
	// not hold shutdown for the full Timeout.
	ctx      context.Context
	abort    context.CancelFunc
	stopCh   chan struct{}
	doneCh   chan struct{}
	started  bool
	stopOnce sync.Once
}

func NewSyncer(m *Manager, logger *slog.Logger, timeout time.Duration) *Syncer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{
		Manager: m,
		Logger:  logger,
		Timeout: timeout,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// Start subscribes to the manager and begins the worker. Call Stop to shut
// it down. Start must be called at most once.
func (s *Syncer) Start() {
	s.ctx, s.abort = context.WithCancel(context.Background())
	s.events, s.detach = s.Manager.Subscribe()
	s.started = true
	go s.run()
	s.Logger.Info("profile syncer started")
}

// Stop cancels an in-flight fetch and waits for the worker to exit. It is a
// no-op on a syncer that was never started, and safe to call twice.
func (s *Syncer) Stop() {
	if !s.started {
		return
	}
	s.stopOnce.Do(func() {
		s.abort()
		close(s.stopCh)
		<-s.doneCh
		s.detach()
		s.Logger.Info("profile syncer stopped")
	})
}

func (s *Syncer) run() {
	defer close(s.doneCh)

	s.sync()

	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				return
			}
			if ev.Kind == TokensChanged {
				s.sync()
			}
		case <-s.stopCh:
			return
		}
	}
}

func (s *Syncer) sync() {
	ctx, cancel := context.WithTimeout(s.ctx, s.Timeout)
	defer cancel()

	err := s.Manager.FetchProfile(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrStale):
		s.Logger.Debug("profile fetch superseded")
	case errors.Is(err, context.Canceled):
		s.Logger.Debug("profile fetch cancelled")
	default:
		s.Logger.Warn("profile sync failed", "error", err)
	}
}
