package service

import (
	"context"
	"sync"
	"time"

	"github.com/account-compliance-api/internal/config"
	"github.com/account-compliance-api/internal/repository"
	"github.com/rs/zerolog"
)

// sessionService evicts idle sessions in the background
type sessionService struct {
	repo    repository.SessionRepository
	cfg     config.SessionConfig
	log     zerolog.Logger
	now     func() time.Time
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
	mu      sync.Mutex
}

// newSessionService creates a new SessionService
func newSessionService(repo repository.SessionRepository, cfg config.SessionConfig, log zerolog.Logger) *sessionService {
	return &sessionService{
		repo: repo,
		cfg:  cfg,
		log:  log.With().Str("service", "session").Logger(),
		now:  time.Now,
	}
}

// StartJanitor launches the eviction loop and returns. The loop runs until
// ctx is cancelled or StopJanitor is called.
func (s *sessionService) StartJanitor(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	s.log.Info().
		Dur("ttl", s.cfg.TTL).
		Dur("interval", s.cfg.SweepInterval).
		Msg("Session janitor started")

	go s.run(ctx, s.done)
}

func (s *sessionService) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("Session janitor stopping")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// StopJanitor stops the eviction loop and waits for it to exit
func (s *sessionService) StopJanitor() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.cancel()
	done := s.done
	s.running = false
	s.mu.Unlock()

	<-done
	s.log.Info().Msg("Session janitor stopped")
}

// sweep removes sessions idle for longer than the TTL
func (s *sessionService) sweep(ctx context.Context) {
	removed, err := s.repo.DeleteIdleSince(ctx, s.now().Add(-s.cfg.TTL))
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to evict idle sessions")
		return
	}
	if removed > 0 {
		s.log.Info().Int("evicted", removed).Msg("Idle sessions evicted")
	}
}

// Count returns the number of live sessions
func (s *sessionService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
