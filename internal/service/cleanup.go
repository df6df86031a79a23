package service

import (
	"context"
	"log"
	"sync"
	"time"

	"magicgatherer-api/internal/repository"
)

// DefaultCleanupInterval is how often expired reset tokens are purged.
const DefaultCleanupInterval = time.Hour

// CleanupScheduler periodically deletes expired password reset tokens.
// Expired tokens are already rejected on use; this only reclaims rows.
type CleanupScheduler struct {
	repo     repository.ResetTokenRepository
	interval time.Duration
	now      func() time.Time

	ticker    *time.Ticker
	stopCh    chan struct{}
	stopOnce  sync.Once
	isRunning bool
	mu        sync.Mutex
}

// NewCleanupScheduler creates a new cleanup scheduler. A non-positive
// interval selects DefaultCleanupInterval.
func NewCleanupScheduler(repo repository.ResetTokenRepository, interval time.Duration) *CleanupScheduler {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	return &CleanupScheduler{
		repo:     repo,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic purge. Calling Start twice is a no-op.
func (s *CleanupScheduler) Start() {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.ticker = time.NewTicker(s.interval)
	s.mu.Unlock()

	log.Printf("[CleanupScheduler] Started - Interval: %v", s.interval)
	go s.run()
}

func (s *CleanupScheduler) run() {
	for {
		select {
		case <-s.ticker.C:
			s.runCleanup()
		case <-s.stopCh:
			log.Printf("[CleanupScheduler] Stopped")
			return
		}
	}
}

func (s *CleanupScheduler) runCleanup() {
	deleted, err := s.RunNow(context.Background())
	if err != nil {
		log.Printf("[CleanupScheduler] Error during cleanup: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[CleanupScheduler] Removed %d expired reset tokens", deleted)
	}
}

// Stop stops the scheduler. It is safe to call more than once.
func (s *CleanupScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.stopCh)
		s.isRunning = false
	})
}

// RunNow purges expired tokens immediately and reports how many were removed.
func (s *CleanupScheduler) RunNow(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	return s.repo.DeleteExpiredResetTokens(ctx, s.now())
}
