package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/veridianlabs/mailward/internal/mailward/store"
)

// HousekeepingService periodically deletes stale pending-token rows so the
// table does not grow without bound: expired rows nobody ever completed, and
// completion tombstones past their reporting window. Fresh tombstones are
// kept so duplicate clicks shortly after a completion still see
// already_completed instead of not_found.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// Retention is how long expired rows and tombstones survive before the
	// sweep removes them.
	Retention time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service.
// If interval is 0 or negative, defaults to 1 hour; retention defaults to 24
// hours.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if retention <= 0 {
		retention = 24 * time.Hour
	}

	return &HousekeepingService{
		Store:     store,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// This is non-blocking and should be called after the database is ready.
// Call Stop() to gracefully shutdown the worker.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started",
		"interval", s.Interval,
		"retention", s.Retention,
	)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress cleanup.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

// run is the main background worker loop.
func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup performs the actual deletion of stale rows. The two passes are
// independent - a failure in one won't stop the other.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-s.Retention)

	var expired, tombstones int64

	n, err := s.Store.PendingTokens().DeleteExpiredPendingTokens(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to delete expired pending tokens", "error", err)
	} else {
		expired = n
	}

	n, err = s.Store.PendingTokens().DeleteCompletedPendingTokens(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to delete completed pending tokens", "error", err)
	} else {
		tombstones = n
	}

	s.Logger.Info("housekeeping cleanup completed",
		"expired_deleted", expired,
		"tombstones_deleted", tombstones,
	)
}
