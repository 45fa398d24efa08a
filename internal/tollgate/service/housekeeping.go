package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/store"
)

// HousekeepingService periodically discards expired one-time codes. Expiry is
// always enforced at verification time; this only keeps stale codes from
// lingering in storage.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 10 minutes.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until the worker has finished any in-progress cleanup.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup runs a single pass and returns the number of codes cleared.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	n, err := s.Store.Users().ClearExpiredOneTimeCodes(ctx, time.Now().UTC())
	if err != nil {
		s.Logger.Error("failed to clear expired one-time codes", "error", err)
		return 0
	}
	s.Logger.Debug("housekeeping cleanup completed", "cleared_codes", n)
	return n
}
