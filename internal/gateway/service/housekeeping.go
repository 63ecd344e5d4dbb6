package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/edgegate/internal/gateway/store"
)

// HousekeepingService periodically purges expired rate counters and cache
// entries from the backing store.
type HousekeepingService struct {
	store    store.Store
	interval time.Duration
	logger   *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

func NewHousekeepingService(st store.Store, interval time.Duration, logger *slog.Logger) *HousekeepingService {
	return &HousekeepingService{
		store:    st,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the purge loop. The first purge runs after one interval,
// not immediately, so startup stays fast.
func (h *HousekeepingService) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	h.cancel = cancel
	h.done = make(chan struct{})

	go func() {
		defer close(h.done)

		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.purge(ctx)
			}
		}
	}()

	h.logger.Info("housekeeping started", "interval", h.interval)
}

// Stop halts the loop and waits for an in-flight purge to finish.
func (h *HousekeepingService) Stop() {
	if h.cancel == nil {
		return
	}
	h.cancel()
	<-h.done
	h.logger.Info("housekeeping stopped")
}

func (h *HousekeepingService) purge(ctx context.Context) {
	start := time.Now()
	if err := h.store.PurgeExpired(ctx); err != nil {
		h.logger.Error("housekeeping purge failed", "error", err)
		return
	}
	h.logger.Debug("housekeeping purge complete", "took", time.Since(start))
}
