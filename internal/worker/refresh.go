package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/mtlprog/cexstat/internal/domain"
)

// DefaultRefreshInterval is used when a non-positive interval is given.
const DefaultRefreshInterval = 5 * time.Minute

// Refresher rebuilds the portfolio from the exchange.
type Refresher interface {
	Refresh(ctx context.Context) (domain.PortfolioData, time.Time, error)
}

// AfterRefreshHook is called after each successful refresh.
type AfterRefreshHook interface {
	Export(ctx context.Context, data domain.PortfolioData) error
}

// RefreshWorker periodically refreshes the portfolio.
type RefreshWorker struct {
	refresher Refresher
	interval  time.Duration
	hook      AfterRefreshHook // optional
}

// NewRefreshWorker creates a new RefreshWorker with an optional post-refresh hook.
func NewRefreshWorker(refresher Refresher, interval time.Duration, hook AfterRefreshHook) *RefreshWorker {
	if interval <= 0 {
		slog.Warn("RefreshWorker: non-positive interval, using default", "interval", interval, "default", DefaultRefreshInterval)
		interval = DefaultRefreshInterval
	}
	return &RefreshWorker{
		refresher: refresher,
		interval:  interval,
		hook:      hook,
	}
}

func (w *RefreshWorker) runHook(ctx context.Context, data domain.PortfolioData) {
	if w.hook == nil {
		return
	}
	if err := w.hook.Export(ctx, data); err != nil {
		slog.Error("RefreshWorker: export hook failed", "error", err)
	} else {
		slog.Info("RefreshWorker: export hook completed")
	}
}

func (w *RefreshWorker) refresh(ctx context.Context, phase string) {
	start := time.Now()
	data, _, err := w.refresher.Refresh(ctx)
	if err != nil {
		slog.Error("RefreshWorker: "+phase+" refresh failed", "error", err)
		return
	}
	slog.Info("RefreshWorker: "+phase+" refresh completed",
		"holdings", len(data.Holdings),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	w.runHook(ctx, data)
}

// Run starts the refresh loop. It blocks until the context is cancelled.
func (w *RefreshWorker) Run(ctx context.Context) {
	slog.Info("RefreshWorker: starting", "interval", w.interval)

	w.refresh(ctx, "initial")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("RefreshWorker: shutting down")
			return
		case <-ticker.C:
			w.refresh(ctx, "scheduled")
		}
	}
}
