package jobs

import (
	"context"
	"time"

	"keywordlab/internal/logger"
)

// Reaper removes views that have been idle for too long.
type Reaper interface {
	Reap(maxIdle time.Duration) int
}

// ViewReaper periodically tears down idle analysis views.
type ViewReaper struct {
	views    Reaper
	interval time.Duration
	maxIdle  time.Duration
	log      *logger.Logger
}

// Fallbacks for non-positive reaper settings
const (
	DefaultReapInterval = time.Minute
	DefaultMaxIdle      = 30 * time.Minute
)

// NewViewReaper creates a new view reaper. Non-positive settings use the defaults.
func NewViewReaper(views Reaper, interval, maxIdle time.Duration) *ViewReaper {
	if interval <= 0 {
		interval = DefaultReapInterval
	}
	if maxIdle <= 0 {
		maxIdle = DefaultMaxIdle
	}
	return &ViewReaper{
		views:    views,
		interval: interval,
		maxIdle:  maxIdle,
		log:      logger.WithField("job", "view_reaper"),
	}
}

// Start begins the reaper loop and blocks until ctx is cancelled.
func (r *ViewReaper) Start(ctx context.Context) {
	r.log.WithFields(map[string]any{
		"interval": r.interval.String(),
		"max_idle": r.maxIdle.String(),
	}).Info("view reaper started")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("view reaper stopped")
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

func (r *ViewReaper) sweep() {
	if n := r.views.Reap(r.maxIdle); n > 0 {
		r.log.WithField("reaped", n).Debug("closed idle views")
	}
}
