// Package sched runs the ingestion pipeline on a fixed interval and on
// demand.
package sched

import (
	"context"
	"time"

	"github.com/biglone/techpulse/internal/ingest"
	"github.com/biglone/techpulse/internal/logging"
)

// Runner is the pipeline entry point the scheduler drives.
type Runner interface {
	IngestAll(ctx context.Context) (ingest.Stats, error)
}

// Scheduler triggers pipeline passes on a ticker. Passes run one at a
// time; a manual trigger during a running pass is coalesced into a single
// follow-up pass.
type Scheduler struct {
	ingester Runner
	interval time.Duration
	trigger  chan struct{}
}

func New(ing Runner, interval time.Duration) *Scheduler {
	return &Scheduler{
		ingester: ing,
		interval: interval,
		trigger:  make(chan struct{}, 1),
	}
}

// Run blocks until ctx is cancelled. It runs one pass immediately, then
// one per interval, plus any manually triggered passes.
func (s *Scheduler) Run(ctx context.Context) {
	logging.Info("scheduler started", "interval", s.interval)

	s.runPass(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.runPass(ctx)
		case <-s.trigger:
			s.runPass(ctx)
		}
	}
}

// Trigger requests an immediate pass. Never blocks; if a trigger is
// already pending, the request is dropped.
func (s *Scheduler) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

func (s *Scheduler) runPass(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	stats, err := s.ingester.IngestAll(ctx)
	if err != nil {
		logging.Error("ingestion pass failed", "error", err)
		return
	}
	logging.Info("ingestion pass complete",
		"sources", stats.Sources,
		"items", stats.Items,
		"duration", time.Since(start).Round(time.Millisecond))
}
