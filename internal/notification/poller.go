package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
)

// Poller ticks the hub on a fixed interval.
type Poller struct {
	cron     *cron.Cron
	hub      *Hub
	interval time.Duration
	clock    apperrors.Clock
	logger   *slog.Logger
}

func NewPoller(hub *Hub, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		hub:      hub,
		interval: interval,
		clock:    hub.clock,
		logger:   logger,
	}
}

func (p *Poller) Start() error {
	if _, err := p.cron.AddFunc(fmt.Sprintf("@every %s", p.interval), p.RunOnce); err != nil {
		return fmt.Errorf("error scheduling notification job: %w", err)
	}

	p.cron.Start()
	p.logger.Info("notification poller started", "interval", p.interval.String())
	return nil
}

// RunOnce performs a single tick.
func (p *Poller) RunOnce() {
	p.hub.Tick(p.clock())
}

// Stop halts the schedule and waits for a running tick, bounded by ctx.
func (p *Poller) Stop(ctx context.Context) {
	done := p.cron.Stop()
	select {
	case <-done.Done():
		p.logger.Info("notification poller stopped")
	case <-ctx.Done():
		p.logger.Warn("notification poller stop timed out")
	}
}
