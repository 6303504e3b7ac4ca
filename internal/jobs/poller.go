package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spottransfer/sptx/internal/services"
	"github.com/spottransfer/sptx/internal/shared"
	"golang.org/x/time/rate"
)

// DefaultPollInterval is the cadence used when no interval is configured.
const DefaultPollInterval = time.Second

// Poller repeatedly fetches the status of one accepted job until it reaches
// a terminal state or is stopped.
//
// Ticks are serialized: a fetch completes and its snapshot is applied before
// the next tick is scheduled, so snapshots can never be applied out of order.
// A single tick's transport failure is logged and the loop keeps ticking; the
// poller never invents a terminal state from a network blip. Only the
// executor's top-level status field drives termination — per-playlist
// sub-statuses are informational.
type Poller struct {
	exec     Executor
	handle   *services.JobHandle
	interval time.Duration
	limiter  *rate.Limiter
	logger   *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller builds a poller for one job. Run must be called exactly once.
func NewPoller(exec Executor, handle *services.JobHandle, interval time.Duration, logger *log.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		exec:     exec,
		handle:   handle,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		logger:   shared.WithLogger(logger, "job", handle.ID, "kind", handle.Kind.String()),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Run drives the poll loop, calling apply with each fetched snapshot. It
// returns when apply reports the job is no longer current, the snapshot is
// terminal, the executor no longer knows the job, or Stop is called.
//
// apply returns false to discard the snapshot and stop the loop; this is how
// a response from a tick issued just before Stop is prevented from touching
// state that has moved on.
//
// The returned error is shared.ErrJobNotFound when the executor forgot the
// job mid-poll, so the owner can retire the job instead of waiting on a
// terminal snapshot that will never come. Every other exit returns nil.
func (p *Poller) Run(apply func(*services.JobSnapshot) bool) error {
	defer close(p.done)

	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return nil
		case <-timer.C:
		}

		if err := p.limiter.Wait(p.ctx); err != nil {
			return nil
		}

		snap, err := p.exec.Status(p.ctx, p.handle)

		// A Stop racing the fetch wins: the response, if any, is dropped.
		if p.ctx.Err() != nil {
			return nil
		}

		switch {
		case err == nil:
			if !apply(snap) {
				return nil
			}
			if snap.Terminal() {
				return nil
			}
		case errors.Is(err, shared.ErrJobNotFound):
			// The executor forgot the job, which happens after its own
			// cleanup of finished jobs. End of life, not an error.
			p.logger.Debug("job no longer known to executor, stopping poll loop")
			return err
		default:
			p.logger.Warn("status fetch failed, retrying next tick", "error", err)
		}

		timer.Reset(p.interval)
	}
}

// Stop ends the poll loop, cancelling any in-flight status fetch. Idempotent
// and safe to call from any state, including after the loop has already
// finished.
func (p *Poller) Stop() {
	p.cancel()
}

// Done is closed when the poll loop has fully exited.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}
