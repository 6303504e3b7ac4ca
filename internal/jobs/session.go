package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spottransfer/sptx/internal/services"
	"github.com/spottransfer/sptx/internal/shared"
)

// Session owns the single current-job slot: the handle, the latest snapshot,
// and the poll loop for the job most recently started. Starting a new job
// supersedes the previous one, and every mutation is gated by a generation
// counter so a stale callback from a superseded job can never overwrite
// current state.
type Session struct {
	exec     Executor
	interval time.Duration
	logger   *log.Logger
	updates  chan Update

	mu           sync.Mutex
	generation   int
	handle       *services.JobHandle
	snapshot     *services.JobSnapshot
	poller       *Poller
	cancelSubmit context.CancelFunc
}

// NewSession wraps an executor in a job session. A zero interval falls back
// to DefaultPollInterval.
func NewSession(exec Executor, interval time.Duration, logger *log.Logger) *Session {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Session{
		exec:     exec,
		interval: interval,
		logger:   logger,
		updates:  make(chan Update, 64),
	}
}

// Updates returns the stream of progress events for whichever job is
// current. Sends never block; a consumer that falls behind misses
// intermediate updates, not the terminal one it can re-derive from Snapshot.
func (s *Session) Updates() <-chan Update {
	return s.updates
}

// Handle returns the handle of the current job, or nil when no job is
// active.
func (s *Session) Handle() *services.JobHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle
}

// Snapshot returns the latest snapshot of the current job, or nil before the
// first poll of a job completes.
func (s *Session) Snapshot() *services.JobSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Active reports whether a job has been accepted and has not yet reached a
// terminal state.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle != nil && (s.snapshot == nil || !s.snapshot.Terminal())
}

// StartTransfer submits a transfer request, superseding any job currently
// tracked by the session, and begins polling on acceptance.
func (s *Session) StartTransfer(ctx context.Context, req *services.TransferRequest) (*Outcome, error) {
	return s.submit(ctx, func(subCtx context.Context) (*services.JobHandle, error) {
		return s.exec.StartTransfer(subCtx, req)
	})
}

// StartDelete submits a deletion request, superseding any job currently
// tracked by the session, and begins polling on acceptance.
func (s *Session) StartDelete(ctx context.Context, req *services.DeleteRequest) (*Outcome, error) {
	return s.submit(ctx, func(subCtx context.Context) (*services.JobHandle, error) {
		return s.exec.StartDelete(subCtx, req)
	})
}

// Clone copies a single playlist. The call is synchronous on the executor
// side, so no handle is produced and the current-job slot is untouched.
func (s *Session) Clone(ctx context.Context, req *services.CloneRequest) (*Outcome, error) {
	result, err := s.exec.Clone(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Outcome{Immediate: result}, nil
}

// submit runs one submission call under a cancellable context, installs the
// returned handle as the current job, and starts its poller. Exactly one
// network call is made; duplicate submission is the caller's concern.
func (s *Session) submit(ctx context.Context, call func(context.Context) (*services.JobHandle, error)) (*Outcome, error) {
	subCtx, cancel := context.WithCancel(ctx)
	gen := s.supersede(cancel)

	handle, err := call(subCtx)

	s.mu.Lock()
	if s.generation == gen {
		s.cancelSubmit = nil
	}
	stale := s.generation != gen
	s.mu.Unlock()
	cancel()

	if err != nil {
		// The error already distinguishes a user abort (context error),
		// a server rejection, and a transport failure.
		return nil, err
	}
	if stale {
		return nil, shared.ErrJobSuperseded
	}

	s.accept(gen, handle)
	return &Outcome{Accepted: handle}, nil
}

// supersede invalidates whatever job the session was tracking: the previous
// poller is stopped, any in-flight submission is aborted, and the generation
// is bumped so late callbacks from the old job are discarded. Returns the
// new generation.
func (s *Session) supersede(cancelSubmit context.CancelFunc) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelSubmit != nil {
		s.cancelSubmit()
	}
	if s.poller != nil {
		s.poller.Stop()
		s.poller = nil
	}

	s.generation++
	s.handle = nil
	s.snapshot = nil
	s.cancelSubmit = cancelSubmit
	return s.generation
}

// accept installs an accepted handle as the current job, seeds an empty
// in-progress snapshot, and starts the poll loop.
func (s *Session) accept(gen int, handle *services.JobHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return
	}

	s.handle = handle
	s.snapshot = &services.JobSnapshot{
		Status:         services.StatusInProgress,
		TotalPlaylists: handle.Total,
	}

	p := NewPoller(s.exec, handle, s.interval, s.logger)
	s.poller = p
	go func() {
		err := p.Run(func(snap *services.JobSnapshot) bool {
			return s.apply(gen, handle, snap)
		})
		if errors.Is(err, shared.ErrJobNotFound) {
			s.expire(gen, handle)
		}
	}()

	s.send(submittedUpdate(handle))
}

// apply replaces the current snapshot wholesale with a freshly polled one.
// Returns false when the snapshot belongs to a superseded job, in which case
// it is discarded untouched.
func (s *Session) apply(gen int, handle *services.JobHandle, snap *services.JobSnapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return false
	}

	s.snapshot = snap
	if snap.Terminal() {
		s.poller = nil
		s.send(terminalUpdate(handle, snap))
	} else {
		s.send(progressUpdate(handle, snap))
	}
	return true
}

// expire retires a job the executor no longer knows. No terminal snapshot
// will ever arrive for it, so the session synthesizes an errored one to end
// the lifecycle: listeners on Updates get their terminal event and Active
// flips to false.
func (s *Session) expire(gen int, handle *services.JobHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return
	}

	snap := &services.JobSnapshot{Status: services.StatusError}
	if s.snapshot != nil {
		last := *s.snapshot
		snap = &last
		snap.Status = services.StatusError
	}
	snap.Error = "job no longer known to executor"

	s.snapshot = snap
	s.poller = nil
	s.send(terminalUpdate(handle, snap))
}

// Cancel aborts the current job: any in-flight submission call is aborted,
// the poll loop stops, and the local state transitions to cancelled before
// the executor is notified. The notification is best-effort; its failure is
// logged and never surfaced, and no retry is scheduled.
//
// Returns shared.ErrNoActiveJob when the session has nothing to cancel.
func (s *Session) Cancel(ctx context.Context) error {
	s.mu.Lock()

	if s.cancelSubmit == nil && s.handle == nil {
		s.mu.Unlock()
		return shared.ErrNoActiveJob
	}

	if s.cancelSubmit != nil {
		s.cancelSubmit()
		s.cancelSubmit = nil
	}
	if s.poller != nil {
		s.poller.Stop()
		s.poller = nil
	}

	handle := s.handle
	s.generation++

	// Cancellation is client-authoritative: the local transition happens
	// whether or not the executor ever acknowledges it.
	if s.snapshot != nil && !s.snapshot.Terminal() {
		cancelled := *s.snapshot
		cancelled.Status = services.StatusCancelled
		s.snapshot = &cancelled
	}
	snap := s.snapshot
	s.mu.Unlock()

	if handle != nil {
		if err := s.exec.Cancel(ctx, handle); err != nil {
			s.logger.Warn("cancel notification failed", "job", handle.ID, "error", err)
		}
		s.send(cancelledUpdate(handle, snap))
	}
	return nil
}

// send delivers an update without blocking. A full channel drops the event.
func (s *Session) send(u Update) {
	select {
	case s.updates <- u:
	default:
	}
}
