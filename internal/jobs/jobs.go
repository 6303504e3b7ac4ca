// Package jobs manages the lifecycle of asynchronous bulk operations on the
// transfer backend.
//
// The core abstraction is Session, which owns the single current-job slot:
// it submits a request, holds the returned handle, runs a Poller that fetches
// status at a fixed cadence until a terminal state, and cancels cleanly.
// Progress flows to the CLI/UI layer through a channel of Update values,
// sent non-blockingly so slow consumers never stall the lifecycle.
package jobs

import (
	"context"

	"github.com/spottransfer/sptx/internal/services"
)

// Executor is the remote backend that runs bulk jobs. Implemented by
// services.TransferService; mocked in tests.
type Executor interface {
	// StartTransfer submits a bulk or fine-grained transfer and returns a
	// handle for polling.
	StartTransfer(ctx context.Context, req *services.TransferRequest) (*services.JobHandle, error)

	// StartDelete submits a bulk deletion and returns a handle for polling.
	StartDelete(ctx context.Context, req *services.DeleteRequest) (*services.JobHandle, error)

	// Status fetches the current snapshot for an accepted job.
	Status(ctx context.Context, handle *services.JobHandle) (*services.JobSnapshot, error)

	// Cancel notifies the executor to stop a job. Best-effort; only
	// transport failures are reported.
	Cancel(ctx context.Context, handle *services.JobHandle) error

	// Clone copies a single playlist synchronously, completing within the
	// call itself.
	Clone(ctx context.Context, req *services.CloneRequest) (*services.CloneResult, error)
}

// Outcome is the result of a submission. Bulk operations are accepted
// asynchronously and carry a handle for polling; a single-playlist clone
// completes inside the submission call and carries its result directly.
// Exactly one field is set.
type Outcome struct {
	Accepted  *services.JobHandle
	Immediate *services.CloneResult
}
