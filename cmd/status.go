package main

import (
	"context"
	"fmt"

	"github.com/spottransfer/sptx/internal/jobs"
	"github.com/spottransfer/sptx/internal/services"
	"github.com/spottransfer/sptx/internal/shared"
	"github.com/urfave/cli/v3"
)

// StatusShow fetches and prints a single snapshot of a job by its remote ID.
func (r *Runner) StatusShow(ctx context.Context, cmd *cli.Command) error {
	handle, err := handleFromArgs(cmd)
	if err != nil {
		return err
	}

	snap, err := r.svc.Status(ctx, handle)
	if err != nil {
		return fmt.Errorf("status request failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(snap, true)
	}

	sum := jobs.Aggregate(handle.Kind, snap)
	r.writePlainHeader(fmt.Sprintf("%s %s — %s", handle.Kind, handle.ID, snap.Status))
	r.writePlain("Playlists: %d/%d (%.0f%%) | ok %d | failed %d | skipped %d\n",
		sum.Done, sum.Total, sum.Percent, sum.Successful, sum.Failed, sum.Skipped)
	if snap.Error != "" {
		r.writePlain("Error: %s\n", snap.Error)
	}
	for _, pl := range snap.Playlists {
		r.writePlain("  %s — %s\n", pl.Name, jobs.StatusLabel(pl.Status))
	}
	return nil
}

// StatusCancel asks the executor to cancel a job by its remote ID.
func (r *Runner) StatusCancel(ctx context.Context, cmd *cli.Command) error {
	handle, err := handleFromArgs(cmd)
	if err != nil {
		return err
	}

	r.logger.Info("requesting cancellation", "kind", handle.Kind, "id", handle.ID)
	if err := r.svc.Cancel(ctx, handle); err != nil {
		return fmt.Errorf("cancel request failed: %w", err)
	}

	return r.writePlain("✓ Cancellation requested for %s %s\n", handle.Kind, handle.ID)
}

func handleFromArgs(cmd *cli.Command) (*services.JobHandle, error) {
	jobID := cmd.StringArg("id")
	if jobID == "" {
		return nil, fmt.Errorf("%w: job id", shared.ErrMissingArgument)
	}

	kind, err := parseJobKind(cmd.String("kind"))
	if err != nil {
		return nil, err
	}

	return &services.JobHandle{Kind: kind, ID: jobID}, nil
}
