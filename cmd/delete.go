package main

import (
	"context"
	"fmt"

	"github.com/spottransfer/sptx/internal/jobs"
	"github.com/spottransfer/sptx/internal/services"
	"github.com/spottransfer/sptx/internal/shared"
	"github.com/urfave/cli/v3"
)

// DeleteRun submits a bulk delete job against the destination service.
func (r *Runner) DeleteRun(ctx context.Context, cmd *cli.Command) error {
	ids := cmd.StringSlice("id")
	all := cmd.Bool("all")

	if !all && len(ids) == 0 {
		return fmt.Errorf("%w: pass --id or --all", shared.ErrMissingArgument)
	}
	if all && len(ids) > 0 {
		return fmt.Errorf("%w: cannot combine --id with --all", shared.ErrInvalidArgument)
	}

	req := &services.DeleteRequest{
		PlaylistIDs: ids,
		AuthHeaders: r.authHeaders(),
		All:         all,
	}

	if all {
		r.logger.Info("starting delete of all destination playlists")
		r.writePlain("Deleting all YouTube Music playlists...\n")
	} else {
		r.logger.Info("starting delete", "playlists", len(ids))
		r.writePlain("Deleting %d playlists...\n", len(ids))
	}

	return r.runJob(ctx, func(session *jobs.Session) (*jobs.Outcome, error) {
		return session.StartDelete(ctx, req)
	}, cmd.String("report"))
}
