package main

import (
	"context"

	"github.com/spottransfer/sptx/internal/jobs"
	"github.com/spottransfer/sptx/internal/services"
	"github.com/urfave/cli/v3"
)

// TransferRun submits a bulk transfer job and follows it until it finishes.
//
// With --id flags only the named playlists are transferred; otherwise the
// executor transfers the whole library.
func (r *Runner) TransferRun(ctx context.Context, cmd *cli.Command) error {
	ids := cmd.StringSlice("id")

	token := cmd.String("token")
	if token == "" {
		token = r.spotifyToken(ctx)
	}

	req := &services.TransferRequest{
		PlaylistIDs:  ids,
		SpotifyToken: token,
		AuthHeaders:  r.authHeaders(),
	}

	if len(ids) > 0 {
		r.logger.Info("starting transfer", "playlists", len(ids))
		r.writePlain("Transferring %d playlists...\n", len(ids))
	} else {
		r.logger.Info("starting transfer of all playlists")
		r.writePlain("Transferring all playlists...\n")
	}

	return r.runJob(ctx, func(session *jobs.Session) (*jobs.Outcome, error) {
		return session.StartTransfer(ctx, req)
	}, cmd.String("report"))
}
