package main

import (
	"context"
	"fmt"

	"github.com/spottransfer/sptx/internal/formatter"
	"github.com/spottransfer/sptx/internal/services"
	"github.com/spottransfer/sptx/internal/shared"
	"github.com/urfave/cli/v3"
)

// CreateRun clones a single playlist by link. The executor runs this
// synchronously, so the result comes back on the submit call itself.
func (r *Runner) CreateRun(ctx context.Context, cmd *cli.Command) error {
	req := &services.CloneRequest{
		PlaylistLink: cmd.String("link"),
		AuthHeaders:  r.authHeaders(),
	}

	r.logger.Info("cloning playlist", "link", req.PlaylistLink)
	r.writePlain("Cloning playlist...\n")

	session := r.newSession()
	outcome, err := session.Clone(ctx, req)
	if err != nil {
		return fmt.Errorf("clone failed: %w", err)
	}

	if err := r.writeCloneOutcome(outcome.Immediate); err != nil {
		return err
	}

	if cmd.Bool("save") && r.config.Reports.Dir != "" {
		path, err := formatter.WriteCloneResult(outcome.Immediate, shared.ExpandPath(r.config.Reports.Dir))
		if err != nil {
			r.logger.Warn("failed to save clone result", "error", err)
		} else {
			r.writePlain("\nResult saved to %s\n", path)
		}
	}

	return nil
}
