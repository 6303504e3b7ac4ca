package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spottransfer/sptx/internal/selection"
	"github.com/spottransfer/sptx/internal/services"
	"github.com/spottransfer/sptx/internal/shared"
	"github.com/spottransfer/sptx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for playlist selection.
//
// The default mode selects Spotify playlists (and optionally individual
// tracks) for transfer; --delete selects destination playlists for deletion.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/sptx-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	kind := services.KindTransfer
	token := r.spotifyToken(ctx)
	headers := r.authHeaders()

	var fetch ui.ListPlaylists
	var loader selection.TrackLoader

	if cmd.Bool("delete") {
		kind = services.KindDelete
		fetch = func(ctx context.Context) ([]services.Playlist, error) {
			return r.svc.ListDestinationPlaylists(ctx, headers)
		}
	} else {
		fetch = func(ctx context.Context) ([]services.Playlist, error) {
			return r.svc.ListSourcePlaylists(ctx, token)
		}
		loader = r.svc.PlaylistTracks
	}

	session := r.newSession()
	model := ui.NewModel(ctx, kind, fetch, loader, session, token, headers)

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
