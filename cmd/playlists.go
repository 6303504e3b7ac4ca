package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spottransfer/sptx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Playlists lists playlists on the source service, or the destination when --dest is set.
func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("dest") {
		return r.listDestinationPlaylists(ctx, cmd)
	}
	return r.listSourcePlaylists(ctx, cmd)
}

func (r *Runner) listSourcePlaylists(ctx context.Context, cmd *cli.Command) error {
	token := r.spotifyToken(ctx)
	r.logger.Info("listing Spotify playlists")

	playlists, err := r.svc.ListSourcePlaylists(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to list playlists: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Spotify Playlists (%d)", len(playlists)))
	for _, pl := range playlists {
		r.writePlain("%s  %s (%d tracks)\n", pl.ID, pl.Name, pl.TotalTracks)
	}
	return nil
}

func (r *Runner) listDestinationPlaylists(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("listing YouTube Music playlists")

	playlists, err := r.svc.ListDestinationPlaylists(ctx, r.authHeaders())
	if err != nil {
		return fmt.Errorf("failed to list playlists: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("YouTube Music Playlists (%d)", len(playlists)))
	for _, pl := range playlists {
		r.writePlain("%s  %s (%d tracks)\n", pl.ID, pl.Name, pl.TotalTracks)
	}
	return nil
}

// PlaylistTracks lists the tracks of a single Spotify playlist.
func (r *Runner) PlaylistTracks(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("id")
	if playlistID == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}

	tracks, err := r.svc.PlaylistTracks(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("failed to list tracks: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Tracks (%d)", len(tracks)))
	for _, track := range tracks {
		r.writePlain("%3d. %s — %s\n", track.Index+1, strings.Join(track.Artists, ", "), track.Name)
	}
	return nil
}
