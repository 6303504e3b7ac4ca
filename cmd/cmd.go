// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for configuration and the history database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles credential capture for both services.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authenticate with Spotify via the browser",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "timeout",
						Usage: "Seconds to wait for the browser callback",
						Value: 300,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path to save the captured token (default: from config)",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "headers",
				Usage: "Capture YouTube Music headers from a browser cURL command",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to file containing the cURL command",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path to save headers (default: from config)",
					},
				},
				Action: r.AuthHeaders,
			},
			{
				Name:   "status",
				Usage:  "Check executor health and stored credentials",
				Action: r.AuthStatus,
			},
		},
	}
}

// playlistsCommand handles playlist listing operations.
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"pl"},
		Usage:   "List playlists on either service",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dest",
				Usage: "List YouTube Music playlists instead of Spotify",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Playlists,
		Commands: []*cli.Command{
			{
				Name:  "tracks",
				Usage: "List the tracks of a Spotify playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.PlaylistTracks,
			},
		},
	}
}

// transferCommand submits a bulk transfer job and follows it to completion.
func transferCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "transfer",
		Usage: "Transfer Spotify playlists to YouTube Music",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "id",
				Usage: "Playlist ID to transfer (repeatable; omit for all playlists)",
			},
			&cli.StringFlag{
				Name:  "token",
				Usage: "Spotify access token (default: saved token)",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Report format: json, csv, markdown, txt",
			},
		},
		Action: r.TransferRun,
	}
}

// deleteCommand submits a bulk delete job against the destination service.
func deleteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "Delete YouTube Music playlists",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "id",
				Usage: "Playlist ID to delete (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Delete every playlist on the destination service",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Report format: json, csv, markdown, txt",
			},
		},
		Action: r.DeleteRun,
	}
}

// createCommand clones a single playlist synchronously.
func createCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Clone a single Spotify playlist by link",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "link",
				Usage:    "Spotify playlist link",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Save the result to the reports directory",
			},
		},
		Action: r.CreateRun,
	}
}

// statusCommand inspects or cancels a job by its remote ID.
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the current state of a job",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "kind",
				Aliases: []string{"k"},
				Usage:   "Job kind: transfer or delete",
				Value:   "transfer",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.StatusShow,
		Commands: []*cli.Command{
			{
				Name:  "cancel",
				Usage: "Request cancellation of a job",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "kind",
						Aliases: []string{"k"},
						Usage:   "Job kind: transfer or delete",
						Value:   "transfer",
					},
				},
				Action: r.StatusCancel,
			},
		},
	}
}

// historyCommand lists recorded terminal job runs.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List past job runs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "kind",
				Aliases: []string{"k"},
				Usage:   "Filter by job kind: transfer or delete",
			},
			&cli.StringFlag{
				Name:  "status",
				Usage: "Filter by terminal status: completed, error, cancelled",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.History,
	}
}

// tuiCommand returns the top-level TUI command for interactive playlist selection.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for playlist transfer or deletion",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "delete",
				Usage: "Select destination playlists for deletion instead of transfer",
			},
		},
		Action: r.TUI,
	}
}
