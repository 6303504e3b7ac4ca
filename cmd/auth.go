package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spottransfer/sptx/internal/server"
	"github.com/spottransfer/sptx/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin runs the browser-based Spotify login.
//
// The executor owns the OAuth exchange; this command only stands up a
// temporary localhost server, sends the user through the executor's login
// page, and captures the token the executor redirects back with.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	port := r.config.Server.CallbackPort
	if port == 0 {
		port = 8976
	}

	state := shared.GenerateID()
	handler := server.NewTokenHandler(state)

	router := server.NewBasicRouter()
	router.Use(server.LogRequests(r.logger))
	router.Handler(handler)

	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	callback := fmt.Sprintf("http://127.0.0.1:%d/token", port)
	loginURL := fmt.Sprintf("%s/auth/login?redirect_uri=%s&state=%s",
		r.config.Server.BaseURL, url.QueryEscape(callback), state)

	r.writePlain("Opening browser for Spotify authorization...\n")
	r.writePlain("If the browser does not open, visit:\n  %s\n\n", loginURL)
	if err := shared.OpenBrowser(loginURL); err != nil {
		r.logger.Warn("failed to open browser", "error", err)
	}

	timeout := time.Duration(cmd.Int("timeout")) * time.Second

	select {
	case result := <-handler.Result():
		if err := result.Error(); err != nil {
			return fmt.Errorf("authorization failed: %w", err)
		}
		return r.saveToken(cmd, result.Token)
	case err := <-errCh:
		return fmt.Errorf("callback server failed: %w", err)
	case <-time.After(timeout):
		return fmt.Errorf("%w: timed out waiting for browser callback", shared.ErrMissingCredentials)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runner) saveToken(cmd *cli.Command, token string) error {
	outputPath := cmd.String("output")
	if outputPath == "" {
		outputPath = r.config.Credentials.SpotifyTokenPath
	}
	if outputPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		outputPath = filepath.Join(homeDir, ".sptx", "spotify_token")
	}
	outputPath = shared.ExpandPath(outputPath)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	r.logger.Info("token saved", "path", outputPath)
	r.writePlain("✓ Authentication successful\n")
	r.writePlain("Token saved to: %s\n", outputPath)
	return nil
}

// AuthHeaders captures YouTube Music request headers from a browser cURL command.
func (r *Runner) AuthHeaders(ctx context.Context, cmd *cli.Command) error {
	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")

	if curlCmd == "" && curlFile == "" {
		return fmt.Errorf("%w: either --curl or --curl-file must be provided", shared.ErrMissingArgument)
	}
	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidArgument)
	}

	var headers *shared.AuthHeaders
	var err error

	if curlFile != "" {
		headers, err = shared.ParseCurlFile(curlFile)
		if err != nil {
			return fmt.Errorf("failed to parse cURL file: %w", err)
		}
		r.logger.Info("parsed cURL from file", "file", curlFile)
	} else {
		headers, err = shared.ParseCurlCommand([]byte(curlCmd))
		if err != nil {
			return fmt.Errorf("failed to parse cURL command: %w", err)
		}
		r.logger.Info("parsed cURL command")
	}

	outputPath := cmd.String("output")
	if outputPath == "" {
		outputPath = r.config.Credentials.YouTubeHeadersPath
	}
	if outputPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		outputPath = filepath.Join(homeDir, ".sptx", "headers.txt")
	}
	outputPath = shared.ExpandPath(outputPath)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(headers.Raw()), 0600); err != nil {
		return fmt.Errorf("failed to write headers file: %w", err)
	}

	r.writePlain("✓ YouTube Music headers captured\n")
	r.writePlain("Headers saved to: %s\n", outputPath)
	r.writePlainln("Run 'sptx playlists --dest' to verify authentication.")
	return nil
}

// AuthStatus checks executor health and whether credentials are available.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.svc.Health(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	r.writePlain("✓ Executor is reachable\n")

	if token := r.spotifyToken(ctx); token != "" {
		r.writePlain("Spotify: ✓ token available\n")
	} else {
		r.writePlain("Spotify: ✗ no token (run 'sptx auth login')\n")
	}

	if r.authHeaders() != "" {
		r.writePlain("YouTube Music: ✓ headers captured\n")
	} else {
		r.writePlain("YouTube Music: ✗ no headers (run 'sptx auth headers')\n")
	}
	return nil
}
