package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spottransfer/sptx/internal/formatter"
	"github.com/spottransfer/sptx/internal/jobs"
	"github.com/spottransfer/sptx/internal/models"
	"github.com/spottransfer/sptx/internal/repositories"
	"github.com/spottransfer/sptx/internal/services"
	"github.com/spottransfer/sptx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	svc    *services.TransferService
	exec   jobs.Executor
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Service  *services.TransferService
	Executor jobs.Executor
	Logger   *log.Logger
	Output   io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Service == nil {
		opts.Service = services.NewTransferService(opts.Config.Server.BaseURL, nil)
	}
	if opts.Executor == nil {
		opts.Executor = opts.Service
	}

	return &Runner{
		config: opts.Config,
		svc:    opts.Service,
		exec:   opts.Executor,
		logger: opts.Logger,
		output: opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, playlistsCommand, transferCommand, deleteCommand,
		createCommand, statusCommand, historyCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger swaps the runner's logger, for redirecting output in TUI mode.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// pollInterval returns the configured status poll cadence.
func (r *Runner) pollInterval() time.Duration {
	if secs := r.config.Server.PollIntervalSecs; secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return jobs.DefaultPollInterval
}

// newSession creates a job session bound to the runner's executor.
func (r *Runner) newSession() *jobs.Session {
	return jobs.NewSession(r.exec, r.pollInterval(), r.logger)
}

// spotifyToken loads the locally saved Spotify token, falling back to the
// token the executor holds in its own session.
func (r *Runner) spotifyToken(ctx context.Context) string {
	if token := shared.LoadHeadersFile(r.config.Credentials.SpotifyTokenPath); token != "" {
		return token
	}
	token, err := r.svc.StoredToken(ctx)
	if err != nil {
		r.logger.Debug("no stored token on executor", "error", err)
		return ""
	}
	return token
}

// authHeaders loads the captured YouTube Music headers, empty when unset.
func (r *Runner) authHeaders() string {
	return shared.LoadHeadersFile(r.config.Credentials.YouTubeHeadersPath)
}

// openDatabase opens the job history database and ensures migrations are applied.
func (r *Runner) openDatabase() (*sql.DB, error) {
	db, err := shared.NewDatabase(shared.ExpandPath(r.config.Database.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// recordRun saves a terminal job snapshot to the history database. History is
// an audit record; failures are logged rather than surfaced.
func (r *Runner) recordRun(handle *services.JobHandle, snap *services.JobSnapshot, startedAt time.Time) {
	db, err := r.openDatabase()
	if err != nil {
		r.logger.Warn("history record skipped", "error", err)
		return
	}
	defer db.Close()

	repo := repositories.NewJobRunRepository(db)
	run := models.NewJobRunFromSnapshot(0, handle, snap, startedAt)
	if err := repo.Create(run); err != nil {
		r.logger.Warn("failed to record job run", "error", err)
		return
	}
	r.logger.Debug("job run recorded", "id", run.ID(), "sequence", run.Sequence())
}

// runJob submits a job through a fresh session and streams progress to the
// output until the job reaches a terminal state.
func (r *Runner) runJob(ctx context.Context, start func(*jobs.Session) (*jobs.Outcome, error), reportFormat string) error {
	session := r.newSession()
	startedAt := time.Now()

	outcome, err := start(session)
	if err != nil {
		// An interrupt during the submit window is a user decision, not a
		// failure.
		if errors.Is(err, context.Canceled) {
			r.writePlain("\nCancelled.\n")
			return nil
		}
		return err
	}
	if outcome.Immediate != nil {
		return r.writeCloneOutcome(outcome.Immediate)
	}

	handle := outcome.Accepted
	r.writePlain("Job accepted: %s %s (%d playlists)\n\n", handle.Kind, handle.ID, handle.Total)

	done := ctx.Done()
	for {
		select {
		case <-done:
			done = nil
			r.writePlain("\nCancelling...\n")
			if err := session.Cancel(context.Background()); err != nil {
				r.logger.Warn("cancel failed", "error", err)
				r.writePlain("\nCancelled.\n")
				return nil
			}
		case update := <-session.Updates():
			switch update.Phase {
			case jobs.Submitted:
				continue
			case jobs.Progress:
				sum := update.Summary
				r.writePlain("  %d/%d (%.0f%%) — %d ok, %d failed, %d skipped\n",
					sum.Done, sum.Total, sum.Percent, sum.Successful, sum.Failed, sum.Skipped)
			case jobs.Completed, jobs.Errored, jobs.Cancelled:
				return r.finishJob(handle, update, startedAt, reportFormat)
			}
		}
	}
}

// finishJob prints the terminal summary, records history, and writes a report.
func (r *Runner) finishJob(handle *services.JobHandle, update jobs.Update, startedAt time.Time, reportFormat string) error {
	snap := update.Snapshot
	sum := update.Summary

	r.writePlainHeader(fmt.Sprintf("%s %s", handle.Kind, update.Phase))
	r.writePlain("Playlists: %d/%d | ok %d | failed %d | skipped %d\n",
		sum.Done, sum.Total, sum.Successful, sum.Failed, sum.Skipped)

	if snap != nil {
		for _, pl := range snap.Playlists {
			line := fmt.Sprintf("  %s — %s", pl.Name, jobs.StatusLabel(pl.Status))
			if pl.MissedTracks > 0 {
				line += fmt.Sprintf(" (%d missed)", pl.MissedTracks)
			}
			if pl.Reason != "" {
				line += fmt.Sprintf(" [%s]", pl.Reason)
			}
			r.writePlain("%s\n", line)
		}
		r.recordRun(handle, snap, startedAt)

		if dir := r.config.Reports.Dir; dir != "" {
			format := reportFormat
			if format == "" {
				format = r.config.Reports.Format
			}
			report := formatter.NewReport(handle, snap)
			path, err := formatter.WriteReport(report, format, shared.ExpandPath(dir))
			if err != nil {
				r.logger.Warn("failed to write report", "error", err)
			} else {
				r.writePlain("\nReport written to %s\n", path)
			}
		}
	}

	switch update.Phase {
	case jobs.Errored:
		errText := ""
		if snap != nil {
			errText = snap.Error
		}
		return fmt.Errorf("%w: %s", shared.ErrExecutorError, errText)
	case jobs.Cancelled:
		r.writePlain("\nJob cancelled.\n")
	}
	return nil
}

// writeCloneOutcome prints the result of a synchronous single-playlist clone.
func (r *Runner) writeCloneOutcome(result *services.CloneResult) error {
	r.writePlain("✓ %s\n", result.Message)
	if len(result.MissedTracks) > 0 {
		r.writePlain("\n%d tracks could not be matched:\n", len(result.MissedTracks))
		for _, name := range result.MissedTracks {
			r.writePlain("  - %s\n", name)
		}
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// parseJobKind resolves a user-supplied kind string.
func parseJobKind(name string) (services.JobKind, error) {
	switch name {
	case "transfer":
		return services.KindTransfer, nil
	case "delete":
		return services.KindDelete, nil
	default:
		return 0, fmt.Errorf("%w: unknown job kind '%s' (must be 'transfer' or 'delete')", shared.ErrInvalidArgument, name)
	}
}
