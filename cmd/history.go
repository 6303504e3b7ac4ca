package main

import (
	"context"
	"fmt"

	"github.com/spottransfer/sptx/internal/models"
	"github.com/spottransfer/sptx/internal/repositories"
	"github.com/urfave/cli/v3"
)

// History lists recorded terminal job runs, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	criteria := map[string]any{}
	if kind := cmd.String("kind"); kind != "" {
		if _, err := parseJobKind(kind); err != nil {
			return err
		}
		criteria["kind"] = kind
	}
	if status := cmd.String("status"); status != "" {
		criteria["status"] = status
	}

	repo := repositories.NewJobRunRepository(db)
	runs, err := repo.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list job runs: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(historyRows(runs), true)
	}

	if len(runs) == 0 {
		return r.writePlain("No recorded job runs.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Job History (%d runs)", len(runs)))
	for _, run := range runs {
		r.writePlain("#%-4d %-8s %-10s %s\n", run.Sequence(), run.Kind(), run.Status(), run.RemoteID())
		r.writePlain("      %d/%d playlists | ok %d | failed %d | skipped %d | finished %s\n",
			run.Processed(), run.TotalPlaylists(), run.Successful(), run.Failed(), run.Skipped(),
			run.FinishedAt().Format("2006-01-02 15:04:05"))
		if run.Error() != "" {
			r.writePlain("      error: %s\n", run.Error())
		}
	}
	return nil
}

// historyRow is the JSON projection of a recorded run.
type historyRow struct {
	Sequence   int    `json:"sequence"`
	Kind       string `json:"kind"`
	RemoteID   string `json:"remote_id"`
	Status     string `json:"status"`
	Total      int    `json:"total_playlists"`
	Processed  int    `json:"processed"`
	Successful int    `json:"successful"`
	Failed     int    `json:"failed"`
	Skipped    int    `json:"skipped"`
	Error      string `json:"error,omitempty"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
}

func historyRows(runs []*models.JobRun) []historyRow {
	rows := make([]historyRow, len(runs))
	for i, run := range runs {
		rows[i] = historyRow{
			Sequence:   run.Sequence(),
			Kind:       run.Kind(),
			RemoteID:   run.RemoteID(),
			Status:     run.Status(),
			Total:      run.TotalPlaylists(),
			Processed:  run.Processed(),
			Successful: run.Successful(),
			Failed:     run.Failed(),
			Skipped:    run.Skipped(),
			Error:      run.Error(),
			StartedAt:  run.StartedAt().Format("2006-01-02 15:04:05"),
			FinishedAt: run.FinishedAt().Format("2006-01-02 15:04:05"),
		}
	}
	return rows
}
