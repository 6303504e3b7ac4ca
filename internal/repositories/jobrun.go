package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/spottransfer/sptx/internal/models"
	"github.com/spottransfer/sptx/internal/shared"
)

// JobRunRepository implements [models.Repository] for [models.JobRun]
// persistence.
type JobRunRepository struct {
	db *sql.DB
}

// NewJobRunRepository creates a new [JobRunRepository] with the given database connection
func NewJobRunRepository(db *sql.DB) *JobRunRepository {
	return &JobRunRepository{db: db}
}

// Create inserts a new job run into the database with generated ID and sequence
func (r *JobRunRepository) Create(run *models.JobRun) error {
	sequence, err := NextSequence(r.db, "job_runs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	run.SetID(shared.GenerateID())
	run.SetSequence(sequence)

	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO job_runs (
			id, sequence, kind, remote_id, status,
			total_playlists, processed, successful, failed, skipped,
			error, started_at, finished_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		run.ID(), run.Sequence(), run.Kind(), run.RemoteID(), run.Status(),
		run.TotalPlaylists(), run.Processed(), run.Successful(), run.Failed(), run.Skipped(),
		run.Error(), run.StartedAt(), run.FinishedAt(), run.CreatedAt(), run.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert job run: %w", err)
	}

	return nil
}

// Get retrieves a job run by ID, excluding soft-deleted runs
func (r *JobRunRepository) Get(id string) (*models.JobRun, error) {
	query := `
		SELECT id, sequence, kind, remote_id, status,
		       total_playlists, processed, successful, failed, skipped,
		       error, started_at, finished_at, created_at, updated_at, deleted_at
		FROM job_runs
		WHERE id = ? AND deleted_at IS NULL
	`

	run, err := scanJobRun(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: job run %s", shared.ErrJobNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query job run: %w", err)
	}
	return run, nil
}

// Update modifies an existing job run in the database
func (r *JobRunRepository) Update(run *models.JobRun) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	run.SetUpdatedAt(now)

	query := `
		UPDATE job_runs
		SET status = ?, total_playlists = ?, processed = ?, successful = ?,
		    failed = ?, skipped = ?, error = ?, finished_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		run.Status(), run.TotalPlaylists(), run.Processed(), run.Successful(),
		run.Failed(), run.Skipped(), run.Error(), run.FinishedAt(), now,
		run.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update job run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: job run %s not found or already deleted", shared.ErrJobNotFound, run.ID())
	}

	return nil
}

// Delete soft-deletes a job run by ID
func (r *JobRunRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE job_runs
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete job run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: job run %s not found or already deleted", shared.ErrJobNotFound, id)
	}

	return nil
}

// List retrieves job runs matching the given criteria, excluding soft-deleted
// runs. Supported criteria: "kind", "status", "remote_id".
func (r *JobRunRepository) List(criteria map[string]any) ([]*models.JobRun, error) {
	query := `
		SELECT id, sequence, kind, remote_id, status,
		       total_playlists, processed, successful, failed, skipped,
		       error, started_at, finished_at, created_at, updated_at, deleted_at
		FROM job_runs
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if kind, ok := criteria["kind"].(string); ok && kind != "" {
		query += " AND kind = ?"
		args = append(args, kind)
	}
	if status, ok := criteria["status"].(string); ok && status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	if remoteID, ok := criteria["remote_id"].(string); ok && remoteID != "" {
		query += " AND remote_id = ?"
		args = append(args, remoteID)
	}

	query += " ORDER BY sequence DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query job runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.JobRun
	for rows.Next() {
		run, err := scanJobRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJobRun(row rowScanner) (*models.JobRun, error) {
	var (
		id, kind, remoteID, status        string
		sequence                          int
		total, processed, successful      int
		failed, skipped                   int
		errText                           sql.NullString
		startedAt, finishedAt             time.Time
		createdAt, updatedAt              time.Time
		deletedAt                         sql.NullTime
	)

	err := row.Scan(&id, &sequence, &kind, &remoteID, &status,
		&total, &processed, &successful, &failed, &skipped,
		&errText, &startedAt, &finishedAt, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	run := models.NewJobRun(sequence, kind, remoteID, status)
	run.SetID(id)
	run.SetTotalPlaylists(total)
	run.SetCounts(processed, successful, failed, skipped)
	if errText.Valid {
		run.SetError(errText.String)
	}
	run.SetStartedAt(startedAt)
	run.SetFinishedAt(finishedAt)
	run.SetCreatedAt(createdAt)
	run.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		run.SetDeletedAt(&deletedAt.Time)
	}

	return run, nil
}
