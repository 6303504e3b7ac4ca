package models

import (
	"fmt"
	"time"

	"github.com/spottransfer/sptx/internal/services"
	"github.com/spottransfer/sptx/internal/shared"
)

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// JobRun records one finished bulk job.
type JobRun struct {
	id             string
	sequence       int
	kind           string
	remoteID       string
	status         string
	totalPlaylists int
	processed      int
	successful     int
	failed         int
	skipped        int
	errText        string
	startedAt      time.Time
	finishedAt     time.Time
	createdAt      time.Time
	updatedAt      time.Time
	deletedAt      *time.Time
}

// NewJobRun creates a job run record for a job that has reached a terminal
// state.
func NewJobRun(sequence int, kind, remoteID, status string) *JobRun {
	now := time.Now()
	return &JobRun{
		sequence:   sequence,
		kind:       kind,
		remoteID:   remoteID,
		status:     status,
		startedAt:  now,
		finishedAt: now,
		createdAt:  now,
		updatedAt:  now,
	}
}

// NewJobRunFromSnapshot builds a job run record from a job's terminal
// snapshot. For deletions the executor reports deleted/failed counters, which
// map onto processed/successful here so one history row shape serves both
// kinds.
func NewJobRunFromSnapshot(sequence int, handle *services.JobHandle, snap *services.JobSnapshot, startedAt time.Time) *JobRun {
	run := NewJobRun(sequence, handle.Kind.String(), handle.ID, snap.Status)
	run.startedAt = startedAt
	run.totalPlaylists = snap.TotalPlaylists
	run.errText = snap.Error

	if handle.Kind == services.KindDelete {
		run.processed = snap.Deleted + snap.Failed
		run.successful = snap.Deleted
		run.failed = snap.Failed
	} else {
		run.processed = snap.Processed
		run.successful = snap.Successful
		run.failed = snap.Failed
		run.skipped = snap.Skipped
	}
	return run
}

func (j *JobRun) ID() string            { return j.id }
func (j *JobRun) Sequence() int         { return j.sequence }
func (j *JobRun) Kind() string          { return j.kind }
func (j *JobRun) RemoteID() string      { return j.remoteID }
func (j *JobRun) Status() string        { return j.status }
func (j *JobRun) TotalPlaylists() int   { return j.totalPlaylists }
func (j *JobRun) Processed() int        { return j.processed }
func (j *JobRun) Successful() int       { return j.successful }
func (j *JobRun) Failed() int           { return j.failed }
func (j *JobRun) Skipped() int          { return j.skipped }
func (j *JobRun) Error() string         { return j.errText }
func (j *JobRun) StartedAt() time.Time  { return j.startedAt }
func (j *JobRun) FinishedAt() time.Time { return j.finishedAt }
func (j *JobRun) CreatedAt() time.Time  { return j.createdAt }
func (j *JobRun) UpdatedAt() time.Time  { return j.updatedAt }
func (j *JobRun) DeletedAt() *time.Time { return j.deletedAt }

func (j *JobRun) SetID(id string)                 { j.id = id }
func (j *JobRun) SetSequence(sequence int)        { j.sequence = sequence }
func (j *JobRun) SetStatus(status string)         { j.status = status }
func (j *JobRun) SetError(text string)            { j.errText = text }
func (j *JobRun) SetCounts(p, s, f, sk int)       { j.processed, j.successful, j.failed, j.skipped = p, s, f, sk }
func (j *JobRun) SetTotalPlaylists(total int)     { j.totalPlaylists = total }
func (j *JobRun) SetStartedAt(t time.Time)        { j.startedAt = t }
func (j *JobRun) SetFinishedAt(t time.Time)       { j.finishedAt = t }
func (j *JobRun) SetCreatedAt(t time.Time)        { j.createdAt = t }
func (j *JobRun) SetUpdatedAt(t time.Time)        { j.updatedAt = t }
func (j *JobRun) SetDeletedAt(t *time.Time)       { j.deletedAt = t }

// Validate checks that the record identifies a real job with a terminal
// status.
func (j *JobRun) Validate() error {
	if j.kind != services.KindTransfer.String() && j.kind != services.KindDelete.String() {
		return fmt.Errorf("%w: unknown job kind %q", shared.ErrInvalidInput, j.kind)
	}
	if j.remoteID == "" {
		return fmt.Errorf("%w: missing remote job id", shared.ErrInvalidInput)
	}
	if !services.IsTerminalStatus(j.status) {
		return fmt.Errorf("%w: job run status %q is not terminal", shared.ErrInvalidInput, j.status)
	}
	return nil
}
