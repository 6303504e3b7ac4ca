package jobs

import (
	"fmt"

	"github.com/spottransfer/sptx/internal/services"
)

// Update represents a progress event during a job's lifecycle.
//
// Used to send real-time updates to the CLI or TUI layer for display.
type Update struct {
	Phase    Phase                 // Lifecycle phase
	Handle   *services.JobHandle   // Job the event belongs to
	Snapshot *services.JobSnapshot // Latest snapshot, nil for Submitted
	Summary  Summary               // Display-ready counts derived from the snapshot
	Message  string                // Human-readable message for display
}

// Lifecycle phase enumeration
type Phase int

const (
	Submitted Phase = iota
	Progress
	Completed
	Errored
	Cancelled
)

func (p Phase) String() string {
	switch p {
	case Submitted:
		return "submitted"
	case Progress:
		return "progress"
	case Completed:
		return "completed"
	case Errored:
		return "errored"
	case Cancelled:
		return "cancelled"
	default:
		return ""
	}
}

// Summary holds display-ready counts derived from a snapshot. For transfers
// Done mirrors the executor's processed counter, which already includes
// failed and skipped playlists; for deletions it is deleted plus failed.
type Summary struct {
	Total      int
	Done       int
	Successful int
	Failed     int
	Skipped    int
	Deleted    int
	Percent    float64
}

// Aggregate projects a snapshot into a Summary. Pure function of its input:
// a nil snapshot or a zero total yields zero counts and 0%, never a division
// by zero, and nothing is retained between calls.
func Aggregate(kind services.JobKind, snap *services.JobSnapshot) Summary {
	if snap == nil {
		return Summary{}
	}

	sum := Summary{
		Total:      snap.TotalPlaylists,
		Successful: snap.Successful,
		Failed:     snap.Failed,
		Skipped:    snap.Skipped,
		Deleted:    snap.Deleted,
	}

	switch kind {
	case services.KindDelete:
		sum.Done = snap.Deleted + snap.Failed
	default:
		sum.Done = snap.Processed
	}

	if sum.Total > 0 {
		if sum.Done > sum.Total {
			sum.Done = sum.Total
		}
		sum.Percent = float64(sum.Done) / float64(sum.Total) * 100
	}
	return sum
}

// StatusLabel maps a per-playlist sub-status to display text. Sub-statuses
// are informational only; unknown values pass through unchanged.
func StatusLabel(status string) string {
	switch status {
	case "pending":
		return "Pending"
	case "fetching_details":
		return "Fetching details"
	case "searching_songs":
		return "Searching songs"
	case "checking_existing":
		return "Checking existing playlists"
	case "creating":
		return "Creating"
	case "updating":
		return "Updating"
	case "created":
		return "Created"
	case "updated":
		return "Updated"
	case "deleted":
		return "Deleted"
	case "skipped":
		return "Skipped"
	case "failed":
		return "Failed"
	default:
		return status
	}
}

func submittedUpdate(handle *services.JobHandle) Update {
	return Update{
		Phase:   Submitted,
		Handle:  handle,
		Message: fmt.Sprintf("%s accepted (%d playlists)", handle.Kind, handle.Total),
	}
}

func progressUpdate(handle *services.JobHandle, snap *services.JobSnapshot) Update {
	sum := Aggregate(handle.Kind, snap)
	return Update{
		Phase:    Progress,
		Handle:   handle,
		Snapshot: snap,
		Summary:  sum,
		Message:  fmt.Sprintf("[%d/%d] %d ok, %d failed, %d skipped", sum.Done, sum.Total, sum.Successful, sum.Failed, sum.Skipped),
	}
}

func terminalUpdate(handle *services.JobHandle, snap *services.JobSnapshot) Update {
	u := Update{
		Handle:   handle,
		Snapshot: snap,
		Summary:  Aggregate(handle.Kind, snap),
	}

	switch snap.Status {
	case services.StatusCompleted:
		u.Phase = Completed
		u.Message = fmt.Sprintf("%s completed: %d/%d playlists", handle.Kind, u.Summary.Done, u.Summary.Total)
	case services.StatusCancelled:
		u.Phase = Cancelled
		u.Message = fmt.Sprintf("%s cancelled", handle.Kind)
	default:
		u.Phase = Errored
		u.Message = fmt.Sprintf("%s failed: %s", handle.Kind, snap.Error)
	}
	return u
}

func cancelledUpdate(handle *services.JobHandle, snap *services.JobSnapshot) Update {
	return Update{
		Phase:    Cancelled,
		Handle:   handle,
		Snapshot: snap,
		Summary:  Aggregate(handle.Kind, snap),
		Message:  fmt.Sprintf("%s cancelled", handle.Kind),
	}
}
