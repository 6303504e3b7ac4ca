package jobs

import (
	"testing"

	"github.com/spottransfer/sptx/internal/services"
)

func TestAggregate(t *testing.T) {
	t.Run("nil snapshot yields zero summary", func(t *testing.T) {
		sum := Aggregate(services.KindTransfer, nil)
		if sum.Total != 0 || sum.Percent != 0 {
			t.Errorf("unexpected summary: %+v", sum)
		}
	})

	t.Run("zero total never divides by zero", func(t *testing.T) {
		sum := Aggregate(services.KindTransfer, &services.JobSnapshot{Status: services.StatusInProgress})
		if sum.Percent != 0 {
			t.Errorf("expected 0%%, got %f", sum.Percent)
		}
	})

	t.Run("transfer progress tracks the processed counter", func(t *testing.T) {
		sum := Aggregate(services.KindTransfer, &services.JobSnapshot{
			TotalPlaylists: 10,
			Processed:      4,
			Successful:     3,
			Failed:         1,
			Skipped:        0,
		})
		if sum.Done != 4 {
			t.Errorf("expected done=4, got %d", sum.Done)
		}
		if sum.Percent != 40 {
			t.Errorf("expected 40%%, got %f", sum.Percent)
		}
	})

	t.Run("delete progress counts deleted plus failed", func(t *testing.T) {
		sum := Aggregate(services.KindDelete, &services.JobSnapshot{
			TotalPlaylists: 4,
			Deleted:        2,
			Failed:         1,
		})
		if sum.Done != 3 {
			t.Errorf("expected done=3, got %d", sum.Done)
		}
		if sum.Percent != 75 {
			t.Errorf("expected 75%%, got %f", sum.Percent)
		}
	})

	t.Run("done is clamped to total", func(t *testing.T) {
		sum := Aggregate(services.KindDelete, &services.JobSnapshot{
			TotalPlaylists: 2,
			Deleted:        2,
			Failed:         1,
		})
		if sum.Done != 2 || sum.Percent != 100 {
			t.Errorf("expected clamped summary, got %+v", sum)
		}
	})

	t.Run("no state retained between calls", func(t *testing.T) {
		Aggregate(services.KindTransfer, &services.JobSnapshot{TotalPlaylists: 10, Processed: 10})
		sum := Aggregate(services.KindTransfer, &services.JobSnapshot{TotalPlaylists: 5})
		if sum.Done != 0 || sum.Percent != 0 {
			t.Errorf("summary leaked state from a previous job: %+v", sum)
		}
	})
}

func TestStatusLabel(t *testing.T) {
	cases := map[string]string{
		"fetching_details":  "Fetching details",
		"searching_songs":   "Searching songs",
		"checking_existing": "Checking existing playlists",
		"creating":          "Creating",
		"deleted":           "Deleted",
		"something_new":     "something_new",
	}
	for status, want := range cases {
		if got := StatusLabel(status); got != want {
			t.Errorf("StatusLabel(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestPhaseString(t *testing.T) {
	cases := map[Phase]string{
		Submitted: "submitted",
		Progress:  "progress",
		Completed: "completed",
		Errored:   "errored",
		Cancelled: "cancelled",
		Phase(99): "",
	}
	for phase, want := range cases {
		if got := phase.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", phase, got, want)
		}
	}
}
