package formatter

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spottransfer/sptx/internal/services"
	tu "github.com/spottransfer/sptx/internal/testing"
)

func sampleReport() *Report {
	handle := &services.JobHandle{Kind: services.KindTransfer, ID: "t-1", Total: 3}
	snap := &services.JobSnapshot{
		Status:         services.StatusCompleted,
		TotalPlaylists: 3,
		Processed:      3,
		Successful:     2,
		Failed:         1,
		Playlists: []services.PlaylistStatus{
			{Name: "Roadtrip", Status: "created", FoundTracks: 10, MissedTracks: 2, MissedTracksList: []string{"Song A", "Song B"}},
			{Name: "Focus", Status: "created", FoundTracks: 8},
			{Name: "Workout", Status: "failed", Reason: "quota exceeded"},
		},
	}
	return NewReport(handle, snap)
}

func TestNewReport(t *testing.T) {
	report := sampleReport()
	if report.Kind != "transfer" || report.JobID != "t-1" {
		t.Errorf("unexpected identity: %s/%s", report.Kind, report.JobID)
	}
	if report.Done != 3 || report.Successful != 2 || report.Failed != 1 {
		t.Errorf("unexpected counters: %+v", report)
	}
}

func TestReportToJSON(t *testing.T) {
	data, err := ReportToJSON(sampleReport())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["status"] != services.StatusCompleted {
		t.Errorf("unexpected status: %v", decoded["status"])
	}
	if playlists, ok := decoded["playlists"].([]any); !ok || len(playlists) != 3 {
		t.Errorf("expected 3 playlists in JSON")
	}
}

func TestReportToCSV(t *testing.T) {
	data, err := ReportToCSV(sampleReport())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "Name,Status,Found,Missed,Reason" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[3], "quota exceeded") {
		t.Errorf("expected failure reason in row: %s", lines[3])
	}
}

func TestReportToMarkdown(t *testing.T) {
	data, err := ReportToMarkdown(sampleReport())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	md := string(data)
	for _, want := range []string{"# transfer t-1", "## Playlists", "## Missed tracks", "- Song A", "Created"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestReportToText(t *testing.T) {
	data, err := ReportToText(sampleReport())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	text := string(data)
	if !strings.Contains(text, "Playlists: 3/3 | ok 2 | failed 1") {
		t.Errorf("text missing summary line:\n%s", text)
	}
	if !strings.Contains(text, "missing: Song A") {
		t.Errorf("text missing missed track:\n%s", text)
	}
}

func TestWriteReport(t *testing.T) {
	t.Run("writes json by default", func(t *testing.T) {
		dir := t.TempDir()

		path, err := WriteReport(sampleReport(), "", dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if filepath.Base(path) != "transfer_t-1_report.json" {
			t.Errorf("unexpected filename: %s", path)
		}
		if !strings.Contains(tu.MustReadFile(t, path), `"job_id": "t-1"`) {
			t.Errorf("report file missing job identity: %s", path)
		}
	})

	t.Run("creates nested directories", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "reports", "2026")

		if _, err := WriteReport(sampleReport(), "markdown", dir); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		tu.AssertDirExists(t, dir)
	})

	t.Run("unknown format", func(t *testing.T) {
		if _, err := WriteReport(sampleReport(), "yaml", t.TempDir()); err == nil {
			t.Fatal("expected error for unknown format")
		}
	})
}

func TestWriteCloneResult(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteCloneResult(&services.CloneResult{
		Message:      "Playlist created successfully!",
		MissedTracks: []string{"Obscure B-Side"},
	}, dir)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if data := tu.MustReadFile(t, path); !strings.Contains(data, "Obscure B-Side") {
		t.Errorf("clone result missing missed track:\n%s", data)
	}
}
