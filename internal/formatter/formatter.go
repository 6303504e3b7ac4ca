// package formatter renders finished job reports to various formats (JSON, CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spottransfer/sptx/internal/jobs"
	"github.com/spottransfer/sptx/internal/services"
	"github.com/spottransfer/sptx/internal/shared"
)

// Report is the serializable form of a finished job.
type Report struct {
	Kind        string                    `json:"kind"`
	JobID       string                    `json:"job_id"`
	Status      string                    `json:"status"`
	Total       int                       `json:"total_playlists"`
	Done        int                       `json:"done"`
	Successful  int                       `json:"successful"`
	Failed      int                       `json:"failed"`
	Skipped     int                       `json:"skipped"`
	Error       string                    `json:"error,omitempty"`
	Playlists   []services.PlaylistStatus `json:"playlists,omitempty"`
	GeneratedAt time.Time                 `json:"generated_at"`
}

// NewReport builds a report from a job's handle and terminal snapshot.
func NewReport(handle *services.JobHandle, snap *services.JobSnapshot) *Report {
	sum := jobs.Aggregate(handle.Kind, snap)
	return &Report{
		Kind:        handle.Kind.String(),
		JobID:       handle.ID,
		Status:      snap.Status,
		Total:       sum.Total,
		Done:        sum.Done,
		Successful:  sum.Successful,
		Failed:      sum.Failed,
		Skipped:     sum.Skipped,
		Error:       snap.Error,
		Playlists:   snap.Playlists,
		GeneratedAt: time.Now(),
	}
}

// ReportToJSON converts a report to indented JSON.
func ReportToJSON(report *Report) ([]byte, error) {
	return shared.MarshalJSON(report, true)
}

// ReportToCSV converts a report's per-playlist results to CSV with columns:
// Name, Status, Found, Missed, Reason
func ReportToCSV(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Name", "Status", "Found", "Missed", "Reason"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, pl := range report.Playlists {
		record := []string{
			pl.Name,
			pl.Status,
			strconv.Itoa(pl.FoundTracks),
			strconv.Itoa(pl.MissedTracks),
			pl.Reason,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ReportToMarkdown converts a report to Markdown, including per-playlist
// results and the missed-tracks list of any playlist that has one.
func ReportToMarkdown(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s %s\n\n", report.Kind, report.JobID))
	buf.WriteString(fmt.Sprintf("**Status**: %s\n", report.Status))
	buf.WriteString(fmt.Sprintf("**Playlists**: %d/%d (%d ok, %d failed, %d skipped)\n\n",
		report.Done, report.Total, report.Successful, report.Failed, report.Skipped))

	if report.Error != "" {
		buf.WriteString(fmt.Sprintf("**Error**: %s\n\n", report.Error))
	}

	if len(report.Playlists) > 0 {
		buf.WriteString("## Playlists\n\n")
		for i, pl := range report.Playlists {
			buf.WriteString(fmt.Sprintf("%d. %s — %s", i+1, pl.Name, jobs.StatusLabel(pl.Status)))
			if pl.FoundTracks > 0 || pl.MissedTracks > 0 {
				buf.WriteString(fmt.Sprintf(" (%d found, %d missed)", pl.FoundTracks, pl.MissedTracks))
			}
			if pl.Reason != "" {
				buf.WriteString(fmt.Sprintf(" — %s", pl.Reason))
			}
			buf.WriteString("\n")
		}
		buf.WriteString("\n")
	}

	wroteHeader := false
	for _, pl := range report.Playlists {
		if len(pl.MissedTracksList) == 0 {
			continue
		}
		if !wroteHeader {
			buf.WriteString("## Missed tracks\n\n")
			wroteHeader = true
		}
		buf.WriteString(fmt.Sprintf("### %s\n\n", pl.Name))
		for _, track := range pl.MissedTracksList {
			buf.WriteString(fmt.Sprintf("- %s\n", track))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ReportToText converts a report to plain text for terminal output.
func ReportToText(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s %s: %s\n", report.Kind, report.JobID, report.Status))
	buf.WriteString(fmt.Sprintf("Playlists: %d/%d | ok %d | failed %d | skipped %d\n",
		report.Done, report.Total, report.Successful, report.Failed, report.Skipped))
	if report.Error != "" {
		buf.WriteString(fmt.Sprintf("Error: %s\n", report.Error))
	}
	buf.WriteString("\n")

	for i, pl := range report.Playlists {
		buf.WriteString(fmt.Sprintf("%d. %s - %s", i+1, pl.Name, jobs.StatusLabel(pl.Status)))
		if pl.MissedTracks > 0 {
			buf.WriteString(fmt.Sprintf(" (%d missed)", pl.MissedTracks))
		}
		if pl.Reason != "" {
			buf.WriteString(fmt.Sprintf(" [%s]", pl.Reason))
		}
		buf.WriteString("\n")
		for _, track := range pl.MissedTracksList {
			buf.WriteString(fmt.Sprintf("   missing: %s\n", track))
		}
	}

	return buf.Bytes(), nil
}

// WriteReport renders a report in the given format and writes it under dir,
// creating the directory as needed. The filename defaults to
// {kind}_{job_id}_report.{ext}. Returns the written path.
func WriteReport(report *Report, format, dir string) (string, error) {
	var (
		data []byte
		ext  string
		err  error
	)

	switch format {
	case "csv":
		data, err = ReportToCSV(report)
		ext = "csv"
	case "markdown", "md":
		data, err = ReportToMarkdown(report)
		ext = "md"
	case "txt", "text":
		data, err = ReportToText(report)
		ext = "txt"
	case "json", "":
		data, err = ReportToJSON(report)
		ext = "json"
	default:
		return "", fmt.Errorf("%w: unknown report format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s_report.%s", report.Kind, report.JobID, ext))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return path, nil
}

// WriteCloneResult writes the outcome of a synchronous clone, including its
// missed tracks, as plain text under dir. Returns the written path.
func WriteCloneResult(result *services.CloneResult, dir string) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(result.Message + "\n")
	if len(result.MissedTracks) > 0 {
		buf.WriteString(fmt.Sprintf("\nMissed tracks (%d):\n", len(result.MissedTracks)))
		for _, track := range result.MissedTracks {
			buf.WriteString(fmt.Sprintf("- %s\n", track))
		}
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	path := filepath.Join(dir, fmt.Sprintf("clone_%d.txt", time.Now().Unix()))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write clone result: %w", err)
	}

	return path, nil
}
