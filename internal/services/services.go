// package services defines the wire types and HTTP client for the transfer backend
//
// The backend runs the actual playlist transfers and deletions as background jobs
// and exposes submit/status/cancel endpoints per job kind.
package services

import "fmt"

// JobKind distinguishes the two bulk job families the backend runs.
type JobKind int

const (
	KindTransfer JobKind = iota
	KindDelete
)

func (k JobKind) String() string {
	switch k {
	case KindTransfer:
		return "transfer"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// statusPath returns the status endpoint for a job of this kind.
func (k JobKind) statusPath(jobID string) string {
	return fmt.Sprintf("/%s-status/%s", k, jobID)
}

// cancelPath returns the cancel endpoint for a job of this kind.
func (k JobKind) cancelPath(jobID string) string {
	return fmt.Sprintf("/%s-cancel/%s", k, jobID)
}

// Top-level job statuses reported by the backend. Only the terminal three end a job;
// anything else keeps the poller running.
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusError      = "error"
	StatusCancelled  = "cancelled"
)

// IsTerminalStatus reports whether a top-level job status ends the job.
func IsTerminalStatus(status string) bool {
	switch status {
	case StatusCompleted, StatusError, StatusCancelled:
		return true
	default:
		return false
	}
}

// Playlist represents a playlist in a listing response from either service.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TotalTracks int    `json:"total_tracks"`
	Link        string `json:"link,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Track represents a track within a playlist listing.
//
// Index is the track's stable position within its playlist and is the unit of
// fine-grained selection.
type Track struct {
	Index      int      `json:"index"`
	Name       string   `json:"name"`
	Artists    []string `json:"artists"`
	Album      string   `json:"album,omitempty"`
	Image      string   `json:"image,omitempty"`
	DurationMS int      `json:"duration_ms,omitempty"`
}

// JobHandle identifies an accepted background job on the backend.
type JobHandle struct {
	Kind  JobKind
	ID    string
	Total int
}

// TransferRequest is the submit payload for a bulk transfer.
//
// Exactly one of PlaylistIDs (whole playlists) or Playlists (per-track selection)
// is populated; the zero-valued one is omitted from the wire body.
type TransferRequest struct {
	PlaylistIDs  []string            `json:"playlist_ids,omitempty"`
	Playlists    []PlaylistSelection `json:"playlists,omitempty"`
	SpotifyToken string              `json:"spotify_token,omitempty"`
	AuthHeaders  string              `json:"auth_headers,omitempty"`
}

// FineGrained reports whether the request carries per-track selections.
func (r *TransferRequest) FineGrained() bool {
	return len(r.Playlists) > 0
}

// PlaylistSelection is a playlist with an explicit track subset for fine-grained transfers.
type PlaylistSelection struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Image  string           `json:"image,omitempty"`
	Tracks []TrackSelection `json:"tracks"`
}

// TrackSelection is the track payload the backend matches on the destination service.
type TrackSelection struct {
	Name    string   `json:"name"`
	Artists []string `json:"artists"`
	Album   string   `json:"album,omitempty"`
}

// DeleteRequest is the submit payload for a bulk deletion of destination playlists.
//
// All selects the delete-everything endpoint; otherwise PlaylistIDs must be set.
type DeleteRequest struct {
	PlaylistIDs []string `json:"playlist_ids,omitempty"`
	AuthHeaders string   `json:"auth_headers,omitempty"`
	All         bool     `json:"-"`
}

// CloneRequest is the payload for the synchronous single-playlist clone endpoint.
type CloneRequest struct {
	PlaylistLink string `json:"playlist_link"`
	AuthHeaders  string `json:"auth_headers,omitempty"`
}

// CloneResult is the immediate (already-terminal) result of a synchronous clone.
type CloneResult struct {
	Message      string   `json:"message"`
	MissedTracks []string `json:"missed_tracks"`
}

// PlaylistStatus is the per-playlist progress entry inside a job snapshot.
//
// Status holds either a terminal per-item value (created, updated, up_to_date,
// deleted, failed, skipped) or an informational processing sub-status
// (fetching_details, searching_songs, checking_existing, creating, updating).
type PlaylistStatus struct {
	ID               string   `json:"id,omitempty"`
	Name             string   `json:"name"`
	Status           string   `json:"status"`
	Image            string   `json:"image,omitempty"`
	TotalTracks      int      `json:"total_tracks,omitempty"`
	FoundTracks      int      `json:"found_tracks,omitempty"`
	MissedTracks     int      `json:"missed_tracks,omitempty"`
	MissedTracksList []string `json:"missed_tracks_list,omitempty"`
	Reason           string   `json:"reason,omitempty"`
}

// JobSnapshot is the full job state as reported by a single status poll.
//
// The backend is the source of truth: each poll replaces the previous snapshot
// wholesale, never merges into it.
type JobSnapshot struct {
	Status         string           `json:"status"`
	TotalPlaylists int              `json:"total_playlists"`
	Processed      int              `json:"processed"`
	Successful     int              `json:"successful"`
	Failed         int              `json:"failed"`
	Skipped        int              `json:"skipped"`
	Deleted        int              `json:"deleted"`
	Playlists      []PlaylistStatus `json:"playlists"`
	Error          string           `json:"error,omitempty"`
}

// Terminal reports whether this snapshot ends the job.
func (s *JobSnapshot) Terminal() bool {
	return IsTerminalStatus(s.Status)
}
