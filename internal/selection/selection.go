// Package selection tracks which playlists (and optionally which tracks
// within them) the user has chosen for a bulk operation, and projects that
// choice into wire-ready job requests.
//
// Selection starts coarse: whole playlists are toggled in and out. The first
// time an individual track is toggled the model switches to fine-grained mode
// and stays there until Reset — track-level choices then determine the
// payload, not just playlist membership.
package selection

import (
	"context"
	"fmt"

	"github.com/spottransfer/sptx/internal/services"
	"github.com/spottransfer/sptx/internal/shared"
)

// TrackLoader fetches the track list for a playlist. The model calls it at
// most once per playlist; repeated loads return the cached result.
type TrackLoader func(ctx context.Context, playlistID string) ([]services.Track, error)

// Model holds the current selection state for one listing of playlists.
type Model struct {
	playlists []services.Playlist
	byID      map[string]services.Playlist
	loader    TrackLoader

	selected       map[string]struct{}
	tracks         map[string][]services.Track
	selectedTracks map[string]map[int]struct{}
	fineGrained    bool
}

// NewModel builds an empty selection over the given playlists. The loader may
// be nil if track expansion is never used.
func NewModel(playlists []services.Playlist, loader TrackLoader) *Model {
	byID := make(map[string]services.Playlist, len(playlists))
	for _, p := range playlists {
		byID[p.ID] = p
	}
	return &Model{
		playlists:      playlists,
		byID:           byID,
		loader:         loader,
		selected:       make(map[string]struct{}),
		tracks:         make(map[string][]services.Track),
		selectedTracks: make(map[string]map[int]struct{}),
	}
}

// Playlists returns the listing the model was built over, in original order.
func (m *Model) Playlists() []services.Playlist {
	return m.playlists
}

// TogglePlaylist flips a playlist in or out of the selection. Unknown IDs are
// ignored so the selection can never reference a playlist outside the listing.
func (m *Model) TogglePlaylist(id string) {
	if _, known := m.byID[id]; !known {
		return
	}
	if _, ok := m.selected[id]; ok {
		delete(m.selected, id)
	} else {
		m.selected[id] = struct{}{}
	}
}

// SelectAll marks every playlist in the listing as selected.
func (m *Model) SelectAll() {
	for _, p := range m.playlists {
		m.selected[p.ID] = struct{}{}
	}
}

// DeselectAll clears playlist-level selection. Track-level state and
// fine-grained mode are untouched; use Reset to drop everything.
func (m *Model) DeselectAll() {
	m.selected = make(map[string]struct{})
}

// IsSelected reports whether a playlist is currently selected.
func (m *Model) IsSelected(id string) bool {
	_, ok := m.selected[id]
	return ok
}

// SelectedCount returns the number of selected playlists.
func (m *Model) SelectedCount() int {
	return len(m.selected)
}

// FineGrained reports whether track-level choices drive the job payload.
func (m *Model) FineGrained() bool {
	return m.fineGrained
}

// LoadTracks fetches and caches the track list for a playlist. The first load
// seeds the playlist's track selection with every index, so expanding a
// playlist starts from "everything included". Subsequent calls return the
// cached list without touching the loader or the selection.
func (m *Model) LoadTracks(ctx context.Context, playlistID string) ([]services.Track, error) {
	if cached, ok := m.tracks[playlistID]; ok {
		return cached, nil
	}
	if _, known := m.byID[playlistID]; !known {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}
	if m.loader == nil {
		return nil, fmt.Errorf("%w: no track loader configured", shared.ErrInvalidInput)
	}

	tracks, err := m.loader(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	m.SeedTracks(playlistID, tracks)
	return tracks, nil
}

// SeedTracks caches an externally fetched track list for a playlist, seeding
// its selection with every index. A no-op for unknown playlists or playlists
// whose tracks are already cached, so a repeated seed never resets choices.
// Callers that fetch tracks off the main goroutine use this to apply the
// result without the model calling the loader itself.
func (m *Model) SeedTracks(playlistID string, tracks []services.Track) {
	if _, ok := m.tracks[playlistID]; ok {
		return
	}
	if _, known := m.byID[playlistID]; !known {
		return
	}

	m.tracks[playlistID] = tracks
	indices := make(map[int]struct{}, len(tracks))
	for _, tr := range tracks {
		indices[tr.Index] = struct{}{}
	}
	m.selectedTracks[playlistID] = indices
}

// TracksLoaded reports whether a playlist's tracks have been fetched.
func (m *Model) TracksLoaded(playlistID string) bool {
	_, ok := m.tracks[playlistID]
	return ok
}

// ToggleTrack flips one track in or out of its playlist's selection and
// switches the model into fine-grained mode. It is a no-op for playlists
// whose tracks have not been loaded or for indices outside the track list.
func (m *Model) ToggleTrack(playlistID string, index int) {
	indices, ok := m.selectedTracks[playlistID]
	if !ok {
		return
	}
	if index < 0 || index >= len(m.tracks[playlistID]) {
		return
	}

	if _, selected := indices[index]; selected {
		delete(indices, index)
	} else {
		indices[index] = struct{}{}
	}
	m.fineGrained = true
}

// ToggleAllTracks clears a playlist's track selection when every track is
// selected, and selects every track otherwise. Like ToggleTrack it switches
// on fine-grained mode and ignores playlists without loaded tracks.
func (m *Model) ToggleAllTracks(playlistID string) {
	tracks, ok := m.tracks[playlistID]
	if !ok {
		return
	}

	indices := m.selectedTracks[playlistID]
	if len(indices) == len(tracks) {
		m.selectedTracks[playlistID] = make(map[int]struct{})
	} else {
		all := make(map[int]struct{}, len(tracks))
		for _, tr := range tracks {
			all[tr.Index] = struct{}{}
		}
		m.selectedTracks[playlistID] = all
	}
	m.fineGrained = true
}

// IsTrackSelected reports whether a track index is selected within its
// playlist.
func (m *Model) IsTrackSelected(playlistID string, index int) bool {
	indices, ok := m.selectedTracks[playlistID]
	if !ok {
		return false
	}
	_, selected := indices[index]
	return selected
}

// SelectedTrackCount returns how many tracks are selected for a playlist,
// or zero when its tracks have not been loaded.
func (m *Model) SelectedTrackCount(playlistID string) int {
	return len(m.selectedTracks[playlistID])
}

// Reset drops all selection state, cached tracks, and fine-grained mode,
// returning the model to the state it had right after NewModel.
func (m *Model) Reset() {
	m.selected = make(map[string]struct{})
	m.tracks = make(map[string][]services.Track)
	m.selectedTracks = make(map[string]map[int]struct{})
	m.fineGrained = false
}
