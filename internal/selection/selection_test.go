package selection

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/spottransfer/sptx/internal/services"
	"github.com/spottransfer/sptx/internal/shared"
)

func sampleListing() []services.Playlist {
	return []services.Playlist{
		{ID: "a", Name: "Roadtrip", TotalTracks: 5},
		{ID: "b", Name: "Focus", TotalTracks: 5},
		{ID: "c", Name: "Workout", TotalTracks: 3},
	}
}

// countingLoader returns five tracks per playlist and records call counts.
func countingLoader(calls map[string]int) TrackLoader {
	return func(_ context.Context, playlistID string) ([]services.Track, error) {
		calls[playlistID]++
		tracks := make([]services.Track, 5)
		for i := range tracks {
			tracks[i] = services.Track{
				Index:   i,
				Name:    fmt.Sprintf("%s-track-%d", playlistID, i),
				Artists: []string{"Artist"},
				Album:   "Album",
			}
		}
		return tracks, nil
	}
}

func TestModelSelection(t *testing.T) {
	t.Run("toggle flips membership", func(t *testing.T) {
		m := NewModel(sampleListing(), nil)

		m.TogglePlaylist("a")
		if !m.IsSelected("a") || m.SelectedCount() != 1 {
			t.Error("expected a to be selected")
		}

		m.TogglePlaylist("a")
		if m.IsSelected("a") || m.SelectedCount() != 0 {
			t.Error("expected a to be deselected")
		}
	})

	t.Run("unknown playlist is ignored", func(t *testing.T) {
		m := NewModel(sampleListing(), nil)
		m.TogglePlaylist("nope")
		if m.SelectedCount() != 0 {
			t.Error("unknown playlist must not enter the selection")
		}
	})

	t.Run("select all and deselect all", func(t *testing.T) {
		m := NewModel(sampleListing(), nil)

		m.SelectAll()
		if m.SelectedCount() != 3 {
			t.Errorf("expected 3 selected, got %d", m.SelectedCount())
		}

		m.DeselectAll()
		if m.SelectedCount() != 0 {
			t.Errorf("expected 0 selected, got %d", m.SelectedCount())
		}
	})
}

func TestLoadTracks(t *testing.T) {
	t.Run("seeds all indices selected", func(t *testing.T) {
		calls := map[string]int{}
		m := NewModel(sampleListing(), countingLoader(calls))

		tracks, err := m.LoadTracks(context.Background(), "a")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(tracks) != 5 {
			t.Fatalf("expected 5 tracks, got %d", len(tracks))
		}
		if m.SelectedTrackCount("a") != 5 {
			t.Errorf("expected all indices seeded, got %d", m.SelectedTrackCount("a"))
		}
		if m.FineGrained() {
			t.Error("loading tracks alone must not switch to fine-grained mode")
		}
	})

	t.Run("idempotent and does not reseed", func(t *testing.T) {
		calls := map[string]int{}
		m := NewModel(sampleListing(), countingLoader(calls))

		if _, err := m.LoadTracks(context.Background(), "a"); err != nil {
			t.Fatal(err)
		}
		m.ToggleTrack("a", 0)

		if _, err := m.LoadTracks(context.Background(), "a"); err != nil {
			t.Fatal(err)
		}
		if calls["a"] != 1 {
			t.Errorf("expected a single loader call, got %d", calls["a"])
		}
		if m.SelectedTrackCount("a") != 4 {
			t.Errorf("repeat load must not reseed the selection, got %d selected", m.SelectedTrackCount("a"))
		}
	})

	t.Run("unknown playlist", func(t *testing.T) {
		m := NewModel(sampleListing(), countingLoader(map[string]int{}))
		if _, err := m.LoadTracks(context.Background(), "nope"); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("loader failure propagates", func(t *testing.T) {
		boom := errors.New("boom")
		m := NewModel(sampleListing(), func(context.Context, string) ([]services.Track, error) {
			return nil, boom
		})

		if _, err := m.LoadTracks(context.Background(), "a"); !errors.Is(err, boom) {
			t.Fatalf("expected loader error, got %v", err)
		}
		if m.TracksLoaded("a") {
			t.Error("failed load must not mark tracks as loaded")
		}
	})
}

func TestToggleTracks(t *testing.T) {
	t.Run("toggle switches fine-grained mode on", func(t *testing.T) {
		m := NewModel(sampleListing(), countingLoader(map[string]int{}))
		if _, err := m.LoadTracks(context.Background(), "a"); err != nil {
			t.Fatal(err)
		}

		m.ToggleTrack("a", 2)
		if !m.FineGrained() {
			t.Error("expected fine-grained mode after a track toggle")
		}
		if m.IsTrackSelected("a", 2) {
			t.Error("expected index 2 to be deselected")
		}

		m.ToggleTrack("a", 2)
		if !m.IsTrackSelected("a", 2) {
			t.Error("expected index 2 to be selected again")
		}
		if !m.FineGrained() {
			t.Error("fine-grained mode must not revert implicitly")
		}
	})

	t.Run("unloaded playlist and bad indices are ignored", func(t *testing.T) {
		m := NewModel(sampleListing(), countingLoader(map[string]int{}))

		m.ToggleTrack("a", 0)
		if m.FineGrained() {
			t.Error("toggle on unloaded playlist must be a no-op")
		}

		if _, err := m.LoadTracks(context.Background(), "a"); err != nil {
			t.Fatal(err)
		}
		m.ToggleTrack("a", 99)
		m.ToggleTrack("a", -1)
		if m.SelectedTrackCount("a") != 5 {
			t.Errorf("out-of-range toggles must not change the selection, got %d", m.SelectedTrackCount("a"))
		}
	})

	t.Run("toggle all clears when full and fills otherwise", func(t *testing.T) {
		m := NewModel(sampleListing(), countingLoader(map[string]int{}))
		if _, err := m.LoadTracks(context.Background(), "a"); err != nil {
			t.Fatal(err)
		}

		m.ToggleAllTracks("a")
		if m.SelectedTrackCount("a") != 0 {
			t.Errorf("expected empty selection, got %d", m.SelectedTrackCount("a"))
		}

		m.ToggleAllTracks("a")
		if m.SelectedTrackCount("a") != 5 {
			t.Errorf("expected full selection, got %d", m.SelectedTrackCount("a"))
		}
	})
}

func TestReset(t *testing.T) {
	m := NewModel(sampleListing(), countingLoader(map[string]int{}))
	m.SelectAll()
	if _, err := m.LoadTracks(context.Background(), "a"); err != nil {
		t.Fatal(err)
	}
	m.ToggleTrack("a", 0)

	m.Reset()

	if m.SelectedCount() != 0 {
		t.Error("expected no selected playlists after reset")
	}
	if m.FineGrained() {
		t.Error("expected fine-grained mode off after reset")
	}
	if m.TracksLoaded("a") {
		t.Error("expected cached tracks dropped after reset")
	}
}

func TestBuildTransferRequest(t *testing.T) {
	t.Run("coarse selection emits bulk form", func(t *testing.T) {
		m := NewModel(sampleListing(), nil)
		m.SelectAll()

		req, err := m.BuildTransferRequest("tok", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if req.FineGrained() {
			t.Error("expected bulk request")
		}
		if len(req.PlaylistIDs) != 3 || req.PlaylistIDs[0] != "a" || req.PlaylistIDs[2] != "c" {
			t.Errorf("expected ids in listing order, got %v", req.PlaylistIDs)
		}
		if req.SpotifyToken != "tok" {
			t.Errorf("expected credential attached, got %q", req.SpotifyToken)
		}
	})

	t.Run("credential trimmed to empty is omitted", func(t *testing.T) {
		m := NewModel(sampleListing(), nil)
		m.TogglePlaylist("a")

		req, err := m.BuildTransferRequest("   ", "  \n ")
		if err != nil {
			t.Fatal(err)
		}
		if req.SpotifyToken != "" {
			t.Errorf("expected empty credential, got %q", req.SpotifyToken)
		}
		if req.AuthHeaders != "" {
			t.Errorf("expected empty auth headers, got %q", req.AuthHeaders)
		}
	})

	t.Run("auth headers are trimmed", func(t *testing.T) {
		m := NewModel(sampleListing(), nil)
		m.TogglePlaylist("a")

		req, err := m.BuildTransferRequest("tok", " cookie: abc \n")
		if err != nil {
			t.Fatal(err)
		}
		if req.AuthHeaders != "cookie: abc" {
			t.Errorf("expected trimmed auth headers, got %q", req.AuthHeaders)
		}

		del, err := m.BuildDeleteRequest("  \t")
		if err != nil {
			t.Fatal(err)
		}
		if del.AuthHeaders != "" {
			t.Errorf("expected empty auth headers on delete, got %q", del.AuthHeaders)
		}
	})

	t.Run("empty selection is rejected before any network call", func(t *testing.T) {
		m := NewModel(sampleListing(), nil)
		if _, err := m.BuildTransferRequest("tok", ""); !errors.Is(err, shared.ErrNoSelection) {
			t.Fatalf("expected ErrNoSelection, got %v", err)
		}
	})

	t.Run("fine-grained selection carries picked tracks in index order", func(t *testing.T) {
		m := NewModel(sampleListing(), countingLoader(map[string]int{}))
		m.TogglePlaylist("a")
		m.TogglePlaylist("b")
		if _, err := m.LoadTracks(context.Background(), "a"); err != nil {
			t.Fatal(err)
		}
		if _, err := m.LoadTracks(context.Background(), "b"); err != nil {
			t.Fatal(err)
		}
		m.ToggleTrack("b", 1)
		m.ToggleTrack("b", 3)

		req, err := m.BuildTransferRequest("tok", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !req.FineGrained() {
			t.Fatal("expected fine-grained request")
		}
		if len(req.Playlists) != 2 {
			t.Fatalf("expected 2 playlists, got %d", len(req.Playlists))
		}
		if len(req.Playlists[0].Tracks) != 5 {
			t.Errorf("expected playlist a to keep 5 tracks, got %d", len(req.Playlists[0].Tracks))
		}
		if len(req.Playlists[1].Tracks) != 3 {
			t.Errorf("expected playlist b to keep 3 tracks, got %d", len(req.Playlists[1].Tracks))
		}
		if got := req.Playlists[1].Tracks[0].Name; got != "b-track-0" {
			t.Errorf("expected tracks in index order, got first %q", got)
		}
		if got := req.Playlists[1].Tracks[1].Name; got != "b-track-2" {
			t.Errorf("expected deselected indices skipped, got %q", got)
		}
	})

	t.Run("playlist with zero selected tracks is dropped", func(t *testing.T) {
		m := NewModel(sampleListing(), countingLoader(map[string]int{}))
		m.TogglePlaylist("a")
		m.TogglePlaylist("b")
		if _, err := m.LoadTracks(context.Background(), "a"); err != nil {
			t.Fatal(err)
		}
		if _, err := m.LoadTracks(context.Background(), "b"); err != nil {
			t.Fatal(err)
		}
		m.ToggleAllTracks("a")

		req, err := m.BuildTransferRequest("tok", "")
		if err != nil {
			t.Fatal(err)
		}
		if len(req.Playlists) != 1 || req.Playlists[0].ID != "b" {
			t.Errorf("expected only playlist b, got %+v", req.Playlists)
		}
	})

	t.Run("all tracks deselected everywhere means no selection", func(t *testing.T) {
		m := NewModel(sampleListing(), countingLoader(map[string]int{}))
		m.TogglePlaylist("a")
		if _, err := m.LoadTracks(context.Background(), "a"); err != nil {
			t.Fatal(err)
		}
		m.ToggleAllTracks("a")

		if _, err := m.BuildTransferRequest("tok", ""); !errors.Is(err, shared.ErrNoSelection) {
			t.Fatalf("expected ErrNoSelection, got %v", err)
		}
	})

	t.Run("fine-grained mode without loaded selected playlists falls back to bulk", func(t *testing.T) {
		m := NewModel(sampleListing(), countingLoader(map[string]int{}))
		if _, err := m.LoadTracks(context.Background(), "a"); err != nil {
			t.Fatal(err)
		}
		m.ToggleTrack("a", 0)
		m.TogglePlaylist("b")

		req, err := m.BuildTransferRequest("tok", "")
		if err != nil {
			t.Fatal(err)
		}
		if req.FineGrained() {
			t.Error("expected bulk request when no selected playlist has loaded tracks")
		}
		if len(req.PlaylistIDs) != 1 || req.PlaylistIDs[0] != "b" {
			t.Errorf("unexpected ids: %v", req.PlaylistIDs)
		}
	})
}

func TestBuildDeleteRequest(t *testing.T) {
	t.Run("carries selected ids", func(t *testing.T) {
		m := NewModel(sampleListing(), nil)
		m.TogglePlaylist("c")
		m.TogglePlaylist("a")

		req, err := m.BuildDeleteRequest("headers")
		if err != nil {
			t.Fatal(err)
		}
		if len(req.PlaylistIDs) != 2 || req.PlaylistIDs[0] != "a" {
			t.Errorf("expected listing-ordered ids, got %v", req.PlaylistIDs)
		}
		if req.All {
			t.Error("selected delete must not set the All flag")
		}
	})

	t.Run("empty selection is rejected", func(t *testing.T) {
		m := NewModel(sampleListing(), nil)
		if _, err := m.BuildDeleteRequest(""); !errors.Is(err, shared.ErrNoSelection) {
			t.Fatalf("expected ErrNoSelection, got %v", err)
		}
	})
}
