package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/spottransfer/sptx/internal/selection"
	"github.com/spottransfer/sptx/internal/services"
)

var (
	_ list.Item = playlistItem{}
	_ list.Item = trackItem{}
)

// playlistItem wraps [services.Playlist] to implement [list.Item], reading
// its checkbox state from the shared selection model.
type playlistItem struct {
	playlist services.Playlist
	sel      *selection.Model
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }

func (i playlistItem) Title() string {
	return fmt.Sprintf("%s %s", checkbox(i.sel.IsSelected(i.playlist.ID)), i.playlist.Name)
}

func (i playlistItem) Description() string {
	desc := fmt.Sprintf("%d tracks", i.playlist.TotalTracks)
	if i.sel.TracksLoaded(i.playlist.ID) {
		desc = fmt.Sprintf("%s • %d picked", desc, i.sel.SelectedTrackCount(i.playlist.ID))
	}
	return desc
}

// trackItem wraps [services.Track] to implement [list.Item].
type trackItem struct {
	playlistID string
	track      services.Track
	sel        *selection.Model
}

func (i trackItem) FilterValue() string { return i.track.Name }

func (i trackItem) Title() string {
	return fmt.Sprintf("%s %s", checkbox(i.sel.IsTrackSelected(i.playlistID, i.track.Index)), i.track.Name)
}

func (i trackItem) Description() string {
	desc := strings.Join(i.track.Artists, ", ")
	if i.track.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.track.Album)
	}
	return desc
}

func checkbox(checked bool) string {
	if checked {
		return "[✓]"
	}
	return "[ ]"
}
