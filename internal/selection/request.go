package selection

import (
	"strings"

	"github.com/spottransfer/sptx/internal/services"
	"github.com/spottransfer/sptx/internal/shared"
)

// BuildTransferRequest projects the current selection into a transfer
// request. Coarse selections become a bulk request carrying playlist IDs; a
// fine-grained selection becomes a per-track request where playlists with no
// selected tracks are dropped. The credential is attached only when non-empty
// after trimming; the server falls back to its stored token otherwise.
//
// Returns shared.ErrNoSelection when the resulting request would carry no
// playlists — callers must not submit in that case.
func (m *Model) BuildTransferRequest(spotifyToken, authHeaders string) (*services.TransferRequest, error) {
	req := &services.TransferRequest{
		SpotifyToken: strings.TrimSpace(spotifyToken),
		AuthHeaders:  strings.TrimSpace(authHeaders),
	}

	if !m.fineGrained || !m.anySelectedLoaded() {
		ids := m.selectedIDs()
		if len(ids) == 0 {
			return nil, shared.ErrNoSelection
		}
		req.PlaylistIDs = ids
		return req, nil
	}

	for _, p := range m.playlists {
		if !m.IsSelected(p.ID) {
			continue
		}
		tracks, loaded := m.tracks[p.ID]
		if !loaded {
			continue
		}

		indices := m.selectedTracks[p.ID]
		picked := make([]services.TrackSelection, 0, len(indices))
		for _, tr := range tracks {
			if _, ok := indices[tr.Index]; !ok {
				continue
			}
			picked = append(picked, services.TrackSelection{
				Name:    tr.Name,
				Artists: tr.Artists,
				Album:   tr.Album,
			})
		}
		if len(picked) == 0 {
			continue
		}

		req.Playlists = append(req.Playlists, services.PlaylistSelection{
			ID:     p.ID,
			Name:   p.Name,
			Image:  p.Image,
			Tracks: picked,
		})
	}

	if len(req.Playlists) == 0 {
		return nil, shared.ErrNoSelection
	}
	return req, nil
}

// BuildDeleteRequest projects the current playlist-level selection into a
// delete request. Deletion is always coarse; fine-grained track state is
// ignored. Returns shared.ErrNoSelection when nothing is selected.
func (m *Model) BuildDeleteRequest(authHeaders string) (*services.DeleteRequest, error) {
	ids := m.selectedIDs()
	if len(ids) == 0 {
		return nil, shared.ErrNoSelection
	}
	return &services.DeleteRequest{PlaylistIDs: ids, AuthHeaders: strings.TrimSpace(authHeaders)}, nil
}

// selectedIDs returns the selected playlist IDs in listing order.
func (m *Model) selectedIDs() []string {
	ids := make([]string, 0, len(m.selected))
	for _, p := range m.playlists {
		if m.IsSelected(p.ID) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// anySelectedLoaded reports whether at least one selected playlist has its
// tracks loaded. Without one the fine-grained request shape has nothing to
// carry and the bulk shape is used instead.
func (m *Model) anySelectedLoaded() bool {
	for id := range m.selected {
		if _, ok := m.tracks[id]; ok {
			return true
		}
	}
	return false
}
