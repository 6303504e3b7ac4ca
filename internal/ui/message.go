package ui

import (
	"github.com/spottransfer/sptx/internal/jobs"
	"github.com/spottransfer/sptx/internal/services"
)

// playlistsFetchedMsg carries the initial listing.
type playlistsFetchedMsg struct {
	playlists []services.Playlist
	err       error
}

// tracksFetchedMsg carries a playlist's expanded track list.
type tracksFetchedMsg struct {
	playlistID string
	tracks     []services.Track
	err        error
}

// jobStartedMsg carries the submission outcome.
type jobStartedMsg struct {
	outcome *jobs.Outcome
	err     error
}

// jobUpdateMsg carries one progress event from the session's update channel.
type jobUpdateMsg struct {
	update jobs.Update
	ok     bool
}

// cancelRequestedMsg reports the local cancel call finishing.
type cancelRequestedMsg struct {
	err error
}
