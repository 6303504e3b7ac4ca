package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spottransfer/sptx/internal/jobs"
	"github.com/spottransfer/sptx/internal/selection"
	"github.com/spottransfer/sptx/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	TrackListView
	ConfirmView
	JobView
	ResultView
)

// ListPlaylists fetches the playlists the user can pick from. For transfers
// this is the Spotify library; for deletions the YouTube Music library.
type ListPlaylists func(ctx context.Context) ([]services.Playlist, error)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	kind    services.JobKind
	fetch   ListPlaylists
	loader  selection.TrackLoader
	session *jobs.Session

	token       string
	authHeaders string

	width  int
	height int
	view   ViewState

	sel          *selection.Model
	playlistList list.Model
	trackList    list.Model
	current      services.Playlist

	lastUpdate jobs.Update
	notice     string
	err        error
	help       help.Model
	keys       keyMap
}

// NewModel creates a new TUI model with the provided dependencies. The
// loader may be nil, in which case track-level selection is unavailable
// (always the case for deletions).
func NewModel(ctx context.Context, kind services.JobKind, fetch ListPlaylists, loader selection.TrackLoader, session *jobs.Session, token, authHeaders string) *Model {
	return &Model{
		ctx:         ctx,
		kind:        kind,
		fetch:       fetch,
		loader:      loader,
		session:     session,
		token:       token,
		authHeaders: authHeaders,
		view:        PlaylistListView,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init initializes the TUI by fetching the playlist listing.
func (m *Model) Init() tea.Cmd {
	return m.fetchPlaylists()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.playlistList.Width() == 0 {
			m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.trackList.Width() == 0 {
			m.trackList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		// Nothing to interact with until the listing arrives.
		if m.sel == nil {
			if s := msg.String(); s == "q" || s == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		switch m.view {
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case TrackListView:
			return m.handleTrackListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case JobView:
			return m.handleJobKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case playlistsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.sel = selection.NewModel(msg.playlists, m.loader)
		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistItem{playlist: pl, sel: m.sel}
		}
		m.playlistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.playlistList.Title = m.listTitle()
		m.playlistList.SetSize(m.width-4, m.height-8)
		return m, nil

	case tracksFetchedMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("failed to load tracks: %v", msg.err)
			m.view = PlaylistListView
			return m, nil
		}
		m.sel.SeedTracks(msg.playlistID, msg.tracks)
		items := make([]list.Item, len(msg.tracks))
		for i, track := range msg.tracks {
			items[i] = trackItem{playlistID: msg.playlistID, track: track, sel: m.sel}
		}
		m.trackList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.trackList.Title = fmt.Sprintf("Tracks in '%s'", m.current.Name)
		m.trackList.SetSize(m.width-4, m.height-8)
		m.view = TrackListView
		return m, nil

	case jobStartedMsg:
		if msg.err != nil {
			m.notice = msg.err.Error()
			m.view = PlaylistListView
			return m, nil
		}
		m.view = JobView
		return m, m.waitForUpdate()

	case jobUpdateMsg:
		if !msg.ok {
			m.view = ResultView
			return m, nil
		}
		m.lastUpdate = msg.update
		switch msg.update.Phase {
		case jobs.Completed, jobs.Errored, jobs.Cancelled:
			m.view = ResultView
			return m, nil
		}
		return m, m.waitForUpdate()

	case cancelRequestedMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("cancel failed: %v", msg.err)
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case PlaylistListView:
		return m.renderPlaylistList()
	case TrackListView:
		return m.renderTrackList()
	case ConfirmView:
		return m.renderConfirm()
	case JobView:
		return m.renderJob()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) listTitle() string {
	if m.kind == services.KindDelete {
		return "YouTube Music Playlists"
	}
	return "Spotify Playlists"
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		if item, ok := m.playlistList.SelectedItem().(playlistItem); ok {
			m.sel.TogglePlaylist(item.playlist.ID)
			m.notice = ""
		}
		return m, nil
	case "a":
		if m.sel.SelectedCount() == len(m.sel.Playlists()) {
			m.sel.DeselectAll()
		} else {
			m.sel.SelectAll()
		}
		return m, nil
	case "enter":
		if m.loader == nil {
			return m, nil
		}
		if item, ok := m.playlistList.SelectedItem().(playlistItem); ok {
			m.current = item.playlist
			return m, m.fetchTracks(item.playlist.ID)
		}
		return m, nil
	case "s":
		if m.sel.SelectedCount() == 0 {
			m.notice = "nothing selected"
			return m, nil
		}
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleTrackListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		if item, ok := m.trackList.SelectedItem().(trackItem); ok {
			m.sel.ToggleTrack(item.playlistID, item.track.Index)
		}
		return m, nil
	case "a":
		m.sel.ToggleAllTracks(m.current.ID)
		return m, nil
	case "esc":
		m.view = PlaylistListView
		return m, nil
	case "s":
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = PlaylistListView
		return m, nil
	case "y":
		return m, m.startJob()
	}
	return m, nil
}

func (m *Model) handleJobKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c", "esc":
		return m, m.requestCancel()
	case "q", "ctrl+c":
		return m, tea.Sequence(m.requestCancel(), tea.Quit)
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.sel.Reset()
		m.lastUpdate = jobs.Update{}
		m.notice = ""
		m.err = nil
		m.view = PlaylistListView
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.sel == nil {
		return m, nil
	}
	var cmd tea.Cmd
	switch m.view {
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case TrackListView:
		m.trackList, cmd = m.trackList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.fetch(m.ctx)
		return playlistsFetchedMsg{playlists: playlists, err: err}
	}
}

func (m *Model) fetchTracks(playlistID string) tea.Cmd {
	if m.sel.TracksLoaded(playlistID) {
		// Already cached; reuse without refetching.
		tracks, _ := m.sel.LoadTracks(m.ctx, playlistID)
		return func() tea.Msg {
			return tracksFetchedMsg{playlistID: playlistID, tracks: tracks}
		}
	}
	loader := m.loader
	return func() tea.Msg {
		tracks, err := loader(m.ctx, playlistID)
		return tracksFetchedMsg{playlistID: playlistID, tracks: tracks, err: err}
	}
}

func (m *Model) startJob() tea.Cmd {
	if m.kind == services.KindDelete {
		req, err := m.sel.BuildDeleteRequest(m.authHeaders)
		if err != nil {
			return func() tea.Msg { return jobStartedMsg{err: err} }
		}
		return func() tea.Msg {
			outcome, err := m.session.StartDelete(m.ctx, req)
			return jobStartedMsg{outcome: outcome, err: err}
		}
	}

	req, err := m.sel.BuildTransferRequest(m.token, m.authHeaders)
	if err != nil {
		return func() tea.Msg { return jobStartedMsg{err: err} }
	}
	return func() tea.Msg {
		outcome, err := m.session.StartTransfer(m.ctx, req)
		return jobStartedMsg{outcome: outcome, err: err}
	}
}

func (m *Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.session.Updates()
		return jobUpdateMsg{update: update, ok: ok}
	}
}

func (m *Model) requestCancel() tea.Cmd {
	return func() tea.Msg {
		return cancelRequestedMsg{err: m.session.Cancel(m.ctx)}
	}
}

func (m *Model) renderPlaylistList() string {
	if m.sel == nil {
		return styles.help.Render("Loading playlists...")
	}
	helpKeys := []key.Binding{m.keys.toggle, m.keys.all, m.keys.expand, m.keys.submit, m.keys.quit}
	if m.loader == nil {
		helpKeys = []key.Binding{m.keys.toggle, m.keys.all, m.keys.submit, m.keys.quit}
	}
	helpView := m.help.ShortHelpView(helpKeys)

	footer := fmt.Sprintf("%d selected", m.sel.SelectedCount())
	if m.notice != "" {
		footer = fmt.Sprintf("%s — %s", footer, styles.warn.Render(m.notice))
	}
	return fmt.Sprintf("%s\n\n%s\n%s", m.playlistList.View(), footer, helpView)
}

func (m *Model) renderTrackList() string {
	helpKeys := []key.Binding{m.keys.toggle, m.keys.all, m.keys.submit, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	footer := fmt.Sprintf("%d of %d tracks picked", m.sel.SelectedTrackCount(m.current.ID), m.current.TotalTracks)
	return fmt.Sprintf("%s\n\n%s\n%s", m.trackList.View(), footer, helpView)
}

func (m *Model) renderConfirm() string {
	verb := "Transfer"
	if m.kind == services.KindDelete {
		verb = "Delete"
	}
	title := styles.title.Render(fmt.Sprintf("%s %d playlists?", verb, m.sel.SelectedCount()))

	var info string
	if m.sel.FineGrained() {
		info = "\nTrack-level selection is active: only picked tracks are included.\n"
	}

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s%s\n%s", title, info, helpView)
}

func (m *Model) renderJob() string {
	verb := "Transferring"
	if m.kind == services.KindDelete {
		verb = "Deleting"
	}
	title := styles.title.Render(fmt.Sprintf("%s playlists", verb))

	sum := m.lastUpdate.Summary
	progress := fmt.Sprintf("%d/%d (%.0f%%) — %d ok, %d failed, %d skipped",
		sum.Done, sum.Total, sum.Percent, sum.Successful, sum.Failed, sum.Skipped)

	var lines []string
	if snap := m.lastUpdate.Snapshot; snap != nil {
		for _, pl := range snap.Playlists {
			lines = append(lines, fmt.Sprintf("  %s — %s", pl.Name, jobs.StatusLabel(pl.Status)))
		}
	}

	helpKeys := []key.Binding{m.keys.cancel, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	body := progress
	if len(lines) > 0 {
		body = fmt.Sprintf("%s\n\n%s", progress, strings.Join(lines, "\n"))
	}
	if m.notice != "" {
		body = fmt.Sprintf("%s\n\n%s", body, styles.warn.Render(m.notice))
	}
	return fmt.Sprintf("%s\n%s\n\n%s", title, body, helpView)
}

func (m *Model) renderResult() string {
	sum := m.lastUpdate.Summary

	var title string
	switch m.lastUpdate.Phase {
	case jobs.Completed:
		title = styles.ok.Render("✓ Job complete")
	case jobs.Cancelled:
		title = styles.warn.Render("Job cancelled")
	default:
		title = styles.err.Render("✗ Job failed")
	}

	info := fmt.Sprintf("\n%d/%d playlists — %d ok, %d failed, %d skipped\n",
		sum.Done, sum.Total, sum.Successful, sum.Failed, sum.Skipped)

	var details string
	if snap := m.lastUpdate.Snapshot; snap != nil {
		if snap.Error != "" {
			details += fmt.Sprintf("\n%s\n", styles.err.Render(snap.Error))
		}
		for _, pl := range snap.Playlists {
			line := fmt.Sprintf("  %s — %s", pl.Name, jobs.StatusLabel(pl.Status))
			if pl.MissedTracks > 0 {
				line += fmt.Sprintf(" (%d missed)", pl.MissedTracks)
			}
			if pl.Reason != "" {
				line += fmt.Sprintf(" [%s]", pl.Reason)
			}
			details += line + "\n"
		}
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n%s", title, info, details, helpView)
}
