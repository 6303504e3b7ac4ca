// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for bulk playlist operations:
//  1. [PlaylistListView] : Browse playlists and toggle which ones to include
//  2. [TrackListView] : Expand a playlist and pick individual tracks
//  3. [ConfirmView] : Confirm the operation before submission
//  4. [JobView] : Monitor live progress, with cancellation on demand
//  5. [ResultView] : Display final counts and per-playlist outcomes
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Selection state lives in a selection.Model; job lifecycle state lives in a
// jobs.Session whose update channel is drained one message per tea.Cmd.
//
// Keyboard navigation uses vim-style bindings (j/k, space, enter, esc, y/n, c, q)
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
