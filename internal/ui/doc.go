// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view remote control for the media server:
//  1. [LibraryView] : Browse and filter the video catalog, add entries to the playlist
//  2. [PlaylistView] : Inspect the playlist, remove entries, drive playback
//  3. [ConfirmClearView] : Confirm before emptying the playlist
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Channel events (connection state changes, now-playing info, notifications)
// arrive through an events channel and surface in a persistent status bar.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
