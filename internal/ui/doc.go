// Package ui implements the interactive terminal player using bubbletea's Elm architecture.
//
// The screen is split into two panes:
//  1. [PlaylistsPane] : the saved playlists; enter opens one, d deletes it
//  2. [TracksPane] : the library, the active playlist, or search results
//
// The track pane shows exactly one of [LibraryList] or [PlaylistList], chosen by whether the store has an
// active playlist; a non-empty search temporarily replaces it with [ResultsList].
//
// The (view) [Model] implements the standard Init/Update/View pattern and receives its own events through the
// Msg union type. Playback progress is polled with tea.Tick, and paths reported by a [library.Watcher] are
// imported as they arrive.
//
// Text entry (search and the playlist name prompt) never blocks: ticks and watcher events keep flowing while
// an input is focused.
package ui
