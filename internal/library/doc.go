// Package library holds the player's working set: imported tracks, user playlists and the active playlist selection.
//
// # Persistence
//
// Every mutating [Store] operation serializes the full playlist list as JSON under [PlaylistsKey] in a [Storage],
// synchronously, overwriting the prior value. Tracks are kept in memory only. A failed write is returned as a
// [shared.Warning]; the in-memory change has already been applied.
//
// # Locators
//
// Imported files are addressed through [Resources], which mints an opaque [models.Locator] per import and maps it
// back to the file path for playback. [Store.RemoveTrack] releases the mapping.
//
// # Supporting pieces
//   - [ExpandPaths] : Expands directories into the audio files they contain
//   - [Watcher] : Reports audio files created in watched directories
//   - [LoadTheme] / [SaveTheme] : The persisted light/dark preference
package library
