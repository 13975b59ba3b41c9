// Package models defines the domain entities of the mixtape player.
//
// The package contains plain, JSON-tagged records shared by every layer:
//   - [Track] : An imported audio file, identified by its [Locator]
//   - [Playlist] : A named, ordered and deduplicated sequence of tracks
//   - [Theme] : The persisted light/dark display mode
//   - [PlaybackState] : The transport state of the player
//
// Playlists are the only durable records; tracks live in memory for the session and are
// embedded by value in the playlists that reference them.
package models
