// package models defines the data model for the mixtape music player
package models

import "github.com/samber/lo"

// Locator is an opaque handle usable as a playback source.
//
// Locators are minted by the library's resource registry when a file is imported and are the identity of a [Track].
type Locator string

// Track is an imported audio file.
type Track struct {
	Locator Locator `json:"locator"`        // Locator identifies the track and is used as its playback source
	Title   string  `json:"title"`          // Title defaults to the file name without its extension
	Artist  string  `json:"artist"`         // Artist defaults to "Unknown"
	Genre   string  `json:"genre"`          // Genre defaults to "Unknown"
	Path    string  `json:"path,omitempty"` // Path is the file the locator was created from
}

// Label is the row text used for every list view: "title - artist".
func (t Track) Label() string {
	return t.Title + " - " + t.Artist
}

// Playlist is a user-created, named sequence of tracks with no duplicate locators.
type Playlist struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Tracks []Track `json:"tracks"`
}

// Contains reports whether a track with the given locator is in the playlist.
func (p Playlist) Contains(locator Locator) bool {
	return lo.ContainsBy(p.Tracks, func(t Track) bool { return t.Locator == locator })
}

// Len returns the number of tracks in the playlist.
func (p Playlist) Len() int {
	return len(p.Tracks)
}

// Theme is the display mode of the UI.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme. Anything other than dark toggles to dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// PlaybackState represents the transport state of the player.
type PlaybackState string

const (
	StateStopped PlaybackState = "stopped"
	StatePlaying PlaybackState = "playing"
	StatePaused  PlaybackState = "paused"
)
