package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/mixtape/internal/models"
	"github.com/mattn/go-runewidth"
)

var (
	_ list.Item = playlistItem{}
	_ list.Item = trackItem{}
)

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist models.Playlist
	active   bool
	width    int
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string {
	name := i.playlist.Name
	if i.active {
		name = "● " + name
	}
	return truncate(name, i.width)
}
func (i playlistItem) Description() string {
	return fmt.Sprintf("%d tracks", i.playlist.Len())
}

// trackItem wraps [models.Track] to implement [list.Item]. Every track list renders the same row.
type trackItem struct {
	track   models.Track
	playing bool
	width   int
}

func (i trackItem) FilterValue() string { return i.track.Label() }
func (i trackItem) Title() string {
	label := i.track.Label()
	if i.playing {
		label = "♪ " + label
	}
	return truncate(label, i.width)
}
func (i trackItem) Description() string { return truncate(i.track.Genre, i.width) }

// truncate shortens s to width terminal cells. A non-positive width leaves s untouched.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
