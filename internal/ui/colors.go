package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/mixtape/internal/models"
)

var palettes = map[models.Theme]*Palette{
	models.ThemeLight: NewPalette("#1F1F28", "#F7F7F2", "#7D56F4", "#04B575", "#D7263D", "#8A8A8A"),
	models.ThemeDark:  NewPalette("#DCD7BA", "#16161D", "#957FB8", "#98BB6C", "#E46876", "#727169"),
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	accent lipgloss.Color
	muted  lipgloss.Color
	base   lipgloss.Style
	title  lipgloss.Style
	ok     lipgloss.Style
	err    lipgloss.Style
	help   lipgloss.Style
	pane   lipgloss.Style
	focus  lipgloss.Style
}

// NewPalette builds a [Palette] from foreground, background, accent, success, error and muted colors.
func NewPalette(fg, bg, accent, ok, e, muted string) *Palette {
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(muted)).
		Padding(0, 1)

	return &Palette{
		accent: lipgloss.Color(accent),
		muted:  lipgloss.Color(muted),
		base:   NewStyle(fg).Background(lipgloss.Color(bg)),
		title:  NewBold(accent),
		ok:     NewBold(ok),
		err:    NewBold(e),
		help:   NewEm(muted),
		pane:   pane,
		focus:  pane.BorderForeground(lipgloss.Color(accent)),
	}
}

// paletteFor returns the palette of theme, defaulting to light.
func paletteFor(theme models.Theme) *Palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes[models.ThemeLight]
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
