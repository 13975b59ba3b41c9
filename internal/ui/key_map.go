package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI, one binding per action.
type keyMap struct {
	toggle      key.Binding
	stop        key.Binding
	next        key.Binding
	prev        key.Binding
	seekBack    key.Binding
	seekForward key.Binding
	volumeUp    key.Binding
	volumeDown  key.Binding
	open        key.Binding
	newPlaylist key.Binding
	search      key.Binding
	theme       key.Binding
	switchPane  key.Binding
	enter       key.Binding
	add         key.Binding
	remove      key.Binding
	back        key.Binding
	copy        key.Binding
	help        key.Binding
	quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		toggle:      key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "play/pause")),
		stop:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		next:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		prev:        key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous")),
		seekBack:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "seek -5%")),
		seekForward: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "seek +5%")),
		volumeUp:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "volume up")),
		volumeDown:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "volume down")),
		open:        key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "import")),
		newPlaylist: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "new playlist")),
		search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		theme:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		switchPane:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play/open")),
		add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to playlist")),
		remove:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove/delete")),
		back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy title")),
		help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.enter, k.switchPane, k.search, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.toggle, k.stop, k.next, k.prev},
		{k.seekBack, k.seekForward, k.volumeUp, k.volumeDown},
		{k.open, k.newPlaylist, k.search, k.theme},
		{k.switchPane, k.enter, k.add, k.remove},
		{k.back, k.copy, k.help, k.quit},
	}
}
