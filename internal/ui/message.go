package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgTick MsgKind = iota
	MsgImport
	MsgWatched
	MsgWarning
)

// tickMsg is the constructor for [MsgTick]
func tickMsg(t time.Time) Msg {
	return Msg{kind: MsgTick, data: t}
}

// importMsg is the constructor for [MsgImport]
func importMsg(paths []string) Msg {
	return Msg{kind: MsgImport, data: paths}
}

// watchedMsg is the constructor for [MsgWatched]
func watchedMsg(path string) Msg {
	return Msg{kind: MsgWatched, data: path}
}

// warningMsg is the constructor for [MsgWarning]
func warningMsg(err error) Msg {
	return Msg{kind: MsgWarning, data: err}
}
