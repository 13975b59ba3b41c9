package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixtape/internal/library"
	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/player"
	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/samber/lo"
	"golang.org/x/time/rate"
)

var clipboardWriteAll = clipboard.WriteAll

const (
	seekStep   = 5.0
	volumeStep = 0.05
)

// ViewState represents the current input mode of the TUI.
type ViewState int

const (
	BrowseView ViewState = iota
	SearchView
	PromptView
	ImportView
)

// Pane identifies which list receives navigation keys.
type Pane int

const (
	TracksPane Pane = iota
	PlaylistsPane
)

// ListKind identifies which tracks the track pane is showing.
type ListKind int

const (
	LibraryList ListKind = iota
	PlaylistList
	ResultsList
)

// ModelOpts contains the dependencies of a [Model].
type ModelOpts struct {
	Engine      *player.Engine
	Store       *library.Store
	Preferences library.Storage // Preferences holds the persisted theme
	Logger      *log.Logger
	Notifier    shared.Notifier // Notifier is optional; nil disables now-playing notifications
	NotifyEvery time.Duration   // NotifyEvery is the minimum gap between notifications; 0 sends every one
	Paths       <-chan string   // Paths delivers files to import while running, e.g. from a [library.Watcher]
	Import      []string        // Import is imported on start; directories are expanded
	StartDir    string          // StartDir is where the import dialog opens
	Player      shared.PlayerConfig
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	pane         Pane
	engine       *player.Engine
	store        *library.Store
	preferences  library.Storage
	logger       *log.Logger
	notifier     shared.Notifier
	notifyLimit  *rate.Limiter
	paths        <-chan string
	initial      []string
	config       shared.PlayerConfig
	theme        models.Theme
	palette      *Palette
	width        int
	height       int
	trackList    list.Model
	playlistList list.Model
	tracks       []models.Track
	query        string
	search       textinput.Model
	prompt       textinput.Model
	picker       filepicker.Model
	bar          progress.Model
	progress     player.Progress
	status       string
	statusErr    bool
	announce     *models.Track
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies and restores the persisted theme.
func NewModel(ctx context.Context, opts ModelOpts) *Model {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	m := &Model{
		ctx:          ctx,
		view:         BrowseView,
		pane:         TracksPane,
		engine:       opts.Engine,
		store:        opts.Store,
		preferences:  opts.Preferences,
		logger:       shared.WithLogger(opts.Logger, "component", "ui"),
		notifier:     opts.Notifier,
		notifyLimit:  newNotifyLimiter(opts.NotifyEvery),
		paths:        opts.Paths,
		initial:      opts.Import,
		config:       opts.Player,
		theme:        library.LoadTheme(opts.Preferences),
		trackList:    newList(),
		playlistList: newList(),
		search:       newInput("search title, artist or genre", "/ "),
		prompt:       newInput("playlist name", "name: "),
		picker:       newPicker(opts.StartDir),
		bar:          progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:         help.New(),
		keys:         newKeyMap(),
	}
	m.palette = paletteFor(m.theme)
	m.engine.OnNowPlaying(m.nowPlaying)
	m.engine.OnProgress(func(p player.Progress) { m.progress = p })
	m.refresh()

	return m
}

func newList() list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.DisableQuitKeybindings()
	l.KeyMap.PrevPage = key.NewBinding(key.WithKeys("pgup"))
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("pgdown"))
	return l
}

func newInput(placeholder, prompt string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = prompt
	ti.CharLimit = 120
	return ti
}

func newPicker(dir string) filepicker.Model {
	fp := filepicker.New()
	fp.AllowedTypes = shared.AudioExtensions
	fp.FileAllowed = true
	fp.DirAllowed = false
	if dir != "" {
		fp.CurrentDirectory = dir
	}
	return fp
}

// Init starts the progress ticker, imports the initial paths and listens for watched files.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick()}
	if len(m.initial) > 0 {
		paths := m.initial
		cmds = append(cmds, func() tea.Msg { return importMsg(paths) })
	}
	if m.paths != nil {
		cmds = append(cmds, m.waitForPath())
	}
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	notify := m.flushAnnouncement()
	switch {
	case notify == nil:
		return model, cmd
	case cmd == nil:
		return model, notify
	}
	return model, tea.Batch(cmd, notify)
}

func (m *Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		switch m.view {
		case SearchView:
			return m.handleSearchKeys(msg)
		case PromptView:
			return m.handlePromptKeys(msg)
		case ImportView:
			return m.handleImportKeys(msg)
		default:
			return m.handleBrowseKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	if m.view == ImportView {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgTick:
		m.engine.Tick()
		if m.engine.Ended() {
			m.advance()
		}
		return m, m.tick()
	case MsgImport:
		m.importPaths(msg.data.([]string)...)
		return m, nil
	case MsgWatched:
		m.importPaths(msg.data.(string))
		return m, m.waitForPath()
	case MsgWarning:
		m.warn(msg.data.(error))
		return m, nil
	}
	return m, nil
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggle):
		m.toggle()
	case key.Matches(msg, m.keys.stop):
		m.engine.Stop()
	case key.Matches(msg, m.keys.next):
		m.warn(m.engine.Next(m.tracks))
		m.refreshTracks()
	case key.Matches(msg, m.keys.prev):
		m.warn(m.engine.Previous(m.tracks))
		m.refreshTracks()
	case key.Matches(msg, m.keys.seekBack):
		m.seek(-seekStep)
	case key.Matches(msg, m.keys.seekForward):
		m.seek(seekStep)
	case key.Matches(msg, m.keys.volumeUp):
		m.engine.SetVolume(lo.Clamp(m.engine.Volume()+volumeStep, 0, 1))
	case key.Matches(msg, m.keys.volumeDown):
		m.engine.SetVolume(lo.Clamp(m.engine.Volume()-volumeStep, 0, 1))
	case key.Matches(msg, m.keys.open):
		return m, m.openImport()
	case key.Matches(msg, m.keys.newPlaylist):
		m.view = PromptView
		m.prompt.Reset()
		return m, m.prompt.Focus()
	case key.Matches(msg, m.keys.search):
		m.view = SearchView
		m.pane = TracksPane
		m.search.SetValue(m.query)
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.theme):
		m.toggleTheme()
	case key.Matches(msg, m.keys.switchPane):
		if m.pane == TracksPane {
			m.pane = PlaylistsPane
		} else {
			m.pane = TracksPane
		}
	case key.Matches(msg, m.keys.enter):
		m.activate()
	case key.Matches(msg, m.keys.add):
		m.addSelected()
	case key.Matches(msg, m.keys.remove):
		m.removeSelected()
	case key.Matches(msg, m.keys.back):
		m.back()
	case key.Matches(msg, m.keys.copy):
		m.copyNowPlaying()
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	default:
		return m.updateLists(msg)
	}
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.query = ""
		m.closeInput(&m.search)
		m.refreshTracks()
		return m, nil
	case "enter":
		m.closeInput(&m.search)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.query = m.search.Value()
	m.refreshTracks()
	return m, cmd
}

func (m *Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.closeInput(&m.prompt)
		return m, nil
	case "enter":
		name := m.prompt.Value()
		m.closeInput(&m.prompt)
		m.createPlaylist(name)
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) handleImportKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		m.view = BrowseView
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.importPaths(path)
	} else if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.warn(fmt.Errorf("%w: %s", shared.ErrUnsupportedFile, path))
	}
	return m, cmd
}

// handleMouse opens the import dialog on a right click over the track pane.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.view != BrowseView {
		return m, nil
	}
	if msg.Button == tea.MouseButtonRight && msg.Action == tea.MouseActionPress && msg.X >= m.sidebarWidth() {
		return m, m.openImport()
	}
	return m.updateLists(msg)
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.pane {
	case TracksPane:
		m.trackList, cmd = m.trackList.Update(msg)
	case PlaylistsPane:
		m.playlistList, cmd = m.playlistList.Update(msg)
	}
	return m, cmd
}

func (m *Model) closeInput(in *textinput.Model) {
	in.Blur()
	in.Reset()
	m.view = BrowseView
}

func (m *Model) openImport() tea.Cmd {
	m.view = ImportView
	return m.picker.Init()
}

// toggle calls Play when the engine is paused and Pause otherwise.
func (m *Model) toggle() {
	if m.engine.Paused() {
		m.engine.Play()
	} else {
		m.engine.Pause()
	}
}

func (m *Model) seek(delta float64) {
	m.warn(m.engine.Seek(lo.Clamp(m.progress.Percent+delta, 0, 100)))
}

// advance moves to the next visible track after the current one ended, or stops when auto-advance is off.
func (m *Model) advance() {
	if m.config.AutoAdvance {
		m.warn(m.engine.Next(m.tracks))
		m.refreshTracks()
	}
	if m.engine.Ended() {
		m.engine.Stop()
	}
}

func (m *Model) toggleTheme() {
	m.theme = m.theme.Toggle()
	m.palette = paletteFor(m.theme)
	m.warn(library.SaveTheme(m.preferences, m.theme))
	m.logger.Debug("theme changed", "theme", m.theme)
}

// activate plays the selected track, or opens the selected playlist.
func (m *Model) activate() {
	switch m.pane {
	case TracksPane:
		track, ok := m.selectedTrack()
		if !ok {
			return
		}
		m.warn(m.engine.Load(track))
		m.refreshTracks()
	case PlaylistsPane:
		pl, ok := m.selectedPlaylist()
		if !ok || !m.store.SetCurrentPlaylist(pl.ID) {
			return
		}
		m.query = ""
		m.pane = TracksPane
		m.trackList.Select(0)
		m.refresh()
	}
}

// addSelected adds the selected track to the active playlist outside the playlist view.
func (m *Model) addSelected() {
	if m.pane != TracksPane || m.listKind() == PlaylistList {
		return
	}
	pl, ok := m.store.CurrentPlaylist()
	if !ok {
		return
	}
	track, ok := m.selectedTrack()
	if !ok {
		return
	}

	m.warn(m.store.AddTrackToPlaylist(pl.ID, track))
	m.setStatus(fmt.Sprintf("Added %s to %s", track.Label(), pl.Name))
	m.refresh()
}

// removeSelected removes the selected row: a playlist, a playlist entry or a library track.
func (m *Model) removeSelected() {
	if m.pane == PlaylistsPane {
		pl, ok := m.selectedPlaylist()
		if !ok {
			return
		}
		m.warn(m.store.DeletePlaylist(pl.ID))
		m.setStatus("Deleted playlist " + pl.Name)
		m.refresh()
		return
	}

	track, ok := m.selectedTrack()
	if !ok {
		return
	}

	switch m.listKind() {
	case PlaylistList:
		pl, _ := m.store.CurrentPlaylist()
		m.warn(m.store.RemoveTrackFromPlaylist(pl.ID, track.Locator))
	case LibraryList:
		m.warn(m.store.RemoveTrack(track.Locator))
	default:
		return
	}
	m.refresh()
}

// back clears the search results first, then the active playlist.
func (m *Model) back() {
	switch {
	case m.query != "":
		m.query = ""
	case m.pane == PlaylistsPane:
		m.pane = TracksPane
		return
	default:
		m.store.ClearCurrentPlaylist()
	}
	m.refresh()
}

func (m *Model) copyNowPlaying() {
	track, ok := m.engine.Current()
	if !ok {
		return
	}
	if err := clipboardWriteAll(track.Label()); err != nil {
		m.warn(fmt.Errorf("failed to write to clipboard: %w", err))
		return
	}
	m.setStatus("Copied " + track.Label())
}

func (m *Model) createPlaylist(name string) {
	pl, err := m.store.CreatePlaylist(name)
	if errors.Is(err, shared.ErrInvalidInput) {
		return
	}
	m.warn(err)
	m.setStatus("Created playlist " + pl.Name)
	m.refresh()
}

// importPaths imports every audio file under paths and, with an active playlist, adds each track to it.
func (m *Model) importPaths(paths ...string) {
	files, err := library.ExpandPaths(paths)
	m.warn(err)

	imported, failed := 0, err != nil
	for _, path := range files {
		track, err := m.store.ImportTrack(path)
		if err != nil {
			m.warn(err)
			failed = true
			var w *shared.Warning
			if !errors.As(err, &w) {
				continue
			}
		}
		imported++

		if pl, ok := m.store.CurrentPlaylist(); ok {
			m.warn(m.store.AddTrackToPlaylist(pl.ID, track))
		}
	}

	if imported > 0 && !failed {
		m.setStatus(fmt.Sprintf("Imported %d track(s)", imported))
	}
	m.refresh()
}

func (m *Model) nowPlaying(track models.Track) {
	t := track
	m.announce = &t
	m.setStatus("Now playing " + track.Label())
}

// newNotifyLimiter allows one notification per every; while skipping through tracks only the first
// one in a burst is announced.
func newNotifyLimiter(every time.Duration) *rate.Limiter {
	if every <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(every), 1)
}

func (m *Model) flushAnnouncement() tea.Cmd {
	if m.announce == nil {
		return nil
	}
	track := *m.announce
	m.announce = nil

	if m.notifier == nil {
		return nil
	}
	if !m.notifyLimit.Allow() {
		m.logger.Debug("notification skipped", "track", track.Label())
		return nil
	}
	n := m.notifier
	return func() tea.Msg {
		if err := n.Notify("Now playing", track.Label()); err != nil {
			return warningMsg(err)
		}
		return nil
	}
}

// warn shows a recoverable error in the status line. A nil error is ignored.
func (m *Model) warn(err error) {
	if err == nil {
		return
	}
	m.logger.Warn("operation failed", "err", err)
	m.status = err.Error()
	m.statusErr = true
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.config.TickInterval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) waitForPath() tea.Cmd {
	paths := m.paths
	return func() tea.Msg {
		select {
		case path, ok := <-paths:
			if !ok {
				return nil
			}
			return watchedMsg(path)
		case <-m.ctx.Done():
			return nil
		}
	}
}

// listKind reports which of the track views is shown.
func (m *Model) listKind() ListKind {
	if strings.TrimSpace(m.query) != "" {
		return ResultsList
	}
	if _, ok := m.store.CurrentPlaylist(); ok {
		return PlaylistList
	}
	return LibraryList
}

func (m *Model) selectedTrack() (models.Track, bool) {
	if item, ok := m.trackList.SelectedItem().(trackItem); ok {
		return item.track, true
	}
	return models.Track{}, false
}

func (m *Model) selectedPlaylist() (models.Playlist, bool) {
	if item, ok := m.playlistList.SelectedItem().(playlistItem); ok {
		return item.playlist, true
	}
	return models.Playlist{}, false
}

// refresh re-renders both lists from the store.
func (m *Model) refresh() {
	m.refreshTracks()

	active, hasActive := m.store.CurrentPlaylist()
	width := m.playlistList.Width() - 4
	items := lo.Map(m.store.Playlists(), func(pl models.Playlist, _ int) list.Item {
		return playlistItem{playlist: pl, active: hasActive && pl.ID == active.ID, width: width}
	})
	m.playlistList.SetItems(items)
	m.playlistList.Title = "Playlists"
	clampSelection(&m.playlistList)
}

func (m *Model) refreshTracks() {
	switch m.listKind() {
	case ResultsList:
		m.tracks = m.store.Search(strings.TrimSpace(m.query))
		m.trackList.Title = fmt.Sprintf("Search: %s", m.query)
	case PlaylistList:
		pl, _ := m.store.CurrentPlaylist()
		m.tracks = pl.Tracks
		m.trackList.Title = pl.Name
	default:
		m.tracks = m.store.Tracks()
		m.trackList.Title = "Library"
	}

	current, hasCurrent := m.engine.Current()
	width := m.trackList.Width() - 4
	items := lo.Map(m.tracks, func(t models.Track, _ int) list.Item {
		return trackItem{track: t, playing: hasCurrent && t.Locator == current.Locator, width: width}
	})
	m.trackList.SetItems(items)
	clampSelection(&m.trackList)
}

func clampSelection(l *list.Model) {
	if n := len(l.Items()); n > 0 && l.Index() >= n {
		l.Select(n - 1)
	}
}

func (m *Model) sidebarWidth() int {
	return max(24, m.width/4)
}

func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	height := max(m.height-lipgloss.Height(m.renderHeader())-lipgloss.Height(m.renderFooter())-2, 3)
	sidebar := m.sidebarWidth()

	m.playlistList.SetSize(sidebar-4, height)
	m.trackList.SetSize(max(m.width-sidebar-4, 10), height)
	m.bar.Width = max(m.width-40, 10)
	m.search.Width = max(m.width-sidebar-8, 10)
	m.prompt.Width = max(m.width-16, 10)
	m.help.Width = m.width
	m.refresh()
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case ImportView:
		title := m.palette.title.Render("Import audio files")
		body = fmt.Sprintf("%s\n%s\n\n%s", title, m.picker.CurrentDirectory, m.picker.View())
	default:
		body = m.renderPanes()
	}

	out := lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
	if m.width > 0 {
		return m.palette.base.Width(m.width).Render(out)
	}
	return m.palette.base.Render(out)
}

func (m *Model) toggleIcon() string {
	if m.engine.Paused() {
		return "▶"
	}
	return "⏸"
}

func (m *Model) renderHeader() string {
	title, artist := "Nothing playing", ""
	if track, ok := m.engine.Current(); ok {
		title, artist = track.Title, track.Artist
	}

	nowPlaying := m.palette.title.Render(truncate(title, max(m.width-4, 0)))
	if artist != "" {
		nowPlaying += "\n" + m.palette.help.Render(artist)
	}

	controls := fmt.Sprintf("%s  %s  %s / %s  vol %d%%",
		m.palette.title.Render(m.toggleIcon()),
		m.bar.ViewAs(m.progress.Percent/100),
		m.progress.Elapsed,
		m.progress.Total,
		int(m.engine.Volume()*100+0.5),
	)
	return nowPlaying + "\n" + controls
}

func (m *Model) renderPanes() string {
	left, right := m.palette.pane, m.palette.pane
	if m.pane == PlaylistsPane {
		left = m.palette.focus
	} else {
		right = m.palette.focus
	}

	tracks := m.trackList.View()
	if len(m.tracks) == 0 {
		tracks = m.palette.title.Render(m.trackList.Title) + "\n\n" + m.palette.help.Render(m.emptyHint())
	}
	if m.view == SearchView {
		tracks = m.search.View() + "\n" + tracks
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left.Render(m.playlistList.View()), right.Render(tracks))
}

func (m *Model) emptyHint() string {
	switch m.listKind() {
	case ResultsList:
		return "No matches"
	case PlaylistList:
		return "Empty playlist. Search with / and press a to add tracks"
	default:
		return "No tracks. Press o or right click to import"
	}
}

func (m *Model) renderFooter() string {
	var lines []string

	if m.view == PromptView {
		lines = append(lines, m.prompt.View())
	}
	if m.status != "" {
		style := m.palette.ok
		if m.statusErr {
			style = m.palette.err
		}
		lines = append(lines, style.Render(truncate(m.status, m.width)))
	}
	lines = append(lines, m.help.View(m.keys))

	return strings.Join(lines, "\n")
}
