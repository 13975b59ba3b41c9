package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/samber/lo"
)

// UnknownField is the default artist and genre of an imported track.
const UnknownField = "Unknown"

// StoreOpts contains the dependencies of a [Store].
type StoreOpts struct {
	Storage   Storage // Storage is required
	Resources *Resources
	Logger    *log.Logger
	ReadTags  bool             // ReadTags enables reading title/artist/genre from file tags on import
	Clock     func() time.Time // Clock seeds playlist ids; defaults to [time.Now]
}

// Store owns the imported tracks, the playlists and the active playlist selection.
//
// It is not safe for concurrent use.
type Store struct {
	storage   Storage
	resources *Resources
	logger    *log.Logger
	readTags  bool
	clock     func() time.Time

	tracks    []models.Track
	playlists []models.Playlist
	active    int64
	hasActive bool
	lastID    int64
}

// NewStore creates a Store and restores playlists from storage, best-effort.
//
// A missing or corrupt playlist value yields an empty list; the problem is logged, not returned.
func NewStore(opts StoreOpts) *Store {
	if opts.Resources == nil {
		opts.Resources = NewResources()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	s := &Store{
		storage:   opts.Storage,
		resources: opts.Resources,
		logger:    shared.WithLogger(opts.Logger, "component", "library"),
		readTags:  opts.ReadTags,
		clock:     opts.Clock,
		tracks:    []models.Track{},
		playlists: []models.Playlist{},
	}
	s.restore()
	return s
}

func (s *Store) restore() {
	playlists, err := LoadPlaylists(s.storage)
	if err != nil {
		s.logger.Warn("discarding stored playlists", "err", err)
		return
	}

	for _, pl := range playlists {
		s.lastID = max(s.lastID, pl.ID)
		for _, t := range pl.Tracks {
			if t.Path != "" {
				s.resources.Register(t.Locator, t.Path)
			}
		}
	}
	s.playlists = playlists
	s.logger.Debug("restored playlists", "count", len(playlists))
}

// persist writes the full playlist list under [PlaylistsKey].
func (s *Store) persist() error {
	data, err := json.Marshal(s.playlists)
	if err != nil {
		return shared.NewWarning("persist playlists", err)
	}

	if err := s.storage.Set(PlaylistsKey, data); err != nil {
		s.logger.Warn("failed to persist playlists", "err", err)
		return shared.NewWarning("persist playlists", err)
	}
	return nil
}

// Resources returns the locator registry used by the store.
func (s *Store) Resources() *Resources {
	return s.resources
}

// ImportTrack adds the audio file at path to the library.
//
// The title defaults to the file name without its extension and the artist and genre to [UnknownField];
// when tag reading is enabled, non-empty tag values replace the defaults.
// A non-nil error alongside a valid track is a persistence [shared.Warning].
func (s *Store) ImportTrack(path string) (models.Track, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return models.Track{}, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return models.Track{}, fmt.Errorf("failed to import %s: %w", path, err)
	}
	if info.IsDir() || !shared.IsAudioFile(abs) {
		return models.Track{}, fmt.Errorf("%w: %s", shared.ErrUnsupportedFile, path)
	}

	track, err := Describe(abs, s.readTags)
	if err != nil {
		s.logger.Debug("using default metadata", "path", abs, "err", err)
	}
	track.Locator = s.resources.Create(abs)

	s.tracks = append(s.tracks, track)
	s.logger.Info("imported track", "title", track.Title, "locator", track.Locator)

	return track, s.persist()
}

// RemoveTrack drops the track from the library and every playlist and releases its locator.
// Unknown locators are ignored.
func (s *Store) RemoveTrack(loc models.Locator) error {
	_, idx, ok := lo.FindIndexOf(s.tracks, func(t models.Track) bool { return t.Locator == loc })
	if !ok {
		return nil
	}

	s.tracks = append(s.tracks[:idx], s.tracks[idx+1:]...)
	for i := range s.playlists {
		s.playlists[i].Tracks = withoutLocator(s.playlists[i].Tracks, loc)
	}
	s.resources.Release(loc)

	return s.persist()
}

// CreatePlaylist appends an empty playlist named name and persists.
//
// A blank name aborts with [shared.ErrInvalidInput]. Ids are strictly increasing millisecond timestamps.
func (s *Store) CreatePlaylist(name string) (models.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Playlist{}, fmt.Errorf("%w: playlist name is required", shared.ErrInvalidInput)
	}

	pl := models.Playlist{ID: s.nextID(), Name: name, Tracks: []models.Track{}}
	s.playlists = append(s.playlists, pl)

	return clonePlaylist(pl), s.persist()
}

func (s *Store) nextID() int64 {
	id := s.clock().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// AddTrackToPlaylist appends track to the playlist with the given id.
//
// Unknown playlists and tracks already present (by locator) are silently ignored.
func (s *Store) AddTrackToPlaylist(id int64, track models.Track) error {
	idx := s.indexOf(id)
	if idx < 0 || s.playlists[idx].Contains(track.Locator) {
		return nil
	}

	s.playlists[idx].Tracks = append(s.playlists[idx].Tracks, track)
	return s.persist()
}

// RemoveTrackFromPlaylist removes the track with the given locator from the playlist.
func (s *Store) RemoveTrackFromPlaylist(id int64, loc models.Locator) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	s.playlists[idx].Tracks = withoutLocator(s.playlists[idx].Tracks, loc)
	return s.persist()
}

// DeletePlaylist removes the playlist, clearing the active selection if it was active.
func (s *Store) DeletePlaylist(id int64) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	s.playlists = append(s.playlists[:idx], s.playlists[idx+1:]...)
	if s.hasActive && s.active == id {
		s.ClearCurrentPlaylist()
	}
	return s.persist()
}

// Search returns the library tracks whose title, artist or genre contains query, ignoring case.
//
// The active playlist does not narrow the search.
func (s *Store) Search(query string) []models.Track {
	q := strings.ToLower(query)
	return lo.Filter(s.tracks, func(t models.Track, _ int) bool {
		return strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Artist), q) ||
			strings.Contains(strings.ToLower(t.Genre), q)
	})
}

// SetCurrentPlaylist makes the playlist with id the active one. It reports whether the playlist exists.
func (s *Store) SetCurrentPlaylist(id int64) bool {
	if s.indexOf(id) < 0 {
		return false
	}
	s.active, s.hasActive = id, true
	return true
}

// ClearCurrentPlaylist returns to the full library view.
func (s *Store) ClearCurrentPlaylist() {
	s.active, s.hasActive = 0, false
}

// CurrentPlaylist returns the active playlist, if any.
func (s *Store) CurrentPlaylist() (models.Playlist, bool) {
	if !s.hasActive {
		return models.Playlist{}, false
	}
	return s.Playlist(s.active)
}

// Playlist returns the playlist with the given id.
func (s *Store) Playlist(id int64) (models.Playlist, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Playlist{}, false
	}
	return clonePlaylist(s.playlists[idx]), true
}

// Playlists returns a copy of every playlist in creation order.
func (s *Store) Playlists() []models.Playlist {
	return lo.Map(s.playlists, func(pl models.Playlist, _ int) models.Playlist { return clonePlaylist(pl) })
}

// Tracks returns a copy of the library track list in import order.
func (s *Store) Tracks() []models.Track {
	return append([]models.Track{}, s.tracks...)
}

// Visible returns the tracks of the active playlist, or the full library when none is active.
func (s *Store) Visible() []models.Track {
	if pl, ok := s.CurrentPlaylist(); ok {
		return pl.Tracks
	}
	return s.Tracks()
}

func (s *Store) indexOf(id int64) int {
	_, idx, ok := lo.FindIndexOf(s.playlists, func(pl models.Playlist) bool { return pl.ID == id })
	if !ok {
		return -1
	}
	return idx
}

func withoutLocator(tracks []models.Track, loc models.Locator) []models.Track {
	return lo.Reject(tracks, func(t models.Track, _ int) bool { return t.Locator == loc })
}

func clonePlaylist(pl models.Playlist) models.Playlist {
	pl.Tracks = append([]models.Track{}, pl.Tracks...)
	return pl
}
