package library

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/shared"
)

const (
	PlaylistsKey = "playlists" // PlaylistsKey holds a JSON array of [models.Playlist]
	ThemeKey     = "theme"     // ThemeKey holds a JSON string, "dark" or "light"
)

// Storage is a durable key/value store.
//
// Get returns an error wrapping [shared.ErrKeyNotFound] when key has never been written.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// LoadTheme returns the persisted theme. A missing or unreadable value means [models.ThemeLight].
func LoadTheme(s Storage) models.Theme {
	data, err := s.Get(ThemeKey)
	if err != nil {
		return models.ThemeLight
	}

	var theme models.Theme
	if err := json.Unmarshal(data, &theme); err != nil || !theme.Valid() {
		return models.ThemeLight
	}
	return theme
}

// SaveTheme persists theme under [ThemeKey]. Storage failures are returned as a [shared.Warning].
func SaveTheme(s Storage, theme models.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("%w: unknown theme %q", shared.ErrInvalidInput, theme)
	}

	data, err := json.Marshal(theme)
	if err != nil {
		return fmt.Errorf("failed to marshal theme: %w", err)
	}

	return shared.NewWarning("persist theme", s.Set(ThemeKey, data))
}

// LoadPlaylists decodes the playlist list stored under [PlaylistsKey].
//
// A missing key yields an empty list and a nil error; a corrupt value yields an error wrapping [shared.ErrCorruptValue].
func LoadPlaylists(s Storage) ([]models.Playlist, error) {
	data, err := s.Get(PlaylistsKey)
	if errors.Is(err, shared.ErrKeyNotFound) {
		return []models.Playlist{}, nil
	}
	if err != nil {
		return nil, err
	}

	var playlists []models.Playlist
	if err := json.Unmarshal(data, &playlists); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrCorruptValue, PlaylistsKey, err)
	}

	for i := range playlists {
		if playlists[i].Tracks == nil {
			playlists[i].Tracks = []models.Track{}
		}
	}
	if playlists == nil {
		playlists = []models.Playlist{}
	}
	return playlists, nil
}
