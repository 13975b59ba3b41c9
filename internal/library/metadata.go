package library

import (
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/dhowden/tag"
)

// Describe derives the metadata of the audio file at path without importing it.
//
// The title defaults to the file name without its extension and the artist and genre to [UnknownField].
// When readTags is set, non-empty tag values replace the defaults; a tag read failure is returned alongside
// the defaults.
func Describe(path string, readTags bool) (models.Track, error) {
	track := models.Track{
		Title:  shared.TrimExtension(path),
		Artist: UnknownField,
		Genre:  UnknownField,
		Path:   path,
	}
	if !readTags {
		return track, nil
	}

	err := applyTags(&track)
	return track, err
}

// applyTags overwrites the default title, artist and genre of track with any non-empty values
// found in the file's ID3/MP4/FLAC/Ogg tags.
func applyTags(track *models.Track) error {
	f, err := os.Open(track.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", track.Path, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return fmt.Errorf("failed to read tags from %s: %w", track.Path, err)
	}

	if v := strings.TrimSpace(m.Title()); v != "" {
		track.Title = v
	}
	if v := strings.TrimSpace(m.Artist()); v != "" {
		track.Artist = v
	}
	if v := strings.TrimSpace(m.Genre()); v != "" {
		track.Genre = v
	}
	return nil
}
