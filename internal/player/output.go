package player

import (
	"time"

	"github.com/desertthunder/mixtape/internal/models"
)

// Output is the native audio handle driven by the [Engine].
type Output interface {
	Load(path string) error     // Load sets the source and begins playback from the start
	Play()                      // Play resumes playback
	Pause()                     // Pause suspends playback, keeping the position
	Seek(d time.Duration) error // Seek moves to an absolute position
	Position() time.Duration    // Position is the elapsed time of the current source
	Duration() time.Duration    // Duration is the total length, or 0 when unknown
	SetVolume(level float64)    // SetVolume applies a level in [0, 1]
	Ended() bool                // Ended reports that the current source played to the end
	Close() error               // Close releases the current source
}

// Resolver maps a locator to the file it was created from.
type Resolver interface {
	Resolve(loc models.Locator) (string, bool)
}
