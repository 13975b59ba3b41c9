//go:build !((linux && cgo) || windows || darwin)

package player

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixtape/internal/shared"
)

// AudioAvailable indicates whether audio playback is supported in this build.
// Audio requires cgo on Linux for the native sound libraries.
const AudioAvailable = false

// stubOutput is the output of builds without audio support. Every load fails with [shared.ErrAudioUnavailable].
type stubOutput struct{}

// NewSpeakerOutput returns an [Output] that cannot play anything in this build.
func NewSpeakerOutput(sampleRate int, logger *log.Logger) Output {
	if logger != nil {
		logger.Warn("built without cgo, audio output disabled")
	}
	return stubOutput{}
}

func (stubOutput) Load(path string) error     { return shared.ErrAudioUnavailable }
func (stubOutput) Play()                      {}
func (stubOutput) Pause()                     {}
func (stubOutput) Seek(d time.Duration) error { return nil }
func (stubOutput) Position() time.Duration    { return 0 }
func (stubOutput) Duration() time.Duration    { return 0 }
func (stubOutput) SetVolume(level float64)    {}
func (stubOutput) Ended() bool                { return false }
func (stubOutput) Close() error               { return nil }
