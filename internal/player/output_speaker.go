//go:build (linux && cgo) || windows || darwin

package player

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// AudioAvailable indicates whether audio playback is supported in this build.
const AudioAvailable = true

// mixer is the playback sink a [speakerOutput] feeds. The default is the global beep speaker.
type mixer interface {
	Init(sampleRate beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

type speakerMixer struct{}

func (speakerMixer) Init(sr beep.SampleRate, n int) error { return speaker.Init(sr, n) }
func (speakerMixer) Play(s ...beep.Streamer)              { speaker.Play(s...) }
func (speakerMixer) Clear()                               { speaker.Clear() }
func (speakerMixer) Lock()                                { speaker.Lock() }
func (speakerMixer) Unlock()                              { speaker.Unlock() }

// speakerOutput plays files through the system speaker using beep.
type speakerOutput struct {
	mu sync.Mutex

	logger      *log.Logger
	mixer       mixer
	sampleRate  beep.SampleRate
	initialized bool
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	level       float64

	generation atomic.Uint64 // generation identifies the source whose end-of-stream callback is current
	ended      atomic.Bool
	drained    atomic.Bool // drained is set once the mixer has dropped the current source
}

// NewSpeakerOutput creates an [Output] that mixes at sampleRate (44100 when <= 0).
// The speaker is initialized lazily on the first [Output.Load].
func NewSpeakerOutput(sampleRate int, logger *log.Logger) Output {
	return newSpeakerOutput(speakerMixer{}, sampleRate, logger)
}

func newSpeakerOutput(m mixer, sampleRate int, logger *log.Logger) *speakerOutput {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &speakerOutput{
		logger:     shared.WithLogger(logger, "component", "speaker"),
		mixer:      m,
		sampleRate: beep.SampleRate(sampleRate),
		level:      1,
	}
}

func (o *speakerOutput) Load(path string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.closeLocked()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	streamer, format, err := decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("%w: %s: %v", shared.ErrDecode, filepath.Base(path), err)
	}

	if !o.initialized {
		if err := o.mixer.Init(o.sampleRate, o.sampleRate.N(time.Second/10)); err != nil {
			streamer.Close()
			return fmt.Errorf("%w: %v", shared.ErrAudioUnavailable, err)
		}
		o.initialized = true
	}

	o.streamer = streamer
	o.format = format
	o.enqueueLocked(false)

	o.logger.Debug("source loaded", "path", path, "rate", format.SampleRate)
	return nil
}

// enqueueLocked builds a fresh resample/volume/ctrl chain over the current source and hands it to the
// mixer under a new generation (must be called with o.mu held, without the mixer lock).
//
// The chain is rebuilt every time because a drained [beep.Resampler] stays at its end position.
func (o *speakerOutput) enqueueLocked(paused bool) {
	o.volume = &effects.Volume{
		Streamer: beep.Resample(4, o.format.SampleRate, o.sampleRate, o.streamer),
		Base:     2,
	}
	applyLevel(o.volume, o.level)
	o.ctrl = &beep.Ctrl{Streamer: o.volume, Paused: paused}

	gen := o.generation.Add(1)
	o.ended.Store(false)
	o.drained.Store(false)

	// The callback runs on the speaker goroutine with the speaker lock held, so it must not take o.mu.
	o.mixer.Play(beep.Seq(o.ctrl, beep.Callback(func() {
		if o.generation.Load() == gen {
			o.ended.Store(true)
			o.drained.Store(true)
		}
	})))
}

// resumeLocked puts a drained source back into the mixer when it has been rewound (must be called with
// o.mu held, without the mixer lock).
func (o *speakerOutput) resumeLocked(paused bool) {
	if o.streamer == nil || !o.drained.Load() {
		return
	}

	o.mixer.Lock()
	rewound := o.streamer.Position() < o.streamer.Len()
	o.mixer.Unlock()

	if rewound {
		o.enqueueLocked(paused)
		o.logger.Debug("source re-queued", "generation", o.generation.Load())
	}
}

func (o *speakerOutput) Play()  { o.setPaused(false) }
func (o *speakerOutput) Pause() { o.setPaused(true) }

func (o *speakerOutput) setPaused(paused bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ctrl == nil {
		return
	}
	if !paused && o.drained.Load() {
		o.resumeLocked(false)
		return
	}
	o.mixer.Lock()
	o.ctrl.Paused = paused
	o.mixer.Unlock()
}

func (o *speakerOutput) Seek(d time.Duration) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.streamer == nil {
		return nil
	}

	o.mixer.Lock()
	samples := min(max(o.format.SampleRate.N(d), 0), o.streamer.Len())
	err := o.streamer.Seek(samples)
	paused := o.ctrl != nil && o.ctrl.Paused
	o.mixer.Unlock()

	if err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}
	if samples < o.streamer.Len() {
		o.ended.Store(false)
		o.resumeLocked(paused)
	}
	return nil
}

func (o *speakerOutput) Position() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.streamer == nil {
		return 0
	}

	o.mixer.Lock()
	pos := o.streamer.Position()
	o.mixer.Unlock()

	return o.format.SampleRate.D(pos)
}

func (o *speakerOutput) Duration() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.streamer == nil {
		return 0
	}
	return o.format.SampleRate.D(o.streamer.Len())
}

func (o *speakerOutput) SetVolume(level float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.level = level
	if o.volume == nil {
		return
	}
	o.mixer.Lock()
	applyLevel(o.volume, level)
	o.mixer.Unlock()
}

func (o *speakerOutput) Ended() bool {
	return o.ended.Load()
}

func (o *speakerOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closeLocked()
}

// closeLocked stops the current source (must be called with o.mu held).
func (o *speakerOutput) closeLocked() error {
	if o.initialized {
		o.mixer.Clear()
	}
	o.generation.Add(1)

	var err error
	if o.streamer != nil {
		err = o.streamer.Close()
	}
	o.streamer = nil
	o.ctrl = nil
	o.volume = nil
	return err
}
