package player

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/samber/lo"
	"golang.org/x/time/rate"
)

// Progress is a snapshot of the playback position.
type Progress struct {
	Position time.Duration
	Duration time.Duration
	Percent  float64 // Percent is Position/Duration*100, or 0 while the duration is unknown
	Elapsed  string  // Elapsed is Position formatted by [FormatTime]
	Total    string  // Total is Duration formatted by [FormatTime]
}

// EngineOpts contains the dependencies of an [Engine].
type EngineOpts struct {
	Output       Output
	Resolver     Resolver
	Logger       *log.Logger
	Volume       float64            // Volume is the initial level applied to the output
	OnNowPlaying func(models.Track) // OnNowPlaying fires after a track is loaded
	OnProgress   func(Progress)     // OnProgress fires on every [Engine.Tick]
}

// Engine owns the playback session of a single [Output].
//
// It is not safe for concurrent use; the UI drives it from its update loop.
type Engine struct {
	output       Output
	resolver     Resolver
	logger       *log.Logger
	current      *models.Track
	state        models.PlaybackState
	volume       float64
	onNowPlaying func(models.Track)
	onProgress   func(Progress)
	sometimes    rate.Sometimes
}

// NewEngine creates an Engine in the stopped state and applies the initial volume.
func NewEngine(opts EngineOpts) *Engine {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	e := &Engine{
		output:       opts.Output,
		resolver:     opts.Resolver,
		logger:       shared.WithLogger(opts.Logger, "component", "player"),
		state:        models.StateStopped,
		onNowPlaying: opts.OnNowPlaying,
		onProgress:   opts.OnProgress,
		sometimes:    rate.Sometimes{Interval: 10 * time.Second},
	}
	e.SetVolume(opts.Volume)
	return e
}

// OnNowPlaying replaces the now-playing callback.
func (e *Engine) OnNowPlaying(fn func(models.Track)) {
	e.onNowPlaying = fn
}

// OnProgress replaces the progress callback.
func (e *Engine) OnProgress(fn func(Progress)) {
	e.onProgress = fn
}

// Load makes track current and starts playing it from the beginning.
//
// If the locator cannot be resolved or the output cannot decode the file, the track is still recorded as
// current, the engine is stopped, and a [shared.Warning] is returned.
func (e *Engine) Load(track models.Track) error {
	t := track
	e.current = &t

	path, ok := e.resolver.Resolve(track.Locator)
	if !ok {
		e.state = models.StateStopped
		return shared.NewWarning("load "+track.Title, fmt.Errorf("%w: %s", shared.ErrLocatorReleased, track.Locator))
	}

	if err := e.output.Load(path); err != nil {
		e.state = models.StateStopped
		e.logger.Warn("playback failed", "title", track.Title, "err", err)
		return shared.NewWarning("load "+track.Title, err)
	}

	e.state = models.StatePlaying
	e.logger.Info("now playing", "title", track.Title, "artist", track.Artist)
	if e.onNowPlaying != nil {
		e.onNowPlaying(track)
	}
	return nil
}

// Play resumes the current track. Without one it does nothing.
func (e *Engine) Play() {
	if e.current == nil {
		return
	}
	e.output.Play()
	e.state = models.StatePlaying
}

// Pause pauses the current track. Without one it does nothing.
func (e *Engine) Pause() {
	if e.current == nil {
		return
	}
	e.output.Pause()
	e.state = models.StatePaused
}

// Stop pauses and rewinds to the start.
func (e *Engine) Stop() {
	e.output.Pause()
	if err := e.output.Seek(0); err != nil {
		e.logger.Debug("rewind failed", "err", err)
	}
	e.state = models.StateStopped
}

// Paused reports whether the engine is not currently playing.
func (e *Engine) Paused() bool {
	return e.state != models.StatePlaying
}

// State returns the transport state.
func (e *Engine) State() models.PlaybackState {
	return e.state
}

// Current returns the loaded track, if any.
func (e *Engine) Current() (models.Track, bool) {
	if e.current == nil {
		return models.Track{}, false
	}
	return *e.current, true
}

// Next loads the track after the current one in seq, wrapping to the start.
//
// If there is no current track or it is not in seq, Next does nothing.
func (e *Engine) Next(seq []models.Track) error {
	return e.step(seq, NextIndex)
}

// Previous loads the track before the current one in seq, wrapping to the end.
func (e *Engine) Previous(seq []models.Track) error {
	return e.step(seq, PrevIndex)
}

func (e *Engine) step(seq []models.Track, move func(i, n int) int) error {
	if e.current == nil || len(seq) == 0 {
		return nil
	}

	loc := e.current.Locator
	_, idx, ok := lo.FindIndexOf(seq, func(t models.Track) bool { return t.Locator == loc })
	if !ok {
		return nil
	}
	return e.Load(seq[move(idx, len(seq))])
}

// Seek jumps to percentage (0-100) of the current track. It is skipped while the duration is unknown.
func (e *Engine) Seek(percentage float64) error {
	if e.current == nil {
		return nil
	}

	duration := e.output.Duration()
	if duration <= 0 {
		return nil
	}

	position := time.Duration(percentage / 100 * float64(duration))
	if err := e.output.Seek(position); err != nil {
		return shared.NewWarning("seek", err)
	}
	return nil
}

// SetVolume applies level to the output as-is.
func (e *Engine) SetVolume(level float64) {
	e.volume = level
	e.output.SetVolume(level)
}

// Volume returns the last level passed to [Engine.SetVolume].
func (e *Engine) Volume() float64 {
	return e.volume
}

// Ended reports whether the current track played to the end while the engine was playing.
func (e *Engine) Ended() bool {
	return e.state == models.StatePlaying && e.output.Ended()
}

// Tick samples the output and fires OnProgress.
func (e *Engine) Tick() Progress {
	position, duration := e.output.Position(), e.output.Duration()
	p := Progress{
		Position: position,
		Duration: duration,
		Percent:  Percent(position, duration),
		Elapsed:  FormatTime(position),
		Total:    FormatTime(duration),
	}

	e.sometimes.Do(func() {
		e.logger.Debug("progress", "state", e.state, "elapsed", p.Elapsed, "total", p.Total)
	})

	if e.onProgress != nil {
		e.onProgress(p)
	}
	return p
}

// Close releases the output.
func (e *Engine) Close() error {
	e.state = models.StateStopped
	return e.output.Close()
}
