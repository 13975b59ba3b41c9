package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Storage errors
	ErrKeyNotFound  = fmt.Errorf("key not found")
	ErrStorage      = fmt.Errorf("storage failure")
	ErrCorruptValue = fmt.Errorf("corrupt stored value")

	// Library errors
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")
	ErrTrackNotFound    = fmt.Errorf("track not found")
	ErrUnsupportedFile  = fmt.Errorf("unsupported audio file")

	// Playback errors
	ErrAudioUnavailable = fmt.Errorf("audio output unavailable")
	ErrLocatorReleased  = fmt.Errorf("locator is not registered")
	ErrDecode           = fmt.Errorf("failed to decode audio")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

// Warning is a recoverable failure.
//
// Storage and decode failures are reported as warnings: the operation that produced one has
// already applied its in-memory effect, and a UI may show the message or ignore it.
type Warning struct {
	Op  string // Op names the operation that failed, e.g. "persist playlists"
	Err error
}

// NewWarning wraps err as a [Warning] for op. It returns nil when err is nil.
func NewWarning(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Warning{Op: op, Err: err}
}

func (w *Warning) Error() string {
	return fmt.Sprintf("warning: %s: %v", w.Op, w.Err)
}

func (w *Warning) Unwrap() error {
	return w.Err
}
