package library

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/fsnotify/fsnotify"
)

// Watcher reports audio files created in a set of directories.
//
// Paths are delivered on [Watcher.Paths]; the channel is closed after [Watcher.Close].
type Watcher struct {
	watcher *fsnotify.Watcher
	logger  *log.Logger
	paths   chan string
	done    chan struct{}
	once    sync.Once
}

// NewWatcher starts watching dirs (non-recursively).
func NewWatcher(logger *log.Logger, dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	w := &Watcher{
		watcher: fw,
		logger:  shared.WithLogger(logger, "component", "watcher"),
		paths:   make(chan string, 16),
		done:    make(chan struct{}),
	}
	go w.run()

	return w, nil
}

// Paths returns the channel of newly created audio file paths.
func (w *Watcher) Paths() <-chan string {
	return w.paths
}

// Close stops watching and closes [Watcher.Paths].
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.paths)

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) || !shared.IsAudioFile(ev.Name) {
				continue
			}
			select {
			case w.paths <- ev.Name:
			case <-w.done:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "err", err)
		}
	}
}
