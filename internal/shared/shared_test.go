package shared

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsAudioFile(t *testing.T) {
	tc := []struct {
		name string
		path string
		want bool
	}{
		{name: "mp3", path: "song.mp3", want: true},
		{name: "upper case extension", path: "/music/SONG.MP3", want: true},
		{name: "flac", path: "album/track.flac", want: true},
		{name: "ogg", path: "track.ogg", want: true},
		{name: "wav", path: "take.wav", want: true},
		{name: "text file", path: "notes.txt", want: false},
		{name: "no extension", path: "README", want: false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAudioFile(tt.path); got != tt.want {
				t.Errorf("IsAudioFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestTrimExtension(t *testing.T) {
	tc := []struct {
		path string
		want string
	}{
		{path: "song.mp3", want: "song"},
		{path: "/music/My.Song.flac", want: "My.Song"},
		{path: "noext", want: "noext"},
	}

	for _, tt := range tc {
		t.Run(tt.path, func(t *testing.T) {
			if got := TrimExtension(tt.path); got != tt.want {
				t.Errorf("TrimExtension(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestWarning(t *testing.T) {
	t.Run("nil error yields nil", func(t *testing.T) {
		if err := NewWarning("persist", nil); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("wraps cause", func(t *testing.T) {
		err := NewWarning("persist playlists", ErrStorage)

		var w *Warning
		if !errors.As(err, &w) {
			t.Fatalf("expected *Warning, got %T", err)
		}
		if w.Op != "persist playlists" {
			t.Errorf("expected op 'persist playlists', got %q", w.Op)
		}
		if !errors.Is(err, ErrStorage) {
			t.Error("expected warning to unwrap to ErrStorage")
		}
		if err.Error() != "warning: persist playlists: storage failure" {
			t.Errorf("unexpected message: %q", err.Error())
		}
	})
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mixtape.log")

	logger, f, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create file logger: %v", err)
	}
	logger.Info("hello")

	if err := f.Close(); err != nil {
		t.Fatalf("failed to close log file: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "hello") {
		t.Errorf("expected log line in file, got %q", content)
	}
	if err := f.Close(); err == nil {
		t.Error("expected second close to report the file already closed")
	}

	if id := GenerateID(); len(id) != 36 {
		t.Errorf("expected uuid of length 36, got %q", id)
	}
}
