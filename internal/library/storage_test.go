package library

import (
	"errors"
	"testing"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/shared"
	tu "github.com/desertthunder/mixtape/internal/testing"
)

func TestTheme(t *testing.T) {
	t.Run("absence means light", func(t *testing.T) {
		if got := LoadTheme(tu.NewMemoryStorage()); got != models.ThemeLight {
			t.Errorf("expected light, got %v", got)
		}
	})

	t.Run("persists across reload", func(t *testing.T) {
		storage := tu.NewMemoryStorage()

		theme := LoadTheme(storage).Toggle()
		if err := SaveTheme(storage, theme); err != nil {
			t.Fatalf("failed to save theme: %v", err)
		}

		if string(storage.Values[ThemeKey]) != `"dark"` {
			t.Errorf("expected JSON string \"dark\", got %s", storage.Values[ThemeKey])
		}
		if got := LoadTheme(storage); got != models.ThemeDark {
			t.Errorf("expected dark after reload, got %v", got)
		}
	})

	t.Run("garbage means light", func(t *testing.T) {
		storage := tu.NewMemoryStorage()
		storage.Values[ThemeKey] = []byte(`"sepia"`)
		if got := LoadTheme(storage); got != models.ThemeLight {
			t.Errorf("expected light, got %v", got)
		}
	})

	t.Run("invalid theme rejected", func(t *testing.T) {
		if err := SaveTheme(tu.NewMemoryStorage(), models.Theme("neon")); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("storage failure is a warning", func(t *testing.T) {
		err := SaveTheme(tu.FailingStorage{}, models.ThemeDark)
		var w *shared.Warning
		if !errors.As(err, &w) {
			t.Errorf("expected *shared.Warning, got %v", err)
		}
	})
}

func TestLoadPlaylists(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		playlists, err := LoadPlaylists(tu.NewMemoryStorage())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if playlists == nil || len(playlists) != 0 {
			t.Errorf("expected empty non-nil list, got %v", playlists)
		}
	})

	t.Run("null tracks normalized", func(t *testing.T) {
		storage := tu.NewMemoryStorage()
		storage.Values[PlaylistsKey] = []byte(`[{"id":1,"name":"A","tracks":null}]`)

		playlists, err := LoadPlaylists(storage)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(playlists) != 1 || playlists[0].Tracks == nil {
			t.Errorf("expected one playlist with empty tracks, got %+v", playlists)
		}
	})

	t.Run("corrupt value", func(t *testing.T) {
		storage := tu.NewMemoryStorage()
		storage.Values[PlaylistsKey] = []byte(`{"id":`)

		if _, err := LoadPlaylists(storage); !errors.Is(err, shared.ErrCorruptValue) {
			t.Errorf("expected ErrCorruptValue, got %v", err)
		}
	})
}

func TestResources(t *testing.T) {
	r := NewResources()

	loc := r.Create("/music/a.mp3")
	if len(loc) <= len(locatorScheme) || string(loc[:len(locatorScheme)]) != locatorScheme {
		t.Errorf("expected %s prefix, got %s", locatorScheme, loc)
	}

	if path, ok := r.Resolve(loc); !ok || path != "/music/a.mp3" {
		t.Errorf("unexpected resolve result: %s %v", path, ok)
	}

	r.Register("blob:restored", "/music/b.mp3")
	if r.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", r.Len())
	}

	if !r.Release(loc) {
		t.Error("expected release to report a registered locator")
	}
	if r.Release(loc) {
		t.Error("expected second release to report false")
	}
	if _, ok := r.Resolve(loc); ok {
		t.Error("released locator should not resolve")
	}
}
