package models

import "testing"

func TestPlaylist(t *testing.T) {
	pl := Playlist{
		ID:   1,
		Name: "Road Trip",
		Tracks: []Track{
			{Locator: "blob:a", Title: "A", Artist: "X"},
			{Locator: "blob:b", Title: "B", Artist: "Y"},
		},
	}

	t.Run("Contains", func(t *testing.T) {
		if !pl.Contains("blob:a") {
			t.Error("expected playlist to contain blob:a")
		}
		if pl.Contains("blob:c") {
			t.Error("expected playlist not to contain blob:c")
		}
	})

	t.Run("Len", func(t *testing.T) {
		if pl.Len() != 2 {
			t.Errorf("expected 2 tracks, got %d", pl.Len())
		}
	})
}

func TestTrackLabel(t *testing.T) {
	track := Track{Title: "Song", Artist: "Band"}
	if got := track.Label(); got != "Song - Band" {
		t.Errorf("Label() = %q, want %q", got, "Song - Band")
	}
}

func TestTheme(t *testing.T) {
	tc := []struct {
		name  string
		theme Theme
		want  Theme
	}{
		{name: "light to dark", theme: ThemeLight, want: ThemeDark},
		{name: "dark to light", theme: ThemeDark, want: ThemeLight},
		{name: "unknown to dark", theme: Theme("sepia"), want: ThemeDark},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.theme.Toggle(); got != tt.want {
				t.Errorf("Toggle() = %v, want %v", got, tt.want)
			}
		})
	}

	if Theme("sepia").Valid() {
		t.Error("sepia should not be a valid theme")
	}
}
