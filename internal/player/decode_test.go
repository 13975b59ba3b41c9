package player

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/gopxl/beep/v2/effects"
)

func TestApplyLevel(t *testing.T) {
	tc := []struct {
		name       string
		level      float64
		wantSilent bool
		wantVolume float64
	}{
		{name: "full", level: 1, wantSilent: false, wantVolume: 0},
		{name: "half", level: 0.5, wantSilent: false, wantVolume: -1},
		{name: "mute", level: 0, wantSilent: true, wantVolume: 0},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			v := &effects.Volume{Base: 2}
			applyLevel(v, tt.level)

			if v.Silent != tt.wantSilent {
				t.Errorf("Silent = %v, want %v", v.Silent, tt.wantSilent)
			}
			if math.Abs(v.Volume-tt.wantVolume) > 1e-9 {
				t.Errorf("Volume = %v, want %v", v.Volume, tt.wantVolume)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	dir := t.TempDir()

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "notes.txt")
		if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("failed to open file: %v", err)
		}
		defer f.Close()

		if _, _, err := decode(f); !errors.Is(err, shared.ErrUnsupportedFile) {
			t.Errorf("expected ErrUnsupportedFile, got %v", err)
		}
	})

	t.Run("garbage wav", func(t *testing.T) {
		path := filepath.Join(dir, "broken.wav")
		if err := os.WriteFile(path, []byte("definitely not RIFF"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("failed to open file: %v", err)
		}
		defer f.Close()

		if _, _, err := decode(f); err == nil {
			t.Error("expected decode error for garbage input")
		}
	})
}
