package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/player"
	"github.com/desertthunder/mixtape/internal/shared"
	tu "github.com/desertthunder/mixtape/internal/testing"
	"github.com/urfave/cli/v3"
)

func fakeOutput(sampleRate int, logger *log.Logger) player.Output {
	return &tu.FakeOutput{}
}

// newTestRunner returns a runner writing to a buffer and the path of a config file pointing at a temporary database.
func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer, string) {
	t.Helper()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf("[database]\npath = %q\n", filepath.Join(dir, "mixtape.db"))
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Logger:    shared.NewLogger(io.Discard),
		Output:    output,
		NewOutput: fakeOutput,
	})
	return runner, output, configPath
}

func run(r *Runner, args ...string) error {
	app := &cli.Command{Name: "mixtape", Commands: r.register()}
	return app.Run(context.Background(), append([]string{"mixtape"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			notifier := shared.DesktopNotifier{AppName: "test"}

			runner := NewRunner(RunnerOpts{
				Config:    config,
				Logger:    logger,
				Output:    output,
				NewOutput: fakeOutput,
				Notifier:  notifier,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.notifier != notifier {
				t.Error("expected notifier to be set")
			}
			if _, ok := runner.newOutput(44100, logger).(*tu.FakeOutput); !ok {
				t.Error("expected output factory to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil factories uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.newOutput == nil {
				t.Error("expected default output factory")
			}
			if _, ok := runner.notifier.(shared.DesktopNotifier); !ok {
				t.Errorf("expected desktop notifier, got %T", runner.notifier)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]int{"n": 1}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "{\"n\":1}\n" {
				t.Errorf("expected compact JSON, got %q", output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("Hello %s", "World"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "Hello World" {
				t.Errorf("expected 'Hello World', got %q", output.String())
			}
		})

		t.Run("writePlainln pads with newlines", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			runner.writePlainln("Next steps:")
			if output.String() != "\nNext steps:\n" {
				t.Errorf("unexpected output %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writePlain("test"); err == nil {
				t.Error("expected error for failed write")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		names := map[string]bool{}
		for _, c := range commands {
			names[c.Name] = true
		}
		for _, want := range []string{"play", "playlists", "theme", "scan", "setup"} {
			if !names[want] {
				t.Errorf("expected %s command to be registered", want)
			}
		}
	})

	t.Run("loadConfig", func(t *testing.T) {
		t.Run("missing explicit path", func(t *testing.T) {
			runner, _, _ := newTestRunner(t)

			err := run(runner, "play", "--config", filepath.Join(t.TempDir(), "nope.toml"))
			if !errors.Is(err, shared.ErrMissingConfig) {
				t.Errorf("expected ErrMissingConfig, got %v", err)
			}
		})

		t.Run("invalid file", func(t *testing.T) {
			runner, _, _ := newTestRunner(t)
			path := filepath.Join(t.TempDir(), "bad.toml")
			os.WriteFile(path, []byte("[player]\nvolume = 3.0\n"), 0644)

			err := run(runner, "theme", "--config", path)
			if !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})
}

func TestPlaylistsCommands(t *testing.T) {
	runner, output, configPath := newTestRunner(t)

	t.Run("empty list", func(t *testing.T) {
		output.Reset()
		if err := run(runner, "playlists", "list", "--config", configPath); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if !strings.Contains(output.String(), "No playlists") {
			t.Errorf("expected empty hint, got %q", output.String())
		}
	})

	t.Run("create then list", func(t *testing.T) {
		output.Reset()
		if err := run(runner, "playlists", "create", "--config", configPath, "Road trip"); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if !strings.Contains(output.String(), `Created playlist "Road trip"`) {
			t.Errorf("unexpected create output %q", output.String())
		}

		output.Reset()
		if err := run(runner, "playlists", "list", "--config", configPath); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if !strings.Contains(output.String(), "Road trip") {
			t.Errorf("expected playlist in table, got %q", output.String())
		}
	})

	var created models.Playlist
	t.Run("list as JSON", func(t *testing.T) {
		output.Reset()
		if err := run(runner, "playlists", "list", "--config", configPath, "--json"); err != nil {
			t.Fatalf("list failed: %v", err)
		}

		var playlists []models.Playlist
		if err := json.Unmarshal(output.Bytes(), &playlists); err != nil {
			t.Fatalf("invalid JSON output: %v", err)
		}
		if len(playlists) != 1 || playlists[0].Name != "Road trip" {
			t.Fatalf("unexpected playlists %+v", playlists)
		}
		created = playlists[0]
	})

	t.Run("show", func(t *testing.T) {
		output.Reset()
		id := fmt.Sprint(created.ID)
		if err := run(runner, "playlists", "show", "--config", configPath, id); err != nil {
			t.Fatalf("show failed: %v", err)
		}
		if !strings.Contains(output.String(), "Road trip") || !strings.Contains(output.String(), "0 tracks") {
			t.Errorf("unexpected show output %q", output.String())
		}
	})

	t.Run("show errors", func(t *testing.T) {
		if err := run(runner, "playlists", "show", "--config", configPath, "abc"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if err := run(runner, "playlists", "show", "--config", configPath); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
		if err := run(runner, "playlists", "show", "--config", configPath, "42"); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("blank name", func(t *testing.T) {
		err := run(runner, "playlists", "create", "--config", configPath, "  ")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		output.Reset()
		if err := run(runner, "playlists", "delete", "--config", configPath, fmt.Sprint(created.ID)); err != nil {
			t.Fatalf("delete failed: %v", err)
		}

		output.Reset()
		run(runner, "playlists", "list", "--config", configPath)
		if !strings.Contains(output.String(), "No playlists") {
			t.Errorf("expected no playlists after delete, got %q", output.String())
		}
	})
}

func TestThemeCommand(t *testing.T) {
	runner, output, configPath := newTestRunner(t)

	if err := run(runner, "theme", "--config", configPath); err != nil {
		t.Fatalf("theme failed: %v", err)
	}
	if strings.TrimSpace(output.String()) != "light" {
		t.Errorf("expected light by default, got %q", output.String())
	}

	if err := run(runner, "theme", "--config", configPath, "dark"); err != nil {
		t.Fatalf("set theme failed: %v", err)
	}

	output.Reset()
	run(runner, "theme", "--config", configPath)
	if strings.TrimSpace(output.String()) != "dark" {
		t.Errorf("expected dark after setting it, got %q", output.String())
	}

	if err := run(runner, "theme", "--config", configPath, "blue"); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestScanCommand(t *testing.T) {
	runner, output, configPath := newTestRunner(t)
	dir := t.TempDir()
	tu.MustWriteFile(t, dir, "Side A/Intro.mp3")
	tu.MustWriteFile(t, dir, "Side A/cover.jpg")
	tu.MustWriteFile(t, dir, "Outro.ogg")

	t.Run("table", func(t *testing.T) {
		output.Reset()
		if err := run(runner, "scan", "--config", configPath, dir); err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		out := output.String()
		if !strings.Contains(out, "Intro") || !strings.Contains(out, "Outro") {
			t.Errorf("expected both tracks listed, got %q", out)
		}
		if strings.Contains(out, "cover") {
			t.Error("non-audio files should be skipped")
		}
	})

	t.Run("json", func(t *testing.T) {
		output.Reset()
		if err := run(runner, "scan", "--config", configPath, "--json", dir); err != nil {
			t.Fatalf("scan failed: %v", err)
		}

		var tracks []models.Track
		if err := json.Unmarshal(output.Bytes(), &tracks); err != nil {
			t.Fatalf("invalid JSON output: %v", err)
		}
		if len(tracks) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(tracks))
		}
		for _, track := range tracks {
			if track.Artist != "Unknown" || track.Locator != "" {
				t.Errorf("unexpected scanned track %+v", track)
			}
		}
	})

	t.Run("skips missing paths", func(t *testing.T) {
		output.Reset()
		missing := filepath.Join(dir, "missing.mp3")
		if err := run(runner, "scan", "--config", configPath, "--json", missing, dir); err != nil {
			t.Fatalf("scan failed: %v", err)
		}

		var tracks []models.Track
		if err := json.Unmarshal(output.Bytes(), &tracks); err != nil {
			t.Fatalf("invalid JSON output: %v", err)
		}
		if len(tracks) != 2 {
			t.Errorf("expected the readable tracks listed, got %d", len(tracks))
		}
	})

	t.Run("fails when nothing is readable", func(t *testing.T) {
		missing := filepath.Join(dir, "missing.mp3")
		if err := run(runner, "scan", "--config", configPath, missing); err == nil {
			t.Error("expected an error when every path is missing")
		}
	})

	t.Run("requires a path", func(t *testing.T) {
		if err := run(runner, "scan", "--config", configPath); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestSetupCommands(t *testing.T) {
	t.Run("config", func(t *testing.T) {
		runner, output, _ := newTestRunner(t)
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := run(runner, "setup", "config", "--config", path); err != nil {
			t.Fatalf("setup config failed: %v", err)
		}
		tu.AssertFileExists(t, path)
		if !strings.Contains(tu.MustReadFile(t, path), "[player]") {
			t.Error("expected the default config to be written")
		}
		if !strings.Contains(output.String(), "Configuration written") {
			t.Errorf("unexpected output %q", output.String())
		}

		if err := run(runner, "setup", "config", "--config", path); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected refusal to overwrite, got %v", err)
		}
		if err := run(runner, "setup", "config", "--config", path, "--force"); err != nil {
			t.Errorf("expected --force to overwrite, got %v", err)
		}
	})

	t.Run("database", func(t *testing.T) {
		runner, _, configPath := newTestRunner(t)

		if err := run(runner, "setup", "database", "--config", configPath); err != nil {
			t.Fatalf("setup database failed: %v", err)
		}
		tu.AssertFileExists(t, filepath.Join(filepath.Dir(configPath), "mixtape.db"))
	})
}
