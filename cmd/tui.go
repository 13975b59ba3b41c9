package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mixtape/internal/library"
	"github.com/desertthunder/mixtape/internal/player"
	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/desertthunder/mixtape/internal/ui"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"
)

// Play launches the interactive player.
//
// Positional arguments are imported on start; --watch directories (and library.watch_dirs) are imported as
// new audio files appear.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, logFile, err := shared.NewFileLogger(config.UI.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	prev := r.logger
	r.SetLogger(fileLogger)
	defer func() {
		r.SetLogger(prev)
		logFile.Close()
	}()

	if !player.AudioAvailable {
		r.logger.Warn("audio output is not available in this build, playback is disabled")
	}

	store, repo, db, err := r.openStore(config)
	if err != nil {
		return err
	}
	defer db.Close()

	engine := player.NewEngine(player.EngineOpts{
		Output:   r.newOutput(config.Player.SampleRate, r.logger),
		Resolver: store.Resources(),
		Logger:   r.logger,
		Volume:   config.Player.Volume,
	})
	defer engine.Close()

	var paths <-chan string
	if dirs := lo.Uniq(slices.Concat(cmd.StringSlice("watch"), config.Library.WatchDirs)); len(dirs) > 0 {
		watcher, err := library.NewWatcher(r.logger, dirs...)
		if err != nil {
			return err
		}
		defer watcher.Close()
		paths = watcher.Paths()
	}

	var notifier shared.Notifier
	if config.UI.Notifications {
		notifier = r.notifier
	}

	startDir, err := os.Getwd()
	if err != nil {
		startDir = ""
	}

	model := ui.NewModel(ctx, ui.ModelOpts{
		Engine:      engine,
		Store:       store,
		Preferences: repo,
		Logger:      r.logger,
		Notifier:    notifier,
		NotifyEvery: config.UI.NotifyInterval(),
		Paths:       paths,
		Import:      cmd.Args().Slice(),
		StartDir:    startDir,
		Player:      config.Player,
	})
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
