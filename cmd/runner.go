package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixtape/internal/library"
	"github.com/desertthunder/mixtape/internal/player"
	"github.com/desertthunder/mixtape/internal/repositories"
	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/urfave/cli/v3"
)

const defaultConfigPath = "config.toml"

// OutputFactory creates the audio output used by the player.
type OutputFactory func(sampleRate int, logger *log.Logger) player.Output

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config    *shared.Config
	logger    *log.Logger
	output    io.Writer
	newOutput OutputFactory
	notifier  shared.Notifier
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config    *shared.Config
	Logger    *log.Logger
	Output    io.Writer
	NewOutput OutputFactory   // NewOutput defaults to the speaker output
	Notifier  shared.Notifier // Notifier defaults to desktop notifications, used when ui.notifications is set
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.NewOutput == nil {
		opts.NewOutput = player.NewSpeakerOutput
	}
	if opts.Notifier == nil {
		opts.Notifier = shared.DesktopNotifier{AppName: "mixtape"}
	}

	return &Runner{
		config:    opts.Config,
		logger:    opts.Logger,
		output:    opts.Output,
		newOutput: opts.NewOutput,
		notifier:  opts.Notifier,
	}
}

// SetLogger replaces the logger used by the runner and everything it constructs.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		playCommand, playlistsCommand, themeCommand, scanCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig returns the configuration named by the command's --config flag, falling back to the runner's.
func (r *Runner) loadConfig(cmd *cli.Command) (*shared.Config, error) {
	path := cmd.String("config")
	if path == "" {
		return r.config, nil
	}

	if _, err := os.Stat(path); err != nil {
		if path != defaultConfigPath {
			return nil, fmt.Errorf("%w: %s", shared.ErrMissingConfig, path)
		}
		return r.config, nil
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	r.config = config
	return config, nil
}

// openStorage opens the database and returns the key/value repository backing playlists and preferences.
// The caller closes the returned database.
func (r *Runner) openStorage(config *shared.Config) (*repositories.KeyValueRepository, *sql.DB, error) {
	db, err := shared.OpenDatabase(config.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return repositories.NewKeyValueRepository(db), db, nil
}

// openStore opens storage and restores the library store from it.
func (r *Runner) openStore(config *shared.Config) (*library.Store, *repositories.KeyValueRepository, *sql.DB, error) {
	repo, db, err := r.openStorage(config)
	if err != nil {
		return nil, nil, nil, err
	}

	store := library.NewStore(library.StoreOpts{
		Storage:  repo,
		Logger:   r.logger,
		ReadTags: config.Library.ReadTags,
	})
	return store, repo, db, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
