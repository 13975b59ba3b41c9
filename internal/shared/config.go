package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Player   PlayerConfig   `toml:"player"`
	Library  LibraryConfig  `toml:"library"`
	UI       UIConfig       `toml:"ui"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// PlayerConfig contains playback settings.
type PlayerConfig struct {
	Volume         float64 `toml:"volume"`
	AutoAdvance    bool    `toml:"auto_advance"`
	SampleRate     int     `toml:"sample_rate"`
	TickIntervalMS int     `toml:"tick_interval_ms"`
}

// TickInterval returns the progress polling interval, falling back to 250ms.
func (p PlayerConfig) TickInterval() time.Duration {
	if p.TickIntervalMS <= 0 {
		return 250 * time.Millisecond
	}
	return time.Duration(p.TickIntervalMS) * time.Millisecond
}

// LibraryConfig contains import settings.
type LibraryConfig struct {
	ReadTags  bool     `toml:"read_tags"`
	WatchDirs []string `toml:"watch_dirs"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	LogFile          string `toml:"log_file"`
	Notifications    bool   `toml:"notifications"`
	NotifyIntervalMS int    `toml:"notify_interval_ms"`
}

// NotifyInterval returns the minimum gap between now-playing notifications. Zero or less sends every one.
func (u UIConfig) NotifyInterval() time.Duration {
	if u.NotifyIntervalMS <= 0 {
		return 0
	}
	return time.Duration(u.NotifyIntervalMS) * time.Millisecond
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if config.Player.Volume < 0 || config.Player.Volume > 1 {
		return nil, fmt.Errorf("%w: player.volume must be within [0, 1], got %v", ErrInvalidConfig, config.Player.Volume)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
