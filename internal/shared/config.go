package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server Server `toml:"server"`
	Cache  Cache  `toml:"cache"`
	Player Player `toml:"player"`
}

// Server contains the media server endpoints the client talks to.
type Server struct {
	BaseURL      string `toml:"base_url"`
	ChannelPath  string `toml:"channel_path"`
	APIPrefix    string `toml:"api_prefix"`
	OfflinePage  string `toml:"offline_page"`
	ReconnectSec int    `toml:"reconnect_sec"`
}

// Cache contains the offline cache settings.
type Cache struct {
	Path         string   `toml:"path"`
	Version      string   `toml:"version"`
	Precache     []string `toml:"precache"`
	MaxOpenConns int      `toml:"max_open_conns"`
	MaxIdleConns int      `toml:"max_idle_conns"`
}

// Player contains playback defaults.
type Player struct {
	Volume int `toml:"volume"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
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
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
