package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for shelf.
type Config struct {
	InstallationID string         `toml:"installation_id"`
	BaseDir        string         `toml:"base_dir"`
	LogDir         string         `toml:"log_dir"`
	LogLevel       string         `toml:"log_level"` // "debug", "info" (default), "warn" or "error"
	Database       DatabaseConfig `toml:"database"`
	Cache          CacheConfig    `toml:"cache"`
	Catalog        CatalogConfig  `toml:"catalog"`
}

// DatabaseConfig represents configuration for the collection database.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type DatabaseConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// CacheConfig controls the collection store's in-memory snapshot.
type CacheConfig struct {
	Freshness string `toml:"freshness"` // Go duration, e.g. "2m"
}

// FreshnessWindow parses Freshness. An empty value yields 0, meaning the store default.
func (c CacheConfig) FreshnessWindow() (time.Duration, error) {
	if c.Freshness == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Freshness)
	if err != nil {
		return 0, fmt.Errorf("invalid cache freshness %q: %w", c.Freshness, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("cache freshness must be positive, got %s", d)
	}
	return d, nil
}

// CatalogConfig selects where game metadata for display comes from.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type CatalogConfig struct {
	Type string `toml:"type"`           // "memory" or "file"
	Path string `toml:"path,omitempty"` // only used for type=file: a JSON array of games
}

// NewConfig creates a new Config with the provided values and default paths.
func NewConfig(installationID, baseDir string) *Config {
	return &Config{
		InstallationID: installationID,
		BaseDir:        baseDir,
		LogDir:         filepath.Join(baseDir, "log"),
		LogLevel:       "info",
		Database: DatabaseConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "data"),
		},
		Cache: CacheConfig{Freshness: "2m"},
		Catalog: CatalogConfig{
			Type: "file",
			Path: filepath.Join(baseDir, "games.json"),
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

func writeToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
