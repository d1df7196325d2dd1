package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDataDirName    = "todo-data"
	DefaultLogFileName    = "myday.log"
	DefaultListName       = "My Tasks"
	DefaultBackend        = "csv"

	EnvDataDir = "MYDAY_DATA_DIR"
	EnvBackend = "MYDAY_BACKEND"
)

// Keymap holds the rebindable navigation keys. Arrow keys and the ctrl
// chords are fixed.
type Keymap struct {
	Up     string `toml:"up"`
	Down   string `toml:"down"`
	Top    string `toml:"top"`
	Bottom string `toml:"bottom"`
}

type Config struct {
	DataDir     string `toml:"data_dir"`
	Backend     string `toml:"backend"`
	LogFile     string `toml:"log_file"`
	DefaultList string `toml:"default_list"`
	Development bool   `toml:"development"`
	Keys        Keymap `toml:"keys"`
}

// Load resolves the data directory, makes sure it exists, and reads the
// config file inside it, creating one on first launch. Environment
// variables (optionally from a .env file) override the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read .env: %w", err)
	}

	dataDir := strings.TrimSpace(os.Getenv(EnvDataDir))
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("could not find home directory: %w", err)
		}
		dataDir = filepath.Join(home, DefaultDataDirName)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return Config{}, fmt.Errorf("failed to create %s: %w", dataDir, err)
	}

	cfg, err := LoadOrCreate(filepath.Join(dataDir, DefaultConfigFileName), dataDir)
	if err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

// LoadOrCreate reads path, or writes the defaults there when it does not
// exist yet. Empty fields fall back to defaults.
func LoadOrCreate(path, dataDir string) (Config, error) {
	cfg := defaultConfig(dataDir)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	fillDefaults(&cfg, dataDir)
	return cfg, nil
}

// LogPath resolves LogFile against the data directory.
func (c Config) LogPath() string {
	if filepath.IsAbs(c.LogFile) {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, c.LogFile)
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvDataDir)); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBackend)); v != "" {
		cfg.Backend = strings.ToLower(v)
	}
}

func fillDefaults(cfg *Config, dataDir string) {
	def := defaultConfig(dataDir)
	if cfg.DataDir == "" {
		cfg.DataDir = def.DataDir
	}
	if cfg.Backend == "" {
		cfg.Backend = def.Backend
	}
	if cfg.LogFile == "" {
		cfg.LogFile = def.LogFile
	}
	if strings.TrimSpace(cfg.DefaultList) == "" {
		cfg.DefaultList = def.DefaultList
	}
	if cfg.Keys.Up == "" {
		cfg.Keys.Up = def.Keys.Up
	}
	if cfg.Keys.Down == "" {
		cfg.Keys.Down = def.Keys.Down
	}
	if cfg.Keys.Top == "" {
		cfg.Keys.Top = def.Keys.Top
	}
	if cfg.Keys.Bottom == "" {
		cfg.Keys.Bottom = def.Keys.Bottom
	}
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func DefaultKeymap() Keymap {
	return Keymap{
		Up:     "k",
		Down:   "j",
		Top:    "g",
		Bottom: "G",
	}
}

func defaultConfig(dataDir string) Config {
	return Config{
		DataDir:     dataDir,
		Backend:     DefaultBackend,
		LogFile:     DefaultLogFileName,
		DefaultList: DefaultListName,
		Keys:        DefaultKeymap(),
	}
}
