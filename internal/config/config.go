// Package config loads the newtab configuration from YAML, .env files and
// NEWTAB_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Toolbar lists the folders pinned to the top corners; the rest go to the bottom bar.
type Toolbar struct {
	TopLeft  []string `yaml:"top_left"`
	TopRight []string `yaml:"top_right"`
}

// Log configures logging.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
	File   string `yaml:"file"`   // TUI log file; "" disables TUI logging
}

// Config holds application configuration.
type Config struct {
	Port          string        `yaml:"port"`
	FirefoxDB     string        `yaml:"firefox_db"` // relative to $HOME unless absolute; "" detects
	BookmarksFile string        `yaml:"bookmarks_file"`
	HistoryFile   string        `yaml:"history_file"` // used when no places database is found
	StaticDir     string        `yaml:"static_dir"`
	HistoryLimit  int           `yaml:"history_limit"`
	SearchURL     string        `yaml:"search_url"`
	SuggestURL    string        `yaml:"suggest_url"`
	Debounce      time.Duration `yaml:"debounce"`
	AutoNavigate  time.Duration `yaml:"auto_navigate"`
	Toolbar       Toolbar       `yaml:"toolbar"`
	Log           Log           `yaml:"log"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Port:          ":42069",
		BookmarksFile: "~/.config/newtab/bookmarks.json",
		HistoryFile:   "~/.config/newtab/history.json",
		StaticDir:     "~/.config/newtab/static",
		HistoryLimit:  15,
		SearchURL:     "https://google.com/search?q=%s",
		SuggestURL:    "https://suggestqueries.google.com/complete/search?client=firefox&q=",
		Debounce:      10 * time.Millisecond,
		AutoNavigate:  200 * time.Millisecond,
		Toolbar: Toolbar{
			TopLeft:  []string{"localhost", "trend", "git"},
			TopRight: []string{"google", "x"},
		},
		Log: Log{
			Level:  "info",
			Format: "console",
			File:   "~/.local/state/newtab/newtab.log",
		},
	}
}

// DefaultPath returns the default config path: ~/.config/newtab/config.yaml
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "newtab", "config.yaml"), nil
}

// Load reads the YAML file at path on top of Default, applies environment
// overrides, resolves paths and validates the result. A missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	cfg.resolvePaths(homeDir)
	if cfg.FirefoxDB == "" {
		cfg.FirefoxDB = DetectFirefoxDB(homeDir)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE files into the environment without
// overriding variables already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"NEWTAB_PORT":           &c.Port,
		"NEWTAB_FIREFOX_DB":     &c.FirefoxDB,
		"NEWTAB_BOOKMARKS_FILE": &c.BookmarksFile,
		"NEWTAB_HISTORY_FILE":   &c.HistoryFile,
		"NEWTAB_STATIC_DIR":     &c.StaticDir,
		"NEWTAB_SEARCH_URL":     &c.SearchURL,
		"NEWTAB_SUGGEST_URL":    &c.SuggestURL,
		"NEWTAB_LOG_LEVEL":      &c.Log.Level,
		"NEWTAB_LOG_FORMAT":     &c.Log.Format,
		"NEWTAB_LOG_FILE":       &c.Log.File,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("NEWTAB_HISTORY_LIMIT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: NEWTAB_HISTORY_LIMIT: %w", ErrInvalid, err)
		}
		c.HistoryLimit = n
	}
	return nil
}

func (c *Config) resolvePaths(homeDir string) {
	c.FirefoxDB = resolvePath(homeDir, c.FirefoxDB)
	c.BookmarksFile = resolvePath(homeDir, c.BookmarksFile)
	c.HistoryFile = resolvePath(homeDir, c.HistoryFile)
	c.StaticDir = resolvePath(homeDir, c.StaticDir)
	c.Log.File = resolvePath(homeDir, c.Log.File)
}

// resolvePath expands a leading ~ and makes relative paths relative to homeDir.
func resolvePath(homeDir, p string) string {
	switch {
	case p == "":
		return ""
	case p == "~":
		return homeDir
	case strings.HasPrefix(p, "~/"):
		return filepath.Join(homeDir, p[2:])
	case filepath.IsAbs(p):
		return p
	default:
		return filepath.Join(homeDir, p)
	}
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Debounce <= 0 {
		errs = append(errs, fmt.Errorf("%w: debounce must be positive", ErrInvalid))
	}
	if c.AutoNavigate <= 0 {
		errs = append(errs, fmt.Errorf("%w: auto_navigate must be positive", ErrInvalid))
	}
	if c.HistoryLimit <= 0 {
		errs = append(errs, fmt.Errorf("%w: history_limit must be positive", ErrInvalid))
	}
	if !strings.Contains(c.SearchURL, "%s") {
		errs = append(errs, fmt.Errorf("%w: search_url must contain %%s", ErrInvalid))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: log.format must be console or json", ErrInvalid))
	}
	return errors.Join(errs...)
}
