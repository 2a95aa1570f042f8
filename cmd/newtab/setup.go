package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog"

	"github.com/nikbrunner/newtab/internal/config"
	"github.com/nikbrunner/newtab/internal/logging"
	"github.com/nikbrunner/newtab/internal/model"
	"github.com/nikbrunner/newtab/internal/navigate"
	"github.com/nikbrunner/newtab/internal/omnibox"
	"github.com/nikbrunner/newtab/internal/server"
	"github.com/nikbrunner/newtab/internal/source"
	"github.com/nikbrunner/newtab/internal/storage"
)

// app bundles the configuration and logger every command starts from.
type app struct {
	cfg    config.Config
	logger zerolog.Logger
	close  func()
}

// logTarget selects where a command writes its log.
type logTarget int

const (
	logStderr logTarget = iota
	logFile             // the terminal belongs to the TUI
)

func setup(target logTarget) (*app, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	if err := config.LoadDotEnv(".env", filepath.Join(home, ".config", "newtab", ".env")); err != nil {
		return nil, err
	}

	path := configPath
	if path == "" {
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	lc := logging.DefaultConfig()
	lc.Level = level
	lc.Format = cfg.Log.Format

	closeLog := func() {}
	if target == logFile {
		lc.Output = io.Discard
		if cfg.Log.File != "" {
			f, err := logging.OpenFile(cfg.Log.File)
			if err != nil {
				return nil, err
			}
			lc.Output = f
			closeLog = func() { _ = f.Close() }
		}
	}

	logger := logging.New(lc)
	logger.Debug().Str("config", path).Str("places", cfg.FirefoxDB).Msg("config loaded")

	return &app{cfg: cfg, logger: logger, close: closeLog}, nil
}

// storage opens the places database when one is configured or detected,
// otherwise the JSON bookmarks file.
func (a *app) storage() (storage.Storage, error) {
	return storage.OpenStorage(a.cfg.FirefoxDB, a.cfg.BookmarksFile, a.cfg.HistoryLimit)
}

// bookmarks loads the bookmark list. A broken source leaves the page usable
// for history and search, so failures are logged and yield no bookmarks.
func (a *app) bookmarks(ctx context.Context) []model.Bookmark {
	store, err := a.storage()
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to open bookmarks")
		return nil
	}
	s, err := store.Load(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to load bookmarks")
		return nil
	}
	a.logger.Debug().Int("count", len(s.Bookmarks)).Msg("bookmarks loaded")
	return s.Bookmarks
}

// history returns the places database history, or the static history file
// when no database exists. It returns nil when neither is available.
func (a *app) history() omnibox.HistorySource {
	if a.cfg.FirefoxDB != "" {
		places, err := source.NewPlaces(a.cfg.FirefoxDB, a.cfg.HistoryLimit)
		if err == nil {
			return places
		}
		if !errors.Is(err, source.ErrNoPlacesDB) {
			a.logger.Warn().Err(err).Msg("failed to open places database")
		}
	}

	static, err := source.LoadStaticHistory(a.cfg.HistoryFile, a.cfg.HistoryLimit)
	if err != nil {
		a.logger.Debug().Err(err).Str("file", a.cfg.HistoryFile).Msg("no history available")
		return nil
	}
	return static
}

func (a *app) suggestions() omnibox.SuggestionSource {
	return source.NewSuggest(a.cfg.SuggestURL, nil)
}

func (a *app) resolver() *navigate.Resolver {
	return navigate.NewResolver(a.cfg.SearchURL)
}

// unknownFolder reports folder when it is set but not among bookmarks.
func unknownFolder(bookmarks []model.Bookmark, folder string) error {
	if folder == "" {
		return nil
	}
	if slices.Contains(model.FolderSet(bookmarks), folder) {
		return nil
	}
	return fmt.Errorf("%w: %q", server.ErrUnknownFolder, folder)
}
