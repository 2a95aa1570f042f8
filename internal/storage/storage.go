package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikbrunner/newtab/internal/model"
	"github.com/nikbrunner/newtab/internal/source"
)

// ErrReadOnly is returned when saving to a storage that cannot be written.
var ErrReadOnly = errors.New("storage is read-only")

// Storage defines the interface for loading and persisting bookmarks.
type Storage interface {
	Load(ctx context.Context) (*model.Store, error)
	Save(store *model.Store) error
}

// JSONStorage implements Storage using a JSON file.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the store from the JSON file. Both `{"bookmarks": [...]}` and
// a bare bookmark array are accepted.
// Returns an empty store if the file doesn't exist.
func (s *JSONStorage) Load(_ context.Context) (*model.Store, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewStore(), nil
		}
		return nil, fmt.Errorf("failed to read bookmarks: %w", err)
	}

	var store model.Store
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &store.Bookmarks)
	} else {
		err = json.Unmarshal(data, &store)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks: %w", err)
	}

	// Ensure slices are not nil
	if store.Bookmarks == nil {
		store.Bookmarks = []model.Bookmark{}
	}
	for i := range store.Bookmarks {
		if store.Bookmarks[i].Tags == nil {
			store.Bookmarks[i].Tags = []string{}
		}
	}

	return &store, nil
}

// Save writes the store to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(store *model.Store) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create bookmarks directory: %w", err)
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// PlacesStorage implements Storage over a browser places database.
// It cannot be saved to.
type PlacesStorage struct {
	places *source.Places
}

// NewPlacesStorage wraps places.
func NewPlacesStorage(places *source.Places) *PlacesStorage {
	return &PlacesStorage{places: places}
}

// Load reads every bookmark from the places database.
func (s *PlacesStorage) Load(ctx context.Context) (*model.Store, error) {
	bookmarks, err := s.places.Bookmarks(ctx)
	if err != nil {
		return nil, err
	}
	return &model.Store{Bookmarks: bookmarks}, nil
}

// Save always fails with ErrReadOnly.
func (s *PlacesStorage) Save(*model.Store) error {
	return ErrReadOnly
}

// DefaultBookmarksPath returns the default bookmarks path: ~/.config/newtab/bookmarks.json
func DefaultBookmarksPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "newtab", "bookmarks.json"), nil
}

// OpenStorage opens the appropriate storage backend.
// Prefers the places database if it exists, otherwise falls back to JSON.
func OpenStorage(placesPath, jsonPath string, historyLimit int) (Storage, error) {
	if placesPath != "" {
		places, err := source.NewPlaces(placesPath, historyLimit)
		if err == nil {
			return NewPlacesStorage(places), nil
		}
		if !errors.Is(err, source.ErrNoPlacesDB) {
			return nil, err
		}
	}

	if jsonPath == "" {
		var err error
		if jsonPath, err = DefaultBookmarksPath(); err != nil {
			return nil, err
		}
	}
	return NewJSONStorage(jsonPath), nil
}
