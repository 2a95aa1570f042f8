package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/nikbrunner/newtab/internal/model"
)

// StaticHistory serves history from a fixed set of entries. It stands in
// for the places database on machines without Firefox.
type StaticHistory struct {
	entries []model.HistoryEntry
	limit   int
}

// historyText implements fuzzy.Source over titles and URLs.
type historyText []model.HistoryEntry

func (h historyText) String(i int) string {
	return h[i].Title + " " + h[i].URL
}

func (h historyText) Len() int {
	return len(h)
}

// NewStaticHistory returns a source over entries.
func NewStaticHistory(entries []model.HistoryEntry, limit int) *StaticHistory {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &StaticHistory{entries: entries, limit: limit}
}

// LoadStaticHistory reads a JSON array of history entries from path.
// A missing file yields an empty source.
func LoadStaticHistory(path string, limit int) (*StaticHistory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewStaticHistory(nil, limit), nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var entries []model.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse history file: %w", err)
	}
	return NewStaticHistory(entries, limit), nil
}

// History returns the most recent entries for an empty query, otherwise
// the fuzzy matches of title and URL, best first.
func (h *StaticHistory) History(_ context.Context, query string) ([]model.HistoryEntry, error) {
	if query == "" {
		recent := make([]model.HistoryEntry, len(h.entries))
		copy(recent, h.entries)
		sort.SliceStable(recent, func(i, j int) bool {
			return recent[i].LastVisit > recent[j].LastVisit
		})
		return recent[:min(len(recent), h.limit)], nil
	}

	matches := fuzzy.FindFrom(query, historyText(h.entries))

	results := make([]model.HistoryEntry, 0, min(len(matches), h.limit))
	for _, m := range matches {
		if len(results) == h.limit {
			break
		}
		results = append(results, h.entries[m.Index])
	}
	return results, nil
}
