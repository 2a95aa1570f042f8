package omnibox

import (
	"context"

	"github.com/nikbrunner/newtab/internal/model"
)

// HistorySource returns browsing history matching query. An empty query
// returns the most recent entries.
type HistorySource interface {
	History(ctx context.Context, query string) ([]model.HistoryEntry, error)
}

// SuggestionSource returns search engine completions for query.
type SuggestionSource interface {
	Suggestions(ctx context.Context, query string) ([]model.Suggestion, error)
}

// HistoryFunc adapts a function to HistorySource.
type HistoryFunc func(ctx context.Context, query string) ([]model.HistoryEntry, error)

// History calls f.
func (f HistoryFunc) History(ctx context.Context, query string) ([]model.HistoryEntry, error) {
	return f(ctx, query)
}

// SuggestionFunc adapts a function to SuggestionSource.
type SuggestionFunc func(ctx context.Context, query string) ([]model.Suggestion, error)

// Suggestions calls f.
func (f SuggestionFunc) Suggestions(ctx context.Context, query string) ([]model.Suggestion, error) {
	return f(ctx, query)
}

func noHistory(context.Context, string) ([]model.HistoryEntry, error) { return nil, nil }

func noSuggestions(context.Context, string) ([]model.Suggestion, error) { return nil, nil }
