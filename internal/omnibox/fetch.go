package omnibox

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nikbrunner/newtab/internal/model"
	"github.com/nikbrunner/newtab/internal/search"
)

// Fetch queries history and suggestions concurrently and returns once both
// are done. A failing source is logged and yields an empty set. An empty
// query skips the suggestion source.
func Fetch(ctx context.Context, history HistorySource, suggest SuggestionSource, query string, logger zerolog.Logger) ([]model.HistoryEntry, []model.Suggestion) {
	var (
		entries     []model.HistoryEntry
		suggestions []model.Suggestion
		g           errgroup.Group
	)

	g.Go(func() error {
		got, err := history.History(ctx, query)
		if err != nil {
			logger.Warn().Err(err).Str("query", query).Msg("history fetch failed")
			return nil
		}
		entries = got
		return nil
	})

	g.Go(func() error {
		if query == "" {
			return nil
		}
		got, err := suggest.Suggestions(ctx, query)
		if err != nil {
			logger.Warn().Err(err).Str("query", query).Msg("suggestion fetch failed")
			return nil
		}
		suggestions = got
		return nil
	})

	_ = g.Wait()
	return entries, suggestions
}

// LookupParams holds the inputs of a one-shot search.
type LookupParams struct {
	Bookmarks   []model.Bookmark
	History     HistorySource
	Suggestions SuggestionSource
	Folder      string
	Query       string
	Logger      zerolog.Logger
}

// Lookup returns the view a session settles on for query in folder once
// enrichment has finished. An exact keyword match skips the fetch.
func Lookup(ctx context.Context, p LookupParams) View {
	if p.History == nil {
		p.History = HistoryFunc(noHistory)
	}
	if p.Suggestions == nil {
		p.Suggestions = SuggestionFunc(noSuggestions)
	}

	matches := search.SearchBookmarks(p.Bookmarks, p.Folder, p.Query)

	var items []search.Result
	if search.IsExact(matches) {
		items = []search.Result{matches[0]}
	} else {
		history, suggestions := Fetch(ctx, p.History, p.Suggestions, p.Query, p.Logger)
		items = search.Blend(search.BlendParams{
			Bookmarks:    matches,
			History:      history,
			Suggestions:  suggestions,
			Query:        p.Query,
			FolderActive: p.Folder != "",
		})
	}

	v := View{
		Items:        items,
		Query:        p.Query,
		Selected:     InitialSelection(p.Query, len(matches), len(items)),
		ActiveFolder: p.Folder,
		Visible:      p.Query != "" || p.Folder != "",
	}
	v.Highlight, v.HighlightFolder = HighlightMatch(items, p.Query)
	return v
}
