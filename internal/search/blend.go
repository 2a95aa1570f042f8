package search

import (
	"github.com/nikbrunner/newtab/internal/match"
	"github.com/nikbrunner/newtab/internal/model"
)

const (
	// MaxResults caps the blended list.
	MaxResults = 12
	// MaxSuggestions caps the suggestions taken per blend.
	MaxSuggestions = 5
	// MaxHistory caps the history entries taken per blend.
	MaxHistory = 3
)

// BlendParams holds the inputs of a blend.
type BlendParams struct {
	Bookmarks    []*BookmarkResult
	History      []model.HistoryEntry
	Suggestions  []model.Suggestion
	Query        string
	FolderActive bool
}

// Blend merges bookmarks, suggestions and history, in that order, into one
// list without duplicate URLs. Suggestions carry no URL and are never
// deduplicated. History is left out while a folder is active.
func Blend(params BlendParams) []Result {
	results := make([]Result, 0, MaxResults)
	seen := make(map[string]bool)

	for _, b := range params.Bookmarks {
		if seen[b.Bookmark.URL] {
			continue
		}
		seen[b.Bookmark.URL] = true
		results = append(results, b)
	}

	for _, s := range params.Suggestions[:min(len(params.Suggestions), MaxSuggestions)] {
		results = append(results, &SuggestionResult{
			Entry:     s,
			Positions: highlight(s.Title, params.Query),
		})
	}

	if !params.FolderActive {
		count := 0
		for _, h := range params.History {
			if count >= MaxHistory {
				break
			}
			if seen[h.URL] {
				continue
			}
			seen[h.URL] = true
			results = append(results, &HistoryResult{
				Entry:     h,
				Positions: highlight(h.Title, params.Query),
			})
			count++
		}
	}

	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}

// highlight returns match positions for display; a failed match is no highlight.
func highlight(text, query string) []int {
	if query == "" {
		return nil
	}
	m, ok := match.Match(text, query)
	if !ok {
		return nil
	}
	return m.Positions
}
