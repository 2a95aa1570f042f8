package tui

import (
	"github.com/nikbrunner/newtab/internal/navigate"
	"github.com/nikbrunner/newtab/internal/search"
)

// ItemKind distinguishes the rows of the result list.
type ItemKind int

const (
	ItemBookmark ItemKind = iota
	ItemHistory
	ItemSuggestion
	ItemFallback
)

// Item is a result row prepared for rendering.
type Item struct {
	Kind      ItemKind
	Title     string
	Positions []int
	Label     string
	URL       string
}

// newItem prepares a result for rendering.
func newItem(r search.Result, resolver *navigate.Resolver) Item {
	dest := resolver.Resolve(r)
	item := Item{
		Title:     r.Title(),
		Positions: r.Highlight(),
		Label:     dest.Label,
		URL:       dest.URL,
	}

	switch r.(type) {
	case *search.BookmarkResult:
		item.Kind = ItemBookmark
	case *search.HistoryResult:
		item.Kind = ItemHistory
	case *search.SuggestionResult:
		item.Kind = ItemSuggestion
	}
	return item
}

// fallbackItem is the web search row for query.
func fallbackItem(query string, resolver *navigate.Resolver) Item {
	dest := resolver.Fallback(query)
	return Item{
		Kind:  ItemFallback,
		Title: query,
		Label: dest.Label,
		URL:   dest.URL,
	}
}

// IsSearch reports whether opening the row runs a web search.
func (i Item) IsSearch() bool {
	return i.Kind == ItemSuggestion || i.Kind == ItemFallback
}
