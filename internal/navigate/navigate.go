// Package navigate turns result rows into destinations and opens them.
package navigate

import (
	"net/url"
	"strings"

	"github.com/nikbrunner/newtab/internal/search"
)

// DefaultSearchURL is the web search used for suggestions and the fallback row.
const DefaultSearchURL = "https://google.com/search?q=%s"

// IndicatorWidth is the longest URL shown by Destination.Indicator.
const IndicatorWidth = 50

// Labels for destinations that carry no folder.
const (
	LabelBookmark  = "bookmark"
	LabelHistory   = "history"
	LabelSuggested = "suggested"
	LabelSearch    = "google"
)

// Destination is where a commit goes, with the label and folder shown while
// the browser loads it.
type Destination struct {
	URL    string
	Label  string
	Folder string
}

// Indicator returns the label followed by the truncated URL.
func (d Destination) Indicator() string {
	return d.Label + " " + Truncate(d.URL, IndicatorWidth)
}

// Resolver maps results to destinations.
type Resolver struct {
	searchURL string
}

// NewResolver returns a Resolver building web searches from searchURL, in
// which %s is replaced by the escaped text. An empty searchURL uses
// DefaultSearchURL.
func NewResolver(searchURL string) *Resolver {
	if searchURL == "" {
		searchURL = DefaultSearchURL
	}
	return &Resolver{searchURL: searchURL}
}

// Resolve returns the destination of a result row.
func (r *Resolver) Resolve(res search.Result) Destination {
	switch res := res.(type) {
	case *search.BookmarkResult:
		label := res.Bookmark.Folder
		if label == "" {
			label = LabelBookmark
		}
		return Destination{URL: res.Bookmark.URL, Label: label, Folder: res.Bookmark.Folder}
	case *search.HistoryResult:
		return Destination{URL: res.Entry.URL, Label: LabelHistory}
	case *search.SuggestionResult:
		return Destination{URL: r.SearchURL(res.Entry.Title), Label: LabelSuggested}
	default:
		panic("navigate: unknown result type")
	}
}

// Fallback returns the web search for the literal query.
func (r *Resolver) Fallback(query string) Destination {
	return Destination{URL: r.SearchURL(query), Label: LabelSearch}
}

// SearchURL returns the web search URL for text.
func (r *Resolver) SearchURL(text string) string {
	return strings.Replace(r.searchURL, "%s", url.QueryEscape(text), 1)
}

// Truncate shortens s to width runes, ending in "..." when cut.
func Truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
