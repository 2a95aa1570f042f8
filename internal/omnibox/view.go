package omnibox

import (
	"strings"

	"github.com/nikbrunner/newtab/internal/search"
)

// View is a snapshot of the session for rendering.
type View struct {
	Items        []search.Result
	Query        string
	Selected     int // -1 for none; len(Items) is the fallback row
	ActiveFolder string

	// Visible is false while there is neither a query nor an active folder.
	Visible bool

	// Highlight marks the input when the first row is an exact keyword
	// match or a bookmark titled exactly like the query.
	Highlight       bool
	HighlightFolder string
}

// Total returns the number of selectable rows, the fallback included.
func (v View) Total() int {
	if v.Query != "" {
		return len(v.Items) + 1
	}
	return len(v.Items)
}

// HasFallback reports whether the view ends in the web search row.
func (v View) HasFallback() bool {
	return v.Query != ""
}

// IsFallback reports whether row i is the web search row.
func (v View) IsFallback(i int) bool {
	return v.Query != "" && i == len(v.Items)
}

// HighlightMatch reports whether the first item is an exact keyword match
// or a bookmark titled like query, and returns its folder.
func HighlightMatch(items []search.Result, query string) (bool, string) {
	if len(items) == 0 {
		return false, ""
	}
	b, ok := items[0].(*search.BookmarkResult)
	if !ok {
		return false, ""
	}
	if b.Exact || strings.EqualFold(b.Title(), query) {
		return true, b.Bookmark.Folder
	}
	return false, ""
}
