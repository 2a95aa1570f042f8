package search

import "github.com/nikbrunner/newtab/internal/model"

// Field names the bookmark field that produced a match.
type Field int

const (
	FieldNone Field = iota // unscored listing (folder browse)
	FieldKeyword
	FieldTitle
	FieldFolder
)

// String returns the field name.
func (f Field) String() string {
	switch f {
	case FieldKeyword:
		return "keyword"
	case FieldTitle:
		return "title"
	case FieldFolder:
		return "folder"
	default:
		return ""
	}
}

// Result is one row of a result list: a *BookmarkResult, *HistoryResult or
// *SuggestionResult. The set is closed; switch on the concrete type.
type Result interface {
	// Title is the display text that Positions index into.
	Title() string
	// Highlight returns the matched rune positions into Title, nil when none.
	Highlight() []int

	isResult()
}

// BookmarkResult is a ranked bookmark.
type BookmarkResult struct {
	Bookmark  model.Bookmark
	Score     int
	Field     Field
	Positions []int
	Exact     bool // query equals the bookmark keyword verbatim
}

// HistoryResult is a history entry blended into the list.
type HistoryResult struct {
	Entry     model.HistoryEntry
	Positions []int
}

// SuggestionResult is a search engine completion blended into the list.
type SuggestionResult struct {
	Entry     model.Suggestion
	Positions []int
}

// Title returns the cleaned bookmark title.
func (r *BookmarkResult) Title() string { return Clean(r.Bookmark.Title) }

// Highlight returns positions into Title, so only title matches highlight.
func (r *BookmarkResult) Highlight() []int {
	if r.Field != FieldTitle {
		return nil
	}
	return r.Positions
}

func (*BookmarkResult) isResult() {}

func (r *HistoryResult) Title() string { return r.Entry.Title }

func (r *HistoryResult) Highlight() []int { return r.Positions }

func (*HistoryResult) isResult() {}

func (r *SuggestionResult) Title() string { return r.Entry.Title }

func (r *SuggestionResult) Highlight() []int { return r.Positions }

func (*SuggestionResult) isResult() {}

// URL returns the result's URL, "" for suggestions.
func URL(r Result) string {
	switch r := r.(type) {
	case *BookmarkResult:
		return r.Bookmark.URL
	case *HistoryResult:
		return r.Entry.URL
	case *SuggestionResult:
		return ""
	default:
		panic("search: unknown result type")
	}
}

// IsExact reports whether results is a single exact keyword match.
func IsExact(results []*BookmarkResult) bool {
	return len(results) == 1 && results[0].Exact
}
