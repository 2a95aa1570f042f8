package search

import (
	"fmt"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/newtab/internal/model"
)

func bookmarkResult(title, url string) *BookmarkResult {
	return &BookmarkResult{Bookmark: model.Bookmark{Title: title, URL: url}, Field: FieldTitle}
}

func TestBlend_Order(t *testing.T) {
	results := Blend(BlendParams{
		Bookmarks:   []*BookmarkResult{bookmarkResult("Go", "https://go.dev")},
		History:     []model.HistoryEntry{{Title: "Go Blog", URL: "https://go.dev/blog"}},
		Suggestions: []model.Suggestion{{Title: "golang generics"}},
		Query:       "go",
	})

	assert.Assert(t, is.Len(results, 3))
	_, ok := results[0].(*BookmarkResult)
	assert.Assert(t, ok, "expected bookmark first, got %T", results[0])
	_, ok = results[1].(*SuggestionResult)
	assert.Assert(t, ok, "expected suggestion second, got %T", results[1])
	_, ok = results[2].(*HistoryResult)
	assert.Assert(t, ok, "expected history last, got %T", results[2])
}

func TestBlend_NoDuplicateURLs(t *testing.T) {
	results := Blend(BlendParams{
		Bookmarks: []*BookmarkResult{
			bookmarkResult("Go", "https://go.dev"),
			bookmarkResult("Go again", "https://go.dev"),
		},
		History: []model.HistoryEntry{
			{Title: "Go visited", URL: "https://go.dev"},
			{Title: "Playground", URL: "https://go.dev/play"},
			{Title: "Playground again", URL: "https://go.dev/play"},
		},
		Query: "go",
	})

	assert.Assert(t, is.Len(results, 2))
	assert.Equal(t, results[0].Title(), "Go")
	assert.Equal(t, results[1].Title(), "Playground")

	seen := map[string]bool{}
	for _, r := range results {
		u := URL(r)
		assert.Assert(t, !seen[u], "duplicate url %s", u)
		seen[u] = true
	}
}

func TestBlend_SuggestionsAreNotDeduplicated(t *testing.T) {
	results := Blend(BlendParams{
		Suggestions: []model.Suggestion{{Title: "go"}, {Title: "go"}},
		Query:       "go",
	})

	assert.Assert(t, is.Len(results, 2))
}

func TestBlend_Caps(t *testing.T) {
	var params BlendParams
	for i := range MaxBookmarkResults {
		params.Bookmarks = append(params.Bookmarks, bookmarkResult(fmt.Sprintf("b%d", i), fmt.Sprintf("https://b.example.com/%d", i)))
	}
	for i := range 7 {
		params.Suggestions = append(params.Suggestions, model.Suggestion{Title: fmt.Sprintf("s%d", i)})
	}
	for i := range 5 {
		params.History = append(params.History, model.HistoryEntry{Title: fmt.Sprintf("h%d", i), URL: fmt.Sprintf("https://h.example.com/%d", i)})
	}

	results := Blend(params)
	assert.Assert(t, is.Len(results, MaxResults))

	var suggestions, history int
	for _, r := range results {
		switch r.(type) {
		case *SuggestionResult:
			suggestions++
		case *HistoryResult:
			history++
		}
	}
	assert.Equal(t, suggestions, 4)
	assert.Equal(t, history, 0)

	params.Bookmarks = params.Bookmarks[:1]
	results = Blend(params)
	assert.Assert(t, is.Len(results, 1+MaxSuggestions+MaxHistory))
}

func TestBlend_FolderActiveDropsHistory(t *testing.T) {
	results := Blend(BlendParams{
		Bookmarks:    []*BookmarkResult{bookmarkResult("GitHub", "https://github.com")},
		History:      []model.HistoryEntry{{Title: "GitLab", URL: "https://gitlab.com"}},
		Suggestions:  []model.Suggestion{{Title: "git rebase"}},
		Query:        "git",
		FolderActive: true,
	})

	assert.Assert(t, is.Len(results, 2))
	for _, r := range results {
		_, isHistory := r.(*HistoryResult)
		assert.Assert(t, !isHistory)
	}
}

func TestBlend_Highlights(t *testing.T) {
	results := Blend(BlendParams{
		History:     []model.HistoryEntry{{Title: "Go Blog", URL: "https://go.dev/blog"}},
		Suggestions: []model.Suggestion{{Title: "golang"}, {Title: "something else"}},
		Query:       "go",
	})

	assert.Assert(t, is.Len(results, 3))
	assert.DeepEqual(t, results[0].Highlight(), []int{0, 1})
	assert.Assert(t, is.Nil(results[1].Highlight()))
	assert.DeepEqual(t, results[2].Highlight(), []int{0, 1})
}

func TestBlend_Empty(t *testing.T) {
	results := Blend(BlendParams{Query: "anything"})
	assert.Assert(t, is.Len(results, 0))
}

func TestURL(t *testing.T) {
	assert.Equal(t, URL(bookmarkResult("Go", "https://go.dev")), "https://go.dev")
	assert.Equal(t, URL(&HistoryResult{Entry: model.HistoryEntry{URL: "https://h.dev"}}), "https://h.dev")
	assert.Equal(t, URL(&SuggestionResult{Entry: model.Suggestion{Title: "go"}}), "")
}
