package omnibox

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/newtab/internal/model"
)

func TestFetch_BothSources(t *testing.T) {
	src := &recorder{
		history:     []model.HistoryEntry{{Title: "Go Tour", URL: "https://go.dev/tour"}},
		suggestions: []model.Suggestion{{Title: "go tour"}},
	}

	history, suggestions := Fetch(context.Background(), src, src, "go", zerolog.Nop())

	assert.Assert(t, is.Len(history, 1))
	assert.Assert(t, is.Len(suggestions, 1))
	assert.DeepEqual(t, src.calls(), []string{"go", "go"})
}

func TestFetch_EmptyQuerySkipsSuggestions(t *testing.T) {
	history := &recorder{history: []model.HistoryEntry{{Title: "Recent", URL: "https://a.dev"}}}
	suggest := &recorder{suggestions: []model.Suggestion{{Title: "unused"}}}

	entries, suggestions := Fetch(context.Background(), history, suggest, "", zerolog.Nop())

	assert.Assert(t, is.Len(entries, 1))
	assert.Assert(t, is.Len(suggestions, 0))
	assert.Assert(t, is.Len(suggest.calls(), 0))
}

func TestFetch_FailureYieldsEmpty(t *testing.T) {
	failing := &recorder{err: errors.New("offline")}
	ok := &recorder{suggestions: []model.Suggestion{{Title: "go vet"}}}

	history, suggestions := Fetch(context.Background(), failing, ok, "go", zerolog.Nop())

	assert.Assert(t, history == nil)
	assert.Assert(t, is.Len(suggestions, 1))
}

func TestLookup(t *testing.T) {
	src := &recorder{
		history:     []model.HistoryEntry{{Title: "Gitea", URL: "https://gitea.io"}},
		suggestions: []model.Suggestion{{Title: "git bisect"}},
	}

	tests := []struct {
		name      string
		folder    string
		query     string
		titles    []string
		selected  int
		highlight bool
		fetches   int
	}{
		{
			name:     "blends all sources",
			query:    "git",
			titles:   []string{"GitHub", "GitLab", "git bisect", "Gitea"},
			selected: 0,
			fetches:  2,
		},
		{
			name:      "exact keyword skips the fetch",
			query:     "gh",
			titles:    []string{"GitHub"},
			selected:  0,
			highlight: true,
		},
		{
			name:     "no bookmarks selects the fallback",
			query:    "bisect",
			titles:   []string{"git bisect", "Gitea"},
			selected: 2,
			fetches:  2,
		},
		{
			name:     "folder listing leaves history out",
			folder:   "git",
			titles:   []string{"GitHub", "GitLab"},
			selected: 0,
			fetches:  1,
		},
		{
			name:     "recent history without a query",
			titles:   []string{"Gitea"},
			selected: 0,
			fetches:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src.queries = nil

			v := Lookup(context.Background(), LookupParams{
				Bookmarks:   testBookmarks,
				History:     src,
				Suggestions: src,
				Folder:      tt.folder,
				Query:       tt.query,
				Logger:      zerolog.Nop(),
			})

			var titles []string
			for _, r := range v.Items {
				titles = append(titles, r.Title())
			}
			assert.DeepEqual(t, titles, tt.titles)
			assert.Equal(t, v.Selected, tt.selected)
			assert.Equal(t, v.Highlight, tt.highlight)
			assert.Equal(t, v.ActiveFolder, tt.folder)
			assert.Equal(t, len(src.calls()), tt.fetches)
		})
	}
}

func TestLookup_NilSources(t *testing.T) {
	v := Lookup(context.Background(), LookupParams{
		Bookmarks: testBookmarks,
		Query:     "timeline",
		Logger:    zerolog.Nop(),
	})

	assert.Assert(t, is.Len(v.Items, 1))
	assert.Equal(t, v.Items[0].Title(), "Timeline")
	assert.Assert(t, v.Highlight)
	assert.Equal(t, v.HighlightFolder, "x")
}
