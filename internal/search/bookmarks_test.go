package search

import (
	"fmt"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/newtab/internal/model"
)

func TestSearchBookmarks_ExactKeywordShortCircuit(t *testing.T) {
	bookmarks := []model.Bookmark{
		{Keyword: "gh", URL: "https://github.com", Folder: "git"},
		{Title: "GitHub", URL: "https://x.com", Folder: "git"},
	}

	results := SearchBookmarks(bookmarks, "", "gh")

	assert.Assert(t, is.Len(results, 1))
	assert.Equal(t, results[0].Bookmark.URL, "https://github.com")
	assert.Assert(t, results[0].Exact)
	assert.Assert(t, IsExact(results))
}

func TestSearchBookmarks_KeywordIsCaseSensitiveForExact(t *testing.T) {
	bookmarks := []model.Bookmark{
		{Title: "GitHub", Keyword: "GH", URL: "https://github.com"},
	}

	results := SearchBookmarks(bookmarks, "", "gh")

	assert.Assert(t, is.Len(results, 1))
	assert.Assert(t, !results[0].Exact)
	assert.Equal(t, results[0].Field, FieldKeyword)
	assert.Equal(t, results[0].Score, 75)
}

func TestSearchBookmarks_FolderScoping(t *testing.T) {
	bookmarks := []model.Bookmark{
		{Title: "GitHub", URL: "https://github.com", Folder: "git"},
		{Title: "GitLab", URL: "https://gitlab.com", Folder: "git"},
		{Title: "Timeline", URL: "https://x.com/home", Folder: "x"},
	}

	scoped := SearchBookmarks(bookmarks, "git", "x")
	assert.Assert(t, is.Len(scoped, 0))

	scoped = SearchBookmarks(bookmarks, "git", "gi")
	assert.Assert(t, is.Len(scoped, 2))
	for _, r := range scoped {
		assert.Equal(t, r.Bookmark.Folder, "git")
	}

	// Unscoped, the folder name alone matches.
	unscoped := SearchBookmarks(bookmarks, "", "x")
	assert.Assert(t, is.Len(unscoped, 1))
	assert.Equal(t, unscoped[0].Field, FieldFolder)
	assert.Equal(t, unscoped[0].Bookmark.Title, "Timeline")
}

func TestSearchBookmarks_EmptyQuery(t *testing.T) {
	var bookmarks []model.Bookmark
	for i := range 12 {
		bookmarks = append(bookmarks, model.Bookmark{
			Title:  fmt.Sprintf("Page %d", i),
			URL:    fmt.Sprintf("https://example.com/%d", i),
			Folder: "docs",
		})
	}
	bookmarks = append(bookmarks, model.Bookmark{Title: "Other", URL: "https://other.com", Folder: "misc"})

	assert.Assert(t, is.Len(SearchBookmarks(bookmarks, "", ""), 0))

	listing := SearchBookmarks(bookmarks, "docs", "")
	assert.Assert(t, is.Len(listing, MaxFolderListing))
	for i, r := range listing {
		assert.Equal(t, r.Bookmark.Title, fmt.Sprintf("Page %d", i))
		assert.Equal(t, r.Score, 0)
		assert.Equal(t, r.Field, FieldNone)
	}
}

func TestSearchBookmarks_CappedAndSorted(t *testing.T) {
	var bookmarks []model.Bookmark
	for i := range 10 {
		bookmarks = append(bookmarks, model.Bookmark{
			Title: fmt.Sprintf("React Router Documentation %d", i),
			URL:   fmt.Sprintf("https://reactrouter.com/%d", i),
		})
	}
	bookmarks = append(bookmarks, model.Bookmark{Title: "Router", URL: "https://router.example.com"})

	results := SearchBookmarks(bookmarks, "", "router")

	assert.Assert(t, is.Len(results, MaxBookmarkResults))
	assert.Equal(t, results[0].Bookmark.Title, "Router")
	for i := 1; i < len(results); i++ {
		assert.Assert(t, results[i-1].Score >= results[i].Score)
	}
	// Equal scores keep input order.
	assert.Equal(t, results[1].Bookmark.Title, "React Router Documentation 0")
	assert.Equal(t, results[2].Bookmark.Title, "React Router Documentation 1")
}

func TestSearchBookmarks_FolderIsFallbackOnly(t *testing.T) {
	bookmarks := []model.Bookmark{
		{Title: "Big Orange", URL: "https://orange.example.com", Folder: "go"},
		{Title: "Zed", URL: "https://zed.dev", Folder: "golang"},
		{Title: "Zed", URL: "https://zed.example.com", Folder: "abcdefgh"},
	}

	results := SearchBookmarks(bookmarks, "", "go")

	assert.Assert(t, is.Len(results, 2))
	// The folder match scores higher but is ignored.
	assert.Equal(t, results[0].Bookmark.URL, "https://zed.dev")
	assert.Equal(t, results[0].Field, FieldFolder)
	assert.Equal(t, results[0].Score, 25)
	assert.Equal(t, results[1].Bookmark.URL, "https://orange.example.com")
	assert.Equal(t, results[1].Field, FieldTitle)
	assert.Equal(t, results[1].Score, 9)

	// Weak folder matches are rejected.
	assert.Assert(t, is.Len(SearchBookmarks(bookmarks, "", "h"), 0))
}

func TestSearchBookmarks_KeywordBeatsEqualTitle(t *testing.T) {
	bookmarks := []model.Bookmark{
		{Title: "GitHub", Keyword: "gh", URL: "https://github.com"},
	}

	results := SearchBookmarks(bookmarks, "", "g")
	assert.Assert(t, is.Len(results, 1))
	assert.Equal(t, results[0].Field, FieldKeyword)
	assert.Equal(t, results[0].Score, 22)

	results = SearchBookmarks(bookmarks, "", "gith")
	assert.Assert(t, is.Len(results, 1))
	assert.Equal(t, results[0].Field, FieldTitle)
	assert.DeepEqual(t, results[0].Highlight(), []int{0, 1, 2, 3})
}

func TestSearchBookmarks_MatchesCleanedTitle(t *testing.T) {
	bookmarks := []model.Bookmark{
		{Title: "Dashboard (staging)", URL: "https://dash.example.com"},
	}

	assert.Assert(t, is.Len(SearchBookmarks(bookmarks, "", "staging"), 0))

	results := SearchBookmarks(bookmarks, "", "dash")
	assert.Assert(t, is.Len(results, 1))
	assert.Equal(t, results[0].Title(), "Dashboard")
}
