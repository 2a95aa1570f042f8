// Package search ranks bookmarks and blends them with history and
// search engine suggestions into one result list.
package search

import (
	"sort"

	"github.com/nikbrunner/newtab/internal/match"
	"github.com/nikbrunner/newtab/internal/model"
)

const (
	// MaxBookmarkResults caps a ranked bookmark search.
	MaxBookmarkResults = 8
	// MaxFolderListing caps the unscored listing of an active folder.
	MaxFolderListing = 10

	// minFolderScore is the score a folder name match must exceed.
	minFolderScore = 10
)

// SearchBookmarks ranks bookmarks against query.
//
// A non-empty activeFolder restricts the pool to that folder and disables
// folder name matching. A keyword equal to the query short-circuits all
// ranking and yields a single exact result.
func SearchBookmarks(bookmarks []model.Bookmark, activeFolder, query string) []*BookmarkResult {
	pool := bookmarks
	if activeFolder != "" {
		pool = make([]model.Bookmark, 0, len(bookmarks))
		for _, b := range bookmarks {
			if b.Folder == activeFolder {
				pool = append(pool, b)
			}
		}
	}

	if query == "" {
		if activeFolder == "" {
			return nil
		}
		n := min(len(pool), MaxFolderListing)
		results := make([]*BookmarkResult, n)
		for i := range n {
			results[i] = &BookmarkResult{Bookmark: pool[i]}
		}
		return results
	}

	for _, b := range pool {
		if b.HasKeyword() && b.Keyword == query {
			return []*BookmarkResult{{Bookmark: b, Exact: true, Field: FieldKeyword}}
		}
	}

	var results []*BookmarkResult
	for _, b := range pool {
		if r := rankBookmark(b, activeFolder, query); r != nil {
			results = append(results, r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > MaxBookmarkResults {
		results = results[:MaxBookmarkResults]
	}
	return results
}

// rankBookmark returns the best match of b over keyword, title and folder,
// or nil when nothing matches.
func rankBookmark(b model.Bookmark, activeFolder, query string) *BookmarkResult {
	var best *BookmarkResult

	if b.HasKeyword() {
		if m, ok := match.Match(b.Keyword, query); ok {
			best = &BookmarkResult{Bookmark: b, Score: m.Score, Field: FieldKeyword, Positions: m.Positions}
		}
	}

	if m, ok := match.Match(Clean(b.Title), query); ok && (best == nil || m.Score > best.Score) {
		best = &BookmarkResult{Bookmark: b, Score: m.Score, Field: FieldTitle, Positions: m.Positions}
	}

	// A folder match only stands in when keyword and title did not match at
	// all, whatever the scores.
	if activeFolder == "" && best == nil {
		if m, ok := match.Match(b.Folder, query); ok && m.Score > minFolderScore {
			best = &BookmarkResult{Bookmark: b, Score: m.Score, Field: FieldFolder, Positions: m.Positions}
		}
	}

	return best
}
