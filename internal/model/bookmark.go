package model

// Bookmark represents a saved URL with metadata.
// Bookmarks are read-only for the lifetime of a search session.
type Bookmark struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	URL     string   `json:"url"`
	Folder  string   `json:"folder"`            // "" = no folder
	Keyword string   `json:"keyword,omitempty"` // "" = no keyword
	Tags    []string `json:"tags"`
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	Title   string
	URL     string
	Folder  string
	Keyword string
	Tags    []string
}

// NewBookmark creates a Bookmark with a generated UUID.
func NewBookmark(params NewBookmarkParams) Bookmark {
	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	return Bookmark{
		ID:      GenerateUUID(),
		Title:   params.Title,
		URL:     params.URL,
		Folder:  params.Folder,
		Keyword: params.Keyword,
		Tags:    tags,
	}
}

// HasKeyword reports whether the bookmark has a user-assigned keyword.
func (b Bookmark) HasKeyword() bool {
	return b.Keyword != ""
}

// HistoryEntry is a visited page supplied by a history source.
type HistoryEntry struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	VisitCount int    `json:"visit_count"`
	LastVisit  int64  `json:"last_visit"` // unix seconds
}

// Suggestion is a literal query completion from a search engine.
type Suggestion struct {
	Title string `json:"title"`
}
