package model

import "sort"

// Store holds the bookmark collection.
type Store struct {
	Bookmarks []Bookmark `json:"bookmarks"`
}

// NewStore creates an empty Store with initialized slices.
func NewStore() *Store {
	return &Store{
		Bookmarks: []Bookmark{},
	}
}

// AddBookmark appends a bookmark to the store.
func (s *Store) AddBookmark(b Bookmark) {
	s.Bookmarks = append(s.Bookmarks, b)
}

// Folders returns the sorted set of distinct non-empty folder names.
func (s *Store) Folders() []string {
	return FolderSet(s.Bookmarks)
}

// GetBookmarksInFolder returns bookmarks in the given folder.
// Pass "" for bookmarks without a folder.
func (s *Store) GetBookmarksInFolder(folder string) []Bookmark {
	var result []Bookmark
	for _, b := range s.Bookmarks {
		if b.Folder == folder {
			result = append(result, b)
		}
	}
	return result
}

// GetBookmarkByID finds a bookmark by ID, returns nil if not found.
func (s *Store) GetBookmarkByID(id string) *Bookmark {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].ID == id {
			return &s.Bookmarks[i]
		}
	}
	return nil
}

// HasBookmarkURL reports whether a bookmark with the given URL exists.
func (s *Store) HasBookmarkURL(url string) bool {
	for _, b := range s.Bookmarks {
		if b.URL == url {
			return true
		}
	}
	return false
}

// ImportMerge adds bookmarks whose URL is not yet in the store.
// Returns the number of added and skipped bookmarks.
func (s *Store) ImportMerge(bookmarks []Bookmark) (added, skipped int) {
	for _, b := range bookmarks {
		if s.HasBookmarkURL(b.URL) {
			skipped++
			continue
		}
		if b.ID == "" {
			b.ID = GenerateUUID()
		}
		if b.Tags == nil {
			b.Tags = []string{}
		}
		s.Bookmarks = append(s.Bookmarks, b)
		added++
	}
	return added, skipped
}

// FolderSet returns the sorted set of distinct non-empty folders of bookmarks.
func FolderSet(bookmarks []Bookmark) []string {
	seen := make(map[string]bool)
	folders := []string{}
	for _, b := range bookmarks {
		if b.Folder == "" || seen[b.Folder] {
			continue
		}
		seen[b.Folder] = true
		folders = append(folders, b.Folder)
	}
	sort.Strings(folders)
	return folders
}
