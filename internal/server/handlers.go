package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/nikbrunner/newtab/internal/model"
	"github.com/nikbrunner/newtab/internal/omnibox"
	"github.com/nikbrunner/newtab/internal/search"
)

// ErrUnknownFolder is returned for a folder parameter outside the folder set.
var ErrUnknownFolder = errors.New("unknown folder")

type searchItem struct {
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Label     string `json:"label"`
	Folder    string `json:"folder,omitempty"`
	Keyword   string `json:"keyword,omitempty"`
	Positions []int  `json:"positions"`
	Exact     bool   `json:"exact,omitempty"`
}

type searchResponse struct {
	Query           string       `json:"query"`
	Folder          string       `json:"folder,omitempty"`
	Items           []searchItem `json:"items"`
	Fallback        string       `json:"fallback,omitempty"`
	Selected        int          `json:"selected"`
	Highlight       bool         `json:"highlight"`
	HighlightFolder string       `json:"highlight_folder,omitempty"`
}

func (s *Server) handleBookmarks(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := s.loadBookmarks(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, bookmarks)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.history.History(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.logger.Error().Err(err).Msg("history query failed")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleSuggest answers with a bare list of completion strings. Failures
// answer with an empty list.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	out := []string{}

	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusOK, out)
		return
	}

	suggestions, err := s.suggest.Suggestions(r.Context(), query)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("suggestion fetch failed")
		writeJSON(w, http.StatusOK, out)
		return
	}
	for _, sg := range suggestions {
		out = append(out, sg.Title)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	folder := r.URL.Query().Get("folder")

	bookmarks, err := s.loadBookmarks(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if folder != "" && !slices.Contains(model.FolderSet(bookmarks), folder) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %q", ErrUnknownFolder, folder))
		return
	}

	v := omnibox.Lookup(r.Context(), omnibox.LookupParams{
		Bookmarks:   bookmarks,
		History:     s.history,
		Suggestions: s.suggest,
		Folder:      folder,
		Query:       query,
		Logger:      s.logger,
	})

	resp := searchResponse{
		Query:           query,
		Folder:          folder,
		Items:           make([]searchItem, 0, len(v.Items)),
		Selected:        v.Selected,
		Highlight:       v.Highlight,
		HighlightFolder: v.HighlightFolder,
	}
	if v.HasFallback() {
		resp.Fallback = s.resolver.Fallback(query).URL
	}
	for _, item := range v.Items {
		resp.Items = append(resp.Items, s.toItem(item))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) toItem(r search.Result) searchItem {
	dest := s.resolver.Resolve(r)
	item := searchItem{
		Title:     r.Title(),
		URL:       dest.URL,
		Label:     dest.Label,
		Positions: r.Highlight(),
	}
	if item.Positions == nil {
		item.Positions = []int{}
	}

	switch r := r.(type) {
	case *search.BookmarkResult:
		item.Kind = "bookmark"
		item.Folder = r.Bookmark.Folder
		item.Keyword = r.Bookmark.Keyword
		item.Exact = r.Exact
	case *search.HistoryResult:
		item.Kind = "history"
	case *search.SuggestionResult:
		item.Kind = "suggested"
	}
	return item
}

func (s *Server) loadBookmarks(r *http.Request) ([]model.Bookmark, error) {
	if s.storage == nil {
		return []model.Bookmark{}, nil
	}
	store, err := s.storage.Load(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load bookmarks")
		return nil, fmt.Errorf("failed to load bookmarks: %w", err)
	}
	if store.Bookmarks == nil {
		return []model.Bookmark{}, nil
	}
	return store.Bookmarks, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
