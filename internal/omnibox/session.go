// Package omnibox drives the search box: it reacts to input and keys,
// renders blended results, enriches them with history and suggestions in
// the background and commits to a destination.
//
// A Session is not safe for concurrent use. Every method, and every task
// the session schedules, runs on its loop.Scheduler.
package omnibox

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nikbrunner/newtab/internal/loop"
	"github.com/nikbrunner/newtab/internal/model"
	"github.com/nikbrunner/newtab/internal/navigate"
	"github.com/nikbrunner/newtab/internal/search"
)

const (
	// DefaultDebounce is the delay before history and suggestions are fetched.
	DefaultDebounce = 10 * time.Millisecond
	// DefaultAutoNavigate is the delay before an exact keyword match opens.
	DefaultAutoNavigate = 200 * time.Millisecond
)

// Key is a navigation key handled by the session.
type Key int

const (
	KeyDown Key = iota + 1
	KeyUp
	KeyTab
	KeyShiftTab
	KeyEnter
	KeyEscape
)

// Params holds the dependencies of a Session.
type Params struct {
	Bookmarks   []model.Bookmark
	History     HistorySource
	Suggestions SuggestionSource
	Scheduler   loop.Scheduler
	Resolver    *navigate.Resolver

	// Render receives a new view after every change.
	Render func(View)

	// Navigate receives the destination of a commit.
	Navigate func(navigate.Destination)

	Debounce     time.Duration
	AutoNavigate time.Duration
	Logger       zerolog.Logger
}

// Session owns the omnibox state.
type Session struct {
	bookmarks []model.Bookmark
	folders   []string

	history   HistorySource
	suggest   SuggestionSource
	scheduler loop.Scheduler
	resolver  *navigate.Resolver
	render    func(View)
	navigate  func(navigate.Destination)

	debounce     time.Duration
	autoNavigate time.Duration
	logger       zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	query        string
	activeFolder string
	selected     int
	matches      []*search.BookmarkResult
	items        []search.Result

	historyResults    []model.HistoryEntry
	suggestionResults []model.Suggestion

	// generation invalidates enrichment started before the last change.
	generation   uint64
	enrichTimer  loop.Handle
	autoNavTimer loop.Handle
}

// New creates a session over a fixed bookmark collection.
func New(p Params) *Session {
	if p.History == nil {
		p.History = HistoryFunc(noHistory)
	}
	if p.Suggestions == nil {
		p.Suggestions = SuggestionFunc(noSuggestions)
	}
	if p.Resolver == nil {
		p.Resolver = navigate.NewResolver("")
	}
	if p.Debounce <= 0 {
		p.Debounce = DefaultDebounce
	}
	if p.AutoNavigate <= 0 {
		p.AutoNavigate = DefaultAutoNavigate
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Session{
		bookmarks:    p.Bookmarks,
		folders:      model.FolderSet(p.Bookmarks),
		history:      p.History,
		suggest:      p.Suggestions,
		scheduler:    p.Scheduler,
		resolver:     p.Resolver,
		render:       p.Render,
		navigate:     p.Navigate,
		debounce:     p.Debounce,
		autoNavigate: p.AutoNavigate,
		logger:       p.Logger,
		ctx:          ctx,
		cancel:       cancel,
		selected:     -1,
	}
}

// Close cancels pending timers and in-flight fetches.
func (s *Session) Close() {
	s.interrupt()
	s.cancel()
}

// Folders returns the sorted folder set.
func (s *Session) Folders() []string {
	return slices.Clone(s.folders)
}

// View returns the current state for rendering.
func (s *Session) View() View {
	v := View{
		Items:        slices.Clone(s.items),
		Query:        s.query,
		Selected:     s.selected,
		ActiveFolder: s.activeFolder,
		Visible:      s.query != "" || s.activeFolder != "",
	}
	v.Highlight, v.HighlightFolder = HighlightMatch(s.items, s.query)
	return v
}

// Input sets the query text.
func (s *Session) Input(text string) {
	s.interrupt()
	s.query = strings.TrimSpace(text)
	s.update()
}

// Key handles a navigation key and reports whether it was consumed.
func (s *Session) Key(k Key) bool {
	s.cancelAutoNavigate()

	total := len(s.items)
	if s.query != "" {
		total++
	}

	switch k {
	case KeyDown:
		if total == 0 {
			return true
		}
		s.selected = (s.selected + 1) % total
		s.emit()
	case KeyUp:
		if total == 0 {
			return true
		}
		if s.selected <= 0 {
			s.selected = total - 1
		} else {
			s.selected--
		}
		s.emit()
	case KeyTab:
		s.cycleFolder(1)
	case KeyShiftTab:
		s.cycleFolder(-1)
	case KeyEnter:
		s.commit()
	case KeyEscape:
		s.Reset()
	default:
		return false
	}
	return true
}

// Keystroke records a key press that changes neither the query nor the
// selection. Like every key press it cancels a pending auto-navigation.
func (s *Session) Keystroke() {
	s.cancelAutoNavigate()
}

// Blur handles focus loss, which leaves folder scoped mode.
func (s *Session) Blur() {
	s.cancelAutoNavigate()
	if s.activeFolder == "" {
		return
	}
	s.interrupt()
	s.activeFolder = ""
	s.update()
}

// ToggleFolder activates folder, or clears it when already active.
// Unknown folders are ignored.
func (s *Session) ToggleFolder(folder string) {
	if !slices.Contains(s.folders, folder) {
		return
	}
	s.interrupt()
	if s.activeFolder == folder {
		s.activeFolder = ""
	} else {
		s.activeFolder = folder
	}
	s.update()
}

// Activate selects row i and commits, as a pointer click does.
func (s *Session) Activate(i int) {
	total := len(s.items)
	if s.query != "" {
		total++
	}
	if i < 0 || i >= total {
		return
	}
	s.cancelAutoNavigate()
	s.selected = i
	s.commit()
}

// Reset clears the query, folder, selection and fetched results.
func (s *Session) Reset() {
	s.interrupt()
	s.query = ""
	s.activeFolder = ""
	s.selected = -1
	s.matches = nil
	s.items = nil
	s.historyResults = nil
	s.suggestionResults = nil
	s.emit()
}

func (s *Session) cycleFolder(dir int) {
	n := len(s.folders)
	idx := slices.Index(s.folders, s.activeFolder)
	next := (idx + dir + n + 1) % (n + 1)

	s.interrupt()
	if next < n {
		s.activeFolder = s.folders[next]
	} else {
		s.activeFolder = ""
	}
	s.update()
}

// update searches, renders synchronously and then either arms the
// auto-navigate timer or schedules enrichment.
func (s *Session) update() {
	s.matches = search.SearchBookmarks(s.bookmarks, s.activeFolder, s.query)

	if search.IsExact(s.matches) {
		exact := s.matches[0]
		s.items = []search.Result{exact}
		s.selected = 0
		s.emit()

		s.autoNavTimer = s.scheduler.Schedule(s.autoNavigate, func() {
			s.autoNavTimer = 0
			s.logger.Debug().Str("keyword", exact.Bookmark.Keyword).Msg("auto-navigating")
			s.goTo(s.resolver.Resolve(exact))
		})
		return
	}

	s.blend()
	s.emit()

	gen, query := s.generation, s.query
	s.enrichTimer = s.scheduler.Schedule(s.debounce, func() {
		s.enrichTimer = 0
		s.enrich(gen, query)
	})
}

func (s *Session) blend() {
	s.items = search.Blend(search.BlendParams{
		Bookmarks:    s.matches,
		History:      s.historyResults,
		Suggestions:  s.suggestionResults,
		Query:        s.query,
		FolderActive: s.activeFolder != "",
	})

	s.selected = InitialSelection(s.query, len(s.matches), len(s.items))
}

// InitialSelection returns the selected row for a fresh result list. A
// query without bookmark matches lands on the fallback row.
func InitialSelection(query string, bookmarks, items int) int {
	switch {
	case query != "" && bookmarks == 0:
		return items
	case query != "" || items > 0:
		return 0
	default:
		return -1
	}
}

// enrich fetches history and suggestions concurrently and posts the
// results back to the loop once both are done. Failures yield empty sets.
func (s *Session) enrich(gen uint64, query string) {
	ctx := s.ctx
	logger := s.logger

	go func() {
		history, suggestions := Fetch(ctx, s.history, s.suggest, query, logger)
		s.scheduler.Post(func() {
			s.applyEnrichment(gen, history, suggestions)
		})
	}()
}

func (s *Session) applyEnrichment(gen uint64, history []model.HistoryEntry, suggestions []model.Suggestion) {
	if gen != s.generation {
		s.logger.Debug().Uint64("generation", gen).Msg("discarding stale enrichment")
		return
	}

	matches := search.SearchBookmarks(s.bookmarks, s.activeFolder, s.query)
	if search.IsExact(matches) {
		return
	}

	s.historyResults = history
	s.suggestionResults = suggestions
	s.matches = matches
	s.blend()
	s.emit()
}

func (s *Session) commit() {
	switch {
	case search.IsExact(s.matches):
		s.goTo(s.resolver.Resolve(s.matches[0]))
	case s.selected >= 0:
		s.goToRow(s.selected)
	case len(s.items) > 0:
		s.goToRow(0)
	case s.query != "":
		s.goTo(s.resolver.Fallback(s.query))
	}
}

func (s *Session) goToRow(i int) {
	switch {
	case i < len(s.items):
		s.goTo(s.resolver.Resolve(s.items[i]))
	case i == len(s.items) && s.query != "":
		s.goTo(s.resolver.Fallback(s.query))
	}
}

func (s *Session) goTo(dest navigate.Destination) {
	s.interrupt()
	s.logger.Info().Str("url", dest.URL).Str("label", dest.Label).Msg("navigating")
	if s.navigate != nil {
		s.navigate(dest)
	}
}

// interrupt cancels both timers and invalidates in-flight enrichment.
func (s *Session) interrupt() {
	s.generation++
	s.scheduler.Cancel(s.enrichTimer)
	s.enrichTimer = 0
	s.cancelAutoNavigate()
}

func (s *Session) cancelAutoNavigate() {
	s.scheduler.Cancel(s.autoNavTimer)
	s.autoNavTimer = 0
}

func (s *Session) emit() {
	if s.render != nil {
		s.render(s.View())
	}
}
