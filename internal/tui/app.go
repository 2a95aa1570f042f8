package tui

import (
	"context"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/nikbrunner/newtab/internal/loop"
	"github.com/nikbrunner/newtab/internal/model"
	"github.com/nikbrunner/newtab/internal/navigate"
	"github.com/nikbrunner/newtab/internal/omnibox"
	"github.com/nikbrunner/newtab/internal/tui/layout"
)

// viewMsg carries a session render into the program.
type viewMsg struct {
	view omnibox.View
}

// navigateMsg carries a session commit into the program.
type navigateMsg struct {
	dest navigate.Destination
}

// openedMsg reports the result of opening a destination.
type openedMsg struct {
	dest navigate.Destination
	err  error
}

// copiedMsg reports the result of copying a URL.
type copiedMsg struct {
	url string
	err error
}

// events forwards session callbacks, which run on the event loop, to the
// program. Sends are dropped once the app quits.
type events struct {
	ch   chan tea.Msg
	done chan struct{}
	once sync.Once
}

func newEvents() *events {
	return &events{
		ch:   make(chan tea.Msg, 64),
		done: make(chan struct{}),
	}
}

func (e *events) send(msg tea.Msg) {
	select {
	case e.ch <- msg:
	case <-e.done:
	}
}

func (e *events) close() {
	e.once.Do(func() { close(e.done) })
}

// App is the main bubbletea model for the start page. It owns an omnibox
// session that runs on the scheduler; every call into the session is posted.
type App struct {
	session  *omnibox.Session
	post     func(func())
	events   *events
	resolver *navigate.Resolver
	folders  []string
	toolbar  omnibox.Toolbar

	open   func(ctx context.Context, url string) error
	copy   func(text string) error
	logger zerolog.Logger

	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	input     textinput.Model
	view      omnibox.View
	status    string
	statusErr bool

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Bookmarks   []model.Bookmark
	History     omnibox.HistorySource
	Suggestions omnibox.SuggestionSource
	Resolver    *navigate.Resolver
	Scheduler   loop.Scheduler

	// TopLeft and TopRight are the folders pinned to the top toolbar.
	TopLeft  []string
	TopRight []string

	Debounce     time.Duration
	AutoNavigate time.Duration

	// Query is typed into the input on start.
	Query string

	Open   func(ctx context.Context, url string) error // defaults to navigate.Open
	Copy   func(text string) error                     // defaults to the system clipboard
	Logger zerolog.Logger

	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	resolver := params.Resolver
	if resolver == nil {
		resolver = navigate.NewResolver("")
	}

	open := params.Open
	if open == nil {
		open = navigate.Open
	}

	copyFn := params.Copy
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	ev := newEvents()
	session := omnibox.New(omnibox.Params{
		Bookmarks:    params.Bookmarks,
		History:      params.History,
		Suggestions:  params.Suggestions,
		Scheduler:    params.Scheduler,
		Resolver:     resolver,
		Render:       func(v omnibox.View) { ev.send(viewMsg{view: v}) },
		Navigate:     func(d navigate.Destination) { ev.send(navigateMsg{dest: d}) },
		Debounce:     params.Debounce,
		AutoNavigate: params.AutoNavigate,
		Logger:       params.Logger,
	})

	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "Search bookmarks, history or the web"
	input.CharLimit = layoutCfg.Input.CharLimit
	input.Width = layoutCfg.Input.Width
	input.SetValue(params.Query)
	input.Focus()

	folders := session.Folders()

	return App{
		session:      session,
		post:         params.Scheduler.Post,
		events:       ev,
		resolver:     resolver,
		folders:      folders,
		toolbar:      omnibox.GroupFolders(folders, params.TopLeft, params.TopRight),
		open:         open,
		copy:         copyFn,
		logger:       params.Logger,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutCfg,
		input:        input,
		view:         omnibox.View{Selected: -1},
		width:        80,
		height:       24,
	}
}

// WithDimensions returns a copy of the app with the given window size.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Snapshot returns the last view rendered by the session.
func (a App) Snapshot() omnibox.View {
	return a.view
}

// Query returns the current input text.
func (a App) Query() string {
	return a.input.Value()
}

// Status returns the status line text.
func (a App) Status() string {
	return a.status
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	query := a.input.Value()
	if query == "" {
		return textinput.Blink
	}

	session := a.session
	a.post(func() { session.Input(query) })
	return textinput.Blink
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case viewMsg:
		a.view = msg.view
		return a, nil

	case navigateMsg:
		a.status = msg.dest.Indicator()
		a.statusErr = false
		return a, a.openCmd(msg.dest)

	case openedMsg:
		if msg.err != nil {
			a.logger.Error().Err(msg.err).Str("url", msg.dest.URL).Msg("failed to open")
			a.status = "open failed: " + msg.err.Error()
			a.statusErr = true
			return a, nil
		}
		a.input.Reset()
		a.send(func(s *omnibox.Session) { s.Reset() })
		return a, nil

	case copiedMsg:
		if msg.err != nil {
			a.status = "copy failed: " + msg.err.Error()
			a.statusErr = true
		} else {
			a.status = "copied " + navigate.Truncate(msg.url, navigate.IndicatorWidth)
			a.statusErr = false
		}
		return a, nil

	case tea.BlurMsg:
		a.send(func(s *omnibox.Session) { s.Blur() })
		return a, nil

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()

	case key.Matches(msg, a.keys.Clear):
		if a.input.Value() == "" && !a.view.Visible {
			return a.quit()
		}
		a.input.Reset()
		a.status = ""
		a.sendKey(omnibox.KeyEscape)
		return a, nil

	case key.Matches(msg, a.keys.Up):
		a.sendKey(omnibox.KeyUp)
		return a, nil

	case key.Matches(msg, a.keys.Down):
		a.sendKey(omnibox.KeyDown)
		return a, nil

	case key.Matches(msg, a.keys.NextFolder):
		a.sendKey(omnibox.KeyTab)
		return a, nil

	case key.Matches(msg, a.keys.PrevFolder):
		a.sendKey(omnibox.KeyShiftTab)
		return a, nil

	case key.Matches(msg, a.keys.Open):
		a.sendKey(omnibox.KeyEnter)
		return a, nil

	case key.Matches(msg, a.keys.YankURL):
		a.send(func(s *omnibox.Session) { s.Keystroke() })
		return a, a.yankCmd()
	}

	prev := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if value := a.input.Value(); value != prev {
		a.send(func(s *omnibox.Session) { s.Input(value) })
	} else {
		a.send(func(s *omnibox.Session) { s.Keystroke() })
	}
	return a, cmd
}

func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return a, nil
	}

	if folder, ok := a.folderAt(msg.X, msg.Y); ok {
		a.send(func(s *omnibox.Session) { s.ToggleFolder(folder) })
		return a, nil
	}
	if row, ok := a.rowAt(msg.Y); ok {
		a.send(func(s *omnibox.Session) { s.Activate(row) })
	}
	return a, nil
}

func (a App) quit() (tea.Model, tea.Cmd) {
	a.send(func(s *omnibox.Session) { s.Close() })
	a.events.close()
	return a, tea.Quit
}

// send runs fn against the session on the event loop.
func (a App) send(fn func(*omnibox.Session)) {
	session := a.session
	a.post(func() { fn(session) })
}

func (a App) sendKey(k omnibox.Key) {
	a.send(func(s *omnibox.Session) { s.Key(k) })
}

func (a App) openCmd(dest navigate.Destination) tea.Cmd {
	open := a.open
	return func() tea.Msg {
		// The opener outlives the command, so it must not share a deadline.
		return openedMsg{dest: dest, err: open(context.Background(), dest.URL)}
	}
}

func (a App) yankCmd() tea.Cmd {
	url, ok := a.selectedURL()
	if !ok {
		return nil
	}
	copyFn := a.copy
	return func() tea.Msg {
		return copiedMsg{url: url, err: copyFn(url)}
	}
}

// selectedURL returns the URL the selected row would open.
func (a App) selectedURL() (string, bool) {
	v := a.view
	switch {
	case v.Selected < 0:
		return "", false
	case v.IsFallback(v.Selected):
		return a.resolver.Fallback(v.Query).URL, true
	case v.Selected < len(v.Items):
		return a.resolver.Resolve(v.Items[v.Selected]).URL, true
	default:
		return "", false
	}
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
