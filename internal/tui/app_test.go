package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/newtab/internal/loop"
	"github.com/nikbrunner/newtab/internal/model"
	"github.com/nikbrunner/newtab/internal/omnibox"
	"github.com/nikbrunner/newtab/internal/tui/layout"
)

var testBookmarks = []model.Bookmark{
	{ID: "1", Title: "GitHub", URL: "https://github.com", Folder: "git", Keyword: "gh"},
	{ID: "2", Title: "GitLab", URL: "https://gitlab.com", Folder: "git"},
	{ID: "3", Title: "X", URL: "https://x.com", Folder: "x"},
}

type harness struct {
	app     App
	clock   *loop.Virtual
	opened  []string
	copied  []string
	openErr error
}

func newHarness(t *testing.T, mutate func(*AppParams)) *harness {
	t.Helper()

	h := &harness{clock: loop.NewVirtual()}
	params := AppParams{
		Bookmarks: testBookmarks,
		Scheduler: h.clock,
		TopLeft:   []string{"git"},
		TopRight:  []string{"x"},
		Open: func(_ context.Context, url string) error {
			h.opened = append(h.opened, url)
			return h.openErr
		},
		Copy: func(text string) error {
			h.copied = append(h.copied, text)
			return nil
		},
		Logger: zerolog.Nop(),
	}
	if mutate != nil {
		mutate(&params)
	}

	h.app = NewApp(params).WithDimensions(80, 24)
	return h
}

func (h *harness) update(msg tea.Msg) tea.Cmd {
	m, cmd := h.app.Update(msg)
	h.app = m.(App)
	return cmd
}

// pump runs posted session work and feeds its renders and commits back
// into the app until both sides are idle. Commits are opened immediately.
func (h *harness) pump() {
	for {
		h.clock.Drain()
		select {
		case msg := <-h.app.events.ch:
			cmd := h.update(msg)
			if _, ok := msg.(navigateMsg); ok && cmd != nil {
				h.update(cmd())
			}
		default:
			return
		}
	}
}

func (h *harness) typeText(text string) {
	for _, r := range text {
		h.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	h.pump()
}

func (h *harness) press(k tea.KeyType) tea.Cmd {
	cmd := h.update(tea.KeyMsg{Type: k})
	h.pump()
	return cmd
}

func (h *harness) click(x, y int) {
	h.update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	h.pump()
}

func itemTitles(v omnibox.View) []string {
	out := make([]string, len(v.Items))
	for i, r := range v.Items {
		out[i] = r.Title()
	}
	return out
}

func TestApp_TypingRendersResults(t *testing.T) {
	h := newHarness(t, nil)

	h.typeText("git")

	v := h.app.Snapshot()
	assert.Equal(t, v.Query, "git")
	assert.DeepEqual(t, itemTitles(v), []string{"GitHub", "GitLab"})
	assert.Equal(t, v.Selected, 0)

	out := layout.StripANSI(h.app.View())
	assert.Assert(t, is.Contains(out, "GitHub"))
	assert.Assert(t, is.Contains(out, "Search for git"))
}

func TestApp_ExactKeywordAutoNavigates(t *testing.T) {
	h := newHarness(t, nil)

	h.typeText("gh")
	assert.Assert(t, h.app.Snapshot().Highlight)
	assert.Assert(t, is.Len(h.opened, 0))

	h.clock.Advance(omnibox.DefaultAutoNavigate)
	h.pump()

	assert.DeepEqual(t, h.opened, []string{"https://github.com"})
	assert.Equal(t, h.app.Status(), "git https://github.com")
	assert.Equal(t, h.app.Query(), "")
	assert.Assert(t, !h.app.Snapshot().Visible)
}

func TestApp_AnyKeyCancelsAutoNavigate(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyCtrlY, tea.KeyLeft, tea.KeyRight} {
		t.Run(k.String(), func(t *testing.T) {
			h := newHarness(t, nil)

			h.typeText("gh")
			h.press(k)
			h.clock.Advance(omnibox.DefaultAutoNavigate)
			h.pump()

			assert.Assert(t, is.Len(h.opened, 0))
			assert.Equal(t, h.app.Query(), "gh")
		})
	}
}

func TestApp_ArrowsThenEnter(t *testing.T) {
	h := newHarness(t, nil)

	h.typeText("git")
	h.press(tea.KeyDown)
	assert.Equal(t, h.app.Snapshot().Selected, 1)

	h.press(tea.KeyEnter)
	assert.DeepEqual(t, h.opened, []string{"https://gitlab.com"})
}

func TestApp_EnterOnFallbackSearchesTheWeb(t *testing.T) {
	h := newHarness(t, nil)

	h.typeText("zig news")
	assert.Equal(t, h.app.Snapshot().Selected, 0)

	h.press(tea.KeyEnter)
	assert.DeepEqual(t, h.opened, []string{"https://google.com/search?q=zig+news"})
}

func TestApp_EscapeClearsThenQuits(t *testing.T) {
	h := newHarness(t, nil)

	h.typeText("x")
	assert.Assert(t, h.app.Snapshot().Visible)

	cmd := h.press(tea.KeyEsc)
	assert.Assert(t, cmd == nil)
	assert.Equal(t, h.app.Query(), "")
	assert.Assert(t, !h.app.Snapshot().Visible)

	cmd = h.press(tea.KeyEsc)
	assert.Assert(t, cmd != nil)
	_, ok := cmd().(tea.QuitMsg)
	assert.Assert(t, ok, "second escape should quit")
}

func TestApp_TabCyclesFolders(t *testing.T) {
	h := newHarness(t, nil)

	h.press(tea.KeyTab)
	v := h.app.Snapshot()
	assert.Equal(t, v.ActiveFolder, "git")
	assert.DeepEqual(t, itemTitles(v), []string{"GitHub", "GitLab"})

	h.press(tea.KeyShiftTab)
	assert.Equal(t, h.app.Snapshot().ActiveFolder, "")
}

func TestApp_BlurLeavesFolder(t *testing.T) {
	h := newHarness(t, nil)

	h.press(tea.KeyTab)
	assert.Equal(t, h.app.Snapshot().ActiveFolder, "git")

	h.update(tea.BlurMsg{})
	h.pump()
	assert.Equal(t, h.app.Snapshot().ActiveFolder, "")
}

func TestApp_YankCopiesSelectedURL(t *testing.T) {
	h := newHarness(t, nil)

	h.typeText("git")
	cmd := h.press(tea.KeyCtrlY)
	assert.Assert(t, cmd != nil)
	h.update(cmd())

	assert.DeepEqual(t, h.copied, []string{"https://github.com"})
	assert.Equal(t, h.app.Status(), "copied https://github.com")
}

func TestApp_YankWithoutSelection(t *testing.T) {
	h := newHarness(t, nil)

	cmd := h.press(tea.KeyCtrlY)
	assert.Assert(t, cmd == nil)
}

func TestApp_ClickRowActivates(t *testing.T) {
	h := newHarness(t, nil)
	page := layout.DefaultConfig().Page

	h.typeText("git")
	h.click(page.PaddingLeft+3, page.PaddingTop+page.HeaderLines+1)

	assert.DeepEqual(t, h.opened, []string{"https://gitlab.com"})
}

func TestApp_ClickToolbarTogglesFolder(t *testing.T) {
	h := newHarness(t, nil)
	page := layout.DefaultConfig().Page

	h.click(page.PaddingLeft+1, page.PaddingTop)
	assert.Equal(t, h.app.Snapshot().ActiveFolder, "git")

	h.click(page.PaddingLeft+1, page.PaddingTop)
	assert.Equal(t, h.app.Snapshot().ActiveFolder, "")
}

func TestApp_OpenFailureShowsError(t *testing.T) {
	h := newHarness(t, nil)
	h.openErr = errors.New("no browser")

	h.typeText("git")
	h.press(tea.KeyEnter)

	assert.Equal(t, h.app.Status(), "open failed: no browser")
	assert.Equal(t, h.app.Query(), "git")
}

func TestApp_InitialQuery(t *testing.T) {
	h := newHarness(t, func(p *AppParams) { p.Query = "git" })

	h.app.Init()
	h.pump()

	assert.Equal(t, h.app.Snapshot().Query, "git")
	assert.Equal(t, h.app.Query(), "git")
}

func TestApp_EnrichmentAddsHistory(t *testing.T) {
	h := newHarness(t, func(p *AppParams) {
		p.History = omnibox.HistoryFunc(func(_ context.Context, _ string) ([]model.HistoryEntry, error) {
			return []model.HistoryEntry{{Title: "Go Playground", URL: "https://go.dev/play"}}, nil
		})
	})

	h.typeText("go")
	assert.Assert(t, is.Len(h.app.Snapshot().Items, 0))

	h.clock.Advance(omnibox.DefaultDebounce)
	assert.Assert(t, h.clock.WaitPost(time.Second), "enrichment did not finish")
	h.pump()

	assert.DeepEqual(t, itemTitles(h.app.Snapshot()), []string{"Go Playground"})
	out := layout.StripANSI(h.app.View())
	assert.Assert(t, is.Contains(out, "history"))
	assert.Assert(t, is.Contains(out, "https://go.dev/play"))
}

func TestApp_QuitClosesEvents(t *testing.T) {
	h := newHarness(t, nil)

	cmd := h.update(tea.KeyMsg{Type: tea.KeyCtrlC})
	_, ok := cmd().(tea.QuitMsg)
	assert.Assert(t, ok)

	select {
	case <-h.app.events.done:
	default:
		t.Fatal("events should be closed after quit")
	}
}
