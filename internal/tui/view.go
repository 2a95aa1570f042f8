package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/nikbrunner/newtab/internal/tui/layout"
)

// button is a folder toolbar button placed at column x of its line.
type button struct {
	folder string
	label  string
	x      int
}

func (b button) contains(x int) bool {
	return x >= b.x && x < b.x+utf8.RuneCountInString(b.label)
}

// renderView builds the page: toolbar, input, result rows, status and hints.
func (a App) renderView() string {
	width := layout.CalculateListWidth(a.width, a.layoutConfig.Page, a.layoutConfig.List)
	toolbar := a.toolbarLines(width)

	lines := []string{
		a.renderButtons(toolbar[0]),
		a.renderButtons(toolbar[1]),
		"",
		a.renderInput(),
		"",
	}
	lines = append(lines, a.renderRows(width)...)
	lines = append(lines, "", a.renderStatus(), a.renderHints(a.contextualHints()))

	return a.styles.App.Render(strings.Join(lines, "\n"))
}

// toolbarLines places the top-left group at the start of the first line,
// the top-right group at its end and the remaining folders on the second.
func (a App) toolbarLines(width int) [2][]button {
	left := a.placeButtons(a.toolbar.TopLeft, 0)

	leftEnd := 0
	if len(left) > 0 {
		leftEnd = a.buttonsWidth(a.toolbar.TopLeft) + a.layoutConfig.Button.Gap
	}
	start := max(width-a.buttonsWidth(a.toolbar.TopRight), leftEnd)
	right := a.placeButtons(a.toolbar.TopRight, start)

	return [2][]button{
		append(left, right...),
		a.placeButtons(a.toolbar.Bottom, 0),
	}
}

func (a App) buttonLabel(folder string) string {
	label, _ := layout.TruncateWithPrefixSuffix(folder, a.layoutConfig.Button.MaxWidth, "[", "]", a.layoutConfig.Text)
	return label
}

func (a App) placeButtons(folders []string, x int) []button {
	buttons := make([]button, 0, len(folders))
	for _, f := range folders {
		label := a.buttonLabel(f)
		buttons = append(buttons, button{folder: f, label: label, x: x})
		x += utf8.RuneCountInString(label) + a.layoutConfig.Button.Gap
	}
	return buttons
}

func (a App) buttonsWidth(folders []string) int {
	if len(folders) == 0 {
		return 0
	}
	w := 0
	for _, f := range folders {
		w += utf8.RuneCountInString(a.buttonLabel(f))
	}
	return w + a.layoutConfig.Button.Gap*(len(folders)-1)
}

func (a App) renderButtons(buttons []button) string {
	var b strings.Builder
	col := 0
	for _, btn := range buttons {
		if btn.x > col {
			b.WriteString(strings.Repeat(" ", btn.x-col))
			col = btn.x
		}

		style := a.styles.Button
		switch {
		case btn.folder == a.view.ActiveFolder:
			style = a.styles.ButtonActive
		case a.view.Highlight && btn.folder == a.view.HighlightFolder:
			style = a.styles.ButtonMatch
		}
		b.WriteString(style.Render(btn.label))
		col += utf8.RuneCountInString(btn.label)
	}
	return b.String()
}

func (a App) renderInput() string {
	prompt := a.styles.Prompt.Render("› ")
	if a.view.Highlight {
		prompt = a.styles.PromptMatch.Render("› ")
	}

	var folder string
	if a.view.ActiveFolder != "" {
		folder = a.styles.Folder.Render(a.view.ActiveFolder) + " "
	}
	return folder + prompt + a.input.View()
}

// visibleRows returns the window of rows shown for the current height.
func (a App) visibleRows() (start, end int) {
	if !a.view.Visible {
		return 0, 0
	}
	maxRows := layout.CalculateVisibleRows(a.height, a.layoutConfig.Page)
	return layout.CalculateVisibleListItems(maxRows, a.view.Selected, a.view.Total())
}

func (a App) itemAt(i int) Item {
	if a.view.IsFallback(i) {
		return fallbackItem(a.view.Query, a.resolver)
	}
	return newItem(a.view.Items[i], a.resolver)
}

func (a App) renderRows(width int) []string {
	if !a.view.Visible {
		return nil
	}
	if a.view.Total() == 0 {
		return []string{a.styles.Empty.Render("  no bookmarks in " + a.view.ActiveFolder)}
	}

	cols := layout.CalculateColumns(width, a.layoutConfig.List)
	start, end := a.visibleRows()

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, a.renderItem(a.itemAt(i), i == a.view.Selected, cols))
	}
	return rows
}

func (a App) renderItem(item Item, selected bool, cols layout.Columns) string {
	text := a.layoutConfig.Text

	marker := "  "
	if selected {
		marker = "› "
	}

	title := item.Title
	if item.Kind == ItemFallback {
		title = "Search for " + item.Title
	}
	title = layout.Highlight(title, item.Positions, func(s string) string { return a.styles.Match.Render(s) })
	title = layout.Pad(layout.TruncateANSIAware(title, cols.Title, text), cols.Title)

	label, _ := layout.TruncateText(item.Label, cols.Label, text)
	label = a.styles.Label.Render(layout.Pad(label, cols.Label))

	var url string
	if !item.IsSearch() {
		url, _ = layout.TruncateText(item.URL, cols.URL, text)
	}
	url = a.styles.URL.Render(url)

	line := marker + title + " " + label + " " + url
	if selected {
		return a.styles.ItemSelected.Render(line)
	}
	return a.styles.Item.Render(line)
}

func (a App) renderStatus() string {
	if a.status == "" {
		return ""
	}
	if a.statusErr {
		return a.styles.StatusError.Render(a.status)
	}
	return a.styles.Status.Render(a.status)
}

// folderAt returns the toolbar folder under the screen cell x, y.
func (a App) folderAt(x, y int) (string, bool) {
	page := a.layoutConfig.Page
	line := y - page.PaddingTop
	if line < 0 || line > 1 {
		return "", false
	}

	width := layout.CalculateListWidth(a.width, page, a.layoutConfig.List)
	for _, btn := range a.toolbarLines(width)[line] {
		if btn.contains(x - page.PaddingLeft) {
			return btn.folder, true
		}
	}
	return "", false
}

// rowAt returns the result row under the screen line y.
func (a App) rowAt(y int) (int, bool) {
	page := a.layoutConfig.Page
	start, end := a.visibleRows()
	row := start + y - page.PaddingTop - page.HeaderLines
	if row < start || row >= end {
		return 0, false
	}
	return row, true
}
