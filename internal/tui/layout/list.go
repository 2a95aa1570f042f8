package layout

// Columns holds the widths of a result row's columns.
type Columns struct {
	Title int
	Label int
	URL   int
}

// CalculateListWidth computes the row width for a terminal width, clamped
// between MinWidth and MaxWidth.
func CalculateListWidth(terminalWidth int, page PageConfig, cfg ListConfig) int {
	width := terminalWidth - 2*page.PaddingLeft
	if width > cfg.MaxWidth {
		width = cfg.MaxWidth
	}
	if width < cfg.MinWidth {
		width = cfg.MinWidth
	}
	return width
}

// CalculateColumns splits a row into title, label and URL columns. The
// marker and the two column gaps take 4 characters.
func CalculateColumns(width int, cfg ListConfig) Columns {
	url := width * cfg.URLWidthPercent / 100
	title := width - 4 - cfg.LabelWidth - url
	if title < 1 {
		title = 1
	}
	return Columns{Title: title, Label: cfg.LabelWidth, URL: url}
}

// CalculateVisibleRows returns how many result rows fit the terminal height.
// Returns at least 1.
func CalculateVisibleRows(terminalHeight int, cfg PageConfig) int {
	rows := terminalHeight - cfg.PaddingTop - cfg.HeaderLines - cfg.FooterLines
	if rows < 1 {
		return 1
	}
	return rows
}

// CalculateVisibleListItems computes the start and end indices for a scrollable list.
// Returns (start, end) where items[start:end] should be displayed.
func CalculateVisibleListItems(maxVisible, selectedIdx, totalItems int) (start, end int) {
	if totalItems <= maxVisible {
		return 0, totalItems
	}

	if selectedIdx >= maxVisible {
		start = selectedIdx - maxVisible + 1
	}

	end = start + maxVisible
	if end > totalItems {
		end = totalItems
	}

	return start, end
}
