package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "↑", "enter")
	Desc string // Short description (e.g., "up", "open")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Selection and folder hints
	Action []Hint // Open and yank
	System []Hint // Clear and quit
}

// All returns all hints flattened in display order: Nav + Action + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.System...)
	return result
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar.
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// contextualHints derives hints from the key map. Selection and yank hints
// only show while there are rows.
func (a App) contextualHints() HintSet {
	hint := func(b key.Binding) Hint {
		help := b.Help()
		return Hint{Key: help.Key, Desc: help.Desc}
	}

	var hs HintSet
	if a.view.Total() > 0 {
		hs.Nav = append(hs.Nav, hint(a.keys.Up), hint(a.keys.Down))
		hs.Action = append(hs.Action, hint(a.keys.Open), hint(a.keys.YankURL))
	}
	if len(a.folders) > 0 {
		hs.Nav = append(hs.Nav, hint(a.keys.NextFolder))
	}
	if a.view.Visible {
		hs.System = append(hs.System, hint(a.keys.Clear))
	}
	hs.System = append(hs.System, hint(a.keys.Quit))
	return hs
}
