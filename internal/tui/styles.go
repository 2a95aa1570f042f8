package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
	ButtonMatch  lipgloss.Style // folder of the highlighted match
	Prompt       lipgloss.Style
	PromptMatch  lipgloss.Style // prompt while the query names a bookmark
	Folder       lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	Match        lipgloss.Style // matched characters in a title
	Label        lipgloss.Style
	URL          lipgloss.Style
	Empty        lipgloss.Style
	Status       lipgloss.Style
	StatusError  lipgloss.Style
	HintKey      lipgloss.Style
	HintDesc     lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	warn := lipgloss.AdaptiveColor{Light: "#8A5A44", Dark: "#AF875F"}    // muted orange

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Button: lipgloss.NewStyle().
			Foreground(subtle),

		ButtonActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		ButtonMatch: lipgloss.NewStyle().
			Underline(true).
			Foreground(primary),

		Prompt: lipgloss.NewStyle().
			Foreground(subtle),

		PromptMatch: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Folder: lipgloss.NewStyle().
			Foreground(accent),

		Item: lipgloss.NewStyle().
			Foreground(primary),

		ItemSelected: lipgloss.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		Match: lipgloss.NewStyle().
			Bold(true).
			Underline(true),

		Label: lipgloss.NewStyle().
			Foreground(accent),

		URL: lipgloss.NewStyle().
			Foreground(subtle),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		Status: lipgloss.NewStyle().
			Foreground(subtle),

		StatusError: lipgloss.NewStyle().
			Foreground(warn),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),
	}
}
