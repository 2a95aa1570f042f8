package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Page   PageConfig
	Input  InputConfig
	List   ListConfig
	Button ButtonConfig
	Text   TextConfig
}

// PageConfig describes the fixed lines around the result list.
type PageConfig struct {
	// PaddingTop and PaddingLeft match the App style padding.
	PaddingTop  int
	PaddingLeft int

	// HeaderLines counts the lines above the first result row:
	// toolbar (2) + gap (1) + input (1) + gap (1) = 5
	HeaderLines int

	// FooterLines counts the lines below the list:
	// gap (1) + status (1) + hints (1) = 3
	FooterLines int
}

// InputConfig holds the omnibox input configuration.
type InputConfig struct {
	CharLimit int
	Width     int
}

// ListConfig holds result list configuration.
type ListConfig struct {
	// MinWidth and MaxWidth clamp the row width.
	MinWidth int
	MaxWidth int

	// URLWidthPercent is the share of a row given to the URL column.
	URLWidthPercent int

	// LabelWidth is the fixed width of the folder/label column.
	LabelWidth int
}

// ButtonConfig holds folder toolbar button configuration.
type ButtonConfig struct {
	MaxWidth int
	Gap      int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Page: PageConfig{
			PaddingTop:  1,
			PaddingLeft: 2,
			HeaderLines: 5, // toolbar (2) + gap (1) + input (1) + gap (1)
			FooterLines: 3, // gap (1) + status (1) + hints (1)
		},
		Input: InputConfig{
			CharLimit: 200,
			Width:     60,
		},
		List: ListConfig{
			MinWidth:        30,
			MaxWidth:        120,
			URLWidthPercent: 35,
			LabelWidth:      12,
		},
		Button: ButtonConfig{
			MaxWidth: 16,
			Gap:      1,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
