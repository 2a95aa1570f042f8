package omnibox

import "slices"

// Toolbar is the folder set split into its three button groups.
type Toolbar struct {
	TopLeft  []string
	TopRight []string
	Bottom   []string
}

// GroupFolders places the configured top-left and top-right folders that
// exist, in configured order, and leaves every other folder at the bottom.
func GroupFolders(folders, topLeft, topRight []string) Toolbar {
	var tb Toolbar
	for _, f := range topLeft {
		if slices.Contains(folders, f) {
			tb.TopLeft = append(tb.TopLeft, f)
		}
	}
	for _, f := range topRight {
		if slices.Contains(folders, f) {
			tb.TopRight = append(tb.TopRight, f)
		}
	}
	for _, f := range folders {
		if !slices.Contains(topLeft, f) && !slices.Contains(topRight, f) {
			tb.Bottom = append(tb.Bottom, f)
		}
	}
	return tb
}
