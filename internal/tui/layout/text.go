package layout

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

const resetCode = "\x1b[0m"

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// VisibleLength returns the visible length of a string (excluding ANSI codes).
func VisibleLength(s string) int {
	return utf8.RuneCountInString(StripANSI(s))
}

// Pad right-pads s with spaces to width visible characters.
func Pad(s string, width int) string {
	if n := VisibleLength(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// TruncateText truncates text to maxWidth with ellipsis.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	runes := []rune(text)
	if len(runes) <= maxWidth {
		return text, false
	}

	ellipsis := []rune(cfg.Ellipsis)
	if maxWidth <= len(ellipsis) {
		return string(ellipsis[:maxWidth]), true
	}
	return string(runes[:maxWidth-len(ellipsis)]) + cfg.Ellipsis, true
}

// TruncateWithPrefixSuffix truncates text while preserving prefix and suffix.
// Example: TruncateWithPrefixSuffix("localhost", 8, "[", "]", cfg) -> "[loc...]"
// Returns the truncated text and whether truncation occurred.
func TruncateWithPrefixSuffix(text string, maxWidth int, prefix, suffix string, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	combined := prefix + text + suffix
	if utf8.RuneCountInString(combined) <= maxWidth {
		return combined, false
	}

	overhead := utf8.RuneCountInString(prefix) + utf8.RuneCountInString(suffix) + utf8.RuneCountInString(cfg.Ellipsis)
	if overhead >= maxWidth {
		return TruncateText(combined, maxWidth, cfg)
	}

	runes := []rune(text)
	return prefix + string(runes[:maxWidth-overhead]) + cfg.Ellipsis + suffix, true
}

// Highlight renders the runes of text at positions with mark and the rest
// unchanged. Positions are rune indices; out of range positions are ignored.
func Highlight(text string, positions []int, mark func(string) string) string {
	if len(positions) == 0 {
		return text
	}

	marked := make(map[int]bool, len(positions))
	for _, p := range positions {
		marked[p] = true
	}

	var b strings.Builder
	i := 0
	for _, r := range text {
		if marked[i] {
			b.WriteString(mark(string(r)))
		} else {
			b.WriteRune(r)
		}
		i++
	}
	return b.String()
}

// TruncateANSIAware truncates styled text, preserving ANSI codes.
// A reset code is appended after the ellipsis so styles do not bleed.
func TruncateANSIAware(styledText string, maxWidth int, cfg TextConfig) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisibleLength(styledText) <= maxWidth {
		return styledText
	}

	target := maxWidth - utf8.RuneCountInString(cfg.Ellipsis)
	if target < 0 {
		target = 0
	}

	var b strings.Builder
	visible := 0
	for i := 0; i < len(styledText) && visible < target; {
		if loc := ansiRegex.FindStringIndex(styledText[i:]); loc != nil && loc[0] == 0 {
			b.WriteString(styledText[i : i+loc[1]])
			i += loc[1]
			continue
		}

		r, size := utf8.DecodeRuneInString(styledText[i:])
		if r != utf8.RuneError {
			b.WriteRune(r)
			visible++
		}
		i += size
	}

	b.WriteString(cfg.Ellipsis)
	b.WriteString(resetCode)
	return b.String()
}
