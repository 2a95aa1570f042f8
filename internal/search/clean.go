package search

import (
	"regexp"
	"strings"
)

// annotationRegex matches a trailing "(draft)", "[wip]" or "@tag" token.
var annotationRegex = regexp.MustCompile(`\s*[(\[@][\w@]+[)\]@]?\s*$`)

// Clean strips a trailing bracketed, parenthesized or @-prefixed annotation
// from a bookmark title.
func Clean(title string) string {
	return strings.TrimSpace(annotationRegex.ReplaceAllString(title, ""))
}
