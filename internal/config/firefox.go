package config

import (
	"path/filepath"
	"sort"
	"strings"
)

// DetectFirefoxDB returns the places.sqlite of the first Firefox profile
// under homeDir, preferring default profiles, or "" when there is none.
func DetectFirefoxDB(homeDir string) string {
	matches, err := filepath.Glob(filepath.Join(homeDir, ".mozilla", "firefox", "*", "places.sqlite"))
	if err != nil || len(matches) == 0 {
		return ""
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return isDefaultProfile(matches[i]) && !isDefaultProfile(matches[j])
	})
	return matches[0]
}

func isDefaultProfile(path string) bool {
	return strings.Contains(filepath.Base(filepath.Dir(path)), "default")
}
