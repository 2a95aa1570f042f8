package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/newtab/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/bookmarks-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("bookmarks-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the store to Netscape bookmark HTML format. Bookmarks
// without a folder come first, then one H3 section per folder in sorted
// order.
func ExportHTML(store *model.Store) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	writeBookmarks(&b, store.GetBookmarksInFolder(""), 1)

	prefix := "    "
	for _, folder := range store.Folders() {
		fmt.Fprintf(&b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(folder))
		fmt.Fprintf(&b, "%s<DL><p>\n", prefix)
		writeBookmarks(&b, store.GetBookmarksInFolder(folder), 2)
		fmt.Fprintf(&b, "%s</DL><p>\n", prefix)
	}

	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeBookmarks(b *strings.Builder, bookmarks []model.Bookmark, indent int) {
	prefix := strings.Repeat("    ", indent)

	for _, bookmark := range bookmarks {
		var attrs strings.Builder
		if bookmark.HasKeyword() {
			fmt.Fprintf(&attrs, " SHORTCUTURL=\"%s\"", html.EscapeString(bookmark.Keyword))
		}
		if len(bookmark.Tags) > 0 {
			fmt.Fprintf(&attrs, " TAGS=\"%s\"", html.EscapeString(strings.Join(bookmark.Tags, ",")))
		}

		fmt.Fprintf(b,
			"%s<DT><A HREF=\"%s\"%s>%s</A>\n",
			prefix,
			html.EscapeString(bookmark.URL),
			attrs.String(),
			html.EscapeString(bookmark.Title),
		)
	}
}
