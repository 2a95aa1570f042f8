// Package source reads bookmarks, history and suggestions from the places
// database, the search engine and local files.
package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/newtab/internal/model"
)

// ErrNoPlacesDB is returned when the places database does not exist.
var ErrNoPlacesDB = errors.New("places database not found")

// DefaultHistoryLimit caps history results when no limit is configured.
const DefaultHistoryLimit = 15

const (
	urlFilter   = "p.url NOT LIKE 'about:%' AND p.url NOT LIKE 'moz-%'"
	titleFilter = "p.title IS NOT NULL AND p.title != ''"
	visitFilter = "p.visit_count > 0"

	historyColumns = `
		COALESCE(p.title, '') AS title,
		p.url,
		p.visit_count,
		COALESCE(p.last_visit_date, 0) / 1000000 AS last_visit`
)

const bookmarksQuery = `
	SELECT
		COALESCE(b.guid, '') AS id,
		COALESCE(f.title, 'unsorted') AS folder,
		b.title,
		p.url,
		k.keyword,
		(
			SELECT GROUP_CONCAT(t.title)
			FROM moz_bookmarks tag_link
			JOIN moz_bookmarks t ON tag_link.parent = t.id
			WHERE tag_link.fk = p.id
			AND t.parent = (SELECT id FROM moz_bookmarks WHERE title = 'tags' AND parent = 1)
		) AS tags
	FROM moz_bookmarks b
	JOIN moz_places p ON b.fk = p.id
	LEFT JOIN moz_bookmarks f ON b.parent = f.id
	LEFT JOIN moz_keywords k ON p.id = k.place_id
	WHERE p.url NOT LIKE 'place:%'
		AND b.title IS NOT NULL
		AND b.title != ''
		AND (f.title IS NULL OR f.title != 'tags')
	ORDER BY f.title, b.position`

const recentHistoryQuery = `
	SELECT` + historyColumns + `
	FROM moz_places p
	WHERE ` + visitFilter + `
		AND ` + titleFilter + `
		AND ` + urlFilter + `
	ORDER BY p.last_visit_date DESC
	LIMIT ?`

const searchHistoryQuery = `
	SELECT` + historyColumns + `
	FROM moz_places p
	WHERE ` + visitFilter + `
		AND ` + titleFilter + `
		AND ` + urlFilter + `
		AND (LOWER(p.title) LIKE ? OR LOWER(p.url) LIKE ?)
	ORDER BY
		p.visit_count * 0.3 + (COALESCE(p.last_visit_date, 0) / 1000000000000.0) DESC
	LIMIT ?`

// Places reads a Firefox places.sqlite file. The database is opened
// read-only and immutable for every call, so a running browser holding
// the file is not disturbed.
type Places struct {
	path  string
	limit int
}

// NewPlaces returns a reader for the places database at path.
func NewPlaces(path string, historyLimit int) (*Places, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoPlacesDB, path)
		}
		return nil, fmt.Errorf("failed to stat places database: %w", err)
	}
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Places{path: path, limit: historyLimit}, nil
}

// Path returns the database file path.
func (p *Places) Path() string {
	return p.path
}

func (p *Places) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+p.path+"?mode=ro&immutable=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open places database: %w", err)
	}
	return db, nil
}

// Bookmarks returns every titled bookmark with its folder, keyword and tags,
// ordered by folder and position.
func (p *Places) Bookmarks(ctx context.Context) ([]model.Bookmark, error) {
	db, err := p.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, bookmarksQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := []model.Bookmark{}
	for rows.Next() {
		var (
			b       model.Bookmark
			keyword sql.NullString
			tags    sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.Folder, &b.Title, &b.URL, &keyword, &tags); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		b.Keyword = keyword.String
		b.Tags = splitTags(tags.String)
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookmarks: %w", err)
	}

	return bookmarks, nil
}

// History returns visited pages. An empty query returns the most recent
// ones; otherwise title or URL must contain the query, ranked by visits
// and recency.
func (p *Places) History(ctx context.Context, query string) ([]model.HistoryEntry, error) {
	db, err := p.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var rows *sql.Rows
	if query == "" {
		rows, err = db.QueryContext(ctx, recentHistoryQuery, p.limit)
	} else {
		term := "%" + strings.ToLower(query) + "%"
		rows, err = db.QueryContext(ctx, searchHistoryQuery, term, term, p.limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	history := []model.HistoryEntry{}
	for rows.Next() {
		var h model.HistoryEntry
		if err := rows.Scan(&h.Title, &h.URL, &h.VisitCount, &h.LastVisit); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	return history, nil
}

func splitTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	slices.Sort(tags)
	return tags
}
