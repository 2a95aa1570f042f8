package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/poll"

	"github.com/nikbrunner/newtab/internal/server"
)

const bookmarksHTML = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3>git</H3>
    <DL><p>
        <DT><A HREF="https://github.com" SHORTCUTURL="gh">GitHub</A>
        <DT><A HREF="https://gitlab.com">GitLab</A>
    </DL><p>
    <DT><H3>news</H3>
    <DL><p>
        <DT><A HREF="https://news.ycombinator.com">Hacker News</A>
    </DL><p>
</DL><p>
`

type cli struct {
	config    string
	dir       string
	bookmarks string
}

func newCLI(t *testing.T) *cli {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)

	suggest := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[%q, ["git bisect"]]`, r.URL.Query().Get("q"))
	}))
	t.Cleanup(suggest.Close)

	c := &cli{
		config:    filepath.Join(dir, "config.yaml"),
		dir:       dir,
		bookmarks: filepath.Join(dir, "bookmarks.json"),
	}
	yaml := fmt.Sprintf(`bookmarks_file: %s
history_file: %s
suggest_url: %s/complete?q=
log:
  level: error
  file: ""
`, c.bookmarks, filepath.Join(dir, "history.json"), suggest.URL)
	assert.NilError(t, os.WriteFile(c.config, []byte(yaml), 0o644))

	html := filepath.Join(dir, "bookmarks.html")
	assert.NilError(t, os.WriteFile(html, []byte(bookmarksHTML), 0o644))
	return c
}

func (c *cli) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return c.runContext(context.Background(), t, args...)
}

func (c *cli) runContext(ctx context.Context, t *testing.T, args ...string) (string, error) {
	t.Helper()

	configPath, logLevel = "", ""
	searchFolder, searchOpen, servePort = "", false, ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", c.config}, args...))
	err := rootCmd.ExecuteContext(ctx)
	return out.String(), err
}

func (c *cli) importFixture(t *testing.T) string {
	t.Helper()
	out, err := c.run(t, "import", filepath.Join(c.dir, "bookmarks.html"))
	assert.NilError(t, err)
	return out
}

func TestImport(t *testing.T) {
	c := newCLI(t)

	out := c.importFixture(t)
	assert.Assert(t, is.Contains(out, "Imported 3 bookmarks"))

	_, err := os.Stat(c.bookmarks)
	assert.NilError(t, err)

	out = c.importFixture(t)
	assert.Assert(t, is.Contains(out, "Imported 0 bookmarks"))
	assert.Assert(t, is.Contains(out, "(3 duplicates skipped)"))
}

func TestImport_NotesActivePlacesDB(t *testing.T) {
	c := newCLI(t)

	out := c.importFixture(t)
	assert.Assert(t, !strings.Contains(out, "places database"))

	places := filepath.Join(c.dir, "places.sqlite")
	assert.NilError(t, os.WriteFile(places, nil, 0o644))
	f, err := os.OpenFile(c.config, os.O_APPEND|os.O_WRONLY, 0)
	assert.NilError(t, err)
	_, err = fmt.Fprintf(f, "firefox_db: %s\n", places)
	assert.NilError(t, err)
	assert.NilError(t, f.Close())

	out = c.importFixture(t)
	assert.Assert(t, is.Contains(out, "Imported 0 bookmarks"))
	assert.Assert(t, is.Contains(out, "searches read bookmarks from the places database "+places))
}

func TestSearch_Blended(t *testing.T) {
	c := newCLI(t)
	c.importFixture(t)

	out, err := c.run(t, "search", "git")
	assert.NilError(t, err)

	for _, want := range []string{"GitHub", "GitLab", "git bisect", "suggested", "Search for git"} {
		assert.Assert(t, is.Contains(out, want))
	}
}

func TestSearch_ExactKeyword(t *testing.T) {
	c := newCLI(t)
	c.importFixture(t)

	out, err := c.run(t, "search", "gh")
	assert.NilError(t, err)

	assert.Assert(t, is.Contains(out, "keyword"))
	assert.Assert(t, is.Contains(out, "https://github.com"))
	assert.Assert(t, !strings.Contains(out, "git bisect"))
}

func TestSearch_OpenOutlivesCommand(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("fake opener is an xdg-open shell script")
	}
	c := newCLI(t)
	c.importFixture(t)

	bin := t.TempDir()
	marker := filepath.Join(bin, "opened")
	script := "#!/bin/sh\nsleep 0.2\necho \"$1\" > " + marker + "\n"
	assert.NilError(t, os.WriteFile(filepath.Join(bin, "xdg-open"), []byte(script), 0o755))
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))

	// main cancels the command context as soon as Execute returns.
	ctx, cancel := context.WithCancel(context.Background())
	out, err := c.runContext(ctx, t, "search", "--open", "gh")
	cancel()
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "git"))

	poll.WaitOn(t, func(poll.LogT) poll.Result {
		if _, err := os.Stat(marker); err != nil {
			return poll.Continue("opener has not written %s", marker)
		}
		return poll.Success()
	}, poll.WithTimeout(5*time.Second), poll.WithDelay(20*time.Millisecond))

	data, err := os.ReadFile(marker)
	assert.NilError(t, err)
	assert.Equal(t, strings.TrimSpace(string(data)), "https://github.com")
}

func TestSearch_Folder(t *testing.T) {
	c := newCLI(t)
	c.importFixture(t)

	out, err := c.run(t, "search", "--folder", "news")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "Hacker News"))
	assert.Assert(t, !strings.Contains(out, "GitHub"))

	_, err = c.run(t, "search", "--folder", "nope", "x")
	assert.Assert(t, is.ErrorIs(err, server.ErrUnknownFolder))
}

func TestSearch_RequiresQueryOrFolder(t *testing.T) {
	c := newCLI(t)

	_, err := c.run(t, "search")
	assert.ErrorContains(t, err, "a query or --folder is required")
}

func TestFolders(t *testing.T) {
	c := newCLI(t)
	c.importFixture(t)

	out, err := c.run(t, "folders")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "top-left:  git\n"))
	assert.Assert(t, is.Contains(out, "bottom:    news\n"))
}

func TestExport(t *testing.T) {
	c := newCLI(t)
	c.importFixture(t)

	path := filepath.Join(c.dir, "out", "export.html")
	out, err := c.run(t, "export", path)
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "Exported 3 bookmarks, 2 folders"))

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(string(data), `HREF="https://github.com"`))
	assert.Assert(t, is.Contains(string(data), "Hacker News"))
}

func TestInvalidLogLevel(t *testing.T) {
	c := newCLI(t)

	_, err := c.run(t, "--log-level", "loud", "folders")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestCheck(t *testing.T) {
	c := newCLI(t)

	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			w.WriteHeader(http.StatusGone)
		}
	}))
	t.Cleanup(site.Close)

	data := fmt.Sprintf(`[{"title": "Alive", "url": %q}, {"title": "Gone", "url": %q}]`, site.URL+"/", site.URL+"/gone")
	assert.NilError(t, os.WriteFile(c.bookmarks, []byte(data), 0o644))

	out, err := c.run(t, "check")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "2 bookmarks checked"))
	assert.Assert(t, is.Contains(out, "1 unhealthy"))
	assert.Assert(t, is.Contains(out, "Gone"))
	assert.Assert(t, is.Contains(out, "410"))
}
