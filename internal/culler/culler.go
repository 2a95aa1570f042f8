// Package culler finds dead bookmarks by requesting every URL.
package culler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nikbrunner/newtab/internal/model"
)

// Status represents the health of a URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Dead:
		return "dead"
	default:
		return "unreachable"
	}
}

const maxRedirects = 10

// Result holds the check result for a single bookmark.
type Result struct {
	Bookmark   model.Bookmark
	Status     Status
	StatusCode int    // 0 if the connection failed
	Error      string // reason for unreachable URLs
}

// Options configures a check run.
type Options struct {
	Concurrency int
	Timeout     time.Duration

	// ExcludeDomains lists domains, subdomains included, where a 404 means
	// "possibly private" rather than dead.
	ExcludeDomains []string

	Client *http.Client // optional, built from Timeout if nil
	Logger zerolog.Logger
}

// DefaultOptions returns 10 workers with a 10 second timeout.
func DefaultOptions() Options {
	return Options{
		Concurrency: 10,
		Timeout:     10 * time.Second,
		Logger:      zerolog.Nop(),
	}
}

// ProgressFunc is called after each URL is checked.
type ProgressFunc func(completed, total int)

// CheckURLs checks all bookmark URLs concurrently. Results keep the order of
// bookmarks. A cancelled ctx stops the run and returns its error.
func CheckURLs(ctx context.Context, bookmarks []model.Bookmark, opts Options, onProgress ProgressFunc) ([]Result, error) {
	if len(bookmarks) == 0 {
		return nil, nil
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}

	exclude := make(map[string]bool, len(opts.ExcludeDomains))
	for _, domain := range opts.ExcludeDomains {
		exclude[strings.ToLower(domain)] = true
	}

	results := make([]Result, len(bookmarks))
	var completed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))

	for i, b := range bookmarks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = checkURL(ctx, client, b, exclude)
			opts.Logger.Debug().
				Str("url", b.URL).
				Stringer("status", results[i].Status).
				Int("code", results[i].StatusCode).
				Msg("checked")

			if onProgress != nil {
				onProgress(int(completed.Add(1)), len(bookmarks))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Unhealthy returns the results that are not Healthy.
func Unhealthy(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Status != Healthy {
			out = append(out, r)
		}
	}
	return out
}

// checkURL tries HEAD first and falls back to GET for servers that reject it.
func checkURL(ctx context.Context, client *http.Client, b model.Bookmark, exclude map[string]bool) Result {
	result := Result{Bookmark: b}

	resp, err := do(ctx, client, http.MethodHead, b.URL)
	if err != nil || resp.StatusCode == http.StatusMethodNotAllowed {
		if err == nil {
			resp.Body.Close()
		}
		resp, err = do(ctx, client, http.MethodGet, b.URL)
	}
	if err != nil {
		result.Status = Unreachable
		result.Error = normalizeError(err)
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		if isExcludedDomain(b.URL, exclude) {
			result.Status = Unreachable
			result.Error = "Possibly private (auth required)"
		} else {
			result.Status = Dead
		}
	default:
		// 403, 5xx and friends are often temporary or need a login
		result.Status = Unreachable
		result.Error = http.StatusText(resp.StatusCode)
	}

	return result
}

func do(ctx context.Context, client *http.Client, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return client.Do(req)
}

// isExcludedDomain checks the URL host and its parent domains against exclude.
func isExcludedDomain(rawURL string, exclude map[string]bool) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for domain := range exclude {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// normalizeError maps verbose transport errors to short categories.
func normalizeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "Timeout"
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	case strings.Contains(lower, "unsupported protocol scheme"):
		return "Unsupported scheme"
	default:
		return msg
	}
}
