package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/nikbrunner/newtab/internal/model"
)

// DefaultSuggestURL is the Google completion endpoint; the escaped query is appended.
const DefaultSuggestURL = "https://suggestqueries.google.com/complete/search?client=firefox&q="

const (
	suggestTimeout = 3 * time.Second

	// maxSuggestBody bounds the response read from the suggestion endpoint.
	maxSuggestBody = 256 * 1024
)

// Suggest fetches search engine completions in the OpenSearch suggestion
// format: a JSON array whose second element lists the completions.
type Suggest struct {
	endpoint string
	client   *http.Client
}

// NewSuggest returns a client for endpoint. A nil client uses one with a
// short timeout.
func NewSuggest(endpoint string, client *http.Client) *Suggest {
	if endpoint == "" {
		endpoint = DefaultSuggestURL
	}
	if client == nil {
		client = &http.Client{Timeout: suggestTimeout}
	}
	return &Suggest{endpoint: endpoint, client: client}
}

// Suggestions returns completions for query. An empty query makes no request.
func (s *Suggest) Suggestions(ctx context.Context, query string) ([]model.Suggestion, error) {
	if query == "" {
		return []model.Suggestion{}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+url.QueryEscape(query), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build suggest request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("suggest request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suggest request failed: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSuggestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read suggest response: %w", err)
	}

	return ParseSuggestions(body)
}

// ParseSuggestions decodes `["query", ["s1", "s2", ...], ...]`. Entries that
// are not strings are skipped.
func ParseSuggestions(body []byte) ([]model.Suggestion, error) {
	var result []json.RawMessage
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse suggest response: %w", err)
	}
	if len(result) < 2 {
		return nil, fmt.Errorf("failed to parse suggest response: %d elements", len(result))
	}

	var entries []any
	if err := json.Unmarshal(result[1], &entries); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions: %w", err)
	}

	suggestions := []model.Suggestion{}
	for _, e := range entries {
		if title, ok := e.(string); ok {
			suggestions = append(suggestions, model.Suggestion{Title: title})
		}
	}
	return suggestions, nil
}
