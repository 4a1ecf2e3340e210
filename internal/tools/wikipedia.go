package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/textmath/textmath/internal/config/tool"
	"github.com/textmath/textmath/internal/shared/llmutils"
)

const (
	wikiUserAgent = "textmath/1.0 (https://github.com/textmath/textmath)"
	wikiNoResults = "No good Wikipedia Search Result was found"
)

// WikipediaTool searches Wikipedia and returns the intro of the top pages.
type WikipediaTool struct {
	apiBase    string
	topK       int
	maxChars   int
	httpClient *http.Client
}

// NewWikipediaTool creates a WikipediaTool. Zero values fall back to
// English Wikipedia, three pages and 4000 characters.
func NewWikipediaTool(cfg tool.WikipediaConfig) *WikipediaTool {
	lang := llmutils.StringOrDefault(cfg.Lang, "en")
	apiBase := cfg.APIBase
	if apiBase == "" {
		apiBase = fmt.Sprintf("https://%s.wikipedia.org/w/api.php", lang)
	}
	topK := cfg.TopK
	if topK <= 0 {
		topK = 3
	}
	maxChars := cfg.MaxChars
	if maxChars <= 0 {
		maxChars = 4000
	}
	return &WikipediaTool{
		apiBase:    apiBase,
		topK:       topK,
		maxChars:   maxChars,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (t *WikipediaTool) Name() string { return string(ToolWikipedia) }
func (t *WikipediaTool) Description() string {
	return "Search for general knowledge topics using Wikipedia."
}
func (t *WikipediaTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"query": {
				"type": "string",
				"description": "Topic or question to look up"
			}
		},
		"required": ["query"]
	}`)
}

func (t *WikipediaTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	query, _ := params["query"].(string)
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("query is required")
	}

	titles, err := t.search(ctx, query)
	if err != nil {
		return "", fmt.Errorf("wikipedia search: %w", err)
	}
	if len(titles) == 0 {
		return wikiNoResults, nil
	}

	var pages []string
	for _, title := range titles {
		summary, err := t.extract(ctx, title)
		if err != nil {
			return "", fmt.Errorf("wikipedia extract %q: %w", title, err)
		}
		if summary == "" {
			slog.Debug("Wikipedia page without extract", "title", title)
			continue
		}
		pages = append(pages, fmt.Sprintf("Page: %s\nSummary: %s", title, summary))
	}
	if len(pages) == 0 {
		return wikiNoResults, nil
	}

	out := strings.Join(pages, "\n\n")
	if r := []rune(out); len(r) > t.maxChars {
		out = string(r[:t.maxChars])
	}
	return out, nil
}

// search returns up to topK page titles matching query.
func (t *WikipediaTool) search(ctx context.Context, query string) ([]string, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("list", "search")
	q.Set("srsearch", query)
	q.Set("srlimit", strconv.Itoa(t.topK))
	q.Set("format", "json")
	q.Set("utf8", "1")

	var data struct {
		Query struct {
			Search []struct {
				Title string `json:"title"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := t.get(ctx, q, &data); err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(data.Query.Search))
	for i, hit := range data.Query.Search {
		if i >= t.topK {
			break
		}
		titles = append(titles, hit.Title)
	}
	return titles, nil
}

// extract returns the readable intro of one page.
func (t *WikipediaTool) extract(ctx context.Context, title string) (string, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("prop", "extracts")
	q.Set("exintro", "1")
	q.Set("redirects", "1")
	q.Set("titles", title)
	q.Set("format", "json")

	var data struct {
		Query struct {
			Pages map[string]struct {
				Title   string `json:"title"`
				Extract string `json:"extract"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := t.get(ctx, q, &data); err != nil {
		return "", err
	}

	pageURL, _ := url.Parse(t.apiBase)
	for _, page := range data.Query.Pages {
		if page.Extract != "" {
			return htmlToText(page.Extract, pageURL), nil
		}
	}
	return "", nil
}

func (t *WikipediaTool) get(ctx context.Context, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.apiBase+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", wikiUserAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
