package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/textmath/textmath/internal/config/tool"
)

// newFakeWikipedia serves list=search and prop=extracts like the MediaWiki API.
func newFakeWikipedia(t *testing.T, search, extracts map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		switch {
		case q.Get("list") == "search":
			_, _ = w.Write([]byte(search[q.Get("srsearch")]))
		case q.Get("prop") == "extracts":
			_, _ = w.Write([]byte(extracts[q.Get("titles")]))
		default:
			http.Error(w, "bad request", http.StatusBadRequest)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestWikipedia_Found(t *testing.T) {
	srv := newFakeWikipedia(t,
		map[string]string{
			"Alan Turing": `{"query":{"search":[{"title":"Alan Turing"},{"title":"Turing machine"}]}}`,
		},
		map[string]string{
			"Alan Turing":    `{"query":{"pages":{"1208":{"title":"Alan Turing","extract":"<p><b>Alan Turing</b> was an English mathematician and computer scientist.</p>"}}}}`,
			"Turing machine": `{"query":{"pages":{"30403":{"title":"Turing machine","extract":"<p>A Turing machine is a mathematical model of computation.</p>"}}}}`,
		})

	w := NewWikipediaTool(tool.WikipediaConfig{APIBase: srv.URL, TopK: 3, MaxChars: 4000})
	out, err := w.Execute(context.Background(), map[string]any{"query": "Alan Turing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "Page: Alan Turing\nSummary: ") {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.Contains(out, "mathematician") || strings.Contains(out, "<b>") {
		t.Errorf("extract not reduced to text: %q", out)
	}
	if !strings.Contains(out, "\n\nPage: Turing machine\n") {
		t.Errorf("pages should be separated by a blank line: %q", out)
	}
}

func TestWikipedia_MaxChars(t *testing.T) {
	srv := newFakeWikipedia(t,
		map[string]string{"x": `{"query":{"search":[{"title":"X"}]}}`},
		map[string]string{"X": `{"query":{"pages":{"1":{"title":"X","extract":"` + strings.Repeat("a", 500) + `"}}}}`})

	w := NewWikipediaTool(tool.WikipediaConfig{APIBase: srv.URL, MaxChars: 50})
	out, err := w.Execute(context.Background(), map[string]any{"query": "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len([]rune(out)) != 50 {
		t.Errorf("expected output truncated to 50 chars, got %d", len([]rune(out)))
	}
}

func TestWikipedia_NoResults(t *testing.T) {
	srv := newFakeWikipedia(t, map[string]string{"zzqx": `{"query":{"search":[]}}`}, nil)

	w := NewWikipediaTool(tool.WikipediaConfig{APIBase: srv.URL})
	out, err := w.Execute(context.Background(), map[string]any{"query": "zzqx"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "No good Wikipedia Search Result was found" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestWikipedia_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	w := NewWikipediaTool(tool.WikipediaConfig{APIBase: srv.URL})
	if _, err := w.Execute(context.Background(), map[string]any{"query": "anything"}); err == nil {
		t.Fatal("expected error for HTTP 503")
	}
}

func TestStripHTMLTags(t *testing.T) {
	got := stripHTMLTags("<p>Fish &amp; chips</p><script>x()</script><p>second</p>")
	if got != "Fish & chips\nsecond" {
		t.Errorf("unexpected %q", got)
	}
}
