package extract

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestIsURL(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"https://example.com/article", true},
		{"http://example.com", true},
		{"  https://example.com  ", true},
		{"example.com/article", false},
		{"just some plain text", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsURL(tc.input); got != tc.want {
			t.Errorf("IsURL(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestExtractFromText(t *testing.T) {
	e := New(5*time.Second, "test-agent", time.Minute, 10)

	input := "# Bread Guide\nSome intro text.\n## Kneading\nWork the dough well."
	content, err := e.Extract(context.Background(), input)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if content.IsURL {
		t.Error("expected IsURL to be false for raw text")
	}
	if content.Text != input {
		t.Errorf("text should be preserved, got %q", content.Text)
	}
	if len(content.Headers) != 2 {
		t.Fatalf("expected 2 markdown headers, got %d: %v", len(content.Headers), content.Headers)
	}
	if content.Headers[0] != "Bread Guide" || content.Headers[1] != "Kneading" {
		t.Errorf("unexpected headers: %v", content.Headers)
	}
}

func TestExtractEmptyText(t *testing.T) {
	e := New(5*time.Second, "test-agent", time.Minute, 10)

	_, err := e.Extract(context.Background(), "   \n\t  ")
	if !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
}

func TestExtractFromURL(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if got := r.Header.Get("User-Agent"); got != "test-agent" {
			t.Errorf("unexpected user agent %q", got)
		}
		w.Write([]byte(`<html><head>
			<meta name="description" content="A guide to baking bread.">
			</head><body>
			<nav>Menu items here</nav>
			<script>var tracked = true;</script>
			<h1>Bread Guide</h1>
			<h2>Kneading</h2>
			<p>Work   the
			dough well.</p>
			<footer>Copyright</footer>
			</body></html>`))
	}))
	defer ts.Close()

	e := New(5*time.Second, "test-agent", time.Minute, 10)

	content, err := e.Extract(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if !content.IsURL {
		t.Error("expected IsURL to be true")
	}
	if content.URL != ts.URL {
		t.Errorf("URL = %q, want %q", content.URL, ts.URL)
	}
	if len(content.Headers) != 2 || content.Headers[0] != "Bread Guide" {
		t.Errorf("unexpected headers: %v", content.Headers)
	}
	if content.MetaDescription != "A guide to baking bread." {
		t.Errorf("meta description = %q", content.MetaDescription)
	}
	for _, stripped := range []string{"tracked", "Menu items", "Copyright"} {
		if strings.Contains(content.Text, stripped) {
			t.Errorf("text should not contain stripped element content %q", stripped)
		}
	}
	if !strings.Contains(content.Text, "Work the dough well.") {
		t.Errorf("whitespace should be collapsed, got %q", content.Text)
	}

	// Second extraction of the same URL should come from cache.
	if _, err := e.Extract(context.Background(), ts.URL); err != nil {
		t.Fatalf("cached Extract returned error: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("expected 1 server hit after cached fetch, got %d", got)
	}
}

func TestExtractFromURLBadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	e := New(5*time.Second, "test-agent", time.Minute, 10)
	if _, err := e.Extract(context.Background(), ts.URL); err == nil {
		t.Fatal("expected error on 500 response")
	}
}

func TestCacheEviction(t *testing.T) {
	e := New(5*time.Second, "test-agent", time.Minute, 2)

	e.store("https://a.example.com", Content{Text: "a"})
	time.Sleep(2 * time.Millisecond)
	e.store("https://b.example.com", Content{Text: "b"})
	time.Sleep(2 * time.Millisecond)
	e.store("https://c.example.com", Content{Text: "c"})

	if _, ok := e.cached("https://a.example.com"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, ok := e.cached("https://c.example.com"); !ok {
		t.Error("newest entry should remain cached")
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	e := New(5*time.Second, "test-agent", time.Millisecond, 10)

	e.store("https://a.example.com", Content{Text: "a"})
	time.Sleep(5 * time.Millisecond)
	if _, ok := e.cached("https://a.example.com"); ok {
		t.Error("entry past TTL should not be returned")
	}
}
