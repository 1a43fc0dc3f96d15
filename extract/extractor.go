// Package extract turns a URL or raw text into analyzable content.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrEmptyContent is returned when extraction yields no usable text.
var ErrEmptyContent = errors.New("extracted content is empty")

// Content is the normalized result of extraction.
type Content struct {
	Text            string   `json:"text"`
	URL             string   `json:"url,omitempty"`
	Headers         []string `json:"headers"`
	MetaDescription string   `json:"meta_description"`
	IsURL           bool     `json:"is_url"`
}

var (
	whitespaceRe     = regexp.MustCompile(`\s+`)
	markdownHeaderRe = regexp.MustCompile(`^#+\s*`)
)

type cacheEntry struct {
	content   Content
	timestamp time.Time
}

// Extractor fetches pages and strips them down to text plus structural
// metadata. Fetched pages are cached by URL with a TTL.
type Extractor struct {
	client    *http.Client
	userAgent string

	cacheMutex   sync.RWMutex
	cache        map[string]cacheEntry
	cacheTTL     time.Duration
	maxCacheSize int
}

func New(timeout time.Duration, userAgent string, cacheTTL time.Duration, maxCacheSize int) *Extractor {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Extractor{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		userAgent:    userAgent,
		cache:        make(map[string]cacheEntry),
		cacheTTL:     cacheTTL,
		maxCacheSize: maxCacheSize,
	}
}

// Extract treats input as a URL when it parses with a scheme and host,
// otherwise as raw text.
func (e *Extractor) Extract(ctx context.Context, input string) (Content, error) {
	if IsURL(input) {
		return e.extractFromURL(ctx, strings.TrimSpace(input))
	}
	return extractFromText(input)
}

func IsURL(input string) bool {
	u, err := url.Parse(strings.TrimSpace(input))
	return err == nil && u.Scheme != "" && u.Host != ""
}

func (e *Extractor) extractFromURL(ctx context.Context, pageURL string) (Content, error) {
	if cached, ok := e.cached(pageURL); ok {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Content{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return Content{}, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return Content{}, fmt.Errorf("fetch %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Content{}, fmt.Errorf("parse %s: %w", pageURL, err)
	}

	doc.Find("script, style, nav, footer, header").Remove()

	text := whitespaceRe.ReplaceAllString(strings.TrimSpace(doc.Find("body").Text()), " ")
	if text == "" {
		return Content{}, fmt.Errorf("%s: %w", pageURL, ErrEmptyContent)
	}

	headers := []string{}
	doc.Find("h1, h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		if h := strings.TrimSpace(s.Text()); h != "" {
			headers = append(headers, h)
		}
	})

	metaDesc, _ := doc.Find(`meta[name="description"]`).Attr("content")

	content := Content{
		Text:            text,
		URL:             pageURL,
		Headers:         headers,
		MetaDescription: metaDesc,
		IsURL:           true,
	}
	e.store(pageURL, content)
	return content, nil
}

func extractFromText(text string) (Content, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Content{}, ErrEmptyContent
	}

	headers := []string{}
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			headers = append(headers, markdownHeaderRe.ReplaceAllString(line, ""))
		}
	}

	return Content{
		Text:    trimmed,
		Headers: headers,
		IsURL:   false,
	}, nil
}

func (e *Extractor) cached(pageURL string) (Content, bool) {
	e.cacheMutex.RLock()
	defer e.cacheMutex.RUnlock()
	entry, ok := e.cache[pageURL]
	if !ok || time.Since(entry.timestamp) > e.cacheTTL {
		return Content{}, false
	}
	return entry.content, true
}

func (e *Extractor) store(pageURL string, content Content) {
	e.cacheMutex.Lock()
	defer e.cacheMutex.Unlock()

	e.cache[pageURL] = cacheEntry{content: content, timestamp: time.Now()}
	if len(e.cache) <= e.maxCacheSize {
		return
	}

	// Evict oldest entries until back under the limit.
	type aged struct {
		key       string
		timestamp time.Time
	}
	entries := make([]aged, 0, len(e.cache))
	for key, entry := range e.cache {
		entries = append(entries, aged{key, entry.timestamp})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].timestamp.Before(entries[j].timestamp)
	})
	for i := 0; i < len(entries) && len(e.cache) > e.maxCacheSize; i++ {
		delete(e.cache, entries[i].key)
	}
}
