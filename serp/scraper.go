// Package serp retrieves competitor pages for a target keyword.
package serp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/content-audit/backend/analyzer"
)

// SearchResult is one entry from the search results page.
type SearchResult struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

var searchWhitespaceRe = regexp.MustCompile(`\s+`)

// Scraper searches for a keyword and extracts competitor page content.
// Outbound requests go through a rate limiter and a circuit breaker so a
// flaky search endpoint degrades to mock data instead of hammering it.
type Scraper struct {
	client          *http.Client
	endpoint        string
	userAgent       string
	competitorLimit int

	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]SearchResult]
	log     *slog.Logger
}

type Config struct {
	Endpoint        string
	UserAgent       string
	Timeout         time.Duration
	CompetitorLimit int
	RatePerSecond   float64
	Burst           int
}

func NewScraper(cfg Config, log *slog.Logger) *Scraper {
	settings := gobreaker.Settings{
		Name:        "serp-search",
		MaxRequests: 1,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
	}
	return &Scraper{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		endpoint:        cfg.Endpoint,
		userAgent:       cfg.UserAgent,
		competitorLimit: cfg.CompetitorLimit,
		limiter:         rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		breaker:         gobreaker.NewCircuitBreaker[[]SearchResult](settings),
		log:             log,
	}
}

// Search returns ranked results for the keyword, falling back to mock data
// when the endpoint is unreachable or the breaker is open.
func (s *Scraper) Search(ctx context.Context, keyword string, numResults int) []SearchResult {
	results, err := s.breaker.Execute(func() ([]SearchResult, error) {
		return s.search(ctx, keyword, numResults)
	})
	if err != nil {
		s.log.Warn("search failed, using mock results", "keyword", keyword, "error", err)
		return mockResults(keyword, numResults)
	}
	return results
}

func (s *Scraper) search(ctx context.Context, keyword string, numResults int) ([]SearchResult, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	searchURL := fmt.Sprintf("%s?q=%s&num=%d", s.endpoint, url.QueryEscape(keyword), numResults)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	results := []SearchResult{}
	doc.Find("div.g").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Find("a").First().Attr("href")
		if !ok || href == "" {
			return true
		}
		title := strings.TrimSpace(sel.Find("h3").First().Text())
		if title == "" {
			return true
		}
		snippet := strings.TrimSpace(sel.Find("div.VwiC3b, div.yXK7lf").First().Text())
		results = append(results, SearchResult{URL: href, Title: title, Snippet: snippet})
		return len(results) < numResults
	})
	return results, nil
}

// FetchCompetitors searches for the keyword and extracts each result page.
// Pages that fail to fetch come back as zero-valued docs, matching how the
// analyzers treat unreachable competitors.
func (s *Scraper) FetchCompetitors(ctx context.Context, keyword string, n int) []analyzer.CompetitorDoc {
	if n <= 0 {
		n = s.competitorLimit
	}
	results := s.Search(ctx, keyword, n)
	if len(results) > n {
		results = results[:n]
	}

	docs := make([]analyzer.CompetitorDoc, len(results))
	var wg sync.WaitGroup
	for i, r := range results {
		wg.Add(1)
		go func(i int, r SearchResult) {
			defer wg.Done()
			doc := s.ExtractPage(ctx, r.URL)
			doc.Title = r.Title
			docs[i] = doc
		}(i, r)
	}
	wg.Wait()
	return docs
}

// ExtractPage pulls text and structural flags from one competitor URL.
func (s *Scraper) ExtractPage(ctx context.Context, pageURL string) analyzer.CompetitorDoc {
	empty := analyzer.CompetitorDoc{URL: pageURL}

	if err := s.limiter.Wait(ctx); err != nil {
		return empty
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return empty
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Debug("competitor fetch failed", "url", pageURL, "error", err)
		return empty
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return empty
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return empty
	}

	doc.Find("script, style, nav, footer, header, aside").Remove()

	main := doc.Find("main").First()
	if main.Length() == 0 {
		main = doc.Find("article").First()
	}
	if main.Length() == 0 {
		main = doc.Find("body").First()
	}
	text := searchWhitespaceRe.ReplaceAllString(strings.TrimSpace(main.Text()), " ")

	headerCount := doc.Find("h1, h2, h3").Length()

	return analyzer.CompetitorDoc{
		URL:         pageURL,
		Text:        text,
		WordCount:   len(strings.Fields(text)),
		HeaderCount: headerCount,
		HasImages:   doc.Find("img").Length() > 0,
		HasVideos:   doc.Find("video, iframe").Length() > 0,
		HasLists:    doc.Find("ul, ol").Length() > 0,
		HasTables:   doc.Find("table").Length() > 0,
	}
}

func mockResults(keyword string, n int) []SearchResult {
	results := make([]SearchResult, 0, n)
	for i := 1; i <= n; i++ {
		results = append(results, SearchResult{
			URL:     fmt.Sprintf("https://example%d.com/article", i),
			Title:   fmt.Sprintf("Top Article About %s - Example %d", keyword, i),
			Snippet: fmt.Sprintf("This is a comprehensive guide about %s with detailed information...", keyword),
		})
	}
	return results
}
