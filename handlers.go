package main

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/content-audit/backend/analyzer"
	"github.com/content-audit/backend/config"
	"github.com/content-audit/backend/extract"
	"github.com/content-audit/backend/history"
	"github.com/content-audit/backend/metrics"
	"github.com/content-audit/backend/report"
	"github.com/content-audit/backend/serp"
	"github.com/content-audit/backend/stats"
)

type server struct {
	cfg       config.Config
	log       *slog.Logger
	engine    *analyzer.Engine
	extractor *extract.Extractor
	scraper   *serp.Scraper
	suggestor *analyzer.Suggestor
	repo      *history.Repository
	exporter  *report.Exporter
	stats     *stats.Storage
	metrics   *metrics.Metrics
}

type analyzeRequest struct {
	Input         string `json:"input"`
	TargetKeyword string `json:"target_keyword"`
	Extended      bool   `json:"extended"`
}

type analyzeResponse struct {
	*analyzer.AuditResult
	AnalysisID int64 `json:"analysis_id,omitempty"`
}

func (s *server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
	})
}

func (s *server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Input == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No input provided"})
		return
	}

	start := time.Now()

	content, err := s.extractor.Extract(c.Request.Context(), req.Input)
	if err != nil || content.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not extract text from input"})
		return
	}

	keyword := req.TargetKeyword
	if keyword == "" && len(content.Headers) > 0 {
		keyword = content.Headers[0]
	}

	var competitors []analyzer.CompetitorDoc
	degraded := false
	if keyword != "" {
		competitors = s.scraper.FetchCompetitors(c.Request.Context(), keyword, s.cfg.CompetitorLimit)
		valid := 0
		for _, comp := range competitors {
			ok := comp.WordCount > 100
			s.stats.RecordFetch(ok)
			s.metrics.RecordCompetitorFetch(serviceName, ok)
			if ok {
				valid++
			}
		}
		degraded = valid == 0
	}

	inputType := "text"
	if content.IsURL {
		inputType = "url"
	}

	result := s.engine.Audit(analyzer.AuditRequest{
		Doc: analyzer.ContentDocument{
			Text:            content.Text,
			Headers:         content.Headers,
			MetaDescription: content.MetaDescription,
			TargetKeyword:   keyword,
		},
		Competitors: competitors,
		InputType:   inputType,
		URL:         content.URL,
		Extended:    req.Extended,
	})

	s.stats.RecordAnalysis(req.Extended, degraded)
	s.metrics.RecordAudit(serviceName, req.Extended, degraded, result.OverallScore, time.Since(start))

	resp := analyzeResponse{AuditResult: result}
	if s.repo != nil {
		id, err := s.repo.Save(c.Request.Context(), result)
		if err != nil {
			s.log.Error("failed to save analysis", "error", err)
		} else {
			resp.AnalysisID = id
		}
	}

	c.JSON(http.StatusOK, resp)
}

type compareRequest struct {
	Input         string `json:"input"`
	CompetitorURL string `json:"competitor_url"`
	TargetKeyword string `json:"target_keyword"`
}

func (s *server) compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Input == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No input provided"})
		return
	}

	competitorURL := req.CompetitorURL
	if competitorURL == "" && req.TargetKeyword != "" {
		// No explicit competitor: take the top search result for the keyword.
		if results := s.scraper.Search(c.Request.Context(), req.TargetKeyword, 1); len(results) > 0 {
			competitorURL = results[0].URL
		}
	}
	if competitorURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No competitor URL provided"})
		return
	}

	content, err := s.extractor.Extract(c.Request.Context(), req.Input)
	if err != nil || content.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not extract text from input"})
		return
	}

	competitor := s.scraper.ExtractPage(c.Request.Context(), competitorURL)
	s.stats.RecordFetch(competitor.WordCount > 0)
	s.metrics.RecordCompetitorFetch(serviceName, competitor.WordCount > 0)
	if competitor.WordCount == 0 {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not extract competitor content"})
		return
	}

	structure := analyzer.ExtractStructure(content.Text, content.Headers)
	comparator := analyzer.NewContentComparator()
	result := comparator.Compare(content.Text, analyzer.YourContentMeta{
		Headers:   content.Headers,
		HasImages: false,
		HasVideos: false,
		HasLists:  structure.HasLists,
		HasTables: structure.HasTables,
	}, competitor)

	c.JSON(http.StatusOK, result)
}

func (s *server) suggestions(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Input == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No input provided"})
		return
	}

	content, err := s.extractor.Extract(c.Request.Context(), req.Input)
	if err != nil || content.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not extract text from input"})
		return
	}

	keyword := req.TargetKeyword
	if keyword == "" && len(content.Headers) > 0 {
		keyword = content.Headers[0]
	}

	var competitors []analyzer.CompetitorDoc
	if keyword != "" {
		competitors = s.scraper.FetchCompetitors(c.Request.Context(), keyword, s.cfg.CompetitorLimit)
	}

	result := s.engine.Audit(analyzer.AuditRequest{
		Doc: analyzer.ContentDocument{
			Text:            content.Text,
			Headers:         content.Headers,
			MetaDescription: content.MetaDescription,
			TargetKeyword:   keyword,
		},
		Competitors: competitors,
		InputType:   "text",
	})

	suggestions := s.suggestor.Suggest(c.Request.Context(), content.Text, result)

	source := "fallback"
	if s.cfg.LLMAPIKey != "" {
		source = "llm"
	}
	s.metrics.RecordSuggestion(serviceName, source)

	c.JSON(http.StatusOK, suggestions)
}

func (s *server) exportReport(c *gin.Context) {
	var result analyzer.AuditResult
	if err := c.ShouldBindJSON(&result); err != nil || result.SEO == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No analysis results provided"})
		return
	}

	buf, err := s.exporter.Export(&result)
	if err != nil {
		s.log.Error("report export failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate report"})
		return
	}

	s.stats.RecordReportExport()
	s.metrics.RecordReportExport()

	filename := "content-audit-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (s *server) serviceStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"current": s.stats.GetCurrentStats(),
		"months":  s.stats.GetAllMonths(),
	})
}

func (s *server) requireHistory(c *gin.Context) bool {
	if s.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "History is not enabled"})
		return false
	}
	return true
}

func (s *server) listHistory(c *gin.Context) {
	if !s.requireHistory(c) {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, err := s.repo.List(c.Request.Context(), limit, c.Query("keyword"), c.Query("url"))
	if err != nil {
		s.log.Error("history list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (s *server) historyProgress(c *gin.Context) {
	if !s.requireHistory(c) {
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	points, err := s.repo.Progress(c.Request.Context(), days, c.Query("keyword"), c.Query("url"))
	if err != nil {
		s.log.Error("history progress failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load progress"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"points": points})
}

func (s *server) historyStatistics(c *gin.Context) {
	if !s.requireHistory(c) {
		return
	}

	statistics, err := s.repo.Stats(c.Request.Context())
	if err != nil {
		s.log.Error("history statistics failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load statistics"})
		return
	}
	c.JSON(http.StatusOK, statistics)
}

type shareRequest struct {
	AnalysisID int64 `json:"analysis_id"`
}

func (s *server) createShareLink(c *gin.Context) {
	if !s.requireHistory(c) {
		return
	}

	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AnalysisID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No analysis ID provided"})
		return
	}

	link, err := s.repo.CreateShareLink(c.Request.Context(), req.AnalysisID, s.cfg.ShareLinkTTL)
	if err != nil {
		s.log.Error("share link creation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create share link"})
		return
	}

	s.metrics.RecordShareLink()
	c.JSON(http.StatusOK, link)
}

func (s *server) resolveShareLink(c *gin.Context) {
	if !s.requireHistory(c) {
		return
	}

	raw, err := s.repo.ResolveShareLink(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Share link not found or expired"})
			return
		}
		s.log.Error("share link resolve failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not resolve share link"})
		return
	}

	c.Data(http.StatusOK, "application/json", raw)
}
