package analyzer

import (
	"log/slog"
	"time"
)

// AuditResult is the full bundle returned to API clients. Field names and
// nesting are a compatibility contract consumed by report export and
// history persistence.
type AuditResult struct {
	SEO             *SEOResult             `json:"seo"`
	SERPPerformance *SERPFitResult         `json:"serp_performance"`
	AEO             *AEOResult             `json:"aeo"`
	Humanization    *HumanizationResult    `json:"humanization"`
	Differentiation *DifferentiationResult `json:"differentiation"`

	Sentiment   *SentimentResult   `json:"sentiment,omitempty"`
	Entity      *EntityResult      `json:"entity,omitempty"`
	Freshness   *FreshnessResult   `json:"freshness,omitempty"`
	Originality *OriginalityResult `json:"originality,omitempty"`
	Schema      *SchemaResult      `json:"schema,omitempty"`

	OverallScore  float64 `json:"overall_score"`
	WordCount     int     `json:"word_count"`
	TargetKeyword string  `json:"target_keyword"`
	InputType     string  `json:"input_type"`
	URL           string  `json:"url,omitempty"`
}

// Engine runs every analyzer over one document. Competitor pages are
// fetched by the caller so the engine stays a pure function of its inputs.
type Engine struct {
	seo             *SEOAnalyzer
	aeo             *AEOAnalyzer
	humanization    *HumanizationAnalyzer
	differentiation *DifferentiationAnalyzer
	serp            *SERPAnalyzer
	sentiment       *SentimentAnalyzer
	entity          *EntityAnalyzer
	freshness       *FreshnessAnalyzer
	originality     *OriginalityAnalyzer
	schema          *SchemaGenerator

	log *slog.Logger
}

func NewEngine(log *slog.Logger) *Engine {
	return &Engine{
		seo:             NewSEOAnalyzer(),
		aeo:             NewAEOAnalyzer(),
		humanization:    NewHumanizationAnalyzer(),
		differentiation: NewDifferentiationAnalyzer(),
		serp:            NewSERPAnalyzer(),
		sentiment:       NewSentimentAnalyzer(),
		entity:          NewEntityAnalyzer(),
		freshness:       NewFreshnessAnalyzer(time.Now().Year()),
		originality:     NewOriginalityAnalyzer(),
		schema:          NewSchemaGenerator(),
		log:             log,
	}
}

// AuditRequest names the inputs to a single audit run.
type AuditRequest struct {
	Doc         ContentDocument
	Competitors []CompetitorDoc
	InputType   string
	URL         string
	Extended    bool
}

func (e *Engine) Audit(req AuditRequest) *AuditResult {
	start := time.Now()

	result := &AuditResult{
		SEO:             e.seo.Analyze(req.Doc),
		SERPPerformance: e.serp.Analyze(req.Doc, req.Competitors),
		AEO:             e.aeo.Analyze(req.Doc),
		Humanization:    e.humanization.Analyze(req.Doc),
		Differentiation: e.differentiation.Analyze(req.Doc, req.Competitors),
		WordCount:       req.Doc.WordCount(),
		TargetKeyword:   req.Doc.TargetKeyword,
		InputType:       req.InputType,
		URL:             req.URL,
	}

	scores := []int{
		result.SEO.Score,
		result.SERPPerformance.Score,
		result.AEO.Score,
		result.Humanization.Score,
		result.Differentiation.Score,
	}

	if req.Extended {
		result.Sentiment = e.sentiment.Analyze(req.Doc)
		result.Entity = e.entity.Analyze(req.Doc)
		result.Freshness = e.freshness.Analyze(req.Doc)
		result.Originality = e.originality.Analyze(req.Doc)

		if schema, err := e.schema.Generate(req.Doc.Text, req.URL, req.Doc.TargetKeyword, ""); err == nil {
			result.Schema = schema
		} else {
			e.log.Warn("schema generation failed", "error", err)
		}

		scores = append(scores,
			result.Sentiment.Score,
			result.Entity.Score,
			result.Freshness.Score,
			result.Originality.Score,
		)
	}

	result.OverallScore = OverallScore(scores)

	e.log.Info("audit complete",
		"overall_score", result.OverallScore,
		"word_count", result.WordCount,
		"extended", req.Extended,
		"competitors", len(req.Competitors),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result
}
