package analyzer

import (
	"io"
	"log/slog"
	"strings"
	"testing"
)

func testEngine() *Engine {
	return NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAuditCoreBundle(t *testing.T) {
	req := AuditRequest{
		Doc: ContentDocument{
			Text:          strings.Repeat("Bread baking takes patience and practice. ", 30),
			TargetKeyword: "bread",
		},
		InputType: "text",
	}
	result := testEngine().Audit(req)

	if result.Sentiment != nil || result.Schema != nil {
		t.Fatal("extended components should be absent in a core audit")
	}
	if result.InputType != "text" || result.TargetKeyword != "bread" {
		t.Fatalf("request metadata should propagate, got %+v", result)
	}
	if result.WordCount != 180 {
		t.Fatalf("expected word count 180, got %d", result.WordCount)
	}

	want := OverallScore([]int{
		result.SEO.Score,
		result.SERPPerformance.Score,
		result.AEO.Score,
		result.Humanization.Score,
		result.Differentiation.Score,
	})
	if result.OverallScore != want {
		t.Fatalf("overall score mismatch: got %f want %f", result.OverallScore, want)
	}
}

func TestAuditExtendedComponents(t *testing.T) {
	req := AuditRequest{
		Doc: ContentDocument{
			Text:          "How to bake bread. Step 1: mix flour. Step 2: add water and wait for 2026 trends.",
			TargetKeyword: "bread",
		},
		Extended: true,
	}
	result := testEngine().Audit(req)

	if result.Sentiment == nil || result.Entity == nil || result.Freshness == nil || result.Originality == nil {
		t.Fatal("extended audit should populate every extended component")
	}
	if result.Schema == nil || result.Schema.ContentType != "HowTo" {
		t.Fatalf("expected HowTo schema, got %+v", result.Schema)
	}
}

func TestAuditScoresAreStable(t *testing.T) {
	req := AuditRequest{
		Doc: ContentDocument{
			Text:          strings.Repeat("Reliable analysis needs repeatable numbers every run. ", 20),
			TargetKeyword: "analysis",
		},
		Extended: true,
	}
	e := testEngine()
	a := e.Audit(req)
	b := e.Audit(req)
	if a.OverallScore != b.OverallScore {
		t.Fatalf("repeated audits should agree: %f vs %f", a.OverallScore, b.OverallScore)
	}
}
