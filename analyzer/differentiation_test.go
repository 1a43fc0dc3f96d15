package analyzer

import (
	"strings"
	"testing"
)

func TestDifferentiationNoKeyword(t *testing.T) {
	r := NewDifferentiationAnalyzer().Analyze(
		ContentDocument{Text: "Some content"},
		[]CompetitorDoc{{Text: strings.Repeat("competitor text ", 50), WordCount: 100}},
	)
	if r.Score != 0 {
		t.Fatalf("expected score 0 without keyword, got %d", r.Score)
	}
	if r.OverlapAnalysis != nil {
		t.Fatal("overlap analysis should be absent without keyword")
	}
	if len(r.Issues) != 1 || r.Issues[0] != "No target keyword provided - cannot analyze differentiation" {
		t.Fatalf("unexpected issues: %v", r.Issues)
	}
}

func TestDifferentiationNoCompetitorData(t *testing.T) {
	r := NewDifferentiationAnalyzer().Analyze(
		ContentDocument{Text: "Some content", TargetKeyword: "bread"},
		[]CompetitorDoc{{Text: "too short"}},
	)
	if r.Score != 50 {
		t.Fatalf("expected fixed score 50 without competitor data, got %d", r.Score)
	}
	if r.OverlapAnalysis == nil || r.OverlapAnalysis.AvgSimilarity != "N/A" {
		t.Fatalf("expected N/A overlap analysis, got %+v", r.OverlapAnalysis)
	}
	if r.OverlapAnalysis.UniqueSentences != "N/A" {
		t.Fatalf("expected N/A unique sentences, got %v", r.OverlapAnalysis.UniqueSentences)
	}
	if len(r.Recommendations) != 3 {
		t.Fatalf("expected 3 canned recommendations, got %d", len(r.Recommendations))
	}
}

func TestDifferentiationDistinctContent(t *testing.T) {
	doc := ContentDocument{
		Text: "In my experience, the beginner budget option works best. " +
			"For instance, our chart showed strong results across trials.",
		TargetKeyword: "bread machines",
	}
	competitor := CompetitorDoc{
		Text: strings.Repeat("unrelated lexicon covering cloud orchestration topics entirely ", 12),
	}

	r := NewDifferentiationAnalyzer().Analyze(doc, []CompetitorDoc{competitor})
	if r.Score < 60 {
		t.Fatalf("distinct content with unique elements should score high, got %d", r.Score)
	}
	if !containsString(r.UniqueElementsFound, "Personal experience/insights") {
		t.Fatalf("expected experience element, got %v", r.UniqueElementsFound)
	}
	if len(r.Opportunities) > 5 {
		t.Fatalf("opportunities should be capped at 5, got %d", len(r.Opportunities))
	}
	if r.OverlapAnalysis == nil || !strings.HasSuffix(r.OverlapAnalysis.AvgSimilarity, "%") {
		t.Fatalf("expected formatted similarity, got %+v", r.OverlapAnalysis)
	}
	if _, ok := r.OverlapAnalysis.UniqueSentences.(float64); !ok {
		t.Fatalf("unique sentences should be numeric, got %T", r.OverlapAnalysis.UniqueSentences)
	}
}

func TestUniqueSentenceRatioIgnoresShortSentences(t *testing.T) {
	ratio := uniqueSentenceRatio("Tiny. Short one here now.", []string{"completely different corpus"})
	if ratio != 0 {
		t.Fatalf("sentences of five or fewer words should not count, got %f", ratio)
	}
}
