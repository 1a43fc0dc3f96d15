package analyzer

import (
	"strings"
	"testing"
)

func TestSEOShortContentPenalties(t *testing.T) {
	r := NewSEOAnalyzer().Analyze(ContentDocument{Text: "Bread is tasty.", TargetKeyword: "bread"})
	if r.Score != 25 {
		t.Fatalf("expected score 25, got %d", r.Score)
	}
	for _, want := range []string{
		"No H1 header found",
		"No meta description detected",
		"Content too short (3 words)",
	} {
		if !containsString(r.Issues, want) {
			t.Fatalf("missing issue %q in %v", want, r.Issues)
		}
	}
	if len(r.Recommendations) != 3 {
		t.Fatalf("recommendations should be capped at 3, got %d", len(r.Recommendations))
	}
}

func TestAnalyzeKeywordDensity(t *testing.T) {
	text := strings.Repeat("word ", 99) + "bread"
	d := analyzeKeywordDensity(text, "bread")
	if d.Count != 1 {
		t.Fatalf("expected 1 mention, got %d", d.Count)
	}
	if d.Density != 1.0 {
		t.Fatalf("expected 1.0%% density, got %f", d.Density)
	}
	if d.RecommendedCount != 3 {
		t.Fatalf("recommended count floors at 3, got %d", d.RecommendedCount)
	}
}

func TestAnalyzeKeywordDensityNoKeyword(t *testing.T) {
	d := analyzeKeywordDensity("some text", "")
	if d != (KeywordDensity{}) {
		t.Fatalf("expected zero value without keyword, got %+v", d)
	}
}

func TestAnalyzeHeaderStructure(t *testing.T) {
	h := analyzeHeaderStructure([]string{"h1: Best Bread Guide", "Baking basics"}, "bread")
	if !h.HasH1 {
		t.Fatal("expected H1 marker to be detected")
	}
	if h.KeywordInHeaders != 1 {
		t.Fatalf("expected keyword in 1 header, got %d", h.KeywordInHeaders)
	}
	if h.TotalHeaders != 2 {
		t.Fatalf("expected 2 headers, got %d", h.TotalHeaders)
	}
}

func TestAnalyzeMetaDescription(t *testing.T) {
	m := analyzeMetaDescription("A full guide to baking bread at home with starter tips.", "bread")
	if !m.Exists || !m.HasKeyword {
		t.Fatalf("expected existing meta with keyword, got %+v", m)
	}
	if empty := analyzeMetaDescription("", "bread"); empty.Exists {
		t.Fatal("empty meta should not exist")
	}
}
