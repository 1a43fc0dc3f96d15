package analyzer

import "testing"

func TestAEOEmptyDocumentScoresZero(t *testing.T) {
	r := NewAEOAnalyzer().Analyze(ContentDocument{})
	if r.Score != 0 {
		t.Fatalf("expected score 0 for empty document, got %d", r.Score)
	}
	if len(r.Issues) != 5 {
		t.Fatalf("expected 5 issues, got %d: %v", len(r.Issues), r.Issues)
	}
	if len(r.Recommendations) != 3 {
		t.Fatalf("recommendations should be capped at 3, got %d", len(r.Recommendations))
	}
}

func TestAEOCitationsRaiseScore(t *testing.T) {
	base := "What is sourdough? Sourdough is defined as naturally leavened bread.\n\n" +
		"FAQ\n- starter\n- flour\n- water\nHow do you feed a starter? Why does it rise?"
	cited := base + "\n\nRead more at https://extension.umn.edu/a https://food.unl.edu/b " +
		"https://www.usda.gov/c https://www.fda.gov/d https://nutrition.org/e"

	a := NewAEOAnalyzer()
	baseScore := a.Analyze(ContentDocument{Text: base}).Score
	citedScore := a.Analyze(ContentDocument{Text: cited}).Score
	if citedScore <= baseScore {
		t.Fatalf("adding citations should raise the score: %d -> %d", baseScore, citedScore)
	}
}

func TestAEODetailsCarryFeatures(t *testing.T) {
	text := "FAQ\nWhat is bread?\nBread is defined as baked dough.\n- flour\n- water"
	r := NewAEOAnalyzer().Analyze(ContentDocument{Text: text, Headers: []string{"A", "B", "C"}})
	if !r.Details.StructuredData.HasFAQ {
		t.Fatal("expected FAQ in details")
	}
	if !r.Details.StructuredData.HasProperHeaders {
		t.Fatal("three headers should flag proper headers")
	}
	if !r.Details.AnswerPatterns.HasDefinition {
		t.Fatal("expected definition pattern in details")
	}
}
