package analyzer

import (
	"strings"
	"testing"
)

func TestExtractStructureHowToWithoutLists(t *testing.T) {
	text := "How to bake bread. Step 1: mix flour. Step 2: add water."
	s := ExtractStructure(text, nil)
	if !s.HasHowTo {
		t.Fatal("expected how-to markers to be detected")
	}
	if s.HasLists {
		t.Fatal("inline steps without newline bullets should not count as lists")
	}
	if s.HasProperHeaders {
		t.Fatal("no headers were provided")
	}
}

func TestExtractStructureListsAndFAQ(t *testing.T) {
	text := "FAQ\nWhat goes into bread?\n- flour\n- water\n- salt\n"
	s := ExtractStructure(text, []string{"Intro", "Ingredients", "Method"})
	if !s.HasFAQ {
		t.Fatal("expected FAQ marker to be detected")
	}
	if !s.HasLists || s.ListCount != 3 {
		t.Fatalf("expected 3 list items, got HasLists=%v ListCount=%d", s.HasLists, s.ListCount)
	}
	if !s.HasProperHeaders {
		t.Fatal("three headers should count as proper structure")
	}
}

func TestExtractCitationsEduURLs(t *testing.T) {
	text := "See https://ocw.mit.edu/courses for details. " +
		"More research lives at https://cs.stanford.edu/reports and https://web.harvard.edu/library"
	c := ExtractCitations(text)
	if c.URLs != 3 {
		t.Fatalf("expected 3 URLs, got %d", c.URLs)
	}
	if c.Count < 3 {
		t.Fatalf("expected at least 3 citations, got %d", c.Count)
	}
	if !c.HasQualitySources {
		t.Fatal("expected .edu links to count as quality sources")
	}
}

func TestExtractCitationsEmptyText(t *testing.T) {
	c := ExtractCitations("")
	if c.Count != 0 || c.HasQualitySources {
		t.Fatalf("expected zero citations, got %+v", c)
	}
}

func TestExtractQuestionsCountsAnswerable(t *testing.T) {
	text := "What is Go? It works. How does it work? Nothing here?"
	q := ExtractQuestions(text)
	if q.TotalQuestions != 3 {
		t.Fatalf("expected 3 questions, got %d", q.TotalQuestions)
	}
	if q.QuestionsAnswered != 2 {
		t.Fatalf("expected 2 question-word questions, got %d", q.QuestionsAnswered)
	}
}

func TestExtractAnswerPatterns(t *testing.T) {
	text := "The best way to learn Go is practice.\n\nGo is defined as a compiled language built at Google."
	a := ExtractAnswerPatterns(text)
	if a.DirectAnswers != 2 {
		t.Fatalf("expected 2 direct answer patterns, got %d", a.DirectAnswers)
	}
	if !a.HasDefinition {
		t.Fatal("expected definition phrasing to be detected")
	}
	if !a.HasEarlyAnswer {
		t.Fatal("short first paragraph should count as an early answer")
	}
}

func TestExtractRepetitionPeriodicText(t *testing.T) {
	text := strings.Repeat("alpha bravo charlie delta echo foxtrot golf hotel ", 10)
	r := ExtractRepetition(text, 8)
	if r.TotalWords != 80 {
		t.Fatalf("expected 80 words, got %d", r.TotalWords)
	}
	if r.DuplicateRatio <= 0.3 {
		t.Fatalf("periodic text should exceed the 0.3 duplicate ratio, got %f", r.DuplicateRatio)
	}
}

func TestExtractRepetitionShortText(t *testing.T) {
	r := ExtractRepetition("one two three", 8)
	if r.TotalWords != 3 || r.DistinctNGrams != 0 {
		t.Fatalf("expected no shingles for short text, got %+v", r)
	}
}

func TestExtractFreshnessSignals(t *testing.T) {
	text := "Published January 2026. The latest numbers show 45% growth since 2024."
	f := ExtractFreshnessSignals(text)
	if f.LatestYear != 2026 {
		t.Fatalf("expected latest year 2026, got %d", f.LatestYear)
	}
	if f.YearMentions != 2 {
		t.Fatalf("expected 2 year mentions, got %d", f.YearMentions)
	}
	if len(f.MonthMentions) != 1 || f.MonthMentions[0] != "january" {
		t.Fatalf("expected january mention, got %v", f.MonthMentions)
	}
	if !f.HasPublicationMarker {
		t.Fatal("expected publication marker")
	}
}

func TestExtractEntitiesSkipsSentenceStarters(t *testing.T) {
	text := "The market moved fast. Google partnered with Acme Corp on research."
	e := ExtractEntities(text)
	if len(e.Counts) != 2 {
		t.Fatalf("expected 2 unique entities, got %v", e.Counts)
	}
	if e.Counts["The"] != 0 {
		t.Fatal("sentence starters should be dropped")
	}
	if len(e.Organizations) != 1 || e.Organizations[0] != "Acme Corp" {
		t.Fatalf("expected Acme Corp as organization, got %v", e.Organizations)
	}
	if len(e.TechBrands) != 1 || e.TechBrands[0] != "Google" {
		t.Fatalf("expected Google as tech brand, got %v", e.TechBrands)
	}
}

func TestExtractSentenceVarietyEmpty(t *testing.T) {
	v := ExtractSentenceVariety("")
	if v.TotalSentences != 0 || v.AvgLength != 0 {
		t.Fatalf("expected zero features for empty text, got %+v", v)
	}
}

func TestExtractNaturalFlowContractions(t *testing.T) {
	f := ExtractNaturalFlow("Don't worry. It's easy and we haven't failed.")
	if !f.HasContractions || f.ContractionCount != 3 {
		t.Fatalf("expected 3 contractions, got %+v", f)
	}
}

func TestExtractVocabularyEmpty(t *testing.T) {
	v := ExtractVocabulary("")
	if v.TotalWords != 0 {
		t.Fatalf("expected zero words, got %d", v.TotalWords)
	}
	if v.MostRepeated == nil {
		t.Fatal("most repeated list should be empty, not nil")
	}
}
