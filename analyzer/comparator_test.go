package analyzer

import (
	"strings"
	"testing"
)

func TestCompareWordCountGap(t *testing.T) {
	yourText := strings.Repeat("word ", 500)
	competitor := CompetitorDoc{
		Text:      strings.Repeat("term ", 1500),
		WordCount: 1500,
	}

	r := NewContentComparator().Compare(yourText, YourContentMeta{}, competitor)
	wc := r.StructuralGaps.WordCount
	if wc.Yours != 500 || wc.Competitor != 1500 {
		t.Fatalf("unexpected word counts: %+v", wc)
	}
	if wc.Gap != 1000 {
		t.Fatalf("expected gap 1000, got %d", wc.Gap)
	}
	if wc.Percentage != 33.3 {
		t.Fatalf("expected 33.3%%, got %f", wc.Percentage)
	}
}

func TestCompareElementGaps(t *testing.T) {
	meta := YourContentMeta{HasLists: true}
	competitor := CompetitorDoc{HasImages: true, HasLists: true, HasTables: true, WordCount: 100, Text: "short"}

	r := NewContentComparator().Compare("some text here", meta, competitor)
	if !r.ElementGaps["images"].Gap {
		t.Fatal("competitor-only images should be a gap")
	}
	if r.ElementGaps["lists"].Gap {
		t.Fatal("lists present on both sides should not be a gap")
	}
	if !r.ElementGaps["tables"].Gap {
		t.Fatal("competitor-only tables should be a gap")
	}
}

func TestCompareRecommendationsCapped(t *testing.T) {
	yourText := strings.Repeat("alpha ", 100)
	competitor := CompetitorDoc{
		Text:        strings.Repeat("entirely different lexicon covering unrelated competitor subjects broadly ", 120),
		WordCount:   840,
		HeaderCount: 10,
		HasImages:   true,
		HasVideos:   true,
		HasLists:    true,
		HasTables:   true,
	}

	r := NewContentComparator().Compare(yourText, YourContentMeta{}, competitor)
	if len(r.Recommendations) > 8 {
		t.Fatalf("recommendations should be capped at 8, got %d", len(r.Recommendations))
	}
	if len(r.TopicGaps.UniqueToCompetitor) > 10 {
		t.Fatalf("topic gaps should be capped at 10, got %d", len(r.TopicGaps.UniqueToCompetitor))
	}
}

func TestInterpretGapScoreBands(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{85, "Excellent - Your content is highly competitive"},
		{65, "Good - Minor improvements needed"},
		{45, "Needs Work - Several gaps to address"},
		{10, "Significant Gaps - Major improvements required"},
	}
	for _, tc := range cases {
		if got := interpretGapScore(tc.score); got != tc.want {
			t.Fatalf("interpretGapScore(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
