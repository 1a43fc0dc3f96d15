package analyzer

import "testing"

func TestSentimentNeutralOnEmptyText(t *testing.T) {
	r := NewSentimentAnalyzer().Analyze(ContentDocument{})
	if r.Tone != "neutral" || r.Score != 50 {
		t.Fatalf("expected neutral 50, got tone=%q score=%d", r.Tone, r.Score)
	}
	if r.Subjectivity != 0.5 {
		t.Fatalf("expected default subjectivity 0.5, got %f", r.Subjectivity)
	}
}

func TestSentimentPositiveTone(t *testing.T) {
	text := "This is the best and most excellent perfect wonderful great product."
	r := NewSentimentAnalyzer().Analyze(ContentDocument{Text: text})
	if r.Tone != "positive" {
		t.Fatalf("expected positive tone, got %q", r.Tone)
	}
	if r.Score != 88 {
		t.Fatalf("expected score 88, got %d", r.Score)
	}
	if r.PositiveWords != 5 {
		t.Fatalf("expected 5 positive words, got %d", r.PositiveWords)
	}
	if !containsString(r.Issues, "High subjectivity detected") {
		t.Fatalf("expected subjectivity issue, got %v", r.Issues)
	}
}

func TestSentimentNegativeTone(t *testing.T) {
	text := "The worst terrible awful horrible experience."
	r := NewSentimentAnalyzer().Analyze(ContentDocument{Text: text})
	if r.Tone != "negative" {
		t.Fatalf("expected negative tone, got %q", r.Tone)
	}
	if r.Score != 0 {
		t.Fatalf("expected score 0, got %d", r.Score)
	}
	if r.NegativeWords != 4 {
		t.Fatalf("expected 4 negative words, got %d", r.NegativeWords)
	}
}
