package analyzer

import (
	"math"
	"testing"
)

func TestCosineSimilarityIdenticalDocs(t *testing.T) {
	vectors := tfidfVectors([]string{"apple banana cherry", "apple banana cherry"}, false, 0)
	sim := cosineSimilarity(vectors[0], vectors[1])
	if math.Abs(sim-1) > 1e-9 {
		t.Fatalf("identical documents should have similarity 1, got %f", sim)
	}
}

func TestCosineSimilarityDisjointDocs(t *testing.T) {
	vectors := tfidfVectors([]string{"apple banana", "xylophone zebra"}, false, 0)
	if sim := cosineSimilarity(vectors[0], vectors[1]); sim != 0 {
		t.Fatalf("disjoint documents should have similarity 0, got %f", sim)
	}
}

func TestTfidfTermsBigrams(t *testing.T) {
	terms := tfidfTerms("quick brown fox", true)
	if len(terms) != 5 {
		t.Fatalf("expected 3 unigrams plus 2 bigrams, got %v", terms)
	}
	if !containsString(terms, "quick brown") {
		t.Fatalf("expected bigram, got %v", terms)
	}
}

func TestTfidfTermsDropStopwordsAndShortTokens(t *testing.T) {
	terms := tfidfTerms("the quick a fox", false)
	if len(terms) != 2 || terms[0] != "quick" || terms[1] != "fox" {
		t.Fatalf("expected [quick fox], got %v", terms)
	}
}

func TestTfidfVocabularyCap(t *testing.T) {
	vectors := tfidfVectors([]string{"alpha beta", "alpha gamma"}, false, 1)
	if len(vectors[0]) != 1 {
		t.Fatalf("vocabulary should be capped to one term, got %v", vectors[0])
	}
	if _, ok := vectors[0]["alpha"]; !ok {
		t.Fatalf("highest-df term should survive the cap, got %v", vectors[0])
	}
}
