package analyzer

import (
	"strings"
	"testing"
)

func TestOriginalityShortTextIsNeutral(t *testing.T) {
	r := NewOriginalityAnalyzer().Analyze(ContentDocument{Text: "Only a handful of words here."})
	if r.Score != 100 || r.Uniqueness != 100 {
		t.Fatalf("short text should stay neutral, got score=%d uniqueness=%d", r.Score, r.Uniqueness)
	}
	if len(r.Feedback) != 1 || r.Feedback[0] != "Text too short for plagiarism analysis" {
		t.Fatalf("unexpected feedback: %v", r.Feedback)
	}
}

func TestOriginalityHeavyRepetition(t *testing.T) {
	text := strings.Repeat("alpha bravo charlie delta echo foxtrot golf hotel ", 10)
	r := NewOriginalityAnalyzer().Analyze(ContentDocument{Text: text})
	if r.Score != 60 {
		t.Fatalf("expected score 60 after the heavy-repetition deduction, got %d", r.Score)
	}
	if r.Uniqueness != 0 {
		t.Fatalf("fully periodic text should have zero uniqueness, got %d", r.Uniqueness)
	}
	if !containsString(r.Issues, "High content repetition detected") {
		t.Fatalf("expected repetition issue, got %v", r.Issues)
	}
}

func TestOriginalityUniquenessRoundsHalfUp(t *testing.T) {
	block := "alpha bravo charlie delta echo foxtrot golf hotel"
	filler := "maple cedar willow oak birch elm aspen spruce pine fir " +
		"juniper laurel hazel rowan alder poplar beech sycamore chestnut walnut " +
		"hickory magnolia dogwood redbud sumac yew larch hemlock cypress sequoia " +
		"ginkgo acacia baobab mangrove teak ebony"
	r := NewOriginalityAnalyzer().Analyze(ContentDocument{Text: block + " " + filler + " " + block})
	// 1 repeated shingle of 44 distinct: 100 - 100/44 = 97.7, rounds to 98.
	if r.Uniqueness != 98 {
		t.Fatalf("expected uniqueness 98, got %d", r.Uniqueness)
	}
}

func TestOriginalityCleanText(t *testing.T) {
	text := "Sourdough fermentation depends on wild yeast colonies living inside every starter culture. " +
		"Bakers maintain these cultures through regular feeding schedules using fresh flour and warm water. " +
		"Temperature control shapes flavor development during bulk proofing stages. " +
		"Longer cold retards produce deeper sour notes while shorter ambient rises keep loaves mild. " +
		"Scoring patterns guide oven spring and create distinctive crust designs unique per baker."
	r := NewOriginalityAnalyzer().Analyze(ContentDocument{Text: text})
	if r.Score != 100 {
		t.Fatalf("clean text should keep full score, got %d", r.Score)
	}
	if r.Feedback[0] != "No significant phrase repetition detected" {
		t.Fatalf("unexpected feedback: %v", r.Feedback)
	}
	if r.Boilerplate {
		t.Fatal("no boilerplate present")
	}
}
