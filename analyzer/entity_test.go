package analyzer

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEntityRichContent(t *testing.T) {
	text := "Harvard researchers worked with Google, Microsoft, Apple, Amazon, Netflix and Tesla on Acme Corp projects."
	r := NewEntityAnalyzer().Analyze(ContentDocument{Text: text})
	if r.UniqueEntities != 8 {
		t.Fatalf("expected 8 unique entities, got %d", r.UniqueEntities)
	}
	if r.Score != 75 {
		t.Fatalf("expected score 75, got %d", r.Score)
	}
	if len(r.Organizations) != 1 || r.Organizations[0] != "Acme Corp" {
		t.Fatalf("unexpected organizations: %v", r.Organizations)
	}
	if len(r.TechBrands) != 6 {
		t.Fatalf("expected 6 tech brands, got %v", r.TechBrands)
	}
}

func TestEntitySparseContent(t *testing.T) {
	r := NewEntityAnalyzer().Analyze(ContentDocument{Text: "the quick brown fox jumps."})
	if r.Score != 40 {
		t.Fatalf("expected score 40, got %d", r.Score)
	}
	if !containsString(r.Issues, "Limited entity mentions - add more specific names and brands") {
		t.Fatalf("expected sparse-entity issue, got %v", r.Issues)
	}
}

func TestEntityOverMention(t *testing.T) {
	text := "Tesla leads. Tesla grows. Tesla ships. Tesla wins. Tesla builds. Tesla sells cars with Ford and Honda helping suppliers like Bosch and Siemens and Acme grow."
	r := NewEntityAnalyzer().Analyze(ContentDocument{Text: text})
	if len(r.TopEntities) == 0 || r.TopEntities[0].Name != "Tesla" {
		t.Fatalf("expected Tesla as top entity, got %v", r.TopEntities)
	}
	found := false
	for _, issue := range r.Issues {
		if issue == `Entity "Tesla" mentioned 6 times - consider varying references` {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected over-mention issue, got %v", r.Issues)
	}

	raw, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	if !strings.Contains(string(raw), `"name":"Tesla"`) {
		t.Fatalf("top entities should serialize with a name key, got %s", raw)
	}
}
