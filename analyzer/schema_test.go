package analyzer

import (
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
}

func TestSchemaHowToSteps(t *testing.T) {
	g := &SchemaGenerator{Now: fixedClock}
	text := "How to bake bread at home easily\n\nStep 1: Mix the flour. Step 2: Add water. Step 3: Knead."
	r, err := g.Generate(text, "https://example.com/bread", "bake bread", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if r.ContentType != "HowTo" {
		t.Fatalf("expected HowTo, got %q", r.ContentType)
	}
	steps, ok := r.Schema["step"].([]map[string]any)
	if !ok || len(steps) != 3 {
		t.Fatalf("expected 3 steps, got %v", r.Schema["step"])
	}
	if steps[0]["text"] != "Mix the flour." {
		t.Fatalf("unexpected first step: %v", steps[0]["text"])
	}
	if r.Schema["name"] != "How to bake bread at home easily" {
		t.Fatalf("unexpected title: %v", r.Schema["name"])
	}
}

func TestSchemaFAQPairs(t *testing.T) {
	g := &SchemaGenerator{Now: fixedClock}
	text := "What is sourdough?\nA naturally leavened bread.\n" +
		"How do starters work?\nWild yeast ferments flour.\n" +
		"Why does it rise?\nGas expands the dough.\n" +
		"What is hydration?\nThe water ratio."
	r, err := g.Generate(text, "", "", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if r.ContentType != "FAQ" {
		t.Fatalf("expected FAQ, got %q", r.ContentType)
	}
	pairs, ok := r.Schema["mainEntity"].([]map[string]any)
	if !ok || len(pairs) != 4 {
		t.Fatalf("expected 4 question pairs, got %v", r.Schema["mainEntity"])
	}
	if pairs[0]["name"] != "What is sourdough?" {
		t.Fatalf("unexpected first question: %v", pairs[0]["name"])
	}
	answer := pairs[0]["acceptedAnswer"].(map[string]any)
	if answer["text"] != "A naturally leavened bread." {
		t.Fatalf("unexpected first answer: %v", answer["text"])
	}
}

func TestSchemaArticleDefaults(t *testing.T) {
	g := &SchemaGenerator{Now: fixedClock}
	text := "Go services benefit from profiling.\n\nWritten by Jane Smith covering production workloads."
	r, err := g.Generate(text, "https://example.com/post", "", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if r.ContentType != "Article" {
		t.Fatalf("expected Article, got %q", r.ContentType)
	}
	if r.Schema["datePublished"] != "2026-05-01T12:00:00Z" {
		t.Fatalf("expected fixed timestamp, got %v", r.Schema["datePublished"])
	}
	author := r.Schema["author"].(map[string]any)
	if author["name"] != "Jane Smith" {
		t.Fatalf("expected extracted author, got %v", author["name"])
	}
	if r.JSONLD == "" {
		t.Fatal("expected serialized JSON-LD")
	}
}
