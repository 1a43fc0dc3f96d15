package analyzer

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// TextGenerator produces improvement text from a prompt. Implemented by the
// llm package; suggestions fall back to a rule-based list when it errors.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// WeakArea is a scoring dimension below the improvement threshold.
type WeakArea struct {
	Area     string `json:"area"`
	Score    int    `json:"score"`
	Severity string `json:"severity"`
}

type AreaSuggestion struct {
	Area        string   `json:"area"`
	Score       int      `json:"score"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"ai_suggestions"`
	Priority    string   `json:"priority"`
}

type PriorityAction struct {
	Area   string `json:"area"`
	Action string `json:"action"`
	Impact string `json:"impact"`
	Effort string `json:"effort"`
}

type SuggestionReport struct {
	Status          string           `json:"status"`
	Message         string           `json:"message,omitempty"`
	WeakAreas       []WeakArea       `json:"weak_areas,omitempty"`
	Suggestions     []AreaSuggestion `json:"suggestions"`
	PriorityActions []PriorityAction `json:"priority_actions,omitempty"`
}

var fallbackSuggestions = []string{
	"Expand content depth with more detailed explanations and examples",
	"Add structured data markup (schema.org) for better search visibility",
	"Include more visual elements like images, infographics, or videos",
	"Break long paragraphs into shorter, scannable sections with subheadings",
	"Add internal and external links to authoritative sources",
}

type Suggestor struct {
	generator TextGenerator
}

func NewSuggestor(generator TextGenerator) *Suggestor {
	return &Suggestor{generator: generator}
}

// Suggest builds improvement suggestions for every dimension scoring below 60.
func (s *Suggestor) Suggest(ctx context.Context, content string, result *AuditResult) *SuggestionReport {
	weak := identifyWeakAreas(result)
	if len(weak) == 0 {
		return &SuggestionReport{
			Status:      "excellent",
			Message:     "Your content is performing well across all dimensions!",
			Suggestions: []AreaSuggestion{},
		}
	}

	suggestions := make([]AreaSuggestion, 0, len(weak))
	for _, area := range weak {
		issues, recommendations := areaDetails(result, area.Area)

		texts := s.generateFor(ctx, content, area, issues, recommendations)

		priority := "medium"
		if area.Score < 40 {
			priority = "high"
		}
		suggestions = append(suggestions, AreaSuggestion{
			Area:        area.Area,
			Score:       area.Score,
			Issues:      firstN(issues, 3),
			Suggestions: texts,
			Priority:    priority,
		})
	}

	return &SuggestionReport{
		Status:          "improvements_available",
		WeakAreas:       weak,
		Suggestions:     suggestions,
		PriorityActions: prioritize(suggestions),
	}
}

func identifyWeakAreas(result *AuditResult) []WeakArea {
	scores := []struct {
		name  string
		score int
	}{
		{"SEO", result.SEO.Score},
		{"SERP Performance", result.SERPPerformance.Score},
		{"AEO", result.AEO.Score},
		{"Humanization", result.Humanization.Score},
		{"Differentiation", result.Differentiation.Score},
	}

	weak := []WeakArea{}
	for _, s := range scores {
		if s.score < 60 {
			severity := "moderate"
			if s.score < 40 {
				severity = "critical"
			}
			weak = append(weak, WeakArea{Area: s.name, Score: s.score, Severity: severity})
		}
	}
	sort.Slice(weak, func(i, j int) bool { return weak[i].Score < weak[j].Score })
	return weak
}

func areaDetails(result *AuditResult, area string) (issues, recommendations []string) {
	var r Scorable
	switch area {
	case "SERP Performance":
		r = result.SERPPerformance
	case "AEO":
		r = result.AEO
	case "Humanization":
		r = result.Humanization
	case "Differentiation":
		r = result.Differentiation
	default:
		r = result.SEO
	}
	return r.IssueList(), r.RecommendationList()
}

func (s *Suggestor) generateFor(ctx context.Context, content string, area WeakArea, issues, recommendations []string) []string {
	if s.generator == nil {
		return fallbackSuggestions
	}
	prompt := improvementPrompt(content, area.Area, area.Score, issues, recommendations)
	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return fallbackSuggestions
	}
	parsed := parseSuggestionText(text)
	if len(parsed) == 0 {
		return fallbackSuggestions
	}
	return parsed
}

func improvementPrompt(content, area string, score int, issues, recommendations []string) string {
	preview := content
	if len(preview) > 1500 {
		preview = preview[:1500] + "..."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert content strategist. Analyze this content and provide specific, actionable improvements for %s.\n\n", area)
	fmt.Fprintf(&b, "Current Score: %d/100\n\nContent Preview:\n%s\n\n", score, preview)
	b.WriteString("Identified Issues:\n")
	for _, issue := range firstN(issues, 5) {
		fmt.Fprintf(&b, "- %s\n", issue)
	}
	b.WriteString("\nRecommendations:\n")
	for _, rec := range firstN(recommendations, 5) {
		fmt.Fprintf(&b, "- %s\n", rec)
	}
	b.WriteString("\nProvide 3-5 specific, actionable improvements with examples:\n")
	b.WriteString("1. What to change\n2. Why it matters\n3. Specific example or rewrite suggestion\n\n")
	b.WriteString("Keep suggestions concise and practical.")
	return b.String()
}

// parseSuggestionText splits generated text into numbered or bulleted items.
func parseSuggestionText(text string) []string {
	suggestions := []string{}
	current := ""
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && (isDigit(line[0]) || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•")) {
			if current != "" {
				suggestions = append(suggestions, strings.TrimSpace(current))
			}
			current = line
		} else if current != "" && line != "" {
			current += " " + line
		}
	}
	if current != "" {
		suggestions = append(suggestions, strings.TrimSpace(current))
	}
	return firstN(suggestions, 5)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func prioritize(suggestions []AreaSuggestion) []PriorityAction {
	actions := []PriorityAction{}
	for _, s := range suggestions {
		if s.Priority != "high" {
			continue
		}
		action := "Improve " + s.Area
		if len(s.Suggestions) > 0 {
			action = s.Suggestions[0]
		}
		actions = append(actions, PriorityAction{
			Area:   s.Area,
			Action: action,
			Impact: "High - Will significantly improve score",
			Effort: "Medium",
		})
		if len(actions) == 3 {
			break
		}
	}
	return actions
}
