package analyzer

import (
	"fmt"
	"strings"
)

// EntityResult scores named-entity coverage.
type EntityResult struct {
	Score          int             `json:"score"`
	UniqueEntities int             `json:"unique_entities"`
	TotalMentions  int             `json:"total_mentions"`
	TopEntities    []EntityMention `json:"top_entities"`
	Organizations  []string        `json:"organizations"`
	TechBrands     []string        `json:"tech_brands"`
	Feedback       []string        `json:"feedback"`
	Issues         []string        `json:"issues"`
}

func (r *EntityResult) ScoreValue() int              { return r.Score }
func (r *EntityResult) IssueList() []string          { return r.Issues }
func (r *EntityResult) RecommendationList() []string { return r.Feedback }

var authoritativeNames = []string{"Harvard", "Stanford", "MIT", "Forbes", "Reuters", "Bloomberg"}

type EntityAnalyzer struct{}

func NewEntityAnalyzer() *EntityAnalyzer { return &EntityAnalyzer{} }

func (a *EntityAnalyzer) Analyze(doc ContentDocument) *EntityResult {
	score := 50
	feedback := []string{}
	issues := []string{}

	feats := ExtractEntities(doc.Text)
	unique := len(feats.Counts)

	if unique > 10 {
		score += 20
		feedback = append(feedback, fmt.Sprintf("Excellent entity coverage with %d unique entities mentioned", unique))
	} else if unique > 5 {
		score += 10
		feedback = append(feedback, fmt.Sprintf("Good entity mentions: %d unique entities", unique))
	} else {
		score -= 10
		issues = append(issues, "Limited entity mentions - add more specific names and brands")
		feedback = append(feedback, "Consider adding more specific entities (people, companies, products)")
	}

	for _, name := range authoritativeNames {
		if strings.Contains(doc.Text, name) {
			score += 10
			feedback = append(feedback, "Authoritative sources mentioned - adds credibility")
			break
		}
	}

	if len(feats.Organizations) > 0 {
		score += 5
		feedback = append(feedback, fmt.Sprintf("%d organization(s) mentioned", len(feats.Organizations)))
	}
	if len(feats.TechBrands) > 0 {
		shown := feats.TechBrands
		if len(shown) > 3 {
			shown = shown[:3]
		}
		feedback = append(feedback, "Tech brands mentioned: "+strings.Join(shown, ", "))
	}

	top := feats.TopEntities(3)
	if len(top) > 0 && top[0].Count > 5 {
		issues = append(issues, fmt.Sprintf("Entity %q mentioned %d times - consider varying references", top[0].Name, top[0].Count))
		score -= 5
	}

	return &EntityResult{
		Score:          clampScore(score),
		UniqueEntities: unique,
		TotalMentions:  len(feats.Entities),
		TopEntities:    top,
		Organizations:  feats.Organizations,
		TechBrands:     feats.TechBrands,
		Feedback:       feedback,
		Issues:         issues,
	}
}
