package analyzer

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// OriginalityResult reports self-repetition and boilerplate signals.
type OriginalityResult struct {
	Score            int      `json:"score"`
	Uniqueness       int      `json:"uniqueness"`
	DuplicatePhrases int      `json:"duplicate_phrases"`
	TotalPhrases     int      `json:"total_phrases"`
	Boilerplate      bool     `json:"boilerplate_detected"`
	Feedback         []string `json:"feedback"`
	Issues           []string `json:"issues"`
}

func (r *OriginalityResult) ScoreValue() int              { return r.Score }
func (r *OriginalityResult) IssueList() []string          { return r.Issues }
func (r *OriginalityResult) RecommendationList() []string { return r.Feedback }

const originalityNGramSize = 8

var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`click here`),
	regexp.MustCompile(`subscribe to our newsletter`),
	regexp.MustCompile(`leave a comment below`),
	regexp.MustCompile(`follow us on`),
	regexp.MustCompile(`share this post`),
	regexp.MustCompile(`copyright \d{4}`),
}

var genericPhrases = []string{
	"in conclusion", "in summary", "as we have seen", "it is important to note",
	"it goes without saying", "needless to say", "at the end of the day",
}

type OriginalityAnalyzer struct{}

func NewOriginalityAnalyzer() *OriginalityAnalyzer { return &OriginalityAnalyzer{} }

func (a *OriginalityAnalyzer) Analyze(doc ContentDocument) *OriginalityResult {
	feats := ExtractRepetition(doc.Text, originalityNGramSize)
	if feats.TotalWords < 50 {
		return &OriginalityResult{
			Score:      100,
			Uniqueness: 100,
			Feedback:   []string{"Text too short for plagiarism analysis"},
			Issues:     []string{},
		}
	}

	score := 100
	feedback := []string{}
	issues := []string{}

	if feats.RepeatedNGrams > 0 {
		if feats.DuplicateRatio > 0.3 {
			score -= 40
			issues = append(issues, "High content repetition detected")
			feedback = append(feedback, "Significant phrase repetition - rewrite for originality")
		} else if feats.DuplicateRatio > 0.15 {
			score -= 20
			issues = append(issues, "Moderate content repetition")
			feedback = append(feedback, "Some phrases are repeated - consider varying language")
		}
		feedback = append(feedback, fmt.Sprintf("%d repeated phrases detected", feats.RepeatedNGrams))
	} else {
		feedback = append(feedback, "No significant phrase repetition detected")
	}

	lower := strings.ToLower(doc.Text)
	boilerplateCount := 0
	for _, p := range boilerplatePatterns {
		if p.MatchString(lower) {
			boilerplateCount++
		}
	}
	if boilerplateCount > 2 {
		score -= 5
		feedback = append(feedback, "Contains standard boilerplate content")
	}

	genericCount := 0
	for _, p := range genericPhrases {
		if strings.Contains(lower, p) {
			genericCount++
		}
	}
	if genericCount > 3 {
		score -= 10
		issues = append(issues, "Overuse of generic phrases")
		feedback = append(feedback, "Reduce generic filler phrases for more original content")
	}

	uniqueness := clampScore(int(math.Round(100 - feats.DuplicateRatio*100)))

	return &OriginalityResult{
		Score:            clampScore(score),
		Uniqueness:       uniqueness,
		DuplicatePhrases: feats.RepeatedNGrams,
		TotalPhrases:     feats.DistinctNGrams,
		Boilerplate:      boilerplateCount > 0,
		Feedback:         feedback,
		Issues:           issues,
	}
}
