package analyzer

import (
	"fmt"
	"strings"
)

// AEOResult scores how extractable the content is for answer engines.
type AEOResult struct {
	Score           int        `json:"score"`
	Issues          []string   `json:"issues"`
	Recommendations []string   `json:"recommendations"`
	Details         AEODetails `json:"details"`
	GoodPoints      []string   `json:"good_points"`
}

type AEODetails struct {
	Citations      CitationFeatures  `json:"citations"`
	StructuredData StructureFeatures `json:"structured_data"`
	AnswerPatterns AnswerFeatures    `json:"answer_patterns"`
	Questions      QuestionFeatures  `json:"questions"`
	Semantic       SemanticFeatures  `json:"semantic"`
}

// SemanticFeatures is informational only; it carries no score weight.
type SemanticFeatures struct {
	EntityDensity     float64 `json:"entity_density"`
	CompletenessRatio float64 `json:"completeness_ratio"`
}

func (r *AEOResult) ScoreValue() int              { return r.Score }
func (r *AEOResult) IssueList() []string          { return r.Issues }
func (r *AEOResult) RecommendationList() []string { return r.Recommendations }

type AEOAnalyzer struct{}

func NewAEOAnalyzer() *AEOAnalyzer { return &AEOAnalyzer{} }

func (a *AEOAnalyzer) Analyze(doc ContentDocument) *AEOResult {
	issues := []string{}
	recommendations := []string{}

	citations := ExtractCitations(doc.Text)
	if citations.Count == 0 {
		issues = append(issues, "No citations or sources found")
		recommendations = append(recommendations, "Add 3-5 credible sources with links to authoritative sites")
	} else if citations.Count < 3 {
		issues = append(issues, fmt.Sprintf("Only %d citation(s) found", citations.Count))
		recommendations = append(recommendations, "Add more citations to establish credibility (aim for 5+)")
	}

	structure := ExtractStructure(doc.Text, doc.Headers)
	if !structure.HasFAQ {
		issues = append(issues, "No FAQ section detected")
		recommendations = append(recommendations, "Add FAQ section with schema markup for featured snippets")
	}
	if !structure.HasLists {
		issues = append(issues, "No bullet points or numbered lists")
		recommendations = append(recommendations, "Use lists for better AI parsing and featured snippet potential")
	}

	answers := ExtractAnswerPatterns(doc.Text)
	if answers.DirectAnswers == 0 {
		issues = append(issues, "No direct answer patterns found")
		recommendations = append(recommendations, "Start with direct answers to questions (e.g., 'The best way to...')")
	}

	questions := ExtractQuestions(doc.Text)
	if questions.QuestionsAnswered < 3 {
		issues = append(issues, fmt.Sprintf("Only %d question(s) addressed", questions.QuestionsAnswered))
		recommendations = append(recommendations, "Answer 5+ common questions for better AEO coverage")
	}

	semantic := analyzeSemanticRichness(doc.Text)

	return &AEOResult{
		Score:           scoreAEO(citations, structure, answers, questions),
		Issues:          issues,
		Recommendations: capRecommendations(recommendations, 3),
		Details: AEODetails{
			Citations:      citations,
			StructuredData: structure,
			AnswerPatterns: answers,
			Questions:      questions,
			Semantic:       semantic,
		},
		GoodPoints: aeoGoodPoints(citations, structure, answers, questions),
	}
}

func analyzeSemanticRichness(text string) SemanticFeatures {
	words := strings.Fields(text)
	capitalized := 0
	for _, w := range words {
		if len(w) > 2 && w[0] >= 'A' && w[0] <= 'Z' {
			capitalized++
		}
	}
	density := 0.0
	if len(words) > 0 {
		density = float64(capitalized) / float64(len(words)) * 100
	}

	parts := sentenceSplitter.Split(text, -1)
	complete := 0
	for _, p := range parts {
		if len(strings.Fields(p)) >= 5 {
			complete++
		}
	}
	ratio := 0.0
	if len(parts) > 0 {
		ratio = float64(complete) / float64(len(parts))
	}

	return SemanticFeatures{EntityDensity: density, CompletenessRatio: ratio}
}

func scoreAEO(citations CitationFeatures, structure StructureFeatures, answers AnswerFeatures, questions QuestionFeatures) int {
	score := 100

	// Citations (25 points)
	if citations.Count == 0 {
		score -= 25
	} else if citations.Count < 3 {
		score -= 15
	} else if citations.Count < 5 {
		score -= 8
	}
	if !citations.HasQualitySources {
		score -= 5
	}

	// Structured formatting (30 points)
	if !structure.HasFAQ {
		score -= 12
	}
	if !structure.HasLists {
		score -= 10
	}
	if !structure.HasProperHeaders {
		score -= 8
	}

	// Answer patterns (25 points)
	if answers.DirectAnswers == 0 {
		score -= 15
	} else if answers.DirectAnswers < 3 {
		score -= 8
	}
	if !answers.HasDefinition {
		score -= 5
	}
	if !answers.HasEarlyAnswer {
		score -= 5
	}

	// Question coverage (20 points)
	if questions.QuestionsAnswered == 0 {
		score -= 20
	} else if questions.QuestionsAnswered < 3 {
		score -= 12
	} else if questions.QuestionsAnswered < 5 {
		score -= 6
	}

	return clampScore(score)
}

func aeoGoodPoints(citations CitationFeatures, structure StructureFeatures, answers AnswerFeatures, questions QuestionFeatures) []string {
	good := []string{}
	if citations.Count >= 5 {
		good = append(good, fmt.Sprintf("%d citations with sources", citations.Count))
	}
	if citations.HasQualitySources {
		good = append(good, "Authoritative sources present (.gov/.edu/.org)")
	}
	if structure.HasFAQ {
		good = append(good, "FAQ section present")
	}
	if structure.HasLists && structure.ListCount >= 3 {
		good = append(good, "Well-formatted with lists for scannability")
	}
	if answers.DirectAnswers >= 3 {
		good = append(good, "Direct answer patterns present")
	}
	if questions.QuestionsAnswered >= 5 {
		good = append(good, fmt.Sprintf("Answers %d questions", questions.QuestionsAnswered))
	}
	return good
}
