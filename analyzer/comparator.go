package analyzer

import (
	"fmt"
	"sort"
	"strings"
)

// ComparisonResult reports gaps between your document and a competitor page.
type ComparisonResult struct {
	GapScore        int                   `json:"gap_score"`
	Interpretation  string                `json:"interpretation"`
	StructuralGaps  StructuralGaps        `json:"structural_gaps"`
	TopicGaps       TopicGaps             `json:"topic_gaps"`
	ElementGaps     map[string]ElementGap `json:"element_gaps"`
	Readability     ReadabilityComparison `json:"readability_comparison"`
	Recommendations []string              `json:"recommendations"`
	CompetitorInfo  CompetitorInfo        `json:"competitor_info"`
}

type StructuralGaps struct {
	WordCount WordCountGap `json:"word_count"`
	Headers   HeaderGap    `json:"headers"`
}

type WordCountGap struct {
	Yours      int     `json:"yours"`
	Competitor int     `json:"competitor"`
	Gap        int     `json:"gap"`
	Percentage float64 `json:"percentage"`
}

type HeaderGap struct {
	Yours      int `json:"yours"`
	Competitor int `json:"competitor"`
	Gap        int `json:"gap"`
}

type TopicGaps struct {
	Similarity         float64  `json:"similarity"`
	UniqueToCompetitor []string `json:"unique_to_competitor"`
	UniqueToYou        []string `json:"unique_to_you"`
	CommonTopics       []string `json:"common_topics"`
}

type ElementGap struct {
	Yours      bool `json:"yours"`
	Competitor bool `json:"competitor"`
	Gap        bool `json:"gap"`
}

type ReadabilityComparison struct {
	YourReadability       float64 `json:"your_readability"`
	CompetitorReadability float64 `json:"competitor_readability"`
	YourGradeLevel        float64 `json:"your_grade_level"`
	CompetitorGradeLevel  float64 `json:"competitor_grade_level"`
	Comparison            string  `json:"comparison"`
}

type CompetitorInfo struct {
	WordCount int  `json:"word_count"`
	Headers   int  `json:"headers"`
	HasImages bool `json:"has_images"`
	HasVideos bool `json:"has_videos"`
}

// YourContentMeta carries structural flags for your own document so element
// gaps can be computed symmetrically with the competitor's.
type YourContentMeta struct {
	Headers   []string
	HasImages bool
	HasVideos bool
	HasLists  bool
	HasTables bool
}

type ContentComparator struct{}

func NewContentComparator() *ContentComparator { return &ContentComparator{} }

// Compare runs a full gap analysis of your text against one competitor page.
func (c *ContentComparator) Compare(yourText string, meta YourContentMeta, competitor CompetitorDoc) *ComparisonResult {
	structural := compareStructure(yourText, meta, competitor)
	topics := analyzeTopicCoverage(yourText, competitor.Text)
	elements := compareElements(meta, competitor)
	readability := compareReadability(yourText, competitor.Text)

	return &ComparisonResult{
		GapScore:        scoreGaps(structural, topics, elements),
		Interpretation:  interpretGapScore(scoreGaps(structural, topics, elements)),
		StructuralGaps:  structural,
		TopicGaps:       topics,
		ElementGaps:     elements,
		Readability:     readability,
		Recommendations: gapRecommendations(structural, topics, elements, readability),
		CompetitorInfo: CompetitorInfo{
			WordCount: competitor.WordCount,
			Headers:   competitor.HeaderCount,
			HasImages: competitor.HasImages,
			HasVideos: competitor.HasVideos,
		},
	}
}

func compareStructure(yourText string, meta YourContentMeta, competitor CompetitorDoc) StructuralGaps {
	yourWords := len(strings.Fields(yourText))
	compWords := competitor.WordCount

	percentage := 0.0
	if compWords > 0 {
		percentage = round1(float64(yourWords) / float64(compWords) * 100)
	}

	return StructuralGaps{
		WordCount: WordCountGap{
			Yours:      yourWords,
			Competitor: compWords,
			Gap:        compWords - yourWords,
			Percentage: percentage,
		},
		Headers: HeaderGap{
			Yours:      len(meta.Headers),
			Competitor: competitor.HeaderCount,
			Gap:        competitor.HeaderCount - len(meta.Headers),
		},
	}
}

func analyzeTopicCoverage(yourText, competitorText string) TopicGaps {
	if yourText == "" || competitorText == "" {
		return TopicGaps{
			UniqueToCompetitor: []string{},
			UniqueToYou:        []string{},
			CommonTopics:       []string{},
		}
	}

	vectors := tfidfVectors([]string{yourText, competitorText}, true, 500)
	similarity := round1(cosineSimilarity(vectors[0], vectors[1]) * 100)

	yourTopics := topTerms(vectors[0], 20)
	compTopics := topTerms(vectors[1], 20)

	return TopicGaps{
		Similarity:         similarity,
		UniqueToCompetitor: setDifference(compTopics, yourTopics, 10),
		UniqueToYou:        setDifference(yourTopics, compTopics, 10),
		CommonTopics:       setIntersection(yourTopics, compTopics, 10),
	}
}

func topTerms(vec map[string]float64, n int) map[string]bool {
	terms := make([]string, 0, len(vec))
	for t := range vec {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if vec[terms[i]] != vec[terms[j]] {
			return vec[terms[i]] > vec[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > n {
		terms = terms[:n]
	}
	set := map[string]bool{}
	for _, t := range terms {
		if vec[t] > 0 {
			set[t] = true
		}
	}
	return set
}

func setDifference(a, b map[string]bool, limit int) []string {
	out := []string{}
	for t := range a {
		if !b[t] {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func setIntersection(a, b map[string]bool, limit int) []string {
	out := []string{}
	for t := range a {
		if b[t] {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func compareElements(meta YourContentMeta, competitor CompetitorDoc) map[string]ElementGap {
	return map[string]ElementGap{
		"images": {
			Yours:      meta.HasImages,
			Competitor: competitor.HasImages,
			Gap:        competitor.HasImages && !meta.HasImages,
		},
		"videos": {
			Yours:      meta.HasVideos,
			Competitor: competitor.HasVideos,
			Gap:        competitor.HasVideos && !meta.HasVideos,
		},
		"lists": {
			Yours:      meta.HasLists,
			Competitor: competitor.HasLists,
			Gap:        competitor.HasLists && !meta.HasLists,
		},
		"tables": {
			Yours:      meta.HasTables,
			Competitor: competitor.HasTables,
			Gap:        competitor.HasTables && !meta.HasTables,
		},
	}
}

func compareReadability(yourText, competitorText string) ReadabilityComparison {
	yours := AnalyzeReadability(yourText)
	comp := AnalyzeReadability(competitorText)

	comparison := "harder"
	if yours.FleschEase > comp.FleschEase {
		comparison = "easier"
	}

	return ReadabilityComparison{
		YourReadability:       yours.FleschEase,
		CompetitorReadability: comp.FleschEase,
		YourGradeLevel:        yours.FleschGrade,
		CompetitorGradeLevel:  comp.FleschGrade,
		Comparison:            comparison,
	}
}

func gapRecommendations(structural StructuralGaps, topics TopicGaps, elements map[string]ElementGap, readability ReadabilityComparison) []string {
	recommendations := []string{}

	wordGap := structural.WordCount.Gap
	if wordGap > 500 {
		recommendations = append(recommendations, fmt.Sprintf("Expand content by ~%d words to match competitor depth", wordGap))
	} else if wordGap < -500 {
		recommendations = append(recommendations, "Your content is longer - ensure it's not repetitive")
	}

	if structural.Headers.Gap > 2 {
		recommendations = append(recommendations, fmt.Sprintf("Add %d more section headers to improve structure", structural.Headers.Gap))
	}

	if len(topics.UniqueToCompetitor) > 0 {
		missing := firstN(topics.UniqueToCompetitor, 3)
		recommendations = append(recommendations, "Cover these competitor topics: "+strings.Join(missing, ", "))
	}

	if elements["images"].Gap {
		recommendations = append(recommendations, "Add relevant images - competitor has visual content")
	}
	if elements["videos"].Gap {
		recommendations = append(recommendations, "Consider adding video content for better engagement")
	}
	if elements["lists"].Gap {
		recommendations = append(recommendations, "Add bullet points or numbered lists for scannability")
	}
	if elements["tables"].Gap {
		recommendations = append(recommendations, "Include comparison tables or data visualizations")
	}

	if readability.Comparison == "harder" {
		recommendations = append(recommendations, "Simplify language - competitor content is easier to read")
	}

	return capRecommendations(recommendations, 8)
}

func scoreGaps(structural StructuralGaps, topics TopicGaps, elements map[string]ElementGap) int {
	score := 100

	// Word count (max -20)
	percentage := structural.WordCount.Percentage
	if percentage < 50 {
		score -= 20
	} else if percentage < 70 {
		score -= 15
	} else if percentage < 90 {
		score -= 10
	}

	// Topic coverage (max -30)
	if topics.Similarity < 30 {
		score -= 30
	} else if topics.Similarity < 50 {
		score -= 20
	} else if topics.Similarity < 70 {
		score -= 10
	}

	// Element gaps (5 each, max -20)
	for _, gap := range elements {
		if gap.Gap {
			score -= 5
		}
	}

	// Header gap (max -10)
	if structural.Headers.Gap > 3 {
		score -= 10
	} else if structural.Headers.Gap > 1 {
		score -= 5
	}

	return clampScore(score)
}

func interpretGapScore(score int) string {
	switch {
	case score >= 80:
		return "Excellent - Your content is highly competitive"
	case score >= 60:
		return "Good - Minor improvements needed"
	case score >= 40:
		return "Needs Work - Several gaps to address"
	default:
		return "Significant Gaps - Major improvements required"
	}
}
