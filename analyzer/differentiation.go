package analyzer

import (
	"fmt"
	"regexp"
	"strings"
)

// DifferentiationResult measures content uniqueness against competitor pages.
type DifferentiationResult struct {
	Score               int              `json:"score"`
	OverlapAnalysis     *OverlapAnalysis `json:"overlap_analysis"`
	Issues              []string         `json:"issues"`
	Recommendations     []string         `json:"recommendations"`
	UniqueElementsFound []string         `json:"unique_elements_found"`
	Opportunities       []string         `json:"differentiation_opportunities"`
}

// UniqueSentences is numeric on the normal path and the string "N/A" on
// the no-competitor sentinel.
type OverlapAnalysis struct {
	AvgSimilarity     string `json:"avg_similarity"`
	HighestSimilarity string `json:"highest_similarity"`
	UniqueSentences   any    `json:"unique_sentences"`
}

func (r *DifferentiationResult) ScoreValue() int              { return r.Score }
func (r *DifferentiationResult) IssueList() []string          { return r.Issues }
func (r *DifferentiationResult) RecommendationList() []string { return r.Recommendations }

type overlapData struct {
	avgSimilarity     float64
	highestSimilarity float64
	uniqueSentences   float64
}

type uniqueElements struct {
	hasUniqueData    bool
	hasExperience    bool
	hasCaseStudies   bool
	hasMultimedia    bool
	uniqueDataPoints int
}

type valueAdds struct {
	hasUniqueAngle bool
	hasOpinions    bool
	hasExpertInput bool
}

var (
	plainHeaderPattern = regexp.MustCompile(`(?:^|\n)([A-Z][^\n]{10,80})(?:\n|$)`)
	numberTokenPattern = regexp.MustCompile(`\b\d+[%$]?\b`)
	statOrDollarRe     = regexp.MustCompile(`\d+%|\d+\s*dollars?`)

	experienceMarkers = []string{
		"in my experience", "i found", "i tested", "i tried",
		"we discovered", "our research", "our analysis", "our study",
	}
	caseMarkers       = []string{"case study", "example:", "for instance", "real-world example"}
	multimediaMarkers = []string{"image", "infographic", "chart", "graph", "video", "screenshot"}
	uniqueAngles      = []string{
		"beginner", "advanced", "expert", "student", "professional",
		"budget", "premium", "enterprise", "small business",
		"complete guide", "ultimate guide", "definitive guide",
	}
	opinionMarkers = []string{
		"i believe", "i think", "in our opinion", "we recommend",
		"our take", "my recommendation", "controversial", "unpopular opinion",
	}
	quoteMarkers = []string{
		"expert", "specialist", "according to", "says", "told us",
		"interview", "spoke with", "conversation with",
	}
)

type DifferentiationAnalyzer struct{}

func NewDifferentiationAnalyzer() *DifferentiationAnalyzer { return &DifferentiationAnalyzer{} }

// Analyze compares the document against already-fetched competitor pages.
// Competitor retrieval lives in the serp package; pages shorter than 500
// characters are skipped as extraction failures.
func (a *DifferentiationAnalyzer) Analyze(doc ContentDocument, competitors []CompetitorDoc) *DifferentiationResult {
	if doc.TargetKeyword == "" {
		return noKeywordDifferentiation()
	}

	texts := make([]string, 0, len(competitors))
	for _, c := range competitors {
		if len(c.Text) > 500 {
			texts = append(texts, c.Text)
		}
	}
	if len(texts) > 3 {
		texts = texts[:3]
	}
	if len(texts) == 0 {
		return noCompetitorDifferentiation()
	}

	issues := []string{}
	recommendations := []string{}

	overlap := contentOverlap(doc.Text, texts)
	if overlap.avgSimilarity > 70 {
		issues = append(issues, fmt.Sprintf("%.0f%% content overlap with top 3 SERP results", overlap.avgSimilarity))
		recommendations = append(recommendations, "Rewrite sections to add unique perspective and original insights")
	}

	elements := findUniqueElements(doc.Text, texts)
	if !elements.hasUniqueData {
		issues = append(issues, "No unique examples or data")
		recommendations = append(recommendations, "Add original data points, case studies, or product comparisons")
	}

	structureSimilarity := structuralOverlap(doc.Text, texts)
	if structureSimilarity > 80 {
		issues = append(issues, "Same structure as competitors (all follow identical outline)")
		recommendations = append(recommendations, "Use unique angle (e.g., 'student perspective' vs generic advice)")
	}

	adds := findValueAdds(doc.Text)
	if !adds.hasUniqueAngle {
		issues = append(issues, "Generic content without unique perspective")
		recommendations = append(recommendations, "Add personal experience, expert insights, or unique methodology")
	}
	if !elements.hasMultimedia {
		issues = append(issues, "No unique visual elements")
		recommendations = append(recommendations, "Add original images, infographics, or video content")
	}

	return &DifferentiationResult{
		Score: scoreDifferentiation(overlap, elements, structureSimilarity, adds),
		OverlapAnalysis: &OverlapAnalysis{
			AvgSimilarity:     fmt.Sprintf("%.0f%%", overlap.avgSimilarity),
			HighestSimilarity: fmt.Sprintf("%.0f%%", overlap.highestSimilarity),
			UniqueSentences:   overlap.uniqueSentences,
		},
		Issues:              issues,
		Recommendations:     capRecommendations(recommendations, 3),
		UniqueElementsFound: listUniqueElements(elements, adds),
		Opportunities:       differentiationStrategies(doc.Text, doc.TargetKeyword),
	}
}

func contentOverlap(text string, competitorTexts []string) overlapData {
	docs := append([]string{text}, competitorTexts...)
	vectors := tfidfVectors(docs, false, 500)

	var sum, highest float64
	for _, v := range vectors[1:] {
		sim := cosineSimilarity(vectors[0], v) * 100
		sum += sim
		if sim > highest {
			highest = sim
		}
	}

	return overlapData{
		avgSimilarity:     sum / float64(len(competitorTexts)),
		highestSimilarity: highest,
		uniqueSentences:   uniqueSentenceRatio(text, competitorTexts),
	}
}

func uniqueSentenceRatio(text string, competitorTexts []string) float64 {
	raw := sentenceSplitter.Split(text, -1)
	sentences := []string{}
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if len(s) > 20 {
			sentences = append(sentences, strings.ToLower(s))
		}
	}
	if len(sentences) == 0 {
		return 0
	}

	combined := strings.ToLower(strings.Join(competitorTexts, " "))
	unique := 0
	for _, sentence := range sentences {
		words := strings.Fields(sentence)
		if len(words) <= 5 {
			continue
		}
		matches := 0
		for _, w := range words {
			if strings.Contains(combined, w) {
				matches++
			}
		}
		if float64(matches)/float64(len(words)) < 0.6 {
			unique++
		}
	}
	return float64(unique) / float64(len(sentences)) * 100
}

func findUniqueElements(text string, competitorTexts []string) uniqueElements {
	combined := strings.ToLower(strings.Join(competitorTexts, " "))
	lower := strings.ToLower(text)

	competitorNumbers := map[string]bool{}
	for _, n := range numberTokenPattern.FindAllString(combined, -1) {
		competitorNumbers[n] = true
	}
	uniqueNumbers := map[string]bool{}
	for _, n := range numberTokenPattern.FindAllString(text, -1) {
		if !competitorNumbers[n] {
			uniqueNumbers[n] = true
		}
	}

	caseCount := 0
	for _, m := range caseMarkers {
		caseCount += strings.Count(lower, m)
	}

	return uniqueElements{
		hasUniqueData:    len(uniqueNumbers) > 3,
		hasExperience:    containsAny(lower, experienceMarkers),
		hasCaseStudies:   caseCount > 0,
		hasMultimedia:    containsAny(lower, multimediaMarkers),
		uniqueDataPoints: len(uniqueNumbers),
	}
}

func structuralOverlap(text string, competitorTexts []string) float64 {
	headers := extractPlainHeaders(text, 5)
	if len(headers) == 0 || len(competitorTexts) == 0 {
		return 0
	}

	matches := 0
	for _, compText := range competitorTexts {
		compHeaders := extractPlainHeaders(compText, 5)
		for _, h := range headers {
			hWords := wordSet(h)
			for _, ch := range compHeaders {
				if countCommon(hWords, wordSet(ch)) >= 2 {
					matches++
					break
				}
			}
		}
	}

	total := len(headers) * len(competitorTexts)
	return float64(matches) / float64(total) * 100
}

func extractPlainHeaders(text string, limit int) []string {
	found := plainHeaderPattern.FindAllStringSubmatch(text, -1)
	headers := make([]string, 0, len(found))
	for _, m := range found {
		headers = append(headers, m[1])
		if len(headers) == limit {
			break
		}
	}
	return headers
}

func wordSet(s string) map[string]bool {
	set := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}

func countCommon(a, b map[string]bool) int {
	n := 0
	for w := range a {
		if b[w] {
			n++
		}
	}
	return n
}

func containsAny(lower string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func findValueAdds(text string) valueAdds {
	lower := strings.ToLower(text)
	return valueAdds{
		hasUniqueAngle: containsAny(lower, uniqueAngles),
		hasOpinions:    containsAny(lower, opinionMarkers),
		hasExpertInput: containsAny(lower, quoteMarkers),
	}
}

func scoreDifferentiation(overlap overlapData, elements uniqueElements, structureSimilarity float64, adds valueAdds) int {
	score := 100

	// Content overlap (35 points)
	if overlap.avgSimilarity > 80 {
		score -= 35
	} else if overlap.avgSimilarity > 70 {
		score -= 25
	} else if overlap.avgSimilarity > 60 {
		score -= 15
	} else if overlap.avgSimilarity > 50 {
		score -= 8
	}

	// Unique elements (30 points)
	if !elements.hasUniqueData {
		score -= 12
	}
	if !elements.hasExperience {
		score -= 8
	}
	if !elements.hasCaseStudies {
		score -= 5
	}
	if !elements.hasMultimedia {
		score -= 5
	}

	// Structure differentiation (20 points)
	if structureSimilarity > 80 {
		score -= 20
	} else if structureSimilarity > 60 {
		score -= 12
	} else if structureSimilarity > 40 {
		score -= 6
	}

	// Unique value (15 points)
	if !adds.hasUniqueAngle {
		score -= 8
	}
	if !adds.hasOpinions {
		score -= 4
	}
	if !adds.hasExpertInput {
		score -= 3
	}

	return clampScore(score)
}

func listUniqueElements(elements uniqueElements, adds valueAdds) []string {
	out := []string{}
	if elements.hasUniqueData {
		out = append(out, fmt.Sprintf("Unique data points (%d found)", elements.uniqueDataPoints))
	}
	if elements.hasExperience {
		out = append(out, "Personal experience/insights")
	}
	if elements.hasCaseStudies {
		out = append(out, "Case studies/examples")
	}
	if adds.hasUniqueAngle {
		out = append(out, "Unique target audience angle")
	}
	if adds.hasOpinions {
		out = append(out, "Original opinions/recommendations")
	}
	if adds.hasExpertInput {
		out = append(out, "Expert quotes/input")
	}
	if len(out) == 0 {
		return []string{"No significant unique elements found"}
	}
	return out
}

func differentiationStrategies(text, targetKeyword string) []string {
	lower := strings.ToLower(text)
	strategies := []string{}

	if !strings.Contains(lower, "example") {
		strategies = append(strategies, "Add real-world examples or case studies")
	}
	if !statOrDollarRe.MatchString(text) {
		strategies = append(strategies, "Include specific statistics or data")
	}
	if !strings.Contains(lower, "we tested") && !strings.Contains(lower, "i tested") {
		strategies = append(strategies, "Add original research or product testing")
	}

	strategies = append(strategies,
		fmt.Sprintf("Create '%s for [specific audience]' angle", targetKeyword),
		"Add contrarian viewpoint or myth-busting section",
		"Include expert interview or quote",
		"Create original infographic or visual",
	)

	if len(strategies) > 5 {
		strategies = strategies[:5]
	}
	return strategies
}

func noKeywordDifferentiation() *DifferentiationResult {
	return &DifferentiationResult{
		Score:               0,
		OverlapAnalysis:     nil,
		Issues:              []string{"No target keyword provided - cannot analyze differentiation"},
		Recommendations:     []string{"Provide a target keyword to analyze competitor differentiation"},
		UniqueElementsFound: []string{},
		Opportunities:       []string{},
	}
}

func noCompetitorDifferentiation() *DifferentiationResult {
	return &DifferentiationResult{
		Score: 50,
		OverlapAnalysis: &OverlapAnalysis{
			AvgSimilarity:     "N/A",
			HighestSimilarity: "N/A",
			UniqueSentences:   "N/A",
		},
		Issues: []string{"Could not retrieve competitor data for comparison"},
		Recommendations: []string{
			"Add unique case studies or examples",
			"Include original data or research",
			"Use a distinctive voice or angle",
		},
		UniqueElementsFound: []string{"Unable to assess without competitor data"},
		Opportunities: []string{
			"Add personal experience or insights",
			"Include expert interviews",
			"Create original visual content",
		},
	}
}
