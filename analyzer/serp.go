package analyzer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// SERPFitResult scores the document against the top ranking pages for its keyword.
type SERPFitResult struct {
	Score             int                `json:"score"`
	TargetKeyword     string             `json:"target_keyword"`
	SERPAnalysis      *SERPAnalysis      `json:"serp_analysis"`
	BacklinkPotential *BacklinkPotential `json:"backlink_potential,omitempty"`
	PredictedPosition string             `json:"predicted_position"`
	Issues            []string           `json:"issues"`
	Recommendations   []string           `json:"recommendations"`
	MissingTopics     []string           `json:"missing_topics"`
}

type SERPAnalysis struct {
	AvgWordCount      int             `json:"avg_word_count"`
	YourWordCount     int             `json:"your_word_count"`
	AvgTopics         int             `json:"avg_topics"`
	YourTopics        int             `json:"your_topics"`
	TopRankersInclude TopRankersStats `json:"top_rankers_include"`
}

type TopRankersStats struct {
	Comparisons string `json:"comparisons"`
	DataStats   string `json:"data_stats"`
	Lists       string `json:"lists"`
	Images      string `json:"images"`
}

type BacklinkPotential struct {
	Score          int      `json:"score"`
	Level          string   `json:"level"`
	LinkableAssets []string `json:"linkable_assets"`
}

func (r *SERPFitResult) ScoreValue() int              { return r.Score }
func (r *SERPFitResult) IssueList() []string          { return r.Issues }
func (r *SERPFitResult) RecommendationList() []string { return r.Recommendations }

type competitorProfile struct {
	avgWordCount    float64
	commonTopics    map[string]bool
	withComparisons int
	withData        int
	withLists       int
	withImages      int
	avgDataPoints   float64
}

type contentElements struct {
	hasComparison bool
	dataPoints    int
	hasLists      bool
	hasQuotes     bool
}

var (
	topicPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:how to|guide to|tips for|best|top|ways to)\s+(\w+(?:\s+\w+){0,3})`),
		regexp.MustCompile(`\b(\w+(?:\s+\w+){0,2})\s+(?:comparison|review|analysis|guide)`),
		regexp.MustCompile(`\b(?:what is|understanding|about)\s+(\w+(?:\s+\w+){0,2})`),
	}
	comparisonPattern = regexp.MustCompile(`\b(?:vs|versus|compared to|comparison|better than)\b`)
	definitionMarkers = regexp.MustCompile(`\b(is defined as|refers to|means)\b`)
)

type SERPAnalyzer struct{}

func NewSERPAnalyzer() *SERPAnalyzer { return &SERPAnalyzer{} }

// Analyze scores the document against already-fetched competitor pages.
func (a *SERPAnalyzer) Analyze(doc ContentDocument, competitors []CompetitorDoc) *SERPFitResult {
	if doc.TargetKeyword == "" {
		return noKeywordSERP()
	}

	issues := []string{}
	recommendations := []string{}

	profile := profileCompetitors(competitors)
	wordCount := doc.WordCount()
	topics := extractTopics(doc.Text)
	elements := checkContentElements(doc.Text)

	wcDiff := 0.0
	if profile.avgWordCount > 0 {
		wcDiff = (float64(wordCount) - profile.avgWordCount) / profile.avgWordCount * 100
	}
	if wcDiff < -20 {
		issues = append(issues, fmt.Sprintf("Content %.0f%% shorter than SERP average", -wcDiff))
		recommendations = append(recommendations, fmt.Sprintf("Expand to %d+ words covering missing subtopics", int(profile.avgWordCount*0.9)))
	}

	missing := missingTopics(profile.commonTopics, topics)
	if len(missing) > 2 {
		issues = append(issues, fmt.Sprintf("Missing %d key subtopics that top rankers cover", len(missing)))
		recommendations = append(recommendations, "Add sections about: "+strings.Join(firstN(missing, 3), ", "))
	}

	if profile.withComparisons > 70 && !elements.hasComparison {
		issues = append(issues, fmt.Sprintf("No comparisons found (%d%% of top 10 have them)", profile.withComparisons))
		recommendations = append(recommendations, "Add 2-3 product/option comparisons with real examples")
	}
	if profile.avgDataPoints > 3 && elements.dataPoints < 3 {
		issues = append(issues, fmt.Sprintf("Only %d data point(s) (top rankers avg %.0f stats)", elements.dataPoints, profile.avgDataPoints))
		recommendations = append(recommendations, "Include 5-7 data points/statistics to support claims")
	}
	if profile.withLists > 60 && !elements.hasLists {
		issues = append(issues, "No bullet/numbered lists (most top rankers use them)")
		recommendations = append(recommendations, "Add bullet lists for scannable content")
	}

	backlink := analyzeBacklinkPotential(doc.Text, elements)
	if backlink.Score < 50 {
		issues = append(issues, "Low backlink potential (content lacks linkable assets)")
		recommendations = append(recommendations, "Add linkable assets: original data, unique definitions, or expert quotes")
	}

	return &SERPFitResult{
		Score:         scoreSERPFit(wcDiff, len(missing), elements, profile, backlink),
		TargetKeyword: doc.TargetKeyword,
		SERPAnalysis: &SERPAnalysis{
			AvgWordCount:  int(profile.avgWordCount),
			YourWordCount: wordCount,
			AvgTopics:     len(profile.commonTopics),
			YourTopics:    len(topics),
			TopRankersInclude: TopRankersStats{
				Comparisons: fmt.Sprintf("%d%%", profile.withComparisons),
				DataStats:   fmt.Sprintf("%d%%", profile.withData),
				Lists:       fmt.Sprintf("%d%%", profile.withLists),
				Images:      fmt.Sprintf("%d%%", profile.withImages),
			},
		},
		BacklinkPotential: backlink,
		PredictedPosition: predictRanking(wordCount, profile, len(topics), elements, backlink),
		Issues:            issues,
		Recommendations:   capRecommendations(recommendations, 3),
		MissingTopics:     firstN(missing, 5),
	}
}

func profileCompetitors(competitors []CompetitorDoc) competitorProfile {
	var totalWords, totalDataPoints, valid int
	topicCounts := map[string]int{}
	var withComparisons, withData, withLists, withImages int

	limit := competitors
	if len(limit) > 10 {
		limit = limit[:10]
	}
	for _, c := range limit {
		if c.WordCount <= 100 {
			continue
		}
		valid++
		totalWords += c.WordCount
		for t := range extractTopics(c.Text) {
			topicCounts[t]++
		}
		if c.HasTables {
			withComparisons++
		}
		if points := countDataPoints(c.Text); points > 0 {
			withData++
			totalDataPoints += points
		}
		if c.HasLists {
			withLists++
		}
		if c.HasImages {
			withImages++
		}
	}

	// Defaults stand in when every fetch failed.
	avgWords, avgData := 1500.0, 3.0
	if valid > 0 {
		avgWords = float64(totalWords) / float64(valid)
		avgData = float64(totalDataPoints) / float64(valid)
	}

	common := map[string]bool{}
	for t, n := range topicCounts {
		if n >= 2 {
			common[t] = true
		}
	}

	denom := valid
	if denom == 0 {
		denom = 1
	}
	return competitorProfile{
		avgWordCount:    avgWords,
		commonTopics:    common,
		withComparisons: withComparisons * 100 / denom,
		withData:        withData * 100 / denom,
		withLists:       withLists * 100 / denom,
		withImages:      withImages * 100 / denom,
		avgDataPoints:   avgData,
	}
}

func extractTopics(text string) map[string]bool {
	lower := strings.ToLower(text)
	topics := map[string]bool{}
	for _, p := range topicPatterns {
		matches := p.FindAllStringSubmatch(lower, -1)
		if len(matches) > 20 {
			matches = matches[:20]
		}
		for _, m := range matches {
			topics[m[1]] = true
		}
	}
	return topics
}

func missingTopics(common, current map[string]bool) []string {
	missing := []string{}
	for t := range common {
		if !current[t] {
			missing = append(missing, t)
		}
	}
	sort.Strings(missing)
	return missing
}

func checkContentElements(text string) contentElements {
	return contentElements{
		hasComparison: comparisonPattern.MatchString(strings.ToLower(text)),
		dataPoints:    countDataPoints(text),
		hasLists:      listPattern.MatchString(text),
		hasQuotes:     strings.Count(text, `"`) >= 2 || strings.Count(text, "“") >= 2,
	}
}

func predictRanking(wordCount int, profile competitorProfile, topicCount int, elements contentElements, backlink *BacklinkPotential) string {
	points := 0

	wcRatio := 0.0
	if profile.avgWordCount > 0 {
		wcRatio = float64(wordCount) / profile.avgWordCount
	}
	if wcRatio >= 0.9 {
		points += 25
	} else if wcRatio >= 0.7 {
		points += 15
	} else if wcRatio >= 0.5 {
		points += 5
	}

	topicRatio := 0.0
	if len(profile.commonTopics) > 0 {
		topicRatio = float64(topicCount) / float64(len(profile.commonTopics))
	}
	if topicRatio >= 0.8 {
		points += 25
	} else if topicRatio >= 0.6 {
		points += 15
	} else if topicRatio >= 0.4 {
		points += 5
	}

	if elements.hasComparison && profile.withComparisons > 50 {
		points += 10
	}
	if elements.dataPoints >= 5 {
		points += 10
	}
	if elements.hasLists {
		points += 5
	}
	if elements.hasQuotes {
		points += 5
	}

	if backlink.Score > 70 {
		points += 20
	} else if backlink.Score > 40 {
		points += 10
	}

	switch {
	case points >= 80:
		return "Page 1 (positions 1-3)"
	case points >= 60:
		return "Page 1 (positions 4-10)"
	case points >= 40:
		return "Page 2 (positions 11-20)"
	default:
		return "Page 3+ (positions 21+)"
	}
}

func scoreSERPFit(wcDiff float64, missingCount int, elements contentElements, profile competitorProfile, backlink *BacklinkPotential) int {
	score := 100

	if wcDiff < -50 {
		score -= 25
	} else if wcDiff < -30 {
		score -= 15
	} else if wcDiff < -15 {
		score -= 5
	}

	if missingCount > 5 {
		score -= 20
	} else if missingCount > 3 {
		score -= 10
	} else if missingCount > 1 {
		score -= 5
	}

	if profile.withComparisons > 70 && !elements.hasComparison {
		score -= 10
	}
	if elements.dataPoints < 3 {
		score -= 5
	}
	if !elements.hasLists {
		score -= 5
	}
	if backlink.Score < 40 {
		score -= 10
	}

	return clampScore(score)
}

func analyzeBacklinkPotential(text string, elements contentElements) *BacklinkPotential {
	score := 0
	assets := []string{}

	if elements.dataPoints >= 5 {
		score += 30
		assets = append(assets, "Original Data/Stats")
	} else if elements.dataPoints >= 3 {
		score += 15
	}
	if definitionMarkers.MatchString(strings.ToLower(text)) {
		score += 20
		assets = append(assets, "Definitional Content")
	}
	if elements.hasComparison {
		score += 20
		assets = append(assets, "Comparison/Review")
	}
	if elements.hasQuotes {
		score += 15
		assets = append(assets, "Expert Quotes")
	}
	wordCount := len(strings.Fields(text))
	if wordCount > 2000 {
		score += 15
		assets = append(assets, "Long-form Guide")
	} else if wordCount > 1000 {
		score += 10
	}

	level := "Low"
	if score > 70 {
		level = "High"
	} else if score > 40 {
		level = "Medium"
	}
	if score > 100 {
		score = 100
	}
	return &BacklinkPotential{Score: score, Level: level, LinkableAssets: assets}
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func noKeywordSERP() *SERPFitResult {
	return &SERPFitResult{
		Score:             0,
		TargetKeyword:     "",
		SERPAnalysis:      nil,
		PredictedPosition: "Unknown",
		Issues:            []string{"No target keyword provided - cannot analyze SERP performance"},
		Recommendations:   []string{"Provide a target keyword to analyze SERP competition"},
		MissingTopics:     []string{},
	}
}
