package analyzer

import (
	"fmt"
	"strings"
)

// FreshnessResult scores temporal relevance.
type FreshnessResult struct {
	Score           int      `json:"score"`
	LatestYear      int      `json:"latest_year"`
	YearMentions    int      `json:"year_mentions"`
	TimeIndicators  int      `json:"time_indicators"`
	HasDates        bool     `json:"has_dates"`
	SeasonalContent bool     `json:"seasonal_content"`
	Feedback        []string `json:"feedback"`
	Issues          []string `json:"issues"`
}

func (r *FreshnessResult) ScoreValue() int              { return r.Score }
func (r *FreshnessResult) IssueList() []string          { return r.Issues }
func (r *FreshnessResult) RecommendationList() []string { return r.Feedback }

// FreshnessAnalyzer scores against an injectable reference year so tests
// stay stable over time.
type FreshnessAnalyzer struct {
	CurrentYear int
}

func NewFreshnessAnalyzer(currentYear int) *FreshnessAnalyzer {
	return &FreshnessAnalyzer{CurrentYear: currentYear}
}

func (a *FreshnessAnalyzer) Analyze(doc ContentDocument) *FreshnessResult {
	score := 50
	feedback := []string{}
	issues := []string{}

	signals := ExtractFreshnessSignals(doc.Text)

	switch {
	case signals.LatestYear >= a.CurrentYear:
		score += 30
		feedback = append(feedback, fmt.Sprintf("Content references current year (%d) - excellent freshness", a.CurrentYear))
	case signals.LatestYear >= a.CurrentYear-1:
		score += 20
		feedback = append(feedback, fmt.Sprintf("Content references recent year (%d) - good freshness", signals.LatestYear))
	case signals.LatestYear >= a.CurrentYear-2:
		score += 10
		feedback = append(feedback, fmt.Sprintf("Content includes %d - moderately fresh", signals.LatestYear))
	case signals.LatestYear > 0:
		score -= 20
		issues = append(issues, fmt.Sprintf("Content references outdated year (%d) - needs updating", signals.LatestYear))
		feedback = append(feedback, "Update content with current year information")
	default:
		score -= 10
		issues = append(issues, "No year mentions found - readers cannot assess timeliness")
		feedback = append(feedback, "Add current year references to establish freshness")
	}

	if signals.TimeIndicators >= 3 {
		score += 10
		feedback = append(feedback, "Good use of temporal indicators (recent, latest, current)")
	} else if signals.TimeIndicators == 0 {
		score -= 5
		issues = append(issues, "No time indicators found")
	}

	if len(signals.MonthMentions) > 0 {
		shown := signals.MonthMentions
		if len(shown) > 3 {
			shown = shown[:3]
		}
		feedback = append(feedback, "Seasonal references detected: "+strings.Join(shown, ", "))
	}

	if signals.DateCount > 0 {
		score += 5
		feedback = append(feedback, "Specific dates mentioned - adds credibility")
	}

	if signals.StatCount > 10 {
		feedback = append(feedback, "Rich in statistics - ensure they are current")
		if signals.LatestYear < a.CurrentYear-1 {
			issues = append(issues, "Statistics may be outdated - verify data recency")
			score -= 10
		}
	}

	if signals.HasPublicationMarker {
		score += 5
		feedback = append(feedback, "Publication/update dates indicated")
	}

	return &FreshnessResult{
		Score:           clampScore(score),
		LatestYear:      signals.LatestYear,
		YearMentions:    signals.YearMentions,
		TimeIndicators:  signals.TimeIndicators,
		HasDates:        signals.DateCount > 0,
		SeasonalContent: len(signals.MonthMentions) > 0,
		Feedback:        feedback,
		Issues:          issues,
	}
}
