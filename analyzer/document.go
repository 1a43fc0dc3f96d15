package analyzer

import "strings"

// ContentDocument is the immutable input unit for every analyzer. Text is
// analyzed as whitespace-normalized; the word count is the number of
// whitespace-delimited tokens.
type ContentDocument struct {
	Text            string
	Headers         []string
	MetaDescription string
	TargetKeyword   string
}

func (d ContentDocument) WordCount() int {
	return len(strings.Fields(d.Text))
}

// CompetitorDoc is one ranked competitor page as resolved by the corpus
// collaborator. The scoring core never fetches it itself.
type CompetitorDoc struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	WordCount   int    `json:"word_count"`
	HeaderCount int    `json:"header_count"`
	HasImages   bool   `json:"has_images"`
	HasVideos   bool   `json:"has_videos"`
	HasLists    bool   `json:"has_lists"`
	HasTables   bool   `json:"has_tables"`
}

// Scorable is the capability every analyzer result exposes so the aggregator
// and the suggestion engine can work without stringly-typed lookups.
type Scorable interface {
	ScoreValue() int
	IssueList() []string
	RecommendationList() []string
}

// clampScore bounds a running deduction total to [0,100].
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// capRecommendations keeps the first n recommendations in detection order.
func capRecommendations(recs []string, n int) []string {
	if len(recs) > n {
		return recs[:n]
	}
	return recs
}
