package analyzer

import (
	"math"
	"strings"
)

// SentimentResult classifies tone and subjectivity.
type SentimentResult struct {
	Score         int      `json:"score"`
	Tone          string   `json:"tone"`
	Polarity      float64  `json:"polarity"`
	Subjectivity  float64  `json:"subjectivity"`
	PositiveWords int      `json:"positive_words"`
	NegativeWords int      `json:"negative_words"`
	Feedback      []string `json:"feedback"`
	Issues        []string `json:"issues"`
}

func (r *SentimentResult) ScoreValue() int              { return r.Score }
func (r *SentimentResult) IssueList() []string          { return r.Issues }
func (r *SentimentResult) RecommendationList() []string { return r.Feedback }

var positiveWords = []string{
	"best", "great", "excellent", "amazing", "perfect", "outstanding",
	"fantastic", "wonderful", "superb", "brilliant", "exceptional",
}

var negativeWords = []string{
	"worst", "bad", "terrible", "awful", "poor", "horrible",
	"disappointing", "useless", "waste", "avoid",
}

// polarityLexicon assigns sentiment weights to common tone-bearing words.
// A lightweight stand-in for a full sentiment model; values land in [-1, 1].
var polarityLexicon = map[string]float64{
	"best": 1.0, "great": 0.8, "excellent": 1.0, "amazing": 0.6, "perfect": 1.0,
	"outstanding": 0.9, "fantastic": 0.9, "wonderful": 1.0, "superb": 0.9,
	"brilliant": 0.9, "exceptional": 0.8, "good": 0.7, "love": 0.5, "easy": 0.4,
	"helpful": 0.5, "effective": 0.6, "reliable": 0.6, "impressive": 0.8,
	"worst": -1.0, "bad": -0.7, "terrible": -1.0, "awful": -1.0, "poor": -0.4,
	"horrible": -1.0, "disappointing": -0.6, "useless": -0.5, "waste": -0.4,
	"avoid": -0.3, "hard": -0.3, "difficult": -0.5, "broken": -0.4, "slow": -0.3,
	"confusing": -0.5, "expensive": -0.3, "unreliable": -0.6, "fail": -0.5,
}

// subjectiveWords mark opinionated rather than factual language.
var subjectiveWords = map[string]float64{
	"best": 0.3, "great": 0.75, "excellent": 1.0, "amazing": 0.9, "perfect": 1.0,
	"outstanding": 1.0, "fantastic": 0.9, "wonderful": 1.0, "worst": 1.0,
	"bad": 0.67, "terrible": 1.0, "awful": 1.0, "poor": 0.6, "horrible": 1.0,
	"think": 0.9, "believe": 0.9, "feel": 1.0, "opinion": 1.0, "probably": 0.8,
	"maybe": 0.9, "seems": 0.8, "likely": 0.7, "should": 0.6, "recommend": 0.7,
	"beautiful": 1.0, "ugly": 1.0, "interesting": 0.75, "boring": 1.0,
}

// estimateSentiment averages lexicon hits the way shallow pattern-based
// sentiment libraries do. Empty or lexicon-free text is neutral.
func estimateSentiment(text string) (polarity, subjectivity float64) {
	words := strings.Fields(strings.ToLower(nonWordPattern.ReplaceAllString(text, " ")))
	if len(words) == 0 {
		return 0, 0.5
	}

	var polSum float64
	var polHits int
	var subSum float64
	var subHits int
	for _, w := range words {
		if p, ok := polarityLexicon[w]; ok {
			polSum += p
			polHits++
		}
		if s, ok := subjectiveWords[w]; ok {
			subSum += s
			subHits++
		}
	}
	if polHits > 0 {
		polarity = polSum / float64(polHits)
	}
	if subHits > 0 {
		subjectivity = subSum / float64(subHits)
	} else {
		subjectivity = 0.5
	}
	return polarity, subjectivity
}

type SentimentAnalyzer struct{}

func NewSentimentAnalyzer() *SentimentAnalyzer { return &SentimentAnalyzer{} }

func (a *SentimentAnalyzer) Analyze(doc ContentDocument) *SentimentResult {
	polarity, subjectivity := estimateSentiment(doc.Text)

	feedback := []string{}
	issues := []string{}

	var tone string
	var score float64
	switch {
	case polarity > 0.1:
		tone = "positive"
		score = math.Min(100, 50+polarity*50)
	case polarity < -0.1:
		tone = "negative"
		score = math.Max(0, 50+polarity*50)
	default:
		tone = "neutral"
		score = 50
	}

	if subjectivity > 0.7 {
		feedback = append(feedback, "Content is highly subjective - consider adding more factual data")
		score -= 10
		issues = append(issues, "High subjectivity detected")
	} else if subjectivity < 0.3 {
		feedback = append(feedback, "Content is very objective - good for informational content")
		score += 5
	}

	lower := strings.ToLower(doc.Text)
	positiveCount := 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			positiveCount++
		}
	}
	negativeCount := 0
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			negativeCount++
		}
	}

	if positiveCount > 5 {
		feedback = append(feedback, "Good use of positive language to engage readers")
		score += 5
	}
	if negativeCount > 3 {
		feedback = append(feedback, "Consider reducing negative language unless reviewing products")
		score -= 5
		issues = append(issues, "Excessive negative language")
	}

	sentences := splitNonEmptySentences(doc.Text)
	if len(sentences) > 5 {
		exclamations := strings.Count(doc.Text, "!")
		questions := strings.Count(doc.Text, "?")

		if float64(exclamations) > float64(len(sentences))*0.2 {
			feedback = append(feedback, "Too many exclamations - reduce for professional tone")
			score -= 5
			issues = append(issues, "Overuse of exclamation marks")
		} else if exclamations > 0 {
			feedback = append(feedback, "Good use of exclamations for emphasis")
			score += 3
		}
		if questions > 0 {
			feedback = append(feedback, "Questions engage readers effectively")
			score += 5
		}
	}

	return &SentimentResult{
		Score:         clampScore(int(math.Round(score))),
		Tone:          tone,
		Polarity:      round2(polarity),
		Subjectivity:  round2(subjectivity),
		PositiveWords: positiveCount,
		NegativeWords: negativeCount,
		Feedback:      feedback,
		Issues:        issues,
	}
}

func splitNonEmptySentences(text string) []string {
	parts := sentenceSplitter.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, strings.TrimSpace(p))
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
