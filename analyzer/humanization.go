package analyzer

import (
	"fmt"
	"regexp"
	"strings"
)

// HumanizationResult estimates how natural and human-written the text reads.
type HumanizationResult struct {
	Score           int                 `json:"score"`
	Issues          []string            `json:"issues"`
	Recommendations []string            `json:"recommendations"`
	Details         HumanizationDetails `json:"details"`
	GoodPoints      []string            `json:"good_points"`
}

type HumanizationDetails struct {
	SentenceVariety SentenceFeatures       `json:"sentence_variety"`
	AIPatterns      AIPatternFeatures      `json:"ai_patterns"`
	NaturalFlow     FlowFeatures           `json:"natural_flow"`
	Vocabulary      VocabularyFeatures     `json:"vocabulary"`
	Conversational  ConversationalFeatures `json:"conversational"`
}

func (r *HumanizationResult) ScoreValue() int              { return r.Score }
func (r *HumanizationResult) IssueList() []string          { return r.Issues }
func (r *HumanizationResult) RecommendationList() []string { return r.Recommendations }

type ConversationalFeatures struct {
	PersonalPronouns    int  `json:"personal_pronouns"`
	HasDirectAddress    bool `json:"has_direct_address"`
	HasStorytelling     bool `json:"has_storytelling"`
	ConversationalCount int  `json:"conversational_count"`
}

var (
	pronounPattern = regexp.MustCompile(`(?i)\b(i|we|you|my|our|your)\b`)
	addressPattern = regexp.MustCompile(`(?i)\byou\b`)

	storytellingWords = []string{
		"story", "example", "instance", "case", "experience", "time when",
	}
	conversationalPhrases = []string{
		"let's", "here's", "there's", "what's", "that's",
		"you know", "think about", "imagine", "picture this",
		"by the way", "in fact", "actually", "basically",
	}
)

func ExtractConversational(text string) ConversationalFeatures {
	lower := strings.ToLower(text)

	storytelling := false
	for _, w := range storytellingWords {
		if strings.Contains(lower, w) {
			storytelling = true
			break
		}
	}

	// Each phrase counts once no matter how often it repeats.
	conversational := 0
	for _, p := range conversationalPhrases {
		if strings.Contains(lower, p) {
			conversational++
		}
	}

	return ConversationalFeatures{
		PersonalPronouns:    len(pronounPattern.FindAllString(text, -1)),
		HasDirectAddress:    addressPattern.MatchString(text),
		HasStorytelling:     storytelling,
		ConversationalCount: conversational,
	}
}

type HumanizationAnalyzer struct{}

func NewHumanizationAnalyzer() *HumanizationAnalyzer { return &HumanizationAnalyzer{} }

func (a *HumanizationAnalyzer) Analyze(doc ContentDocument) *HumanizationResult {
	issues := []string{}
	recommendations := []string{}

	variety := ExtractSentenceVariety(doc.Text)
	if variety.StarterRepetition > 30 {
		issues = append(issues, fmt.Sprintf("%.0f%% of sentences start the same way", variety.StarterRepetition))
		recommendations = append(recommendations, "Vary sentence openings to break the repetitive rhythm")
	}
	if variety.LengthStdDev < 5 && variety.TotalSentences > 3 {
		issues = append(issues, "Sentence lengths are too uniform")
		recommendations = append(recommendations, "Mix short punchy sentences with longer detailed ones")
	}

	patterns := DetectAIPatterns(doc.Text)
	if patterns.AIPhraseCount > 3 {
		issues = append(issues, fmt.Sprintf("%d common AI phrases detected", patterns.AIPhraseCount))
		recommendations = append(recommendations, "Replace phrases like 'delve into' and 'in today's digital landscape' with plainer language")
	}
	if patterns.OverusedTransitions > 3 {
		issues = append(issues, "Heavy use of formal transitions (furthermore, moreover...)")
		recommendations = append(recommendations, "Swap formal transitions for natural connectors or drop them")
	}

	flow := ExtractNaturalFlow(doc.Text)
	if !flow.HasContractions {
		issues = append(issues, "No contractions found - text reads formally")
		recommendations = append(recommendations, "Use contractions (don't, it's, you're) for a conversational tone")
	}
	if flow.PassiveVoiceRatio > 20 {
		issues = append(issues, fmt.Sprintf("%.0f%% passive voice usage", flow.PassiveVoiceRatio))
		recommendations = append(recommendations, "Rewrite passive sentences in active voice")
	}

	vocab := ExtractVocabulary(doc.Text)
	if vocab.UniqueWordRatio < 40 && vocab.TotalWords > 100 {
		issues = append(issues, "Limited vocabulary variety")
		recommendations = append(recommendations, "Vary word choice - the same words repeat too often")
	}

	conv := ExtractConversational(doc.Text)
	if conv.PersonalPronouns == 0 {
		issues = append(issues, "No personal pronouns - text feels detached")
		recommendations = append(recommendations, "Address the reader directly and share first-person perspective")
	}

	return &HumanizationResult{
		Score:           scoreHumanization(variety, patterns, flow, vocab, conv),
		Issues:          issues,
		Recommendations: capRecommendations(recommendations, 3),
		Details: HumanizationDetails{
			SentenceVariety: variety,
			AIPatterns:      patterns,
			NaturalFlow:     flow,
			Vocabulary:      vocab,
			Conversational:  conv,
		},
		GoodPoints: humanizationGoodPoints(variety, patterns, flow, conv),
	}
}

func scoreHumanization(variety SentenceFeatures, patterns AIPatternFeatures, flow FlowFeatures, vocab VocabularyFeatures, conv ConversationalFeatures) int {
	score := 100

	// Sentence variety (25 points)
	if variety.StarterRepetition > 40 {
		score -= 15
	} else if variety.StarterRepetition > 30 {
		score -= 10
	} else if variety.StarterRepetition > 20 {
		score -= 5
	}
	if variety.LengthStdDev < 3 {
		score -= 15
	} else if variety.LengthStdDev < 5 {
		score -= 10
	}

	// AI fingerprints (30 points)
	if patterns.AIPhraseCount > 8 {
		score -= 20
	} else if patterns.AIPhraseCount > 5 {
		score -= 15
	} else if patterns.AIPhraseCount > 3 {
		score -= 8
	}
	if patterns.OverusedTransitions > 5 {
		score -= 10
	} else if patterns.OverusedTransitions > 3 {
		score -= 5
	}

	// Natural flow (25 points)
	if !flow.HasContractions {
		score -= 10
	}
	if flow.PassiveVoiceRatio > 25 {
		score -= 10
	} else if flow.PassiveVoiceRatio > 20 {
		score -= 5
	}
	if flow.QuestionCount == 0 {
		score -= 5
	}

	// Vocabulary and voice (20 points)
	if vocab.UniqueWordRatio < 30 {
		score -= 10
	} else if vocab.UniqueWordRatio < 40 {
		score -= 5
	}
	if conv.PersonalPronouns == 0 {
		score -= 10
	} else if conv.ConversationalCount == 0 {
		score -= 5
	}

	return clampScore(score)
}

func humanizationGoodPoints(variety SentenceFeatures, patterns AIPatternFeatures, flow FlowFeatures, conv ConversationalFeatures) []string {
	good := []string{}
	if variety.LengthStdDev >= 7 {
		good = append(good, "Good sentence length variety")
	}
	if variety.StarterRepetition < 20 {
		good = append(good, "Varied sentence openings")
	}
	if patterns.AIPhraseCount <= 2 {
		good = append(good, "Minimal AI-typical phrasing")
	}
	if flow.ContractionCount >= 3 {
		good = append(good, "Natural use of contractions")
	}
	if flow.PassiveVoiceRatio < 15 {
		good = append(good, "Mostly active voice")
	}
	if conv.PersonalPronouns > 10 {
		good = append(good, "Personal, direct tone")
	}
	if flow.QuestionCount >= 3 {
		good = append(good, "Engages the reader with questions")
	}
	return good
}
