package analyzer

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Feature extractors are pure functions over text. Each returns zero/neutral
// values for empty or degenerate input instead of failing.

var (
	urlPattern = regexp.MustCompile(`https?://(?:www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b(?:[-a-zA-Z0-9()@:%_+.~#?&/=]*)`)

	referencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\[\d+\]`),
		regexp.MustCompile(`\(\d+\)`),
		regexp.MustCompile(`(?i)according to\s+[\w\s]+`),
		regexp.MustCompile(`(?i)source:\s*[\w\s]+`),
		regexp.MustCompile(`(?i)via\s+[\w\s]+`),
	}

	faqPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)(?:^|\n)(?:Q:|Question:|\?)\s*.+`),
		regexp.MustCompile(`(?i)(?:Frequently Asked Questions|FAQ)`),
		regexp.MustCompile(`(?im)(?:^|\n)(?:A:|Answer:)\s*.+`),
	}

	listPattern  = regexp.MustCompile(`(?:\n\s*[-•*]\s+|\n\s*\d+\.\s+)`)
	howtoPattern = regexp.MustCompile(`(?i)(?:how to|step \d+|steps?:)`)
	tablePattern = regexp.MustCompile(`\|.+\|.+\|`)

	answerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)(?:^|\n)(?:The best|The top|The most|The main)`),
		regexp.MustCompile(`(?im)(?:^|\n)(?:In short|Simply put|To summarize)`),
		regexp.MustCompile(`(?im)(?:^|\n)(?:Yes|No),\s+\w+`),
		regexp.MustCompile(`(?i)\b(?:is|are)\s+(?:defined as|known as|called)`),
		regexp.MustCompile(`(?i)(?:The answer is|The result is|This means)`),
	}

	definitionPattern = regexp.MustCompile(`(?i)\b(?:is|are)\s+(?:defined as|known as|a type of)`)
	questionPattern   = regexp.MustCompile(`[^.!?]*\?`)
	sentenceSplitter  = regexp.MustCompile(`[.!?]+`)

	passivePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:was|were|is|are|been|be)\s+\w+ed\b`),
		regexp.MustCompile(`\b(?:was|were|is|are|been|be)\s+\w+en\b`),
	}

	wordPattern     = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)
	entityPattern   = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	yearPattern     = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	datePattern     = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	statPattern     = regexp.MustCompile(`\b\d+(?:,\d{3})*(?:\.\d+)?%?\b`)
	nonWordPattern  = regexp.MustCompile(`[^\w\s]`)
	dataPointRegexp = regexp.MustCompile(`\d+[%$]|\d+\s*(?:percent|dollars|years|months|times|hours)`)
)

var aiPhrases = []string{
	"it is important to note",
	"it is worth noting",
	"in today's digital age",
	"in today's world",
	"in recent years",
	"increasingly important",
	"vast array of",
	"plethora of",
	"myriad of",
	"a wide range of",
	"it should be noted",
	"one must consider",
	"delve into",
	"dive deep into",
	"comprehensive guide",
	"in this article, we will",
	"in this blog post",
	"as technology continues to evolve",
	"revolutionary",
	"game-changing",
	"cutting-edge",
	"state-of-the-art",
}

var formalTransitions = []string{
	"moreover", "furthermore", "nevertheless", "nonetheless",
	"consequently", "therefore", "thus", "hence",
}

var contractionMarkers = []string{"n't", "'ll", "'ve", "'re", "'m", "'d", "'s"}

var questionWords = []string{"what", "why", "how", "when", "where", "who", "which"}

// CitationFeatures counts linked and idiomatic references.
type CitationFeatures struct {
	Count                int  `json:"count"`
	URLs                 int  `json:"urls"`
	AuthoritativeSources int  `json:"authoritative_sources"`
	HasQualitySources    bool `json:"has_quality_sources"`
}

func ExtractCitations(text string) CitationFeatures {
	urls := urlPattern.FindAllString(text, -1)

	referenceCount := 0
	for _, p := range referencePatterns {
		referenceCount += len(p.FindAllString(text, -1))
	}

	// Loose on purpose: "gov" anywhere in the URL counts, not a strict TLD.
	authoritative := 0
	for _, u := range urls {
		if strings.Contains(u, "gov") || strings.Contains(u, "edu") || strings.Contains(u, "org") {
			authoritative++
		}
	}

	return CitationFeatures{
		Count:                len(urls) + referenceCount,
		URLs:                 len(urls),
		AuthoritativeSources: authoritative,
		HasQualitySources:    authoritative > 0,
	}
}

// StructureFeatures flags answer-engine friendly formatting.
type StructureFeatures struct {
	HasFAQ           bool `json:"has_faq"`
	HasLists         bool `json:"has_lists"`
	ListCount        int  `json:"list_count"`
	HasHowTo         bool `json:"has_howto"`
	HasTables        bool `json:"has_tables"`
	HasProperHeaders bool `json:"has_proper_headers"`
}

func ExtractStructure(text string, headers []string) StructureFeatures {
	hasFAQ := false
	for _, p := range faqPatterns {
		if p.MatchString(text) {
			hasFAQ = true
			break
		}
	}

	listMatches := listPattern.FindAllString(text, -1)

	return StructureFeatures{
		HasFAQ:           hasFAQ,
		HasLists:         len(listMatches) > 0,
		ListCount:        len(listMatches),
		HasHowTo:         howtoPattern.MatchString(text),
		HasTables:        tablePattern.MatchString(text),
		HasProperHeaders: len(headers) >= 3,
	}
}

// AnswerFeatures captures direct-answer phrasing.
type AnswerFeatures struct {
	DirectAnswers  int  `json:"direct_answers"`
	HasDefinition  bool `json:"has_definition"`
	HasEarlyAnswer bool `json:"has_early_answer"`
}

func ExtractAnswerPatterns(text string) AnswerFeatures {
	direct := 0
	for _, p := range answerPatterns {
		direct += len(p.FindAllString(text, -1))
	}

	// First paragraph up to the first blank line, or the first 500 characters
	// when the text has no blank lines.
	firstParagraph := text
	if idx := strings.Index(text, "\n\n"); idx >= 0 {
		firstParagraph = text[:idx]
	} else if len(text) > 500 {
		firstParagraph = text[:500]
	}

	return AnswerFeatures{
		DirectAnswers:  direct,
		HasDefinition:  definitionPattern.MatchString(text),
		HasEarlyAnswer: len(strings.Fields(firstParagraph)) < 100,
	}
}

// QuestionFeatures counts question coverage.
type QuestionFeatures struct {
	TotalQuestions    int `json:"total_questions"`
	QuestionsAnswered int `json:"questions_answered"`
}

func ExtractQuestions(text string) QuestionFeatures {
	questions := questionPattern.FindAllString(text, -1)

	answered := 0
	for _, q := range questions {
		lower := strings.ToLower(q)
		for _, w := range questionWords {
			if strings.Contains(lower, w) {
				answered++
				break
			}
		}
	}

	return QuestionFeatures{
		TotalQuestions:    len(questions),
		QuestionsAnswered: answered,
	}
}

// SentenceFeatures captures sentence length and starter variety.
type SentenceFeatures struct {
	StarterRepetition float64 `json:"starter_repetition"`
	AvgLength         float64 `json:"avg_length"`
	LengthStdDev      float64 `json:"length_std_dev"`
	TotalSentences    int     `json:"total_sentences"`
}

func ExtractSentenceVariety(text string) SentenceFeatures {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return SentenceFeatures{}
	}

	starterCounts := make(map[string]int)
	maxStarter := 0
	for _, s := range sentences {
		words := strings.Fields(s)
		if len(words) == 0 {
			continue
		}
		end := 2
		if len(words) < 2 {
			end = len(words)
		}
		starter := strings.ToLower(strings.Join(words[:end], " "))
		starterCounts[starter]++
		if starterCounts[starter] > maxStarter {
			maxStarter = starterCounts[starter]
		}
	}

	repetition := 0.0
	if len(sentences) > 0 {
		repetition = float64(maxStarter) / float64(len(sentences)) * 100
	}

	lengths := make([]float64, 0, len(sentences))
	for _, s := range sentences {
		lengths = append(lengths, float64(len(strings.Fields(s))))
	}

	return SentenceFeatures{
		StarterRepetition: repetition,
		AvgLength:         mean(lengths),
		LengthStdDev:      sampleStdDev(lengths),
		TotalSentences:    len(sentences),
	}
}

// splitSentences breaks text on sentence terminators, keeping only pieces
// longer than 10 characters after trimming.
func splitSentences(text string) []string {
	parts := sentenceSplitter.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if len(trimmed) > 10 {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

// rawSentenceCount counts terminator-delimited pieces without filtering,
// matching the denominator the passive-voice ratio was calibrated against.
func rawSentenceCount(text string) int {
	return len(sentenceSplitter.Split(text, -1))
}

// AIPatternFeatures counts stock machine-writing idioms.
type AIPatternFeatures struct {
	AIPhraseCount           int     `json:"ai_phrases_count"`
	OverusedTransitions     int     `json:"overused_transitions"`
	ParagraphStarterVariety float64 `json:"paragraph_starter_variety"`
}

func DetectAIPatterns(text string) AIPatternFeatures {
	lower := strings.ToLower(text)

	phraseCount := 0
	for _, phrase := range aiPhrases {
		if strings.Contains(lower, phrase) {
			phraseCount++
		}
	}

	transitions := 0
	for _, word := range formalTransitions {
		transitions += strings.Count(lower, word)
	}

	paragraphs := strings.Split(text, "\n\n")
	starters := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		fields := strings.Fields(p)
		if len(fields) > 0 {
			starters = append(starters, strings.ToLower(fields[0]))
		}
	}
	variety := 1.0
	if len(starters) > 0 {
		distinct := make(map[string]struct{}, len(starters))
		for _, s := range starters {
			distinct[s] = struct{}{}
		}
		variety = float64(len(distinct)) / float64(len(starters))
	}

	return AIPatternFeatures{
		AIPhraseCount:           phraseCount,
		OverusedTransitions:     transitions,
		ParagraphStarterVariety: variety,
	}
}

// FlowFeatures captures voice and conversational markers.
type FlowFeatures struct {
	HasContractions   bool    `json:"has_contractions"`
	ContractionCount  int     `json:"contraction_count"`
	PassiveVoiceRatio float64 `json:"passive_voice_ratio"`
	QuestionCount     int     `json:"question_count"`
	ExclamationCount  int     `json:"exclamation_count"`
}

func ExtractNaturalFlow(text string) FlowFeatures {
	contractionCount := 0
	for _, c := range contractionMarkers {
		contractionCount += strings.Count(text, c)
	}

	passiveMatches := 0
	for _, p := range passivePatterns {
		passiveMatches += len(p.FindAllString(text, -1))
	}
	ratio := 0.0
	if n := rawSentenceCount(text); n > 0 {
		ratio = float64(passiveMatches) / float64(n) * 100
	}

	return FlowFeatures{
		HasContractions:   contractionCount > 0,
		ContractionCount:  contractionCount,
		PassiveVoiceRatio: ratio,
		QuestionCount:     strings.Count(text, "?"),
		ExclamationCount:  strings.Count(text, "!"),
	}
}

// WordCount pairs a word with its frequency.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// VocabularyFeatures measures lexical diversity over alphabetic tokens of at
// least three characters.
type VocabularyFeatures struct {
	UniqueWordRatio float64     `json:"unique_word_ratio"`
	TotalWords      int         `json:"total_words"`
	UniqueWords     int         `json:"unique_words"`
	MostRepeated    []WordCount `json:"most_repeated"`
}

var vocabularyStopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "her": {}, "was": {}, "one": {},
	"our": {}, "out": {}, "this": {}, "that": {}, "with": {},
}

func ExtractVocabulary(text string) VocabularyFeatures {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	if len(words) == 0 {
		return VocabularyFeatures{MostRepeated: []WordCount{}}
	}

	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, w := range words {
		if _, stop := vocabularyStopwords[w]; stop {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	top := make([]WordCount, 0, 5)
	for _, w := range order {
		top = append(top, WordCount{Word: w, Count: counts[w]})
		if len(top) == 5 {
			break
		}
	}

	return VocabularyFeatures{
		UniqueWordRatio: float64(len(unique)) / float64(len(words)) * 100,
		TotalWords:      len(words),
		UniqueWords:     len(unique),
		MostRepeated:    top,
	}
}

// EntityFeatures captures named-entity-like mentions.
type EntityFeatures struct {
	Entities      []string
	Counts        map[string]int
	Organizations []string
	TechBrands    []string
}

var entityStarters = map[string]struct{}{
	"The": {}, "This": {}, "That": {}, "These": {}, "Those": {},
	"A": {}, "An": {}, "In": {}, "On": {}, "At": {}, "For": {},
}

var orgIndicators = []string{"Inc", "Corp", "LLC", "Ltd", "Company", "Corporation", "Group"}

var techBrands = []string{
	"Google", "Microsoft", "Apple", "Amazon", "Facebook", "Twitter",
	"LinkedIn", "Netflix", "Tesla", "OpenAI", "Meta", "YouTube",
}

func ExtractEntities(text string) EntityFeatures {
	matches := entityPattern.FindAllString(text, -1)

	entities := make([]string, 0, len(matches))
	counts := make(map[string]int)
	for _, m := range matches {
		if _, starter := entityStarters[m]; starter {
			continue
		}
		entities = append(entities, m)
		counts[m]++
	}

	orgSet := make(map[string]struct{})
	for _, e := range entities {
		for _, indicator := range orgIndicators {
			if strings.Contains(e, indicator) {
				orgSet[e] = struct{}{}
				break
			}
		}
	}
	orgs := make([]string, 0, len(orgSet))
	for o := range orgSet {
		orgs = append(orgs, o)
	}
	sort.Strings(orgs)

	brands := make([]string, 0)
	for _, b := range techBrands {
		if strings.Contains(text, b) {
			brands = append(brands, b)
		}
	}

	return EntityFeatures{
		Entities:      entities,
		Counts:        counts,
		Organizations: orgs,
		TechBrands:    brands,
	}
}

// EntityMention is one named entity with its mention count.
type EntityMention struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TopEntities returns the n most frequent entities, ties broken
// alphabetically for determinism.
func (f EntityFeatures) TopEntities(n int) []EntityMention {
	names := make([]string, 0, len(f.Counts))
	for name := range f.Counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if f.Counts[names[i]] != f.Counts[names[j]] {
			return f.Counts[names[i]] > f.Counts[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	top := make([]EntityMention, 0, len(names))
	for _, name := range names {
		top = append(top, EntityMention{Name: name, Count: f.Counts[name]})
	}
	return top
}

// FreshnessSignals captures temporal markers.
type FreshnessSignals struct {
	LatestYear           int
	YearMentions         int
	TimeIndicators       int
	MonthMentions        []string
	DateCount            int
	StatCount            int
	HasPublicationMarker bool
}

var freshnessMonths = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

var timeIndicators = []string{
	"today", "yesterday", "recent", "latest", "current",
	"now", "currently", "recently", "new", "updated",
}

var publicationMarkers = []string{"published", "updated", "last updated", "as of"}

func ExtractFreshnessSignals(text string) FreshnessSignals {
	lower := strings.ToLower(text)

	latest := 0
	years := yearPattern.FindAllString(text, -1)
	for _, y := range years {
		if n, err := strconv.Atoi(y); err == nil && n > latest {
			latest = n
		}
	}

	indicators := 0
	for _, ind := range timeIndicators {
		if strings.Contains(lower, ind) {
			indicators++
		}
	}

	months := make([]string, 0)
	for _, m := range freshnessMonths {
		if strings.Contains(lower, m) {
			months = append(months, m)
		}
	}

	hasPublication := false
	for _, marker := range publicationMarkers {
		if strings.Contains(lower, marker) {
			hasPublication = true
			break
		}
	}

	return FreshnessSignals{
		LatestYear:           latest,
		YearMentions:         len(years),
		TimeIndicators:       indicators,
		MonthMentions:        months,
		DateCount:            len(datePattern.FindAllString(text, -1)),
		StatCount:            len(statPattern.FindAllString(text, -1)),
		HasPublicationMarker: hasPublication,
	}
}

// RepetitionFeatures captures overlapping n-gram duplication.
type RepetitionFeatures struct {
	TotalWords     int
	DistinctNGrams int
	RepeatedNGrams int
	DuplicateRatio float64
}

// ExtractRepetition builds overlapping n-word shingles over lowercased
// alphanumeric tokens and measures how many occur more than once.
func ExtractRepetition(text string, n int) RepetitionFeatures {
	clean := nonWordPattern.ReplaceAllString(strings.ToLower(text), "")
	words := strings.Fields(clean)

	feats := RepetitionFeatures{TotalWords: len(words)}
	if len(words) < n {
		return feats
	}

	counts := make(map[string]int)
	for i := 0; i+n <= len(words); i++ {
		counts[strings.Join(words[i:i+n], " ")]++
	}

	repeated := 0
	for _, c := range counts {
		if c > 1 {
			repeated++
		}
	}

	feats.DistinctNGrams = len(counts)
	feats.RepeatedNGrams = repeated
	if len(counts) > 0 {
		feats.DuplicateRatio = float64(repeated) / float64(len(counts))
	}
	return feats
}

// countDataPoints counts numbers with units (percentages, money, durations).
func countDataPoints(text string) int {
	return len(dataPointRegexp.FindAllString(text, -1))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev is the n-1 standard deviation; zero for fewer than two values.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
