package analyzer

import (
	"math"
	"strings"
	"unicode"
)

// Readability holds the two standard formula outputs plus the interpretation
// band used across the result bundle.
type Readability struct {
	FleschEase  float64 `json:"flesch_ease"`
	FleschGrade float64 `json:"flesch_grade"`
	Level       string  `json:"level"`
}

// AnalyzeReadability computes Flesch Reading Ease and Flesch-Kincaid Grade
// from a syllable-count heuristic. Degenerate text scores as maximally easy
// rather than erroring.
func AnalyzeReadability(text string) Readability {
	words := strings.Fields(text)
	sentences := rawSentenceCount(text)
	if len(words) == 0 || sentences == 0 {
		return Readability{FleschEase: 100, Level: interpretFlesch(100)}
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	wordsPerSentence := float64(len(words)) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(len(words))

	ease := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	grade := 0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59
	if grade < 0 {
		grade = 0
	}

	return Readability{
		FleschEase:  round1(ease),
		FleschGrade: round1(grade),
		Level:       interpretFlesch(ease),
	}
}

func interpretFlesch(ease float64) string {
	switch {
	case ease >= 80:
		return "Very Easy"
	case ease >= 60:
		return "Easy"
	case ease >= 50:
		return "Fairly Difficult"
	default:
		return "Difficult"
	}
}

// countSyllables estimates syllables as vowel groups, dropping a trailing
// silent e. Every word counts at least one.
func countSyllables(word string) int {
	lower := strings.ToLower(word)
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, lower)
	if cleaned == "" {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range cleaned {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}
	if strings.HasSuffix(cleaned, "e") && !strings.HasSuffix(cleaned, "le") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
