package analyzer

import (
	"math"
	"sort"
	"strings"
)

// tfidfVectors builds L2-normalized tf-idf vectors over the given documents.
// When bigrams is set, unigram and bigram terms are combined and the
// vocabulary is capped at maxFeatures by document frequency.
func tfidfVectors(docs []string, bigrams bool, maxFeatures int) []map[string]float64 {
	tokenized := make([][]string, len(docs))
	df := map[string]int{}
	for i, d := range docs {
		terms := tfidfTerms(d, bigrams)
		tokenized[i] = terms
		seen := map[string]bool{}
		for _, t := range terms {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}

	vocab := make([]string, 0, len(df))
	for t := range df {
		vocab = append(vocab, t)
	}
	if maxFeatures > 0 && len(vocab) > maxFeatures {
		sort.Slice(vocab, func(i, j int) bool {
			if df[vocab[i]] != df[vocab[j]] {
				return df[vocab[i]] > df[vocab[j]]
			}
			return vocab[i] < vocab[j]
		})
		vocab = vocab[:maxFeatures]
	}
	keep := map[string]bool{}
	for _, t := range vocab {
		keep[t] = true
	}

	n := float64(len(docs))
	vectors := make([]map[string]float64, len(docs))
	for i, terms := range tokenized {
		tf := map[string]float64{}
		for _, t := range terms {
			if keep[t] {
				tf[t]++
			}
		}
		vec := map[string]float64{}
		var norm float64
		for t, count := range tf {
			idf := math.Log((1+n)/(1+float64(df[t]))) + 1
			w := count * idf
			vec[t] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for t := range vec {
				vec[t] /= norm
			}
		}
		vectors[i] = vec
	}
	return vectors
}

func tfidfTerms(text string, bigrams bool) []string {
	words := []string{}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = nonWordPattern.ReplaceAllString(w, "")
		if _, stop := vocabularyStopwords[w]; len(w) > 1 && !stop {
			words = append(words, w)
		}
	}
	if !bigrams {
		return words
	}
	terms := make([]string, 0, len(words)*2)
	terms = append(terms, words...)
	for i := 0; i+1 < len(words); i++ {
		terms = append(terms, words[i]+" "+words[i+1])
	}
	return terms
}

func cosineSimilarity(a, b map[string]float64) float64 {
	var dot float64
	for t, v := range a {
		dot += v * b[t]
	}
	return dot
}
