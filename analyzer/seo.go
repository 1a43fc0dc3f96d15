package analyzer

import (
	"fmt"
	"strings"
)

// SEOResult is the SEO analyzer output. Field names are part of the response
// contract consumed by report rendering and history persistence.
type SEOResult struct {
	Score           int        `json:"score"`
	Issues          []string   `json:"issues"`
	Recommendations []string   `json:"recommendations"`
	Details         SEODetails `json:"details"`
	GoodPoints      []string   `json:"good_points"`
}

type SEODetails struct {
	KeywordDensity KeywordDensity `json:"keyword_density"`
	Readability    Readability    `json:"readability"`
	Headers        HeaderStats    `json:"headers"`
	MetaDesc       MetaStats      `json:"meta_description"`
	WordCount      int            `json:"word_count"`
}

type KeywordDensity struct {
	Count            int     `json:"count"`
	Density          float64 `json:"density"`
	RecommendedCount int     `json:"recommended_count"`
}

type HeaderStats struct {
	HasH1            bool `json:"has_h1"`
	TotalHeaders     int  `json:"total_headers"`
	KeywordInHeaders int  `json:"keyword_in_headers"`
}

type MetaStats struct {
	Length     int  `json:"length"`
	HasKeyword bool `json:"has_keyword"`
	Exists     bool `json:"exists"`
}

func (r *SEOResult) ScoreValue() int              { return r.Score }
func (r *SEOResult) IssueList() []string          { return r.Issues }
func (r *SEOResult) RecommendationList() []string { return r.Recommendations }

// SEOAnalyzer scores on-page fundamentals: keyword density, readability,
// header structure, meta description, and content length.
type SEOAnalyzer struct{}

func NewSEOAnalyzer() *SEOAnalyzer { return &SEOAnalyzer{} }

func (a *SEOAnalyzer) Analyze(doc ContentDocument) *SEOResult {
	issues := []string{}
	recommendations := []string{}

	keyword := analyzeKeywordDensity(doc.Text, doc.TargetKeyword)
	if keyword.Density < 0.5 {
		issues = append(issues, fmt.Sprintf("Keyword '%s' appears only %d times (%.1f%% density)", doc.TargetKeyword, keyword.Count, keyword.Density))
		recommendations = append(recommendations, fmt.Sprintf("Increase keyword to %d mentions (1.0-1.5%% density)", keyword.RecommendedCount))
	} else if keyword.Density > 3.0 {
		issues = append(issues, fmt.Sprintf("Keyword density too high (%.1f%%) - risk of keyword stuffing", keyword.Density))
		recommendations = append(recommendations, "Reduce keyword mentions to 1.0-2.5% density for natural flow")
	}

	readability := AnalyzeReadability(doc.Text)
	if readability.FleschEase < 60 {
		issues = append(issues, fmt.Sprintf("Content is difficult to read (Flesch score: %.1f)", readability.FleschEase))
		recommendations = append(recommendations, "Simplify sentences and use shorter words for better readability")
	}

	headers := analyzeHeaderStructure(doc.Headers, doc.TargetKeyword)
	if !headers.HasH1 {
		issues = append(issues, "No H1 header found")
		recommendations = append(recommendations, "Add a clear H1 header with target keyword")
	}
	if headers.TotalHeaders < 3 {
		issues = append(issues, fmt.Sprintf("Only %d headers found - content lacks structure", headers.TotalHeaders))
		recommendations = append(recommendations, "Add more H2/H3 headers to improve content structure (aim for 5-8 headers)")
	}
	if doc.TargetKeyword != "" && headers.KeywordInHeaders == 0 {
		issues = append(issues, "Target keyword not found in any headers")
		recommendations = append(recommendations, "Include target keyword in at least one H2 or H3 header")
	}

	meta := analyzeMetaDescription(doc.MetaDescription, doc.TargetKeyword)
	if !meta.Exists {
		issues = append(issues, "No meta description detected")
		recommendations = append(recommendations, "Add meta description (150-160 characters with target keyword)")
	} else if meta.Length < 120 {
		issues = append(issues, fmt.Sprintf("Meta description too short (%d characters)", meta.Length))
		recommendations = append(recommendations, "Expand meta description to 150-160 characters")
	} else if meta.Length > 160 {
		issues = append(issues, fmt.Sprintf("Meta description too long (%d characters)", meta.Length))
		recommendations = append(recommendations, "Shorten meta description to 150-160 characters")
	}

	wordCount := doc.WordCount()
	if wordCount < 300 {
		issues = append(issues, fmt.Sprintf("Content too short (%d words)", wordCount))
		recommendations = append(recommendations, "Expand content to at least 800-1000 words for better SEO")
	}

	return &SEOResult{
		Score:           scoreSEO(keyword, readability, headers, meta, wordCount),
		Issues:          issues,
		Recommendations: capRecommendations(recommendations, 3),
		Details: SEODetails{
			KeywordDensity: keyword,
			Readability:    readability,
			Headers:        headers,
			MetaDesc:       meta,
			WordCount:      wordCount,
		},
		GoodPoints: seoGoodPoints(keyword, readability, headers, meta, wordCount),
	}
}

func analyzeKeywordDensity(text, keyword string) KeywordDensity {
	if keyword == "" {
		return KeywordDensity{}
	}

	count := strings.Count(strings.ToLower(text), strings.ToLower(keyword))
	totalWords := len(strings.Fields(text))
	keywordWords := len(strings.Fields(keyword))

	density := 0.0
	if totalWords > 0 {
		density = float64(count*keywordWords) / float64(totalWords) * 100
	}

	recommended := 0
	if keywordWords > 0 {
		recommended = int(float64(totalWords) * 0.012 / float64(keywordWords))
	}
	if recommended < 3 {
		recommended = 3
	}

	return KeywordDensity{Count: count, Density: density, RecommendedCount: recommended}
}

func analyzeHeaderStructure(headers []string, keyword string) HeaderStats {
	hasH1 := len(headers) > 0 && strings.Contains(strings.ToLower(headers[0]), "h1")

	inHeaders := 0
	if keyword != "" {
		lower := strings.ToLower(keyword)
		for _, h := range headers {
			if strings.Contains(strings.ToLower(h), lower) {
				inHeaders++
			}
		}
	}

	return HeaderStats{
		HasH1:            hasH1,
		TotalHeaders:     len(headers),
		KeywordInHeaders: inHeaders,
	}
}

func analyzeMetaDescription(meta, keyword string) MetaStats {
	hasKeyword := false
	if keyword != "" && meta != "" {
		hasKeyword = strings.Contains(strings.ToLower(meta), strings.ToLower(keyword))
	}
	return MetaStats{
		Length:     len(meta),
		HasKeyword: hasKeyword,
		Exists:     meta != "",
	}
}

func scoreSEO(keyword KeywordDensity, readability Readability, headers HeaderStats, meta MetaStats, wordCount int) int {
	score := 100

	// Keyword density (25 points)
	if keyword.Density < 0.5 {
		score -= 15
	} else if keyword.Density > 3.0 {
		score -= 10
	} else if keyword.Density < 1.0 {
		score -= 5
	}

	// Readability (20 points)
	if readability.FleschEase < 40 {
		score -= 20
	} else if readability.FleschEase < 60 {
		score -= 10
	}

	// Headers (25 points)
	if !headers.HasH1 {
		score -= 15
	}
	if headers.TotalHeaders < 3 {
		score -= 10
	} else if headers.TotalHeaders < 5 {
		score -= 5
	}
	if headers.KeywordInHeaders == 0 {
		score -= 10
	}

	// Meta description (15 points)
	if !meta.Exists {
		score -= 15
	} else if meta.Length < 120 || meta.Length > 160 {
		score -= 10
	} else if !meta.HasKeyword {
		score -= 5
	}

	// Content length (15 points)
	if wordCount < 300 {
		score -= 15
	} else if wordCount < 600 {
		score -= 10
	} else if wordCount < 800 {
		score -= 5
	}

	return clampScore(score)
}

func seoGoodPoints(keyword KeywordDensity, readability Readability, headers HeaderStats, meta MetaStats, wordCount int) []string {
	good := []string{}
	if keyword.Density >= 1.0 && keyword.Density <= 2.5 {
		good = append(good, "Good keyword density (optimal range)")
	}
	if readability.FleschEase >= 60 {
		good = append(good, fmt.Sprintf("Good readability (%s)", readability.Level))
	}
	if headers.HasH1 && headers.TotalHeaders >= 5 {
		good = append(good, "Well-structured with proper headers")
	}
	if meta.Exists && meta.Length >= 120 && meta.Length <= 160 {
		good = append(good, "Meta description present and proper length")
	}
	if wordCount >= 1000 {
		good = append(good, fmt.Sprintf("Comprehensive content (%d words)", wordCount))
	}
	return good
}
