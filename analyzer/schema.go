package analyzer

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SchemaResult carries a generated JSON-LD structured data block.
type SchemaResult struct {
	Schema      map[string]any `json:"schema"`
	ContentType string         `json:"content_type"`
	JSONLD      string         `json:"json_ld"`
}

var (
	authorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`by ([A-Z][a-z]+ [A-Z][a-z]+)`),
		regexp.MustCompile(`[Aa]uthor: ([A-Z][a-z]+ [A-Z][a-z]+)`),
		regexp.MustCompile(`[Ww]ritten by ([A-Z][a-z]+ [A-Z][a-z]+)`),
	}
	stepPattern  = regexp.MustCompile(`(?i)step\s*\d+[:.]?\s*`)
	pricePattern = regexp.MustCompile(`\$(\d+(?:\.\d{2})?)`)

	howtoMarkers   = []string{"step 1", "step 2", "how to", "steps:", "instructions:"}
	faqMarkers     = []string{"what is", "how do", "why does"}
	productMarkers = []string{"price", "buy now", "add to cart", "rating", "reviews"}
)

// SchemaGenerator builds schema.org markup. Now is injectable so generated
// timestamps are reproducible in tests.
type SchemaGenerator struct {
	Now func() time.Time
}

func NewSchemaGenerator() *SchemaGenerator {
	return &SchemaGenerator{Now: time.Now}
}

func (g *SchemaGenerator) Generate(text, url, keyword, contentType string) (*SchemaResult, error) {
	if contentType == "" {
		contentType = "Article"
	}
	if detected := detectContentType(text); detected != "" {
		contentType = detected
	}

	title := extractSchemaTitle(text, keyword)
	description := extractSchemaDescription(text)

	var schema map[string]any
	switch contentType {
	case "HowTo":
		schema = g.howtoSchema(title, description, text, url)
	case "FAQ":
		schema = faqSchema(text)
	case "Product":
		schema = productSchema(title, description, text)
	default:
		schema = g.articleSchema(title, description, extractAuthor(text), url)
	}

	jsonLD, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, err
	}
	return &SchemaResult{
		Schema:      schema,
		ContentType: contentType,
		JSONLD:      string(jsonLD),
	}, nil
}

func detectContentType(text string) string {
	lower := strings.ToLower(text)
	for _, m := range howtoMarkers {
		if strings.Contains(lower, m) {
			return "HowTo"
		}
	}
	if strings.Count(lower, "?") > 3 {
		for _, m := range faqMarkers {
			if strings.Contains(lower, m) {
				return "FAQ"
			}
		}
	}
	for _, m := range productMarkers {
		if strings.Contains(lower, m) {
			return "Product"
		}
	}
	return "Article"
}

func extractSchemaTitle(text, keyword string) string {
	lines := strings.Split(text, "\n")
	first := ""
	if len(lines) > 0 {
		first = strings.TrimSpace(lines[0])
	}
	if len(first) > 10 && len(first) < 100 {
		return first
	}
	if keyword != "" {
		return titleCase(keyword)
	}
	words := strings.Fields(text)
	if len(words) > 10 {
		words = words[:10]
	}
	return strings.Join(words, " ") + "..."
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func extractAuthor(text string) string {
	for _, p := range authorPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return "Content Team"
}

func extractSchemaDescription(text string) string {
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if len(p) > 160 {
			return p[:157] + "..."
		}
		return p
	}
	if len(text) > 160 {
		return text[:160]
	}
	return text
}

func (g *SchemaGenerator) articleSchema(title, description, author, url string) map[string]any {
	now := g.Now().Format(time.RFC3339)
	return map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Article",
		"headline":    title,
		"description": description,
		"author": map[string]any{
			"@type": "Person",
			"name":  author,
		},
		"datePublished": now,
		"dateModified":  now,
		"url":           url,
	}
}

func (g *SchemaGenerator) howtoSchema(title, description, text, url string) map[string]any {
	steps := []map[string]any{}
	markers := stepPattern.FindAllStringIndex(text, -1)
	for i, m := range markers {
		end := len(text)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		stepText := strings.TrimSpace(text[m[1]:end])
		if len(stepText) > 200 {
			stepText = stepText[:200]
		}
		steps = append(steps, map[string]any{
			"@type":    "HowToStep",
			"name":     "Step " + strconv.Itoa(i+1),
			"text":     stepText,
			"position": i + 1,
		})
		if len(steps) == 10 {
			break
		}
	}
	if len(steps) == 0 {
		steps = append(steps, map[string]any{"@type": "HowToStep", "text": description})
	}
	return map[string]any{
		"@context":    "https://schema.org",
		"@type":       "HowTo",
		"name":        title,
		"description": description,
		"step":        steps,
		"url":         url,
	}
}

func faqSchema(text string) map[string]any {
	pairs := []map[string]any{}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !strings.Contains(line, "?") {
			continue
		}
		question := strings.TrimSpace(line)
		answer := ""
		for j := i + 1; j < len(lines) && j < i+5; j++ {
			candidate := strings.TrimSpace(lines[j])
			if candidate != "" && !strings.Contains(candidate, "?") {
				answer = candidate
				break
			}
		}
		if answer == "" {
			continue
		}
		pairs = append(pairs, map[string]any{
			"@type": "Question",
			"name":  question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  answer,
			},
		})
		if len(pairs) == 10 {
			break
		}
	}
	return map[string]any{
		"@context":   "https://schema.org",
		"@type":      "FAQPage",
		"mainEntity": pairs,
	}
}

func productSchema(title, description, text string) map[string]any {
	price := "0.00"
	if m := pricePattern.FindStringSubmatch(text); m != nil {
		price = m[1]
	}
	return map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Product",
		"name":        title,
		"description": description,
		"offers": map[string]any{
			"@type":         "Offer",
			"price":         price,
			"priceCurrency": "USD",
		},
	}
}
