package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/content-audit/backend/analyzer"
)

func sampleResult() *analyzer.AuditResult {
	return &analyzer.AuditResult{
		SEO: &analyzer.SEOResult{
			Score:           70,
			Issues:          []string{"Missing meta description"},
			Recommendations: []string{"Add a meta description with the keyword"},
		},
		SERPPerformance: &analyzer.SERPFitResult{Score: 65},
		AEO:             &analyzer.AEOResult{Score: 55},
		Humanization:    &analyzer.HumanizationResult{Score: 80},
		Differentiation: &analyzer.DifferentiationResult{Score: 60},
		OverallScore:    66.5,
		WordCount:       850,
		TargetKeyword:   "bread baking",
		URL:             "https://example.com/bread",
	}
}

func TestExport(t *testing.T) {
	e := NewExporter()
	e.Now = func() time.Time {
		return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	}

	buf, err := e.Export(sampleResult())
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected non-empty workbook")
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	wantSheets := []string{"Summary", "SEO", "SERP", "AEO", "Humanization", "Differentiation"}
	for _, want := range wantSheets {
		found := false
		for _, got := range sheets {
			if got == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing sheet %q in %v", want, sheets)
		}
	}

	title, err := f.GetCellValue("Summary", "A1")
	if err != nil {
		t.Fatalf("read title cell: %v", err)
	}
	if title != "Content Audit Report" {
		t.Errorf("title = %q", title)
	}

	generated, _ := f.GetCellValue("Summary", "B2")
	if generated != "2026-05-01 12:00" {
		t.Errorf("generated timestamp = %q", generated)
	}

	keyword, _ := f.GetCellValue("Summary", "B4")
	if keyword != "bread baking" {
		t.Errorf("keyword cell = %q", keyword)
	}

	issue, _ := f.GetCellValue("SEO", "B4")
	if issue != "Missing meta description" {
		t.Errorf("first SEO issue cell = %q", issue)
	}
}

func TestExportExtended(t *testing.T) {
	result := sampleResult()
	result.Sentiment = &analyzer.SentimentResult{Score: 88}
	result.Entity = &analyzer.EntityResult{Score: 75}
	result.Freshness = &analyzer.FreshnessResult{Score: 100}
	result.Originality = &analyzer.OriginalityResult{Score: 90}

	buf, err := NewExporter().Export(result)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	label, _ := f.GetCellValue("Summary", "A14")
	if label != "Sentiment" {
		t.Errorf("extended row label = %q, want Sentiment", label)
	}
}
