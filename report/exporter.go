// Package report renders an audit result as a downloadable XLSX workbook.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/content-audit/backend/analyzer"
)

const summarySheet = "Summary"

// Exporter writes audit bundles to spreadsheet form. Now is injectable for
// reproducible report headers in tests.
type Exporter struct {
	Now func() time.Time
}

func NewExporter() *Exporter {
	return &Exporter{Now: time.Now}
}

// Export builds the workbook: a summary sheet with component scores plus one
// sheet of issues and recommendations per dimension.
func (e *Exporter) Export(result *analyzer.AuditResult) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", summarySheet)

	rows := [][]any{
		{"Content Audit Report", ""},
		{"Generated", e.Now().Format("2006-01-02 15:04")},
		{"URL", result.URL},
		{"Target Keyword", result.TargetKeyword},
		{"Word Count", result.WordCount},
		{"", ""},
		{"Dimension", "Score"},
		{"Overall", result.OverallScore},
		{"SEO", result.SEO.Score},
		{"SERP Performance", result.SERPPerformance.Score},
		{"AEO", result.AEO.Score},
		{"Humanization", result.Humanization.Score},
		{"Differentiation", result.Differentiation.Score},
	}
	if result.Sentiment != nil {
		rows = append(rows,
			[]any{"Sentiment", result.Sentiment.Score},
			[]any{"Entity Coverage", result.Entity.Score},
			[]any{"Freshness", result.Freshness.Score},
			[]any{"Originality", result.Originality.Score},
		)
	}
	for i, row := range rows {
		if err := f.SetSheetRow(summarySheet, "A"+strconv.Itoa(i+1), &row); err != nil {
			return nil, fmt.Errorf("write summary row: %w", err)
		}
	}

	sections := []struct {
		name   string
		result analyzer.Scorable
	}{
		{"SEO", result.SEO},
		{"SERP", result.SERPPerformance},
		{"AEO", result.AEO},
		{"Humanization", result.Humanization},
		{"Differentiation", result.Differentiation},
	}
	for _, section := range sections {
		if err := writeSection(f, section.name, section.result); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func writeSection(f *excelize.File, name string, result analyzer.Scorable) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}

	rows := [][]any{
		{"Score", result.ScoreValue()},
		{"", ""},
		{"Issues", ""},
	}
	for _, issue := range result.IssueList() {
		rows = append(rows, []any{"", issue})
	}
	rows = append(rows, []any{"", ""}, []any{"Recommendations", ""})
	for _, rec := range result.RecommendationList() {
		rows = append(rows, []any{"", rec})
	}

	for i, row := range rows {
		if err := f.SetSheetRow(name, "A"+strconv.Itoa(i+1), &row); err != nil {
			return fmt.Errorf("write %s row: %w", name, err)
		}
	}
	return nil
}
