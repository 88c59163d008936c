package exporter

import (
	"io"
	"path/filepath"
	"strings"

	"feedbackpulse/internal/feedback"
)

// SummaryHeaders are the columns of a summary export
var SummaryHeaders = []string{"question", "type", "display_summary"}

// SummaryRecords converts summaries to CSV rows in the order given. Question
// and summary text come from the upload, so cells that a spreadsheet would
// evaluate as a formula are escaped.
func SummaryRecords(summaries []feedback.Summary) [][]string {
	records := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		records = append(records, []string{
			escapeFormula(s.Question),
			string(s.Type),
			escapeFormula(s.DisplaySummary),
		})
	}
	return records
}

// escapeFormula prefixes a quote to cells starting with a formula trigger
func escapeFormula(cell string) string {
	if cell == "" {
		return cell
	}
	switch cell[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + cell
	}
	return cell
}

// WriteSummaries writes summaries as a BOM-prefixed CSV document
func WriteSummaries(w io.Writer, summaries []feedback.Summary) error {
	return NewCSVWriter(w).WriteCSV(WriteOptions{
		Headers:   SummaryHeaders,
		Records:   SummaryRecords(summaries),
		BOMPrefix: true,
	})
}

// SummaryFileName derives the attachment name for an uploaded file,
// e.g. "Tech Talk.xlsx" becomes "Tech_Talk-summary.csv"
func SummaryFileName(upload string) string {
	base := strings.TrimSuffix(filepath.Base(upload), filepath.Ext(upload))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, base)
	base = strings.Trim(base, ".")
	if base == "" {
		base = "feedback"
	}
	return base + "-summary.csv"
}
