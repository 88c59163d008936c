// Package exporter renders analysis results as CSV.
//
// CSVWriter is the low level writer: headers, records and an optional UTF-8
// BOM so Excel opens the file with the right encoding. WriteSummaries builds
// on it to export the question, type and display summary of every column.
//
// Example usage:
//
//	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
//	err := exporter.WriteSummaries(w, report.Summaries)
package exporter
