// Package feedback classifies the columns of a survey-response table into
// feedback summaries.
//
// Each column is considered in table order. Columns whose name looks like
// respondent metadata (timestamp, email, roll number, class, ...) are ignored,
// as are columns with no usable values and columns whose every value parses
// as a date. The remaining columns are run through an ordered sequence of
// tests and the first one that matches decides the column's type:
//
//  1. Binary Feedback: every value is "yes" or "no"
//  2. Categorical Feedback: some value is a rating word ("good", "fair", ...)
//  3. Range Feedback: some value looks like a percentage range ("21-40%")
//  4. Sentiment Feedback: values are long free-text comments
//
// A column that matches none of the tests produces no summary.
//
// # Usage
//
//	summaries := feedback.Analyze(table)
//	for _, s := range summaries {
//	    fmt.Println(s.Question, s.Type, s.DisplaySummary)
//	}
//
// The classifier holds no state; calling Analyze twice on the same table
// returns identical summaries.
package feedback
