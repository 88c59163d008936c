package feedback

// FeedbackType names the kind of question a column was recognised as.
type FeedbackType string

const (
	TypeBinary      FeedbackType = "Binary Feedback"
	TypeCategorical FeedbackType = "Categorical Feedback"
	TypeRange       FeedbackType = "Range Feedback"
	TypeSentiment   FeedbackType = "Sentiment Feedback"
)

// Count is one label of a summary breakdown.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summary is the aggregate produced for one recognised column.
type Summary struct {
	Question       string       `json:"question"`
	Type           FeedbackType `json:"type"`
	DisplaySummary string       `json:"display_summary"`
	Total          int          `json:"total"`
	Counts         []Count      `json:"counts"`
}

// Cell is a single raw table value. Missing cells carry no value.
type Cell struct {
	Value   string
	Missing bool
}

// Table is the read-only view of an uploaded sheet the classifier works on.
type Table interface {
	// Names returns column names in sheet order.
	Names() []string
	// Cells returns the cells of the named column in row order.
	Cells(name string) []Cell
}

// SkipReason explains why a column produced no summary.
type SkipReason string

const (
	SkipNone         SkipReason = ""
	SkipIgnoredName  SkipReason = "ignored_name"
	SkipEmpty        SkipReason = "empty"
	SkipDatetime     SkipReason = "datetime"
	SkipUnclassified SkipReason = "unclassified"
)

// ColumnResult is the outcome of analysing one column.
type ColumnResult struct {
	Name    string
	Summary *Summary
	Skipped SkipReason
}
