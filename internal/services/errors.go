package services

// Error codes reported for uploads that cannot be analysed
const (
	CodeMissingHeaderRow  = "MISSING_HEADER_ROW"
	CodeParseFailed       = "PARSE_FAILED"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
)
