package feedback

import (
	"strings"

	"github.com/araddon/dateparse"
)

// ignoreKeywords mark respondent metadata columns. Matching is a plain
// case-insensitive substring test, so "Comments" is ignored because of "co".
var ignoreKeywords = []string{
	"timestamp", "email", "name", "roll", "co", "po", "sno",
	"slno", "sr no", "attainment", "class", "branch", "div",
}

// IsFeedbackColumn reports whether a column name is eligible for analysis.
func IsFeedbackColumn(name string) bool {
	lower := strings.ToLower(name)
	for _, key := range ignoreKeywords {
		if strings.Contains(lower, key) {
			return false
		}
	}
	return true
}

// IsDatetimeColumn reports whether every value parses as a date or time.
// Parser failures of any kind yield false.
func IsDatetimeColumn(values []string) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if !parsesAsTime(v) {
			return false
		}
	}
	return true
}

func parsesAsTime(v string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	_, err := dateparse.ParseAny(v)
	return err == nil
}
