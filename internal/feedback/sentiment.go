package feedback

import "strings"

// Sentiment labels produced by ClassifyComment.
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

var (
	positiveKeywords = []string{"good", "great", "excellent", "helpful", "informative", "loved"}
	negativeKeywords = []string{"bad", "boring", "poor", "not", "waste", "confusing"}
)

// ClassifyComment labels a free-text comment by keyword. Negative keywords
// win over positive ones: "good but boring" is Negative.
func ClassifyComment(comment string) string {
	lower := strings.ToLower(comment)
	if containsAny(lower, negativeKeywords) {
		return SentimentNegative
	}
	if containsAny(lower, positiveKeywords) {
		return SentimentPositive
	}
	return SentimentNeutral
}

func containsAny(s string, keys []string) bool {
	for _, k := range keys {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
