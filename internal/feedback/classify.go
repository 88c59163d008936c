package feedback

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/montanaflynn/stats"
)

// sentimentMinMeanLength is the mean value length, in characters, a column
// must exceed to be treated as free-text comments.
const sentimentMinMeanLength = 15

var (
	binaryValues = map[string]bool{"yes": true, "no": true}

	ratingWords = map[string]bool{
		"excellent": true, "very good": true, "good": true, "average": true,
		"bad": true, "poor": true, "fair": true,
	}

	rangePattern = regexp.MustCompile(`(\d{1,3})-(\d{1,3})%`)
)

// rangeBucket is a right-inclusive percentage bin.
type rangeBucket struct {
	label string
	upper int
}

var rangeBuckets = []rangeBucket{
	{"0-20", 20},
	{"21-40", 40},
	{"41-60", 60},
	{"61-80", 80},
	{"81-100", 100},
}

// Analyze classifies every column of t in order and returns one summary per
// recognised column.
func Analyze(t Table) []Summary {
	results, _ := AnalyzeTable(context.Background(), t)
	return Summaries(results)
}

// AnalyzeTable runs AnalyzeColumn over every column of t in sheet order,
// returning one result per column including the skipped ones. ctx is checked
// before each column.
func AnalyzeTable(ctx context.Context, t Table) ([]ColumnResult, error) {
	names := t.Names()
	results := make([]ColumnResult, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, AnalyzeColumn(name, t.Cells(name)))
	}
	return results, nil
}

// Summaries keeps the recognised columns of results, in order.
func Summaries(results []ColumnResult) []Summary {
	summaries := make([]Summary, 0, len(results))
	for _, res := range results {
		if res.Summary != nil {
			summaries = append(summaries, *res.Summary)
		}
	}
	return summaries
}

// AnalyzeColumn runs the full per-column pipeline: name filter, cleaning,
// date detection and classification.
func AnalyzeColumn(name string, cells []Cell) ColumnResult {
	res := ColumnResult{Name: name}
	if !IsFeedbackColumn(name) {
		res.Skipped = SkipIgnoredName
		return res
	}

	values := CleanValues(cells)
	if len(values) == 0 {
		res.Skipped = SkipEmpty
		return res
	}
	if IsDatetimeColumn(values) {
		res.Skipped = SkipDatetime
		return res
	}

	summary, ok := ClassifyColumn(name, values)
	if !ok {
		res.Skipped = SkipUnclassified
		return res
	}
	res.Summary = &summary
	return res
}

// ClassifyColumn applies the type tests to already cleaned values. The first
// matching test wins; ok is false when none matches.
func ClassifyColumn(name string, values []string) (Summary, bool) {
	if len(values) == 0 {
		return Summary{}, false
	}

	lower := make([]string, len(values))
	for i, v := range values {
		lower[i] = strings.ToLower(v)
	}

	switch {
	case allIn(lower, binaryValues):
		return binarySummary(name, lower), true
	case anyIn(lower, ratingWords):
		return countedSummary(name, TypeCategorical, values, valueCounts(values)), true
	case anyMatchesRange(values):
		return countedSummary(name, TypeRange, values, rangeCounts(values)), true
	case meanLength(values) > sentimentMinMeanLength:
		labels := make([]string, len(values))
		for i, v := range values {
			labels[i] = ClassifyComment(v)
		}
		return countedSummary(name, TypeSentiment, values, valueCounts(labels)), true
	}
	return Summary{}, false
}

func binarySummary(name string, lower []string) Summary {
	yes := 0
	for _, v := range lower {
		if v == "yes" {
			yes++
		}
	}
	total := len(lower)
	return Summary{
		Question: name,
		Type:     TypeBinary,
		DisplaySummary: fmt.Sprintf("Yes: %s%% (%d/%d)",
			formatFloat(percent(yes, total)), yes, total),
		Total: total,
		Counts: []Count{
			{Label: "Yes", Count: yes},
			{Label: "No", Count: total - yes},
		},
	}
}

func countedSummary(name string, typ FeedbackType, values []string, counts []Count) Summary {
	return Summary{
		Question:       name,
		Type:           typ,
		DisplaySummary: joinCounts(counts),
		Total:          len(values),
		Counts:         counts,
	}
}

// rangeCounts buckets the start value of the first range in each value.
// Values without a range, and starts above 100, fall into no bucket. Empty
// buckets are omitted; the rest are in ascending bin order.
func rangeCounts(values []string) []Count {
	tally := make([]int, len(rangeBuckets))
	for _, v := range values {
		m := rangePattern.FindStringSubmatch(v)
		if m == nil {
			continue
		}
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if i := bucketIndex(start); i >= 0 {
			tally[i]++
		}
	}

	counts := make([]Count, 0, len(rangeBuckets))
	for i, b := range rangeBuckets {
		if tally[i] > 0 {
			counts = append(counts, Count{Label: b.label, Count: tally[i]})
		}
	}
	return counts
}

func bucketIndex(start int) int {
	if start < 0 {
		return -1
	}
	for i, b := range rangeBuckets {
		if start <= b.upper {
			return i
		}
	}
	return -1
}

func anyMatchesRange(values []string) bool {
	for _, v := range values {
		if rangePattern.MatchString(v) {
			return true
		}
	}
	return false
}

func meanLength(values []string) float64 {
	lengths := make(stats.Float64Data, len(values))
	for i, v := range values {
		lengths[i] = float64(utf8.RuneCountInString(v))
	}
	mean, err := stats.Mean(lengths)
	if err != nil {
		return 0
	}
	return mean
}

func allIn(values []string, set map[string]bool) bool {
	for _, v := range values {
		if !set[v] {
			return false
		}
	}
	return true
}

func anyIn(values []string, set map[string]bool) bool {
	for _, v := range values {
		if set[v] {
			return true
		}
	}
	return false
}
