package feedback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTable struct {
	names []string
	cols  map[string][]Cell
}

func (m *memTable) Names() []string         { return m.names }
func (m *memTable) Cells(name string) []Cell { return m.cols[name] }

func newMemTable() *memTable {
	return &memTable{cols: make(map[string][]Cell)}
}

func (m *memTable) add(name string, values ...string) *memTable {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Cell{Value: v}
	}
	m.names = append(m.names, name)
	m.cols[name] = cells
	return m
}

func (m *memTable) addCells(name string, cells ...Cell) *memTable {
	m.names = append(m.names, name)
	m.cols[name] = cells
	return m
}

func TestClassifyColumn(t *testing.T) {
	tests := []struct {
		name        string
		column      string
		values      []string
		wantOK      bool
		wantType    FeedbackType
		wantDisplay string
	}{
		{
			name:        "binary attendance",
			column:      "Attendance",
			values:      []string{"yes", "yes", "no", "yes"},
			wantOK:      true,
			wantType:    TypeBinary,
			wantDisplay: "Yes: 75.0% (3/4)",
		},
		{
			name:        "binary is case insensitive",
			column:      "Attended",
			values:      []string{"Yes", "NO", "yes"},
			wantOK:      true,
			wantType:    TypeBinary,
			wantDisplay: "Yes: 66.67% (2/3)",
		},
		{
			name:        "binary all yes",
			column:      "Recommend",
			values:      []string{"yes", "YES"},
			wantOK:      true,
			wantType:    TypeBinary,
			wantDisplay: "Yes: 100.0% (2/2)",
		},
		{
			name:        "binary all no",
			column:      "Recommend",
			values:      []string{"no"},
			wantOK:      true,
			wantType:    TypeBinary,
			wantDisplay: "Yes: 0.0% (0/1)",
		},
		{
			name:        "categorical quality",
			column:      "Quality",
			values:      []string{"Good", "Excellent", "Good", "Fair"},
			wantOK:      true,
			wantType:    TypeCategorical,
			wantDisplay: "Good: 2, Excellent: 1, Fair: 1",
		},
		{
			name:        "categorical counts every value in original casing",
			column:      "Rating",
			values:      []string{"good", "Okay", "Okay", "GOOD"},
			wantOK:      true,
			wantType:    TypeCategorical,
			wantDisplay: "Okay: 2, good: 1, GOOD: 1",
		},
		{
			name:        "categorical wins over range",
			column:      "Level",
			values:      []string{"very good", "21-40%"},
			wantOK:      true,
			wantType:    TypeCategorical,
			wantDisplay: "very good: 1, 21-40%: 1",
		},
		{
			name:        "range coverage",
			column:      "Coverage",
			values:      []string{"21-40%", "61-80%", "21-40%"},
			wantOK:      true,
			wantType:    TypeRange,
			wantDisplay: "21-40: 2, 61-80: 1",
		},
		{
			name:        "range buckets ascend and skip unmatched values",
			column:      "Syllabus",
			values:      []string{"81-100%", "about 0-20% done", "unknown", "41-60 %", "41-60%"},
			wantOK:      true,
			wantType:    TypeRange,
			wantDisplay: "0-20: 1, 41-60: 1, 81-100: 1",
		},
		{
			name:        "range with every start out of bounds",
			column:      "Overshoot",
			values:      []string{"150-200%", "999-1%"},
			wantOK:      true,
			wantType:    TypeRange,
			wantDisplay: "",
		},
		{
			name:   "sentiment comments",
			column: "Comments",
			values: []string{
				"The session was very informative and helpful",
				"It was boring and confusing at times",
			},
			wantOK:      true,
			wantType:    TypeSentiment,
			wantDisplay: "Positive: 1, Negative: 1",
		},
		{
			name:   "sentiment neutral and ties",
			column: "Thoughts",
			values: []string{
				"Would attend again next year",
				"Bad audio in the back rows",
				"A good use of the afternoon",
				"Slides were shared afterwards",
			},
			wantOK:      true,
			wantType:    TypeSentiment,
			wantDisplay: "Neutral: 2, Negative: 1, Positive: 1",
		},
		{
			name:   "mean length of exactly fifteen is not sentiment",
			column: "Short",
			values: []string{"abcdefghijklmno"},
			wantOK: false,
		},
		{
			name:        "mean length above fifteen is sentiment",
			column:      "Longer",
			values:      []string{"abcdefghijklmnop"},
			wantOK:      true,
			wantType:    TypeSentiment,
			wantDisplay: "Neutral: 1",
		},
		{
			name:   "short free text is unclassified",
			column: "Misc",
			values: []string{"ok", "fine", "meh"},
			wantOK: false,
		},
		{
			name:   "blank breaks binary",
			column: "Attendance",
			values: []string{"yes", ""},
			wantOK: false,
		},
		{
			name:   "no values",
			column: "Empty",
			values: nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifyColumn(tt.column, tt.values)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.column, got.Question)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantDisplay, got.DisplaySummary)
			assert.Equal(t, len(tt.values), got.Total)
		})
	}
}

func TestClassifyColumn_BinaryCountsAddUp(t *testing.T) {
	values := []string{"yes", "no", "no", "yes", "yes", "no", "no"}
	got, ok := ClassifyColumn("Attendance", values)
	require.True(t, ok)
	require.Len(t, got.Counts, 2)

	assert.Equal(t, "Yes", got.Counts[0].Label)
	assert.Equal(t, 3, got.Counts[0].Count)
	assert.Equal(t, got.Total, got.Counts[0].Count+got.Counts[1].Count)
	assert.Equal(t, "Yes: 42.86% (3/7)", got.DisplaySummary)
}

func TestClassifyColumn_CategoricalCountsSumToTotal(t *testing.T) {
	values := []string{"Good", "Average", "Poor", "Good", "Average", "Good", "n/a-ish"}
	got, ok := ClassifyColumn("Delivery", values)
	require.True(t, ok)

	sum := 0
	for _, c := range got.Counts {
		sum += c.Count
	}
	assert.Equal(t, len(values), sum)
	assert.Equal(t, "Good", got.Counts[0].Label)
}

func TestAnalyze(t *testing.T) {
	table := newMemTable().
		add("Timestamp", "2024-03-01 10:00:00", "2024-03-01 10:05:00").
		add("Submitted On", "2024-03-01", "2024-03-02").
		add("Email", "a@example.com", "b@example.com").
		add("Attendance", "yes", "yes", "no", "yes").
		add("Quality", "Good", "Excellent", "Good", "Fair").
		add("Coverage", "21-40%", "61-80%", "21-40%").
		addCells("Remarks", Cell{Missing: true}, Cell{Missing: true}).
		add("Session Feedback",
			"The session was very informative and helpful",
			"It was boring and confusing at times")

	got := Analyze(table)

	require.Len(t, got, 3)
	assert.Equal(t, Summary{
		Question:       "Attendance",
		Type:           TypeBinary,
		DisplaySummary: "Yes: 75.0% (3/4)",
		Total:          4,
		Counts:         []Count{{"Yes", 3}, {"No", 1}},
	}, got[0])
	assert.Equal(t, "Quality", got[1].Question)
	assert.Equal(t, "Good: 2, Excellent: 1, Fair: 1", got[1].DisplaySummary)
	assert.Equal(t, "Session Feedback", got[2].Question)
	assert.Equal(t, TypeSentiment, got[2].Type)
	assert.Equal(t, "Positive: 1, Negative: 1", got[2].DisplaySummary)
}

func TestAnalyze_Idempotent(t *testing.T) {
	table := newMemTable().
		add("Attendance", "yes", "no").
		add("Quality", "Good", "Bad", "Bad")

	assert.Equal(t, Analyze(table), Analyze(table))
}

func TestAnalyze_NoColumns(t *testing.T) {
	got := Analyze(newMemTable())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAnalyzeTable(t *testing.T) {
	table := newMemTable().
		add("Email", "a@example.com").
		add("Attendance", "yes", "no").
		add("Misc", "ok")

	results, err := AnalyzeTable(context.Background(), table)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "Email", results[0].Name)
	assert.Equal(t, SkipIgnoredName, results[0].Skipped)
	assert.Equal(t, "Attendance", results[1].Name)
	require.NotNil(t, results[1].Summary)
	assert.Equal(t, SkipUnclassified, results[2].Skipped)

	assert.Equal(t, Analyze(table), Summaries(results))
}

func TestAnalyzeTable_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := AnalyzeTable(ctx, newMemTable().add("Attendance", "yes"))
	assert.Nil(t, results)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeColumn_SkipReasons(t *testing.T) {
	tests := []struct {
		name   string
		column string
		cells  []Cell
		want   SkipReason
	}{
		{"ignored email", "Email", []Cell{{Value: "yes"}}, SkipIgnoredName},
		{"ignored by substring", "Comments", []Cell{{Value: "yes"}}, SkipIgnoredName},
		{"all missing", "Remarks", []Cell{{Missing: true}}, SkipEmpty},
		{"no rows", "Remarks", nil, SkipEmpty},
		{"dates", "Held On", []Cell{{Value: "2024-01-15"}, {Value: "2024-02-20"}}, SkipDatetime},
		{"unclassified", "Misc", []Cell{{Value: "ok"}}, SkipUnclassified},
		{"classified", "Attendance", []Cell{{Value: " yes "}, {Missing: true}}, SkipNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := AnalyzeColumn(tt.column, tt.cells)
			assert.Equal(t, tt.want, res.Skipped)
			assert.Equal(t, tt.want == SkipNone, res.Summary != nil)
		})
	}
}

func TestAnalyzeColumn_TrimsBeforeClassifying(t *testing.T) {
	res := AnalyzeColumn("Attendance", []Cell{{Value: "  yes"}, {Value: "no  "}, {Missing: true}})
	require.NotNil(t, res.Summary)
	assert.Equal(t, "Yes: 50.0% (1/2)", res.Summary.DisplaySummary)
}
