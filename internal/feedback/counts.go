package feedback

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// valueCounts tallies labels and orders them by descending count. Labels with
// equal counts keep the order in which they were first seen.
func valueCounts(labels []string) []Count {
	index := make(map[string]int, len(labels))
	counts := make([]Count, 0)
	for _, l := range labels {
		if i, ok := index[l]; ok {
			counts[i].Count++
			continue
		}
		index[l] = len(counts)
		counts = append(counts, Count{Label: l, Count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// joinCounts renders counts as "label: n, label: n".
func joinCounts(counts []Count) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = c.Label + ": " + strconv.Itoa(c.Count)
	}
	return strings.Join(parts, ", ")
}

// percent returns 100*part/total rounded half-to-even to two decimals.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.RoundToEven(float64(part)/float64(total)*100*100) / 100
}

// formatFloat prints the shortest representation that round-trips, always
// with a fractional part: 75 prints as "75.0".
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
