package spreadsheet

import (
	"fmt"
	"strings"
)

// normalizeHeaders turns the raw header row into unique column names.
// Blank headers become "Unnamed: <index>" and repeats get ".1", ".2"
// suffixes. Names are then trimmed, embedded newlines become spaces and
// carriage returns are removed.
func normalizeHeaders(raw []string, width int) []string {
	names := make([]string, width)
	for i := range names {
		if i < len(raw) && raw[i] != "" {
			names[i] = raw[i]
		} else {
			names[i] = unnamed(i)
		}
	}
	names = dedupe(names)

	for i, n := range names {
		n = strings.TrimSpace(n)
		n = strings.ReplaceAll(n, "\n", " ")
		n = strings.ReplaceAll(n, "\r", "")
		if n == "" {
			n = unnamed(i)
		}
		names[i] = n
	}
	return dedupe(names)
}

func unnamed(i int) string {
	return fmt.Sprintf("Unnamed: %d", i)
}

// dedupe suffixes repeated names with ".N", skipping suffixes that are
// already taken by another column.
func dedupe(names []string) []string {
	out := make([]string, len(names))
	seen := make(map[string]int, len(names))
	for i, name := range names {
		n := seen[name]
		for n > 0 {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
			n = seen[name]
		}
		out[i] = name
		seen[name] = n + 1
	}
	return out
}
