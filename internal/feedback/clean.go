package feedback

import "strings"

// CleanValues drops missing cells and trims the rest. Whitespace-only cells
// are kept as empty strings.
func CleanValues(cells []Cell) []string {
	values := make([]string, 0, len(cells))
	for _, c := range cells {
		if c.Missing {
			continue
		}
		values = append(values, strings.TrimSpace(c.Value))
	}
	return values
}
