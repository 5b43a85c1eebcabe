package customer

import (
	"strings"

	"fjacquet/shipsort/internal/textutils"
)

// Search returns the labels whose case-folded form contains the folded
// query, in their original order. An empty query returns all labels. The
// query is not trimmed. The input slice is never modified.
func Search(labels []string, query string) []string {
	out := make([]string, 0, len(labels))
	if query == "" {
		return append(out, labels...)
	}

	folded := textutils.Fold(query)
	for _, l := range labels {
		if strings.Contains(textutils.Fold(l), folded) {
			out = append(out, l)
		}
	}
	return out
}
