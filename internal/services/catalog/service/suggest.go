package service

import (
	"cmp"
	"slices"
	"strings"

	"paporium/internal/services/catalog/dataset"
	"paporium/internal/services/catalog/domain"

	"github.com/agnivade/levenshtein"
)

const maxSuggestions = 5

// suggestLimit is the largest edit distance still offered for a query
func suggestLimit(n int) int { return max(2, n/2) }

// suggest ranks names by edit distance to text, case-insensitive, ties by id
func suggest(names []dataset.Name, text string, limit int) []domain.Suggestion {
	want := strings.ToLower(text)
	most := suggestLimit(len([]rune(want)))
	out := make([]domain.Suggestion, 0, limit)
	for _, n := range names {
		d := levenshtein.ComputeDistance(want, strings.ToLower(n.Name))
		if d > most {
			continue
		}
		out = append(out, domain.Suggestion{ID: n.ID, Name: n.Name, Distance: d})
	}
	slices.SortStableFunc(out, func(a, b domain.Suggestion) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
