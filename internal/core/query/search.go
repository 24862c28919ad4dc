package query

import (
	"strings"

	"paporium/internal/core/filter"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// SearchMode says how free item text is matched
type SearchMode int

const (
	SearchNone SearchMode = iota
	SearchIDs
	SearchText
)

func (m SearchMode) String() string {
	switch m {
	case SearchIDs:
		return "ids"
	case SearchText:
		return "text"
	}
	return "none"
}

// Search is classified free item text
type Search struct {
	Mode SearchMode
	IDs  []int64
	Text string
}

var fold = transform.Chain(norm.NFKC, width.Fold)

// Sanitize strips line breaks, folds compatibility and full-width forms and trims
func Sanitize(s string) string {
	s = strings.NewReplacer("\r", "", "\n", "").Replace(s)
	if out, _, err := transform.String(fold, s); err == nil {
		s = out
	}
	return strings.TrimSpace(s)
}

// ClassifySearch picks id-list or substring matching for free item text.
// Text is an id list when keeping only digits and commas leaves a non-empty
// list whose every comma-separated token is a non-empty id that fits int64:
// "1,2,3" is an id list, "1,2,x" and "Red, Potion" are not.
func ClassifySearch(raw string) Search {
	text := Sanitize(raw)
	if text == "" {
		return Search{Mode: SearchNone}
	}
	if ids, ok := idList(text); ok {
		return Search{Mode: SearchIDs, IDs: ids, Text: text}
	}
	return Search{Mode: SearchText, Text: text}
}

func idList(text string) ([]int64, bool) {
	stripped := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' {
			return r
		}
		return -1
	}, text)
	if stripped == "" {
		return nil, false
	}
	toks := strings.Split(stripped, ",")
	ids := make([]int64, 0, len(toks))
	for _, tok := range toks {
		id, ok := filter.ParseIDToken(tok)
		if !ok {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching text anywhere; LIKE
// wildcards typed by the user match literally
func containsPattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}
