package filter

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
)

// urlParams is the flat query string form; facet lists stay comma-joined here
type urlParams struct {
	Item            string `schema:"item,omitempty"`
	Recipe          string `schema:"recipe,omitempty"`
	ItemTypes       string `schema:"itemTypes,omitempty"`
	Jobs            string `schema:"jobs,omitempty"`
	RecipeTypes     string `schema:"recipeTypes,omitempty"`
	RecipeItemTypes string `schema:"recipeItemTypes,omitempty"`
	Repeatable      string `schema:"repeatable,omitempty"`
	Overcharge      string `schema:"overcharge,omitempty"`
	Pricing         string `schema:"pricing,omitempty"`
	Page            string `schema:"page,omitempty"`
}

var (
	decoder = newDecoder()
	encoder = schema.NewEncoder()
)

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// Parse reads a filter from URL query values. Every listed facet id becomes
// a checked value without a name; invalid id tokens coerce to 0 and never
// fail. Absent keys leave fields empty. Unknown keys are ignored, and
// overcharge or pricing values outside their modes are dropped.
func Parse(values url.Values) SearchFilter {
	var p urlParams
	// string targets cannot fail conversion and unknown keys are ignored
	_ = decoder.Decode(&p, values)

	f := SearchFilter{
		Item:            p.Item,
		Recipe:          p.Recipe,
		ItemTypes:       parseIDs(p.ItemTypes),
		Jobs:            parseIDs(p.Jobs),
		RecipeTypes:     parseIDs(p.RecipeTypes),
		RecipeItemTypes: parseIDs(p.RecipeItemTypes),
		Repeatable:      parseIDs(p.Repeatable),
		Page:            p.Page,
	}
	if m := OverchargeMode(p.Overcharge); m.Valid() {
		f.Overcharge = m
	}
	if m := PricingMode(p.Pricing); m.Valid() {
		f.Pricing = m
	}
	return f
}

// ParseQuery parses a raw query string; a malformed string yields an empty filter
func ParseQuery(raw string) SearchFilter {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return SearchFilter{}
	}
	return Parse(values)
}

// ParseIDToken parses one id token; ok is false when the token is not an
// integer that fits int64
func ParseIDToken(tok string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(tok), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseIDs keeps the tokens that parse; a list with none yields no selection
func parseIDs(list string) FacetSet {
	if list == "" {
		return nil
	}
	byID := map[int64]FacetValue{}
	for _, tok := range strings.Split(list, ",") {
		id, ok := ParseIDToken(tok)
		if !ok {
			continue
		}
		checked := true
		byID[id] = FacetValue{ID: id, Checked: &checked}
	}
	if len(byID) == 0 {
		return nil
	}
	return fromMap(byID)
}

// Format writes the checked-only projection of f: each facet becomes a
// comma-joined list of checked ids and every empty key is omitted.
// Unchecked values are never written, so Parse(Format(f)) holds only the
// checked ids; names come back by merging with the default filter.
func Format(f SearchFilter) url.Values {
	p := urlParams{
		Item:            f.Item,
		Recipe:          f.Recipe,
		ItemTypes:       joinIDs(f.ItemTypes.Selected()),
		Jobs:            joinIDs(f.Jobs.Selected()),
		RecipeTypes:     joinIDs(f.RecipeTypes.Selected()),
		RecipeItemTypes: joinIDs(f.RecipeItemTypes.Selected()),
		Repeatable:      joinIDs(f.Repeatable.Selected()),
		Overcharge:      string(f.Overcharge),
		Pricing:         string(f.Pricing),
		Page:            f.Page,
	}
	values := url.Values{}
	// flat string fields always encode
	_ = encoder.Encode(p, values)
	return values
}

// Encode returns the query string form of Format(f), keys sorted
func (f SearchFilter) Encode() string { return Format(f).Encode() }

// joinIDs expects ids already sorted, as Selected returns them
func joinIDs(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
