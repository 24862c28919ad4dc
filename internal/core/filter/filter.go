package filter

import (
	"strconv"

	perr "paporium/internal/platform/errors"
)

// FacetName names one facet set of a SearchFilter; the values double as URL keys
type FacetName string

const (
	FacetItemTypes       FacetName = "itemTypes"
	FacetJobs            FacetName = "jobs"
	FacetRecipeTypes     FacetName = "recipeTypes"
	FacetRecipeItemTypes FacetName = "recipeItemTypes"
	FacetRepeatable      FacetName = "repeatable"
)

// FacetNames lists every facet in URL order
var FacetNames = []FacetName{FacetItemTypes, FacetJobs, FacetRecipeTypes, FacetRecipeItemTypes, FacetRepeatable}

// ParseFacetName validates a facet name coming from a client
func ParseFacetName(s string) (FacetName, error) {
	for _, n := range FacetNames {
		if string(n) == s {
			return n, nil
		}
	}
	return "", perr.WithField(perr.InvalidArgf("unknown facet %q", s), "facet")
}

// Field names one scalar field of a SearchFilter; the values double as URL keys
type Field string

const (
	FieldItem       Field = "item"
	FieldRecipe     Field = "recipe"
	FieldOvercharge Field = "overcharge"
	FieldPricing    Field = "pricing"
	FieldPage       Field = "page"
)

// OverchargeMode is the final row filter on the overcharge flag
type OverchargeMode string

const (
	OverchargeAny     OverchargeMode = ""
	OverchargeOnly    OverchargeMode = "true"
	OverchargeExclude OverchargeMode = "false"
)

// Valid reports whether m is one of the known modes
func (m OverchargeMode) Valid() bool {
	return m == OverchargeAny || m == OverchargeOnly || m == OverchargeExclude
}

// PricingMode selects how prices are displayed
type PricingMode string

const (
	PricingDefault PricingMode = ""
	PricingOCDC    PricingMode = "ocdc"
)

// Valid reports whether m is one of the known modes
func (m PricingMode) Valid() bool { return m == PricingDefault || m == PricingOCDC }

// SearchFilter is the complete filter state. An empty scalar means unset.
type SearchFilter struct {
	Item   string `json:"item,omitempty"`
	Recipe string `json:"recipe,omitempty"`

	ItemTypes       FacetSet `json:"itemTypes,omitempty"`
	Jobs            FacetSet `json:"jobs,omitempty"`
	RecipeTypes     FacetSet `json:"recipeTypes,omitempty"`
	RecipeItemTypes FacetSet `json:"recipeItemTypes,omitempty"`
	Repeatable      FacetSet `json:"repeatable,omitempty"`

	Overcharge OverchargeMode `json:"overcharge,omitempty"`
	Pricing    PricingMode    `json:"pricing,omitempty"`
	// Page keeps the raw URL form; PageNumber coerces it
	Page string `json:"page,omitempty"`
}

// Clone returns a deep copy
func (f SearchFilter) Clone() SearchFilter {
	out := f
	out.ItemTypes = f.ItemTypes.Clone()
	out.Jobs = f.Jobs.Clone()
	out.RecipeTypes = f.RecipeTypes.Clone()
	out.RecipeItemTypes = f.RecipeItemTypes.Clone()
	out.Repeatable = f.Repeatable.Clone()
	return out
}

// Facet returns a copy of the named facet set
func (f SearchFilter) Facet(name FacetName) FacetSet {
	switch name {
	case FacetItemTypes:
		return f.ItemTypes.Clone()
	case FacetJobs:
		return f.Jobs.Clone()
	case FacetRecipeTypes:
		return f.RecipeTypes.Clone()
	case FacetRecipeItemTypes:
		return f.RecipeItemTypes.Clone()
	case FacetRepeatable:
		return f.Repeatable.Clone()
	}
	return nil
}

// WithFacet returns a copy with the named facet set replaced
func (f SearchFilter) WithFacet(name FacetName, set FacetSet) SearchFilter {
	out := f.Clone()
	set = set.Clone()
	switch name {
	case FacetItemTypes:
		out.ItemTypes = set
	case FacetJobs:
		out.Jobs = set
	case FacetRecipeTypes:
		out.RecipeTypes = set
	case FacetRecipeItemTypes:
		out.RecipeItemTypes = set
	case FacetRepeatable:
		out.Repeatable = set
	}
	return out
}

// PageNumber returns the 1-based page, or 0 when Page is unset, malformed or not positive
func (f SearchFilter) PageNumber() int {
	n, err := strconv.Atoi(f.Page)
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// Merge overlays new onto old. A scalar takes new's value when it is non-empty
// and keeps old's otherwise, so a partial new never wipes old; use Clear to
// empty a field. Facet sets merge with MergeFacets.
func Merge(old, new SearchFilter) SearchFilter {
	return SearchFilter{
		Item:            firstSet(new.Item, old.Item),
		Recipe:          firstSet(new.Recipe, old.Recipe),
		ItemTypes:       MergeFacets(old.ItemTypes, new.ItemTypes),
		Jobs:            MergeFacets(old.Jobs, new.Jobs),
		RecipeTypes:     MergeFacets(old.RecipeTypes, new.RecipeTypes),
		RecipeItemTypes: MergeFacets(old.RecipeItemTypes, new.RecipeItemTypes),
		Repeatable:      MergeFacets(old.Repeatable, new.Repeatable),
		Overcharge:      firstSet(new.Overcharge, old.Overcharge),
		Pricing:         firstSet(new.Pricing, old.Pricing),
		Page:            firstSet(new.Page, old.Page),
	}
}

func firstSet[T ~string](a, b T) T {
	if a != "" {
		return a
	}
	return b
}

// Equal compares two filters field by field
func Equal(a, b SearchFilter) bool {
	return a.Item == b.Item &&
		a.Recipe == b.Recipe &&
		a.Overcharge == b.Overcharge &&
		a.Pricing == b.Pricing &&
		a.Page == b.Page &&
		a.ItemTypes.Equal(b.ItemTypes) &&
		a.Jobs.Equal(b.Jobs) &&
		a.RecipeTypes.Equal(b.RecipeTypes) &&
		a.RecipeItemTypes.Equal(b.RecipeItemTypes) &&
		a.Repeatable.Equal(b.Repeatable)
}

// Named is one row of a lookup table
type Named struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Lookups are the dataset tables the default filter is built from
type Lookups struct {
	ItemTypes       []Named `json:"itemTypes"`
	Jobs            []Named `json:"jobs"`
	RecipeTypes     []Named `json:"recipeTypes"`
	RecipeItemTypes []Named `json:"recipeItemTypes"`
	Repeatable      []Named `json:"repeatable"`
}

// DefaultRepeatable names the repeatable flag values when the dataset has no table for them
var DefaultRepeatable = []Named{{ID: OneTime, Name: "One-time"}, {ID: Repeatable, Name: "Repeatable"}}

// DefaultFilter builds the all-unchecked filter carrying every lookup name
func DefaultFilter(l Lookups) SearchFilter {
	rep := l.Repeatable
	if len(rep) == 0 {
		rep = DefaultRepeatable
	}
	return SearchFilter{
		ItemTypes:       namedSet(l.ItemTypes),
		Jobs:            namedSet(l.Jobs),
		RecipeTypes:     namedSet(l.RecipeTypes),
		RecipeItemTypes: namedSet(l.RecipeItemTypes),
		Repeatable:      namedSet(rep),
	}
}

func namedSet(rows []Named) FacetSet {
	byID := make(map[int64]FacetValue, len(rows))
	for _, r := range rows {
		name, checked := r.Name, false
		byID[r.ID] = FacetValue{ID: r.ID, Name: &name, Checked: &checked}
	}
	if len(byID) == 0 {
		return nil
	}
	return fromMap(byID)
}
