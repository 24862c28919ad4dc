package session

import (
	"strconv"

	"paporium/internal/core/filter"
	perr "paporium/internal/platform/errors"
)

// Kind names a UI event
type Kind string

const (
	KindToggle     Kind = "toggle"
	KindText       Kind = "text"
	KindOvercharge Kind = "overcharge"
	KindPricing    Kind = "pricing"
	KindPage       Kind = "page"
	KindSelectAll  Kind = "selectAll"
	KindClearAll   Kind = "clearAll"
	KindReset      Kind = "reset"
)

// Event is one filter panel interaction
type Event struct {
	Kind    Kind   `json:"kind" validate:"required,oneof=toggle text overcharge pricing page selectAll clearAll reset"`
	Facet   string `json:"facet,omitempty" validate:"required_if=Kind toggle,omitempty,oneof=itemTypes jobs recipeTypes recipeItemTypes repeatable"`
	ID      int64  `json:"id,omitempty" validate:"min=0"`
	Checked bool   `json:"checked,omitempty"`
	Field   string `json:"field,omitempty" validate:"required_if=Kind text,omitempty,oneof=item recipe"`
	Value   string `json:"value,omitempty" validate:"max=200"`
	Page    int    `json:"page,omitempty" validate:"min=0"`
}

// Toggle checks or unchecks one facet value
func Toggle(facet filter.FacetName, id int64, checked bool) Event {
	return Event{Kind: KindToggle, Facet: string(facet), ID: id, Checked: checked}
}

// Text sets the item or recipe search text
func Text(field filter.Field, value string) Event {
	return Event{Kind: KindText, Field: string(field), Value: value}
}

// Step folds one event into f. def is the default filter used by reset.
// Facet toggles, text edits, overcharge changes and bulk actions reset the
// page; pricing does not.
func Step(def, f filter.SearchFilter, e Event) (filter.SearchFilter, error) {
	switch e.Kind {
	case KindToggle:
		name, err := filter.ParseFacetName(e.Facet)
		if err != nil {
			return f, err
		}
		checked := e.Checked
		delta := filter.SearchFilter{}.WithFacet(name, filter.FacetSet{{ID: e.ID, Checked: &checked}})
		return filter.Clear(filter.Merge(f, delta), filter.FieldPage), nil

	case KindText:
		field := filter.Field(e.Field)
		if field != filter.FieldItem && field != filter.FieldRecipe {
			return f, perr.WithField(perr.InvalidArgf("text field must be item or recipe"), "field")
		}
		return filter.Clear(filter.Set(f, field, e.Value), filter.FieldPage), nil

	case KindOvercharge:
		if !filter.OverchargeMode(e.Value).Valid() {
			return f, perr.WithField(perr.InvalidArgf("overcharge must be empty, true or false"), "value")
		}
		return filter.Clear(filter.Set(f, filter.FieldOvercharge, e.Value), filter.FieldPage), nil

	case KindPricing:
		if !filter.PricingMode(e.Value).Valid() {
			return f, perr.WithField(perr.InvalidArgf("pricing must be empty or ocdc"), "value")
		}
		return filter.Set(f, filter.FieldPricing, e.Value), nil

	case KindPage:
		if e.Page < 1 {
			return filter.Clear(f, filter.FieldPage), nil
		}
		return filter.Set(f, filter.FieldPage, strconv.Itoa(e.Page)), nil

	case KindSelectAll:
		return filter.Clear(filter.SelectAll(f), filter.FieldPage), nil
	case KindClearAll:
		return filter.ClearAll(f), nil
	case KindReset:
		return filter.Reset(def), nil
	}
	return f, perr.WithField(perr.InvalidArgf("unknown event kind %q", e.Kind), "kind")
}
