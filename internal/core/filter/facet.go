// Package filter holds the catalog search filter: facet sets, scalar fields,
// the merge overlay and the URL query string codec.
//
// Every operation returns a new value. Facet slices are never shared between
// two filters, so a caller may keep an old filter while building the next one.
package filter

import (
	"cmp"
	"slices"
)

// Recipe component types
const (
	Ingredient int64 = 1
	Product    int64 = 2
)

// Repeatable flag values
const (
	OneTime    int64 = 0
	Repeatable int64 = 1
)

// ItemTypeEtc is the item type eligible for overcharge
const ItemTypeEtc int64 = 6

// FacetValue is one selectable value of a facet
// nil Name or Checked means unspecified; Checked false is an explicit uncheck
type FacetValue struct {
	ID      int64   `json:"id"`
	Name    *string `json:"name,omitempty"`
	Checked *bool   `json:"checked,omitempty"`
}

// IsChecked reports Checked == true
func (v FacetValue) IsChecked() bool { return v.Checked != nil && *v.Checked }

// Label returns the display name, empty when the value carries none
func (v FacetValue) Label() string {
	if v.Name == nil {
		return ""
	}
	return *v.Name
}

func (v FacetValue) clone() FacetValue {
	out := FacetValue{ID: v.ID}
	if v.Name != nil {
		n := *v.Name
		out.Name = &n
	}
	if v.Checked != nil {
		c := *v.Checked
		out.Checked = &c
	}
	return out
}

// overlay copies every non-nil field of n onto v
func (v FacetValue) overlay(n FacetValue) FacetValue {
	out := v.clone()
	if n.Name != nil {
		name := *n.Name
		out.Name = &name
	}
	if n.Checked != nil {
		c := *n.Checked
		out.Checked = &c
	}
	return out
}

// FacetSet is a collection of facet values unique by ID
type FacetSet []FacetValue

// MergeFacets returns the union of ids in old and new, sorted ascending.
// Each record starts from old's record, or a bare {ID} when old lacks it,
// and takes every non-nil field of new's record.
func MergeFacets(old, new FacetSet) FacetSet {
	if len(old) == 0 && len(new) == 0 {
		return nil
	}
	byID := make(map[int64]FacetValue, len(old)+len(new))
	for _, v := range old {
		byID[v.ID] = v.clone()
	}
	for _, v := range new {
		base, ok := byID[v.ID]
		if !ok {
			base = FacetValue{ID: v.ID}
		}
		byID[v.ID] = base.overlay(v)
	}
	return fromMap(byID)
}

func fromMap(byID map[int64]FacetValue) FacetSet {
	out := make(FacetSet, 0, len(byID))
	for _, v := range byID {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b FacetValue) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Clone returns a deep copy
func (s FacetSet) Clone() FacetSet {
	if s == nil {
		return nil
	}
	out := make(FacetSet, len(s))
	for i, v := range s {
		out[i] = v.clone()
	}
	return out
}

// Selected returns the ids with Checked == true in ascending order
func (s FacetSet) Selected() []int64 {
	var ids []int64
	for _, v := range s {
		if v.IsChecked() {
			ids = append(ids, v.ID)
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// Active reports whether at least one value is checked
func (s FacetSet) Active() bool {
	for _, v := range s {
		if v.IsChecked() {
			return true
		}
	}
	return false
}

// IsSelected reports whether id is checked
func (s FacetSet) IsSelected(id int64) bool {
	v, ok := s.Lookup(id)
	return ok && v.IsChecked()
}

// Lookup returns the record for id
func (s FacetSet) Lookup(id int64) (FacetValue, bool) {
	for _, v := range s {
		if v.ID == id {
			return v.clone(), true
		}
	}
	return FacetValue{}, false
}

// With returns a copy with id's checked state set, adding id when missing
func (s FacetSet) With(id int64, checked bool) FacetSet {
	return MergeFacets(s, FacetSet{{ID: id, Checked: &checked}})
}

// SetAll returns a copy where every record has the given checked state
func (s FacetSet) SetAll(checked bool) FacetSet {
	out := s.Clone()
	for i := range out {
		c := checked
		out[i].Checked = &c
	}
	return out
}

// Equal compares ids, names and checked states position by position;
// nil and empty sets are equal
func (s FacetSet) Equal(o FacetSet) bool {
	return slices.EqualFunc(s, o, func(a, b FacetValue) bool {
		return a.ID == b.ID && ptrEqual(a.Name, b.Name) && ptrEqual(a.Checked, b.Checked)
	})
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
