package query

import "paporium/internal/core/filter"

// OverchargeEligible holds for etc items that sell for something, drop from
// mobs and are never consumed by a recipe
func OverchargeEligible(r ItemRow) bool {
	return r.ItemTypeID == filter.ItemTypeEtc &&
		r.Sell > 0 &&
		(Count(r.MobDropCount) > 0 || Count(r.MobMvpDropCount) > 0) &&
		Count(r.IngredientCount) == 0 &&
		Count(r.RepeatableIngredientCount) == 0
}

// OverchargeTable is the set of overcharge eligible item ids computed once
// from the baseline. It never changes after construction.
type OverchargeTable struct {
	ids map[int64]struct{}
}

// NewOverchargeTable evaluates eligibility over baseline rows
func NewOverchargeTable(baseline []ItemRow) *OverchargeTable {
	t := &OverchargeTable{ids: make(map[int64]struct{})}
	for _, r := range baseline {
		if OverchargeEligible(r) {
			t.ids[r.ID] = struct{}{}
		}
	}
	return t
}

// Lookup reports eligibility of an item id; a nil table knows nothing
func (t *OverchargeTable) Lookup(id int64) bool {
	if t == nil {
		return false
	}
	_, ok := t.ids[id]
	return ok
}

func (t *OverchargeTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.ids)
}

// Annotate sets Overcharge on every row from the table
func (t *OverchargeTable) Annotate(rows []ItemRow) {
	for i := range rows {
		rows[i].Overcharge = t.Lookup(rows[i].ID)
	}
}

// KeepOvercharge filters annotated rows by the overcharge mode. Any keeps
// all rows, Only keeps eligible ones, Exclude drops them.
func KeepOvercharge(rows []ItemRow, mode filter.OverchargeMode) []ItemRow {
	if mode == filter.OverchargeAny {
		return rows
	}
	want := mode == filter.OverchargeOnly
	out := make([]ItemRow, 0, len(rows))
	for _, r := range rows {
		if r.Overcharge == want {
			out = append(out, r)
		}
	}
	return out
}
