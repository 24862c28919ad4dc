package query

// ItemRow is one item list row. Aggregates are nil when the item has no
// reference of that kind or the aggregate is masked by the component facet.
type ItemRow struct {
	ID         int64
	Name       string
	ItemTypeID int64
	ItemType   string
	Buy        int64
	Sell       int64
	Weight     int64

	NpcShopCount    *int64
	MobDropCount    *int64
	MobMvpDropCount *int64

	IngredientCount           *int64
	IngredientSum             *int64
	RepeatableIngredientCount *int64
	RepeatableIngredientSum   *int64
	ProductCount              *int64
	ProductSum                *int64
	RepeatableProductCount    *int64
	RepeatableProductSum      *int64

	// Overcharge is set from the baseline table, never from the filtered row
	Overcharge bool
}

// Targets returns scan destinations in ItemList column order
func (r *ItemRow) Targets() []any {
	return []any{
		&r.ID, &r.Name, &r.ItemTypeID, &r.ItemType, &r.Buy, &r.Sell, &r.Weight,
		&r.NpcShopCount, &r.MobDropCount, &r.MobMvpDropCount,
		&r.IngredientCount, &r.IngredientSum,
		&r.RepeatableIngredientCount, &r.RepeatableIngredientSum,
		&r.ProductCount, &r.ProductSum,
		&r.RepeatableProductCount, &r.RepeatableProductSum,
	}
}

// ItemHeader is the detail header of one item
type ItemHeader struct {
	ID         int64
	Name       string
	ItemTypeID int64
	ItemType   string
	Buy        int64
	Sell       int64
	Weight     int64
}

// Targets returns scan destinations in ItemByID column order
func (h *ItemHeader) Targets() []any {
	return []any{&h.ID, &h.Name, &h.ItemTypeID, &h.ItemType, &h.Buy, &h.Sell, &h.Weight}
}

// RecipeRow is a recipe header
type RecipeRow struct {
	ID           int64
	Name         string
	RecipeTypeID int64
	RecipeType   string
	JobID        *int64
	Job          string
	Repeatable   bool
	Custom       bool
}

// Targets returns scan destinations in RecipeList and RecipeHeaders column order
func (r *RecipeRow) Targets() []any {
	return []any{&r.ID, &r.Name, &r.RecipeTypeID, &r.RecipeType, &r.JobID, &r.Job, &r.Repeatable, &r.Custom}
}

// LineRow is one ingredient or product line of a recipe
type LineRow struct {
	RecipeID         int64
	RecipeItemTypeID int64
	RecipeItemType   string
	ItemID           int64
	ItemName         string
	ItemTypeID       int64
	Quantity         int64
	// Matched reports whether the line item passes the item-level filters
	Matched bool
}

// Targets returns scan destinations in RecipeLines column order
func (l *LineRow) Targets() []any {
	return []any{&l.RecipeID, &l.RecipeItemTypeID, &l.RecipeItemType, &l.ItemID, &l.ItemName, &l.ItemTypeID, &l.Quantity, &l.Matched}
}

// DropRow is a mob or mvp drop source
type DropRow struct {
	MobID          int64
	Mob            string
	Slot           int64
	Rate           int64
	StealProtected bool
}

func (d *DropRow) Targets() []any {
	return []any{&d.MobID, &d.Mob, &d.Slot, &d.Rate, &d.StealProtected}
}

// ShopRow is one npc shop slot selling the item
type ShopRow struct {
	NpcID int64
	Npc   string
	MapID int64
	Map   string
	X     int64
	Y     int64
	Slot  int64
}

func (s *ShopRow) Targets() []any {
	return []any{&s.NpcID, &s.Npc, &s.MapID, &s.Map, &s.X, &s.Y, &s.Slot}
}

// Count reads an optional aggregate as zero when absent
func Count(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
