package query

import (
	"paporium/internal/core/filter"

	sq "github.com/Masterminds/squirrel"
)

// RecipeScope restricts which recipes feed the ingredient and product
// aggregates. Each active facet among jobs, recipe types and repeatable adds
// a membership test; an empty selection adds nothing. Returns nil when no
// facet is active.
func RecipeScope(f filter.SearchFilter) sq.Sqlizer {
	var and sq.And
	if ids := f.Jobs.Selected(); len(ids) > 0 {
		and = append(and, sq.Eq{"recipe.job_id": ids})
	}
	if ids := f.RecipeTypes.Selected(); len(ids) > 0 {
		and = append(and, sq.Eq{"recipe.recipe_type_id": ids})
	}
	if ids := f.Repeatable.Selected(); len(ids) > 0 {
		and = append(and, sq.Eq{"recipe.repeatable::int": ids})
	}
	if len(and) == 0 {
		return nil
	}
	return and
}

// count expressions over the item list joins
const (
	shopCount       = "COALESCE(shops.n, 0)"
	dropCount       = "COALESCE(drops.n, 0)"
	mvpCount        = "COALESCE(mvps.n, 0)"
	ingredientCount = "COALESCE(ingredients.n, 0) + COALESCE(repeatable_ingredients.n, 0)"
	productCount    = "COALESCE(products.n, 0) + COALESCE(repeatable_products.n, 0)"
)

// Inclusion decides whether an item appears at all. By default any shop,
// drop, mvp drop, ingredient or product reference qualifies. With an active
// job or recipe type facet only membership in a scoped recipe counts; the
// repeatable facet narrows the aggregates but never the inclusion. An active
// component facet is ANDed on top.
func Inclusion(f filter.SearchFilter) sq.Sqlizer {
	var base sq.Sqlizer
	if f.Jobs.Active() || f.RecipeTypes.Active() {
		base = sq.Or{
			sq.Expr(ingredientCount + " > 0"),
			sq.Expr(productCount + " > 0"),
		}
	} else {
		base = sq.Or{
			sq.Expr(shopCount + " > 0"),
			sq.Expr(dropCount + " > 0"),
			sq.Expr(mvpCount + " > 0"),
			sq.Expr(ingredientCount + " > 0"),
			sq.Expr(productCount + " > 0"),
		}
	}
	if comp := componentRequirement(f); comp != nil {
		return sq.And{base, comp}
	}
	return base
}

// componentRequirement is nil when the component facet is inactive and
// matches nothing when only unknown component ids are selected
func componentRequirement(f filter.SearchFilter) sq.Sqlizer {
	if !f.RecipeItemTypes.Active() {
		return nil
	}
	var or sq.Or
	if f.RecipeItemTypes.IsSelected(filter.Ingredient) {
		or = append(or, sq.Expr(ingredientCount+" > 0"))
	}
	if f.RecipeItemTypes.IsSelected(filter.Product) {
		or = append(or, sq.Expr(productCount+" > 0"))
	}
	if len(or) == 0 {
		return sq.Expr("FALSE")
	}
	return or
}

// Outer applies item-level filters: free item text and the item type facet.
// Returns nil when neither is set.
func Outer(f filter.SearchFilter) sq.Sqlizer {
	var and sq.And
	switch s := ClassifySearch(f.Item); s.Mode {
	case SearchIDs:
		and = append(and, sq.Eq{"item.id": s.IDs})
	case SearchText:
		p := containsPattern(s.Text)
		and = append(and, sq.Expr("(item.name ILIKE ? OR item.id::text ILIKE ?)", p, p))
	}
	if ids := f.ItemTypes.Selected(); len(ids) > 0 {
		and = append(and, sq.Eq{"item.item_type_id": ids})
	}
	if len(and) == 0 {
		return nil
	}
	return and
}

// recipeText matches the recipe name; nil when no recipe text is set
func recipeText(f filter.SearchFilter) sq.Sqlizer {
	text := Sanitize(f.Recipe)
	if text == "" {
		return nil
	}
	return sq.Expr("recipe.name ILIKE ?", containsPattern(text))
}

// where appends every non-nil predicate
func where(b sq.SelectBuilder, preds ...sq.Sqlizer) sq.SelectBuilder {
	for _, p := range preds {
		if p != nil {
			b = b.Where(p)
		}
	}
	return b
}
