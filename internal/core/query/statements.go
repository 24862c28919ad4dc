// Package query composes the catalog's parameterized postgres statements from
// a search filter and post-processes their rows.
package query

import (
	"fmt"

	"paporium/internal/core/filter"

	sq "github.com/Masterminds/squirrel"
)

// psql renders $n placeholders; nested subqueries keep ? so the outer
// statement numbers every argument once
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// referenceCount counts rows per item in a cross-reference table
func referenceCount(table string) sq.SelectBuilder {
	return sq.Select("item_id", "COUNT(*) AS n").From(table).GroupBy("item_id")
}

// recipeAggregate counts recipes and sums quantities per item for one
// component kind and one repeatable flag, restricted to the recipe scope
func recipeAggregate(component int64, repeatable bool, scope sq.Sqlizer) sq.SelectBuilder {
	b := sq.Select("recipe_item.item_id", "COUNT(recipe_item.quantity) AS n", "SUM(recipe_item.quantity) AS q").
		From("recipe_item").
		Join("recipe ON recipe.id = recipe_item.recipe_id").
		Where(sq.Eq{"recipe_item.recipe_item_type_id": component}).
		Where(sq.Eq{"recipe.repeatable": repeatable}).
		GroupBy("recipe_item.item_id")
	return where(b, scope)
}

func leftJoin(b sq.SelectBuilder, sub sq.SelectBuilder, alias string) sq.SelectBuilder {
	return b.JoinClause(sq.ConcatExpr("LEFT JOIN (", sub, fmt.Sprintf(") AS %s ON %s.item_id = item.id", alias, alias)))
}

// aggregate column, or a typed NULL when masked
func aggregate(expr string, masked bool) string {
	if masked {
		return "NULL::bigint"
	}
	return expr
}

// ItemList selects items with their reference counts and recipe aggregates.
// Recipe aggregates follow the recipe scope. When the component facet is
// active the unselected component's aggregates come back NULL. Rows are
// ordered by item id.
func ItemList(f filter.SearchFilter) sq.SelectBuilder {
	scope := RecipeScope(f)
	maskIngredient := f.RecipeItemTypes.Active() && !f.RecipeItemTypes.IsSelected(filter.Ingredient)
	maskProduct := f.RecipeItemTypes.Active() && !f.RecipeItemTypes.IsSelected(filter.Product)

	b := psql.Select(
		"item.id", "item.name", "item.item_type_id", "COALESCE(item_type.name, '') AS item_type",
		"item.buy", "item.sell", "item.weight",
		"shops.n AS npc_shop_count",
		"drops.n AS mob_drop_count",
		"mvps.n AS mob_mvp_drop_count",
		aggregate("ingredients.n", maskIngredient)+" AS ingredient_count",
		aggregate("ingredients.q", maskIngredient)+" AS ingredient_sum",
		aggregate("repeatable_ingredients.n", maskIngredient)+" AS repeatable_ingredient_count",
		aggregate("repeatable_ingredients.q", maskIngredient)+" AS repeatable_ingredient_sum",
		aggregate("products.n", maskProduct)+" AS product_count",
		aggregate("products.q", maskProduct)+" AS product_sum",
		aggregate("repeatable_products.n", maskProduct)+" AS repeatable_product_count",
		aggregate("repeatable_products.q", maskProduct)+" AS repeatable_product_sum",
	).
		From("item").
		LeftJoin("item_type ON item_type.id = item.item_type_id")

	b = leftJoin(b, referenceCount("npc_item"), "shops")
	b = leftJoin(b, referenceCount("mob_drop"), "drops")
	b = leftJoin(b, referenceCount("mob_mvp_drop"), "mvps")
	b = leftJoin(b, recipeAggregate(filter.Ingredient, false, scope), "ingredients")
	b = leftJoin(b, recipeAggregate(filter.Ingredient, true, scope), "repeatable_ingredients")
	b = leftJoin(b, recipeAggregate(filter.Product, false, scope), "products")
	b = leftJoin(b, recipeAggregate(filter.Product, true, scope), "repeatable_products")

	return where(b, Inclusion(f), Outer(f)).OrderBy("item.id")
}

// Baseline is the item list under an empty filter, the source of the
// overcharge table
func Baseline() sq.SelectBuilder {
	return ItemList(filter.SearchFilter{})
}

func recipeSelect() sq.SelectBuilder {
	return psql.Select(
		"recipe.id", "recipe.name", "recipe.recipe_type_id", "COALESCE(recipe_type.name, '') AS recipe_type",
		"recipe.job_id", "COALESCE(job.name, '') AS job", "recipe.repeatable", "recipe.custom",
	).
		From("recipe").
		LeftJoin("recipe_type ON recipe_type.id = recipe.recipe_type_id").
		LeftJoin("job ON job.id = recipe.job_id")
}

// lineFilter holds when a recipe has a line passing the item-level and
// component filters; nil when none of them is active
func lineFilter(f filter.SearchFilter) sq.Sqlizer {
	outer := Outer(f)
	comp := f.RecipeItemTypes.Selected()
	if outer == nil && len(comp) == 0 {
		return nil
	}
	sub := sq.Select("1").
		From("recipe_item").
		Join("item ON item.id = recipe_item.item_id").
		Where("recipe_item.recipe_id = recipe.id")
	if len(comp) > 0 {
		sub = sub.Where(sq.Eq{"recipe_item.recipe_item_type_id": comp})
	}
	sub = where(sub, outer)
	return sq.ConcatExpr("EXISTS (", sub, ")")
}

// RecipeList selects recipes in scope whose name matches the recipe text and
// which have at least one line passing the item filters, ordered by recipe
// type then id
func RecipeList(f filter.SearchFilter) sq.SelectBuilder {
	return where(recipeSelect(), RecipeScope(f), recipeText(f), lineFilter(f)).
		OrderBy("recipe.recipe_type_id", "recipe.id")
}

// RecipeHeaders selects the given recipes, ordered by recipe type then id
func RecipeHeaders(ids []int64) sq.SelectBuilder {
	return recipeSelect().
		Where(sq.Eq{"recipe.id": ids}).
		OrderBy("recipe.recipe_type_id", "recipe.id")
}

// RecipeLines selects every line of the given recipes. The matched column
// reports whether the line item passes the item-level filters.
func RecipeLines(ids []int64, f filter.SearchFilter) sq.SelectBuilder {
	var matched any = "FALSE AS matched"
	if outer := Outer(f); outer != nil {
		matched = sq.Alias(outer, "matched")
	}
	return psql.Select(
		"recipe_item.recipe_id", "recipe_item.recipe_item_type_id",
		"COALESCE(recipe_item_type.name, '') AS recipe_item_type",
		"recipe_item.item_id", "item.name", "item.item_type_id", "recipe_item.quantity",
	).
		Column(matched).
		From("recipe_item").
		Join("item ON item.id = recipe_item.item_id").
		LeftJoin("recipe_item_type ON recipe_item_type.id = recipe_item.recipe_item_type_id").
		Where(sq.Eq{"recipe_item.recipe_id": ids}).
		OrderBy("recipe_item.recipe_id", "recipe_item.recipe_item_type_id", "recipe_item.item_id")
}
