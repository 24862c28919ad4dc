package query

import (
	"paporium/internal/core/filter"

	sq "github.com/Masterminds/squirrel"
)

// ItemByID selects one item header
func ItemByID(id int64) sq.SelectBuilder {
	return psql.Select(
		"item.id", "item.name", "item.item_type_id", "COALESCE(item_type.name, '') AS item_type",
		"item.buy", "item.sell", "item.weight",
	).
		From("item").
		LeftJoin("item_type ON item_type.id = item.item_type_id").
		Where(sq.Eq{"item.id": id})
}

// DetailRecipeIDs selects the recipes referencing an item, restricted to the
// recipe scope and the selected component kinds
func DetailRecipeIDs(itemID int64, f filter.SearchFilter) sq.SelectBuilder {
	b := psql.Select("recipe.id", "recipe.recipe_type_id").
		Distinct().
		From("recipe_item").
		Join("recipe ON recipe.id = recipe_item.recipe_id").
		Where(sq.Eq{"recipe_item.item_id": itemID})
	if comp := f.RecipeItemTypes.Selected(); len(comp) > 0 {
		b = b.Where(sq.Eq{"recipe_item.recipe_item_type_id": comp})
	}
	return where(b, RecipeScope(f)).OrderBy("recipe.recipe_type_id", "recipe.id")
}

// MobDrops selects regular drop sources, highest rate first
func MobDrops(itemID int64) sq.SelectBuilder {
	return psql.Select(
		"mob_drop.mob_id", "COALESCE(mob.name, '') AS mob", "mob_drop.slot", "mob_drop.rate", "mob_drop.steal_protected",
	).
		From("mob_drop").
		LeftJoin("mob ON mob.id = mob_drop.mob_id").
		Where(sq.Eq{"mob_drop.item_id": itemID}).
		OrderBy("mob_drop.rate DESC", "mob_drop.mob_id ASC")
}

// MvpDrops selects mvp reward sources, highest rate first
func MvpDrops(itemID int64) sq.SelectBuilder {
	return psql.Select(
		"mob_mvp_drop.mob_id", "COALESCE(mob.name, '') AS mob", "mob_mvp_drop.slot", "mob_mvp_drop.rate", "FALSE AS steal_protected",
	).
		From("mob_mvp_drop").
		LeftJoin("mob ON mob.id = mob_mvp_drop.mob_id").
		Where(sq.Eq{"mob_mvp_drop.item_id": itemID}).
		OrderBy("mob_mvp_drop.rate DESC", "mob_mvp_drop.mob_id ASC")
}

// Shops selects npc shop slots selling an item
func Shops(itemID int64) sq.SelectBuilder {
	return psql.Select(
		"npc_item.npc_id", "npc_item.npc", "npc_item.map_id", "npc_item.map", "npc_item.x", "npc_item.y", "npc_item.slot",
	).
		From("npc_item").
		Where(sq.Eq{"npc_item.item_id": itemID}).
		OrderBy("npc_item.npc_id ASC", "npc_item.slot ASC")
}
