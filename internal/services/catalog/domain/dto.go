// Package domain holds DTOs for catalog http and service contracts
package domain

import (
	"time"

	"paporium/internal/core/filter"
	"paporium/internal/services/catalog/session"
)

// Aggregates are absent (null) when the item has no reference of that kind
// or the component facet excludes that kind

// ItemRow is one row of the item list
type ItemRow struct {
	ID         int64  `json:"id" example:"501"`
	Name       string `json:"name" example:"Red Potion"`
	ItemTypeID int64  `json:"item_type_id" example:"0"`
	ItemType   string `json:"item_type" example:"Healing"`
	Buy        int64  `json:"buy" example:"50"`
	Sell       int64  `json:"sell" example:"25"`
	Weight     int64  `json:"weight" example:"7"`

	NpcShops  *int64 `json:"npc_shops" example:"12"`
	MobDrops  *int64 `json:"mob_drops" example:"3"`
	MvpDrops  *int64 `json:"mvp_drops"`
	Recipes   Usage  `json:"recipes"`
	HasDetail bool   `json:"has_details" example:"true"`
	// Overcharge comes from the unfiltered dataset and is stable under filtering
	Overcharge bool `json:"overcharge" example:"false"`
}

// Usage is recipe membership split by component type and repeatability
type Usage struct {
	IngredientCount           *int64 `json:"ingredient_count"`
	IngredientSum             *int64 `json:"ingredient_sum"`
	RepeatableIngredientCount *int64 `json:"repeatable_ingredient_count"`
	RepeatableIngredientSum   *int64 `json:"repeatable_ingredient_sum"`
	ProductCount              *int64 `json:"product_count"`
	ProductSum                *int64 `json:"product_sum"`
	RepeatableProductCount    *int64 `json:"repeatable_product_count"`
	RepeatableProductSum      *int64 `json:"repeatable_product_sum"`
}

// Suggestion is a near item name offered when a text search finds nothing
type Suggestion struct {
	ID       int64  `json:"id" example:"501"`
	Name     string `json:"name" example:"Red Potion"`
	Distance int    `json:"distance" example:"2"`
}

// ItemList is the data block of the item list response
type ItemList struct {
	Search      string       `json:"search" example:"text"`
	Pricing     string       `json:"pricing,omitempty" example:"ocdc"`
	Items       []ItemRow    `json:"items"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// Page is the paging block of list responses
type Page struct {
	Total    int
	Page     int
	PageSize int
	Pages    int
	Window   []int
}

// ItemPage is one page of items
type ItemPage struct {
	List ItemList
	Page Page
}

// ItemHeader is the top block of the item detail
type ItemHeader struct {
	ID         int64  `json:"id" example:"501"`
	Name       string `json:"name" example:"Red Potion"`
	ItemTypeID int64  `json:"item_type_id" example:"0"`
	ItemType   string `json:"item_type" example:"Healing"`
	Buy        int64  `json:"buy" example:"50"`
	Sell       int64  `json:"sell" example:"25"`
	Weight     int64  `json:"weight" example:"7"`
	Overcharge bool   `json:"overcharge"`
}

// Line is one ingredient or product of a recipe
type Line struct {
	ItemID     int64  `json:"item_id" example:"713"`
	ItemName   string `json:"item_name" example:"Empty Bottle"`
	ItemTypeID int64  `json:"item_type_id" example:"6"`
	Quantity   int64  `json:"quantity" example:"1"`
	// Matched marks lines whose item passes the item filters
	Matched bool `json:"matched"`
}

// Recipe is a recipe with its lines
type Recipe struct {
	ID           int64  `json:"id" example:"12"`
	Name         string `json:"name" example:"Red Potion"`
	RecipeTypeID int64  `json:"recipe_type_id" example:"1"`
	RecipeType   string `json:"recipe_type" example:"Brewing"`
	JobID        *int64 `json:"job_id" example:"7"`
	Job          string `json:"job,omitempty" example:"Alchemist"`
	Repeatable   bool   `json:"repeatable"`
	Custom       bool   `json:"custom"`
	Ingredients  []Line `json:"ingredients"`
	Products     []Line `json:"products"`
}

// Drop is one mob or mvp drop of an item
type Drop struct {
	MobID          int64  `json:"mob_id" example:"1002"`
	Mob            string `json:"mob" example:"Poring"`
	Slot           int64  `json:"slot" example:"1"`
	Rate           int64  `json:"rate" example:"7000"`
	StealProtected bool   `json:"steal_protected,omitempty"`
}

// Shop is one npc shop slot selling an item
type Shop struct {
	NpcID int64  `json:"npc_id" example:"44"`
	Npc   string `json:"npc" example:"Tool Dealer"`
	MapID int64  `json:"map_id" example:"1"`
	Map   string `json:"map" example:"prontera"`
	X     int64  `json:"x" example:"134"`
	Y     int64  `json:"y" example:"221"`
	Slot  int64  `json:"slot" example:"0"`
}

// ItemDetail is the full detail of one item under the current filter
type ItemDetail struct {
	Item     ItemHeader `json:"item"`
	Pricing  string     `json:"pricing,omitempty"`
	Recipes  []Recipe   `json:"recipes"`
	MobDrops []Drop     `json:"mob_drops"`
	MvpDrops []Drop     `json:"mvp_drops"`
	Shops    []Shop     `json:"shops"`
}

// RecipePage is one page of recipes
type RecipePage struct {
	Recipes []Recipe
	Page    Page
}

// FilterView is the effective filter next to its URL form
type FilterView struct {
	Params string              `json:"params" example:"jobs=7&item=potion"`
	Filter filter.SearchFilter `json:"filter"`
}

// EventsInput is a batch of filter panel events applied in order
type EventsInput struct {
	Events []session.Event `json:"events" validate:"required,min=1,max=50,dive"`
}

// Status reports dataset readiness
type Status struct {
	State    string     `json:"state" example:"ready"`
	Items    int        `json:"items,omitempty" example:"6512"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}
