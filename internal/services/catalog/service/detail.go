package service

import (
	"context"
	"net/url"

	"paporium/internal/core/filter"
	"paporium/internal/core/paging"
	"paporium/internal/core/query"
	"paporium/internal/modkit/repokit"
	perr "paporium/internal/platform/errors"
	"paporium/internal/services/catalog/domain"
	"paporium/internal/services/catalog/repo"
)

// Item returns one item with its scoped recipes, drops and shops. Free text
// and the item type facet do not narrow the detail.
func (s *Svc) Item(ctx context.Context, id int64, params url.Values) (domain.ItemDetail, error) {
	ds, f, err := s.resolve(params)
	if err != nil {
		return domain.ItemDetail{}, err
	}
	var out domain.ItemDetail
	err = repokit.ReadTx(ctx, s.db, func(q repokit.Querier) error {
		r := repokit.MustBind(s.binder, q)
		h, err := r.Item(ctx, id)
		if err != nil {
			return err
		}
		ids, err := r.DetailRecipeIDs(ctx, id, f)
		if err != nil {
			return err
		}
		recipes, err := loadRecipes(ctx, r, ids, f)
		if err != nil {
			return err
		}
		drops, err := r.MobDrops(ctx, id)
		if err != nil {
			return err
		}
		mvps, err := r.MvpDrops(ctx, id)
		if err != nil {
			return err
		}
		shops, err := r.Shops(ctx, id)
		if err != nil {
			return err
		}

		p := priced(f.Pricing, h.Buy, h.Sell)
		out = domain.ItemDetail{
			Item: domain.ItemHeader{
				ID:         h.ID,
				Name:       h.Name,
				ItemTypeID: h.ItemTypeID,
				ItemType:   h.ItemType,
				Buy:        p.Buy,
				Sell:       p.Sell,
				Weight:     h.Weight,
				Overcharge: ds.Overcharge.Lookup(h.ID),
			},
			Pricing:  string(f.Pricing),
			Recipes:  recipes,
			MobDrops: mapDrops(drops),
			MvpDrops: mapDrops(mvps),
			Shops:    mapShops(shops),
		}
		return nil
	})
	return out, err
}

// Recipes lists recipes under the filter, one page at a time
func (s *Svc) Recipes(ctx context.Context, params url.Values) (domain.RecipePage, error) {
	_, f, err := s.resolve(params)
	if err != nil {
		return domain.RecipePage{}, err
	}
	var out domain.RecipePage
	err = repokit.ReadTx(ctx, s.db, func(q repokit.Querier) error {
		r := repokit.MustBind(s.binder, q)
		heads, err := r.Recipes(ctx, f)
		if err != nil {
			return err
		}
		page := pageOf(f.PageNumber(), len(heads))
		heads = paging.Slice(heads, page.Page)
		ids := make([]int64, len(heads))
		for i, h := range heads {
			ids[i] = h.ID
		}
		lines, err := r.RecipeLines(ctx, ids, f)
		if err != nil {
			return err
		}
		out = domain.RecipePage{Recipes: assemble(heads, lines), Page: page}
		return nil
	})
	return out, err
}

// Recipe returns one recipe with all of its lines
func (s *Svc) Recipe(ctx context.Context, id int64) (domain.Recipe, error) {
	var out domain.Recipe
	err := repokit.ReadTx(ctx, s.db, func(q repokit.Querier) error {
		recipes, err := loadRecipes(ctx, repokit.MustBind(s.binder, q), []int64{id}, filter.SearchFilter{})
		if err != nil {
			return err
		}
		if len(recipes) == 0 {
			return perr.NotFoundf("recipe %d not found", id)
		}
		out = recipes[0]
		return nil
	})
	return out, err
}

func loadRecipes(ctx context.Context, r repo.Repo, ids []int64, f filter.SearchFilter) ([]domain.Recipe, error) {
	if len(ids) == 0 {
		return []domain.Recipe{}, nil
	}
	heads, err := r.RecipeHeaders(ctx, ids)
	if err != nil {
		return nil, err
	}
	lines, err := r.RecipeLines(ctx, ids, f)
	if err != nil {
		return nil, err
	}
	return assemble(heads, lines), nil
}

// assemble attaches lines to their recipe headers, keeping header order
func assemble(heads []query.RecipeRow, lines []query.LineRow) []domain.Recipe {
	out := make([]domain.Recipe, len(heads))
	at := make(map[int64]int, len(heads))
	for i, h := range heads {
		at[h.ID] = i
		out[i] = domain.Recipe{
			ID:           h.ID,
			Name:         h.Name,
			RecipeTypeID: h.RecipeTypeID,
			RecipeType:   h.RecipeType,
			JobID:        h.JobID,
			Job:          h.Job,
			Repeatable:   h.Repeatable,
			Custom:       h.Custom,
			Ingredients:  []domain.Line{},
			Products:     []domain.Line{},
		}
	}
	for _, l := range lines {
		i, ok := at[l.RecipeID]
		if !ok {
			continue
		}
		line := domain.Line{
			ItemID:     l.ItemID,
			ItemName:   l.ItemName,
			ItemTypeID: l.ItemTypeID,
			Quantity:   l.Quantity,
			Matched:    l.Matched,
		}
		switch l.RecipeItemTypeID {
		case filter.Ingredient:
			out[i].Ingredients = append(out[i].Ingredients, line)
		case filter.Product:
			out[i].Products = append(out[i].Products, line)
		}
	}
	return out
}

func mapDrops(rows []query.DropRow) []domain.Drop {
	out := make([]domain.Drop, 0, len(rows))
	for _, d := range rows {
		out = append(out, domain.Drop{MobID: d.MobID, Mob: d.Mob, Slot: d.Slot, Rate: d.Rate, StealProtected: d.StealProtected})
	}
	return out
}

func mapShops(rows []query.ShopRow) []domain.Shop {
	out := make([]domain.Shop, 0, len(rows))
	for _, s := range rows {
		out = append(out, domain.Shop{NpcID: s.NpcID, Npc: s.Npc, MapID: s.MapID, Map: s.Map, X: s.X, Y: s.Y, Slot: s.Slot})
	}
	return out
}
