package service

import (
	"context"
	"net/url"

	"paporium/internal/core/filter"
	"paporium/internal/core/paging"
	"paporium/internal/core/pricing"
	"paporium/internal/core/query"
	"paporium/internal/modkit/repokit"
	"paporium/internal/services/catalog/domain"
)

// Items runs the item composer, applies the overcharge post filter and pages the result
func (s *Svc) Items(ctx context.Context, params url.Values) (domain.ItemPage, error) {
	ds, f, err := s.resolve(params)
	if err != nil {
		return domain.ItemPage{}, err
	}
	var rows []query.ItemRow
	err = repokit.ReadTx(ctx, s.db, func(q repokit.Querier) error {
		rows, err = repokit.MustBind(s.binder, q).Items(ctx, f)
		return err
	})
	if err != nil {
		return domain.ItemPage{}, err
	}
	ds.Overcharge.Annotate(rows)
	rows = query.KeepOvercharge(rows, f.Overcharge)

	search := query.ClassifySearch(f.Item)
	page := pageOf(f.PageNumber(), len(rows))
	out := domain.ItemList{
		Search:  search.Mode.String(),
		Pricing: string(f.Pricing),
		Items:   make([]domain.ItemRow, 0, paging.PageSize),
	}
	for _, r := range paging.Slice(rows, page.Page) {
		out.Items = append(out.Items, itemRow(r, f.Pricing))
	}
	if len(rows) == 0 && search.Mode == query.SearchText {
		out.Suggestions = suggest(ds.Names, search.Text, maxSuggestions)
	}
	return domain.ItemPage{List: out, Page: page}, nil
}

func pageOf(requested, total int) domain.Page {
	pages := paging.Pages(total)
	cur := paging.Clamp(requested, total)
	return domain.Page{
		Total:    total,
		Page:     cur,
		PageSize: paging.PageSize,
		Pages:    pages,
		Window:   paging.Window(cur, pages),
	}
}

func priced(mode filter.PricingMode, buy, sell int64) pricing.Prices {
	return pricing.Apply(mode, pricing.Prices{Buy: buy, Sell: sell})
}

// hasDetails holds when any shop, drop or recipe reference is present
func hasDetails(r query.ItemRow) bool {
	for _, p := range []*int64{
		r.NpcShopCount, r.MobDropCount, r.MobMvpDropCount,
		r.IngredientCount, r.RepeatableIngredientCount,
		r.ProductCount, r.RepeatableProductCount,
	} {
		if query.Count(p) > 0 {
			return true
		}
	}
	return false
}

func itemRow(r query.ItemRow, mode filter.PricingMode) domain.ItemRow {
	p := priced(mode, r.Buy, r.Sell)
	return domain.ItemRow{
		ID:         r.ID,
		Name:       r.Name,
		ItemTypeID: r.ItemTypeID,
		ItemType:   r.ItemType,
		Buy:        p.Buy,
		Sell:       p.Sell,
		Weight:     r.Weight,
		NpcShops:   r.NpcShopCount,
		MobDrops:   r.MobDropCount,
		MvpDrops:   r.MobMvpDropCount,
		Recipes: domain.Usage{
			IngredientCount:           r.IngredientCount,
			IngredientSum:             r.IngredientSum,
			RepeatableIngredientCount: r.RepeatableIngredientCount,
			RepeatableIngredientSum:   r.RepeatableIngredientSum,
			ProductCount:              r.ProductCount,
			ProductSum:                r.ProductSum,
			RepeatableProductCount:    r.RepeatableProductCount,
			RepeatableProductSum:      r.RepeatableProductSum,
		},
		HasDetail:  hasDetails(r),
		Overcharge: r.Overcharge,
	}
}
