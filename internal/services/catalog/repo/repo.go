// Package repo provides postgres access for the catalog
package repo

import (
	"context"
	"errors"

	"paporium/internal/core/filter"
	"paporium/internal/core/query"
	"paporium/internal/modkit/repokit"
	perr "paporium/internal/platform/errors"
	"paporium/internal/platform/logger"
	"paporium/internal/platform/store"

	sq "github.com/Masterminds/squirrel"
)

// Repo is the read surface of the catalog dataset
type Repo interface {
	Lookups(ctx context.Context) (filter.Lookups, error)
	Baseline(ctx context.Context) ([]query.ItemRow, error)
	Items(ctx context.Context, f filter.SearchFilter) ([]query.ItemRow, error)
	Item(ctx context.Context, id int64) (query.ItemHeader, error)
	DetailRecipeIDs(ctx context.Context, itemID int64, f filter.SearchFilter) ([]int64, error)
	Recipes(ctx context.Context, f filter.SearchFilter) ([]query.RecipeRow, error)
	RecipeHeaders(ctx context.Context, ids []int64) ([]query.RecipeRow, error)
	RecipeLines(ctx context.Context, ids []int64, f filter.SearchFilter) ([]query.LineRow, error)
	MobDrops(ctx context.Context, itemID int64) ([]query.DropRow, error)
	MvpDrops(ctx context.Context, itemID int64) ([]query.DropRow, error)
	Shops(ctx context.Context, itemID int64) ([]query.ShopRow, error)
}

type (
	// PG binds the repo to a Querier
	PG struct{}
	// queries implements Repo
	queries struct{ q repokit.Querier }
)

// NewPG returns a binder for the postgres repo
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Querier, either the pool or a snapshot tx
func (PG) Bind(q repokit.Querier) Repo { return &queries{q: q} }

// targeted is any row type that exposes its scan destinations
type targeted[T any] interface {
	*T
	Targets() []any
}

func scanInto[T any, P targeted[T]](r store.Row) (T, error) {
	var v T
	err := r.Scan(P(&v).Targets()...)
	return v, err
}

// many renders b and scans every row into T
func many[T any, P targeted[T]](ctx context.Context, q repokit.Querier, op string, b sq.Sqlizer) ([]T, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, op+": build statement")
	}
	trace(ctx, op, b)
	out, err := store.Many(ctx, q, scanInto[T, P], sql, args...)
	if err != nil {
		return nil, perr.WithOp(perr.FromPostgres(err, op), op)
	}
	return out, nil
}

// one is many with exactly one row expected; no rows maps to NotFound
func one[T any, P targeted[T]](ctx context.Context, q repokit.Querier, op string, b sq.Sqlizer) (T, error) {
	var zero T
	sql, args, err := b.ToSql()
	if err != nil {
		return zero, perr.Wrap(err, perr.ErrorCodeUnknown, op+": build statement")
	}
	trace(ctx, op, b)
	v, err := store.One(ctx, q, scanInto[T, P], sql, args...)
	if errors.Is(err, perr.ErrNotFound) {
		return zero, err
	}
	if err != nil {
		return zero, perr.WithOp(perr.FromPostgres(err, op), op)
	}
	return v, nil
}

// trace logs the statement with literals inlined at trace level
func trace(ctx context.Context, op string, b sq.Sqlizer) {
	if e := logger.C(ctx).Trace(); e.Enabled() {
		e.Str("op", op).Str("stmt", query.Inline(b)).Msg("catalog statement")
	}
}

type named struct{ filter.Named }

func (n *named) Targets() []any { return []any{&n.ID, &n.Name} }

type recipeKey struct{ ID, RecipeTypeID int64 }

func (k *recipeKey) Targets() []any { return []any{&k.ID, &k.RecipeTypeID} }

func lookup(table string) sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id", "name").From(table).OrderBy("id")
}

func (r *queries) Lookups(ctx context.Context) (filter.Lookups, error) {
	var out filter.Lookups
	for _, t := range []struct {
		table string
		dst   *[]filter.Named
	}{
		{"item_type", &out.ItemTypes},
		{"job", &out.Jobs},
		{"recipe_type", &out.RecipeTypes},
		{"recipe_item_type", &out.RecipeItemTypes},
	} {
		rows, err := many[named](ctx, r.q, "lookup "+t.table, lookup(t.table))
		if err != nil {
			return filter.Lookups{}, err
		}
		for _, n := range rows {
			*t.dst = append(*t.dst, n.Named)
		}
	}
	out.Repeatable = filter.DefaultRepeatable
	return out, nil
}

func (r *queries) Baseline(ctx context.Context) ([]query.ItemRow, error) {
	return many[query.ItemRow](ctx, r.q, "baseline", query.Baseline())
}

func (r *queries) Items(ctx context.Context, f filter.SearchFilter) ([]query.ItemRow, error) {
	return many[query.ItemRow](ctx, r.q, "items", query.ItemList(f))
}

func (r *queries) Item(ctx context.Context, id int64) (query.ItemHeader, error) {
	h, err := one[query.ItemHeader](ctx, r.q, "item", query.ItemByID(id))
	if errors.Is(err, perr.ErrNotFound) {
		return h, perr.NotFoundf("item %d not found", id)
	}
	return h, err
}

func (r *queries) DetailRecipeIDs(ctx context.Context, itemID int64, f filter.SearchFilter) ([]int64, error) {
	keys, err := many[recipeKey](ctx, r.q, "detail recipes", query.DetailRecipeIDs(itemID, f))
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, k.ID)
	}
	return ids, nil
}

func (r *queries) Recipes(ctx context.Context, f filter.SearchFilter) ([]query.RecipeRow, error) {
	return many[query.RecipeRow](ctx, r.q, "recipes", query.RecipeList(f))
}

func (r *queries) RecipeHeaders(ctx context.Context, ids []int64) ([]query.RecipeRow, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return many[query.RecipeRow](ctx, r.q, "recipe headers", query.RecipeHeaders(ids))
}

func (r *queries) RecipeLines(ctx context.Context, ids []int64, f filter.SearchFilter) ([]query.LineRow, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return many[query.LineRow](ctx, r.q, "recipe lines", query.RecipeLines(ids, f))
}

func (r *queries) MobDrops(ctx context.Context, itemID int64) ([]query.DropRow, error) {
	return many[query.DropRow](ctx, r.q, "mob drops", query.MobDrops(itemID))
}

func (r *queries) MvpDrops(ctx context.Context, itemID int64) ([]query.DropRow, error) {
	return many[query.DropRow](ctx, r.q, "mvp drops", query.MvpDrops(itemID))
}

func (r *queries) Shops(ctx context.Context, itemID int64) ([]query.ShopRow, error) {
	return many[query.ShopRow](ctx, r.q, "shops", query.Shops(itemID))
}
