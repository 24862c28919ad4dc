package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"paporium/internal/core/filter"
	"paporium/internal/core/query"
	"paporium/internal/modkit/repokit"
	perr "paporium/internal/platform/errors"
	"paporium/internal/services/catalog/dataset"
	"paporium/internal/services/catalog/domain"
	"paporium/internal/services/catalog/repo"
	"paporium/internal/services/catalog/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i64(v int64) *int64 { return &v }

// fakeReader records snapshot use and hook statements
type fakeReader struct {
	txs   int
	stmts []string
}

type okRow struct{}

func (okRow) Scan(dest ...any) error {
	if s, ok := dest[0].(*string); ok {
		*s = "ok"
	}
	return nil
}

func (f *fakeReader) Query(context.Context, string, ...any) (repokit.Rows, error) {
	return nil, errors.New("not used")
}

func (f *fakeReader) QueryRow(_ context.Context, sql string, _ ...any) repokit.Row {
	f.stmts = append(f.stmts, sql)
	return okRow{}
}

func (f *fakeReader) ReadTx(ctx context.Context, fn func(q repokit.Querier) error) error {
	f.txs++
	return fn(f)
}

// fakeRepo serves canned rows and records the filters it saw
type fakeRepo struct {
	lookups  filter.Lookups
	baseline []query.ItemRow
	items    []query.ItemRow
	recipes  []query.RecipeRow
	lines    []query.LineRow
	drops    []query.DropRow
	shops    []query.ShopRow
	err      error

	seen      []filter.SearchFilter
	detailIDs []int64
}

func (r *fakeRepo) Lookups(context.Context) (filter.Lookups, error) { return r.lookups, r.err }
func (r *fakeRepo) Baseline(context.Context) ([]query.ItemRow, error) {
	return append([]query.ItemRow(nil), r.baseline...), r.err
}

func (r *fakeRepo) Items(_ context.Context, f filter.SearchFilter) ([]query.ItemRow, error) {
	r.seen = append(r.seen, f)
	return append([]query.ItemRow(nil), r.items...), r.err
}

func (r *fakeRepo) Item(_ context.Context, id int64) (query.ItemHeader, error) {
	for _, it := range r.baseline {
		if it.ID == id {
			return query.ItemHeader{ID: it.ID, Name: it.Name, ItemTypeID: it.ItemTypeID, Buy: it.Buy, Sell: it.Sell}, nil
		}
	}
	return query.ItemHeader{}, perr.NotFoundf("item %d not found", id)
}

func (r *fakeRepo) DetailRecipeIDs(_ context.Context, _ int64, f filter.SearchFilter) ([]int64, error) {
	r.seen = append(r.seen, f)
	return r.detailIDs, nil
}

func (r *fakeRepo) Recipes(_ context.Context, f filter.SearchFilter) ([]query.RecipeRow, error) {
	r.seen = append(r.seen, f)
	return r.recipes, nil
}

func (r *fakeRepo) RecipeHeaders(_ context.Context, ids []int64) ([]query.RecipeRow, error) {
	var out []query.RecipeRow
	for _, h := range r.recipes {
		for _, id := range ids {
			if h.ID == id {
				out = append(out, h)
			}
		}
	}
	return out, nil
}

func (r *fakeRepo) RecipeLines(_ context.Context, ids []int64, _ filter.SearchFilter) ([]query.LineRow, error) {
	var out []query.LineRow
	for _, l := range r.lines {
		for _, id := range ids {
			if l.RecipeID == id {
				out = append(out, l)
			}
		}
	}
	return out, nil
}

func (r *fakeRepo) MobDrops(context.Context, int64) ([]query.DropRow, error) { return r.drops, nil }
func (r *fakeRepo) MvpDrops(context.Context, int64) ([]query.DropRow, error) { return nil, nil }
func (r *fakeRepo) Shops(context.Context, int64) ([]query.ShopRow, error)    { return r.shops, nil }

func fixture() *fakeRepo {
	jellopy := query.ItemRow{ID: 909, Name: "Jellopy", ItemTypeID: 6, Buy: 6, Sell: 3, MobDropCount: i64(40)}
	bottle := query.ItemRow{ID: 713, Name: "Empty Bottle", ItemTypeID: 6, Buy: 6, Sell: 3, NpcShopCount: i64(9), IngredientCount: i64(4), IngredientSum: i64(4)}
	potion := query.ItemRow{ID: 501, Name: "Red Potion", ItemTypeID: 0, Buy: 50, Sell: 25, NpcShopCount: i64(12), ProductCount: i64(1), ProductSum: i64(1)}
	return &fakeRepo{
		lookups: filter.Lookups{
			ItemTypes: []filter.Named{{ID: 0, Name: "Healing"}, {ID: 6, Name: "Etc"}},
			Jobs:      []filter.Named{{ID: 7, Name: "Alchemist"}},
		},
		baseline: []query.ItemRow{potion, bottle, jellopy},
		items:    []query.ItemRow{potion, bottle, jellopy},
		recipes: []query.RecipeRow{
			{ID: 12, Name: "Red Potion", RecipeTypeID: 1, RecipeType: "Brewing", JobID: i64(7), Job: "Alchemist"},
		},
		lines: []query.LineRow{
			{RecipeID: 12, RecipeItemTypeID: filter.Ingredient, ItemID: 713, ItemName: "Empty Bottle", Quantity: 1},
			{RecipeID: 12, RecipeItemTypeID: filter.Product, ItemID: 501, ItemName: "Red Potion", Quantity: 1, Matched: true},
		},
		drops:     []query.DropRow{{MobID: 1002, Mob: "Poring", Rate: 7000}},
		detailIDs: []int64{12},
	}
}

func loaded(t *testing.T, r *fakeRepo, opts ...Option) (*Svc, *fakeReader) {
	t.Helper()
	db := &fakeReader{}
	s := New(db, repokit.BindFunc[repo.Repo](func(repokit.Querier) repo.Repo { return r }), dataset.NewHolder(), opts...)
	require.NoError(t, s.Load(context.Background()))
	return s, db
}

func TestNotReadyIsUnavailable(t *testing.T) {
	s := New(&fakeReader{}, repokit.BindFunc[repo.Repo](func(repokit.Querier) repo.Repo { return fixture() }), nil)
	_, err := s.Items(context.Background(), nil)
	assert.Equal(t, perr.ErrorCodeUnavailable, perr.CodeOf(err))
	assert.False(t, s.Ready())
	assert.Equal(t, "loading", s.Status().State)
}

func TestLoadUsesSnapshotAndStatementTimeout(t *testing.T) {
	s, db := loaded(t, fixture(), WithStatementTimeout(2*time.Second))
	assert.True(t, s.Ready())
	assert.Equal(t, 1, db.txs)
	require.Len(t, db.stmts, 1)
	assert.Contains(t, db.stmts[0], "statement_timeout")

	st := s.Status()
	assert.Equal(t, "ready", st.State)
	assert.Equal(t, 3, st.Items)
	assert.NotNil(t, st.LoadedAt)
}

func TestLoadFailureIsFinal(t *testing.T) {
	r := fixture()
	r.err = errors.New("relation \"item\" does not exist")
	db := &fakeReader{}
	s := New(db, repokit.BindFunc[repo.Repo](func(repokit.Querier) repo.Repo { return r }), nil)
	require.Error(t, s.Load(context.Background()))
	r.err = nil
	require.Error(t, s.Load(context.Background()))
	assert.Equal(t, 1, db.txs)
	assert.Equal(t, "failed", s.Status().State)
}

func TestItemsOverchargeComesFromBaseline(t *testing.T) {
	r := fixture()
	s, _ := loaded(t, r)

	// the filtered row lacks the drop aggregate, the flag must survive
	r.items = []query.ItemRow{{ID: 909, Name: "Jellopy", ItemTypeID: 6, Sell: 3}}
	page, err := s.Items(context.Background(), url.Values{"itemTypes": {"6"}})
	require.NoError(t, err)
	require.Len(t, page.List.Items, 1)
	assert.True(t, page.List.Items[0].Overcharge)
	assert.False(t, page.List.Items[0].HasDetail)
}

func TestItemsOverchargeModes(t *testing.T) {
	s, _ := loaded(t, fixture())
	only, err := s.Items(context.Background(), url.Values{"overcharge": {"true"}})
	require.NoError(t, err)
	require.Len(t, only.List.Items, 1)
	assert.Equal(t, int64(909), only.List.Items[0].ID)
	assert.Equal(t, 1, only.Page.Total)

	excl, _ := s.Items(context.Background(), url.Values{"overcharge": {"false"}})
	assert.Len(t, excl.List.Items, 2)
}

func TestItemsMergeWithDefault(t *testing.T) {
	r := fixture()
	s, _ := loaded(t, r)
	_, err := s.Items(context.Background(), url.Values{"jobs": {"7"}})
	require.NoError(t, err)
	f := r.seen[len(r.seen)-1]
	assert.Equal(t, []int64{7}, f.Jobs.Selected())
	v, _ := f.ItemTypes.Lookup(6)
	assert.Equal(t, "Etc", v.Label(), "names come from the default filter")
}

func TestItemsPricing(t *testing.T) {
	s, _ := loaded(t, fixture())
	page, err := s.Items(context.Background(), url.Values{"pricing": {"ocdc"}})
	require.NoError(t, err)
	potion := page.List.Items[0]
	assert.Equal(t, int64(38), potion.Buy)
	assert.Equal(t, int64(31), potion.Sell)
	assert.Equal(t, "ocdc", page.List.Pricing)
	assert.True(t, potion.HasDetail)
}

func TestItemsPaging(t *testing.T) {
	r := fixture()
	r.items = nil
	for i := range 250 {
		r.items = append(r.items, query.ItemRow{ID: int64(1000 + i), Name: fmt.Sprintf("Card %d", i)})
	}
	s, _ := loaded(t, r)

	page, err := s.Items(context.Background(), url.Values{"page": {"9"}})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page.Page, "clamped to the last page")
	assert.Equal(t, 3, page.Page.Pages)
	assert.Equal(t, 250, page.Page.Total)
	assert.Len(t, page.List.Items, 50)
	assert.Equal(t, []int{1, 2, 3}, page.Page.Window)

	first, _ := s.Items(context.Background(), url.Values{"page": {"x"}})
	assert.Equal(t, 1, first.Page.Page)
	assert.Equal(t, int64(1000), first.List.Items[0].ID)
}

func TestItemsSuggestions(t *testing.T) {
	r := fixture()
	s, _ := loaded(t, r)
	r.items = nil

	page, err := s.Items(context.Background(), url.Values{"item": {"Red Potoin"}})
	require.NoError(t, err)
	assert.Equal(t, "text", page.List.Search)
	require.NotEmpty(t, page.List.Suggestions)
	assert.Equal(t, "Red Potion", page.List.Suggestions[0].Name)

	ids, _ := s.Items(context.Background(), url.Values{"item": {"4001"}})
	assert.Equal(t, "ids", ids.List.Search)
	assert.Empty(t, ids.List.Suggestions)
}

func TestItemDetail(t *testing.T) {
	r := fixture()
	s, db := loaded(t, r)
	d, err := s.Item(context.Background(), 909, url.Values{"pricing": {"ocdc"}})
	require.NoError(t, err)
	assert.True(t, d.Item.Overcharge)
	assert.Equal(t, int64(4), d.Item.Buy)
	require.Len(t, d.Recipes, 1)
	assert.Len(t, d.Recipes[0].Ingredients, 1)
	assert.Len(t, d.Recipes[0].Products, 1)
	assert.Len(t, d.MobDrops, 1)
	assert.NotNil(t, d.MvpDrops)
	assert.Equal(t, 2, db.txs, "load and detail each use one snapshot")

	_, err = s.Item(context.Background(), 4242, nil)
	assert.Equal(t, perr.ErrorCodeNotFound, perr.CodeOf(err))
}

func TestRecipes(t *testing.T) {
	s, _ := loaded(t, fixture())
	page, err := s.Recipes(context.Background(), url.Values{"jobs": {"7"}})
	require.NoError(t, err)
	require.Len(t, page.Recipes, 1)
	assert.Equal(t, "Alchemist", page.Recipes[0].Job)
	assert.True(t, page.Recipes[0].Products[0].Matched)

	one, err := s.Recipe(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, "Red Potion", one.Name)

	_, err = s.Recipe(context.Background(), 99)
	assert.Equal(t, perr.ErrorCodeNotFound, perr.CodeOf(err))
}

func TestFilterAndEvents(t *testing.T) {
	s, _ := loaded(t, fixture())
	v, err := s.Filter(context.Background(), url.Values{"jobs": {"7"}, "page": {"2"}})
	require.NoError(t, err)
	assert.Equal(t, "jobs=7&page=2", v.Params)

	v, err = s.Events(context.Background(), url.Values{"jobs": {"7"}, "page": {"2"}}, domain.EventsInput{
		Events: []session.Event{session.Toggle(filter.FacetItemTypes, 6, true), {Kind: session.KindPricing, Value: "ocdc"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "itemTypes=6&jobs=7&pricing=ocdc", v.Params)
	assert.False(t, strings.Contains(v.Params, "page"))

	_, err = s.Events(context.Background(), nil, domain.EventsInput{Events: []session.Event{{Kind: session.KindOvercharge, Value: "maybe"}}})
	assert.Equal(t, perr.ErrorCodeInvalidArgument, perr.CodeOf(err))
}
