// Package http provides http transport for the catalog
package http

import (
	"context"
	stdhttp "net/http"
	"net/url"
	"strconv"

	"paporium/internal/modkit/httpkit"
	perr "paporium/internal/platform/errors"
	"paporium/internal/services/catalog/domain"

	"github.com/go-chi/chi/v5"
)

// Register mounts catalog endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// effective filter and filter panel events
	httpkit.GetQuery(r, "/filter", h.filter)
	httpkit.PostJSON[domain.EventsInput](r, "/filter/events", h.events)

	// item browser
	httpkit.GetQuery(r, "/items", h.items)
	httpkit.Get(r, "/items/{id}", h.item)

	// recipe browser
	httpkit.GetQuery(r, "/recipes", h.recipes)
	httpkit.Get(r, "/recipes/{id}", h.recipe)
}

type handlers struct{ svc domain.ServicePort }

func pathID(r *stdhttp.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, perr.WithField(perr.InvalidArgf("id must be a non negative integer, got %q", raw), "id")
	}
	return id, nil
}

func page(p domain.Page) httpkit.Page {
	return httpkit.Page{Total: p.Total, Page: p.Page, PageSize: p.PageSize, Pages: p.Pages, Window: p.Window}
}

// swagger:route GET /catalog/filter Catalog catalogFilter
// @Summary Effective filter for the given query string, with names
// @Tags Catalog
// @Produce json
// @Param jobs query string false "Comma separated job ids" example(7)
// @Param item query string false "Item text, an id list or a substring"
// @Success 200 {object} domain.FilterView "ok"
// @Failure 503 {object} httpkit.Envelope "dataset loading"
// @Router /catalog/filter [get]
func (h *handlers) filter(ctx context.Context, q url.Values) (any, error) {
	return h.svc.Filter(ctx, q)
}

// swagger:route POST /catalog/filter/events Catalog catalogFilterEvents
// @Summary Apply filter panel events to the given query string
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body domain.EventsInput true "Events in order"
// @Success 200 {object} domain.FilterView "ok"
// @Failure 400 {object} httpkit.Envelope "invalid event"
// @Router /catalog/filter/events [post]
func (h *handlers) events(r *stdhttp.Request, in domain.EventsInput) (any, error) {
	return h.svc.Events(r.Context(), r.URL.Query(), in)
}

// swagger:route GET /catalog/items Catalog catalogItems
// @Summary Item list under the filter, one page of 100
// @Tags Catalog
// @Produce json
// @Param item query string false "Item text" example(Red Potion)
// @Param itemTypes query string false "Comma separated item type ids"
// @Param jobs query string false "Comma separated job ids"
// @Param recipeTypes query string false "Comma separated recipe type ids"
// @Param recipeItemTypes query string false "1 ingredient, 2 product"
// @Param repeatable query string false "0 one-time, 1 repeatable"
// @Param overcharge query string false "true or false"
// @Param pricing query string false "ocdc"
// @Param page query int false "Page, 1 based"
// @Success 200 {object} domain.ItemList "ok"
// @Router /catalog/items [get]
func (h *handlers) items(ctx context.Context, q url.Values) (any, error) {
	out, err := h.svc.Items(ctx, q)
	if err != nil {
		return nil, err
	}
	return httpkit.List(out.List, page(out.Page)), nil
}

// swagger:route GET /catalog/items/{id} Catalog catalogItem
// @Summary Item detail under the filter's recipe scope
// @Tags Catalog
// @Produce json
// @Param id path int true "Item id" example(501)
// @Success 200 {object} domain.ItemDetail "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /catalog/items/{id} [get]
func (h *handlers) item(r *stdhttp.Request) (any, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Item(r.Context(), id, r.URL.Query())
}

// swagger:route GET /catalog/recipes Catalog catalogRecipes
// @Summary Recipe list under the filter with matching lines marked
// @Tags Catalog
// @Produce json
// @Param recipe query string false "Recipe name text"
// @Success 200 {array} domain.Recipe "ok"
// @Router /catalog/recipes [get]
func (h *handlers) recipes(ctx context.Context, q url.Values) (any, error) {
	out, err := h.svc.Recipes(ctx, q)
	if err != nil {
		return nil, err
	}
	return httpkit.List(out.Recipes, page(out.Page)), nil
}

// swagger:route GET /catalog/recipes/{id} Catalog catalogRecipe
// @Summary Recipe with all of its lines
// @Tags Catalog
// @Produce json
// @Param id path int true "Recipe id"
// @Success 200 {object} domain.Recipe "ok"
// @Router /catalog/recipes/{id} [get]
func (h *handlers) recipe(r *stdhttp.Request) (any, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Recipe(r.Context(), id)
}
