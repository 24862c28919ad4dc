package domain

import (
	"context"
	"net/url"
)

// ServicePort is consumed by handlers, the browser and other modules.
// Every read takes the filter in its URL form.
type ServicePort interface {
	Filter(ctx context.Context, params url.Values) (FilterView, error)
	Events(ctx context.Context, params url.Values, in EventsInput) (FilterView, error)
	Items(ctx context.Context, params url.Values) (ItemPage, error)
	Item(ctx context.Context, id int64, params url.Values) (ItemDetail, error)
	Recipes(ctx context.Context, params url.Values) (RecipePage, error)
	Recipe(ctx context.Context, id int64) (Recipe, error)
}

// ReadinessPort reports whether the catalog can serve
type ReadinessPort interface {
	Status() Status
	Ready() bool
}
