// Package service contains catalog workflows
package service

import (
	"context"
	"net/url"
	"time"

	"paporium/internal/core/filter"
	"paporium/internal/modkit/repokit"
	perr "paporium/internal/platform/errors"
	"paporium/internal/platform/logger"
	ptime "paporium/internal/platform/time"
	"paporium/internal/services/catalog/dataset"
	"paporium/internal/services/catalog/domain"
	"paporium/internal/services/catalog/repo"
	"paporium/internal/services/catalog/session"
)

// Service defines the catalog service contract
type Service interface {
	domain.ServicePort
	domain.ReadinessPort
	Load(ctx context.Context) error
}

// Option configures Svc
type Option func(*Svc)

// WithStatementTimeout bounds every statement of a snapshot read
func WithStatementTimeout(d time.Duration) Option {
	return func(s *Svc) {
		if d > 0 {
			s.hooks = append(s.hooks, repokit.StatementTimeout(d))
		}
	}
}

// Svc implements the catalog service
type Svc struct {
	binder repokit.Binder[repo.Repo]
	db     repokit.Reader
	data   *dataset.Holder
	hooks  []repokit.BeginHook
}

// New constructs a catalog service over a read-only store
func New(db repokit.Reader, binder repokit.Binder[repo.Repo], data *dataset.Holder, opts ...Option) *Svc {
	if db == nil {
		panic("catalog.Service requires a non nil Reader")
	}
	if binder == nil {
		panic("catalog.Service requires a non nil Repo binder")
	}
	if data == nil {
		data = dataset.NewHolder()
	}
	s := &Svc{binder: binder, data: data}
	for _, o := range opts {
		o(s)
	}
	if len(s.hooks) > 0 {
		db = repokit.WithBeginHooks(db, s.hooks...)
	}
	s.db = db
	return s
}

// Holder exposes the dataset holder
func (s *Svc) Holder() *dataset.Holder { return s.data }

// Load reads lookups and the baseline in one snapshot and publishes the dataset.
// It runs once; a failure leaves the catalog unavailable.
func (s *Svc) Load(ctx context.Context) error {
	return s.data.Load(ctx, s.loadDataset)
}

func (s *Svc) loadDataset(ctx context.Context) (*dataset.Dataset, error) {
	var ds *dataset.Dataset
	err := repokit.ReadTx(ctx, s.db, func(q repokit.Querier) error {
		r := repokit.MustBind(s.binder, q)
		lookups, err := r.Lookups(ctx)
		if err != nil {
			return err
		}
		baseline, err := r.Baseline(ctx)
		if err != nil {
			return err
		}
		ds = dataset.Build(lookups, baseline)
		return nil
	})
	if err != nil {
		return nil, perr.WithOp(err, "catalog.load")
	}
	return ds, nil
}

// Status reports dataset readiness
func (s *Svc) Status() domain.Status {
	st := domain.Status{State: s.data.State().String()}
	if ds, err := s.data.Get(); err == nil {
		st.Items = len(ds.Names)
		st.LoadedAt = ptime.Ptr(ds.LoadedAt)
	}
	return st
}

// Ready reports whether the dataset is loaded
func (s *Svc) Ready() bool { return s.data.State() == dataset.Ready }

// resolve returns the dataset and the effective filter for params
func (s *Svc) resolve(params url.Values) (*dataset.Dataset, filter.SearchFilter, error) {
	ds, err := s.data.Get()
	if err != nil {
		return nil, filter.SearchFilter{}, err
	}
	return ds, filter.Merge(ds.Default, filter.Parse(params)), nil
}

func view(f filter.SearchFilter) domain.FilterView {
	return domain.FilterView{Params: f.Encode(), Filter: f}
}

// Filter returns the effective filter with names for params
func (s *Svc) Filter(_ context.Context, params url.Values) (domain.FilterView, error) {
	_, f, err := s.resolve(params)
	if err != nil {
		return domain.FilterView{}, err
	}
	return view(f), nil
}

// Events folds filter panel events into the filter given by params
func (s *Svc) Events(ctx context.Context, params url.Values, in domain.EventsInput) (domain.FilterView, error) {
	ds, err := s.data.Get()
	if err != nil {
		return domain.FilterView{}, err
	}
	log := logger.C(ctx).With().Str("component", "catalog").Logger()
	sess := session.New(ds.Default, session.WithLogger(&log))
	defer sess.Close()

	sess.Navigate(params)
	f, err := sess.Apply(in.Events...)
	if err != nil {
		return domain.FilterView{}, err
	}
	return view(f), nil
}
