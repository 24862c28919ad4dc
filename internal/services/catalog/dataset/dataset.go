// Package dataset holds the catalog's load-once state: lookups, the default
// filter and the overcharge table computed from the unfiltered baseline
package dataset

import (
	"context"
	"sync"
	"time"

	"paporium/internal/core/filter"
	"paporium/internal/core/query"
	perr "paporium/internal/platform/errors"
	"paporium/internal/platform/logger"
)

// Name is an item id and name used for suggestions
type Name struct {
	ID   int64
	Name string
}

// Dataset is immutable once built and shared by every request
type Dataset struct {
	Lookups    filter.Lookups
	Default    filter.SearchFilter
	Overcharge *query.OverchargeTable
	Names      []Name
	LoadedAt   time.Time
}

// Build derives a Dataset from lookup tables and the baseline item list
func Build(l filter.Lookups, baseline []query.ItemRow) *Dataset {
	names := make([]Name, 0, len(baseline))
	for _, r := range baseline {
		names = append(names, Name{ID: r.ID, Name: r.Name})
	}
	return &Dataset{
		Lookups:    l,
		Default:    filter.DefaultFilter(l),
		Overcharge: query.NewOverchargeTable(baseline),
		Names:      names,
		LoadedAt:   time.Now().UTC(),
	}
}

// State is the load state of a Holder
type State int

const (
	Loading State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "loading"
}

// LoadFunc produces the dataset, typically inside one read-only snapshot
type LoadFunc func(ctx context.Context) (*Dataset, error)

// Holder owns the dataset lifecycle. Load runs at most once; a failure is
// final and the holder stays unavailable until the process restarts.
type Holder struct {
	once sync.Once
	done chan struct{}

	mu    sync.RWMutex
	state State
	ds    *Dataset
	err   error
}

// NewHolder returns a holder in the loading state
func NewHolder() *Holder {
	return &Holder{done: make(chan struct{})}
}

// NewReady returns a holder that already serves ds
func NewReady(ds *Dataset) *Holder {
	h := NewHolder()
	h.once.Do(func() { h.settle(ds, nil) })
	return h
}

// Load runs fn once; later calls return the first outcome
func (h *Holder) Load(ctx context.Context, fn LoadFunc) error {
	h.once.Do(func() {
		log := logger.C(ctx).With().Str("component", "dataset").Logger()
		start := time.Now()
		ds, err := call(ctx, fn)
		if err == nil && ds == nil {
			err = perr.Internalf("dataset loader returned nothing")
		}
		if err != nil {
			log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("dataset load failed; catalog stays unavailable")
			h.settle(nil, err)
			return
		}
		log.Info().
			Int("items", len(ds.Names)).
			Int("overcharge", ds.Overcharge.Len()).
			Dur("elapsed", time.Since(start)).
			Msg("dataset ready")
		h.settle(ds, nil)
	})
	_, err := h.result()
	return err
}

// call runs fn and turns a panic into a Panic coded error so the holder
// still settles
func call(ctx context.Context, fn LoadFunc) (ds *Dataset, err error) {
	defer func() {
		if r := recover(); r != nil {
			ds, err = nil, perr.PanicErrf("dataset loader panicked: %v", r)
		}
	}()
	return fn(ctx)
}

func (h *Holder) settle(ds *Dataset, err error) {
	h.mu.Lock()
	h.ds, h.err = ds, err
	if err != nil {
		h.state = Failed
	} else {
		h.state = Ready
	}
	h.mu.Unlock()
	close(h.done)
}

func (h *Holder) result() (*Dataset, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ds, h.err
}

// Get returns the dataset, or Unavailable while loading or after a failure
func (h *Holder) Get() (*Dataset, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	switch h.state {
	case Ready:
		return h.ds, nil
	case Failed:
		return nil, perr.Unavailablef("dataset failed to load")
	}
	return nil, perr.Unavailablef("dataset loading")
}

// State reports the load state
func (h *Holder) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Wait blocks until the load settles or ctx ends
func (h *Holder) Wait(ctx context.Context) (*Dataset, error) {
	select {
	case <-h.done:
		return h.Get()
	case <-ctx.Done():
		return nil, perr.Wrap(ctx.Err(), perr.ErrorCodeUnavailable, "waiting for dataset")
	}
}
