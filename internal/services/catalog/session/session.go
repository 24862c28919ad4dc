// Package session is the filter controller behind a browsing surface. It
// folds UI events into the effective filter, debounces free text and writes
// the URL form of every change through a callback.
package session

import (
	"net/url"
	"sync"
	"time"

	"paporium/internal/core/filter"
	"paporium/internal/platform/debounce"
	"paporium/internal/platform/logger"
	"paporium/internal/platform/net/http/bind"

	"github.com/google/uuid"
)

// Option configures a Session
type Option func(*Session)

// WithQuiet sets the text debounce period
func WithQuiet(d time.Duration) Option {
	return func(s *Session) { s.quiet = d }
}

// OnChange registers the URL writer; it runs outside the session lock
func OnChange(fn func(url.Values)) Option {
	return func(s *Session) { s.onChange = fn }
}

// WithLogger overrides the session logger
func WithLogger(l *logger.Logger) Option {
	return func(s *Session) { s.log = l }
}

// Session is safe for concurrent use
type Session struct {
	ID uuid.UUID

	log      *logger.Logger
	quiet    time.Duration
	deb      *debounce.Debouncer
	onChange func(url.Values)

	mu  sync.Mutex
	def filter.SearchFilter
	url filter.SearchFilter
	eff filter.SearchFilter
}

// New starts a session at the default filter
func New(def filter.SearchFilter, opts ...Option) *Session {
	s := &Session{
		ID:    uuid.New(),
		quiet: debounce.DefaultQuiet,
		def:   def.Clone(),
		eff:   def.Clone(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = logger.Named("session")
	}
	l := s.log.With().Str("session_id", s.ID.String()).Logger()
	s.log = &l
	s.deb = debounce.New(s.quiet)
	return s
}

// Navigate applies an external URL change. The effective filter becomes the
// default overlaid by the parsed params and no URL write happens.
func (s *Session) Navigate(values url.Values) filter.SearchFilter {
	s.deb.Stop()

	s.mu.Lock()
	s.url = filter.Parse(values)
	s.eff = filter.Merge(s.def, s.url)
	out := s.eff.Clone()
	s.mu.Unlock()

	s.log.Debug().Str("params", values.Encode()).Msg("navigate")
	return out
}

// Apply folds events in order. Either every event applies or none does.
// A change that leaves the filter equal is not written.
func (s *Session) Apply(events ...Event) (filter.SearchFilter, error) {
	for _, e := range events {
		if err := bind.Struct(e); err != nil {
			return s.Effective(), err
		}
	}

	s.mu.Lock()
	next := s.eff
	for _, e := range events {
		var err error
		if next, err = Step(s.def, next, e); err != nil {
			s.mu.Unlock()
			return s.Effective(), err
		}
	}
	if filter.Equal(next, s.eff) {
		out := s.eff.Clone()
		s.mu.Unlock()
		return out, nil
	}
	s.eff = next
	params := filter.Format(next)
	s.url = filter.Parse(params)
	out := next.Clone()
	fn := s.onChange
	s.mu.Unlock()

	s.log.Debug().Int("events", len(events)).Str("params", params.Encode()).Msg("filter changed")
	if fn != nil {
		fn(params)
	}
	return out, nil
}

// Type records a keystroke. The text event applies once input has been
// quiet for the debounce period; each call restarts the period.
func (s *Session) Type(field filter.Field, value string) {
	s.deb.Trigger(func() {
		if _, err := s.Apply(Text(field, value)); err != nil {
			s.log.Warn().Err(err).Str("field", string(field)).Msg("text event rejected")
		}
	})
}

// Flush applies pending text now; reports whether anything was pending
func (s *Session) Flush() bool { return s.deb.Flush() }

// Pending reports whether text is waiting for the quiet period
func (s *Session) Pending() bool { return s.deb.Pending() }

// Close drops pending text
func (s *Session) Close() { s.deb.Stop() }

// Effective returns a copy of the effective filter
func (s *Session) Effective() filter.SearchFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eff.Clone()
}

// Params returns the URL form of the effective filter
func (s *Session) Params() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filter.Format(s.eff)
}

// Default returns a copy of the default filter
func (s *Session) Default() filter.SearchFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.def.Clone()
}

// URL returns the filter parsed from the last navigated or written params
func (s *Session) URL() filter.SearchFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url.Clone()
}
