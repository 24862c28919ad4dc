package modkit

import (
	"net/http"

	phttp "paporium/internal/platform/net/http"
)

// Option mutates module settings during Build
type Option func(*settings)

type settings struct {
	name      string
	prefix    string
	mw        []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool
	register  func(phttp.Router)
}

// Built is a plain struct with the fields modules care about
type Built struct {
	Name      string
	Prefix    string
	Mw        []func(http.Handler) http.Handler
	Ports     any
	SwaggerOn bool

	// Register attaches extra endpoints after the module's own
	Register func(phttp.Router)
}

// Build applies options over the given defaults and returns the settled values
func Build(opts ...Option) Built {
	var s settings
	for _, o := range opts {
		o(&s)
	}
	if s.register == nil {
		s.register = func(phttp.Router) {}
	}
	return Built{
		Name:      s.name,
		Prefix:    s.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), s.mw...),
		Ports:     s.ports,
		SwaggerOn: s.swaggerOn,
		Register:  s.register,
	}
}

// WithName sets a module name used in logs and registry
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// WithPrefix mounts a module under a path prefix
func WithPrefix(prefix string) Option {
	return func(s *settings) { s.prefix = prefix }
}

// WithMiddlewares attaches per module middleware in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(s *settings) { s.mw = append(s.mw, mw...) }
}

// WithPorts injects ports owned by another module
func WithPorts[T any](p T) Option {
	return func(s *settings) { s.ports = p }
}

// WithSwagger lets the module contribute to the served api doc
func WithSwagger(enabled bool) Option {
	return func(s *settings) { s.swaggerOn = enabled }
}

// WithRegister adds endpoints to the module router
func WithRegister(fn func(phttp.Router)) Option {
	return func(s *settings) { s.register = fn }
}

// Mount mounts a module router at b.Prefix with its middlewares, then calls each register func
func Mount(r phttp.Router, b Built, register ...func(phttp.Router)) {
	r.Route(b.Prefix, func(rr phttp.Router) {
		if len(b.Mw) > 0 {
			rr.Use(b.Mw...)
		}
		for _, fn := range register {
			fn(rr)
		}
		b.Register(rr)
	})
}
