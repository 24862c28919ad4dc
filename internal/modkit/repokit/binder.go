package repokit

// Binder binds a domain repo to a specific Querier, either the pool or a snapshot tx
type Binder[T any] interface {
	Bind(Querier) T
}

// BindFunc lets you create a Binder from a function
type BindFunc[T any] func(Querier) T

// Bind calls the underlying function
func (f BindFunc[T]) Bind(q Querier) T { return f(q) }

// RequireQuerier panics early on programmer error (nil q)
func RequireQuerier(q Querier) Querier {
	if q == nil {
		panic("repokit: nil Querier")
	}
	return q
}

// MustBind validates q then binds
func MustBind[T any](b Binder[T], q Querier) T {
	return b.Bind(RequireQuerier(q))
}
