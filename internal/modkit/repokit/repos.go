// Package repokit provides common types and helpers for repository implementations
package repokit

import (
	"context"

	"paporium/internal/platform/store"
)

type (
	// Querier is the read surface repos use for sql
	Querier = store.Querier

	// Reader adds a read-only snapshot around a group of queries
	Reader = store.Reader

	// Rows are the result set of a query
	Rows = store.Rows

	// Row is a single row result from a query
	Row = store.Row
)

// ReadTx runs fn inside a read-only snapshot of r
func ReadTx(ctx context.Context, r Reader, fn func(q Querier) error) error {
	return r.ReadTx(ctx, fn)
}
