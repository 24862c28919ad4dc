package repokit

import (
	"context"
	"strconv"
	"time"

	"paporium/internal/platform/store"
)

// BeginHook runs at the start of a snapshot with the tx bound Querier
type BeginHook func(ctx context.Context, q Querier) error

// WithBeginHooks wraps a Reader so every ReadTx runs hooks before fn inside the same tx
func WithBeginHooks(inner Reader, hooks ...BeginHook) Reader {
	return hooked{Reader: inner, hooks: hooks}
}

type hooked struct {
	Reader
	hooks []BeginHook
}

func (h hooked) ReadTx(ctx context.Context, fn func(q Querier) error) error {
	return h.Reader.ReadTx(ctx, func(q Querier) error {
		for _, hk := range h.hooks {
			if err := hk(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}

// StatementTimeout bounds every statement of the snapshot, local to the tx
func StatementTimeout(d time.Duration) BeginHook {
	ms := d.Milliseconds()
	return func(ctx context.Context, q Querier) error {
		_, err := store.Scalar[string](ctx, q, "SELECT set_config('statement_timeout', $1, true)", strconv.FormatInt(max(ms, 0), 10))
		return err
	}
}
