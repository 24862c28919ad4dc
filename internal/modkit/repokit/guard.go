package repokit

import (
	"context"
	"fmt"
	"time"
)

// Pinger is any dependency that can report readiness
type Pinger interface {
	Ping(context.Context) error
}

// Ping checks p within timeout unless ctx already carries a deadline
func Ping(ctx context.Context, p Pinger, timeout time.Duration) error {
	if p == nil {
		return fmt.Errorf("nil dependency")
	}
	if _, ok := ctx.Deadline(); !ok && timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return p.Ping(ctx)
}

// MustPing panics if a dependency doesn't answer within 5s
func MustPing(ctx context.Context, name string, p Pinger) {
	if err := Ping(ctx, p, 5*time.Second); err != nil {
		panic(fmt.Sprintf("%s ping failed: %v", name, err))
	}
}
