// Package display holds the windowing-system collaborators: pointer
// query/move, monitor enumeration, layout-change events and binary
// probing. The engine only sees the interfaces it defines itself; this
// package provides the X11 implementations plus fallbacks.
package display

import (
	"context"
	"errors"
	"time"
)

// Mover relocates the pointer. Implementations must be safe for use from
// multiple goroutines (the focus relay shares one with the engine).
type Mover interface {
	Move(ctx context.Context, x, y int) error
}

// errTimeout reports a display request that did not come back within its
// budget. The connection is left suspect; the orphaned reply is drained
// whenever it lands.
var errTimeout = errors.New("display request timed out")

// callTimeout runs one blocking display round trip with an upper bound.
// The X protocol has no reply deadlines of its own, so the request runs
// on its own goroutine and the caller abandons it on timeout.
func callTimeout[T any](ctx context.Context, d time.Duration, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn()
		ch <- result{v, err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	var zero T
	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-timer.C:
		return zero, errTimeout
	}
}
