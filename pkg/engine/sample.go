// Package engine is the per-tick decision core: it turns the polled
// pointer stream into movement and indicator directives. All mutable
// state lives in the Orchestrator and is touched by exactly one
// goroutine; the policy types (Resistance, Accelerator) are plain
// functions over explicitly passed state.
package engine

import "context"

// Sample is one poll of the pointer: position plus modifier state, valid
// for a single tick.
type Sample struct {
	X, Y int

	// AccelHeld reports the acceleration modifier (Ctrl).
	AccelHeld bool
	// SwitchHeld reports the monitor-switch modifier (Shift).
	SwitchHeld bool
}

// Pointer is the external windowing-system collaborator for the cursor.
// Calls are blocking but bounded by short internal timeouts; failures are
// non-fatal and simply cost the engine one tick of staleness.
type Pointer interface {
	// Sample reads the pointer position and modifier state.
	Sample(ctx context.Context) (Sample, error)
	// Move relocates the pointer in root coordinates.
	Move(ctx context.Context, x, y int) error
}

// GeometryEvents drains pending screen-layout change notifications
// without blocking.
type GeometryEvents interface {
	// DrainGeometryEvents consumes any queued layout-change events and
	// reports whether there was at least one.
	DrainGeometryEvents() bool
}
