// Package indicator presents transient visual feedback for pointer warps:
// an animated ring at the landing position, or a flash along a crossed
// monitor boundary. Presentation is fire-and-forget; the engine never
// waits on it.
package indicator

import (
	"time"

	"github.com/mousewarp/mousewarp/pkg/geometry"
)

// Kind selects the indicator shape.
type Kind int

const (
	// KindCornerHighlight is the shrinking ring drawn at a warp landing
	// position.
	KindCornerHighlight Kind = iota
	// KindEdgeFlash is a strip flashed along a crossed monitor boundary.
	KindEdgeFlash
)

func (k Kind) String() string {
	switch k {
	case KindCornerHighlight:
		return "corner-highlight"
	case KindEdgeFlash:
		return "edge-flash"
	default:
		return "unknown"
	}
}

// Request describes one indicator presentation.
type Request struct {
	Kind Kind

	// X, Y is the focal position: the warp landing point for a ring, or
	// the crossing point for an edge flash.
	X, Y int

	// Color is a palette color name ("sky", "peach", ...).
	Color string

	// Edge and EdgePos locate an edge flash: the boundary edge of the
	// entered monitor and the cursor coordinate along it. Unused for
	// rings.
	Edge    geometry.Edge
	EdgePos int

	// Duration overrides the configured animation duration when nonzero.
	Duration time.Duration
}

// Sink accepts presentation requests. Implementations must not block the
// caller beyond a queue hand-off and must never mutate engine state.
type Sink interface {
	Present(req Request)
}

// Discard is a Sink that drops every request.
type Discard struct{}

func (Discard) Present(Request) {}
