package engine

import (
	"github.com/mousewarp/mousewarp/pkg/geometry"
)

// CrossKind classifies a monitor-membership change.
type CrossKind int

const (
	// CrossNatural is a change consistent with continuous motion across
	// the shared boundary of the two monitors.
	CrossNatural CrossKind = iota
	// CrossTeleport is a change the cursor cannot have made by
	// continuous motion: it arrived away from the shared boundary, so
	// something moved it programmatically.
	CrossTeleport
)

func (k CrossKind) String() string {
	if k == CrossNatural {
		return "natural"
	}
	return "teleport"
}

// classifyCrossing decides whether the cursor's arrival at (x, y) on the
// entered monitor looks like a natural crossing from the previous one.
//
// The direction of travel is inferred from how the two rectangles are
// positioned relative to each other; the arrival is natural when the
// cursor sits within band pixels of the entered rectangle's boundary on
// that side. When the rectangles do not differ along either axis the
// direction is ambiguous and the change defaults to a teleport.
//
// The returned edge is the boundary edge of the entered monitor, and pos
// is the cursor coordinate along it (y for vertical boundaries, x for
// horizontal ones); both are only meaningful for a natural crossing.
func classifyCrossing(prev, cur geometry.Rect, x, y, band int) (kind CrossKind, edge geometry.Edge, pos int) {
	switch {
	case cur.X1 > prev.X1:
		// Entered from the left: shared boundary is cur's left edge.
		if x-cur.X1 <= band {
			return CrossNatural, geometry.EdgeLeft, y
		}
	case cur.X1 < prev.X1:
		if (cur.X2-1)-x <= band {
			return CrossNatural, geometry.EdgeRight, y
		}
	case cur.Y1 > prev.Y1:
		if y-cur.Y1 <= band {
			return CrossNatural, geometry.EdgeTop, x
		}
	case cur.Y1 < prev.Y1:
		if (cur.Y2-1)-y <= band {
			return CrossNatural, geometry.EdgeBottom, x
		}
	}
	return CrossTeleport, 0, 0
}
