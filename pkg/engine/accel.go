package engine

import (
	"github.com/mousewarp/mousewarp/pkg/geometry"
)

// Accelerator implements amplified pointer motion with per-edge
// hold-then-release pressure at monitor boundaries. While the modifier is
// held, each tick's raw delta is multiplied and re-applied from the
// previous position; overflow past the monitor edge accumulates as
// pressure, and the position is clamped to the boundary until the
// pressure reaches the configured resistance, at which point it resets
// and the position passes through unclamped.
type Accelerator struct {
	pressure [len(geometry.Edges)]int
}

// Apply computes the accelerated position for this tick.
//
// prevX, prevY is the committed position of the previous tick; rawX, rawY
// is this tick's sample; mon is the monitor containing the previous
// position. resistance == 0 disables boundary crossing entirely: the
// position is hard-clamped to mon.
func (a *Accelerator) Apply(prevX, prevY, rawX, rawY int, mon geometry.Rect, multiplier float64, resistance int) (int, int) {
	dx := rawX - prevX
	dy := rawY - prevY
	if dx == 0 && dy == 0 {
		return rawX, rawY
	}

	x := prevX + int(float64(dx)*multiplier)
	y := prevY + int(float64(dy)*multiplier)

	if resistance <= 0 {
		x, y = mon.Clamp(x, y)
		return x, y
	}

	// Each edge either overflows this tick (pressure grows, position
	// held at the boundary until the threshold releases it) or it does
	// not (pressure drops back to zero).
	if x < mon.X1 {
		a.pressure[geometry.EdgeLeft] += mon.X1 - x
		if a.pressure[geometry.EdgeLeft] < resistance {
			x = mon.X1
		} else {
			a.pressure[geometry.EdgeLeft] = 0
		}
	} else {
		a.pressure[geometry.EdgeLeft] = 0
	}

	if x >= mon.X2 {
		a.pressure[geometry.EdgeRight] += x - (mon.X2 - 1)
		if a.pressure[geometry.EdgeRight] < resistance {
			x = mon.X2 - 1
		} else {
			a.pressure[geometry.EdgeRight] = 0
		}
	} else {
		a.pressure[geometry.EdgeRight] = 0
	}

	if y < mon.Y1 {
		a.pressure[geometry.EdgeTop] += mon.Y1 - y
		if a.pressure[geometry.EdgeTop] < resistance {
			y = mon.Y1
		} else {
			a.pressure[geometry.EdgeTop] = 0
		}
	} else {
		a.pressure[geometry.EdgeTop] = 0
	}

	if y >= mon.Y2 {
		a.pressure[geometry.EdgeBottom] += y - (mon.Y2 - 1)
		if a.pressure[geometry.EdgeBottom] < resistance {
			y = mon.Y2 - 1
		} else {
			a.pressure[geometry.EdgeBottom] = 0
		}
	} else {
		a.pressure[geometry.EdgeBottom] = 0
	}

	return x, y
}

// Decay zeroes all pressure counters. Called on every tick the modifier
// is not held, and on geometry changes.
func (a *Accelerator) Decay() {
	a.pressure = [len(geometry.Edges)]int{}
}
