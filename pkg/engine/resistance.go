package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/mousewarp/mousewarp/pkg/config"
	"github.com/mousewarp/mousewarp/pkg/geometry"
)

// Mode is the edge-wrap resistance policy. Exactly one is active at a
// time, selected by configuration.
type Mode int

const (
	// ModeNone always allows a wrap.
	ModeNone Mode = iota
	// ModeTime requires the cursor to dwell at the edge for a configured
	// delay before the wrap is allowed.
	ModeTime
	// ModeDistance requires a configured amount of movement along the
	// edge (orthogonal jitter) before the wrap is allowed.
	ModeDistance
	// ModeVelocity allows a wrap only when the cursor arrives at the
	// edge at or above a configured speed.
	ModeVelocity
)

// ParseMode maps a configuration string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "none":
		return ModeNone, nil
	case "time":
		return ModeTime, nil
	case "distance":
		return ModeDistance, nil
	case "velocity":
		return ModeVelocity, nil
	default:
		return ModeNone, fmt.Errorf("unknown resistance mode %q", s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeTime:
		return "time"
	case ModeDistance:
		return "distance"
	case ModeVelocity:
		return "velocity"
	default:
		return "unknown"
	}
}

// Resistance gates edge wraps until there is confidence the user intends
// to leave the screen, so jitter against an edge does not flip the cursor
// to the far side. The orchestrator owns the instance; none of the
// methods are safe for concurrent use.
type Resistance struct {
	// hitAt records the first tick the cursor pressed each edge
	// (time mode). A zero time means the edge is not being pressed.
	hitAt [len(geometry.Edges)]time.Time

	// pressure accumulates orthogonal movement while pressed against
	// each edge (distance mode).
	pressure [len(geometry.Edges)]int

	// Tracking state for distance and velocity calculations. Updated
	// unconditionally at the end of every tick, including ticks that
	// contained a teleport, so a programmatic jump never leaks into the
	// next tick's distance or velocity.
	lastX, lastY int
	lastAt       time.Time
	tracked      bool
}

// AllowWrap decides whether a wrap at edge is currently permitted for a
// cursor at (x, y) observed at now. Distance mode mutates the edge's
// pressure; time mode mutates its dwell timestamp.
func (r *Resistance) AllowWrap(mode Mode, edge geometry.Edge, x, y int, now time.Time, tun config.EdgeResistance) bool {
	if !tun.Enabled {
		return true
	}
	switch mode {
	case ModeNone:
		return true
	case ModeTime:
		return r.allowAfterDwell(edge, now, tun.TimeDelay.Std())
	case ModeDistance:
		return r.allowAfterPressure(edge, x, y, tun.DistanceThreshold)
	case ModeVelocity:
		return r.allowAtSpeed(x, y, now, tun.VelocityThreshold)
	}
	// Unreachable with a validated configuration; deny rather than wrap.
	return false
}

func (r *Resistance) allowAfterDwell(edge geometry.Edge, now time.Time, delay time.Duration) bool {
	if r.hitAt[edge].IsZero() {
		r.hitAt[edge] = now
		return false
	}
	if now.Sub(r.hitAt[edge]) >= delay {
		r.hitAt[edge] = time.Time{}
		return true
	}
	return false
}

func (r *Resistance) allowAfterPressure(edge geometry.Edge, x, y, threshold int) bool {
	if r.tracked {
		// The cursor is pinned at the edge, so movement along the edge
		// is the only signal left: treat it as pressure to cross.
		dx := abs(x - r.lastX)
		dy := abs(y - r.lastY)
		if edge == geometry.EdgeLeft || edge == geometry.EdgeRight {
			r.pressure[edge] += dy
		} else {
			r.pressure[edge] += dx
		}
	}
	if r.pressure[edge] >= threshold {
		r.pressure[edge] = 0
		return true
	}
	return false
}

func (r *Resistance) allowAtSpeed(x, y int, now time.Time, threshold float64) bool {
	if !r.tracked {
		return false
	}
	dt := now.Sub(r.lastAt).Seconds()
	if dt <= 0 {
		return false
	}
	dx := float64(x - r.lastX)
	dy := float64(y - r.lastY)
	speed := math.Hypot(dx, dy) / dt
	return speed >= threshold
}

// ClearEdge resets dwell and pressure for one edge. It must be called on
// every tick the cursor is not pressed against that edge.
func (r *Resistance) ClearEdge(edge geometry.Edge) {
	r.hitAt[edge] = time.Time{}
	r.pressure[edge] = 0
}

// Track commits the tick's final cursor position and timestamp. Called
// unconditionally at the end of every tick.
func (r *Resistance) Track(x, y int, now time.Time) {
	r.lastX, r.lastY = x, y
	r.lastAt = now
	r.tracked = true
}

// Reset drops all per-edge and tracking state, for geometry changes.
func (r *Resistance) Reset() {
	*r = Resistance{}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
