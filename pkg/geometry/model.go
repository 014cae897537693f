package geometry

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

// refreshDebounce is the minimum interval between two un-forced refreshes.
const refreshDebounce = 200 * time.Millisecond

// queryTimeout bounds a single enumeration round trip.
const queryTimeout = time.Second

// Enumerator is the external collaborator that lists monitor rectangles.
type Enumerator interface {
	// Monitors returns the attached monitor rectangles. It may fail or
	// return an empty list during hot-plug races.
	Monitors(ctx context.Context) ([]Rect, error)
	// RootGeometry returns the extent of the root window, used as a
	// synthetic single monitor when enumeration fails.
	RootGeometry(ctx context.Context) (Rect, error)
}

// Model holds the current monitor layout. It is owned by the orchestrator
// and must not be shared across goroutines.
type Model struct {
	enum Enumerator

	monitors []Rect
	bounds   Rect

	lastRefresh time.Time
	now         func() time.Time
}

// NewModel creates an empty model. Call Refresh before using it.
func NewModel(enum Enumerator) *Model {
	return &Model{enum: enum, now: time.Now}
}

// Refresh re-queries the monitor layout. Un-forced calls within the
// debounce window of the previous refresh are ignored. It returns true
// when the accepted layout differs from the previous one; callers must
// then clear any tracking state computed against the old layout.
func (m *Model) Refresh(ctx context.Context, force bool) bool {
	now := m.now()
	if !force && now.Sub(m.lastRefresh) < refreshDebounce {
		return false
	}
	m.lastRefresh = now

	qctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	next, err := m.enum.Monitors(qctx)
	if err != nil {
		log.Warn().Err(err).Msg("monitor enumeration failed")
		next = nil
	}
	if len(next) == 0 {
		// Fall back to a single synthetic monitor spanning the root
		// window, or the last-known bounds if even that fails.
		root, rerr := m.enum.RootGeometry(qctx)
		switch {
		case rerr == nil && !root.Empty():
			next = []Rect{root}
		case !m.bounds.Empty():
			next = []Rect{m.bounds}
		default:
			log.Warn().Err(rerr).Msg("no monitor geometry available")
			return false
		}
	}

	// Deterministic left-to-right adjacency.
	sort.Slice(next, func(i, j int) bool {
		if next[i].X1 != next[j].X1 {
			return next[i].X1 < next[j].X1
		}
		return next[i].Y1 < next[j].Y1
	})

	bounds := Rect{}
	for _, r := range next {
		bounds = bounds.Union(r)
	}

	changed := bounds != m.bounds || !rectsEqual(next, m.monitors)
	hadLayout := len(m.monitors) > 0
	m.monitors = next
	m.bounds = bounds

	if changed && hadLayout {
		log.Info().
			Int("monitors", len(next)).
			Str("bounds", bounds.String()).
			Msg("monitor layout changed")
	}
	return changed
}

// Count returns the number of monitors.
func (m *Model) Count() int { return len(m.monitors) }

// Monitors returns the sorted monitor rectangles. The returned slice is
// the model's own; callers must not mutate it.
func (m *Model) Monitors() []Rect { return m.monitors }

// Monitor returns the rectangle at index i, clamped into range.
func (m *Model) Monitor(i int) Rect {
	if len(m.monitors) == 0 {
		return m.bounds
	}
	if i < 0 {
		i = 0
	}
	if i >= len(m.monitors) {
		i = len(m.monitors) - 1
	}
	return m.monitors[i]
}

// Bounds returns the union of all monitor rectangles.
func (m *Model) Bounds() Rect { return m.bounds }

// MonitorAt returns the index of the monitor containing the point. When no
// rectangle contains it (a brief hot-unplug race, or a point parked on the
// far boundary), the monitor with the nearest center wins.
func (m *Model) MonitorAt(x, y int) int {
	for i, r := range m.monitors {
		if r.Contains(x, y) {
			return i
		}
	}
	best := 0
	bestDist := -1
	for i, r := range m.monitors {
		cx, cy := r.Center()
		dx, dy := x-cx, y-cy
		d := dx*dx + dy*dy
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func rectsEqual(a, b []Rect) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
