package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mousewarp/mousewarp/pkg/config"
	"github.com/mousewarp/mousewarp/pkg/geometry"
	"github.com/mousewarp/mousewarp/pkg/indicator"
)

// Options wires an Orchestrator to its collaborators.
type Options struct {
	Config     *config.Store
	Geometry   *geometry.Model
	Pointer    Pointer
	Events     GeometryEvents // optional
	Indicators indicator.Sink // optional
	Clock      func() time.Time
}

// Orchestrator runs the poll loop. It exclusively owns every piece of
// mutable engine state; ticks never overlap and nothing else may touch
// the fields below.
type Orchestrator struct {
	cfg    *config.Store
	geo    *geometry.Model
	ptr    Pointer
	events GeometryEvents
	ind    indicator.Sink
	now    func() time.Time

	res   Resistance
	accel Accelerator

	// refreshCh is the single-slot geometry/config reload signal,
	// drained at most once per tick.
	refreshCh chan struct{}

	// Tracking state committed at the end of every tick. havePrev is
	// false on the very first tick and after a geometry change; every
	// step that needs a previous sample is skipped until it is set.
	havePrev   bool
	prevX      int
	prevY      int
	prevMon    int
	prevSwitch bool

	// lastWarp guards re-triggering of switch and crossing directives.
	lastWarp time.Time
}

// New creates an orchestrator. Config, Geometry and Pointer are required.
func New(opts Options) (*Orchestrator, error) {
	if opts.Config == nil || opts.Geometry == nil || opts.Pointer == nil {
		return nil, fmt.Errorf("engine: config, geometry and pointer are required")
	}
	o := &Orchestrator{
		cfg:       opts.Config,
		geo:       opts.Geometry,
		ptr:       opts.Pointer,
		events:    opts.Events,
		ind:       opts.Indicators,
		now:       opts.Clock,
		refreshCh: make(chan struct{}, 1),
	}
	if o.ind == nil {
		o.ind = indicator.Discard{}
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o, nil
}

// RequestRefresh asks the next tick to force a geometry refresh. Safe to
// call from other goroutines (signal handlers, the config watcher).
func (o *Orchestrator) RequestRefresh() {
	select {
	case o.refreshCh <- struct{}{}:
	default:
	}
}

// Run polls until ctx is cancelled. Nothing else terminates the loop:
// every per-tick failure degrades to skipped directives.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.refreshGeometry(ctx, true)
	log.Info().
		Int("monitors", o.geo.Count()).
		Str("bounds", o.geo.Bounds().String()).
		Msg("engine started")

	for {
		o.Tick(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(o.cfg.Snapshot().General.PollInterval.Std()):
		}
	}
}

// Tick runs one poll cycle. The step order is load-bearing: the cooldown
// stamped by the switch gesture must be visible to the crossing
// classifier within the same tick.
func (o *Orchestrator) Tick(ctx context.Context) {
	// One snapshot per tick; a concurrent reload is observed at the
	// next tick boundary, never mid-tick.
	snap := o.cfg.Snapshot()

	// 1. Drain pending geometry-change signals.
	force := false
	select {
	case <-o.refreshCh:
		force = true
	default:
	}
	if force || (o.events != nil && o.events.DrainGeometryEvents()) {
		o.refreshGeometry(ctx, force)
	}
	if o.geo.Count() == 0 {
		// The engine never operates on an empty layout.
		o.refreshGeometry(ctx, true)
		if o.geo.Count() == 0 {
			return
		}
	}

	// 2. Sample pointer and modifier state.
	s, err := o.ptr.Sample(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("pointer sample failed, skipping tick")
		return
	}
	now := o.now()
	x, y := s.X, s.Y

	// 3. Amplified motion, or pressure decay while the modifier is up.
	if snap.Acceleration.Enabled && s.AccelHeld && o.havePrev {
		mon := o.geo.Monitor(o.geo.MonitorAt(o.prevX, o.prevY))
		nx, ny := o.accel.Apply(o.prevX, o.prevY, x, y, mon,
			snap.Acceleration.Multiplier, snap.Acceleration.EdgeResistance)
		if nx != x || ny != y {
			if o.move(ctx, nx, ny) {
				x, y = nx, ny
			}
		}
	} else {
		o.accel.Decay()
	}

	// 4. A fresh press of the switch modifier clears the cooldown.
	if s.SwitchHeld && !o.prevSwitch {
		o.lastWarp = time.Time{}
	}

	// 5. Monitor-switch gesture.
	if snap.MonitorSwitch.Enabled && o.havePrev && s.SwitchHeld &&
		now.Sub(o.lastWarp) > snap.MonitorSwitch.Cooldown.Std() {
		cur := o.geo.MonitorAt(x, y)
		if target, ok := adjacentMonitor(x-o.prevX, snap.MonitorSwitch.ShiftThreshold, cur, o.geo.Count()); ok {
			cx, cy := o.geo.Monitor(target).Center()
			if o.move(ctx, cx, cy) {
				x, y = cx, cy
				o.lastWarp = now
				o.present(snap, indicator.Request{
					Kind:  indicator.KindCornerHighlight,
					X:     cx,
					Y:     cy,
					Color: snap.Highlight.MonitorWarpColor,
				})
				log.Debug().Int("monitor", target).Msg("monitor switch gesture")
			}
		}
	}

	// 6. Edge wrap: vertical against the current monitor, then
	// horizontal against the overall screen bounds.
	if snap.EdgeWrap.Enabled && o.havePrev {
		x, y = o.wrapEdges(ctx, snap, x, y, now)
	}

	// 7. Classify any monitor change the directives above did not cause.
	if snap.Crossing.Enabled && o.havePrev {
		o.classify(snap, x, y, now)
	}

	// 8. Commit tracking state unconditionally.
	o.prevX, o.prevY = x, y
	o.prevMon = o.geo.MonitorAt(x, y)
	o.prevSwitch = s.SwitchHeld
	o.havePrev = true
	o.res.Track(x, y, now)
}

func (o *Orchestrator) wrapEdges(ctx context.Context, snap *config.Config, x, y int, now time.Time) (int, int) {
	mode, _ := ParseMode(snap.EdgeResistance.Mode)
	rtun := snap.EdgeResistance

	if snap.EdgeWrap.Vertical {
		mon := o.geo.Monitor(o.geo.MonitorAt(x, y))
		switch {
		case y <= mon.Y1:
			if o.res.AllowWrap(mode, geometry.EdgeTop, x, y, now, rtun) {
				if ny := mon.Y2 - 2; o.move(ctx, x, ny) {
					y = ny
					o.lastWarp = now
					o.presentWrap(snap, x, y)
				}
				o.res.ClearEdge(geometry.EdgeTop)
			}
		case y >= mon.Y2-1:
			if o.res.AllowWrap(mode, geometry.EdgeBottom, x, y, now, rtun) {
				if ny := mon.Y1 + 1; o.move(ctx, x, ny) {
					y = ny
					o.lastWarp = now
					o.presentWrap(snap, x, y)
				}
				o.res.ClearEdge(geometry.EdgeBottom)
			}
		default:
			o.res.ClearEdge(geometry.EdgeTop)
			o.res.ClearEdge(geometry.EdgeBottom)
		}
	}

	if snap.EdgeWrap.Horizontal {
		bounds := o.geo.Bounds()
		switch {
		case x <= bounds.X1:
			if o.res.AllowWrap(mode, geometry.EdgeLeft, x, y, now, rtun) {
				if nx := bounds.X2 - 2; o.move(ctx, nx, y) {
					x = nx
					o.lastWarp = now
					o.presentWrap(snap, x, y)
				}
				o.res.ClearEdge(geometry.EdgeLeft)
			}
		case x >= bounds.X2-1:
			if o.res.AllowWrap(mode, geometry.EdgeRight, x, y, now, rtun) {
				if nx := bounds.X1 + 1; o.move(ctx, nx, y) {
					x = nx
					o.lastWarp = now
					o.presentWrap(snap, x, y)
				}
				o.res.ClearEdge(geometry.EdgeRight)
			}
		default:
			o.res.ClearEdge(geometry.EdgeLeft)
			o.res.ClearEdge(geometry.EdgeRight)
		}
	}

	return x, y
}

func (o *Orchestrator) classify(snap *config.Config, x, y int, now time.Time) {
	cur := o.geo.MonitorAt(x, y)
	if cur == o.prevMon || now.Sub(o.lastWarp) <= snap.Crossing.Cooldown.Std() {
		return
	}
	kind, edge, pos := classifyCrossing(
		o.geo.Monitor(o.prevMon), o.geo.Monitor(cur), x, y, snap.Crossing.NaturalBand)
	switch kind {
	case CrossNatural:
		o.lastWarp = now
		o.present(snap, indicator.Request{
			Kind:    indicator.KindEdgeFlash,
			X:       x,
			Y:       y,
			Color:   snap.Highlight.EdgeWarpColor,
			Edge:    edge,
			EdgePos: pos,
		})
	case CrossTeleport:
		o.present(snap, indicator.Request{
			Kind:  indicator.KindCornerHighlight,
			X:     x,
			Y:     y,
			Color: snap.Highlight.TeleportColor,
		})
	}
	log.Debug().
		Int("from", o.prevMon).
		Int("to", cur).
		Stringer("kind", kind).
		Msg("monitor crossing")
}

func (o *Orchestrator) presentWrap(snap *config.Config, x, y int) {
	o.present(snap, indicator.Request{
		Kind:  indicator.KindCornerHighlight,
		X:     x,
		Y:     y,
		Color: snap.Highlight.EdgeWarpColor,
	})
}

func (o *Orchestrator) present(snap *config.Config, req indicator.Request) {
	if !snap.Highlight.Enabled {
		return
	}
	o.ind.Present(req)
}

func (o *Orchestrator) move(ctx context.Context, x, y int) bool {
	if err := o.ptr.Move(ctx, x, y); err != nil {
		log.Warn().Err(err).Int("x", x).Int("y", y).Msg("pointer move failed")
		return false
	}
	return true
}

func (o *Orchestrator) refreshGeometry(ctx context.Context, force bool) {
	if o.geo.Refresh(ctx, force) {
		// Deltas computed across a layout jump are meaningless.
		o.res.Reset()
		o.accel.Decay()
		o.havePrev = false
	}
}
