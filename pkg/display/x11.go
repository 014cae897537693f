package display

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
	"github.com/rs/zerolog/log"

	"github.com/mousewarp/mousewarp/pkg/engine"
	"github.com/mousewarp/mousewarp/pkg/geometry"
)

// ErrRandRUnavailable means the server lacks the RandR extension; monitor
// enumeration then degrades to the root-geometry fallback.
var ErrRandRUnavailable = errors.New("randr extension unavailable")

const pointerTimeout = 250 * time.Millisecond

// X11 is the primary display connection. One QueryPointer round trip
// yields position and modifier state together, and RandR screen-change
// events arrive on the same connection. Access is serialized: the focus
// relay may share the Mover side with the engine.
type X11 struct {
	mu    sync.Mutex
	conn  *xgb.Conn
	root  xproto.Window
	randr bool

	// fallback moves the pointer via xdotool when the server rejects
	// WarpPointer (some remote-display setups do).
	fallback Mover
}

// ConnectX11 opens a connection to the display named by $DISPLAY and
// subscribes to RandR screen-change events.
func ConnectX11() (*X11, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X display: %w", err)
	}

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)

	x := &X11{
		conn: conn,
		root: screen.Root,
	}

	if err := randr.Init(conn); err != nil {
		log.Warn().Err(err).Msg("randr unavailable, treating display as a single monitor")
	} else {
		x.randr = true
		randr.SelectInput(conn, x.root, randr.NotifyMaskScreenChange)
	}

	return x, nil
}

// SetFallbackMover installs a mover used when WarpPointer fails.
func (x *X11) SetFallbackMover(m Mover) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.fallback = m
}

// Close shuts the connection down.
func (x *X11) Close() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.conn.Close()
}

// Sample reads the pointer position and modifier state in one round trip.
func (x *X11) Sample(ctx context.Context) (engine.Sample, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	reply, err := callTimeout(ctx, pointerTimeout, func() (*xproto.QueryPointerReply, error) {
		return xproto.QueryPointer(x.conn, x.root).Reply()
	})
	if err != nil {
		return engine.Sample{}, fmt.Errorf("query pointer: %w", err)
	}
	return engine.Sample{
		X:          int(reply.RootX),
		Y:          int(reply.RootY),
		AccelHeld:  reply.Mask&xproto.ModMaskControl != 0,
		SwitchHeld: reply.Mask&xproto.ModMaskShift != 0,
	}, nil
}

// Move warps the pointer to root coordinates.
func (x *X11) Move(ctx context.Context, toX, toY int) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	_, err := callTimeout(ctx, pointerTimeout, func() (struct{}, error) {
		err := xproto.WarpPointerChecked(x.conn,
			xproto.WindowNone, x.root,
			0, 0, 0, 0,
			int16(toX), int16(toY)).Check()
		return struct{}{}, err
	})
	if err == nil {
		return nil
	}
	if x.fallback != nil {
		log.Debug().Err(err).Msg("warp pointer rejected, using fallback mover")
		return x.fallback.Move(ctx, toX, toY)
	}
	return fmt.Errorf("warp pointer: %w", err)
}

// Monitors enumerates the active monitors via RandR.
func (x *X11) Monitors(ctx context.Context) ([]geometry.Rect, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.randr {
		return nil, ErrRandRUnavailable
	}
	reply, err := callTimeout(ctx, time.Second, func() (*randr.GetMonitorsReply, error) {
		return randr.GetMonitors(x.conn, x.root, true).Reply()
	})
	if err != nil {
		return nil, fmt.Errorf("randr get monitors: %w", err)
	}

	rects := make([]geometry.Rect, 0, len(reply.Monitors))
	for _, m := range reply.Monitors {
		rects = append(rects, geometry.Rect{
			X1: int(m.X),
			Y1: int(m.Y),
			X2: int(m.X) + int(m.Width),
			Y2: int(m.Y) + int(m.Height),
		})
	}
	return rects, nil
}

// RootGeometry returns the extent of the root window.
func (x *X11) RootGeometry(ctx context.Context) (geometry.Rect, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	reply, err := callTimeout(ctx, time.Second, func() (*xproto.GetGeometryReply, error) {
		return xproto.GetGeometry(x.conn, xproto.Drawable(x.root)).Reply()
	})
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("get root geometry: %w", err)
	}
	return geometry.Rect{
		X1: int(reply.X),
		Y1: int(reply.Y),
		X2: int(reply.X) + int(reply.Width),
		Y2: int(reply.Y) + int(reply.Height),
	}, nil
}

// DrainGeometryEvents consumes queued RandR screen-change notifications.
func (x *X11) DrainGeometryEvents() bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.randr {
		return false
	}
	saw := false
	for {
		ev, err := x.conn.PollForEvent()
		if ev == nil && err == nil {
			return saw
		}
		if err != nil {
			log.Debug().Str("error", err.Error()).Msg("display event error")
			return saw
		}
		if _, ok := ev.(randr.ScreenChangeNotifyEvent); ok {
			saw = true
		}
	}
}
