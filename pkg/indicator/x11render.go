package indicator

import (
	"context"
	"fmt"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/shape"
	"github.com/jezek/xgb/xproto"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/mousewarp/mousewarp/pkg/config"
	"github.com/mousewarp/mousewarp/pkg/geometry"
)

// X11Renderer draws indicators as override-redirect windows. Every
// animation opens its own ephemeral display connection, so concurrent
// animations never contend with each other or with the engine's
// connection.
type X11Renderer struct{}

// NewX11Renderer creates the renderer.
func NewX11Renderer() *X11Renderer {
	return &X11Renderer{}
}

// Render draws the requested indicator to completion, or until ctx is
// cancelled.
func (r *X11Renderer) Render(ctx context.Context, req Request, color colorful.Color, tun config.Highlight) error {
	duration := tun.Duration.Std()
	if req.Duration > 0 {
		duration = req.Duration
	}

	switch req.Kind {
	case KindEdgeFlash:
		vertical := req.Edge == geometry.EdgeLeft || req.Edge == geometry.EdgeRight
		return animate(ctx, stripFrames(req.X, req.Y, tun.Size*3, vertical), color, duration, false)
	default:
		return animate(ctx, ringFrames(req.X, req.Y, tun.Size), color, duration, true)
	}
}

// animate creates the indicator window and steps it through the frame
// schedule. ring selects the circular shape mask.
func animate(ctx context.Context, frames []frame, color colorful.Color, duration time.Duration, ring bool) error {
	if len(frames) == 0 {
		return nil
	}

	conn, err := xgb.NewConn()
	if err != nil {
		return fmt.Errorf("connect for indicator: %w", err)
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)

	first := frames[0]
	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return fmt.Errorf("allocate window id: %w", err)
	}
	err = xproto.CreateWindowChecked(conn, screen.RootDepth, wid, screen.Root,
		int16(first.X), int16(first.Y), uint16(first.W), uint16(first.H), 0,
		xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect,
		[]uint32{pixel(color), 1}).Check()
	if err != nil {
		return fmt.Errorf("create indicator window: %w", err)
	}
	defer xproto.DestroyWindow(conn, wid)

	if ring {
		if err := applyRingMask(conn, wid, first.W); err != nil {
			return fmt.Errorf("shape indicator window: %w", err)
		}
	}

	xproto.MapWindow(conn, wid)

	stepDelay := duration / time.Duration(len(frames))
	for _, f := range frames {
		xproto.ConfigureWindow(conn, wid,
			xproto.ConfigWindowX|xproto.ConfigWindowY|
				xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
			[]uint32{
				uint32(int32(f.X)), uint32(int32(f.Y)),
				uint32(f.W), uint32(f.H),
			})
		conn.Sync()
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(stepDelay):
		}
	}
	return nil
}

// applyRingMask sets a circular bounding shape with a punched-out
// center, turning the square window into a ring.
func applyRingMask(conn *xgb.Conn, wid xproto.Window, size int) error {
	if err := shape.Init(conn); err != nil {
		return err
	}

	pid, err := xproto.NewPixmapId(conn)
	if err != nil {
		return err
	}
	if err := xproto.CreatePixmapChecked(conn, 1, pid, xproto.Drawable(wid),
		uint16(size), uint16(size)).Check(); err != nil {
		return err
	}
	defer xproto.FreePixmap(conn, pid)

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		return err
	}
	if err := xproto.CreateGCChecked(conn, gc, xproto.Drawable(pid),
		xproto.GcForeground, []uint32{0}).Check(); err != nil {
		return err
	}
	defer xproto.FreeGC(conn, gc)

	full := []xproto.Rectangle{{X: 0, Y: 0, Width: uint16(size), Height: uint16(size)}}
	xproto.PolyFillRectangle(conn, xproto.Drawable(pid), gc, full)

	xproto.ChangeGC(conn, gc, xproto.GcForeground, []uint32{1})
	xproto.PolyFillArc(conn, xproto.Drawable(pid), gc, []xproto.Arc{{
		X: 0, Y: 0, Width: uint16(size), Height: uint16(size),
		Angle1: 0, Angle2: 360 * 64,
	}})

	inner := size / 2
	offset := int16((size - inner) / 2)
	xproto.ChangeGC(conn, gc, xproto.GcForeground, []uint32{0})
	xproto.PolyFillArc(conn, xproto.Drawable(pid), gc, []xproto.Arc{{
		X: offset, Y: offset, Width: uint16(inner), Height: uint16(inner),
		Angle1: 0, Angle2: 360 * 64,
	}})

	shape.Mask(conn, shape.SoSet, shape.SkBounding, wid, 0, 0, pid)
	return nil
}

func pixel(c colorful.Color) uint32 {
	r, g, b := c.RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}
