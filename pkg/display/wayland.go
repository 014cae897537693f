package display

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/wayland-virtual-input-go/virtual_pointer"
)

// WaylandMover moves the pointer through the zwlr_virtual_pointer_v1
// protocol. The polling core is X11-only (Wayland offers no pointer
// query), but the focus relay can still warp the pointer under a
// wlroots compositor with this mover.
type WaylandMover struct {
	mu      sync.Mutex
	manager *virtual_pointer.VirtualPointerManager
	pointer *virtual_pointer.VirtualPointer
	extentX int
	extentY int
	closed  bool
}

// NewWaylandMover connects to the compositor and creates a virtual
// pointer device. extentX, extentY is the logical desktop size used for
// absolute positioning.
func NewWaylandMover(ctx context.Context, extentX, extentY int) (*WaylandMover, error) {
	manager, err := virtual_pointer.NewVirtualPointerManager(ctx)
	if err != nil {
		return nil, fmt.Errorf("create virtual pointer manager: %w", err)
	}
	pointer, err := manager.CreatePointer()
	if err != nil {
		manager.Close()
		return nil, fmt.Errorf("create virtual pointer: %w", err)
	}
	return &WaylandMover{
		manager: manager,
		pointer: pointer,
		extentX: extentX,
		extentY: extentY,
	}, nil
}

// Move warps the pointer to absolute desktop coordinates.
func (w *WaylandMover) Move(_ context.Context, x, y int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("wayland mover closed")
	}
	if err := w.pointer.MotionAbsolute(time.Now(), uint32(x), uint32(y), uint32(w.extentX), uint32(w.extentY)); err != nil {
		return fmt.Errorf("motion absolute: %w", err)
	}
	return w.pointer.Frame()
}

// Close releases the virtual pointer device.
func (w *WaylandMover) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	var first error
	if err := w.pointer.Close(); err != nil {
		first = fmt.Errorf("close pointer: %w", err)
	}
	if err := w.manager.Close(); err != nil && first == nil {
		first = fmt.Errorf("close pointer manager: %w", err)
	}
	return first
}
