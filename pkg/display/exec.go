package display

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

const execTimeout = time.Second

// ExecMover moves the pointer by shelling out to xdotool. Used as a
// fallback when the X server rejects WarpPointer.
type ExecMover struct {
	path string
}

// NewExecMover creates a mover around the resolved xdotool path.
func NewExecMover(path string) *ExecMover {
	return &ExecMover{path: path}
}

// Move runs `xdotool mousemove x y`.
func (m *ExecMover) Move(ctx context.Context, x, y int) error {
	ctx, cancel := context.WithTimeout(ctx, execTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, m.path, "mousemove", strconv.Itoa(x), strconv.Itoa(y))
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("xdotool mousemove: %w (%s)", err, bytes.TrimSpace(out))
	}
	return nil
}
