// Package focus relays focus-follow events from an external window
// manager hook to the pointer. The hook writes newline-delimited JSON to
// a unix socket; the relay warps the pointer to each event's position.
// It reads only configuration snapshots and never touches engine state.
package focus

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mousewarp/mousewarp/pkg/config"
	"github.com/mousewarp/mousewarp/pkg/display"
)

// Event is one message from the window manager hook.
type Event struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// EventFocusWarp asks for the pointer to be warped to (X, Y), typically
// the center of a newly focused window.
const EventFocusWarp = "focus-warp"

// acceptDeadline bounds each Accept so the loop can notice cancellation.
const acceptDeadline = time.Second

// Listener owns the unix socket and the accept loop.
type Listener struct {
	cfg   *config.Store
	mover display.Mover
	path  string
}

// SocketPath resolves the configured socket path, defaulting to
// $XDG_RUNTIME_DIR/mousewarp.sock.
func SocketPath(cfg *config.Config) string {
	if cfg.FocusFollow.Socket != "" {
		return cfg.FocusFollow.Socket
	}
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "mousewarp.sock")
}

// NewListener creates a relay listening at path.
func NewListener(cfg *config.Store, mover display.Mover, path string) *Listener {
	return &Listener{cfg: cfg, mover: mover, path: path}
}

// Run accepts hook connections until ctx is cancelled.
func (l *Listener) Run(ctx context.Context) error {
	// Replace a stale socket from a previous run.
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale socket: %w", err)
	}

	listener, err := net.Listen("unix", l.path)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", l.path, err)
	}
	defer listener.Close()
	defer os.Remove(l.path)

	log.Info().Str("socket", l.path).Msg("focus relay listening")

	unixListener, _ := listener.(*net.UnixListener)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if unixListener != nil {
			unixListener.SetDeadline(time.Now().Add(acceptDeadline))
		}
		conn, err := listener.Accept()
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			log.Warn().Err(err).Msg("focus relay accept failed")
			continue
		}
		go l.handle(ctx, conn)
	}
}

func (l *Listener) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil {
			log.Debug().Err(err).Msg("bad focus event")
			continue
		}
		if ev.Type != EventFocusWarp {
			continue
		}
		// Honors a live-reload toggle without restarting the socket.
		if !l.cfg.Snapshot().FocusFollow.Enabled {
			continue
		}
		if err := l.mover.Move(ctx, ev.X, ev.Y); err != nil {
			log.Warn().Err(err).Msg("focus warp failed")
		}
	}
}
