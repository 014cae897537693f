package theme

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog/log"

	"github.com/mousewarp/mousewarp/pkg/config"
)

const (
	portalBus  = "org.freedesktop.portal.Desktop"
	portalPath = "/org/freedesktop/portal/desktop"

	// org.freedesktop.appearance color-scheme values.
	schemeNoPreference = uint32(0)
	schemePreferDark   = uint32(1)
	schemePreferLight  = uint32(2)

	gsettingsTimeout = 500 * time.Millisecond
)

// Detector answers "is the desktop in dark mode?" with a TTL cache.
// Detection order: configured override, settings portal over D-Bus,
// gsettings, then dark as the default. Safe for concurrent use; the
// indicator workers share one instance.
type Detector struct {
	cfg       *config.Store
	gsettings string // resolved binary path, "" when absent

	mu     sync.Mutex
	cached bool
	dark   bool
	at     time.Time

	now        func() time.Time
	readPortal func(ctx context.Context) (bool, error)
}

// NewDetector creates a detector. gsettingsPath may be empty when the
// binary is not installed.
func NewDetector(cfg *config.Store, gsettingsPath string) *Detector {
	return &Detector{
		cfg:        cfg,
		gsettings:  gsettingsPath,
		now:        time.Now,
		readPortal: portalColorScheme,
	}
}

// IsDark reports whether the desktop prefers a dark theme.
func (d *Detector) IsDark(ctx context.Context) bool {
	snap := d.cfg.Snapshot()
	switch snap.Theme.Mode {
	case "dark":
		return true
	case "light":
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if d.cached && now.Sub(d.at) < snap.Theme.CacheTTL.Std() {
		return d.dark
	}

	dark := d.detect(ctx)
	d.cached = true
	d.dark = dark
	d.at = now
	return dark
}

// Color resolves a palette color name against the active palette.
func (d *Detector) Color(ctx context.Context, name string) colorful.Color {
	if d.IsDark(ctx) {
		return Lookup(Mocha, name)
	}
	return Lookup(Latte, name)
}

func (d *Detector) detect(ctx context.Context) bool {
	if dark, err := d.readPortal(ctx); err == nil {
		return dark
	} else {
		log.Debug().Err(err).Msg("settings portal unavailable")
	}

	if d.gsettings != "" {
		if scheme, err := d.gsetting(ctx, "color-scheme"); err == nil {
			switch {
			case strings.Contains(scheme, "dark"):
				return true
			case strings.Contains(scheme, "light"):
				return false
			}
		}
		if gtkTheme, err := d.gsetting(ctx, "gtk-theme"); err == nil {
			return strings.Contains(gtkTheme, "dark")
		}
	}

	// No signal from anywhere: assume dark.
	return true
}

func (d *Detector) gsetting(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, gsettingsTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, d.gsettings,
		"get", "org.gnome.desktop.interface", key).Output()
	if err != nil {
		return "", fmt.Errorf("gsettings get %s: %w", key, err)
	}
	return strings.ToLower(strings.Trim(strings.TrimSpace(string(out)), "'")), nil
}

// portalColorScheme reads org.freedesktop.appearance color-scheme from
// the XDG settings portal on an ephemeral session-bus connection.
func portalColorScheme(ctx context.Context) (bool, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return false, fmt.Errorf("connect session bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(portalBus, dbus.ObjectPath(portalPath))
	var out dbus.Variant
	err = obj.CallWithContext(ctx, "org.freedesktop.portal.Settings.Read", 0,
		"org.freedesktop.appearance", "color-scheme").Store(&out)
	if err != nil {
		return false, fmt.Errorf("portal settings read: %w", err)
	}

	// Read wraps the value in a variant of a variant.
	value := out.Value()
	if inner, ok := value.(dbus.Variant); ok {
		value = inner.Value()
	}
	scheme, ok := value.(uint32)
	if !ok {
		return false, fmt.Errorf("unexpected color-scheme type %T", value)
	}
	return scheme == schemePreferDark, nil
}
