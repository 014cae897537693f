package theme

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mousewarp/mousewarp/pkg/config"
)

func TestLookupFallsBackToSky(t *testing.T) {
	assert.Equal(t, Mocha["sky"], Lookup(Mocha, "chartreuse"))
	assert.Equal(t, Latte["mauve"], Lookup(Latte, "mauve"))
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("peach"))
	assert.False(t, Known("chartreuse"))
}

func TestPalettesCoverSameNames(t *testing.T) {
	require.Equal(t, len(Mocha), len(Latte))
	for name := range Mocha {
		_, ok := Latte[name]
		assert.True(t, ok, "missing from latte: %s", name)
	}
}

func storeWithMode(mode string) *config.Store {
	cfg := config.Default()
	cfg.Theme.Mode = mode
	return config.NewStore("", cfg)
}

func TestDetectorModeOverrides(t *testing.T) {
	calls := 0
	d := NewDetector(storeWithMode("dark"), "")
	d.readPortal = func(ctx context.Context) (bool, error) {
		calls++
		return false, nil
	}
	assert.True(t, d.IsDark(context.Background()))
	assert.Equal(t, 0, calls, "overrides never touch the portal")

	d.cfg = storeWithMode("light")
	assert.False(t, d.IsDark(context.Background()))
	assert.Equal(t, 0, calls)
}

func TestDetectorPortalAndCache(t *testing.T) {
	now := time.Unix(1000, 0)
	calls := 0
	portalDark := true

	d := NewDetector(storeWithMode("auto"), "")
	d.now = func() time.Time { return now }
	d.readPortal = func(ctx context.Context) (bool, error) {
		calls++
		return portalDark, nil
	}

	require.True(t, d.IsDark(context.Background()))
	require.Equal(t, 1, calls)

	// Within the TTL the cached answer is served even though the portal
	// would now say otherwise.
	portalDark = false
	now = now.Add(2 * time.Second)
	assert.True(t, d.IsDark(context.Background()))
	assert.Equal(t, 1, calls)

	// Past the TTL the portal is consulted again.
	now = now.Add(5 * time.Second)
	assert.False(t, d.IsDark(context.Background()))
	assert.Equal(t, 2, calls)
}

func TestDetectorDefaultsToDarkWithoutSignals(t *testing.T) {
	d := NewDetector(storeWithMode("auto"), "")
	d.readPortal = func(ctx context.Context) (bool, error) {
		return false, errors.New("no portal on this bus")
	}
	// No portal and no gsettings binary: dark wins.
	assert.True(t, d.IsDark(context.Background()))
}

func TestDetectorColorPicksPalette(t *testing.T) {
	d := NewDetector(storeWithMode("dark"), "")
	assert.Equal(t, Mocha["peach"], d.Color(context.Background(), "peach"))

	d = NewDetector(storeWithMode("light"), "")
	assert.Equal(t, Latte["peach"], d.Color(context.Background(), "peach"))
}
