package geometry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnum struct {
	monitors []Rect
	err      error
	root     Rect
	rootErr  error
	calls    int
}

func (f *fakeEnum) Monitors(ctx context.Context) ([]Rect, error) {
	f.calls++
	return f.monitors, f.err
}

func (f *fakeEnum) RootGeometry(ctx context.Context) (Rect, error) {
	return f.root, f.rootErr
}

func testClock(start time.Time) (func() time.Time, func(time.Duration)) {
	now := start
	return func() time.Time { return now },
		func(d time.Duration) { now = now.Add(d) }
}

func TestModelRefreshSortsAndUnions(t *testing.T) {
	enum := &fakeEnum{monitors: []Rect{
		{X1: 1920, Y1: 0, X2: 3840, Y2: 1080},
		{X1: 0, Y1: 0, X2: 1920, Y2: 1080},
	}}
	m := NewModel(enum)

	changed := m.Refresh(context.Background(), true)
	require.True(t, changed)
	require.Equal(t, 2, m.Count())
	assert.Equal(t, Rect{X1: 0, Y1: 0, X2: 1920, Y2: 1080}, m.Monitor(0))
	assert.Equal(t, Rect{X1: 1920, Y1: 0, X2: 3840, Y2: 1080}, m.Monitor(1))
	assert.Equal(t, Rect{X1: 0, Y1: 0, X2: 3840, Y2: 1080}, m.Bounds())
}

func TestModelRefreshDebounce(t *testing.T) {
	enum := &fakeEnum{monitors: []Rect{{X1: 0, Y1: 0, X2: 1920, Y2: 1080}}}
	m := NewModel(enum)
	clock, advance := testClock(time.Unix(1000, 0))
	m.now = clock

	require.True(t, m.Refresh(context.Background(), false))
	require.Equal(t, 1, enum.calls)

	// A second un-forced refresh inside the window is a no-op even when
	// the layout actually changed underneath.
	enum.monitors = []Rect{{X1: 0, Y1: 0, X2: 2560, Y2: 1440}}
	advance(100 * time.Millisecond)
	assert.False(t, m.Refresh(context.Background(), false))
	assert.Equal(t, 1, enum.calls)

	// Forced refreshes bypass the debounce.
	assert.True(t, m.Refresh(context.Background(), true))
	assert.Equal(t, 2, enum.calls)

	advance(250 * time.Millisecond)
	assert.False(t, m.Refresh(context.Background(), false), "same layout, no change")
	assert.Equal(t, 3, enum.calls)
}

func TestModelRefreshFallsBackToRoot(t *testing.T) {
	enum := &fakeEnum{
		err:  errors.New("randr extension missing"),
		root: Rect{X1: 0, Y1: 0, X2: 1920, Y2: 1080},
	}
	m := NewModel(enum)

	require.True(t, m.Refresh(context.Background(), true))
	require.Equal(t, 1, m.Count())
	assert.Equal(t, enum.root, m.Monitor(0))
}

func TestModelRefreshKeepsLastBoundsWhenEverythingFails(t *testing.T) {
	enum := &fakeEnum{monitors: []Rect{{X1: 0, Y1: 0, X2: 1920, Y2: 1080}}}
	m := NewModel(enum)
	require.True(t, m.Refresh(context.Background(), true))

	enum.monitors = nil
	enum.rootErr = errors.New("connection lost")
	assert.False(t, m.Refresh(context.Background(), true))
	assert.Equal(t, 1, m.Count(), "last-known layout survives the outage")
	assert.Equal(t, Rect{X1: 0, Y1: 0, X2: 1920, Y2: 1080}, m.Bounds())
}

func TestModelMonitorAt(t *testing.T) {
	enum := &fakeEnum{monitors: []Rect{
		{X1: 0, Y1: 0, X2: 1920, Y2: 1080},
		{X1: 1920, Y1: 0, X2: 3840, Y2: 1080},
	}}
	m := NewModel(enum)
	require.True(t, m.Refresh(context.Background(), true))

	assert.Equal(t, 0, m.MonitorAt(0, 0))
	assert.Equal(t, 0, m.MonitorAt(1919, 1079))
	assert.Equal(t, 1, m.MonitorAt(1920, 0))

	// Outside every rectangle the nearest center wins.
	assert.Equal(t, 1, m.MonitorAt(3900, 540))
	assert.Equal(t, 0, m.MonitorAt(-50, 2000))
}

func TestModelMonitorClampsIndex(t *testing.T) {
	enum := &fakeEnum{monitors: []Rect{
		{X1: 0, Y1: 0, X2: 1920, Y2: 1080},
		{X1: 1920, Y1: 0, X2: 3840, Y2: 1080},
	}}
	m := NewModel(enum)
	require.True(t, m.Refresh(context.Background(), true))

	assert.Equal(t, m.Monitor(0), m.Monitor(-3))
	assert.Equal(t, m.Monitor(1), m.Monitor(99))
}
