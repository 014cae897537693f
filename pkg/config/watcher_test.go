package config

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, `
[monitor_switch]
shift_threshold = 80
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	store := NewStore(path, cfg)

	var applied atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Watch(ctx, store, func() { applied.Add(1) })

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`
[monitor_switch]
shift_threshold = 120
`), 0o644))

	require.Eventually(t, func() bool {
		return store.Snapshot().MonitorSwitch.ShiftThreshold == 120
	}, 5*time.Second, 50*time.Millisecond)
	assert.Eventually(t, func() bool {
		return applied.Load() >= 1
	}, time.Second, 10*time.Millisecond)
}

func TestWatchWithoutPathReturns(t *testing.T) {
	store := NewStore("", Default())

	done := make(chan struct{})
	go func() {
		defer close(done)
		Watch(context.Background(), store, nil)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch with no path should return immediately")
	}
}
