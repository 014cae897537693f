package indicator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mousewarp/mousewarp/pkg/config"
	"github.com/mousewarp/mousewarp/pkg/theme"
)

type fakeRenderer struct {
	mu       sync.Mutex
	rendered []Request
	colors   []colorful.Color
}

func (f *fakeRenderer) Render(ctx context.Context, req Request, color colorful.Color, tun config.Highlight) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rendered = append(f.rendered, req)
	f.colors = append(f.colors, color)
	return nil
}

func (f *fakeRenderer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rendered)
}

func newTestPresenter(t *testing.T, queueDepth int) (*Presenter, *fakeRenderer) {
	t.Helper()
	cfg := config.Default()
	cfg.Theme.Mode = "dark"
	cfg.Highlight.QueueDepth = queueDepth
	store := config.NewStore("", cfg)
	renderer := &fakeRenderer{}
	return NewPresenter(store, theme.NewDetector(store, ""), renderer), renderer
}

func TestPresenterRendersRequests(t *testing.T) {
	p, renderer := newTestPresenter(t, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run(ctx)
	}()

	p.Present(Request{Kind: KindCornerHighlight, X: 100, Y: 100, Color: "peach"})
	require.Eventually(t, func() bool { return renderer.count() == 1 }, 2*time.Second, 10*time.Millisecond)

	renderer.mu.Lock()
	assert.Equal(t, theme.Mocha["peach"], renderer.colors[0])
	renderer.mu.Unlock()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}

func TestPresenterDropsWhenQueueFull(t *testing.T) {
	// Run is not started, so nothing drains the queue.
	p, renderer := newTestPresenter(t, 2)

	for i := 0; i < 5; i++ {
		p.Present(Request{Kind: KindCornerHighlight, X: i})
	}
	assert.Len(t, p.queue, 2, "overflow is dropped, not blocked on")
	assert.Zero(t, renderer.count())
}

func TestDiscardIsASink(t *testing.T) {
	var s Sink = Discard{}
	s.Present(Request{Kind: KindEdgeFlash})
}
