package indicator

import (
	"context"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/mousewarp/mousewarp/pkg/config"
	"github.com/mousewarp/mousewarp/pkg/theme"
)

// Renderer draws one indicator to completion.
type Renderer interface {
	Render(ctx context.Context, req Request, color colorful.Color, tun config.Highlight) error
}

// Presenter is the bounded fire-and-forget Sink in front of a Renderer.
// Requests pass through a fixed-depth queue into a worker pool; when the
// queue is full the request is dropped, never blocking the engine tick.
// Workers read only the config snapshot taken at dequeue time, so an
// in-flight animation finishes under the tunables it started with.
type Presenter struct {
	cfg      *config.Store
	colors   *theme.Detector
	renderer Renderer
	queue    chan Request
}

// NewPresenter creates a presenter sized from the current configuration.
func NewPresenter(cfg *config.Store, colors *theme.Detector, renderer Renderer) *Presenter {
	return &Presenter{
		cfg:      cfg,
		colors:   colors,
		renderer: renderer,
		queue:    make(chan Request, cfg.Snapshot().Highlight.QueueDepth),
	}
}

// Present enqueues a request. It never blocks; a full queue drops the
// request.
func (p *Presenter) Present(req Request) {
	select {
	case p.queue <- req:
	default:
		log.Debug().Stringer("kind", req.Kind).Msg("indicator queue full, dropping request")
	}
}

// Run consumes the queue until ctx is cancelled, then waits for in-flight
// animations to finish.
func (p *Presenter) Run(ctx context.Context) {
	workers := pool.New().WithMaxGoroutines(p.cfg.Snapshot().Highlight.Workers)
	defer workers.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case req := <-p.queue:
			tun := p.cfg.Snapshot().Highlight
			workers.Go(func() {
				color := p.colors.Color(ctx, req.Color)
				if err := p.renderer.Render(ctx, req, color, tun); err != nil {
					log.Debug().Err(err).Stringer("kind", req.Kind).Msg("indicator render failed")
				}
			})
		}
	}
}
