package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mousewarp/mousewarp/pkg/config"
	"github.com/mousewarp/mousewarp/pkg/display"
	"github.com/mousewarp/mousewarp/pkg/engine"
	"github.com/mousewarp/mousewarp/pkg/focus"
	"github.com/mousewarp/mousewarp/pkg/geometry"
	"github.com/mousewarp/mousewarp/pkg/indicator"
	"github.com/mousewarp/mousewarp/pkg/theme"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the mousewarp daemon",
		Long:  "Poll the pointer and apply edge wrapping, monitor switching, acceleration and crossing indicators. Send SIGHUP to reload the configuration.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDaemon(cmd.Context())
		},
	}
}

func runDaemon(ctx context.Context) error {
	// A malformed configuration is fatal here; once running, bad
	// reloads are rejected and the previous snapshot stays active.
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	setupLogging(cfg.General.LogLevel)
	store := config.NewStore(configPath, cfg)

	probe := display.ProbeBinaries()

	// When launched by a session manager the X server may not accept
	// connections yet.
	x, err := retry.DoWithData(func() (*display.X11, error) {
		return display.ConnectX11()
	},
		retry.Attempts(5),
		retry.Delay(time.Second),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Err(err).Uint("attempt", n+1).Msg("display not ready")
		}))
	if err != nil {
		return fmt.Errorf("connect display: %w", err)
	}
	defer x.Close()

	if probe.Has("xdotool") {
		x.SetFallbackMover(display.NewExecMover(probe.Path("xdotool")))
	}

	geo := geometry.NewModel(x)
	geo.Refresh(ctx, true)

	colors := theme.NewDetector(store, probe.Path("gsettings"))
	presenter := indicator.NewPresenter(store, colors, indicator.NewX11Renderer())

	orch, err := engine.New(engine.Options{
		Config:     store,
		Geometry:   geo,
		Pointer:    x,
		Events:     x,
		Indicators: presenter,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go presenter.Run(ctx)
	go config.Watch(ctx, store, orch.RequestRefresh)
	go reloadOnHangup(ctx, store, orch)

	if cfg.FocusFollow.Enabled {
		relay := focus.NewListener(store, focusMover(ctx, x, geo), focus.SocketPath(cfg))
		go func() {
			if err := relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn().Err(err).Msg("focus relay stopped")
			}
		}()
	}

	log.Info().
		Str("config", configPath).
		Int("monitors", geo.Count()).
		Msg("mousewarp started, send SIGHUP to reload")

	if err := orch.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("shutting down")
	return nil
}

func reloadOnHangup(ctx context.Context, store *config.Store, orch *engine.Orchestrator) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := store.Reload(); err == nil {
				orch.RequestRefresh()
			}
		}
	}
}

// focusMover picks the pointer mover for the focus relay: the Wayland
// virtual pointer when running in a Wayland session (the engine itself
// polls through XWayland), otherwise the X11 connection.
func focusMover(ctx context.Context, x *display.X11, geo *geometry.Model) display.Mover {
	if os.Getenv("XDG_SESSION_TYPE") != "wayland" {
		return x
	}
	bounds := geo.Bounds()
	if bounds.Empty() {
		return x
	}
	wl, err := display.NewWaylandMover(ctx, bounds.Width(), bounds.Height())
	if err != nil {
		log.Warn().Err(err).Msg("wayland virtual pointer unavailable, focus relay will use X11")
		return x
	}
	return wl
}
