package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mousewarp/mousewarp/pkg/config"
	"github.com/mousewarp/mousewarp/pkg/display"
	"github.com/mousewarp/mousewarp/pkg/geometry"
	"github.com/mousewarp/mousewarp/pkg/theme"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Probe the display, helper binaries and theme detection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd)
		},
	}
}

func runCheck(cmd *cobra.Command) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	setupLogging(cfg.General.LogLevel)
	store := config.NewStore(configPath, cfg)
	fmt.Fprintf(out, "config:      %s\n", configPath)

	x, err := display.ConnectX11()
	if err != nil {
		return fmt.Errorf("connect display: %w", err)
	}
	defer x.Close()
	fmt.Fprintln(out, "display:     ok")

	geo := geometry.NewModel(x)
	geo.Refresh(ctx, true)
	fmt.Fprintf(out, "monitors:    %d (bounds %s)\n", geo.Count(), geo.Bounds())
	for i, r := range geo.Monitors() {
		fmt.Fprintf(out, "  monitor %d: %s\n", i, r)
	}

	sample, err := x.Sample(ctx)
	if err != nil {
		fmt.Fprintf(out, "pointer:     FAILED (%v)\n", err)
	} else {
		fmt.Fprintf(out, "pointer:     (%d, %d) on monitor %d\n",
			sample.X, sample.Y, geo.MonitorAt(sample.X, sample.Y))
	}

	probe := display.ProbeBinaries()
	for _, name := range []string{"gsettings", "xdotool"} {
		status := "not found (optional)"
		if probe.Has(name) {
			status = probe.Path(name)
		}
		fmt.Fprintf(out, "%-12s %s\n", name+":", status)
	}

	colors := theme.NewDetector(store, probe.Path("gsettings"))
	mode := "light"
	if colors.IsDark(ctx) {
		mode = "dark"
	}
	fmt.Fprintf(out, "theme:       %s (mode %s)\n", mode, cfg.Theme.Mode)

	return nil
}
