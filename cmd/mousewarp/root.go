package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mousewarp/mousewarp/pkg/config"
)

var configPath string

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mousewarp",
		Short: "Mousewarp",
		Long:  "Screen edge wrapping, monitor switching and accelerated pointer motion for multi-monitor X11 desktops.",
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(),
		"path to the TOML configuration file")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.TimeOnly,
	}).Level(lvl).With().Timestamp().Logger()
}
