package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mousewarp/mousewarp/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(*cobra.Command, []string) {
			fmt.Println(version.Get())
		},
	}
}
