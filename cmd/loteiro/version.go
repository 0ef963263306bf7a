package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the loteiro version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("loteiro %s\n", version)
	},
}
