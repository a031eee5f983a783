// Command allegro runs the classical music catalog API.
//
// @title        Allegro catalog API
// @version      1.0
// @description  Catalog of performers, composers, songwriters, pieces, releases and recordings.
// @BasePath     /
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is set at build time
	Version = "dev"

	rootCmd = &cobra.Command{
		Use:   "allegro",
		Short: "Classical music catalog service",
		Long: `allegro serves a catalog of performers, composers, songwriters, pieces,
releases and recordings over HTTP. Writes and searches require an admin
session; reads are public.

Configuration is read from the environment and an optional .env file.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
