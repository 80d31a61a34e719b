// Command toastify serves the toast demo and renders toasts from the
// command line.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/toastify-dev/toastify/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "toastify",
		Short: "Server-driven toast notifications",
		Long: `Toastify renders toast notifications on the server.

Each browser tab holds a WebSocket session; the server owns every
toast, runs its timers and animation frames, and streams the rendered
markup back to a thin client.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		renderCmd(),
		versionCmd(),
	)
	return rootCmd
}
