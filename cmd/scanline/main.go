// scanline - CPU scanline renderer
// Render TOML scenes to image files or view them live in the terminal.
//
//	scanline render scene.toml --out frame.png
//	scanline view scene.toml
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/pkg/logging"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:   "scanline",
		Short: "Software scanline renderer with shadow-mapped lights",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logging.SetLevel(level)
			return nil
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.AddCommand(newRenderCmd(), newViewCmd())
	return root
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version))
	cancel()
	if err != nil {
		os.Exit(1)
	}
}
