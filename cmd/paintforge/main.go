// Command paintforge creates, replays and inspects pixel-art documents.
//
// Usage:
//
//	paintforge new -o blank.png --width 64 --height 64
//	paintforge replay strokes.yaml -o out.png [--open base.png] [--scale 4]
//	paintforge wheel -o wheel.png --radius 128
//	paintforge info out.png
//	paintforge config init
//
// Settings come from the user config file (see "paintforge config path")
// or from --config.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "paintforge:", err)
		os.Exit(1)
	}
}

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	verbose    bool
	configPath string
	stderr     io.Writer
}

// loadConfig reads --config when given, else the user settings file.
func (g *globals) loadConfig() (*config.Config, error) {
	if g.configPath != "" {
		return config.LoadFile(g.configPath)
	}
	return config.Load()
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globals{stderr: stderr}
	root := &cobra.Command{
		Use:           "paintforge",
		Short:         "Pixel-art paint engine tools",
		Version:       paint.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if g.verbose {
				paint.SetLogger(slog.New(slog.NewTextHandler(g.stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			} else {
				paint.SetLogger(nil)
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log engine activity to stderr")
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "settings file (default: user config dir)")

	root.AddCommand(
		newNewCmd(g),
		newReplayCmd(g),
		newWheelCmd(),
		newInfoCmd(),
		newConfigCmd(g),
	)
	return root
}
