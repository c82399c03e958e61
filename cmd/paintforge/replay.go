package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/imageio"
	"github.com/gogpu/paint/script"
)

func newReplayCmd(g *globals) *cobra.Command {
	var (
		output string
		base   string
		scale  int
	)
	cmd := &cobra.Command{
		Use:   "replay SCRIPT",
		Short: "Replay a YAML input script and save the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			sc, err := script.ParseFile(args[0])
			if err != nil {
				return err
			}

			opts := append(cfg.Options(), paint.WithStore(&imageio.FileStore{Scale: scale}))
			e, err := paint.NewEngine(cfg.Document.Width, cfg.Document.Height, opts...)
			if err != nil {
				return err
			}
			if base != "" {
				if err := e.Open(base); err != nil {
					return err
				}
			}

			loop := paint.NewLoop(e, cfg.TickInterval())
			if err := replay(cmd.Context(), loop, sc, output); err != nil {
				return err
			}
			s := e.Surface()
			fmt.Fprintf(cmd.OutOrStdout(), "replayed %d events, wrote %s (%dx%d)\n",
				len(sc.Events), output, s.Width(), s.Height())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output image file")
	cmd.Flags().StringVar(&base, "open", "", "start from this image instead of a blank document")
	cmd.Flags().IntVar(&scale, "scale", 1, "enlarge the saved image by this factor")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

// replay runs loop while sc is fed through it, then saves the document
// from the loop goroutine and stops the loop.
func replay(ctx context.Context, loop *paint.Loop, sc *script.Script, output string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	grp, gctx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		err := loop.Run(gctx)
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil
		}
		return err
	})
	grp.Go(func() error {
		defer cancel()
		if err := sc.Run(gctx, loop); err != nil {
			return err
		}
		var saveErr error
		if err := loop.Do(gctx, func(e *paint.Engine) { saveErr = e.Save(output) }); err != nil {
			return err
		}
		return saveErr
	})
	return grp.Wait()
}
