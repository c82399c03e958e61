package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/imageio"
)

func newNewCmd(g *globals) *cobra.Command {
	var (
		width, height int
		output        string
		scale         int
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Write a blank document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("width") {
				width = cfg.Document.Width
			}
			if !cmd.Flags().Changed("height") {
				height = cfg.Document.Height
			}

			opts := append(cfg.Options(), paint.WithStore(&imageio.FileStore{Scale: scale}))
			e, err := paint.NewEngine(width, height, opts...)
			if err != nil {
				return err
			}
			if err := e.Save(output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", output, width, height)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "canvas width (default from settings)")
	cmd.Flags().IntVar(&height, "height", 0, "canvas height (default from settings)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output image file")
	cmd.Flags().IntVar(&scale, "scale", 1, "enlarge the saved image by this factor")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
