package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/paint/colorwheel"
	"github.com/gogpu/paint/imageio"
)

func newWheelCmd() *cobra.Command {
	var (
		output     string
		radius     int
		brightness float64
	)
	cmd := &cobra.Command{
		Use:   "wheel",
		Short: "Render the color wheel to an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := colorwheel.New(radius)
			if err != nil {
				return err
			}
			w.SetBrightness(brightness)

			var fs imageio.FileStore
			if err := fs.Save(output, w.Image()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (radius %d, brightness %.2f)\n",
				output, w.Radius(), w.Brightness())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output image file")
	cmd.Flags().IntVar(&radius, "radius", 128, "wheel radius in pixels")
	cmd.Flags().Float64Var(&brightness, "brightness", 1, "brightness in [0, 1]")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
