package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/imageio"
)

// imageStats summarizes the pixels of a document.
type imageStats struct {
	width, height int
	opaque        int
	colors        int
	top           paint.Color
	topCount      int
}

func collectStats(s *paint.Surface) imageStats {
	st := imageStats{width: s.Width(), height: s.Height()}
	counts := make(map[paint.Color]int)
	for _, c := range s.Pix() {
		counts[c]++
		if c.A() == 0xFF {
			st.opaque++
		}
	}
	st.colors = len(counts)
	for c, n := range counts {
		if n > st.topCount || (n == st.topCount && c < st.top) {
			st.top, st.topCount = c, n
		}
	}
	return st
}

func newInfoCmd() *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "info FILE",
		Short: "Describe an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := language.Parse(lang)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Clean(args[0]))
			if err != nil {
				return err
			}
			img, format, err := imageio.Decode(data)
			if err != nil {
				return err
			}
			s, err := paint.SurfaceFromImage(img, paint.White)
			if err != nil {
				return err
			}
			st := collectStats(s)

			p := message.NewPrinter(tag)
			out := cmd.OutOrStdout()
			p.Fprintf(out, "%s: %v, %d bytes\n", args[0], format, len(data))
			p.Fprintf(out, "size:   %d x %d (%d pixels)\n", st.width, st.height, st.width*st.height)
			p.Fprintf(out, "opaque: %d pixels\n", st.opaque)
			p.Fprintf(out, "colors: %d distinct, most common %v (%d pixels)\n", st.colors, st.top, st.topCount)
			return nil
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "en", "language tag for number formatting")
	return cmd
}
