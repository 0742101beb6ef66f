package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/pkg/logging"
	"github.com/taigrr/scanline/pkg/render"
	"github.com/taigrr/scanline/pkg/scene"
)

const defaultOutput = "frame.png"

func newRenderCmd() *cobra.Command {
	var (
		o      overrides
		out    string
		gizmos bool
	)
	cmd := &cobra.Command{
		Use:   "render <scene.toml>",
		Short: "Render one frame to a PNG, WebP or BMP file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scene.Load(args[0])
			if err != nil {
				return err
			}
			if err := o.apply(cmd, s); err != nil {
				return err
			}
			if out == "" {
				out = s.Output
			}
			if out == "" {
				out = defaultOutput
			}
			return renderFrame(s, out, gizmos)
		},
	}
	o.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output image (.png, .webp or .bmp)")
	cmd.Flags().BoolVar(&gizmos, "gizmos", false, "draw the world axes and light positions and cones")
	return cmd
}

func renderFrame(s *scene.Scene, out string, gizmos bool) error {
	r, err := render.NewRenderer(s.Width, s.Height)
	if err != nil {
		return err
	}
	r.ParallelLights = s.ParallelLights
	s.Camera.SetAspectRatio(float64(s.Width) / float64(s.Height))

	start := time.Now()
	bm, err := r.Render(s.Camera, s.Lights, s.Meshes(), s.Mode, s.Illumination)
	if err != nil {
		return err
	}
	if gizmos {
		render.NewOverlay(s.Camera, bm).DrawGizmos(s.Lights, 1)
	}
	if err := bm.Save(out); err != nil {
		return err
	}

	logging.Logger().Info("frame written",
		"path", out,
		"mode", s.Mode,
		"size", bm.Width*bm.Height,
		"triangles", r.Stats.TrianglesDrawn,
		"culled", r.Stats.TrianglesCulled,
		"elapsed", time.Since(start),
	)
	return nil
}
