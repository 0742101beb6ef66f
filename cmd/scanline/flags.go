package main

import (
	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/pkg/render"
	"github.com/taigrr/scanline/pkg/scene"
)

// overrides are the scene settings a flag can replace. Only flags the user
// actually set are applied.
type overrides struct {
	mode      string
	width     int
	height    int
	shadowRes int
	parallel  bool
}

func (o *overrides) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.mode, "mode", "", "shading mode: depth, wireframe, normal, diffuse, lit-static, lit-dynamic")
	f.IntVar(&o.width, "width", 0, "frame width in pixels")
	f.IntVar(&o.height, "height", 0, "frame height in pixels")
	f.IntVar(&o.shadowRes, "shadow-res", 0, "light depth map resolution")
	f.BoolVar(&o.parallel, "parallel-lights", false, "refresh light maps concurrently")
}

func (o *overrides) apply(cmd *cobra.Command, s *scene.Scene) error {
	f := cmd.Flags()
	if f.Changed("mode") {
		mode, err := render.ParseMode(o.mode)
		if err != nil {
			return err
		}
		s.Mode = mode
	}
	if f.Changed("width") {
		s.Width = o.width
	}
	if f.Changed("height") {
		s.Height = o.height
	}
	if s.Width <= 0 || s.Height <= 0 {
		return render.ErrInvalidResolution
	}
	if f.Changed("shadow-res") {
		if o.shadowRes <= 0 {
			return render.ErrInvalidResolution
		}
		s.Illumination.ShadowResolution = o.shadowRes
	}
	if f.Changed("parallel-lights") {
		s.ParallelLights = o.parallel
	}
	return nil
}
