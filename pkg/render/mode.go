package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Mode selects how the colour pass shades pixels.
type Mode int

const (
	ModeDepth      Mode = iota // gray levels by distance
	ModeWireframe              // triangle outlines
	ModeNormal                 // world normals as RGB
	ModeDiffuse                // unlit texture
	ModeLitStatic              // texture, lights and cached shadow maps
	ModeLitDynamic             // texture, lights and per-frame shadow maps
)

var modeNames = [...]string{
	ModeDepth:      "depth",
	ModeWireframe:  "wireframe",
	ModeNormal:     "normal",
	ModeDiffuse:    "diffuse",
	ModeLitStatic:  "lit-static",
	ModeLitDynamic: "lit-dynamic",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Lit reports whether the mode runs the lighting resolve.
func (m Mode) Lit() bool {
	return m == ModeLitStatic || m == ModeLitDynamic
}

// ParseMode returns the mode named s (case-insensitive).
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Modes lists every mode in key order.
func Modes() []Mode {
	out := make([]Mode, len(modeNames))
	for i := range out {
		out[i] = Mode(i)
	}
	return out
}

// DefaultShadowResolution is the shadow map side DefaultIllumination sets.
const DefaultShadowResolution = 2000

// Illumination holds the scene-wide lighting parameters.
type Illumination struct {
	Zenith           color.RGBA  // background colour
	Ambient          math3d.Vec3 // 0..1 per channel
	AmbientIntensity float64
	// ShadowResolution is the side of each light's depth map. The lit
	// modes reject values below 1.
	ShadowResolution int
}

// DefaultIllumination returns a dark blue sky with a faint white ambient.
func DefaultIllumination() Illumination {
	return Illumination{
		Zenith:           color.RGBA{R: 20, G: 24, B: 40, A: 255},
		Ambient:          math3d.V3(1, 1, 1),
		AmbientIntensity: 0.15,
		ShadowResolution: DefaultShadowResolution,
	}
}
