package scene

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/taigrr/scanline/pkg/logging"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

// Defaults for values a scene may leave out.
const (
	DefaultWidth   = 320
	DefaultHeight  = 240
	DefaultFOV     = 90.0
	DefaultChecker = 64
	DefaultCell    = 8
)

// Scene is a built, renderable scene.
type Scene struct {
	Path           string
	Mode           render.Mode
	Width          int
	Height         int
	Output         string
	ParallelLights bool
	Illumination   render.Illumination
	Camera         *render.Camera
	Lights         []*render.Light
	Objects        []*models.Instance

	// Assets lists every file the scene was built from, the scene file
	// first.
	Assets []string
}

// Meshes returns the objects as renderer input.
func (s *Scene) Meshes() []render.MeshInstance {
	out := make([]render.MeshInstance, len(s.Objects))
	for i, o := range s.Objects {
		out[i] = o
	}
	return out
}

// Load reads the scene file at path and builds it. Relative asset paths are
// resolved against the file's directory.
func Load(path string) (*Scene, error) {
	cfg, err := ReadConfig(path)
	if err != nil {
		return nil, err
	}
	s, err := Build(cfg, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("build scene %s: %w", path, err)
	}
	s.Path = path
	s.Assets = append([]string{path}, s.Assets...)
	logging.Logger().Info("scene loaded",
		"path", path,
		"mode", s.Mode,
		"lights", len(s.Lights),
		"objects", len(s.Objects),
	)
	return s, nil
}

// builder carries state shared while building one scene.
type builder struct {
	dir    string
	meshes map[string]*models.Mesh
	tex    map[string]*render.Texture
	assets []string
}

// Build turns a decoded config into a scene.
func Build(cfg *Config, dir string) (*Scene, error) {
	b := &builder{
		dir:    dir,
		meshes: make(map[string]*models.Mesh),
		tex:    make(map[string]*render.Texture),
	}

	s := &Scene{
		Width:          cfg.Render.Width,
		Height:         cfg.Render.Height,
		Output:         cfg.Render.Output,
		ParallelLights: cfg.Render.ParallelLights,
		Mode:           render.ModeLitStatic,
	}
	if s.Width == 0 {
		s.Width = DefaultWidth
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	}
	if s.Width < 0 || s.Height < 0 {
		return nil, fmt.Errorf("%dx%d: %w", s.Width, s.Height, ErrInvalidSize)
	}
	if cfg.Render.Mode != "" {
		mode, err := render.ParseMode(cfg.Render.Mode)
		if err != nil {
			return nil, err
		}
		s.Mode = mode
	}

	illum, err := buildIllumination(cfg.Illumination)
	if err != nil {
		return nil, fmt.Errorf("illumination: %w", err)
	}
	s.Illumination = illum

	cam, err := buildCamera(cfg.Camera, float64(s.Width)/float64(s.Height))
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	s.Camera = cam

	for i, lc := range cfg.Lights {
		l, err := buildLight(lc)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		s.Lights = append(s.Lights, l)
	}

	for i, oc := range cfg.Objects {
		o, err := b.object(oc)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, oc.Name, err)
		}
		s.Objects = append(s.Objects, o)
	}
	s.Assets = b.assets
	return s, nil
}

func buildIllumination(c IlluminationConfig) (render.Illumination, error) {
	illum := render.DefaultIllumination()
	if c.Zenith != "" {
		z, err := parseRGBA(c.Zenith)
		if err != nil {
			return illum, fmt.Errorf("zenith: %w", err)
		}
		illum.Zenith = z
	}
	if c.Ambient != "" {
		a, err := parseVec(c.Ambient)
		if err != nil {
			return illum, fmt.Errorf("ambient: %w", err)
		}
		illum.Ambient = a
	}
	if c.AmbientIntensity != nil {
		illum.AmbientIntensity = *c.AmbientIntensity
	}
	if c.ShadowResolution != 0 {
		illum.ShadowResolution = c.ShadowResolution
	}
	return illum, nil
}

func buildCamera(c CameraConfig, aspect float64) (*render.Camera, error) {
	cam := render.NewCamera()
	cam.SetAspectRatio(aspect)

	fov := c.FOV
	if fov == 0 {
		fov = DefaultFOV
	}
	cam.SetFOV(radians(fov))

	near, far := c.Near, c.Far
	if near == 0 {
		near = 0.1
	}
	if far == 0 {
		far = 1000
	}
	cam.SetClipPlanes(near, far)

	t, err := placement(c.Position, c.Target, c.Rotation)
	if err != nil {
		return nil, err
	}
	cam.SetPosition(t.Position)
	cam.SetRotation(t.Rotation)
	return cam, nil
}

func buildLight(c LightConfig) (*render.Light, error) {
	l := render.NewLight(c.Name)
	t, err := placement(c.Position, c.Target, c.Rotation)
	if err != nil {
		return nil, err
	}
	l.Transform = t
	if c.Angle != 0 {
		l.Angle = c.Angle
	}
	if c.Distance != 0 {
		l.Distance = c.Distance
	}
	if c.Color != "" {
		col, err := parseVec(c.Color)
		if err != nil {
			return nil, fmt.Errorf("color: %w", err)
		}
		l.Color = col
	}
	if c.Intensity != nil {
		l.Intensity = *c.Intensity
	}
	return l, nil
}

// placement builds a transform from a position and either a target to
// look at or Euler angles in degrees.
func placement(pos, target, rot []float64) (math3d.Transform, error) {
	t := math3d.NewTransform()
	if pos != nil {
		p, err := vec(pos)
		if err != nil {
			return t, fmt.Errorf("position: %w", err)
		}
		t = t.WithPosition(p)
	}
	switch {
	case target != nil:
		p, err := vec(target)
		if err != nil {
			return t, fmt.Errorf("target: %w", err)
		}
		t = t.LookAt(p, math3d.Up())
	case rot != nil:
		r, err := euler(rot)
		if err != nil {
			return t, fmt.Errorf("rotation: %w", err)
		}
		t = t.WithRotation(r)
	}
	return t, nil
}

func (b *builder) object(c ObjectConfig) (*models.Instance, error) {
	mesh, gltfTex, err := b.mesh(c)
	if err != nil {
		return nil, err
	}

	name := c.Name
	if name == "" {
		name = mesh.Name
	}
	in := models.NewInstance(name, mesh)

	if c.Position != nil {
		p, err := vec(c.Position)
		if err != nil {
			return nil, fmt.Errorf("position: %w", err)
		}
		in.Transform = in.Transform.WithPosition(p)
	}
	if c.Rotation != nil {
		r, err := euler(c.Rotation)
		if err != nil {
			return nil, fmt.Errorf("rotation: %w", err)
		}
		in.Transform = in.Transform.WithRotation(r)
	}
	if c.Scale != nil {
		s, err := vec(c.Scale)
		if err != nil {
			return nil, fmt.Errorf("scale: %w", err)
		}
		in.Transform = in.Transform.WithScale(s)
	}

	tex, err := b.texture(c)
	if err != nil {
		return nil, err
	}
	if tex == nil {
		tex = gltfTex
	}
	if tex != nil && c.Wrap != "" {
		wrap, err := parseWrap(c.Wrap)
		if err != nil {
			return nil, err
		}
		// Textures are shared between objects, so the wrap mode applies to
		// a copy.
		cp := *tex
		cp.Wrap = wrap
		tex = &cp
	}
	in.Tex = tex
	return in, nil
}

func (b *builder) mesh(c ObjectConfig) (*models.Mesh, *render.Texture, error) {
	size := c.Size
	if size == 0 {
		size = 1
	}
	switch strings.ToLower(c.Shape) {
	case "plane":
		return models.NewPlane(size), nil, nil
	case "cube", "":
		return models.NewCube(size), nil, nil
	case "gltf", "glb":
		if c.Path == "" {
			return nil, nil, ErrMissingPath
		}
		path := b.resolve(c.Path)
		if m, ok := b.meshes[path]; ok {
			return m, b.tex[path], nil
		}
		m, tex, err := models.LoadGLTF(path)
		if err != nil {
			return nil, nil, err
		}
		b.meshes[path] = m
		b.tex[path] = tex
		b.assets = append(b.assets, path)
		return m, tex, nil
	default:
		return nil, nil, fmt.Errorf("%q: %w", c.Shape, ErrUnknownShape)
	}
}

func (b *builder) texture(c ObjectConfig) (*render.Texture, error) {
	switch {
	case c.Texture != "":
		path := b.resolve(c.Texture)
		if t, ok := b.tex[path]; ok {
			return t, nil
		}
		t, err := render.LoadTexture(path)
		if err != nil {
			return nil, err
		}
		b.tex[path] = t
		b.assets = append(b.assets, path)
		return t, nil
	case c.Checker != nil:
		return checker(*c.Checker)
	case c.Color != "":
		col, err := parseRGBA(c.Color)
		if err != nil {
			return nil, fmt.Errorf("color: %w", err)
		}
		return render.SolidTexture(col), nil
	}
	return nil, nil
}

func checker(c CheckerConfig) (*render.Texture, error) {
	if len(c.Colors) != 2 {
		return nil, fmt.Errorf("got %d: %w", len(c.Colors), ErrCheckerColors)
	}
	a, err := parseRGBA(c.Colors[0])
	if err != nil {
		return nil, fmt.Errorf("checker: %w", err)
	}
	bc, err := parseRGBA(c.Colors[1])
	if err != nil {
		return nil, fmt.Errorf("checker: %w", err)
	}
	size, cell := c.Size, c.Cell
	if size == 0 {
		size = DefaultChecker
	}
	if cell == 0 {
		cell = DefaultCell
	}
	return render.NewCheckerTexture(size, size, cell, a, bc)
}

func (b *builder) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(b.dir, p)
}

func parseWrap(s string) (render.WrapMode, error) {
	switch strings.ToLower(s) {
	case "clamp":
		return render.WrapClamp, nil
	case "repeat":
		return render.WrapRepeat, nil
	}
	return render.WrapClamp, fmt.Errorf("unknown wrap mode %q", s)
}

func parseRGBA(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func parseVec(s string) (math3d.Vec3, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return math3d.Vec3{}, err
	}
	return math3d.V3(c.R, c.G, c.B), nil
}

func vec(v []float64) (math3d.Vec3, error) {
	if len(v) != 3 {
		return math3d.Vec3{}, fmt.Errorf("got %d: %w", len(v), ErrInvalidVector)
	}
	return math3d.V3(v[0], v[1], v[2]), nil
}

func euler(v []float64) (math3d.Quat, error) {
	a, err := vec(v)
	if err != nil {
		return math3d.Quat{}, err
	}
	return math3d.QuatFromEuler(radians(a.X), radians(a.Y), radians(a.Z)), nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
