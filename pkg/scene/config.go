// Package scene reads TOML scene files and turns them into the camera,
// lights and mesh instances the renderer draws.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

var (
	ErrInvalidVector = errors.New("vector must have 3 components")
	ErrUnknownShape  = errors.New("unknown shape")
	ErrMissingPath   = errors.New("gltf object needs a path")
	ErrInvalidSize   = errors.New("width and height must be positive")
	ErrCheckerColors = errors.New("checker needs exactly 2 colors")
)

// Config is the on-disk form of a scene.
type Config struct {
	Render       RenderConfig       `toml:"render"`
	Illumination IlluminationConfig `toml:"illumination"`
	Camera       CameraConfig       `toml:"camera"`
	Lights       []LightConfig      `toml:"lights"`
	Objects      []ObjectConfig     `toml:"objects"`
}

// RenderConfig holds the output settings CLI flags can override.
type RenderConfig struct {
	Mode           string `toml:"mode"`
	Width          int    `toml:"width"`
	Height         int    `toml:"height"`
	Output         string `toml:"output"`
	ParallelLights bool   `toml:"parallel_lights"`
}

type IlluminationConfig struct {
	Zenith           string   `toml:"zenith"`
	Ambient          string   `toml:"ambient"`
	AmbientIntensity *float64 `toml:"ambient_intensity"`
	ShadowResolution int      `toml:"shadow_resolution"`
}

// CameraConfig places the camera. Target wins over Rotation when both are
// set. Angles are in degrees.
type CameraConfig struct {
	Position []float64 `toml:"position"`
	Target   []float64 `toml:"target"`
	Rotation []float64 `toml:"rotation"`
	FOV      float64   `toml:"fov"`
	Near     float64   `toml:"near"`
	Far      float64   `toml:"far"`
}

type LightConfig struct {
	Name      string    `toml:"name"`
	Position  []float64 `toml:"position"`
	Target    []float64 `toml:"target"`
	Rotation  []float64 `toml:"rotation"`
	Angle     float64   `toml:"angle"`
	Distance  float64   `toml:"distance"`
	Color     string    `toml:"color"`
	Intensity *float64  `toml:"intensity"`
}

// ObjectConfig is one mesh instance. Shape is plane, cube or gltf. The
// texture comes from Texture, else Checker, else Color, else the glTF file.
type ObjectConfig struct {
	Name     string         `toml:"name"`
	Shape    string         `toml:"shape"`
	Path     string         `toml:"path"`
	Size     float64        `toml:"size"`
	Position []float64      `toml:"position"`
	Rotation []float64      `toml:"rotation"`
	Scale    []float64      `toml:"scale"`
	Texture  string         `toml:"texture"`
	Wrap     string         `toml:"wrap"`
	Color    string         `toml:"color"`
	Checker  *CheckerConfig `toml:"checker"`
}

// CheckerConfig describes a generated Size x Size checkerboard with square
// cells of Cell pixels alternating between two colours.
type CheckerConfig struct {
	Size   int      `toml:"size"`
	Cell   int      `toml:"cell"`
	Colors []string `toml:"colors"`
}

// Decode parses a scene. Unknown keys are rejected.
func Decode(data []byte) (*Config, error) {
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("line %d column %d: %w", row, col, err)
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return nil, fmt.Errorf("%s: %w", serr.String(), err)
		}
		return nil, err
	}
	return &cfg, nil
}

// ReadConfig reads and decodes the scene file at path.
func ReadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	cfg, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode scene %s: %w", path, err)
	}
	return cfg, nil
}
