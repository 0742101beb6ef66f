package main

import (
	"context"
	"fmt"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/pkg/logging"
	"github.com/taigrr/scanline/pkg/render"
	"github.com/taigrr/scanline/pkg/scene"
)

const viewHelp = `Controls:
  Mouse drag / arrows / WASD  - Orbit the camera
  Scroll / + / -              - Zoom
  1-6                         - depth, wireframe, normal, diffuse, lit-static, lit-dynamic
  G                           - Toggle light gizmos
  L                           - Refresh light maps
  R                           - Reset view
  Esc                         - Quit`

func newViewCmd() *cobra.Command {
	var (
		o       overrides
		fps     int
		noWatch bool
	)
	cmd := &cobra.Command{
		Use:   "view <scene.toml>",
		Short: "View a scene in the terminal",
		Long:  "Render a scene live in the terminal with half-block pixels.\n\n" + viewHelp,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fps <= 0 {
				return fmt.Errorf("fps must be positive, got %d", fps)
			}
			apply := func(s *scene.Scene) error { return o.apply(cmd, s) }
			s, err := scene.Load(args[0])
			if err != nil {
				return err
			}
			if err := apply(s); err != nil {
				return err
			}
			v := &viewer{path: args[0], scene: s, apply: apply, fps: fps}
			return v.run(cmd.Context(), !noWatch)
		},
	}
	o.register(cmd)
	cmd.Flags().IntVar(&fps, "fps", 30, "target frames per second")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the scene when its files change")
	return cmd
}

// viewer is the state of one interactive session. Everything runs on the
// goroutine that called run.
type viewer struct {
	path  string
	scene *scene.Scene
	apply func(*scene.Scene) error
	fps   int

	term     *uv.Terminal
	renderer *render.Renderer
	orbit    *orbit
	watcher  *scene.Watcher

	gizmos       bool
	mouseDown    bool
	lastX, lastY int
}

const orbitStrength = 0.03

func (v *viewer) run(ctx context.Context, watch bool) error {
	v.term = uv.DefaultTerminal()
	width, height, err := v.term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	v.renderer, err = render.NewRenderer(width, height*2)
	if err != nil {
		return err
	}
	v.renderer.ParallelLights = v.scene.ParallelLights
	v.scene.Camera.SetAspectRatio(float64(width) / float64(height*2))
	v.orbit = newOrbit(v.scene.Camera, v.fps)

	var changes <-chan string
	if watch {
		v.watcher, err = scene.NewWatcher(v.scene.Assets, scene.DefaultDebounce)
		if err != nil {
			logging.Logger().Warn("file watching disabled", "err", err)
		} else {
			defer v.watcher.Close()
			changes = v.watcher.Changes()
		}
	}

	if err := v.term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	v.term.EnterAltScreen()
	v.term.HideCursor()
	v.term.Resize(width, height)

	fmt.Fprint(os.Stdout, "\x1b[?1002h") // button-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode
	defer v.cleanup()

	ticker := time.NewTicker(time.Second / time.Duration(v.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-v.term.Events():
			if v.handle(ev) {
				return nil
			}

		case path, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			v.reload(path)

		case <-ticker.C:
			if err := v.frame(); err != nil {
				return err
			}
		}
	}
}

func (v *viewer) cleanup() {
	fmt.Fprint(os.Stdout, "\x1b[?1002l")
	fmt.Fprint(os.Stdout, "\x1b[?1006l")
	v.term.ExitAltScreen()
	v.term.ShowCursor()
	v.term.Shutdown(context.Background())
}

func (v *viewer) frame() error {
	v.orbit.Step(v.scene.Camera)

	bm, err := v.renderer.Render(v.scene.Camera, v.scene.Lights, v.scene.Meshes(), v.scene.Mode, v.scene.Illumination)
	if err != nil {
		return err
	}
	if v.gizmos {
		render.NewOverlay(v.scene.Camera, bm).DrawGizmos(v.scene.Lights, 0.5)
	}

	v.term.Draw(bm)
	if err := v.term.Display(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

// reload rebuilds the scene after an edit. The camera, mode and size stay
// as the user left them; a scene that fails to load is reported and the
// old one kept.
func (v *viewer) reload(changed string) {
	log := logging.Logger()
	s, err := scene.Load(v.path)
	if err == nil {
		err = v.apply(s)
	}
	if err != nil {
		log.Warn("reload failed", "path", changed, "err", err)
		return
	}

	v.scene.Lights = s.Lights
	v.scene.Objects = s.Objects
	v.scene.Illumination = s.Illumination
	v.scene.Assets = s.Assets
	v.renderer.ParallelLights = s.ParallelLights
	v.renderer.InvalidateLightMaps()

	if v.watcher != nil {
		if err := v.watcher.Watch(s.Assets); err != nil {
			log.Warn("watch assets", "err", err)
		}
	}
	log.Info("scene reloaded", "changed", changed, "objects", len(s.Objects), "lights", len(s.Lights))
}

// handle applies one terminal event and reports whether to quit.
func (v *viewer) handle(ev uv.Event) bool {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		v.term.Erase()
		v.term.Resize(ev.Width, ev.Height)
		if err := v.renderer.Resize(ev.Width, ev.Height*2); err != nil {
			logging.Logger().Warn("resize", "err", err)
			return false
		}
		v.scene.Camera.SetAspectRatio(float64(ev.Width) / float64(ev.Height*2))

	case uv.KeyPressEvent:
		return v.key(ev)

	case uv.MouseClickEvent:
		v.mouseDown = true
		v.lastX, v.lastY = ev.X, ev.Y

	case uv.MouseReleaseEvent:
		v.mouseDown = false

	case uv.MouseMotionEvent:
		if v.mouseDown {
			dx := ev.X - v.lastX
			dy := ev.Y - v.lastY
			v.orbit.Impulse(-float64(dx)*orbitStrength, float64(dy)*orbitStrength)
			v.lastX, v.lastY = ev.X, ev.Y
		}

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			v.orbit.Zoom(0.9)
		case uv.MouseWheelDown:
			v.orbit.Zoom(1.1)
		}
	}
	return false
}

var modeKeys = []string{"1", "2", "3", "4", "5", "6"}

func (v *viewer) key(ev uv.KeyPressEvent) bool {
	for i, k := range modeKeys {
		if ev.MatchString(k) && i < len(render.Modes()) {
			v.scene.Mode = render.Modes()[i]
			logging.Logger().Debug("mode", "mode", v.scene.Mode)
			return false
		}
	}

	switch {
	case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
		return true
	case ev.MatchString("g"):
		v.gizmos = !v.gizmos
	case ev.MatchString("l"):
		v.renderer.InvalidateLightMaps()
	case ev.MatchString("r"):
		v.orbit.Reset()
	case ev.MatchString("a", "left"):
		v.orbit.Impulse(-orbitStrength*2, 0)
	case ev.MatchString("d", "right"):
		v.orbit.Impulse(orbitStrength*2, 0)
	case ev.MatchString("w", "up"):
		v.orbit.Impulse(0, orbitStrength*2)
	case ev.MatchString("s", "down"):
		v.orbit.Impulse(0, -orbitStrength*2)
	case ev.MatchString("+", "="):
		v.orbit.Zoom(0.9)
	case ev.MatchString("-", "_"):
		v.orbit.Zoom(1.1)
	}
	return false
}
