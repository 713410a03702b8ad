// Package viewer implements the interactive model viewer loop.
package viewer

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/gltfview/internal/config"
	"github.com/Faultbox/gltfview/internal/engine/camera"
	"github.com/Faultbox/gltfview/internal/engine/scene"
	"github.com/Faultbox/gltfview/internal/engine/window"
	"github.com/Faultbox/gltfview/internal/logger"
	"github.com/Faultbox/gltfview/pkg/gltf"
	"github.com/Faultbox/gltfview/pkg/math"
)

// Viewer owns the window, the loaded scene and the interaction state.
type Viewer struct {
	cfg     *config.Config
	window  *window.Window
	scene   *scene.Scene
	camera  *camera.OrbitCamera
	running bool

	autoRotate bool
	turntable  float32
	dragging   bool
}

// New creates the window and GL context, loads the configured model and
// prepares the scene.
func New(cfg *config.Config) (*Viewer, error) {
	if cfg.Viewer.Model == "" {
		return nil, fmt.Errorf("no model given: pass a .gltf or .glb path")
	}

	v := &Viewer{
		cfg:        cfg,
		autoRotate: cfg.Viewer.AutoRotate,
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "gltfview — " + filepath.Base(cfg.Viewer.Model),
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		MSAA:       cfg.Graphics.MSAA,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	// The GL context exists only after the window does.
	if err := gl.Init(); err != nil {
		v.window.Close()
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	v.scene, err = scene.New()
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("creating scene: %w", err)
	}

	if err := v.loadModel(cfg.Viewer.Model); err != nil {
		v.Close()
		return nil, err
	}

	return v, nil
}

// loadModel parses the document, loads its buffers and uploads the meshes.
func (v *Viewer) loadModel(path string) error {
	logger.Info("loading model", zap.String("path", path))

	sess, err := gltf.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	if err := v.scene.LoadSession(sess, filepath.Dir(path)); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	v.camera = camera.NewOrbitCamera()
	b := v.scene.Bounds()
	v.camera.FitToBounds(b.Min, b.Max)
	if v.cfg.Viewer.CameraDistance > 0 {
		v.camera.Distance = v.cfg.Viewer.CameraDistance * v.camera.Distance / 3.0
	}
	return nil
}

// Run starts the main loop. It blocks until the window closes.
func (v *Viewer) Run() error {
	v.running = true
	lastTime := time.Now()

	logger.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		v.handleEvents()
		v.update(dt)
		v.render()
		v.window.SwapBuffers()
	}
	return nil
}

func (v *Viewer) handleEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			v.running = false

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				break
			}
			switch e.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
				v.running = false
			case sdl.SCANCODE_SPACE:
				v.autoRotate = !v.autoRotate
			case sdl.SCANCODE_R:
				b := v.scene.Bounds()
				v.camera.FitToBounds(b.Min, b.Max)
				v.turntable = 0
			}

		case *sdl.MouseButtonEvent:
			if e.Button == sdl.BUTTON_LEFT {
				v.dragging = e.Type == sdl.MOUSEBUTTONDOWN
			}

		case *sdl.MouseMotionEvent:
			if v.dragging {
				v.camera.HandleDrag(float32(e.XRel), float32(e.YRel))
			}

		case *sdl.MouseWheelEvent:
			v.camera.HandleZoom(float32(e.Y))

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				gl.Viewport(0, 0, e.Data1, e.Data2)
			}
		}
	}
}

func (v *Viewer) update(dt float32) {
	if v.autoRotate {
		v.turntable += dt * 0.5
	}
}

func (v *Viewer) render() {
	bg := v.cfg.Viewer.BackgroundColor
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	proj := math.Perspective(0.8, v.window.AspectRatio(), 0.01, 1000)
	view := v.camera.ViewMatrix()
	viewProj := proj.Mul(view)

	v.scene.Render(viewProj, v.camera.Position(), v.turntable)
}

// Close releases the scene and window.
func (v *Viewer) Close() {
	logger.Info("closing viewer")
	if v.scene != nil {
		v.scene.Destroy()
	}
	if v.window != nil {
		v.window.Close()
	}
}
