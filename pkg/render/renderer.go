package render

import (
	_ "embed"
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-fpcam/internal/config"
	"github.com/leterax/go-fpcam/internal/openglhelper"
	"github.com/leterax/go-fpcam/pkg/camera"
)

var (
	//go:embed shaders/scene.vert
	sceneVertexShader string
	//go:embed shaders/scene.frag
	sceneFragmentShader string
)

var modes = []string{config.ModeFirstPerson, config.ModeArcBall, config.ModeFixed}

// Options configures the viewer window and settings source
type Options struct {
	Width  int
	Height int
	Title  string
	VSync  bool

	// ConfigPath is reloaded on change when Watch is set
	ConfigPath string
	Watch      bool
}

// Renderer owns the window, the active camera and the demo scene, and runs
// the frame loop.
type Renderer struct {
	window   *openglhelper.Window
	camera   camera.Camera
	settings config.Settings
	opts     Options
	watcher  *config.Watcher

	shader     *openglhelper.Shader
	projection *openglhelper.Mat4Uniform
	view       *openglhelper.Mat4Uniform
	model      *openglhelper.Mat4Uniform
	cube       *openglhelper.Mesh
	cubes      []mgl32.Vec3

	// Timing
	lastFrameTime float64
	frames        int
}

// NewRenderer creates the window and the camera described by settings
func NewRenderer(opts Options, settings config.Settings) (*Renderer, error) {
	window, err := openglhelper.NewWindow(opts.Width, opts.Height, opts.Title, opts.VSync)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	shader, err := openglhelper.NewShader(sceneVertexShader, sceneFragmentShader)
	if err != nil {
		window.Close()
		return nil, fmt.Errorf("failed to load shader: %w", err)
	}

	r := &Renderer{
		window:     window,
		camera:     settings.NewCamera(),
		settings:   settings,
		opts:       opts,
		shader:     shader,
		projection: shader.Mat4Uniform("projection"),
		view:       shader.Mat4Uniform("view"),
		model:      shader.Mat4Uniform("model"),
		cube:       openglhelper.NewCube(CubeSize),
		cubes:      gridPositions(GridSize, GridSpacing),
	}

	if opts.Watch && opts.ConfigPath != "" {
		watcher, err := config.NewWatcher(opts.ConfigPath)
		if err != nil {
			log.Printf("config watch disabled: %v", err)
		} else {
			r.watcher = watcher
		}
	}

	window.SetEventHandler(r.handleEvent)
	window.SyncFramebufferSize()
	r.updateTitle()

	return r, nil
}

// Run starts the main rendering loop
func (r *Renderer) Run() {
	defer r.Cleanup()

	r.lastFrameTime = r.window.Time()
	for !r.window.ShouldClose() {
		r.window.PollEvents()
		r.pollSettings()

		// Keys are polled every frame so held keys move continuously.
		r.camera.Update(r.window)

		r.render()
		r.window.SwapBuffers()
		r.tick()
	}
}

// Cleanup frees all resources
func (r *Renderer) Cleanup() {
	if r.watcher != nil {
		if err := r.watcher.Close(); err != nil {
			log.Printf("failed to close config watcher: %v", err)
		}
	}
	r.cube.Delete()
	r.shader.Delete()
	r.window.Close()
}

func (r *Renderer) handleEvent(e camera.Event) {
	if key, ok := e.(camera.KeyEvent); ok && key.Action == camera.Press {
		switch key.Key {
		case KeyQuit:
			r.window.SetShouldClose(true)
			return
		case KeyCaptureToggle:
			r.window.ToggleMouseCaptured()
			log.Printf("mouse captured: %v", r.window.IsMouseCaptured())
			return
		case KeyNextMode:
			r.nextMode()
			return
		}
	}

	r.camera.HandleEvent(r.window, e)
}

// nextMode switches to the next camera mode, starting from the current eye.
func (r *Renderer) nextMode() {
	for i, m := range modes {
		if m == r.settings.Mode {
			r.settings.Mode = modes[(i+1)%len(modes)]
			break
		}
	}
	if eye := r.camera.Eye(); eye != mgl32.Vec3(r.settings.At) {
		r.settings.Eye = config.Vec3(eye)
	}
	r.rebuildCamera()
}

func (r *Renderer) rebuildCamera() {
	r.camera = r.settings.NewCamera()
	width, height := r.window.Size()
	r.camera.HandleEvent(r.window, camera.FramebufferSizeEvent{Width: width, Height: height})
	r.updateTitle()
	log.Printf("camera mode: %s", r.settings.Mode)
}

// pollSettings applies a pending settings file change without blocking.
func (r *Renderer) pollSettings() {
	if r.watcher == nil {
		return
	}
	for err := r.watcher.PollError(); err != nil; err = r.watcher.PollError() {
		log.Printf("config watch error: %v", err)
	}

	path, ok := r.watcher.Poll()
	if !ok {
		return
	}

	settings, err := config.Load(path)
	if err != nil {
		log.Printf("keeping previous camera settings: %v", err)
		return
	}

	modeChanged := settings.Mode != r.settings.Mode
	r.settings = settings
	if modeChanged {
		r.rebuildCamera()
		return
	}
	settings.Apply(r.camera)
	log.Printf("reloaded camera settings from %s", path)
}

func (r *Renderer) render() {
	r.window.Clear(ClearColor)

	r.shader.Use()
	r.camera.Upload(0, r.projection, r.view)
	r.shader.SetVec3("viewPos", r.camera.Eye())
	r.shader.SetVec3("lightPos", LightPos)

	for i, p := range r.cubes {
		r.model.Upload(mgl32.Translate3D(p.X(), p.Y(), p.Z()))
		r.shader.SetVec3("objectColor", cubeColor(i, len(r.cubes)))
		r.cube.Draw()
	}

	if err := gl.GetError(); err != gl.NO_ERROR {
		log.Printf("OpenGL error: 0x%x", err)
	}
}

// tick updates the frame counter shown in the title once per second.
func (r *Renderer) tick() {
	r.frames++
	now := r.window.Time()
	if now-r.lastFrameTime < 1 {
		return
	}
	fps := float64(r.frames) / (now - r.lastFrameTime)
	r.frames = 0
	r.lastFrameTime = now

	eye := r.camera.Eye()
	r.window.SetTitle(fmt.Sprintf("%s [%s] %.0f fps eye (%.1f, %.1f, %.1f)",
		r.opts.Title, r.settings.Mode, fps, eye.X(), eye.Y(), eye.Z()))
}

func (r *Renderer) updateTitle() {
	r.window.SetTitle(fmt.Sprintf("%s [%s]", r.opts.Title, r.settings.Mode))
}

// gridPositions lays out n*n cubes on the y=0 plane centered on the origin.
func gridPositions(n int, spacing float32) []mgl32.Vec3 {
	positions := make([]mgl32.Vec3, 0, n*n)
	offset := float32(n-1) * spacing / 2
	for x := 0; x < n; x++ {
		for z := 0; z < n; z++ {
			positions = append(positions, mgl32.Vec3{
				float32(x)*spacing - offset,
				0,
				float32(z)*spacing - offset,
			})
		}
	}
	return positions
}

// cubeColor spreads hues over the grid so orientation is easy to read.
func cubeColor(i, n int) mgl32.Vec3 {
	t := float32(i) / float32(n)
	return mgl32.Vec3{0.3 + 0.7*t, 0.4, 1.0 - 0.7*t}
}
