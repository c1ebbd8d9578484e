package openglhelper

import (
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-fpcam/pkg/camera"
)

// Window handles GLFW window creation and turns its input into camera events.
// It also serves as the camera.Canvas that cameras poll each frame.
type Window struct {
	glfwWindow    *glfw.Window
	width         int
	height        int
	title         string
	mouseCaptured bool
	onEvent       func(camera.Event)
}

var _ camera.Canvas = &Window{}

// NewWindow creates a new GLFW window with OpenGL context
func NewWindow(width, height int, title string, vsync bool) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	glfwWindow, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	glfwWindow.MakeContextCurrent()
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	return &Window{
		glfwWindow: glfwWindow,
		width:      width,
		height:     height,
		title:      title,
	}, nil
}

// SetEventHandler installs the GLFW callbacks and forwards every input event
// to handler as a camera.Event.
func (w *Window) SetEventHandler(handler func(camera.Event)) {
	w.onEvent = handler

	w.glfwWindow.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.emit(camera.CursorPosEvent{X: x, Y: y, Mods: w.modifiers()})
	})
	w.glfwWindow.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		w.emit(camera.ScrollEvent{XOff: xoff, YOff: yoff, Mods: w.modifiers()})
	})
	w.glfwWindow.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.onResize(width, height)
		w.emit(camera.FramebufferSizeEvent{Width: width, Height: height})
	})
	w.glfwWindow.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		w.emit(camera.MouseButtonEvent{
			Button: camera.MouseButton(button),
			Action: camera.Action(action),
			Mods:   camera.ModifierKey(mods),
		})
	})
	w.glfwWindow.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		w.emit(camera.KeyEvent{
			Key:    camera.Key(key),
			Action: camera.Action(action),
			Mods:   camera.ModifierKey(mods),
		})
	})
}

func (w *Window) emit(e camera.Event) {
	if w.onEvent != nil {
		w.onEvent(e)
	}
}

// modifiers reads the held modifier keys; GLFW does not report them with
// cursor and scroll events.
func (w *Window) modifiers() camera.ModifierKey {
	var mods camera.ModifierKey
	held := func(keys ...glfw.Key) bool {
		for _, k := range keys {
			if w.glfwWindow.GetKey(k) == glfw.Press {
				return true
			}
		}
		return false
	}
	if held(glfw.KeyLeftShift, glfw.KeyRightShift) {
		mods |= camera.ModShift
	}
	if held(glfw.KeyLeftControl, glfw.KeyRightControl) {
		mods |= camera.ModControl
	}
	if held(glfw.KeyLeftAlt, glfw.KeyRightAlt) {
		mods |= camera.ModAlt
	}
	if held(glfw.KeyLeftSuper, glfw.KeyRightSuper) {
		mods |= camera.ModSuper
	}
	return mods
}

// Key returns the state of key for camera polling.
func (w *Window) Key(key camera.Key) camera.Action {
	return camera.Action(w.glfwWindow.GetKey(glfw.Key(key)))
}

// MouseButton returns the state of button for camera polling.
func (w *Window) MouseButton(button camera.MouseButton) camera.Action {
	return camera.Action(w.glfwWindow.GetMouseButton(glfw.MouseButton(button)))
}

// Clear clears the color and depth buffers
func (w *Window) Clear(color mgl32.Vec4) {
	gl.ClearColor(color.X(), color.Y(), color.Z(), color.W())
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SwapBuffers swaps the front and back buffers
func (w *Window) SwapBuffers() {
	w.glfwWindow.SwapBuffers()
}

// PollEvents processes pending events, invoking the event handler
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// ShouldClose returns whether the window should close
func (w *Window) ShouldClose() bool {
	return w.glfwWindow.ShouldClose()
}

// SetShouldClose requests the render loop to stop
func (w *Window) SetShouldClose(close bool) {
	w.glfwWindow.SetShouldClose(close)
}

// Close releases all resources
func (w *Window) Close() {
	glfw.Terminate()
}

// Size returns the framebuffer dimensions
func (w *Window) Size() (width, height int) {
	return w.width, w.height
}

// Time returns seconds since GLFW was initialized
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

// SetTitle sets the window title
func (w *Window) SetTitle(title string) {
	w.title = title
	w.glfwWindow.SetTitle(title)
}

func (w *Window) onResize(width, height int) {
	w.width = width
	w.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// SyncFramebufferSize reads the real framebuffer size, which differs from the
// requested window size on high DPI displays, and emits it as a resize.
func (w *Window) SyncFramebufferSize() {
	width, height := w.glfwWindow.GetFramebufferSize()
	w.onResize(width, height)
	w.emit(camera.FramebufferSizeEvent{Width: width, Height: height})
}

// SetMouseCaptured captures or releases the mouse cursor
func (w *Window) SetMouseCaptured(captured bool) {
	w.mouseCaptured = captured

	if captured {
		w.glfwWindow.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		w.glfwWindow.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

// ToggleMouseCaptured toggles the mouse capture state
func (w *Window) ToggleMouseCaptured() {
	w.SetMouseCaptured(!w.mouseCaptured)
}

// IsMouseCaptured returns whether the mouse is currently captured
func (w *Window) IsMouseCaptured() bool {
	return w.mouseCaptured
}
