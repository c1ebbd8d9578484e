package camera

// Key is a keyboard key. Values match GLFW key codes so a glfw.Key converts directly.
type Key int

// MouseButton is a mouse button. Values match GLFW button codes.
type MouseButton int

// Action is the state of a key or mouse button.
type Action int

// ModifierKey is a bit set of held modifier keys.
type ModifierKey int

// Key constants
const (
	// KeyUnknown is used as "no binding".
	KeyUnknown Key = -1
	KeySpace   Key = 32

	Key0 Key = 48
	Key1 Key = 49
	Key2 Key = 50
	Key3 Key = 51
	Key4 Key = 52
	Key5 Key = 53
	Key6 Key = 54
	Key7 Key = 55
	Key8 Key = 56
	Key9 Key = 57

	KeyA Key = 65
	KeyC Key = 67
	KeyD Key = 68
	KeyE Key = 69
	KeyM Key = 77
	KeyQ Key = 81
	KeyS Key = 83
	KeyW Key = 87
	KeyZ Key = 90

	KeyEscape Key = 256
	KeyRight  Key = 262
	KeyLeft   Key = 263
	KeyDown   Key = 264
	KeyUp     Key = 265
)

// Mouse button constants
const (
	// MouseButtonNone is used as "no binding".
	MouseButtonNone   MouseButton = -1
	MouseButtonLeft   MouseButton = 0
	MouseButtonRight  MouseButton = 1
	MouseButtonMiddle MouseButton = 2
)

// Action constants
const (
	Release Action = 0
	Press   Action = 1
	Repeat  Action = 2
)

// Modifier constants
const (
	ModShift   ModifierKey = 0x0001
	ModControl ModifierKey = 0x0002
	ModAlt     ModifierKey = 0x0004
	ModSuper   ModifierKey = 0x0008
)

// Canvas is the input state surface polled by cameras.
type Canvas interface {
	// MouseButton returns the last reported state of button.
	MouseButton(button MouseButton) Action
	// Key returns the last reported state of key.
	Key(key Key) Action
}

// keyPressed reports whether key is bound and currently pressed.
func keyPressed(canvas Canvas, key Key) bool {
	if key == KeyUnknown {
		return false
	}
	return canvas.Key(key) == Press
}

// buttonPressed reports whether button is bound and currently pressed.
func buttonPressed(canvas Canvas, button MouseButton) bool {
	if button == MouseButtonNone {
		return false
	}
	return canvas.MouseButton(button) == Press
}
