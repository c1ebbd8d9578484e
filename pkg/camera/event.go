package camera

// Event is a window event delivered to a camera. The concrete types are
// CursorPosEvent, ScrollEvent, FramebufferSizeEvent, MouseButtonEvent and KeyEvent.
// Cameras ignore event types they have no use for.
type Event interface {
	isEvent()
}

// CursorPosEvent reports a new cursor position in window coordinates.
type CursorPosEvent struct {
	X, Y float64
	Mods ModifierKey
}

// ScrollEvent reports a scroll wheel offset.
type ScrollEvent struct {
	XOff, YOff float64
	Mods       ModifierKey
}

// FramebufferSizeEvent reports the new framebuffer size in pixels.
type FramebufferSizeEvent struct {
	Width, Height int
}

// MouseButtonEvent reports a mouse button transition.
type MouseButtonEvent struct {
	Button MouseButton
	Action Action
	Mods   ModifierKey
}

// KeyEvent reports a key transition.
type KeyEvent struct {
	Key    Key
	Action Action
	Mods   ModifierKey
}

func (CursorPosEvent) isEvent()       {}
func (ScrollEvent) isEvent()          {}
func (FramebufferSizeEvent) isEvent() {}
func (MouseButtonEvent) isEvent()     {}
func (KeyEvent) isEvent()             {}
