package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-fpcam/pkg/camera"
)

// Viewer controls, handled before events reach the camera
const (
	KeyQuit          = camera.KeyEscape
	KeyCaptureToggle = camera.KeyC
	KeyNextMode      = camera.KeyM
)

// Scene constants
const (
	// GridSize cubes per side of the demo floor
	GridSize    = 9
	GridSpacing = 3.0
	CubeSize    = 1.0
)

var (
	ClearColor = mgl32.Vec4{0.05, 0.05, 0.1, 1.0}
	LightPos   = mgl32.Vec3{30.0, 30.0, 30.0}
)
