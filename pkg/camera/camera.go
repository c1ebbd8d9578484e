// Package camera turns window input into the view and projection transforms a
// renderer needs each frame.
//
// Cameras are plain values owned by the render loop. They are not safe for
// concurrent use. Every mutator recomputes the cached matrices before it
// returns, so the transform queries always reflect the latest input.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is the capability set shared by every camera mode.
type Camera interface {
	// HandleEvent applies a single window event. Unused event types are ignored.
	HandleEvent(canvas Canvas, event Event)
	// Update is called once per frame to apply continuous, polled input.
	Update(canvas Canvas)

	// Eye returns the camera position in world space.
	Eye() mgl32.Vec3
	// ClipPlanes returns the near and far clipping distances.
	ClipPlanes() (znear, zfar float32)
	// ViewTransform returns the world to camera space transform.
	ViewTransform() mgl32.Mat4
	// Transformation returns projection * view.
	Transformation() mgl32.Mat4
	// InverseTransformation returns the inverse of Transformation.
	InverseTransformation() mgl32.Mat4
	// Upload pushes the projection and view matrices to the renderer.
	Upload(pass int, proj, view MatrixUniform)
}

// MatrixUniform receives a 4x4 matrix for a named shader slot.
type MatrixUniform interface {
	Upload(m mgl32.Mat4)
}

// Perspective holds the parameters of a perspective projection.
// Fov is the vertical field of view in radians.
type Perspective struct {
	Aspect float32
	Fov    float32
	ZNear  float32
	ZFar   float32
}

// Matrix returns the OpenGL style projection matrix.
func (p Perspective) Matrix() mgl32.Mat4 {
	return mgl32.Perspective(p.Fov, p.Aspect, p.ZNear, p.ZFar)
}

// tryInverse inverts m, reporting false when m is singular or not finite.
func tryInverse(m mgl32.Mat4) (mgl32.Mat4, bool) {
	det := m.Det()
	if mgl32.FloatEqual(det, 0) || math.IsNaN(float64(det)) || math.IsInf(float64(det), 0) {
		return mgl32.Mat4{}, false
	}
	return m.Inv(), true
}

// Project maps a world point to window coordinates (origin top-left) for a
// framebuffer of the given size. It returns false when the point projects to
// infinity.
func Project(c Camera, p mgl32.Vec3, size mgl32.Vec2) (mgl32.Vec2, bool) {
	h := c.Transformation().Mul4x1(p.Vec4(1))
	if h.W() == 0 {
		return mgl32.Vec2{}, false
	}
	ndc := h.Vec3().Mul(1 / h.W())
	return mgl32.Vec2{
		(1 + ndc.X()) * size.X() / 2,
		(1 - ndc.Y()) * size.Y() / 2,
	}, true
}

// Unproject converts a window point (origin top-left) into a world space ray
// starting on the near plane.
func Unproject(c Camera, win mgl32.Vec2, size mgl32.Vec2) (origin, dir mgl32.Vec3, ok bool) {
	nx := 2*win.X()/size.X() - 1
	ny := 1 - 2*win.Y()/size.Y()

	inv := c.InverseTransformation()
	begin := inv.Mul4x1(mgl32.Vec4{nx, ny, -1, 1})
	end := inv.Mul4x1(mgl32.Vec4{nx, ny, 1, 1})
	if begin.W() == 0 || end.W() == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}

	origin = begin.Vec3().Mul(1 / begin.W())
	far := end.Vec3().Mul(1 / end.W())
	return origin, far.Sub(origin).Normalize(), true
}
