package camera

import "github.com/go-gl/mathgl/mgl32"

// Fixed is a camera at the origin looking down -Z. Only the projection aspect
// follows the framebuffer; input is otherwise ignored. It suits overlays and
// scenes that move their own geometry.
type Fixed struct {
	projection Perspective
	proj       mgl32.Mat4
	inverse    mgl32.Mat4
}

var _ Camera = &Fixed{}

// NewFixed creates a fixed camera with the default frustum.
func NewFixed() *Fixed {
	return NewFixedWithFrustum(DefaultFov, DefaultZNear, DefaultZFar)
}

// NewFixedWithFrustum creates a fixed camera with the given vertical field of
// view (radians) and clipping planes.
func NewFixedWithFrustum(fov, znear, zfar float32) *Fixed {
	c := &Fixed{
		projection: Perspective{
			Aspect: DefaultAspect,
			Fov:    fov,
			ZNear:  znear,
			ZFar:   zfar,
		},
	}
	c.updateProj()
	return c
}

// SetFrustum replaces the field of view (radians) and clipping planes,
// keeping the aspect ratio.
func (c *Fixed) SetFrustum(fov, znear, zfar float32) {
	c.projection.Fov = fov
	c.projection.ZNear = znear
	c.projection.ZFar = zfar
	c.updateProj()
}

func (c *Fixed) updateProj() {
	c.proj = c.projection.Matrix()
	if inv, ok := tryInverse(c.proj); ok {
		c.inverse = inv
	}
}

// HandleEvent only reacts to framebuffer resizes.
func (c *Fixed) HandleEvent(_ Canvas, event Event) {
	if e, ok := event.(FramebufferSizeEvent); ok {
		c.projection.Aspect = float32(e.Width) / float32(e.Height)
		c.updateProj()
	}
}

// Update does nothing; this camera has no polled input.
func (c *Fixed) Update(Canvas) {}

// Eye returns the origin.
func (c *Fixed) Eye() mgl32.Vec3 { return mgl32.Vec3{} }

// ClipPlanes returns the near and far clipping distances.
func (c *Fixed) ClipPlanes() (znear, zfar float32) {
	return c.projection.ZNear, c.projection.ZFar
}

// ViewTransform returns the identity.
func (c *Fixed) ViewTransform() mgl32.Mat4 { return mgl32.Ident4() }

// Transformation returns the projection matrix.
func (c *Fixed) Transformation() mgl32.Mat4 { return c.proj }

// InverseTransformation returns the cached inverse of Transformation.
func (c *Fixed) InverseTransformation() mgl32.Mat4 { return c.inverse }

// Upload sends the projection and an identity view.
func (c *Fixed) Upload(_ int, proj, view MatrixUniform) {
	proj.Upload(c.proj)
	view.Upload(mgl32.Ident4())
}
