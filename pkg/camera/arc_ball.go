package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ArcBall is a camera orbiting a target point.
//
//   - Rotate button + drag: orbit around the target
//   - Drag button + drag: move the target on the plane orthogonal to the view direction
//   - Scroll: move toward or away from the target
type ArcBall struct {
	// Orbit state, angles measured in the canonical Y-up frame of coords
	at    mgl32.Vec3
	yaw   float32
	pitch float32
	dist  float32

	// Constraints and sensitivities
	minDist   float32
	maxDist   float32
	yawStep   float32
	pitchStep float32
	distStep  float32

	rotateButton MouseButton
	dragButton   MouseButton

	projection      Perspective
	proj            mgl32.Mat4
	view            mgl32.Mat4
	projView        mgl32.Mat4
	inverseProjView mgl32.Mat4

	lastCursorPos mgl32.Vec2
	coords        coordSystem
}

var _ Camera = &ArcBall{}

// NewArcBall creates an orbit camera at eye looking at at.
func NewArcBall(eye, at mgl32.Vec3) *ArcBall {
	return NewArcBallWithFrustum(DefaultFov, DefaultZNear, DefaultZFar, eye, at)
}

// NewArcBallWithFrustum creates an orbit camera with the given vertical field
// of view (radians) and clipping planes.
func NewArcBallWithFrustum(fov, znear, zfar float32, eye, at mgl32.Vec3) *ArcBall {
	c := &ArcBall{
		minDist:      DefaultMinDist,
		maxDist:      float32(math.Inf(1)),
		yawStep:      DefaultYawStep,
		pitchStep:    DefaultPitchStep,
		distStep:     DefaultDistStep,
		rotateButton: MouseButtonLeft,
		dragButton:   MouseButtonRight,
		projection: Perspective{
			Aspect: DefaultAspect,
			Fov:    fov,
			ZNear:  znear,
			ZFar:   zfar,
		},
		coords: newCoordSystem(mgl32.Vec3{0, 1, 0}),
	}

	c.LookAt(eye, at)

	return c
}

// Target returns the orbit center.
func (c *ArcBall) Target() mgl32.Vec3 { return c.at }

// Dist returns the distance between the eye and the target.
func (c *ArcBall) Dist() float32 { return c.dist }

// SetDist sets the orbit distance, clamped to the distance limits.
func (c *ArcBall) SetDist(dist float32) {
	c.dist = dist
	c.updateRestrictions()
	c.updateProjViews()
}

// SetDistLimits sets the range the orbit distance is clamped to.
func (c *ArcBall) SetDistLimits(minDist, maxDist float32) {
	c.minDist = minDist
	c.maxDist = maxDist
	c.updateRestrictions()
	c.updateProjViews()
}

// SetDistStep sets the distance change per scroll unit (divided by 120).
func (c *ArcBall) SetDistStep(step float32) { c.distStep = step }

// SetYawStep sets the yaw change per cursor pixel.
func (c *ArcBall) SetYawStep(step float32) { c.yawStep = step }

// SetPitchStep sets the pitch change per cursor pixel.
func (c *ArcBall) SetPitchStep(step float32) { c.pitchStep = step }

// SetFrustum replaces the field of view (radians) and clipping planes,
// keeping the aspect ratio.
func (c *ArcBall) SetFrustum(fov, znear, zfar float32) {
	c.projection.Fov = fov
	c.projection.ZNear = znear
	c.projection.ZFar = zfar
	c.updateProjViews()
}

// RebindRotateButton sets the orbit button. MouseButtonNone disables orbiting.
func (c *ArcBall) RebindRotateButton(button MouseButton) { c.rotateButton = button }

// RebindDragButton sets the pan button. MouseButtonNone disables panning.
func (c *ArcBall) RebindDragButton(button MouseButton) { c.dragButton = button }

// LookAt places the eye and target. They must differ.
func (c *ArcBall) LookAt(eye, at mgl32.Vec3) {
	dist := eye.Sub(at).Len()

	viewEye := c.coords.toYUp(eye)
	viewAt := c.coords.toYUp(at)
	cosPitch := mgl32.Clamp((viewEye.Y()-viewAt.Y())/dist, -1, 1)

	c.at = at
	c.dist = dist
	c.pitch = float32(math.Acos(float64(cosPitch)))
	c.yaw = float32(math.Atan2(float64(viewEye.Z()-viewAt.Z()), float64(viewEye.X()-viewAt.X())))
	c.updateRestrictions()
	c.updateProjViews()
}

// SetUpAxis sets the world up axis, keeping the eye and target in place.
func (c *ArcBall) SetUpAxis(upAxis mgl32.Vec3) {
	upAxis = upAxis.Normalize()
	if c.coords.upAxis == upAxis {
		return
	}

	eye := c.Eye()
	c.coords = newCoordSystem(upAxis)
	c.LookAt(eye, c.at)
}

// HandleLeftButtonDisplacement orbits the eye around the target.
func (c *ArcBall) HandleLeftButtonDisplacement(dpos mgl32.Vec2) {
	c.yaw += dpos.X() * c.yawStep
	c.pitch -= dpos.Y() * c.pitchStep

	c.updateRestrictions()
	c.updateProjViews()
}

// HandleRightButtonDisplacement pans the target, scaled by the orbit distance.
func (c *ArcBall) HandleRightButtonDisplacement(dpos mgl32.Vec2) {
	dir := c.at.Sub(c.Eye()).Normalize()
	tangent := c.coords.upAxis.Cross(dir).Normalize()
	bitangent := dir.Cross(tangent)
	mult := c.dist / 1000

	c.at = c.at.
		Add(tangent.Mul(dpos.X() * mult)).
		Add(bitangent.Mul(dpos.Y() * mult))
	c.updateProjViews()
}

// HandleScroll moves toward the target for positive yoff.
func (c *ArcBall) HandleScroll(yoff float32) {
	c.dist -= c.distStep * yoff / 120

	c.updateRestrictions()
	c.updateProjViews()
}

func (c *ArcBall) updateRestrictions() {
	if c.dist < c.minDist {
		c.dist = c.minDist
	}
	if c.dist > c.maxDist {
		c.dist = c.maxDist
	}
	c.pitch = clampPitch(c.pitch)
}

func (c *ArcBall) updateProjViews() {
	c.view = c.ViewTransform()
	c.proj = c.projection.Matrix()
	c.projView = c.proj.Mul4(c.view)
	if inv, ok := tryInverse(c.projView); ok {
		c.inverseProjView = inv
	}
}

// Camera implementation

// Eye returns the camera position in world space.
func (c *ArcBall) Eye() mgl32.Vec3 {
	viewAt := c.coords.toYUp(c.at)
	sinYaw, cosYaw := math.Sincos(float64(c.yaw))
	sinPitch, cosPitch := math.Sincos(float64(c.pitch))
	dist := float64(c.dist)

	viewEye := viewAt.Add(mgl32.Vec3{
		float32(dist * cosYaw * sinPitch),
		float32(dist * cosPitch),
		float32(dist * sinYaw * sinPitch),
	})
	return c.coords.fromYUp(viewEye)
}

// ClipPlanes returns the near and far clipping distances.
func (c *ArcBall) ClipPlanes() (znear, zfar float32) {
	return c.projection.ZNear, c.projection.ZFar
}

// ViewTransform returns the world to camera space transform.
func (c *ArcBall) ViewTransform() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.at, c.coords.upAxis)
}

// Transformation returns the cached projection * view matrix.
func (c *ArcBall) Transformation() mgl32.Mat4 {
	return c.projView
}

// InverseTransformation returns the cached inverse of Transformation.
func (c *ArcBall) InverseTransformation() mgl32.Mat4 {
	return c.inverseProjView
}

// Upload sends the projection and view matrices to the given uniforms.
func (c *ArcBall) Upload(_ int, proj, view MatrixUniform) {
	proj.Upload(c.proj)
	view.Upload(c.view)
}

// HandleEvent applies cursor, scroll and resize events.
func (c *ArcBall) HandleEvent(canvas Canvas, event Event) {
	switch e := event.(type) {
	case CursorPosEvent:
		curr := mgl32.Vec2{float32(e.X), float32(e.Y)}
		dpos := curr.Sub(c.lastCursorPos)

		if buttonPressed(canvas, c.rotateButton) {
			c.HandleLeftButtonDisplacement(dpos)
		}
		if buttonPressed(canvas, c.dragButton) {
			c.HandleRightButtonDisplacement(dpos)
		}

		c.lastCursorPos = curr
	case ScrollEvent:
		c.HandleScroll(float32(e.YOff))
	case FramebufferSizeEvent:
		c.projection.Aspect = float32(e.Width) / float32(e.Height)
		c.updateProjViews()
	}
}

// Update does nothing: the arc-ball camera has no polled controls.
func (c *ArcBall) Update(Canvas) {}
