package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FirstPerson is a first-person camera.
//
//   - Rotate button + drag: look around
//   - Drag button + drag: move the eye on the plane orthogonal to the view direction
//   - Scroll: move the eye forward or backward
//   - Movement keys (polled by Update): walk along the view direction and sideways
type FirstPerson struct {
	// Position and orientation. Yaw and pitch are measured in the canonical
	// Y-up frame of coords; pitch is the angle from the up axis.
	eye   mgl32.Vec3
	yaw   float32
	pitch float32

	// Sensitivities
	yawStep   float32
	pitchStep float32
	moveStep  float32

	// Bindings, MouseButtonNone / KeyUnknown when disabled
	rotateButton MouseButton
	dragButton   MouseButton
	upKey        Key
	downKey      Key
	leftKey      Key
	rightKey     Key

	projection      Perspective
	proj            mgl32.Mat4
	view            mgl32.Mat4
	projView        mgl32.Mat4
	inverseProjView mgl32.Mat4

	lastCursorPos mgl32.Vec2
	coords        coordSystem
}

var _ Camera = &FirstPerson{}

// NewFirstPerson creates a first-person camera at eye looking at at, with the
// default frustum and sensitivities.
func NewFirstPerson(eye, at mgl32.Vec3) *FirstPerson {
	return NewFirstPersonWithFrustum(DefaultFov, DefaultZNear, DefaultZFar, eye, at)
}

// NewFirstPersonWithFrustum creates a first-person camera with the given
// vertical field of view (radians) and clipping planes.
func NewFirstPersonWithFrustum(fov, znear, zfar float32, eye, at mgl32.Vec3) *FirstPerson {
	c := &FirstPerson{
		yawStep:      DefaultYawStep,
		pitchStep:    DefaultPitchStep,
		moveStep:     DefaultMoveStep,
		rotateButton: MouseButtonLeft,
		dragButton:   MouseButtonRight,
		upKey:        KeyUp,
		downKey:      KeyDown,
		leftKey:      KeyLeft,
		rightKey:     KeyRight,
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

// SetMoveStep sets the translation per movement tick. The default is 0.5.
func (c *FirstPerson) SetMoveStep(step float32) {
	c.moveStep = step
}

// SetPitchStep sets the pitch change per cursor pixel. The default is 0.005.
func (c *FirstPerson) SetPitchStep(step float32) {
	c.pitchStep = step
}

// SetYawStep sets the yaw change per cursor pixel. The default is 0.005.
func (c *FirstPerson) SetYawStep(step float32) {
	c.yawStep = step
}

// MoveStep returns the translation per movement tick.
func (c *FirstPerson) MoveStep() float32 { return c.moveStep }

// PitchStep returns the pitch change per cursor pixel.
func (c *FirstPerson) PitchStep() float32 { return c.pitchStep }

// YawStep returns the yaw change per cursor pixel.
func (c *FirstPerson) YawStep() float32 { return c.yawStep }

// Yaw returns the yaw angle in radians.
func (c *FirstPerson) Yaw() float32 { return c.yaw }

// Pitch returns the angle between the view direction and the up axis, in radians.
func (c *FirstPerson) Pitch() float32 { return c.pitch }

// LookAt moves the camera to eye and orients it toward at.
//
// eye and at must differ; equal points produce a NaN pitch that propagates to
// every derived matrix.
func (c *FirstPerson) LookAt(eye, at mgl32.Vec3) {
	dist := eye.Sub(at).Len()

	viewEye := c.coords.toYUp(eye)
	viewAt := c.coords.toYUp(at)
	cosPitch := mgl32.Clamp((viewAt.Y()-viewEye.Y())/dist, -1, 1)
	pitch := float32(math.Acos(float64(cosPitch)))
	yaw := float32(math.Atan2(float64(viewAt.Z()-viewEye.Z()), float64(viewAt.X()-viewEye.X())))

	c.eye = eye
	c.yaw = yaw
	c.pitch = clampPitch(pitch)
	c.updateProjViews()
}

// At returns the point one unit in front of the eye.
func (c *FirstPerson) At() mgl32.Vec3 {
	viewEye := c.coords.toYUp(c.eye)
	sinYaw, cosYaw := math.Sincos(float64(c.yaw))
	sinPitch, cosPitch := math.Sincos(float64(c.pitch))

	viewAt := viewEye.Add(mgl32.Vec3{
		float32(cosYaw * sinPitch),
		float32(cosPitch),
		float32(sinYaw * sinPitch),
	})
	return c.coords.fromYUp(viewAt)
}

// RotateButton returns the button used to look around.
func (c *FirstPerson) RotateButton() (MouseButton, bool) {
	return c.rotateButton, c.rotateButton != MouseButtonNone
}

// RebindRotateButton sets the button used to look around.
// MouseButtonNone disables rotation.
func (c *FirstPerson) RebindRotateButton(button MouseButton) {
	c.rotateButton = button
}

// DragButton returns the button used to pan.
func (c *FirstPerson) DragButton() (MouseButton, bool) {
	return c.dragButton, c.dragButton != MouseButtonNone
}

// RebindDragButton sets the button used to pan. MouseButtonNone disables panning.
func (c *FirstPerson) RebindDragButton(button MouseButton) {
	c.dragButton = button
}

// UpKey returns the forward key, or false when it is unbound.
func (c *FirstPerson) UpKey() (Key, bool) { return c.upKey, c.upKey != KeyUnknown }

// DownKey returns the backward key, or false when it is unbound.
func (c *FirstPerson) DownKey() (Key, bool) { return c.downKey, c.downKey != KeyUnknown }

// LeftKey returns the strafe left key, or false when it is unbound.
func (c *FirstPerson) LeftKey() (Key, bool) { return c.leftKey, c.leftKey != KeyUnknown }

// RightKey returns the strafe right key, or false when it is unbound.
func (c *FirstPerson) RightKey() (Key, bool) { return c.rightKey, c.rightKey != KeyUnknown }

// RebindUpKey sets the forward key. KeyUnknown disables it.
func (c *FirstPerson) RebindUpKey(key Key) { c.upKey = key }

// RebindDownKey sets the backward key. KeyUnknown disables it.
func (c *FirstPerson) RebindDownKey(key Key) { c.downKey = key }

// RebindLeftKey sets the strafe left key. KeyUnknown disables it.
func (c *FirstPerson) RebindLeftKey(key Key) { c.leftKey = key }

// RebindRightKey sets the strafe right key. KeyUnknown disables it.
func (c *FirstPerson) RebindRightKey(key Key) { c.rightKey = key }

// UnbindMovementKeys disables keyboard movement in all four directions.
func (c *FirstPerson) UnbindMovementKeys() {
	c.upKey = KeyUnknown
	c.downKey = KeyUnknown
	c.leftKey = KeyUnknown
	c.rightKey = KeyUnknown
}

// HandleLeftButtonDisplacement rotates the view by a cursor displacement.
func (c *FirstPerson) HandleLeftButtonDisplacement(dpos mgl32.Vec2) {
	c.yaw += dpos.X() * c.yawStep
	c.pitch += dpos.Y() * c.pitchStep

	c.pitch = clampPitch(c.pitch)
	c.updateProjViews()
}

// HandleRightButtonDisplacement moves the eye in the plane orthogonal to the
// view direction. The pixel to world scale is fixed.
func (c *FirstPerson) HandleRightButtonDisplacement(dpos mgl32.Vec2) {
	dir := c.At().Sub(c.eye).Normalize()
	tangent := c.coords.upAxis.Cross(dir).Normalize()
	bitangent := dir.Cross(tangent)

	c.eye = c.eye.
		Add(tangent.Mul(panScale * dpos.X())).
		Add(bitangent.Mul(panScale * dpos.Y()))
	c.pitch = clampPitch(c.pitch)
	c.updateProjViews()
}

// HandleScroll moves the eye along the view direction by MoveStep * yoff.
func (c *FirstPerson) HandleScroll(yoff float32) {
	front, _ := c.observerFrame()

	c.eye = c.eye.Add(front.Mul(c.moveStep * yoff))
	c.pitch = clampPitch(c.pitch)
	c.updateProjViews()
}

// EyeDir returns the normalized view direction.
func (c *FirstPerson) EyeDir() mgl32.Vec3 {
	return c.At().Sub(c.eye).Normalize()
}

// MoveDir returns the normalized keyboard movement direction for the given key
// states, or the zero vector when they cancel out.
func (c *FirstPerson) MoveDir(up, down, right, left bool) mgl32.Vec3 {
	front, side := c.observerFrame()

	var movement mgl32.Vec3
	if up {
		movement = movement.Add(front)
	}
	if down {
		movement = movement.Sub(front)
	}
	// side points to the left of the view direction
	if right {
		movement = movement.Sub(side)
	}
	if left {
		movement = movement.Add(side)
	}

	if movement == (mgl32.Vec3{}) {
		return movement
	}
	return movement.Normalize()
}

// Translate moves the camera by t.
func (c *FirstPerson) Translate(t mgl32.Vec3) {
	c.setEye(c.eye.Add(t))
}

// Translated returns a copy of the camera moved by t.
func (c *FirstPerson) Translated(t mgl32.Vec3) *FirstPerson {
	res := *c
	res.Translate(t)
	return &res
}

func (c *FirstPerson) setEye(eye mgl32.Vec3) {
	c.eye = eye
	c.pitch = clampPitch(c.pitch)
	c.updateProjViews()
}

// SetUpAxis sets the world up axis. The axis does not need to be normalized.
func (c *FirstPerson) SetUpAxis(upAxis mgl32.Vec3) {
	c.SetUpAxisDir(upAxis.Normalize())
}

// SetUpAxisDir sets the world up axis from a unit vector. The point the camera
// looks at is preserved; yaw and pitch are recomputed for the new frame.
func (c *FirstPerson) SetUpAxisDir(upAxis mgl32.Vec3) {
	if c.coords.upAxis == upAxis {
		return
	}

	oldAt := c.At()
	c.coords = newCoordSystem(upAxis)
	c.LookAt(c.eye, oldAt)
}

// UpAxis returns the world up axis.
func (c *FirstPerson) UpAxis() mgl32.Vec3 {
	return c.coords.upAxis
}

// Projection returns the perspective parameters.
func (c *FirstPerson) Projection() Perspective {
	return c.projection
}

// SetFrustum replaces the field of view (radians) and clipping planes,
// keeping the aspect ratio.
func (c *FirstPerson) SetFrustum(fov, znear, zfar float32) {
	c.projection.Fov = fov
	c.projection.ZNear = znear
	c.projection.ZFar = zfar
	c.updateProjViews()
}

// ViewMatrix returns the cached view matrix.
func (c *FirstPerson) ViewMatrix() mgl32.Mat4 {
	return c.view
}

// ProjectionMatrix returns the cached projection matrix.
func (c *FirstPerson) ProjectionMatrix() mgl32.Mat4 {
	return c.proj
}

// observerFrame returns the view direction and the axis to its left.
func (c *FirstPerson) observerFrame() (front, side mgl32.Vec3) {
	front = c.EyeDir()
	side = c.coords.upAxis.Cross(front).Normalize()
	return front, side
}

// updateProjViews recomputes every cached matrix. The inverse is left
// untouched when projView is singular.
func (c *FirstPerson) updateProjViews() {
	c.view = c.ViewTransform()
	c.proj = c.projection.Matrix()
	c.projView = c.proj.Mul4(c.view)
	if inv, ok := tryInverse(c.projView); ok {
		c.inverseProjView = inv
	}
}

// Camera implementation

// Eye returns the camera position in world space.
func (c *FirstPerson) Eye() mgl32.Vec3 {
	return c.eye
}

// ClipPlanes returns the near and far clipping distances.
func (c *FirstPerson) ClipPlanes() (znear, zfar float32) {
	return c.projection.ZNear, c.projection.ZFar
}

// ViewTransform returns the right handed look-at matrix for the current state.
func (c *FirstPerson) ViewTransform() mgl32.Mat4 {
	return mgl32.LookAtV(c.eye, c.At(), c.coords.upAxis)
}

// Transformation returns the cached projection * view matrix.
func (c *FirstPerson) Transformation() mgl32.Mat4 {
	return c.projView
}

// InverseTransformation returns the cached inverse of Transformation.
func (c *FirstPerson) InverseTransformation() mgl32.Mat4 {
	return c.inverseProjView
}

// Upload sends the projection and view matrices to the given uniforms.
func (c *FirstPerson) Upload(_ int, proj, view MatrixUniform) {
	proj.Upload(c.proj)
	view.Upload(c.view)
}

// HandleEvent applies cursor, scroll and resize events.
func (c *FirstPerson) HandleEvent(canvas Canvas, event Event) {
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

// Update moves the eye by MoveStep along the direction given by the pressed
// movement keys.
func (c *FirstPerson) Update(canvas Canvas) {
	up := keyPressed(canvas, c.upKey)
	down := keyPressed(canvas, c.downKey)
	right := keyPressed(canvas, c.rightKey)
	left := keyPressed(canvas, c.leftKey)

	dir := c.MoveDir(up, down, right, left)
	c.Translate(dir.Mul(c.moveStep))
}
