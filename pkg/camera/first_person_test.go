package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFirstPersonLookingDownNegativeZ(t *testing.T) {
	c := NewFirstPerson(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})

	assert.InDelta(t, math.Pi/2, c.Pitch(), 1e-6)
	// atan2(-5, 0)
	assert.InDelta(t, -math.Pi/2, c.Yaw(), 1e-6)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, -1}, c.EyeDir(), 1e-6)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 5}, c.Eye(), 0)

	assert.Equal(t, float32(DefaultYawStep), c.YawStep())
	assert.Equal(t, float32(DefaultPitchStep), c.PitchStep())
	assert.Equal(t, float32(DefaultMoveStep), c.MoveStep())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.UpAxis())

	p := c.Projection()
	assert.InDelta(t, DefaultAspect, p.Aspect, 1e-6)
	assert.InDelta(t, DefaultFov, p.Fov, 1e-6)
}

func TestNewFirstPersonWithFrustum(t *testing.T) {
	c := NewFirstPersonWithFrustum(1.2, 0.5, 50, mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})

	znear, zfar := c.ClipPlanes()
	assert.Equal(t, float32(0.5), znear)
	assert.Equal(t, float32(50), zfar)
	assertMat4InDelta(t, mgl32.Perspective(1.2, DefaultAspect, 0.5, 50), c.ProjectionMatrix(), 1e-6)
}

func TestFirstPersonLookAtRoundTrip(t *testing.T) {
	eye := mgl32.Vec3{1, 2, 3}

	tests := []struct {
		name string
		dir  mgl32.Vec3
	}{
		{"forward", mgl32.Vec3{0, 0, -1}},
		{"oblique", mgl32.Vec3{1, -0.5, 2}},
		{"steep up", mgl32.Vec3{0.2, 3, -0.1}},
		{"backward down", mgl32.Vec3{-1, -1, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.dir.Normalize()
			at := eye.Add(dir)

			c := NewFirstPerson(eye, at)
			assertVec3InDelta(t, at, c.At(), 1e-5)

			// Far targets keep the direction; At stays one unit away.
			c.LookAt(eye, eye.Add(dir.Mul(40)))
			assertVec3InDelta(t, dir, c.EyeDir(), 1e-5)
			assert.InDelta(t, 1, c.At().Sub(eye).Len(), 1e-5)
		})
	}
}

func TestFirstPersonLookAtSamePointIsNaN(t *testing.T) {
	c := NewFirstPerson(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})
	c.LookAt(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1})

	assert.True(t, math.IsNaN(float64(c.Pitch())))
}

func TestFirstPersonPitchStaysInRange(t *testing.T) {
	tests := []struct {
		name string
		dpos mgl32.Vec2
	}{
		{"drag far down", mgl32.Vec2{0, 5000}},
		{"drag far up", mgl32.Vec2{0, -5000}},
		{"diagonal", mgl32.Vec2{300, 900}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFirstPerson(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})
			c.HandleLeftButtonDisplacement(tt.dpos)

			assert.GreaterOrEqual(t, c.Pitch(), float32(MinPitch))
			assert.LessOrEqual(t, c.Pitch(), float32(MaxPitch))
			assertConsistent(t, c)
		})
	}

	// Looking straight up is clamped too.
	c := NewFirstPerson(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 10, 0})
	assert.InDelta(t, MinPitch, c.Pitch(), 1e-6)
}

func TestFirstPersonLeftDrag(t *testing.T) {
	c := NewFirstPerson(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})
	canvas := newFakeCanvas()

	// Without the button held the cursor sample is only recorded.
	c.HandleEvent(canvas, CursorPosEvent{X: 100, Y: 50})
	yaw, pitch := c.Yaw(), c.Pitch()

	canvas.buttons[MouseButtonLeft] = true
	c.HandleEvent(canvas, CursorPosEvent{X: 110, Y: 50})

	assert.InDelta(t, yaw+0.05, c.Yaw(), 1e-6)
	assert.Equal(t, pitch, c.Pitch())
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 5}, c.Eye(), 0)
}

func TestFirstPersonRightDragPans(t *testing.T) {
	c := NewFirstPerson(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})
	yaw, pitch := c.Yaw(), c.Pitch()

	c.HandleRightButtonDisplacement(mgl32.Vec2{100, 50})

	assertVec3InDelta(t, mgl32.Vec3{-0.1, 0.05, 5}, c.Eye(), 1e-6)
	assert.Equal(t, yaw, c.Yaw())
	assert.Equal(t, pitch, c.Pitch())
}

func TestFirstPersonDisabledButtons(t *testing.T) {
	c := NewFirstPerson(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})
	c.RebindRotateButton(MouseButtonNone)
	c.RebindDragButton(MouseButtonNone)

	_, ok := c.RotateButton()
	assert.False(t, ok)
	_, ok = c.DragButton()
	assert.False(t, ok)

	canvas := newFakeCanvas()
	canvas.buttons[MouseButtonLeft] = true
	canvas.buttons[MouseButtonRight] = true
	before := *c

	c.HandleEvent(canvas, CursorPosEvent{X: 300, Y: 200})

	assert.Equal(t, before.Yaw(), c.Yaw())
	assert.Equal(t, before.Pitch(), c.Pitch())
	assert.Equal(t, before.Eye(), c.Eye())
}

func TestFirstPersonRebindButtons(t *testing.T) {
	c := NewFirstPerson(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})
	c.RebindRotateButton(MouseButtonMiddle)

	button, ok := c.RotateButton()
	require.True(t, ok)
	assert.Equal(t, MouseButtonMiddle, button)

	canvas := newFakeCanvas()
	canvas.buttons[MouseButtonLeft] = true
	yaw := c.Yaw()
	c.HandleEvent(canvas, CursorPosEvent{X: 20})
	assert.Equal(t, yaw, c.Yaw())

	canvas.buttons[MouseButtonMiddle] = true
	c.HandleEvent(canvas, CursorPosEvent{X: 40})
	assert.InDelta(t, yaw+0.1, c.Yaw(), 1e-6)
}

func TestFirstPersonScroll(t *testing.T) {
	c := NewFirstPerson(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})
	c.HandleEvent(newFakeCanvas(), ScrollEvent{YOff: 2})

	assertVec3InDelta(t, mgl32.Vec3{0, 0, 4}, c.Eye(), 1e-5)

	c.SetMoveStep(0.25)
	c.HandleScroll(-4)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 5}, c.Eye(), 1e-5)
}

func TestFirstPersonResizeIsIdempotent(t *testing.T) {
	once := NewFirstPerson(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, 0})
	twice := NewFirstPerson(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, 0})
	canvas := newFakeCanvas()
	resize := FramebufferSizeEvent{Width: 1280, Height: 720}

	once.HandleEvent(canvas, resize)
	twice.HandleEvent(canvas, resize)
	twice.HandleEvent(canvas, resize)

	assert.Equal(t, once.ProjectionMatrix(), twice.ProjectionMatrix())
	assert.Equal(t, once.ViewMatrix(), twice.ViewMatrix())
	assert.InDelta(t, 1280.0/720.0, once.Projection().Aspect, 1e-6)
}

func TestFirstPersonKeepsInverseWhenSingular(t *testing.T) {
	c := NewFirstPerson(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})
	inverse := c.InverseTransformation()

	// Zero height gives an infinite aspect and a singular projection.
	c.HandleEvent(newFakeCanvas(), FramebufferSizeEvent{Width: 800, Height: 0})

	assert.Equal(t, inverse, c.InverseTransformation())
	assertConsistent(t, c)
}

func TestFirstPersonMoveDir(t *testing.T) {
	c := NewFirstPerson(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})

	tests := []struct {
		name                  string
		up, down, right, left bool
		want                  mgl32.Vec3
	}{
		{"none", false, false, false, false, mgl32.Vec3{}},
		{"forward", true, false, false, false, mgl32.Vec3{0, 0, -1}},
		{"backward", false, true, false, false, mgl32.Vec3{0, 0, 1}},
		{"right", false, false, true, false, mgl32.Vec3{1, 0, 0}},
		{"left", false, false, false, true, mgl32.Vec3{-1, 0, 0}},
		{"forward and back cancel", true, true, false, false, mgl32.Vec3{}},
		{"left and right cancel", false, false, true, true, mgl32.Vec3{}},
		{"all cancel", true, true, true, true, mgl32.Vec3{}},
		{"diagonal", true, false, true, false, mgl32.Vec3{1, 0, -1}.Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.MoveDir(tt.up, tt.down, tt.right, tt.left)
			assertVec3InDelta(t, tt.want, got, 1e-6)
		})
	}
}

func TestFirstPersonUpdateWithSingleKey(t *testing.T) {
	c := NewFirstPerson(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{-3, 0, 1})
	c.UnbindMovementKeys()
	c.RebindUpKey(KeyW)

	key, ok := c.UpKey()
	require.True(t, ok)
	assert.Equal(t, KeyW, key)

	canvas := newFakeCanvas()
	eye := c.Eye()

	c.Update(canvas)
	assert.Equal(t, eye, c.Eye())

	canvas.keys[KeyW] = true
	canvas.keys[KeyLeft] = true
	dir := c.EyeDir()
	c.Update(canvas)

	assertVec3InDelta(t, eye.Add(dir.Mul(c.MoveStep())), c.Eye(), 1e-5)
}

func TestFirstPersonUnbindMovementKeys(t *testing.T) {
	c := NewFirstPerson(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, 0})
	c.UnbindMovementKeys()

	for _, get := range []func() (Key, bool){c.UpKey, c.DownKey, c.LeftKey, c.RightKey} {
		_, ok := get()
		assert.False(t, ok)
	}

	canvas := newFakeCanvas()
	for _, k := range []Key{KeyUp, KeyDown, KeyLeft, KeyRight, KeyUnknown} {
		canvas.keys[k] = true
	}
	eye := c.Eye()

	for i := 0; i < 10; i++ {
		c.Update(canvas)
	}
	assert.Equal(t, eye, c.Eye())
}

func TestFirstPersonRebindMovementKeys(t *testing.T) {
	c := NewFirstPerson(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})
	c.RebindUpKey(KeyW)
	c.RebindDownKey(KeyS)
	c.RebindLeftKey(KeyA)
	c.RebindRightKey(KeyD)

	canvas := newFakeCanvas()
	canvas.keys[KeyD] = true
	c.Update(canvas)
	assertVec3InDelta(t, mgl32.Vec3{0.5, 0, 5}, c.Eye(), 1e-5)

	canvas.keys[KeyD] = false
	canvas.keys[KeyS] = true
	c.Update(canvas)
	assertVec3InDelta(t, mgl32.Vec3{0.5, 0, 5.5}, c.Eye(), 1e-5)
}

func TestFirstPersonSetUpAxisPreservesTarget(t *testing.T) {
	tests := []struct {
		name string
		up   mgl32.Vec3
	}{
		{"z up", mgl32.Vec3{0, 0, 1}},
		{"x up", mgl32.Vec3{1, 0, 0}},
		{"y down", mgl32.Vec3{0, -1, 0}},
		{"unnormalized", mgl32.Vec3{0, 3, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFirstPerson(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{4, 1, -2})
			before := c.At()
			yaw, pitch := c.Yaw(), c.Pitch()

			c.SetUpAxis(tt.up)

			assertVec3InDelta(t, tt.up.Normalize(), c.UpAxis(), 1e-6)
			assertVec3InDelta(t, before, c.At(), 1e-4)
			assert.False(t, yaw == c.Yaw() && pitch == c.Pitch(), "angles should be re-derived")
			assertConsistent(t, c)
		})
	}
}

func TestFirstPersonSetUpAxisSameIsNoop(t *testing.T) {
	c := NewFirstPerson(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{4, 1, -2})
	before := *c

	c.SetUpAxisDir(mgl32.Vec3{0, 1, 0})

	assert.Equal(t, before, *c)
}

func TestFirstPersonTranslate(t *testing.T) {
	c := NewFirstPerson(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})

	moved := c.Translated(mgl32.Vec3{1, 0, 0})
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 5}, c.Eye(), 0)
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 5}, moved.Eye(), 1e-6)
	assert.Equal(t, c.Yaw(), moved.Yaw())

	c.Translate(mgl32.Vec3{0, 2, 0})
	assertVec3InDelta(t, mgl32.Vec3{0, 2, 5}, c.Eye(), 1e-6)
	assertConsistent(t, c)
}

func TestFirstPersonUpload(t *testing.T) {
	c := NewFirstPerson(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})
	proj, view := &recordingUniform{}, &recordingUniform{}

	c.Upload(0, proj, view)

	assert.Equal(t, 1, proj.uploads)
	assert.Equal(t, 1, view.uploads)
	assert.Equal(t, c.ProjectionMatrix(), proj.value)
	assert.Equal(t, c.ViewMatrix(), view.value)
	assertMat4InDelta(t, mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 4}, mgl32.Vec3{0, 1, 0}), view.value, 1e-6)
}

func TestFirstPersonSensitivitySetters(t *testing.T) {
	c := NewFirstPerson(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})
	c.SetYawStep(0.01)
	c.SetPitchStep(0.02)

	yaw, pitch := c.Yaw(), c.Pitch()
	c.HandleLeftButtonDisplacement(mgl32.Vec2{10, 10})

	assert.InDelta(t, yaw+0.1, c.Yaw(), 1e-6)
	assert.InDelta(t, pitch+0.2, c.Pitch(), 1e-6)
}
