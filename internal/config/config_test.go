package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-fpcam/pkg/camera"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaultsForMissingFields(t *testing.T) {
	s, err := Parse([]byte("move_step: 2\n"))
	require.NoError(t, err)

	want := Default()
	want.MoveStep = 2
	assert.Equal(t, want, s)
}

func TestParseFullFile(t *testing.T) {
	data := []byte(`
mode: first_person
fov: 1.0
znear: 0.5
zfar: 200
eye: [1, 2, 3]
at: [0, 0, 0]
up_axis: [0, 0, 1]
yaw_step: 0.01
pitch_step: 0.02
move_step: 0.25
bindings:
  rotate_button: middle
  drag_button: none
  up: w
  down: s
  left: a
  right: d
`)
	s, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, ModeFirstPerson, s.Mode)
	assert.Equal(t, float32(1.0), s.Fov)
	assert.Equal(t, float32(0.5), s.ZNear)
	assert.Equal(t, float32(200), s.ZFar)
	assert.Equal(t, Vec3{1, 2, 3}, s.Eye)
	assert.Equal(t, Vec3{0, 0, 1}, s.UpAxis)
	assert.Equal(t, Button(camera.MouseButtonMiddle), s.Bindings.RotateButton)
	assert.Equal(t, Button(camera.MouseButtonNone), s.Bindings.DragButton)
	assert.Equal(t, Key(camera.KeyW), s.Bindings.Up)
	assert.Equal(t, Key(camera.KeyS), s.Bindings.Down)
	assert.Equal(t, Key(camera.KeyA), s.Bindings.Left)
	assert.Equal(t, Key(camera.KeyD), s.Bindings.Right)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		invalid bool
	}{
		{"short vector", "eye: [1, 2]", false},
		{"vector not a sequence", "eye: 3", false},
		{"unknown key", "bindings:\n  up: pageup", false},
		{"unknown button", "bindings:\n  rotate_button: thumb", false},
		{"bad mode", "mode: orbit", true},
		{"zero fov", "fov: 0", true},
		{"fov too wide", "fov: 3.2", true},
		{"negative znear", "znear: -1", true},
		{"zfar before znear", "znear: 10\nzfar: 5", true},
		{"zero up axis", "up_axis: [0, 0, 0]", true},
		{"eye equals at", "eye: [1, 1, 1]\nat: [1, 1, 1]", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalidSettings)
			} else {
				assert.NotErrorIs(t, err, ErrInvalidSettings)
			}
		})
	}
}

func TestFixedModeAllowsEqualEyeAndAt(t *testing.T) {
	_, err := Parse([]byte("mode: fixed\neye: [0, 0, 0]\nat: [0, 0, 0]"))
	assert.NoError(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "camera.yaml")
	require.NoError(t, os.WriteFile(path, []byte("yaw_step: 0.5\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), s.YawStep)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshalRoundTrip(t *testing.T) {
	s := Default()
	s.Mode = ModeArcBall
	s.Eye = Vec3{4, 5, 6}
	s.Bindings.Up = Key(camera.KeyW)
	s.Bindings.Left = Key(camera.Key1)
	s.Bindings.DragButton = Button(camera.MouseButtonNone)

	data, err := s.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "eye: [4, 5, 6]")
	assert.Contains(t, string(data), "up: w")

	got, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		want camera.Key
	}{
		{"up", camera.KeyUp},
		{"Right", camera.KeyRight},
		{"none", camera.KeyUnknown},
		{"space", camera.KeySpace},
		{"a", camera.KeyA},
		{"Z", camera.KeyZ},
		{"q", camera.KeyQ},
		{"0", camera.Key0},
		{"9", camera.Key9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKey(tt.name)
			require.NoError(t, err)
			assert.Equal(t, Key(tt.want), got)

			back, err := ParseKey(got.String())
			require.NoError(t, err)
			assert.Equal(t, got, back)
		})
	}

	_, err := ParseKey("ab")
	assert.Error(t, err)
}

func TestNewCameraModes(t *testing.T) {
	s := Default()

	s.Mode = ModeFirstPerson
	assert.IsType(t, &camera.FirstPerson{}, s.NewCamera())

	s.Mode = ModeArcBall
	assert.IsType(t, &camera.ArcBall{}, s.NewCamera())

	s.Mode = ModeFixed
	assert.IsType(t, &camera.Fixed{}, s.NewCamera())
}

func TestNewFirstPersonUsesSettings(t *testing.T) {
	s := Default()
	s.Eye = Vec3{0, 0, 5}
	s.At = Vec3{0, 3, 5}
	s.UpAxis = Vec3{0, 0, 1}
	s.MoveStep = 2
	s.Bindings.Up = Key(camera.KeyW)
	s.Bindings.Down = Key(camera.KeyUnknown)

	c := s.NewFirstPerson()

	assert.Equal(t, mgl32.Vec3{0, 0, 1}, c.UpAxis())
	assert.Equal(t, float32(2), c.MoveStep())
	for i, want := range []float32{0, 1, 0} {
		assert.InDelta(t, want, c.EyeDir()[i], 1e-5)
	}

	key, ok := c.UpKey()
	assert.True(t, ok)
	assert.Equal(t, camera.KeyW, key)
	_, ok = c.DownKey()
	assert.False(t, ok)

	znear, zfar := c.ClipPlanes()
	assert.Equal(t, s.ZNear, znear)
	assert.Equal(t, s.ZFar, zfar)
}

func TestApplyKeepsPosition(t *testing.T) {
	c := camera.NewFirstPerson(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, 0})
	eye, at := c.Eye(), c.At()

	s := Default()
	s.YawStep = 0.1
	s.Bindings.RotateButton = Button(camera.MouseButtonRight)
	s.Apply(c)

	assert.Equal(t, eye, c.Eye())
	assert.Equal(t, at, c.At())
	assert.Equal(t, float32(0.1), c.YawStep())
	button, ok := c.RotateButton()
	assert.True(t, ok)
	assert.Equal(t, camera.MouseButtonRight, button)
}

func TestApplyUpdatesFrustum(t *testing.T) {
	c := camera.NewFirstPerson(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, 0})
	c.HandleEvent(nil, camera.FramebufferSizeEvent{Width: 1000, Height: 500})
	eye, at := c.Eye(), c.At()

	s := Default()
	s.Fov = 1.2
	s.ZNear = 0.5
	s.ZFar = 200
	s.Apply(c)

	assert.Equal(t, camera.Perspective{Aspect: 2, Fov: 1.2, ZNear: 0.5, ZFar: 200}, c.Projection())
	assert.Equal(t, eye, c.Eye())
	assert.InDelta(t, at.X(), c.At().X(), 1e-5)
	assert.InDelta(t, at.Y(), c.At().Y(), 1e-5)
	assert.InDelta(t, at.Z(), c.At().Z(), 1e-5)

	fixed := camera.NewFixed()
	s.Apply(fixed)
	znear, zfar := fixed.ClipPlanes()
	assert.Equal(t, float32(0.5), znear)
	assert.Equal(t, float32(200), zfar)
}
