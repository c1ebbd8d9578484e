// Package config loads camera settings from YAML and watches them for changes.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-fpcam/pkg/camera"
	"gopkg.in/yaml.v3"
)

// Camera modes
const (
	ModeFirstPerson = "first_person"
	ModeArcBall     = "arc_ball"
	ModeFixed       = "fixed"
)

// ErrInvalidSettings is wrapped by every validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings describes how to build and drive a camera.
type Settings struct {
	Mode      string   `yaml:"mode"`
	Fov       float32  `yaml:"fov"`
	ZNear     float32  `yaml:"znear"`
	ZFar      float32  `yaml:"zfar"`
	Eye       Vec3     `yaml:"eye"`
	At        Vec3     `yaml:"at"`
	UpAxis    Vec3     `yaml:"up_axis"`
	YawStep   float32  `yaml:"yaw_step"`
	PitchStep float32  `yaml:"pitch_step"`
	MoveStep  float32  `yaml:"move_step"`
	Bindings  Bindings `yaml:"bindings"`
}

// Bindings maps gestures to inputs. "none" disables a gesture.
type Bindings struct {
	RotateButton Button `yaml:"rotate_button"`
	DragButton   Button `yaml:"drag_button"`
	Up           Key    `yaml:"up"`
	Down         Key    `yaml:"down"`
	Left         Key    `yaml:"left"`
	Right        Key    `yaml:"right"`
}

// Default returns the settings matching the camera package defaults.
func Default() Settings {
	return Settings{
		Mode:      ModeFirstPerson,
		Fov:       camera.DefaultFov,
		ZNear:     camera.DefaultZNear,
		ZFar:      camera.DefaultZFar,
		Eye:       Vec3{0, 2, 10},
		At:        Vec3{0, 0, 0},
		UpAxis:    Vec3{0, 1, 0},
		YawStep:   camera.DefaultYawStep,
		PitchStep: camera.DefaultPitchStep,
		MoveStep:  camera.DefaultMoveStep,
		Bindings: Bindings{
			RotateButton: Button(camera.MouseButtonLeft),
			DragButton:   Button(camera.MouseButtonRight),
			Up:           Key(camera.KeyUp),
			Down:         Key(camera.KeyDown),
			Left:         Key(camera.KeyLeft),
			Right:        Key(camera.KeyRight),
		},
	}
}

// Load reads and validates a settings file. Fields missing from the file keep
// their default values.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("config: load %s: %w", path, err)
	}

	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates settings from YAML.
func Parse(data []byte) (Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Marshal encodes the settings as YAML.
func (s Settings) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Validate rejects settings that would produce a degenerate camera.
func (s Settings) Validate() error {
	switch s.Mode {
	case ModeFirstPerson, ModeArcBall, ModeFixed:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidSettings, s.Mode)
	}
	if s.Fov <= 0 || s.Fov >= math.Pi {
		return fmt.Errorf("%w: fov %v must be in (0, pi)", ErrInvalidSettings, s.Fov)
	}
	if s.ZNear <= 0 {
		return fmt.Errorf("%w: znear %v must be positive", ErrInvalidSettings, s.ZNear)
	}
	if s.ZFar <= s.ZNear {
		return fmt.Errorf("%w: zfar %v must be greater than znear %v", ErrInvalidSettings, s.ZFar, s.ZNear)
	}
	if mgl32.Vec3(s.UpAxis).Len() == 0 {
		return fmt.Errorf("%w: up_axis must not be zero", ErrInvalidSettings)
	}
	if s.Mode != ModeFixed && s.Eye == s.At {
		return fmt.Errorf("%w: eye and at must differ", ErrInvalidSettings)
	}
	return nil
}

// NewCamera builds the camera selected by Mode.
func (s Settings) NewCamera() camera.Camera {
	switch s.Mode {
	case ModeArcBall:
		return s.NewArcBall()
	case ModeFixed:
		return camera.NewFixedWithFrustum(s.Fov, s.ZNear, s.ZFar)
	default:
		return s.NewFirstPerson()
	}
}

// NewFirstPerson builds a first-person camera from the settings.
func (s Settings) NewFirstPerson() *camera.FirstPerson {
	eye, at := mgl32.Vec3(s.Eye), mgl32.Vec3(s.At)

	c := camera.NewFirstPersonWithFrustum(s.Fov, s.ZNear, s.ZFar, eye, at)
	s.Apply(c)
	// Re-target in the configured up-axis frame.
	c.LookAt(eye, at)
	return c
}

// NewArcBall builds an arc-ball camera from the settings.
func (s Settings) NewArcBall() *camera.ArcBall {
	eye, at := mgl32.Vec3(s.Eye), mgl32.Vec3(s.At)

	c := camera.NewArcBallWithFrustum(s.Fov, s.ZNear, s.ZFar, eye, at)
	s.Apply(c)
	return c
}

// Apply pushes the frustum, sensitivities, bindings and the up axis into an
// existing camera without moving it. The aspect ratio is kept.
func (s Settings) Apply(c camera.Camera) {
	switch c := c.(type) {
	case *camera.FirstPerson:
		c.SetFrustum(s.Fov, s.ZNear, s.ZFar)
		c.SetYawStep(s.YawStep)
		c.SetPitchStep(s.PitchStep)
		c.SetMoveStep(s.MoveStep)
		c.RebindRotateButton(camera.MouseButton(s.Bindings.RotateButton))
		c.RebindDragButton(camera.MouseButton(s.Bindings.DragButton))
		c.RebindUpKey(camera.Key(s.Bindings.Up))
		c.RebindDownKey(camera.Key(s.Bindings.Down))
		c.RebindLeftKey(camera.Key(s.Bindings.Left))
		c.RebindRightKey(camera.Key(s.Bindings.Right))
		c.SetUpAxis(mgl32.Vec3(s.UpAxis))
	case *camera.ArcBall:
		c.SetFrustum(s.Fov, s.ZNear, s.ZFar)
		c.SetYawStep(s.YawStep)
		c.SetPitchStep(s.PitchStep)
		c.RebindRotateButton(camera.MouseButton(s.Bindings.RotateButton))
		c.RebindDragButton(camera.MouseButton(s.Bindings.DragButton))
		c.SetUpAxis(mgl32.Vec3(s.UpAxis))
	case *camera.Fixed:
		c.SetFrustum(s.Fov, s.ZNear, s.ZFar)
	}
}
