package camera

import "math"

// Projection defaults
const (
	DefaultFov    = math.Pi / 4
	DefaultZNear  = 0.1
	DefaultZFar   = 1024.0
	DefaultAspect = 800.0 / 600.0
)

// FirstPerson defaults
const (
	DefaultYawStep   = 0.005
	DefaultPitchStep = 0.005
	DefaultMoveStep  = 0.5
)

// ArcBall defaults
const (
	DefaultDistStep = 40.0
	DefaultMinDist  = 0.00001
)

// Pitch constraints, measured from the up axis.
const (
	MinPitch = 0.01
	MaxPitch = math.Pi - 0.01
)

// panScale converts cursor pixels into world units for drag panning.
const panScale = 0.01 / 10.0

func clampPitch(pitch float32) float32 {
	if pitch <= MinPitch {
		return MinPitch
	}
	if pitch > MaxPitch {
		return MaxPitch
	}
	return pitch
}
