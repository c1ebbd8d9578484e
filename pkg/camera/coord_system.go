package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// coordSystem maps a right handed frame with an arbitrary up axis onto the
// canonical Y-up frame where yaw and pitch are measured.
type coordSystem struct {
	upAxis        mgl32.Vec3
	rotationToYUp mgl32.Quat
}

func newCoordSystem(upAxis mgl32.Vec3) coordSystem {
	yUp := mgl32.Vec3{0, 1, 0}

	var rot mgl32.Quat
	if upAxis.Dot(yUp) < -1+1e-6 {
		// No unique rotation between opposite vectors.
		rot = mgl32.QuatRotate(math.Pi, mgl32.Vec3{1, 0, 0})
	} else {
		rot = mgl32.QuatBetweenVectors(upAxis, yUp)
	}

	return coordSystem{
		upAxis:        upAxis,
		rotationToYUp: rot.Normalize(),
	}
}

// toYUp rotates a world point into the canonical frame.
func (cs coordSystem) toYUp(p mgl32.Vec3) mgl32.Vec3 {
	return cs.rotationToYUp.Rotate(p)
}

// fromYUp rotates a canonical point back into world space.
func (cs coordSystem) fromYUp(p mgl32.Vec3) mgl32.Vec3 {
	return cs.rotationToYUp.Inverse().Rotate(p)
}
