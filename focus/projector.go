package focus

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// axisEpsilon guards normalization of a collapsed orientation column.
const axisEpsilon = 1e-12

// EulerToMat3 builds the rotation for an XYZ Euler triple: X is applied
// first, then Y, then Z.
func EulerToMat3(rot mgl64.Vec3) mgl64.Mat3 {
	return mgl64.Rotate3DZ(rot[2]).Mul3(mgl64.Rotate3DY(rot[1])).Mul3(mgl64.Rotate3DX(rot[0]))
}

// Mat3ToEuler is the inverse of EulerToMat3 for a pure rotation. At gimbal
// lock the X angle is reported as zero.
func Mat3ToEuler(m mgl64.Mat3) mgl64.Vec3 {
	sy := -m.At(2, 0)
	if sy >= 1-1e-9 || sy <= -1+1e-9 {
		y := math.Copysign(math.Pi/2, sy)
		z := math.Atan2(-m.At(0, 1), m.At(1, 1))
		return mgl64.Vec3{0, y, z}
	}
	return mgl64.Vec3{
		math.Atan2(m.At(2, 1), m.At(2, 2)),
		math.Asin(sy),
		math.Atan2(m.At(1, 0), m.At(0, 0)),
	}
}

// ForwardAxis returns the unit view direction of an orientation: the negated
// third column. A zero column yields the zero vector.
func ForwardAxis(orientation mgl64.Mat3) mgl64.Vec3 {
	col := orientation.Col(2)
	l := col.Len()
	if l < axisEpsilon {
		return mgl64.Vec3{}
	}
	return col.Mul(-1 / l)
}

// DistanceToPlane returns the distance from the camera to the plane through
// target that is parallel to the image plane. This is the length of the
// camera-to-target vector projected on the view axis, not the straight-line
// distance. Coincident points give 0.
func DistanceToPlane(pose CameraPose, target mgl64.Vec3) float64 {
	axis := ForwardAxis(pose.Orientation)
	v := target.Sub(pose.Position)
	n := axis.Mul(v.Dot(axis))
	return n.Len()
}

// Round3 rounds half away from zero to three decimals.
func Round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
