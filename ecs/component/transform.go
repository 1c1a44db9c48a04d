package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is an object's world placement. Rotation is an XYZ Euler triple in
// radians applied X first, then Y, then Z.
type Transform struct {
	Location mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
}

// NewTransform returns a unit-scale transform at loc with rotation rot.
func NewTransform(loc, rot mgl64.Vec3) Transform {
	return Transform{Location: loc, Rotation: rot, Scale: mgl64.Vec3{1, 1, 1}}
}

var TransformComponent = NewComponent[Transform]()

// Axis indexes a Vec3 channel.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Valid reports whether a names one of the three axes.
func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisZ
}
