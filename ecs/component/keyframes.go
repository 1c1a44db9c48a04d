package component

// Animatable channel paths.
const (
	PathLens      = "lens"
	PathShiftX    = "shift_x"
	PathShiftY    = "shift_y"
	PathLocationX = "location.x"
	PathLocationY = "location.y"
	PathLocationZ = "location.z"
	PathRotationX = "rotation.x"
	PathRotationY = "rotation.y"
	PathRotationZ = "rotation.z"
)

// Keyframes maps a channel path to its keys by frame.
type Keyframes struct {
	Channels map[string]map[int]float64
}

var KeyframesComponent = NewComponent[Keyframes]()
