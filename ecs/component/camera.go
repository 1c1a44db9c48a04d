package component

// Camera holds the lens values the focal lock reads and writes.
type Camera struct {
	// Lens is the focal length in millimetres.
	Lens   float64
	ShiftX float64
	ShiftY float64
}

var CameraComponent = NewComponent[Camera]()
