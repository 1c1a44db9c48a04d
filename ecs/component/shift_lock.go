package component

// ShiftLock is the baseline captured the last time a scene shift-lock toggle
// changed state.
type ShiftLock struct {
	ShiftX    float64
	ShiftY    float64
	RotationX float64
}

var ShiftLockComponent = NewComponent[ShiftLock]()
