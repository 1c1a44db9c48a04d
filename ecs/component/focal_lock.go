package component

// FocalLock is the per-camera lock record. Baseline values are captured when
// the lock becomes active with a target and are held until the next capture.
type FocalLock struct {
	Enabled bool
	Target  Ref
	// Track mirrors whether a track-to constraint toward Target is wanted.
	Track bool

	BaselineFocalLength float64
	BaselineDistance    float64
	// Ratio is BaselineFocalLength / BaselineDistance; zero until captured.
	Ratio float64
}

// Captured reports whether a usable ratio has been recorded.
func (l *FocalLock) Captured() bool {
	return l != nil && l.Ratio > 0
}

var FocalLockComponent = NewComponent[FocalLock]()
