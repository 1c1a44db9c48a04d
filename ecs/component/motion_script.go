package component

// MotionScript attaches a tengo program that moves its entity each frame.
type MotionScript struct {
	Path   string
	Source []byte
}

var MotionScriptComponent = NewComponent[MotionScript]()
