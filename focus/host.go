package focus

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/focallock/ecs"
	"github.com/milk9111/focallock/ecs/component"
)

// CameraPose is the camera state the engine reads each tick.
type CameraPose struct {
	Position mgl64.Vec3
	// Orientation is the camera's world 3x3, possibly scaled.
	Orientation mgl64.Mat3
	// Rotation is the XYZ Euler triple Orientation was built from.
	Rotation    mgl64.Vec3
	FocalLength float64
	ShiftX      float64
	ShiftY      float64
}

// Scene enumerates cameras.
type Scene interface {
	// ActiveCamera returns the camera the scene renders through.
	ActiveCamera() (ecs.Entity, bool)
	// Cameras returns every camera that carries a lock record.
	Cameras() []ecs.Entity
}

// PoseReader reads camera and object placement.
type PoseReader interface {
	CameraPose(cam ecs.Entity) (CameraPose, error)
	ObjectPosition(obj ecs.Entity) (mgl64.Vec3, error)
}

// PoseWriter writes the values the engine derives.
type PoseWriter interface {
	SetFocalLength(cam ecs.Entity, value float64) error
	SetRotation(cam ecs.Entity, axis component.Axis, value float64) error
	SetShift(cam ecs.Entity, axis component.Axis, value float64) error
}

// LockStore hands out the per-camera records. The returned pointers are live:
// writes through them are the host's stored state.
type LockStore interface {
	FocalLock(cam ecs.Entity) (*component.FocalLock, bool)
	ShiftLock(cam ecs.Entity) (*component.ShiftLock, bool)
}

// Constraints manages track-to constraints on cameras.
type Constraints interface {
	FindOrientationConstraint(cam ecs.Entity) (*component.TrackTo, bool)
	AddOrientationConstraint(cam, target ecs.Entity, track component.TrackAxis, up component.UpAxis) error
	// RemoveOrientationConstraint reports whether a constraint was removed.
	RemoveOrientationConstraint(cam ecs.Entity) bool
}

// Timeline exposes the frame range and keyframe storage used for baking.
type Timeline interface {
	FrameRange() (start, end int)
	Frame() int
	// SetFrame moves the playhead and re-evaluates the scene, publishing a
	// frame-changed event.
	SetFrame(frame int)
	InsertKeyframe(e ecs.Entity, path string, frame int) error
	DeleteKeyframe(e ecs.Entity, path string, frame int) bool
}

// Presenter receives the redraw signal sent after every tick. It is called
// without the engine lock held.
type Presenter interface {
	Redraw()
}

// Host is everything the engine needs from the application that owns the
// scene.
type Host interface {
	Scene
	PoseReader
	PoseWriter
	LockStore
	Constraints
	Timeline
	Presenter
}
