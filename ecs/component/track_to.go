package component

// TrackAxis names the object axis that is pointed at the target.
type TrackAxis string

// UpAxis names the object axis kept pointing at world up.
type UpAxis string

const (
	TrackNegativeZ TrackAxis = "TRACK_NEGATIVE_Z"
	UpY            UpAxis    = "UP_Y"
)

// TrackTo orients its entity toward Target every time the scene solves
// constraints. At most one exists per entity.
type TrackTo struct {
	Target    Ref
	TrackAxis TrackAxis
	UpAxis    UpAxis
}

var TrackToComponent = NewComponent[TrackTo]()
