package focus

import (
	"fmt"

	"github.com/milk9111/focallock/ecs"
	"github.com/milk9111/focallock/ecs/component"
)

// Tracker keeps at most one track-to constraint per camera. Solving the
// constraint is left to the host.
type Tracker struct {
	Constraints Constraints
}

// Attach points cam at target, retargeting an existing constraint in place.
func (t Tracker) Attach(cam, target ecs.Entity) error {
	if c, ok := t.Constraints.FindOrientationConstraint(cam); ok {
		c.Target = target.Ref()
		return nil
	}
	return t.Constraints.AddOrientationConstraint(cam, target, component.TrackNegativeZ, component.UpY)
}

// Detach removes cam's constraint. A missing constraint is not an error.
func (t Tracker) Detach(cam ecs.Entity) bool {
	return t.Constraints.RemoveOrientationConstraint(cam)
}

// SetTracking toggles the track-to constraint that aims cam at its lock
// target.
func (e *Engine) SetTracking(cam ecs.Entity, enabled bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.host.FocalLock(cam)
	if !ok {
		return fmt.Errorf("set tracking on %s: %w", cam, ErrUnknownCamera)
	}
	lock.Track = enabled
	if !enabled {
		e.tracker.Detach(cam)
		return nil
	}
	if err := e.tracker.Attach(cam, ecs.FromRef(lock.Target)); err != nil {
		lock.Track = false
		return fmt.Errorf("set tracking on %s: %w", cam, err)
	}
	return nil
}
