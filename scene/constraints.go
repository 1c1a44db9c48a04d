package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/focallock/ecs"
	"github.com/milk9111/focallock/ecs/component"
	"github.com/milk9111/focallock/focus"
)

// FindOrientationConstraint implements focus.Constraints.
func (s *Scene) FindOrientationConstraint(cam ecs.Entity) (*component.TrackTo, bool) {
	return ecs.Get(s.world, cam, component.TrackToComponent.Kind())
}

// AddOrientationConstraint implements focus.Constraints. A zero target is
// allowed; the constraint then does nothing until retargeted.
func (s *Scene) AddOrientationConstraint(cam, target ecs.Entity, track component.TrackAxis, up component.UpAxis) error {
	if !ecs.Has(s.world, cam, component.TransformComponent.Kind()) {
		return fmt.Errorf("add track-to on %s: %w", cam, focus.ErrUnknownObject)
	}
	if ecs.Has(s.world, cam, component.TrackToComponent.Kind()) {
		return fmt.Errorf("add track-to on %s: %w", cam, ErrConstraintExists)
	}
	c := &component.TrackTo{Target: target.Ref(), TrackAxis: track, UpAxis: up}
	return ecs.Add(s.world, cam, component.TrackToComponent.Kind(), c)
}

// RemoveOrientationConstraint implements focus.Constraints.
func (s *Scene) RemoveOrientationConstraint(cam ecs.Entity) bool {
	return ecs.Remove(s.world, cam, component.TrackToComponent.Kind())
}

// solveConstraints turns every constrained entity so its -Z axis points at
// its target with +Y toward world up.
func (s *Scene) solveConstraints() {
	ecs.ForEach2(s.world, component.TrackToComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.TrackTo, t *component.Transform) {
		target, ok := s.Transform(ecs.FromRef(c.Target))
		if !ok {
			return
		}
		if rot, ok := LookRotation(t.Location, target.Location); ok {
			t.Rotation = rot
		}
	})
}

// LookRotation returns the XYZ Euler rotation that aims -Z from eye to
// target with +Y as close to world +Z as possible. It reports false when the
// points coincide.
func LookRotation(eye, target mgl64.Vec3) (mgl64.Vec3, bool) {
	dir := target.Sub(eye)
	if dir.Len() < 1e-12 {
		return mgl64.Vec3{}, false
	}
	z := dir.Normalize().Mul(-1)

	up := mgl64.Vec3{0, 0, 1}
	if up.Cross(z).Len() < 1e-9 {
		// looking straight up or down, fall back to world +Y
		up = mgl64.Vec3{0, 1, 0}
	}
	x := up.Cross(z).Normalize()
	y := z.Cross(x)
	return focus.Mat3ToEuler(mgl64.Mat3FromCols(x, y, z)), true
}
