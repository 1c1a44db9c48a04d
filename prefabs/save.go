package prefabs

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/focallock/ecs"
	"github.com/milk9111/focallock/ecs/component"
	"github.com/milk9111/focallock/focus"
	"github.com/milk9111/focallock/scene"
)

// EngineState is the engine state written with a scene.
type EngineState interface {
	Config() focus.Config
	ShiftLock() (x, y bool)
}

// Snapshot captures s and the engine settings as a document that Build
// turns back into an equivalent scene.
func Snapshot(s *scene.Scene, eng EngineState) SceneSpec {
	start, end := s.FrameRange()
	x, y := eng.ShiftLock()
	spec := SceneSpec{
		FrameStart:  start,
		FrameEnd:    end,
		Frame:       s.Frame(),
		Preferences: eng.Config(),
		ShiftLock:   ShiftLockSpec{X: x, Y: y},
	}
	if cam, ok := s.ActiveCamera(); ok {
		spec.ActiveCamera = s.Name(cam)
	}

	for _, cam := range s.Cameras() {
		spec.Cameras = append(spec.Cameras, snapshotCamera(s, cam))
	}

	var objects []ecs.Entity
	ecs.ForEach(s.World(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Transform) {
		if !ecs.Has(s.World(), e, component.CameraComponent.Kind()) {
			objects = append(objects, e)
		}
	})
	slices.SortFunc(objects, func(a, b ecs.Entity) int {
		return int(uint32(a)) - int(uint32(b))
	})
	for _, e := range objects {
		t, _ := s.Transform(e)
		keys, script := snapshotAnimation(s, e)
		spec.Objects = append(spec.Objects, ObjectSpec{
			Name:      s.Name(e),
			Transform: snapshotTransform(t),
			Keyframes: keys,
			Script:    script,
		})
	}
	return spec
}

func snapshotCamera(s *scene.Scene, cam ecs.Entity) CameraSpec {
	t, _ := s.Transform(cam)
	c, _ := s.Camera(cam)
	out := CameraSpec{
		Name:      s.Name(cam),
		Transform: snapshotTransform(t),
		Lens:      c.Lens,
		ShiftX:    c.ShiftX,
		ShiftY:    c.ShiftY,
	}
	if lock, ok := s.FocalLock(cam); ok {
		out.Lock = LockSpec{
			Enabled:             lock.Enabled,
			Target:              s.Name(ecs.FromRef(lock.Target)),
			Track:               lock.Track,
			BaselineFocalLength: lock.BaselineFocalLength,
			BaselineDistance:    lock.BaselineDistance,
			Ratio:               lock.Ratio,
		}
	}
	if sl, ok := s.ShiftLock(cam); ok {
		out.ShiftBaseline = ShiftBaselineSpec{ShiftX: sl.ShiftX, ShiftY: sl.ShiftY, RotationX: sl.RotationX}
	}
	out.Keyframes, out.Script = snapshotAnimation(s, cam)
	return out
}

func snapshotTransform(t *component.Transform) TransformSpec {
	out := TransformSpec{Location: Vec3(t.Location), Rotation: Vec3(t.Rotation)}
	if t.Scale != (mgl64.Vec3{1, 1, 1}) {
		scale := Vec3(t.Scale)
		out.Scale = &scale
	}
	return out
}

func snapshotAnimation(s *scene.Scene, e ecs.Entity) (map[string]map[int]float64, string) {
	var keys map[string]map[int]float64
	if kf, ok := s.Keyframes(e); ok && len(kf.Channels) > 0 {
		keys = make(map[string]map[int]float64, len(kf.Channels))
		for path, frames := range kf.Channels {
			keys[path] = maps.Clone(frames)
		}
	}
	var script string
	if ms, ok := ecs.Get(s.World(), e, component.MotionScriptComponent.Kind()); ok {
		script = ms.Path
	}
	return keys, script
}

// Save writes spec to path.
func Save(path string, spec SceneSpec) error {
	data, err := Marshal(spec)
	if err != nil {
		return fmt.Errorf("prefabs: marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("prefabs: write %s: %w", path, err)
	}
	return nil
}
