package prefabs

import (
	"errors"
	"fmt"
	"maps"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/focallock/ecs"
	"github.com/milk9111/focallock/ecs/component"
	"github.com/milk9111/focallock/focus"
	"github.com/milk9111/focallock/motion"
	"github.com/milk9111/focallock/scene"
)

var ErrUnknownReference = errors.New("prefabs: reference to unknown entity")

// Loaded is a built scene with the engine settings stored alongside it.
type Loaded struct {
	Scene  *scene.Scene
	Motion *motion.System
	Config focus.Config
	// ShiftLock holds the saved toggles. Pass them to
	// focus.Engine.RestoreShiftLock so the saved baselines are kept.
	ShiftLock ShiftLockSpec
}

// LoadScene reads and builds the named scene document.
func LoadScene(name string) (*Loaded, error) {
	spec, err := LoadSceneSpec(name)
	if err != nil {
		return nil, err
	}
	return Build(spec)
}

// Build creates a scene from spec. Lock records and constraints are restored
// as saved; nothing is recomputed. The scene is positioned on spec.Frame but
// no file-loaded event is published, so callers can subscribe an engine and
// then call Scene.Load.
func Build(spec SceneSpec) (*Loaded, error) {
	s := scene.New()
	start, end := spec.FrameStart, spec.FrameEnd
	if start == 0 && end == 0 {
		start, end = s.FrameRange()
	}
	if err := s.SetFrameRange(start, end); err != nil {
		return nil, err
	}

	sys := motion.NewSystem(s)
	s.AddSystem(sys)

	for _, o := range spec.Objects {
		e, err := s.NewObject(o.Name, o.Transform.build())
		if err != nil {
			return nil, fmt.Errorf("prefabs: object %q: %w", o.Name, err)
		}
		if err := attachAnimation(s, e, o.Keyframes, o.Script); err != nil {
			return nil, fmt.Errorf("prefabs: object %q: %w", o.Name, err)
		}
	}

	cams := make([]ecs.Entity, len(spec.Cameras))
	for i, c := range spec.Cameras {
		e, err := s.NewCamera(c.Name, c.Transform.build(), component.Camera{Lens: c.Lens, ShiftX: c.ShiftX, ShiftY: c.ShiftY})
		if err != nil {
			return nil, fmt.Errorf("prefabs: camera %q: %w", c.Name, err)
		}
		if err := attachAnimation(s, e, c.Keyframes, c.Script); err != nil {
			return nil, fmt.Errorf("prefabs: camera %q: %w", c.Name, err)
		}
		cams[i] = e
	}

	// targets may name cameras declared later, so they resolve in a second pass
	for i, c := range spec.Cameras {
		if err := restoreLock(s, cams[i], c); err != nil {
			return nil, fmt.Errorf("prefabs: camera %q: %w", c.Name, err)
		}
	}

	if spec.ActiveCamera != "" {
		e, ok := s.Lookup(spec.ActiveCamera)
		if !ok {
			return nil, fmt.Errorf("%w: active camera %q", ErrUnknownReference, spec.ActiveCamera)
		}
		if err := s.SetActiveCamera(e); err != nil {
			return nil, err
		}
	}

	frame := spec.Frame
	if frame == 0 {
		frame = start
	}
	s.SetFrame(frame)

	return &Loaded{Scene: s, Motion: sys, Config: spec.Preferences, ShiftLock: spec.ShiftLock}, nil
}

func (t TransformSpec) build() component.Transform {
	out := component.NewTransform(mgl64.Vec3(t.Location), mgl64.Vec3(t.Rotation))
	if t.Scale != nil {
		out.Scale = mgl64.Vec3(*t.Scale)
	}
	return out
}

func attachAnimation(s *scene.Scene, e ecs.Entity, keys map[string]map[int]float64, script string) error {
	if len(keys) > 0 {
		kf := &component.Keyframes{Channels: map[string]map[int]float64{}}
		for path, frames := range keys {
			kf.Channels[path] = maps.Clone(frames)
		}
		if err := ecs.Add(s.World(), e, component.KeyframesComponent.Kind(), kf); err != nil {
			return err
		}
	}
	if script == "" {
		return nil
	}
	src, err := LoadScript(script)
	if err != nil {
		return fmt.Errorf("load script %s: %w", script, err)
	}
	if err := motion.Check(script, src); err != nil {
		return err
	}
	return ecs.Add(s.World(), e, component.MotionScriptComponent.Kind(), &component.MotionScript{Path: script, Source: src})
}

func restoreLock(s *scene.Scene, cam ecs.Entity, c CameraSpec) error {
	var target ecs.Entity
	if c.Lock.Target != "" {
		e, ok := s.Lookup(c.Lock.Target)
		if !ok {
			return fmt.Errorf("%w: target %q", ErrUnknownReference, c.Lock.Target)
		}
		target = e
	}

	lock, _ := s.FocalLock(cam)
	*lock = component.FocalLock{
		Enabled:             c.Lock.Enabled,
		Target:              target.Ref(),
		Track:               c.Lock.Track,
		BaselineFocalLength: c.Lock.BaselineFocalLength,
		BaselineDistance:    c.Lock.BaselineDistance,
		Ratio:               c.Lock.Ratio,
	}

	sl, _ := s.ShiftLock(cam)
	*sl = component.ShiftLock{
		ShiftX:    c.ShiftBaseline.ShiftX,
		ShiftY:    c.ShiftBaseline.ShiftY,
		RotationX: c.ShiftBaseline.RotationX,
	}

	if c.Lock.Track {
		return s.AddOrientationConstraint(cam, target, component.TrackNegativeZ, component.UpY)
	}
	return nil
}
