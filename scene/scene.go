// Package scene is the host side of the focal lock: an ECS world of cameras
// and objects with a timeline, keyframes, track-to constraints and an event
// bus. *Scene implements focus.Host.
package scene

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/focallock/ecs"
	"github.com/milk9111/focallock/ecs/component"
	"github.com/milk9111/focallock/focus"
)

var (
	ErrDuplicateName    = errors.New("scene: duplicate name")
	ErrNotCamera        = errors.New("scene: entity is not a camera")
	ErrConstraintExists = errors.New("scene: camera already has a track-to constraint")
	ErrInvalidValue     = errors.New("scene: value is not finite")
	ErrBadFrameRange    = errors.New("scene: frame range end before start")
	ErrUnknownChannel   = errors.New("scene: unknown animation channel")
)

var _ focus.Host = (*Scene)(nil)

// Scene owns the world and everything the engine reads through focus.Host.
// It is not safe for concurrent use.
type Scene struct {
	world  *ecs.World
	bus    *ecs.Bus
	anim   *ecs.Scheduler
	names  map[string]ecs.Entity
	active ecs.Entity

	frame      int
	frameStart int
	frameEnd   int
	redraws    int
}

// New creates an empty scene with a 1..250 frame range.
func New() *Scene {
	s := &Scene{
		world:      ecs.NewWorld(),
		bus:        ecs.NewBus(),
		names:      map[string]ecs.Entity{},
		frame:      1,
		frameStart: 1,
		frameEnd:   250,
	}
	s.anim = ecs.NewScheduler(&keyframeSystem{scene: s})
	return s
}

func (s *Scene) World() *ecs.World {
	return s.world
}

func (s *Scene) Bus() *ecs.Bus {
	return s.bus
}

// AddSystem appends an animation system. Animation systems run on every
// frame change after keyframes are applied and before constraints are
// solved.
func (s *Scene) AddSystem(sys ecs.System) {
	s.anim.Add(sys)
}

func (s *Scene) spawn(name string, t component.Transform) (ecs.Entity, error) {
	if _, ok := s.names[name]; ok {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if t.Scale == (mgl64.Vec3{}) {
		t.Scale = mgl64.Vec3{1, 1, 1}
	}
	e := ecs.CreateEntity(s.world)
	if err := ecs.Add(s.world, e, component.NameComponent.Kind(), &component.Name{Value: name}); err != nil {
		return 0, err
	}
	if err := ecs.Add(s.world, e, component.TransformComponent.Kind(), &t); err != nil {
		return 0, err
	}
	s.names[name] = e
	return e, nil
}

// NewObject adds a plain object that cameras can target.
func (s *Scene) NewObject(name string, t component.Transform) (ecs.Entity, error) {
	return s.spawn(name, t)
}

// NewCamera adds a camera with a disabled lock and an empty shift baseline.
// The first camera added becomes the active camera.
func (s *Scene) NewCamera(name string, t component.Transform, cam component.Camera) (ecs.Entity, error) {
	e, err := s.spawn(name, t)
	if err != nil {
		return 0, err
	}
	for _, add := range []func() error{
		func() error { return ecs.Add(s.world, e, component.CameraComponent.Kind(), &cam) },
		func() error { return ecs.Add(s.world, e, component.FocalLockComponent.Kind(), &component.FocalLock{}) },
		func() error { return ecs.Add(s.world, e, component.ShiftLockComponent.Kind(), &component.ShiftLock{}) },
	} {
		if err := add(); err != nil {
			return 0, err
		}
	}
	if !ecs.IsAlive(s.world, s.active) {
		s.active = e
	}
	return e, nil
}

// Lookup finds an entity by name.
func (s *Scene) Lookup(name string) (ecs.Entity, bool) {
	e, ok := s.names[name]
	if !ok || !ecs.IsAlive(s.world, e) {
		return 0, false
	}
	return e, true
}

// Name returns e's name, or "" for unnamed or dead entities.
func (s *Scene) Name(e ecs.Entity) string {
	if n, ok := ecs.Get(s.world, e, component.NameComponent.Kind()); ok {
		return n.Value
	}
	return ""
}

// Remove deletes e. References to it from locks and constraints are left in
// place and stop resolving.
func (s *Scene) Remove(e ecs.Entity) bool {
	name := s.Name(e)
	if !ecs.DestroyEntity(s.world, e) {
		return false
	}
	delete(s.names, name)
	if s.active == e {
		s.active = 0
	}
	return true
}

// SetActiveCamera changes the camera the scene renders through.
func (s *Scene) SetActiveCamera(cam ecs.Entity) error {
	if !ecs.Has(s.world, cam, component.CameraComponent.Kind()) {
		return fmt.Errorf("set active camera %s: %w", cam, ErrNotCamera)
	}
	s.active = cam
	return nil
}

// ActiveCamera returns the camera the scene renders through.
func (s *Scene) ActiveCamera() (ecs.Entity, bool) {
	if !ecs.IsAlive(s.world, s.active) {
		return 0, false
	}
	return s.active, true
}

// Cameras returns every camera with a lock record, oldest first.
func (s *Scene) Cameras() []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(s.world, component.FocalLockComponent.Kind(), func(e ecs.Entity, _ *component.FocalLock) {
		out = append(out, e)
	})
	slices.SortFunc(out, func(a, b ecs.Entity) int {
		return int(uint32(a)) - int(uint32(b))
	})
	return out
}

// Transform returns e's live transform.
func (s *Scene) Transform(e ecs.Entity) (*component.Transform, bool) {
	return ecs.Get(s.world, e, component.TransformComponent.Kind())
}

// Camera returns cam's live lens values.
func (s *Scene) Camera(cam ecs.Entity) (*component.Camera, bool) {
	return ecs.Get(s.world, cam, component.CameraComponent.Kind())
}

// Move sets e's location.
func (s *Scene) Move(e ecs.Entity, loc mgl64.Vec3) error {
	t, ok := s.Transform(e)
	if !ok {
		return fmt.Errorf("move %s: %w", e, focus.ErrUnknownObject)
	}
	if !finiteVec(loc) {
		return fmt.Errorf("move %s: %w", e, ErrInvalidValue)
	}
	t.Location = loc
	return nil
}

// Rotate sets e's XYZ Euler rotation.
func (s *Scene) Rotate(e ecs.Entity, rot mgl64.Vec3) error {
	t, ok := s.Transform(e)
	if !ok {
		return fmt.Errorf("rotate %s: %w", e, focus.ErrUnknownObject)
	}
	if !finiteVec(rot) {
		return fmt.Errorf("rotate %s: %w", e, ErrInvalidValue)
	}
	t.Rotation = rot
	return nil
}

// Update solves constraints and publishes scene-updated. Call it after
// editing transforms or lens values.
func (s *Scene) Update() {
	s.solveConstraints()
	s.bus.Publish(ecs.EventSceneUpdated)
}

// Load evaluates the current frame and publishes file-loaded.
func (s *Scene) Load() {
	s.evaluate()
	s.bus.Publish(ecs.EventFileLoaded)
}

func (s *Scene) evaluate() {
	s.anim.Update(s.world)
	s.solveConstraints()
}

// FocalLock implements focus.LockStore.
func (s *Scene) FocalLock(cam ecs.Entity) (*component.FocalLock, bool) {
	return ecs.Get(s.world, cam, component.FocalLockComponent.Kind())
}

// ShiftLock implements focus.LockStore.
func (s *Scene) ShiftLock(cam ecs.Entity) (*component.ShiftLock, bool) {
	return ecs.Get(s.world, cam, component.ShiftLockComponent.Kind())
}

// CameraPose implements focus.PoseReader. The orientation includes the
// transform's scale.
func (s *Scene) CameraPose(cam ecs.Entity) (focus.CameraPose, error) {
	t, okT := s.Transform(cam)
	c, okC := s.Camera(cam)
	if !okT || !okC {
		return focus.CameraPose{}, fmt.Errorf("pose of %s: %w", cam, focus.ErrUnknownCamera)
	}
	return focus.CameraPose{
		Position:    t.Location,
		Orientation: focus.EulerToMat3(t.Rotation).Mul3(mgl64.Diag3(t.Scale)),
		Rotation:    t.Rotation,
		FocalLength: c.Lens,
		ShiftX:      c.ShiftX,
		ShiftY:      c.ShiftY,
	}, nil
}

// ObjectPosition implements focus.PoseReader.
func (s *Scene) ObjectPosition(obj ecs.Entity) (mgl64.Vec3, error) {
	t, ok := s.Transform(obj)
	if !ok {
		return mgl64.Vec3{}, fmt.Errorf("position of %s: %w", obj, focus.ErrUnknownObject)
	}
	return t.Location, nil
}

// SetFocalLength implements focus.PoseWriter.
func (s *Scene) SetFocalLength(cam ecs.Entity, value float64) error {
	c, ok := s.Camera(cam)
	if !ok {
		return fmt.Errorf("set lens on %s: %w", cam, focus.ErrUnknownCamera)
	}
	if !finite(value) {
		return fmt.Errorf("set lens on %s: %w", cam, ErrInvalidValue)
	}
	c.Lens = value
	return nil
}

// SetRotation implements focus.PoseWriter.
func (s *Scene) SetRotation(cam ecs.Entity, axis component.Axis, value float64) error {
	t, ok := s.Transform(cam)
	if !ok {
		return fmt.Errorf("set rotation on %s: %w", cam, focus.ErrUnknownObject)
	}
	if !axis.Valid() || !finite(value) {
		return fmt.Errorf("set rotation %s on %s: %w", axis, cam, ErrInvalidValue)
	}
	t.Rotation[axis] = value
	return nil
}

// SetShift implements focus.PoseWriter. Only the X and Y axes exist.
func (s *Scene) SetShift(cam ecs.Entity, axis component.Axis, value float64) error {
	c, ok := s.Camera(cam)
	if !ok {
		return fmt.Errorf("set shift on %s: %w", cam, focus.ErrUnknownCamera)
	}
	if !finite(value) {
		return fmt.Errorf("set shift on %s: %w", cam, ErrInvalidValue)
	}
	switch axis {
	case component.AxisX:
		c.ShiftX = value
	case component.AxisY:
		c.ShiftY = value
	default:
		return fmt.Errorf("set shift %s on %s: %w", axis, cam, ErrInvalidValue)
	}
	return nil
}

// Redraw implements focus.Presenter by publishing a redraw event.
func (s *Scene) Redraw() {
	s.redraws++
	s.bus.Publish(ecs.EventRedraw)
}

// Redraws returns how many redraw signals were sent.
func (s *Scene) Redraws() int {
	return s.redraws
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteVec(v mgl64.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}
