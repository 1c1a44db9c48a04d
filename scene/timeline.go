package scene

import (
	"fmt"
	"slices"

	"github.com/milk9111/focallock/ecs"
	"github.com/milk9111/focallock/ecs/component"
	"github.com/milk9111/focallock/focus"
)

// FrameRange implements focus.Timeline.
func (s *Scene) FrameRange() (int, int) {
	return s.frameStart, s.frameEnd
}

// SetFrameRange sets the inclusive range used for playback and baking.
func (s *Scene) SetFrameRange(start, end int) error {
	if end < start {
		return fmt.Errorf("%w: %d..%d", ErrBadFrameRange, start, end)
	}
	s.frameStart, s.frameEnd = start, end
	return nil
}

// Frame implements focus.Timeline.
func (s *Scene) Frame() int {
	return s.frame
}

// SetFrame implements focus.Timeline: keyframes and animation systems are
// applied, constraints solved, then frame-changed is published.
func (s *Scene) SetFrame(frame int) {
	s.frame = frame
	s.evaluate()
	s.bus.Publish(ecs.EventFrameChanged)
}

// InsertKeyframe implements focus.Timeline by keying the channel's current
// value.
func (s *Scene) InsertKeyframe(e ecs.Entity, path string, frame int) error {
	v, err := s.readChannel(e, path)
	if err != nil {
		return err
	}
	kf, ok := ecs.Get(s.world, e, component.KeyframesComponent.Kind())
	if !ok {
		kf = &component.Keyframes{}
		if err := ecs.Add(s.world, e, component.KeyframesComponent.Kind(), kf); err != nil {
			return err
		}
	}
	if kf.Channels == nil {
		kf.Channels = map[string]map[int]float64{}
	}
	if kf.Channels[path] == nil {
		kf.Channels[path] = map[int]float64{}
	}
	kf.Channels[path][frame] = v
	return nil
}

// DeleteKeyframe implements focus.Timeline. It reports whether a key existed.
func (s *Scene) DeleteKeyframe(e ecs.Entity, path string, frame int) bool {
	kf, ok := ecs.Get(s.world, e, component.KeyframesComponent.Kind())
	if !ok {
		return false
	}
	keys, ok := kf.Channels[path]
	if !ok {
		return false
	}
	if _, ok := keys[frame]; !ok {
		return false
	}
	delete(keys, frame)
	if len(keys) == 0 {
		delete(kf.Channels, path)
	}
	return true
}

// Keyframes returns e's keyed channels.
func (s *Scene) Keyframes(e ecs.Entity) (*component.Keyframes, bool) {
	return ecs.Get(s.world, e, component.KeyframesComponent.Kind())
}

// Sample evaluates keys at frame: linear between keys, held flat outside
// them. It reports false for an empty channel.
func Sample(keys map[int]float64, frame int) (float64, bool) {
	if len(keys) == 0 {
		return 0, false
	}
	if v, ok := keys[frame]; ok {
		return v, true
	}
	frames := make([]int, 0, len(keys))
	for f := range keys {
		frames = append(frames, f)
	}
	slices.Sort(frames)

	if frame < frames[0] {
		return keys[frames[0]], true
	}
	last := frames[len(frames)-1]
	if frame > last {
		return keys[last], true
	}
	i, _ := slices.BinarySearch(frames, frame)
	f0, f1 := frames[i-1], frames[i]
	t := float64(frame-f0) / float64(f1-f0)
	return keys[f0] + (keys[f1]-keys[f0])*t, true
}

func (s *Scene) readChannel(e ecs.Entity, path string) (float64, error) {
	switch path {
	case component.PathLens, component.PathShiftX, component.PathShiftY:
		c, ok := s.Camera(e)
		if !ok {
			return 0, fmt.Errorf("read %s on %s: %w", path, e, focus.ErrUnknownCamera)
		}
		switch path {
		case component.PathLens:
			return c.Lens, nil
		case component.PathShiftX:
			return c.ShiftX, nil
		default:
			return c.ShiftY, nil
		}
	}
	t, ok := s.Transform(e)
	if !ok {
		return 0, fmt.Errorf("read %s on %s: %w", path, e, focus.ErrUnknownObject)
	}
	if v, ok := transformChannel(t, path); ok {
		return *v, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownChannel, path)
}

func (s *Scene) writeChannel(e ecs.Entity, path string, v float64) {
	switch path {
	case component.PathLens:
		_ = s.SetFocalLength(e, v)
	case component.PathShiftX:
		_ = s.SetShift(e, component.AxisX, v)
	case component.PathShiftY:
		_ = s.SetShift(e, component.AxisY, v)
	default:
		if t, ok := s.Transform(e); ok {
			if p, ok := transformChannel(t, path); ok {
				*p = v
			}
		}
	}
}

func transformChannel(t *component.Transform, path string) (*float64, bool) {
	switch path {
	case component.PathLocationX:
		return &t.Location[0], true
	case component.PathLocationY:
		return &t.Location[1], true
	case component.PathLocationZ:
		return &t.Location[2], true
	case component.PathRotationX:
		return &t.Rotation[0], true
	case component.PathRotationY:
		return &t.Rotation[1], true
	case component.PathRotationZ:
		return &t.Rotation[2], true
	}
	return nil, false
}

// keyframeSystem applies keyed channels for the scene's current frame.
type keyframeSystem struct {
	scene *Scene
}

func (k *keyframeSystem) Update(w *ecs.World) {
	frame := k.scene.frame
	ecs.ForEach(w, component.KeyframesComponent.Kind(), func(e ecs.Entity, kf *component.Keyframes) {
		for path, keys := range kf.Channels {
			if v, ok := Sample(keys, frame); ok {
				k.scene.writeChannel(e, path, v)
			}
		}
	})
}
