package focus

import (
	"fmt"

	"github.com/milk9111/focallock/ecs"
	"github.com/milk9111/focallock/ecs/component"
)

// Bake keys cam's focal length on every frame of the host's range. Each
// frame is evaluated (which ticks a subscribed engine) and cam is then
// recomputed on its own, so cameras outside the working set are keyed with
// their locked value too. The playhead is restored afterwards. It returns the
// number of keys written.
func (e *Engine) Bake(cam ecs.Entity) (int, error) {
	if _, err := e.Lock(cam); err != nil {
		return 0, fmt.Errorf("bake %s: %w", cam, err)
	}
	return e.walkFrames(func(frame int) (bool, error) {
		e.mu.Lock()
		_, err := e.recompute(cam)
		e.mu.Unlock()
		if err != nil {
			e.logger.Warn("bake keeps current lens", "camera", cam, "frame", frame, "err", err)
		}
		if err := e.host.InsertKeyframe(cam, component.PathLens, frame); err != nil {
			return false, fmt.Errorf("bake %s frame %d: %w", cam, frame, err)
		}
		return true, nil
	})
}

// ClearBake deletes cam's focal length keys over the host's frame range and
// returns how many were removed.
func (e *Engine) ClearBake(cam ecs.Entity) (int, error) {
	if _, err := e.Lock(cam); err != nil {
		return 0, fmt.Errorf("clear bake %s: %w", cam, err)
	}
	return e.walkFrames(func(frame int) (bool, error) {
		return e.host.DeleteKeyframe(cam, component.PathLens, frame), nil
	})
}

// walkFrames must not hold e.mu: SetFrame publishes frame-changed, which
// re-enters Tick through the subscription.
func (e *Engine) walkFrames(fn func(frame int) (bool, error)) (int, error) {
	start, end := e.host.FrameRange()
	orig := e.host.Frame()
	defer e.host.SetFrame(orig)

	n := 0
	for frame := start; frame <= end; frame++ {
		e.host.SetFrame(frame)
		if !e.Subscribed() {
			e.Tick()
		}
		ok, err := fn(frame)
		if err != nil {
			return n, err
		}
		if ok {
			n++
		}
	}
	return n, nil
}
