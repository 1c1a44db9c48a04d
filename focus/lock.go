package focus

import (
	"fmt"

	"github.com/milk9111/focallock/ecs"
	"github.com/milk9111/focallock/ecs/component"
)

// minDistance is the smallest plane distance a ratio may be formed from.
const minDistance = 1e-9

// SetLockEnabled is the property-setter form of EnableLock/DisableLock.
func (e *Engine) SetLockEnabled(cam ecs.Entity, enabled bool) error {
	if enabled {
		return e.EnableLock(cam)
	}
	return e.DisableLock(cam)
}

// EnableLock turns cam's lock on and captures its baseline against the
// current target. With AutoReset every other lock is disabled once the
// enable succeeds; a rejected enable leaves the other locks alone.
//
// A lock without a target is accepted and stays inert until a target is
// set, unless Config.StrictTarget is on, in which case ErrNoTarget is
// returned. A camera lying on the target's plane of focus is rejected with
// ErrDegenerateGeometry. Rejected locks are left disabled.
func (e *Engine) EnableLock(cam ecs.Entity) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enableLock(cam)
}

func (e *Engine) enableLock(cam ecs.Entity) error {
	lock, ok := e.host.FocalLock(cam)
	if !ok {
		return fmt.Errorf("enable lock on %s: %w", cam, ErrUnknownCamera)
	}

	if !lock.Target.Set() {
		if e.cfg.StrictTarget {
			lock.Enabled = false
			return fmt.Errorf("enable lock on %s: %w", cam, ErrNoTarget)
		}
		e.resetOthers(cam)
		lock.Enabled = true
		e.logger.Debug("lock enabled without target", "camera", cam)
		return nil
	}

	if err := e.capture(cam, lock); err != nil {
		lock.Enabled = false
		return fmt.Errorf("enable lock on %s: %w", cam, err)
	}
	e.resetOthers(cam)
	lock.Enabled = true
	e.logger.Debug("lock enabled", "camera", cam, "ratio", lock.Ratio)
	return nil
}

// resetOthers disables every other lock when AutoReset is on. It runs only
// once an enable is known to succeed.
func (e *Engine) resetOthers(cam ecs.Entity) {
	if e.cfg.AutoReset {
		e.clearOtherLocks(cam, false)
	}
}

// capture records the baseline focal length and plane distance. The lock is
// left untouched on error.
func (e *Engine) capture(cam ecs.Entity, lock *component.FocalLock) error {
	pose, err := e.host.CameraPose(cam)
	if err != nil {
		return err
	}
	target, err := e.host.ObjectPosition(ecs.FromRef(lock.Target))
	if err != nil {
		return err
	}
	d := DistanceToPlane(pose, target)
	if d < minDistance {
		return ErrDegenerateGeometry
	}
	lock.BaselineFocalLength = pose.FocalLength
	lock.BaselineDistance = d
	lock.Ratio = pose.FocalLength / d
	return nil
}

// DisableLock turns cam's lock off. Baseline values are kept but the next
// EnableLock captures fresh ones.
func (e *Engine) DisableLock(cam ecs.Entity) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.host.FocalLock(cam)
	if !ok {
		return fmt.Errorf("disable lock on %s: %w", cam, ErrUnknownCamera)
	}
	lock.Enabled = false
	return nil
}

// SetFocusTarget assigns cam's focus target; zero clears it. An enabled lock
// recaptures its baseline against the new target, and an active track-to
// constraint is pointed at it.
func (e *Engine) SetFocusTarget(cam, target ecs.Entity) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.host.FocalLock(cam)
	if !ok {
		return fmt.Errorf("set focus target on %s: %w", cam, ErrUnknownCamera)
	}
	lock.Target = target.Ref()

	var err error
	if lock.Enabled {
		err = e.enableLock(cam)
	}
	if lock.Track {
		if terr := e.tracker.Attach(cam, target); terr != nil && err == nil {
			err = fmt.Errorf("retarget tracking on %s: %w", cam, terr)
		}
	}
	return err
}
