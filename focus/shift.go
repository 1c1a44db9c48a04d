package focus

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/focallock/ecs"
	"github.com/milk9111/focallock/ecs/component"
)

var errShiftAxis = errors.New("focus: shift lock axis must be x or y")

// shiftState holds the scene-wide shift-lock toggles.
type shiftState struct {
	x, y bool
}

func (s shiftState) any() bool {
	return s.x || s.y
}

// ShiftLock reports the scene shift-lock toggles.
func (e *Engine) ShiftLock() (x, y bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shift.x, e.shift.y
}

// SetShiftLock toggles shift compensation for one axis. Any change of state,
// on or off, recaptures the active camera's baseline shift and X rotation,
// so re-arming always starts from the current values.
func (e *Engine) SetShiftLock(axis component.Axis, on bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var flag *bool
	switch axis {
	case component.AxisX:
		flag = &e.shift.x
	case component.AxisY:
		flag = &e.shift.y
	default:
		return fmt.Errorf("%w: %s", errShiftAxis, axis)
	}
	if *flag == on {
		return nil
	}

	cam, ok := e.host.ActiveCamera()
	if !ok {
		return ErrNoActiveCamera
	}
	if err := e.captureShift(cam); err != nil {
		return err
	}
	*flag = on
	return nil
}

// RestoreShiftLock sets the toggles without touching any baseline. It is
// used when a saved scene is loaded with its baselines already in place.
func (e *Engine) RestoreShiftLock(x, y bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shift = shiftState{x: x, y: y}
}

func (e *Engine) captureShift(cam ecs.Entity) error {
	sl, ok := e.host.ShiftLock(cam)
	if !ok {
		return fmt.Errorf("capture shift on %s: %w", cam, ErrUnknownCamera)
	}
	pose, err := e.host.CameraPose(cam)
	if err != nil {
		return fmt.Errorf("capture shift on %s: %w", cam, err)
	}
	sl.ShiftX = pose.ShiftX
	sl.ShiftY = pose.ShiftY
	sl.RotationX = pose.Rotation[0]
	return nil
}

// ShiftCompensation returns the rotation that keeps the look direction while
// the shift moves from baseline to current: both shifts and the arctangent
// are rounded to three decimals so keyed results are reproducible.
func ShiftCompensation(baselineRotation, baselineShift, currentShift, k float64) float64 {
	delta := Round3(currentShift) - Round3(baselineShift)
	return baselineRotation - Round3(math.Atan(k*delta))
}

// applyShift compensates the active camera. Y shift drives X rotation and X
// shift drives Z rotation; both start from the X-rotation baseline.
func (e *Engine) applyShift() (bool, error) {
	cam, ok := e.host.ActiveCamera()
	if !ok {
		return false, ErrNoActiveCamera
	}
	sl, ok := e.host.ShiftLock(cam)
	if !ok {
		return false, ErrUnknownCamera
	}
	pose, err := e.host.CameraPose(cam)
	if err != nil {
		return false, err
	}

	k := e.cfg.ShiftCorrection
	if e.shift.y {
		rot := ShiftCompensation(sl.RotationX, sl.ShiftY, pose.ShiftY, k)
		if err := e.host.SetRotation(cam, component.AxisX, rot); err != nil {
			return false, err
		}
	}
	if e.shift.x {
		rot := ShiftCompensation(sl.RotationX, sl.ShiftX, pose.ShiftX, k)
		if err := e.host.SetRotation(cam, component.AxisZ, rot); err != nil {
			return false, err
		}
	}
	return true, nil
}
