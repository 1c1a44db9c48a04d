package focus

import "errors"

var (
	// ErrDegenerateGeometry rejects a lock whose camera sits on the target's
	// plane of focus, where no ratio can be formed.
	ErrDegenerateGeometry = errors.New("focus: camera and focus target coincide")
	// ErrNoTarget is returned for a lock without a focus target when
	// Config.StrictTarget is set. Otherwise such a lock is accepted and inert.
	ErrNoTarget = errors.New("focus: lock has no focus target")
	// ErrUnknownCamera means the handle is dead or carries no lock record.
	ErrUnknownCamera = errors.New("focus: unknown camera")
	// ErrUnknownObject means a target or object handle no longer resolves.
	ErrUnknownObject = errors.New("focus: unknown object")
	// ErrNoActiveCamera is returned by operations that need the active camera
	// when the scene has none.
	ErrNoActiveCamera = errors.New("focus: no active camera")
)
