package focus

import (
	"log/slog"
	"sync"

	"github.com/milk9111/focallock/ecs"
	"github.com/milk9111/focallock/ecs/component"
	"github.com/milk9111/focallock/internal/log"
)

// Engine runs the focal lock against one Host. All exported methods are
// serialized; they may be called from any goroutine.
type Engine struct {
	mu      sync.Mutex
	host    Host
	cfg     Config
	tracker Tracker
	shift   shiftState
	subs    []*ecs.Subscription
	ticks   uint64
	logger  *slog.Logger
}

// TickReport summarizes one recomputation pass.
type TickReport struct {
	// Updated lists cameras whose focal length was rewritten.
	Updated []ecs.Entity
	// Skipped counts locked cameras that could not be recomputed.
	Skipped int
	// ShiftApplied reports whether shift compensation ran.
	ShiftApplied bool
}

// New creates an engine for host. A zero ShiftCorrection is replaced by
// DefaultShiftCorrection.
func New(host Host, cfg Config) *Engine {
	return &Engine{
		host:    host,
		cfg:     cfg.withDefaults(),
		tracker: Tracker{Constraints: host},
		logger:  log.With("pkg", "focus"),
	}
}

// Config returns the active preferences.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// SetConfig replaces the preferences. Existing locks keep their ratios.
func (e *Engine) SetConfig(cfg Config) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg = cfg.withDefaults()
}

// Ticks returns how many passes have run.
func (e *Engine) Ticks() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ticks
}

// Subscribe runs Tick on every scene-updated, frame-changed and file-loaded
// event published on bus. Calling it again while subscribed does nothing.
func (e *Engine) Subscribe(bus *ecs.Bus) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.subs) > 0 || bus == nil {
		return
	}
	for _, kind := range []ecs.EventKind{ecs.EventSceneUpdated, ecs.EventFrameChanged, ecs.EventFileLoaded} {
		e.subs = append(e.subs, bus.Subscribe(kind, func() { e.Tick() }))
	}
}

// Subscribed reports whether the engine is listening to a bus.
func (e *Engine) Subscribed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs) > 0
}

// Close drops the event subscriptions.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, s := range e.subs {
		s.Close()
	}
	e.subs = nil
}

// Tick recomputes the focal length of every locked camera in the working
// set, applies shift compensation to the active camera and signals a redraw.
// A failing camera is skipped without affecting the others.
//
// The redraw is signalled after the engine lock is released, so redraw
// handlers may call back into the engine.
func (e *Engine) Tick() TickReport {
	e.mu.Lock()
	report := e.tick()
	e.mu.Unlock()

	e.host.Redraw()
	return report
}

func (e *Engine) tick() TickReport {
	e.ticks++
	var report TickReport

	for _, cam := range e.workingSet() {
		updated, err := e.recompute(cam)
		if err != nil {
			report.Skipped++
			e.logger.Warn("skip camera", "camera", cam, "err", err)
			continue
		}
		if updated {
			report.Updated = append(report.Updated, cam)
		}
	}

	// shift math reads the lens shift only, so it always runs after the
	// focal pass within the same tick
	if e.shift.any() {
		applied, err := e.applyShift()
		if err != nil {
			e.logger.Warn("shift compensation", "err", err)
		}
		report.ShiftApplied = applied
	}
	return report
}

func (e *Engine) workingSet() []ecs.Entity {
	if e.cfg.UpdateOnlyActive {
		if cam, ok := e.host.ActiveCamera(); ok {
			return []ecs.Entity{cam}
		}
		return nil
	}
	return e.host.Cameras()
}

// recompute applies focal = distance * ratio to one camera. It reports false
// with no error for cameras that are unlocked or inert.
func (e *Engine) recompute(cam ecs.Entity) (bool, error) {
	lock, ok := e.host.FocalLock(cam)
	if !ok {
		return false, ErrUnknownCamera
	}
	if !lock.Enabled || !lock.Target.Set() {
		return false, nil
	}
	if !lock.Captured() {
		e.logger.Debug("lock has no ratio yet", "camera", cam)
		return false, nil
	}

	pose, err := e.host.CameraPose(cam)
	if err != nil {
		return false, err
	}
	target, err := e.host.ObjectPosition(ecs.FromRef(lock.Target))
	if err != nil {
		return false, err
	}

	focal := DistanceToPlane(pose, target) * lock.Ratio
	if err := e.host.SetFocalLength(cam, focal); err != nil {
		return false, err
	}
	return true, nil
}

// LockSummary returns how many cameras have an enabled lock and how many
// cameras carry a lock record.
func (e *Engine) LockSummary() (locked, total int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, cam := range e.host.Cameras() {
		total++
		if lock, ok := e.host.FocalLock(cam); ok && lock.Enabled {
			locked++
		}
	}
	return locked, total
}

// Lock returns a copy of cam's lock record.
func (e *Engine) Lock(cam ecs.Entity) (component.FocalLock, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.host.FocalLock(cam)
	if !ok {
		return component.FocalLock{}, ErrUnknownCamera
	}
	return *lock, nil
}
