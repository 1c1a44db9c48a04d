// Package motion runs tengo scripts that animate cameras and objects on every
// frame change, ahead of the focal lock pass.
package motion

import (
	"log/slog"

	"github.com/milk9111/focallock/ecs"
	"github.com/milk9111/focallock/ecs/component"
	"github.com/milk9111/focallock/internal/log"
)

// Stage is the part of the scene a script can see.
type Stage interface {
	Frame() int
	Name(e ecs.Entity) string
	Lookup(name string) (ecs.Entity, bool)
}

// System runs every MotionScript in the world. Compiled scripts are cached
// per entity and rebuilt when the script path or source changes.
type System struct {
	stage  Stage
	cache  map[ecs.Entity]*runtime
	source map[ecs.Entity]string
	errs   map[ecs.Entity]error
	logger *slog.Logger
}

var _ ecs.System = (*System)(nil)

func NewSystem(stage Stage) *System {
	return &System{
		stage:  stage,
		cache:  map[ecs.Entity]*runtime{},
		source: map[ecs.Entity]string{},
		errs:   map[ecs.Entity]error{},
		logger: log.With("pkg", "motion"),
	}
}

// Update implements ecs.System.
func (s *System) Update(w *ecs.World) {
	frame := s.stage.Frame()
	seen := map[ecs.Entity]bool{}

	ecs.ForEach(w, component.MotionScriptComponent.Kind(), func(e ecs.Entity, ms *component.MotionScript) {
		seen[e] = true
		rt, err := s.runtime(e, ms)
		if err != nil {
			s.fail(e, err)
			return
		}
		se := &scriptEngine{world: w, stage: s.stage, self: e}
		if err := rt.run(frame, se.build()); err != nil {
			s.fail(e, err)
			return
		}
		delete(s.errs, e)
	})

	for e := range s.cache {
		if !seen[e] {
			delete(s.cache, e)
			delete(s.source, e)
			delete(s.errs, e)
		}
	}
}

// Err returns the last failure of e's script, or nil.
func (s *System) Err(e ecs.Entity) error {
	return s.errs[e]
}

// Reset drops every compiled script and its state.
func (s *System) Reset() {
	clear(s.cache)
	clear(s.source)
	clear(s.errs)
}

func (s *System) runtime(e ecs.Entity, ms *component.MotionScript) (*runtime, error) {
	src := string(ms.Source)
	if rt, ok := s.cache[e]; ok && rt.path == ms.Path && s.source[e] == src {
		return rt, nil
	}
	rt, err := compile(ms.Path, ms.Source)
	if err != nil {
		delete(s.cache, e)
		return nil, err
	}
	s.cache[e] = rt
	s.source[e] = src
	return rt, nil
}

func (s *System) fail(e ecs.Entity, err error) {
	if s.errs[e] == nil {
		s.logger.Warn("motion script", "entity", s.stage.Name(e), "err", err)
	}
	s.errs[e] = err
}
