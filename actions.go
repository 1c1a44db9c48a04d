package main

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/milk9111/focallock/ecs"
	"github.com/milk9111/focallock/ecs/component"
	"github.com/milk9111/focallock/prefabs"
	"golang.design/x/clipboard"
)

var errNoCamera = errors.New("no active camera")

func (g *Game) activeCamera() (ecs.Entity, error) {
	cam, ok := g.scene.ActiveCamera()
	if !ok {
		return 0, errNoCamera
	}
	return cam, nil
}

// apply runs an engine action on the active camera and publishes
// scene-updated so the result is visible immediately.
func (g *Game) apply(what string, fn func(cam ecs.Entity) error) {
	cam, err := g.activeCamera()
	if err == nil {
		err = fn(cam)
	}
	if err != nil {
		g.setStatus(fmt.Sprintf("%s: %v", what, err))
		return
	}
	g.scene.Update()
}

func (g *Game) step(delta int) {
	start, end := g.scene.FrameRange()
	frame := g.scene.Frame() + delta
	switch {
	case frame > end:
		frame = start
	case frame < start:
		frame = end
	}
	g.scene.SetFrame(frame)
}

func (g *Game) toggleLock() {
	g.apply("lock", func(cam ecs.Entity) error {
		lock, err := g.engine.Lock(cam)
		if err != nil {
			return err
		}
		return g.engine.SetLockEnabled(cam, !lock.Enabled)
	})
}

func (g *Game) toggleTracking() {
	g.apply("track", func(cam ecs.Entity) error {
		lock, err := g.engine.Lock(cam)
		if err != nil {
			return err
		}
		return g.engine.SetTracking(cam, !lock.Track)
	})
}

func (g *Game) toggleShift(axis component.Axis) {
	x, y := g.engine.ShiftLock()
	on := !y
	if axis == component.AxisX {
		on = !x
	}
	if err := g.engine.SetShiftLock(axis, on); err != nil {
		g.setStatus(fmt.Sprintf("shift lock %s: %v", axis, err))
		return
	}
	g.scene.Update()
}

func (g *Game) clearOthers(includeActive bool) {
	g.apply("clear", func(cam ecs.Entity) error {
		n := g.engine.ClearOtherLocks(cam, includeActive)
		g.setStatus(fmt.Sprintf("cleared %d lock(s)", n))
		return nil
	})
}

func (g *Game) bake() {
	g.apply("bake", func(cam ecs.Entity) error {
		n, err := g.engine.Bake(cam)
		if err != nil {
			return err
		}
		g.setStatus(fmt.Sprintf("baked %d key(s) on %s", n, g.scene.Name(cam)))
		return nil
	})
}

func (g *Game) clearBake() {
	g.apply("clear bake", func(cam ecs.Entity) error {
		n, err := g.engine.ClearBake(cam)
		if err != nil {
			return err
		}
		g.setStatus(fmt.Sprintf("removed %d key(s) from %s", n, g.scene.Name(cam)))
		return nil
	})
}

func (g *Game) nextCamera() {
	cams := g.scene.Cameras()
	if len(cams) == 0 {
		return
	}
	cur, _ := g.scene.ActiveCamera()
	i := slices.Index(cams, cur)
	next := cams[(i+1)%len(cams)]
	if err := g.scene.SetActiveCamera(next); err != nil {
		g.setStatus(err.Error())
		return
	}
	g.scene.Update()
}

// nextTarget cycles the active camera's focus target through every other
// entity, then back to none.
func (g *Game) nextTarget() {
	g.apply("target", func(cam ecs.Entity) error {
		var candidates []ecs.Entity
		ecs.ForEach(g.scene.World(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Transform) {
			if e != cam {
				candidates = append(candidates, e)
			}
		})
		slices.SortFunc(candidates, func(a, b ecs.Entity) int {
			return int(uint32(a)) - int(uint32(b))
		})
		candidates = append(candidates, 0)

		lock, err := g.engine.Lock(cam)
		if err != nil {
			return err
		}
		i := slices.Index(candidates, ecs.FromRef(lock.Target))
		return g.engine.SetFocusTarget(cam, candidates[(i+1)%len(candidates)])
	})
}

func (g *Game) save() {
	if g.scenePath == "" {
		g.setStatus("embedded scene: nothing to save to")
		return
	}
	if err := prefabs.Save(g.scenePath, prefabs.Snapshot(g.scene, g.engine)); err != nil {
		g.setStatus(err.Error())
		return
	}
	g.setStatus("saved " + g.scenePath)
}

var clipboardErr = sync.OnceValue(clipboard.Init)

func (g *Game) copyState() {
	if err := clipboardErr(); err != nil {
		g.setStatus("clipboard unavailable: " + err.Error())
		return
	}
	data, err := prefabs.Marshal(prefabs.Snapshot(g.scene, g.engine))
	if err != nil {
		g.setStatus(err.Error())
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.setStatus("scene state copied")
}
