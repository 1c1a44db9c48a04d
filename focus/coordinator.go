package focus

import "github.com/milk9111/focallock/ecs"

// ClearOtherLocks disables every enabled lock except active's, or all of
// them when includeActive is set. It returns how many locks were disabled.
func (e *Engine) ClearOtherLocks(active ecs.Entity, includeActive bool) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clearOtherLocks(active, includeActive)
}

func (e *Engine) clearOtherLocks(active ecs.Entity, includeActive bool) int {
	cleared := 0
	for _, cam := range e.host.Cameras() {
		if cam == active && !includeActive {
			continue
		}
		lock, ok := e.host.FocalLock(cam)
		if !ok || !lock.Enabled {
			continue
		}
		lock.Enabled = false
		cleared++
	}
	if cleared > 0 {
		e.logger.Debug("cleared locks", "count", cleared, "keep", active)
	}
	return cleared
}
