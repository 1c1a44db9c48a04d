package focus_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/focallock/ecs/component"
	"github.com/milk9111/focallock/focus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackingLifecycle(t *testing.T) {
	f := newFixture(t, focus.DefaultConfig())
	require.NoError(t, f.engine.SetFocusTarget(f.cam, f.target))

	require.NoError(t, f.engine.SetTracking(f.cam, true))
	require.NoError(t, f.engine.SetTracking(f.cam, true), "enabling twice retargets in place")

	c, ok := f.scene.FindOrientationConstraint(f.cam)
	require.True(t, ok)
	assert.Equal(t, f.target.Ref(), c.Target)
	assert.Equal(t, component.TrackNegativeZ, c.TrackAxis)
	assert.Equal(t, component.UpY, c.UpAxis)

	lock, _ := f.engine.Lock(f.cam)
	assert.True(t, lock.Track)

	require.NoError(t, f.engine.SetTracking(f.cam, false))
	require.NoError(t, f.engine.SetTracking(f.cam, false), "removing a missing constraint is a no-op")
	_, ok = f.scene.FindOrientationConstraint(f.cam)
	assert.False(t, ok)
}

func TestTrackingFollowsTargetChange(t *testing.T) {
	f := newFixture(t, focus.DefaultConfig())
	other, err := f.scene.NewObject("other", component.NewTransform(mgl64.Vec3{5, 0, 0}, mgl64.Vec3{}))
	require.NoError(t, err)

	require.NoError(t, f.engine.SetFocusTarget(f.cam, f.target))
	require.NoError(t, f.engine.SetTracking(f.cam, true))
	require.NoError(t, f.engine.SetFocusTarget(f.cam, other))

	c, ok := f.scene.FindOrientationConstraint(f.cam)
	require.True(t, ok)
	assert.Equal(t, other.Ref(), c.Target)
}

func TestTrackedCameraKeepsSubjectOnAxis(t *testing.T) {
	f := newFixture(t, focus.DefaultConfig())
	require.NoError(t, f.engine.SetFocusTarget(f.cam, f.target))
	require.NoError(t, f.engine.SetTracking(f.cam, true))
	require.NoError(t, f.engine.EnableLock(f.cam))

	// orbit sideways: the constraint turns the camera so the plane distance
	// equals the straight-line distance
	f.move(t, f.cam, mgl64.Vec3{12, 16, 0})
	assert.InDelta(t, 20*3.5, f.lens(t, f.cam), 1e-9)
}

func TestTrackerDetachReportsRemoval(t *testing.T) {
	f := newFixture(t, focus.DefaultConfig())
	tr := focus.Tracker{Constraints: f.scene}

	assert.False(t, tr.Detach(f.cam))
	require.NoError(t, tr.Attach(f.cam, f.target))
	assert.True(t, tr.Detach(f.cam))
}
