package focus_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/focallock/ecs/component"
	"github.com/milk9111/focallock/focus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBakeAndClear(t *testing.T) {
	f := newFixture(t, focus.DefaultConfig())
	require.NoError(t, f.scene.SetFrameRange(1, 5))
	require.NoError(t, f.scene.InsertKeyframe(f.cam, component.PathLocationZ, 1))
	require.NoError(t, f.scene.Move(f.cam, mgl64.Vec3{0, 0, 20}))
	require.NoError(t, f.scene.InsertKeyframe(f.cam, component.PathLocationZ, 5))
	f.scene.SetFrame(1)

	require.NoError(t, f.engine.SetFocusTarget(f.cam, f.target))
	require.NoError(t, f.engine.EnableLock(f.cam))
	f.scene.SetFrame(3)

	n, err := f.engine.Bake(f.cam)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 3, f.scene.Frame(), "playhead restored")

	kf, ok := f.scene.Keyframes(f.cam)
	require.True(t, ok)
	lens := kf.Channels[component.PathLens]
	require.Len(t, lens, 5)
	assert.InDelta(t, 35, lens[1], 1e-9)
	assert.InDelta(t, 52.5, lens[3], 1e-9)
	assert.InDelta(t, 70, lens[5], 1e-9)

	n, err = f.engine.ClearBake(f.cam)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	_, ok = kf.Channels[component.PathLens]
	assert.False(t, ok)

	n, err = f.engine.ClearBake(f.cam)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestBakeInactiveCamera(t *testing.T) {
	f := newFixture(t, focus.DefaultConfig())
	require.NoError(t, f.scene.SetFrameRange(1, 3))
	cam2, err := f.scene.NewCamera("cam2", component.NewTransform(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}), component.Camera{Lens: 35})
	require.NoError(t, err)
	require.NoError(t, f.scene.InsertKeyframe(cam2, component.PathLocationZ, 1))
	require.NoError(t, f.scene.Move(cam2, mgl64.Vec3{0, 0, 30}))
	require.NoError(t, f.scene.InsertKeyframe(cam2, component.PathLocationZ, 3))
	f.scene.SetFrame(1)

	active, ok := f.scene.ActiveCamera()
	require.True(t, ok)
	require.Equal(t, f.cam, active)

	require.NoError(t, f.engine.SetFocusTarget(cam2, f.target))
	require.NoError(t, f.engine.EnableLock(cam2))

	n, err := f.engine.Bake(cam2)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	kf, ok := f.scene.Keyframes(cam2)
	require.True(t, ok)
	lens := kf.Channels[component.PathLens]
	require.Len(t, lens, 3)
	assert.InDelta(t, 35, lens[1], 1e-9)
	assert.InDelta(t, 70, lens[2], 1e-9)
	assert.InDelta(t, 105, lens[3], 1e-9)
}

func TestBakeWithoutSubscription(t *testing.T) {
	f := newFixture(t, focus.DefaultConfig())
	f.engine.Close()
	require.NoError(t, f.scene.SetFrameRange(1, 2))
	require.NoError(t, f.engine.SetFocusTarget(f.cam, f.target))
	require.NoError(t, f.engine.EnableLock(f.cam))

	start := f.engine.Ticks()
	n, err := f.engine.Bake(f.cam)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, start+2, f.engine.Ticks())
}

func TestBakeUnknownCamera(t *testing.T) {
	f := newFixture(t, focus.DefaultConfig())
	_, err := f.engine.Bake(f.target)
	assert.ErrorIs(t, err, focus.ErrUnknownCamera)
}
