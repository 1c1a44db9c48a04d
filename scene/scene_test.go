package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/focallock/ecs"
	"github.com/milk9111/focallock/ecs/component"
	"github.com/milk9111/focallock/focus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScene(t *testing.T) (*Scene, ecs.Entity, ecs.Entity) {
	t.Helper()
	s := New()
	cam, err := s.NewCamera("cam", component.NewTransform(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}), component.Camera{Lens: 35})
	require.NoError(t, err)
	obj, err := s.NewObject("subject", component.NewTransform(mgl64.Vec3{}, mgl64.Vec3{}))
	require.NoError(t, err)
	return s, cam, obj
}

func TestNewCameraDefaults(t *testing.T) {
	s, cam, obj := newTestScene(t)

	active, ok := s.ActiveCamera()
	require.True(t, ok)
	assert.Equal(t, cam, active)
	assert.Equal(t, []ecs.Entity{cam}, s.Cameras())

	lock, ok := s.FocalLock(cam)
	require.True(t, ok)
	assert.False(t, lock.Enabled)
	assert.False(t, lock.Target.Set())

	_, ok = s.FocalLock(obj)
	assert.False(t, ok, "objects carry no lock")

	_, err := s.NewObject("cam", component.Transform{})
	assert.ErrorIs(t, err, ErrDuplicateName)

	assert.ErrorIs(t, s.SetActiveCamera(obj), ErrNotCamera)
}

func TestCameraPose(t *testing.T) {
	s, cam, _ := newTestScene(t)
	require.NoError(t, s.SetShift(cam, component.AxisY, 0.25))

	pose, err := s.CameraPose(cam)
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{0, 0, 10}, pose.Position)
	assert.Equal(t, 35.0, pose.FocalLength)
	assert.Equal(t, 0.25, pose.ShiftY)
	assert.InDelta(t, 10, focus.DistanceToPlane(pose, mgl64.Vec3{}), 1e-12)

	assert.ErrorIs(t, s.SetShift(cam, component.AxisZ, 1), ErrInvalidValue)
	assert.ErrorIs(t, s.SetFocalLength(cam, math.NaN()), ErrInvalidValue)
}

func TestRemovedTargetStopsResolving(t *testing.T) {
	s, _, obj := newTestScene(t)
	require.True(t, s.Remove(obj))
	assert.False(t, s.Remove(obj))

	_, err := s.ObjectPosition(obj)
	assert.ErrorIs(t, err, focus.ErrUnknownObject)
	_, ok := s.Lookup("subject")
	assert.False(t, ok)
}

func TestLookRotation(t *testing.T) {
	tests := []struct {
		name   string
		eye    mgl64.Vec3
		target mgl64.Vec3
		want   mgl64.Vec3
	}{
		{"down_negative_z", mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}, mgl64.Vec3{0, 0, 0}},
		{"along_positive_y", mgl64.Vec3{0, -10, 0}, mgl64.Vec3{}, mgl64.Vec3{math.Pi / 2, 0, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rot, ok := LookRotation(tc.eye, tc.target)
			require.True(t, ok)
			for i := 0; i < 3; i++ {
				assert.InDelta(t, tc.want[i], rot[i], 1e-9)
			}
		})
	}

	_, ok := LookRotation(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 1, 1})
	assert.False(t, ok)
}

func TestLookRotationAimsAtTarget(t *testing.T) {
	eye := mgl64.Vec3{4, -3, 2}
	target := mgl64.Vec3{-1, 5, 0.5}
	rot, ok := LookRotation(eye, target)
	require.True(t, ok)

	fwd := focus.ForwardAxis(focus.EulerToMat3(rot))
	want := target.Sub(eye).Normalize()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], fwd[i], 1e-9)
	}
}

func TestOrientationConstraintLifecycle(t *testing.T) {
	s, cam, obj := newTestScene(t)

	require.NoError(t, s.AddOrientationConstraint(cam, obj, component.TrackNegativeZ, component.UpY))
	assert.ErrorIs(t, s.AddOrientationConstraint(cam, obj, component.TrackNegativeZ, component.UpY), ErrConstraintExists)

	require.NoError(t, s.Move(cam, mgl64.Vec3{0, -10, 0}))
	s.Update()
	tr, _ := s.Transform(cam)
	assert.InDelta(t, math.Pi/2, tr.Rotation[0], 1e-9)

	assert.True(t, s.RemoveOrientationConstraint(cam))
	assert.False(t, s.RemoveOrientationConstraint(cam))
	assert.False(t, s.RemoveOrientationConstraint(cam))
	_, ok := s.FindOrientationConstraint(cam)
	assert.False(t, ok)
}

func TestSample(t *testing.T) {
	keys := map[int]float64{1: 10, 5: 30, 9: 30}
	cases := []struct {
		frame int
		want  float64
	}{
		{-3, 10},
		{1, 10},
		{3, 20},
		{5, 30},
		{7, 30},
		{20, 30},
	}
	for _, c := range cases {
		got, ok := Sample(keys, c.frame)
		require.True(t, ok)
		assert.InDelta(t, c.want, got, 1e-12, "frame %d", c.frame)
	}
	_, ok := Sample(nil, 1)
	assert.False(t, ok)
}

func TestKeyframesDriveFrames(t *testing.T) {
	s, cam, _ := newTestScene(t)
	require.NoError(t, s.SetFrameRange(1, 10))
	assert.ErrorIs(t, s.SetFrameRange(5, 1), ErrBadFrameRange)

	require.NoError(t, s.InsertKeyframe(cam, component.PathLocationZ, 1))
	require.NoError(t, s.Move(cam, mgl64.Vec3{0, 0, 20}))
	require.NoError(t, s.InsertKeyframe(cam, component.PathLocationZ, 10))
	assert.ErrorIs(t, s.InsertKeyframe(cam, "bogus", 1), ErrUnknownChannel)

	frames := 0
	s.Bus().Subscribe(ecs.EventFrameChanged, func() { frames++ })
	s.SetFrame(1)
	tr, _ := s.Transform(cam)
	assert.InDelta(t, 10, tr.Location[2], 1e-12)

	s.SetFrame(10)
	assert.InDelta(t, 20, tr.Location[2], 1e-12)
	assert.Equal(t, 2, frames)

	assert.True(t, s.DeleteKeyframe(cam, component.PathLocationZ, 10))
	assert.False(t, s.DeleteKeyframe(cam, component.PathLocationZ, 10))
	assert.False(t, s.DeleteKeyframe(cam, component.PathLens, 10))
}

func TestRedrawPublishes(t *testing.T) {
	s := New()
	got := 0
	s.Bus().Subscribe(ecs.EventRedraw, func() { got++ })
	s.Redraw()
	assert.Equal(t, 1, got)
	assert.Equal(t, 1, s.Redraws())
}
