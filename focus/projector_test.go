package focus

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func poseAt(pos, rot mgl64.Vec3) CameraPose {
	return CameraPose{Position: pos, Rotation: rot, Orientation: EulerToMat3(rot)}
}

func TestDistanceToPlane(t *testing.T) {
	tests := []struct {
		name   string
		pose   CameraPose
		target mgl64.Vec3
		want   float64
	}{
		{
			name:   "straight_down_negative_z",
			pose:   poseAt(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}),
			target: mgl64.Vec3{},
			want:   10,
		},
		{
			name:   "off_axis_target_uses_plane_not_ray",
			pose:   poseAt(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}),
			target: mgl64.Vec3{3, 4, 0},
			want:   10,
		},
		{
			name:   "target_behind_camera_is_unsigned",
			pose:   poseAt(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}),
			target: mgl64.Vec3{0, 0, 14},
			want:   4,
		},
		{
			name:   "rotated_to_look_along_positive_y",
			pose:   poseAt(mgl64.Vec3{}, mgl64.Vec3{math.Pi / 2, 0, 0}),
			target: mgl64.Vec3{2, 7, 1},
			want:   7,
		},
		{
			name:   "coincident_is_zero",
			pose:   poseAt(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0.3, 0.2, 0.1}),
			target: mgl64.Vec3{1, 2, 3},
			want:   0,
		},
		{
			name: "scaled_orientation_is_normalized",
			pose: CameraPose{
				Position:    mgl64.Vec3{0, 0, 10},
				Orientation: mgl64.Scale3D(2, 2, 2).Mat3(),
			},
			target: mgl64.Vec3{},
			want:   10,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, DistanceToPlane(tc.pose, tc.target), 1e-9)
		})
	}
}

func TestForwardAxisDegenerate(t *testing.T) {
	var zero mgl64.Mat3
	assert.Equal(t, mgl64.Vec3{}, ForwardAxis(zero))
	assert.Equal(t, 0.0, DistanceToPlane(CameraPose{Orientation: zero}, mgl64.Vec3{1, 1, 1}))
}

func TestEulerRoundTrip(t *testing.T) {
	for _, rot := range []mgl64.Vec3{
		{0, 0, 0},
		{0.2, -0.4, 1.1},
		{1.3, 0.5, -2.0},
		{math.Pi / 2, 0, 0},
	} {
		got := Mat3ToEuler(EulerToMat3(rot))
		for i := 0; i < 3; i++ {
			assert.InDelta(t, rot[i], got[i], 1e-9, "rot %v axis %d", rot, i)
		}
	}
}

func TestRound3(t *testing.T) {
	assert.Equal(t, 0.2, Round3(0.19999999999999998))
	assert.Equal(t, 0.181, Round3(math.Atan(0.915*0.2)))
	assert.Equal(t, -0.123, Round3(-0.12345))
}
