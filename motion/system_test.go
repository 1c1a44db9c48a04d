package motion_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/focallock/ecs"
	"github.com/milk9111/focallock/ecs/component"
	"github.com/milk9111/focallock/focus"
	"github.com/milk9111/focallock/motion"
	"github.com/milk9111/focallock/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dolly = `
update := func(engine, state, frame) {
	engine.set_location(0, 0, 10 + frame)
	if state.calls == undefined {
		state.calls = 0
	}
	state.calls += 1
}
`

func setup(t *testing.T) (*scene.Scene, *motion.System, ecs.Entity, ecs.Entity) {
	t.Helper()
	s := scene.New()
	cam, err := s.NewCamera("cam", component.NewTransform(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}), component.Camera{Lens: 35})
	require.NoError(t, err)
	obj, err := s.NewObject("subject", component.NewTransform(mgl64.Vec3{}, mgl64.Vec3{}))
	require.NoError(t, err)
	sys := motion.NewSystem(s)
	s.AddSystem(sys)
	return s, sys, cam, obj
}

func attach(t *testing.T, s *scene.Scene, e ecs.Entity, src string) {
	t.Helper()
	require.NoError(t, ecs.Add(s.World(), e, component.MotionScriptComponent.Kind(), &component.MotionScript{Path: "test.tengo", Source: []byte(src)}))
}

func TestScriptMovesEntity(t *testing.T) {
	s, sys, cam, _ := setup(t)
	attach(t, s, cam, dolly)

	s.SetFrame(5)
	require.NoError(t, sys.Err(cam))
	tr, _ := s.Transform(cam)
	assert.Equal(t, mgl64.Vec3{0, 0, 15}, tr.Location)

	s.SetFrame(20)
	assert.Equal(t, mgl64.Vec3{0, 0, 30}, tr.Location)
}

func TestScriptStatePersists(t *testing.T) {
	s, sys, cam, _ := setup(t)
	attach(t, s, cam, `
update := func(engine, state, frame) {
	if state.n == undefined {
		state.n = 0
	}
	state.n += 1
	engine.set_lens(float(state.n))
}
`)
	for f := 1; f <= 3; f++ {
		s.SetFrame(f)
	}
	require.NoError(t, sys.Err(cam))
	c, _ := s.Camera(cam)
	assert.Equal(t, 3.0, c.Lens)

	sys.Reset()
	s.SetFrame(4)
	assert.Equal(t, 1.0, c.Lens, "reset drops script state")
}

func TestScriptReadsOtherEntities(t *testing.T) {
	s, sys, cam, obj := setup(t)
	require.NoError(t, s.Move(obj, mgl64.Vec3{2, 3, 4}))
	attach(t, s, cam, `
update := func(engine, state, frame) {
	p := engine.get_location("subject")
	engine.set_location(p[0], p[1], p[2] + 10)
	engine.set_shift(0.1, -0.2)
}
`)
	s.SetFrame(1)
	require.NoError(t, sys.Err(cam))

	tr, _ := s.Transform(cam)
	assert.Equal(t, mgl64.Vec3{2, 3, 14}, tr.Location)
	c, _ := s.Camera(cam)
	assert.Equal(t, 0.1, c.ShiftX)
	assert.Equal(t, -0.2, c.ShiftY)
}

func TestScriptErrorIsIsolated(t *testing.T) {
	s, sys, cam, obj := setup(t)
	attach(t, s, cam, `
update := func(engine, state, frame) {
	engine.set_lens("wide")
}
`)
	attach(t, s, obj, `
update := func(engine, state, frame) {
	engine.set_rotation(0, 0, frame)
}
`)
	s.SetFrame(2)

	assert.Error(t, sys.Err(cam))
	assert.NoError(t, sys.Err(obj))
	tr, _ := s.Transform(obj)
	assert.Equal(t, 2.0, tr.Rotation[2])
}

func TestScriptSourceChangeRecompiles(t *testing.T) {
	s, _, cam, _ := setup(t)
	attach(t, s, cam, dolly)
	s.SetFrame(1)

	ms, ok := ecs.Get(s.World(), cam, component.MotionScriptComponent.Kind())
	require.True(t, ok)
	ms.Source = []byte(`
update := func(engine, state, frame) {
	engine.set_location(0, 0, 100)
}
`)
	s.SetFrame(2)
	tr, _ := s.Transform(cam)
	assert.Equal(t, 100.0, tr.Location[2])
}

func TestCheck(t *testing.T) {
	assert.NoError(t, motion.Check("dolly.tengo", []byte(dolly)))
	assert.Error(t, motion.Check("empty.tengo", []byte(`x := 1`)), "update must be defined")
	assert.Error(t, motion.Check("broken.tengo", []byte(`update := func(`)))
}

func TestScriptDrivesFocalLock(t *testing.T) {
	s, _, cam, obj := setup(t)
	attach(t, s, cam, dolly)
	s.SetFrame(0)

	e := focus.New(s, focus.DefaultConfig())
	e.Subscribe(s.Bus())
	defer e.Close()
	require.NoError(t, e.SetFocusTarget(cam, obj))
	require.NoError(t, e.EnableLock(cam))

	s.SetFrame(10)
	c, _ := s.Camera(cam)
	assert.InDelta(t, 70, c.Lens, 1e-9)
}
