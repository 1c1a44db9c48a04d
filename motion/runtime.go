package motion

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/focallock/ecs"
	"github.com/milk9111/focallock/ecs/component"
)

var errNotFinite = errors.New("motion: value is not finite")

// dispatchScript is appended to every motion script; the script itself must
// define update(engine, state, frame).
const dispatchScript = `
update(__engine, __state, __frame)
`

type runtime struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

func compile(path string, src []byte) (*runtime, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + dispatchScript))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__frame", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("motion: compile %s: %w", path, err)
	}
	return &runtime{
		path:     path,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// Check compiles src without running it.
func Check(path string, src []byte) error {
	_, err := compile(path, src)
	return err
}

func (rt *runtime) run(frame int, engine *tengo.ImmutableMap) error {
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	if err := rt.compiled.Set("__frame", frame); err != nil {
		return err
	}
	return rt.compiled.Run()
}

// scriptEngine is what one entity's script sees as its engine argument.
type scriptEngine struct {
	world *ecs.World
	stage Stage
	self  ecs.Entity
}

func (se *scriptEngine) build() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["name"] = &tengo.String{Value: se.stage.Name(se.self)}

	values["get_location"] = &tengo.UserFunction{Name: "get_location", Value: func(args ...tengo.Object) (tengo.Object, error) {
		t, ok := se.transform(args)
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return vecObject(t.Location), nil
	}}

	values["get_rotation"] = &tengo.UserFunction{Name: "get_rotation", Value: func(args ...tengo.Object) (tengo.Object, error) {
		t, ok := se.transform(args)
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return vecObject(t.Rotation), nil
	}}

	values["set_location"] = &tengo.UserFunction{Name: "set_location", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := vecArgs("set_location", args)
		if err != nil {
			return nil, err
		}
		t, ok := ecs.Get(se.world, se.self, component.TransformComponent.Kind())
		if !ok {
			return tengo.FalseValue, nil
		}
		t.Location = v
		return tengo.TrueValue, nil
	}}

	values["set_rotation"] = &tengo.UserFunction{Name: "set_rotation", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := vecArgs("set_rotation", args)
		if err != nil {
			return nil, err
		}
		t, ok := ecs.Get(se.world, se.self, component.TransformComponent.Kind())
		if !ok {
			return tengo.FalseValue, nil
		}
		t.Rotation = v
		return tengo.TrueValue, nil
	}}

	values["get_lens"] = &tengo.UserFunction{Name: "get_lens", Value: func(args ...tengo.Object) (tengo.Object, error) {
		c, ok := ecs.Get(se.world, se.self, component.CameraComponent.Kind())
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Float{Value: c.Lens}, nil
	}}

	values["set_lens"] = &tengo.UserFunction{Name: "set_lens", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		v, err := floatArg("set_lens", "first", args[0])
		if err != nil {
			return nil, err
		}
		c, ok := ecs.Get(se.world, se.self, component.CameraComponent.Kind())
		if !ok {
			return tengo.FalseValue, nil
		}
		c.Lens = v
		return tengo.TrueValue, nil
	}}

	values["set_shift"] = &tengo.UserFunction{Name: "set_shift", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, err := floatArg("set_shift", "first", args[0])
		if err != nil {
			return nil, err
		}
		y, err := floatArg("set_shift", "second", args[1])
		if err != nil {
			return nil, err
		}
		c, ok := ecs.Get(se.world, se.self, component.CameraComponent.Kind())
		if !ok {
			return tengo.FalseValue, nil
		}
		c.ShiftX, c.ShiftY = x, y
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

// transform resolves the optional entity-name argument of the getters.
func (se *scriptEngine) transform(args []tengo.Object) (*component.Transform, bool) {
	e := se.self
	if len(args) > 0 {
		name := strings.TrimSpace(objectAsString(args[0]))
		found, ok := se.stage.Lookup(name)
		if !ok {
			return nil, false
		}
		e = found
	}
	return ecs.Get(se.world, e, component.TransformComponent.Kind())
}

func vecObject(v mgl64.Vec3) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: v[0]},
		&tengo.Float{Value: v[1]},
		&tengo.Float{Value: v[2]},
	}}
}

func vecArgs(fn string, args []tengo.Object) (mgl64.Vec3, error) {
	if len(args) != 3 {
		return mgl64.Vec3{}, tengo.ErrWrongNumArguments
	}
	var v mgl64.Vec3
	for i, pos := range []string{"first", "second", "third"} {
		f, err := floatArg(fn, pos, args[i])
		if err != nil {
			return mgl64.Vec3{}, err
		}
		v[i] = f
	}
	return v, nil
}

func floatArg(fn, pos string, obj tengo.Object) (float64, error) {
	f, ok := tengo.ToFloat64(obj)
	if !ok {
		return 0, tengo.ErrInvalidArgumentType{Name: pos, Expected: "float(compatible)", Found: obj.TypeName()}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s: %w", fn, errNotFinite)
	}
	return f, nil
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
