package prefabs

import (
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/focallock/focus"
	"gopkg.in/yaml.v3"
)

// SceneSpec is the on-disk form of a scene: preferences, shift-lock toggles,
// cameras with their lock records and the objects they can target.
type SceneSpec struct {
	Name         string        `yaml:"name"`
	FrameStart   int           `yaml:"frame_start"`
	FrameEnd     int           `yaml:"frame_end"`
	Frame        int           `yaml:"frame"`
	ActiveCamera string        `yaml:"active_camera"`
	Preferences  focus.Config  `yaml:"preferences"`
	ShiftLock    ShiftLockSpec `yaml:"shift_lock"`
	Cameras      []CameraSpec  `yaml:"cameras"`
	Objects      []ObjectSpec  `yaml:"objects"`
}

type ShiftLockSpec struct {
	X bool `yaml:"x"`
	Y bool `yaml:"y"`
}

type TransformSpec struct {
	Location Vec3  `yaml:"location"`
	Rotation Vec3  `yaml:"rotation"`
	Scale    *Vec3 `yaml:"scale,omitempty"`
}

type CameraSpec struct {
	Name          string                     `yaml:"name"`
	Transform     TransformSpec              `yaml:"transform"`
	Lens          float64                    `yaml:"lens"`
	ShiftX        float64                    `yaml:"shift_x"`
	ShiftY        float64                    `yaml:"shift_y"`
	Lock          LockSpec                   `yaml:"lock"`
	ShiftBaseline ShiftBaselineSpec          `yaml:"shift_baseline"`
	Keyframes     map[string]map[int]float64 `yaml:"keyframes,omitempty"`
	Script        string                     `yaml:"script,omitempty"`
}

// LockSpec is persisted verbatim; loading never recomputes the ratio.
type LockSpec struct {
	Enabled             bool    `yaml:"enabled"`
	Target              string  `yaml:"target,omitempty"`
	Track               bool    `yaml:"track"`
	BaselineFocalLength float64 `yaml:"baseline_focal_length"`
	BaselineDistance    float64 `yaml:"baseline_distance"`
	Ratio               float64 `yaml:"ratio"`
}

type ShiftBaselineSpec struct {
	ShiftX    float64 `yaml:"shift_x"`
	ShiftY    float64 `yaml:"shift_y"`
	RotationX float64 `yaml:"rotation_x"`
}

type ObjectSpec struct {
	Name      string                     `yaml:"name"`
	Transform TransformSpec              `yaml:"transform"`
	Keyframes map[string]map[int]float64 `yaml:"keyframes,omitempty"`
	Script    string                     `yaml:"script,omitempty"`
}

// LoadSpec reads filename and decodes it into a T. Fields absent from the
// document keep the values of def.
func LoadSpec[T any](filename string, def T) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	spec := def
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadSceneSpec reads a scene document. A missing preferences block means
// focus.DefaultConfig.
func LoadSceneSpec(filename string) (SceneSpec, error) {
	return LoadSpec(filename, SceneSpec{Preferences: focus.DefaultConfig()})
}

// LoadPreferences reads a standalone preferences document.
func LoadPreferences(filename string) (focus.Config, error) {
	return LoadSpec(filename, focus.DefaultConfig())
}

// DecodeSceneSpec parses a scene document held in memory.
func DecodeSceneSpec(data []byte) (SceneSpec, error) {
	spec := SceneSpec{Preferences: focus.DefaultConfig()}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return SceneSpec{}, fmt.Errorf("prefabs: unmarshal scene: %w", err)
	}
	return spec, nil
}

// Marshal encodes spec as yaml.
func Marshal(spec SceneSpec) ([]byte, error) {
	return yaml.Marshal(spec)
}

// Vec3 is written as a flow sequence, [x, y, z].
type Vec3 mgl64.Vec3

func (v *Vec3) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode || len(value.Content) != 3 {
		return fmt.Errorf("vector must be a sequence of 3 numbers, line %d", value.Line)
	}
	for i, n := range value.Content {
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return fmt.Errorf("vector component %d: %w", i, err)
		}
		v[i] = f
	}
	return nil
}

func (v Vec3) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, f := range v {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: strconv.FormatFloat(f, 'g', -1, 64),
		})
	}
	return node, nil
}
