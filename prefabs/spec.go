package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PuzzleSpec configures the interaction controller.
type PuzzleSpec struct {
	RayDistance float64    `yaml:"ray_distance"`
	MouseMask   []string   `yaml:"mouse_mask"`
	GateMask    []string   `yaml:"gate_mask"`
	HoverColor  *YAMLColor `yaml:"hover_color"`
}

func LoadPuzzleSpec() (*PuzzleSpec, error) {
	spec, err := LoadSpec[PuzzleSpec]("puzzle.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// GateSpec is the template a placed occupant is built from.
type GateSpec struct {
	Name     string       `yaml:"name"`
	Kind     string       `yaml:"kind"`
	Layer    string       `yaml:"layer"`
	Material string       `yaml:"material"`
	Collider ColliderSpec `yaml:"collider"`
}

func LoadGateSpec(name string) (*GateSpec, error) {
	spec, err := LoadSpec[GateSpec](name)
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(cleanPrefabPath(name), ".yaml")
	}
	return &spec, nil
}

type MaterialSpec struct {
	Name  string     `yaml:"name"`
	Color *YAMLColor `yaml:"color"`
}

type MaterialsSpec struct {
	Materials []MaterialSpec `yaml:"materials"`
}

func LoadMaterialsSpec() (*MaterialsSpec, error) {
	spec, err := LoadSpec[MaterialsSpec]("materials.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type ColliderSpec struct {
	HalfExtents Vec3Spec `yaml:"half_extents"`
	Offset      Vec3Spec `yaml:"offset"`
}

// Vec3Spec is written as a three element sequence, e.g. [0, 1.5, 0].
type Vec3Spec [3]float64

func (v Vec3Spec) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}

type YAMLColor struct {
	color.Color
}

// NRGBA converts the parsed colour, falling back to def when unset.
func (c *YAMLColor) NRGBA(def color.NRGBA) color.NRGBA {
	if c == nil || c.Color == nil {
		return def
	}
	return color.NRGBAModel.Convert(c.Color).(color.NRGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
