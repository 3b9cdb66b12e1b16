package render

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/milk9111/logicgates/ecs/component"
	"github.com/milk9111/logicgates/prefabs"
	"golang.org/x/image/colornames"
)

// Library holds the shared materials. Every renderer referencing a name gets
// the same *component.Material.
type Library struct {
	materials map[string]*component.Material
}

func NewLibrary() *Library {
	return &Library{materials: make(map[string]*component.Material)}
}

// LoadLibrary builds a library from materials.yaml.
func LoadLibrary() (*Library, error) {
	spec, err := prefabs.LoadMaterialsSpec()
	if err != nil {
		return nil, err
	}
	lib := NewLibrary()
	for _, m := range spec.Materials {
		if m.Name == "" {
			return nil, fmt.Errorf("render: material without name")
		}
		lib.Register(m.Name, m.Color.NRGBA(colorOf(colornames.White)))
	}
	return lib, nil
}

// Register adds or replaces a material by name.
func (l *Library) Register(name string, c color.NRGBA) *component.Material {
	if l == nil || name == "" {
		return nil
	}
	if m, ok := l.materials[name]; ok {
		m.Color = c
		return m
	}
	m := &component.Material{Name: name, Color: c}
	l.materials[name] = m
	return m
}

// Get returns the shared material or nil.
func (l *Library) Get(name string) *component.Material {
	if l == nil || name == "" {
		return nil
	}
	return l.materials[name]
}

// Names lists registered materials in sorted order.
func (l *Library) Names() []string {
	if l == nil {
		return nil
	}
	names := make([]string, 0, len(l.materials))
	for name := range l.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func colorOf(c color.RGBA) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
