package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
)

//go:embed *.json
var LevelsFS embed.FS

// Dir is checked before the embedded levels.
const Dir = "levels"

type Level struct {
	Name     string       `json:"name"`
	Camera   CameraDef    `json:"camera"`
	Menu     MenuDef      `json:"menu"`
	Decor    []BoxDef     `json:"decor,omitempty"`
	Variants []VariantDef `json:"variants"`
}

type Vec3 [3]float64

func (v Vec3) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}

type CameraDef struct {
	Position Vec3    `json:"position"`
	Target   Vec3    `json:"target"`
	FOV      float64 `json:"fov"`
	Near     float64 `json:"near"`
	Far      float64 `json:"far"`
}

// BoxDef is any entity drawn or queried as an oriented box.
type BoxDef struct {
	Name        string  `json:"name"`
	Position    Vec3    `json:"position"`
	Yaw         float64 `json:"yaw,omitempty"`
	HalfExtents Vec3    `json:"half_extents"`
	Offset      Vec3    `json:"offset,omitempty"`
	Layer       string  `json:"layer,omitempty"`
	Material    string  `json:"material,omitempty"`
}

type MenuDef struct {
	Name     string      `json:"name"`
	Position Vec3        `json:"position"`
	Options  []OptionDef `json:"options"`
}

type OptionDef struct {
	BoxDef
	Kind     string `json:"kind"`
	Template string `json:"template,omitempty"`
}

type VariantDef struct {
	Variant int       `json:"variant"`
	Name    string    `json:"name"`
	Slots   []SlotDef `json:"slots"`
	Decor   []BoxDef  `json:"decor,omitempty"`
}

type SlotDef struct {
	BoxDef
	// Rule is a gate kind, or "AND|OR" for the relaxed rule.
	Rule           string     `json:"rule"`
	Anchor         *AnchorDef `json:"anchor,omitempty"`
	Detect         *BoxDef    `json:"detect,omitempty"`
	Visuals        []BoxDef   `json:"visuals,omitempty"`
	SolvedMaterial string     `json:"solved_material,omitempty"`
	GateMask       []string   `json:"gate_mask,omitempty"`
}

type AnchorDef struct {
	Position Vec3    `json:"position"`
	Yaw      float64 `json:"yaw,omitempty"`
}

// LoadLevel reads name from the levels directory on disk, falling back to the
// embedded copy.
func LoadLevel(name string) (*Level, error) {
	if filepath.Ext(name) == "" {
		name += ".json"
	}
	if data, err := os.ReadFile(filepath.Join(Dir, name)); err == nil {
		return parseLevel(data)
	}
	return LoadLevelFromFS(name)
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return parseLevel(data)
}

func parseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	return &lvl, nil
}
