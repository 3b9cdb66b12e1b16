package component

import "image/color"

// Material is a shared appearance asset. Many renderers may point at the same
// Material; it must never be modified to show per-instance state.
type Material struct {
	Name  string
	Color color.NRGBA
}

// Renderer draws an entity's collider with a shared material and an optional
// per-instance colour override.
type Renderer struct {
	Material    *Material
	Override    color.NRGBA
	HasOverride bool
}

// EffectiveColor prefers the instance override, then the shared material,
// then white.
func (r *Renderer) EffectiveColor() color.NRGBA {
	if r == nil {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	if r.HasOverride {
		return r.Override
	}
	if r.Material != nil {
		return r.Material.Color
	}
	return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}

// OverrideBlock is a reusable colour override, in the spirit of a material
// property block: read a renderer's override into it, change it, write it back.
type OverrideBlock struct {
	color color.NRGBA
	set   bool
}

// Read copies r's override into the block.
func (b *OverrideBlock) Read(r *Renderer) {
	b.color, b.set = r.Override, r.HasOverride
}

func (b *OverrideBlock) SetColor(c color.NRGBA) {
	b.color, b.set = c, true
}

// Write applies the block to r.
func (b *OverrideBlock) Write(r *Renderer) {
	r.Override, r.HasOverride = b.color, b.set
}

var RendererComponent = NewComponent[Renderer]()
