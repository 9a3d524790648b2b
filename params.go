package unmaterial

import "strings"

// Channel selects the texture channel a parameter is read from.
type Channel uint8

const (
	TC_NONE Channel = iota
	TC_R
	TC_G
	TC_B
	TC_A
	// TC_MA is one minus alpha.
	TC_MA
)

func (v Channel) String() string {
	return enumString([]string{"NONE", "R", "G", "B", "A", "MA"}, uint8(v), "Channel")
}

// Params is the normalized description of a material used by renderers:
// which texture supplies each surface input, and how.
type Params struct {
	Diffuse   *Object
	Normal    *Object
	Specular  *Object
	SpecPower *Object
	Opacity   *Object
	Emissive  *Object
	Cube      *Object
	// Mask holds several masks baked into one texture.
	Mask *Object

	EmissiveChannel      Channel
	SpecularMaskChannel  Channel
	SpecularPowerChannel Channel
	CubemapMaskChannel   Channel

	EmissiveColor LinearColor

	UseMobileSpecular   bool
	MobileSpecularPower float32
	MobileSpecularMask  MobileSpecularMask

	// SpecularFromAlpha indicates that specular intensity is the alpha of
	// the diffuse texture.
	SpecularFromAlpha bool
	// OpacityFromAlpha indicates that opacity is the alpha of the diffuse
	// texture.
	OpacityFromAlpha bool
}

// NewParams returns Params with no textures and the default emissive color.
func NewParams() Params {
	return Params{EmissiveColor: LinearColor{0.5, 0.5, 1, 1}}
}

// IsNull returns whether no surface texture is assigned. The mask texture
// alone does not make a material usable.
func (p Params) IsNull() bool {
	return p.Diffuse == nil && p.Normal == nil && p.Specular == nil && p.SpecPower == nil &&
		p.Opacity == nil && p.Emissive == nil && p.Cube == nil
}

type slot uint8

const (
	slotNone slot = iota
	slotDiffuse
	slotNormal
	slotSpecular
	slotSpecPower
	slotOpacity
	slotEmissive
	slotCube
	slotMask
)

func (p *Params) slot(s slot) **Object {
	switch s {
	case slotDiffuse:
		return &p.Diffuse
	case slotNormal:
		return &p.Normal
	case slotSpecular:
		return &p.Specular
	case slotSpecPower:
		return &p.SpecPower
	case slotOpacity:
		return &p.Opacity
	case slotEmissive:
		return &p.Emissive
	case slotCube:
		return &p.Cube
	case slotMask:
		return &p.Mask
	}
	return nil
}

// Hints are checked in order; the first match wins.
var slotHints = []struct {
	slot     slot
	suffixes []string
	contains []string
}{
	{slotNormal, []string{"_n", "_nm", "_norm"}, []string{"normal", "bump"}},
	{slotSpecPower, []string{"_sp", "_gloss"}, []string{"specpower", "specularpower", "gloss"}},
	{slotSpecular, []string{"_s", "_spec"}, []string{"specular"}},
	{slotEmissive, []string{"_e", "_i", "_glow"}, []string{"emissive", "glow", "illum"}},
	{slotOpacity, []string{"_a", "_o", "_alpha"}, []string{"opacity", "alpha"}},
	{slotMask, []string{"_m", "_msk"}, []string{"mask"}},
	{slotCube, []string{"_cube", "_env"}, []string{"cube", "reflection", "envmap"}},
	{slotDiffuse, []string{"_d", "_c", "_diff", "_col"}, []string{"diffuse", "color", "albedo"}},
}

// classify guesses the surface input of a texture from a texture or
// parameter name.
func classify(name string) slot {
	name = strings.ToLower(name)
	for _, h := range slotHints {
		for _, s := range h.suffixes {
			if strings.HasSuffix(name, s) {
				return h.slot
			}
		}
		for _, s := range h.contains {
			if strings.Contains(name, s) {
				return h.slot
			}
		}
	}
	return slotNone
}
