// The unmaterial package models the materials and textures decoded from
// Unreal engine packages as a graph of typed objects.
package unmaterial

// Kind identifies the type of a decoded object. Kinds form a single-parent
// chain that determines both field visibility and capability answers.
type Kind uint8

const (
	KindInvalid Kind = iota

	// Common root of every material kind.
	KindUnrealMaterial

	// First and second engine generations.
	KindMaterial
	KindRenderedMaterial
	KindConstantMaterial
	KindConstantColor
	KindBitmapMaterial
	KindTexture
	KindPalette
	KindShader
	KindFacingShader
	KindModifier
	KindFinalBlend
	KindTexModifier
	KindTexEnvMap
	KindTexOscillator
	KindTexPanner
	KindTexRotator
	KindTexScaler
	KindCombiner

	// Third engine generation.
	KindSurface
	KindTexture3
	KindTexture2D
	KindLightMapTexture2D
	KindTextureCube
	KindTexture3D
	KindMaterialInterface
	KindMaterial3
	KindMaterialInstance
	KindMaterialInstanceConstant

	kindCount
)

var kindInfo = [kindCount]struct {
	name   string
	parent Kind
}{
	KindUnrealMaterial:           {"UnrealMaterial", KindInvalid},
	KindMaterial:                 {"Material", KindUnrealMaterial},
	KindRenderedMaterial:         {"RenderedMaterial", KindMaterial},
	KindConstantMaterial:         {"ConstantMaterial", KindRenderedMaterial},
	KindConstantColor:            {"ConstantColor", KindConstantMaterial},
	KindBitmapMaterial:           {"BitmapMaterial", KindRenderedMaterial},
	KindTexture:                  {"Texture", KindBitmapMaterial},
	KindPalette:                  {"Palette", KindInvalid},
	KindShader:                   {"Shader", KindRenderedMaterial},
	KindFacingShader:             {"FacingShader", KindRenderedMaterial},
	KindModifier:                 {"Modifier", KindMaterial},
	KindFinalBlend:               {"FinalBlend", KindModifier},
	KindTexModifier:              {"TexModifier", KindModifier},
	KindTexEnvMap:                {"TexEnvMap", KindTexModifier},
	KindTexOscillator:            {"TexOscillator", KindTexModifier},
	KindTexPanner:                {"TexPanner", KindTexModifier},
	KindTexRotator:               {"TexRotator", KindTexModifier},
	KindTexScaler:                {"TexScaler", KindTexModifier},
	KindCombiner:                 {"Combiner", KindMaterial},
	KindSurface:                  {"Surface", KindUnrealMaterial},
	KindTexture3:                 {"Texture", KindSurface},
	KindTexture2D:                {"Texture2D", KindTexture3},
	KindLightMapTexture2D:        {"LightMapTexture2D", KindTexture2D},
	KindTextureCube:              {"TextureCube", KindTexture3},
	KindTexture3D:                {"Texture3D", KindTexture3},
	KindMaterialInterface:        {"MaterialInterface", KindUnrealMaterial},
	KindMaterial3:                {"Material", KindMaterialInterface},
	KindMaterialInstance:         {"MaterialInstance", KindMaterialInterface},
	KindMaterialInstanceConstant: {"MaterialInstanceConstant", KindMaterialInstance},
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount-1)
	for k := KindInvalid + 1; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Valid returns whether k is a known kind.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}

// String returns the engine's class name for the kind. The two generations
// reuse the names Material and Texture.
func (k Kind) String() string {
	if !k.Valid() {
		return "Invalid"
	}
	return kindInfo[k].name
}

// Parent returns the kind that k inherits from, or KindInvalid for a root.
func (k Kind) Parent() Kind {
	if !k.Valid() {
		return KindInvalid
	}
	return kindInfo[k].parent
}

// Is returns whether k is ancestor or descends from it.
func (k Kind) Is(ancestor Kind) bool {
	for ; k != KindInvalid; k = k.Parent() {
		if k == ancestor {
			return true
		}
	}
	return false
}

// Chain returns k and its ancestors, root first.
func (k Kind) Chain() []Kind {
	var chain []Kind
	for ; k != KindInvalid; k = k.Parent() {
		chain = append(chain, k)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Modern returns whether the kind belongs to the third engine generation.
func (k Kind) Modern() bool {
	return k.Is(KindSurface) || k.Is(KindMaterialInterface)
}
