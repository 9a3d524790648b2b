// The codec package decodes objects from an archive into the typed graph of
// the unmaterial package. Each kind is decoded in three steps: fields read
// before the property stream, one pass over the property stream, and an
// ordered list of rules gated on the archive's version.
package codec

import (
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/ueforge/unmaterial"
	"github.com/ueforge/unmaterial/archive"
)

// Class names differ between engine generations: the third generation
// reuses "Material" and "Texture" for new, unrelated classes.
var (
	legacyKinds = map[string]unmaterial.Kind{}
	modernKinds = map[string]unmaterial.Kind{}
)

func register(m map[string]unmaterial.Kind, kinds ...unmaterial.Kind) {
	for _, k := range kinds {
		m[strings.ToLower(k.String())] = k
	}
}

func init() {
	register(legacyKinds,
		unmaterial.KindMaterial,
		unmaterial.KindRenderedMaterial,
		unmaterial.KindConstantMaterial,
		unmaterial.KindConstantColor,
		unmaterial.KindBitmapMaterial,
		unmaterial.KindTexture,
		unmaterial.KindPalette,
		unmaterial.KindShader,
		unmaterial.KindFacingShader,
		unmaterial.KindModifier,
		unmaterial.KindFinalBlend,
		unmaterial.KindTexModifier,
		unmaterial.KindTexEnvMap,
		unmaterial.KindTexOscillator,
		unmaterial.KindTexPanner,
		unmaterial.KindTexRotator,
		unmaterial.KindTexScaler,
		unmaterial.KindCombiner,
	)
	register(modernKinds,
		unmaterial.KindSurface,
		unmaterial.KindTexture3,
		unmaterial.KindTexture2D,
		unmaterial.KindLightMapTexture2D,
		unmaterial.KindTextureCube,
		unmaterial.KindTexture3D,
		unmaterial.KindMaterialInterface,
		unmaterial.KindMaterial3,
		unmaterial.KindMaterialInstance,
		unmaterial.KindMaterialInstanceConstant,
	)
	// Kinds common to both generations.
	register(modernKinds, unmaterial.KindPalette)
	// Shadow maps share the layout of 2D textures.
	modernKinds["shadowmaptexture2d"] = unmaterial.KindTexture2D
}

// Lookup returns the kind decoded for objects of the named class in
// archives of version v. Class names are matched case-insensitively.
func Lookup(typeName string, v archive.Version) (unmaterial.Kind, bool) {
	m := legacyKinds
	if v.Modern() {
		m = modernKinds
	}
	k, ok := m[strings.ToLower(typeName)]
	return k, ok
}

// ClassNames returns the class names decodable in archives of version v,
// sorted.
func ClassNames(v archive.Version) []string {
	m := legacyKinds
	if v.Modern() {
		m = modernKinds
	}
	names := lo.Uniq(lo.Map(lo.Values(m), func(k unmaterial.Kind, _ int) string { return k.String() }))
	sort.Strings(names)
	return names
}
