package codec

import (
	"github.com/ueforge/unmaterial"
	"github.com/ueforge/unmaterial/props"
)

// tables holds the property table of each kind. Each table inherits from
// the table of the kind's parent. Tables are read-only once built.
var tables = buildTables()

func bitmap(o *object) *unmaterial.BitmapMaterial { return o.BitmapMaterial() }

func texture(o *object) *unmaterial.Texture { return unmaterial.As[unmaterial.Texture](o) }

func shader(o *object) *unmaterial.Shader { return unmaterial.As[unmaterial.Shader](o) }

func facing(o *object) *unmaterial.FacingShader { return unmaterial.As[unmaterial.FacingShader](o) }

func finalBlend(o *object) *unmaterial.FinalBlend { return unmaterial.As[unmaterial.FinalBlend](o) }

func combiner(o *object) *unmaterial.Combiner { return unmaterial.As[unmaterial.Combiner](o) }

func oscillator(o *object) *unmaterial.TexOscillator { return unmaterial.As[unmaterial.TexOscillator](o) }

func panner(o *object) *unmaterial.TexPanner { return unmaterial.As[unmaterial.TexPanner](o) }

func rotator(o *object) *unmaterial.TexRotator { return unmaterial.As[unmaterial.TexRotator](o) }

func scaler(o *object) *unmaterial.TexScaler { return unmaterial.As[unmaterial.TexScaler](o) }

func cube(o *object) *unmaterial.TextureCube { return unmaterial.As[unmaterial.TextureCube](o) }

func volume(o *object) *unmaterial.Texture3D { return unmaterial.As[unmaterial.Texture3D](o) }

func material3(o *object) *unmaterial.Material3 { return unmaterial.As[unmaterial.Material3](o) }

func instanceConstant(o *object) *unmaterial.MaterialInstanceConstant {
	return unmaterial.As[unmaterial.MaterialInstanceConstant](o)
}

// mask declares a Bioshock channel mask property.
func mask(name string, field func(*object) *unmaterial.MaskMaterial) props.Descriptor {
	return props.Field(name, maskMaterialCodec, field)
}

func buildTables() map[unmaterial.Kind]*props.Table {
	t := map[unmaterial.Kind]*props.Table{}
	def := func(k unmaterial.Kind, descs ...props.Descriptor) *props.Table {
		table := props.NewTable(k.String(), t[k.Parent()]).Add(descs...)
		t[k] = table
		return table
	}

	def(unmaterial.KindUnrealMaterial)

	def(unmaterial.KindMaterial,
		props.Field("FallbackMaterial", refs, func(o *object) *ref { return &o.Material().FallbackMaterial }),
		props.Field("DefaultMaterial", refs, func(o *object) *ref { return &o.Material().DefaultMaterial }),
		props.Field("SurfaceType", props.Enum[uint8](), func(o *object) *uint8 { return &o.Material().SurfaceType }),
		props.Field("bUseTextureAsHeat", props.Bool, func(o *object) *bool { return &o.Material().UseTextureAsHeat }),
		props.Field("HeatMaterial", refs, func(o *object) *ref { return &o.Material().HeatMaterial }),
	).Drop("MaterialType", "MaterialVisualType", "Subtitle", "AcceptProjectors")

	def(unmaterial.KindRenderedMaterial)
	def(unmaterial.KindConstantMaterial)
	def(unmaterial.KindConstantColor,
		props.Field("Color", colorCodec, func(o *object) *unmaterial.Color {
			return &unmaterial.As[unmaterial.ConstantColor](o).Color
		}),
	)

	def(unmaterial.KindBitmapMaterial,
		props.Field("Format", props.Enum[unmaterial.TextureFormat](), func(o *object) *unmaterial.TextureFormat { return &bitmap(o).Format }),
		props.Field("UClampMode", props.Enum[unmaterial.ClampMode](), func(o *object) *unmaterial.ClampMode { return &bitmap(o).UClampMode }),
		props.Field("VClampMode", props.Enum[unmaterial.ClampMode](), func(o *object) *unmaterial.ClampMode { return &bitmap(o).VClampMode }),
		props.Field("UBits", props.Byte, func(o *object) *uint8 { return &bitmap(o).UBits }),
		props.Field("VBits", props.Byte, func(o *object) *uint8 { return &bitmap(o).VBits }),
		props.Field("USize", props.Int, func(o *object) *int32 { return &bitmap(o).USize }),
		props.Field("VSize", props.Int, func(o *object) *int32 { return &bitmap(o).VSize }),
		props.Field("UClamp", props.Int, func(o *object) *int32 { return &bitmap(o).UClamp }),
		props.Field("VClamp", props.Int, func(o *object) *int32 { return &bitmap(o).VClamp }),
	).Drop("Type")

	def(unmaterial.KindTexture,
		props.Field("Palette", refs, func(o *object) *ref { return &texture(o).Palette }),
		props.Field("Detail", refs, func(o *object) *ref { return &texture(o).Detail }),
		props.Field("DetailScale", props.Float, func(o *object) *float32 { return &texture(o).DetailScale }),
		props.Field("MipZero", colorCodec, func(o *object) *unmaterial.Color { return &texture(o).MipZero }),
		props.Field("MaxColor", colorCodec, func(o *object) *unmaterial.Color { return &texture(o).MaxColor }),
		props.Elem("InternalTime", props.Int, func(o *object) *[]int32 { return &texture(o).InternalTime }),
		props.Field("bMasked", props.Bool, func(o *object) *bool { return &texture(o).Masked }),
		props.Field("bAlphaTexture", props.Bool, func(o *object) *bool { return &texture(o).AlphaTexture }),
		props.Field("bTwoSided", props.Bool, func(o *object) *bool { return &texture(o).TwoSided }),
		props.Field("bHighColorQuality", props.Bool, func(o *object) *bool { return &texture(o).HighColorQuality }),
		props.Field("bHighTextureQuality", props.Bool, func(o *object) *bool { return &texture(o).HighTextureQuality }),
		props.Field("bRealtime", props.Bool, func(o *object) *bool { return &texture(o).Realtime }),
		props.Field("bParametric", props.Bool, func(o *object) *bool { return &texture(o).Parametric }),
		props.Field("LODSet", props.Enum[unmaterial.LODSet](), func(o *object) *unmaterial.LODSet { return &texture(o).LODSet }),
		props.Field("NormalLOD", props.Int, func(o *object) *int32 { return &texture(o).NormalLOD }),
		props.Field("MinLOD", props.Int, func(o *object) *int32 { return &texture(o).MinLOD }),
		props.Field("AnimNext", refs, func(o *object) *ref { return &texture(o).AnimNext }),
		props.Field("PrimeCount", props.Byte, func(o *object) *uint8 { return &texture(o).PrimeCount }),
		props.Field("MinFrameRate", props.Float, func(o *object) *float32 { return &texture(o).MinFrameRate }),
		props.Field("MaxFrameRate", props.Float, func(o *object) *float32 { return &texture(o).MaxFrameRate }),
		props.Field("CompFormat", props.Enum[unmaterial.TextureFormat](), func(o *object) *unmaterial.TextureFormat { return &texture(o).CompFormat }),
		props.Field("bHasComp", props.Bool, func(o *object) *bool { return &texture(o).HasComp }),
		props.Field("HasBeenStripped", props.Bool, func(o *object) *bool { return &texture(o).HasBeenStripped }),
		props.Field("StrippedNumMips", props.Byte, func(o *object) *uint8 { return &texture(o).StrippedNumMips }),
		props.Field("bBaked", props.Bool, func(o *object) *bool { return &texture(o).Baked }),
	).Drop(
		"ResourceCategory",
		"ConsoleDropMips",
		"bStreamable",
		// Also serialized natively, which takes precedence.
		"CachedBulkDataSize",
		"BestTextureInstanceWeight",
		"SourcePath",
		"Keywords",
		"LastModifiedTime_LoInt",
		"LastModifiedTime_HiInt",
		"LastModifiedByUser",
		"ForceTransparentSorting",
		"MaxAlphaClipValue",
		"MinAlphaClipValue",
	)

	def(unmaterial.KindPalette)

	def(unmaterial.KindShader,
		props.Field("Diffuse", refs, func(o *object) *ref { return &shader(o).Diffuse }),
		props.Field("NormalMap", refs, func(o *object) *ref { return &shader(o).NormalMap }),
		// Bioshock stores the opacity as a channel mask.
		props.Alt(
			props.Field("Opacity", refs, func(o *object) *ref { return &shader(o).Opacity }),
			mask("Opacity", func(o *object) *unmaterial.MaskMaterial { return &shader(o).OpacityMask }),
		),
		props.Field("Specular", refs, func(o *object) *ref { return &shader(o).Specular }),
		props.Field("SpecularityMask", refs, func(o *object) *ref { return &shader(o).SpecularityMask }),
		props.Field("SelfIllumination", refs, func(o *object) *ref { return &shader(o).SelfIllumination }),
		props.Field("SelfIlluminationMask", refs, func(o *object) *ref { return &shader(o).SelfIlluminationMask }),
		props.Field("Detail", refs, func(o *object) *ref { return &shader(o).Detail }),
		props.Field("DetailScale", props.Float, func(o *object) *float32 { return &shader(o).DetailScale }),
		props.Field("OutputBlending", props.Enum[unmaterial.OutputBlending](), func(o *object) *unmaterial.OutputBlending { return &shader(o).OutputBlending }),
		props.Field("TwoSided", props.Bool, func(o *object) *bool { return &shader(o).TwoSided }),
		props.Field("Wireframe", props.Bool, func(o *object) *bool { return &shader(o).Wireframe }),
		props.Field("ModulateStaticLighting2X", props.Bool, func(o *object) *bool { return &shader(o).ModulateStaticLighting2X }),
		props.Field("PerformLightingOnSpecularPass", props.Bool, func(o *object) *bool { return &shader(o).PerformLightingOnSpecularPass }),
		props.Field("ModulateSpecular2X", props.Bool, func(o *object) *bool { return &shader(o).ModulateSpecular2X }),
		props.Field("TreatAsTwoSided", props.Bool, func(o *object) *bool { return &shader(o).TreatAsTwoSided }),
		props.Field("ZWrite", props.Bool, func(o *object) *bool { return &shader(o).ZWrite }),
		props.Field("AlphaTest", props.Bool, func(o *object) *bool { return &shader(o).AlphaTest }),
		props.Field("AlphaRef", props.Byte, func(o *object) *uint8 { return &shader(o).AlphaRef }),
		mask("HeightMap", func(o *object) *unmaterial.MaskMaterial { return &shader(o).HeightMap }),
		mask("SpecularMask", func(o *object) *unmaterial.MaskMaterial { return &shader(o).SpecularMask }),
		mask("GlossinessMask", func(o *object) *unmaterial.MaskMaterial { return &shader(o).GlossinessMask }),
		mask("ReflectionMask", func(o *object) *unmaterial.MaskMaterial { return &shader(o).ReflectionMask }),
		mask("EmissiveMask", func(o *object) *unmaterial.MaskMaterial { return &shader(o).EmissiveMask }),
		mask("SubsurfaceMask", func(o *object) *unmaterial.MaskMaterial { return &shader(o).SubsurfaceMask }),
		mask("ClipMask", func(o *object) *unmaterial.MaskMaterial { return &shader(o).ClipMask }),
	).Drop(
		"Emissive",
		"DiffuseColor",
		"EmissiveBrightness",
		"EmissiveColor",
		"Glossiness",
		"ReflectionBrightness",
		"SpecularColor",
		"SpecularBrightness",
		"SpecularCubeMapBrightness",
		"SpecularColorMap",
		"UseSpecularCubemaps",
		"HeightMapStrength",
		"Masked",
		"MaterialVisualType",
		"DiffuseTextureAnimator",
		"DiffuseColorAnimator",
		"OpacityTextureAnimator",
		"SelfIllumTextureAnimator",
		"SelfIllumColorAnimator",
		"Subsurface",
		"SubsurfaceColor2x",
		"DistortionStrength",
		"ForceTransparentSorting",
		"MaxAlphaClipValue",
		"MinAlphaClipValue",
	)

	def(unmaterial.KindFacingShader,
		props.Field("EdgeDiffuse", refs, func(o *object) *ref { return &facing(o).EdgeDiffuse }),
		props.Field("FacingDiffuse", refs, func(o *object) *ref { return &facing(o).FacingDiffuse }),
		mask("EdgeOpacity", func(o *object) *unmaterial.MaskMaterial { return &facing(o).EdgeOpacity }),
		mask("FacingOpacity", func(o *object) *unmaterial.MaskMaterial { return &facing(o).FacingOpacity }),
		props.Field("EdgeOpacityScale", props.Float, func(o *object) *float32 { return &facing(o).EdgeOpacityScale }),
		props.Field("FacingOpacityScale", props.Float, func(o *object) *float32 { return &facing(o).FacingOpacityScale }),
		props.Field("NormalMap", refs, func(o *object) *ref { return &facing(o).NormalMap }),
		props.Field("EdgeDiffuseColor", colorCodec, func(o *object) *unmaterial.Color { return &facing(o).EdgeDiffuseColor }),
		props.Field("FacingDiffuseColor", colorCodec, func(o *object) *unmaterial.Color { return &facing(o).FacingDiffuseColor }),
		props.Field("EdgeSpecularColor", colorCodec, func(o *object) *unmaterial.Color { return &facing(o).EdgeSpecularColor }),
		props.Field("FacingSpecularColor", colorCodec, func(o *object) *unmaterial.Color { return &facing(o).FacingSpecularColor }),
		mask("FacingSpecularMask", func(o *object) *unmaterial.MaskMaterial { return &facing(o).FacingSpecularMask }),
		props.Field("FacingSpecularColorMap", refs, func(o *object) *ref { return &facing(o).FacingSpecularColorMap }),
		mask("FacingGlossinessMask", func(o *object) *unmaterial.MaskMaterial { return &facing(o).FacingGlossinessMask }),
		mask("EdgeSpecularMask", func(o *object) *unmaterial.MaskMaterial { return &facing(o).EdgeSpecularMask }),
		props.Field("EdgeSpecularColorMap", refs, func(o *object) *ref { return &facing(o).EdgeSpecularColorMap }),
		mask("EdgeGlossinessMask", func(o *object) *unmaterial.MaskMaterial { return &facing(o).EdgeGlossinessMask }),
		props.Field("EdgeEmissive", refs, func(o *object) *ref { return &facing(o).EdgeEmissive }),
		props.Field("FacingEmissive", refs, func(o *object) *ref { return &facing(o).FacingEmissive }),
		mask("EdgeEmissiveMask", func(o *object) *unmaterial.MaskMaterial { return &facing(o).EdgeEmissiveMask }),
		mask("FacingEmissiveMask", func(o *object) *unmaterial.MaskMaterial { return &facing(o).FacingEmissiveMask }),
		props.Field("EdgeEmissiveBrightness", props.Float, func(o *object) *float32 { return &facing(o).EdgeEmissiveBrightness }),
		props.Field("FacingEmissiveBrightness", props.Float, func(o *object) *float32 { return &facing(o).FacingEmissiveBrightness }),
		props.Field("EdgeEmissiveColor", colorCodec, func(o *object) *unmaterial.Color { return &facing(o).EdgeEmissiveColor }),
		props.Field("FacingEmissiveColor", colorCodec, func(o *object) *unmaterial.Color { return &facing(o).FacingEmissiveColor }),
		props.Field("OutputBlending", props.Enum[unmaterial.FrameBufferBlending](), func(o *object) *unmaterial.FrameBufferBlending { return &facing(o).OutputBlending }),
		props.Field("Masked", props.Bool, func(o *object) *bool { return &facing(o).Masked }),
		props.Field("TwoSided", props.Bool, func(o *object) *bool { return &facing(o).TwoSided }),
		mask("SubsurfaceMask", func(o *object) *unmaterial.MaskMaterial { return &facing(o).SubsurfaceMask }),
		mask("NoiseMask", func(o *object) *unmaterial.MaskMaterial { return &facing(o).NoiseMask }),
	).Drop(
		"EdgeDiffuseTextureAnimator",
		"FacingDiffuseTextureAnimator",
		"EdgeDiffuseColorAnimator",
		"FacingDiffuseColorAnimator",
		"EdgeOpacityTextureAnimator",
		"FacingOpacityTextureAnimator",
		"BlendTextureAnimator",
		"NormalTextureAnimator",
		"EdgeSelfIllumColorAnimator",
		"FacingSelfIllumColorAnimator",
		"FacingSpecularAnimator",
		"EdgeSpecularAnimator",
		"EdgeGlossiness",
		"FacingGlossiness",
		"EdgeSpecularBrightness",
		"FacingSpecularBrightness",
		"Subsurface",
		"SubsurfaceColor2x",
		"ForceTransparentSorting",
		"Hardness",
	)

	def(unmaterial.KindModifier,
		props.Field("Material", refs, func(o *object) *ref { return &o.Modifier().Wrapped }),
	)

	def(unmaterial.KindFinalBlend,
		props.Field("FrameBufferBlending", props.Enum[unmaterial.FrameBufferBlending](), func(o *object) *unmaterial.FrameBufferBlending { return &finalBlend(o).FrameBufferBlending }),
		props.Field("ZWrite", props.Bool, func(o *object) *bool { return &finalBlend(o).ZWrite }),
		props.Field("ZTest", props.Bool, func(o *object) *bool { return &finalBlend(o).ZTest }),
		props.Field("AlphaTest", props.Bool, func(o *object) *bool { return &finalBlend(o).AlphaTest }),
		props.Field("TwoSided", props.Bool, func(o *object) *bool { return &finalBlend(o).TwoSided }),
		props.Field("AlphaRef", props.Byte, func(o *object) *uint8 { return &finalBlend(o).AlphaRef }),
		props.Field("TreatAsTwoSided", props.Bool, func(o *object) *bool { return &finalBlend(o).TreatAsTwoSided }),
	)

	def(unmaterial.KindTexModifier,
		props.Field("TexCoordSource", props.Enum[unmaterial.TexCoordSrc](), func(o *object) *unmaterial.TexCoordSrc { return &o.TexModifier().TexCoordSource }),
		props.Field("TexCoordCount", props.Enum[unmaterial.TexCoordCount](), func(o *object) *unmaterial.TexCoordCount { return &o.TexModifier().TexCoordCount }),
		props.Field("TexCoordProjected", props.Bool, func(o *object) *bool { return &o.TexModifier().TexCoordProjected }),
	)

	def(unmaterial.KindTexEnvMap,
		props.Field("EnvMapType", props.Enum[unmaterial.EnvMapType](), func(o *object) *unmaterial.EnvMapType {
			return &unmaterial.As[unmaterial.TexEnvMap](o).EnvMapType
		}),
	)

	def(unmaterial.KindTexOscillator,
		props.Field("UOscillationRate", props.Float, func(o *object) *float32 { return &oscillator(o).UOscillationRate }),
		props.Field("VOscillationRate", props.Float, func(o *object) *float32 { return &oscillator(o).VOscillationRate }),
		props.Field("UOscillationPhase", props.Float, func(o *object) *float32 { return &oscillator(o).UOscillationPhase }),
		props.Field("VOscillationPhase", props.Float, func(o *object) *float32 { return &oscillator(o).VOscillationPhase }),
		props.Field("UOscillationAmplitude", props.Float, func(o *object) *float32 { return &oscillator(o).UOscillationAmplitude }),
		props.Field("VOscillationAmplitude", props.Float, func(o *object) *float32 { return &oscillator(o).VOscillationAmplitude }),
		props.Field("UOscillationType", props.Enum[unmaterial.OscillationType](), func(o *object) *unmaterial.OscillationType { return &oscillator(o).UOscillationType }),
		props.Field("VOscillationType", props.Enum[unmaterial.OscillationType](), func(o *object) *unmaterial.OscillationType { return &oscillator(o).VOscillationType }),
		props.Field("UOffset", props.Float, func(o *object) *float32 { return &oscillator(o).UOffset }),
		props.Field("VOffset", props.Float, func(o *object) *float32 { return &oscillator(o).VOffset }),
	).Drop("M", "CurrentUJitter", "CurrentVJitter")

	def(unmaterial.KindTexPanner,
		props.Field("PanDirection", rotatorCodec, func(o *object) *unmaterial.Rotator { return &panner(o).PanDirection }),
		props.Field("PanRate", props.Float, func(o *object) *float32 { return &panner(o).PanRate }),
	).Drop("M")

	def(unmaterial.KindTexRotator,
		props.Field("TexRotationType", props.Enum[unmaterial.RotationType](), func(o *object) *unmaterial.RotationType { return &rotator(o).TexRotationType }),
		props.Field("Rotation", rotatorCodec, func(o *object) *unmaterial.Rotator { return &rotator(o).Rotation }),
		props.Field("UOffset", props.Float, func(o *object) *float32 { return &rotator(o).UOffset }),
		props.Field("VOffset", props.Float, func(o *object) *float32 { return &rotator(o).VOffset }),
		props.Field("OscillationRate", rotatorCodec, func(o *object) *unmaterial.Rotator { return &rotator(o).OscillationRate }),
		props.Field("OscillationAmplitude", rotatorCodec, func(o *object) *unmaterial.Rotator { return &rotator(o).OscillationAmplitude }),
		props.Field("OscillationPhase", rotatorCodec, func(o *object) *unmaterial.Rotator { return &rotator(o).OscillationPhase }),
	).Drop("M")

	def(unmaterial.KindTexScaler,
		props.Field("UScale", props.Float, func(o *object) *float32 { return &scaler(o).UScale }),
		props.Field("VScale", props.Float, func(o *object) *float32 { return &scaler(o).VScale }),
		props.Field("UOffset", props.Float, func(o *object) *float32 { return &scaler(o).UOffset }),
		props.Field("VOffset", props.Float, func(o *object) *float32 { return &scaler(o).VOffset }),
	).Drop("M")

	def(unmaterial.KindCombiner,
		props.Field("CombineOperation", props.Enum[unmaterial.ColorOperation](), func(o *object) *unmaterial.ColorOperation { return &combiner(o).CombineOperation }),
		props.Field("AlphaOperation", props.Enum[unmaterial.AlphaOperation](), func(o *object) *unmaterial.AlphaOperation { return &combiner(o).AlphaOperation }),
		props.Field("Material1", refs, func(o *object) *ref { return &combiner(o).Material1 }),
		props.Field("Material2", refs, func(o *object) *ref { return &combiner(o).Material2 }),
		props.Field("Mask", refs, func(o *object) *ref { return &combiner(o).Mask }),
		props.Field("InvertMask", props.Bool, func(o *object) *bool { return &combiner(o).InvertMask }),
		props.Field("Modulate2X", props.Bool, func(o *object) *bool { return &combiner(o).Modulate2X }),
		props.Field("Modulate4X", props.Bool, func(o *object) *bool { return &combiner(o).Modulate4X }),
	)

	def(unmaterial.KindSurface)

	def(unmaterial.KindTexture3,
		props.Elem("UnpackMin", props.Float, func(o *object) *[]float32 { return &o.Texture3().UnpackMin }),
		props.Elem("UnpackMax", props.Float, func(o *object) *[]float32 { return &o.Texture3().UnpackMax }),
	).Drop(
		"SRGB",
		"RGBE",
		"CompressionNoAlpha",
		"CompressionNone",
		"CompressionNoMipmaps",
		"CompressionFullDynamicRange",
		"DeferCompression",
		"NeverStream",
		"bDitherMipMapAlpha",
		"bPreserveBorderR",
		"bPreserveBorderG",
		"bPreserveBorderB",
		"bPreserveBorderA",
		"CompressionSettings",
		"Filter",
		"LODGroup",
		"LODBias",
		"SourceFilePath",
		"SourceFileTimestamp",
		"LightingGuid",
		"AdjustRGBCurve",
		"AdjustSaturation",
		"AdjustBrightnessCurve",
		"SourceArtWidth",
		"SourceArtHeight",
		"LODBiasWindows",
		"ForceOldCompression",
	)

	def(unmaterial.KindTexture2D,
		props.Field("SizeX", props.Int, func(o *object) *int32 { return &o.Texture2D().SizeX }),
		props.Field("SizeY", props.Int, func(o *object) *int32 { return &o.Texture2D().SizeY }),
		props.Field("Format", props.Enum[unmaterial.PixelFormat](), func(o *object) *unmaterial.PixelFormat { return &o.Texture2D().Format }),
		props.Field("AddressX", props.Enum[unmaterial.TextureAddress](), func(o *object) *unmaterial.TextureAddress { return &o.Texture2D().AddressX }),
		props.Field("AddressY", props.Enum[unmaterial.TextureAddress](), func(o *object) *unmaterial.TextureAddress { return &o.Texture2D().AddressY }),
		props.Field("TextureFileCacheName", props.Name, func(o *object) *string { return &o.Texture2D().TextureFileCacheName }),
		props.Field("MipTailBaseIdx", props.Int, func(o *object) *int32 { return &o.Texture2D().MipTailBaseIdx }),
		props.Field("bForcePVRTC4", props.Bool, func(o *object) *bool { return &o.Texture2D().ForcePVRTC4 }),
	).Drop(
		"bGlobalForceMipLevelsToBeResident",
		"OriginalSizeX",
		"OriginalSizeY",
		"NumMips",
		"SourceDataSizeX",
		"SourceDataSizeY",
		"TFCFileGuid",
	)

	def(unmaterial.KindLightMapTexture2D)

	def(unmaterial.KindTextureCube,
		props.Field("FacePosX", refs, func(o *object) *ref { return &cube(o).FacePosX }),
		props.Field("FaceNegX", refs, func(o *object) *ref { return &cube(o).FaceNegX }),
		props.Field("FacePosY", refs, func(o *object) *ref { return &cube(o).FacePosY }),
		props.Field("FaceNegY", refs, func(o *object) *ref { return &cube(o).FaceNegY }),
		props.Field("FacePosZ", refs, func(o *object) *ref { return &cube(o).FacePosZ }),
		props.Field("FaceNegZ", refs, func(o *object) *ref { return &cube(o).FaceNegZ }),
	)

	def(unmaterial.KindTexture3D,
		props.Field("SizeX", props.Int, func(o *object) *int32 { return &volume(o).SizeX }),
		props.Field("SizeY", props.Int, func(o *object) *int32 { return &volume(o).SizeY }),
		props.Field("SizeZ", props.Int, func(o *object) *int32 { return &volume(o).SizeZ }),
		props.Field("Format", props.Enum[unmaterial.PixelFormat](), func(o *object) *unmaterial.PixelFormat { return &volume(o).Format }),
	)

	def(unmaterial.KindMaterialInterface,
		props.Field("FlattenedTexture", refs, func(o *object) *ref { return &o.MaterialInterface().FlattenedTexture }),
		props.Field("MobileBaseTexture", refs, func(o *object) *ref { return &o.MaterialInterface().MobileBaseTexture }),
		props.Field("MobileNormalTexture", refs, func(o *object) *ref { return &o.MaterialInterface().MobileNormalTexture }),
		props.Field("bUseMobileSpecular", props.Bool, func(o *object) *bool { return &o.MaterialInterface().UseMobileSpecular }),
		props.Field("MobileSpecularPower", props.Float, func(o *object) *float32 { return &o.MaterialInterface().MobileSpecularPower }),
		props.Field("MobileSpecularMask", props.Enum[unmaterial.MobileSpecularMask](), func(o *object) *unmaterial.MobileSpecularMask { return &o.MaterialInterface().MobileSpecularMask }),
		props.Field("MobileMaskTexture", refs, func(o *object) *ref { return &o.MaterialInterface().MobileMaskTexture }),
	).Drop(
		"PreviewMesh",
		"LightingGuid",
		"bMobileAllowFog",
		"MobileSpecularColor",
		"bUseMobilePixelSpecular",
		"m_Guid",
	)

	def(unmaterial.KindMaterial3,
		props.Field("TwoSided", props.Bool, func(o *object) *bool { return &material3(o).TwoSided }),
		props.Field("bDisableDepthTest", props.Bool, func(o *object) *bool { return &material3(o).DisableDepthTest }),
		props.Field("bIsMasked", props.Bool, func(o *object) *bool { return &material3(o).IsMasked }),
		props.Array("ReferencedTextures", refs, func(o *object) *[]ref { return &material3(o).ReferencedTextures }),
		props.Field("BlendMode", props.Enum[unmaterial.BlendMode](), func(o *object) *unmaterial.BlendMode { return &material3(o).BlendMode }),
		props.Field("OpacityMaskClipValue", props.Float, func(o *object) *float32 { return &material3(o).OpacityMaskClipValue }),
	).Drop(
		// Inputs of the material graph.
		"DiffuseColor",
		"DiffusePower",
		"EmissiveColor",
		"SpecularColor",
		"SpecularPower",
		"Opacity",
		"OpacityMask",
		"Distortion",
		"TwoSidedLightingMask",
		"TwoSidedLightingColor",
		"Normal",
		"CustomLighting",
		"PhysMaterial",
		"PhysicalMaterial",
		"LightingModel",
		// Usage flags.
		"bUsedAsLightFunction",
		"bUsedWithFogVolumes",
		"bUsedAsSpecialEngineMaterial",
		"bUsedWithSkeletalMesh",
		"bUsedWithParticleSystem",
		"bUsedWithParticleSprites",
		"bUsedWithBeamTrails",
		"bUsedWithParticleSubUV",
		"bUsedWithFoliage",
		"bUsedWithSpeedTree",
		"bUsedWithStaticLighting",
		"bUsedWithLensFlare",
		"bUsedWithGammaCorrection",
		"bUsedWithInstancedMeshParticles",
		"bUsedWithDecals",
		"bUsedWithFracturedMeshes",
		"bUsedWithFluidSurfaces",
		"bUsedWithLightEnvironments",
		"Wireframe",
		"bIsFallbackMaterial",
		"FallbackMaterial",
		"EditorX",
		"EditorY",
		"EditorPitch",
		"EditorYaw",
		"Expressions",
		"EditorComments",
		"EditorCompounds",
		"bUsesDistortion",
		"bUsesSceneColor",
		"bUsedWithMorphTargets",
		"bAllowFog",
		"ReferencedTextureGuids",
		"BakerBleedBounceAmount",
		"BakerAlpha",
		"VFXShaderType",
		"AllowsEffectsMaterials",
	)

	def(unmaterial.KindMaterialInstance,
		props.Field("Parent", refs, func(o *object) *ref { return &o.MaterialInstance().Parent }),
	).Drop(
		"PhysMaterial",
		"bHasStaticPermutationResource",
		// The textures of the parent plus overrides; recomputed from
		// parameters instead.
		"ReferencedTextures",
		"ReferencedTextureGuids",
		"ParentLightingGuid",
	)

	def(unmaterial.KindMaterialInstanceConstant,
		props.Array("ScalarParameterValues", scalarParameterCodec, func(o *object) *[]unmaterial.ScalarParameterValue {
			return &instanceConstant(o).ScalarParameterValues
		}),
		props.Array("TextureParameterValues", textureParameterCodec, func(o *object) *[]unmaterial.TextureParameterValue {
			return &instanceConstant(o).TextureParameterValues
		}),
		props.Array("VectorParameterValues", vectorParameterCodec, func(o *object) *[]unmaterial.VectorParameterValue {
			return &instanceConstant(o).VectorParameterValues
		}),
	).Drop("FontParameterValues")

	return t
}

// Table returns the property table used to decode objects of kind k, or nil
// if k is not decodable.
func Table(k unmaterial.Kind) *props.Table {
	return tables[k]
}
