package unmaterial

import (
	"fmt"

	"github.com/ueforge/unmaterial/bulk"
)

// Ref is a package index referring to another object: positive values name
// an export, negative values an import, and zero refers to nothing. A Ref
// never owns its referent; it is resolved through a Resolver.
type Ref int32

// IsNull returns whether the reference refers to nothing.
func (r Ref) IsNull() bool {
	return r == 0
}

// Export returns the export table index named by r.
func (r Ref) Export() (index int, ok bool) {
	if r <= 0 {
		return 0, false
	}
	return int(r) - 1, true
}

// Import returns the import table index named by r.
func (r Ref) Import() (index int, ok bool) {
	if r >= 0 {
		return 0, false
	}
	return -int(r) - 1, true
}

func (r Ref) String() string {
	switch {
	case r == 0:
		return "null"
	case r > 0:
		return fmt.Sprintf("export#%d", int(r)-1)
	default:
		return fmt.Sprintf("import#%d", -int(r)-1)
	}
}

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// LinearColor is a floating-point RGBA color.
type LinearColor struct {
	R, G, B, A float32
}

// Rotator is an orientation in engine angle units.
type Rotator struct {
	Pitch, Yaw, Roll int32
}

// GUID is a 128-bit identifier.
type GUID struct {
	A, B, C, D uint32
}

func (g GUID) String() string {
	return fmt.Sprintf("%08X-%08X-%08X-%08X", g.A, g.B, g.C, g.D)
}

// Mipmap is one mip level of a legacy texture.
type Mipmap struct {
	Data         bulk.Handle
	USize, VSize int32
	UBits, VBits uint8
}

// Mip2D is one mip level of a 2D texture.
type Mip2D struct {
	Data         bulk.Handle
	SizeX, SizeY int32
}

// Mip3D is one mip level of a volume texture.
type Mip3D struct {
	Data                bulk.Handle
	SizeX, SizeY, SizeZ int32
}

////////////////////////////////////////////////////////////////

func enumString(names []string, v uint8, typ string) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%s(%d)", typ, v)
}

// TextureFormat is the pixel format of a legacy texture.
type TextureFormat uint8

const (
	TEXF_P8 TextureFormat = iota
	TEXF_RGBA7
	TEXF_RGB16
	TEXF_DXT1
	TEXF_RGB8
	TEXF_RGBA8
	TEXF_NODATA
	TEXF_DXT3
	TEXF_DXT5
	TEXF_L8
	TEXF_G16
	TEXF_RRRGGGBBB
	TEXF_CxV8U8
	TEXF_DXT5N
	TEXF_3DC
)

var textureFormatNames = []string{"P8", "RGBA7", "RGB16", "DXT1", "RGB8", "RGBA8", "NODATA", "DXT3", "DXT5", "L8", "G16", "RRRGGGBBB", "CxV8U8", "DXT5N", "3DC"}

func (v TextureFormat) String() string { return enumString(textureFormatNames, uint8(v), "TextureFormat") }

// Names returns the names of the values, indexed by value.
func (TextureFormat) Names() []string { return textureFormatNames }

// ClampMode is the texture coordinate behavior of a legacy texture.
type ClampMode uint8

const (
	TC_Wrap ClampMode = iota
	TC_Clamp
)

var clampModeNames = []string{"Wrap", "Clamp"}

func (v ClampMode) String() string { return enumString(clampModeNames, uint8(v), "ClampMode") }
func (ClampMode) Names() []string { return clampModeNames }

// LODSet is the level of detail group of a legacy texture.
type LODSet uint8

const (
	LODSET_None LODSet = iota
	LODSET_World
	LODSET_PlayerSkin
	LODSET_WeaponSkin
	LODSET_Terrain
	LODSET_Interface
	LODSET_RenderMap
	LODSET_Lightmap
)

var lodSetNames = []string{"None", "World", "PlayerSkin", "WeaponSkin", "Terrain", "Interface", "RenderMap", "Lightmap"}

func (v LODSet) String() string { return enumString(lodSetNames, uint8(v), "LODSet") }
func (LODSet) Names() []string { return lodSetNames }

// OutputBlending is the blend mode of a shader.
type OutputBlending uint8

const (
	OB_Normal OutputBlending = iota
	OB_Masked
	OB_Modulate
	OB_Translucent
	OB_Invisible
	OB_Brighten
	OB_Darken
)

var outputBlendingNames = []string{"Normal", "Masked", "Modulate", "Translucent", "Invisible", "Brighten", "Darken"}

func (v OutputBlending) String() string { return enumString(outputBlendingNames, uint8(v), "OutputBlending") }
func (OutputBlending) Names() []string { return outputBlendingNames }

// FrameBufferBlending is the blend mode of a final blend.
type FrameBufferBlending uint8

const (
	FB_Overwrite FrameBufferBlending = iota
	FB_Modulate
	FB_AlphaBlend
	FB_AlphaModulate_MightNotFogCorrectly
	FB_Translucent
	FB_Darken
	FB_Brighten
	FB_Invisible
	FB_Add
	FB_InWaterBlend
	FB_Capture
)

var frameBufferBlendingNames = []string{"Overwrite", "Modulate", "AlphaBlend", "AlphaModulate_MightNotFogCorrectly", "Translucent", "Darken", "Brighten", "Invisible", "Add", "InWaterBlend", "Capture"}

func (v FrameBufferBlending) String() string { return enumString(frameBufferBlendingNames, uint8(v), "FrameBufferBlending") }
func (FrameBufferBlending) Names() []string { return frameBufferBlendingNames }

// ColorOperation selects how a combiner produces color.
type ColorOperation uint8

const (
	CO_Use_Color_From_Material1 ColorOperation = iota
	CO_Use_Color_From_Material2
	CO_Multiply
	CO_Add
	CO_Subtract
	CO_AlphaBlend_With_Mask
	CO_Add_With_Mask_Modulation
	CO_Use_Color_From_Mask
)

var colorOperationNames = []string{"Use_Color_From_Material1", "Use_Color_From_Material2", "Multiply", "Add", "Subtract", "AlphaBlend_With_Mask", "Add_With_Mask_Modulation", "Use_Color_From_Mask"}

func (v ColorOperation) String() string { return enumString(colorOperationNames, uint8(v), "ColorOperation") }
func (ColorOperation) Names() []string { return colorOperationNames }

// AlphaOperation selects how a combiner produces alpha.
type AlphaOperation uint8

const (
	AO_Use_Mask AlphaOperation = iota
	AO_Multiply
	AO_Add
	AO_Use_Alpha_From_Material1
	AO_Use_Alpha_From_Material2
)

var alphaOperationNames = []string{"Use_Mask", "Multiply", "Add", "Use_Alpha_From_Material1", "Use_Alpha_From_Material2"}

func (v AlphaOperation) String() string { return enumString(alphaOperationNames, uint8(v), "AlphaOperation") }
func (AlphaOperation) Names() []string { return alphaOperationNames }

// TexCoordSrc is the texture coordinate source of a modifier.
type TexCoordSrc uint8

const (
	TCS_Stream0 TexCoordSrc = iota
	TCS_Stream1
	TCS_Stream2
	TCS_Stream3
	TCS_Stream4
	TCS_Stream5
	TCS_Stream6
	TCS_Stream7
	TCS_WorldCoords
	TCS_CameraCoords
	TCS_WorldEnvMapCoords
	TCS_CameraEnvMapCoords
	TCS_ProjectorCoords
	TCS_NoChange
)

var texCoordSrcNames = []string{"Stream0", "Stream1", "Stream2", "Stream3", "Stream4", "Stream5", "Stream6", "Stream7", "WorldCoords", "CameraCoords", "WorldEnvMapCoords", "CameraEnvMapCoords", "ProjectorCoords", "NoChange"}

func (v TexCoordSrc) String() string { return enumString(texCoordSrcNames, uint8(v), "TexCoordSrc") }
func (TexCoordSrc) Names() []string { return texCoordSrcNames }

// TexCoordCount is the dimension of generated texture coordinates.
type TexCoordCount uint8

const (
	TCN_2DCoords TexCoordCount = iota
	TCN_3DCoords
	TCN_4DCoords
)

var texCoordCountNames = []string{"2DCoords", "3DCoords", "4DCoords"}

func (v TexCoordCount) String() string { return enumString(texCoordCountNames, uint8(v), "TexCoordCount") }
func (TexCoordCount) Names() []string { return texCoordCountNames }

// EnvMapType is the space of an environment map.
type EnvMapType uint8

const (
	EM_WorldSpace EnvMapType = iota
	EM_CameraSpace
)

var envMapTypeNames = []string{"WorldSpace", "CameraSpace"}

func (v EnvMapType) String() string { return enumString(envMapTypeNames, uint8(v), "EnvMapType") }
func (EnvMapType) Names() []string { return envMapTypeNames }

// OscillationType is the motion of a texture oscillator.
type OscillationType uint8

const (
	OT_Pan OscillationType = iota
	OT_Stretch
	OT_StretchRepeat
	OT_Jitter
)

var oscillationTypeNames = []string{"Pan", "Stretch", "StretchRepeat", "Jitter"}

func (v OscillationType) String() string { return enumString(oscillationTypeNames, uint8(v), "OscillationType") }
func (OscillationType) Names() []string { return oscillationTypeNames }

// RotationType is the motion of a texture rotator.
type RotationType uint8

const (
	TR_FixedRotation RotationType = iota
	TR_ConstantlyRotating
	TR_OscillatingRotation
)

var rotationTypeNames = []string{"FixedRotation", "ConstantlyRotating", "OscillatingRotation"}

func (v RotationType) String() string { return enumString(rotationTypeNames, uint8(v), "RotationType") }
func (RotationType) Names() []string { return rotationTypeNames }

// MaskChannel selects the channel of a mask material.
type MaskChannel uint8

const (
	MC_A MaskChannel = iota
	MC_R
	MC_G
	MC_B
)

var maskChannelNames = []string{"A", "R", "G", "B"}

func (v MaskChannel) String() string { return enumString(maskChannelNames, uint8(v), "MaskChannel") }
func (MaskChannel) Names() []string { return maskChannelNames }

// PixelFormat is the pixel format of a third generation texture.
type PixelFormat uint8

const (
	PF_Unknown PixelFormat = iota
	PF_A32B32G32R32F
	PF_A8R8G8B8
	PF_G8
	PF_G16
	PF_DXT1
	PF_DXT3
	PF_DXT5
	PF_UYVY
	PF_FloatRGB
	PF_FloatRGBA
	PF_DepthStencil
	PF_ShadowDepth
	PF_FilteredShadowDepth
	PF_R32F
	PF_G16R16
	PF_G16R16F
	PF_G16R16F_FILTER
	PF_G32R32F
	PF_A2B10G10R10
	PF_A16B16G16R16
	PF_D24
	PF_R16F
	PF_R16F_FILTER
	PF_BC5
	PF_V8U8
	PF_A1
	PF_NormalMap_LQ
	PF_NormalMap_HQ
)

var pixelFormatNames = []string{"Unknown", "A32B32G32R32F", "A8R8G8B8", "G8", "G16", "DXT1", "DXT3", "DXT5", "UYVY", "FloatRGB", "FloatRGBA", "DepthStencil", "ShadowDepth", "FilteredShadowDepth", "R32F", "G16R16", "G16R16F", "G16R16F_FILTER", "G32R32F", "A2B10G10R10", "A16B16G16R16", "D24", "R16F", "R16F_FILTER", "BC5", "V8U8", "A1", "NormalMap_LQ", "NormalMap_HQ"}

func (v PixelFormat) String() string { return enumString(pixelFormatNames, uint8(v), "PixelFormat") }
func (PixelFormat) Names() []string { return pixelFormatNames }

// TextureAddress is the coordinate behavior of a third generation texture.
type TextureAddress uint8

const (
	TA_Wrap TextureAddress = iota
	TA_Clamp
	TA_Mirror
)

var textureAddressNames = []string{"Wrap", "Clamp", "Mirror"}

func (v TextureAddress) String() string { return enumString(textureAddressNames, uint8(v), "TextureAddress") }
func (TextureAddress) Names() []string { return textureAddressNames }

// BlendMode is the blend mode of a third generation material.
type BlendMode uint8

const (
	BLEND_Opaque BlendMode = iota
	BLEND_Masked
	BLEND_Translucent
	BLEND_Additive
	BLEND_Modulate
)

var blendModeNames = []string{"Opaque", "Masked", "Translucent", "Additive", "Modulate"}

func (v BlendMode) String() string { return enumString(blendModeNames, uint8(v), "BlendMode") }
func (BlendMode) Names() []string { return blendModeNames }

// MobileSpecularMask selects the source of mobile specular intensity.
type MobileSpecularMask uint8

const (
	MSM_Constant MobileSpecularMask = iota
	MSM_Luminance
	MSM_DiffuseRed
	MSM_DiffuseGreen
	MSM_DiffuseBlue
	MSM_DiffuseAlpha
	MSM_MaskTextureRGB
)

var mobileSpecularMaskNames = []string{"Constant", "Luminance", "DiffuseRed", "DiffuseGreen", "DiffuseBlue", "DiffuseAlpha", "MaskTextureRGB"}

func (v MobileSpecularMask) String() string { return enumString(mobileSpecularMaskNames, uint8(v), "MobileSpecularMask") }
func (MobileSpecularMask) Names() []string { return mobileSpecularMaskNames }
