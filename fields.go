package unmaterial

import "github.com/ueforge/unmaterial/bulk"

// Material holds the fields shared by all first and second generation
// materials.
type Material struct {
	FallbackMaterial Ref
	DefaultMaterial  Ref
	SurfaceType      uint8
	UseTextureAsHeat bool
	HeatMaterial     Ref

	// Lineage is the engine-native block of Lineage 2 materials.
	Lineage *LineageMaterial
}

func (m *Material) base() *Material { return m }

// LineageMaterial holds the parts of the Lineage 2 native block that carry
// information.
type LineageMaterial struct {
	TextureNames []string
	ShaderCode   string
	Stages       []LineageStage
	CodeVersion  [2]uint16
}

// LineageStage is one stage of a Lineage 2 shader block.
type LineageStage struct {
	Name    string
	Options []string
}

type RenderedMaterial struct {
	Material
}

type ConstantMaterial struct {
	RenderedMaterial
}

type ConstantColor struct {
	ConstantMaterial
	Color Color
}

// BitmapMaterial holds the fields shared by legacy textures.
type BitmapMaterial struct {
	RenderedMaterial
	Format     TextureFormat
	UClampMode ClampMode
	VClampMode ClampMode
	UBits      uint8
	VBits      uint8
	USize      int32
	VSize      int32
	UClamp     int32
	VClamp     int32
}

func (m *BitmapMaterial) bitmap() *BitmapMaterial { return m }

type Palette struct {
	Colors []Color
}

type Texture struct {
	BitmapMaterial
	Palette            Ref
	Detail             Ref
	DetailScale        float32
	MipZero            Color
	MaxColor           Color
	InternalTime       []int32
	Masked             bool
	AlphaTexture       bool
	TwoSided           bool
	HighColorQuality   bool
	HighTextureQuality bool
	Realtime           bool
	Parametric         bool
	LODSet             LODSet
	NormalLOD          int32
	MinLOD             int32
	AnimNext           Ref
	PrimeCount         uint8
	MinFrameRate       float32
	MaxFrameRate       float32
	Mips               []Mipmap
	CompFormat         TextureFormat
	HasComp            bool

	// Bioshock
	CachedBulkDataSize int64
	HasBeenStripped    bool
	StrippedNumMips    uint8
	Baked              bool

	// Exteel
	MaterialType uint8
}

// MaskMaterial pairs a material with the channel used as a mask.
type MaskMaterial struct {
	Material Ref
	Channel  MaskChannel
}

type Shader struct {
	RenderedMaterial
	Diffuse                       Ref
	NormalMap                     Ref
	Opacity                       Ref
	Specular                      Ref
	SpecularityMask               Ref
	SelfIllumination              Ref
	SelfIlluminationMask          Ref
	Detail                        Ref
	DetailScale                   float32
	OutputBlending                OutputBlending
	TwoSided                      bool
	Wireframe                     bool
	ModulateStaticLighting2X      bool
	PerformLightingOnSpecularPass bool
	ModulateSpecular2X            bool

	// Lineage 2
	TreatAsTwoSided bool
	ZWrite          bool
	AlphaTest       bool
	AlphaRef        uint8

	// Bioshock
	OpacityMask    MaskMaterial
	HeightMap      MaskMaterial
	SpecularMask   MaskMaterial
	GlossinessMask MaskMaterial
	ReflectionMask MaskMaterial
	EmissiveMask   MaskMaterial
	SubsurfaceMask MaskMaterial
	ClipMask       MaskMaterial
}

type FacingShader struct {
	RenderedMaterial
	EdgeDiffuse              Ref
	FacingDiffuse            Ref
	EdgeOpacity              MaskMaterial
	FacingOpacity            MaskMaterial
	EdgeOpacityScale         float32
	FacingOpacityScale       float32
	NormalMap                Ref
	EdgeDiffuseColor         Color
	FacingDiffuseColor       Color
	EdgeSpecularColor        Color
	FacingSpecularColor      Color
	FacingSpecularMask       MaskMaterial
	FacingSpecularColorMap   Ref
	FacingGlossinessMask     MaskMaterial
	EdgeSpecularMask         MaskMaterial
	EdgeSpecularColorMap     Ref
	EdgeGlossinessMask       MaskMaterial
	EdgeEmissive             Ref
	FacingEmissive           Ref
	EdgeEmissiveMask         MaskMaterial
	FacingEmissiveMask       MaskMaterial
	EdgeEmissiveBrightness   float32
	FacingEmissiveBrightness float32
	EdgeEmissiveColor        Color
	FacingEmissiveColor      Color
	OutputBlending           FrameBufferBlending
	Masked                   bool
	TwoSided                 bool
	SubsurfaceMask           MaskMaterial
	NoiseMask                MaskMaterial
}

// Modifier wraps another material.
type Modifier struct {
	Material
	Wrapped Ref
}

func (m *Modifier) modifier() *Modifier { return m }

type FinalBlend struct {
	Modifier
	FrameBufferBlending FrameBufferBlending
	ZWrite              bool
	ZTest               bool
	AlphaTest           bool
	TwoSided            bool
	AlphaRef            uint8
	TreatAsTwoSided     bool
}

type TexModifier struct {
	Modifier
	TexCoordSource    TexCoordSrc
	TexCoordCount     TexCoordCount
	TexCoordProjected bool
}

func (m *TexModifier) texModifier() *TexModifier { return m }

type TexEnvMap struct {
	TexModifier
	EnvMapType EnvMapType
}

type TexOscillator struct {
	TexModifier
	UOscillationRate      float32
	VOscillationRate      float32
	UOscillationPhase     float32
	VOscillationPhase     float32
	UOscillationAmplitude float32
	VOscillationAmplitude float32
	UOscillationType      OscillationType
	VOscillationType      OscillationType
	UOffset               float32
	VOffset               float32
}

type TexPanner struct {
	TexModifier
	PanDirection Rotator
	PanRate      float32
}

type TexRotator struct {
	TexModifier
	TexRotationType      RotationType
	Rotation             Rotator
	UOffset              float32
	VOffset              float32
	OscillationRate      Rotator
	OscillationAmplitude Rotator
	OscillationPhase     Rotator
}

type TexScaler struct {
	TexModifier
	UScale  float32
	VScale  float32
	UOffset float32
	VOffset float32
}

type Combiner struct {
	Material
	CombineOperation ColorOperation
	AlphaOperation   AlphaOperation
	Material1        Ref
	Material2        Ref
	Mask             Ref
	InvertMask       bool
	Modulate2X       bool
	Modulate4X       bool
}

////////////////////////////////////////////////////////////////

type Surface struct{}

// Texture3 holds the fields shared by third generation textures.
type Texture3 struct {
	Surface
	UnpackMin []float32
	UnpackMax []float32
	SourceArt bulk.Handle
}

func (t *Texture3) texture3() *Texture3 { return t }

type Texture2D struct {
	Texture3
	Mips                 []Mip2D
	SizeX                int32
	SizeY                int32
	Format               PixelFormat
	AddressX             TextureAddress
	AddressY             TextureAddress
	TextureFileCacheName string
	TextureFileCacheGuid GUID
	MipTailBaseIdx       int32
	ForcePVRTC4          bool
	CachedPVRTCMips      []Mip2D

	// Tera
	SourceFilePath string
}

func (t *Texture2D) texture2D() *Texture2D { return t }

type LightMapTexture2D struct {
	Texture2D
}

type TextureCube struct {
	Texture3
	FacePosX Ref
	FaceNegX Ref
	FacePosY Ref
	FaceNegY Ref
	FacePosZ Ref
	FaceNegZ Ref
}

type Texture3D struct {
	Texture3
	SizeX  int32
	SizeY  int32
	SizeZ  int32
	Format PixelFormat
	Mips   []Mip3D
}

// MaterialInterface holds the fields shared by third generation materials.
type MaterialInterface struct {
	FlattenedTexture    Ref
	MobileBaseTexture   Ref
	MobileNormalTexture Ref
	UseMobileSpecular   bool
	MobileSpecularPower float32
	MobileSpecularMask  MobileSpecularMask
	MobileMaskTexture   Ref
}

func (m *MaterialInterface) iface() *MaterialInterface { return m }

type Material3 struct {
	MaterialInterface
	TwoSided             bool
	DisableDepthTest     bool
	IsMasked             bool
	BlendMode            BlendMode
	OpacityMaskClipValue float32
	ReferencedTextures   []Ref
}

type MaterialInstance struct {
	MaterialInterface
	Parent Ref
}

func (m *MaterialInstance) instance() *MaterialInstance { return m }

type ScalarParameterValue struct {
	ParameterName  string
	ParameterValue float32
}

type TextureParameterValue struct {
	ParameterName  string
	ParameterValue Ref
}

type VectorParameterValue struct {
	ParameterName  string
	ParameterValue LinearColor
}

type MaterialInstanceConstant struct {
	MaterialInstance
	ScalarParameterValues  []ScalarParameterValue
	TextureParameterValues []TextureParameterValue
	VectorParameterValues  []VectorParameterValue
}

////////////////////////////////////////////////////////////////

func newTexModifier() TexModifier {
	return TexModifier{TexCoordSource: TCS_NoChange, TexCoordCount: TCN_2DCoords}
}

func newTexture3() Texture3 {
	return Texture3{
		UnpackMin: []float32{0, 0, 0, 0},
		UnpackMax: []float32{1, 1, 1, 1},
	}
}

func newMaterialInterface() MaterialInterface {
	return MaterialInterface{MobileSpecularPower: 16}
}

// newFields returns the field struct of a kind, holding its defaults.
func newFields(k Kind) any {
	switch k {
	case KindMaterial:
		return &Material{}
	case KindRenderedMaterial:
		return &RenderedMaterial{}
	case KindConstantMaterial:
		return &ConstantMaterial{}
	case KindConstantColor:
		return &ConstantColor{}
	case KindBitmapMaterial:
		return &BitmapMaterial{}
	case KindTexture:
		return &Texture{
			DetailScale: 8,
			MipZero:     Color{64, 128, 64, 0},
			MaxColor:    Color{255, 255, 255, 255},
			LODSet:      LODSET_World,
		}
	case KindPalette:
		return &Palette{}
	case KindShader:
		return &Shader{DetailScale: 8, ModulateStaticLighting2X: true}
	case KindFacingShader:
		return &FacingShader{}
	case KindModifier:
		return &Modifier{}
	case KindFinalBlend:
		return &FinalBlend{ZWrite: true, ZTest: true}
	case KindTexModifier:
		m := newTexModifier()
		return &m
	case KindTexEnvMap:
		m := &TexEnvMap{TexModifier: newTexModifier(), EnvMapType: EM_CameraSpace}
		m.TexCoordCount = TCN_3DCoords
		return m
	case KindTexOscillator:
		return &TexOscillator{
			TexModifier:           newTexModifier(),
			UOscillationRate:      1,
			VOscillationRate:      1,
			UOscillationAmplitude: 0.1,
			VOscillationAmplitude: 0.1,
		}
	case KindTexPanner:
		return &TexPanner{TexModifier: newTexModifier(), PanRate: 0.1}
	case KindTexRotator:
		return &TexRotator{TexModifier: newTexModifier()}
	case KindTexScaler:
		return &TexScaler{TexModifier: newTexModifier(), UScale: 1, VScale: 1}
	case KindCombiner:
		return &Combiner{}
	case KindSurface:
		return &Surface{}
	case KindTexture3:
		t := newTexture3()
		return &t
	case KindTexture2D:
		return &Texture2D{Texture3: newTexture3(), TextureFileCacheName: "None"}
	case KindLightMapTexture2D:
		return &LightMapTexture2D{Texture2D: Texture2D{Texture3: newTexture3(), TextureFileCacheName: "None"}}
	case KindTextureCube:
		return &TextureCube{Texture3: newTexture3()}
	case KindTexture3D:
		return &Texture3D{Texture3: newTexture3()}
	case KindMaterialInterface:
		m := newMaterialInterface()
		return &m
	case KindMaterial3:
		return &Material3{MaterialInterface: newMaterialInterface(), OpacityMaskClipValue: 0.333}
	case KindMaterialInstance:
		return &MaterialInstance{MaterialInterface: newMaterialInterface()}
	case KindMaterialInstanceConstant:
		return &MaterialInstanceConstant{MaterialInstance: MaterialInstance{MaterialInterface: newMaterialInterface()}}
	}
	return nil
}
