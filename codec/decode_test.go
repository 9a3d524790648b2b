package codec_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ueforge/unmaterial"
	"github.com/ueforge/unmaterial/archive"
	"github.com/ueforge/unmaterial/bulk"
	"github.com/ueforge/unmaterial/codec"
	. "github.com/ueforge/unmaterial/declare"
	"github.com/ueforge/unmaterial/errors"
	"github.com/ueforge/unmaterial/props"
)

var (
	ut2 = archive.Version{Game: archive.UT2, Ver: 128, LicenseeVer: 29}
	ue3 = archive.Version{Game: archive.UE3, Ver: 868}
)

// decode decodes s as one object of class typeName, with the stopper moved
// by adjust bytes from the end of the stream.
func decode(t *testing.T, typeName string, v archive.Version, s Stream, adjust int64) (*unmaterial.Object, *archive.Archive, []byte, error) {
	t.Helper()
	data, names := s.Declare(v)
	ar := archive.New(data, v, archive.WithNames(names))
	require.NoError(t, ar.SetStopper(int64(len(data))+adjust))
	obj, warn, err := codec.Decode(typeName, ar)
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.Equal(t, ar.Stopper(), ar.Tell())
	return obj, ar, data, warn
}

func TestUnknownProperty(t *testing.T) {
	obj, _, _, warn := decode(t, "TexScaler", ut2, Object(Props(
		Prop("UScale", props.WireFloat, Float(2.5)),
		Prop("Unknown42", props.WireInt, Uint32(0xDEADBEEF)),
		Prop("VOffset", props.WireFloat, Float(0.25)),
	)), 0)
	require.NoError(t, warn)
	s := unmaterial.As[unmaterial.TexScaler](obj)
	require.NotNil(t, s)
	assert.EqualValues(t, 2.5, s.UScale)
	assert.EqualValues(t, 1, s.VScale)
	assert.EqualValues(t, 0.25, s.VOffset)
	assert.Equal(t, 1, obj.Diag.Unknown)
	assert.Equal(t, unmaterial.TCS_NoChange, s.TexCoordSource)
}

func legacyTexture() Stream {
	mip := Stream{Lazy{ElemSize: 1, Payload: bytes.Repeat([]byte{0xAA}, 16)}, Int32(4), Int32(4), Uint8(2), Uint8(2)}
	return append(Object(Props(
		Prop("USize", props.WireInt, Int32(4)),
		Prop("Format", props.WireByte, Uint8(uint8(unmaterial.TEXF_DXT1))),
		Bool("bAlphaTexture", true),
	)), Array(mip))
}

func TestStopper(t *testing.T) {
	t.Run("exact", func(t *testing.T) {
		obj, _, data, warn := decode(t, "Texture", ut2, legacyTexture(), 0)
		require.NoError(t, warn)
		tex := unmaterial.As[unmaterial.Texture](obj)
		require.Len(t, tex.Mips, 1)
		assert.EqualValues(t, 16, tex.Mips[0].Data.RawSize)
		assert.Equal(t, bytes.Repeat([]byte{0xAA}, 16), data[tex.Mips[0].Data.Offset:tex.Mips[0].Data.Offset+16])
		assert.True(t, tex.AlphaTexture)
		assert.Zero(t, obj.Diag.Skipped)
	})

	t.Run("more bytes", func(t *testing.T) {
		obj, _, _, warn := decode(t, "Texture", ut2, append(legacyTexture(), Zero(5)), 0)
		var berr errors.BoundaryError
		require.True(t, errors.As(warn, &berr))
		assert.NoError(t, berr.Cause)
		assert.EqualValues(t, 5, berr.Skipped())
		assert.EqualValues(t, 5, obj.Diag.Skipped)
		assert.False(t, obj.Diag.Partial)
		assert.Len(t, unmaterial.As[unmaterial.Texture](obj).Mips, 1)
	})

	t.Run("fewer bytes", func(t *testing.T) {
		obj, _, _, warn := decode(t, "Texture", ut2, legacyTexture(), -3)
		assert.True(t, obj.Diag.Partial)
		assert.True(t, errors.Contains(warn, errors.ErrCorruptData))
		tex := unmaterial.As[unmaterial.Texture](obj)
		assert.EqualValues(t, 4, tex.USize)
		assert.Equal(t, unmaterial.TEXF_DXT1, tex.Format)
	})
}

func TestPartialProperties(t *testing.T) {
	obj, _, _, warn := decode(t, "TexScaler", ut2, Object(Props(
		Prop("UScale", props.WireFloat, Float(2)),
		Prop("VScale", props.WireFloat, Float(3)).Size(40),
	)), 0)
	assert.True(t, obj.Diag.Partial)
	var berr errors.BoundaryError
	require.True(t, errors.As(warn, &berr))
	assert.True(t, errors.Is(berr.Cause, errors.ErrCorruptData))
	s := unmaterial.As[unmaterial.TexScaler](obj)
	assert.EqualValues(t, 2, s.UScale)
	assert.EqualValues(t, 1, s.VScale)
}

// texture2D declares a 2D texture with one mip in the layout of v.
func texture2D(v archive.Version, payload []byte) Stream {
	s := Object(Props(Prop("SizeX", props.WireInt, Int32(64))))
	s = append(s, Bulk{Flags: bulk.Unused})
	if v.Ver < 297 {
		s = append(s, Int32(32), Int32(16), Int32(int32(unmaterial.PF_DXT5)))
	}
	s = append(s, Array(Stream{Inline(payload), Int32(32), Int32(16)}))
	if v.Ver >= 567 {
		s = append(s, GUID{1, 2, 3, 4})
	}
	if v.Ver >= 674 {
		s = append(s, Array())
	}
	return s
}

func TestGateOrdering(t *testing.T) {
	payload := []byte("mip level zero")
	for _, ver := range []int{296, 297, 566, 567, 673, 674, 868} {
		v := archive.Version{Game: archive.UE3, Ver: ver}
		t.Run(v.String(), func(t *testing.T) {
			obj, _, data, warn := decode(t, "Texture2D", v, texture2D(v, payload), 0)
			require.NoError(t, warn)
			assert.False(t, obj.Diag.Partial)
			assert.Zero(t, obj.Diag.Skipped)

			tex := obj.Texture2D()
			require.NotNil(t, tex)
			if ver < 297 {
				assert.EqualValues(t, 32, tex.SizeX)
				assert.Equal(t, unmaterial.PF_DXT5, tex.Format)
			} else {
				assert.EqualValues(t, 64, tex.SizeX)
				assert.Equal(t, unmaterial.PF_Unknown, tex.Format)
			}
			if ver >= 567 {
				assert.Equal(t, unmaterial.GUID{A: 1, B: 2, C: 3, D: 4}, tex.TextureFileCacheGuid)
			} else {
				assert.Zero(t, tex.TextureFileCacheGuid)
			}
			assert.True(t, tex.SourceArt.Empty())

			require.Len(t, tex.Mips, 1)
			assert.EqualValues(t, 32, tex.Mips[0].SizeX)
			got, err := bulk.NewStore(bytes.NewReader(data)).Materialize(tex.Mips[0].Data)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestTextureFormatRemap(t *testing.T) {
	for _, tc := range []struct {
		name string
		v    archive.Version
		body []Item
		from unmaterial.TextureFormat
		want unmaterial.TextureFormat
	}{
		{
			name: "bioshock",
			v:    archive.Version{Game: archive.Bioshock, Ver: 141, LicenseeVer: 56},
			body: []Item{Int32(2), Int32(1), Int64(4096), Count(0)},
			from: unmaterial.TEXF_CxV8U8,
			want: unmaterial.TEXF_DXT5N,
		},
		{
			name: "bioshock 3dc",
			v:    archive.Version{Game: archive.Bioshock, Ver: 141, LicenseeVer: 56},
			body: []Item{Int32(2), Int32(1), Int64(4096), Count(0)},
			from: unmaterial.TEXF_3DC,
			want: unmaterial.TEXF_3DC,
		},
		{
			name: "republic commando",
			v:    archive.Version{Game: archive.RepCommando, Ver: 148},
			body: []Item{Count(0)},
			from: unmaterial.TEXF_3DC,
			want: unmaterial.TEXF_CxV8U8,
		},
		{
			name: "unreal tournament",
			v:    ut2,
			body: []Item{Count(0)},
			from: unmaterial.TEXF_CxV8U8,
			want: unmaterial.TEXF_CxV8U8,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := append(Object(Props(Prop("Format", props.WireByte, Uint8(uint8(tc.from))))), tc.body...)
			obj, _, _, warn := decode(t, "Texture", tc.v, s, 0)
			require.NoError(t, warn)
			tex := unmaterial.As[unmaterial.Texture](obj)
			assert.Equal(t, tc.want, tex.Format)
			if tc.v.Game == archive.Bioshock {
				assert.EqualValues(t, 4096, tex.CachedBulkDataSize)
			}
		})
	}
}

func TestMaterialResource(t *testing.T) {
	for _, tc := range []struct {
		name  string
		value Item
	}{
		{"byte", Uint8(uint8(unmaterial.BLEND_Translucent))},
		{"name", Name("BLEND_Translucent")},
	} {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			dec := codec.Decoder{Logger: zap.New(core)}

			s := Object(
				Props(Prop("BlendMode", props.WireByte, tc.value).Enum("EBlendMode")),
				Count(0), Count(0), Zero(24),
				Array(Ref(2), Ref(3)),
				Zero(7),
			)
			data, names := s.Declare(ue3)
			ar := archive.New(data, ue3, archive.WithNames(names))
			obj, warn, err := dec.Decode("Material", ar)
			require.NoError(t, err)
			require.NoError(t, warn)
			assert.Equal(t, unmaterial.KindMaterial3, obj.Kind)

			m := unmaterial.As[unmaterial.Material3](obj)
			assert.Equal(t, unmaterial.BLEND_Translucent, m.BlendMode)
			assert.True(t, obj.IsTranslucent(nil))
			assert.Equal(t, []unmaterial.Ref{2, 3}, m.ReferencedTextures)
			assert.Zero(t, obj.Diag.Corrected)
			assert.EqualValues(t, 7, obj.Diag.Skipped)
			assert.Equal(t, 1, logs.FilterMessage("dropping bytes").Len())
		})
	}
}

func TestMaterialInstanceConstant(t *testing.T) {
	obj, _, _, warn := decode(t, "MaterialInstanceConstant", ue3, Object(Props(
		Prop("Parent", props.WireObject, Ref(1)),
		Prop("TextureParameterValues", props.WireArray, Array(Props(
			Prop("ParameterName", props.WireName, Name("DiffuseMap")),
			Prop("ParameterValue", props.WireObject, Ref(2)),
			Prop("ExpressionGUID", props.WireStruct, GUID{}).Struct("Guid"),
		))),
		Prop("ScalarParameterValues", props.WireArray, Array(Props(
			Prop("ParameterName", props.WireName, Name("Gloss")),
			Prop("ParameterValue", props.WireFloat, Float(0.5)),
		))),
		Prop("VectorParameterValues", props.WireArray, Array(Props(
			Prop("ParameterName", props.WireName, Name("EmissiveColor")),
			Prop("ParameterValue", props.WireStruct, Float(1), Float(0), Float(0), Float(1)).Struct("LinearColor"),
		))),
	)), 0)
	require.NoError(t, warn)
	mic := unmaterial.As[unmaterial.MaterialInstanceConstant](obj)
	require.NotNil(t, mic)
	assert.EqualValues(t, 1, mic.Parent)
	assert.Equal(t, []unmaterial.TextureParameterValue{{ParameterName: "DiffuseMap", ParameterValue: 2}}, mic.TextureParameterValues)
	assert.Equal(t, []unmaterial.ScalarParameterValue{{ParameterName: "Gloss", ParameterValue: 0.5}}, mic.ScalarParameterValues)
	assert.Equal(t, []unmaterial.VectorParameterValue{{ParameterName: "EmissiveColor", ParameterValue: unmaterial.LinearColor{R: 1, A: 1}}}, mic.VectorParameterValues)
	assert.EqualValues(t, 16, mic.MobileSpecularPower)
}

func TestColors(t *testing.T) {
	obj, _, _, warn := decode(t, "Palette", ut2, Object(Props(), Array(Color{10, 20, 30, 40}, Color{1, 2, 3, 4})), 0)
	require.NoError(t, warn)
	assert.Equal(t, []unmaterial.Color{{R: 10, G: 20, B: 30}, {R: 1, G: 2, B: 3, A: 4}}, unmaterial.As[unmaterial.Palette](obj).Colors)

	// Colors stored as properties are in BGRA order.
	obj, _, _, warn = decode(t, "ConstantColor", ut2, Object(Props(
		Prop("Color", props.WireStruct, Color{1, 2, 3, 4}).Struct("Color"),
	)), 0)
	require.NoError(t, warn)
	assert.Equal(t, unmaterial.Color{R: 3, G: 2, B: 1, A: 4}, unmaterial.As[unmaterial.ConstantColor](obj).Color)
}

func TestShaderOpacity(t *testing.T) {
	obj, _, _, warn := decode(t, "Shader", ut2, Object(Props(
		Prop("Diffuse", props.WireObject, Ref(1)),
		Prop("Opacity", props.WireObject, Ref(2)),
		Prop("OutputBlending", props.WireByte, Uint8(uint8(unmaterial.OB_Translucent))),
	)), 0)
	require.NoError(t, warn)
	sh := unmaterial.As[unmaterial.Shader](obj)
	assert.EqualValues(t, 1, sh.Diffuse)
	assert.EqualValues(t, 2, sh.Opacity)
	assert.Equal(t, unmaterial.OB_Translucent, sh.OutputBlending)

	bio := archive.Version{Game: archive.Bioshock, Ver: 141, LicenseeVer: 0x28}
	obj, _, _, warn = decode(t, "Shader", bio, Object(Props(
		Prop("Opacity", props.WireStruct, Props(
			Prop("Material", props.WireObject, Ref(3)),
			Prop("Channel", props.WireByte, Uint8(uint8(unmaterial.MC_G))),
		)).Struct("MaskMaterial"),
	)), 0)
	require.NoError(t, warn)
	sh = unmaterial.As[unmaterial.Shader](obj)
	assert.Zero(t, sh.Opacity)
	assert.Equal(t, unmaterial.MaskMaterial{Material: 3, Channel: unmaterial.MC_G}, sh.OpacityMask)
}

func TestUnknownType(t *testing.T) {
	ar := Stream{Object(Props())}.Archive(ut2)
	obj, _, err := codec.Decode("StaticMesh", ar)
	assert.Nil(t, obj)
	assert.True(t, errors.Is(err, errors.ErrUnknownType))

	// The class exists only in the third generation.
	_, _, err = codec.Decode("Texture2D", ar)
	assert.True(t, errors.Is(err, errors.ErrUnknownType))

	ar = Stream{Zero(8)}.Archive(ut2)
	require.NoError(t, ar.SeekTo(6))
	require.NoError(t, ar.SetStopper(4))
	_, _, err = codec.Decode("Texture", ar)
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	for _, tc := range []struct {
		name string
		v    archive.Version
		want unmaterial.Kind
	}{
		{"Material", ut2, unmaterial.KindMaterial},
		{"Material", ue3, unmaterial.KindMaterial3},
		{"texture", ut2, unmaterial.KindTexture},
		{"Texture", ue3, unmaterial.KindTexture3},
		{"ShadowMapTexture2D", ue3, unmaterial.KindTexture2D},
		{"Palette", ue3, unmaterial.KindPalette},
	} {
		k, ok := codec.Lookup(tc.name, tc.v)
		assert.True(t, ok, "%s in %s", tc.name, tc.v)
		assert.Equal(t, tc.want, k, "%s in %s", tc.name, tc.v)
	}
	_, ok := codec.Lookup("Shader", ue3)
	assert.False(t, ok)

	assert.Contains(t, codec.ClassNames(ut2), "FinalBlend")
	assert.NotContains(t, codec.ClassNames(ut2), "Texture2D")
	assert.Contains(t, codec.ClassNames(ue3), "MaterialInstanceConstant")
}

func TestTables(t *testing.T) {
	for _, k := range unmaterial.Kinds() {
		table := codec.Table(k)
		require.NotNil(t, table, "%s", k)
		if p := k.Parent(); p != unmaterial.KindInvalid {
			assert.Equal(t, codec.Table(p), table.Parent, "%s", k)
		}
	}
	d, owner := codec.Table(unmaterial.KindTexScaler).Lookup("FallbackMaterial")
	require.NotNil(t, d)
	assert.Equal(t, codec.Table(unmaterial.KindMaterial), owner)
}
