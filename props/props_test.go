package props_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ueforge/unmaterial/archive"
	. "github.com/ueforge/unmaterial/declare"
	"github.com/ueforge/unmaterial/errors"
	"github.com/ueforge/unmaterial/props"
)

type format uint8

func (format) Names() []string {
	return []string{"P8", "RGBA7", "RGB16", "DXT1", "RGB8", "RGBA8", "NODATA", "DXT3", "DXT5"}
}

type param struct {
	Name  string
	Value float32
}

type modifier struct {
	Material int32
	Masked   bool
}

type scaler struct {
	modifier
	UScale, VScale float32
	Format         format
	Frames         []int32
	Textures       []int32
	Param          param
	Comment        string
	Opacity        int32
	OpacityMask    [4]uint8
}

var (
	paramTable = props.NewTable("Param", nil).Add(
		props.Field("ParameterName", props.Name, func(o *param) *string { return &o.Name }),
		props.Field("ParameterValue", props.Float, func(o *param) *float32 { return &o.Value }),
	)
	modifierTable = props.NewTable("Modifier", nil).Add(
		props.Field("Material", props.Ref[int32](), func(o *scaler) *int32 { return &o.Material }),
		props.Field("bMasked", props.Bool, func(o *scaler) *bool { return &o.Masked }),
	)
	scalerTable = props.NewTable("TexScaler", modifierTable).Add(
		props.Field("UScale", props.Float, func(o *scaler) *float32 { return &o.UScale }),
		props.Field("VScale", props.Float, func(o *scaler) *float32 { return &o.VScale }),
		props.Field("Format", props.Enum[format](), func(o *scaler) *format { return &o.Format }),
		props.Elem("Frames", props.Int, func(o *scaler) *[]int32 { return &o.Frames }),
		props.Array("Textures", props.Ref[int32](), func(o *scaler) *[]int32 { return &o.Textures }),
		props.Field("Param", props.Tagged("ScalarParameterValue", paramTable, func() param { return param{Value: 1} }), func(o *scaler) *param { return &o.Param }),
		props.Field("Comment", props.Str, func(o *scaler) *string { return &o.Comment }),
		props.Alt(
			props.Field("Opacity", props.Ref[int32](), func(o *scaler) *int32 { return &o.Opacity }),
			props.Field("Opacity", props.Struct("Color", 4, readColor), func(o *scaler) *[4]uint8 { return &o.OpacityMask }),
		),
	).Drop("ShaderCode")
)

func readColor(ar *archive.Archive) (c [4]uint8, err error) {
	b, err := ar.Bytes(4)
	copy(c[:], b)
	return c, err
}

var versions = []archive.Version{
	{Game: archive.UT2, Ver: 128},
	{Game: archive.UE3, Ver: 600},
	{Game: archive.UE3, Ver: 868},
}

func decode(t *testing.T, v archive.Version, items ...Item) (*scaler, props.Stats, *archive.Archive, error) {
	t.Helper()
	ar := Stream{Props(items...), Int32(0x7E57)}.Archive(v)
	obj := &scaler{}
	stats, warn, err := props.Decode(ar, scalerTable, obj)
	require.NoError(t, err)
	return obj, stats, ar, warn
}

// trailer checks that the cursor ends right after the terminator.
func trailer(t *testing.T, ar *archive.Archive) {
	t.Helper()
	v, err := ar.Int32()
	require.NoError(t, err)
	assert.EqualValues(t, 0x7E57, v)
}

func TestUnknownSkipped(t *testing.T) {
	for _, v := range versions {
		t.Run(v.String(), func(t *testing.T) {
			obj, stats, ar, warn := decode(t, v,
				Prop("UScale", props.WireFloat, Float(2.5)),
				Prop("Unknown42", props.WireInt, Uint32(0xDEADBEEF)),
				Prop("Unknown43", props.WireStruct, Zero(20)).Struct("Plane"),
				Prop("VScale", props.WireFloat, Float(3)),
			)
			assert.NoError(t, warn)
			assert.EqualValues(t, 2.5, obj.UScale)
			assert.EqualValues(t, 3, obj.VScale)
			assert.Equal(t, props.Stats{Decoded: 2, Unknown: 2}, stats)
			trailer(t, ar)
		})
	}
}

func TestInherited(t *testing.T) {
	for _, v := range versions {
		t.Run(v.String(), func(t *testing.T) {
			obj, stats, ar, warn := decode(t, v,
				Prop("Material", props.WireObject, Ref(-4)),
				Bool("bMasked", true),
				Prop("ShaderCode", props.WireStr, Str("ps_2_0")),
			)
			assert.NoError(t, warn)
			assert.EqualValues(t, -4, obj.Material)
			assert.True(t, obj.Masked)
			assert.Equal(t, 1, stats.Dropped)
			trailer(t, ar)
		})
	}
}

func TestEnum(t *testing.T) {
	for _, v := range versions {
		t.Run(v.String(), func(t *testing.T) {
			obj, _, _, warn := decode(t, v, Prop("Format", props.WireByte, Uint8(7)).Enum("ETextureFormat"))
			assert.NoError(t, warn)
			assert.EqualValues(t, 7, obj.Format)

			obj, _, _, warn = decode(t, v, Prop("Format", props.WireInt, Int32(7)))
			assert.NoError(t, warn)
			assert.EqualValues(t, 7, obj.Format)

			_, _, ar, warn := decode(t, v, Prop("Format", props.WireInt, Int32(300)))
			assert.True(t, errors.Contains(warn, errors.ErrCorruptData))
			trailer(t, ar)

			if !v.Modern() {
				return
			}
			for _, name := range []string{"TEXF_DXT3", "DXT3", "texf_dxt3"} {
				obj, _, ar, warn = decode(t, v, Prop("Format", props.WireByte, Name(name)).Enum("ETextureFormat"))
				assert.NoError(t, warn, name)
				assert.EqualValues(t, 7, obj.Format, name)
				trailer(t, ar)
			}

			obj, _, ar, warn = decode(t, v,
				Prop("Format", props.WireByte, Name("TEXF_MAX")).Enum("ETextureFormat"),
				Prop("UScale", props.WireFloat, Float(2)),
			)
			assert.True(t, errors.Contains(warn, errors.ErrCorruptData))
			assert.Zero(t, obj.Format)
			assert.Equal(t, float32(2), obj.UScale)
			trailer(t, ar)
		})
	}
}

func TestStaticArray(t *testing.T) {
	for _, v := range versions {
		t.Run(v.String(), func(t *testing.T) {
			obj, stats, ar, warn := decode(t, v,
				Prop("Frames", props.WireInt, Int32(9)).Index(2),
				Prop("Frames", props.WireInt, Int32(1)),
				Prop("Frames", props.WireInt, Int32(5)).Index(300),
				// Only the first element of a scalar field is kept.
				Prop("UScale", props.WireFloat, Float(4)).Index(1),
			)
			assert.NoError(t, warn)
			require.Len(t, obj.Frames, 301)
			assert.Equal(t, []int32{1, 0, 9}, obj.Frames[:3])
			assert.EqualValues(t, 5, obj.Frames[300])
			assert.Zero(t, obj.UScale)
			assert.Equal(t, 4, stats.Decoded)
			trailer(t, ar)
		})
	}
}

func TestDynamicArray(t *testing.T) {
	for _, v := range versions {
		t.Run(v.String(), func(t *testing.T) {
			obj, _, ar, warn := decode(t, v,
				Prop("Textures", props.WireArray, Array(Ref(1), Ref(2), Ref(-3))),
			)
			assert.NoError(t, warn)
			assert.Equal(t, []int32{1, 2, -3}, obj.Textures)
			trailer(t, ar)

			// A count larger than the value can hold.
			_, _, ar, warn = decode(t, v,
				Prop("Textures", props.WireArray, Count(1000), Ref(1)),
				Prop("UScale", props.WireFloat, Float(2)),
			)
			assert.True(t, errors.Contains(warn, errors.ErrCorruptData))
			trailer(t, ar)
		})
	}
}

func TestTaggedStruct(t *testing.T) {
	for _, v := range versions {
		t.Run(v.String(), func(t *testing.T) {
			obj, _, ar, warn := decode(t, v,
				Prop("Param", props.WireStruct, Props(
					Prop("ParameterName", props.WireName, Name("Glow")),
					Prop("ExpressionGUID", props.WireStruct, GUID{1, 2, 3, 4}).Struct("Guid"),
				)).Struct("ScalarParameterValue"),
			)
			assert.NoError(t, warn)
			assert.Equal(t, param{Name: "Glow", Value: 1}, obj.Param)
			trailer(t, ar)
		})
	}
}

func TestAlt(t *testing.T) {
	for _, v := range versions {
		t.Run(v.String(), func(t *testing.T) {
			obj, _, _, warn := decode(t, v, Prop("Opacity", props.WireObject, Ref(3)))
			assert.NoError(t, warn)
			assert.EqualValues(t, 3, obj.Opacity)

			obj, _, _, warn = decode(t, v, Prop("Opacity", props.WireStruct, Color{1, 2, 3, 4}).Struct("Color"))
			assert.NoError(t, warn)
			assert.Equal(t, [4]uint8{1, 2, 3, 4}, obj.OpacityMask)

			_, stats, _, warn := decode(t, v, Prop("Opacity", props.WireStruct, Zero(12)).Struct("Vector"))
			assert.Error(t, warn)
			assert.Equal(t, 1, stats.Mismatched)
		})
	}
}

func TestCorrection(t *testing.T) {
	for _, v := range versions {
		t.Run(v.String(), func(t *testing.T) {
			// The value is longer than the field reads.
			obj, stats, ar, warn := decode(t, v,
				Prop("UScale", props.WireFloat, Float(2.5), Int32(-1)),
				Prop("VScale", props.WireFloat, Float(3)),
			)
			assert.NoError(t, warn)
			assert.EqualValues(t, 2.5, obj.UScale)
			assert.EqualValues(t, 3, obj.VScale)
			assert.Equal(t, 1, stats.Corrected)
			trailer(t, ar)

			// The value is shorter than the field reads.
			obj, stats, ar, warn = decode(t, v,
				Prop("UScale", props.WireFloat, Uint16(1)),
				Prop("VScale", props.WireFloat, Float(3)),
			)
			var perr errors.PropertyError
			require.True(t, errors.As(warn, &perr))
			assert.Equal(t, "UScale", perr.Name)
			assert.Zero(t, obj.UScale)
			assert.EqualValues(t, 3, obj.VScale)
			assert.Equal(t, 1, stats.Corrected)
			trailer(t, ar)
		})
	}
}

func TestMismatch(t *testing.T) {
	for _, v := range versions {
		t.Run(v.String(), func(t *testing.T) {
			obj, stats, ar, warn := decode(t, v,
				Prop("UScale", props.WireInt, Int32(2)),
				Prop("Comment", props.WireStr, Str("scaled")),
			)
			var merr props.MismatchError
			require.True(t, errors.As(warn, &merr))
			assert.Equal(t, props.WireInt, merr.Tag.Type)
			assert.Zero(t, obj.UScale)
			assert.Equal(t, "scaled", obj.Comment)
			assert.Equal(t, props.Stats{Decoded: 1, Mismatched: 1}, stats)
			trailer(t, ar)
		})
	}
}

func TestOverrun(t *testing.T) {
	for _, v := range versions {
		t.Run(v.String(), func(t *testing.T) {
			ar := Stream{Props(Prop("UScale", props.WireFloat, Float(2)).Size(64))}.Archive(v)
			_, _, err := props.Decode(ar, scalerTable, &scaler{})
			assert.True(t, errors.Is(err, errors.ErrCorruptData))

			// No terminator.
			ar = Stream{Prop("UScale", props.WireFloat, Float(2))}.Archive(v)
			_, _, err = props.Decode(ar, scalerTable, &scaler{})
			assert.True(t, errors.Is(err, errors.ErrCorruptData))
		})
	}
}

func TestLegacyBool(t *testing.T) {
	v := versions[0]
	obj, _, ar, warn := decode(t, v,
		Bool("bMasked", true),
		Prop("UScale", props.WireFloat, Float(2)),
	)
	assert.NoError(t, warn)
	assert.True(t, obj.Masked)
	assert.EqualValues(t, 2, obj.UScale)
	trailer(t, ar)
}

func TestTable(t *testing.T) {
	d, owner := scalerTable.Lookup("bmasked")
	require.NotNil(t, d)
	assert.Equal(t, modifierTable, owner)
	assert.Equal(t, []*props.Table{scalerTable, modifierTable}, scalerTable.Chain())

	d, _ = scalerTable.Lookup("shadercode")
	require.NotNil(t, d)
	assert.True(t, d.Dropped())

	d, _ = scalerTable.Lookup("nothing")
	assert.Nil(t, d)
	assert.Len(t, modifierTable.Descriptors(), 2)
}
