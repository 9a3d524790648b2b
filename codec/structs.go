package codec

import (
	"github.com/ueforge/unmaterial"
	"github.com/ueforge/unmaterial/archive"
	"github.com/ueforge/unmaterial/props"
)

type (
	object = unmaterial.Object
	ref    = unmaterial.Ref
)

var refs = props.Ref[ref]()

// Structs with a fixed binary layout. A color stored as a property keeps
// the engine's in-memory byte order, BGRA.
var (
	colorCodec       = props.Struct("Color", 4, readPropertyColor)
	linearColorCodec = props.Struct("LinearColor", 16, readLinearColor)
	rotatorCodec     = props.Struct("Rotator", 12, readRotator, props.WireRotator)
	guidCodec        = props.Struct("Guid", 16, readGUID)
)

func readFloats(ar *archive.Archive, p ...*float32) (err error) {
	for _, f := range p {
		if *f, err = ar.Float32(); err != nil {
			return err
		}
	}
	return nil
}

func readInts(ar *archive.Archive, p ...*int32) (err error) {
	for _, i := range p {
		if *i, err = ar.Int32(); err != nil {
			return err
		}
	}
	return nil
}

func readPropertyColor(ar *archive.Archive) (c unmaterial.Color, err error) {
	b, err := ar.Bytes(4)
	if err != nil {
		return c, err
	}
	return unmaterial.Color{R: b[2], G: b[1], B: b[0], A: b[3]}, nil
}

// readColor reads a color serialized natively, which is in RGBA order.
func readColor(ar *archive.Archive) (c unmaterial.Color, err error) {
	b, err := ar.Bytes(4)
	if err != nil {
		return c, err
	}
	return unmaterial.Color{R: b[0], G: b[1], B: b[2], A: b[3]}, nil
}

func readLinearColor(ar *archive.Archive) (c unmaterial.LinearColor, err error) {
	err = readFloats(ar, &c.R, &c.G, &c.B, &c.A)
	return c, err
}

func readRotator(ar *archive.Archive) (r unmaterial.Rotator, err error) {
	err = readInts(ar, &r.Pitch, &r.Yaw, &r.Roll)
	return r, err
}

func readGUID(ar *archive.Archive) (g unmaterial.GUID, err error) {
	for _, p := range []*uint32{&g.A, &g.B, &g.C, &g.D} {
		if *p, err = ar.Uint32(); err != nil {
			return g, err
		}
	}
	return g, nil
}

////////////////////////////////////////////////////////////////

// Structs stored as nested property streams.

var maskMaterialCodec = props.Tagged("MaskMaterial",
	props.NewTable("MaskMaterial", nil).Add(
		props.Field("Material", refs, func(m *unmaterial.MaskMaterial) *ref { return &m.Material }),
		props.Field("Channel", props.Enum[unmaterial.MaskChannel](), func(m *unmaterial.MaskMaterial) *unmaterial.MaskChannel { return &m.Channel }),
	),
	func() unmaterial.MaskMaterial { return unmaterial.MaskMaterial{} },
)

var scalarParameterCodec = props.Tagged("ScalarParameterValue",
	props.NewTable("ScalarParameterValue", nil).Add(
		props.Field("ParameterName", props.Name, func(v *unmaterial.ScalarParameterValue) *string { return &v.ParameterName }),
		props.Field("ParameterValue", props.Float, func(v *unmaterial.ScalarParameterValue) *float32 { return &v.ParameterValue }),
	).Drop("ExpressionGUID"),
	func() unmaterial.ScalarParameterValue { return unmaterial.ScalarParameterValue{} },
)

var textureParameterCodec = props.Tagged("TextureParameterValue",
	props.NewTable("TextureParameterValue", nil).Add(
		props.Field("ParameterName", props.Name, func(v *unmaterial.TextureParameterValue) *string { return &v.ParameterName }),
		props.Field("ParameterValue", refs, func(v *unmaterial.TextureParameterValue) *ref { return &v.ParameterValue }),
	).Drop("ExpressionGUID"),
	func() unmaterial.TextureParameterValue { return unmaterial.TextureParameterValue{} },
)

var vectorParameterCodec = props.Tagged("VectorParameterValue",
	props.NewTable("VectorParameterValue", nil).Add(
		props.Field("ParameterName", props.Name, func(v *unmaterial.VectorParameterValue) *string { return &v.ParameterName }),
		props.Field("ParameterValue", linearColorCodec, func(v *unmaterial.VectorParameterValue) *unmaterial.LinearColor { return &v.ParameterValue }),
	).Drop("ExpressionGUID"),
	func() unmaterial.VectorParameterValue { return unmaterial.VectorParameterValue{} },
)
