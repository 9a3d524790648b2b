package unmaterial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/ueforge/unmaterial"
	"github.com/ueforge/unmaterial/bulk"
)

// graph builds a package from objects. The object at index i is referred to
// by Ref(i+1).
type graph struct {
	*Table
}

func newGraph() graph {
	return graph{NewTable(nil)}
}

func (g graph) add(k Kind, name string, init func(o *Object)) Ref {
	o := NewObject(k, name)
	o.Index = len(g.Exports)
	if init != nil {
		init(o)
	}
	g.Exports = append(g.Exports, o)
	return Ref(len(g.Exports))
}

func (g graph) get(r Ref) *Object {
	return g.Resolve(r)
}

func texture(masked, alpha bool) func(o *Object) {
	return func(o *Object) {
		t := As[Texture](o)
		t.Masked = masked
		t.AlphaTexture = alpha
	}
}

func TestKind(t *testing.T) {
	assert.True(t, KindTexScaler.Is(KindModifier))
	assert.True(t, KindTexScaler.Is(KindTexScaler))
	assert.False(t, KindModifier.Is(KindTexScaler))
	assert.False(t, KindPalette.Is(KindUnrealMaterial))
	assert.Equal(t, []Kind{KindUnrealMaterial, KindMaterial, KindModifier, KindTexModifier, KindTexScaler}, KindTexScaler.Chain())
	assert.Equal(t, "Material", KindMaterial3.String())
	assert.True(t, KindMaterial3.Modern())
	assert.False(t, KindMaterial.Modern())
	assert.False(t, KindInvalid.Valid())
	for _, k := range Kinds() {
		assert.NotNil(t, NewObject(k, "").Fields, "%s", k)
	}
}

func TestIsTexture(t *testing.T) {
	for _, tc := range []struct {
		kind    Kind
		texture bool
		cube    bool
	}{
		{KindTexture, true, false},
		{KindBitmapMaterial, true, false},
		{KindShader, false, false},
		{KindTexture2D, true, false},
		{KindLightMapTexture2D, true, false},
		{KindTextureCube, true, true},
		{KindMaterial3, false, false},
		{KindPalette, false, false},
	} {
		o := NewObject(tc.kind, "")
		assert.Equal(t, tc.texture, o.IsTexture(), "%s", tc.kind)
		assert.Equal(t, tc.cube, o.IsTextureCube(), "%s", tc.kind)
	}
}

func TestIsTranslucent(t *testing.T) {
	g := newGraph()
	opaque := g.add(KindTexture, "Rock", texture(false, false))
	masked := g.add(KindTexture, "Fence", texture(true, false))
	translucentShader := g.add(KindShader, "Glass", func(o *Object) {
		As[Shader](o).OutputBlending = OB_Translucent
	})
	wrapShader := g.add(KindTexScaler, "GlassScaled", func(o *Object) {
		o.Modifier().Wrapped = translucentShader
	})
	wrapOpaque := g.add(KindTexPanner, "RockPanned", func(o *Object) {
		o.Modifier().Wrapped = opaque
	})
	dangling := g.add(KindTexRotator, "Lost", func(o *Object) {
		o.Modifier().Wrapped = 99
	})
	blend := g.add(KindFinalBlend, "Add", func(o *Object) {
		f := As[FinalBlend](o)
		f.Wrapped = opaque
		f.FrameBufferBlending = FB_Add
	})
	combiner := g.add(KindCombiner, "Mix", func(o *Object) {
		As[Combiner](o).Material1 = translucentShader
	})
	blendMode := g.add(KindMaterial3, "M_Water", func(o *Object) {
		As[Material3](o).BlendMode = BLEND_Additive
	})
	instance := g.add(KindMaterialInstanceConstant, "MI_Water", func(o *Object) {
		o.MaterialInstance().Parent = blendMode
	})
	orphan := g.add(KindMaterialInstanceConstant, "MI_Orphan", nil)

	for _, tc := range []struct {
		ref  Ref
		want bool
	}{
		{opaque, false},
		{masked, true},
		{translucentShader, true},
		{wrapShader, true},
		{wrapOpaque, false},
		{dangling, false},
		{blend, true},
		{combiner, false},
		{blendMode, true},
		{instance, true},
		{orphan, false},
	} {
		o := g.get(tc.ref)
		assert.Equal(t, tc.want, o.IsTranslucent(g), "%s", o.Name)
	}

	// Without a resolver, references are not followed.
	assert.False(t, g.get(wrapShader).IsTranslucent(nil))
}

func TestModifierCycle(t *testing.T) {
	g := newGraph()
	a := g.add(KindTexScaler, "A", nil)
	b := g.add(KindTexScaler, "B", func(o *Object) { o.Modifier().Wrapped = a })
	g.get(a).Modifier().Wrapped = b

	assert.False(t, g.get(a).IsTranslucent(g))
	assert.True(t, g.get(a).Params(g).IsNull())
}

func TestShaderParams(t *testing.T) {
	g := newGraph()
	diffuse := g.add(KindTexture, "Wall_D", texture(false, true))
	normal := g.add(KindTexture, "Wall_N", nil)
	specMap := g.add(KindTexture, "Wall_S", nil)
	cube := g.add(KindTexture, "Sky", nil)
	// A shader used as a texture contributes its diffuse.
	inner := g.add(KindShader, "Inner", func(o *Object) { As[Shader](o).Diffuse = specMap })
	shader := g.add(KindShader, "Wall", func(o *Object) {
		s := As[Shader](o)
		s.Diffuse = diffuse
		s.NormalMap = normal
		s.SpecularityMask = inner
		s.Specular = cube
		s.Opacity = diffuse
		s.SelfIllumination = 77
	})

	p := g.get(shader).Params(g)
	assert.Equal(t, g.get(diffuse), p.Diffuse)
	assert.Equal(t, g.get(normal), p.Normal)
	assert.Equal(t, g.get(specMap), p.Specular)
	assert.Equal(t, g.get(cube), p.Cube)
	assert.Nil(t, p.Opacity)
	assert.True(t, p.OpacityFromAlpha)
	assert.Nil(t, p.Emissive)
	assert.False(t, p.IsNull())
}

func TestMaskParams(t *testing.T) {
	g := newGraph()
	diffuse := g.add(KindTexture, "Gun", nil)
	masks := g.add(KindTexture, "GunMasks", nil)
	shader := g.add(KindShader, "GunShader", func(o *Object) {
		s := As[Shader](o)
		s.Diffuse = diffuse
		s.SpecularMask = MaskMaterial{Material: masks, Channel: MC_R}
		s.GlossinessMask = MaskMaterial{Material: masks, Channel: MC_G}
		s.EmissiveMask = MaskMaterial{Material: masks, Channel: MC_A}
	})

	p := g.get(shader).Params(g)
	assert.Equal(t, g.get(diffuse), p.Diffuse)
	assert.Equal(t, g.get(masks), p.Specular)
	assert.Equal(t, TC_R, p.SpecularMaskChannel)
	assert.Equal(t, g.get(masks), p.SpecPower)
	assert.Equal(t, TC_G, p.SpecularPowerChannel)
	assert.Equal(t, g.get(masks), p.Emissive)
	assert.Equal(t, TC_A, p.EmissiveChannel)
}

func TestModifierParams(t *testing.T) {
	g := newGraph()
	diffuse := g.add(KindTexture, "Water", texture(false, true))
	scaler := g.add(KindTexScaler, "WaterScaled", func(o *Object) { o.Modifier().Wrapped = diffuse })
	panner := g.add(KindTexPanner, "WaterPanned", func(o *Object) { o.Modifier().Wrapped = scaler })

	p := g.get(panner).Params(g)
	assert.Equal(t, g.get(diffuse), p.Diffuse)
	assert.True(t, p.OpacityFromAlpha)

	lost := g.add(KindTexPanner, "Lost", func(o *Object) { o.Modifier().Wrapped = 42 })
	p = g.get(lost).Params(g)
	assert.True(t, p.IsNull())
	assert.Equal(t, NewParams().EmissiveColor, p.EmissiveColor)
}

func TestCombinerParams(t *testing.T) {
	g := newGraph()
	base := g.add(KindTexture, "Base", nil)
	glow := g.add(KindTexture, "Glow", nil)
	add := g.add(KindCombiner, "Added", func(o *Object) {
		c := As[Combiner](o)
		c.CombineOperation = CO_Add
		c.Material1 = base
		c.Material2 = glow
	})
	second := g.add(KindCombiner, "Second", func(o *Object) {
		c := As[Combiner](o)
		c.CombineOperation = CO_Use_Color_From_Material2
		c.Material1 = base
		c.Material2 = glow
	})

	p := g.get(add).Params(g)
	assert.Equal(t, g.get(base), p.Diffuse)
	assert.Equal(t, g.get(glow), p.Emissive)

	p = g.get(second).Params(g)
	assert.Equal(t, g.get(glow), p.Diffuse)
	assert.Nil(t, p.Emissive)
}

func TestMaterial3Params(t *testing.T) {
	g := newGraph()
	diff := g.add(KindTexture2D, "T_Brick_D", nil)
	norm := g.add(KindTexture2D, "T_Brick_N", nil)
	specMap := g.add(KindTexture2D, "T_Brick_Spec", nil)
	env := g.add(KindTextureCube, "T_Sky", nil)
	other := g.add(KindTexture2D, "T_Noise", nil)
	mat := g.add(KindMaterial3, "M_Brick", func(o *Object) {
		m := As[Material3](o)
		m.ReferencedTextures = []Ref{other, norm, specMap, env, diff, 123}
		m.UseMobileSpecular = true
		m.MobileSpecularMask = MSM_DiffuseAlpha
	})

	p := g.get(mat).Params(g)
	assert.Equal(t, g.get(diff), p.Diffuse)
	assert.Equal(t, g.get(norm), p.Normal)
	assert.Equal(t, g.get(specMap), p.Specular)
	assert.Equal(t, g.get(env), p.Cube)
	assert.True(t, p.UseMobileSpecular)
	assert.EqualValues(t, 16, p.MobileSpecularPower)
	assert.True(t, p.SpecularFromAlpha)

	// Unclassified textures fill the diffuse slot in order.
	plain := g.add(KindMaterial3, "M_Plain", func(o *Object) {
		As[Material3](o).ReferencedTextures = []Ref{other, env}
	})
	p = g.get(plain).Params(g)
	assert.Equal(t, g.get(other), p.Diffuse)
	assert.Equal(t, g.get(env), p.Cube)
}

func TestInstanceParams(t *testing.T) {
	g := newGraph()
	diff := g.add(KindTexture2D, "T_Brick_D", nil)
	norm := g.add(KindTexture2D, "T_Brick_N", nil)
	moss := g.add(KindTexture2D, "T_Moss", nil)
	mat := g.add(KindMaterial3, "M_Brick", func(o *Object) {
		As[Material3](o).ReferencedTextures = []Ref{diff, norm}
	})
	mic := g.add(KindMaterialInstanceConstant, "MI_Moss", func(o *Object) {
		m := As[MaterialInstanceConstant](o)
		m.Parent = mat
		m.TextureParameterValues = []TextureParameterValue{
			{ParameterName: "DiffuseTexture", ParameterValue: moss},
			{ParameterName: "Unused", ParameterValue: 0},
		}
		m.VectorParameterValues = []VectorParameterValue{
			{ParameterName: "EmissiveTint", ParameterValue: LinearColor{R: 1, G: 0.5, A: 1}},
		}
	})

	p := g.get(mic).Params(g)
	assert.Equal(t, g.get(moss), p.Diffuse)
	assert.Equal(t, g.get(norm), p.Normal)
	assert.Equal(t, LinearColor{R: 1, G: 0.5, A: 1}, p.EmissiveColor)

	// The parent is unchanged.
	p = g.get(mat).Params(g)
	assert.Equal(t, g.get(diff), p.Diffuse)
}

func TestRefs(t *testing.T) {
	o := NewObject(KindShader, "S")
	s := As[Shader](o)
	s.Diffuse = 1
	s.Opacity = -2
	s.SpecularMask.Material = 3
	assert.Equal(t, []Ref{1, -2, 3}, o.Refs())

	tab := NewTable([]*Object{NewObject(KindTexture, "T")})
	assert.Equal(t, []Ref{3}, tab.Unresolved(o))
	assert.Nil(t, tab.Resolve(-2))
	assert.Nil(t, tab.Resolve(0))
	assert.Nil(t, (*Table)(nil).Resolve(1))

	m := NewObject(KindMaterialInstanceConstant, "MI")
	As[MaterialInstanceConstant](m).TextureParameterValues = []TextureParameterValue{{ParameterValue: 5}, {ParameterValue: 6}}
	assert.Equal(t, []Ref{5, 6}, m.Refs())
}

func TestHandles(t *testing.T) {
	o := NewObject(KindTexture2D, "T")
	tex := o.Texture2D()
	tex.SourceArt = bulk.Handle{Flags: bulk.Unused}
	tex.Mips = []Mip2D{
		{Data: bulk.Handle{Offset: 100, StoredSize: 8, RawSize: 8}},
		{Data: bulk.Handle{Offset: 108, StoredSize: 2, RawSize: 2}},
	}
	hs := o.Handles()
	require.Len(t, hs, 3)
	assert.True(t, hs[0].Empty())
	assert.EqualValues(t, 100, hs[1].Offset)
	assert.EqualValues(t, 108, hs[2].Offset)

	assert.Empty(t, NewObject(KindShader, "S").Handles())
}

func TestRefString(t *testing.T) {
	assert.Equal(t, "null", Ref(0).String())
	assert.Equal(t, "export#2", Ref(3).String())
	assert.Equal(t, "import#0", Ref(-1).String())
	i, ok := Ref(-3).Import()
	assert.True(t, ok)
	assert.Equal(t, 2, i)
	_, ok = Ref(3).Import()
	assert.False(t, ok)
}
