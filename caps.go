package unmaterial

import "strings"

// maxDepth bounds how far capability queries follow references between
// materials. Deeper chains are treated as cycles.
const maxDepth = 32

// IsTexture returns whether the object holds image data directly.
func (o *Object) IsTexture() bool {
	return o.Kind.Is(KindBitmapMaterial) || o.Kind.Is(KindTexture3)
}

// IsTextureCube returns whether the object is a cube map.
func (o *Object) IsTextureCube() bool {
	return o.Kind.Is(KindTextureCube)
}

// IsTranslucent returns whether the material blends with what is behind it.
// References to other materials are followed through r.
func (o *Object) IsTranslucent(r Resolver) bool {
	q := query{r: r}
	return q.translucent(o)
}

// Params returns the render parameters of the material. References that do
// not resolve through r leave their slot empty.
func (o *Object) Params(r Resolver) Params {
	q := query{r: r}
	p := NewParams()
	q.params(o, &p)
	return p
}

// capability holds the behavior of a kind. A nil function is inherited from
// the nearest ancestor that defines it.
type capability struct {
	translucent func(q *query, o *Object) bool
	params      func(q *query, o *Object, p *Params)
}

// capabilities is filled in init because its functions recurse into
// lookups of the table itself.
var capabilities map[Kind]capability

func init() {
	capabilities = map[Kind]capability{
		KindBitmapMaterial: {
			params: func(q *query, o *Object, p *Params) { p.Diffuse = o },
		},
		KindTexture: {
			translucent: func(q *query, o *Object) bool {
				t := As[Texture](o)
				return t.Masked || t.AlphaTexture
			},
			params: func(q *query, o *Object, p *Params) {
				p.Diffuse = o
				if t := As[Texture](o); t.AlphaTexture {
					p.OpacityFromAlpha = true
				}
			},
		},
		KindShader: {
			translucent: func(q *query, o *Object) bool {
				return As[Shader](o).OutputBlending != OB_Normal
			},
			params: shaderParams,
		},
		KindFacingShader: {
			translucent: func(q *query, o *Object) bool {
				return As[FacingShader](o).OutputBlending != FB_Overwrite
			},
			params: facingShaderParams,
		},
		KindModifier: {
			translucent: func(q *query, o *Object) bool {
				return q.translucent(q.resolve(o.Modifier().Wrapped))
			},
			params: func(q *query, o *Object, p *Params) {
				q.params(q.resolve(o.Modifier().Wrapped), p)
			},
		},
		KindFinalBlend: {
			translucent: func(q *query, o *Object) bool {
				return As[FinalBlend](o).FrameBufferBlending != FB_Overwrite
			},
		},
		KindCombiner: {
			translucent: func(q *query, o *Object) bool { return false },
			params:      combinerParams,
		},
		KindTexture3: {
			params: func(q *query, o *Object, p *Params) { p.Diffuse = o },
		},
		KindTextureCube: {
			params: func(q *query, o *Object, p *Params) { p.Cube = o },
		},
		KindMaterialInterface: {
			params: func(q *query, o *Object, p *Params) { q.mobileParams(o.MaterialInterface(), p) },
		},
		KindMaterial3: {
			translucent: func(q *query, o *Object) bool {
				return As[Material3](o).BlendMode != BLEND_Opaque
			},
			params: material3Params,
		},
		KindMaterialInstance: {
			translucent: func(q *query, o *Object) bool {
				return q.translucent(q.resolve(o.MaterialInstance().Parent))
			},
			params: func(q *query, o *Object, p *Params) {
				q.params(q.resolve(o.MaterialInstance().Parent), p)
			},
		},
		KindMaterialInstanceConstant: {
			params: instanceConstantParams,
		},
	}
}

func lookupTranslucent(k Kind) func(*query, *Object) bool {
	for ; k != KindInvalid; k = k.Parent() {
		if f := capabilities[k].translucent; f != nil {
			return f
		}
	}
	return nil
}

func lookupParams(k Kind) func(*query, *Object, *Params) {
	for ; k != KindInvalid; k = k.Parent() {
		if f := capabilities[k].params; f != nil {
			return f
		}
	}
	return nil
}

type query struct {
	r     Resolver
	depth int
}

func (q *query) resolve(ref Ref) *Object {
	if q.r == nil || ref.IsNull() {
		return nil
	}
	return q.r.Resolve(ref)
}

func (q *query) translucent(o *Object) bool {
	if o == nil || q.depth >= maxDepth {
		return false
	}
	f := lookupTranslucent(o.Kind)
	if f == nil {
		return false
	}
	q.depth++
	defer func() { q.depth-- }()
	return f(q, o)
}

func (q *query) params(o *Object, p *Params) {
	if o == nil || q.depth >= maxDepth {
		return
	}
	f := lookupParams(o.Kind)
	if f == nil {
		return
	}
	q.depth++
	defer func() { q.depth-- }()
	f(q, o, p)
}

// texture resolves ref to a texture. A reference to a material yields the
// diffuse texture of that material.
func (q *query) texture(ref Ref) *Object {
	o := q.resolve(ref)
	if o == nil || o.IsTexture() {
		return o
	}
	sub := NewParams()
	q.params(o, &sub)
	return sub.Diffuse
}

func maskChannel(c MaskChannel) Channel {
	switch c {
	case MC_R:
		return TC_R
	case MC_G:
		return TC_G
	case MC_B:
		return TC_B
	}
	return TC_A
}

func shaderParams(q *query, o *Object, p *Params) {
	s := As[Shader](o)
	p.Diffuse = q.texture(s.Diffuse)
	p.Normal = q.texture(s.NormalMap)
	p.Specular = q.texture(s.SpecularityMask)
	if p.Specular == nil {
		// An unmasked specular input is a cube map of reflections.
		if t := q.texture(s.Specular); t != nil && t.IsTextureCube() {
			p.Cube = t
		} else if t != nil {
			p.Specular = t
		}
	} else {
		p.Cube = q.texture(s.Specular)
	}
	p.Opacity = q.texture(s.Opacity)
	p.Emissive = q.texture(s.SelfIllumination)
	if p.Emissive == nil {
		if t := q.texture(s.SelfIlluminationMask); t != nil && t == p.Diffuse {
			p.Emissive = t
			p.EmissiveChannel = TC_A
		}
	}

	// Channel masks override the plain references.
	if t := q.texture(s.SpecularMask.Material); t != nil {
		p.Specular = t
		p.SpecularMaskChannel = maskChannel(s.SpecularMask.Channel)
	}
	if t := q.texture(s.GlossinessMask.Material); t != nil {
		p.SpecPower = t
		p.SpecularPowerChannel = maskChannel(s.GlossinessMask.Channel)
	}
	if t := q.texture(s.ReflectionMask.Material); t != nil {
		p.Mask = t
		p.CubemapMaskChannel = maskChannel(s.ReflectionMask.Channel)
	}
	if t := q.texture(s.EmissiveMask.Material); t != nil {
		p.Emissive = t
		p.EmissiveChannel = maskChannel(s.EmissiveMask.Channel)
	}
	if t := q.texture(s.OpacityMask.Material); t != nil && p.Opacity == nil {
		p.Opacity = t
	}
	if p.Opacity != nil && p.Opacity == p.Diffuse {
		p.Opacity = nil
		p.OpacityFromAlpha = true
	}
}

func facingShaderParams(q *query, o *Object, p *Params) {
	s := As[FacingShader](o)
	p.Diffuse = q.texture(s.FacingDiffuse)
	if p.Diffuse == nil {
		p.Diffuse = q.texture(s.EdgeDiffuse)
	}
	p.Normal = q.texture(s.NormalMap)
	if t := q.texture(s.FacingSpecularMask.Material); t != nil {
		p.Specular = t
		p.SpecularMaskChannel = maskChannel(s.FacingSpecularMask.Channel)
	}
	if t := q.texture(s.FacingGlossinessMask.Material); t != nil {
		p.SpecPower = t
		p.SpecularPowerChannel = maskChannel(s.FacingGlossinessMask.Channel)
	}
	p.Emissive = q.texture(s.FacingEmissive)
	if t := q.texture(s.FacingEmissiveMask.Material); t != nil && p.Emissive == nil {
		p.Emissive = t
		p.EmissiveChannel = maskChannel(s.FacingEmissiveMask.Channel)
	}
	if t := q.texture(s.FacingOpacity.Material); t != nil {
		p.Opacity = t
	}
}

func combinerParams(q *query, o *Object, p *Params) {
	c := As[Combiner](o)
	switch c.CombineOperation {
	case CO_Use_Color_From_Material1, CO_Multiply, CO_Add, CO_Subtract, CO_AlphaBlend_With_Mask,
		CO_Add_With_Mask_Modulation:
		p.Diffuse = q.texture(c.Material1)
		if p.Diffuse == nil {
			p.Diffuse = q.texture(c.Material2)
		}
	case CO_Use_Color_From_Material2:
		p.Diffuse = q.texture(c.Material2)
	case CO_Use_Color_From_Mask:
		p.Diffuse = q.texture(c.Mask)
	}
	if p.Diffuse == nil {
		return
	}
	// The other operand usually carries lighting or emission.
	if c.CombineOperation == CO_Add || c.CombineOperation == CO_Add_With_Mask_Modulation {
		if t := q.texture(c.Material2); t != nil && t != p.Diffuse {
			p.Emissive = t
		}
	}
}

func (q *query) mobileParams(m *MaterialInterface, p *Params) {
	if m == nil {
		return
	}
	if p.Diffuse == nil {
		p.Diffuse = q.texture(m.MobileBaseTexture)
	}
	if p.Normal == nil {
		p.Normal = q.texture(m.MobileNormalTexture)
	}
	if p.Mask == nil {
		p.Mask = q.texture(m.MobileMaskTexture)
	}
	if p.Diffuse == nil {
		p.Diffuse = q.texture(m.FlattenedTexture)
	}
	if m.UseMobileSpecular {
		p.UseMobileSpecular = true
		p.MobileSpecularPower = m.MobileSpecularPower
		p.MobileSpecularMask = m.MobileSpecularMask
		if m.MobileSpecularMask == MSM_DiffuseAlpha {
			p.SpecularFromAlpha = true
		}
	}
}

func (p *Params) assign(s slot, o *Object, override bool) bool {
	ptr := p.slot(s)
	if ptr == nil || (*ptr != nil && !override) {
		return false
	}
	*ptr = o
	return true
}

func material3Params(q *query, o *Object, p *Params) {
	m := As[Material3](o)
	var rest []*Object
	for _, ref := range m.ReferencedTextures {
		t := q.resolve(ref)
		if t == nil {
			continue
		}
		if t.IsTextureCube() {
			p.assign(slotCube, t, false)
			continue
		}
		if !p.assign(classify(t.Name), t, false) {
			rest = append(rest, t)
		}
	}
	if p.Diffuse == nil && len(rest) > 0 {
		p.Diffuse = rest[0]
	}
	q.mobileParams(&m.MaterialInterface, p)
}

func instanceConstantParams(q *query, o *Object, p *Params) {
	m := As[MaterialInstanceConstant](o)
	q.params(q.resolve(m.Parent), p)
	for _, v := range m.TextureParameterValues {
		t := q.resolve(v.ParameterValue)
		if t == nil {
			continue
		}
		s := classify(v.ParameterName)
		if s == slotNone {
			s = classify(t.Name)
		}
		if s == slotNone && t.IsTextureCube() {
			s = slotCube
		}
		p.assign(s, t, true)
	}
	for _, v := range m.VectorParameterValues {
		if strings.Contains(strings.ToLower(v.ParameterName), "emissive") {
			p.EmissiveColor = v.ParameterValue
		}
	}
	q.mobileParams(&m.MaterialInterface, p)
}
