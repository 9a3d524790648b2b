package codec

import (
	"github.com/ueforge/unmaterial"
	"github.com/ueforge/unmaterial/archive"
)

// outcome tells the decoder how to continue after a rule.
type outcome uint8

const (
	// proceed continues with the next rule.
	proceed outcome = iota
	// endKind skips the remaining rules of the rule's kind. Rules of
	// descendant kinds still apply.
	endKind
	// finish ends the object; the rest of its bytes are dropped.
	finish
)

// state is shared by the rules applied to one object.
type state struct {
	obj *unmaterial.Object
	// Vengeance version header of the object, if read.
	hdrV, hdrSV int32
}

// rule is a structural patch applied to an object when its archive version
// matches.
type rule struct {
	name  string
	when  archive.Cond
	apply func(ar *archive.Archive, s *state) (outcome, error)
}

func games(g ...archive.Game) []archive.Game { return g }

func read(f func(ar *archive.Archive, s *state) error) func(*archive.Archive, *state) (outcome, error) {
	return func(ar *archive.Archive, s *state) (outcome, error) {
		return proceed, f(ar, s)
	}
}

func skip(n int64) func(*archive.Archive, *state) (outcome, error) {
	return func(ar *archive.Archive, s *state) (outcome, error) {
		return proceed, ar.Skip(n)
	}
}

func dropRest(ar *archive.Archive, s *state) (outcome, error) {
	return finish, nil
}

// preRules read fields that precede the property stream of every object.
var preRules = []rule{
	{
		name: "net index",
		when: archive.Cond{Games: games(archive.UE3), Ver: archive.Since(322)},
		apply: read(func(ar *archive.Archive, s *state) error {
			_, err := ar.Int32()
			return err
		}),
	},
}

// rules holds the patches of each kind, applied in order after the
// property stream. The rules of ancestors apply before those of
// descendants.
var rules = map[unmaterial.Kind][]rule{
	unmaterial.KindMaterial: {
		{
			name: "lineage reserved",
			when: archive.Cond{Games: games(archive.Lineage2), Ver: archive.Since(123), LicenseeVer: archive.Range{Min: 0x10, Max: 0x25}},
			apply: read(func(ar *archive.Archive, s *state) error {
				_, err := ar.Int32()
				return err
			}),
		},
		{
			name:  "lineage shader",
			when:  archive.Cond{Games: games(archive.Lineage2), Ver: archive.Since(123), LicenseeVer: archive.Range{Min: 0x1E, Max: 0x25}},
			apply: read(readLineageShader),
		},
		{
			name:  "lineage shader properties",
			when:  archive.Cond{Games: games(archive.Lineage2), Ver: archive.Since(123), LicenseeVer: archive.Since(0x25)},
			apply: read(readLineageShaderProperty),
		},
		{
			name: "lineage code version",
			when: archive.Cond{Games: games(archive.Lineage2), Ver: archive.Since(123), LicenseeVer: archive.Since(0x1F)},
			apply: read(func(ar *archive.Archive, s *state) (err error) {
				l := lineage(s.obj)
				for i := range l.CodeVersion {
					if l.CodeVersion[i], err = ar.Uint16(); err != nil {
						return err
					}
				}
				return nil
			}),
		},
	},

	unmaterial.KindTexture: {
		{
			name: "vengeance header",
			when: archive.Cond{Games: games(archive.Vengeance), LicenseeVer: archive.Since(0x2E)},
			apply: read(func(ar *archive.Archive, s *state) (err error) {
				s.hdrV, s.hdrSV, err = ar.VengeanceHeader(0x2E)
				return err
			}),
		},
		{
			name: "bioshock bulk size",
			when: archive.Cond{Games: games(archive.Bioshock)},
			apply: read(func(ar *archive.Archive, s *state) (err error) {
				if s.hdrSV < 1 {
					return nil
				}
				texture(s.obj).CachedBulkDataSize, err = ar.Int64()
				return err
			}),
		},
		{
			// Bioshock names the format 3DC, but the data is DXT5N.
			name: "bioshock format",
			when: archive.Cond{Games: games(archive.Bioshock)},
			apply: read(func(ar *archive.Archive, s *state) error {
				remapFormat(s.obj, unmaterial.TEXF_CxV8U8, unmaterial.TEXF_DXT5N)
				return nil
			}),
		},
		{
			name: "republic commando format",
			when: archive.Cond{Games: games(archive.RepCommando)},
			apply: read(func(ar *archive.Archive, s *state) error {
				remapFormat(s.obj, unmaterial.TEXF_3DC, unmaterial.TEXF_CxV8U8)
				return nil
			}),
		},
		{
			name: "mips",
			apply: read(func(ar *archive.Archive, s *state) (err error) {
				texture(s.obj).Mips, err = archive.Array(ar, minMipmapSize, readMipmap)
				return err
			}),
		},
		{
			// The first generation ignores the masked flag, and stores
			// compressed mips after the regular ones.
			name: "compressed mips",
			when: archive.Cond{Games: games(archive.UE1)},
			apply: read(func(ar *archive.Archive, s *state) error {
				t := texture(s.obj)
				t.Masked = false
				if !t.HasComp {
					return nil
				}
				_, err := archive.Array(ar, minMipmapSize, readMipmap)
				return err
			}),
		},
		{
			name: "exteel material type",
			when: archive.Cond{Games: games(archive.Exteel)},
			apply: read(func(ar *archive.Archive, s *state) (err error) {
				texture(s.obj).MaterialType, err = ar.Uint8()
				return err
			}),
		},
	},

	unmaterial.KindPalette: {
		{
			name: "colors",
			apply: read(func(ar *archive.Archive, s *state) error {
				p := unmaterial.As[unmaterial.Palette](s.obj)
				colors, err := archive.Array(ar, 4, readColor)
				if err != nil {
					return err
				}
				// The first entry is transparent for masked textures.
				if len(colors) > 0 {
					colors[0].A = 0
				}
				p.Colors = colors
				return nil
			}),
		},
		{
			name: "undying extra",
			when: archive.Cond{Games: games(archive.Undying)},
			apply: skip(4),
		},
	},

	unmaterial.KindShader: {
		{
			name: "vengeance header",
			when: archive.Cond{Games: games(archive.Vengeance), LicenseeVer: archive.Since(0x29)},
			apply: read(func(ar *archive.Archive, s *state) (err error) {
				s.hdrV, s.hdrSV, err = ar.VengeanceHeader(0x29)
				return err
			}),
		},
	},

	unmaterial.KindTexture3: {
		{
			// Source art moved to a separate class.
			name:  "transformers source art",
			when:  archive.Cond{Games: games(archive.Transformers), LicenseeVer: archive.Since(100)},
			apply: func(ar *archive.Archive, s *state) (outcome, error) { return endKind, nil },
		},
		{
			// Two headers of separately stored source art, each a magic
			// number and a file position.
			name: "apb source art",
			when: archive.Cond{Games: games(archive.APB)},
			apply: func(ar *archive.Archive, s *state) (outcome, error) {
				return endKind, ar.Skip(16)
			},
		},
		{
			name: "source art",
			apply: read(func(ar *archive.Archive, s *state) (err error) {
				s.obj.Texture3().SourceArt, err = ar.BulkData()
				return err
			}),
		},
	},

	unmaterial.KindTexture2D: {
		{
			name: "tera source path",
			when: archive.Cond{Games: games(archive.Tera), LicenseeVer: archive.Since(3)},
			apply: read(func(ar *archive.Archive, s *state) (err error) {
				s.obj.Texture2D().SourceFilePath, err = ar.Str()
				return err
			}),
		},
		{
			name: "native size",
			when: archive.Cond{Ver: archive.Before(297)},
			apply: read(func(ar *archive.Archive, s *state) error {
				t := s.obj.Texture2D()
				var format int32
				if err := readInts(ar, &t.SizeX, &t.SizeY, &format); err != nil {
					return err
				}
				if format < 0 || format > 0xFF {
					return ar.Corrupt("pixel format %d out of range", format)
				}
				t.Format = unmaterial.PixelFormat(format)
				return nil
			}),
		},
		{
			name:  "borderlands hash",
			when:  archive.Cond{Games: games(archive.Borderlands)},
			apply: skip(16),
		},
		{
			name: "mips",
			apply: read(func(ar *archive.Archive, s *state) (err error) {
				s.obj.Texture2D().Mips, err = archive.Array(ar, minMip2DSize, readMip2D)
				return err
			}),
		},
		{
			name:  "borderlands hash",
			when:  archive.Cond{Games: games(archive.Borderlands)},
			apply: skip(16),
		},
		{
			name:  "mass effect extra",
			when:  archive.Cond{Games: games(archive.MassEffect), LicenseeVer: archive.Since(65)},
			apply: skip(4),
		},
		{
			name:  "huxley rest",
			when:  archive.Cond{Games: games(archive.Huxley)},
			apply: dropRest,
		},
		{
			name: "dc universe end",
			when: archive.Cond{
				Games: games(archive.DCUniverse),
				Func:  func(v archive.Version) bool { return v.LicenseeVer&0xFF00 >= 0x1700 },
			},
			apply: func(ar *archive.Archive, s *state) (outcome, error) { return endKind, nil },
		},
		{
			name: "file cache guid",
			when: archive.Cond{Ver: archive.Since(567)},
			apply: read(func(ar *archive.Archive, s *state) (err error) {
				s.obj.Texture2D().TextureFileCacheGuid, err = readGUID(ar)
				return err
			}),
		},
		{
			name: "pvrtc mips",
			when: archive.Cond{Ver: archive.Since(674)},
			apply: read(func(ar *archive.Archive, s *state) (err error) {
				s.obj.Texture2D().CachedPVRTCMips, err = archive.Array(ar, minMip2DSize, readMip2D)
				return err
			}),
		},
		{
			name:  "rest",
			apply: dropRest,
		},
	},

	unmaterial.KindLightMapTexture2D: {
		{name: "rest", apply: dropRest},
	},

	unmaterial.KindTexture3D: {
		{
			name: "mips",
			apply: read(func(ar *archive.Archive, s *state) (err error) {
				volume(s.obj).Mips, err = archive.Array(ar, minMip3DSize, readMip3D)
				return err
			}),
		},
	},

	unmaterial.KindMaterial3: {
		{
			name:  "material resource",
			when:  archive.Cond{Ver: archive.Since(656)},
			apply: read(readMaterialResource),
		},
		{name: "rest", apply: dropRest},
	},

	unmaterial.KindMaterialInstance: {
		{name: "rest", apply: dropRest},
	},
}

////////////////////////////////////////////////////////////////

// Smallest serialized sizes of mip records, used to bound counts.
const (
	minMipmapSize = 11
	minMip2DSize  = 24
	minMip3DSize  = 28
)

func remapFormat(o *unmaterial.Object, from, to unmaterial.TextureFormat) {
	if b := o.BitmapMaterial(); b.Format == from {
		b.Format = to
	}
}

func readMipmap(ar *archive.Archive) (m unmaterial.Mipmap, err error) {
	_, subVer, err := ar.VengeanceHeader(0x1A)
	if err != nil {
		return m, err
	}
	if subVer == 1 {
		if _, err = ar.LazyArray(1); err != nil {
			return m, err
		}
	}
	if m.Data, err = ar.LazyArray(1); err != nil {
		return m, err
	}
	if err = readInts(ar, &m.USize, &m.VSize); err != nil {
		return m, err
	}
	if m.UBits, err = ar.Uint8(); err != nil {
		return m, err
	}
	m.VBits, err = ar.Uint8()
	return m, err
}

func readMip2D(ar *archive.Archive) (m unmaterial.Mip2D, err error) {
	if m.Data, err = ar.BulkData(); err != nil {
		return m, err
	}
	if ar.Game == archive.DarkVoid {
		// Gamma corrected copy for consoles.
		if _, err = ar.BulkData(); err != nil {
			return m, err
		}
	}
	err = readInts(ar, &m.SizeX, &m.SizeY)
	return m, err
}

func readMip3D(ar *archive.Archive) (m unmaterial.Mip3D, err error) {
	if m.Data, err = ar.BulkData(); err != nil {
		return m, err
	}
	err = readInts(ar, &m.SizeX, &m.SizeY, &m.SizeZ)
	return m, err
}

func lineage(o *unmaterial.Object) *unmaterial.LineageMaterial {
	m := o.Material()
	if m.Lineage == nil {
		m.Lineage = &unmaterial.LineageMaterial{}
	}
	return m.Lineage
}

func readStrings(ar *archive.Archive) ([]string, error) {
	return archive.Array(ar, 1, (*archive.Archive).Str)
}

// readLineageShader reads the native shader block of older Lineage 2
// materials. Only the texture names and the shader code are kept.
func readLineageShader(ar *archive.Archive, s *state) error {
	l := lineage(s.obj)
	lic := ar.LicenseeVer
	if lic >= 0x21 && lic < 0x24 {
		if err := ar.Skip(1); err != nil {
			return err
		}
	}
	// Texture transform, sampler, matrix and pass counts, two-pass state
	// and alpha reference; then source and destination blend and fog color.
	if err := ar.Skip(6 + 3*4); err != nil {
		return err
	}
	// Eight texture matrices.
	stride := int64(1 + 126)
	if lic < 0x24 {
		stride++
	}
	if err := ar.Skip(8 * stride); err != nil {
		return err
	}
	// Fade colors, period, phase and type.
	if err := ar.Skip(8 + 3*4); err != nil {
		return err
	}
	l.TextureNames = make([]string, 16)
	for i := range l.TextureNames {
		name, err := ar.Str()
		if err != nil {
			return err
		}
		l.TextureNames[i] = name
	}
	code, err := ar.Str()
	if err != nil {
		return err
	}
	l.ShaderCode = code
	return nil
}

// readLineageShaderProperty reads the native shader block of newer Lineage
// 2 materials.
func readLineageShaderProperty(ar *archive.Archive, s *state) error {
	l := lineage(s.obj)
	if err := ar.Skip(4 + 3*4 + 8 + 3*4); err != nil {
		return err
	}
	stages, err := archive.Array(ar, 2, func(ar *archive.Archive) (st unmaterial.LineageStage, err error) {
		if st.Name, err = ar.Str(); err != nil {
			return st, err
		}
		st.Options, err = readStrings(ar)
		return st, err
	})
	if err != nil {
		return err
	}
	l.Stages = stages
	code, err := ar.Str()
	if err != nil {
		return err
	}
	l.ShaderCode = code
	return nil
}

// readMaterialResource reads the compiled material resource, which carries
// the referenced textures in newer versions.
func readMaterialResource(ar *archive.Archive, s *state) error {
	// Compile errors.
	if _, err := readStrings(ar); err != nil {
		return err
	}
	// Expression indices by object.
	n, err := ar.Count(8)
	if err != nil {
		return err
	}
	if err := ar.Skip(int64(n) * 8); err != nil {
		return err
	}
	// Max texture dependency length, persistent id, user texture count.
	if err := ar.Skip(4 + 16 + 4); err != nil {
		return err
	}
	textures, err := archive.Array(ar, 4, func(ar *archive.Archive) (ref, error) {
		v, err := ar.Object()
		return ref(v), err
	})
	if err != nil {
		return err
	}
	material3(s.obj).ReferencedTextures = textures
	return nil
}
