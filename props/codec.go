package props

import (
	"fmt"
	"strings"

	"github.com/ueforge/unmaterial/archive"
	"github.com/ueforge/unmaterial/errors"
)

// Codec reads values of one Go type from the archive.
type Codec[T any] struct {
	// Wires lists the tag types the codec can read.
	Wires []Wire
	// Struct restricts struct tags to one struct name, when set.
	Struct string
	// Size is the smallest number of bytes one value occupies, used to reject
	// implausible array counts.
	Size int
	// Read decodes one value. Tag is nil when the value is an element of an
	// array property.
	Read func(ar *archive.Archive, tag *Tag) (T, error)
}

// maxStaticIndex bounds the array index of a static array element.
const maxStaticIndex = 1 << 16

var (
	Byte = Codec[uint8]{
		Wires: []Wire{WireByte},
		Size:  1,
		Read:  func(ar *archive.Archive, _ *Tag) (uint8, error) { return ar.Uint8() },
	}
	Int = Codec[int32]{
		Wires: []Wire{WireInt},
		Size:  4,
		Read:  func(ar *archive.Archive, _ *Tag) (int32, error) { return ar.Int32() },
	}
	Float = Codec[float32]{
		Wires: []Wire{WireFloat},
		Size:  4,
		Read:  func(ar *archive.Archive, _ *Tag) (float32, error) { return ar.Float32() },
	}
	// Bool reads the value carried by the tag, or a byte for array elements.
	Bool = Codec[bool]{
		Wires: []Wire{WireBool},
		Size:  1,
		Read: func(ar *archive.Archive, tag *Tag) (bool, error) {
			if tag != nil {
				return tag.BoolValue, nil
			}
			b, err := ar.Uint8()
			return b != 0, err
		},
	}
	Name = Codec[string]{
		Wires: []Wire{WireName},
		Size:  1,
		Read:  func(ar *archive.Archive, _ *Tag) (string, error) { return ar.Name() },
	}
	Str = Codec[string]{
		Wires: []Wire{WireStr, WireString},
		Size:  1,
		Read:  func(ar *archive.Archive, _ *Tag) (string, error) { return ar.Str() },
	}
)

// Ref returns a codec reading object references as R.
func Ref[R ~int32]() Codec[R] {
	return Codec[R]{
		Wires: []Wire{WireObject, WireClass, WireComponent},
		Size:  1,
		Read: func(ar *archive.Archive, _ *Tag) (R, error) {
			v, err := ar.Object()
			return R(v), err
		},
	}
}

// Enumeration is implemented by enumeration types whose values can be stored
// by name. Names is indexed by value.
type Enumeration interface {
	Names() []string
}

// Enum returns a codec reading an enumeration as E. The value may be stored
// as a byte property, as a 4-byte int property, or, in the third generation,
// as a byte property holding the name of the value. All decode to the same
// value. Names are matched with or without their prefix, such as BLEND_ in
// BLEND_Translucent.
func Enum[E ~uint8]() Codec[E] {
	return Codec[E]{
		Wires: []Wire{WireByte, WireInt},
		Size:  1,
		Read: func(ar *archive.Archive, tag *Tag) (E, error) {
			switch {
			case tag == nil:
			case tag.Type == WireInt:
				v, err := ar.Int32()
				if err == nil && (v < 0 || v > 0xFF) {
					err = ar.Corrupt("enum value %d out of range", v)
				}
				return E(v), err
			case tag.Type == WireByte && tag.Size == 8 && ar.Modern():
				name, err := ar.Name()
				if err != nil {
					return 0, err
				}
				var names []string
				if e, ok := any(E(0)).(Enumeration); ok {
					names = e.Names()
				}
				v, ok := enumValue(names, name)
				if !ok {
					return 0, ar.Corrupt("property %q has unknown enum value %q", tag.Name, name)
				}
				return E(v), nil
			}
			v, err := ar.Uint8()
			return E(v), err
		},
	}
}

func enumValue(names []string, name string) (int, bool) {
	if i, ok := lookupName(names, name); ok {
		return i, true
	}
	if _, short, ok := strings.Cut(name, "_"); ok {
		return lookupName(names, short)
	}
	return 0, false
}

func lookupName(names []string, name string) (int, bool) {
	for i, n := range names {
		if i <= 0xFF && strings.EqualFold(n, name) {
			return i, true
		}
	}
	return 0, false
}

// Struct returns a codec for a struct whose value has a fixed binary layout.
// Extra wires are accepted for legacy streams that give common structs
// their own property type.
func Struct[T any](name string, size int, read func(ar *archive.Archive) (T, error), extra ...Wire) Codec[T] {
	return Codec[T]{
		Wires:  append([]Wire{WireStruct}, extra...),
		Struct: name,
		Size:   size,
		Read:   func(ar *archive.Archive, _ *Tag) (T, error) { return read(ar) },
	}
}

// Tagged returns a codec for a struct whose value is itself a tagged
// property stream decoded against table. New values are created by init, so
// that they start from their defaults. Problems with individual members of
// the struct are not reported.
func Tagged[T any](name string, table *Table, init func() T) Codec[T] {
	return Codec[T]{
		Wires:  []Wire{WireStruct},
		Struct: name,
		Size:   1,
		Read: func(ar *archive.Archive, _ *Tag) (T, error) {
			v := init()
			_, _, err := Decode(ar, table, &v)
			return v, err
		},
	}
}

////////////////////////////////////////////////////////////////

func target[O any, T any](obj any, name string, field func(O) *T) (*T, error) {
	o, ok := obj.(O)
	if !ok {
		return nil, errors.Newf("property %s does not apply to %T", name, obj)
	}
	p := field(o)
	if p == nil {
		return nil, errors.Newf("property %s has no field in %T", name, obj)
	}
	return p, nil
}

// Field returns a descriptor that decodes a scalar property into the field
// selected by field. Elements of a static array past the first are ignored.
func Field[O any, T any](name string, c Codec[T], field func(O) *T) Descriptor {
	return Descriptor{
		Name:  name,
		wires: c.Wires,
		strct: c.Struct,
		decode: func(ar *archive.Archive, tag *Tag, obj any) error {
			p, err := target(obj, name, field)
			if err != nil {
				return err
			}
			if tag.ArrayIndex != 0 {
				return nil
			}
			v, err := c.Read(ar, tag)
			if err != nil {
				return err
			}
			*p = v
			return nil
		},
	}
}

// Elem returns a descriptor that decodes the elements of a static array
// property into a slice, placing each at its tag's array index. The slice
// grows to fit the index.
func Elem[O any, T any](name string, c Codec[T], field func(O) *[]T) Descriptor {
	return Descriptor{
		Name:  name,
		wires: c.Wires,
		strct: c.Struct,
		decode: func(ar *archive.Archive, tag *Tag, obj any) error {
			p, err := target(obj, name, field)
			if err != nil {
				return err
			}
			i := int(tag.ArrayIndex)
			if i < 0 || i >= maxStaticIndex {
				return ar.Corrupt("array index %d out of range", i)
			}
			v, err := c.Read(ar, tag)
			if err != nil {
				return err
			}
			if i >= len(*p) {
				grown := make([]T, i+1)
				copy(grown, *p)
				*p = grown
			}
			(*p)[i] = v
			return nil
		},
	}
}

// Array returns a descriptor that decodes a dynamic array property: a count
// followed by that many values read with c.
func Array[O any, T any](name string, c Codec[T], field func(O) *[]T) Descriptor {
	return Descriptor{
		Name:  name,
		wires: []Wire{WireArray},
		decode: func(ar *archive.Archive, tag *Tag, obj any) error {
			p, err := target(obj, name, field)
			if err != nil {
				return err
			}
			size := c.Size
			if size < 1 {
				size = 1
			}
			s, err := archive.Array(ar, size, func(ar *archive.Archive) (T, error) {
				return c.Read(ar, nil)
			})
			if err != nil {
				return err
			}
			*p = s
			return nil
		},
	}
}

// Alt returns a descriptor for a property whose type differs between
// engine versions. A record is decoded by the first of descs that accepts
// its tag. Every desc must have the same name.
func Alt(descs ...Descriptor) Descriptor {
	d := Descriptor{Name: descs[0].Name}
	for _, a := range descs {
		d.wires = append(d.wires, a.wires...)
		if d.strct == "" {
			d.strct = a.strct
		}
	}
	d.decode = func(ar *archive.Archive, tag *Tag, obj any) error {
		for i := range descs {
			if descs[i].Accepts(tag) {
				return descs[i].decode(ar, tag, obj)
			}
		}
		return MismatchError{Tag: *tag}
	}
	return d
}

func (d Descriptor) String() string {
	if d.drop {
		return fmt.Sprintf("%s (dropped)", d.Name)
	}
	return fmt.Sprintf("%s %v", d.Name, d.wires)
}
