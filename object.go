package unmaterial

import (
	"reflect"

	"github.com/ueforge/unmaterial/bulk"
)

// Diagnostics records how completely an object was decoded.
type Diagnostics struct {
	// Partial is set when decoding stopped early because of corrupt data.
	// Fields decoded before the fault keep their values; the rest keep
	// their defaults.
	Partial bool
	// Skipped is the number of bytes jumped over to reach the stopper.
	Skipped int64
	// Unknown is the number of properties not declared by the kind.
	Unknown int
	// Mismatched is the number of properties recorded with an unexpected
	// type.
	Mismatched int
	// Corrected is the number of properties whose value did not end at the
	// tag boundary.
	Corrected int
}

// Object is a decoded material or texture. Its Fields hold a pointer to the
// field struct of its Kind, such as *Texture for KindTexture. Objects are
// owned by the package that decoded them; references between objects are
// package indices resolved through a Resolver.
type Object struct {
	Kind Kind
	// Name is the export name of the object.
	Name string
	// Index is the position of the object within the export table.
	Index int

	Fields any

	Diag Diagnostics
}

// NewObject returns an object of the given kind with default field values.
func NewObject(k Kind, name string) *Object {
	return &Object{Kind: k, Name: name, Index: -1, Fields: newFields(k)}
}

// As returns the field struct of o if it is exactly of type T.
func As[T any](o *Object) *T {
	if o == nil {
		return nil
	}
	t, _ := o.Fields.(*T)
	return t
}

// Material returns the fields shared by legacy materials.
func (o *Object) Material() *Material {
	if v, ok := o.Fields.(interface{ base() *Material }); ok {
		return v.base()
	}
	return nil
}

// BitmapMaterial returns the fields shared by legacy textures.
func (o *Object) BitmapMaterial() *BitmapMaterial {
	if v, ok := o.Fields.(interface{ bitmap() *BitmapMaterial }); ok {
		return v.bitmap()
	}
	return nil
}

// Modifier returns the fields shared by modifiers.
func (o *Object) Modifier() *Modifier {
	if v, ok := o.Fields.(interface{ modifier() *Modifier }); ok {
		return v.modifier()
	}
	return nil
}

// TexModifier returns the fields shared by texture coordinate modifiers.
func (o *Object) TexModifier() *TexModifier {
	if v, ok := o.Fields.(interface{ texModifier() *TexModifier }); ok {
		return v.texModifier()
	}
	return nil
}

// Texture3 returns the fields shared by third generation textures.
func (o *Object) Texture3() *Texture3 {
	if v, ok := o.Fields.(interface{ texture3() *Texture3 }); ok {
		return v.texture3()
	}
	return nil
}

// Texture2D returns the fields of a 2D texture or of a kind derived from it.
func (o *Object) Texture2D() *Texture2D {
	if v, ok := o.Fields.(interface{ texture2D() *Texture2D }); ok {
		return v.texture2D()
	}
	return nil
}

// MaterialInterface returns the fields shared by third generation materials.
func (o *Object) MaterialInterface() *MaterialInterface {
	if v, ok := o.Fields.(interface{ iface() *MaterialInterface }); ok {
		return v.iface()
	}
	return nil
}

// MaterialInstance returns the fields shared by material instances.
func (o *Object) MaterialInstance() *MaterialInstance {
	if v, ok := o.Fields.(interface{ instance() *MaterialInstance }); ok {
		return v.instance()
	}
	return nil
}

var (
	refType    = reflect.TypeOf(Ref(0))
	handleType = reflect.TypeOf(bulk.Handle{})
)

// Refs returns every non-null reference held by the object's fields, in
// field order.
func (o *Object) Refs() []Ref {
	if o == nil || o.Fields == nil {
		return nil
	}
	var refs []Ref
	collectRefs(reflect.ValueOf(o.Fields), &refs)
	return refs
}

func collectRefs(v reflect.Value, refs *[]Ref) {
	walkFields(v, func(v reflect.Value) bool {
		if v.Type() != refType {
			return false
		}
		if v.Int() != 0 {
			*refs = append(*refs, Ref(v.Int()))
		}
		return true
	})
}

// Handles returns every payload handle held by the object's fields, such as
// those of its mip levels, in field order. Empty payloads are included.
func (o *Object) Handles() []bulk.Handle {
	if o == nil || o.Fields == nil {
		return nil
	}
	var handles []bulk.Handle
	walkFields(reflect.ValueOf(o.Fields), func(v reflect.Value) bool {
		if v.Type() != handleType {
			return false
		}
		handles = append(handles, v.Interface().(bulk.Handle))
		return true
	})
	return handles
}

// walkFields calls visit for every exported value reachable from v, and
// descends into values for which visit returns false.
func walkFields(v reflect.Value, visit func(reflect.Value) bool) {
	if visit(v) {
		return
	}
	switch v.Kind() {
	case reflect.Pointer:
		if !v.IsNil() {
			walkFields(v.Elem(), visit)
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).IsExported() {
				walkFields(v.Field(i), visit)
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			walkFields(v.Index(i), visit)
		}
	}
}
