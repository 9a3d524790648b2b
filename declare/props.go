package declare

import (
	"github.com/ueforge/unmaterial/props"
)

// Property declares one tagged property record. The value is encoded first
// so that the size in the tag can be derived from it.
type Property struct {
	Name  string
	Type  props.Wire
	Value []Item
	index int32
	strct string
	enum  string
	size  int32
	sized bool
	boolV bool
}

// Prop declares a property with the given wire type and value.
func Prop(name string, typ props.Wire, value ...Item) *Property {
	return &Property{Name: name, Type: typ, Value: value}
}

// Bool declares a bool property, whose value is carried by its tag.
func Bool(name string, v bool) *Property {
	return &Property{Name: name, Type: props.WireBool, boolV: v}
}

// Index sets the static array index of the property.
func (p *Property) Index(i int32) *Property {
	p.index = i
	return p
}

// Struct sets the struct name of a struct property.
func (p *Property) Struct(name string) *Property {
	p.strct = name
	return p
}

// Enum sets the enum name of a byte property. The name is only written by
// layouts that record it.
func (p *Property) Enum(name string) *Property {
	p.enum = name
	return p
}

// Size overrides the size written in the tag.
func (p *Property) Size(n int32) *Property {
	p.size = n
	p.sized = true
	return p
}

func (p *Property) write(w *writer) {
	value := w.sub(p.Value)
	size := int32(len(value))
	if p.sized {
		size = p.size
	}
	w.name(p.Name)
	if w.v.Modern() {
		p.writeModern(w, size)
	} else {
		p.writeLegacy(w, size)
	}
	w.bytes(value)
}

func (p *Property) writeModern(w *writer, size int32) {
	w.name(p.Type.String())
	w.number(size)
	w.number(p.index)
	switch p.Type {
	case props.WireStruct:
		w.name(p.strct)
	case props.WireBool:
		if w.v.Ver < 673 {
			w.number(boolInt(p.boolV))
		} else {
			w.number(uint8(boolInt(p.boolV)))
		}
	case props.WireByte:
		if w.v.Ver >= 633 {
			enum := p.enum
			if enum == "" {
				enum = props.None
			}
			w.name(enum)
		}
	}
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

var legacySizeCodes = map[int32]uint8{1: 0, 2: 1, 4: 2, 12: 3, 16: 4}

func (p *Property) writeLegacy(w *writer, size int32) {
	info := uint8(p.Type) & 0x0F
	if p.Type == props.WireBool {
		if p.boolV {
			info |= 0x80
		}
		w.number(info)
		return
	}
	if p.index != 0 {
		info |= 0x80
	}
	code, fixed := legacySizeCodes[size]
	switch {
	case fixed:
	case size <= 0xFF:
		code = 5
	case size <= 0xFFFF:
		code = 6
	default:
		code = 7
	}
	info |= code << 4
	w.number(info)
	if p.Type == props.WireStruct {
		w.name(p.strct)
	}
	switch code {
	case 5:
		w.number(uint8(size))
	case 6:
		w.number(uint16(size))
	case 7:
		w.number(size)
	}
	if p.index != 0 {
		switch i := p.index; {
		case i < 0x80:
			w.number(uint8(i))
		case i < 0x4000:
			w.number(uint8(i>>8) | 0x80)
			w.number(uint8(i))
		default:
			w.bytes([]byte{uint8(i>>24) | 0xC0, uint8(i >> 16), uint8(i >> 8), uint8(i)})
		}
	}
}

// Props declares a property stream, terminated by None.
func Props(items ...Item) Item {
	return propStream(items)
}

type propStream []Item

func (s propStream) write(w *writer) {
	for _, item := range s {
		item.write(w)
	}
	w.name(props.None)
}
