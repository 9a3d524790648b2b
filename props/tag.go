// The props package decodes tagged property streams: self-describing
// sequences of (name, type, size, index) records, each followed by its value
// and terminated by a record named None.
package props

import (
	"strings"

	"github.com/ueforge/unmaterial/archive"
)

// None is the name of the record that terminates a property stream.
const None = "None"

// Wire is the type of a property as recorded in its tag. The values of the
// first fifteen types equal their codes in the packed legacy tag.
type Wire uint8

const (
	WireUnknown    Wire = 0
	WireByte       Wire = 1
	WireInt        Wire = 2
	WireBool       Wire = 3
	WireFloat      Wire = 4
	WireObject     Wire = 5
	WireName       Wire = 6
	WireString     Wire = 7
	WireClass      Wire = 8
	WireArray      Wire = 9
	WireStruct     Wire = 10
	WireVector     Wire = 11
	WireRotator    Wire = 12
	WireStr        Wire = 13
	WireMap        Wire = 14
	WireFixedArray Wire = 15
	WireDelegate   Wire = 16
	WireInterface  Wire = 17
	WireComponent  Wire = 18
)

var wireNames = [...]string{
	WireUnknown:    "Unknown",
	WireByte:       "ByteProperty",
	WireInt:        "IntProperty",
	WireBool:       "BoolProperty",
	WireFloat:      "FloatProperty",
	WireObject:     "ObjectProperty",
	WireName:       "NameProperty",
	WireString:     "StringProperty",
	WireClass:      "ClassProperty",
	WireArray:      "ArrayProperty",
	WireStruct:     "StructProperty",
	WireVector:     "VectorProperty",
	WireRotator:    "RotatorProperty",
	WireStr:        "StrProperty",
	WireMap:        "MapProperty",
	WireFixedArray: "FixedArrayProperty",
	WireDelegate:   "DelegateProperty",
	WireInterface:  "InterfaceProperty",
	WireComponent:  "ComponentProperty",
}

var wiresByName = func() map[string]Wire {
	m := make(map[string]Wire, len(wireNames))
	for w, name := range wireNames {
		m[strings.ToLower(name)] = Wire(w)
	}
	return m
}()

func (w Wire) String() string {
	if int(w) < len(wireNames) {
		return wireNames[w]
	}
	return "Unknown"
}

// ParseWire returns the Wire named by a type name such as "FloatProperty".
// Unrecognized names return WireUnknown.
func ParseWire(name string) Wire {
	return wiresByName[strings.ToLower(name)]
}

// Tag is the header of one property record.
type Tag struct {
	Name string
	Type Wire
	// TypeName is the type as written in the stream, when the layout names
	// it.
	TypeName string
	// StructName is the struct type of a struct property.
	StructName string
	// EnumName is the enum type of a byte property, when the layout records
	// it.
	EnumName string
	// Size is the number of value bytes following the header.
	Size int32
	// ArrayIndex is the element of a static array the value belongs to.
	ArrayIndex int32
	// BoolValue is the value of a bool property, which is carried by the
	// header rather than the value bytes.
	BoolValue bool
}

// IsNone returns whether the tag terminates the stream.
func (t *Tag) IsNone() bool {
	return strings.EqualFold(t.Name, None)
}

// ReadTag reads one tag header in the layout selected by the archive's
// version. A terminator tag has only its Name set.
func ReadTag(ar *archive.Archive) (tag Tag, err error) {
	if tag.Name, err = ar.Name(); err != nil || tag.IsNone() {
		return tag, err
	}
	if ar.Modern() {
		err = readModernTag(ar, &tag)
	} else {
		err = readLegacyTag(ar, &tag)
	}
	if err == nil && tag.Size < 0 {
		err = ar.Corrupt("property %q has negative size %d", tag.Name, tag.Size)
	}
	return tag, err
}

func readModernTag(ar *archive.Archive, tag *Tag) (err error) {
	if tag.TypeName, err = ar.Name(); err != nil {
		return err
	}
	tag.Type = ParseWire(tag.TypeName)
	if tag.Size, err = ar.Int32(); err != nil {
		return err
	}
	if tag.ArrayIndex, err = ar.Int32(); err != nil {
		return err
	}
	switch tag.Type {
	case WireStruct:
		tag.StructName, err = ar.Name()
	case WireBool:
		if ar.Ver < 673 {
			tag.BoolValue, err = ar.Bool32()
		} else {
			var b uint8
			b, err = ar.Uint8()
			tag.BoolValue = b != 0
		}
	case WireByte:
		if ar.Ver >= 633 {
			tag.EnumName, err = ar.Name()
		}
	}
	return err
}

// legacySizes maps the size code of a packed tag to a fixed size. Codes 5 to
// 7 are followed by an explicit size of 1, 2 or 4 bytes.
var legacySizes = [...]int32{1, 2, 4, 12, 16}

func readLegacyTag(ar *archive.Archive, tag *Tag) (err error) {
	info, err := ar.Uint8()
	if err != nil {
		return err
	}
	isArray := info&0x80 != 0
	tag.Type = Wire(info & 0x0F)
	tag.TypeName = tag.Type.String()
	if tag.Type == WireStruct {
		if tag.StructName, err = ar.Name(); err != nil {
			return err
		}
	}
	switch code := (info >> 4) & 7; code {
	case 0, 1, 2, 3, 4:
		tag.Size = legacySizes[code]
	case 5:
		var b uint8
		b, err = ar.Uint8()
		tag.Size = int32(b)
	case 6:
		var w uint16
		w, err = ar.Uint16()
		tag.Size = int32(w)
	case 7:
		tag.Size, err = ar.Int32()
	}
	if err != nil {
		return err
	}
	if tag.Type == WireBool {
		// The value is the array bit; there are no value bytes.
		tag.BoolValue = isArray
		tag.Size = 0
		return nil
	}
	if isArray {
		tag.ArrayIndex, err = readLegacyArrayIndex(ar)
	}
	return err
}

// readLegacyArrayIndex reads the packed static array index: one byte below
// 128, two bytes with the top bits 10, four bytes with the top bits 11.
func readLegacyArrayIndex(ar *archive.Archive) (int32, error) {
	b, err := ar.Uint8()
	if err != nil {
		return 0, err
	}
	if b < 0x80 {
		return int32(b), nil
	}
	if b&0x40 == 0 {
		c, err := ar.Uint8()
		return int32(b&0x7F)<<8 | int32(c), err
	}
	rest, err := ar.Bytes(3)
	if err != nil {
		return 0, err
	}
	return int32(b&0x3F)<<24 | int32(rest[0])<<16 | int32(rest[1])<<8 | int32(rest[2]), nil
}
