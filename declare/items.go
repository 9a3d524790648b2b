package declare

import (
	"github.com/ueforge/unmaterial/bulk"
)

// Int32 declares a 32-bit integer.
type Int32 int32

func (v Int32) write(w *writer) { w.number(int32(v)) }

// Uint32 declares an unsigned 32-bit integer.
type Uint32 uint32

func (v Uint32) write(w *writer) { w.number(uint32(v)) }

// Int64 declares a 64-bit integer.
type Int64 int64

func (v Int64) write(w *writer) { w.number(int64(v)) }

// Uint8 declares a byte.
type Uint8 uint8

func (v Uint8) write(w *writer) { w.number(uint8(v)) }

// Uint16 declares an unsigned 16-bit integer.
type Uint16 uint16

func (v Uint16) write(w *writer) { w.number(uint16(v)) }

// Float declares a 32-bit float.
type Float float32

func (v Float) write(w *writer) { w.number(float32(v)) }

// Bytes declares raw bytes.
type Bytes []byte

func (v Bytes) write(w *writer) { w.bytes(v) }

// Zero declares a run of zero bytes.
type Zero int

func (v Zero) write(w *writer) { w.bytes(make([]byte, v)) }

// Index declares a compact index.
type Index int32

func (v Index) write(w *writer) { w.index(int32(v)) }

// Count declares an element count, in the layout of the version.
type Count int32

func (v Count) write(w *writer) { w.count(int32(v)) }

// Str declares a length-prefixed string.
type Str string

func (v Str) write(w *writer) { w.str(string(v)) }

// Name declares a name reference. The name is added to the name table.
type Name string

func (v Name) write(w *writer) { w.name(string(v)) }

// Ref declares a package index: positive for an export, negative for an
// import, zero for nothing.
type Ref int32

func (v Ref) write(w *writer) {
	if w.v.Modern() {
		w.number(int32(v))
	} else {
		w.index(int32(v))
	}
}

// GUID declares four 32-bit words.
type GUID [4]uint32

func (v GUID) write(w *writer) {
	for _, n := range v {
		w.number(n)
	}
}

// Color declares four bytes in memory order.
type Color [4]uint8

func (v Color) write(w *writer) { w.bytes(v[:]) }

// Array declares a counted sequence of items.
func Array(items ...Item) Item {
	return array(items)
}

type array []Item

func (a array) write(w *writer) {
	w.count(int32(len(a)))
	for _, item := range a {
		item.write(w)
	}
}

// Lazy declares a legacy lazy array of bytes, with elements of elemSize
// bytes.
type Lazy struct {
	ElemSize int
	Payload  []byte
}

func (l Lazy) write(w *writer) {
	n := 0
	if l.ElemSize > 0 {
		n = len(l.Payload) / l.ElemSize
	}
	if w.v.Ver > 61 {
		// Absolute position following the array.
		size := 4 + len(l.Payload)
		if w.v.Modern() {
			size += 4
		} else {
			size += indexSize(int32(n))
		}
		w.number(int32(w.pos() + int64(size)))
	}
	w.count(int32(n))
	w.bytes(l.Payload)
}

func indexSize(v int32) int {
	if v < 0 {
		v = -v
	}
	n := 1
	v >>= 6
	for i := 0; v != 0 && i < 4; i++ {
		n++
		v >>= 7
	}
	return n
}

// Bulk declares a bulk data header. The payload is stored inline unless
// Flags marks it as separate or unused. Stored holds the bytes as written,
// which are the compressed chunks for a compressed payload; RawSize is the
// expanded size.
type Bulk struct {
	Flags   bulk.Flags
	RawSize int
	Stored  []byte
	// Offset is the position recorded for a separately stored payload,
	// whose Stored bytes belong to the side file and are not written.
	Offset int32
}

// Inline declares an uncompressed inline payload.
func Inline(payload []byte) Bulk {
	return Bulk{RawSize: len(payload), Stored: payload}
}

func (b Bulk) write(w *writer) {
	w.number(uint32(b.Flags))
	w.number(int32(b.RawSize))
	w.number(int32(len(b.Stored)))
	if b.Flags&bulk.StoreInSeparateFile != 0 || b.Flags&bulk.Unused != 0 {
		w.number(b.Offset)
		return
	}
	w.number(int32(w.pos() + 4))
	w.bytes(b.Stored)
}
