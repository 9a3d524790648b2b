// The declare package is used to generate archive streams in a declarative
// style. A stream is declared once and encoded for any version, which makes
// it possible to exercise every layout from one test.
//
// The easiest way to use this package is to import it directly into the
// current package:
//
//	import . "github.com/ueforge/unmaterial/declare"
//
// This allows the package's identifiers to be used directly without a
// qualifier.
package declare

import (
	"bytes"

	"github.com/anaminus/parse"
	"github.com/ueforge/unmaterial/archive"
)

// Item is one element of a declared stream.
type Item interface {
	write(w *writer)
}

// Names accumulates the name table of declared streams. Names are assigned
// indices in order of first use.
type Names struct {
	list  []string
	index map[string]int
}

func (n *Names) lookup(name string) int {
	if n.index == nil {
		n.index = map[string]int{}
	}
	if i, ok := n.index[name]; ok {
		return i
	}
	n.index[name] = len(n.list)
	n.list = append(n.list, name)
	return len(n.list) - 1
}

// Table returns the names as a name table.
func (n *Names) Table() archive.Names {
	return archive.Names(append([]string(nil), n.list...))
}

type writer struct {
	v     archive.Version
	names *Names
	// base is the absolute position of the start of buf.
	base int64
	buf  bytes.Buffer
	fw   *parse.BinaryWriter
}

func newWriter(v archive.Version, names *Names, base int64) *writer {
	w := &writer{v: v, names: names, base: base}
	w.fw = parse.NewBinaryWriter(&w.buf)
	return w
}

func (w *writer) pos() int64 {
	return w.base + int64(w.buf.Len())
}

// sub encodes items separately, sharing the name table, so that their
// length is known before they are written.
func (w *writer) sub(items []Item) []byte {
	s := newWriter(w.v, w.names, 0)
	for _, item := range items {
		item.write(s)
	}
	return s.buf.Bytes()
}

func (w *writer) number(v any) {
	w.fw.Number(v)
}

func (w *writer) bytes(b []byte) {
	w.fw.Bytes(b)
}

func (w *writer) index(v int32) {
	neg := v < 0
	if neg {
		v = -v
	}
	b0 := byte(v & 0x3F)
	if neg {
		b0 |= 0x80
	}
	v >>= 6
	if v != 0 {
		b0 |= 0x40
	}
	w.number(b0)
	for i := 0; v != 0; i++ {
		if i == 3 {
			w.number(byte(v))
			break
		}
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.number(b)
	}
}

// count writes a compact index before the third generation, and a 32-bit
// integer after.
func (w *writer) count(n int32) {
	if w.v.Modern() {
		w.number(n)
	} else {
		w.index(n)
	}
}

func (w *writer) name(s string) {
	i := int32(w.names.lookup(s))
	if w.v.Modern() {
		w.number(i)
		w.number(int32(0))
	} else {
		w.index(i)
	}
}

func (w *writer) str(s string) {
	if s == "" {
		w.count(0)
		return
	}
	w.count(int32(len(s) + 1))
	w.bytes(append([]byte(s), 0))
}

// Stream declares a sequence of items.
type Stream []Item

func (s Stream) write(w *writer) {
	for _, item := range s {
		item.write(w)
	}
}

// Declare encodes the stream for version v, and returns the encoded bytes
// together with the names the stream refers to.
func (s Stream) Declare(v archive.Version) ([]byte, archive.Names) {
	var names Names
	b := s.DeclareWith(v, &names, 0)
	return b, names.Table()
}

// DeclareWith encodes the stream for version v as if it began at the
// absolute position base, adding names to names.
func (s Stream) DeclareWith(v archive.Version, names *Names, base int64) []byte {
	w := newWriter(v, names, base)
	s.write(w)
	return w.buf.Bytes()
}

// Archive encodes the stream for version v, and returns an archive over it
// whose stopper is the end of the stream.
func (s Stream) Archive(v archive.Version, opts ...archive.Option) *archive.Archive {
	b, names := s.Declare(v)
	return archive.New(b, v, append([]archive.Option{archive.WithNames(names)}, opts...)...)
}

// Object declares the body of an object. Before the third generation's
// version 322, the body is the items alone; from there on, the items are
// preceded by the object's network index.
func Object(items ...Item) Stream {
	return append(Stream{netIndex{}}, items...)
}

type netIndex struct{}

func (netIndex) write(w *writer) {
	if w.v.Modern() && w.v.Ver >= 322 {
		w.number(int32(-1))
	}
}
