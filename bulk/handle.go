// The bulk package records the location of large payloads, such as texture
// mip levels, and reads them on demand.
package bulk

import (
	"fmt"
	"strings"
)

// Flags describes how a payload is stored.
type Flags uint32

const (
	// StoreInSeparateFile indicates that the payload lives in a texture file
	// cache rather than in the package.
	StoreInSeparateFile Flags = 1 << 0
	// CompressedZLIB indicates chunked zlib compression.
	CompressedZLIB Flags = 1 << 1
	// ForceSingleElement indicates that elements were serialized one at a
	// time.
	ForceSingleElement Flags = 1 << 2
	// SingleUse indicates that the payload is discarded after the first load.
	SingleUse Flags = 1 << 3
	// CompressedLZO indicates chunked LZO compression.
	CompressedLZO Flags = 1 << 4
	// Unused indicates that the payload has no data at all.
	Unused Flags = 1 << 5
	// CompressedLZX indicates chunked LZX compression.
	CompressedLZX Flags = 1 << 7
	// CompressedLZ4 indicates chunked LZ4 compression, used by licensee
	// mobile builds.
	CompressedLZ4 Flags = 1 << 12

	// Lazy marks a handle produced from a legacy lazy array. Lazy arrays are
	// never compressed.
	Lazy Flags = 1 << 31
)

// Compression is the mask of all compression flags.
const Compression = CompressedZLIB | CompressedLZO | CompressedLZX | CompressedLZ4

var flagNames = []struct {
	flag Flags
	name string
}{
	{StoreInSeparateFile, "SeparateFile"},
	{CompressedZLIB, "ZLIB"},
	{ForceSingleElement, "SingleElement"},
	{SingleUse, "SingleUse"},
	{CompressedLZO, "LZO"},
	{Unused, "Unused"},
	{CompressedLZX, "LZX"},
	{CompressedLZ4, "LZ4"},
	{Lazy, "Lazy"},
}

func (f Flags) String() string {
	if f == 0 {
		return "None"
	}
	var parts []string
	for _, n := range flagNames {
		if f&n.flag != 0 {
			parts = append(parts, n.name)
			f &^= n.flag
		}
	}
	if f != 0 {
		parts = append(parts, fmt.Sprintf("0x%X", uint32(f)))
	}
	return strings.Join(parts, "|")
}

// Handle locates a payload without holding its bytes. Handles are plain
// values; they may be copied and materialized concurrently.
type Handle struct {
	// Offset is the absolute position of the stored bytes within the
	// package, or within the side file if the payload is stored separately.
	Offset uint64
	// StoredSize is the number of bytes occupied by the stored payload.
	StoredSize uint32
	// RawSize is the size of the payload once expanded.
	RawSize uint32
	// Flags describes the storage of the payload.
	Flags Flags
}

// Empty returns whether the payload holds no data.
func (h Handle) Empty() bool {
	return h.RawSize == 0 || h.Flags&Unused != 0
}

// Compressed returns whether the stored bytes must be expanded.
func (h Handle) Compressed() bool {
	return h.Flags&Compression != 0
}

// Separate returns whether the payload is stored outside of the package.
func (h Handle) Separate() bool {
	return h.Flags&StoreInSeparateFile != 0
}

// Truncated returns whether the payload was stripped from the package while
// still declaring a raw size.
func (h Handle) Truncated() bool {
	return h.StoredSize == 0 && h.RawSize > 0 && h.Flags&Unused == 0
}

func (h Handle) String() string {
	return fmt.Sprintf("{offset: %d, stored: %d, raw: %d, flags: %s}", h.Offset, h.StoredSize, h.RawSize, h.Flags)
}
