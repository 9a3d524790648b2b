// The archive package implements a position-tracked binary cursor over a
// package's byte region, carrying the version metadata that selects between
// wire layouts.
package archive

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"unicode/utf16"

	"github.com/anaminus/parse"
	"github.com/ueforge/unmaterial/bulk"
	"github.com/ueforge/unmaterial/errors"
)

// DefaultMaxArrayLen is the largest element count accepted by Count unless
// changed with WithMaxArrayLen.
const DefaultMaxArrayLen = 1 << 24

// NameTable maps name indices to strings.
type NameTable interface {
	Name(index int) (name string, ok bool)
}

// Names is a NameTable backed by a slice.
type Names []string

func (n Names) Name(index int) (string, bool) {
	if index < 0 || index >= len(n) {
		return "", false
	}
	return n[index], true
}

// Archive reads little-endian values from a byte region. The region is the
// whole package, so offsets reported by Tell and stored in bulk handles are
// absolute. An Archive is not safe for concurrent use; decode independent
// objects with separate Archives over the same data.
type Archive struct {
	Version

	names    NameTable
	data     []byte
	r        *bytes.Reader
	fr       *parse.BinaryReader
	limit    int64
	stopper  int64
	maxArray int
}

// Option configures an Archive.
type Option func(*Archive)

// WithNames sets the table used to resolve names.
func WithNames(names NameTable) Option {
	return func(ar *Archive) { ar.names = names }
}

// WithMaxArrayLen sets the largest element count accepted by Count.
func WithMaxArrayLen(n int) Option {
	return func(ar *Archive) { ar.maxArray = n }
}

// New returns an Archive over data positioned at the start of the region.
func New(data []byte, v Version, opts ...Option) *Archive {
	ar := &Archive{
		Version:  v,
		data:     data,
		r:        bytes.NewReader(data),
		limit:    int64(len(data)),
		stopper:  int64(len(data)),
		maxArray: DefaultMaxArrayLen,
	}
	ar.fr = parse.NewBinaryReader(ar.r)
	for _, opt := range opts {
		opt(ar)
	}
	return ar
}

// Len returns the length of the region.
func (ar *Archive) Len() int64 {
	return int64(len(ar.data))
}

// Tell returns the position of the cursor.
func (ar *Archive) Tell() int64 {
	return ar.r.Size() - int64(ar.r.Len())
}

// SeekTo moves the cursor to an absolute offset. Offsets outside of the region
// indicate a caller error rather than corrupt data.
func (ar *Archive) SeekTo(offset int64) error {
	if offset < 0 || offset > ar.Len() {
		return errors.Newf("seek to %d outside of region [0, %d]", offset, ar.Len())
	}
	ar.r.Seek(offset, io.SeekStart)
	ar.fr = parse.NewBinaryReader(ar.r)
	return nil
}

// Skip advances the cursor by n bytes, failing if that would cross the read
// limit.
func (ar *Archive) Skip(n int64) error {
	if err := ar.need(n); err != nil {
		return err
	}
	return ar.SeekTo(ar.Tell() + n)
}

// SetStopper sets the expected end of the object being decoded.
func (ar *Archive) SetStopper(offset int64) error {
	if offset < 0 || offset > ar.Len() {
		return errors.Newf("stopper %d outside of region [0, %d]", offset, ar.Len())
	}
	ar.stopper = offset
	return nil
}

// Stopper returns the expected end of the object being decoded.
func (ar *Archive) Stopper() int64 {
	return ar.stopper
}

// Limit returns the offset past which reads fail.
func (ar *Archive) Limit() int64 {
	return ar.limit
}

// SetLimit sets the offset past which reads fail, and returns the previous
// limit so that it can be restored. The limit is clamped to the region.
func (ar *Archive) SetLimit(offset int64) (prev int64) {
	prev = ar.limit
	if offset < 0 {
		offset = 0
	} else if offset > ar.Len() {
		offset = ar.Len()
	}
	ar.limit = offset
	return prev
}

// Remaining returns the number of bytes between the cursor and the limit.
func (ar *Archive) Remaining() int64 {
	if n := ar.limit - ar.Tell(); n > 0 {
		return n
	}
	return 0
}

// Matches returns whether c holds for the archive's version.
func (ar *Archive) Matches(c Cond) bool {
	return c.Match(ar.Version)
}

// Corrupt returns an error at the cursor that matches errors.ErrCorruptData.
func (ar *Archive) Corrupt(format string, args ...interface{}) error {
	return errors.Corrupt(ar.Tell(), format, args...)
}

func (ar *Archive) need(n int64) error {
	if n < 0 {
		return ar.Corrupt("negative length %d", n)
	}
	if pos := ar.Tell(); pos+n > ar.limit {
		return ar.Corrupt("read of %d bytes crosses limit %d", n, ar.limit)
	}
	return nil
}

// fail converts the reader's sticky error and resets the reader.
func (ar *Archive) fail(offset int64) error {
	err := ar.fr.Err()
	ar.SeekTo(offset)
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return errors.DataError{Offset: offset, Cause: errors.Mark(err, errors.ErrCorruptData)}
}

func read[T any](ar *Archive, size int64) (v T, err error) {
	if err = ar.need(size); err != nil {
		return v, err
	}
	pos := ar.Tell()
	if ar.fr.Number(&v) {
		return v, ar.fail(pos)
	}
	return v, nil
}

////////////////////////////////////////////////////////////////

func (ar *Archive) Uint8() (uint8, error)     { return read[uint8](ar, 1) }
func (ar *Archive) Uint16() (uint16, error)   { return read[uint16](ar, 2) }
func (ar *Archive) Int32() (int32, error)     { return read[int32](ar, 4) }
func (ar *Archive) Uint32() (uint32, error)   { return read[uint32](ar, 4) }
func (ar *Archive) Int64() (int64, error)     { return read[int64](ar, 8) }
func (ar *Archive) Float32() (float32, error) { return read[float32](ar, 4) }

// Bool32 reads a 32-bit boolean.
func (ar *Archive) Bool32() (bool, error) {
	v, err := ar.Int32()
	return v != 0, err
}

// Bytes reads n bytes.
func (ar *Archive) Bytes(n int) ([]byte, error) {
	if err := ar.need(int64(n)); err != nil {
		return nil, err
	}
	pos := ar.Tell()
	b := make([]byte, n)
	if ar.fr.Bytes(b) {
		return nil, ar.fail(pos)
	}
	return b, nil
}

// Index reads a compact index: a sign bit and six value bits in the first
// byte, followed by up to four continuation bytes.
func (ar *Archive) Index() (int32, error) {
	b0, err := ar.Uint8()
	if err != nil {
		return 0, err
	}
	v := int32(b0 & 0x3F)
	if b0&0x40 != 0 {
		shift := 6
		for i := 0; i < 4; i++ {
			b, err := ar.Uint8()
			if err != nil {
				return 0, err
			}
			if i == 3 {
				v |= int32(b) << shift
				break
			}
			v |= int32(b&0x7F) << shift
			shift += 7
			if b&0x80 == 0 {
				break
			}
		}
	}
	if b0&0x80 != 0 {
		v = -v
	}
	return v, nil
}

// Count reads an element count: a compact index before the third engine
// generation, and a 32-bit integer after. Counts that are negative, larger
// than the configured maximum, or that could not fit in the remaining bytes
// at minElemSize bytes each are rejected as corrupt.
func (ar *Archive) Count(minElemSize int) (int, error) {
	var n int32
	var err error
	if ar.Modern() {
		n, err = ar.Int32()
	} else {
		n, err = ar.Index()
	}
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, ar.Corrupt("negative count %d", n)
	}
	if int(n) > ar.maxArray {
		return 0, ar.Corrupt("count %d exceeds maximum %d", n, ar.maxArray)
	}
	if int64(n)*int64(minElemSize) > ar.Remaining() {
		return 0, ar.Corrupt("count %d does not fit in %d remaining bytes", n, ar.Remaining())
	}
	return int(n), nil
}

// Array reads a counted sequence, decoding each element with elem.
func Array[T any](ar *Archive, minElemSize int, elem func(*Archive) (T, error)) ([]T, error) {
	n, err := ar.Count(minElemSize)
	if err != nil {
		return nil, err
	}
	s := make([]T, 0, n)
	for i := 0; i < n; i++ {
		v, err := elem(ar)
		if err != nil {
			return s, errors.Wrapf(err, "element %d", i)
		}
		s = append(s, v)
	}
	return s, nil
}

// Str reads a length-prefixed string. A negative length indicates UTF-16
// code units. The trailing terminator is removed.
func (ar *Archive) Str() (string, error) {
	var n int32
	var err error
	if ar.Modern() {
		n, err = ar.Int32()
	} else {
		n, err = ar.Index()
	}
	if err != nil {
		return "", err
	}
	switch {
	case n == 0:
		return "", nil
	case n > 0:
		b, err := ar.Bytes(int(n))
		if err != nil {
			return "", err
		}
		return string(bytes.TrimRight(b, "\x00")), nil
	case n == math.MinInt32:
		return "", ar.Corrupt("invalid string length %d", n)
	}
	units := int(-n)
	b, err := ar.Bytes(units * 2)
	if err != nil {
		return "", err
	}
	u := make([]uint16, units)
	for i := range u {
		u[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}
	for len(u) > 0 && u[len(u)-1] == 0 {
		u = u[:len(u)-1]
	}
	return string(utf16.Decode(u)), nil
}

// Name reads a name reference and resolves it through the name table. Third
// generation names carry an instance number, rendered as a suffix.
func (ar *Archive) Name() (string, error) {
	pos := ar.Tell()
	var index, number int32
	var err error
	if ar.Modern() {
		if index, err = ar.Int32(); err == nil {
			number, err = ar.Int32()
		}
	} else {
		index, err = ar.Index()
	}
	if err != nil {
		return "", err
	}
	if ar.names == nil {
		return "", errors.Corrupt(pos, "name %d read without a name table", index)
	}
	name, ok := ar.names.Name(int(index))
	if !ok {
		return "", errors.Corrupt(pos, "name index %d out of range", index)
	}
	if number > 0 {
		name += "_" + strconv.Itoa(int(number-1))
	}
	return name, nil
}

// Object reads a package index referring to an export (positive), an import
// (negative) or nothing (zero).
func (ar *Archive) Object() (int32, error) {
	if ar.Modern() {
		return ar.Int32()
	}
	return ar.Index()
}

// VengeanceHeader reads the version pair that prefixes several structures in
// games of the Vengeance engine, once the licensee version reaches min. Both
// values are zero when the header is absent.
func (ar *Archive) VengeanceHeader(min int) (ver, subVer int32, err error) {
	if ar.Game.Engine() != Vengeance || ar.LicenseeVer < min {
		return 0, 0, nil
	}
	if ver, err = ar.Int32(); err != nil {
		return 0, 0, err
	}
	subVer, err = ar.Int32()
	return ver, subVer, err
}

// LazyArray reads a deferred array of elemSize-byte elements and returns a
// handle to its bytes, leaving the cursor after them.
func (ar *Archive) LazyArray(elemSize int) (bulk.Handle, error) {
	if ar.Ver > 61 {
		// The absolute skip position is redundant with the count.
		if _, err := ar.Int32(); err != nil {
			return bulk.Handle{}, err
		}
	}
	n, err := ar.Count(elemSize)
	if err != nil {
		return bulk.Handle{}, err
	}
	size := int64(n) * int64(elemSize)
	if size > math.MaxUint32 {
		return bulk.Handle{}, ar.Corrupt("lazy array of %d bytes", size)
	}
	h := bulk.Handle{
		Offset:     uint64(ar.Tell()),
		StoredSize: uint32(size),
		RawSize:    uint32(size),
		Flags:      bulk.Lazy,
	}
	return h, ar.Skip(size)
}

// BulkData reads a bulk data header and returns a handle to its payload. An
// inline payload is skipped; a payload in a separate file has no inline
// bytes.
func (ar *Archive) BulkData() (bulk.Handle, error) {
	flags, err := ar.Uint32()
	if err != nil {
		return bulk.Handle{}, err
	}
	var count, sizeOnDisk, offset int32
	if count, err = ar.Int32(); err != nil {
		return bulk.Handle{}, err
	}
	if sizeOnDisk, err = ar.Int32(); err != nil {
		return bulk.Handle{}, err
	}
	if offset, err = ar.Int32(); err != nil {
		return bulk.Handle{}, err
	}
	if count < 0 || sizeOnDisk < 0 {
		return bulk.Handle{}, ar.Corrupt("bulk data with count %d and size %d", count, sizeOnDisk)
	}
	h := bulk.Handle{
		Offset:     uint64(uint32(offset)),
		StoredSize: uint32(sizeOnDisk),
		RawSize:    uint32(count),
		Flags:      bulk.Flags(flags),
	}
	if h.Separate() || h.Flags&bulk.Unused != 0 {
		return h, nil
	}
	h.Offset = uint64(ar.Tell())
	return h, ar.Skip(int64(sizeOnDisk))
}
