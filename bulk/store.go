package bulk

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"sync"

	"github.com/anaminus/parse"
	"github.com/bkaradzic/go-lz4"
	"github.com/klauspost/compress/zlib"
	"github.com/ueforge/unmaterial/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"
)

// Source is a random-access byte range, such as a mapped package file. A
// *bytes.Reader satisfies Source.
type Source interface {
	io.ReaderAt
	Size() int64
}

// Store materializes handles against the package that produced them.
type Store struct {
	src   Source
	side  Source
	limit int
}

// Option configures a Store.
type Option func(*Store)

// WithSideFile sets the source used for payloads stored outside of the
// package.
func WithSideFile(src Source) Option {
	return func(s *Store) { s.side = src }
}

// WithConcurrency sets the number of payloads Prefetch reads at once.
func WithConcurrency(n int) Option {
	return func(s *Store) { s.limit = n }
}

// NewStore returns a Store reading payloads from src.
func NewStore(src Source, opts ...Option) *Store {
	s := &Store{src: src, limit: 4}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TruncatedError reports a payload that cannot be read from the available
// sources. It matches errors.ErrTruncatedPayload.
type TruncatedError struct {
	Handle Handle
}

func (err TruncatedError) Error() string {
	if err.Handle.Separate() {
		return "payload " + err.Handle.String() + " is stored in a separate file"
	}
	return "payload " + err.Handle.String() + " was stripped from the package"
}

func (err TruncatedError) Unwrap() error {
	return errors.ErrTruncatedPayload
}

// Materialize reads and expands the payload located by h.
func (s *Store) Materialize(h Handle) ([]byte, error) {
	if h.Empty() {
		return []byte{}, nil
	}
	src := s.src
	if h.Separate() {
		if s.side == nil {
			return nil, TruncatedError{Handle: h}
		}
		src = s.side
	}
	if h.Truncated() {
		return nil, TruncatedError{Handle: h}
	}
	if src == nil {
		return nil, errors.New("nil source")
	}
	end := h.Offset + uint64(h.StoredSize)
	if end > uint64(src.Size()) {
		return nil, errors.Corrupt(int64(h.Offset), "payload of %d bytes exceeds source of %d bytes", h.StoredSize, src.Size())
	}
	stored := make([]byte, h.StoredSize)
	if _, err := src.ReadAt(stored, int64(h.Offset)); err != nil && !(err == io.EOF && uint64(src.Size()) == end) {
		return nil, errors.DataError{Offset: int64(h.Offset), Cause: err}
	}
	if !h.Compressed() {
		if h.StoredSize != h.RawSize {
			return nil, errors.Corrupt(int64(h.Offset), "stored size %d does not match raw size %d", h.StoredSize, h.RawSize)
		}
		return stored, nil
	}
	raw, err := decompressChunks(stored, h.Flags&Compression, h.RawSize)
	if err != nil {
		return nil, errors.DataError{Offset: int64(h.Offset), Cause: err}
	}
	return raw, nil
}

// Prefetch materializes each handle concurrently. Payloads that are truncated
// are left nil and reported through warn; any other failure stops the
// remaining reads and is returned as err.
func (s *Store) Prefetch(ctx context.Context, handles []Handle) (data [][]byte, warn, err error) {
	data = make([][]byte, len(handles))
	var (
		mu    sync.Mutex
		warns errors.Errors
	)
	g, ctx := errgroup.WithContext(ctx)
	if s.limit > 0 {
		g.SetLimit(s.limit)
	}
	for i, h := range handles {
		i, h := i, h
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := s.Materialize(h)
			if errors.Is(err, errors.ErrTruncatedPayload) {
				mu.Lock()
				warns = warns.Append(err)
				mu.Unlock()
				return nil
			}
			if err != nil {
				return err
			}
			data[i] = b
			return nil
		})
	}
	err = g.Wait()
	return data, warns.Return(), err
}

// Digest returns a fingerprint of a materialized payload.
func Digest(b []byte) [32]byte {
	return blake2b.Sum256(b)
}

////////////////////////////////////////////////////////////////

// chunkTag begins every compressed bulk payload. A byte-swapped tag indicates
// a big-endian console payload.
const (
	chunkTag        = 0x9E2A83C1
	chunkTagSwapped = 0xC1832A9E
)

type chunkBlock struct {
	CompressedSize   int32
	UncompressedSize int32
}

func (b *chunkBlock) read(fr *parse.BinaryReader) bool {
	return fr.Number(&b.CompressedSize) || fr.Number(&b.UncompressedSize)
}

func decompressChunks(stored []byte, method Flags, rawSize uint32) ([]byte, error) {
	switch method {
	case CompressedZLIB, CompressedLZ4:
	default:
		return nil, errors.Wrapf(errors.ErrUnsupportedCompression, "method %s", method)
	}

	fr := parse.NewBinaryReader(bytes.NewReader(stored))
	var tag uint32
	var blockSize int32
	var summary chunkBlock
	if fr.Number(&tag) || fr.Number(&blockSize) || summary.read(fr) {
		return nil, errors.Wrap(fr.Err(), "chunk header")
	}
	if tag == chunkTagSwapped {
		return nil, errors.Wrap(errors.ErrUnsupportedCompression, "big-endian chunk")
	}
	if tag != chunkTag {
		return nil, errors.Wrapf(errors.ErrCorruptData, "bad chunk tag 0x%08X", tag)
	}
	if blockSize <= 0 || summary.UncompressedSize < 0 || uint32(summary.UncompressedSize) != rawSize {
		return nil, errors.Wrapf(errors.ErrCorruptData, "chunk summary %d/%d does not match raw size %d", summary.CompressedSize, summary.UncompressedSize, rawSize)
	}
	count := (int(summary.UncompressedSize) + int(blockSize) - 1) / int(blockSize)
	if count*8 > len(stored)-int(fr.N()) {
		return nil, errors.Wrapf(errors.ErrCorruptData, "implausible block count %d", count)
	}
	blocks := make([]chunkBlock, count)
	for i := range blocks {
		if blocks[i].read(fr) {
			return nil, errors.Wrap(fr.Err(), "chunk blocks")
		}
	}

	// Block sizes are bounded by the stored bytes before anything is allocated.
	remain := int64(len(stored)) - fr.N()
	var stotal, utotal int64
	for i, b := range blocks {
		if b.CompressedSize < 0 || b.UncompressedSize < 0 {
			return nil, errors.Wrapf(errors.ErrCorruptData, "block %d has negative size", i)
		}
		stotal += int64(b.CompressedSize)
		utotal += int64(b.UncompressedSize)
		if stotal > remain {
			return nil, errors.Wrapf(errors.ErrCorruptData, "block %d needs %d bytes, %d stored", i, stotal, remain)
		}
	}
	if utotal != int64(rawSize) {
		return nil, errors.Wrapf(errors.ErrCorruptData, "blocks expand to %d bytes, expected %d", utotal, rawSize)
	}

	out := make([]byte, 0, rawSize)
	for i, b := range blocks {
		src := make([]byte, b.CompressedSize)
		if fr.Bytes(src) {
			return nil, errors.Wrapf(fr.Err(), "block %d", i)
		}
		dst, err := expand(method, src, int(b.UncompressedSize))
		if err != nil {
			return nil, errors.Wrapf(err, "block %d", i)
		}
		if len(dst) != int(b.UncompressedSize) {
			return nil, errors.Wrapf(errors.ErrCorruptData, "block %d expanded to %d bytes, expected %d", i, len(dst), b.UncompressedSize)
		}
		out = append(out, dst...)
	}
	return out, nil
}

func expand(method Flags, src []byte, size int) ([]byte, error) {
	switch method {
	case CompressedZLIB:
		zr, err := zlib.NewReader(bytes.NewReader(src))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		dst := make([]byte, size)
		if _, err := io.ReadFull(zr, dst); err != nil {
			return nil, err
		}
		return dst, nil
	case CompressedLZ4:
		// The decoder expects the expanded length as a prefix.
		prefixed := make([]byte, 4+len(src))
		binary.LittleEndian.PutUint32(prefixed, uint32(size))
		copy(prefixed[4:], src)
		return lz4.Decode(make([]byte, size), prefixed)
	}
	return nil, errors.ErrUnsupportedCompression
}
