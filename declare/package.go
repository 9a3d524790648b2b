package declare

import (
	"bytes"

	"github.com/anaminus/parse"
	"github.com/bkaradzic/go-lz4"
	"github.com/klauspost/compress/zlib"
	"github.com/ueforge/unmaterial/archive"
	"github.com/ueforge/unmaterial/bulk"
	"github.com/ueforge/unmaterial/errors"
	"github.com/ueforge/unmaterial/loader"
)

// Export declares one object of a package.
type Export struct {
	Type string
	Name string
	Body Stream
}

// Package declares a whole package.
type Package struct {
	Version archive.Version
	// Header is written before the first export.
	Header  []byte
	Exports []Export
}

// Declare lays out the exports one after another and returns the package
// as the loader receives it.
func (p Package) Declare() *loader.Package {
	var names Names
	data := append([]byte(nil), p.Header...)
	exports := make([]loader.Export, len(p.Exports))
	for i, e := range p.Exports {
		body := e.Body.DeclareWith(p.Version, &names, int64(len(data)))
		exports[i] = loader.Export{
			Type:   e.Type,
			Name:   e.Name,
			Offset: int64(len(data)),
			Length: int64(len(body)),
		}
		data = append(data, body...)
	}
	return &loader.Package{
		Data:    data,
		Version: p.Version,
		Names:   names.Table(),
		Exports: exports,
	}
}

const chunkTag = 0x9E2A83C1

// Compress encodes raw as a chunked compressed payload using the compression
// method of flags, splitting it into blocks of blockSize bytes.
func Compress(flags bulk.Flags, blockSize int, raw []byte) ([]byte, error) {
	if blockSize <= 0 {
		return nil, errors.Newf("invalid block size %d", blockSize)
	}
	type block struct {
		Compressed, Uncompressed int32
	}
	var (
		blocks []block
		data   [][]byte
		total  int32
	)
	for off := 0; off < len(raw); off += blockSize {
		end := min(off+blockSize, len(raw))
		c, err := compressBlock(flags&bulk.Compression, raw[off:end])
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block{int32(len(c)), int32(end - off)})
		data = append(data, c)
		total += int32(len(c))
	}

	var buf bytes.Buffer
	fw := parse.NewBinaryWriter(&buf)
	fw.Number(uint32(chunkTag))
	fw.Number(int32(blockSize))
	fw.Number(total)
	fw.Number(int32(len(raw)))
	for _, b := range blocks {
		fw.Number(b.Compressed)
		fw.Number(b.Uncompressed)
	}
	for _, d := range data {
		fw.Bytes(d)
	}
	if _, err := fw.End(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func compressBlock(method bulk.Flags, src []byte) ([]byte, error) {
	switch method {
	case bulk.CompressedZLIB:
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		if _, err := zw.Write(src); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case bulk.CompressedLZ4:
		out, err := lz4.Encode(nil, src)
		if err != nil {
			return nil, err
		}
		// Blocks carry no size prefix; the block header records it.
		return out[4:], nil
	}
	return nil, errors.Wrapf(errors.ErrUnsupportedCompression, "compress %s", method)
}
