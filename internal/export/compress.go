package export

import (
	"compress/gzip"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// Compression names an output codec for exported frames.
type Compression string

const (
	CompressNone   Compression = "none"
	CompressGzip   Compression = "gzip"
	CompressZstd   Compression = "zstd"
	CompressSnappy Compression = "snappy"
	CompressBrotli Compression = "brotli"
	CompressLZ4    Compression = "lz4"
)

// Compressions lists the accepted codec names.
func Compressions() []Compression {
	return []Compression{CompressNone, CompressGzip, CompressZstd, CompressSnappy, CompressBrotli, CompressLZ4}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// NewWriter wraps w in the named codec. Close flushes the codec but does
// not close w. An empty name means no compression.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case "", CompressNone:
		return nopCloser{w}, nil
	case CompressGzip:
		return gzip.NewWriter(w), nil
	case CompressZstd:
		return zstd.NewWriter(w)
	case CompressSnappy:
		return snappy.NewBufferedWriter(w), nil
	case CompressBrotli:
		return brotli.NewWriterLevel(w, brotli.DefaultCompression), nil
	case CompressLZ4:
		return lz4.NewWriter(w), nil
	}
	return nil, fmt.Errorf("export: unknown compression %q (want one of %v)", string(c), Compressions())
}

// NewReader is the inverse of NewWriter.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case "", CompressNone:
		return io.NopCloser(r), nil
	case CompressGzip:
		return gzip.NewReader(r)
	case CompressZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case CompressSnappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	case CompressBrotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	case CompressLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	}
	return nil, fmt.Errorf("export: unknown compression %q (want one of %v)", string(c), Compressions())
}
