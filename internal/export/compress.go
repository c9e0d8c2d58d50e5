package export

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"sigview/internal/config"
)

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// compressWriter wraps w with the codec. Closing the result flushes the codec
// but never closes w.
func compressWriter(w io.Writer, codec string) (io.WriteCloser, error) {
	switch codec {
	case config.CompressionNone, "":
		return nopWriteCloser{w}, nil
	case config.CompressionZstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		return enc, nil
	case config.CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: compression %q", ErrUnsupported, codec)
	}
}

// decompressReader is the inverse of compressWriter.
func decompressReader(r io.Reader, codec string) (io.ReadCloser, error) {
	switch codec {
	case config.CompressionNone, "":
		return io.NopCloser(r), nil
	case config.CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		return dec.IOReadCloser(), nil
	case config.CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: compression %q", ErrUnsupported, codec)
	}
}
