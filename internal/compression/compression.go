// Package compression packs generated files for static hosting.
package compression

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

// Format is a compression format.
type Format string

// Supported formats.
const (
	XZ   Format = "xz"
	Gzip Format = "gzip"
)

// maxDecompressed bounds Decompress output.
const maxDecompressed = 100 * 1024 * 1024

// Formats returns the supported formats.
func Formats() []Format {
	return []Format{XZ, Gzip}
}

// Extension returns the file name suffix for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case XZ:
		return ".xz"
	case Gzip:
		return ".gz"
	default:
		return ""
	}
}

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	return f.Extension() != ""
}

// Compress returns data packed in format f.
func Compress(f Format, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	var w io.WriteCloser
	switch f {
	case XZ:
		xzw, err := xz.NewWriter(&buf)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		w = xzw
	case Gzip:
		gzw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip writer: %w", err)
		}
		w = gzw
	default:
		return nil, fmt.Errorf("unsupported compression format: %s", f)
	}

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress unpacks data in format f.
func Decompress(f Format, data []byte) ([]byte, error) {
	var r io.Reader
	switch f {
	case XZ:
		xzr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = xzr
	case Gzip:
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzr.Close()
		r = gzr
	default:
		return nil, fmt.Errorf("unsupported compression format: %s", f)
	}

	out, err := io.ReadAll(io.LimitReader(r, maxDecompressed+1))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	if len(out) > maxDecompressed {
		return nil, fmt.Errorf("decompressed data exceeds %d bytes", maxDecompressed)
	}
	return out, nil
}
