// Package compression opens compressed snapshot files as plain streams.
package compression

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// DefaultMaxBytes bounds decompressed output (100 MiB).
const DefaultMaxBytes int64 = 100 * 1024 * 1024

// Format is a supported compression format.
type Format string

const (
	FormatNone  Format = ""
	FormatGzip  Format = "gzip"
	FormatXz    Format = "xz"
	FormatBzip2 Format = "bzip2"
)

// DetectFormat returns the compression format implied by a file name.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".tgz":
		return FormatGzip
	case ".xz":
		return FormatXz
	case ".bz2":
		return FormatBzip2
	default:
		return FormatNone
	}
}

// TrimExt strips a compression extension, so "shot.png.xz" becomes "shot.png".
func TrimExt(name string) string {
	if DetectFormat(name) == FormatNone {
		return name
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// NewReader wraps r with a decompressor chosen from name's extension. Output
// is limited to maxBytes (DefaultMaxBytes when maxBytes <= 0). Uncompressed
// names return r unchanged apart from the limit.
func NewReader(name string, r io.Reader, maxBytes int64) (io.ReadCloser, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	switch DetectFormat(name) {
	case FormatGzip:
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return &readCloser{Reader: NewLimitedReader(gzr, maxBytes), close: gzr.Close}, nil
	case FormatXz:
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return &readCloser{Reader: NewLimitedReader(xzr, maxBytes)}, nil
	case FormatBzip2:
		return &readCloser{Reader: NewLimitedReader(bzip2.NewReader(r), maxBytes)}, nil
	default:
		return &readCloser{Reader: NewLimitedReader(r, maxBytes)}, nil
	}
}

type readCloser struct {
	io.Reader
	close func() error
}

func (rc *readCloser) Close() error {
	if rc.close == nil {
		return nil
	}
	return rc.close()
}

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// Unlike io.LimitedReader it fails once the limit is exceeded instead of
// reporting EOF, so truncated images never decode silently.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		// Probe for one more byte to tell an exact fit from an overflow.
		var probe [1]byte
		n, err := l.R.Read(probe[:])
		if n > 0 {
			return 0, fmt.Errorf("decompression size limit exceeded")
		}
		return 0, err
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{R: r, Remaining: maxBytes}
}
