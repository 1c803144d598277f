// Package image provides utilities for loading snapshot images.
package image

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/nullpick/internal/compression"
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem, transparently
// decompressing .gz, .xz and .bz2 files.
type FileLoader struct {
	// MaxBytes bounds decompressed size; zero uses compression.DefaultMaxBytes.
	MaxBytes int64

	logger hclog.Logger
}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader(logger hclog.Logger) *FileLoader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &FileLoader{logger: logger.Named("loader")}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if err := checkFile(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	r, err := compression.NewReader(path, file, l.MaxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to open compressed image: %w", err)
	}
	defer r.Close()

	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	l.logger.Debug("loaded image",
		"path", path,
		"format", format,
		"compression", string(compression.DetectFormat(path)),
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy())

	return img, nil
}

// checkFile verifies path names an existing regular file.
func checkFile(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file not found: %s", path)
		}
		return fmt.Errorf("failed to stat image file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	return nil
}

// ValidateImagePath checks that path points to a decodable image, reading
// only the header.
func ValidateImagePath(path string) error {
	if err := checkFile(path); err != nil {
		return err
	}

	if !IsImageFile(path) {
		return fmt.Errorf("unsupported image extension: %s (supported: %s)",
			filepath.Ext(compression.TrimExt(path)), strings.Join(SupportedImageExtensions(), ", "))
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	r, err := compression.NewReader(path, file, 0)
	if err != nil {
		return fmt.Errorf("failed to open compressed image: %w", err)
	}
	defer r.Close()

	if _, _, err := image.DecodeConfig(r); err != nil {
		return fmt.Errorf("unsupported or invalid image format: %w", err)
	}

	return nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

// IsImageFile reports whether path has a supported image extension, looking
// through any compression extension.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(compression.TrimExt(path)))
	return slices.Contains(SupportedImageExtensions(), ext)
}
