package image

import (
	"bytes"
	"compress/gzip"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"
)

// encodePNG returns a 3x2 PNG filled with c.
func encodePNG(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestFileLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	red := color.RGBA{R: 255, A: 255}
	raw := encodePNG(t, red)

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	gw.Write(raw)
	gw.Close()

	var xzBuf bytes.Buffer
	xw, err := xz.NewWriter(&xzBuf)
	if err != nil {
		t.Fatalf("xz writer: %v", err)
	}
	xw.Write(raw)
	xw.Close()

	paths := map[string]string{
		"png":    writeFile(t, dir, "shot.png", raw),
		"gzip":   writeFile(t, dir, "shot.png.gz", gz.Bytes()),
		"xz":     writeFile(t, dir, "shot.png.xz", xzBuf.Bytes()),
		"no ext": writeFile(t, dir, "shot", raw),
	}

	loader := NewFileLoader(nil)
	for name, path := range paths {
		t.Run(name, func(t *testing.T) {
			img, err := loader.Load(path)
			if err != nil {
				t.Fatalf("Load(%s) error: %v", path, err)
			}
			if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
				t.Errorf("bounds = %v, want 3x2", b)
			}
			r, g, b, _ := img.At(1, 1).RGBA()
			if r>>8 != 255 || g != 0 || b != 0 {
				t.Errorf("pixel = (%d, %d, %d), want red", r>>8, g>>8, b>>8)
			}
		})
	}
}

func TestFileLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := writeFile(t, dir, "garbage.png", []byte("dummy image data"))

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "empty path", path: "", wantErr: "cannot be empty"},
		{name: "missing", path: filepath.Join(dir, "missing.png"), wantErr: "not found"},
		{name: "directory", path: dir, wantErr: "directory"},
		{name: "undecodable", path: garbage, wantErr: "failed to decode"},
	}

	loader := NewFileLoader(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Load(tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateImagePath(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "ok.png", encodePNG(t, color.Black))
	bad := writeFile(t, dir, "bad.png", []byte("nope"))
	text := writeFile(t, dir, "notes.txt", []byte("hello"))

	if err := ValidateImagePath(good); err != nil {
		t.Errorf("ValidateImagePath(good) error: %v", err)
	}
	if err := ValidateImagePath(bad); err == nil {
		t.Error("ValidateImagePath(bad) expected error")
	}
	if err := ValidateImagePath(text); err == nil || !strings.Contains(err.Error(), "unsupported image extension") {
		t.Errorf("ValidateImagePath(txt) error = %v", err)
	}
}

func TestIsImageFile(t *testing.T) {
	tests := map[string]bool{
		"a.PNG":       true,
		"a.webp":      true,
		"a.jpeg.xz":   true,
		"a.gif.bz2":   true,
		"a.txt":       false,
		"a.tar.gz":    false,
		"no-ext-here": false,
	}
	for path, want := range tests {
		if got := IsImageFile(path); got != want {
			t.Errorf("IsImageFile(%q) = %v, want %v", path, got, want)
		}
	}
}
