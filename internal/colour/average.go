package colour

import (
	"image"
	"image/color"
)

// AverageRGB returns the per-channel arithmetic mean of samples, truncated.
// An empty sample set averages to black.
func AverageRGB(samples []RGB) RGB {
	if len(samples) == 0 {
		return Black
	}

	var totalR, totalG, totalB uint64
	for _, s := range samples {
		totalR += uint64(s.R)
		totalG += uint64(s.G)
		totalB += uint64(s.B)
	}

	n := uint64(len(samples))
	return RGB{
		R: uint8(totalR / n),
		G: uint8(totalG / n),
		B: uint8(totalB / n),
	}
}

// AverageImage averages every pixel of rect that lies inside img. An empty
// intersection averages to black.
func AverageImage(img image.Image, rect image.Rectangle) RGB {
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return Black
	}

	var totalR, totalG, totalB, count uint64
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			c := FromColor(img.At(x, y))
			totalR += uint64(c.R)
			totalG += uint64(c.G)
			totalB += uint64(c.B)
			count++
		}
	}

	return RGB{
		R: uint8(totalR / count),
		G: uint8(totalG / count),
		B: uint8(totalB / count),
	}
}

// FromColor converts a color.Color to RGB, dropping alpha.
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255].
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// ToColor converts an RGB value to an opaque color.RGBA.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}
